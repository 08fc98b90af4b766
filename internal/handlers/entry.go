package handlers

import (
	"IEats/internal/config"
	"IEats/internal/diary"
	"IEats/internal/middleware"
	"IEats/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// EntryHandler: CRUD записей дневника.
type EntryHandler struct {
	EntryService *service.EntryService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

func NewEntryHandler(entryService *service.EntryService, logger *zap.SugaredLogger, cfg *config.Config) *EntryHandler {
	return &EntryHandler{EntryService: entryService, Logger: logger, Config: cfg}
}

// List отдаёт записи пользователя, новые сверху.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	entries, err := h.EntryService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "ListEntries", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "entries": entries})
}

// Create создаёт запись с id, выбранным клиентом.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var in diary.EntryInput
	if !decodeBody(w, r, h.Config.MaxBodyBytes(), &in) {
		return
	}

	id, err := h.EntryService.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, h.Logger, "CreateEntry", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}

// Update полностью заменяет запись {id}.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	id, ok := pathID(r)
	if !ok {
		writeInvalid(w, "id")
		return
	}

	var in diary.EntryInput
	if !decodeBody(w, r, h.Config.MaxBodyBytes(), &in) {
		return
	}

	if err := h.EntryService.Update(r.Context(), userID, id, in); err != nil {
		writeServiceError(w, h.Logger, "UpdateEntry", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete удаляет запись {id}.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound)
		return
	}

	if err := h.EntryService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.Logger, "DeleteEntry", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
