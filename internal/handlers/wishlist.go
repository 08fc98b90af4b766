package handlers

import (
	"IEats/internal/config"
	"IEats/internal/diary"
	"IEats/internal/middleware"
	"IEats/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// WishlistHandler обслуживает вишлист: список, добавление, удаление.
type WishlistHandler struct {
	WishlistService *service.WishlistService
	Logger          *zap.SugaredLogger
	Config          *config.Config
}

func NewWishlistHandler(wishlistService *service.WishlistService, logger *zap.SugaredLogger, cfg *config.Config) *WishlistHandler {
	return &WishlistHandler{WishlistService: wishlistService, Logger: logger, Config: cfg}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	items, err := h.WishlistService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "ListWishlist", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "wishlist": items})
}

func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var in diary.WishlistInput
	if !decodeBody(w, r, h.Config.MaxBodyBytes(), &in) {
		return
	}

	id, err := h.WishlistService.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, h.Logger, "CreateWishlistItem", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}

func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound)
		return
	}
	if err := h.WishlistService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.Logger, "DeleteWishlistItem", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
