package handlers

import (
	"IEats/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Коды ошибок в теле ответа.
const (
	codeInvalidFields = "invalid_fields"
	codeNotFound      = "not_found"
	codeConflict      = "conflict"
	codeServerError   = "server_error"
	codeTooLarge      = "payload_too_large"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeInvalid(w http.ResponseWriter, field string) {
	body := map[string]string{"error": codeInvalidFields}
	if field != "" {
		body["field"] = field
	}
	writeJSON(w, http.StatusBadRequest, body)
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
func writeServiceError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidField):
		writeInvalid(w, service.InvalidFieldName(err))
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound)
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict)
	default:
		logger.Errorw(op+": service error", "error", err)
		writeError(w, http.StatusInternalServerError, codeServerError)
	}
}

// decodeBody читает JSON-тело с ограничением размера. При ошибке ответ уже записан.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge)
			return false
		}
		writeInvalid(w, "")
		return false
	}
	return true
}

// pathID разбирает {id} из пути.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
