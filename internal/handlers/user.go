package handlers

import (
	"IEats/internal/config"
	"IEats/internal/middleware"
	"IEats/internal/model"
	"IEats/internal/service"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler: регистрация, вход, выход, текущий пользователь.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"` // имя или email
	Password string `json:"password"`
}

type userDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Register регистрирует пользователя и сразу открывает сессию.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, h.Config.MaxBodyBytes(), &req) {
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	case errors.Is(err, service.ErrLoginTaken):
		writeError(w, http.StatusConflict, "exists")
		return
	case err != nil:
		h.Logger.Errorw("Register: service error", "error", err)
		writeError(w, http.StatusInternalServerError, codeServerError)
		return
	}

	h.startSession(w, user)
}

// Login проверяет пароль и открывает сессию.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, h.Config.MaxBodyBytes(), &req) {
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		h.Logger.Infow("Login: invalid credentials", "login", req.Username)
		writeError(w, http.StatusUnauthorized, "invalid")
		return
	case err != nil:
		h.Logger.Errorw("Login: service error", "error", err)
		writeError(w, http.StatusInternalServerError, codeServerError)
		return
	}

	h.startSession(w, user)
}

func (h *UserHandler) startSession(w http.ResponseWriter, user *model.User) {
	if err := middleware.SetSessionCookie(w, user.ID, user.Username, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("failed to sign session token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, codeServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"user": userDTO{ID: user.ID, Username: user.Username},
	})
}

// Logout удаляет cookie сессии.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me возвращает текущего пользователя или null. Никогда не падает.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": userDTO{ID: uid, Username: middleware.GetUsernameFromContext(r.Context())},
	})
}
