package service

import (
	"context"
	"errors"
	"net/http"

	"IEats/internal/cli/api"
	"IEats/internal/cli/repo"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrLoginTaken         = errors.New("username or email already in use")
)

// User: текущий пользователь, как его видит сервер.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthService описывает юзкейс-уровень аутентификации для CLI.
type AuthService struct {
	client *api.Client
	tokens repo.TokenStore
}

func NewAuthService(client *api.Client, tokens repo.TokenStore) *AuthService {
	return &AuthService{client: client, tokens: tokens}
}

type userResponse struct {
	User *User `json:"user"`
}

// Register создаёт пользователя и сохраняет токен сессии.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*User, error) {
	var out userResponse
	resp, err := s.client.PostJSON(ctx, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &out)
	if api.IsStatus(err, http.StatusConflict) {
		return nil, ErrLoginTaken
	}
	if err != nil {
		return nil, err
	}
	if err := api.PersistAuthFromResponse(resp, s.tokens); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Login входит по имени или email и сохраняет токен сессии.
func (s *AuthService) Login(ctx context.Context, login, password string) (*User, error) {
	var out userResponse
	resp, err := s.client.PostJSON(ctx, "/api/auth/login", map[string]string{
		"username": login,
		"password": password,
	}, &out)
	if api.IsStatus(err, http.StatusUnauthorized) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := api.PersistAuthFromResponse(resp, s.tokens); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout завершает сессию на сервере и удаляет локальный токен.
// Локальный токен удаляется даже если сервер недоступен.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.client.PostJSON(ctx, "/api/auth/logout", struct{}{}, nil)
	if clearErr := s.tokens.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// CurrentUser возвращает пользователя текущей сессии или nil.
func (s *AuthService) CurrentUser(ctx context.Context) (*User, error) {
	var out userResponse
	if err := s.client.GetJSON(ctx, "/api/me", &out); err != nil {
		return nil, err
	}
	return out.User, nil
}
