package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName: имя cookie с сессионным токеном.
const CookieName = "auth_token"

type ctxKey int

const (
	userIDKey ctxKey = iota
	usernameKey
	requestIDKey
)

var (
	sessionMu     sync.RWMutex
	sessionTTL    = 7 * 24 * time.Hour
	secureCookies bool
)

// SetSessionOptions задаёт срок жизни сессии и флаг Secure для cookie.
func SetSessionOptions(ttl time.Duration, secure bool) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if ttl > 0 {
		sessionTTL = ttl
	}
	secureCookies = secure
}

func sessionOptions() (time.Duration, bool) {
	sessionMu.RLock()
	defer sessionMu.RUnlock()
	return sessionTTL, secureCookies
}

// Claims: содержимое JWT.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// BuildToken подписывает токен сессии.
func BuildToken(userID int64, username, secret string) (string, time.Time, error) {
	ttl, _ := sessionOptions()
	expires := time.Now().Add(ttl)
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	return signed, expires, err
}

// ParseToken проверяет подпись и срок действия токена.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID <= 0 {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SetSessionCookie выставляет cookie сессии с id и именем пользователя.
func SetSessionCookie(w http.ResponseWriter, userID int64, username, secret string) error {
	token, expires, err := BuildToken(userID, username, secret)
	if err != nil {
		return err
	}
	_, secure := sessionOptions()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearLoginCookie удаляет cookie сессии.
func ClearLoginCookie(w http.ResponseWriter) {
	_, secure := sessionOptions()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// WithAuth читает cookie и, если токен валиден, кладёт user_id в контекст.
// Анонимные запросы пропускаются дальше без изменений.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := ParseToken(c.Value, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, usernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth отвечает 401, если в контексте нет пользователя.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_logged_in"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserIDFromContext возвращает id пользователя, установленный WithAuth.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// GetUsernameFromContext возвращает имя пользователя из токена.
func GetUsernameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}
