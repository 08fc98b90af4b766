package middleware

import (
	"IEats/internal/metrics"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader: заголовок с id запроса.
const RequestIDHeader = "X-Request-ID"

var (
	logMu  sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// SetLogger задаёт логгер для мидлварей.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		return
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

func getLogger() *zap.SugaredLogger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	data *responseData
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	if w.data.status == 0 {
		w.data.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.data.size += n
	return n, err
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	if w.data.status == 0 {
		w.data.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

// GetRequestID возвращает id текущего запроса.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithObservability логирует каждый запрос (метод, путь, статус, размер, длительность)
// и, если m не nil, пишет метрики по шаблону маршрута chi.
func WithObservability(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, reqID)
			r = r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID))

			data := &responseData{}
			lw := &loggingResponseWriter{ResponseWriter: w, data: data}
			next.ServeHTTP(lw, r)

			if data.status == 0 {
				data.status = http.StatusOK
			}
			duration := time.Since(start)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			m.ObserveRequest(r.Method, route, data.status, duration)

			getLogger().Infow("request",
				"request_id", reqID,
				"method", r.Method,
				"uri", r.RequestURI,
				"status", data.status,
				"size", data.size,
				"duration", duration,
			)
		})
	}
}
