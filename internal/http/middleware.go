package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionCookieName = "shop_session-id"
	SessionHeader     = "X-Session-ID"
	RequestIDHeader   = "X-Request-ID"

	sessionCookieMaxAge = 30 * 24 * time.Hour
)

type ctxKey int

const (
	sessionIDKey ctxKey = iota
	loggerKey
)

// RequestIDMiddleware echoes the chi request id back to the client.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

// SessionMiddleware resolves the visitor session id from the cookie or the
// X-Session-ID header and issues a new one when neither is present.
func SessionMiddleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				if c, err := r.Cookie(SessionCookieName); err == nil {
					id = c.Value
				}
			}
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(sessionCookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(SessionHeader, id)

			ctx := context.WithValue(r.Context(), sessionIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessLog logs one line per request and stores a request scoped logger in
// the context.
func AccessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLogger := logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))
			ctx := context.WithValue(r.Context(), loggerKey, reqLogger)

			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}

func getSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

func loggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.L()
}
