package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/models"
)

// Authentication failure messages.
const (
	msgNoToken      = "Not authorized, no token provided"
	msgTokenFailed  = "Not authorized, token failed"
	msgUserNotFound = "Not authorized, user not found"
)

// recoveryMiddleware catches panics and returns 500.
func recoveryMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error().
						Str("panic", fmt.Sprintf("%v", rec)).
						Str("path", r.URL.Path).
						Msg("Panic recovered in HTTP handler")
					WriteError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware allows the configured browser origins.
func corsMiddleware(config common.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Correlation-ID"},
		ExposedHeaders:   []string{"X-Correlation-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           config.MaxAge,
	})
}

// correlationIDMiddleware extracts or generates a correlation ID.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID := r.Header.Get("X-Request-ID")
		if corrID == "" {
			corrID = r.Header.Get("X-Correlation-ID")
		}
		if corrID == "" {
			corrID = uuid.New().String()[:8]
		}
		w.Header().Set("X-Correlation-ID", corrID)
		next.ServeHTTP(w, r.WithContext(common.WithCorrelationID(r.Context(), corrID)))
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			event := logger.Trace()
			if status >= 500 {
				event = logger.Error()
			} else if status >= 400 {
				event = logger.Info()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("correlation_id", common.CorrelationIDFromContext(r.Context())).
				Msg("HTTP request")
		})
	}
}

// requireAuth validates the bearer token and loads the user into the request
// context. Requests without a valid token for an existing user get 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !ok || tokenString == "" {
			WriteError(w, http.StatusUnauthorized, msgNoToken)
			return
		}

		_, claims, err := validateJWT(tokenString, []byte(s.app.Config.Auth.JWTSecret))
		if err != nil {
			s.logger.Debug().Err(err).Msg("Token validation failed")
			WriteError(w, http.StatusUnauthorized, msgTokenFailed)
			return
		}

		userID, err := claims.GetSubject()
		if err != nil || userID == "" {
			WriteError(w, http.StatusUnauthorized, msgTokenFailed)
			return
		}

		user, err := s.app.Storage.UserStore().GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				WriteError(w, http.StatusUnauthorized, msgUserNotFound)
				return
			}
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(common.WithUser(r.Context(), user)))
	})
}
