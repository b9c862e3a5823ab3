package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/models"
)

func TestRequireAuth_Failures(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ada", "ada@example.com")

	expired, err := signJWT(&models.User{UserID: "u1"}, &ts.app.Config.Auth, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", msgNoToken},
		{"not bearer", "Basic " + token, msgNoToken},
		{"empty bearer", "Bearer ", msgNoToken},
		{"garbage", "Bearer not.a.jwt", msgTokenFailed},
		{"expired", "Bearer " + expired, msgTokenFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			ts.handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec)["message"])
		})
	}
}

func TestRequireAuth_UserDeleted(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ada", "ada@example.com")

	user, err := ts.app.Storage.UserStore().GetUserByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, ts.app.Storage.UserStore().DeleteUser(context.Background(), user.UserID))

	rec := ts.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgUserNotFound, decode(t, rec)["message"])
}

func TestCorrelationID(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Correlation-ID"))

	rec = ts.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Len(t, rec.Header().Get("X-Correlation-ID"), 8)
}

func TestCorrelationID_InContext(t *testing.T) {
	var got string
	h := correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = common.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "corr-9", got)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(common.NewSilentLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode(t, rec)["message"])
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/reports/generate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_UnknownOrigin(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
