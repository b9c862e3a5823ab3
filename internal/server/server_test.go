package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vitae/internal/app"
	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/storage/memory"
)

const testReport = `**Health Status Overview**
You are doing well.

**Body Composition Analysis**
Your BMI is in the healthy range.

**Nutritional Recommendations**
* Eat vegetables
Sample Meal Plan:
Breakfast: Oats (300 calories)

**Hydration Guidelines**
Drink 8 cups (64 ounces) daily.`

type fakeGemini struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeGemini) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type testServer struct {
	srv     *Server
	handler http.Handler
	app     *app.App
	gemini  *fakeGemini
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Backend = "memory"
	gemini := &fakeGemini{reply: testReport}
	a := app.New(cfg, common.NewSilentLogger(), memory.NewManager(), gemini)
	t.Cleanup(a.Close)
	srv := NewServer(a)
	return &testServer{srv: srv, handler: srv.Handler(), app: a, gemini: gemini}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its token.
func (ts *testServer) register(t *testing.T, name, email string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["token"].(string)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
