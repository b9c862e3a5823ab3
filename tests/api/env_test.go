package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vitae/internal/app"
	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/server"
	"github.com/bobmcallan/vitae/internal/storage/surrealdb"
	tcommon "github.com/bobmcallan/vitae/tests/common"
)

// scriptedGemini returns queued replies in order, then the last one forever.
type scriptedGemini struct {
	mu      sync.Mutex
	replies []string
	prompts []string
}

func (g *scriptedGemini) GenerateContent(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if len(g.replies) == 0 {
		return "", fmt.Errorf("no scripted reply")
	}
	reply := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return reply, nil
}

// Env is a server backed by a real SurrealDB database and a scripted model.
type Env struct {
	t          *testing.T
	server     *httptest.Server
	app        *app.App
	Gemini     *scriptedGemini
	ResultsDir string
}

// NewEnv starts the shared SurrealDB container and a server on a database
// unique to the test.
func NewEnv(t *testing.T, replies ...string) *Env {
	t.Helper()

	sc := tcommon.StartSurrealDB(t)

	sanitized := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := common.NewDefaultConfig()
	cfg.Storage.Address = sc.Address()
	cfg.Storage.Namespace = "vitae_api"
	cfg.Storage.Database = fmt.Sprintf("t_%s_%d", sanitized, time.Now().UnixNano()%100000)

	logger := common.NewSilentLogger()
	if os.Getenv("VITAE_TEST_VERBOSE") == "true" {
		logger = common.NewLoggerWithOutput("debug", os.Stderr)
	}

	store, err := surrealdb.NewManager(context.Background(), logger, cfg)
	require.NoError(t, err, "connect storage")

	gemini := &scriptedGemini{replies: replies}
	a := app.New(cfg, logger, store, gemini)
	srv := httptest.NewServer(server.NewServer(a).Handler())

	env := &Env{
		t:          t,
		server:     srv,
		app:        a,
		Gemini:     gemini,
		ResultsDir: filepath.Join(findProjectRoot(), "tests", "results", time.Now().Format("20060102-150405")+"-"+sanitized),
	}
	t.Cleanup(env.Cleanup)
	return env
}

// Cleanup stops the server and closes storage.
func (e *Env) Cleanup() {
	if e == nil {
		return
	}
	e.server.Close()
	e.app.Close()
}

// Do sends a request with an optional JSON body and bearer token.
func (e *Env) Do(method, path, token string, body interface{}) *http.Response {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(e.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(e.t, err)
	e.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// JSON decodes a response body into a generic map.
func (e *Env) JSON(resp *http.Response) map[string]interface{} {
	e.t.Helper()
	var out map[string]interface{}
	require.NoError(e.t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Register creates an account and returns its token.
func (e *Env) Register(name, email string) string {
	e.t.Helper()
	resp := e.Do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(e.t, http.StatusCreated, resp.StatusCode)
	return e.JSON(resp)["token"].(string)
}

// SaveResult writes an artifact under tests/results for manual inspection.
func (e *Env) SaveResult(name string, data []byte) error {
	if err := os.MkdirAll(e.ResultsDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(e.ResultsDir, name), data, 0644)
}

// findProjectRoot walks up directories to find go.mod
func findProjectRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
