package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/vitae/internal/common"
	tcommon "github.com/bobmcallan/vitae/tests/common"
)

// testManager starts the shared SurrealDB container and returns a Manager
// bound to a database unique to the test.
func testManager(t *testing.T) *Manager {
	t.Helper()

	sc := tcommon.StartSurrealDB(t)

	// SurrealDB rejects "/" in database names, which subtests produce
	sanitized := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := common.NewDefaultConfig()
	cfg.Storage.Address = sc.Address()
	cfg.Storage.Namespace = "vitae_test"
	cfg.Storage.Database = fmt.Sprintf("t_%s_%d", sanitized, time.Now().UnixNano()%100000)

	mgr, err := NewManager(context.Background(), common.NewSilentLogger(), cfg)
	if err != nil {
		t.Fatalf("create manager: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })

	return mgr
}
