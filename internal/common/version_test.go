package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadVersionFile_FillsDefaultsOnly(t *testing.T) {
	origVersion, origBuild, origCommit := Version, Build, GitCommit
	t.Cleanup(func() { Version, Build, GitCommit = origVersion, origBuild, origCommit })

	Version, Build, GitCommit = "dev", "2024-01-01", "unknown"

	path := filepath.Join(t.TempDir(), ".version")
	content := "# build metadata\nversion: 1.2.3\nbuild: 2025-06-01\ncommit: abc1234\nnot a pair\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loadVersionFile(path)

	info := GetVersionInfo()
	if info.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", info.Version)
	}
	if info.Build != "2024-01-01" {
		t.Errorf("Build = %q, want ldflags value kept", info.Build)
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("GitCommit = %q, want abc1234", info.GitCommit)
	}
}
