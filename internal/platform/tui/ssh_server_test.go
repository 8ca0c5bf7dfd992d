package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestHostKeyFile(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "keys", "nested", "host_key")

	got, err := hostKeyFile(want)
	if err != nil {
		t.Fatalf("hostKeyFile() failed: %v", err)
	}
	if got != want {
		t.Errorf("hostKeyFile() = %q, expected %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(want)); err != nil || !info.IsDir() {
		t.Errorf("expected the key directory to exist, got %v", err)
	}
}

func TestNewSSHServerHostKeyFailureLeavesNoDatabase(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultSSHServerConfig()
	cfg.HostKeyPath = filepath.Join(blocker, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "solves.db")

	if _, err := NewSSHServer(cfg, log.New(io.Discard)); err == nil {
		t.Fatal("expected an error when the host key directory cannot be created")
	}
	if _, err := os.Stat(cfg.DBPath); !os.IsNotExist(err) {
		t.Errorf("the database should not be opened, stat error %v", err)
	}
}
