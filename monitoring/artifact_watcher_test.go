package monitoring

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestArtifactWatcherReportsArtifactChanges(t *testing.T) {
	dir := t.TempDir()
	watcher, err := NewArtifactWatcher(dir, []string{"bmi_model.json"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bmi_model.json"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-watcher.Changes():
		if name != "bmi_model.json" {
			t.Fatalf("expected bmi_model.json, got %s", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for artifact change")
	}
}

func TestArtifactWatcherMissingDir(t *testing.T) {
	if _, err := NewArtifactWatcher(filepath.Join(t.TempDir(), "absent"), nil, zap.NewNop()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
