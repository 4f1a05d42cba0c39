package httpapi

import (
	"os"
	"path/filepath"
	"testing"

	"reinforce/internal/config"
)

func TestConfigService(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"checkpoint-2", "checkpoint-12", "notes"} {
		if err := os.Mkdir(filepath.Join(dir, n), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	s := config.Default()
	s.Training.CheckpointDir = dir
	s.Inference.EnableThinking = false
	svc := NewConfigService(s, "mid")

	got := svc.Settings()
	if got.RewardMode != config.RewardAllTokens || got.Tier != "mid" || got.Training.CheckpointDir != dir {
		t.Fatalf("unexpected settings: %+v", got)
	}

	list, err := svc.Checkpoints()
	if err != nil {
		t.Fatalf("checkpoints: %v", err)
	}
	if len(list.Checkpoints) != 2 || list.Checkpoints[1].Step != 12 {
		t.Fatalf("unexpected list: %+v", list)
	}

	cp, ok, err := svc.LatestCheckpoint()
	if err != nil || !ok || cp.Path != filepath.Join(dir, "checkpoint-12") {
		t.Fatalf("latest: %+v ok=%v err=%v", cp, ok, err)
	}
}

func TestConfigServiceEmptyDir(t *testing.T) {
	s := config.Default()
	s.Training.CheckpointDir = filepath.Join(t.TempDir(), "missing")
	list, err := NewConfigService(s, "").Checkpoints()
	if err != nil {
		t.Fatalf("checkpoints: %v", err)
	}
	if list.Checkpoints == nil || len(list.Checkpoints) != 0 {
		t.Fatalf("expected empty non-nil list, got %+v", list.Checkpoints)
	}
}
