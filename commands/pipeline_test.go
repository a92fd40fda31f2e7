package commands

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/zeu5/rl-replay/config"
)

// trains on a small grid, then replays the written checkpoint and
// checks the rendered artifacts landed on disk
func TestTrainReplayRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Run = "roundtrip"
	cfg.Save = t.TempDir()
	cfg.Episodes = 150
	cfg.Horizon = 50
	cfg.Env.Height = 3
	cfg.Env.Width = 3
	cfg.Env.Rooms = 1

	ctx := context.Background()
	if err := runTraining(ctx, cfg); err != nil {
		t.Fatalf("training failed: %v", err)
	}
	checkpointPath := path.Join(cfg.Save, cfg.Run, "checkpoint.json")
	if _, err := os.Stat(checkpointPath); err != nil {
		t.Fatalf("expected a checkpoint at %s: %v", checkpointPath, err)
	}

	cfg.Episodes = 2
	cfg.Policy.Name = "greedy"
	cfg.Render.PadFrames = 2
	if err := runReplay(ctx, cfg, checkpointPath); err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	for _, artifact := range []string{cfg.Render.GIF, cfg.Render.PNG, "traces.jsonl"} {
		if _, err := os.Stat(path.Join(cfg.Save, cfg.Run, artifact)); err != nil {
			t.Errorf("expected %s after replay: %v", artifact, err)
		}
	}
}
