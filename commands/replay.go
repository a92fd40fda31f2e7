package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/rl-replay/checkpoint"
	"github.com/zeu5/rl-replay/config"
	"github.com/zeu5/rl-replay/render"
	"github.com/zeu5/rl-replay/rl"
	"github.com/zeu5/rl-replay/store"
	"github.com/zeu5/rl-replay/util"
	"gonum.org/v1/plot/vg"
)

// Example invocation - ./rl-replay replay --set policy.name=greedy --checkpoint results/demo/checkpoint.json
func ReplayCommand() *cobra.Command {
	var checkpointPath string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Load a checkpoint, roll out episodes and render them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := composeConfig()
			if err != nil {
				return err
			}
			if checkpointPath == "" {
				checkpointPath = path.Join(cfg.Save, cfg.Run, "checkpoint.json")
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			return runReplay(ctx, cfg, checkpointPath)
		},
	}
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "Path to the checkpoint file (defaults to <save>/<run>/checkpoint.json)")
	return cmd
}

// runReplay is the whole pipeline: compose, load, rebuild, roll out,
// render. Strictly sequential, every failure is fatal.
func runReplay(ctx context.Context, cfg *config.Config, checkpointPath string) error {
	ckpt, err := checkpoint.Load(checkpointPath)
	if err != nil {
		return err
	}
	// the checkpoint knows which environment it was trained on
	cfg.Env.Name = ckpt.Env

	env, err := BuildEnvironment(cfg)
	if err != nil {
		return err
	}
	policy, err := BuildReplayPolicy(ckpt, cfg)
	if err != nil {
		return err
	}

	result, err := rl.Rollout(env, policy, rl.RolloutConfig{
		Episodes:  cfg.Episodes,
		Horizon:   cfg.Horizon,
		Seed:      cfg.Seed,
		PadFrames: cfg.Render.PadFrames,
	})
	if err != nil {
		return err
	}

	runDir := path.Join(cfg.Save, cfg.Run)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", runDir, err)
	}
	if err := recordTraces(runDir, result); err != nil {
		return err
	}

	opts := render.Options{
		Width:   4 * vg.Inch,
		Height:  4 * vg.Inch,
		DelayMS: cfg.Render.DelayMS,
	}
	gifPath := path.Join(runDir, cfg.Render.GIF)
	if err := render.GIF(gifPath, result.Frames, opts); err != nil {
		return err
	}
	pngPath := path.Join(runDir, cfg.Render.PNG)
	lastFrame := result.Frames[len(result.Frames)-1]
	if err := render.PNG(pngPath, lastFrame, opts); err != nil {
		return err
	}

	if cfg.Redis != "" {
		traces := make([]*rl.TraceRecord, 0, len(result.Traces))
		for _, t := range result.Traces {
			traces = append(traces, t.Record())
		}
		if err := archiveRun(ctx, cfg, &store.RunRecord{
			Name:       cfg.Run,
			Env:        cfg.Env.Name,
			Policy:     cfg.Policy.Name,
			Seed:       cfg.Seed,
			Episodes:   cfg.Episodes,
			Steps:      result.Steps(),
			Checkpoint: checkpointPath,
			GIF:        gifPath,
			PNG:        pngPath,
		}, traces); err != nil {
			return err
		}
	}

	fmt.Printf("Rolled out %d episodes, %d steps, %d frames\n",
		len(result.Traces), result.Steps(), len(result.Frames))
	fmt.Printf("Animation at %s, final frame at %s\n", gifPath, pngPath)
	return nil
}

// recordTraces appends each episode trace as a JSON line
func recordTraces(runDir string, result *rl.RolloutResult) error {
	tracesPath := path.Join(runDir, "traces.jsonl")
	for _, trace := range result.Traces {
		bs, err := json.Marshal(trace.Record())
		if err != nil {
			return fmt.Errorf("marshaling trace: %w", err)
		}
		if err := util.AppendToFile(tracesPath, string(bs)); err != nil {
			return fmt.Errorf("recording traces: %w", err)
		}
	}
	return nil
}
