package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/rl-replay/analysis"
	"github.com/zeu5/rl-replay/checkpoint"
	"github.com/zeu5/rl-replay/config"
	"github.com/zeu5/rl-replay/store"
	"github.com/zeu5/rl-replay/trainer"
)

// Example invocation - ./rl-replay train --set env.name=cartpole --set episodes=5000
func TrainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train a tabular policy and write a checkpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := composeConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			return runTraining(ctx, cfg)
		},
	}
}

func runTraining(ctx context.Context, cfg *config.Config) error {
	env, err := BuildEnvironment(cfg)
	if err != nil {
		return err
	}
	policy, err := BuildTrainablePolicy(cfg)
	if err != nil {
		return err
	}

	runDir := path.Join(cfg.Save, cfg.Run)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", runDir, err)
	}
	if err := recordConfig(runDir, cfg); err != nil {
		return err
	}

	returns := analysis.NewReturnsAnalyzer()
	coverage := analysis.NewCoverageAnalyzer()

	result, err := trainer.Run(ctx, env, policy, trainer.Config{
		Name:      cfg.Run,
		Episodes:  cfg.Episodes,
		Horizon:   cfg.Horizon,
		Seed:      cfg.Seed,
		Analyzers: []analysis.Analyzer{returns, coverage},
	})
	if err != nil {
		return err
	}

	checkpointPath := path.Join(runDir, "checkpoint.json")
	state := &checkpoint.TrainingState{
		Env:      cfg.Env.Name,
		Policy:   cfg.Policy.Name,
		Seed:     cfg.Seed,
		Episodes: result.Episodes,
		Hyperparams: map[string]float64{
			"alpha":   cfg.Policy.Alpha,
			"gamma":   cfg.Policy.Gamma,
			"epsilon": cfg.Policy.Epsilon,
		},
		Params: checkpoint.Params{Q: policy.QTable()},
	}
	if err := checkpoint.Save(checkpointPath, state); err != nil {
		return err
	}

	analysis.ReturnsPlotter(runDir)([]string{cfg.Run}, []analysis.DataSet{returns.DataSet()})
	analysis.CoveragePlotter(runDir)([]string{cfg.Run}, []analysis.DataSet{coverage.DataSet()})

	if cfg.Redis != "" {
		if err := archiveRun(ctx, cfg, &store.RunRecord{
			Name:       cfg.Run,
			Env:        cfg.Env.Name,
			Policy:     cfg.Policy.Name,
			Seed:       cfg.Seed,
			Episodes:   result.Episodes,
			Steps:      result.Steps,
			Checkpoint: checkpointPath,
		}, nil); err != nil {
			return err
		}
	}

	fmt.Printf("Trained %d episodes, %d q-table states, checkpoint at %s\n",
		result.Episodes, policy.QTable().NumStates(), checkpointPath)
	return nil
}

// recordConfig stores the composed configuration next to the run
// results
func recordConfig(runDir string, cfg *config.Config) error {
	bs, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path.Join(runDir, "config.json"), bs, 0644); err != nil {
		return fmt.Errorf("recording config: %w", err)
	}
	return nil
}
