package commands

import (
	"context"
	"fmt"

	"github.com/zeu5/rl-replay/config"
	"github.com/zeu5/rl-replay/rl"
	"github.com/zeu5/rl-replay/store"
)

// archiveRun stores the run record and its traces in the Redis
// archive named by the config
func archiveRun(ctx context.Context, cfg *config.Config, record *store.RunRecord, traces []*rl.TraceRecord) error {
	runStore := store.New(cfg.Redis)
	defer runStore.Close()

	if err := runStore.SaveRun(ctx, record); err != nil {
		return fmt.Errorf("archiving run: %w", err)
	}
	for _, trace := range traces {
		if err := runStore.AppendTrace(ctx, record.Name, trace); err != nil {
			return fmt.Errorf("archiving traces: %w", err)
		}
	}
	fmt.Printf("Archived run %s to %s\n", record.Name, cfg.Redis)
	return nil
}
