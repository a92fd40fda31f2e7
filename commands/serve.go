package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeu5/rl-replay/config"
	"github.com/zeu5/rl-replay/server"
	"github.com/zeu5/rl-replay/store"
)

// Example invocation - ./rl-replay serve --set redis=localhost:6379 --addr :8080
func ServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve archived runs and rendered artifacts over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := composeConfig()
			if err != nil {
				return err
			}
			if cfg.Redis == "" {
				return fmt.Errorf("%w: serve needs a redis address", config.ErrConfig)
			}
			runStore := store.New(cfg.Redis)
			defer runStore.Close()

			fmt.Printf("Serving runs from %s on %s\n", cfg.Redis, addr)
			return server.New(runStore, addr).Run()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	return cmd
}
