package commands

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/rl-replay/config"
)

var (
	configPath string
	overrides  []string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "rl-replay",
		Short: "Train, replay and visualize tabular RL policies",
	}
	rootCommand.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	rootCommand.PersistentFlags().StringArrayVar(&overrides, "set", nil, "Configuration overrides as key=value, for example policy.epsilon=0.05")
	// adding the subcommands here
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(ReplayCommand())
	rootCommand.AddCommand(EnvsCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}

// composeConfig merges defaults, the optional config file and the
// command line overrides, in that order
func composeConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.Apply(overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}
