package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func EnvsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "envs",
		Short: "List the registered environments and policies",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Environments: %s\n", strings.Join(EnvironmentNames(), ", "))
			fmt.Printf("Trainable policies: %s\n", strings.Join(TrainablePolicyNames(), ", "))
			fmt.Printf("Replay policies: %s\n", strings.Join(ReplayPolicyNames(), ", "))
		},
	}
}
