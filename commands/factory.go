package commands

import (
	"fmt"

	"github.com/zeu5/rl-replay/cartpole"
	"github.com/zeu5/rl-replay/checkpoint"
	"github.com/zeu5/rl-replay/config"
	"github.com/zeu5/rl-replay/gridworld"
	"github.com/zeu5/rl-replay/policies"
	"github.com/zeu5/rl-replay/rl"
)

// EnvironmentNames lists the registered environments
func EnvironmentNames() []string {
	return []string{"cartpole", "gridworld"}
}

// TrainablePolicyNames lists the policies the train command accepts
func TrainablePolicyNames() []string {
	return []string{"epsilon-greedy"}
}

// ReplayPolicyNames lists the policies the replay command accepts
func ReplayPolicyNames() []string {
	return []string{"greedy", "random", "softmax"}
}

// BuildEnvironment constructs the environment the config names
func BuildEnvironment(cfg *config.Config) (rl.Environment, error) {
	switch cfg.Env.Name {
	case "gridworld":
		rooms := cfg.Env.Rooms
		if rooms <= 0 {
			rooms = 1
		}
		// rooms chained by a door in the far corner, goal in the far
		// corner of the last room
		doors := make([]gridworld.Door, 0, rooms-1)
		for k := 0; k < rooms-1; k++ {
			doors = append(doors, gridworld.Door{
				From: gridworld.Coord{I: cfg.Env.Height - 1, J: cfg.Env.Width - 1, K: k},
				To:   gridworld.Coord{I: 0, J: 0, K: k + 1},
			})
		}
		return gridworld.NewGridEnvironment(gridworld.Config{
			Height: cfg.Env.Height,
			Width:  cfg.Env.Width,
			Rooms:  rooms,
			Doors:  doors,
			Goal:   gridworld.Coord{I: cfg.Env.Height - 1, J: cfg.Env.Width - 1, K: rooms - 1},
		})
	case "cartpole":
		envConfig := cartpole.DefaultConfig()
		if cfg.Env.MaxSteps > 0 {
			envConfig.MaxSteps = cfg.Env.MaxSteps
		}
		return cartpole.NewCartPoleEnvironment(envConfig)
	default:
		return nil, fmt.Errorf("%w: unknown environment %q", config.ErrConfig, cfg.Env.Name)
	}
}

// CheckpointablePolicy is a trainable policy whose learned parameters
// can be written to a checkpoint
type CheckpointablePolicy interface {
	rl.TrainablePolicy
	QTable() *policies.QTable
}

// BuildTrainablePolicy constructs the policy to train
func BuildTrainablePolicy(cfg *config.Config) (CheckpointablePolicy, error) {
	switch cfg.Policy.Name {
	case "epsilon-greedy":
		return policies.NewEpsilonGreedyPolicy(cfg.Policy.Alpha, cfg.Policy.Gamma, cfg.Policy.Epsilon), nil
	default:
		return nil, fmt.Errorf("%w: unknown trainable policy %q", config.ErrConfig, cfg.Policy.Name)
	}
}

// BuildReplayPolicy rebuilds a replay policy from the checkpointed
// parameters. An epsilon-greedy checkpoint replays as its greedy arm,
// replay does not explore.
func BuildReplayPolicy(ckpt *checkpoint.TrainingState, cfg *config.Config) (rl.Policy, error) {
	switch cfg.Policy.Name {
	case "greedy", "epsilon-greedy":
		return policies.NewGreedyPolicy(ckpt.Params.Q), nil
	case "softmax":
		return policies.NewSoftmaxPolicy(ckpt.Params.Q, cfg.Policy.Temperature), nil
	case "random":
		return policies.NewRandomPolicy(), nil
	default:
		return nil, fmt.Errorf("%w: unknown replay policy %q", config.ErrConfig, cfg.Policy.Name)
	}
}
