package trainer

import (
	"context"
	"fmt"

	"github.com/zeu5/rl-replay/analysis"
	"github.com/zeu5/rl-replay/rl"
)

// Config of a training run
type Config struct {
	Name      string
	Episodes  int
	Horizon   int
	Seed      uint64
	Analyzers []analysis.Analyzer
}

// Result of a training run
type Result struct {
	Episodes int
	Steps    int
	Returns  []float64
}

// Run trains the policy on the environment for the configured number
// of episodes. Randomness follows the same seed chain scheme as the
// replay rollout, so a training run is reproducible from its seed.
func Run(ctx context.Context, env rl.Environment, policy rl.TrainablePolicy, config Config) (*Result, error) {
	if config.Episodes <= 0 {
		return nil, fmt.Errorf("training needs at least one episode, got %d", config.Episodes)
	}
	chain := rl.NewSeedChain(config.Seed)
	result := &Result{
		Returns: make([]float64, 0, config.Episodes),
	}

	for episode := 0; episode < config.Episodes; episode++ {
		select {
		case <-ctx.Done():
			fmt.Println("")
			return nil, ctx.Err()
		default:
		}

		episodeChain := chain.Fork()
		state := env.Reset(episodeChain.Rand())
		trace := rl.NewTrace()

		for step := 0; config.Horizon <= 0 || step < config.Horizon; step++ {
			actions := state.Actions()
			if len(actions) == 0 {
				break
			}
			action, ok := policy.NextAction(step, state, actions, episodeChain.Rand())
			if !ok {
				break
			}
			nextState, reward, terminal, err := env.Step(action, episodeChain.Rand())
			if err != nil {
				fmt.Println("")
				return nil, fmt.Errorf("episode %d step %d: %w", episode, step, err)
			}
			policy.Update(step, state, action, reward, nextState, terminal)
			trace.Append(state, action, reward, nextState)
			state = nextState
			if terminal {
				break
			}
		}
		policy.UpdateIteration(episode, trace)

		result.Steps += trace.Len()
		result.Returns = append(result.Returns, trace.Return())
		for _, a := range config.Analyzers {
			a.Analyze(episode, trace)
		}

		fmt.Printf("\rTraining %s: episode %d/%d, steps %d, return %.1f",
			config.Name, episode+1, config.Episodes, result.Steps, trace.Return())
	}
	fmt.Println("")

	result.Episodes = config.Episodes
	return result, nil
}
