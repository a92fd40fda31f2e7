package rl

import "fmt"

// RolloutConfig configures a replay rollout
type RolloutConfig struct {
	Episodes int
	Horizon  int
	Seed     uint64
	// number of times the terminal state is repeated at the end of an
	// episode, so that a rendered animation pauses on the last frame
	PadFrames int
}

// RolloutResult holds the per-episode traces and the flat ordered
// sequence of states observed during the rollout. Frames are what the
// renderer consumes, padding included.
type RolloutResult struct {
	Traces []*Trace
	Frames []State
}

// Steps executed across all episodes, padding excluded
func (r *RolloutResult) Steps() int {
	total := 0
	for _, t := range r.Traces {
		total += t.Len()
	}
	return total
}

// Rollout drives the policy through the environment for the configured
// number of episodes. For each episode a fresh seed chain is forked,
// the environment is reset, and then for every step a new rng is drawn
// from the chain for the policy and for the environment. Each state
// returned by Step is appended to the frame sequence. When a terminal
// transition is observed the final state is appended PadFrames
// additional times. Deterministic given the seed, the policy and the
// environment.
func Rollout(env Environment, policy Policy, config RolloutConfig) (*RolloutResult, error) {
	if config.Episodes <= 0 {
		return nil, fmt.Errorf("rollout needs at least one episode, got %d", config.Episodes)
	}
	chain := NewSeedChain(config.Seed)
	result := &RolloutResult{
		Traces: make([]*Trace, 0, config.Episodes),
		Frames: make([]State, 0),
	}

	for episode := 0; episode < config.Episodes; episode++ {
		episodeChain := chain.Fork()
		state := env.Reset(episodeChain.Rand())
		trace := NewTrace()

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
				return nil, fmt.Errorf("episode %d step %d: %w", episode, step, err)
			}
			trace.Append(state, action, reward, nextState)
			result.Frames = append(result.Frames, nextState)
			state = nextState

			if terminal {
				for i := 0; i < config.PadFrames; i++ {
					result.Frames = append(result.Frames, nextState)
				}
				break
			}
		}
		result.Traces = append(result.Traces, trace)
	}
	return result, nil
}
