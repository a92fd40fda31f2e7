package rl

import "golang.org/x/exp/rand"

// Environment that policies interact with.
// Step returns the resulting state, the reward of the transition and
// whether the transition is terminal.
type Environment interface {
	Reset(rng *rand.Rand) State
	Step(action Action, rng *rand.Rand) (State, float64, bool, error)
}

// State of the environment that policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
	// Actions possible from the state
	Actions() []Action
}

// An Action that a policy can take
type Action interface {
	// Index of the action
	// Should be deterministic
	Hash() string
}

// Policy decides the next action. The policy does not own any
// randomness, it draws from the rng handed in at each step so that
// replaying with the same seed reproduces the same actions.
type Policy interface {
	NextAction(step int, state State, actions []Action, rng *rand.Rand) (Action, bool)
}

// TrainablePolicy additionally learns from the observed transitions
type TrainablePolicy interface {
	Policy
	// Update after each transition
	Update(step int, state State, action Action, reward float64, nextState State, terminal bool)
	// UpdateIteration at the end of each episode with the resulting trace
	UpdateIteration(episode int, trace *Trace)
	Reset()
}
