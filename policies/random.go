package policies

import (
	"github.com/zeu5/rl-replay/rl"
	"golang.org/x/exp/rand"
)

type RandomPolicy struct{}

var _ rl.Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{}
}

func (r *RandomPolicy) NextAction(step int, state rl.State, actions []rl.Action, rng *rand.Rand) (rl.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	return actions[rng.Intn(len(actions))], true
}
