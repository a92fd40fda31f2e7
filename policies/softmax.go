package policies

import (
	"math"

	"github.com/zeu5/rl-replay/rl"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// SoftmaxPolicy samples actions with probability proportional to
// exp(q/temperature) over a fixed q-table. Used when replaying a
// checkpoint with some stochasticity left in.
type SoftmaxPolicy struct {
	qTable      *QTable
	temperature float64
}

var _ rl.Policy = &SoftmaxPolicy{}

func NewSoftmaxPolicy(qTable *QTable, temperature float64) *SoftmaxPolicy {
	if temperature <= 0 {
		temperature = 1
	}
	return &SoftmaxPolicy{
		qTable:      qTable,
		temperature: temperature,
	}
}

func (s *SoftmaxPolicy) NextAction(step int, state rl.State, actions []rl.Action, rng *rand.Rand) (rl.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	stateHash := state.Hash()

	sum := float64(0)
	weights := make([]float64, len(actions))
	for i, action := range actions {
		val := s.qTable.Get(stateHash, action.Hash(), 0)
		exp := math.Exp(val / s.temperature)
		weights[i] = exp
		sum += exp
	}
	for i := range weights {
		weights[i] = weights[i] / sum
	}
	i, ok := sampleuv.NewWeighted(weights, rng).Take()
	if !ok {
		return nil, false
	}
	return actions[i], true
}
