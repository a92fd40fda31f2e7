package policies

import (
	"github.com/zeu5/rl-replay/rl"
	"golang.org/x/exp/rand"
)

// GreedyPolicy picks the best known action from a fixed q-table.
// Used when replaying a checkpoint.
type GreedyPolicy struct {
	qTable *QTable
}

var _ rl.Policy = &GreedyPolicy{}

func NewGreedyPolicy(qTable *QTable) *GreedyPolicy {
	return &GreedyPolicy{
		qTable: qTable,
	}
}

func (g *GreedyPolicy) NextAction(step int, state rl.State, actions []rl.Action, rng *rand.Rand) (rl.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	actionsMap := make(map[string]rl.Action)
	availableActions := make([]string, len(actions))
	for i, a := range actions {
		aHash := a.Hash()
		actionsMap[aHash] = a
		availableActions[i] = aHash
	}
	maxAction, _ := g.qTable.MaxAmong(state.Hash(), availableActions, 0)
	if maxAction == "" {
		return nil, false
	}
	return actionsMap[maxAction], true
}
