package policies

import (
	"github.com/zeu5/rl-replay/rl"
	"golang.org/x/exp/rand"
)

// EpsilonGreedyPolicy learns a q-table with one-step Q-learning while
// exploring a random action with probability epsilon
type EpsilonGreedyPolicy struct {
	qTable  *QTable
	alpha   float64
	gamma   float64
	epsilon float64
}

var _ rl.TrainablePolicy = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(alpha, gamma, epsilon float64) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{
		qTable:  NewQTable(),
		alpha:   alpha,
		gamma:   gamma,
		epsilon: epsilon,
	}
}

// QTable exposes the learned values, the parameter subtree that gets
// checkpointed
func (e *EpsilonGreedyPolicy) QTable() *QTable {
	return e.qTable
}

func (e *EpsilonGreedyPolicy) Reset() {
	e.qTable = NewQTable()
}

func (e *EpsilonGreedyPolicy) NextAction(step int, state rl.State, actions []rl.Action, rng *rand.Rand) (rl.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	if rng.Float64() < e.epsilon {
		return actions[rng.Intn(len(actions))], true
	}
	actionsMap := make(map[string]rl.Action)
	availableActions := make([]string, len(actions))
	for i, a := range actions {
		aHash := a.Hash()
		actionsMap[aHash] = a
		availableActions[i] = aHash
	}
	maxAction, _ := e.qTable.MaxAmong(state.Hash(), availableActions, 0)
	if maxAction == "" {
		return nil, false
	}
	return actionsMap[maxAction], true
}

func (e *EpsilonGreedyPolicy) Update(step int, state rl.State, action rl.Action, reward float64, nextState rl.State, terminal bool) {
	stateHash := state.Hash()
	actionHash := action.Hash()

	nextVal := 0.0
	if !terminal {
		_, nextVal = e.qTable.Max(nextState.Hash(), 0)
	}
	curVal := e.qTable.Get(stateHash, actionHash, 0)
	newVal := (1-e.alpha)*curVal + e.alpha*(reward+e.gamma*nextVal)
	e.qTable.Set(stateHash, actionHash, newVal)
}

func (e *EpsilonGreedyPolicy) UpdateIteration(episode int, trace *rl.Trace) {}
