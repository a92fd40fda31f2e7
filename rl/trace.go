package rl

// Trace of an episode as tuples (state, action, reward, nextState)
type Trace struct {
	states     []State
	actions    []Action
	rewards    []float64
	nextStates []State
}

func NewTrace() *Trace {
	return &Trace{
		states:     make([]State, 0),
		actions:    make([]Action, 0),
		rewards:    make([]float64, 0),
		nextStates: make([]State, 0),
	}
}

func (t *Trace) Append(state State, action Action, reward float64, nextState State) {
	t.states = append(t.states, state)
	t.actions = append(t.actions, action)
	t.rewards = append(t.rewards, reward)
	t.nextStates = append(t.nextStates, nextState)
}

func (t *Trace) Len() int {
	return len(t.states)
}

func (t *Trace) Get(i int) (State, Action, State, bool) {
	if i >= len(t.states) {
		return nil, nil, nil, false
	}
	return t.states[i], t.actions[i], t.nextStates[i], true
}

func (t *Trace) Reward(i int) float64 {
	if i >= len(t.rewards) {
		return 0
	}
	return t.rewards[i]
}

// Return of the episode, the sum of the rewards
func (t *Trace) Return() float64 {
	total := 0.0
	for _, r := range t.rewards {
		total += r
	}
	return total
}

func (t *Trace) Last() (State, Action, State, bool) {
	if len(t.states) < 1 {
		return nil, nil, nil, false
	}
	lastIndex := len(t.states) - 1
	return t.states[lastIndex], t.actions[lastIndex], t.nextStates[lastIndex], true
}

func (t *Trace) GetPrefix(i int) (*Trace, bool) {
	if i > len(t.states) {
		return nil, false
	}
	return &Trace{
		states:     t.states[0:i],
		actions:    t.actions[0:i],
		rewards:    t.rewards[0:i],
		nextStates: t.nextStates[0:i],
	}, true
}

// TraceRecord is the flat serializable form of a trace, states and
// actions are recorded by their hashes
type TraceRecord struct {
	States     []string  `json:"states"`
	Actions    []string  `json:"actions"`
	Rewards    []float64 `json:"rewards"`
	NextStates []string  `json:"next_states"`
}

func (t *Trace) Record() *TraceRecord {
	r := &TraceRecord{
		States:     make([]string, t.Len()),
		Actions:    make([]string, t.Len()),
		Rewards:    make([]float64, t.Len()),
		NextStates: make([]string, t.Len()),
	}
	for i := 0; i < t.Len(); i++ {
		r.States[i] = t.states[i].Hash()
		r.Actions[i] = t.actions[i].Hash()
		r.Rewards[i] = t.rewards[i]
		r.NextStates[i] = t.nextStates[i].Hash()
	}
	return r
}
