package policies

import (
	"encoding/json"
	"math"
	"sort"
)

// QTable maps state hashes to action values
type QTable struct {
	Entries map[string]map[string]float64 `json:"entries"`
}

func NewQTable() *QTable {
	return &QTable{
		Entries: make(map[string]map[string]float64),
	}
}

// UnmarshalJSON restores the invariant that Entries is non-nil, a
// checkpoint may record an empty table
func (q *QTable) UnmarshalJSON(bs []byte) error {
	type plain QTable
	var p plain
	if err := json.Unmarshal(bs, &p); err != nil {
		return err
	}
	if p.Entries == nil {
		p.Entries = make(map[string]map[string]float64)
	}
	*q = QTable(p)
	return nil
}

func (q *QTable) Get(state, action string, def float64) float64 {
	if _, ok := q.Entries[state]; !ok {
		q.Entries[state] = make(map[string]float64)
	}
	if _, ok := q.Entries[state][action]; !ok {
		q.Entries[state][action] = def
	}
	return q.Entries[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.Entries[state]; !ok {
		q.Entries[state] = make(map[string]float64)
	}
	q.Entries[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.Entries[state]
	return ok
}

func (q *QTable) NumStates() int {
	return len(q.Entries)
}

// Max value over all recorded actions of the state.
// Ties break on the lexicographically smallest action so that replays
// are deterministic.
func (q *QTable) Max(state string, def float64) (string, float64) {
	if _, ok := q.Entries[state]; !ok {
		q.Entries[state] = make(map[string]float64)
		return "", def
	}
	maxAction := ""
	maxVal := math.Inf(-1)
	for _, a := range sortedActions(q.Entries[state]) {
		if val := q.Entries[state][a]; val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	if maxAction == "" {
		return "", def
	}
	return maxAction, maxVal
}

// MaxAmong restricts the max to the given actions, filling in the
// default value for actions not seen before
func (q *QTable) MaxAmong(state string, actions []string, def float64) (string, float64) {
	if _, ok := q.Entries[state]; !ok {
		q.Entries[state] = make(map[string]float64)
	}
	sorted := make([]string, len(actions))
	copy(sorted, actions)
	sort.Strings(sorted)

	maxAction := ""
	maxVal := math.Inf(-1)
	for _, a := range sorted {
		if _, ok := q.Entries[state][a]; !ok {
			q.Entries[state][a] = def
		}
		if val := q.Entries[state][a]; val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	return maxAction, maxVal
}

func sortedActions(values map[string]float64) []string {
	actions := make([]string, 0, len(values))
	for a := range values {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	return actions
}
