package analysis

import (
	"github.com/zeu5/rl-replay/rl"
)

// Generic dataset that contains information after processing traces
type DataSet interface{}

// Analyzer compresses episode traces into a DataSet
type Analyzer interface {
	Analyze(episode int, trace *rl.Trace)
	DataSet() DataSet
	Reset()
}

// Comparator differentiates between datasets with associated names,
// typically by plotting them side by side
type Comparator func(names []string, datasets []DataSet)

func NoopComparator() Comparator {
	return func([]string, []DataSet) {}
}

// ReturnsAnalyzer collects the return of each episode
type ReturnsAnalyzer struct {
	returns []float64
}

var _ Analyzer = &ReturnsAnalyzer{}

func NewReturnsAnalyzer() *ReturnsAnalyzer {
	return &ReturnsAnalyzer{
		returns: make([]float64, 0),
	}
}

func (r *ReturnsAnalyzer) Analyze(episode int, trace *rl.Trace) {
	r.returns = append(r.returns, trace.Return())
}

func (r *ReturnsAnalyzer) DataSet() DataSet {
	out := make([]float64, len(r.returns))
	copy(out, r.returns)
	return out
}

func (r *ReturnsAnalyzer) Reset() {
	r.returns = make([]float64, 0)
}

// CoverageAnalyzer counts the unique states visited so far after each
// episode
type CoverageAnalyzer struct {
	uniqueStates map[string]bool
	counts       []int
}

var _ Analyzer = &CoverageAnalyzer{}

func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{
		uniqueStates: make(map[string]bool),
		counts:       make([]int, 0),
	}
}

func (c *CoverageAnalyzer) Analyze(episode int, trace *rl.Trace) {
	for i := 0; i < trace.Len(); i++ {
		state, _, nextState, ok := trace.Get(i)
		if !ok {
			continue
		}
		c.uniqueStates[state.Hash()] = true
		c.uniqueStates[nextState.Hash()] = true
	}
	c.counts = append(c.counts, len(c.uniqueStates))
}

func (c *CoverageAnalyzer) DataSet() DataSet {
	out := make([]int, len(c.counts))
	copy(out, c.counts)
	return out
}

func (c *CoverageAnalyzer) Reset() {
	c.uniqueStates = make(map[string]bool)
	c.counts = make([]int, 0)
}
