package policies

import (
	"strconv"
	"testing"

	"github.com/zeu5/rl-replay/rl"
	"golang.org/x/exp/rand"
)

type cell int

func (c cell) Hash() string {
	return strconv.Itoa(int(c))
}

func (c cell) Actions() []rl.Action {
	return []rl.Action{move("left"), move("right")}
}

type move string

func (m move) Hash() string {
	return string(m)
}

func TestGreedyPicksBest(t *testing.T) {
	q := NewQTable()
	q.Set("0", "left", -1)
	q.Set("0", "right", 1)
	policy := NewGreedyPolicy(q)

	rng := rand.New(rand.NewSource(1))
	state := cell(0)
	for i := 0; i < 10; i++ {
		action, ok := policy.NextAction(i, state, state.Actions(), rng)
		if !ok {
			t.Fatalf("greedy policy returned no action")
		}
		if action.Hash() != "right" {
			t.Errorf("expected right, got %s", action.Hash())
		}
	}
}

func TestEpsilonGreedyUpdate(t *testing.T) {
	policy := NewEpsilonGreedyPolicy(0.5, 0.9, 0.1)
	state := cell(0)
	next := cell(1)

	policy.Update(0, state, move("right"), 1, next, true)
	got := policy.QTable().Get("0", "right", 0)
	if got != 0.5 {
		t.Errorf("expected q value 0.5 after one terminal update, got %f", got)
	}
	// second update moves further towards the reward
	policy.Update(1, state, move("right"), 1, next, true)
	got = policy.QTable().Get("0", "right", 0)
	if got != 0.75 {
		t.Errorf("expected q value 0.75 after two terminal updates, got %f", got)
	}
}

func TestEpsilonGreedyBootstrapsFromNextState(t *testing.T) {
	policy := NewEpsilonGreedyPolicy(1.0, 0.5, 0)
	policy.QTable().Set("1", "right", 2)

	policy.Update(0, cell(0), move("right"), 0, cell(1), false)
	got := policy.QTable().Get("0", "right", 0)
	if got != 1 {
		t.Errorf("expected bootstrapped q value 1, got %f", got)
	}
}

func TestEpsilonGreedyReset(t *testing.T) {
	policy := NewEpsilonGreedyPolicy(0.5, 0.9, 0.1)
	policy.Update(0, cell(0), move("right"), 1, cell(1), true)
	policy.Reset()
	if policy.QTable().NumStates() != 0 {
		t.Errorf("expected empty q-table after reset")
	}
}

func TestSoftmaxDeterministicGivenRng(t *testing.T) {
	q := NewQTable()
	q.Set("0", "left", 1)
	q.Set("0", "right", 2)
	policy := NewSoftmaxPolicy(q, 1)
	state := cell(0)

	first := make([]string, 0)
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		a, ok := policy.NextAction(i, state, state.Actions(), rng)
		if !ok {
			t.Fatalf("softmax returned no action")
		}
		first = append(first, a.Hash())
	}

	rng = rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		a, _ := policy.NextAction(i, state, state.Actions(), rng)
		if a.Hash() != first[i] {
			t.Fatalf("softmax with equal rng seeds diverged at %d", i)
		}
	}
}

func TestRandomPolicyUsesRng(t *testing.T) {
	policy := NewRandomPolicy()
	state := cell(0)
	counts := map[string]int{}
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		a, ok := policy.NextAction(i, state, state.Actions(), rng)
		if !ok {
			t.Fatalf("random policy returned no action")
		}
		counts[a.Hash()]++
	}
	if counts["left"] == 0 || counts["right"] == 0 {
		t.Errorf("expected both actions to be sampled, got %v", counts)
	}
}
