package trainer

import (
	"context"
	"testing"

	"github.com/zeu5/rl-replay/analysis"
	"github.com/zeu5/rl-replay/gridworld"
	"github.com/zeu5/rl-replay/policies"
	"github.com/zeu5/rl-replay/rl"
)

func smallGrid(t *testing.T) rl.Environment {
	t.Helper()
	env, err := gridworld.NewGridEnvironment(gridworld.Config{
		Height: 4, Width: 4, Rooms: 1,
		Goal: gridworld.Coord{I: 3, J: 3, K: 0},
	})
	if err != nil {
		t.Fatalf("creating environment: %v", err)
	}
	return env
}

func TestTrainingLearnsGrid(t *testing.T) {
	policy := policies.NewEpsilonGreedyPolicy(0.5, 0.95, 0.2)
	returns := analysis.NewReturnsAnalyzer()

	result, err := Run(context.Background(), smallGrid(t), policy, Config{
		Name:      "test",
		Episodes:  300,
		Horizon:   100,
		Seed:      1,
		Analyzers: []analysis.Analyzer{returns},
	})
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}
	if result.Episodes != 300 || len(result.Returns) != 300 {
		t.Fatalf("unexpected result shape: %+v", result)
	}
	if policy.QTable().NumStates() == 0 {
		t.Fatalf("expected a populated q-table after training")
	}

	// the learned greedy policy reaches the goal on the shortest path
	replay, err := rl.Rollout(smallGrid(t), policies.NewGreedyPolicy(policy.QTable()), rl.RolloutConfig{
		Episodes: 1,
		Horizon:  100,
		Seed:     0,
	})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	// the goal is 6 moves away, a learned policy gets there without
	// wandering for long
	if steps := replay.Steps(); steps < 6 || steps > 20 {
		t.Errorf("expected the greedy replay to reach the goal in 6..20 steps, took %d", steps)
	}
	if last := replay.Frames[len(replay.Frames)-1]; last.Hash() != "(3, 3, 0)" {
		t.Errorf("expected the replay to end at the goal, ended at %s", last.Hash())
	}
}

func TestTrainingDeterminism(t *testing.T) {
	run := func() []float64 {
		policy := policies.NewEpsilonGreedyPolicy(0.5, 0.95, 0.2)
		result, err := Run(context.Background(), smallGrid(t), policy, Config{
			Name: "det", Episodes: 50, Horizon: 50, Seed: 9,
		})
		if err != nil {
			t.Fatalf("training failed: %v", err)
		}
		return result.Returns
	}
	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("training runs with equal seeds diverged at episode %d", i)
		}
	}
}

func TestTrainingCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	policy := policies.NewEpsilonGreedyPolicy(0.5, 0.95, 0.2)
	_, err := Run(ctx, smallGrid(t), policy, Config{Name: "c", Episodes: 10, Horizon: 10, Seed: 0})
	if err == nil {
		t.Errorf("expected an error from a cancelled context")
	}
}
