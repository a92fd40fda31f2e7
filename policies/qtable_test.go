package policies

import (
	"encoding/json"
	"testing"
)

func TestQTableGetSet(t *testing.T) {
	q := NewQTable()
	if v := q.Get("s", "a", 0.5); v != 0.5 {
		t.Errorf("expected default 0.5, got %f", v)
	}
	q.Set("s", "a", 2)
	if v := q.Get("s", "a", 0.5); v != 2 {
		t.Errorf("expected 2 after set, got %f", v)
	}
	if !q.HasState("s") {
		t.Errorf("expected state s to be recorded")
	}
	if q.NumStates() != 1 {
		t.Errorf("expected 1 state, got %d", q.NumStates())
	}
}

func TestQTableMax(t *testing.T) {
	q := NewQTable()
	q.Set("s", "left", 1)
	q.Set("s", "right", 3)
	q.Set("s", "up", 2)
	action, val := q.Max("s", 0)
	if action != "right" || val != 3 {
		t.Errorf("expected (right, 3), got (%s, %f)", action, val)
	}
	if action, val := q.Max("unknown", -1); action != "" || val != -1 {
		t.Errorf("expected default for unknown state, got (%s, %f)", action, val)
	}
}

func TestQTableMaxTieBreak(t *testing.T) {
	q := NewQTable()
	q.Set("s", "b", 1)
	q.Set("s", "a", 1)
	q.Set("s", "c", 1)
	for i := 0; i < 20; i++ {
		if action, _ := q.Max("s", 0); action != "a" {
			t.Fatalf("tie break is not deterministic, got %s", action)
		}
	}
}

func TestQTableMaxAmong(t *testing.T) {
	q := NewQTable()
	q.Set("s", "a", 5)
	q.Set("s", "b", 1)
	action, val := q.MaxAmong("s", []string{"b", "c"}, 0)
	if action != "b" || val != 1 {
		t.Errorf("expected (b, 1) among {b, c}, got (%s, %f)", action, val)
	}
	// unseen actions get the default
	if v := q.Get("s", "c", -100); v != 0 {
		t.Errorf("expected c to be filled with default 0, got %f", v)
	}
}

func TestQTableUnmarshalWithoutEntries(t *testing.T) {
	q := &QTable{}
	if err := json.Unmarshal([]byte(`{}`), q); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	// the restored table must be usable right away
	if action, val := q.MaxAmong("s", []string{"a", "b"}, 0); action != "a" || val != 0 {
		t.Errorf("expected (a, 0) from an empty table, got (%s, %f)", action, val)
	}
	q.Set("s", "b", 1)
	if v := q.Get("s", "b", 0); v != 1 {
		t.Errorf("expected 1 after set, got %f", v)
	}
}

func TestQTableJSONRoundtrip(t *testing.T) {
	q := NewQTable()
	q.Set("s1", "a", 0.25)
	q.Set("s2", "b", -1)

	bs, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	restored := NewQTable()
	if err := json.Unmarshal(bs, restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if v := restored.Get("s1", "a", 0); v != 0.25 {
		t.Errorf("expected 0.25 after roundtrip, got %f", v)
	}
	if v := restored.Get("s2", "b", 0); v != -1 {
		t.Errorf("expected -1 after roundtrip, got %f", v)
	}
}
