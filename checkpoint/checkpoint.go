package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/zeu5/rl-replay/policies"
)

// ErrDeserialize marks checkpoint files that are missing, corrupted
// or structurally incompatible with the expected schema
var ErrDeserialize = errors.New("cannot load checkpoint")

const SchemaVersion = 1

// TrainingState is the persisted snapshot of a training run
type TrainingState struct {
	Version  int    `json:"version"`
	Env      string `json:"env"`
	Policy   string `json:"policy"`
	Seed     uint64 `json:"seed"`
	Episodes int    `json:"episodes"`

	Hyperparams map[string]float64 `json:"hyperparams,omitempty"`
	SavedAt     time.Time          `json:"saved_at"`

	// Params is the parameter subtree a replay policy is rebuilt from
	Params Params `json:"params"`
}

type Params struct {
	Q *policies.QTable `json:"q"`
}

// Save writes the training state as JSON
func Save(path string, state *TrainingState) error {
	state.Version = SchemaVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now().UTC()
	}
	bs, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling checkpoint: %w", err)
	}
	if err := os.WriteFile(path, bs, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Load reads a training state back. Failures are fatal to the caller,
// there are no retries, and the file handle is released on every
// path.
func Load(path string) (*TrainingState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	defer f.Close()

	state := &TrainingState{}
	if err := json.NewDecoder(f).Decode(state); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrDeserialize, path, err)
	}
	if state.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: schema version %d, want %d", ErrDeserialize, state.Version, SchemaVersion)
	}
	if state.Params.Q == nil {
		return nil, fmt.Errorf("%w: checkpoint has no parameters", ErrDeserialize)
	}
	if state.Env == "" {
		return nil, fmt.Errorf("%w: checkpoint names no environment", ErrDeserialize)
	}
	return state, nil
}
