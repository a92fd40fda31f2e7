package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeu5/rl-replay/rl"
)

// ErrNotFound is returned when the archive has no record of a run
var ErrNotFound = errors.New("run not found")

// RunRecord is the archived metadata of a training or replay run
type RunRecord struct {
	Name       string    `json:"name"`
	Env        string    `json:"env"`
	Policy     string    `json:"policy"`
	Seed       uint64    `json:"seed"`
	Episodes   int       `json:"episodes"`
	Steps      int       `json:"steps"`
	Checkpoint string    `json:"checkpoint,omitempty"`
	GIF        string    `json:"gif,omitempty"`
	PNG        string    `json:"png,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RunStore archives run metadata and episode traces in Redis
type RunStore struct {
	client *redis.Client
	prefix string
}

type Option func(*RunStore)

// WithPrefix sets the key prefix for archived runs
func WithPrefix(prefix string) Option {
	return func(s *RunStore) {
		s.prefix = prefix
	}
}

func New(addr string, opts ...Option) *RunStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return NewFromClient(client, opts...)
}

func NewFromClient(client *redis.Client, opts ...Option) *RunStore {
	s := &RunStore{
		client: client,
		prefix: "rl-replay:run:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RunStore) key(run string) string {
	return s.prefix + run
}

func (s *RunStore) tracesKey(run string) string {
	return s.prefix + run + ":traces"
}

func (s *RunStore) indexKey() string {
	return s.prefix + "index"
}

// SaveRun archives the run record, overwriting a previous run of the
// same name
func (s *RunStore) SaveRun(ctx context.Context, record *RunRecord) error {
	if record.Name == "" {
		return fmt.Errorf("run record needs a name")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	bs, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling run %s: %w", record.Name, err)
	}
	if err := s.client.Set(ctx, s.key(record.Name), bs, 0).Err(); err != nil {
		return fmt.Errorf("storing run %s: %w", record.Name, err)
	}
	if err := s.client.SAdd(ctx, s.indexKey(), record.Name).Err(); err != nil {
		return fmt.Errorf("indexing run %s: %w", record.Name, err)
	}
	return nil
}

func (s *RunStore) GetRun(ctx context.Context, name string) (*RunRecord, error) {
	bs, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching run %s: %w", name, err)
	}
	record := &RunRecord{}
	if err := json.Unmarshal(bs, record); err != nil {
		return nil, fmt.Errorf("parsing run %s: %w", name, err)
	}
	return record, nil
}

func (s *RunStore) ListRuns(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// AppendTrace archives one episode trace of the run
func (s *RunStore) AppendTrace(ctx context.Context, run string, trace *rl.TraceRecord) error {
	bs, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("marshaling trace: %w", err)
	}
	if err := s.client.RPush(ctx, s.tracesKey(run), bs).Err(); err != nil {
		return fmt.Errorf("storing trace for %s: %w", run, err)
	}
	return nil
}

// Traces returns the archived episode traces of the run in order
func (s *RunStore) Traces(ctx context.Context, run string) ([]*rl.TraceRecord, error) {
	lines, err := s.client.LRange(ctx, s.tracesKey(run), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("fetching traces for %s: %w", run, err)
	}
	traces := make([]*rl.TraceRecord, 0, len(lines))
	for _, line := range lines {
		trace := &rl.TraceRecord{}
		if err := json.Unmarshal([]byte(line), trace); err != nil {
			return nil, fmt.Errorf("parsing trace for %s: %w", run, err)
		}
		traces = append(traces, trace)
	}
	return traces, nil
}

func (s *RunStore) Close() error {
	return s.client.Close()
}
