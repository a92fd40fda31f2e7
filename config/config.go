package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrConfig marks configuration composition failures: unreadable
// files, malformed overrides, overrides naming unknown keys
var ErrConfig = errors.New("invalid configuration")

// Config is the composed run configuration. Composed once, read-only
// afterwards.
type Config struct {
	Run      string       `yaml:"run" mapstructure:"run"`
	Seed     uint64       `yaml:"seed" mapstructure:"seed"`
	Episodes int          `yaml:"episodes" mapstructure:"episodes"`
	Horizon  int          `yaml:"horizon" mapstructure:"horizon"`
	Env      EnvConfig    `yaml:"env" mapstructure:"env"`
	Policy   PolicyConfig `yaml:"policy" mapstructure:"policy"`
	Render   RenderConfig `yaml:"render" mapstructure:"render"`
	Save     string       `yaml:"save" mapstructure:"save"`
	// optional redis address for the run archive, empty disables it
	Redis string `yaml:"redis" mapstructure:"redis"`
}

type EnvConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	// gridworld
	Height int `yaml:"height" mapstructure:"height"`
	Width  int `yaml:"width" mapstructure:"width"`
	Rooms  int `yaml:"rooms" mapstructure:"rooms"`
	// cartpole
	MaxSteps int `yaml:"max_steps" mapstructure:"max_steps"`
}

type PolicyConfig struct {
	Name        string  `yaml:"name" mapstructure:"name"`
	Alpha       float64 `yaml:"alpha" mapstructure:"alpha"`
	Gamma       float64 `yaml:"gamma" mapstructure:"gamma"`
	Epsilon     float64 `yaml:"epsilon" mapstructure:"epsilon"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

type RenderConfig struct {
	PadFrames int    `yaml:"pad_frames" mapstructure:"pad_frames"`
	DelayMS   int    `yaml:"delay_ms" mapstructure:"delay_ms"`
	GIF       string `yaml:"gif" mapstructure:"gif"`
	PNG       string `yaml:"png" mapstructure:"png"`
}

func Default() *Config {
	return &Config{
		Run:      "default",
		Seed:     0,
		Episodes: 10,
		Horizon:  500,
		Env: EnvConfig{
			Name:     "gridworld",
			Height:   10,
			Width:    10,
			Rooms:    2,
			MaxSteps: 200,
		},
		Policy: PolicyConfig{
			Name:        "epsilon-greedy",
			Alpha:       0.3,
			Gamma:       0.99,
			Epsilon:     0.1,
			Temperature: 1.0,
		},
		Render: RenderConfig{
			PadFrames: 10,
			DelayMS:   80,
			GIF:       "rollout.gif",
			PNG:       "rollout.png",
		},
		Save: "results",
	}
}

// Load reads a YAML configuration file on top of the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}
	if err := yaml.Unmarshal(bs, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfig, path, err)
	}
	return cfg, nil
}

// Apply merges key=value overrides with dotted keys, for example
// policy.epsilon=0.05, into the configuration. An override naming a
// key the configuration does not have fails the composition.
func (c *Config) Apply(overrides []string) error {
	if len(overrides) == 0 {
		return nil
	}
	tree := make(map[string]interface{})
	if err := mapstructure.Decode(c, &tree); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}

	for _, override := range overrides {
		key, value, found := strings.Cut(override, "=")
		if !found || key == "" {
			return fmt.Errorf("%w: malformed override %q, want key=value", ErrConfig, override)
		}
		if err := setPath(tree, strings.Split(key, "."), value); err != nil {
			return fmt.Errorf("%w: override %q: %v", ErrConfig, override, err)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := decoder.Decode(tree); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

// setPath walks the decoded tree along the dotted key and replaces
// the leaf, failing on segments the tree does not contain
func setPath(tree map[string]interface{}, path []string, value string) error {
	node := tree
	for i, segment := range path {
		existing, ok := node[segment]
		if !ok {
			return fmt.Errorf("unknown key %q", strings.Join(path[:i+1], "."))
		}
		if i == len(path)-1 {
			node[segment] = value
			return nil
		}
		child, ok := existing.(map[string]interface{})
		if !ok {
			return fmt.Errorf("key %q is not a section", strings.Join(path[:i+1], "."))
		}
		node = child
	}
	return nil
}
