package cartpole

import (
	"fmt"
	"math"

	"github.com/zeu5/rl-replay/rl"
	"golang.org/x/exp/rand"
)

const (
	gravity        = 9.81
	massCart       = 1.0
	massPole       = 0.1
	poleLength     = 0.5
	totalMass      = massCart + massPole
	poleMassLength = massPole * poleLength
	forceMax       = 10.0
	tau            = 0.02

	xThreshold     = 2.4
	thetaThreshold = 12.0 * math.Pi / 180.0
)

// Config of the cart-pole environment
type Config struct {
	// episode step limit, the environment signals terminal when
	// reached
	MaxSteps int
	// bucket counts used to discretize the observation into a state
	// hash for tabular policies
	PositionBuckets int
	AngleBuckets    int
}

func DefaultConfig() Config {
	return Config{
		MaxSteps:        200,
		PositionBuckets: 8,
		AngleBuckets:    10,
	}
}

type CartPoleEnvironment struct {
	config Config
	state  *State
}

var _ rl.Environment = &CartPoleEnvironment{}

func NewCartPoleEnvironment(config Config) (*CartPoleEnvironment, error) {
	if config.MaxSteps <= 0 {
		return nil, fmt.Errorf("max steps must be positive, got %d", config.MaxSteps)
	}
	if config.PositionBuckets <= 0 || config.AngleBuckets <= 0 {
		return nil, fmt.Errorf("bucket counts must be positive")
	}
	return &CartPoleEnvironment{config: config}, nil
}

func (e *CartPoleEnvironment) Reset(rng *rand.Rand) rl.State {
	e.state = &State{
		X:        rng.Float64()*0.1 - 0.05,
		XDot:     rng.Float64()*0.1 - 0.05,
		Theta:    rng.Float64()*0.1 - 0.05,
		ThetaDot: rng.Float64()*0.1 - 0.05,
		config:   e.config,
	}
	return e.state
}

// Step integrates the cart-pole dynamics for one tick. Reward is 1
// while the pole stays up, the transition is terminal once the cart
// or the pole leave their bounds or the step limit is reached.
func (e *CartPoleEnvironment) Step(a rl.Action, rng *rand.Rand) (rl.State, float64, bool, error) {
	push, ok := a.(*Push)
	if !ok {
		return nil, 0, false, fmt.Errorf("unknown action %s", a.Hash())
	}
	force := forceMax
	if push.Direction == "Left" {
		force = -forceMax
	}

	s := e.state
	cosTheta := math.Cos(s.Theta)
	sinTheta := math.Sin(s.Theta)

	temp := (force + poleMassLength*s.ThetaDot*s.ThetaDot*sinTheta) / totalMass
	thetaAcc := (gravity*sinTheta - cosTheta*temp) / (poleLength * (4.0/3.0 - massPole*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thetaAcc*cosTheta/totalMass

	next := &State{
		X:        s.X + tau*s.XDot,
		XDot:     s.XDot + tau*xAcc,
		Theta:    s.Theta + tau*s.ThetaDot,
		ThetaDot: s.ThetaDot + tau*thetaAcc,
		Steps:    s.Steps + 1,
		config:   e.config,
	}
	e.state = next

	done := next.outOfBounds() || next.Steps >= e.config.MaxSteps
	reward := 1.0
	if done && next.Steps < e.config.MaxSteps {
		reward = 0.0
	}
	return next, reward, done, nil
}

// State of the cart-pole system
type State struct {
	X        float64 `json:"x"`
	XDot     float64 `json:"x_dot"`
	Theta    float64 `json:"theta"`
	ThetaDot float64 `json:"theta_dot"`
	Steps    int     `json:"-"`

	config Config
}

var _ rl.State = &State{}

func (s *State) outOfBounds() bool {
	return s.X < -xThreshold || s.X > xThreshold ||
		s.Theta < -thetaThreshold || s.Theta > thetaThreshold
}

// Hash discretizes the observation into buckets, tabular policies
// index their q-tables with it
func (s *State) Hash() string {
	return fmt.Sprintf("(%d, %d, %d, %d)",
		bucket(s.X, xThreshold, s.config.PositionBuckets),
		bucket(s.XDot, 3.0, s.config.PositionBuckets),
		bucket(s.Theta, thetaThreshold, s.config.AngleBuckets),
		bucket(s.ThetaDot, 2.0, s.config.AngleBuckets),
	)
}

func (s *State) Actions() []rl.Action {
	if s.outOfBounds() || (s.config.MaxSteps > 0 && s.Steps >= s.config.MaxSteps) {
		return nil
	}
	return []rl.Action{PushLeft, PushRight}
}

// bucket maps v in [-bound, bound] to one of n buckets, clamping
// values outside the range
func bucket(v, bound float64, n int) int {
	if v <= -bound {
		return 0
	}
	if v >= bound {
		return n - 1
	}
	b := int((v + bound) / (2 * bound) * float64(n))
	if b >= n {
		b = n - 1
	}
	return b
}

type Push struct {
	Direction string
}

var _ rl.Action = &Push{}

func (p *Push) Hash() string {
	return p.Direction
}

var (
	PushLeft  = &Push{"Left"}
	PushRight = &Push{"Right"}
)
