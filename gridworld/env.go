package gridworld

import (
	"fmt"

	"github.com/zeu5/rl-replay/rl"
	"golang.org/x/exp/rand"
)

// Config of the grid world: a sequence of Rooms rooms of Height x
// Width cells connected by doors. The episode ends when the agent
// reaches the goal cell.
type Config struct {
	Height int
	Width  int
	Rooms  int
	Doors  []Door
	Goal   Coord
}

func DefaultConfig() Config {
	return Config{
		Height: 10,
		Width:  10,
		Rooms:  2,
		Doors: []Door{
			{From: Coord{I: 9, J: 9, K: 0}, To: Coord{I: 0, J: 0, K: 1}},
		},
		Goal: Coord{I: 9, J: 9, K: 1},
	}
}

// Coord addresses a cell: row I, column J, room K
type Coord struct {
	I int `json:"i"`
	J int `json:"j"`
	K int `json:"k"`
}

func (c Coord) Eq(other Coord) bool {
	return c.I == other.I && c.J == other.J && c.K == other.K
}

// Door teleports the agent between rooms when it takes the Next
// action on the From cell
type Door struct {
	From Coord
	To   Coord
}

type GridEnvironment struct {
	layout *layout
	curPos *Position
}

// layout is shared read-only by every Position handed out
type layout struct {
	height int
	width  int
	rooms  int
	doors  []Door
	goal   Coord
}

var _ rl.Environment = &GridEnvironment{}

func NewGridEnvironment(config Config) (*GridEnvironment, error) {
	if config.Height <= 0 || config.Width <= 0 || config.Rooms <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%dx%d", config.Height, config.Width, config.Rooms)
	}
	if !inBounds(config.Goal, config) {
		return nil, fmt.Errorf("goal %v outside the grid", config.Goal)
	}
	for _, d := range config.Doors {
		if !inBounds(d.From, config) || !inBounds(d.To, config) {
			return nil, fmt.Errorf("door %v outside the grid", d)
		}
	}
	l := &layout{
		height: config.Height,
		width:  config.Width,
		rooms:  config.Rooms,
		doors:  config.Doors,
		goal:   config.Goal,
	}
	return &GridEnvironment{layout: l}, nil
}

func inBounds(c Coord, config Config) bool {
	return c.I >= 0 && c.I < config.Height &&
		c.J >= 0 && c.J < config.Width &&
		c.K >= 0 && c.K < config.Rooms
}

func (g *GridEnvironment) Reset(rng *rand.Rand) rl.State {
	g.curPos = &Position{I: 0, J: 0, K: 0, layout: g.layout}
	return g.curPos
}

// Step moves the agent. Transitions are deterministic, the rng is
// part of the Environment contract and unused here. Each step costs
// -1, reaching the goal yields 0 and ends the episode.
func (g *GridEnvironment) Step(a rl.Action, rng *rand.Rand) (rl.State, float64, bool, error) {
	movement, ok := a.(*Movement)
	if !ok {
		return nil, 0, false, fmt.Errorf("unknown action %s", a.Hash())
	}
	l := g.layout
	cur := g.curPos
	newPos := &Position{I: cur.I, J: cur.J, K: cur.K, layout: l}

	switch movement.Direction {
	case "Nothing":
	case "Up":
		newPos.I = min(l.height-1, cur.I+1)
	case "Down":
		newPos.I = max(0, cur.I-1)
	case "Left":
		newPos.J = max(0, cur.J-1)
	case "Right":
		newPos.J = min(l.width-1, cur.J+1)
	case "Next":
		for _, d := range l.doors {
			if d.From.Eq(cur.Coord()) {
				newPos.I = d.To.I
				newPos.J = d.To.J
				newPos.K = d.To.K
				break
			}
		}
	default:
		return nil, 0, false, fmt.Errorf("unknown direction %s", movement.Direction)
	}
	g.curPos = newPos

	if newPos.Coord().Eq(l.goal) {
		return newPos, 0, true, nil
	}
	return newPos, -1, false, nil
}

type Position struct {
	I int
	J int
	K int

	layout *layout
}

var _ rl.State = &Position{}

func (p *Position) Coord() Coord {
	return Coord{I: p.I, J: p.J, K: p.K}
}

func (p *Position) Hash() string {
	return fmt.Sprintf("(%d, %d, %d)", p.I, p.J, p.K)
}

func (p *Position) Actions() []rl.Action {
	if p.layout != nil && p.Coord().Eq(p.layout.goal) {
		return nil
	}
	actions := []rl.Action{NoMovement}
	if p.layout == nil {
		return actions
	}
	if p.I < p.layout.height-1 {
		actions = append(actions, MovementUp)
	}
	if p.I > 0 {
		actions = append(actions, MovementDown)
	}
	if p.J > 0 {
		actions = append(actions, MovementLeft)
	}
	if p.J < p.layout.width-1 {
		actions = append(actions, MovementRight)
	}
	for _, d := range p.layout.doors {
		if d.From.Eq(p.Coord()) {
			actions = append(actions, NextRoomMovement)
			break
		}
	}
	return actions
}

type Movement struct {
	Direction string
}

var _ rl.Action = &Movement{}

func (m *Movement) Hash() string {
	return m.Direction
}

var (
	MovementUp       = &Movement{"Up"}
	MovementDown     = &Movement{"Down"}
	MovementLeft     = &Movement{"Left"}
	MovementRight    = &Movement{"Right"}
	NoMovement       = &Movement{"Nothing"}
	NextRoomMovement = &Movement{"Next"}
)

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
