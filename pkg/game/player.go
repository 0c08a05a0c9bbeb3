// Package game implements a quarter-sized backgammon race: six points,
// eight checkers per side, both sides starting on the bar. It provides
// the board model, the dice accounting with tentative consumption and
// rollback, and single-die legal move generation.
package game

import "fmt"

// Player identifies one of the two sides. NoPlayer marks an unowned point.
type Player int

const (
	NoPlayer Player = -1
	PlayerA  Player = 0
	PlayerB  Player = 1
)

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	}
	return "none"
}

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// playerConfig carries the per-side movement geometry. The two sides are
// mirror images: they differ only in travel direction and in how a die
// value maps onto an entry point.
type playerConfig struct {
	direction int // +1 toward point 6, -1 toward point 1
}

var configs = [2]playerConfig{
	PlayerA: {direction: +1},
	PlayerB: {direction: -1},
}

// Direction returns +1 for PlayerA (exits past point 6) and -1 for
// PlayerB (exits below point 1).
func (p Player) Direction() int {
	return configs[p].direction
}

// EntryPoint returns the point a checker enters on from the bar for the
// given die value.
func (p Player) EntryPoint(die int) int {
	if p == PlayerA {
		return die
	}
	return NumPoints + 1 - die
}

// EntryDie is the inverse of EntryPoint: the die value required to enter
// on the given point.
func (p Player) EntryDie(target int) int {
	if p == PlayerA {
		return target
	}
	return NumPoints + 1 - target
}

// ExitDistance returns the exact die value that bears a checker off from
// the given point.
func (p Player) ExitDistance(point int) int {
	if p == PlayerA {
		return NumPoints + 1 - point
	}
	return point
}

func checkPlayer(p Player) error {
	if p != PlayerA && p != PlayerB {
		return invariantf("invalid player %d", int(p))
	}
	return nil
}

// ParsePlayer converts a side name ("A" or "B") to a Player.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "A", "a":
		return PlayerA, nil
	case "B", "b":
		return PlayerB, nil
	}
	return NoPlayer, fmt.Errorf("unknown player %q", s)
}
