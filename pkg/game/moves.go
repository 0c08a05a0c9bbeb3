package game

import "fmt"

// MoveKind tags the three checker actions.
type MoveKind int

const (
	MoveEnter MoveKind = iota // bar -> To
	MovePoint                 // From -> To
	MoveBear                  // From -> off
)

// Move is one die's worth of play. From is unused for entries and To is
// unused for bear-offs.
type Move struct {
	Kind MoveKind
	From int
	To   int
}

func (m Move) String() string {
	switch m.Kind {
	case MoveEnter:
		return fmt.Sprintf("bar/%d", m.To)
	case MovePoint:
		return fmt.Sprintf("%d/%d", m.From, m.To)
	case MoveBear:
		return fmt.Sprintf("%d/off", m.From)
	}
	return fmt.Sprintf("move(%d)", int(m.Kind))
}

// FarthestPoint returns the occupied point farthest from p's exit side,
// or 0 when p has no checkers on the board. Occupancy changes with every
// move, so this is recomputed per call and never cached.
func FarthestPoint(b *Board, p Player) int {
	if p.Direction() > 0 {
		for n := 1; n <= NumPoints; n++ {
			if b.Points[n].Owner == p && b.Points[n].Count > 0 {
				return n
			}
		}
		return 0
	}
	for n := NumPoints; n >= 1; n-- {
		if b.Points[n].Owner == p && b.Points[n].Count > 0 {
			return n
		}
	}
	return 0
}

// LegalMoves lists every legal play of a single die for p on b.
//
// Bar checkers must enter before anything else plays, so with a non-empty
// bar the only candidate is the entry point mapped from the die. Otherwise
// each owned point yields a board move when the destination is open, an
// exact bear-off when the die matches the distance to the exit, or an
// overshoot bear-off when the die is larger, no exact bear-off exists
// anywhere for this die, and the point is the single occupied point
// farthest from the exit.
//
// The emitted order is deterministic: entry first, then moves in
// ascending point order.
func LegalMoves(b *Board, p Player, die int) []Move {
	var moves []Move

	if b.Bar[p] > 0 {
		target := p.EntryPoint(die)
		if target >= 1 && target <= NumPoints && b.IsPointOpen(p, target) {
			moves = append(moves, Move{Kind: MoveEnter, To: target})
		}
		return moves
	}

	exact := false
	for n := 1; n <= NumPoints; n++ {
		pt := b.Points[n]
		if pt.Owner == p && pt.Count > 0 && p.ExitDistance(n) == die {
			exact = true
			break
		}
	}
	farthest := FarthestPoint(b, p)

	dir := p.Direction()
	for n := 1; n <= NumPoints; n++ {
		pt := b.Points[n]
		if pt.Owner != p || pt.Count == 0 {
			continue
		}
		dest := n + dir*die
		if dest >= 1 && dest <= NumPoints {
			if b.IsPointOpen(p, dest) {
				moves = append(moves, Move{Kind: MovePoint, From: n, To: dest})
			}
			continue
		}
		// Destination reaches or passes the exit: bear-off candidate.
		dist := p.ExitDistance(n)
		switch {
		case die == dist:
			moves = append(moves, Move{Kind: MoveBear, From: n})
		case die > dist && !exact && n == farthest:
			moves = append(moves, Move{Kind: MoveBear, From: n})
		}
	}
	return moves
}

// Apply dispatches a move to the board's validated mutators. An
// unrecognized move kind is an invariant failure.
func Apply(b *Board, m Move, p Player) error {
	switch m.Kind {
	case MoveEnter:
		return b.EnterFromBar(m.To, p)
	case MovePoint:
		return b.MoveChecker(m.From, m.To, p)
	case MoveBear:
		return b.BearOff(m.From, p)
	}
	return invariantf("unrecognized move kind %d", int(m.Kind))
}
