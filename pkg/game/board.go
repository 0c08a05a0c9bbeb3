package game

const (
	// NumPoints is the number of board points per side.
	NumPoints = 6

	// CheckersPerPlayer is the per-side checker count. The conservation
	// invariant bar + owned points + borne off == CheckersPerPlayer holds
	// for every reachable board.
	CheckersPerPlayer = 8
)

// Point is one board point. Owner is NoPlayer exactly when Count is zero.
// A point with Count >= 2 is made: the opponent may neither land on nor
// enter it.
type Point struct {
	Owner Player
	Count int
}

// Board holds the six points plus per-player bar and borne-off counts.
// Points are 1-based; index 0 is unused.
type Board struct {
	Points [NumPoints + 1]Point
	Bar    [2]int
	Off    [2]int
}

// NewBoard returns the initial position: all checkers on their bars.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset restores the initial position in place.
func (b *Board) Reset() {
	for i := range b.Points {
		b.Points[i] = Point{Owner: NoPlayer, Count: 0}
	}
	b.Bar[PlayerA] = CheckersPerPlayer
	b.Bar[PlayerB] = CheckersPerPlayer
	b.Off[PlayerA] = 0
	b.Off[PlayerB] = 0
}

// Clone returns a deep value copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Point returns the point with the given 1-based number.
func (b *Board) Point(n int) Point {
	return b.Points[n]
}

// CheckerCount returns bar + owned points + borne off for one side.
func (b *Board) CheckerCount(p Player) int {
	total := b.Bar[p] + b.Off[p]
	for n := 1; n <= NumPoints; n++ {
		if b.Points[n].Owner == p {
			total += b.Points[n].Count
		}
	}
	return total
}

// IsPointOpen reports whether p may land on target: the point is unowned,
// already owned by p, or holds a single opposing checker (a blot).
func (b *Board) IsPointOpen(p Player, target int) bool {
	pt := b.Points[target]
	return pt.Owner == NoPlayer || pt.Owner == p || pt.Count == 1
}

func checkPoint(n int) error {
	if n < 1 || n > NumPoints {
		return validationf("point %d is out of range", n)
	}
	return nil
}

// land places one of p's checkers on target, hitting an opposing blot if
// one is there. Callers must have verified the point is open.
func (b *Board) land(target int, p Player) {
	pt := &b.Points[target]
	if pt.Count == 1 && pt.Owner != p {
		b.Bar[pt.Owner]++
		pt.Owner = NoPlayer
		pt.Count = 0
	}
	pt.Owner = p
	pt.Count++
}

// lift removes one of p's checkers from origin, clearing ownership when
// the point empties.
func (b *Board) lift(origin int) {
	pt := &b.Points[origin]
	pt.Count--
	if pt.Count == 0 {
		pt.Owner = NoPlayer
	}
}

// EnterFromBar moves one of p's bar checkers onto target. The whole
// operation validates before mutating: on error the board is unchanged.
func (b *Board) EnterFromBar(target int, p Player) error {
	if err := checkPlayer(p); err != nil {
		return err
	}
	if err := checkPoint(target); err != nil {
		return err
	}
	if b.Bar[p] == 0 {
		return validationf("player %s has no checkers on the bar", p)
	}
	if !b.IsPointOpen(p, target) {
		return validationf("point %d is blocked", target)
	}
	b.Bar[p]--
	b.land(target, p)
	return nil
}

// MoveChecker moves one of p's checkers from origin to target.
func (b *Board) MoveChecker(origin, target int, p Player) error {
	if err := checkPlayer(p); err != nil {
		return err
	}
	if err := checkPoint(origin); err != nil {
		return err
	}
	if err := checkPoint(target); err != nil {
		return err
	}
	pt := b.Points[origin]
	if pt.Owner != p || pt.Count == 0 {
		return validationf("player %s has no checker on point %d", p, origin)
	}
	if !b.IsPointOpen(p, target) {
		return validationf("point %d is blocked", target)
	}
	b.lift(origin)
	b.land(target, p)
	return nil
}

// BearOff permanently removes one of p's checkers from point.
func (b *Board) BearOff(point int, p Player) error {
	if err := checkPlayer(p); err != nil {
		return err
	}
	if err := checkPoint(point); err != nil {
		return err
	}
	pt := b.Points[point]
	if pt.Owner != p || pt.Count == 0 {
		return validationf("player %s has no checker on point %d", p, point)
	}
	b.lift(point)
	b.Off[p]++
	return nil
}
