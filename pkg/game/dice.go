package game

import (
	"math/rand"
	"time"
)

// Roller is the source of individual die values. Implementations must
// return values in [1,6]; anything else makes Roll fail fatally.
type Roller interface {
	RollDie() int
}

type randRoller struct {
	rng *rand.Rand
}

func (r randRoller) RollDie() int {
	return r.rng.Intn(6) + 1
}

// NewRoller returns a pseudo-random Roller. A zero seed uses the clock.
func NewRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return randRoller{rng: rand.New(rand.NewSource(seed))}
}

// Dice tracks one turn's die values. Pending holds the still-playable
// values, Rolled the original roll (expanded to four entries on doubles),
// and Completed the values already spent this turn.
type Dice struct {
	Pending      []int
	Rolled       []int
	Completed    []int
	AwaitingRoll bool

	roller Roller
}

// NewDice creates a dice tracker in the awaiting-roll state.
func NewDice(r Roller) *Dice {
	if r == nil {
		r = NewRoller(0)
	}
	return &Dice{AwaitingRoll: true, roller: r}
}

// Roll draws two dice, expanding doubles to four entries. It replaces
// Pending and Rolled, clears Completed, and clears the awaiting-roll
// flag. An out-of-range value from the roller is fatal.
func (d *Dice) Roll() ([]int, error) {
	d1 := d.roller.RollDie()
	d2 := d.roller.RollDie()
	if d1 < 1 || d1 > 6 || d2 < 1 || d2 > 6 {
		return nil, invariantf("random source produced dice %d,%d", d1, d2)
	}

	rolled := []int{d1, d2}
	if d1 == d2 {
		rolled = []int{d1, d1, d1, d1}
	}

	d.Rolled = append([]int(nil), rolled...)
	d.Pending = append([]int(nil), rolled...)
	d.Completed = nil
	d.AwaitingRoll = false
	return append([]int(nil), rolled...), nil
}

// ConsumeToken records enough to undo a Consume exactly.
type ConsumeToken struct {
	Value int
	Index int // position the value held in Pending
}

// Consume removes the first matching occurrence of value from Pending and
// appends it to Completed, returning a rollback token. If the value is
// not pending nothing is mutated.
func (d *Dice) Consume(value int) (ConsumeToken, error) {
	for i, v := range d.Pending {
		if v == value {
			d.Pending = append(d.Pending[:i], d.Pending[i+1:]...)
			d.Completed = append(d.Completed, value)
			return ConsumeToken{Value: value, Index: i}, nil
		}
	}
	return ConsumeToken{}, validationf("die %d is not available", value)
}

// Return is the exact inverse of Consume: the value is reinserted at the
// token's original index (clamped to the current length) and one matching
// entry is removed from Completed.
func (d *Dice) Return(tok ConsumeToken) error {
	found := -1
	for i := len(d.Completed) - 1; i >= 0; i-- {
		if d.Completed[i] == tok.Value {
			found = i
			break
		}
	}
	if found < 0 {
		return invariantf("die %d was never consumed", tok.Value)
	}
	d.Completed = append(d.Completed[:found], d.Completed[found+1:]...)
	if len(d.Completed) == 0 {
		d.Completed = nil
	}

	idx := tok.Index
	if idx > len(d.Pending) {
		idx = len(d.Pending)
	}
	d.Pending = append(d.Pending, 0)
	copy(d.Pending[idx+1:], d.Pending[idx:])
	d.Pending[idx] = tok.Value
	return nil
}

// Reset clears all three collections and sets the awaiting-roll flag.
func (d *Dice) Reset() {
	d.Pending = nil
	d.Rolled = nil
	d.Completed = nil
	d.AwaitingRoll = true
}

// DiceSnapshot is a value copy of the dice state.
type DiceSnapshot struct {
	Pending      []int
	Rolled       []int
	Completed    []int
	AwaitingRoll bool
}

// Snapshot captures the current state by value.
func (d *Dice) Snapshot() DiceSnapshot {
	return DiceSnapshot{
		Pending:      copyInts(d.Pending),
		Rolled:       copyInts(d.Rolled),
		Completed:    copyInts(d.Completed),
		AwaitingRoll: d.AwaitingRoll,
	}
}

// Restore replaces the current state with a snapshot's values.
func (d *Dice) Restore(s DiceSnapshot) {
	d.Pending = copyInts(s.Pending)
	d.Rolled = copyInts(s.Rolled)
	d.Completed = copyInts(s.Completed)
	d.AwaitingRoll = s.AwaitingRoll
}

func copyInts(xs []int) []int {
	if xs == nil {
		return nil
	}
	return append([]int(nil), xs...)
}
