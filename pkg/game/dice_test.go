package game

import (
	"reflect"
	"testing"
)

// scriptRoller returns a fixed sequence of die values, cycling.
type scriptRoller struct {
	values []int
	i      int
}

func (r *scriptRoller) RollDie() int {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

func TestRollReplacesState(t *testing.T) {
	d := NewDice(&scriptRoller{values: []int{3, 5}})

	if !d.AwaitingRoll {
		t.Fatal("new dice should be awaiting a roll")
	}

	rolled, err := d.Roll()
	if err != nil {
		t.Fatalf("Roll error: %v", err)
	}
	if !reflect.DeepEqual(rolled, []int{3, 5}) {
		t.Errorf("rolled = %v, want [3 5]", rolled)
	}
	if !reflect.DeepEqual(d.Pending, []int{3, 5}) {
		t.Errorf("Pending = %v, want [3 5]", d.Pending)
	}
	if !reflect.DeepEqual(d.Rolled, []int{3, 5}) {
		t.Errorf("Rolled = %v, want [3 5]", d.Rolled)
	}
	if len(d.Completed) != 0 {
		t.Errorf("Completed = %v, want empty", d.Completed)
	}
	if d.AwaitingRoll {
		t.Error("AwaitingRoll should be cleared after a roll")
	}
}

func TestRollDoublesExpandToFour(t *testing.T) {
	d := NewDice(&scriptRoller{values: []int{4, 4}})

	rolled, err := d.Roll()
	if err != nil {
		t.Fatalf("Roll error: %v", err)
	}
	want := []int{4, 4, 4, 4}
	if !reflect.DeepEqual(rolled, want) {
		t.Errorf("rolled = %v, want %v", rolled, want)
	}
	if !reflect.DeepEqual(d.Pending, want) {
		t.Errorf("Pending = %v, want %v", d.Pending, want)
	}
	if !reflect.DeepEqual(d.Rolled, want) {
		t.Errorf("Rolled = %v, want %v", d.Rolled, want)
	}
}

func TestRollOutOfRangeIsFatal(t *testing.T) {
	d := NewDice(&scriptRoller{values: []int{7, 2}})

	if _, err := d.Roll(); !IsInvariant(err) {
		t.Errorf("Roll with broken source: err = %v, want InvariantError", err)
	}
}

func TestConsumeAbsentValue(t *testing.T) {
	d := NewDice(&scriptRoller{values: []int{3, 5}})
	d.Roll()

	before := d.Snapshot()
	if _, err := d.Consume(6); !IsValidation(err) {
		t.Errorf("Consume(6): err = %v, want ValidationError", err)
	}
	if !reflect.DeepEqual(d.Snapshot(), before) {
		t.Error("failed Consume mutated dice state")
	}
}

func TestConsumeReturnRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		roll    []int
		consume int
	}{
		{name: "first of two", roll: []int{3, 5}, consume: 3},
		{name: "second of two", roll: []int{3, 5}, consume: 5},
		{name: "doubles", roll: []int{2, 2}, consume: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDice(&scriptRoller{values: tt.roll})
			d.Roll()
			before := d.Snapshot()

			tok, err := d.Consume(tt.consume)
			if err != nil {
				t.Fatalf("Consume error: %v", err)
			}
			if err := d.Return(tok); err != nil {
				t.Fatalf("Return error: %v", err)
			}
			if !reflect.DeepEqual(d.Snapshot(), before) {
				t.Errorf("round trip changed state: got %+v, want %+v", d.Snapshot(), before)
			}
		})
	}
}

func TestReturnReinsertsAtOriginalIndex(t *testing.T) {
	d := NewDice(&scriptRoller{values: []int{6, 6}})
	d.Roll() // pending [6 6 6 6]
	d.Pending = []int{2, 6, 4}

	tok, err := d.Consume(6)
	if err != nil {
		t.Fatalf("Consume error: %v", err)
	}
	if tok.Index != 1 {
		t.Errorf("token index = %d, want 1", tok.Index)
	}
	if err := d.Return(tok); err != nil {
		t.Fatalf("Return error: %v", err)
	}
	if !reflect.DeepEqual(d.Pending, []int{2, 6, 4}) {
		t.Errorf("Pending = %v, want [2 6 4]", d.Pending)
	}
}

func TestReturnClampsIndex(t *testing.T) {
	d := NewDice(&scriptRoller{values: []int{3, 5}})
	d.Roll()

	tok5, _ := d.Consume(5) // tok5.Index == 1
	d.Consume(3)            // pending now empty

	if err := d.Return(tok5); err != nil {
		t.Fatalf("Return error: %v", err)
	}
	if !reflect.DeepEqual(d.Pending, []int{5}) {
		t.Errorf("Pending = %v, want [5]", d.Pending)
	}
	if !reflect.DeepEqual(d.Completed, []int{3}) {
		t.Errorf("Completed = %v, want [3]", d.Completed)
	}
}

func TestReturnUnconsumedValueIsInvariant(t *testing.T) {
	d := NewDice(&scriptRoller{values: []int{3, 5}})
	d.Roll()

	if err := d.Return(ConsumeToken{Value: 2, Index: 0}); !IsInvariant(err) {
		t.Errorf("Return of unconsumed value: err = %v, want InvariantError", err)
	}
}

func TestSnapshotRestoreIdempotent(t *testing.T) {
	d := NewDice(&scriptRoller{values: []int{3, 5}})
	d.Roll()
	d.Consume(3)

	before := d.Snapshot()
	d.Restore(d.Snapshot())
	if !reflect.DeepEqual(d.Snapshot(), before) {
		t.Error("snapshot-then-restore changed dice state")
	}
}

func TestSnapshotIsValueCopy(t *testing.T) {
	d := NewDice(&scriptRoller{values: []int{3, 5}})
	d.Roll()

	snap := d.Snapshot()
	d.Consume(3)
	d.Consume(5)

	if !reflect.DeepEqual(snap.Pending, []int{3, 5}) {
		t.Errorf("snapshot aliased live state: Pending = %v", snap.Pending)
	}

	d.Restore(snap)
	if !reflect.DeepEqual(d.Pending, []int{3, 5}) {
		t.Errorf("Pending after restore = %v, want [3 5]", d.Pending)
	}
	if len(d.Completed) != 0 {
		t.Errorf("Completed after restore = %v, want empty", d.Completed)
	}
}

func TestReset(t *testing.T) {
	d := NewDice(&scriptRoller{values: []int{3, 5}})
	d.Roll()
	d.Consume(3)

	d.Reset()
	if len(d.Pending) != 0 || len(d.Rolled) != 0 || len(d.Completed) != 0 {
		t.Errorf("Reset left values: pending %v rolled %v completed %v",
			d.Pending, d.Rolled, d.Completed)
	}
	if !d.AwaitingRoll {
		t.Error("Reset should set AwaitingRoll")
	}
}
