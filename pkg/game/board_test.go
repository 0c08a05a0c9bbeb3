package game

import "testing"

// place sets up a point directly for test positions.
func place(b *Board, p Player, point, count int) {
	b.Points[point] = Point{Owner: p, Count: count}
}

// checkConservation fails the test if either side's checkers don't sum to 8.
func checkConservation(t *testing.T, b *Board) {
	t.Helper()
	for _, p := range []Player{PlayerA, PlayerB} {
		if got := b.CheckerCount(p); got != CheckersPerPlayer {
			t.Errorf("player %s checker count = %d, want %d", p, got, CheckersPerPlayer)
		}
	}
}

func TestNewBoardStartsOnBars(t *testing.T) {
	b := NewBoard()

	for n := 1; n <= NumPoints; n++ {
		pt := b.Point(n)
		if pt.Owner != NoPlayer || pt.Count != 0 {
			t.Errorf("point %d = %+v, want empty", n, pt)
		}
	}
	if b.Bar[PlayerA] != CheckersPerPlayer || b.Bar[PlayerB] != CheckersPerPlayer {
		t.Errorf("bars = %v, want both %d", b.Bar, CheckersPerPlayer)
	}
	checkConservation(t, b)
}

func TestIsPointOpen(t *testing.T) {
	b := NewBoard()
	place(b, PlayerB, 2, 1) // blot
	place(b, PlayerB, 4, 2) // made point
	place(b, PlayerA, 5, 3)
	b.Bar[PlayerB] -= 3
	b.Bar[PlayerA] -= 3

	tests := []struct {
		name   string
		target int
		want   bool
	}{
		{name: "empty point", target: 1, want: true},
		{name: "opposing blot", target: 2, want: true},
		{name: "opposing made point", target: 4, want: false},
		{name: "own point", target: 5, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IsPointOpen(PlayerA, tt.target); got != tt.want {
				t.Errorf("IsPointOpen(A, %d) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

// Fresh board, entry on point 3: bar 8 -> 7, point 3 owned with count 1.
func TestEnterFromBarFreshBoard(t *testing.T) {
	b := NewBoard()

	if err := b.EnterFromBar(3, PlayerA); err != nil {
		t.Fatalf("EnterFromBar error: %v", err)
	}
	if b.Bar[PlayerA] != 7 {
		t.Errorf("bar = %d, want 7", b.Bar[PlayerA])
	}
	if pt := b.Point(3); pt.Owner != PlayerA || pt.Count != 1 {
		t.Errorf("point 3 = %+v, want A x1", pt)
	}
	checkConservation(t, b)
}

// Entering onto an opposing blot hits it to the opponent's bar.
func TestEnterFromBarHitsBlot(t *testing.T) {
	b := NewBoard()
	place(b, PlayerB, 3, 1)
	b.Bar[PlayerB]--

	if err := b.EnterFromBar(3, PlayerA); err != nil {
		t.Fatalf("EnterFromBar error: %v", err)
	}
	if pt := b.Point(3); pt.Owner != PlayerA || pt.Count != 1 {
		t.Errorf("point 3 = %+v, want A x1", pt)
	}
	if b.Bar[PlayerB] != CheckersPerPlayer {
		t.Errorf("B bar = %d, want %d after hit", b.Bar[PlayerB], CheckersPerPlayer)
	}
	checkConservation(t, b)
}

func TestEnterFromBarRejections(t *testing.T) {
	blocked := NewBoard()
	place(blocked, PlayerB, 3, 2)
	blocked.Bar[PlayerB] -= 2

	noBar := NewBoard()
	noBar.Bar[PlayerA] = 0
	noBar.Off[PlayerA] = CheckersPerPlayer

	tests := []struct {
		name   string
		board  *Board
		target int
	}{
		{name: "blocked point", board: blocked, target: 3},
		{name: "empty bar", board: noBar, target: 3},
		{name: "out of range", board: NewBoard(), target: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *tt.board
			err := tt.board.EnterFromBar(tt.target, PlayerA)
			if !IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if *tt.board != before {
				t.Error("rejected entry mutated the board")
			}
		})
	}
}

func TestMoveChecker(t *testing.T) {
	b := NewBoard()
	place(b, PlayerA, 2, 2)
	b.Bar[PlayerA] -= 2

	if err := b.MoveChecker(2, 5, PlayerA); err != nil {
		t.Fatalf("MoveChecker error: %v", err)
	}
	if pt := b.Point(2); pt.Owner != PlayerA || pt.Count != 1 {
		t.Errorf("point 2 = %+v, want A x1", pt)
	}
	if pt := b.Point(5); pt.Owner != PlayerA || pt.Count != 1 {
		t.Errorf("point 5 = %+v, want A x1", pt)
	}
	checkConservation(t, b)
}

func TestMoveCheckerClearsEmptiedPoint(t *testing.T) {
	b := NewBoard()
	place(b, PlayerA, 2, 1)
	b.Bar[PlayerA]--

	if err := b.MoveChecker(2, 4, PlayerA); err != nil {
		t.Fatalf("MoveChecker error: %v", err)
	}
	if pt := b.Point(2); pt.Owner != NoPlayer || pt.Count != 0 {
		t.Errorf("point 2 = %+v, want unowned and empty", pt)
	}
}

func TestMoveCheckerHitsBlot(t *testing.T) {
	b := NewBoard()
	place(b, PlayerA, 2, 1)
	place(b, PlayerB, 5, 1)
	b.Bar[PlayerA]--
	b.Bar[PlayerB]--

	if err := b.MoveChecker(2, 5, PlayerA); err != nil {
		t.Fatalf("MoveChecker error: %v", err)
	}
	if pt := b.Point(5); pt.Owner != PlayerA || pt.Count != 1 {
		t.Errorf("point 5 = %+v, want A x1", pt)
	}
	if b.Bar[PlayerB] != CheckersPerPlayer {
		t.Errorf("B bar = %d, want %d after hit", b.Bar[PlayerB], CheckersPerPlayer)
	}
	checkConservation(t, b)
}

func TestMoveCheckerRejections(t *testing.T) {
	b := NewBoard()
	place(b, PlayerA, 2, 1)
	place(b, PlayerB, 5, 2)
	b.Bar[PlayerA]--
	b.Bar[PlayerB] -= 2

	tests := []struct {
		name           string
		origin, target int
	}{
		{name: "no checker at origin", origin: 3, target: 4},
		{name: "blocked target", origin: 2, target: 5},
		{name: "origin out of range", origin: 0, target: 4},
		{name: "target out of range", origin: 2, target: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *b
			err := b.MoveChecker(tt.origin, tt.target, PlayerA)
			if !IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if *b != before {
				t.Error("rejected move mutated the board")
			}
		})
	}
}

func TestBearOff(t *testing.T) {
	b := NewBoard()
	place(b, PlayerA, 6, 2)
	b.Bar[PlayerA] = 0
	b.Off[PlayerA] = 6

	if err := b.BearOff(6, PlayerA); err != nil {
		t.Fatalf("BearOff error: %v", err)
	}
	if b.Off[PlayerA] != 7 {
		t.Errorf("off = %d, want 7", b.Off[PlayerA])
	}
	if pt := b.Point(6); pt.Count != 1 {
		t.Errorf("point 6 count = %d, want 1", pt.Count)
	}
	checkConservation(t, b)
}

func TestBearOffRejectsWrongOwner(t *testing.T) {
	b := NewBoard()
	place(b, PlayerB, 6, 1)
	b.Bar[PlayerB]--

	before := *b
	if err := b.BearOff(6, PlayerA); !IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if *b != before {
		t.Error("rejected bear-off mutated the board")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	c := b.Clone()

	if err := b.EnterFromBar(3, PlayerA); err != nil {
		t.Fatalf("EnterFromBar error: %v", err)
	}
	if c.Bar[PlayerA] != CheckersPerPlayer {
		t.Error("clone shares state with the original")
	}
	if pt := c.Point(3); pt.Count != 0 {
		t.Error("clone point mutated with the original")
	}
}
