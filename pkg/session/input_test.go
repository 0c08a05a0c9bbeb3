package session

import (
	"reflect"
	"strings"
	"testing"

	"github.com/yourusername/minigammon/pkg/game"
)

func digit(d int) Token { return Token{Kind: TokenDigit, Digit: d} }

var (
	rollTok   = Token{Kind: TokenRoll}
	moveTok   = Token{Kind: TokenMove}
	bearTok   = Token{Kind: TokenBear}
	cancelTok = Token{Kind: TokenCancel}
)

func TestRollFirstRejection(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	in := NewInput(s)

	for _, tok := range []Token{digit(3), moveTok, bearTok, cancelTok} {
		err := in.Feed(tok)
		if !game.IsValidation(err) || !strings.Contains(err.Error(), "roll") {
			t.Errorf("Feed(%v) before roll: err = %v, want roll-first signal", tok.Kind, err)
		}
		if in.State() != AwaitRoll {
			t.Errorf("state = %v, want AwaitRoll unchanged", in.State())
		}
	}
}

func TestRollTokenRollsDice(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	in := NewInput(s)

	if err := in.Feed(rollTok); err != nil {
		t.Fatalf("Feed roll error: %v", err)
	}
	if in.State() != AwaitCommand {
		t.Errorf("state = %v, want AwaitCommand", in.State())
	}
	if s.AwaitingRoll() {
		t.Error("session should have rolled")
	}
}

func TestDigitEntersWithBarCheckers(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	in := NewInput(s)

	in.Feed(rollTok)
	if err := in.Feed(digit(3)); err != nil {
		t.Fatalf("Feed digit error: %v", err)
	}
	if s.board.Bar[game.PlayerA] != 7 {
		t.Errorf("bar = %d, want 7", s.board.Bar[game.PlayerA])
	}
	if in.State() != AwaitCommand {
		t.Errorf("state = %v, want AwaitCommand", in.State())
	}
}

func TestDigitWithoutBarCheckersGuides(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	s.board.Bar[game.PlayerA] = 0
	s.board.Points[1] = game.Point{Owner: game.PlayerA, Count: 8}
	in := NewInput(s)

	in.Feed(rollTok)
	err := in.Feed(digit(3))
	if !game.IsValidation(err) || !strings.Contains(err.Error(), "move or bear") {
		t.Errorf("err = %v, want guidance toward move/bear commands", err)
	}
	if in.State() != AwaitCommand {
		t.Errorf("state = %v, want AwaitCommand unchanged", in.State())
	}
}

func TestMoveAssembly(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	s.board.Bar[game.PlayerA] = 0
	s.board.Points[1] = game.Point{Owner: game.PlayerA, Count: 8}
	in := NewInput(s)

	in.Feed(rollTok)
	if err := in.Feed(moveTok); err != nil {
		t.Fatalf("Feed move error: %v", err)
	}
	if in.State() != AwaitMoveOrigin {
		t.Fatalf("state = %v, want AwaitMoveOrigin", in.State())
	}
	if err := in.Feed(digit(1)); err != nil {
		t.Fatalf("Feed origin error: %v", err)
	}
	if in.State() != AwaitMoveTarget {
		t.Fatalf("state = %v, want AwaitMoveTarget", in.State())
	}
	if err := in.Feed(digit(4)); err != nil {
		t.Fatalf("Feed target error: %v", err)
	}
	if pt := s.board.Point(4); pt.Owner != game.PlayerA || pt.Count != 1 {
		t.Errorf("point 4 = %+v, want A x1", pt)
	}
	if in.State() != AwaitCommand {
		t.Errorf("state = %v, want AwaitCommand", in.State())
	}
}

func TestBearAssembly(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	s.board.Bar[game.PlayerA] = 0
	s.board.Points[4] = game.Point{Owner: game.PlayerA, Count: 2} // exit distance 3
	s.board.Off[game.PlayerA] = 6
	in := NewInput(s)

	in.Feed(rollTok)
	if err := in.Feed(bearTok); err != nil {
		t.Fatalf("Feed bear error: %v", err)
	}
	if in.State() != AwaitBearPoint {
		t.Fatalf("state = %v, want AwaitBearPoint", in.State())
	}
	if err := in.Feed(digit(4)); err != nil {
		t.Fatalf("Feed point error: %v", err)
	}
	if s.board.Off[game.PlayerA] != 7 {
		t.Errorf("off = %d, want 7", s.board.Off[game.PlayerA])
	}
	if in.State() != AwaitCommand {
		t.Errorf("state = %v, want AwaitCommand", in.State())
	}
}

func TestRejectedCommandKeepsStateAndDice(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	s.board.Bar[game.PlayerA] = 0
	s.board.Points[1] = game.Point{Owner: game.PlayerA, Count: 8}
	s.board.Points[4] = game.Point{Owner: game.PlayerB, Count: 2}
	s.board.Bar[game.PlayerB] -= 2
	in := NewInput(s)

	in.Feed(rollTok)
	diceBefore := s.dice.Snapshot()

	in.Feed(moveTok)
	in.Feed(digit(1))
	err := in.Feed(digit(4)) // blocked target
	if !game.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !reflect.DeepEqual(s.dice.Snapshot(), diceBefore) {
		t.Error("rejected command left dice consumed")
	}
	if in.State() != AwaitCommand {
		t.Errorf("state = %v, want AwaitCommand after rejection", in.State())
	}
}

func TestRollTokenMidTurnUndoes(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	in := NewInput(s)

	in.Feed(rollTok)
	in.Feed(digit(3)) // enter, consuming the 3

	if err := in.Feed(rollTok); err != nil {
		t.Fatalf("Feed roll-as-undo error: %v", err)
	}
	if s.board.Bar[game.PlayerA] != game.CheckersPerPlayer {
		t.Errorf("bar = %d, want %d after undo", s.board.Bar[game.PlayerA], game.CheckersPerPlayer)
	}
	if !reflect.DeepEqual(s.PendingDice(), []int{3, 5}) {
		t.Errorf("pending = %v, want [3 5] after undo", s.PendingDice())
	}
	if in.State() != AwaitCommand {
		t.Errorf("state = %v, want AwaitCommand", in.State())
	}
}

func TestCancelForcesPass(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	in := NewInput(s)

	in.Feed(rollTok)
	if err := in.Feed(cancelTok); err != nil {
		t.Fatalf("Feed cancel error: %v", err)
	}
	if s.CurrentPlayer() != game.PlayerB || !s.AwaitingRoll() {
		t.Error("cancel should end the turn")
	}
	if in.State() != AwaitRoll {
		t.Errorf("state = %v, want AwaitRoll after the turn boundary", in.State())
	}
}

func TestCancelMidAssemblyForcesPass(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	s.board.Bar[game.PlayerA] = 0
	s.board.Points[1] = game.Point{Owner: game.PlayerA, Count: 8}
	in := NewInput(s)

	in.Feed(rollTok)
	in.Feed(moveTok)
	in.Feed(digit(1))
	if err := in.Feed(cancelTok); err != nil {
		t.Fatalf("Feed cancel error: %v", err)
	}
	if s.CurrentPlayer() != game.PlayerB {
		t.Error("cancel mid-assembly should still end the turn")
	}
	if in.State() != AwaitRoll {
		t.Errorf("state = %v, want AwaitRoll", in.State())
	}
}

func TestMachineResyncsAfterTurnEndingMove(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	// Only the 3 plays; the 5 will be a forced pass after entry.
	s.board.Points[5] = game.Point{Owner: game.PlayerB, Count: 2}
	s.board.Bar[game.PlayerB] -= 2
	in := NewInput(s)

	in.Feed(rollTok)
	if err := in.Feed(digit(3)); err != nil {
		t.Fatalf("Feed digit error: %v", err)
	}
	if in.State() != AwaitRoll {
		t.Errorf("state = %v, want AwaitRoll for the next player", in.State())
	}
	if s.CurrentPlayer() != game.PlayerB {
		t.Errorf("current = %v, want B", s.CurrentPlayer())
	}
}

func TestDigitOutOfRange(t *testing.T) {
	s, _ := testSession(t, 3, 5)
	in := NewInput(s)
	in.Feed(rollTok)

	if err := in.Feed(digit(7)); !game.IsValidation(err) {
		t.Errorf("digit 7: err = %v, want ValidationError", err)
	}
	if err := in.Feed(digit(0)); !game.IsValidation(err) {
		t.Errorf("digit 0: err = %v, want ValidationError", err)
	}
}
