// Package session drives turns over the race engine: rolling, acting,
// forced-pass and win detection, a turn-scoped undo snapshot, the
// automated opponent, and the keyed input state machine.
package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/yourusername/minigammon/pkg/game"
)

// State is the turn controller state.
type State int

const (
	AwaitingRoll State = iota
	HumanActing
	AiActing
	GameOver
)

func (s State) String() string {
	switch s {
	case AwaitingRoll:
		return "awaiting-roll"
	case HumanActing:
		return "human-acting"
	case AiActing:
		return "ai-acting"
	case GameOver:
		return "game-over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// turnSnapshot is the value copy taken at roll time. It lives for exactly
// one turn and supports a single undo-to-roll-time action.
type turnSnapshot struct {
	board *game.Board
	dice  game.DiceSnapshot
}

// Options configures a session.
type Options struct {
	Roller   game.Roller  // dice source; nil for a clock-seeded one
	Seed     int64        // AI move-selection seed; 0 uses the clock
	Announce func(string) // receives forced-pass, AI play, and win reports
}

// Session is the explicitly owned game handle: it holds the board, the
// dice, the acting player, and the current turn's snapshot. All state is
// owned by the single active turn; nothing here is safe for concurrent
// use without external locking.
type Session struct {
	board    *game.Board
	dice     *game.Dice
	current  game.Player
	state    State
	winner   game.Player
	snapshot *turnSnapshot
	rng      *rand.Rand
	announce func(string)
}

// New creates a session with PlayerA to act first and both sides' 8
// checkers on their bars.
func New(opts Options) *Session {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	announce := opts.Announce
	if announce == nil {
		announce = func(string) {}
	}
	return &Session{
		board:    game.NewBoard(),
		dice:     game.NewDice(opts.Roller),
		current:  game.PlayerA,
		state:    AwaitingRoll,
		winner:   game.NoPlayer,
		rng:      rand.New(rand.NewSource(seed)),
		announce: announce,
	}
}

// Restart resets the board, dice, and turn order for a new game.
func (s *Session) Restart() {
	s.board.Reset()
	s.dice.Reset()
	s.current = game.PlayerA
	s.state = AwaitingRoll
	s.winner = game.NoPlayer
	s.snapshot = nil
}

func (s *Session) announcef(format string, args ...interface{}) {
	s.announce(fmt.Sprintf(format, args...))
}

// CurrentPlayer returns the side whose turn it is.
func (s *Session) CurrentPlayer() game.Player { return s.current }

// State returns the turn controller state.
func (s *Session) State() State { return s.state }

// AwaitingRoll reports whether the acting side still has to roll.
func (s *Session) AwaitingRoll() bool { return s.state == AwaitingRoll }

// GameOver reports whether a side has borne off all checkers.
func (s *Session) GameOver() bool { return s.state == GameOver }

// Winner returns the winning side once the game is over.
func (s *Session) Winner() (game.Player, bool) {
	if s.state != GameOver {
		return game.NoPlayer, false
	}
	return s.winner, true
}

// PendingDice returns a copy of the still-playable die values.
func (s *Session) PendingDice() []int {
	return append([]int(nil), s.dice.Pending...)
}

// HasBarCheckers reports whether the acting side has checkers to enter.
func (s *Session) HasBarCheckers() bool {
	return s.board.Bar[s.current] > 0
}

// CanUndo reports whether a roll-time snapshot exists for this turn.
func (s *Session) CanUndo() bool { return s.snapshot != nil }

// Export hands over the session state for external text export.
func (s *Session) Export() game.Record {
	return game.Export(s.board, s.dice, s.current)
}

// Roll rolls the dice for the acting human player. If no pending die
// yields a legal move the forced pass is announced and the turn ends
// immediately.
func (s *Session) Roll() ([]int, error) {
	return s.rollAs(HumanActing)
}

func (s *Session) rollAs(next State) ([]int, error) {
	if s.state == GameOver {
		return nil, validationGameOver()
	}
	if s.state != AwaitingRoll {
		return nil, &game.ValidationError{Reason: "dice already rolled this turn"}
	}

	rolled, err := s.dice.Roll()
	if err != nil {
		return nil, err
	}
	s.snapshot = &turnSnapshot{board: s.board.Clone(), dice: s.dice.Snapshot()}
	s.state = next

	if !s.anyLegal() {
		s.announcef("player %s rolled %v but has no legal moves; turn passed", s.current, rolled)
		s.endTurn()
	}
	return rolled, nil
}

func validationGameOver() error {
	return &game.ValidationError{Reason: "the game is over"}
}

// anyLegal reports whether any pending die has at least one legal move.
func (s *Session) anyLegal() bool {
	seen := [7]bool{}
	for _, die := range s.dice.Pending {
		if seen[die] {
			continue
		}
		seen[die] = true
		if len(game.LegalMoves(s.board, s.current, die)) > 0 {
			return true
		}
	}
	return false
}

func (s *Session) requireActing() error {
	switch s.state {
	case GameOver:
		return validationGameOver()
	case AwaitingRoll:
		return &game.ValidationError{Reason: "roll the dice first"}
	}
	return nil
}

// play tentatively consumes die, applies m, and rolls the consumption
// back if the move is rejected. Exactly one of (applied state change,
// returned error) happens.
func (s *Session) play(die int, m game.Move) error {
	tok, err := s.dice.Consume(die)
	if err != nil {
		return err
	}
	if err := game.Apply(s.board, m, s.current); err != nil {
		if rerr := s.dice.Return(tok); rerr != nil {
			return rerr
		}
		return err
	}
	s.afterMove()
	return nil
}

// Enter plays a bar entry onto target. The required die value follows
// from the acting player's entry mapping.
func (s *Session) Enter(target int) error {
	if err := s.requireActing(); err != nil {
		return err
	}
	if target < 1 || target > game.NumPoints {
		return &game.ValidationError{Reason: fmt.Sprintf("point %d is out of range", target)}
	}
	if !s.HasBarCheckers() {
		return &game.ValidationError{Reason: fmt.Sprintf("player %s has no checkers on the bar", s.current)}
	}
	die := s.current.EntryDie(target)
	return s.play(die, game.Move{Kind: game.MoveEnter, To: target})
}

// Move plays a checker from origin to target. The die value is the
// travel distance; moving against the player's direction is rejected.
func (s *Session) Move(origin, target int) error {
	if err := s.requireActing(); err != nil {
		return err
	}
	if origin < 1 || origin > game.NumPoints || target < 1 || target > game.NumPoints {
		return &game.ValidationError{Reason: "points must be between 1 and 6"}
	}
	if s.HasBarCheckers() {
		return &game.ValidationError{Reason: "bar checkers must enter first"}
	}
	die := (target - origin) * s.current.Direction()
	if die <= 0 {
		return &game.ValidationError{Reason: fmt.Sprintf("player %s cannot move from %d to %d", s.current, origin, target)}
	}
	return s.play(die, game.Move{Kind: game.MovePoint, From: origin, To: target})
}

// Bear bears a checker off from point. The exact-distance die is
// preferred; otherwise the smallest pending die that legally overshoots
// is used.
func (s *Session) Bear(point int) error {
	if err := s.requireActing(); err != nil {
		return err
	}
	if point < 1 || point > game.NumPoints {
		return &game.ValidationError{Reason: fmt.Sprintf("point %d is out of range", point)}
	}
	if s.HasBarCheckers() {
		return &game.ValidationError{Reason: "bar checkers must enter first"}
	}

	die := 0
	for candidate := 1; candidate <= 6; candidate++ {
		if !s.pendingHas(candidate) {
			continue
		}
		for _, m := range game.LegalMoves(s.board, s.current, candidate) {
			if m.Kind == game.MoveBear && m.From == point {
				die = candidate
				break
			}
		}
		if die != 0 {
			break
		}
	}
	if die == 0 {
		return &game.ValidationError{Reason: fmt.Sprintf("no pending die can bear off from point %d", point)}
	}
	return s.play(die, game.Move{Kind: game.MoveBear, From: point})
}

func (s *Session) pendingHas(value int) bool {
	for _, v := range s.dice.Pending {
		if v == value {
			return true
		}
	}
	return false
}

// afterMove re-evaluates the turn after an applied move: the turn ends
// when the dice are exhausted or no remaining die is playable.
func (s *Session) afterMove() {
	if s.board.Off[s.current] == game.CheckersPerPlayer || len(s.dice.Pending) == 0 {
		s.endTurn()
		return
	}
	if !s.anyLegal() {
		s.announcef("player %s has no play for the remaining dice %v; turn passed", s.current, s.dice.Pending)
		s.endTurn()
	}
}

// EndTurn voluntarily ends the acting player's turn, forfeiting any
// remaining dice.
func (s *Session) EndTurn() error {
	if err := s.requireActing(); err != nil {
		return err
	}
	s.endTurn()
	return nil
}

// endTurn checks the win condition, then hands control to the opponent.
func (s *Session) endTurn() {
	if s.board.Off[s.current] == game.CheckersPerPlayer {
		s.winner = s.current
		s.state = GameOver
		s.announcef("player %s wins", s.current)
		return
	}
	s.dice.Reset()
	s.snapshot = nil
	s.current = s.current.Opponent()
	s.state = AwaitingRoll
}

// Undo restores the board and dice to their roll-time values. The
// snapshot survives, so undo can be repeated within the same turn.
func (s *Session) Undo() error {
	if err := s.requireActing(); err != nil {
		return err
	}
	if s.snapshot == nil {
		return &game.ValidationError{Reason: "nothing to undo"}
	}
	s.board = s.snapshot.board.Clone()
	s.dice.Restore(s.snapshot.dice)
	return nil
}

// PlayAITurn runs one full automated turn: roll, then play each pending
// die in rolled order, selecting uniformly at random among its legal
// moves. Unplayable dice are announced as passes. End-of-turn logic is
// shared with the human path.
func (s *Session) PlayAITurn() error {
	rolled, err := s.rollAs(AiActing)
	if err != nil {
		return err
	}
	if s.state != AiActing {
		return nil // forced pass at roll time already ended the turn
	}
	s.announcef("player %s rolled %v", s.current, rolled)

	for s.state == AiActing && len(s.dice.Pending) > 0 {
		die := s.dice.Pending[0]
		moves := game.LegalMoves(s.board, s.current, die)
		if len(moves) == 0 {
			s.announcef("player %s has no play for die %d", s.current, die)
			if _, err := s.dice.Consume(die); err != nil {
				return err
			}
			continue
		}
		m := moves[s.rng.Intn(len(moves))]
		s.announcef("player %s plays %s", s.current, m)
		if err := s.play(die, m); err != nil {
			return err
		}
	}
	if s.state == AiActing {
		s.endTurn()
	}
	return nil
}
