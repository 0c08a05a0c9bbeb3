package session

import (
	"fmt"

	"github.com/yourusername/minigammon/pkg/game"
)

// TokenKind enumerates the discrete input tokens.
type TokenKind int

const (
	TokenRoll TokenKind = iota
	TokenDigit
	TokenMove // begin-move
	TokenBear // begin-bear
	TokenCancel
)

func (k TokenKind) String() string {
	switch k {
	case TokenRoll:
		return "roll"
	case TokenDigit:
		return "digit"
	case TokenMove:
		return "move"
	case TokenBear:
		return "bear"
	case TokenCancel:
		return "cancel"
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// Token is one keyed command. Digit is meaningful only for TokenDigit.
type Token struct {
	Kind  TokenKind
	Digit int
}

// InputState is the multi-keystroke assembly state.
type InputState int

const (
	AwaitRoll InputState = iota
	AwaitCommand
	AwaitBearPoint
	AwaitMoveOrigin
	AwaitMoveTarget
)

func (s InputState) String() string {
	switch s {
	case AwaitRoll:
		return "await-roll"
	case AwaitCommand:
		return "await-command"
	case AwaitBearPoint:
		return "await-bear-point"
	case AwaitMoveOrigin:
		return "await-move-origin"
	case AwaitMoveTarget:
		return "await-move-target"
	}
	return fmt.Sprintf("input(%d)", int(s))
}

// Input assembles sequential tokens into session commands. It holds no
// game-rule knowledge: every decision is delegated to the session, and a
// rejected token leaves both machine and session state unchanged.
type Input struct {
	session *Session
	state   InputState
	origin  int
}

// NewInput creates an input machine bound to a session.
func NewInput(s *Session) *Input {
	return &Input{session: s, state: AwaitRoll}
}

// State returns the current assembly state.
func (in *Input) State() InputState { return in.state }

// resync realigns the machine with the session after a turn boundary.
func (in *Input) resync() {
	if in.session.AwaitingRoll() || in.session.GameOver() {
		in.state = AwaitRoll
	} else {
		in.state = AwaitCommand
	}
}

// Feed consumes one token. The returned error, if any, is the single
// reported message for a rejected command.
func (in *Input) Feed(tok Token) error {
	if tok.Kind == TokenDigit && (tok.Digit < 1 || tok.Digit > game.NumPoints) {
		return &game.ValidationError{Reason: fmt.Sprintf("digit %d is out of range", tok.Digit)}
	}

	switch in.state {
	case AwaitRoll:
		return in.feedAwaitRoll(tok)
	case AwaitCommand:
		return in.feedAwaitCommand(tok)
	case AwaitBearPoint:
		return in.feedAwaitBearPoint(tok)
	case AwaitMoveOrigin:
		return in.feedAwaitMoveOrigin(tok)
	case AwaitMoveTarget:
		return in.feedAwaitMoveTarget(tok)
	}
	return invariantState(in.state)
}

func invariantState(s InputState) error {
	return &game.InvariantError{Reason: fmt.Sprintf("input machine in unknown state %d", int(s))}
}

func (in *Input) feedAwaitRoll(tok Token) error {
	if tok.Kind != TokenRoll {
		return &game.ValidationError{Reason: "roll the dice first"}
	}
	if _, err := in.session.Roll(); err != nil {
		return err
	}
	in.resync()
	return nil
}

// rollAgain handles a roll token arriving mid-turn: with dice still
// pending and a roll-time snapshot it means undo; with no dice pending it
// voluntarily ends the turn.
func (in *Input) rollAgain() error {
	if len(in.session.PendingDice()) > 0 && in.session.CanUndo() {
		if err := in.session.Undo(); err != nil {
			return err
		}
		in.state = AwaitCommand
		return nil
	}
	if err := in.session.EndTurn(); err != nil {
		return err
	}
	in.resync()
	return nil
}

func (in *Input) cancel() error {
	if err := in.session.EndTurn(); err != nil {
		return err
	}
	in.resync()
	return nil
}

func (in *Input) feedAwaitCommand(tok Token) error {
	switch tok.Kind {
	case TokenDigit:
		if !in.session.HasBarCheckers() {
			return &game.ValidationError{Reason: "no checkers on the bar; use the move or bear commands"}
		}
		if err := in.session.Enter(tok.Digit); err != nil {
			return err
		}
		in.resync()
		return nil
	case TokenBear:
		in.state = AwaitBearPoint
		return nil
	case TokenMove:
		in.state = AwaitMoveOrigin
		return nil
	case TokenRoll:
		return in.rollAgain()
	case TokenCancel:
		return in.cancel()
	}
	return &game.ValidationError{Reason: fmt.Sprintf("unexpected %s token", tok.Kind)}
}

func (in *Input) feedAwaitBearPoint(tok Token) error {
	switch tok.Kind {
	case TokenDigit:
		in.state = AwaitCommand
		if err := in.session.Bear(tok.Digit); err != nil {
			return err
		}
		in.resync()
		return nil
	case TokenCancel:
		return in.cancel()
	case TokenRoll:
		return in.rollAgain()
	}
	return &game.ValidationError{Reason: "expected a point number"}
}

func (in *Input) feedAwaitMoveOrigin(tok Token) error {
	switch tok.Kind {
	case TokenDigit:
		in.origin = tok.Digit
		in.state = AwaitMoveTarget
		return nil
	case TokenCancel:
		return in.cancel()
	case TokenRoll:
		return in.rollAgain()
	}
	return &game.ValidationError{Reason: "expected an origin point number"}
}

func (in *Input) feedAwaitMoveTarget(tok Token) error {
	switch tok.Kind {
	case TokenDigit:
		in.state = AwaitCommand
		if err := in.session.Move(in.origin, tok.Digit); err != nil {
			return err
		}
		in.resync()
		return nil
	case TokenCancel:
		return in.cancel()
	case TokenRoll:
		return in.rollAgain()
	}
	return &game.ValidationError{Reason: "expected a target point number"}
}
