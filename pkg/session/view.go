package session

import (
	"github.com/yourusername/minigammon/internal/positionid"
	"github.com/yourusername/minigammon/pkg/game"
)

// PointView is one board point as seen by presentation layers.
type PointView struct {
	Owner string `json:"owner"`
	Count int    `json:"count"`
}

// View is the read-only session surface handed to presentation layers.
// They render from it and forward raw tokens back; no rule validation
// happens outside the engine.
type View struct {
	Points       [game.NumPoints]PointView `json:"points"` // index 0 = point 1
	Bar          [2]int                    `json:"bar"`
	Off          [2]int                    `json:"off"`
	Pending      []int                     `json:"pending_dice"`
	AwaitingRoll bool                      `json:"awaiting_roll"`
	Player       string                    `json:"player"`
	State        string                    `json:"state"`
	GameOver     bool                      `json:"game_over"`
	Winner       string                    `json:"winner,omitempty"`
	PositionID   string                    `json:"position_id"`
}

// View returns a value copy of the observable session state.
func (s *Session) View() View {
	v := View{
		Bar:          s.board.Bar,
		Off:          s.board.Off,
		PositionID:   positionid.Encode(s.board, s.current),
		Pending:      s.PendingDice(),
		AwaitingRoll: s.AwaitingRoll(),
		Player:       s.current.String(),
		State:        s.state.String(),
		GameOver:     s.GameOver(),
	}
	for n := 1; n <= game.NumPoints; n++ {
		pt := s.board.Point(n)
		v.Points[n-1] = PointView{Owner: pt.Owner.String(), Count: pt.Count}
	}
	if w, ok := s.Winner(); ok {
		v.Winner = w.String()
	}
	return v
}
