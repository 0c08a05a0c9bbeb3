// Package api provides the HTTP/JSON and WebSocket service around game
// sessions: creating them, reading their state, and feeding input tokens.
package api

import (
	"fmt"

	"github.com/yourusername/minigammon/pkg/session"
)

// ============================================================================
// Request Types
// ============================================================================

// CreateGameRequest is the request body for creating a session.
type CreateGameRequest struct {
	Seed int64 `json:"seed,omitempty"` // dice + AI seed (0 = random)
}

// TokenRequest is the request body for feeding one input token.
type TokenRequest struct {
	Kind  string `json:"kind"`            // "roll", "digit", "move", "bear", "cancel"
	Digit int    `json:"digit,omitempty"` // 1-6, required for "digit"
}

// SimulateRequest is the request body for a self-play run.
type SimulateRequest struct {
	Games int   `json:"games,omitempty"` // default 100
	Seed  int64 `json:"seed,omitempty"`  // 0 = fixed default seed
}

// ============================================================================
// Response Types
// ============================================================================

// GameResponse describes a session after a command.
type GameResponse struct {
	ID       string       `json:"id"`
	View     session.View `json:"view"`
	Messages []string     `json:"messages,omitempty"` // announcements since the last command
	Rejected string       `json:"rejected,omitempty"` // message for a rejected token
}

// SimulateResponse summarizes a self-play run.
type SimulateResponse struct {
	Games        int     `json:"games"`
	WinsA        int     `json:"wins_a"`
	WinsB        int     `json:"wins_b"`
	MeanTurns    float64 `json:"mean_turns"`
	TurnsStdDev  float64 `json:"turns_std_dev"`
	MeanLoserOff float64 `json:"mean_loser_off"`
}

// PositionResponse is the expanded form of a compact position ID.
type PositionResponse struct {
	PositionID string               `json:"position_id"`
	Player     string               `json:"player"`
	Points     [6]session.PointView `json:"points"`
	Bar        [2]int               `json:"bar"`
	Off        [2]int               `json:"off"`
}

// ErrorResponse is returned when an error occurs.
type ErrorResponse struct {
	Error string `json:"error"`          // Error message
	Code  string `json:"code,omitempty"` // Error code
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status  string    `json:"status"`  // "ok"
	Version string    `json:"version"` // Service version
	Games   int       `json:"games"`   // Live session count
	Pool    PoolStats `json:"pool"`    // Worker pool activity
}

// parseToken converts a wire token to a session token.
func parseToken(req TokenRequest) (session.Token, error) {
	switch req.Kind {
	case "roll":
		return session.Token{Kind: session.TokenRoll}, nil
	case "digit":
		return session.Token{Kind: session.TokenDigit, Digit: req.Digit}, nil
	case "move":
		return session.Token{Kind: session.TokenMove}, nil
	case "bear":
		return session.Token{Kind: session.TokenBear}, nil
	case "cancel":
		return session.Token{Kind: session.TokenCancel}, nil
	}
	return session.Token{}, fmt.Errorf("unknown token kind %q", req.Kind)
}
