package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourusername/minigammon/internal/positionid"
	"github.com/yourusername/minigammon/pkg/game"
	"github.com/yourusername/minigammon/pkg/session"
)

// Handlers holds the HTTP handlers, the session manager, and the pool
// bounding concurrent work.
type Handlers struct {
	manager *Manager
	pool    *WorkerPool
	version string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(m *Manager, pool *WorkerPool, version string) *Handlers {
	return &Handlers{manager: m, pool: pool, version: version}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Games:   h.manager.Count(),
		Pool:    h.pool.Stats(),
	})
}

// CreateGame handles POST /api/games
func (h *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
			return
		}
	}

	entry := h.manager.Create(req.Seed)
	entry.mu.Lock()
	resp := GameResponse{ID: entry.id, View: entry.session.View()}
	entry.mu.Unlock()

	writeJSON(w, http.StatusCreated, resp)
}

// entryFor resolves the session from the URL, writing a 404 on a miss.
func (h *Handlers) entryFor(w http.ResponseWriter, r *http.Request) *gameEntry {
	id := chi.URLParam(r, "id")
	entry := h.manager.Get(id)
	if entry == nil {
		writeError(w, http.StatusNotFound, "game not found", "GAME_NOT_FOUND")
		return nil
	}
	return entry
}

// GetGame handles GET /api/games/{id}
func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	entry := h.entryFor(w, r)
	if entry == nil {
		return
	}
	entry.mu.Lock()
	resp := GameResponse{ID: entry.id, View: entry.session.View()}
	entry.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// DeleteGame handles DELETE /api/games/{id}
func (h *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	entry := h.entryFor(w, r)
	if entry == nil {
		return
	}
	h.manager.Delete(entry.id)
	w.WriteHeader(http.StatusNoContent)
}

// FeedToken handles POST /api/games/{id}/token.
//
// A rejected token is not an HTTP error: the session guarantees zero
// state mutation and exactly one message, reported in the Rejected field.
// Only an invariant failure maps to a 500.
func (h *Handlers) FeedToken(w http.ResponseWriter, r *http.Request) {
	entry := h.entryFor(w, r)
	if entry == nil {
		return
	}

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	tok, err := parseToken(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_TOKEN")
		return
	}

	if err := h.pool.AcquireCommand(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
		return
	}
	defer h.pool.ReleaseCommand()

	entry.mu.Lock()
	feedErr := entry.input.Feed(tok)
	resp := GameResponse{
		ID:       entry.id,
		View:     entry.session.View(),
		Messages: entry.drainMessages(),
	}
	entry.mu.Unlock()

	if feedErr != nil {
		if game.IsValidation(feedErr) {
			resp.Rejected = feedErr.Error()
		} else {
			writeError(w, http.StatusInternalServerError, feedErr.Error(), "INVARIANT_ERROR")
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)

	entry.mu.Lock()
	entry.broadcastState()
	entry.mu.Unlock()
}

// AITurn handles POST /api/games/{id}/ai-turn. The presentation layer
// triggers this after its cosmetic delay; the core enforces no timing.
func (h *Handlers) AITurn(w http.ResponseWriter, r *http.Request) {
	entry := h.entryFor(w, r)
	if entry == nil {
		return
	}

	if err := h.pool.AcquireCommand(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
		return
	}
	defer h.pool.ReleaseCommand()

	entry.mu.Lock()
	err := entry.session.PlayAITurn()
	resp := GameResponse{
		ID:       entry.id,
		View:     entry.session.View(),
		Messages: entry.drainMessages(),
	}
	entry.mu.Unlock()

	if err != nil {
		if game.IsValidation(err) {
			resp.Rejected = err.Error()
		} else {
			writeError(w, http.StatusInternalServerError, err.Error(), "INVARIANT_ERROR")
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)

	entry.mu.Lock()
	entry.broadcastState()
	entry.mu.Unlock()
}

// ExportGame handles GET /api/games/{id}/export: the raw record shape
// consumed by external text exporters.
func (h *Handlers) ExportGame(w http.ResponseWriter, r *http.Request) {
	entry := h.entryFor(w, r)
	if entry == nil {
		return
	}
	entry.mu.Lock()
	record := entry.session.Export()
	entry.mu.Unlock()
	writeJSON(w, http.StatusOK, record)
}

// DecodePosition handles GET /api/positions/{id}: it expands a compact
// position ID into the point layout it encodes.
func (h *Handlers) DecodePosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	board, player, err := positionid.Decode(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_POSITION")
		return
	}

	resp := PositionResponse{
		PositionID: id,
		Player:     player.String(),
		Bar:        board.Bar,
		Off:        board.Off,
	}
	for n := 1; n <= game.NumPoints; n++ {
		pt := board.Point(n)
		resp.Points[n-1] = session.PointView{Owner: pt.Owner.String(), Count: pt.Count}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Simulate handles POST /api/simulate.
func (h *Handlers) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
			return
		}
	}
	if req.Games > 10000 {
		writeError(w, http.StatusBadRequest, "games must be <= 10000", "INVALID_GAMES")
		return
	}

	if err := h.pool.AcquireSimulate(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "too many simulations in flight", "SERVER_BUSY")
		return
	}
	defer h.pool.ReleaseSimulate()

	result, err := session.SelfPlay(session.SelfPlayOptions{Games: req.Games, Seed: req.Seed})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "SIMULATION_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, SimulateResponse{
		Games:        result.Games,
		WinsA:        result.Wins[game.PlayerA],
		WinsB:        result.Wins[game.PlayerB],
		MeanTurns:    result.MeanTurns,
		TurnsStdDev:  result.TurnsStdDev,
		MeanLoserOff: result.MeanLoserOff,
	})
}
