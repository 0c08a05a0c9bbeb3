package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yourusername/minigammon/pkg/session"
)

// SSEProgress is the per-game progress event payload.
type SSEProgress struct {
	GamesCompleted int     `json:"games_completed"`
	GamesTotal     int     `json:"games_total"`
	Percent        float64 `json:"percent"`
	WinsA          int     `json:"wins_a"`
	WinsB          int     `json:"wins_b"`
}

// SimulateSSE handles Server-Sent Events for streaming self-play progress.
// GET /api/simulate/stream?games=...&seed=...
func (h *Handlers) SimulateSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	query := r.URL.Query()
	games := parseIntParam(query.Get("games"), 100)
	seed := int64(parseIntParam(query.Get("seed"), 0))
	if games > 10000 {
		writeSSEError(w, "games must be <= 10000")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeSSEError(w, "streaming not supported")
		return
	}

	if !h.pool.TryAcquireSimulate() {
		writeSSEError(w, "too many simulations in flight")
		return
	}
	defer h.pool.ReleaseSimulate()

	result, err := session.SelfPlay(session.SelfPlayOptions{
		Games: games,
		Seed:  seed,
		Progress: func(p session.SelfPlayProgress) {
			writeSSEEvent(w, "progress", SSEProgress{
				GamesCompleted: p.GamesCompleted,
				GamesTotal:     p.GamesTotal,
				Percent:        p.Percent,
				WinsA:          p.Wins[0],
				WinsB:          p.Wins[1],
			})
			flusher.Flush()
		},
	})
	if err != nil {
		writeSSEError(w, "simulation failed: "+err.Error())
		return
	}

	writeSSEEvent(w, "result", SimulateResponse{
		Games:        result.Games,
		WinsA:        result.Wins[0],
		WinsB:        result.Wins[1],
		MeanTurns:    result.MeanTurns,
		TurnsStdDev:  result.TurnsStdDev,
		MeanLoserOff: result.MeanLoserOff,
	})
	flusher.Flush()

	writeSSEEvent(w, "done", nil)
	flusher.Flush()
}

// writeSSEEvent writes a Server-Sent Event to the response.
func writeSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	fmt.Fprintf(w, "event: %s\n", event)
	if data != nil {
		jsonData, _ := json.Marshal(data)
		fmt.Fprintf(w, "data: %s\n", jsonData)
	}
	fmt.Fprintf(w, "\n")
}

// writeSSEError writes an error event and closes the stream.
func writeSSEError(w http.ResponseWriter, message string) {
	writeSSEEvent(w, "error", map[string]string{"error": message})
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// parseIntParam parses an integer from a string with a default value.
func parseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return defaultVal
	}
	return val
}
