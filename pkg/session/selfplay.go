package session

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/minigammon/pkg/game"
)

// maxTurnsPerGame bounds a single self-play game. Random play finishes
// far below this; exceeding it means the turn loop is broken.
const maxTurnsPerGame = 10000

// SelfPlayOptions controls an automated head-to-head run.
type SelfPlayOptions struct {
	Games    int                    // number of games to play (default 100)
	Seed     int64                  // base RNG seed, 0 = random
	Progress func(SelfPlayProgress) // called after each finished game
}

// SelfPlayProgress is a mid-run snapshot handed to the progress callback.
type SelfPlayProgress struct {
	GamesCompleted int
	GamesTotal     int
	Percent        float64
	Wins           [2]int
}

// SelfPlayResult summarizes a self-play run.
type SelfPlayResult struct {
	Games        int
	Wins         [2]int  // indexed by game.Player
	MeanTurns    float64 // mean turns per game
	TurnsStdDev  float64 // sample standard deviation of turns per game
	MeanLoserOff float64 // mean checkers the loser had borne off
}

// SelfPlay runs automated games with both sides driven by the uniform
// random policy and reports aggregate statistics.
func SelfPlay(opts SelfPlayOptions) (*SelfPlayResult, error) {
	games := opts.Games
	if games <= 0 {
		games = 100
	}
	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}

	turns := make([]float64, 0, games)
	loserOff := make([]float64, 0, games)
	result := &SelfPlayResult{Games: games}

	for g := 0; g < games; g++ {
		gameSeed := seed + int64(g)*1000003
		s := New(Options{
			Roller: game.NewRoller(gameSeed),
			Seed:   gameSeed + 1,
		})

		n := 0
		for !s.GameOver() {
			if err := s.PlayAITurn(); err != nil {
				return nil, fmt.Errorf("self-play game %d: %w", g, err)
			}
			n++
			if n > maxTurnsPerGame {
				return nil, fmt.Errorf("self-play game %d exceeded %d turns", g, maxTurnsPerGame)
			}
		}

		winner, _ := s.Winner()
		result.Wins[winner]++
		turns = append(turns, float64(n))
		loserOff = append(loserOff, float64(s.board.Off[winner.Opponent()]))

		if opts.Progress != nil {
			opts.Progress(SelfPlayProgress{
				GamesCompleted: g + 1,
				GamesTotal:     games,
				Percent:        float64(g+1) / float64(games) * 100,
				Wins:           result.Wins,
			})
		}
	}

	result.MeanTurns = stat.Mean(turns, nil)
	if len(turns) > 1 {
		result.TurnsStdDev = stat.StdDev(turns, nil)
	}
	result.MeanLoserOff = stat.Mean(loserOff, nil)
	return result, nil
}
