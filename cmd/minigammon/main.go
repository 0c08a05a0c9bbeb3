// minigammon - quarter-board backgammon in the terminal
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yourusername/minigammon/pkg/game"
	"github.com/yourusername/minigammon/pkg/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "play":
		cmdPlay(args)
	case "simulate":
		cmdSimulate(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`minigammon - quarter-board backgammon

Usage: minigammon <command> [options]

Commands:
  play      Play against the computer in the terminal
  simulate  Run automated self-play games and report statistics

Use "minigammon <command> -h" for command-specific help.

Keys during play:
  r    roll the dice (after rolling: undo to roll time, or end the turn)
  1-6  point number (entry target, or the point asked for)
  m    move a checker (asks for origin, then target)
  b    bear a checker off (asks for the point)
  p    pass, giving up the rest of the turn
  q    quit`)
}

func cmdPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seed := fs.Int64("seed", 0, "Random seed (0 = random)")
	delay := fs.Duration("delay", 600*time.Millisecond, "Pause before the computer's turn")
	fs.Parse(args)

	s := session.New(session.Options{
		Roller:   game.NewRoller(*seed),
		Seed:     *seed,
		Announce: func(msg string) { fmt.Println("  " + msg) },
	})
	in := session.NewInput(s)

	fmt.Println("You are player A; the computer is player B.")
	scanner := bufio.NewScanner(os.Stdin)

	for !s.GameOver() {
		// The computer plays whenever control reaches player B.
		if s.CurrentPlayer() == game.PlayerB {
			time.Sleep(*delay)
			if err := s.PlayAITurn(); err != nil {
				fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
				os.Exit(1)
			}
			continue
		}

		printBoard(s.Export())
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			return
		}

		tok, err := parseKey(line)
		if err != nil {
			fmt.Println("  " + err.Error())
			continue
		}
		if err := in.Feed(tok); err != nil {
			if game.IsValidation(err) {
				fmt.Println("  " + err.Error())
				continue
			}
			fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
			os.Exit(1)
		}
	}

	printBoard(s.Export())
	if w, ok := s.Winner(); ok {
		fmt.Printf("Game over: player %s wins.\n", w)
	}
}

// parseKey maps a single keystroke to an input token.
func parseKey(key string) (session.Token, error) {
	switch key {
	case "r":
		return session.Token{Kind: session.TokenRoll}, nil
	case "m":
		return session.Token{Kind: session.TokenMove}, nil
	case "b":
		return session.Token{Kind: session.TokenBear}, nil
	case "p":
		return session.Token{Kind: session.TokenCancel}, nil
	case "1", "2", "3", "4", "5", "6":
		return session.Token{Kind: session.TokenDigit, Digit: int(key[0] - '0')}, nil
	}
	return session.Token{}, fmt.Errorf("unknown key %q (try r, m, b, p, 1-6, q)", key)
}

// printBoard renders an export record as a compact text board.
func printBoard(rec game.Record) {
	var cells []string
	for i, pt := range rec.Points {
		label := "."
		if pt.Count > 0 {
			label = fmt.Sprintf("%s%d", pt.Owner, pt.Count)
		}
		cells = append(cells, fmt.Sprintf("%d:%-3s", i+1, label))
	}
	fmt.Printf("\n  %s\n", strings.Join(cells, " "))
	fmt.Printf("  bar A:%d B:%d  off A:%d B:%d", rec.Bar[0], rec.Bar[1], rec.Off[0], rec.Off[1])
	if rec.AwaitingRoll {
		fmt.Printf("  player %s to roll\n", rec.Player)
	} else {
		fmt.Printf("  player %s, dice %v\n", rec.Player, rec.Pending)
	}
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	games := fs.Int("games", 100, "Number of games to play")
	seed := fs.Int64("seed", 0, "Base random seed (0 = fixed default)")
	fs.Parse(args)

	start := time.Now()
	result, err := session.SelfPlay(session.SelfPlayOptions{Games: *games, Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	fmt.Printf("Self-play (%d games, %.1fs):\n", result.Games, elapsed.Seconds())
	fmt.Printf("  Wins:   A %d (%.1f%%), B %d (%.1f%%)\n",
		result.Wins[game.PlayerA], pct(result.Wins[game.PlayerA], result.Games),
		result.Wins[game.PlayerB], pct(result.Wins[game.PlayerB], result.Games))
	fmt.Printf("  Turns:  %.1f ± %.1f per game\n", result.MeanTurns, result.TurnsStdDev)
	fmt.Printf("  Margin: loser bears off %.1f of %d on average\n",
		result.MeanLoserOff, game.CheckersPerPlayer)
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
