package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lk16/reversi-search/internal/client"
	"github.com/lk16/reversi-search/internal/config"
	"github.com/lk16/reversi-search/internal/game"
	"github.com/lk16/reversi-search/internal/othello"
	"github.com/lk16/reversi-search/internal/player"
)

type seatFlags struct {
	kind      *string
	depth     *int
	evaluator *string
	remote    *bool
}

func newSeatFlags(side othello.Side, kind string) seatFlags {
	return seatFlags{
		kind:      flag.String(side.String(), kind, "player kind for "+side.String()+": random, minimax, alphabeta or negamax"),
		depth:     flag.Int(side.String()+"-depth", 4, "search depth for "+side.String()),
		evaluator: flag.String(side.String()+"-eval", "heuristic", "evaluator for "+side.String()+": material or heuristic"),
		remote:    flag.Bool(side.String()+"-remote", false, "ask the server for the moves of "+side.String()),
	}
}

func (s seatFlags) build(side othello.Side, seed int64, randChance float64) (player.Player, error) {
	var p player.Player

	if *s.remote {
		apiClient := client.NewAPIClient(config.LoadClientConfig())
		p = client.NewRemote(apiClient, side, *s.kind, *s.evaluator, *s.depth)
	} else {
		var err error
		p, err = player.New(player.Spec{
			Kind:      player.Kind(*s.kind),
			Side:      side,
			Depth:     *s.depth,
			Evaluator: *s.evaluator,
			Seed:      seed,
		})
		if err != nil {
			return nil, err
		}
	}

	if randChance > 0 {
		p = player.NewMixed(p, seed+1, randChance)
	}

	return p, nil
}

func printBoard(turn game.Turn) {
	fmt.Printf("%s plays %s\n", turn.Side, turn.Field())
	for _, line := range turn.Board.ASCIIArtLines(turn.Side.Opponent()) {
		fmt.Println(line)
	}
	fmt.Println()
}

func main() {
	config.SetLogLevel()
	defaults := config.LoadSelfPlayConfig()

	xFlags := newSeatFlags(othello.X, "negamax")
	oFlags := newSeatFlags(othello.O, "random")
	games := flag.Int("games", defaults.Games, "number of games to play")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for random players")
	randChance := flag.Float64("rand-chance", defaults.RandChance, "chance that a player plays a random move")
	quiet := flag.Bool("quiet", false, "only print the summary")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var stats [3]int
	outcomes := map[game.Outcome]int{game.XWin: 0, game.OWin: 1, game.Draw: 2}
	startTime := time.Now()

	for i := range *games {
		gameSeed := *seed + int64(i)*2

		x, err := xFlags.build(othello.X, gameSeed, *randChance)
		if err != nil {
			slog.Error("Invalid x player", "error", err)
			os.Exit(1)
		}

		o, err := oFlags.build(othello.O, gameSeed+1, *randChance)
		if err != nil {
			slog.Error("Invalid o player", "error", err)
			os.Exit(1)
		}

		g, err := game.New(x, o)
		if err != nil {
			slog.Error("Failed to create game", "error", err)
			os.Exit(1)
		}

		if !*quiet {
			g.OnMove(printBoard)
		}

		score, err := g.Run(ctx)
		if err != nil {
			slog.Error("Game failed", "game", i, "error", err)
			os.Exit(1)
		}

		stats[outcomes[score.Outcome()]]++
		slog.Info("Game finished", "game", i, "x", score.X, "o", score.O, "outcome", score.Outcome())
	}

	fmt.Printf("x wins: %d  o wins: %d  draws: %d  (%.1fs)\n", stats[0], stats[1], stats[2], time.Since(startTime).Seconds())
}
