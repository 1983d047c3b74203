// Command play applies one action to a session stored in a file, against the
// challenge of the day found in a directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	gambit "github.com/dailygambit"
	"github.com/dailygambit/challenge"
	"github.com/dailygambit/game"
	"github.com/dailygambit/provider"
)

var (
	challengesFlag = flag.String("challenges", "challenges", "directory of the challenge files")
	sessionFlag    = flag.String("session", "session.txt", "file holding the session blob")
	actionFlag     = flag.String("action", "view", "view, move, restart, see_solution, undo or solution_move")
	playerFlag     = flag.String("player", "home", "who moves: home or away")
	moveFlag       = flag.String("move", "", "move to play, e.g. e2e4")
	dayFlag        = flag.String("day", "", "play the challenge of this day (YYYY-MM-DD) instead of today's")
	autoFlag       = flag.Bool("auto", true, "play the opponent's forced first move right away")
)

var actions = map[string]gambit.ActionKind{
	"view":          gambit.View,
	"move":          gambit.MovePiece,
	"restart":       gambit.Restart,
	"see_solution":  gambit.SeeSolution,
	"undo":          gambit.Undo,
	"solution_move": gambit.SolutionMove,
}

func parseAction() (gambit.Action, error) {
	kind, ok := actions[*actionFlag]
	if !ok {
		return gambit.Action{}, errors.Errorf("unknown action %q", *actionFlag)
	}
	if kind != gambit.MovePiece {
		return gambit.Action{Kind: kind}, nil
	}

	var p challenge.Player
	switch *playerFlag {
	case "home":
		p = challenge.Home
	case "away":
		p = challenge.Away
	default:
		return gambit.Action{}, errors.Errorf("unknown player %q", *playerFlag)
	}
	m, err := game.ParseUCI(*moveFlag)
	if err != nil {
		return gambit.Action{}, err
	}
	return gambit.Move(p, m.From, m.To), nil
}

func readSession(path string) (string, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	return strings.TrimSpace(string(b)), errors.WithStack(err)
}

func printResult(res *gambit.Result) {
	st := res.State
	fmt.Printf("challenge %s: %s\n", res.ChallengeID, st.Phase)
	fmt.Printf("board     %s\n", st.Board)
	fmt.Printf("moves     %s\n", strings.Join(st.Moves.List(), " "))
	fmt.Printf("turns     %d left of %d (%d%%), attempt %d\n",
		res.Turns.TurnsLeft, res.Turns.TurnsTotal, res.Turns.PercentageLeft, st.AttemptsCounter+1)
	if tr := res.Transition; tr != nil {
		fmt.Printf("played    %s by %s", tr.Move, tr.Player)
		if tr.Captured != "" {
			fmt.Printf(", captured %s", tr.Captured)
		}
		if gameOver := tr.Outcome.GameOver; gameOver != nil {
			fmt.Printf(", game over: %s", gameOver.Reason)
		}
		fmt.Println()
	}
	s := res.Stats
	fmt.Printf("stats     %d played, %d won, streak %d (max %d), average tier %.2f\n",
		s.GamesCount, s.WinCount, s.CurrentStreak, s.MaxStreak, s.AverageWinTier())
}

func main() {
	flag.Parse()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	act, err := parseAction()
	if err != nil {
		logger.Fatal("bad action", zap.Error(err))
	}
	dir, err := provider.NewDir(*challengesFlag)
	if err != nil {
		logger.Fatal("cannot open challenges", zap.Error(err))
	}
	opts := []gambit.Option{gambit.WithLogger(logger)}
	if *dayFlag != "" {
		day, err := time.Parse("2006-01-02", *dayFlag)
		if err != nil {
			logger.Fatal("bad day", zap.Error(err))
		}
		opts = append(opts, gambit.WithClock(func() time.Time { return day }))
	}
	svc, err := gambit.New(dir, gambit.DefaultConfig(), opts...)
	if err != nil {
		logger.Fatal("cannot create service", zap.Error(err))
	}

	blob, err := readSession(*sessionFlag)
	if err != nil {
		logger.Fatal("cannot read session", zap.Error(err))
	}
	ctx := context.Background()
	res, err := svc.Handle(ctx, blob, act)
	if err != nil {
		logger.Fatal("action failed", zap.Stringer("action", act.Kind), zap.Error(err))
	}
	if *autoFlag && res.ForcedMove != nil {
		fm := *res.ForcedMove
		if res, err = svc.Handle(ctx, res.Blob, gambit.Move(challenge.Away, fm.From, fm.To)); err != nil {
			logger.Fatal("forced move failed", zap.Stringer("move", fm), zap.Error(err))
		}
	}

	if err := os.WriteFile(*sessionFlag, []byte(res.Blob+"\n"), 0o600); err != nil {
		logger.Fatal("cannot write session", zap.Error(err))
	}
	printResult(res)
}
