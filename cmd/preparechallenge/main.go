// Command preparechallenge builds a challenge file from a position and the
// first move of the opponent.
package main

import (
	"flag"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dailygambit/challenge"
	"github.com/dailygambit/game"
	"github.com/dailygambit/provider"
)

var (
	idFlag        = flag.String("id", "", "challenge id, usually its day (YYYY-MM-DD)")
	fenFlag       = flag.String("fen", "", "position before the opponent's first move")
	startFlag     = flag.Bool("from_start", false, "-fen is the position after the first move")
	firstMoveFlag = flag.String("first_move", "", "opponent's first move, e.g. e7e5")
	solutionFlag  = flag.String("solution", "", "space separated winning line, starting with the player's move")
	turnsFlag     = flag.Int("turns", 0, "turn budget, 0 for the default")
	dirFlag       = flag.String("dir", "challenges", "directory to write the challenge to")
)

func main() {
	flag.Parse()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	e, err := game.NewEngine(game.NewChess(), game.DefaultCacheSize)
	if err != nil {
		logger.Fatal("cannot create engine", zap.Error(err))
	}
	prepare := challenge.Prepare
	if *startFlag {
		prepare = challenge.PrepareFromStart
	}
	def, err := prepare(e, *idFlag, game.Notation(*fenFlag), *firstMoveFlag)
	if err != nil {
		logger.Fatal("cannot prepare challenge", zap.Error(err))
	}

	def.MaxTurns = *turnsFlag
	if sol := strings.Fields(*solutionFlag); len(sol) > 0 {
		def.Solution = sol
		def.SolutionTurns = (len(sol) + 1) / 2
	}
	if err := def.Validate(e); err != nil {
		logger.Fatal("invalid challenge", zap.Error(err))
	}

	dir, err := provider.NewDir(*dirFlag)
	if err != nil {
		logger.Fatal("cannot open directory", zap.Error(err))
	}
	if err := dir.Save(def); err != nil {
		logger.Fatal("cannot save challenge", zap.Error(err))
	}
	fmt.Printf("challenge %s: %s plays %s, %s to move in %s\n",
		def.ID, def.SideOf(challenge.Away), def.FirstMove, def.HomeSide, def.Board)
}
