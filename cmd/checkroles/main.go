// Command checkroles plays random legal games and checks that every piece
// keeps a role matching its colour and type along the way.
package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dailygambit/game"
)

var (
	numGameFlag  = flag.Int("num_game", 10, "number of game to play")
	maxPliesFlag = flag.Int("max_plies", 300, "maximum number of moves per game")
	seedFlag     = flag.Int64("seed", 0, "random seed, 0 for the current time")
	fenFlag      = flag.String("fen", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "start position")
	claimFlag    = flag.Bool("claim_draws", false, "end games on claimable draws")
)

type counters struct {
	plies, captures, enPassants, castlings, promotions int
}

func checkPly(p game.Ply, c *counters) error {
	pieces, err := p.Outcome.Board.Pieces()
	if err != nil {
		return err
	}
	if len(pieces) != len(p.Roles) {
		return errors.Errorf("%d pieces but %d roles", len(pieces), len(p.Roles))
	}
	for sq, piece := range pieces {
		role, ok := p.Roles[sq]
		if !ok {
			return errors.Errorf("no role on %s", sq)
		}
		typ := role.Type()
		if promo := role.Promotion(); promo != game.NoPieceType {
			typ = promo
		}
		if role.Side() != piece.Side || typ != piece.Type {
			return errors.Errorf("role %s stands on %s, a %s", role, sq, piece.Symbol())
		}
	}

	c.plies++
	if p.Outcome.IsCapture {
		c.captures++
		if p.Outcome.Captured != p.Outcome.Moves[0].To {
			c.enPassants++
		}
	}
	if p.Outcome.IsCastling {
		c.castlings++
	}
	if p.Outcome.Promotion != game.NoPieceType {
		c.promotions++
	}
	return nil
}

func main() {
	flag.Parse()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	var opts []game.ChessOption
	if *claimFlag {
		opts = append(opts, game.WithClaimDraws())
	}
	e, err := game.NewEngine(game.NewChess(opts...), game.DefaultCacheSize)
	if err != nil {
		logger.Fatal("cannot create engine", zap.Error(err))
	}

	var total counters
	for i := 0; i < *numGameFlag; i++ {
		var c counters
		final, err := game.RandomGame(e, game.Notation(*fenFlag), r, *maxPliesFlag, func(p game.Ply) error {
			return errors.WithMessagef(checkPly(p, &c), "game %d, ply %d, after %s on %q", i, p.Number, p.Outcome.Moves[0], p.Before)
		})
		if err != nil {
			logger.Fatal("roles out of sync", zap.Int64("seed", seed), zap.Error(err))
		}
		logger.Debug("game played",
			zap.Int("game", i),
			zap.Int("plies", c.plies),
			zap.String("final", string(final)))
		total.plies += c.plies
		total.captures += c.captures
		total.enPassants += c.enPassants
		total.castlings += c.castlings
		total.promotions += c.promotions
	}
	logger.Info("roles stayed in sync",
		zap.Int64("seed", seed),
		zap.Int("games", *numGameFlag),
		zap.Int("plies", total.plies),
		zap.Int("captures", total.captures),
		zap.Int("en_passants", total.enPassants),
		zap.Int("castlings", total.castlings),
		zap.Int("promotions", total.promotions))
}
