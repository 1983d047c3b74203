// Package gambit runs the daily challenge of a player: it decodes the
// player's session, applies one action to today's challenge and encodes the
// result back.
package gambit

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dailygambit/challenge"
	"github.com/dailygambit/game"
	"github.com/dailygambit/session"
)

// Service is the entry point of the API. It holds no per-player state and
// can be shared between goroutines.
type Service struct {
	provider ChallengeProvider
	conf     Config
	engine   *game.Engine

	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock deciding which day it is.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(p ChallengeProvider, conf Config, opts ...Option) (*Service, error) {
	if p == nil {
		return nil, errors.New("nil challenge provider")
	}
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid config %+v", conf)
	}
	var chessOpts []game.ChessOption
	if conf.ClaimDraws {
		chessOpts = append(chessOpts, game.WithClaimDraws())
	}
	engine, err := game.NewEngine(game.NewChess(chessOpts...), conf.MoveCacheSize)
	if err != nil {
		return nil, err
	}

	retVal := &Service{
		provider: p,
		conf:     conf,
		engine:   engine,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(retVal)
	}
	return retVal, nil
}

func (s *Service) Engine() *game.Engine { return s.engine }

// Handle applies act to the session blob of a player. A blob that cannot be
// decoded is replaced by a new session; every other error is returned and
// leaves the session untouched.
func (s *Service) Handle(ctx context.Context, blob string, act Action) (*Result, error) {
	content, err := session.DecodeOrFresh(blob)
	if err != nil {
		s.logger.Warn("discarding session", zap.Error(err))
	}

	today := s.now()
	def, err := s.provider.Current(ctx, today)
	if err != nil {
		return nil, errors.WithMessage(err, "today's challenge")
	}
	m, err := challenge.NewMachine(def, s.conf.Challenge, s.engine)
	if err != nil {
		return nil, err
	}
	log := s.logger.With(zap.String("challenge", def.ID), zap.Stringer("action", act.Kind))

	retVal := &Result{ChallengeID: def.ID}
	var st challenge.State
	if prev := content.Game(def.ID); prev != nil {
		st = *prev
	} else {
		st = m.NewState()
		content.Stats.StartChallenge(today)
		retVal.Created = true
		log.Debug("new challenge for player")
	}

	var tr *challenge.Transition
	next := st
	switch act.Kind {
	case View:
	case MovePiece:
		next, tr, err = m.Move(st, act.Player, act.From, act.To)
		if err == nil && act.Player == challenge.Home {
			content.Stats.RecordTurn(next, today)
		}
	case Restart:
		next = m.Restart(st)
	case SeeSolution:
		next, err = m.SeeSolution(st)
	case Undo:
		next, err = m.Undo(st)
	case SolutionMove:
		next, tr, err = m.PlaySolutionMove(st)
	default:
		err = errors.Errorf("unknown action %v", act.Kind)
	}
	if err != nil {
		log.Debug("action rejected", zap.Error(err))
		return nil, err
	}

	if st.Phase == challenge.Playing && next.Phase == challenge.Won && !next.InSolutionMode() {
		content.Stats.RecordWin(next, m.Budget(), s.conf.Challenge.WinsDistributionTiers, today)
		log.Info("challenge won",
			zap.Int("turns", next.TurnsCounter),
			zap.Int("attempts", next.AttemptsCounter+1))
	}

	content.SetGame(def.ID, next)
	if retVal.Blob, err = session.Encode(content); err != nil {
		return nil, err
	}
	retVal.State = next
	retVal.Turns = m.Turns(next)
	retVal.Stats = content.Stats
	retVal.Transition = tr
	if m.AwaitsFirstMove(next) {
		fm := m.FirstMove()
		retVal.ForcedMove = &fm
	}

	log.Debug("action handled",
		zap.Int("turns", next.TurnsCounter),
		zap.Int("attempt_turns", next.CurrentAttemptTurnsCounter),
		zap.Int("attempts", next.AttemptsCounter),
		zap.Stringer("phase", next.Phase))
	return retVal, nil
}
