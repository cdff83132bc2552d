package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	apperrors "github.com/louisbranch/scorekeeper/internal/platform/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/scorekeeper/internal/ledger"

// Ledger is the authoritative in-memory record of players, rounds and scores.
type Ledger struct {
	state  GameState
	store  Store
	logger *log.Logger
	tracer trace.Tracer
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for recovered snapshot load failures.
func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(l *Ledger) {
		if tracer != nil {
			l.tracer = tracer
		}
	}
}

// Open builds a Ledger over store and loads the last snapshot. A missing
// snapshot starts empty; an unreadable one is logged and also starts empty.
func Open(ctx context.Context, store Store, opts ...Option) (*Ledger, error) {
	if store == nil {
		return nil, errors.New("ledger store is required")
	}
	l := &Ledger{
		state:  EmptyState(),
		store:  store,
		logger: log.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(l)
	}

	ctx, span := l.tracer.Start(ctx, "ledger.Load")
	defer span.End()

	loaded, err := store.Load(ctx)
	switch {
	case err == nil:
		l.state = loaded.Clone()
		span.SetAttributes(attribute.Int("ledger.players", len(loaded.Players)))
	case errors.Is(err, ErrSnapshotNotFound):
	default:
		span.RecordError(err)
		l.logger.Printf("failed to load game state: %v", err)
	}
	return l, nil
}

// State returns a deep copy of the current state.
func (l *Ledger) State() GameState {
	return l.state.Clone()
}

// CurrentPlayer returns the player whose turn it is, if there is a roster.
func (l *Ledger) CurrentPlayer() (Player, bool) {
	if len(l.state.Players) == 0 {
		return Player{}, false
	}
	return l.state.Players[l.state.CurrentPlayerIndex].clone(), true
}

// ReadyToStart reports whether StartGame would succeed.
func (l *Ledger) ReadyToStart() bool {
	return !l.state.GameStarted && len(l.state.Players) >= MinPlayers
}

// AddPlayer appends a player named name (trimmed) to the roster.
func (l *Ledger) AddPlayer(ctx context.Context, name string) error {
	ctx, span := l.tracer.Start(ctx, "ledger.AddPlayer")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return reject(span, ErrEmptyName)
	}
	if l.state.GameStarted {
		return reject(span, ErrGameAlreadyStarted)
	}
	if len(l.state.Players) >= MaxPlayers {
		return reject(span, rosterFull())
	}
	for _, player := range l.state.Players {
		if player.Name == name {
			return reject(span, duplicateName(name))
		}
	}

	l.state.Players = append(l.state.Players, Player{Name: name, Scores: []int{}, Total: 0})
	span.SetAttributes(attribute.Int("ledger.players", len(l.state.Players)))
	return l.persist(ctx, span)
}

// StartGame locks the roster and points the turn at round one, first player.
// Calling it on a started game rewinds the turn pointer and keeps the scores.
func (l *Ledger) StartGame(ctx context.Context) error {
	ctx, span := l.tracer.Start(ctx, "ledger.StartGame")
	defer span.End()

	if len(l.state.Players) < MinPlayers {
		return reject(span, notEnoughPlayers())
	}

	l.state.GameStarted = true
	l.state.CurrentRound = 1
	l.state.CurrentPlayerIndex = 0
	return l.persist(ctx, span)
}

// RecordNextScore parses raw with ParseScore and records it for the current
// player, then advances the turn.
func (l *Ledger) RecordNextScore(ctx context.Context, raw string) error {
	ctx, span := l.tracer.Start(ctx, "ledger.RecordNextScore")
	defer span.End()

	value, ok := ParseScore(raw)
	if !ok {
		return reject(span, invalidNumber(raw))
	}
	return l.recordNextScore(ctx, span, value)
}

// RecordNextScoreValue records value for the current player, then advances
// the turn.
func (l *Ledger) RecordNextScoreValue(ctx context.Context, value int) error {
	ctx, span := l.tracer.Start(ctx, "ledger.RecordNextScore")
	defer span.End()
	return l.recordNextScore(ctx, span, value)
}

func (l *Ledger) recordNextScore(ctx context.Context, span trace.Span, value int) error {
	if !l.state.GameStarted {
		return reject(span, ErrGameNotStarted)
	}

	round := l.state.CurrentRound
	index := l.state.CurrentPlayerIndex
	player := &l.state.Players[index]
	span.SetAttributes(
		attribute.Int("ledger.round", round),
		attribute.Int("ledger.player_index", index),
	)

	// An out-of-band EditScore can leave a history at or past the current
	// round; in that case the current round's slot is overwritten.
	if len(player.Scores) < round {
		player.Scores = append(player.Scores, value)
	} else {
		player.Scores[round-1] = value
	}
	player.Total = Sum(player.Scores)

	l.state.CurrentPlayerIndex++
	if l.state.CurrentPlayerIndex >= len(l.state.Players) {
		l.state.CurrentPlayerIndex = 0
		l.state.CurrentRound++
	}
	return l.persist(ctx, span)
}

// EditScore sets or clears one historical cell. An unparseable raw removes
// the cell at roundIndex, shifting later rounds down; a parseable raw pads
// the history with zeros as needed. Out-of-range coordinates are ignored.
// The turn pointer never moves.
func (l *Ledger) EditScore(ctx context.Context, playerIndex, roundIndex int, raw string) error {
	ctx, span := l.tracer.Start(ctx, "ledger.EditScore")
	defer span.End()
	span.SetAttributes(
		attribute.Int("ledger.player_index", playerIndex),
		attribute.Int("ledger.round_index", roundIndex),
	)

	if playerIndex < 0 || playerIndex >= len(l.state.Players) || roundIndex < 0 {
		return nil
	}
	player := &l.state.Players[playerIndex]

	value, ok := ParseScore(raw)
	if !ok {
		if roundIndex >= len(player.Scores) {
			return nil
		}
		player.Scores = append(player.Scores[:roundIndex], player.Scores[roundIndex+1:]...)
	} else {
		for len(player.Scores) <= roundIndex {
			player.Scores = append(player.Scores, 0)
		}
		player.Scores[roundIndex] = value
	}
	player.Total = Sum(player.Scores)
	return l.persist(ctx, span)
}

// Reset empties the ledger and removes the stored snapshot.
func (l *Ledger) Reset(ctx context.Context) error {
	ctx, span := l.tracer.Start(ctx, "ledger.Reset")
	defer span.End()

	l.state = EmptyState()
	if err := l.store.Clear(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "clear snapshot")
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

func (l *Ledger) persist(ctx context.Context, span trace.Span) error {
	if err := l.store.Save(ctx, l.state.Clone()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save snapshot")
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func reject(span trace.Span, err error) error {
	span.SetAttributes(attribute.String("ledger.rejection", string(apperrors.CodeOf(err))))
	return err
}
