package scenario

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/louisbranch/scorekeeper/internal/ledger"
)

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	switch step.Kind {
	case "add_player":
		return r.runAddPlayerStep(ctx, state, step)
	case "start":
		return r.runStartStep(ctx, state, step)
	case "score":
		return r.runScoreStep(ctx, state, step)
	case "edit":
		return r.runEditStep(ctx, state, step)
	case "reload":
		return r.openLedger(ctx, state)
	case "reset":
		return r.runResetStep(ctx, state)
	case "expect":
		return r.runExpectStep(state, step)
	case "expect_scores":
		return r.runExpectScoresStep(state, step)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) openLedger(ctx context.Context, state *scenarioState) error {
	l, err := ledger.Open(ctx, state.store, ledger.WithLogger(r.logger))
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	state.ledger = l
	return nil
}

func (r *Runner) runAddPlayerStep(ctx context.Context, state *scenarioState, step Step) error {
	name, _ := step.Args["name"].(string)
	err := state.ledger.AddPlayer(ctx, name)
	return r.checkOutcome(err, step.Args)
}

func (r *Runner) runStartStep(ctx context.Context, state *scenarioState, step Step) error {
	err := state.ledger.StartGame(ctx)
	return r.checkOutcome(err, step.Args)
}

func (r *Runner) runScoreStep(ctx context.Context, state *scenarioState, step Step) error {
	var err error
	switch value := step.Args["value"].(type) {
	case int:
		err = state.ledger.RecordNextScoreValue(ctx, value)
	case float64:
		err = state.ledger.RecordNextScore(ctx, strconv.FormatFloat(value, 'f', -1, 64))
	case string:
		err = state.ledger.RecordNextScore(ctx, value)
	default:
		return r.failf("score value must be a number or string, got %T", value)
	}
	return r.checkOutcome(err, step.Args)
}

func (r *Runner) runEditStep(ctx context.Context, state *scenarioState, step Step) error {
	player, ok := readInt(step.Args, "player")
	if !ok {
		return r.failf("edit player index is required")
	}
	round, ok := readInt(step.Args, "round")
	if !ok {
		return r.failf("edit round index is required")
	}
	raw := scoreText(step.Args["value"])
	return state.ledger.EditScore(ctx, player, round, raw)
}

func (r *Runner) runResetStep(ctx context.Context, state *scenarioState) error {
	return state.ledger.Reset(ctx)
}

func (r *Runner) runExpectStep(state *scenarioState, step Step) error {
	current := state.ledger.State()

	if want, ok := readInt(step.Args, "round"); ok && current.CurrentRound != want {
		if err := r.assertf("round = %d, want %d", current.CurrentRound, want); err != nil {
			return err
		}
	}
	if want, ok := readInt(step.Args, "turn"); ok && current.CurrentPlayerIndex != want {
		if err := r.assertf("turn = %d, want %d", current.CurrentPlayerIndex, want); err != nil {
			return err
		}
	}
	if want, ok := readBool(step.Args, "started"); ok && current.GameStarted != want {
		if err := r.assertf("started = %v, want %v", current.GameStarted, want); err != nil {
			return err
		}
	}
	if value, ok := step.Args["players"]; ok {
		if err := r.expectPlayers(current, value); err != nil {
			return err
		}
	}
	if value, ok := step.Args["totals"]; ok {
		want, err := readIntList(value)
		if err != nil {
			return r.failf("totals: %v", err)
		}
		got := make([]int, len(current.Players))
		for i, player := range current.Players {
			got[i] = player.Total
		}
		if !slices.Equal(got, want) {
			if err := r.assertf("totals = %v, want %v", got, want); err != nil {
				return err
			}
		}
	}
	if want, ok := readString(step.Args, "current"); ok {
		got := ""
		if player, ok := state.ledger.CurrentPlayer(); ok {
			got = player.Name
		}
		if got != want {
			if err := r.assertf("current player = %q, want %q", got, want); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) expectPlayers(current ledger.GameState, value any) error {
	if want, ok := value.(int); ok {
		if len(current.Players) != want {
			return r.assertf("players = %d, want %d", len(current.Players), want)
		}
		return nil
	}
	want, err := readStringList(value)
	if err != nil {
		return r.failf("players: %v", err)
	}
	got := make([]string, len(current.Players))
	for i, player := range current.Players {
		got[i] = player.Name
	}
	if !slices.Equal(got, want) {
		return r.assertf("players = %v, want %v", got, want)
	}
	return nil
}

func (r *Runner) runExpectScoresStep(state *scenarioState, step Step) error {
	name := requiredString(step.Args, "name")
	if name == "" {
		return r.failf("expect_scores name is required")
	}
	want, err := readIntList(step.Args["scores"])
	if err != nil {
		return r.failf("expect_scores %s: %v", name, err)
	}
	for _, player := range state.ledger.State().Players {
		if player.Name != name {
			continue
		}
		if !slices.Equal(player.Scores, want) {
			return r.assertf("%s scores = %v, want %v", name, player.Scores, want)
		}
		return nil
	}
	return r.assertf("player %q not found", name)
}
