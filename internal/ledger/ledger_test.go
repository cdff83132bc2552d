package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/scorekeeper/internal/platform/errors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func openTestLedger(t *testing.T, store *fakeStore) *Ledger {
	t.Helper()
	l, err := Open(context.Background(), store, WithLogger(log.New(&bytes.Buffer{}, "", 0)))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	return l
}

func startedLedger(t *testing.T, names ...string) (*Ledger, *fakeStore) {
	t.Helper()
	store := &fakeStore{}
	l := openTestLedger(t, store)
	ctx := context.Background()
	for _, name := range names {
		if err := l.AddPlayer(ctx, name); err != nil {
			t.Fatalf("add player %q: %v", name, err)
		}
	}
	if err := l.StartGame(ctx); err != nil {
		t.Fatalf("start game: %v", err)
	}
	return l, store
}

func assertTotalsConsistent(t *testing.T, l *Ledger) {
	t.Helper()
	for _, player := range l.State().Players {
		if sum := Sum(player.Scores); sum != player.Total {
			t.Fatalf("player %q total = %d, sum(scores) = %d", player.Name, player.Total, sum)
		}
	}
}

func totals(state GameState) []int {
	out := make([]int, len(state.Players))
	for i, player := range state.Players {
		out[i] = player.Total
	}
	return out
}

func TestOpenRequiresStore(t *testing.T) {
	if _, err := Open(context.Background(), nil); err == nil {
		t.Fatal("expected nil store error")
	}
}

func TestOpenStartsEmptyWithoutSnapshot(t *testing.T) {
	l := openTestLedger(t, &fakeStore{})

	state := l.State()
	if !reflect.DeepEqual(state, EmptyState()) {
		t.Fatalf("state = %+v, want empty", state)
	}
	if _, ok := l.CurrentPlayer(); ok {
		t.Fatal("expected no current player")
	}
}

func TestOpenLoadsSnapshot(t *testing.T) {
	saved := GameState{
		Players: []Player{
			{Name: "Alice", Scores: []int{10}, Total: 10},
			{Name: "Bob", Scores: []int{20}, Total: 20},
			{Name: "Carol", Scores: []int{}, Total: 0},
		},
		CurrentRound:       1,
		CurrentPlayerIndex: 2,
		GameStarted:        true,
	}
	l := openTestLedger(t, &fakeStore{state: saved, has: true})

	if got := l.State(); !reflect.DeepEqual(got, saved) {
		t.Fatalf("state = %+v, want %+v", got, saved)
	}
	current, ok := l.CurrentPlayer()
	if !ok || current.Name != "Carol" {
		t.Fatalf("current player = %+v, %v; want Carol", current, ok)
	}
}

func TestOpenFallsBackToEmptyAndLogsOnLoadFailure(t *testing.T) {
	var logs bytes.Buffer
	store := &fakeStore{loadErr: errors.New("unexpected end of JSON input")}

	l, err := Open(context.Background(), store, WithLogger(log.New(&logs, "", 0)))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	if !reflect.DeepEqual(l.State(), EmptyState()) {
		t.Fatalf("state = %+v, want empty", l.State())
	}
	if !strings.Contains(logs.String(), "failed to load game state") {
		t.Fatalf("expected load failure log, got %q", logs.String())
	}
}

func TestAddPlayerTrimsAndPersists(t *testing.T) {
	store := &fakeStore{}
	l := openTestLedger(t, store)

	if err := l.AddPlayer(context.Background(), "  Alice  "); err != nil {
		t.Fatalf("add player: %v", err)
	}
	state := l.State()
	if len(state.Players) != 1 || state.Players[0].Name != "Alice" {
		t.Fatalf("players = %+v, want [Alice]", state.Players)
	}
	if state.Players[0].Scores == nil || len(state.Players[0].Scores) != 0 || state.Players[0].Total != 0 {
		t.Fatalf("new player = %+v, want empty scores and zero total", state.Players[0])
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
	if !reflect.DeepEqual(store.state, state) {
		t.Fatalf("stored = %+v, want %+v", store.state, state)
	}
}

func TestAddPlayerRejections(t *testing.T) {
	tests := []struct {
		name   string
		roster []string
		start  bool
		input  string
		want   error
	}{
		{name: "empty", input: "", want: ErrEmptyName},
		{name: "whitespace", input: "   \t", want: ErrEmptyName},
		{name: "duplicate", roster: []string{"Alice"}, input: "Alice", want: ErrDuplicateName},
		{name: "duplicate after trim", roster: []string{"Alice"}, input: " Alice ", want: ErrDuplicateName},
		{name: "roster full", roster: []string{"A", "B", "C", "D", "E", "F"}, input: "G", want: ErrRosterFull},
		{name: "game started", roster: []string{"A", "B", "C"}, start: true, input: "D", want: ErrGameAlreadyStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			l := openTestLedger(t, store)
			ctx := context.Background()
			for _, name := range tt.roster {
				if err := l.AddPlayer(ctx, name); err != nil {
					t.Fatalf("add player %q: %v", name, err)
				}
			}
			if tt.start {
				if err := l.StartGame(ctx); err != nil {
					t.Fatalf("start game: %v", err)
				}
			}
			before := l.State()
			saves := store.saves

			err := l.AddPlayer(ctx, tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !reflect.DeepEqual(l.State(), before) {
				t.Fatalf("state mutated on rejection: %+v", l.State())
			}
			if store.saves != saves {
				t.Fatalf("rejection persisted state")
			}
		})
	}
}

func TestAddPlayerRejectionMetadata(t *testing.T) {
	l := openTestLedger(t, &fakeStore{})
	ctx := context.Background()
	if err := l.AddPlayer(ctx, "Alice"); err != nil {
		t.Fatalf("add player: %v", err)
	}

	err := l.AddPlayer(ctx, "Alice")
	domainErr, ok := apperrors.As(err)
	if !ok {
		t.Fatalf("expected domain error, got %T", err)
	}
	if domainErr.Metadata["Name"] != "Alice" {
		t.Fatalf("metadata = %v, want Name=Alice", domainErr.Metadata)
	}
}

func TestRosterNeverExceedsMax(t *testing.T) {
	l := openTestLedger(t, &fakeStore{})
	ctx := context.Background()
	for i := 0; i < MaxPlayers+3; i++ {
		err := l.AddPlayer(ctx, fmt.Sprintf("P%d", i))
		if i < MaxPlayers && err != nil {
			t.Fatalf("add player %d: %v", i, err)
		}
		if i >= MaxPlayers && !errors.Is(err, ErrRosterFull) {
			t.Fatalf("add player %d error = %v, want %v", i, err, ErrRosterFull)
		}
		if n := len(l.State().Players); n > MaxPlayers {
			t.Fatalf("roster size %d exceeds max", n)
		}
	}
}

func TestStartGameRequiresMinPlayers(t *testing.T) {
	for n := 0; n <= MaxPlayers; n++ {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			l := openTestLedger(t, &fakeStore{})
			ctx := context.Background()
			for i := 0; i < n; i++ {
				if err := l.AddPlayer(ctx, fmt.Sprintf("P%d", i)); err != nil {
					t.Fatalf("add player: %v", err)
				}
			}
			if got := l.ReadyToStart(); got != (n >= MinPlayers) {
				t.Fatalf("ReadyToStart = %v with %d players", got, n)
			}

			err := l.StartGame(ctx)
			state := l.State()
			if n < MinPlayers {
				if !errors.Is(err, ErrNotEnoughPlayers) {
					t.Fatalf("error = %v, want %v", err, ErrNotEnoughPlayers)
				}
				if state.GameStarted || state.CurrentRound != 0 {
					t.Fatalf("state changed on rejection: %+v", state)
				}
				return
			}
			if err != nil {
				t.Fatalf("start game: %v", err)
			}
			if !state.GameStarted || state.CurrentRound != 1 || state.CurrentPlayerIndex != 0 {
				t.Fatalf("state = %+v, want started round 1 index 0", state)
			}
		})
	}
}

func TestStartGameAgainRewindsTurnPointer(t *testing.T) {
	l, store := startedLedger(t, "Alice", "Bob", "Carol")
	ctx := context.Background()
	for _, value := range []int{5, 7, 9, 11} {
		if err := l.RecordNextScoreValue(ctx, value); err != nil {
			t.Fatalf("record score: %v", err)
		}
	}
	saves := store.saves

	if err := l.StartGame(ctx); err != nil {
		t.Fatalf("second start game: %v", err)
	}
	state := l.State()
	if !state.GameStarted || state.CurrentRound != 1 || state.CurrentPlayerIndex != 0 {
		t.Fatalf("state = %+v, want started round 1 index 0", state)
	}
	if got := totals(state); !reflect.DeepEqual(got, []int{16, 7, 9}) {
		t.Fatalf("totals = %v, want [16 7 9]", got)
	}
	if store.saves != saves+1 {
		t.Fatalf("saves = %d, want %d", store.saves, saves+1)
	}
	if l.ReadyToStart() {
		t.Fatal("started game must not be ready to start")
	}
}

func TestRecordNextScoreThreePlayerRound(t *testing.T) {
	l, store := startedLedger(t, "Alice", "Bob", "Carol")
	ctx := context.Background()

	for _, raw := range []string{"10", "20", "5"} {
		if err := l.RecordNextScore(ctx, raw); err != nil {
			t.Fatalf("record %s: %v", raw, err)
		}
	}

	state := l.State()
	if state.CurrentRound != 2 || state.CurrentPlayerIndex != 0 {
		t.Fatalf("round/index = %d/%d, want 2/0", state.CurrentRound, state.CurrentPlayerIndex)
	}
	if got := totals(state); !reflect.DeepEqual(got, []int{10, 20, 5}) {
		t.Fatalf("totals = %v, want [10 20 5]", got)
	}
	if !reflect.DeepEqual(store.state, state) {
		t.Fatalf("stored state = %+v, want %+v", store.state, state)
	}
}

func TestRecordNextScoreRoundRobin(t *testing.T) {
	for n := MinPlayers; n <= MaxPlayers; n++ {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			names := make([]string, n)
			for i := range names {
				names[i] = fmt.Sprintf("P%d", i)
			}
			l, _ := startedLedger(t, names...)
			ctx := context.Background()

			for round := 1; round <= 3; round++ {
				before := l.State()
				for i := 0; i < n; i++ {
					if got := l.State().CurrentPlayerIndex; got != i {
						t.Fatalf("round %d turn %d: index = %d", round, i, got)
					}
					if err := l.RecordNextScoreValue(ctx, round*10+i); err != nil {
						t.Fatalf("record: %v", err)
					}
					assertTotalsConsistent(t, l)
				}
				after := l.State()
				if after.CurrentRound != before.CurrentRound+1 {
					t.Fatalf("round = %d, want %d", after.CurrentRound, before.CurrentRound+1)
				}
				if after.CurrentPlayerIndex != 0 {
					t.Fatalf("index = %d, want 0", after.CurrentPlayerIndex)
				}
			}
		})
	}
}

func TestRecordNextScoreInvalidNumberDoesNotMutate(t *testing.T) {
	l, store := startedLedger(t, "Alice", "Bob", "Carol")
	before := l.State()
	saves := store.saves

	for _, raw := range []string{"", "abc", "-", "  ", "0x"} {
		err := l.RecordNextScore(context.Background(), raw)
		if !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("record %q error = %v, want %v", raw, err, ErrInvalidNumber)
		}
	}
	if !reflect.DeepEqual(l.State(), before) {
		t.Fatalf("state mutated: %+v", l.State())
	}
	if store.saves != saves {
		t.Fatal("rejection persisted state")
	}
}

func TestRecordNextScoreBeforeStartIsRejected(t *testing.T) {
	l := openTestLedger(t, &fakeStore{})
	ctx := context.Background()
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		if err := l.AddPlayer(ctx, name); err != nil {
			t.Fatalf("add player: %v", err)
		}
	}

	if err := l.RecordNextScore(ctx, "10"); !errors.Is(err, ErrGameNotStarted) {
		t.Fatalf("error = %v, want %v", err, ErrGameNotStarted)
	}
	if err := l.RecordNextScoreValue(ctx, 10); !errors.Is(err, ErrGameNotStarted) {
		t.Fatalf("error = %v, want %v", err, ErrGameNotStarted)
	}
}

func TestRecordNextScoreOverwritesWhenHistoryAhead(t *testing.T) {
	l, _ := startedLedger(t, "Alice", "Bob", "Carol")
	ctx := context.Background()

	// Alice gets rounds 1 and 2 filled out of turn.
	if err := l.EditScore(ctx, 0, 1, "7"); err != nil {
		t.Fatalf("edit score: %v", err)
	}
	if err := l.RecordNextScoreValue(ctx, 3); err != nil {
		t.Fatalf("record: %v", err)
	}

	alice := l.State().Players[0]
	if !reflect.DeepEqual(alice.Scores, []int{3, 7}) {
		t.Fatalf("scores = %v, want [3 7]", alice.Scores)
	}
	if alice.Total != 10 {
		t.Fatalf("total = %d, want 10", alice.Total)
	}
	if got := l.State().CurrentPlayerIndex; got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}
}

func TestEditScoreRemovesCellAndShifts(t *testing.T) {
	l, _ := startedLedger(t, "Alice", "Bob", "Carol")
	ctx := context.Background()
	for round := 1; round <= 5; round++ {
		for i := 0; i < 3; i++ {
			if err := l.RecordNextScoreValue(ctx, round*10+i); err != nil {
				t.Fatalf("record: %v", err)
			}
		}
	}
	before := l.State()

	if err := l.EditScore(ctx, 0, 1, "abc"); err != nil {
		t.Fatalf("edit score: %v", err)
	}

	state := l.State()
	if want := []int{10, 30, 40, 50}; !reflect.DeepEqual(state.Players[0].Scores, want) {
		t.Fatalf("scores = %v, want %v", state.Players[0].Scores, want)
	}
	if state.Players[0].Total != 130 {
		t.Fatalf("total = %d, want 130", state.Players[0].Total)
	}
	if !reflect.DeepEqual(state.Players[1:], before.Players[1:]) {
		t.Fatal("other players changed")
	}
	if state.CurrentRound != before.CurrentRound || state.CurrentPlayerIndex != before.CurrentPlayerIndex {
		t.Fatalf("turn pointer moved: %d/%d", state.CurrentRound, state.CurrentPlayerIndex)
	}
}

func TestEditScoreClearsFirstRoundScenario(t *testing.T) {
	l, _ := startedLedger(t, "Alice", "Bob", "Carol")
	ctx := context.Background()
	for _, v := range []int{10, 20, 5} {
		if err := l.RecordNextScoreValue(ctx, v); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	if err := l.EditScore(ctx, 0, 0, "abc"); err != nil {
		t.Fatalf("edit score: %v", err)
	}

	state := l.State()
	if len(state.Players[0].Scores) != 0 || state.Players[0].Total != 0 {
		t.Fatalf("alice = %+v, want empty", state.Players[0])
	}
	if got := totals(state)[1:]; !reflect.DeepEqual(got, []int{20, 5}) {
		t.Fatalf("bob/carol totals = %v, want [20 5]", got)
	}
	if state.CurrentRound != 2 || state.CurrentPlayerIndex != 0 {
		t.Fatalf("turn pointer = %d/%d, want 2/0", state.CurrentRound, state.CurrentPlayerIndex)
	}
}

func TestEditScorePadsWithZeros(t *testing.T) {
	l, _ := startedLedger(t, "Alice", "Bob", "Carol")

	if err := l.EditScore(context.Background(), 2, 3, "9"); err != nil {
		t.Fatalf("edit score: %v", err)
	}
	carol := l.State().Players[2]
	if want := []int{0, 0, 0, 9}; !reflect.DeepEqual(carol.Scores, want) {
		t.Fatalf("scores = %v, want %v", carol.Scores, want)
	}
	if carol.Total != 9 {
		t.Fatalf("total = %d, want 9", carol.Total)
	}
}

func TestEditScoreOverwritesExistingCell(t *testing.T) {
	l, _ := startedLedger(t, "Alice", "Bob", "Carol")
	ctx := context.Background()
	if err := l.RecordNextScoreValue(ctx, 10); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := l.EditScore(ctx, 0, 0, "-4"); err != nil {
		t.Fatalf("edit score: %v", err)
	}
	alice := l.State().Players[0]
	if !reflect.DeepEqual(alice.Scores, []int{-4}) || alice.Total != -4 {
		t.Fatalf("alice = %+v, want [-4] total -4", alice)
	}
}

func TestEditScoreNoOps(t *testing.T) {
	tests := []struct {
		name        string
		playerIndex int
		roundIndex  int
		raw         string
	}{
		{name: "player index too high", playerIndex: 3, roundIndex: 0, raw: "5"},
		{name: "negative player index", playerIndex: -1, roundIndex: 0, raw: "5"},
		{name: "negative round index", playerIndex: 0, roundIndex: -1, raw: "5"},
		{name: "clear missing cell", playerIndex: 1, roundIndex: 4, raw: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, store := startedLedger(t, "Alice", "Bob", "Carol")
			before := l.State()
			saves := store.saves

			if err := l.EditScore(context.Background(), tt.playerIndex, tt.roundIndex, tt.raw); err != nil {
				t.Fatalf("edit score: %v", err)
			}
			if !reflect.DeepEqual(l.State(), before) {
				t.Fatalf("state changed: %+v", l.State())
			}
			if store.saves != saves {
				t.Fatal("no-op persisted state")
			}
		})
	}
}

func TestResetClearsStateAndSnapshot(t *testing.T) {
	l, store := startedLedger(t, "Alice", "Bob", "Carol")
	if err := l.RecordNextScoreValue(context.Background(), 12); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := l.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !reflect.DeepEqual(l.State(), EmptyState()) {
		t.Fatalf("state = %+v, want empty", l.State())
	}
	if store.has || store.clears != 1 {
		t.Fatalf("store has=%v clears=%d, want cleared once", store.has, store.clears)
	}
}

func TestPersistenceFailuresAreWrapped(t *testing.T) {
	boom := errors.New("disk full")
	store := &fakeStore{}
	l := openTestLedger(t, store)
	store.saveErr = boom

	err := l.AddPlayer(context.Background(), "Alice")
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped %v", err, boom)
	}
	if apperrors.CodeOf(err) != apperrors.CodeUnknown {
		t.Fatalf("persistence failure must not carry a rejection code")
	}
	if len(l.State().Players) != 1 {
		t.Fatal("expected in-memory mutation to stay applied")
	}

	store.clearErr = boom
	if err := l.Reset(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("reset error = %v, want wrapped %v", err, boom)
	}
}

func TestStateReturnsCopy(t *testing.T) {
	l, _ := startedLedger(t, "Alice", "Bob", "Carol")
	if err := l.RecordNextScoreValue(context.Background(), 1); err != nil {
		t.Fatalf("record: %v", err)
	}

	state := l.State()
	state.Players[0].Scores[0] = 99
	state.Players[0].Name = "Mallory"

	fresh := l.State()
	if fresh.Players[0].Scores[0] != 1 || fresh.Players[0].Name != "Alice" {
		t.Fatalf("ledger state mutated through copy: %+v", fresh.Players[0])
	}
}

func TestIndependentLedgersDoNotShareState(t *testing.T) {
	first, _ := startedLedger(t, "Alice", "Bob", "Carol")
	second, _ := startedLedger(t, "Dan", "Eve", "Finn")

	if err := first.RecordNextScoreValue(context.Background(), 10); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := second.State().Players[0].Total; got != 0 {
		t.Fatalf("second ledger total = %d, want 0", got)
	}
}

func TestOperationsEmitSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	l, err := Open(context.Background(), &fakeStore{}, WithTracer(provider.Tracer("test")))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	_ = l.AddPlayer(context.Background(), "")

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[1].Name() != "ledger.AddPlayer" {
		t.Fatalf("span name = %q", spans[1].Name())
	}
	found := false
	for _, attr := range spans[1].Attributes() {
		if attr.Key == "ledger.rejection" && attr.Value.AsString() == string(apperrors.CodeLedgerEmptyName) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected rejection attribute, got %v", spans[1].Attributes())
	}
}
