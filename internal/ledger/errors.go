package ledger

import (
	"strconv"

	apperrors "github.com/louisbranch/scorekeeper/internal/platform/errors"
)

var (
	// ErrEmptyName indicates a blank player name.
	ErrEmptyName = apperrors.New(apperrors.CodeLedgerEmptyName, "player name is required")
	// ErrDuplicateName indicates the roster already has a player with that name.
	ErrDuplicateName = apperrors.New(apperrors.CodeLedgerDuplicateName, "player name already exists")
	// ErrRosterFull indicates the roster already holds MaxPlayers.
	ErrRosterFull = apperrors.New(apperrors.CodeLedgerRosterFull, "roster is full")
	// ErrNotEnoughPlayers indicates fewer than MinPlayers at start.
	ErrNotEnoughPlayers = apperrors.New(apperrors.CodeLedgerNotEnoughPlayers, "not enough players to start")
	// ErrInvalidNumber indicates a score that does not parse as an integer.
	ErrInvalidNumber = apperrors.New(apperrors.CodeLedgerInvalidNumber, "score is not a number")
	// ErrGameNotStarted indicates a score was recorded before the game started.
	ErrGameNotStarted = apperrors.New(apperrors.CodeLedgerGameNotStarted, "game has not started")
	// ErrGameAlreadyStarted indicates a setup operation on a started game.
	ErrGameAlreadyStarted = apperrors.New(apperrors.CodeLedgerGameAlreadyStarted, "game has already started")
)

func duplicateName(name string) error {
	return ErrDuplicateName.WithMetadata(map[string]string{"Name": name})
}

func rosterFull() error {
	return ErrRosterFull.WithMetadata(map[string]string{"Max": strconv.Itoa(MaxPlayers)})
}

func notEnoughPlayers() error {
	return ErrNotEnoughPlayers.WithMetadata(map[string]string{"Min": strconv.Itoa(MinPlayers)})
}

func invalidNumber(raw string) error {
	return ErrInvalidNumber.WithMetadata(map[string]string{"Value": raw})
}
