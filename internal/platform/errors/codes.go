// Package errors provides structured, code-bearing domain errors.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Roster errors
	CodeLedgerEmptyName     Code = "LEDGER_EMPTY_NAME"
	CodeLedgerDuplicateName Code = "LEDGER_DUPLICATE_NAME"
	CodeLedgerRosterFull    Code = "LEDGER_ROSTER_FULL"

	// Lifecycle errors
	CodeLedgerNotEnoughPlayers   Code = "LEDGER_NOT_ENOUGH_PLAYERS"
	CodeLedgerGameNotStarted     Code = "LEDGER_GAME_NOT_STARTED"
	CodeLedgerGameAlreadyStarted Code = "LEDGER_GAME_ALREADY_STARTED"

	// Score errors
	CodeLedgerInvalidNumber Code = "LEDGER_INVALID_NUMBER"

	// Snapshot errors
	CodeSnapshotCorrupt Code = "SNAPSHOT_CORRUPT"
)

// Codes lists every known code except CodeUnknown, in declaration order.
func Codes() []Code {
	return []Code{
		CodeLedgerEmptyName,
		CodeLedgerDuplicateName,
		CodeLedgerRosterFull,
		CodeLedgerNotEnoughPlayers,
		CodeLedgerGameNotStarted,
		CodeLedgerGameAlreadyStarted,
		CodeLedgerInvalidNumber,
		CodeSnapshotCorrupt,
	}
}

// IsRejection reports whether the code is a validation rejection the caller
// should show to the user, as opposed to an internal fault.
func (c Code) IsRejection() bool {
	switch c {
	case CodeLedgerEmptyName,
		CodeLedgerDuplicateName,
		CodeLedgerRosterFull,
		CodeLedgerNotEnoughPlayers,
		CodeLedgerGameNotStarted,
		CodeLedgerGameAlreadyStarted,
		CodeLedgerInvalidNumber:
		return true
	default:
		return false
	}
}
