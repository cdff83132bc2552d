package scenario

import "github.com/louisbranch/scorekeeper/internal/ledger"

// scenarioState is the mutable state threaded through one scenario run.
type scenarioState struct {
	store  ledger.Store
	ledger *ledger.Ledger
}
