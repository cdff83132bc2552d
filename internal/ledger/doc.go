// Package ledger implements the round-robin score ledger.
//
// A Ledger owns one GameState: the roster of players, the current round and
// turn pointer, and each player's per-round score history with its running
// total. Every mutating operation validates its input, applies the change,
// recomputes derived totals and writes a full snapshot through a Store before
// returning.
//
// # Turns and rounds
//
// Scores are recorded in roster order, one per call. After the last player in
// the roster records, the turn wraps to the first player and the round
// advances. A round cell may be absent (never played), which is distinct from
// a zero score.
//
// # Direct edits
//
// EditScore changes any historical cell without touching the turn pointer.
// Clearing a cell removes it and shifts later rounds down by one; the round
// and turn pointer are left as they were.
//
// A Ledger is not safe for concurrent use. The caller that hosts it (a
// terminal program, a scenario runner, a test) is its single writer.
package ledger
