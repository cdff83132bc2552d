// Package sqlite persists ledger snapshots in a SQLite database.
//
// One database holds any number of snapshots, each a JSON document under its
// own key. A Store binds one key and satisfies ledger.Store.
package sqlite
