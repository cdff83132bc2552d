// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// TelemetryShutdown limits how long a command waits for buffered spans to
// flush on exit.
const TelemetryShutdown = 5 * time.Second

// ScenarioStep caps a single scenario step when no timeout is configured.
const ScenarioStep = 10 * time.Second

// SQLiteBusy is how long a SQLite connection waits on a locked database.
const SQLiteBusy = 5 * time.Second
