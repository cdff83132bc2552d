// Package snapshot encodes a ledger GameState as the JSON document stored
// under the snapshot key.
//
// The document shape is fixed and carries no version field:
//
//	{"players":[{"name":"Alice","scores":[10],"total":10}],
//	 "currentRound":1,"currentPlayerIndex":1,"gameStarted":true}
//
// Decoding is strict. Unknown fields, trailing data and states that break the
// ledger invariants are all reported as ErrCorrupt.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/louisbranch/scorekeeper/internal/ledger"
	apperrors "github.com/louisbranch/scorekeeper/internal/platform/errors"
)

// ErrCorrupt matches any decode failure through errors.Is.
var ErrCorrupt = apperrors.New(apperrors.CodeSnapshotCorrupt, "snapshot is corrupt")

type document struct {
	Players            []playerDocument `json:"players"`
	CurrentRound       int              `json:"currentRound"`
	CurrentPlayerIndex int              `json:"currentPlayerIndex"`
	GameStarted        bool             `json:"gameStarted"`
}

type playerDocument struct {
	Name   string `json:"name"`
	Scores []int  `json:"scores"`
	Total  int    `json:"total"`
}

// Marshal encodes state. Nil slices are written as empty arrays.
func Marshal(state ledger.GameState) ([]byte, error) {
	doc := document{
		Players:            make([]playerDocument, len(state.Players)),
		CurrentRound:       state.CurrentRound,
		CurrentPlayerIndex: state.CurrentPlayerIndex,
		GameStarted:        state.GameStarted,
	}
	for i, player := range state.Players {
		scores := player.Scores
		if scores == nil {
			scores = []int{}
		}
		doc.Players[i] = playerDocument{Name: player.Name, Scores: scores, Total: player.Total}
	}
	return json.Marshal(doc)
}

// Unmarshal decodes and validates a snapshot document.
func Unmarshal(data []byte) (ledger.GameState, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		return ledger.GameState{}, corrupt("decode snapshot", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return ledger.GameState{}, corrupt("decode snapshot", errors.New("trailing data after document"))
	}

	state := ledger.GameState{
		Players:            make([]ledger.Player, len(doc.Players)),
		CurrentRound:       doc.CurrentRound,
		CurrentPlayerIndex: doc.CurrentPlayerIndex,
		GameStarted:        doc.GameStarted,
	}
	for i, player := range doc.Players {
		scores := player.Scores
		if scores == nil {
			scores = []int{}
		}
		state.Players[i] = ledger.Player{Name: player.Name, Scores: scores, Total: player.Total}
	}
	if err := state.Validate(); err != nil {
		return ledger.GameState{}, corrupt("validate snapshot", err)
	}
	return state, nil
}

func corrupt(message string, cause error) error {
	return apperrors.Wrap(apperrors.CodeSnapshotCorrupt, message, cause)
}
