package ledger

import (
	"fmt"
	"strings"
)

const (
	// MinPlayers is the smallest roster that can start a game.
	MinPlayers = 3
	// MaxPlayers is the largest roster accepted.
	MaxPlayers = 6
	// DefaultSnapshotKey names the stored snapshot record.
	DefaultSnapshotKey = "scoreTracker_gameState"
)

// Player is one roster entry. Scores[i] holds the score for round i+1 and
// Total is always the sum of Scores.
type Player struct {
	Name   string
	Scores []int
	Total  int
}

// GameState is the complete ledger state persisted in a snapshot.
type GameState struct {
	Players            []Player
	CurrentRound       int
	CurrentPlayerIndex int
	GameStarted        bool
}

// EmptyState returns the pre-setup state.
func EmptyState() GameState {
	return GameState{Players: []Player{}}
}

// Clone returns a deep copy of s.
func (s GameState) Clone() GameState {
	out := s
	out.Players = make([]Player, len(s.Players))
	for i, player := range s.Players {
		out.Players[i] = player.clone()
	}
	return out
}

func (p Player) clone() Player {
	out := p
	out.Scores = make([]int, len(p.Scores))
	copy(out.Scores, p.Scores)
	return out
}

// Sum returns the sum of scores.
func Sum(scores []int) int {
	total := 0
	for _, score := range scores {
		total += score
	}
	return total
}

// Validate checks the structural invariants a loaded snapshot must satisfy.
func (s GameState) Validate() error {
	if len(s.Players) > MaxPlayers {
		return fmt.Errorf("roster has %d players, max %d", len(s.Players), MaxPlayers)
	}
	if s.CurrentRound < 0 {
		return fmt.Errorf("current round %d is negative", s.CurrentRound)
	}
	if len(s.Players) == 0 {
		if s.CurrentPlayerIndex != 0 {
			return fmt.Errorf("current player index %d with empty roster", s.CurrentPlayerIndex)
		}
	} else if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return fmt.Errorf("current player index %d out of range [0,%d)", s.CurrentPlayerIndex, len(s.Players))
	}
	if s.GameStarted {
		if s.CurrentRound < 1 {
			return fmt.Errorf("started game has round %d", s.CurrentRound)
		}
		if len(s.Players) < MinPlayers {
			return fmt.Errorf("started game has %d players, min %d", len(s.Players), MinPlayers)
		}
	} else if s.CurrentRound != 0 {
		return fmt.Errorf("game not started but round is %d", s.CurrentRound)
	}

	seen := make(map[string]bool, len(s.Players))
	for i, player := range s.Players {
		if player.Name == "" || player.Name != strings.TrimSpace(player.Name) {
			return fmt.Errorf("player %d has invalid name %q", i, player.Name)
		}
		if seen[player.Name] {
			return fmt.Errorf("duplicate player name %q", player.Name)
		}
		seen[player.Name] = true
		if sum := Sum(player.Scores); sum != player.Total {
			return fmt.Errorf("player %q total %d does not match scores sum %d", player.Name, player.Total, sum)
		}
	}
	return nil
}
