package ledger

// Cell is one (round, player) entry of the score grid.
type Cell struct {
	Value   int
	Present bool
}

// GridRow holds one round's cells in roster order.
type GridRow struct {
	Round int
	Cells []Cell
}

// Grid is the score table a view renders: one row per round from 1 to the
// longest history (at least one row), plus per-player totals.
type Grid struct {
	Players []string
	Rows    []GridRow
	Totals  []int
}

// Grid returns the score table for the current state.
func (l *Ledger) Grid() Grid {
	return BuildGrid(l.state)
}

// BuildGrid derives the score table from state. An empty roster yields an
// empty grid.
func BuildGrid(state GameState) Grid {
	if len(state.Players) == 0 {
		return Grid{}
	}

	rounds := 1
	grid := Grid{
		Players: make([]string, len(state.Players)),
		Totals:  make([]int, len(state.Players)),
	}
	for i, player := range state.Players {
		grid.Players[i] = player.Name
		grid.Totals[i] = player.Total
		if len(player.Scores) > rounds {
			rounds = len(player.Scores)
		}
	}

	grid.Rows = make([]GridRow, rounds)
	for r := range grid.Rows {
		row := GridRow{Round: r + 1, Cells: make([]Cell, len(state.Players))}
		for i, player := range state.Players {
			if r < len(player.Scores) {
				row.Cells[i] = Cell{Value: player.Scores[r], Present: true}
			}
		}
		grid.Rows[r] = row
	}
	return grid
}
