package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/louisbranch/scorekeeper/internal/ledger"
	apperrors "github.com/louisbranch/scorekeeper/internal/platform/errors"
)

// updateGame handles score entry, cell selection and edits.
func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateEdit(msg)
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "enter":
		err := m.ledger.RecordNextScore(m.ctx, m.input)
		m.report(err)
		if err == nil || !isRejection(err) {
			m.input = ""
		}

	case "ctrl+r":
		m.confirming = true
		m.clearStatus()

	case "up":
		if m.cursorRound > 0 {
			m.cursorRound--
		}
	case "down":
		if m.cursorRound < len(m.ledger.Grid().Rows)-1 {
			m.cursorRound++
		}
	case "left":
		if m.cursorPlayer > 0 {
			m.cursorPlayer--
		}
	case "right":
		if m.cursorPlayer < len(m.ledger.State().Players)-1 {
			m.cursorPlayer++
		}

	case "backspace":
		m.input = backspace(m.input)

	case "e":
		// Scores never contain "e", so it only opens the editor on an empty input.
		if m.input == "" {
			m.editing = true
			m.editInput = m.cellText(m.cursorPlayer, m.cursorRound)
			m.clearStatus()
			return m, nil
		}
		m.input = appendInput(m.input, msg)

	default:
		m.input = appendInput(m.input, msg)
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.editInput = ""

	case "enter":
		m.report(m.ledger.EditScore(m.ctx, m.cursorPlayer, m.cursorRound, m.editInput))
		m.editing = false
		m.editInput = ""
		m.clampCursor()

	case "backspace":
		m.editInput = backspace(m.editInput)

	default:
		m.editInput = appendInput(m.editInput, msg)
	}
	return m, nil
}

// updateConfirm handles the reset confirmation prompt. Only an explicit yes
// resets; any other key cancels.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirming = false
	switch msg.String() {
	case "y", "Y", "s", "S":
		m.report(m.ledger.Reset(m.ctx))
		m.input = ""
		m.cursorPlayer = 0
		m.cursorRound = 0
	default:
		m.status = m.printer.Sprintf("tui.reset.cancelled")
		m.statusError = false
	}
	return m, nil
}

func (m *Model) clampCursor() {
	grid := m.ledger.Grid()
	if m.cursorRound >= len(grid.Rows) {
		m.cursorRound = len(grid.Rows) - 1
	}
	if m.cursorRound < 0 {
		m.cursorRound = 0
	}
	if m.cursorPlayer >= len(grid.Players) {
		m.cursorPlayer = len(grid.Players) - 1
	}
	if m.cursorPlayer < 0 {
		m.cursorPlayer = 0
	}
}

func (m Model) cellText(player, round int) string {
	grid := m.ledger.Grid()
	if round < 0 || round >= len(grid.Rows) || player < 0 || player >= len(grid.Players) {
		return ""
	}
	cell := grid.Rows[round].Cells[player]
	if !cell.Present {
		return ""
	}
	return strconv.Itoa(cell.Value)
}

// viewGame renders the turn banner, score input and grid.
func (m Model) viewGame() string {
	state := m.ledger.State()
	parts := make([]string, 0, 4)

	if current, ok := m.ledger.CurrentPlayer(); ok {
		parts = append(parts, bannerStyle.Render(m.printer.Sprintf("tui.game.banner", state.CurrentRound, current.Name)))
	}

	if m.editing {
		name := state.Players[m.cursorPlayer].Name
		parts = append(parts,
			promptStyle.Render(m.printer.Sprintf("tui.game.edit_prompt", name, m.cursorRound+1)),
			renderInput(m.editInput, ""),
		)
	} else {
		parts = append(parts,
			promptStyle.Render(m.printer.Sprintf("tui.game.score_prompt")),
			renderInput(m.input, ""),
		)
	}

	parts = append(parts, m.renderGrid(state))

	help := m.printer.Sprintf("tui.game.help")
	if m.editing {
		help = m.printer.Sprintf("tui.game.edit_help")
	}
	parts = append(parts, instructionStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderGrid(state ledger.GameState) string {
	grid := ledger.BuildGrid(state)

	headers := make([]string, 0, len(grid.Players)+1)
	headers = append(headers, m.printer.Sprintf("tui.game.round_header"))
	headers = append(headers, grid.Players...)

	rows := make([][]string, 0, len(grid.Rows)+1)
	for _, row := range grid.Rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, strconv.Itoa(row.Round))
		for _, cell := range row.Cells {
			if cell.Present {
				cells = append(cells, strconv.Itoa(cell.Value))
			} else {
				cells = append(cells, m.printer.Sprintf("tui.game.no_score"))
			}
		}
		rows = append(rows, cells)
	}
	totals := make([]string, 0, len(grid.Totals)+1)
	totals = append(totals, m.printer.Sprintf("tui.game.total"))
	for _, total := range grid.Totals {
		totals = append(totals, strconv.Itoa(total))
	}
	rows = append(rows, totals)
	totalRow := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(primaryColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				if col > 0 && col-1 == state.CurrentPlayerIndex {
					return currentCellStyle
				}
				return headerCellStyle
			case row == totalRow:
				return totalCellStyle
			case col > 0 && row == m.cursorRound && col-1 == m.cursorPlayer:
				return selectedCellStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

// viewConfirm renders the reset confirmation prompt.
func (m Model) viewConfirm() string {
	return errorStyle.Render(m.printer.Sprintf("tui.reset.confirm"))
}

func isRejection(err error) bool {
	return apperrors.CodeOf(err).IsRejection()
}
