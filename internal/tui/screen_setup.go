package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/louisbranch/scorekeeper/internal/ledger"
)

// updateSetup handles roster entry.
func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "enter":
		err := m.ledger.AddPlayer(m.ctx, m.input)
		m.report(err)
		if err == nil || !isRejection(err) {
			m.input = ""
		}

	case "ctrl+s":
		err := m.ledger.StartGame(m.ctx)
		m.report(err)
		if m.inGame() {
			m.input = ""
			m.cursorPlayer = 0
			m.cursorRound = 0
		}

	case "backspace":
		m.input = backspace(m.input)

	default:
		m.input = appendInput(m.input, msg)
	}
	return m, nil
}

// viewSetup renders the roster entry screen.
func (m Model) viewSetup() string {
	state := m.ledger.State()

	prompt := promptStyle.Render(m.printer.Sprintf("tui.setup.prompt", ledger.MinPlayers, ledger.MaxPlayers))
	input := renderInput(m.input, m.printer.Sprintf("tui.setup.placeholder"))

	lines := make([]string, 0, len(state.Players)+1)
	lines = append(lines, highlightStyle.Render(m.printer.Sprintf("tui.setup.roster")))
	for i, player := range state.Players {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, player.Name))
	}
	lines = append(lines, mutedStyle.Render(m.printer.Sprintf("tui.setup.count", len(state.Players), ledger.MaxPlayers)))
	roster := rosterBoxStyle.Render(strings.Join(lines, "\n"))

	parts := []string{prompt, input, roster}
	if m.ledger.ReadyToStart() {
		parts = append(parts, bannerStyle.Render(m.printer.Sprintf("tui.setup.ready")))
	}
	parts = append(parts, instructionStyle.Render(m.printer.Sprintf("tui.setup.help")))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
