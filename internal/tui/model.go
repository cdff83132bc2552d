// Package tui is the terminal front-end for the score ledger.
package tui

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/louisbranch/scorekeeper/internal/ledger"
	apperrors "github.com/louisbranch/scorekeeper/internal/platform/errors"
	errori18n "github.com/louisbranch/scorekeeper/internal/platform/errors/i18n"
	"github.com/louisbranch/scorekeeper/internal/platform/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Model is the Bubble Tea model. It is the single writer of its Ledger.
type Model struct {
	ctx     context.Context
	ledger  *ledger.Ledger
	printer *message.Printer
	errors  *errori18n.Catalog
	logger  *log.Logger

	input      string
	editInput  string
	editing    bool
	confirming bool

	// Selected grid cell.
	cursorPlayer int
	cursorRound  int

	status      string
	statusError bool

	width  int
	height int
}

// New builds a Model over l, rendering messages in tag's language.
func New(ctx context.Context, l *ledger.Ledger, tag language.Tag, opts ...Option) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		ctx:     ctx,
		ledger:  l,
		printer: i18n.Printer(tag),
		errors:  errori18n.GetCatalog(tag.String()),
		logger:  log.Default(),
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirming {
			return m.updateConfirm(msg)
		}
		if m.inGame() {
			return m.updateGame(msg)
		}
		return m.updateSetup(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch {
	case m.confirming:
		body = m.viewConfirm()
	case m.inGame():
		body = m.viewGame()
	default:
		body = m.viewSetup()
	}

	title := titleStyle.Render(m.printer.Sprintf("tui.title"))
	content := lipgloss.JoinVertical(lipgloss.Left, title, body, m.viewStatus())
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
}

// Status returns the last message shown to the user.
func (m Model) Status() string {
	return m.status
}

func (m Model) inGame() bool {
	state := m.ledger.State()
	return state.GameStarted && len(state.Players) > 0
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusError = false
}

// report turns an operation error into a status line. Rejections are
// localized; anything else is a persistence fault and is also logged.
func (m *Model) report(err error) {
	if err == nil {
		m.clearStatus()
		return
	}
	m.statusError = true
	if domainErr, ok := apperrors.As(err); ok && domainErr.Code.IsRejection() {
		m.status = m.errors.Format(domainErr.Code, domainErr.Metadata)
		return
	}
	m.logger.Printf("ledger operation failed: %v", err)
	m.status = m.printer.Sprintf("tui.error.storage", err.Error())
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusError {
		return errorStyle.Render(m.status)
	}
	return mutedStyle.Render(m.status)
}

// appendInput adds typed characters to buf, ignoring control keys.
func appendInput(buf string, msg tea.KeyMsg) string {
	switch {
	case msg.Type == tea.KeyRunes:
		return buf + string(msg.Runes)
	case msg.Type == tea.KeySpace && len(msg.Runes) == 0:
		return buf + " "
	case msg.Type == tea.KeySpace:
		return buf + string(msg.Runes)
	default:
		return buf
	}
}

func backspace(buf string) string {
	runes := []rune(buf)
	if len(runes) == 0 {
		return buf
	}
	return string(runes[:len(runes)-1])
}

func renderInput(value, placeholder string) string {
	if value == "" {
		return inputBoxStyle.Render(mutedStyle.Render(placeholder) + cursorStyle.Render("▊"))
	}
	return inputBoxStyle.Render(highlightStyle.Render(value) + cursorStyle.Render("▊"))
}
