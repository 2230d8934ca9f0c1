package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zvonbot/zvonocli/internal/config"
	"github.com/zvonbot/zvonocli/internal/executor"
	"github.com/zvonbot/zvonocli/internal/forms"
	"github.com/zvonbot/zvonocli/internal/keybinds"
	"github.com/zvonbot/zvonocli/internal/types"
	"github.com/zvonbot/zvonocli/internal/view"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota // Moving between fields and buttons
	ModeEdit               // Typing into a text field
	ModeResult             // Scrolling the result area
	ModeHelp               // Help overlay
)

// Model represents the TUI state
type Model struct {
	// Core state
	ctx        context.Context
	cfg        config.Config
	dispatcher *executor.Dispatcher
	controller *forms.Controller
	keybinds   *keybinds.Registry
	logger     *slog.Logger
	send       func(tea.Msg) // Program.Send, nil in tests
	mode       Mode

	// Panels
	tabs      *view.Tabs
	focus     map[string]int // panel -> focused item index
	inputs    map[string]*textinput.Model
	areas     map[string]*textarea.Model
	dropdowns map[string]*view.Dropdown

	editBackup string // Field value before editing started

	// Requests
	requests *RequestState
	spinner  spinner.Model

	// Result area
	result     executor.Rendering
	hasResult  bool
	resultView viewport.Model
	helpView   viewport.Model

	// UI state
	notifier  *view.Notifier
	width     int
	height    int
	statusMsg string
	errorMsg  string
}

// Init loads the outgoing phones in the background
func (m *Model) Init() tea.Cmd {
	return m.loadPhonesOnStart()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case spinner.TickMsg:
		// Stop ticking once nothing is in flight
		if m.requests.Active() {
			m.spinner, cmd = m.spinner.Update(msg)
		}

	case progressMsg:
		if msg.control != executor.ControlStartup {
			m.showResult(msg.rendering)
		}

	case resultMsg:
		cmd = m.handleResult(msg)

	case releasedMsg:
		m.logger.Debug("control released", "control", string(msg.control))

	case dismissNoticeMsg:
		m.notifier.Dismiss(msg.id)

	case clipboardMsg:
		if msg.err != nil {
			cmd = m.setErrorMessage("Failed to copy to clipboard: " + msg.err.Error())
		} else {
			m.errorMsg = ""
			cmd = m.setStatusMessage("Result copied to clipboard")
		}

	case clearStatusMsg:
		m.statusMsg = ""

	case clearErrorMsg:
		m.errorMsg = ""

	default:
		// Cursor blink and friends for the field being edited
		if m.mode == ModeEdit {
			cmd = m.updateField(m.focusedItem().id, msg)
		}
	}

	return m, cmd
}

// View renders the current state
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.mode == ModeHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Custom message types
type progressMsg struct {
	control   executor.Control
	rendering executor.Rendering
}

type resultMsg struct {
	control   executor.Control
	endpoint  types.Endpoint
	outcome   *executor.Outcome
	err       error
	rendering executor.Rendering
}

type releasedMsg struct {
	control executor.Control
}

type dismissNoticeMsg struct {
	id int
}

type clipboardMsg struct {
	err error
}

type clearStatusMsg struct{}
type clearErrorMsg struct{}

// msgSink forwards progress to the running program and keeps the final rendering
type msgSink struct {
	send   func(tea.Msg)
	result executor.Rendering
}

func (s *msgSink) Progress(c executor.Control, r executor.Rendering) {
	if s.send != nil {
		s.send(progressMsg{control: c, rendering: r})
	}
}

func (s *msgSink) Result(_ executor.Control, r executor.Rendering) {
	s.result = r
}
