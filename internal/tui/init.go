package tui

import (
	"context"
	"fmt"
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
	"github.com/zvonbot/zvonocli/internal/logging"
	"github.com/zvonbot/zvonocli/internal/view"
)

// Tab and panel names
const (
	tabVoice = "voice"
	tabSMS   = "sms"
	tabTools = "tools"

	panelVoice = "voice-panel"
	panelSMS   = "sms-panel"
	panelTools = "tools-panel"
)

// Field ids
const (
	fieldVoicePhone  = "voice-phone"
	fieldVoiceText   = "voice-text"
	fieldVoiceRecord = "voice-record"
	fieldVoiceFrom   = "voice-from"
	fieldSMSPhone    = "sms-phone"
	fieldSMSText     = "sms-text"
	fieldSMSFrom     = "sms-from"
)

var tabSpecs = []view.TabSpec{
	{Name: tabVoice, Title: "Voice", Panel: panelVoice},
	{Name: tabSMS, Title: "SMS", Panel: panelSMS},
	{Name: tabTools, Title: "Tools", Panel: panelTools},
}

type itemKind int

const (
	kindInput itemKind = iota
	kindTextArea
	kindDropdown
	kindButton
)

// panelItem is one focusable row of a panel
type panelItem struct {
	id      string
	label   string
	kind    itemKind
	control executor.Control // buttons only
	action  keybinds.Action  // shortcut shown next to the button
}

var panelLayout = map[string][]panelItem{
	panelVoice: {
		{id: fieldVoicePhone, label: "Phone", kind: kindInput},
		{id: fieldVoiceText, label: "Text", kind: kindTextArea},
		{id: fieldVoiceRecord, label: "Record ID", kind: kindInput},
		{id: fieldVoiceFrom, label: "From", kind: kindDropdown},
		{id: "voice-send", label: "Send voice message", kind: kindButton, control: executor.ControlVoice, action: keybinds.ActionSubmit},
	},
	panelSMS: {
		{id: fieldSMSPhone, label: "Phone", kind: kindInput},
		{id: fieldSMSText, label: "Text", kind: kindTextArea},
		{id: fieldSMSFrom, label: "From", kind: kindDropdown},
		{id: "sms-send", label: "Send SMS", kind: kindButton, control: executor.ControlSMSForm, action: keybinds.ActionSubmit},
	},
	panelTools: {
		{id: "test-key", label: "Test API key", kind: kindButton, control: executor.ControlTestKey, action: keybinds.ActionTestKey},
		{id: "profile", label: "Get profile", kind: kindButton, control: executor.ControlProfile, action: keybinds.ActionProfile},
		{id: "phones", label: "Get outgoing phones", kind: kindButton, control: executor.ControlPhones, action: keybinds.ActionPhones},
		{id: "records", label: "Get audio records", kind: kindButton, control: executor.ControlRecords, action: keybinds.ActionRecords},
		{id: "quick-sms", label: "Send test SMS", kind: kindButton, control: executor.ControlQuickSMS, action: keybinds.ActionQuickSMS},
	},
}

// New creates a new TUI model. Extra options are passed to the dispatcher.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, registry *keybinds.Registry, opts ...executor.Option) (*Model, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	controller, err := forms.NewController(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build form controller: %w", err)
	}

	tabs, err := view.NewTabs(tabSpecs)
	if err != nil {
		return nil, err
	}

	m := &Model{
		ctx:        ctx,
		cfg:        cfg,
		controller: controller,
		keybinds:   registry,
		logger:     logger,
		mode:       ModeNormal,
		tabs:       tabs,
		focus:      make(map[string]int),
		requests:   NewRequestState(),
		notifier:   view.NewNotifier(cfg.UI.NotificationDuration),
		resultView: viewport.New(80, MinResultHeight),
		helpView:   viewport.New(80, 20),
	}

	locks := executor.NewLocks(m.onRelease)
	dispatcherOpts := append([]executor.Option{executor.WithLogger(logger), executor.WithLocks(locks)}, opts...)
	m.dispatcher = executor.New(cfg, dispatcherOpts...)

	voice := forms.NewVoiceForm(cfg.TestData)
	sms := forms.NewSMSForm(cfg.TestData)

	m.inputs = map[string]*textinput.Model{
		fieldVoicePhone:  newInput("+7 700 000 00 00", voice.Phone),
		fieldVoiceRecord: newInput("optional", voice.RecordID),
		fieldSMSPhone:    newInput("+7 700 000 00 00", sms.Phone),
	}
	m.areas = map[string]*textarea.Model{
		fieldVoiceText: newTextArea(voice.Text),
		fieldSMSText:   newTextArea(sms.Text),
	}
	m.dropdowns = map[string]*view.Dropdown{
		fieldVoiceFrom: view.NewDropdown(),
		fieldSMSFrom:   view.NewDropdown(),
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleWarning
	m.spinner = s

	return m, nil
}

func newInput(placeholder, value string) *textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.SetValue(value)
	return &ti
}

func newTextArea(value string) *textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(TextAreaHeight)
	ta.SetValue(value)
	return &ta
}

// onRelease runs on the request goroutine whenever a control is freed
func (m *Model) onRelease(c executor.Control) {
	if m.send != nil {
		m.send(releasedMsg{control: c})
	}
}

// Run starts the TUI. Logs must not go to the terminal while it runs.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, keybindsPath string) error {
	registry, err := keybinds.LoadOrDefault(keybindsPath)
	if err != nil {
		logger.Warn("invalid keybinds, using defaults", "path", keybindsPath, "error", err)
		registry = keybinds.NewDefaultRegistry()
	}

	m, err := New(ctx, cfg, logger, registry)
	if err != nil {
		return err
	}

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.send = p.Send

	logger.Info("terminal page started", "base_url", cfg.API.BaseURL)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal page failed: %w", err)
	}
	return nil
}
