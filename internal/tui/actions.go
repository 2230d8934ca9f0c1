package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zvonbot/zvonocli/internal/executor"
	"github.com/zvonbot/zvonocli/internal/forms"
	"github.com/zvonbot/zvonocli/internal/keybinds"
	"github.com/zvonbot/zvonocli/internal/types"
	"github.com/zvonbot/zvonocli/internal/view"
)

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

// actionControls maps request shortcuts to the buttons they press
var actionControls = map[keybinds.Action]executor.Control{
	keybinds.ActionTestKey:  executor.ControlTestKey,
	keybinds.ActionProfile:  executor.ControlProfile,
	keybinds.ActionPhones:   executor.ControlPhones,
	keybinds.ActionRecords:  executor.ControlRecords,
	keybinds.ActionQuickSMS: executor.ControlQuickSMS,
}

// activateTab switches tabs, leaving any field being edited
func (m *Model) activateTab(name string) {
	if err := m.tabs.Activate(name); err != nil {
		m.logger.Error("tab switch failed", "tab", name, "error", err)
	}
}

// focusedItem returns the row under the cursor in the active panel
func (m *Model) focusedItem() panelItem {
	items := panelLayout[m.tabs.Panel()]
	idx := m.focus[m.tabs.Panel()]
	if idx < 0 || idx >= len(items) {
		return panelItem{}
	}
	return items[idx]
}

// moveFocus moves the cursor within the active panel, wrapping around
func (m *Model) moveFocus(delta int) {
	panel := m.tabs.Panel()
	n := len(panelLayout[panel])
	if n == 0 {
		return
	}
	m.focus[panel] = ((m.focus[panel]+delta)%n + n) % n
}

// activate edits the focused field or presses the focused button
func (m *Model) activate() tea.Cmd {
	item := m.focusedItem()
	switch item.kind {
	case kindInput, kindTextArea:
		return m.startEdit(item.id)
	case kindDropdown:
		m.dropdowns[item.id].Next()
	case kindButton:
		return m.press(item.control)
	}
	return nil
}

func (m *Model) startEdit(id string) tea.Cmd {
	m.editBackup = m.fieldValue(id)
	m.mode = ModeEdit
	if ti, ok := m.inputs[id]; ok {
		return ti.Focus()
	}
	if ta, ok := m.areas[id]; ok {
		return ta.Focus()
	}
	return nil
}

// finishEdit leaves the field; cancel restores the value it had before editing
func (m *Model) finishEdit(cancel bool) {
	id := m.focusedItem().id
	if cancel {
		m.setFieldValue(id, m.editBackup)
	}
	if ti, ok := m.inputs[id]; ok {
		ti.Blur()
	}
	if ta, ok := m.areas[id]; ok {
		ta.Blur()
	}
	m.editBackup = ""
	m.mode = ModeNormal
}

func (m *Model) updateField(id string, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if ti, ok := m.inputs[id]; ok {
		*ti, cmd = ti.Update(msg)
	} else if ta, ok := m.areas[id]; ok {
		*ta, cmd = ta.Update(msg)
	}
	return cmd
}

func (m *Model) fieldValue(id string) string {
	if ti, ok := m.inputs[id]; ok {
		return ti.Value()
	}
	if ta, ok := m.areas[id]; ok {
		return ta.Value()
	}
	if dd, ok := m.dropdowns[id]; ok {
		return dd.Value()
	}
	return ""
}

func (m *Model) setFieldValue(id, value string) {
	if ti, ok := m.inputs[id]; ok {
		ti.SetValue(value)
	} else if ta, ok := m.areas[id]; ok {
		ta.SetValue(value)
	}
}

func (m *Model) voiceForm() forms.VoiceForm {
	return forms.VoiceForm{
		Phone:         m.fieldValue(fieldVoicePhone),
		Text:          m.fieldValue(fieldVoiceText),
		RecordID:      m.fieldValue(fieldVoiceRecord),
		OutgoingPhone: m.fieldValue(fieldVoiceFrom),
	}
}

func (m *Model) smsForm() forms.SMSForm {
	return forms.SMSForm{
		Phone:         m.fieldValue(fieldSMSPhone),
		Text:          m.fieldValue(fieldSMSText),
		OutgoingPhone: m.fieldValue(fieldSMSFrom),
	}
}

// submit sends the form of the active tab
func (m *Model) submit() tea.Cmd {
	switch m.tabs.Active() {
	case tabVoice:
		return m.press(executor.ControlVoice)
	case tabSMS:
		return m.press(executor.ControlSMSForm)
	default:
		return m.setStatusMessage("Nothing to send on this tab")
	}
}

// press runs the request behind a button. Invalid input is rendered
// in the result area and nothing is sent.
func (m *Model) press(c executor.Control) tea.Cmd {
	switch c {
	case executor.ControlTestKey:
		return m.dispatch(c, types.EndpointTestAPIKey, nil)
	case executor.ControlProfile:
		return m.dispatch(c, types.EndpointProfile, nil)
	case executor.ControlPhones:
		return m.dispatch(c, types.EndpointPhones, nil)
	case executor.ControlRecords:
		return m.dispatch(c, types.EndpointRecords, nil)

	case executor.ControlQuickSMS:
		req, err := m.controller.QuickSMS(m.fieldValue(fieldSMSFrom))
		if err != nil {
			return m.showValidation(err)
		}
		return m.dispatch(c, types.EndpointSendSMS, req)

	case executor.ControlSMSForm:
		req, err := m.controller.BuildSMS(m.smsForm())
		if err != nil {
			return m.showValidation(err)
		}
		return m.dispatch(c, types.EndpointSendSMS, req)

	case executor.ControlVoice:
		req, err := m.controller.BuildVoice(m.voiceForm())
		if err != nil {
			return m.showValidation(err)
		}
		return m.dispatch(c, types.EndpointSendVoice, req)
	}

	m.logger.Error("unknown control pressed", "control", string(c))
	return nil
}

// dispatch runs one request on a background goroutine
func (m *Model) dispatch(c executor.Control, ep types.Endpoint, payload any) tea.Cmd {
	wasActive := m.requests.Active()
	if !m.requests.Start(c) {
		return m.setStatusMessage("Request already in progress")
	}

	d := m.dispatcher
	ctx := m.ctx
	sink := &msgSink{send: m.send}
	msgs := m.cfg.Messages

	run := m.recoverCmd(func() tea.Msg {
		out, err := d.Dispatch(ctx, c, ep, payload, sink)
		return resultMsg{control: c, endpoint: ep, outcome: out, err: err, rendering: sink.result}
	}, func(r any) tea.Msg {
		err := fmt.Errorf("unexpected failure: %v", r)
		return resultMsg{control: c, endpoint: ep, err: err, rendering: executor.Render(ep, nil, err, msgs)}
	})

	if wasActive {
		return run
	}
	return tea.Batch(m.spinner.Tick, run)
}

// recoverCmd wraps a command so a panic becomes the message built by onPanic
func (m *Model) recoverCmd(fn func() tea.Msg, onPanic func(r any) tea.Msg) tea.Cmd {
	logger := m.logger
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("command panicked", "panic", r)
				msg = onPanic(r)
			}
		}()
		return fn()
	}
}

// loadPhonesOnStart fetches the outgoing phones once the page is up
func (m *Model) loadPhonesOnStart() tea.Cmd {
	return m.dispatch(executor.ControlStartup, types.EndpointPhones, nil)
}

// handleResult shows a finished request and reacts to loaded phones
func (m *Model) handleResult(msg resultMsg) tea.Cmd {
	m.requests.Finish(msg.control)

	if errors.Is(msg.err, executor.ErrBusy) {
		return m.setStatusMessage("Request already in progress")
	}

	if msg.control == executor.ControlStartup {
		if msg.err != nil {
			m.logger.Warn("initial phone load failed", "error", msg.err)
			return nil
		}
		return m.applyPhones(msg.outcome)
	}

	m.showResult(msg.rendering)
	if msg.err != nil {
		return nil
	}
	if msg.endpoint == types.EndpointPhones {
		return m.applyPhones(msg.outcome)
	}
	return nil
}

// applyPhones refreshes both outgoing phone dropdowns. A payload without
// usable numbers leaves them untouched and shows no notice.
func (m *Model) applyPhones(out *executor.Outcome) tea.Cmd {
	if out == nil || out.Response == nil || !out.Response.HasData() {
		return nil
	}

	phones, dropped := view.ExtractPhones(out.Response.Data, m.cfg.UI.MaxPhoneNumbers)
	if dropped > 0 {
		m.logger.Warn("outgoing phones skipped", "kept", len(phones), "dropped", dropped)
	}
	if len(phones) == 0 {
		return nil
	}

	m.dropdowns[fieldVoiceFrom].Populate(phones)
	m.dropdowns[fieldSMSFrom].Populate(phones)
	return m.notify(view.PhonesLoadedText(len(phones)))
}

// showResult replaces the content of the result area
func (m *Model) showResult(r executor.Rendering) {
	m.result = r
	m.hasResult = true
	m.resultView.SetContent(m.formatResult())
	m.resultView.GotoTop()
}

func (m *Model) showValidation(err error) tea.Cmd {
	text := err.Error()
	var ve *forms.ValidationError
	if errors.As(err, &ve) {
		text = ve.Message
	}
	m.showResult(executor.Rendering{
		Kind:  executor.KindError,
		Title: "❌ " + m.cfg.Messages.Error.Validation,
		Text:  text,
	})
	return nil
}

// notify shows a transient notice and schedules its removal
func (m *Model) notify(text string) tea.Cmd {
	notice := m.notifier.Show(text)
	return tea.Tick(notice.Duration, func(time.Time) tea.Msg {
		return dismissNoticeMsg{id: notice.ID}
	})
}

// copyResult copies the rendered result to the clipboard
func (m *Model) copyResult() tea.Cmd {
	if !m.hasResult {
		return m.setErrorMessage("No result to copy")
	}
	text := m.result.String()
	return m.recoverCmd(func() tea.Msg {
		return clipboardMsg{err: writeClipboard(text)}
	}, func(r any) tea.Msg {
		return clipboardMsg{err: fmt.Errorf("unexpected failure: %v", r)}
	})
}

// Helper methods for setting footer messages with a timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncate(msg, StatusMaxLen)
	return tea.Tick(m.messageTimeout(), func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = truncate(msg, StatusMaxLen)
	return tea.Tick(m.messageTimeout(), func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

func (m *Model) messageTimeout() time.Duration {
	if d := m.cfg.UI.NotificationDuration; d > 0 {
		return d
	}
	return StatusTimeout
}
