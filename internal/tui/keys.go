package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zvonbot/zvonocli/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case ModeEdit:
		return m.handleEditKeys(msg)
	case ModeResult:
		return m.handleResultKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles navigation between tabs, fields and buttons
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextNormal, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionNextTab:
		m.tabs.Next()
	case keybinds.ActionPrevTab:
		m.tabs.Prev()
	case keybinds.ActionTabVoice:
		m.activateTab(tabVoice)
	case keybinds.ActionTabSMS:
		m.activateTab(tabSMS)
	case keybinds.ActionTabTools:
		m.activateTab(tabTools)

	case keybinds.ActionFocusNext:
		m.moveFocus(1)
	case keybinds.ActionFocusPrev:
		m.moveFocus(-1)
	case keybinds.ActionActivate:
		return m.activate()

	case keybinds.ActionDropdownNext:
		if dd, ok := m.dropdowns[m.focusedItem().id]; ok {
			dd.Next()
		}
	case keybinds.ActionDropdownPrev:
		if dd, ok := m.dropdowns[m.focusedItem().id]; ok {
			dd.Prev()
		}

	case keybinds.ActionSubmit:
		return m.submit()
	case keybinds.ActionTestKey, keybinds.ActionProfile, keybinds.ActionPhones,
		keybinds.ActionRecords, keybinds.ActionQuickSMS:
		return m.press(actionControls[action])

	case keybinds.ActionFocusResult:
		if m.hasResult {
			m.mode = ModeResult
		}
	case keybinds.ActionCopyToClipboard:
		return m.copyResult()

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.updateHelpView()
	}

	return nil
}

// handleEditKeys handles keys while a text field has the cursor.
// Keys without a form binding are typed into the field.
func (m *Model) handleEditKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextForm, msg.String())
	if !ok {
		return m.updateField(m.focusedItem().id, msg)
	}

	switch action {
	case keybinds.ActionQuitForce:
		return tea.Quit
	case keybinds.ActionEditDone:
		m.finishEdit(false)
	case keybinds.ActionEditCancel:
		m.finishEdit(true)
	case keybinds.ActionFocusNext:
		m.finishEdit(false)
		m.moveFocus(1)
	case keybinds.ActionFocusPrev:
		m.finishEdit(false)
		m.moveFocus(-1)
	case keybinds.ActionSubmit:
		m.finishEdit(false)
		return m.submit()
	default:
		return m.updateField(m.focusedItem().id, msg)
	}
	return nil
}

// handleResultKeys handles scrolling in the result area
func (m *Model) handleResultKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextResult, msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit
	case keybinds.ActionScrollUp:
		m.resultView.ScrollUp(1)
	case keybinds.ActionScrollDown:
		m.resultView.ScrollDown(1)
	case keybinds.ActionPageUp:
		m.resultView.PageUp()
	case keybinds.ActionPageDown:
		m.resultView.PageDown()
	case keybinds.ActionGoToTop:
		m.resultView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.resultView.GotoBottom()
	case keybinds.ActionCopyToClipboard:
		return m.copyResult()
	case keybinds.ActionCloseResult:
		m.keybinds.ClearMultiKeyState(keybinds.ContextResult)
		m.mode = ModeNormal
	}
	return nil
}

// handleHelpKeys handles the help overlay
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if ok {
		switch action {
		case keybinds.ActionQuitForce:
			return tea.Quit
		case keybinds.ActionCloseHelp:
			m.mode = ModeNormal
			return nil
		}
	}

	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return cmd
}
