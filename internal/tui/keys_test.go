package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zvonbot/zvonocli/internal/executor"
)

func TestKeys_TabSwitching(t *testing.T) {
	m := CreateTestModel(t)

	tests := []struct {
		key       string
		wantTab   string
		wantPanel string
	}{
		{"2", tabSMS, panelSMS},
		{"3", tabTools, panelTools},
		{"]", tabVoice, panelVoice},
		{"[", tabTools, panelTools},
		{"1", tabVoice, panelVoice},
		{"tab", tabSMS, panelSMS},
	}

	for _, tt := range tests {
		press(m, tt.key)
		AssertModelField(t, "tab after "+tt.key, m.tabs.Active(), tt.wantTab)
		AssertModelField(t, "panel after "+tt.key, m.tabs.Panel(), tt.wantPanel)
	}
}

func TestKeys_FocusWrapsWithinPanel(t *testing.T) {
	m := CreateTestModel(t)

	AssertModelField(t, "initial item", m.focusedItem().id, fieldVoicePhone)

	press(m, "k")
	AssertModelField(t, "wrapped item kind", m.focusedItem().kind, kindButton)
	AssertModelField(t, "wrapped item control", m.focusedItem().control, executor.ControlVoice)

	press(m, "j")
	press(m, "down")
	AssertModelField(t, "second item", m.focusedItem().id, fieldVoiceText)

	// Focus is remembered per panel
	press(m, "2")
	AssertModelField(t, "sms item", m.focusedItem().id, fieldSMSPhone)
	press(m, "1")
	AssertModelField(t, "voice item", m.focusedItem().id, fieldVoiceText)
}

func TestKeys_EditAndCancel(t *testing.T) {
	m := CreateTestModel(t)
	original := m.fieldValue(fieldVoicePhone)

	press(m, "enter")
	AssertModelField(t, "mode", m.mode, ModeEdit)

	press(m, "9")
	press(m, "q") // typed, not quit
	AssertModelField(t, "mode while typing", m.mode, ModeEdit)
	AssertModelField(t, "edited value", m.fieldValue(fieldVoicePhone), original+"9q")

	press(m, "esc")
	AssertModelField(t, "mode after cancel", m.mode, ModeNormal)
	AssertModelField(t, "restored value", m.fieldValue(fieldVoicePhone), original)
}

func TestKeys_EditAndKeep(t *testing.T) {
	m := CreateTestModel(t)
	original := m.fieldValue(fieldVoiceRecord)

	press(m, "j")
	press(m, "j")
	AssertModelField(t, "focused item", m.focusedItem().id, fieldVoiceRecord)

	press(m, "enter")
	press(m, "1")
	press(m, "enter")

	AssertModelField(t, "mode after done", m.mode, ModeNormal)
	AssertModelField(t, "kept value", m.fieldValue(fieldVoiceRecord), original+"1")
}

func TestKeys_TabLeavesFieldAndMovesOn(t *testing.T) {
	m := CreateTestModel(t)

	press(m, "enter")
	press(m, "tab")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "focused item", m.focusedItem().id, fieldVoiceText)
	AssertModelField(t, "tab unchanged", m.tabs.Active(), tabVoice)
}

func TestKeys_DropdownCycles(t *testing.T) {
	m := CreateTestModel(t)
	m.dropdowns[fieldVoiceFrom].Populate([]string{"77001112233", "77004445566"})

	for i := 0; i < 3; i++ {
		press(m, "j")
	}
	AssertModelField(t, "focused item", m.focusedItem().id, fieldVoiceFrom)

	press(m, "l")
	AssertModelField(t, "after right", m.fieldValue(fieldVoiceFrom), "77001112233")
	press(m, "enter")
	AssertModelField(t, "after enter", m.fieldValue(fieldVoiceFrom), "77004445566")
	press(m, "h")
	press(m, "h")
	AssertModelField(t, "back to default", m.fieldValue(fieldVoiceFrom), "")

	// Dropdown keys do nothing on other rows
	press(m, "j")
	press(m, "l")
	AssertModelField(t, "unchanged", m.fieldValue(fieldVoiceFrom), "")
}

func TestKeys_ResultMode(t *testing.T) {
	m := CreateTestModel(t)

	press(m, "o")
	AssertModelField(t, "mode without result", m.mode, ModeNormal)

	m.showResult(executor.Rendering{Kind: executor.KindSuccess, Title: "✅ done", Text: strings.Repeat("line\n", 100)})
	press(m, "o")
	AssertModelField(t, "mode with result", m.mode, ModeResult)

	press(m, "G")
	if m.resultView.YOffset == 0 {
		t.Error("G should scroll to the bottom")
	}
	press(m, "g")
	press(m, "g")
	AssertModelField(t, "offset after gg", m.resultView.YOffset, 0)

	press(m, "esc")
	AssertModelField(t, "mode after esc", m.mode, ModeNormal)
}

func TestKeys_Help(t *testing.T) {
	m := CreateTestModel(t)

	press(m, "?")
	AssertModelField(t, "mode", m.mode, ModeHelp)
	out := m.View()
	if !strings.Contains(out, "Keys") || !strings.Contains(out, "Test API key") {
		t.Error("help should list the key bindings")
	}

	press(m, "esc")
	AssertModelField(t, "mode after close", m.mode, ModeNormal)
}

func TestKeys_Quit(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m := CreateTestModel(t)
		cmd := press(m, key)
		if cmd == nil {
			t.Fatalf("%s should quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s should return tea.Quit", key)
		}
	}
}

func TestKeys_CtrlCQuitsWhileEditing(t *testing.T) {
	m := CreateTestModel(t)
	press(m, "enter")

	cmd := press(m, "ctrl+c")
	if cmd == nil {
		t.Fatal("ctrl+c should quit while editing")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}
