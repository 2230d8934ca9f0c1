package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zvonbot/zvonocli/internal/config"
	"github.com/zvonbot/zvonocli/internal/executor"
	"github.com/zvonbot/zvonocli/internal/types"
	"github.com/zvonbot/zvonocli/internal/view"
)

func TestNew_InitializesStateCorrectly(t *testing.T) {
	m := CreateTestModel(t)

	if m.requests == nil {
		t.Error("requests should be initialized")
	}
	if m.dispatcher == nil {
		t.Error("dispatcher should be initialized")
	}

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "active tab", m.tabs.Active(), tabVoice)
	AssertModelField(t, "active panel", m.tabs.Panel(), panelVoice)
	AssertModelField(t, "hasResult", m.hasResult, false)
	AssertModelField(t, "requests active", m.requests.Active(), false)
}

func TestNew_PrefillsForms(t *testing.T) {
	m := CreateTestModel(t)
	td := config.Default().TestData

	AssertModelField(t, "voice phone", m.fieldValue(fieldVoicePhone), td.Phone)
	AssertModelField(t, "voice text", m.fieldValue(fieldVoiceText), td.VoiceText)
	AssertModelField(t, "voice record", m.fieldValue(fieldVoiceRecord), td.RecordID)
	AssertModelField(t, "sms phone", m.fieldValue(fieldSMSPhone), td.Phone)
	AssertModelField(t, "sms text", m.fieldValue(fieldSMSText), td.SMSText)
	AssertModelField(t, "voice from", m.dropdowns[fieldVoiceFrom].Label(), view.DefaultOption)
	AssertModelField(t, "sms from", m.dropdowns[fieldSMSFrom].Label(), view.DefaultOption)
}

func TestView_EmptyBeforeWindowSize(t *testing.T) {
	m, err := New(t.Context(), config.Default(), nil, nil)
	AssertNoError(t, err)
	AssertModelField(t, "view", m.View(), "")
}

func TestView_RendersTabsAndPanel(t *testing.T) {
	m := CreateTestModel(t)
	out := m.View()

	for _, want := range []string{"1 Voice", "2 SMS", "3 Tools", "Send voice message", view.DefaultOption, "No requests yet"} {
		if !strings.Contains(out, want) {
			t.Errorf("view should contain %q", want)
		}
	}

	press(m, "3")
	out = m.View()
	for _, want := range []string{"Test API key", "Get outgoing phones", "Send test SMS"} {
		if !strings.Contains(out, want) {
			t.Errorf("tools view should contain %q", want)
		}
	}
}

func TestView_ShowsSpinnerForPendingControlOnly(t *testing.T) {
	m := CreateTestModel(t)
	press(m, "3")
	m.requests.Start(executor.ControlProfile)

	profile := m.renderItem(panelLayout[panelTools][1], false)
	testKey := m.renderItem(panelLayout[panelTools][0], false)

	if !strings.Contains(profile, m.spinner.View()) {
		t.Error("pending button should show the spinner")
	}
	if strings.Contains(testKey, m.spinner.View()) {
		t.Error("idle button should not show the spinner")
	}
}

func TestUpdate_WindowSizeResizesResult(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})

	AssertModelField(t, "width", m.width, 120)
	AssertModelField(t, "resultView.Width", m.resultView.Width, 114)
	if m.resultView.Height < MinResultHeight {
		t.Errorf("resultView.Height = %d, want at least %d", m.resultView.Height, MinResultHeight)
	}
}

func TestUpdate_SpinnerStopsWhenIdle(t *testing.T) {
	m := CreateTestModel(t)

	_, cmd := m.Update(m.spinner.Tick())
	if cmd != nil {
		t.Error("spinner should stop ticking when no request is in flight")
	}

	m.requests.Start(executor.ControlTestKey)
	_, cmd = m.Update(m.spinner.Tick())
	if cmd == nil {
		t.Error("spinner should keep ticking while a request is in flight")
	}
}

func TestUpdate_ProgressShowsLoadingCaption(t *testing.T) {
	m := CreateTestModel(t)
	loading := executor.LoadingMessage(types.EndpointProfile, m.cfg.Messages)

	m.Update(progressMsg{control: executor.ControlProfile, rendering: loading})
	AssertModelField(t, "hasResult", m.hasResult, true)
	AssertModelField(t, "result", m.result, loading)
}

func TestUpdate_StartupProgressIsSilent(t *testing.T) {
	m := CreateTestModel(t)
	loading := executor.LoadingMessage(types.EndpointPhones, m.cfg.Messages)

	m.Update(progressMsg{control: executor.ControlStartup, rendering: loading})
	AssertModelField(t, "hasResult", m.hasResult, false)
}

func TestUpdate_ClearMessages(t *testing.T) {
	m := CreateTestModel(t)
	m.statusMsg = "status"
	m.errorMsg = "error"

	m.Update(clearStatusMsg{})
	m.Update(clearErrorMsg{})

	AssertModelField(t, "statusMsg", m.statusMsg, "")
	AssertModelField(t, "errorMsg", m.errorMsg, "")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"Привет мир", 7, "Прив..."},
		{"abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		AssertModelField(t, "truncate("+tt.in+")", truncate(tt.in, tt.n), tt.want)
	}
}
