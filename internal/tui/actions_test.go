package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zvonbot/zvonocli/internal/executor"
	"github.com/zvonbot/zvonocli/internal/types"
	"github.com/zvonbot/zvonocli/internal/view"
)

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	}
}

func phonesBody(n int) string {
	entries := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		entries = append(entries, fmt.Sprintf(`{"phone":"7700000%04d"}`, i))
	}
	entries = append(entries, `{"id":99}`)
	return `{"success":true,"data":[` + strings.Join(entries, ",") + `]}`
}

func TestPress_TestKeyRendersResult(t *testing.T) {
	m, hits := CreateTestModelWithServer(t, respond(`{"success":true,"message":"API key is valid","data":{"user":1}}`))
	press(m, "3")

	cmd := press(m, "t")
	AssertModelField(t, "pending", m.requests.Pending(executor.ControlTestKey), true)

	res := runRequest(t, cmd)
	AssertNoError(t, res.err)
	AssertModelField(t, "hits", hits.Load(), int32(1))
	AssertModelField(t, "locks held", m.dispatcher.Locks().Held(), 0)

	m.Update(res)
	AssertModelField(t, "pending after result", m.requests.Pending(executor.ControlTestKey), false)
	AssertModelField(t, "hasResult", m.hasResult, true)
	AssertModelField(t, "result kind", m.result.Kind, executor.KindSuccess)
	AssertModelField(t, "result title", m.result.Title, "✅ API key is valid")
}

func TestPress_ApplicationFailureShowsServerText(t *testing.T) {
	m, _ := CreateTestModelWithServer(t, respond(`{"success":false,"error":"Invalid API key"}`))

	res := runRequest(t, press(m, "p"))
	var apiErr *executor.APIError
	if !errors.As(res.err, &apiErr) {
		t.Fatalf("err = %v, want *executor.APIError", res.err)
	}

	m.Update(res)
	AssertModelField(t, "result kind", m.result.Kind, executor.KindError)
	AssertModelField(t, "result title", m.result.Title, "❌ "+m.cfg.Messages.Error.API)
	AssertModelField(t, "result text", m.result.Text, "Invalid API key")
}

func TestPress_PhonesPopulateDropdowns(t *testing.T) {
	m, _ := CreateTestModelWithServer(t, respond(phonesBody(12)))
	m.dropdowns[fieldSMSFrom].Populate([]string{"77000000003"})
	m.dropdowns[fieldSMSFrom].Select("77000000003")

	res := runRequest(t, press(m, "n"))
	m.Update(res)

	voice := m.dropdowns[fieldVoiceFrom].Options()
	AssertModelField(t, "voice options", len(voice), 10)
	AssertModelField(t, "first option", voice[0], "77000000000")
	AssertModelField(t, "sms options", len(m.dropdowns[fieldSMSFrom].Options()), 10)
	AssertModelField(t, "sms selection kept", m.fieldValue(fieldSMSFrom), "77000000003")
	AssertModelField(t, "voice selection", m.fieldValue(fieldVoiceFrom), "")

	notices := m.notifier.Active()
	if len(notices) != 1 {
		t.Fatalf("notices = %d, want 1", len(notices))
	}
	AssertModelField(t, "notice", notices[0].Text, view.PhonesLoadedText(10))

	m.Update(dismissNoticeMsg{id: notices[0].ID})
	AssertModelField(t, "notices after dismiss", len(m.notifier.Active()), 0)
}

func TestPress_BlankTextRejectedBeforeSending(t *testing.T) {
	tests := []struct {
		name  string
		tab   string
		field string
	}{
		{"sms", "2", fieldSMSText},
		{"voice", "1", fieldVoiceText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, hits := CreateTestModelWithServer(t, respond(`{"success":true}`))
			press(m, tt.tab)
			m.setFieldValue(tt.field, "   ")

			cmd := press(m, "s")
			if cmd != nil {
				t.Error("no request should be scheduled")
			}
			AssertModelField(t, "hits", hits.Load(), int32(0))
			AssertModelField(t, "result kind", m.result.Kind, executor.KindError)
			AssertModelField(t, "result title", m.result.Title, "❌ "+m.cfg.Messages.Error.Validation)
			AssertModelField(t, "result text", m.result.Text, "Message text cannot be empty")
		})
	}
}

func TestPress_VoiceSendsCleanPayload(t *testing.T) {
	var got map[string]any
	var gotPath string
	m, _ := CreateTestModelWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":1}}`)
	})
	m.setFieldValue(fieldVoicePhone, "+7 (707) 962-16-30")
	m.dropdowns[fieldVoiceFrom].Populate([]string{"77001112233"})
	m.dropdowns[fieldVoiceFrom].Select("77001112233")

	res := runRequest(t, press(m, "s"))
	AssertNoError(t, res.err)
	AssertModelField(t, "endpoint", res.endpoint, types.EndpointSendVoice)
	AssertModelField(t, "path", gotPath, "/api/send-voice")
	AssertModelField(t, "phone", got["phone"], any("77079621630"))
	AssertModelField(t, "recordId", got["recordId"], any(float64(247273)))
	AssertModelField(t, "outgoingPhone", got["outgoingPhone"], any("77001112233"))
}

func TestPress_QuickSMSUsesSampleData(t *testing.T) {
	var got map[string]any
	m, _ := CreateTestModelWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	m.setFieldValue(fieldSMSText, "") // the form is not used

	res := runRequest(t, press(m, "m"))
	AssertNoError(t, res.err)
	AssertModelField(t, "text", got["text"], any(m.cfg.TestData.SMSText))
	if _, ok := got["outgoingPhone"]; ok {
		t.Error("outgoingPhone should be omitted for the default entry")
	}
}

func TestPress_BusyControlSendsNothing(t *testing.T) {
	m, hits := CreateTestModelWithServer(t, respond(`{"success":true}`))
	m.requests.Start(executor.ControlTestKey)

	cmd := press(m, "t")
	if cmd == nil {
		t.Error("expected a status timeout command")
	}
	AssertModelField(t, "statusMsg", m.statusMsg, "Request already in progress")
	AssertModelField(t, "hits", hits.Load(), int32(0))

	// Another control is still usable
	if c := press(m, "p"); c == nil {
		t.Error("profile should still dispatch")
	}
	AssertModelField(t, "profile pending", m.requests.Pending(executor.ControlProfile), true)
}

func TestSubmit_ToolsTabHasNothingToSend(t *testing.T) {
	m, hits := CreateTestModelWithServer(t, respond(`{"success":true}`))
	press(m, "3")
	press(m, "s")

	AssertModelField(t, "statusMsg", m.statusMsg, "Nothing to send on this tab")
	AssertModelField(t, "hits", hits.Load(), int32(0))
}

func TestStartup_LoadsPhonesSilently(t *testing.T) {
	m, _ := CreateTestModelWithServer(t, respond(phonesBody(2)))

	res := runRequest(t, m.Init())
	AssertModelField(t, "control", res.control, executor.ControlStartup)
	m.Update(res)

	AssertModelField(t, "hasResult", m.hasResult, false)
	AssertModelField(t, "voice options", len(m.dropdowns[fieldVoiceFrom].Options()), 2)
	AssertModelField(t, "notices", len(m.notifier.Active()), 1)
}

func TestStartup_FailureIsIgnored(t *testing.T) {
	m, _ := CreateTestModelWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	res := runRequest(t, m.Init())
	AssertError(t, res.err)
	_, cmd := m.Update(res)

	if cmd != nil {
		t.Error("a failed startup load should not schedule anything")
	}
	AssertModelField(t, "hasResult", m.hasResult, false)
	AssertModelField(t, "notices", len(m.notifier.Active()), 0)
	AssertModelField(t, "startup pending", m.requests.Pending(executor.ControlStartup), false)
}

func TestPhones_UnusablePayloadLeavesDropdowns(t *testing.T) {
	bodies := []struct {
		name string
		body string
	}{
		{"data not a list", `{"success":true,"data":"not-a-list"}`},
		{"entries without phone", `{"success":true,"data":[{"id":1}]}`},
		{"empty list", `{"success":true,"data":[]}`},
		{"no data", `{"success":true}`},
		{"null data", `{"success":true,"data":null}`},
	}

	paths := []struct {
		name string
		run  func(m *Model) tea.Cmd
	}{
		{"phones key", func(m *Model) tea.Cmd { return press(m, "n") }},
		{"startup", func(m *Model) tea.Cmd { return m.Init() }},
	}

	for _, b := range bodies {
		for _, p := range paths {
			t.Run(b.name+"/"+p.name, func(t *testing.T) {
				m, _ := CreateTestModelWithServer(t, respond(b.body))
				m.dropdowns[fieldSMSFrom].Populate([]string{"77001112233"})
				m.dropdowns[fieldSMSFrom].Select("77001112233")

				res := runRequest(t, p.run(m))
				AssertNoError(t, res.err)
				_, cmd := m.Update(res)

				if cmd != nil {
					t.Error("no notice should be scheduled")
				}
				AssertModelField(t, "notices", len(m.notifier.Active()), 0)
				AssertModelField(t, "sms options", len(m.dropdowns[fieldSMSFrom].Options()), 1)
				AssertModelField(t, "sms selection", m.fieldValue(fieldSMSFrom), "77001112233")
				AssertModelField(t, "voice options", len(m.dropdowns[fieldVoiceFrom].Options()), 0)
			})
		}
	}
}

type panicTransport struct{}

func (panicTransport) RoundTrip(*http.Request) (*http.Response, error) {
	panic("transport exploded")
}

func TestPress_PanicRenderedAsError(t *testing.T) {
	m, _ := CreateTestModelWithServer(t, respond(`{"success":true}`),
		executor.WithHTTPClient(&http.Client{Transport: panicTransport{}}))

	res := runRequest(t, press(m, "r"))
	AssertError(t, res.err)
	AssertModelField(t, "locks held", m.dispatcher.Locks().Held(), 0)

	m.Update(res)
	AssertModelField(t, "result kind", m.result.Kind, executor.KindError)
	if !strings.Contains(m.result.Text, "transport exploded") {
		t.Errorf("result text = %q, want the panic value", m.result.Text)
	}
}

func TestRecoverCmd(t *testing.T) {
	m := CreateTestModel(t)

	cmd := m.recoverCmd(func() tea.Msg {
		panic("boom")
	}, func(r any) tea.Msg {
		return clipboardMsg{err: fmt.Errorf("recovered: %v", r)}
	})

	msg, ok := cmd().(clipboardMsg)
	if !ok {
		t.Fatal("expected the fallback message")
	}
	AssertModelField(t, "error", msg.err.Error(), "recovered: boom")
}

func TestCopyResult(t *testing.T) {
	var copied string
	original := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = original })

	m := CreateTestModel(t)

	press(m, "c")
	AssertModelField(t, "errorMsg without result", m.errorMsg, "No result to copy")

	m.showResult(executor.Rendering{Kind: executor.KindSuccess, Title: "✅ done", Text: "body"})
	cmd := press(m, "c")
	msg := cmd()
	AssertModelField(t, "copied", copied, "✅ done\n\nbody")

	m.Update(msg)
	AssertModelField(t, "statusMsg", m.statusMsg, "Result copied to clipboard")
	AssertModelField(t, "errorMsg", m.errorMsg, "")
}

func TestCopyResult_Failure(t *testing.T) {
	original := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = original })

	m := CreateTestModel(t)
	m.showResult(executor.Rendering{Title: "x"})

	m.Update(press(m, "c")())
	AssertModelField(t, "errorMsg", m.errorMsg, "Failed to copy to clipboard: no clipboard")
}
