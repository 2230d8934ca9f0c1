package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zvonbot/zvonocli/internal/config"
	"github.com/zvonbot/zvonocli/internal/executor"
)

// CreateTestModel creates a Model against an unreachable API, sized like a terminal
func CreateTestModel(t *testing.T) *Model {
	t.Helper()
	return newSizedModel(t, config.Default())
}

// CreateTestModelWithServer creates a Model whose API is served by handler.
// The returned counter holds the number of requests the server received.
func CreateTestModelWithServer(t *testing.T, handler http.HandlerFunc, opts ...executor.Option) (*Model, *atomic.Int32) {
	t.Helper()

	hits := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg, err := config.Default().With(config.WithBaseURL(server.URL + "/api"))
	if err != nil {
		t.Fatalf("Failed to build config: %v", err)
	}
	return newSizedModel(t, cfg, opts...), hits
}

func newSizedModel(t *testing.T, cfg config.Config, opts ...executor.Option) *Model {
	t.Helper()

	m, err := New(context.Background(), cfg, nil, nil, opts...)
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// press feeds a key to the model and returns the resulting command
func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyMsg(key))
	return cmd
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// collectMsgs runs a command and its batches, skipping spinner ticks.
// Never pass commands built with tea.Tick: they sleep.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collectMsgs(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// runRequest executes a dispatch command and returns its result message
func runRequest(t *testing.T, cmd tea.Cmd) resultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a request command, got nil")
	}
	for _, msg := range collectMsgs(cmd) {
		if res, ok := msg.(resultMsg); ok {
			return res
		}
	}
	t.Fatal("Command produced no result message")
	return resultMsg{}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
