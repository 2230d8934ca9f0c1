package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/zvonbot/zvonocli/internal/executor"
	"github.com/zvonbot/zvonocli/internal/filter"
	"github.com/zvonbot/zvonocli/internal/types"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by -o
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatBody = "body"
)

// isInteractive checks if stdin is a terminal (not piped)
func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// isTerminal checks if w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// RunOptions contains options for running a request in CLI mode
type RunOptions struct {
	Control      executor.Control
	Endpoint     types.Endpoint
	Payload      any
	OutputFormat string // text, json, yaml, body; empty picks text on a terminal and body otherwise
	Filter       string // JMESPath filter expression
	Query        string // JMESPath query expression
	Color        bool   // highlight JSON in text output

	Stdout io.Writer
	Stderr io.Writer
}

// consoleSink prints progress to stderr and keeps the final rendering
type consoleSink struct {
	w      io.Writer
	result executor.Rendering
}

func (s *consoleSink) Progress(_ executor.Control, r executor.Rendering) {
	if s.w != nil {
		fmt.Fprintln(s.w, r.Title)
	}
}

func (s *consoleSink) Result(_ executor.Control, r executor.Rendering) {
	s.result = r
}

// Run executes one request and prints its outcome
func Run(ctx context.Context, d *executor.Dispatcher, opts RunOptions) error {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	format := opts.OutputFormat
	if format == "" {
		if isTerminal(stdout) {
			format = FormatText
		} else {
			format = FormatBody
		}
	}
	if err := ValidateFormat(format); err != nil {
		return err
	}
	pipeline, err := filter.Compile(opts.Filter, opts.Query)
	if err != nil {
		return err
	}

	control := opts.Control
	if control == "" {
		control = executor.Control(opts.Endpoint.Name)
	}

	sink := &consoleSink{}
	if format == FormatText {
		sink.w = stderr
	}

	out, err := d.Dispatch(ctx, control, opts.Endpoint, opts.Payload, sink)

	var netErr *executor.NetworkError
	if out == nil || out.Result == nil {
		// Nothing came back: report on stderr whatever the format
		if sink.result.Title != "" {
			fmt.Fprintln(stderr, sink.result.String())
		}
		return err
	}
	if errors.As(err, &netErr) && format != FormatText {
		fmt.Fprintln(stderr, sink.result.String())
	}

	body := out.Result.Body
	if !pipeline.Empty() {
		filtered, ferr := pipeline.Apply(body)
		if ferr != nil {
			fmt.Fprintf(stderr, "Warning: filter/query error: %v\n", ferr)
		} else {
			body = filtered
		}
	}

	output, ferr := formatOutput(opts.Endpoint, out, sink.result, body, format, !pipeline.Empty(), opts.Color)
	if ferr != nil {
		return fmt.Errorf("failed to format output: %w", ferr)
	}
	fmt.Fprint(stdout, output)

	return err
}

// ValidateFormat checks an -o value
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML, FormatBody:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use text, json, yaml or body)", format)
	}
}

// document is the json/yaml view of an outcome
type document struct {
	Endpoint   string `json:"endpoint" yaml:"endpoint"`
	RequestID  string `json:"requestId" yaml:"requestId"`
	Status     int    `json:"status" yaml:"status"`
	DurationMs int64  `json:"durationMs" yaml:"durationMs"`
	Success    bool   `json:"success" yaml:"success"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	Data       any    `json:"data,omitempty" yaml:"data,omitempty"`
	Raw        string `json:"raw,omitempty" yaml:"raw,omitempty"`
}

func newDocument(ep types.Endpoint, out *executor.Outcome, body string, queried bool) document {
	doc := document{
		Endpoint:   ep.Name,
		RequestID:  out.Result.RequestID,
		Status:     out.Result.Status,
		DurationMs: out.Result.Duration,
	}
	if out.Response == nil {
		doc.Raw = out.Result.Body
		return doc
	}

	doc.Success = out.Response.Success
	doc.Message = out.Response.Message
	doc.Error = out.Response.Error

	data := []byte(out.Response.Data)
	if queried {
		data = []byte(body)
	}
	if len(data) > 0 {
		var v any
		if err := json.Unmarshal(data, &v); err == nil {
			doc.Data = v
		}
	}
	return doc
}

// formatOutput formats the outcome based on the output format
func formatOutput(ep types.Endpoint, out *executor.Outcome, rendering executor.Rendering, body, format string, queried, color bool) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(newDocument(ep, out, body, queried), "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case FormatYAML:
		data, err := yaml.Marshal(newDocument(ep, out, body, queried))
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatBody:
		return ensureNewline(body), nil

	default:
		var sb strings.Builder

		statusColor := getStatusColor(rendering.Kind)
		sb.WriteString(fmt.Sprintf("%s%s%s\n", colorize(color, statusColor), rendering.Title, colorize(color, colorReset)))

		text := rendering.Text
		if queried {
			text = body
		}
		if text != "" {
			sb.WriteString("\n")
			sb.WriteString(highlight(text, color))
			sb.WriteString("\n")
		}

		sb.WriteString(fmt.Sprintf("\n%s | Duration: %s | Size: %s | Request: %s\n",
			out.Result.StatusText,
			executor.FormatDuration(out.Result.Duration),
			executor.FormatSize(out.Result.ResponseSize),
			out.Result.RequestID))

		return sb.String(), nil
	}
}

// highlight colors JSON fragments for the terminal; anything else is returned unchanged
func highlight(text string, color bool) string {
	if !color {
		return text
	}
	var sb strings.Builder
	if err := quick.Highlight(&sb, text, "json", "terminal256", "monokai"); err != nil {
		return text
	}
	return sb.String()
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

func getStatusColor(kind executor.Kind) string {
	switch kind {
	case executor.KindSuccess:
		return colorGreen
	case executor.KindError:
		return colorRed
	default:
		return colorYellow
	}
}

func colorize(enabled bool, code string) string {
	if !enabled {
		return ""
	}
	return code
}

// UseColor reports whether text output to w should be highlighted
func UseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(w)
}
