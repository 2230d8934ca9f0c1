package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zvonbot/zvonocli/internal/executor"
	"github.com/zvonbot/zvonocli/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Underline(true).
			Padding(0, 1)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(colorGray).
				Padding(0, 1)
)

// renderMain renders tabs, the active panel, the result area and the status bar
func (m *Model) renderMain() string {
	panelBorder := colorGreen
	resultBorder := colorGray
	if m.mode == ModeResult {
		panelBorder, resultBorder = colorGray, colorGreen
	}

	panelBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(panelBorder).
		Padding(0, 1).
		Width(m.width - 2).
		Render(m.renderPanel())

	resultBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(resultBorder).
		Padding(0, 1).
		Width(m.width - 2).
		Render(m.renderResult())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		panelBox,
		resultBox,
		m.renderNotices(),
		m.renderStatusBar(),
	)
}

// renderTabs renders the tab strip with the active tab highlighted
func (m *Model) renderTabs() string {
	var parts []string
	active := m.tabs.Active()
	for i, spec := range m.tabs.Specs() {
		label := fmt.Sprintf("%d %s", i+1, spec.Title)
		if spec.Name == active {
			parts = append(parts, styleTabActive.Render(label))
		} else {
			parts = append(parts, styleTabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderPanel renders the rows of the active panel
func (m *Model) renderPanel() string {
	panel := m.tabs.Panel()
	focused := m.focus[panel]

	var lines []string
	for i, item := range panelLayout[panel] {
		lines = append(lines, m.renderItem(item, i == focused))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderItem(item panelItem, focused bool) string {
	cursor := "  "
	if focused {
		cursor = "> "
	}
	editing := focused && m.mode == ModeEdit
	label := fmt.Sprintf("%-*s", LabelWidth, item.label)

	var line string
	switch item.kind {
	case kindInput:
		value := m.inputs[item.id].View()
		if !editing {
			value = m.fieldValue(item.id)
		}
		line = label + value

	case kindTextArea:
		if editing {
			// The text area is taller than one row: indent it under the label
			area := m.areas[item.id].View()
			return cursor + label + "\n" + lipgloss.NewStyle().PaddingLeft(2+LabelWidth).Render(area)
		}
		line = label + truncate(oneLine(m.fieldValue(item.id)), m.fieldWidth())

	case kindDropdown:
		line = label + "‹ " + m.dropdowns[item.id].Label() + " ›"

	case kindButton:
		text := "[ " + item.label + " ]"
		if hint := m.keybinds.GetBindingString(keybinds.ContextNormal, item.action); item.action != "" && hint != "unbound" {
			text += " " + styleSubtle.Render(hint)
		}
		if m.requests.Pending(item.control) {
			return cursor + styleSubtle.Render("[ "+item.label+" ]") + " " + m.spinner.View()
		}
		line = text
	}

	if focused && !editing {
		return cursor + styleSelected.Render(line)
	}
	return cursor + line
}

// renderResult renders the result area
func (m *Model) renderResult() string {
	if !m.hasResult {
		return styleSubtle.Render("No requests yet. Press t to test the API key.")
	}
	return m.resultView.View()
}

// formatResult styles a rendering for the result viewport
func (m *Model) formatResult() string {
	var title string
	switch m.result.Kind {
	case executor.KindSuccess:
		title = styleSuccess.Render(m.result.Title)
	case executor.KindError:
		title = styleError.Render(m.result.Title)
	default:
		title = styleWarning.Render(m.result.Title)
	}

	if m.result.Text == "" {
		return title
	}
	text := m.result.Text
	if m.resultView.Width > 0 {
		text = lipgloss.NewStyle().Width(m.resultView.Width).Render(text)
	}
	return title + "\n\n" + text
}

// renderNotices renders the transient notifications on one line
func (m *Model) renderNotices() string {
	var parts []string
	for _, notice := range m.notifier.Active() {
		parts = append(parts, styleSuccess.Render(notice.Text))
	}
	return strings.Join(parts, "  ")
}

// renderStatusBar renders the base URL and the footer message
func (m *Model) renderStatusBar() string {
	left := styleTitle.Render("zvonocli") + " " + styleSubtle.Render(m.cfg.API.BaseURL)

	var right string
	switch {
	case m.mode == ModeEdit:
		right = styleSubtle.Render("enter: done | esc: cancel | tab: next field")
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		right = m.statusMsg
	case m.mode == ModeResult:
		right = styleSubtle.Render("j/k: scroll | c: copy | esc: back")
	default:
		right = styleSubtle.Render("? for help | q to quit")
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return left + strings.Repeat(" ", spacing) + right
}

// renderHelp renders the help overlay
func (m *Model) renderHelp() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(0, 1).
		Width(m.width - 2).
		Render(styleTitle.Render("Keys") + "\n\n" + m.helpView.View())
}

// updateHelpView fills the help viewport from the active keybindings
func (m *Model) updateHelpView() {
	sections := []struct {
		title   string
		context keybinds.Context
	}{
		{"Panels", keybinds.ContextNormal},
		{"Editing", keybinds.ContextForm},
		{"Result", keybinds.ContextResult},
	}

	var sb strings.Builder
	for _, section := range sections {
		sb.WriteString(styleWarning.Render(section.title) + "\n")
		for _, b := range m.keybinds.ListBindings(section.context) {
			if b.Action == keybinds.ActionGoToTopPrepare || b.Action == keybinds.ActionNoOp {
				continue
			}
			info := keybinds.GetActionInfo(b.Action)
			sb.WriteString(fmt.Sprintf("  %-12s %s\n", b.Key, info.Description))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(styleSubtle.Render("Overrides: ~/.zvonocli/keybinds.json"))

	m.helpView.SetContent(sb.String())
	m.helpView.GotoTop()
}

// updateLayout resizes fields and viewports to the window
func (m *Model) updateLayout() {
	width := m.fieldWidth()
	for _, ti := range m.inputs {
		ti.Width = width
	}
	for _, ta := range m.areas {
		ta.SetWidth(width)
	}

	m.resultView.Width = m.width - 6 // border + padding
	m.resultView.Height = max(MinResultHeight, m.height-m.panelHeight()-ChromeLines)

	m.helpView.Width = m.width - 6
	m.helpView.Height = max(MinResultHeight, m.height-6)

	if m.hasResult {
		m.resultView.SetContent(m.formatResult())
	}
}

// panelHeight is the tallest panel, with a text area open
func (m *Model) panelHeight() int {
	tallest := 0
	for _, items := range panelLayout {
		tallest = max(tallest, len(items))
	}
	return tallest + TextAreaHeight
}

func (m *Model) fieldWidth() int {
	return max(10, m.width-LabelWidth-PanelChromeWidth)
}

// truncate cuts s to n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
