package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zvonbot/zvonocli/internal/executor"
	"github.com/zvonbot/zvonocli/internal/types"
	"github.com/zvonbot/zvonocli/internal/view"
)

// PickFrom is the --from value that asks for the outgoing phone interactively
const PickFrom = "pick"

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type item struct {
	value string
}

func (i item) FilterValue() string {
	return i.value
}

func (i item) Title() string {
	if i.value == "" {
		return view.DefaultOption
	}
	return i.value
}

func (i item) Description() string { return "" }

type selectorModel struct {
	list      list.Model
	choice    string
	cancelled bool
	quitting  bool
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// Let the list handle keys while the filter input is open
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(item); ok {
				m.choice = i.value
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • /: filter • enter: select • q/esc: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

func newSelector(phones []string) selectorModel {
	items := make([]list.Item, 0, len(phones)+1)
	items = append(items, item{})
	for _, p := range phones {
		items = append(items, item{value: p})
	}

	const defaultWidth = 60
	const listHeight = 16

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Select outgoing phone"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return selectorModel{list: l}
}

// promptForOutgoingPhone shows an interactive list of outgoing phones.
// The first entry leaves the choice to the server and returns "".
func promptForOutgoingPhone(phones []string) (string, error) {
	p := tea.NewProgram(newSelector(phones))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(selectorModel)
	if result.cancelled {
		return "", fmt.Errorf("selection cancelled")
	}
	return result.choice, nil
}

// ResolveOutgoing returns the outgoing phone for --from. "pick" fetches the
// account's numbers and asks the user to choose; any other value is returned as is.
func ResolveOutgoing(ctx context.Context, d *executor.Dispatcher, from string) (string, error) {
	if from != PickFrom {
		return from, nil
	}
	if !isInteractive() {
		return "", fmt.Errorf("--from %s needs an interactive terminal", PickFrom)
	}

	out, err := d.Do(ctx, types.EndpointPhones, nil)
	if err != nil {
		return "", fmt.Errorf("failed to load outgoing phones: %w", err)
	}

	if !out.Response.HasData() {
		return "", nil
	}
	phones, _ := view.ExtractPhones(out.Response.Data, d.Config().UI.MaxPhoneNumbers)
	if len(phones) == 0 {
		return "", nil
	}
	return promptForOutgoingPhone(phones)
}

// itemDelegate is a custom list item delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
