package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"desksweep/internal/adapters/tui/styles"
)

// HelpModel shows the full key reference
type HelpModel struct {
	ViewState
}

// NewHelpModel creates the help view
func NewHelpModel() *HelpModel { return &HelpModel{} }

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd { return nil }

// Update handles messages for the help view; any key returns to triage
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, backToTriage
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Keys"))
	b.WriteString("\n")

	sections := []struct {
		name string
		keys [][2]string
	}{
		{"Decisions", [][2]string{
			{"k", "keep the current file"},
			{"b / d", "bin the current file"},
			{"s", "stack for later"},
			{"c", "send to cloud storage"},
			{"space / n", "skip without deciding"},
			{"u", "undo the last decision"},
		}},
		{"Navigation", [][2]string{
			{"f", "cycle the type filter"},
			{"g / enter", "review a suggested group"},
			{"p", "review the pending bin"},
			{"y", "copy the file path"},
		}},
		{"Group review", [][2]string{
			{"↑/↓ or j/k", "move between members"},
			{"K / B", "keep or bin one member"},
			{"1-5", "apply a smart action"},
			{"esc", "back to triage"},
		}},
		{"General", [][2]string{
			{"?", "this help"},
			{"q / ctrl+c", "quit"},
		}},
	}

	for _, sec := range sections {
		b.WriteString(styles.InputLabel.Render(sec.name))
		b.WriteString("\n")
		for _, kv := range sec.keys {
			b.WriteString("  ")
			b.WriteString(styles.HelpKey.Render(padRight(kv[0], 12)))
			b.WriteString(styles.HelpDesc.Render(kv[1]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.MutedText.Render("press any key to return"))
	return styles.App.Render(b.String())
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}
