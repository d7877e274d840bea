package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"desksweep/internal/adapters/tui/styles"
	"desksweep/internal/application"
	"desksweep/internal/suggest"
)

// PendingKeyMap defines key bindings for the pending-bin view
type PendingKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Restore key.Binding
	Commit  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var PendingKeys = PendingKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Restore: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restore"),
	),
	Commit: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "commit all"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// PendingModel reviews deferred-bin files before they reach the trash
type PendingModel struct {
	ViewState
	svc    *application.Service
	cursor int
}

// NewPendingModel creates a pending-bin review model
func NewPendingModel(svc *application.Service) *PendingModel {
	return &PendingModel{svc: svc}
}

// Init initializes the pending-bin view
func (m *PendingModel) Init() tea.Cmd { return nil }

// Update handles messages for the pending-bin view
func (m *PendingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		pending := m.svc.Session().PendingBin()

		switch {
		case key.Matches(msg, PendingKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, PendingKeys.Back):
			return m, backToTriage

		case key.Matches(msg, PendingKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, PendingKeys.Down):
			if m.cursor < len(pending)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, PendingKeys.Restore):
			if len(pending) == 0 {
				return m, nil
			}
			rec := pending[m.cursor]
			if !m.svc.RestoreFromBin(rec.ID) {
				m.SetMessage("Could not restore "+rec.Name, true)
				return m, nil
			}
			m.SetMessage("Restored "+rec.Name, false)
			m.clampCursor()
			return m, nil

		case key.Matches(msg, PendingKeys.Commit):
			n := m.svc.CommitBin()
			cmd := statusThenTriage(fmt.Sprintf("Moved %d files to trash", n))
			if notices := m.svc.Notices(); len(notices) > 0 {
				cmd = statusThenTriage(notices[0])
			}
			m.cursor = 0
			return m, cmd
		}
	}

	return m, nil
}

func (m *PendingModel) clampCursor() {
	n := len(m.svc.Session().PendingBin())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the pending-bin view
func (m *PendingModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Pending bin"))
	b.WriteString("\n")

	pending := m.svc.Session().PendingBin()
	if len(pending) == 0 {
		b.WriteString(styles.Subtitle.Render("Nothing waiting for the trash."))
		b.WriteString("\n\n")
		b.WriteString(pendingStatusBar())
		return styles.App.Render(b.String())
	}

	var total int64
	for _, rec := range pending {
		total += rec.Size
	}
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d files · %s", len(pending), suggest.FormatBytes(total))))
	b.WriteString("\n\n")

	for i, rec := range pending {
		line := fmt.Sprintf("%s  %s", rec.Name, suggest.FormatBytes(rec.Size))
		if i == m.cursor {
			b.WriteString(styles.RowSelected.Render("> " + line))
		} else {
			b.WriteString(styles.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pendingStatusBar())
	return styles.App.Render(b.String())
}

func pendingStatusBar() string {
	bindings := []key.Binding{
		PendingKeys.Up, PendingKeys.Down, PendingKeys.Restore,
		PendingKeys.Commit, PendingKeys.Back,
	}
	var parts []string
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
