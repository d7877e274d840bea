package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"desksweep/internal/adapters/tui/styles"
	"desksweep/internal/application"
	"desksweep/internal/domain"
	"desksweep/internal/review"
	"desksweep/internal/suggest"
)

// GroupKeyMap defines key bindings for the group review view
type GroupKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Keep   key.Binding
	Bin    key.Binding
	Action key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var GroupKeys = GroupKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Keep: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "keep file"),
	),
	Bin: key.NewBinding(
		key.WithKeys("B"),
		key.WithHelp("B", "bin file"),
	),
	Action: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5"),
		key.WithHelp("1-5", "apply action"),
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

// GroupModel reviews the members of one suggestion as a focused sub-session
type GroupModel struct {
	ViewState
	svc     *application.Service
	cursor  int
	actions []review.SmartAction
}

// NewGroupModel creates a group review model for the already-started review
func NewGroupModel(svc *application.Service) *GroupModel {
	m := &GroupModel{svc: svc}
	m.refreshActions()
	return m
}

func (m *GroupModel) refreshActions() {
	actions, err := m.svc.GroupActions()
	if err != nil {
		m.actions = nil
		return
	}
	m.actions = actions
}

// Init initializes the group review view
func (m *GroupModel) Init() tea.Cmd { return nil }

// Update handles messages for the group review view
func (m *GroupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		ctx := m.svc.Review()
		if ctx == nil {
			return m, backToTriage
		}

		switch {
		case key.Matches(msg, GroupKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, GroupKeys.Back):
			m.svc.CloseGroupReview()
			return m, backToTriage

		case key.Matches(msg, GroupKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, GroupKeys.Down):
			if m.cursor < len(ctx.Members)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, GroupKeys.Keep):
			return m.decideMember(ctx, domain.DecisionKeep)

		case key.Matches(msg, GroupKeys.Bin):
			return m.decideMember(ctx, domain.DecisionBin)

		case key.Matches(msg, GroupKeys.Action):
			idx := int(msg.String()[0] - '1')
			if idx < 0 || idx >= len(m.actions) {
				m.SetMessage("No such action", true)
				return m, nil
			}
			if err := m.svc.ApplyGroupAction(idx); err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			if m.svc.Review() == nil {
				return m, statusThenTriage("Group resolved")
			}
			m.refreshActions()
			m.clampCursor()
			return m, nil
		}
	}

	return m, nil
}

func (m *GroupModel) decideMember(ctx *review.Context, d domain.Decision) (tea.Model, tea.Cmd) {
	if len(ctx.Members) == 0 {
		return m, backToTriage
	}
	member := ctx.Members[m.cursor]
	if err := m.svc.DecideID(d, member.ID); err != nil {
		m.SetMessage(err.Error(), true)
		return m, nil
	}
	if ctx.DropMembers([]domain.FileID{member.ID}) {
		m.svc.CloseGroupReview()
		return m, statusThenTriage("Group resolved")
	}
	m.refreshActions()
	m.clampCursor()
	return m, nil
}

func (m *GroupModel) clampCursor() {
	ctx := m.svc.Review()
	if ctx == nil {
		m.cursor = 0
		return
	}
	if m.cursor >= len(ctx.Members) {
		m.cursor = len(ctx.Members) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func backToTriage() tea.Msg { return SwitchToTriageMsg{} }

func statusThenTriage(text string) tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return SwitchToTriageMsg{} },
		func() tea.Msg { return StatusMsg{Text: text} },
	)
}

// View renders the group review view
func (m *GroupModel) View() string {
	var b strings.Builder

	ctx := m.svc.Review()
	if ctx == nil {
		return styles.App.Render(styles.Subtitle.Render("No review open"))
	}

	b.WriteString(styles.Title.Render("Group review"))
	b.WriteString("\n")
	b.WriteString(styles.SuggestionTag.Render(ctx.Suggestion.Kind.String()))
	b.WriteString(styles.SuggestionText.Render(ctx.Suggestion.Message))
	b.WriteString("\n\n")

	for i, member := range ctx.Members {
		line := fmt.Sprintf("%s  %s · %s",
			member.Name,
			member.Type,
			suggest.FormatBytes(member.Size),
		)
		if !member.CreatedAt.IsZero() {
			line += " · " + member.CreatedAt.Format("2006-01-02 15:04")
		}
		if i == m.cursor {
			b.WriteString(styles.RowSelected.Render("> " + line))
		} else {
			b.WriteString(styles.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(m.actions) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.InputLabel.Render("Smart actions"))
		b.WriteString("\n")
		for i, a := range m.actions {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				styles.HelpKey.Render(fmt.Sprintf("%d", i+1)),
				a.Label,
			))
		}
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
	b.WriteString(groupStatusBar())
	return styles.App.Render(b.String())
}

func groupStatusBar() string {
	bindings := []key.Binding{
		GroupKeys.Up, GroupKeys.Down, GroupKeys.Keep, GroupKeys.Bin,
		GroupKeys.Action, GroupKeys.Back,
	}
	var parts []string
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
