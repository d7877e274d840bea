package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"desksweep/internal/adapters/tui/styles"
	"desksweep/internal/application"
	"desksweep/internal/domain"
	"desksweep/internal/suggest"
)

// TriageKeyMap defines key bindings for the triage view
type TriageKeyMap struct {
	Keep     key.Binding
	Bin      key.Binding
	Stack    key.Binding
	Cloud    key.Binding
	Skip     key.Binding
	Undo     key.Binding
	Filter   key.Binding
	Group    key.Binding
	Pending  key.Binding
	CopyPath key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var TriageKeys = TriageKeyMap{
	Keep: key.NewBinding(
		key.WithKeys("k"),
		key.WithHelp("k", "keep"),
	),
	Bin: key.NewBinding(
		key.WithKeys("b", "d"),
		key.WithHelp("b", "bin"),
	),
	Stack: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stack"),
	),
	Cloud: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cloud"),
	),
	Skip: key.NewBinding(
		key.WithKeys(" ", "n"),
		key.WithHelp("space", "skip"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "cycle filter"),
	),
	Group: key.NewBinding(
		key.WithKeys("g", "enter"),
		key.WithHelp("g", "review group"),
	),
	Pending: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pending bin"),
	),
	CopyPath: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// filterCycle is the order the f key steps through
var filterCycle = []domain.FileType{
	domain.FileTypeImage,
	domain.FileTypeVideo,
	domain.FileTypeAudio,
	domain.FileTypeDocument,
	domain.FileTypeArchive,
	domain.FileTypeFolder,
	domain.FileTypeOther,
}

// TriageModel is the model for the one-file-at-a-time triage view
type TriageModel struct {
	ViewState
	svc       *application.Service
	filterPos int // -1 = no filter
}

// NewTriageModel creates a new triage view model
func NewTriageModel(svc *application.Service) *TriageModel {
	return &TriageModel{svc: svc, filterPos: -1}
}

// Init initializes the triage view
func (m *TriageModel) Init() tea.Cmd { return nil }

// Update handles messages for the triage view
func (m *TriageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case StatusMsg:
		m.SetMessage(msg.Text, msg.IsErr)
		return m, nil

	case SuggestionsReadyMsg:
		// Re-render picks the fresh cache entry up; nothing to mutate here.
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, TriageKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, TriageKeys.Keep):
			return m, m.decide(domain.DecisionKeep)
		case key.Matches(msg, TriageKeys.Bin):
			return m, m.decide(domain.DecisionBin)
		case key.Matches(msg, TriageKeys.Stack):
			return m, m.decide(domain.DecisionStack)
		case key.Matches(msg, TriageKeys.Cloud):
			return m, m.decide(domain.DecisionCloud)

		case key.Matches(msg, TriageKeys.Skip):
			m.svc.Advance()
			return m, nil

		case key.Matches(msg, TriageKeys.Undo):
			if !m.svc.Undo() {
				m.SetMessage("Nothing to undo", true)
			} else {
				m.SetMessage("Undone", false)
			}
			return m, nil

		case key.Matches(msg, TriageKeys.Filter):
			m.cycleFilter()
			return m, nil

		case key.Matches(msg, TriageKeys.Group):
			if i, ok := m.firstGroupSuggestion(); ok {
				return m, func() tea.Msg { return SwitchToGroupMsg{SuggestionIndex: i} }
			}
			m.SetMessage("No group to review here", true)
			return m, nil

		case key.Matches(msg, TriageKeys.Pending):
			return m, func() tea.Msg { return SwitchToPendingMsg{} }

		case key.Matches(msg, TriageKeys.CopyPath):
			if rec, ok := m.svc.Current(); ok {
				if err := clipboard.WriteAll(rec.Path); err != nil {
					m.SetMessage(err.Error(), true)
				} else {
					m.SetMessage("Path copied", false)
				}
			}
			return m, nil

		case key.Matches(msg, TriageKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

func (m *TriageModel) decide(d domain.Decision) tea.Cmd {
	if err := m.svc.Decide(d); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	for _, notice := range m.svc.Notices() {
		m.SetMessage(notice, true)
	}
	return nil
}

func (m *TriageModel) cycleFilter() {
	m.filterPos++
	if m.filterPos >= len(filterCycle) {
		m.filterPos = -1
		m.svc.ClearFilter()
		m.SetMessage("Filter cleared", false)
		return
	}
	t := filterCycle[m.filterPos]
	m.svc.SetFilter(t)
	m.SetMessage(fmt.Sprintf("Showing %s files only", t), false)
}

func (m *TriageModel) firstGroupSuggestion() (int, bool) {
	for i, s := range m.svc.CurrentSuggestions() {
		if s.IsGroup() {
			return i, true
		}
	}
	return 0, false
}

// View renders the triage view
func (m *TriageModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Desksweep"))
	b.WriteString("\n")

	session := m.svc.Session()
	rec, ok := m.svc.Current()
	if !ok {
		if session.LoadedCount() == 0 {
			b.WriteString(styles.Subtitle.Render("Nothing to triage here."))
		} else {
			b.WriteString(styles.Success.Render("All done!"))
			b.WriteString("\n")
			b.WriteString(m.countersLine())
		}
		b.WriteString("\n\n")
		b.WriteString(m.statusBar())
		return styles.App.Render(b.String())
	}

	b.WriteString(m.progressLine())
	b.WriteString("\n\n")
	b.WriteString(m.fileCard(rec))
	b.WriteString("\n\n")
	b.WriteString(m.suggestionPanel(rec))
	b.WriteString("\n")

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
	b.WriteString(m.countersLine())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return styles.App.Render(b.String())
}

func (m *TriageModel) progressLine() string {
	session := m.svc.Session()
	line := fmt.Sprintf("file %d of %d", session.Cursor()+1, session.VisibleLen())
	if t, ok := session.Filter(); ok {
		line += fmt.Sprintf("  ·  filter: %s", t)
	}
	return styles.Subtitle.Render(line)
}

func (m *TriageModel) fileCard(rec domain.FileRecord) string {
	var b strings.Builder
	b.WriteString(styles.FileName.Render(rec.Name))
	b.WriteString("\n")
	meta := fmt.Sprintf("%s · %s", rec.Type, suggest.FormatBytes(rec.Size))
	if !rec.CreatedAt.IsZero() {
		meta += " · " + rec.CreatedAt.Format("2006-01-02 15:04")
	}
	if _, ok := m.svc.Thumbnail(rec.ID); ok {
		meta += " · preview ready"
	}
	b.WriteString(styles.FileMeta.Render(meta))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(rec.Path))
	return styles.Card.Render(b.String())
}

func (m *TriageModel) suggestionPanel(rec domain.FileRecord) string {
	sugs := m.svc.CurrentSuggestions()
	if len(sugs) == 0 {
		return styles.MutedText.Render("no suggestions")
	}
	var b strings.Builder
	for _, s := range sugs {
		b.WriteString(styles.SuggestionTag.Render(s.Kind.String()))
		b.WriteString(styles.SuggestionText.Render(s.Message))
		if s.Hint != "" {
			b.WriteString(styles.SuggestionHint.Render("  · " + s.Hint))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *TriageModel) countersLine() string {
	c := m.svc.Session().Counters()
	parts := []string{
		fmt.Sprintf("kept %d", c.Kept),
		fmt.Sprintf("binned %d", c.Binned),
		fmt.Sprintf("reclaimed %s", suggest.FormatBytes(c.ReclaimedBytes)),
	}
	if pending := len(m.svc.Session().PendingBin()); pending > 0 {
		parts = append(parts, fmt.Sprintf("pending bin %d", pending))
	}
	if stacked := len(m.svc.Session().Stacked()); stacked > 0 {
		parts = append(parts, fmt.Sprintf("stacked %d", stacked))
	}
	return styles.FileMeta.Render(strings.Join(parts, "  ·  "))
}

func (m *TriageModel) statusBar() string {
	bindings := []key.Binding{
		TriageKeys.Keep, TriageKeys.Bin, TriageKeys.Stack, TriageKeys.Cloud,
		TriageKeys.Skip, TriageKeys.Undo, TriageKeys.Group, TriageKeys.Help,
	}
	var parts []string
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
