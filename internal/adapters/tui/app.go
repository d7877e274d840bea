// Package tui implements the terminal interface: a view-switching
// bubbletea application over the session service.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"desksweep/internal/adapters/tui/views"
	"desksweep/internal/application"
	"desksweep/internal/debug"
	"desksweep/internal/suggest"
)

// View represents the current active view
type View int

const (
	ViewTriage View = iota
	ViewGroup
	ViewPending
	ViewHelp
)

// App is the root model that routes messages to the active view
type App struct {
	svc     *application.Service
	current View

	triage  tea.Model
	group   tea.Model
	pending tea.Model
	help    tea.Model

	width  int
	height int
}

// NewApp creates the root application model
func NewApp(svc *application.Service) *App {
	return &App{
		svc:     svc,
		current: ViewTriage,
		triage:  views.NewTriageModel(svc),
		pending: views.NewPendingModel(svc),
		help:    views.NewHelpModel(),
	}
}

// resultMsg carries a completed suggestion computation off the engine channel
type resultMsg struct {
	result suggest.Result
	open   bool
}

// waitForResult blocks on the engine's results channel. It re-arms after
// every delivery so the pump runs for the program's whole lifetime.
func (a *App) waitForResult() tea.Cmd {
	return func() tea.Msg {
		r, ok := <-a.svc.Engine().Results()
		return resultMsg{result: r, open: ok}
	}
}

// Init starts the engine pump and the initial view
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.triage.Init(), a.waitForResult())
}

// Update routes messages to the active view and handles view switching
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Size reaches every view so switches render correctly.
		a.broadcast(msg)
		return a, nil

	case resultMsg:
		if !msg.open {
			return a, nil
		}
		cmds := []tea.Cmd{a.waitForResult()}
		if a.svc.CommitResult(msg.result) {
			debug.Log(debug.UI, "suggestions ready for %s", msg.result.ID)
			model, cmd := a.updateActive(views.SuggestionsReadyMsg{ID: msg.result.ID})
			a.setActive(model)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case views.SwitchToTriageMsg:
		a.current = ViewTriage
		return a, nil

	case views.SwitchToGroupMsg:
		sugs := a.svc.CurrentSuggestions()
		if msg.SuggestionIndex < 0 || msg.SuggestionIndex >= len(sugs) {
			return a, nil
		}
		if err := a.svc.StartGroupReview(sugs[msg.SuggestionIndex]); err != nil {
			return a, func() tea.Msg {
				return views.StatusMsg{Text: err.Error(), IsErr: true}
			}
		}
		a.group = views.NewGroupModel(a.svc)
		a.current = ViewGroup
		return a, a.resize()

	case views.SwitchToPendingMsg:
		a.current = ViewPending
		return a, nil

	case views.SwitchToHelpMsg:
		a.current = ViewHelp
		return a, nil
	}

	model, cmd := a.updateActive(msg)
	a.setActive(model)
	return a, cmd
}

// View renders the active view
func (a *App) View() string {
	return a.active().View()
}

func (a *App) active() tea.Model {
	switch a.current {
	case ViewGroup:
		return a.group
	case ViewPending:
		return a.pending
	case ViewHelp:
		return a.help
	default:
		return a.triage
	}
}

func (a *App) setActive(m tea.Model) {
	switch a.current {
	case ViewGroup:
		a.group = m
	case ViewPending:
		a.pending = m
	case ViewHelp:
		a.help = m
	default:
		a.triage = m
	}
}

func (a *App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a.active().Update(msg)
}

func (a *App) broadcast(msg tea.WindowSizeMsg) {
	a.triage, _ = a.triage.Update(msg)
	if a.group != nil {
		a.group, _ = a.group.Update(msg)
	}
	a.pending, _ = a.pending.Update(msg)
	a.help, _ = a.help.Update(msg)
}

func (a *App) resize() tea.Cmd {
	if a.width == 0 {
		return nil
	}
	msg := tea.WindowSizeMsg{Width: a.width, Height: a.height}
	return func() tea.Msg { return msg }
}
