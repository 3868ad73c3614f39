package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "focusflow/internal/modules/progress/dto"
	"focusflow/internal/modules/timer/dto"
	"focusflow/internal/ui/theme"
)

// Ports are the minimal interfaces this layer requires.

type timerPort interface {
	List(ctx context.Context) ([]dto.SessionOutput, error)
	Add(ctx context.Context, input dto.AddInput) (dto.SessionOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.SessionOutput, error)
	Delete(ctx context.Context, id int) error
	Start(ctx context.Context, id int) error
	Pause(ctx context.Context, id int) error
	Reset(ctx context.Context, id int) error
	Tick(ctx context.Context) error
}

type progressPort interface {
	Overview(ctx context.Context) (progressdto.OverviewOutput, error)
	ResetDaily(ctx context.Context) (progressdto.ResetOutput, error)
	CheckAutoReset(ctx context.Context) (bool, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type refreshedMsg struct {
	sessions []dto.SessionOutput
	overview progressdto.OverviewOutput
	err      error
}

type actionDoneMsg struct {
	note string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	NewDay key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add session")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename session")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete session")),
		NewDay: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "start new day")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.NewDay, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Reset},
		{k.Add, k.Edit, k.Delete, k.NewDay},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model: a column of session cards above a daily
// progress footer. One wall-clock tick per second drives both the countdown
// and the auto-reset check; all state lives behind the ports.
type Model struct {
	timer    timerPort
	progress progressPort

	sessions []dto.SessionOutput
	overview progressdto.OverviewOutput
	cursor   int

	adding   bool
	editing  int // session id being renamed, 0 when not editing
	addInput textinput.Model

	keys      keyMap
	help      help.Model
	showHelp  bool
	status    string
	statusErr bool
	width     int
	height    int
}

func NewModel(timer timerPort, progress progressPort) Model {
	input := textinput.New()
	input.Placeholder = "session title"
	input.CharLimit = 60
	return Model{
		timer:    timer,
		progress: progress,
		addInput: input,
		keys:     defaultKeys(),
		help:     help.New(),
		status:   "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.stepCmd(), tickCmd())

	case refreshedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.sessions = msg.sessions
		m.overview = msg.overview
		if m.cursor >= len(m.sessions) {
			m.cursor = len(m.sessions) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusErr = true
		} else if msg.note != "" {
			m.status = msg.note
			m.statusErr = false
		}
		return m, m.refreshCmd()

	case tea.KeyMsg:
		if m.adding || m.editing != 0 {
			return m.updateTitleForm(msg)
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.sessions)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if s, ok := m.selected(); ok {
			if s.State == "running" {
				return m, m.actionCmd("paused "+s.Title, func(ctx context.Context) error {
					return m.timer.Pause(ctx, s.ID)
				})
			}
			return m, m.actionCmd("started "+s.Title, func(ctx context.Context) error {
				return m.timer.Start(ctx, s.ID)
			})
		}
	case key.Matches(msg, m.keys.Reset):
		if s, ok := m.selected(); ok {
			return m, m.actionCmd("reset "+s.Title, func(ctx context.Context) error {
				return m.timer.Reset(ctx, s.ID)
			})
		}
	case key.Matches(msg, m.keys.Delete):
		if s, ok := m.selected(); ok {
			return m, m.actionCmd("deleted "+s.Title, func(ctx context.Context) error {
				return m.timer.Delete(ctx, s.ID)
			})
		}
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.addInput.SetValue("")
		return m, m.addInput.Focus()
	case key.Matches(msg, m.keys.Edit):
		if s, ok := m.selected(); ok {
			m.editing = s.ID
			m.addInput.SetValue(s.Title)
			return m, m.addInput.Focus()
		}
	case key.Matches(msg, m.keys.NewDay):
		return m, m.resetDayCmd()
	}
	return m, nil
}

func (m Model) updateTitleForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.editing = 0
		m.status = "ready"
		m.statusErr = false
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.addInput.Value())
		if id := m.editing; id != 0 {
			m.editing = 0
			if title == "" {
				m.status = "ready"
		m.statusErr = false
				return m, nil
			}
			return m, m.actionCmd("renamed to "+title, func(ctx context.Context) error {
				_, err := m.timer.Update(ctx, dto.UpdateInput{ID: id, Title: &title})
				return err
			})
		}
		m.adding = false
		return m, m.actionCmd("added session", func(ctx context.Context) error {
			_, err := m.timer.Add(ctx, dto.AddInput{Title: title})
			return err
		})
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m Model) selected() (dto.SessionOutput, bool) {
	if m.cursor < 0 || m.cursor >= len(m.sessions) {
		return dto.SessionOutput{}, false
	}
	return m.sessions[m.cursor], true
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		sessions, err := m.timer.List(ctx)
		if err != nil {
			return refreshedMsg{err: err}
		}
		overview, err := m.progress.Overview(ctx)
		if err != nil {
			return refreshedMsg{err: err}
		}
		return refreshedMsg{sessions: sessions, overview: overview}
	}
}

// stepCmd advances the countdown and checks the auto reset, then refreshes.
func (m Model) stepCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.timer.Tick(ctx); err != nil {
			return refreshedMsg{err: err}
		}
		if fired, err := m.progress.CheckAutoReset(ctx); err == nil && fired {
			return actionDoneMsg{note: "new day started"}
		}
		return m.refreshCmd()()
	}
}

func (m Model) actionCmd(note string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{note: note}
	}
}

func (m Model) resetDayCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.ResetDaily(context.Background())
		if err != nil {
			return actionDoneMsg{err: err}
		}
		note := fmt.Sprintf("new day: %.0f min archived, streak %d", out.YesterdayMinutes, out.Streak)
		return actionDoneMsg{note: note}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	var body string
	switch {
	case m.showHelp:
		body = m.help.View(m.keys)
	case m.adding || m.editing != 0:
		label := "New session"
		if m.editing != 0 {
			label = "Rename session"
		}
		body = theme.Title.Render(label) + "\n\n" + m.addInput.View() +
			"\n\n" + theme.Muted.Render("enter:confirm  esc:cancel")
	default:
		body = m.renderCards()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	left := theme.Title.Render("focusflow")
	right := theme.Muted.Render(time.Now().Format("Mon 02 Jan"))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).
		Render(left+strings.Repeat(" ", gap)+right) + "\n"
}

func (m Model) renderCards() string {
	if len(m.sessions) == 0 {
		return theme.Muted.Render("no sessions, press a to add one")
	}
	cards := make([]string, 0, len(m.sessions))
	for i, s := range m.sessions {
		cards = append(cards, m.renderCard(s, i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m Model) renderCard(s dto.SessionOutput, selected bool) string {
	style := theme.Card
	if s.State == "running" {
		style = theme.CardRunning
	} else if selected {
		style = theme.CardSelected
	}

	title := s.Title
	if selected {
		title = "› " + title
	}

	var badge string
	switch {
	case s.IsCompleted:
		badge = theme.Done.Render("done")
	case s.State == "running":
		badge = theme.Hot.Render("running")
	default:
		badge = theme.Muted.Render("paused")
	}

	clock := theme.Clock.Render(formatClock(s.TimeLeft))
	goal := theme.Muted.Render(goalLine(s.FocusSeconds, s.DailyGoalMinutes))

	line := fmt.Sprintf("%-24s %s  %s  %s", title, clock, badge, goal)
	return style.Render(line)
}

func (m Model) renderFooter() string {
	focusMins := m.overview.TotalFocusSeconds / 60
	left := fmt.Sprintf("today %d/%d min", focusMins, m.overview.TotalDailyGoalMinutes)
	if m.overview.TotalDailyGoalMinutes > 0 && focusMins >= m.overview.TotalDailyGoalMinutes {
		left = theme.Done.Render(left)
	} else {
		left = theme.GoalBar.Render(left)
	}
	mid := theme.Hot.Render(fmt.Sprintf("🔥 %d", m.overview.Streak))
	yesterday := theme.Muted.Render(fmt.Sprintf("yesterday %.0f min", m.overview.YesterdayMinutes))
	status := theme.Muted.Render(m.status)
	if m.statusErr {
		status = theme.Danger.Render(m.status)
	}

	bar := left + "   " + mid + "   " + yesterday + "   " + status
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func goalLine(focusSeconds, goalMinutes int) string {
	if goalMinutes == 0 {
		return "no goal"
	}
	mins := focusSeconds / 60
	if mins > goalMinutes {
		mins = goalMinutes
	}
	return fmt.Sprintf("goal %d/%d min", mins, goalMinutes)
}
