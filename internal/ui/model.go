package ui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/hnstories/internal/hn"
	"github.com/five82/hnstories/internal/prefs"
	"github.com/five82/hnstories/internal/state"
)

// Core is the story API the screen drives.
type Core interface {
	CurrentStories() []hn.Story
	Lifecycle() state.Lifecycle
	Snapshot() state.State
	RemoveStory(id string)
	SetSearchTerm(term string)
	SearchTerm() string
	Submit(ctx context.Context) bool
	Refresh(ctx context.Context) bool
}

// ThemeStore persists the selected theme name.
type ThemeStore interface {
	Get() string
	Set(name string)
}

// Options configure the UI.
type Options struct {
	Context  context.Context
	Core     Core
	Theme    ThemeStore // nil keeps the theme in memory only
	PollTick time.Duration
	Log      logrus.FieldLogger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	core       Core
	themeStore ThemeStore
	log        logrus.FieldLogger
	pollTick   time.Duration

	keys    keyMap
	help    help.Model
	theme   Theme
	input   textinput.Model
	spinner spinner.Model

	width    int
	height   int
	ready    bool
	showHelp bool

	snapshot state.State
	stories  []hn.Story
	selected int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}

	themeStore := opts.Theme
	if themeStore == nil {
		themeStore = prefs.New(nil, prefs.ThemeKey, prefs.DefaultTheme, nil)
	}

	log := opts.Log
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "search titles..."
	ti.CharLimit = 200
	if opts.Core != nil {
		ti.SetValue(opts.Core.SearchTerm())
		ti.CursorEnd()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:        ctx,
		core:       opts.Core,
		themeStore: themeStore,
		log:        log,
		pollTick:   pollTick,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		theme:      GetTheme(themeStore.Get()),
		input:      ti,
		spinner:    sp,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(m.pollTick),
		submitCmd(m.ctx, m.core),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-14)
		m.ready = true
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd(m.pollTick)

	case fetchDoneMsg:
		if !msg.applied {
			m.log.Debug("fetch superseded by a newer one")
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.input.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.themeStore.Set(m.theme.Name)
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Refresh):
		m.snapshot.Lifecycle = state.Loading
		return m, refreshCmd(m.ctx, m.core)

	case key.Matches(msg, m.keys.Remove):
		if story := m.selectedStory(); story != nil && m.core != nil {
			m.log.WithField("id", story.ID).Debug("removing story")
			m.core.RemoveStory(story.ID)
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.stories)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(0, len(m.stories)-1)
	}
	return m, nil
}

// handleSearchKey routes keys while the search input has focus. Every edit
// updates the persisted term so the list filters as the user types.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.input.Blur()
		return m.submit()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before && m.core != nil {
		m.core.SetSearchTerm(after)
		m.selected = 0
		m.refresh()
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.core == nil {
		return m, nil
	}
	m.snapshot.Lifecycle = state.Loading
	return m, submitCmd(m.ctx, m.core)
}

// refresh pulls a fresh snapshot and filtered view from the core.
func (m *Model) refresh() {
	if m.core == nil {
		return
	}
	m.snapshot = m.core.Snapshot()
	m.stories = m.core.CurrentStories()
	if m.selected >= len(m.stories) {
		m.selected = max(0, len(m.stories)-1)
	}
}

func (m Model) selectedStory() *hn.Story {
	if m.selected < 0 || m.selected >= len(m.stories) {
		return nil
	}
	story := m.stories[m.selected]
	return &story
}

// Messages

type tickMsg time.Time

type fetchDoneMsg struct {
	applied bool
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func submitCmd(ctx context.Context, core Core) tea.Cmd {
	if core == nil {
		return nil
	}
	return func() tea.Msg {
		return fetchDoneMsg{applied: core.Submit(ctx)}
	}
}

func refreshCmd(ctx context.Context, core Core) tea.Cmd {
	if core == nil {
		return nil
	}
	return func() tea.Msg {
		return fetchDoneMsg{applied: core.Refresh(ctx)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
