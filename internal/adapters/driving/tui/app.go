package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/components/focus"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// Options configures a new App.
type Options struct {
	// InitialQuery is searched once the first non-empty profile set arrives.
	InitialQuery string

	// Profiles is delivered to the session when the program starts.
	// Leave nil to send messages.ProfilesLoaded later.
	Profiles *domain.ProfileSet
}

// Lines used by everything except the match list.
const chromeHeight = 10

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	session Session
	styles  *styles.Styles
	keymap  *keymap.KeyMap

	input  *input.QueryInput
	list   *list.MatchList
	status *status.Bar
	focus  *focus.Pane

	profiles *domain.ProfileSet
	initial  *domain.ProfileSet
	intent   domain.FocusIntent
	err      error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model and receives session diagnostics.
var (
	_ tea.Model       = (*App)(nil)
	_ driven.Reporter = (*App)(nil)
)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	intent := domain.FocusCenter
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil && settings.Search.FocusIntent.IsValid() {
			intent = settings.Search.FocusIntent
		}
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		styles:  s,
		keymap:  km,
		input:   input.NewQueryInput(s),
		list:    list.NewMatchList(s),
		status:  status.NewBar(s, km),
		focus:   focus.NewPane(s),
		initial: opts.Profiles,
		intent:  intent,
	}

	a.session = ports.NewSession(opts.InitialQuery, a)
	a.session.SetFocuser(a.focus)
	a.session.SetFocusIntent(intent)
	return a, nil
}

// CaptureMessage shows a session diagnostic in the status bar.
// It is called synchronously from within Update.
func (a *App) CaptureMessage(msg string) {
	logger.Debug("tui: %s", msg)
	a.status.SetMessage(msg)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.input.Init(),
		tea.SetWindowTitle("flamesearch"),
	}
	if a.initial != nil {
		set := a.initial
		cmds = append(cmds, func() tea.Msg {
			return messages.ProfilesLoaded{Set: set}
		})
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		cmd = a.handleKey(msg)

	case messages.ProfilesLoaded:
		a.loadProfiles(msg)

	case messages.Reported:
		a.status.SetMessage(msg.Message)
	}

	a.sync()
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch {
	case keymap.Matches(key, a.keymap.Next):
		a.session.Next()
		return nil

	case keymap.Matches(key, a.keymap.Previous):
		a.session.Previous()
		return nil

	case keymap.Matches(key, a.keymap.Clear):
		a.input.Reset()
		a.status.SetMessage("")
		a.session.Clear()
		return nil

	case keymap.Matches(key, a.keymap.ToggleIntent):
		a.toggleIntent()
		return nil
	}

	cmd, changed := a.input.Update(msg)
	if changed {
		a.status.SetMessage("")
		a.session.SetQuery(a.input.Value())
	}
	return cmd
}

func (a *App) toggleIntent() {
	if a.intent == domain.FocusCenter {
		a.intent = domain.FocusSelect
	} else {
		a.intent = domain.FocusCenter
	}
	a.session.SetFocusIntent(a.intent)
	if frame, ok := a.session.Current(); ok {
		a.focus.FocusFrame(frame, a.intent)
	}
}

func (a *App) loadProfiles(msg messages.ProfilesLoaded) {
	if msg.Err != nil {
		a.err = msg.Err
		return
	}
	a.err = nil
	if len(msg.Changed) > 0 {
		logger.Info("Reloaded profiles after changes to %s", strings.Join(msg.Changed, ", "))
	}

	a.profiles = msg.Set
	a.focus.SetProfiles(msg.Set)
	a.session.SetFlamegraphs(msg.Set)

	if a.input.Value() == "" {
		if q := a.session.State().Query; q != "" {
			a.input.SetValue(q)
		}
	}
}

// sync copies session state into the components.
func (a *App) sync() {
	ordered := a.session.Ordered()
	rows := make([]list.Row, len(ordered))
	for i, frame := range ordered {
		m, ok := a.session.Match(frame)
		if !ok {
			m = domain.FrameMatch{Frame: frame}
		}
		rows[i] = list.Row{Match: m, Graph: a.graphName(frame.Graph)}
	}
	a.list.SetRows(rows)

	state := a.session.State()
	a.list.SetSelected(state.Cursor)
	a.status.SetPosition(state.Cursor, len(ordered))
	if !state.HasCursor() {
		a.focus.Clear()
	}

	switch {
	case a.err != nil:
		a.status.SetState(status.StateError)
		a.status.SetMessage(a.err.Error())
	case a.profiles == nil:
		a.status.SetState(status.StateLoading)
	case state.Query == "":
		a.status.SetState(status.StateReady)
	case len(ordered) == 0:
		a.status.SetState(status.StateNoResults)
	default:
		a.status.SetState(status.StateResults)
	}
}

func (a *App) graphName(index int) string {
	if index < 0 || index >= a.profiles.Len() {
		return ""
	}
	return a.profiles.Graphs[index].Name
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	header := a.styles.Title.Render("flamesearch") + "  " +
		a.styles.Muted.Render(fmt.Sprintf("%d profiles  focus: %s", a.profiles.Len(), a.intent))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		a.input.View(),
		a.list.View(),
		a.focus.View(),
		a.status.View(),
	)
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.SetWidth(width)
	a.status.SetWidth(width)
	a.focus.SetWidth(width)
	listHeight := height - chromeHeight
	if listHeight < 1 {
		listHeight = 1
	}
	a.list.SetDimensions(width, listHeight)
}

// Query returns the current query text.
func (a *App) Query() string {
	return a.input.Value()
}

// Session returns the search session.
func (a *App) Session() Session {
	return a.session
}

// FocusIntent returns the active focus intent.
func (a *App) FocusIntent() domain.FocusIntent {
	return a.intent
}

// Focused returns the frame shown in the focus pane.
func (a *App) Focused() (domain.Frame, bool) {
	frame, _, ok := a.focus.Focused()
	return frame, ok
}

// StatusMessage returns the diagnostic shown in the status bar.
func (a *App) StatusMessage() string {
	return a.status.Message()
}

// Err returns the last profile loading error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}
