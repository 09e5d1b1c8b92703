package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/flamesearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/services"
)

func sampleSet() *domain.ProfileSet {
	return domain.NewProfileSet(&domain.Flamegraph{
		ID:    "cpu",
		Name:  "cpu.pprof",
		Total: 100,
		Frames: []domain.Frame{
			{Name: "main", Start: 0, End: 100, Depth: 0},
			{Name: "serveHTTP", Start: 0, End: 60, Depth: 1},
			{Name: "parse", Start: 0, End: 30, Depth: 2},
			{Name: "serveFile", Start: 60, End: 100, Depth: 1},
		},
	})
}

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	app, err := NewApp(newTestPorts(), opts)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

func loaded(t *testing.T, opts Options) *App {
	t.Helper()
	app := newTestApp(t, opts)
	app.Update(messages.ProfilesLoaded{Set: sampleSet()})
	return app
}

func typeQuery(app *App, q string) {
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(q)})
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func orderedNames(app *App) []string {
	var names []string
	for _, f := range app.Session().Ordered() {
		names = append(names, f.Name)
	}
	return names
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts(), Options{})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, domain.FocusCenter, app.FocusIntent())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{}, Options{})

	assert.ErrorIs(t, err, ErrMissingSessionFactory)
	assert.Nil(t, app)
}

func TestNewApp_FocusIntentFromSettings(t *testing.T) {
	settings := services.NewSettingsService(memory.NewConfigStore())
	require.NoError(t, settings.Set("search.focus_intent", "select"))

	app, err := NewApp(&Ports{NewSession: newTestSession, Settings: settings}, Options{})

	require.NoError(t, err)
	assert.Equal(t, domain.FocusSelect, app.FocusIntent())
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t, Options{Profiles: sampleSet()})

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Options{})

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Update_TypingSearches(t *testing.T) {
	app := loaded(t, Options{})

	typeQuery(app, "/serve/")

	assert.Equal(t, "/serve/", app.Query())
	assert.Equal(t, []string{"serveHTTP", "serveFile"}, orderedNames(app))
	assert.Equal(t, status.StateResults, app.status.State())
	assert.False(t, app.Session().State().HasCursor())
}

func TestApp_Update_NextAndPreviousWrap(t *testing.T) {
	app := loaded(t, Options{})
	typeQuery(app, "/serve/")

	app.Update(key(tea.KeyDown))
	frame, ok := app.Focused()
	require.True(t, ok)
	assert.Equal(t, "serveHTTP", frame.Name)

	app.Update(key(tea.KeyDown))
	frame, _ = app.Focused()
	assert.Equal(t, "serveFile", frame.Name)

	app.Update(key(tea.KeyDown))
	frame, _ = app.Focused()
	assert.Equal(t, "serveHTTP", frame.Name)

	app.Update(key(tea.KeyUp))
	frame, _ = app.Focused()
	assert.Equal(t, "serveFile", frame.Name)
	assert.Equal(t, "2/2", app.status.Counter())
}

func TestApp_Update_PreviousFromNoCursorSelectsLast(t *testing.T) {
	app := loaded(t, Options{})
	typeQuery(app, "/serve/")

	app.Update(key(tea.KeyCtrlP))

	assert.Equal(t, 1, app.Session().State().Cursor)
	assert.Equal(t, 1, app.list.Selected())
}

func TestApp_Update_InitialQuery(t *testing.T) {
	app := newTestApp(t, Options{InitialQuery: "/parse/"})

	assert.Empty(t, orderedNames(app))

	app.Update(messages.ProfilesLoaded{Set: sampleSet()})

	assert.Equal(t, "/parse/", app.Query())
	assert.Equal(t, []string{"parse"}, orderedNames(app))
}

func TestApp_Update_MalformedQueryReported(t *testing.T) {
	app := loaded(t, Options{})

	typeQuery(app, "/(/")

	assert.Empty(t, orderedNames(app))
	assert.Contains(t, app.StatusMessage(), "invalid search pattern")
	assert.Equal(t, status.StateNoResults, app.status.State())
}

func TestApp_Update_EditingClearsReport(t *testing.T) {
	app := loaded(t, Options{})
	typeQuery(app, "/(/")
	require.NotEmpty(t, app.StatusMessage())

	app.Update(key(tea.KeyBackspace))

	assert.Empty(t, app.StatusMessage())
}

func TestApp_Update_Clear(t *testing.T) {
	app := loaded(t, Options{})
	typeQuery(app, "/serve/")
	app.Update(key(tea.KeyDown))

	app.Update(key(tea.KeyCtrlL))

	assert.Empty(t, app.Query())
	assert.Empty(t, orderedNames(app))
	assert.Equal(t, status.StateReady, app.status.State())
	_, ok := app.Focused()
	assert.False(t, ok)
}

func TestApp_Update_BackspaceToEmptyClears(t *testing.T) {
	app := loaded(t, Options{})
	typeQuery(app, "m")

	app.Update(key(tea.KeyBackspace))

	assert.Equal(t, domain.EmptySessionState(), app.Session().State())
}

func TestApp_Update_ToggleIntent(t *testing.T) {
	app := loaded(t, Options{})
	typeQuery(app, "/serve/")
	app.Update(key(tea.KeyDown))

	app.Update(key(tea.KeyCtrlF))

	assert.Equal(t, domain.FocusSelect, app.FocusIntent())
	_, intent, ok := app.focus.Focused()
	assert.True(t, ok)
	assert.Equal(t, domain.FocusSelect, intent)

	app.Update(key(tea.KeyCtrlF))
	assert.Equal(t, domain.FocusCenter, app.FocusIntent())
}

func TestApp_Update_ReloadRerunsQuery(t *testing.T) {
	app := loaded(t, Options{})
	typeQuery(app, "/serve/")

	reloaded := sampleSet()
	reloaded.Graphs[0].Frames = reloaded.Graphs[0].Frames[:2]
	app.Update(messages.ProfilesLoaded{Set: reloaded, Changed: []string{"cpu.pprof"}})

	assert.Equal(t, []string{"serveHTTP"}, orderedNames(app))
}

func TestApp_Update_LoadError(t *testing.T) {
	app := newTestApp(t, Options{})

	app.Update(messages.ProfilesLoaded{Err: errors.New("no such file")})

	assert.EqualError(t, app.Err(), "no such file")
	assert.Equal(t, status.StateError, app.status.State())
	assert.Contains(t, app.View(), "no such file")
}

func TestApp_Update_Reported(t *testing.T) {
	app := loaded(t, Options{})

	app.Update(messages.Reported{Message: "watch: file removed"})

	assert.Equal(t, "watch: file removed", app.StatusMessage())
}

func TestApp_Update_Quit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		app := loaded(t, Options{})

		_, cmd := app.Update(key(k))

		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestApp_CaptureMessage(t *testing.T) {
	app := newTestApp(t, Options{})

	app.CaptureMessage("pattern failed")

	assert.Equal(t, "pattern failed", app.StatusMessage())
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Options{})

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View(t *testing.T) {
	app := loaded(t, Options{})
	typeQuery(app, "/serve/")
	app.Update(key(tea.KeyDown))

	view := app.View()

	assert.Contains(t, view, "flamesearch")
	assert.Contains(t, view, "Find")
	// match highlighting may split "serveFile" with escape codes
	assert.Contains(t, view, "File")
	assert.Contains(t, view, "HTTP")
	assert.Contains(t, view, "1/2")
}

func TestApp_View_Loading(t *testing.T) {
	app := newTestApp(t, Options{})

	assert.Contains(t, app.View(), "Loading profiles")
}
