package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/nikbrunner/bmdash/internal/model"
	"github.com/nikbrunner/bmdash/internal/state"
	"github.com/nikbrunner/bmdash/internal/tui/layout"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeLoading Mode = iota // waiting for collapse state and the tree
	ModeNormal
	ModeHelp
)

// MessageType selects the styling of the message line.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

type (
	stateLoadedMsg      struct{}
	treeLoadedMsg       struct{ root *model.Node }
	treeFailedMsg       struct{ err error }
	bookmarksChangedMsg struct{}
	openResultMsg       struct {
		url string
		err error
	}
)

// App is the main bubbletea model for the dashboard.
type App struct {
	provider importer.Provider
	store    *state.Store
	logger   *zap.Logger
	opts     dashboard.Options
	changes  <-chan struct{}
	opener   func(url string) error
	copier   func(text string) error

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode     Mode
	dash     *dashboard.Dashboard
	rows     []dashboard.Row
	cursor   int
	cursors  map[string]int // remembered cursor per tab id
	watching bool

	// For gg command
	lastKeyWasG bool

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Provider     importer.Provider
	Store        *state.Store // required
	Logger       *zap.Logger  // optional, no-op if nil
	Options      dashboard.Options
	Changes      <-chan struct{}         // optional, each receive reloads the tree
	Opener       func(url string) error  // optional, uses OpenURL if nil
	Copier       func(text string) error // optional, uses the system clipboard if nil
	Keys         *KeyMap                 // optional, uses default if nil
	Styles       *Styles                 // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig    // optional, uses default if nil
}

// NewApp creates a new App with the given parameters. Nothing is loaded
// until the program runs Init.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opener := params.Opener
	if opener == nil {
		opener = OpenURL
	}

	copier := params.Copier
	if copier == nil {
		copier = clipboard.WriteAll
	}

	return App{
		provider:     params.Provider,
		store:        params.Store,
		logger:       logger,
		opts:         params.Options,
		changes:      params.Changes,
		opener:       opener,
		copier:       copier,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		mode:         ModeLoading,
		cursors:      map[string]int{},
		width:        80,
		height:       24,
	}
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the current cursor position within the active panel rows.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current mode.
func (a App) Mode() Mode {
	return a.mode
}

// Dashboard returns the current dashboard, nil until the first build.
func (a App) Dashboard() *dashboard.Dashboard {
	return a.dash
}

// Rows returns the visible rows of the active panel.
func (a App) Rows() []dashboard.Row {
	return a.rows
}

// SelectedRow returns the row under the cursor.
func (a App) SelectedRow() (dashboard.Row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return dashboard.Row{}, false
	}
	return a.rows[a.cursor], true
}

// Message returns the current message line text.
func (a App) Message() string {
	return a.messageText
}

// Init implements tea.Model. Collapse state is loaded before the tree is
// fetched so the first build already has the right flags.
func (a App) Init() tea.Cmd {
	return a.loadStateCmd()
}

func (a App) loadStateCmd() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		store.Load(context.Background())
		return stateLoadedMsg{}
	}
}

func (a App) fetchTreeCmd() tea.Cmd {
	provider := a.provider
	return func() tea.Msg {
		root, err := provider.Tree(context.Background())
		if err != nil {
			return treeFailedMsg{err: err}
		}
		return treeLoadedMsg{root: root}
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return bookmarksChangedMsg{}
	}
}

func (a App) openCmd(url string) tea.Cmd {
	opener := a.opener
	return func() tea.Msg {
		return openResultMsg{url: url, err: opener(url)}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case stateLoadedMsg:
		return a, a.fetchTreeCmd()

	case treeLoadedMsg:
		a.applyTree(msg.root)
		cmd := a.startWatching()
		return a, cmd

	case treeFailedMsg:
		a.logger.Warn("fetch bookmark tree", zap.Error(msg.err))
		cmd := a.startWatching()
		return a, cmd

	case bookmarksChangedMsg:
		a.logger.Debug("bookmarks changed, reloading")
		return a, tea.Batch(a.fetchTreeCmd(), waitForChange(a.changes))

	case openResultMsg:
		if msg.err != nil {
			a.logger.Warn("open url", zap.String("url", msg.url), zap.Error(msg.err))
			a.setMessage(MessageError, fmt.Sprintf("Could not open %s", dashboard.Hostname(msg.url)))
		} else {
			a.setMessage(MessageSuccess, fmt.Sprintf("Opened %s", dashboard.Hostname(msg.url)))
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// startWatching issues the first wait on the change channel, once.
func (a *App) startWatching() tea.Cmd {
	if a.changes == nil || a.watching {
		return nil
	}
	a.watching = true
	return waitForChange(a.changes)
}

// applyTree rebuilds the dashboard from scratch. On a reload the active tab
// is kept when it still exists.
func (a *App) applyTree(root *model.Node) {
	prev := ""
	if a.dash != nil {
		prev = a.dash.Active
		a.saveCursor()
	}

	a.dash = dashboard.Build(root, a.store, a.opts)
	if prev != "" {
		a.dash.Select(prev)
	}
	if a.mode == ModeLoading {
		a.mode = ModeNormal
	}

	a.refreshRows()
	a.restoreCursor()
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeLoading:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	case ModeHelp:
		if key.Matches(msg, a.keys.Help, a.keys.Close, a.keys.Quit) {
			a.mode = ModeNormal
		}
		return a, nil
	}

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.clampCursor(1)
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}

	// Reset g flag for any other key
	a.lastKeyWasG = false
	a.messageText = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, a.keys.Bottom):
		if len(a.rows) > 0 {
			a.cursor = len(a.rows) - 1
			a.clampCursor(-1)
		}

	case key.Matches(msg, a.keys.NextTab):
		a.switchTab(func(d *dashboard.Dashboard) { d.SelectOffset(1) })

	case key.Matches(msg, a.keys.PrevTab):
		a.switchTab(func(d *dashboard.Dashboard) { d.SelectOffset(-1) })

	case key.Matches(msg, a.keys.JumpTab):
		idx := int(msg.String()[0] - '1')
		if idx < len(a.dash.Tabs) {
			id := a.dash.Tabs[idx].ID
			a.switchTab(func(d *dashboard.Dashboard) { d.Select(id) })
		}

	case key.Matches(msg, a.keys.Toggle):
		row, ok := a.SelectedRow()
		if !ok {
			break
		}
		if row.Kind == dashboard.RowCard {
			return a, a.openCmd(row.Card.URL)
		}
		a.toggle(row.ID)

	case key.Matches(msg, a.keys.Open):
		if row, ok := a.SelectedRow(); ok && row.Kind == dashboard.RowCard {
			return a, a.openCmd(row.Card.URL)
		}

	case key.Matches(msg, a.keys.YankURL):
		row, ok := a.SelectedRow()
		if !ok || row.Kind != dashboard.RowCard {
			break
		}
		if err := a.copier(row.Card.URL); err != nil {
			a.logger.Warn("copy url", zap.Error(err))
			a.setMessage(MessageError, "Could not copy URL")
		} else {
			a.setMessage(MessageSuccess, "Copied "+row.Card.URL)
		}
	}

	return a, nil
}

// toggle flips a block or group and persists it. The header row keeps its
// index, so the cursor stays on it.
func (a *App) toggle(id string) {
	collapsed, found := a.dash.Toggle(id, a.store)
	if !found {
		return
	}
	a.logger.Debug("toggle", zap.String("id", id), zap.Bool("collapsed", collapsed))
	a.refreshRows()
	a.clampCursor(-1)
}

func (a *App) switchTab(fn func(d *dashboard.Dashboard)) {
	if a.dash == nil || len(a.dash.Tabs) == 0 {
		return
	}
	a.saveCursor()
	fn(a.dash)
	a.refreshRows()
	a.restoreCursor()
}

func (a *App) refreshRows() {
	a.rows = nil
	if a.dash == nil {
		return
	}
	if p := a.dash.ActivePanel(); p != nil {
		a.rows = p.Rows()
	}
}

func (a *App) saveCursor() {
	if a.dash != nil && a.dash.Active != "" {
		a.cursors[a.dash.Active] = a.cursor
	}
}

func (a *App) restoreCursor() {
	a.cursor = 0
	if a.dash != nil {
		a.cursor = a.cursors[a.dash.Active]
	}
	a.clampCursor(1)
}

// moveCursor steps over separators; at either end the cursor stays put.
func (a *App) moveCursor(delta int) {
	for i := a.cursor + delta; i >= 0 && i < len(a.rows); i += delta {
		if a.rows[i].Selectable() {
			a.cursor = i
			return
		}
	}
}

// clampCursor keeps the cursor in range and off separators, searching in
// direction dir first.
func (a *App) clampCursor(dir int) {
	if len(a.rows) == 0 {
		a.cursor = 0
		return
	}
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.rows[a.cursor].Selectable() {
		return
	}
	for _, d := range []int{dir, -dir} {
		for i := a.cursor + d; i >= 0 && i < len(a.rows); i += d {
			if a.rows[i].Selectable() {
				a.cursor = i
				return
			}
		}
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
