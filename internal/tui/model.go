package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/talldan/revdiff/internal/core/config"
	"github.com/talldan/revdiff/internal/core/eventbus"
	"github.com/talldan/revdiff/internal/core/navigate"
	"github.com/talldan/revdiff/internal/core/revision"
	"github.com/talldan/revdiff/internal/core/styles"
	"github.com/talldan/revdiff/pkg/kv"
)

const (
	// animInterval is the frame interval for eased auto-scrolls.
	animInterval = 33 * time.Millisecond
	// listWidth is the fixed width of the revision list pane.
	listWidth = 34
	// statusBarHeight is the help/status line at the bottom.
	statusBarHeight = 1
)

// Key constants for event handling.
const (
	keyCtrlC = "ctrl+c"
	keyTab   = "tab"
	keyEsc   = "esc"
)

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusList focusArea = iota
	focusDiff
)

// Messages.
type (
	// revisionsLoadedMsg is sent when the initial revision load completes.
	revisionsLoadedMsg struct {
		revisions []revision.Revision
		err       error
	}

	// revisionsReloadedMsg is sent when the file watcher triggers a reload.
	revisionsReloadedMsg struct {
		revisions []revision.Revision
		err       error
	}

	// animTickMsg drives eased auto-scroll frames.
	animTickMsg struct{}

	// trackerMsg is sent when the viewport tracker commits a scroll
	// position or requests a geometry recompute.
	trackerMsg struct {
		recompute bool
	}
)

// Options configures the TUI.
type Options struct {
	Config  *config.Config
	Bus     *eventbus.EventBus
	Watcher *revision.Watcher // optional, nil disables live reload
}

// Model is the main Bubble Tea model for the revdiff TUI.
type Model struct {
	cfg     *config.Config
	bus     *eventbus.EventBus
	watcher *revision.Watcher

	list    *RevisionList
	pane    *DiffPane
	preview *Preview
	keys    *KeyResolver

	navigator *navigate.Navigator
	tracker   *navigate.Tracker
	trackerCh chan trackerMsg

	revisions []revision.Revision
	diffCache *kv.Store[string, revision.Diff]

	width       int
	height      int
	focus       focusArea
	showPreview bool
	quitting    bool
	loadErr     error
}

// New creates the TUI model and wires the navigation core to the diff
// pane.
func New(opts Options) Model {
	pane := NewDiffPane()
	trackerCh := make(chan trackerMsg, 1)

	nav := navigate.NewNavigator(eventbus.HintSink{Bus: opts.Bus})
	nav.SetHintMinHeight(float64(opts.Config.Navigation.HintMinHeight))

	tracker := navigate.NewTracker(navigate.TrackerOptions{
		ScrollThrottle: opts.Config.Navigation.ScrollThrottle(),
		ResizeDebounce: opts.Config.Navigation.ResizeDebounce(),
		OnScroll: func(navigate.Viewport) {
			signalTracker(trackerCh, trackerMsg{})
		},
		OnRecompute: func() {
			signalTracker(trackerCh, trackerMsg{recompute: true})
		},
	})
	tracker.Start(pane)

	return Model{
		cfg:       opts.Config,
		bus:       opts.Bus,
		watcher:   opts.Watcher,
		list:      NewRevisionList(),
		pane:      pane,
		preview:   NewPreview(),
		keys:      NewKeyResolver(opts.Config.Keybindings),
		navigator: nav,
		tracker:   tracker,
		trackerCh: trackerCh,
		diffCache: kv.New[string, revision.Diff](),
		focus:     focusList,
	}
}

// signalTracker forwards a tracker callback into the Bubble Tea loop
// without blocking the timer goroutine.
func signalTracker(ch chan trackerMsg, msg trackerMsg) {
	select {
	case ch <- msg:
	default:
	}
}

// Init starts the initial revision load and background listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadRevisions(false), m.listenTracker()}
	if m.watcher != nil {
		cmds = append(cmds, m.watchForReload())
	}
	return tea.Batch(cmds...)
}

// loadRevisions returns a command that loads revisions from disk.
func (m Model) loadRevisions(reload bool) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		revs, err := revision.Load(cfg.RevisionsDir, cfg.Source, cfg.SnapshotGlob)
		if reload {
			return revisionsReloadedMsg{revisions: revs, err: err}
		}
		return revisionsLoadedMsg{revisions: revs, err: err}
	}
}

// watchForReload returns a command that waits for the next watcher
// signal and reloads revisions.
func (m Model) watchForReload() tea.Cmd {
	w := m.watcher
	cfg := m.cfg
	return func() tea.Msg {
		_, ok := <-w.Events()
		if !ok {
			return nil
		}
		revs, err := revision.Load(cfg.RevisionsDir, cfg.Source, cfg.SnapshotGlob)
		return revisionsReloadedMsg{revisions: revs, err: err}
	}
}

// listenTracker returns a command that waits for the next tracker
// signal.
func (m Model) listenTracker() tea.Cmd {
	ch := m.trackerCh
	return func() tea.Msg {
		return <-ch
	}
}

// scheduleAnimTick schedules the next eased-scroll frame.
func scheduleAnimTick() tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg {
		return animTickMsg{}
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case revisionsLoadedMsg:
		return m.handleRevisionsLoaded(msg.revisions, msg.err, false)
	case revisionsReloadedMsg:
		return m.handleRevisionsLoaded(msg.revisions, msg.err, true)
	case trackerMsg:
		return m.handleTracker(msg)
	case animTickMsg:
		return m.handleAnimTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleWindowSize resizes all panes immediately and defers the change
// geometry recompute through the tracker's resize debounce.
func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := max(1, m.height-statusBarHeight)
	m.list.SetSize(listWidth, contentHeight)
	m.pane.SetSize(max(1, m.width-listWidth-1), contentHeight)
	m.preview.SetSize(m.width, contentHeight)

	m.tracker.Resize()
	return m, nil
}

// handleRevisionsLoaded applies a fresh set of revisions and selects a
// revision, triggering the one-shot centered auto-scroll.
func (m Model) handleRevisionsLoaded(revs []revision.Revision, err error, reload bool) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if reload && m.watcher != nil {
		cmds = append(cmds, m.watchForReload())
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to load revisions")
		m.loadErr = err
		return m, tea.Batch(cmds...)
	}
	m.loadErr = nil
	m.revisions = revs
	m.diffCache.Clear()
	m.list.SetRevisions(revs)

	if reload && m.bus != nil {
		m.bus.PublishRevisionsReloaded(eventbus.RevisionsReloadedPayload{Count: len(revs)})
	}

	m = m.selectCurrent()
	if m.pane.Animating() {
		cmds = append(cmds, scheduleAnimTick())
	}
	return m, tea.Batch(cmds...)
}

// selectCurrent loads the diff for the list selection into the diff
// pane and runs the auto-scroll reconcile for it.
func (m Model) selectCurrent() Model {
	rev, ok := m.list.Selected()
	if !ok {
		m.pane.SetDiff("", revision.Diff{})
		m.navigator.SelectRevision("")
		return m
	}

	title := rev.Title
	if title == "" {
		title = rev.ID
	}
	m.pane.SetDiff(title, m.diffFor(m.list.SelectedIndex()))

	m.navigator.SelectRevision(rev.ID)
	m.tracker.Measure(m.pane)
	m.navigator.Reconcile(m.pane, m.pane)

	if m.bus != nil {
		m.bus.PublishRevisionSelected(eventbus.RevisionSelectedPayload{RevisionID: rev.ID})
	}
	if m.showPreview {
		m.preview.SetRevision(rev)
	}
	return m
}

// diffFor computes the diff of revision idx against the next-older
// revision. The oldest revision diffs against nothing. Computed diffs
// are cached by revision ID until the next reload.
func (m Model) diffFor(idx int) revision.Diff {
	if idx < 0 || idx >= len(m.revisions) {
		return revision.Diff{}
	}
	cur := m.revisions[idx]
	if d, ok := m.diffCache.Get(cur.ID); ok {
		return d
	}

	var prev revision.Revision
	if idx+1 < len(m.revisions) {
		prev = m.revisions[idx+1]
	}
	d := revision.Compare(prev, cur)
	m.diffCache.Set(cur.ID, d)
	return d
}

// handleTracker re-renders on committed scroll positions and recomputes
// change geometry after a settled resize.
func (m Model) handleTracker(msg trackerMsg) (tea.Model, tea.Cmd) {
	if msg.recompute {
		m.tracker.Measure(m.pane)
		m.navigator.Refresh(m.pane)
	}
	return m, m.listenTracker()
}

// handleAnimTick advances the eased auto-scroll.
func (m Model) handleAnimTick() (tea.Model, tea.Cmd) {
	if m.pane.Step() {
		return m, scheduleAnimTick()
	}
	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == keyCtrlC {
		return m.quit()
	}

	if m.showPreview {
		switch keyStr {
		case keyEsc, "q":
			m.showPreview = false
			return m, nil
		}
		if action, ok := m.keys.Resolve(keyStr); ok && action == config.ActionPreview {
			m.showPreview = false
			return m, nil
		}
		m.preview.Update(msg)
		return m, nil
	}

	if action, ok := m.keys.Resolve(keyStr); ok {
		return m.handleAction(action)
	}

	switch keyStr {
	case keyTab:
		if m.focus == focusList {
			m.focus = focusDiff
		} else {
			m.focus = focusList
		}
		return m, nil
	}

	switch m.focus {
	case focusList:
		if m.list.Update(msg) {
			m = m.selectCurrent()
			if m.pane.Animating() {
				return m, scheduleAnimTick()
			}
		}
	case focusDiff:
		m.pane.Update(msg)
	}
	return m, nil
}

// handleAction executes a configured built-in action.
func (m Model) handleAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case config.ActionQuit:
		return m.quit()

	case config.ActionPrevChange:
		if m.navigator.ScrollAbove(m.pane, m.pane) && m.pane.Animating() {
			return m, scheduleAnimTick()
		}

	case config.ActionNextChange:
		if m.navigator.ScrollBelow(m.pane, m.pane) && m.pane.Animating() {
			return m, scheduleAnimTick()
		}

	case config.ActionPreview:
		rev, ok := m.list.Selected()
		if !ok {
			return m, nil
		}
		m.showPreview = true
		m.preview.SetRevision(rev)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	// tea.Quit is async, so a repeated quit key can land before QuitMsg.
	if m.quitting {
		return m, tea.Quit
	}
	m.quitting = true
	m.tracker.Stop()
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			log.Debug().Err(err).Msg("failed to close revision watcher")
		}
	}
	return m, tea.Quit
}

// View renders the TUI.
func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

// render builds the full frame as a string.
func (m Model) render() string {
	if m.quitting {
		return ""
	}

	if m.showPreview {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.preview.View(),
			m.statusBar(),
		)
	}

	contentHeight := max(1, m.height-statusBarHeight)

	listView := lipgloss.NewStyle().
		Width(listWidth).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(m.list.View())

	hints := m.navigator.Hints(m.tracker.Viewport())
	paneView := m.pane.View(hints,
		m.keys.KeyFor(config.ActionPrevChange),
		m.keys.KeyFor(config.ActionNextChange),
	)

	divider := m.renderDivider(contentHeight)
	main := lipgloss.JoinHorizontal(lipgloss.Top, listView, divider, paneView)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.statusBar())
}

func (m Model) renderDivider(height int) string {
	col := make([]string, max(1, height))
	for i := range col {
		col[i] = "│"
	}
	return styles.MutedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, col...))
}

// statusBar renders the bottom help/status line.
func (m Model) statusBar() string {
	if m.loadErr != nil {
		return lipgloss.NewStyle().
			Foreground(styles.ColorWarning).
			Render("error: " + m.loadErr.Error())
	}
	return styles.MutedStyle.Render(m.keys.HelpString() + "  [tab] switch pane")
}
