package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/tonebook/internal/core/config"
	"github.com/hay-kot/tonebook/internal/core/history"
	"github.com/hay-kot/tonebook/internal/render"
	"github.com/hay-kot/tonebook/internal/styles"
	"github.com/hay-kot/tonebook/internal/tonebook"
	"github.com/hay-kot/tonebook/pkg/executil"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateConfirming
)

const (
	minListWidth  = 30
	actionTimeout = 30 * time.Second
)

// Options configures the TUI behavior.
type Options struct {
	WatchPath   string                       // history file to watch for outside changes (optional)
	Keybindings map[string]config.Keybinding // record actions bound to keys
	Executor    executil.Executor            // runs sh keybindings; defaults to RealExecutor
	Now         func() time.Time             // clock for relative times; defaults to time.Now
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	service *tonebook.Service
	list    list.Model
	preview viewport.Model
	handler *KeybindingHandler
	keys    previewKeys
	watcher *storeWatcher
	now     func() time.Time

	state   UIState
	modal   Modal
	pending Action

	width    int
	height   int
	status   string
	err      error
	quitting bool

	// previewID and previewWidth identify what the preview last rendered.
	previewID    string
	previewWidth int
}

// recordsLoadedMsg is sent when records are loaded.
type recordsLoadedMsg struct {
	records []history.Record
}

// actionCompleteMsg is sent when an action completes.
type actionCompleteMsg struct {
	action Action
	err    error
}

// New creates a new TUI model.
func New(service *tonebook.Service, opts Options) Model {
	if opts.Executor == nil {
		opts.Executor = &executil.RealExecutor{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	delegate := NewRecordDelegate()
	delegate.Now = opts.Now

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Filters"
	l.Styles.Title = titleStyle
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.HelpStyle = lipgloss.NewStyle().PaddingLeft(1)

	handler := NewKeybindingHandler(opts.Keybindings, service, opts.Executor)
	keys := defaultPreviewKeys()

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return append(handler.KeyBindings(), keys.ShortHelp()...)
	}

	m := Model{
		service: service,
		list:    l,
		preview: viewport.New(0, 0),
		handler: handler,
		keys:    keys,
		now:     opts.Now,
	}

	if opts.WatchPath != "" {
		w, err := newStoreWatcher(opts.WatchPath)
		if err != nil {
			log.Warn().Err(err).Msg("live reload disabled")
		} else {
			m.watcher = w
		}
	}

	return m
}

// Init starts loading records and watching for outside changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadRecords()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

// Close releases the file watcher.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

// loadRecords returns a command that loads records from the service.
func (m Model) loadRecords() tea.Cmd {
	return func() tea.Msg {
		return recordsLoadedMsg{records: m.service.History().List(context.Background())}
	}
}

// executeAction returns a command that executes the given action.
func (m Model) executeAction(action Action) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		err := m.handler.Execute(ctx, action)
		return actionCompleteMsg{action: action, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshPreview(true)
		return m, nil

	case recordsLoadedMsg:
		items := make([]list.Item, len(msg.records))
		for i, r := range msg.records {
			items[i] = RecordItem{Record: r}
		}
		cmd := m.list.SetItems(items)
		m.refreshPreview(true)
		return m, cmd

	case storeChangedMsg:
		return m, tea.Batch(m.loadRecords(), m.watcher.wait())

	case actionCompleteMsg:
		m.pending = Action{}
		m.err = msg.err
		m.status = ""
		if msg.err == nil {
			m.status = completedStatus(msg.action)
		}
		return m, m.loadRecords()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func completedStatus(a Action) string {
	switch a.Type {
	case ActionTypeDelete:
		return fmt.Sprintf("Deleted %q", a.RecordName)
	case ActionTypeReload:
		return "Reloaded"
	case ActionTypeShell:
		return fmt.Sprintf("Ran %q for %q", a.Help, a.RecordName)
	default:
		return ""
	}
}

// handleKey routes key presses based on current state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if m.state == stateConfirming {
		return m.handleConfirmModalKey(keyStr)
	}

	if m.list.FilterState() == list.Filtering {
		if keyStr == keyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m.refreshPreview(false)
		return m, cmd
	}

	return m.handleNormalKey(msg, keyStr)
}

// handleConfirmModalKey handles keys when confirmation modal is shown.
func (m Model) handleConfirmModalKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		m.state = stateNormal
		if m.modal.ConfirmSelected() {
			return m, m.executeAction(m.pending)
		}
		m.pending = Action{}
		return m, nil
	case "esc", "n":
		m.state = stateNormal
		m.pending = Action{}
		return m, nil
	case "y":
		m.state = stateNormal
		return m, m.executeAction(m.pending)
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
		return m, nil
	}
	return m, nil
}

// handleNormalKey handles keys in normal state.
func (m Model) handleNormalKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch {
	case keyStr == "q" || keyStr == keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.LineDown):
		m.preview.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.LineUp):
		m.preview.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.HalfDown):
		m.preview.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.HalfUp):
		m.preview.HalfViewUp()
		return m, nil
	}

	var rec history.Record
	selected := m.selectedRecord()
	if selected != nil {
		rec = *selected
	}

	// reload is the only action that works without a selection
	if action, ok := m.handler.Resolve(keyStr, rec); ok && (selected != nil || action.Type == ActionTypeReload) {
		m.err = nil
		m.status = ""
		if action.NeedsConfirm() {
			m.state = stateConfirming
			m.pending = action
			m.modal = NewModal("Confirm", fmt.Sprintf("%s\n\n%s", action.Confirm, rec.Name))
			return m, nil
		}
		m.pending = action
		return m, m.executeAction(action)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.refreshPreview(false)
	return m, cmd
}

// selectedRecord returns the currently selected record, or nil if none.
func (m Model) selectedRecord() *history.Record {
	item, ok := m.list.SelectedItem().(RecordItem)
	if !ok {
		return nil
	}
	return &item.Record
}

// resize splits the width between the list and the preview pane.
func (m *Model) resize() {
	contentHeight := m.height - lipgloss.Height(m.bannerView()) - 1
	if contentHeight < 1 {
		contentHeight = 1
	}

	listWidth := m.width * 2 / 5
	if listWidth < minListWidth {
		listWidth = min(minListWidth, m.width)
	}
	previewWidth := m.width - listWidth - previewStyle.GetHorizontalFrameSize()
	if previewWidth < 0 {
		previewWidth = 0
	}

	m.list.SetSize(listWidth, contentHeight)
	m.preview.Width = previewWidth
	m.preview.Height = contentHeight
}

// refreshPreview renders the selected record into the preview pane. Unless
// force is set, rendering is skipped when the selection and width are
// unchanged.
func (m *Model) refreshPreview(force bool) {
	selected := m.selectedRecord()

	id := ""
	if selected != nil {
		id = selected.ID
	}
	if !force && id == m.previewID && m.preview.Width == m.previewWidth {
		return
	}

	changed := id != m.previewID
	m.previewID = id
	m.previewWidth = m.preview.Width

	if selected == nil {
		m.preview.SetContent(styles.MutedStyle.Render("No saved filters"))
		m.preview.GotoTop()
		return
	}

	width := m.preview.Width
	if width < 20 {
		width = 20
	}
	m.preview.SetContent(render.Terminal(render.Markdown(*selected, m.now()), width))
	if changed {
		m.preview.GotoTop()
	}
}

func (m Model) bannerView() string {
	return styles.BannerStyle.PaddingLeft(1).PaddingBottom(1).Render(styles.Banner)
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.list.View(),
		previewStyle.Height(m.preview.Height).Render(m.preview.View()),
	)
	mainView := lipgloss.JoinVertical(lipgloss.Left, m.bannerView(), body, m.statusView())

	if m.state == stateConfirming {
		w, h := m.width, m.height
		if w == 0 {
			w = 80
		}
		if h == 0 {
			h = 24
		}
		return m.modal.Overlay(mainView, w, h)
	}

	return mainView
}

func (m Model) statusView() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		return statusStyle.Render(m.status)
	default:
		total := len(m.list.Items())
		return helpStyle.Render(fmt.Sprintf("%d of %d saved %s q quit", total, history.MaxRecords, iconDot))
	}
}
