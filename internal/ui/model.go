package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/ingredient-copilot/internal/session"
)

const (
	// Placeholder is shown in the empty ingredient input
	Placeholder = "Paste ingredient list here, or select a sample..."

	// LoadingText is shown while an analysis is pending
	LoadingText = "Copilot is reasoning about your health..."

	// PickerLabel introduces the sample cards
	PickerLabel = "Or try a sample product:"

	inputHeight = 4
	minWidth    = 20
)

// focusArea is the part of the screen receiving keys
type focusArea int

const (
	focusInput focusArea = iota
	focusPicker
)

// Options configures the terminal UI
type Options struct {
	// Color enables colored output
	Color bool
}

// Model is the bubbletea model for the copilot screen
type Model struct {
	ctx   context.Context
	ctrl  *session.Controller
	store *session.Store

	keys     keyMap
	help     help.Model
	input    textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	styles   *Styles

	focus         focusArea
	selected      int
	width         int
	height        int
	ready         bool
	quitting      bool
	samplesLoaded bool
	builtinOnly   bool
}

// NewModel creates the copilot model over a session controller
func NewModel(ctx context.Context, ctrl *session.Controller, opts Options) *Model {
	if !opts.Color {
		SetColorDisabled(true)
	}
	styles := GetStyles()

	input := textarea.New()
	input.Placeholder = Placeholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(inputHeight)
	input.SetValue(ctrl.Store().Input())
	input.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Spinner),
	)

	return &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		store:    ctrl.Store(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    input,
		spinner:  sp,
		viewport: viewport.New(0, 0),
		styles:   styles,
		focus:    focusInput,
	}
}

// Init starts the sample fetch and the cursor blink
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		loadSamplesCmd(m.ctx, m.ctrl),
	)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case samplesLoadedMsg:
		return m.handleSamplesLoaded(msg)
	case analysisOutcomeMsg:
		return m.handleOutcome(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.layout()
	return m, nil
}

// layout sizes the components to the terminal
func (m *Model) layout() {
	w := max(minWidth, m.width-4)
	m.input.SetWidth(w)
	m.help.Width = m.width

	// header, input box, button line, footer
	used := 3 + inputHeight + 2 + 1 + 2
	m.viewport.Width = w
	m.viewport.Height = max(3, m.height-used)

	if result := m.store.Snapshot().Result; result != nil {
		m.viewport.SetContent(m.renderResult(result))
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Exit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Analyze):
		return m.handleSubmit()
	case key.Matches(msg, m.keys.Clear):
		return m.handleClear()
	case key.Matches(msg, m.keys.Focus):
		return m.handleFocusSwitch()
	}

	if m.focus == focusInput {
		if key.Matches(msg, m.keys.Blur) {
			return m.handleBlur()
		}
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.pickerVisible() {
		switch {
		case key.Matches(msg, m.keys.Up):
			return m.handleMoveUp()
		case key.Matches(msg, m.keys.Down):
			return m.handleMoveDown()
		case key.Matches(msg, m.keys.Select):
			return m.handleSelectSample()
		}
		return m, nil
	}

	if m.store.State() == session.StateResult {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateInput forwards a key to the textarea and mirrors its value
func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetInput(m.input.Value())
	return m, cmd
}

func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.store.Close()
	return m, tea.Quit
}

func (m *Model) handleFocusSwitch() (tea.Model, tea.Cmd) {
	if m.focus == focusInput {
		return m.handleBlur()
	}
	m.focus = focusInput
	return m, m.input.Focus()
}

func (m *Model) handleBlur() (tea.Model, tea.Cmd) {
	m.focus = focusPicker
	m.input.Blur()
	return m, nil
}

func (m *Model) handleMoveUp() (tea.Model, tea.Cmd) {
	if m.selected > 0 {
		m.selected--
	}
	return m, nil
}

func (m *Model) handleMoveDown() (tea.Model, tea.Cmd) {
	if m.selected < len(m.store.Samples())-1 {
		m.selected++
	}
	return m, nil
}

// handleSubmit analyzes the current input. It is inert while a request is
// pending or the input is empty.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	sub, err := m.store.Begin(m.input.Value())
	if err != nil {
		return m, nil
	}
	return m, m.startAnalysis(sub)
}

func (m *Model) handleSelectSample() (tea.Model, tea.Cmd) {
	sub, err := m.store.SelectSample(m.selected)
	if err != nil {
		return m, nil
	}

	m.input.SetValue(sub.Text)
	return m, m.startAnalysis(sub)
}

func (m *Model) startAnalysis(sub *session.Submission) tea.Cmd {
	m.viewport.SetContent("")
	return tea.Batch(
		analyzeCmd(m.ctrl, sub),
		m.spinner.Tick,
	)
}

func (m *Model) handleClear() (tea.Model, tea.Cmd) {
	m.store.Clear()
	m.input.Reset()
	m.viewport.SetContent("")
	m.selected = 0
	return m, nil
}

func (m *Model) handleSamplesLoaded(msg samplesLoadedMsg) (tea.Model, tea.Cmd) {
	m.samplesLoaded = true
	m.builtinOnly = !msg.fromService
	if m.selected >= len(msg.samples) {
		m.selected = 0
	}
	return m, nil
}

// handleOutcome applies a settled submission. Outcomes for superseded or
// aborted submissions are dropped by the store.
func (m *Model) handleOutcome(msg analysisOutcomeMsg) (tea.Model, tea.Cmd) {
	if !m.store.Apply(msg.outcome) {
		return m, nil
	}
	if msg.outcome.Result != nil && msg.outcome.Err == nil {
		m.viewport.SetContent(m.renderResult(msg.outcome.Result))
		m.viewport.GotoTop()
	}
	return m, nil
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.store.State() != session.StateLoading {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// pickerVisible reports whether the sample cards are shown
func (m *Model) pickerVisible() bool {
	return m.store.State() == session.StatePicker
}

// Selected returns the highlighted sample index
func (m *Model) Selected() int {
	return m.selected
}

// Input returns the current input text
func (m *Model) Input() string {
	return m.input.Value()
}
