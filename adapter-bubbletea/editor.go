package adapter_bubbletea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	editor "github.com/ionut-t/lineedit/core"
	"github.com/ionut-t/lineedit/internal/config"
	"github.com/ionut-t/lineedit/internal/log"
)

type Theme struct {
	StatusLineStyle        lipgloss.Style
	MessageStyle           lipgloss.Style
	ErrorStyle             lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	CaretStyle             lipgloss.Style
}

// ThemeFromConfig builds the renderer styles from configured hex colors.
func ThemeFromConfig(c config.ThemeConfig) Theme {
	return Theme{
		StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color(c.Status)).Foreground(lipgloss.Color("255")),
		MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color(c.Error)),
		LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color(c.LineNumber)),
		CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color(c.Selection)),
		CaretStyle:             lipgloss.NewStyle().Background(lipgloss.Color(c.Caret)).Foreground(lipgloss.Color("0")),
	}
}

var DefaultTheme = ThemeFromConfig(config.Defaults().Theme)

const messageDuration = 2 * time.Second

// Options configures a Model. A nil Clipboard uses the system clipboard.
type Options struct {
	Width     int
	Height    int
	Config    config.Config
	Clipboard editor.Clipboard
}

type Model struct {
	dispatcher     *editor.Dispatcher
	view           *viewRenderer
	cfg            config.Config
	width          int
	height         int
	showStatusLine bool
	theme          Theme
	StatusLineFunc func() string
	err            error
	message        string
	isFocused      bool
	clearMsgCancel context.CancelFunc
}

type ErrorMsg struct {
	ID    editor.ErrorId
	Error error
}

type CopyMsg struct {
	Content string
}

type PasteMsg struct {
	Content string
}

// BoundaryMsg reports an edit that had nothing to act on.
type BoundaryMsg struct {
	Error error
}

type clearMsg struct{}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

func New(opts Options) Model {
	cfg := opts.Config
	theme := ThemeFromConfig(cfg.Theme)

	clip := opts.Clipboard
	if clip == nil {
		clip = &clipboardImpl{}
	}

	metrics := CellMetrics(cfg.Metrics)
	session := editor.NewSession(metrics, editor.SessionOptions{
		LeftPadding: cfg.Editor.LeftPadding * max(1, cfg.Metrics.CharWidth),
		Overscan:    cfg.Editor.Overscan,
	})

	view := &viewRenderer{
		viewport:        viewport.New(opts.Width, opts.Height),
		theme:           theme,
		gutter:          cfg.Editor.LeftPadding,
		showLineNumbers: cfg.UI.ShowLineNumbers,
		focused:         true,
	}

	m := Model{
		dispatcher: editor.NewDispatcher(session, view, clip, editor.DispatcherOptions{
			PasteSplitsLines: cfg.Editor.PasteSplitsLines,
		}),
		view:           view,
		cfg:            cfg,
		showStatusLine: cfg.UI.ShowStatusLine,
		theme:          theme,
		isFocused:      true,
	}

	m.SetSize(opts.Width, opts.Height)

	return m
}

// SetSize resizes the terminal area. One row is reserved for the status line when shown.
func (m *Model) SetSize(width, height int) {
	m.width = max(0, width)
	m.height = max(0, height)

	rows := m.height
	if m.showStatusLine {
		rows = max(0, rows-1)
	}

	m.view.setSize(m.width, rows)

	g := m.geometry()
	m.dispatcher.Resize(m.width*g.charWidth, rows*g.lineHeight)
}

// ApplyConfig applies the settings that can change while editing: theme,
// gutter numbers, status line, wheel step and paste splitting. Metrics,
// padding and overscan are fixed for the session's lifetime.
func (m *Model) ApplyConfig(cfg config.Config) {
	m.cfg.UI = cfg.UI
	m.cfg.Theme = cfg.Theme
	m.cfg.Editor.ScrollLines = cfg.Editor.ScrollLines
	m.cfg.Editor.PasteSplitsLines = cfg.Editor.PasteSplitsLines

	m.dispatcher.SetOptions(editor.DispatcherOptions{PasteSplitsLines: cfg.Editor.PasteSplitsLines})

	m.theme = ThemeFromConfig(cfg.Theme)
	m.view.theme = m.theme
	m.view.showLineNumbers = cfg.UI.ShowLineNumbers
	m.showStatusLine = cfg.UI.ShowStatusLine

	m.SetSize(m.width, m.height)
}

// SetContent replaces the document and resets the caret, selection and scroll position.
func (m *Model) SetContent(content string) {
	m.dispatcher.Load(content)
}

// GetCurrentContent returns the document joined with "\n", trailing empty line included.
func (m *Model) GetCurrentContent() string {
	return m.dispatcher.Session().Buffer.Text()
}

// GetSession returns the underlying editing session.
func (m *Model) GetSession() *editor.Session {
	return m.dispatcher.Session()
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
	m.view.theme = theme
	m.dispatcher.Render()
}

// HideLineNumbers blanks the gutter. The gutter keeps its width so pointer mapping is unchanged.
func (m *Model) HideLineNumbers(hide bool) {
	m.view.showLineNumbers = !hide
	m.dispatcher.Render()
}

// HideStatusLine controls whether to show the status line at the bottom of the viewport.
func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
	m.SetSize(m.width, m.height)
}

// DispatchMessage allows setting a message to be displayed in the status line for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError allows setting an error to be displayed in the status line for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

// Focus sets the editor to focused state.
func (m *Model) Focus() {
	m.isFocused = true
	m.view.focused = true
	m.dispatcher.Render()
}

// Blur sets the editor to unfocused state. The caret is hidden and input is ignored.
func (m *Model) Blur() {
	m.isFocused = false
	m.view.focused = false
	m.dispatcher.Render()
}

// IsFocused returns whether the editor is currently focused.
func (m *Model) IsFocused() bool {
	return m.isFocused
}

func (m *Model) geometry() geometry {
	metrics := m.dispatcher.Session().Metrics()
	return geometry{
		charWidth:   metrics.CharWidth,
		lineHeight:  metrics.LineHeight,
		rows:        m.view.viewport.Height,
		scrollLines: max(1, m.cfg.Editor.ScrollLines),
		splitPaste:  m.cfg.Editor.PasteSplitsLines,
	}
}

func (m Model) Init() tea.Cmd {
	return m.listenForEditorUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}

		commands, quit := convertBubbleKey(msg, m.geometry())
		if quit {
			return m, tea.Quit
		}
		m.handle(commands...)

	case tea.MouseMsg:
		if !m.IsFocused() {
			break
		}

		if cmd := convertBubbleMouse(msg, m.geometry()); cmd != nil {
			m.handle(cmd)
		}

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil

	case CopyMsg:
		cmds = append(cmds,
			m.DispatchMessage(fmt.Sprintf("copied %d characters", len([]rune(msg.Content))), messageDuration),
			m.listenForEditorUpdate(),
		)

	case PasteMsg:
		cmds = append(cmds,
			m.DispatchMessage(fmt.Sprintf("pasted %d characters", len([]rune(msg.Content))), messageDuration),
			m.listenForEditorUpdate(),
		)

	case ErrorMsg:
		cmds = append(cmds,
			m.DispatchError(fmt.Errorf("%s: %w", msg.ID, msg.Error), messageDuration),
			m.listenForEditorUpdate(),
		)

	case BoundaryMsg:
		cmds = append(cmds,
			m.DispatchError(msg.Error, messageDuration),
			m.listenForEditorUpdate(),
		)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handle(commands ...editor.Command) {
	for _, cmd := range commands {
		if err := m.dispatcher.Handle(cmd); err != nil {
			log.ErrorErr(log.CatInput, "command rejected", err)
		}
	}
}

func (m Model) View() string {
	content := m.view.viewport.View()

	if !m.showStatusLine {
		return content
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.getStatusLine(),
	)
}

func (m *Model) getStatusLine() string {
	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	session := m.dispatcher.Session()
	cursor := session.Cursor.Position

	var left string
	switch {
	case m.err != nil:
		left = " " + m.err.Error()
		left = m.theme.ErrorStyle.Background(m.theme.StatusLineStyle.GetBackground()).Render(left)
	case m.message != "":
		left = " " + m.message
		left = m.theme.MessageStyle.Background(m.theme.StatusLineStyle.GetBackground()).Render(left)
	}

	cursorInfo := fmt.Sprintf("%d/%d ", cursor.Row+1, cursor.Col+1)
	if start, end, ok := session.Selection.Range(); ok && start != end {
		selected := len([]rune(session.Buffer.TextInRange(start, end)))
		cursorInfo = fmt.Sprintf("%d selected  %s", selected, cursorInfo)
	}

	width := m.width - (lipgloss.Width(cursorInfo) + lipgloss.Width(left))
	gap := strings.Repeat(" ", max(0, width))

	return left + m.theme.StatusLineStyle.Render(gap+cursorInfo)
}

func (m Model) listenForEditorUpdate() tea.Cmd {
	signals := m.dispatcher.Session().Signals()

	return func() tea.Msg {
		signal := <-signals

		switch signal := signal.(type) {
		case editor.ErrorSignal:
			id, err := signal.Value()
			return ErrorMsg{ID: id, Error: err}

		case editor.CopySignal:
			return CopyMsg{Content: signal.Value()}

		case editor.PasteSignal:
			return PasteMsg{Content: signal.Value()}

		case editor.BoundarySignal:
			return BoundaryMsg{Error: signal.Value()}
		}

		return nil
	}
}
