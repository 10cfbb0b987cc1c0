package adapter_bubbletea

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	editor "github.com/ionut-t/lineedit/core"
	"github.com/ionut-t/lineedit/internal/log"
)

// viewRenderer draws engine snapshots into a bubbles viewport. Each buffer
// line takes exactly one terminal row and each rune one cell; lines wider
// than the terminal are cut, never wrapped.
type viewRenderer struct {
	viewport        viewport.Model
	theme           Theme
	gutter          int // Gutter width in cells
	showLineNumbers bool
	focused         bool
	frames          int
}

func (r *viewRenderer) setSize(width, height int) {
	r.viewport.Width = width
	r.viewport.Height = height
}

type cellKind int

const (
	cellPlain cellKind = iota
	cellSelected
	cellCaret
)

func (r *viewRenderer) Render(snapshot editor.Snapshot) {
	r.frames++

	spans := make(map[int]editor.Span)
	for _, span := range snapshot.SelectionSpans() {
		spans[span.Row] = span
	}

	caretRow := -1
	if r.focused && snapshot.CaretVisible() {
		caretRow = snapshot.Cursor.Position.Row
	}

	vp := snapshot.Viewport
	rows := make([]string, 0, vp.VisibleEnd-vp.VisibleStart)
	for row := vp.VisibleStart; row < vp.VisibleEnd; row++ {
		line, _ := snapshot.Line(row)

		caretCol := -1
		if row == caretRow {
			caretCol = snapshot.Cursor.Position.Col
		}

		span, selected := spans[row]
		var spanPtr *editor.Span
		if selected {
			spanPtr = &span
		}

		rendered := r.renderGutter(row, row == snapshot.Cursor.Position.Row) + r.renderLine(line, spanPtr, caretCol)
		rows = append(rows, ansi.Truncate(rendered, r.viewport.Width, ""))
	}

	r.viewport.SetContent(strings.Join(rows, "\n"))

	// Bubbles scrolls by rows; the first visible row is derived from the pixel offset
	firstRow := vp.ScrollOffset / snapshot.Metrics.LineHeight
	r.viewport.SetYOffset(firstRow - vp.VisibleStart)

	log.Debug(log.CatRender, "frame",
		"rows", len(rows),
		"first", firstRow,
		"visible", strconv.Itoa(vp.VisibleStart)+"-"+strconv.Itoa(vp.VisibleEnd))
}

func (r *viewRenderer) renderGutter(row int, current bool) string {
	if r.gutter <= 0 {
		return ""
	}
	if !r.showLineNumbers || r.gutter == 1 {
		return strings.Repeat(" ", r.gutter)
	}

	number := strconv.Itoa(row + 1)
	width := r.gutter - 1
	if len(number) > width {
		number = number[len(number)-width:]
	}
	number = strings.Repeat(" ", width-len(number)) + number

	style := r.theme.LineNumberStyle
	if current {
		style = r.theme.CurrentLineNumberStyle
	}
	return style.Render(number) + " "
}

// renderLine styles one buffer line. Runs of equally styled cells are rendered together.
func (r *viewRenderer) renderLine(line string, span *editor.Span, caretCol int) string {
	runes := []rune(line)

	kindAt := func(col int) cellKind {
		switch {
		case col == caretCol:
			return cellCaret
		case span != nil && col >= span.StartCol && col < span.EndCol:
			return cellSelected
		default:
			return cellPlain
		}
	}

	var sb strings.Builder
	var run strings.Builder
	runKind := cellPlain

	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(r.styleFor(runKind).Render(run.String()))
		run.Reset()
	}

	for col, ch := range runes {
		kind := kindAt(col)
		if kind != runKind {
			flush()
			runKind = kind
		}
		run.WriteRune(displayRune(ch))
	}
	flush()

	// The caret past the last character occupies a blank cell
	if caretCol >= len(runes) {
		sb.WriteString(r.theme.CaretStyle.Render(" "))
	}

	return sb.String()
}

func (r *viewRenderer) styleFor(kind cellKind) lipgloss.Style {
	switch kind {
	case cellSelected:
		return r.theme.SelectionStyle
	case cellCaret:
		return r.theme.CaretStyle
	default:
		return lipgloss.NewStyle()
	}
}

// displayRune keeps every rune one cell wide: tabs become a space and
// other control characters, such as line breaks pasted literally, a middle dot.
func displayRune(ch rune) rune {
	switch {
	case ch == '\t':
		return ' '
	case unicode.IsControl(ch):
		return '·'
	default:
		return ch
	}
}
