package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fakeClipboard struct {
	content  string
	writeErr error
	readErr  error
	writes   []string
}

func (c *fakeClipboard) Write(text string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes = append(c.writes, text)
	c.content = text
	return nil
}

func (c *fakeClipboard) Read() (string, error) {
	if c.readErr != nil {
		return "", c.readErr
	}
	return c.content, nil
}

type testEditor struct {
	*Dispatcher
	clipboard *fakeClipboard
	renders   int
	last      Snapshot
}

// newTestEditor uses 10x20 pixel cells, a 5 pixel padding and a 400x100 viewport (5 lines).
func newTestEditor(t *testing.T, text string, opts DispatcherOptions) *testEditor {
	t.Helper()
	e := &testEditor{clipboard: &fakeClipboard{}}
	session := newTestSession("")
	e.Dispatcher = NewDispatcher(session, RendererFunc(func(s Snapshot) {
		e.renders++
		e.last = s
	}), e.clipboard, opts)
	e.Resize(400, 100)
	e.Load(text)
	e.renders = 0
	return e
}

// point returns the viewport pixel at the left edge of a cell.
func (e *testEditor) point(row, col int) (int, int) {
	m := e.Session().Metrics()
	return e.Session().LeftPadding() + col*m.CharWidth, row*m.LineHeight - e.Session().Viewport.ScrollOffset + 1
}

func (e *testEditor) selectRange(from, to Position) {
	x, y := e.point(from.Row, from.Col)
	_ = e.Handle(SetSelectionAnchorAt{X: x, Y: y})
	x, y = e.point(to.Row, to.Col)
	_ = e.Handle(ExtendSelectionTo{X: x, Y: y})
}

func (e *testEditor) lines() []string {
	return e.Session().Buffer.Lines()
}

func (e *testEditor) cursor() Position {
	return e.Session().Cursor.Position
}

func drainSignals(s *Session) []Signal {
	var out []Signal
	for {
		select {
		case sig := <-s.Signals():
			out = append(out, sig)
		default:
			return out
		}
	}
}

func TestDispatcher_InsertTextMidLine(t *testing.T) {
	e := newTestEditor(t, "Hello World", DispatcherOptions{})
	for range 5 {
		require.NoError(t, e.Handle(MoveCursor{Direction: DirRight}))
	}

	require.NoError(t, e.Handle(InsertText{Text: " there"}))

	require.Equal(t, []string{"Hello there World", ""}, e.lines())
	require.Equal(t, Position{Row: 0, Col: 11}, e.cursor())
}

func TestDispatcher_DeleteBackwardJoinsLines(t *testing.T) {
	e := newTestEditor(t, "ab\ncd", DispatcherOptions{})
	require.NoError(t, e.Handle(MoveCursor{Direction: DirDown}))
	require.Equal(t, Position{Row: 1, Col: 0}, e.cursor())

	require.NoError(t, e.Handle(DeleteBackward{}))

	require.Equal(t, []string{"abcd", ""}, e.lines())
	require.Equal(t, Position{Row: 0, Col: 2}, e.cursor())
}

func TestDispatcher_CopyMultiLineSelection(t *testing.T) {
	e := newTestEditor(t, "abcdef\nghij\nklmno", DispatcherOptions{})

	e.selectRange(Position{Row: 0, Col: 2}, Position{Row: 2, Col: 1})
	sel := e.Session().Selection.State().(ActiveSelection)
	require.Equal(t, Position{Row: 0, Col: 2}, sel.Anchor)
	require.Equal(t, Position{Row: 2, Col: 1}, sel.Active)
	drainSignals(e.Session())

	require.NoError(t, e.Handle(Copy{}))

	require.Equal(t, []string{"cdef\nghij\nk"}, e.clipboard.writes)
	require.True(t, e.Session().Selection.IsActive(), "copy keeps the selection")

	signals := drainSignals(e.Session())
	require.Len(t, signals, 1)
	require.Equal(t, "cdef\nghij\nk", signals[0].(CopySignal).Value())
}

func TestDispatcher_CopySelectionDraggedBackwards(t *testing.T) {
	e := newTestEditor(t, "abcdef\nghij\nklmno", DispatcherOptions{})

	e.selectRange(Position{Row: 2, Col: 1}, Position{Row: 0, Col: 2})
	require.NoError(t, e.Handle(Copy{}))

	require.Equal(t, []string{"cdef\nghij\nk"}, e.clipboard.writes)
}

func TestDispatcher_CopyWithoutSelectionIsNoop(t *testing.T) {
	e := newTestEditor(t, "abc", DispatcherOptions{})

	require.NoError(t, e.Handle(Copy{}))

	require.Empty(t, e.clipboard.writes)
	require.Empty(t, drainSignals(e.Session()))
	require.Equal(t, 1, e.renders)
}

func TestDispatcher_CopyZeroLengthSelectionIsNoop(t *testing.T) {
	e := newTestEditor(t, "hello", DispatcherOptions{})
	e.clipboard.content = "kept"
	require.NoError(t, e.Handle(SetSelectionAnchorAt{X: 25, Y: 5}))

	require.NoError(t, e.Handle(Copy{}))

	require.Empty(t, e.clipboard.writes)
	require.Equal(t, "kept", e.clipboard.content)
	require.Empty(t, drainSignals(e.Session()))
	require.True(t, e.Session().Selection.IsActive(), "a click selection survives copy")
}

func TestDispatcher_CopyFailureSignalsError(t *testing.T) {
	e := newTestEditor(t, "abc", DispatcherOptions{})
	e.clipboard.writeErr = errors.New("no clipboard")
	e.selectRange(Position{Row: 0, Col: 0}, Position{Row: 0, Col: 2})
	drainSignals(e.Session())

	require.NoError(t, e.Handle(Copy{}))

	signals := drainSignals(e.Session())
	require.Len(t, signals, 1)
	id, err := signals[0].(ErrorSignal).Value()
	require.Equal(t, ErrCopyFailedId, id)
	require.EqualError(t, err, "no clipboard")
}

func TestDispatcher_PasteInsertsLiteralText(t *testing.T) {
	e := newTestEditor(t, "ad", DispatcherOptions{})
	e.clipboard.content = "b\nc"
	require.NoError(t, e.Handle(MoveCursor{Direction: DirRight}))

	require.NoError(t, e.Handle(Paste{}))

	require.Equal(t, []string{"ab\ncd", ""}, e.lines())
	require.Equal(t, Position{Row: 0, Col: 4}, e.cursor())
	signals := drainSignals(e.Session())
	require.Len(t, signals, 1)
	require.Equal(t, "b\nc", signals[0].(PasteSignal).Value())
}

func TestDispatcher_PasteSplitsLinesWhenEnabled(t *testing.T) {
	e := newTestEditor(t, "ad", DispatcherOptions{PasteSplitsLines: true})
	e.clipboard.content = "b\nc"
	require.NoError(t, e.Handle(MoveCursor{Direction: DirRight}))

	require.NoError(t, e.Handle(Paste{}))

	require.Equal(t, []string{"ab", "cd", ""}, e.lines())
	require.Equal(t, Position{Row: 1, Col: 1}, e.cursor())
}

func TestDispatcher_PasteUnavailableIsNoop(t *testing.T) {
	e := newTestEditor(t, "abc", DispatcherOptions{})
	e.clipboard.readErr = errors.New("unavailable")

	require.NoError(t, e.Handle(Paste{}))

	require.Equal(t, []string{"abc", ""}, e.lines())
	require.Equal(t, 1, e.renders)
	signals := drainSignals(e.Session())
	require.Len(t, signals, 1)
	id, _ := signals[0].(ErrorSignal).Value()
	require.Equal(t, ErrPasteFailedId, id)
}

func TestDispatcher_PasteEmptyClipboardIsNoop(t *testing.T) {
	e := newTestEditor(t, "abc", DispatcherOptions{})

	require.NoError(t, e.Handle(Paste{}))

	require.Equal(t, []string{"abc", ""}, e.lines())
	require.Empty(t, drainSignals(e.Session()))
}

func TestDispatcher_PasteReplacesSelection(t *testing.T) {
	e := newTestEditor(t, "hello world", DispatcherOptions{})
	e.clipboard.content = "there"
	e.selectRange(Position{Row: 0, Col: 6}, Position{Row: 0, Col: 11})

	require.NoError(t, e.Handle(Paste{}))

	require.Equal(t, []string{"hello there", ""}, e.lines())
	require.False(t, e.Session().Selection.IsActive())
}

func TestDispatcher_PasteAbsentValueStillDeletesSelection(t *testing.T) {
	tests := []struct {
		name    string
		readErr error
	}{
		{"clipboard unavailable", errors.New("unavailable")},
		{"empty clipboard", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, "hello world", DispatcherOptions{})
			e.clipboard.readErr = tt.readErr
			e.selectRange(Position{Row: 0, Col: 6}, Position{Row: 0, Col: 11})

			require.NoError(t, e.Handle(Paste{}))

			require.Equal(t, []string{"hello ", ""}, e.lines())
			require.Equal(t, Position{Row: 0, Col: 6}, e.cursor())
			require.Equal(t, NoSelection{}, e.Session().Selection.State())
		})
	}
}

func TestDispatcher_PasteWithoutClipboard(t *testing.T) {
	s := newTestSession("abc")
	d := NewDispatcher(s, nil, nil, DispatcherOptions{})

	require.NoError(t, d.Handle(Paste{}))

	require.Equal(t, []string{"abc", ""}, s.Buffer.Lines())
	signals := drainSignals(s)
	require.Len(t, signals, 1)
	_, err := signals[0].(ErrorSignal).Value()
	require.ErrorIs(t, err, ErrClipboardUnavailable)
}

func TestDispatcher_TypingReplacesSelection(t *testing.T) {
	e := newTestEditor(t, "abcdef\nghij\nklmno", DispatcherOptions{})
	e.selectRange(Position{Row: 0, Col: 2}, Position{Row: 2, Col: 1})

	require.NoError(t, e.Handle(InsertText{Text: "X"}))

	require.Equal(t, []string{"abXlmno", ""}, e.lines())
	require.Equal(t, Position{Row: 0, Col: 3}, e.cursor())
	require.False(t, e.Session().Selection.IsActive())
}

func TestDispatcher_DeleteBackwardRemovesSelectionOnly(t *testing.T) {
	e := newTestEditor(t, "abcdef", DispatcherOptions{})
	e.selectRange(Position{Row: 0, Col: 4}, Position{Row: 0, Col: 1})

	require.NoError(t, e.Handle(DeleteBackward{}))

	require.Equal(t, []string{"aef", ""}, e.lines())
	require.Equal(t, Position{Row: 0, Col: 1}, e.cursor())
}

func TestDispatcher_EmptySelectionDoesNotConsumeEdit(t *testing.T) {
	e := newTestEditor(t, "abc", DispatcherOptions{})
	x, y := e.point(0, 2)
	require.NoError(t, e.Handle(SetSelectionAnchorAt{X: x, Y: y}))
	require.True(t, e.Session().Selection.IsActive())

	require.NoError(t, e.Handle(DeleteBackward{}))

	require.Equal(t, []string{"ac", ""}, e.lines())
	require.False(t, e.Session().Selection.IsActive())
}

func TestDispatcher_SplitLineReplacesSelection(t *testing.T) {
	e := newTestEditor(t, "abcdef", DispatcherOptions{})
	e.selectRange(Position{Row: 0, Col: 2}, Position{Row: 0, Col: 4})

	require.NoError(t, e.Handle(SplitLine{}))

	require.Equal(t, []string{"ab", "ef", ""}, e.lines())
	require.Equal(t, Position{Row: 1, Col: 0}, e.cursor())
}

func TestDispatcher_MoveClearsSelection(t *testing.T) {
	e := newTestEditor(t, "abcdef", DispatcherOptions{})
	e.selectRange(Position{Row: 0, Col: 1}, Position{Row: 0, Col: 3})

	require.NoError(t, e.Handle(MoveCursor{Direction: DirLeft}))

	require.Equal(t, NoSelection{}, e.Session().Selection.State())
	require.Equal(t, Position{Row: 0, Col: 2}, e.cursor())
}

func TestDispatcher_PointerMovesCursor(t *testing.T) {
	e := newTestEditor(t, "abc\ndefgh", DispatcherOptions{})

	x, y := e.point(1, 4)
	require.NoError(t, e.Handle(SetSelectionAnchorAt{X: x, Y: y}))
	require.Equal(t, Position{Row: 1, Col: 4}, e.cursor())

	// Dragging far past the end of the document clamps
	require.NoError(t, e.Handle(ExtendSelectionTo{X: 9999, Y: 9999}))
	require.Equal(t, Position{Row: 2, Col: 0}, e.cursor())
	start, end, ok := e.Session().Selection.Range()
	require.True(t, ok)
	require.Equal(t, Position{Row: 1, Col: 4}, start)
	require.Equal(t, Position{Row: 2, Col: 0}, end)
}

func TestDispatcher_BackspaceAtStartSignalsBoundary(t *testing.T) {
	e := newTestEditor(t, "abc", DispatcherOptions{})

	require.NoError(t, e.Handle(DeleteBackward{}))

	require.Equal(t, []string{"abc", ""}, e.lines())
	require.Equal(t, Position{}, e.cursor())
	require.Equal(t, 1, e.renders)

	signals := drainSignals(e.Session())
	require.Len(t, signals, 1)
	require.ErrorIs(t, signals[0].(BoundarySignal).Value(), ErrStartOfBuffer)
}

func TestDispatcher_NilCommandRejected(t *testing.T) {
	e := newTestEditor(t, "abc", DispatcherOptions{})

	err := e.Handle(nil)

	require.ErrorIs(t, err, ErrInvalidCommand)
	require.Zero(t, e.renders)
}

func TestDispatcher_RendersOncePerCommand(t *testing.T) {
	e := newTestEditor(t, "abc\ndef", DispatcherOptions{})
	commands := []Command{
		MoveCursor{Direction: DirDown},
		InsertText{Text: "x"},
		SplitLine{},
		DeleteBackward{},
		SetSelectionAnchorAt{X: 0, Y: 0},
		ExtendSelectionTo{X: 30, Y: 0},
		Copy{},
		Paste{},
		ScrollBy{Delta: 20},
	}

	for i, cmd := range commands {
		require.NoError(t, e.Handle(cmd), cmd.String())
		require.Equal(t, i+1, e.renders, cmd.String())
	}
}

func TestDispatcher_ScrollDoesNotSnapBackToCursor(t *testing.T) {
	e := newTestEditor(t, strings.Repeat("line\n", 50), DispatcherOptions{})

	require.NoError(t, e.Handle(ScrollBy{Delta: 400}))

	require.Equal(t, 400, e.Session().Viewport.ScrollOffset)
	require.Equal(t, Position{}, e.cursor())
	require.False(t, e.last.CaretVisible())

	// The next cursor command brings the caret back into view
	require.NoError(t, e.Handle(MoveCursor{Direction: DirDown}))
	require.Equal(t, 20, e.Session().Viewport.ScrollOffset)
	require.True(t, e.last.CaretVisible())
}

func TestDispatcher_TypingFollowsCursorDown(t *testing.T) {
	e := newTestEditor(t, "", DispatcherOptions{})

	for range 10 {
		require.NoError(t, e.Handle(InsertText{Text: "x"}))
		require.NoError(t, e.Handle(SplitLine{}))
	}

	require.Equal(t, Position{Row: 10, Col: 0}, e.cursor())
	// Row 10 spans [200,220); a 100 pixel viewport must start at 120
	require.Equal(t, 120, e.Session().Viewport.ScrollOffset)
}

func TestDispatcher_LoadResetsState(t *testing.T) {
	e := newTestEditor(t, strings.Repeat("line\n", 50), DispatcherOptions{})
	e.selectRange(Position{Row: 0, Col: 0}, Position{Row: 3, Col: 2})
	require.NoError(t, e.Handle(ScrollBy{Delta: 300}))

	e.Load("fresh")

	require.Equal(t, []string{"fresh", ""}, e.lines())
	require.Equal(t, Position{}, e.cursor())
	require.False(t, e.Session().Selection.IsActive())
	require.Zero(t, e.Session().Viewport.ScrollOffset)
	require.Equal(t, []string{"fresh", ""}, e.last.VisibleLines)
}

func TestDispatcher_SnapshotHoldsOnlyVisibleLines(t *testing.T) {
	e := newTestEditor(t, strings.Repeat("line\n", 99), DispatcherOptions{})

	require.NoError(t, e.Handle(ScrollBy{Delta: 1000}))

	vp := e.last.Viewport
	require.Equal(t, 100, e.last.LineCount)
	require.Len(t, e.last.VisibleLines, vp.VisibleEnd-vp.VisibleStart)
	require.Equal(t, 48, vp.VisibleStart)
	require.Equal(t, 57, vp.VisibleEnd)
}

func TestDispatcher_InvariantsHoldForAnyCommandSequence(t *testing.T) {
	commandGen := rapid.Custom(func(t *rapid.T) Command {
		switch rapid.IntRange(0, 8).Draw(t, "kind") {
		case 0:
			return MoveCursor{Direction: Direction(rapid.IntRange(0, 5).Draw(t, "dir"))}
		case 1:
			return InsertText{Text: rapid.StringMatching(`[a-z]{1,3}`).Draw(t, "text")}
		case 2:
			return DeleteBackward{}
		case 3:
			return SplitLine{}
		case 4:
			return SetSelectionAnchorAt{X: rapid.IntRange(-50, 500).Draw(t, "x"), Y: rapid.IntRange(-50, 300).Draw(t, "y")}
		case 5:
			return ExtendSelectionTo{X: rapid.IntRange(-50, 500).Draw(t, "x"), Y: rapid.IntRange(-50, 300).Draw(t, "y")}
		case 6:
			return Copy{}
		case 7:
			return Paste{}
		default:
			return ScrollBy{Delta: rapid.IntRange(-200, 200).Draw(t, "delta")}
		}
	})

	rapid.Check(t, func(rt *rapid.T) {
		e := newTestEditor(t, drawDocument(rt), DispatcherOptions{
			PasteSplitsLines: rapid.Bool().Draw(rt, "pasteSplits"),
		})
		s := e.Session()
		commands := rapid.SliceOfN(commandGen, 1, 30).Draw(rt, "commands")

		for i, cmd := range commands {
			require.NoError(rt, e.Handle(cmd))
			require.Equal(rt, i+1, e.renders)

			requireBufferInvariant(rt, s.Buffer)
			require.Equal(rt, s.Buffer.ClampPosition(s.Cursor.Position), s.Cursor.Position)
			require.GreaterOrEqual(rt, s.Viewport.ScrollOffset, 0)
			require.LessOrEqual(rt, s.Viewport.ScrollOffset, e.Scroller().MaxScroll())
			if _, isScroll := cmd.(ScrollBy); !isScroll {
				require.True(rt, e.last.CaretVisible(), "caret must be visible after %s", cmd)
			}
			drainSignals(s)
		}
	})
}
