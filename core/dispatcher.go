package core

import (
	"fmt"

	"github.com/ionut-t/lineedit/internal/log"
)

// DispatcherOptions toggles optional editing behavior.
type DispatcherOptions struct {
	// PasteSplitsLines makes Paste turn line breaks into new lines instead of
	// inserting the clipboard text as one literal run.
	PasteSplitsLines bool
}

// Dispatcher is the only writer of session state. Every command runs to
// completion, then the cursor is normalized, the viewport is recomputed and
// the renderer is invoked exactly once.
type Dispatcher struct {
	session   *Session
	mapper    *Mapper
	scroller  *Scroller
	renderer  Renderer
	clipboard Clipboard
	opts      DispatcherOptions
}

func NewDispatcher(session *Session, renderer Renderer, clipboard Clipboard, opts DispatcherOptions) *Dispatcher {
	if renderer == nil {
		renderer = RendererFunc(func(Snapshot) {})
	}

	return &Dispatcher{
		session:   session,
		mapper:    NewMapper(session),
		scroller:  NewScroller(session),
		renderer:  renderer,
		clipboard: clipboard,
		opts:      opts,
	}
}

func (d *Dispatcher) Session() *Session { return d.session }

func (d *Dispatcher) Scroller() *Scroller { return d.scroller }

// SetOptions replaces the optional behavior for subsequent commands.
func (d *Dispatcher) SetOptions(opts DispatcherOptions) {
	d.opts = opts
}

// Load replaces the document, resets the caret, selection and scroll, and renders.
func (d *Dispatcher) Load(text string) {
	s := d.session
	s.Buffer.Load(text)
	s.Cursor = Cursor{}
	s.Selection.Clear()
	s.Viewport.ScrollOffset = 0

	log.Debug(log.CatBuffer, "document loaded", "lines", s.Buffer.LineCount())

	d.finish(true)
}

// Resize sets the viewport size in pixels and renders.
func (d *Dispatcher) Resize(width, height int) {
	d.scroller.SetSize(width, height)

	log.Debug(log.CatViewport, "viewport resized", "width", width, "height", height)

	d.finish(true)
}

// Render re-renders the current state without changing it.
func (d *Dispatcher) Render() {
	d.renderer.Render(d.session.Snapshot())
}

// Handle applies one command. A nil command is rejected with ErrInvalidCommand
// and nothing is rendered; every other command renders exactly once.
func (d *Dispatcher) Handle(cmd Command) error {
	if cmd == nil {
		log.Warn(log.CatInput, "rejected nil command")
		return ErrInvalidCommand
	}

	log.Debug(log.CatInput, "command", "cmd", cmd.String())

	follow := true

	switch c := cmd.(type) {
	case MoveCursor:
		d.moveCursor(c.Direction)
	case InsertText:
		d.insertText(c.Text)
	case DeleteBackward:
		d.deleteBackward()
	case SplitLine:
		d.splitLine()
	case SetSelectionAnchorAt:
		d.anchorAt(c.X, c.Y)
	case ExtendSelectionTo:
		d.extendTo(c.X, c.Y)
	case Copy:
		d.copySelection()
	case Paste:
		d.paste()
	case ScrollBy:
		d.scroller.ScrollBy(c.Delta)
		follow = false
	default:
		err := fmt.Errorf("%w: %s", ErrInvalidCommand, cmd.String())
		log.ErrorErr(log.CatInput, "unknown command", err)
		return err
	}

	d.finish(follow)
	return nil
}

// finish restores the post-command invariants and renders once.
func (d *Dispatcher) finish(follow bool) {
	d.session.Cursor.Normalize(d.session.Buffer)
	d.scroller.Recompute()

	if follow {
		if delta := d.scroller.EnsureCursorVisible(); delta != 0 {
			log.Debug(log.CatViewport, "scrolled to cursor", "delta", delta, "offset", d.session.Viewport.ScrollOffset)
		}
	}

	d.renderer.Render(d.session.Snapshot())
}

func (d *Dispatcher) moveCursor(dir Direction) {
	d.session.Selection.Clear()
	d.session.Cursor.Move(d.session.Buffer, dir)
}

// deleteSelection removes a non-empty selection and parks the caret at its start.
// The selection is cleared either way.
func (d *Dispatcher) deleteSelection() bool {
	start, end, ok := d.session.Selection.Commit()
	if !ok {
		return false
	}

	d.session.Cursor = d.session.Buffer.DeleteRange(start, end)
	log.Debug(log.CatSelection, "selection deleted", "start", start, "end", end)
	return true
}

func (d *Dispatcher) insertText(text string) {
	d.deleteSelection()
	d.session.Cursor = d.session.Buffer.InsertAtCursor(d.session.Cursor, text)
}

func (d *Dispatcher) deleteBackward() {
	if d.deleteSelection() {
		return
	}

	cursor, deleted := d.session.Buffer.DeleteBackward(d.session.Cursor)
	d.session.Cursor = cursor
	if !deleted {
		d.session.dispatchSignal(BoundarySignal{err: ErrStartOfBuffer})
	}
}

func (d *Dispatcher) splitLine() {
	d.deleteSelection()
	d.session.Cursor = d.session.Buffer.SplitLine(d.session.Cursor)
}

func (d *Dispatcher) anchorAt(x, y int) {
	pos := d.mapper.ViewportPointToPosition(x, y)
	d.session.Selection.Begin(pos)
	d.session.Cursor.SetPosition(pos)
}

func (d *Dispatcher) extendTo(x, y int) {
	pos := d.mapper.ViewportPointToPosition(x, y)
	d.session.Selection.Extend(pos)
	d.session.Cursor.SetPosition(pos)
}

func (d *Dispatcher) copySelection() {
	start, end, ok := d.session.Selection.Range()
	if !ok || start == end {
		log.Debug(log.CatClipboard, "copy without selected text ignored")
		return
	}

	text := d.session.Buffer.TextInRange(start, end)

	if d.clipboard == nil {
		d.session.dispatchError(ErrCopyFailedId, ErrClipboardUnavailable)
		return
	}

	if err := d.clipboard.Write(text); err != nil {
		log.Warn(log.CatClipboard, "clipboard write failed", "error", err)
		d.session.dispatchError(ErrCopyFailedId, err)
		return
	}

	d.session.dispatchSignal(CopySignal{content: text})
}

// paste consumes the selection before reading, so an absent clipboard value
// still deletes the selected text.
func (d *Dispatcher) paste() {
	d.deleteSelection()

	if d.clipboard == nil {
		d.session.dispatchError(ErrPasteFailedId, ErrClipboardUnavailable)
		return
	}

	text, err := d.clipboard.Read()
	if err != nil {
		log.Warn(log.CatClipboard, "clipboard read failed", "error", err)
		d.session.dispatchError(ErrPasteFailedId, err)
		return
	}
	if text == "" {
		log.Debug(log.CatClipboard, "empty clipboard, nothing to paste")
		return
	}

	if d.opts.PasteSplitsLines {
		d.session.Cursor = d.session.Buffer.InsertText(d.session.Cursor, text)
	} else {
		d.session.Cursor = d.session.Buffer.InsertAtCursor(d.session.Cursor, text)
	}

	d.session.dispatchSignal(PasteSignal{content: text})
}
