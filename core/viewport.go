package core

// ViewportState is the visible pixel window into the document.
type ViewportState struct {
	ScrollOffset int // Pixels scrolled from the top, in [0, MaxScroll]
	Width        int // Viewport size in pixels
	Height       int
	VisibleStart int // First line to render, overscan included
	VisibleEnd   int // One past the last line to render, overscan included
}

// Scroller owns the scroll offset and the derived visible line range.
type Scroller struct {
	session *Session
}

func NewScroller(session *Session) *Scroller {
	return &Scroller{session: session}
}

// SetSize updates the viewport pixel size and re-derives the visible range.
func (s *Scroller) SetSize(width, height int) {
	s.session.Viewport.Width = max(0, width)
	s.session.Viewport.Height = max(0, height)
	s.setOffset(s.session.Viewport.ScrollOffset)
}

// MaxScroll is the largest offset that still fills the viewport.
func (s *Scroller) MaxScroll() int {
	content := s.session.Buffer.LineCount() * s.session.metrics.LineHeight
	return max(0, content-s.session.Viewport.Height)
}

// Recompute clamps the offset against the current buffer and derives the visible range.
func (s *Scroller) Recompute() {
	vp := &s.session.Viewport
	vp.ScrollOffset = clamp(vp.ScrollOffset, 0, s.MaxScroll())

	lineHeight := s.session.metrics.LineHeight
	lineCount := s.session.Buffer.LineCount()
	overscan := s.session.overscan

	vp.VisibleStart = clamp(floorDiv(vp.ScrollOffset, lineHeight)-overscan, 0, lineCount)
	vp.VisibleEnd = clamp(ceilDiv(vp.ScrollOffset+vp.Height, lineHeight)+overscan, 0, lineCount)
}

// ScrollBy moves the offset by delta pixels and returns the distance actually scrolled.
func (s *Scroller) ScrollBy(delta int) int {
	before := s.session.Viewport.ScrollOffset
	s.setOffset(before + delta)
	return s.session.Viewport.ScrollOffset - before
}

// EnsureCursorVisible scrolls the minimum distance that puts the cursor's
// whole line inside the viewport. When a line is taller than the viewport its
// top edge wins. Calling it again without a state change scrolls zero.
func (s *Scroller) EnsureCursorVisible() int {
	vp := s.session.Viewport
	lineHeight := s.session.metrics.LineHeight

	top := s.session.Cursor.Position.Row * lineHeight
	bottom := top + lineHeight

	target := vp.ScrollOffset
	if top < target {
		target = top
	} else if bottom > target+vp.Height {
		target = bottom - vp.Height
	}
	if target > top {
		target = top
	}

	return s.ScrollBy(target - vp.ScrollOffset)
}

func (s *Scroller) setOffset(offset int) {
	s.session.Viewport.ScrollOffset = offset
	s.Recompute()
}
