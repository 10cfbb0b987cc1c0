package core

// Snapshot is a read-only copy of the session handed to a Renderer.
type Snapshot struct {
	VisibleLines []string // Lines VisibleStart..VisibleEnd-1 of the buffer
	LineCount    int
	Cursor       Cursor
	Selection    Selection
	Viewport     ViewportState
	Metrics      TextMetrics
	LeftPadding  int
}

// Span is a highlighted column range [StartCol, EndCol) on one row.
type Span struct {
	Row      int
	StartCol int
	EndCol   int
}

// Line returns the text of a visible row.
func (s Snapshot) Line(row int) (string, bool) {
	idx := row - s.Viewport.VisibleStart
	if idx < 0 || idx >= len(s.VisibleLines) {
		return "", false
	}
	return s.VisibleLines[idx], true
}

func (s Snapshot) lineLen(row int) int {
	line, _ := s.Line(row)
	return len([]rune(line))
}

// SelectionSpans returns the normalized selection clipped to the visible rows.
// Inner rows of a multi-line selection span the whole line.
func (s Snapshot) SelectionSpans() []Span {
	sel, ok := s.Selection.(ActiveSelection)
	if !ok {
		return nil
	}
	start, end := sel.Range()

	first := max(start.Row, s.Viewport.VisibleStart)
	last := min(end.Row, s.Viewport.VisibleEnd-1)
	if first > last {
		return nil
	}

	spans := make([]Span, 0, last-first+1)
	for row := first; row <= last; row++ {
		lineLen := s.lineLen(row)
		span := Span{Row: row, StartCol: 0, EndCol: lineLen}
		if row == start.Row {
			span.StartCol = min(start.Col, lineLen)
		}
		if row == end.Row {
			span.EndCol = min(end.Col, lineLen)
		}
		spans = append(spans, span)
	}
	return spans
}

// CaretVisible reports whether the cursor row lies in the visible range.
func (s Snapshot) CaretVisible() bool {
	row := s.Cursor.Position.Row
	return row >= s.Viewport.VisibleStart && row < s.Viewport.VisibleEnd
}

// RowTop is the pixel y of a row's top edge relative to the viewport.
func (s Snapshot) RowTop(row int) int {
	return row*s.Metrics.LineHeight - s.Viewport.ScrollOffset
}
