package core

// Mapper converts pixel points to text positions, assuming a fixed-width
// character cell. Drawing (position to pixel) belongs to the Renderer.
type Mapper struct {
	session *Session
}

func NewMapper(session *Session) *Mapper {
	return &Mapper{session: session}
}

// PointToPosition maps a point in document pixels (y measured from the first
// line, not the viewport) to a position. Any input, including negative or
// past-end coordinates, maps to a valid position.
func (m *Mapper) PointToPosition(x, y int) Position {
	metrics := m.session.metrics
	buffer := m.session.Buffer

	row := clamp(floorDiv(y, metrics.LineHeight), 0, buffer.LineCount()-1)
	lineLen := buffer.LineRuneCount(row)

	col := clamp(floorDiv(x-m.session.leftPadding, metrics.CharWidth), 0, lineLen)

	// Snap to the next boundary once past the middle of the cell
	cellStart := m.session.leftPadding + col*metrics.CharWidth
	if 2*(x-cellStart) > metrics.CharWidth {
		col = min(col+1, lineLen)
	}

	return Position{Row: row, Col: col}
}

// ViewportPointToPosition maps a point relative to the viewport's top-left corner.
func (m *Mapper) ViewportPointToPosition(x, y int) Position {
	return m.PointToPosition(x, y+m.session.Viewport.ScrollOffset)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
