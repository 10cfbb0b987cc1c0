package core

// Direction is a cursor movement handled by Cursor.Move.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirLineStart
	DirLineEnd
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLineStart:
		return "line-start"
	case DirLineEnd:
		return "line-end"
	default:
		return "unknown"
	}
}

// Cursor represents the current position for editing operations
type Cursor struct {
	Position  Position // Current position (row, column)
	Preferred int      // Preferred column for vertical movement (sticky column)
}

// SetPosition places the cursor explicitly and remembers the column as preferred.
func (c *Cursor) SetPosition(pos Position) {
	c.Position = pos
	c.Preferred = pos.Col
}

// Normalize clamps the cursor into the buffer bounds, accepting any
// pre-clamp value including negative ones. The preferred column is kept.
func (c *Cursor) Normalize(buffer Buffer) {
	c.Position = buffer.ClampPosition(c.Position)
}

// normalizePreferred clamps the row, then restores the column from the
// preferred column clamped to the new line length.
func (c *Cursor) normalizePreferred(buffer Buffer) {
	c.Position.Row = clamp(c.Position.Row, 0, buffer.LineCount()-1)
	c.Position.Col = clamp(c.Preferred, 0, buffer.LineRuneCount(c.Position.Row))
}

// --- Cursor Movement ---

// Move applies one movement. Horizontal moves wrap across line boundaries and
// re-derive the preferred column; vertical moves read it without overwriting it.
func (c *Cursor) Move(buffer Buffer, dir Direction) {
	c.Normalize(buffer)

	switch dir {
	case DirLeft:
		if c.Position.Col > 0 {
			c.Position.Col--
		} else if c.Position.Row > 0 {
			c.Position.Row--
			c.Position.Col = buffer.LineRuneCount(c.Position.Row)
		}

	case DirRight:
		if c.Position.Col < buffer.LineRuneCount(c.Position.Row) {
			c.Position.Col++
		} else if c.Position.Row < buffer.LineCount()-1 {
			c.Position.Row++
			c.Position.Col = 0
		}

	case DirUp:
		c.Position.Row--
		c.normalizePreferred(buffer)
		return

	case DirDown:
		c.Position.Row++
		c.normalizePreferred(buffer)
		return

	case DirLineStart:
		c.Position.Col = 0

	case DirLineEnd:
		c.Position.Col = buffer.LineRuneCount(c.Position.Row)
	}

	c.Normalize(buffer)
	c.Preferred = c.Position.Col
}
