package core

import (
	"strings"
)

// Buffer represents the text content being edited (Using Runes)
//
// Every index argument is clamped against the live buffer before use, so no
// operation fails on out-of-range input. After any mutating call the buffer
// holds at least one line and its last line is empty.
type Buffer interface {
	// Content access
	Lines() []string                        // Get lines as strings (for display)
	Line(row int) string                    // Get a single line, "" when out of range
	LineRunes(row int) []rune               // Get specific line as runes
	LineRuneCount(row int) int              // Get rune count for a line
	LineCount() int                         // Get number of lines
	Text() string                           // Get entire buffer content joined with "\n"
	TextInRange(start, end Position) string // Get the text between two positions, in any order

	// Modification
	Load(text string)                                 // Replace content by splitting text on line breaks
	EnsureTrailingEmptyLine()                         // Append an empty line if the last one is not empty
	InsertAtCursor(cursor Cursor, text string) Cursor // Splice text into the cursor line verbatim
	InsertText(cursor Cursor, text string) Cursor     // Insert text, turning "\n" into line splits
	DeleteBackward(cursor Cursor) (Cursor, bool)      // Backspace; false when nothing was deleted
	SplitLine(cursor Cursor) Cursor                   // Move the suffix after the cursor to a new line
	DeleteRange(start, end Position) Cursor           // Remove the text between two positions

	ClampPosition(pos Position) Position // Clamp a position into the buffer bounds
}

// textBuffer implementation using runes for better unicode handling
type textBuffer struct {
	lines [][]rune // Store lines as slices of runes
}

// NewBuffer creates a new buffer holding a single empty line
func NewBuffer() Buffer {
	return &textBuffer{
		lines: [][]rune{{}},
	}
}

// NewBufferFromString creates a buffer loaded with text.
func NewBufferFromString(text string) Buffer {
	b := &textBuffer{}
	b.Load(text)
	return b
}

func (b *textBuffer) Load(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")

	lines := make([][]rune, len(parts))
	for i, part := range parts {
		lines[i] = []rune(part)
	}

	b.lines = lines
	b.EnsureTrailingEmptyLine()
}

func (b *textBuffer) EnsureTrailingEmptyLine() {
	if len(b.lines) == 0 || len(b.lines[len(b.lines)-1]) > 0 {
		b.lines = append(b.lines, []rune{})
	}
}

func (b *textBuffer) Lines() []string {
	linesStr := make([]string, len(b.lines))
	for i, r := range b.lines {
		linesStr[i] = string(r)
	}
	return linesStr
}

func (b *textBuffer) Line(row int) string {
	return string(b.LineRunes(row))
}

func (b *textBuffer) LineRunes(row int) []rune {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return b.lines[row]
}

func (b *textBuffer) LineRuneCount(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *textBuffer) LineCount() int {
	return len(b.lines)
}

func (b *textBuffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

func (b *textBuffer) ClampPosition(pos Position) Position {
	pos.Row = clamp(pos.Row, 0, len(b.lines)-1)
	pos.Col = clamp(pos.Col, 0, len(b.lines[pos.Row]))
	return pos
}

func (b *textBuffer) TextInRange(start, end Position) string {
	start, end = NormalizeSelection(b.ClampPosition(start), b.ClampPosition(end))

	if start.Row == end.Row {
		return string(b.lines[start.Row][start.Col:end.Col])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Row][start.Col:]))
	for r := start.Row + 1; r < end.Row; r++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[r]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Row][:end.Col]))

	return sb.String()
}

// --- Buffer Modification ---

// InsertAtCursor never splits lines: embedded line breaks become part of the line.
func (b *textBuffer) InsertAtCursor(cursor Cursor, text string) Cursor {
	pos := b.ClampPosition(cursor.Position)
	runes := []rune(text)

	line := b.lines[pos.Row]
	newLine := make([]rune, 0, len(line)+len(runes))
	newLine = append(newLine, line[:pos.Col]...)
	newLine = append(newLine, runes...)
	newLine = append(newLine, line[pos.Col:]...)
	b.lines[pos.Row] = newLine

	b.EnsureTrailingEmptyLine()

	cursor.SetPosition(Position{Row: pos.Row, Col: pos.Col + len(runes)})
	return cursor
}

func (b *textBuffer) InsertText(cursor Cursor, text string) Cursor {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.Contains(text, "\n") {
		return b.InsertAtCursor(cursor, text)
	}

	pos := b.ClampPosition(cursor.Position)
	parts := strings.Split(text, "\n")

	line := b.lines[pos.Row]
	head := make([]rune, 0, pos.Col+len(parts[0]))
	head = append(head, line[:pos.Col]...)
	head = append(head, []rune(parts[0])...)

	tail := make([]rune, len(line)-pos.Col)
	copy(tail, line[pos.Col:])

	newLines := make([][]rune, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		newLines[i-1] = []rune(parts[i])
	}
	last := len(newLines) - 1
	endCol := len(newLines[last])
	newLines[last] = append(newLines[last], tail...)

	finalLines := make([][]rune, 0, len(b.lines)+len(newLines))
	finalLines = append(finalLines, b.lines[:pos.Row]...)
	finalLines = append(finalLines, head)
	finalLines = append(finalLines, newLines...)
	finalLines = append(finalLines, b.lines[pos.Row+1:]...)
	b.lines = finalLines

	b.EnsureTrailingEmptyLine()

	cursor.SetPosition(Position{Row: pos.Row + len(newLines), Col: endCol})
	return cursor
}

func (b *textBuffer) DeleteBackward(cursor Cursor) (Cursor, bool) {
	pos := b.ClampPosition(cursor.Position)

	switch {
	case pos.Col > 0:
		line := b.lines[pos.Row]
		newLine := make([]rune, 0, len(line)-1)
		newLine = append(newLine, line[:pos.Col-1]...)
		newLine = append(newLine, line[pos.Col:]...)
		b.lines[pos.Row] = newLine
		pos.Col--

	case pos.Row > 0:
		// Merge the current line onto the end of the previous one
		prev := b.lines[pos.Row-1]
		joinCol := len(prev)
		merged := make([]rune, 0, joinCol+len(b.lines[pos.Row]))
		merged = append(merged, prev...)
		merged = append(merged, b.lines[pos.Row]...)
		b.lines[pos.Row-1] = merged
		b.lines = append(b.lines[:pos.Row], b.lines[pos.Row+1:]...)
		pos = Position{Row: pos.Row - 1, Col: joinCol}

	default:
		cursor.SetPosition(pos)
		return cursor, false
	}

	b.EnsureTrailingEmptyLine()

	cursor.SetPosition(pos)
	return cursor, true
}

func (b *textBuffer) SplitLine(cursor Cursor) Cursor {
	pos := b.ClampPosition(cursor.Position)
	line := b.lines[pos.Row]

	head := make([]rune, pos.Col)
	copy(head, line[:pos.Col])
	tail := make([]rune, len(line)-pos.Col)
	copy(tail, line[pos.Col:])

	finalLines := make([][]rune, 0, len(b.lines)+1)
	finalLines = append(finalLines, b.lines[:pos.Row]...)
	finalLines = append(finalLines, head, tail)
	finalLines = append(finalLines, b.lines[pos.Row+1:]...)
	b.lines = finalLines

	b.EnsureTrailingEmptyLine()

	cursor.SetPosition(Position{Row: pos.Row + 1, Col: 0})
	return cursor
}

func (b *textBuffer) DeleteRange(start, end Position) Cursor {
	start, end = NormalizeSelection(b.ClampPosition(start), b.ClampPosition(end))

	startLine := b.lines[start.Row]
	endLine := b.lines[end.Row]

	joined := make([]rune, 0, start.Col+len(endLine)-end.Col)
	joined = append(joined, startLine[:start.Col]...)
	joined = append(joined, endLine[end.Col:]...)

	if start.Row == end.Row {
		b.lines[start.Row] = joined
	} else {
		finalLines := make([][]rune, 0, len(b.lines)-(end.Row-start.Row))
		finalLines = append(finalLines, b.lines[:start.Row]...)
		finalLines = append(finalLines, joined)
		finalLines = append(finalLines, b.lines[end.Row+1:]...)
		b.lines = finalLines
	}

	b.EnsureTrailingEmptyLine()

	var cursor Cursor
	cursor.SetPosition(start)
	return cursor
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}
