package core

// Selection is either NoSelection or ActiveSelection. The set is closed.
type Selection interface {
	isSelection()
}

// NoSelection means no drag is in progress. It is distinct from an
// ActiveSelection whose anchor and active points coincide.
type NoSelection struct{}

// ActiveSelection is a drag-selection; Anchor is fixed, Active moves.
type ActiveSelection struct {
	Anchor Position
	Active Position
}

func (NoSelection) isSelection()     {}
func (ActiveSelection) isSelection() {}

// Range returns the selection bounds in document order.
func (s ActiveSelection) Range() (start, end Position) {
	return NormalizeSelection(s.Anchor, s.Active)
}

// IsEmpty reports whether the selection covers zero characters.
func (s ActiveSelection) IsEmpty() bool {
	return s.Anchor == s.Active
}

// NormalizeSelection orders two points by row, then column.
// Every caller that needs a selection's start and end goes through here.
func NormalizeSelection(p1, p2 Position) (start, end Position) {
	if p1.Row < p2.Row || (p1.Row == p2.Row && p1.Col <= p2.Col) {
		return p1, p2
	}
	return p2, p1
}

// SelectionModel owns the session's selection state.
type SelectionModel struct {
	state Selection
}

// State returns the current selection value.
func (m *SelectionModel) State() Selection {
	if m.state == nil {
		return NoSelection{}
	}
	return m.state
}

// Begin starts a selection at p (pointer down).
func (m *SelectionModel) Begin(p Position) {
	m.state = ActiveSelection{Anchor: p, Active: p}
}

// Extend moves the active end (pointer drag). Without a selection it starts one at p.
func (m *SelectionModel) Extend(p Position) {
	sel, ok := m.state.(ActiveSelection)
	if !ok {
		m.Begin(p)
		return
	}
	sel.Active = p
	m.state = sel
}

func (m *SelectionModel) Clear() {
	m.state = NoSelection{}
}

// IsActive reports whether a selection exists, even a zero-length one.
func (m *SelectionModel) IsActive() bool {
	_, ok := m.state.(ActiveSelection)
	return ok
}

// Range returns the normalized bounds; ok is false when nothing is selected.
func (m *SelectionModel) Range() (start, end Position, ok bool) {
	sel, ok := m.state.(ActiveSelection)
	if !ok {
		return Position{}, Position{}, false
	}
	start, end = sel.Range()
	return start, end, true
}

// Commit hands the selected range to an edit and clears the selection.
// ok is false when there is no selection or it covers zero characters.
func (m *SelectionModel) Commit() (start, end Position, ok bool) {
	sel, active := m.state.(ActiveSelection)
	m.Clear()
	if !active || sel.IsEmpty() {
		return Position{}, Position{}, false
	}
	start, end = sel.Range()
	return start, end, true
}
