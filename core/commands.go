package core

import "fmt"

// Command is an abstract input decoded once at the host boundary.
// The set is closed: only the types in this file implement it.
type Command interface {
	fmt.Stringer
	isCommand()
}

// MoveCursor moves the caret and drops any selection.
type MoveCursor struct {
	Direction Direction
}

// InsertText splices Text into the cursor line as a single literal run.
type InsertText struct {
	Text string
}

// DeleteBackward removes the character left of the caret, or the selection.
type DeleteBackward struct{}

// SplitLine breaks the line at the caret (Enter).
type SplitLine struct{}

// SetSelectionAnchorAt places the caret and starts a selection at a viewport point (pointer down).
type SetSelectionAnchorAt struct {
	X, Y int
}

// ExtendSelectionTo moves the selection's active end to a viewport point (pointer drag).
type ExtendSelectionTo struct {
	X, Y int
}

type Copy struct{}

type Paste struct{}

// ScrollBy scrolls the viewport by Delta pixels; positive scrolls down.
type ScrollBy struct {
	Delta int
}

func (MoveCursor) isCommand()           {}
func (InsertText) isCommand()           {}
func (DeleteBackward) isCommand()       {}
func (SplitLine) isCommand()            {}
func (SetSelectionAnchorAt) isCommand() {}
func (ExtendSelectionTo) isCommand()    {}
func (Copy) isCommand()                 {}
func (Paste) isCommand()                {}
func (ScrollBy) isCommand()             {}

func (c MoveCursor) String() string {
	return "move." + c.Direction.String()
}

func (c InsertText) String() string {
	return fmt.Sprintf("insert.text(%d)", len(c.Text))
}

func (DeleteBackward) String() string {
	return "delete.backward"
}

func (SplitLine) String() string {
	return "insert.newline"
}

func (c SetSelectionAnchorAt) String() string {
	return fmt.Sprintf("selection.anchor(%d,%d)", c.X, c.Y)
}

func (c ExtendSelectionTo) String() string {
	return fmt.Sprintf("selection.extend(%d,%d)", c.X, c.Y)
}

func (Copy) String() string {
	return "clipboard.copy"
}

func (Paste) String() string {
	return "clipboard.paste"
}

func (c ScrollBy) String() string {
	return fmt.Sprintf("scroll(%d)", c.Delta)
}
