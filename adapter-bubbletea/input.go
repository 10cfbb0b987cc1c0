package adapter_bubbletea

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rivo/uniseg"

	editor "github.com/ionut-t/lineedit/core"
)

// geometry converts terminal cells to engine pixels.
type geometry struct {
	charWidth   int
	lineHeight  int
	rows        int // Viewport rows, status line excluded
	scrollLines int // Lines per wheel notch
	splitPaste  bool
}

// Convert Bubbletea key to editor commands. quit is true for the exit keys.
func convertBubbleKey(msg tea.KeyMsg, g geometry) (commands []editor.Command, quit bool) {
	switch msg.Type {
	case tea.KeyCtrlQ, tea.KeyEsc:
		return nil, true

	case tea.KeyRunes:
		if msg.Paste {
			return pastedText(string(msg.Runes), g.splitPaste), false
		}
		if text := typedText(string(msg.Runes), false); text != "" {
			return []editor.Command{editor.InsertText{Text: text}}, false
		}
		return nil, false

	case tea.KeySpace:
		return []editor.Command{editor.InsertText{Text: " "}}, false
	case tea.KeyTab:
		return []editor.Command{editor.InsertText{Text: "\t"}}, false
	case tea.KeyEnter:
		return []editor.Command{editor.SplitLine{}}, false
	case tea.KeyBackspace:
		return []editor.Command{editor.DeleteBackward{}}, false

	case tea.KeyLeft:
		return move(editor.DirLeft), false
	case tea.KeyRight:
		return move(editor.DirRight), false
	case tea.KeyUp:
		return move(editor.DirUp), false
	case tea.KeyDown:
		return move(editor.DirDown), false
	case tea.KeyHome, tea.KeyCtrlA:
		return move(editor.DirLineStart), false
	case tea.KeyEnd, tea.KeyCtrlE:
		return move(editor.DirLineEnd), false

	case tea.KeyPgUp:
		return []editor.Command{editor.ScrollBy{Delta: -g.rows * g.lineHeight}}, false
	case tea.KeyPgDown:
		return []editor.Command{editor.ScrollBy{Delta: g.rows * g.lineHeight}}, false

	case tea.KeyCtrlC:
		return []editor.Command{editor.Copy{}}, false
	case tea.KeyCtrlV:
		return []editor.Command{editor.Paste{}}, false
	}

	return nil, false
}

func move(dir editor.Direction) []editor.Command {
	return []editor.Command{editor.MoveCursor{Direction: dir}}
}

// convertBubbleMouse maps a mouse event to a command, or nil when the event is ignored.
// Releases are ignored so the selection survives for a later copy.
func convertBubbleMouse(msg tea.MouseMsg, g geometry) editor.Command {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return editor.ScrollBy{Delta: -g.scrollLines * g.lineHeight}
	case tea.MouseButtonWheelDown:
		return editor.ScrollBy{Delta: g.scrollLines * g.lineHeight}
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	x, y := msg.X*g.charWidth, msg.Y*g.lineHeight

	switch msg.Action {
	case tea.MouseActionPress:
		// The status line sits below the viewport
		if msg.Y >= g.rows {
			return nil
		}
		return editor.SetSelectionAnchorAt{X: x, Y: y}
	case tea.MouseActionMotion:
		return editor.ExtendSelectionTo{X: x, Y: y}
	}

	return nil
}

// typedText keeps printable grapheme clusters. Terminals can deliver control
// characters inside a rune batch; only tabs, and line breaks when asked, survive.
func typedText(s string, keepNewlines bool) string {
	var sb strings.Builder
	state := -1

	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)

		r, _ := utf8.DecodeRuneInString(cluster)
		switch {
		case r == '\t':
		case r == '\n' && keepNewlines:
		case unicode.IsControl(r):
			continue
		}
		sb.WriteString(cluster)
	}

	return sb.String()
}

// pastedText turns a bracketed paste into commands. By default the text is
// inserted as one literal run; with splitting on, line breaks become SplitLine.
func pastedText(s string, split bool) []editor.Command {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	if !split {
		if text := typedText(s, true); text != "" {
			return []editor.Command{editor.InsertText{Text: text}}
		}
		return nil
	}

	var commands []editor.Command
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			commands = append(commands, editor.SplitLine{})
		}
		if text := typedText(part, false); text != "" {
			commands = append(commands, editor.InsertText{Text: text})
		}
	}
	return commands
}
