package core

// Position represents a specific location in the text buffer
type Position struct {
	Row int // Zero-indexed row (line number)
	Col int // Zero-indexed column (rune offset in the line)
}

// Renderer draws a frame from a read-only snapshot of the session.
// The dispatcher is its only caller and invokes it exactly once per input event.
type Renderer interface {
	Render(snapshot Snapshot)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(snapshot Snapshot)

func (f RendererFunc) Render(snapshot Snapshot) { f(snapshot) }

// Clipboard is the external clipboard service.
// A Read error means no value is available; callers treat it as an absent paste.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}
