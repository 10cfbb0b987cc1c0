package core

import "github.com/ionut-t/lineedit/internal/log"

type Signal any

// CopySignal is sent after the selection text was written to the clipboard.
type CopySignal struct {
	content string
}

func (c CopySignal) Value() string {
	return c.content
}

// PasteSignal is sent after clipboard text was inserted into the buffer.
type PasteSignal struct {
	content string
}

func (p PasteSignal) Value() string {
	return p.content
}

// BoundarySignal reports an edit that had nothing to act on, such as
// backspace at the very start of the document. The buffer is left unchanged.
type BoundarySignal struct {
	err error
}

func (b BoundarySignal) Value() error {
	return b.err
}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

const signalBufferSize = 100

// dispatchSignal never blocks: signals are dropped when nobody drains the channel.
func (s *Session) dispatchSignal(signal Signal) {
	select {
	case s.signals <- signal:
		log.Debug(log.CatSignal, "signal sent", "type", signalName(signal))
	default:
		log.Debug(log.CatSignal, "signal channel full, dropping signal", "type", signalName(signal))
	}
}

func (s *Session) dispatchError(id ErrorId, err error) {
	s.dispatchSignal(ErrorSignal{id: id, err: err})
}

func signalName(signal Signal) string {
	switch signal.(type) {
	case CopySignal:
		return "copy"
	case PasteSignal:
		return "paste"
	case BoundarySignal:
		return "boundary"
	case ErrorSignal:
		return "error"
	default:
		return "unknown"
	}
}
