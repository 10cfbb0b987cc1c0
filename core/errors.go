package core

import (
	"errors"
)

var (
	ErrStartOfBuffer        = errors.New("start of buffer")
	ErrInvalidCommand       = errors.New("invalid command")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

type ErrorId int

const (
	ErrStartOfBufferId ErrorId = iota
	ErrInvalidCommandId
	ErrCopyFailedId
	ErrPasteFailedId
)

func (id ErrorId) String() string {
	switch id {
	case ErrStartOfBufferId:
		return "start-of-buffer"
	case ErrInvalidCommandId:
		return "invalid-command"
	case ErrCopyFailedId:
		return "copy-failed"
	case ErrPasteFailedId:
		return "paste-failed"
	default:
		return "unknown"
	}
}

type Error struct {
	id  ErrorId
	err error
}

func (e *Error) ID() ErrorId { return e.id }

func (e *Error) Error() string { return e.err.Error() }

func (e *Error) Unwrap() error { return e.err }
