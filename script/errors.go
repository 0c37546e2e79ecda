package script

import "errors"

var (
	// ErrDetached is returned by operations that need a window when the
	// document has none.
	ErrDetached = errors.New("document is not attached to a window")

	// ErrWindowClosed is returned when a window is used after Close.
	ErrWindowClosed = errors.New("window is closed")

	// ErrAlreadyPublished is returned by a second PublishDocument call.
	ErrAlreadyPublished = errors.New("window already has a document")
)
