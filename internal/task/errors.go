package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyInput      = errors.New("input text is empty")
	ErrInvalidMode     = errors.New("unknown parse mode")
	ErrInvalidFilter   = errors.New("invalid list filter")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSessionNotFound = errors.New("chat session not found")
)
