package http

import (
	"errors"
	"net/http"

	"smart-todo/internal/task"
	pkgErrors "smart-todo/pkg/errors"
)

const (
	codeEmptyInput = 110001 + iota
	codeInvalidMode
	codeInvalidFilter
	codeTaskNotFound
	codeSessionNotFound
)

var (
	errEmptyInput      = pkgErrors.NewHTTPErrorWithCode(http.StatusBadRequest, codeEmptyInput, "input text is empty")
	errInvalidMode     = pkgErrors.NewHTTPErrorWithCode(http.StatusBadRequest, codeInvalidMode, "mode must be model or rules")
	errInvalidFilter   = pkgErrors.NewHTTPErrorWithCode(http.StatusBadRequest, codeInvalidFilter, "invalid list filter")
	errTaskNotFound    = pkgErrors.NewHTTPErrorWithCode(http.StatusNotFound, codeTaskNotFound, "task not found")
	errSessionNotFound = pkgErrors.NewHTTPErrorWithCode(http.StatusNotFound, codeSessionNotFound, "chat session not found")
)

// mapError translates use-case errors into HTTP errors. Unknown errors pass through and
// are answered as internal errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, task.ErrEmptyInput):
		return errEmptyInput
	case errors.Is(err, task.ErrInvalidMode):
		return errInvalidMode
	case errors.Is(err, task.ErrInvalidFilter):
		return errInvalidFilter
	case errors.Is(err, task.ErrTaskNotFound):
		return errTaskNotFound
	case errors.Is(err, task.ErrSessionNotFound):
		return errSessionNotFound
	}
	return err
}
