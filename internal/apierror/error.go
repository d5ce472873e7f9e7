// Package apierror gives every error response the service's JSON shape:
// {"message": ..., "success": false, "error": ...}.
package apierror

import (
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
)

// MessageInternal is the message used for every 500 response.
const MessageInternal = "Internal server error"

// Error is the body written for any non-2xx response.
type Error struct {
	Status  int    `json:"-"`
	Message string `doc:"Human readable summary"                    json:"message"`
	Success bool   `doc:"Always false for errors"                   json:"success"`
	Detail  string `doc:"Underlying error text, when one is known" json:"error,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}

	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *Error) GetStatus() int {
	return e.Status
}

// New builds an Error. The messages of errs are joined into Detail.
func New(status int, msg string, errs ...error) *Error {
	details := make([]string, 0, len(errs))

	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}

	return &Error{
		Status:  status,
		Message: msg,
		Success: false,
		Detail:  strings.Join(details, "; "),
	}
}

var installOnce sync.Once

// Install replaces huma's RFC 7807 error model with Error. Safe to call more than once.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return New(status, msg, errs...)
		}
	})
}
