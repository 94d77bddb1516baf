/*
Package errs defines the application error type and the catalogue of business
error codes used by the REST surface.

Every error carries a stable integer code, a client-safe message and the HTTP
status it maps to, so handlers report failures in one uniform shape.
*/
package errs

import (
	"fmt"
	"net/http"
	"strings"

	"quizduel/internal/pkg/logx"
)

// CustomError is the error type used throughout the service. It implements the
// standard error interface and adds a business code plus an HTTP status.
type CustomError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the client-safe error description.
	Message string

	// Status is the HTTP status code this error maps to.
	Status int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError from a predefined code. Optional details are
// applied printf-style when the message template has placeholders. Unknown
// codes fall back to ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("error code %d is not registered in errorMap", code),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &CustomError{
			Code:    unknownErr.Code,
			Message: unknownErr.Message,
			Status:  unknownErr.Status,
		}
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	if code == ErrUnknown && len(details) > 0 {
		if originalErr, ok := details[0].(error); ok {
			logx.Error(originalErr, "Handling ErrUnknown with underlying error")
		}
	} else if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn("Details provided for error, but message template has no placeholders. Details ignored.")
		}
	}

	return &customErr
}
