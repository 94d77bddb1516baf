/*
Package req provides helpers for parsing HTTP request bodies.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"quizduel/internal/pkg/errs"
)

// BindJSON decodes the JSON request body into dst. Unknown fields and trailing
// content are rejected.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
