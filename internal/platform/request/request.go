// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads path parameters, JSON bodies and the bound editor
session from incoming requests, mapping every failure to an [apperr.AppError].
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/platform/ctxutil"
	"github.com/taibuivan/shloka-console/internal/platform/validate"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

/*
DecodeJSON reads the request body into target.

Returns:
  - error: VALIDATION_ERROR when the body exceeds the [middleware.BodyLimit]
    cap or is not valid JSON
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.ValidationError("Request body is too large")
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param returns a named path parameter with surrounding whitespace removed.
func Param(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

/*
RequiredSession returns the editor session bound to the request.

Description: The session is resolved by [middleware.RequireSession]; handlers
pass it explicitly into every service call that reaches the content API.

Returns:
  - *session.Session: The active session
  - error: apperr.Unauthorized if no session is bound
*/
func RequiredSession(request *http.Request) (*session.Session, error) {
	current := ctxutil.GetSession(request.Context())
	if current == nil {
		return nil, apperr.Unauthorized("Session expired. Please log in again")
	}
	return current, nil
}
