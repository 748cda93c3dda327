// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assist

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/shloka-console/internal/platform/request"
	"github.com/taibuivan/shloka-console/internal/platform/respond"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// Handler serves the assist endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the assist routes. Requires a bound session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/transliterate", handler.handle(handler.service.Transliterate))
	router.Post("/translate", handler.handle(handler.service.Translate))
	return router
}

type task func(context context.Context, current *session.Session, request Request) (*Result, error)

/*
Handle runs one assist task.

POST /api/v1/assist/transliterate
POST /api/v1/assist/translate

Request Body:
  - content: string (required)
  - source_language: string
  - target_language: string (required)

Response:
  - 200: Result
  - 502: Provider failure
*/
func (handler *Handler) handle(run task) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		current, err := requestutil.RequiredSession(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input Request
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		result, err := run(request.Context(), current, input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, result)
	}
}
