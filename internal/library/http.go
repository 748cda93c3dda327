// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	requestutil "github.com/taibuivan/shloka-console/internal/platform/request"
	"github.com/taibuivan/shloka-console/internal/platform/respond"
	"github.com/taibuivan/shloka-console/pkg/convert"
	"github.com/taibuivan/shloka-console/pkg/pagination"
)

// Handler serves the library listing.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the library routes. Requires a bound session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{entryID}/{index}", handler.verse)
	return router
}

/*
List returns flattened rows.

GET /api/v1/library?q=&page=&limit=

Response:
  - 200: []compose.Row with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	rows, total, err := handler.service.List(request.Context(), current, request.URL.Query().Get("q"), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, rows, page.Meta(total))
}

/*
Verse returns one nested verse as stored.

GET /api/v1/library/{entryID}/{index}

Response:
  - 200: Raw nested verse document
  - 404: Verse not found
*/
func (handler *Handler) verse(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	index := convert.ToIntD(requestutil.Param(request, "index"), -1)
	if index < 0 {
		respond.Error(writer, request, apperr.NotFound("Verse"))
		return
	}

	verse, err := handler.service.GetVerse(request.Context(), current, requestutil.Param(request, "entryID"), index)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, verse)
}
