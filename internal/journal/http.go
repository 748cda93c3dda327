// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package journal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/shloka-console/internal/platform/request"
	"github.com/taibuivan/shloka-console/internal/platform/respond"
	"github.com/taibuivan/shloka-console/pkg/pagination"
)

// Handler serves submission history.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts GET / under the caller's prefix. Requires a bound session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	return router
}

/*
List returns the editor's submissions, newest first.

GET /api/v1/history?page=1&limit=20

Response:
  - 200: []Record with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	records, total, err := handler.service.List(request.Context(), current, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, page.Meta(total))
}
