// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/shloka-console/internal/platform/request"
	"github.com/taibuivan/shloka-console/internal/platform/respond"
)

// Handler serves the editor dropdowns.
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
	router.Get("/", handler.load)
	return router
}

/*
Load returns books, authors, chapters, and locales.

GET /api/v1/catalog

Response:
  - 200: Catalog (lists are empty when the content API read failed)
*/
func (handler *Handler) load(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.service.Load(request.Context(), current))
}
