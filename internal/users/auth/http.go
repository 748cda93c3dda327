// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shloka-console/internal/platform/middleware"
	requestutil "github.com/taibuivan/shloka-console/internal/platform/request"
	"github.com/taibuivan/shloka-console/internal/platform/respond"
	"github.com/taibuivan/shloka-console/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the session HTTP endpoints.
type Handler struct {
	authService *Service
	resolver    middleware.SessionResolver
	loginGuards []func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler]. loginGuards wrap only the login
// route (e.g. a strict rate limiter).
func NewHandler(service *Service, resolver middleware.SessionResolver, loginGuards ...func(http.Handler) http.Handler) *Handler {
	return &Handler{authService: service, resolver: resolver, loginGuards: loginGuards}
}

// Routes returns a [chi.Router] configured with session routes.
//
// # Endpoints
//   - POST /login   : Authenticates and returns a console token.
//   - POST /logout  : Destroys the session.
//   - GET  /session : Current session summary.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.With(handler.loginGuards...).Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(handler.resolver))
		r.Post("/logout", handler.logout)
		r.Get("/session", handler.current)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

/*
Login authenticates an editor and establishes a session.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Identifier, Password)

Response:
  - 200: Console token and session summary
  - 400: Missing fields or no content API configured
  - 401: Rejected by the identity service
  - 502: Identity service unreachable
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldIdentifier, input.Identifier).
		MaxLen(FieldIdentifier, input.Identifier, 255).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Identifier: input.Identifier,
		Password:   input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: result.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresAt:   result.ExpiresAt,
		FieldSession:     result.Session.Summary(),
	})
}

/*
Logout terminates the current session.

POST /api/v1/auth/logout

Response:
  - 204: No Content: Session destroyed
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), current); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Current returns the session bound to the request.

GET /api/v1/auth/session

Response:
  - 200: session.Summary
  - 401: No live session
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, current.Summary())
}
