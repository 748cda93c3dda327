// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package editor

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shloka-console/internal/compose"
	requestutil "github.com/taibuivan/shloka-console/internal/platform/request"
	"github.com/taibuivan/shloka-console/internal/platform/respond"
	"github.com/taibuivan/shloka-console/internal/platform/validate"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// # Definitions & Constructors

// Handler exposes the draft editor over HTTP.
//
// Every route requires a bound session; drafts are only visible to the
// session that created them.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// URL parameter names.
const (
	paramDraftID = "draftID"
	paramNodeID  = "nodeID"
)

// Routes returns the draft routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)

	router.Route("/{draftID}", func(r chi.Router) {
		r.Get("/", handler.serve(handler.get))
		r.Delete("/", handler.discard)

		r.Put("/metadata", handler.serve(handler.updateMetadata))
		r.Put("/verse", handler.serve(handler.updateVerse))
		r.Put("/hierarchy", handler.serve(handler.updateHierarchy))
		r.Post("/next", handler.serve(handler.next))
		r.Post("/back", handler.serve(handler.back))

		r.Post("/commentaries", handler.serve(handler.addCommentary))
		r.Put("/commentaries/{nodeID}", handler.serve(handler.updateCommentary))
		r.Delete("/commentaries/{nodeID}", handler.serve(handler.removeCommentary))
		r.Post("/commentaries/{nodeID}/tikas", handler.serve(handler.addTika))

		r.Put("/tikas/{nodeID}", handler.serve(handler.updateTika))
		r.Delete("/tikas/{nodeID}", handler.serve(handler.removeTika))

		r.Post("/translations", handler.serve(handler.addTranslation))
		r.Put("/translations/{nodeID}", handler.serve(handler.updateTranslation))
		r.Delete("/translations/{nodeID}", handler.serve(handler.removeTranslation))

		r.Post("/variables", handler.serve(handler.addVariable))
		r.Put("/variables/{nodeID}", handler.serve(handler.updateVariable))
		r.Delete("/variables/{nodeID}", handler.serve(handler.removeVariable))

		r.Get("/preview", handler.preview)
		r.Post("/submit", handler.submit)
		r.Delete("/banner", handler.serve(handler.dismissBanner))
	})

	return router
}

// # Request Payloads

type metadataRequest struct {
	Locale            string `json:"locale"`
	BookID            int    `json:"book_id"`
	ChapterID         int    `json:"chapter_id"`
	AuthorID          int    `json:"author_id"`
	CommentaryEnabled bool   `json:"commentary_enabled"`
	TikaEnabled       bool   `json:"tika_enabled"`
}

type verseRequest struct {
	Number          string `json:"number"`
	Transliteration string `json:"transliteration"`
	Text            string `json:"text"`
	Translation     string `json:"translation"`
}

type hierarchyRequest struct {
	Depth  int      `json:"depth"`
	Names  []string `json:"names"`
	Values []string `json:"values"`
}

type commentaryRequest struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
	AuthorID    int    `json:"author_id"`
}

type tikaRequest struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
	AuthorID    int    `json:"author_id"`
}

type translationRequest struct {
	Owner    string `json:"owner"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

type variableRequest struct {
	Kind  compose.VariableKind `json:"kind"`
	Label string               `json:"label"`
	Value string               `json:"value"`
}

// # Plumbing

// draftAction performs one operation for the session on the URL's draft.
type draftAction func(request *http.Request, current *session.Session, draftID string) (*Draft, error)

// serve resolves the session and draft ID, runs action, and renders the
// resulting draft view.
func (handler *Handler) serve(action draftAction) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		current, err := requestutil.RequiredSession(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		draft, err := action(request, current, requestutil.Param(request, paramDraftID))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, draft.View())
	}
}

// decode reads the JSON body into target.
func decode[T any](request *http.Request) (T, error) {
	var target T
	err := requestutil.DecodeJSON(request, &target)
	return target, err
}

// # Draft Lifecycle

/*
Create starts a new draft.

POST /api/v1/drafts

Response:
  - 201: View: Blank step-one draft
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.Create(request.Context(), current)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, draft.View())
}

func (handler *Handler) get(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	return handler.service.Get(request.Context(), current, draftID)
}

/*
Discard deletes a draft.

DELETE /api/v1/drafts/{draftID}

Response:
  - 204: No Content
*/
func (handler *Handler) discard(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Discard(request.Context(), current, requestutil.Param(request, paramDraftID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Step Forms

func (handler *Handler) updateMetadata(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	input, err := decode[metadataRequest](request)
	if err != nil {
		return nil, err
	}

	return handler.service.UpdateMetadata(request.Context(), current, draftID, Metadata(input))
}

func (handler *Handler) updateVerse(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	input, err := decode[verseRequest](request)
	if err != nil {
		return nil, err
	}

	return handler.service.UpdateVerse(request.Context(), current, draftID, Verse(input))
}

func (handler *Handler) updateHierarchy(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	input, err := decode[hierarchyRequest](request)
	if err != nil {
		return nil, err
	}

	return handler.service.UpdateHierarchy(request.Context(), current, draftID, input.Depth, input.Names, input.Values)
}

func (handler *Handler) next(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	return handler.service.Next(request.Context(), current, draftID)
}

func (handler *Handler) back(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	return handler.service.Back(request.Context(), current, draftID)
}

// # Nodes

func (handler *Handler) addCommentary(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	return handler.service.AddCommentary(request.Context(), current, draftID)
}

func (handler *Handler) updateCommentary(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	input, err := decode[commentaryRequest](request)
	if err != nil {
		return nil, err
	}

	return handler.service.UpdateCommentary(request.Context(), current, draftID, requestutil.Param(request, paramNodeID), CommentaryFields(input))
}

func (handler *Handler) removeCommentary(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	return handler.service.RemoveCommentary(request.Context(), current, draftID, requestutil.Param(request, paramNodeID))
}

func (handler *Handler) addTika(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	return handler.service.AddTika(request.Context(), current, draftID, requestutil.Param(request, paramNodeID))
}

func (handler *Handler) updateTika(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	input, err := decode[tikaRequest](request)
	if err != nil {
		return nil, err
	}

	return handler.service.UpdateTika(request.Context(), current, draftID, requestutil.Param(request, paramNodeID), TikaFields(input))
}

func (handler *Handler) removeTika(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	return handler.service.RemoveTika(request.Context(), current, draftID, requestutil.Param(request, paramNodeID))
}

func (handler *Handler) addTranslation(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	input, err := decode[translationRequest](request)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required("owner", input.Owner).Required("language", input.Language)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return handler.service.AddTranslation(request.Context(), current, draftID, input.Owner, input.Language)
}

func (handler *Handler) updateTranslation(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	input, err := decode[translationRequest](request)
	if err != nil {
		return nil, err
	}

	return handler.service.UpdateTranslation(request.Context(), current, draftID, requestutil.Param(request, paramNodeID), input.Language, input.Text)
}

func (handler *Handler) removeTranslation(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	return handler.service.RemoveTranslation(request.Context(), current, draftID, requestutil.Param(request, paramNodeID))
}

func (handler *Handler) addVariable(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	input, err := decode[variableRequest](request)
	if err != nil {
		return nil, err
	}

	return handler.service.AddVariable(request.Context(), current, draftID, input.Kind)
}

func (handler *Handler) updateVariable(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	input, err := decode[variableRequest](request)
	if err != nil {
		return nil, err
	}

	return handler.service.UpdateVariable(request.Context(), current, draftID, requestutil.Param(request, paramNodeID), input.Label, input.Value)
}

func (handler *Handler) removeVariable(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	return handler.service.RemoveVariable(request.Context(), current, draftID, requestutil.Param(request, paramNodeID))
}

func (handler *Handler) dismissBanner(request *http.Request, current *session.Session, draftID string) (*Draft, error) {
	return handler.service.DismissBanner(request.Context(), current, draftID)
}

// # Submission

/*
Preview returns the payload the draft would submit.

GET /api/v1/drafts/{draftID}/preview

Response:
  - 200: compose.Submission
*/
func (handler *Handler) preview(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	submission, err := handler.service.Preview(request.Context(), current, requestutil.Param(request, paramDraftID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, submission)
}

/*
Submit sends the verse to the content API.

POST /api/v1/drafts/{draftID}/submit

Response:
  - 201: The reset draft and the created document
  - 400: Validation failure (draft unchanged)
  - 502: Content API rejected the verse (error banner set on the draft)
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Submit(request.Context(), current, requestutil.Param(request, paramDraftID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		"draft":   result.Draft.View(),
		"created": result.Created,
	})
}
