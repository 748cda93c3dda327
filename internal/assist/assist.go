// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package assist offers optional AI transliteration and translation for editors.

Two providers exist: [Upstream] proxies to the content API's Gemini plugin
using the editor's session, and [Gemini] calls the Gemini API directly with a
server-side key. Results are suggestions only; nothing here touches a draft.
*/
package assist

import (
	"context"
	"strings"

	"github.com/taibuivan/shloka-console/internal/platform/ctxutil"
	"github.com/taibuivan/shloka-console/internal/platform/validate"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// Provider names accepted by ASSIST_PROVIDER.
const (
	ProviderUpstream = "upstream"
	ProviderGemini   = "gemini"
)

// maxContentLength bounds a single assist request.
const maxContentLength = 10000

// Request is one transliteration or translation job.
type Request struct {
	Content        string `json:"content"`
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language"`
}

// Result is the generated suggestion.
type Result struct {
	Output   string `json:"output"`
	Provider string `json:"provider"`
}

// Assistant generates transliterations and translations.
type Assistant interface {
	Name() string
	Transliterate(context context.Context, current *session.Session, request Request) (string, error)
	Translate(context context.Context, current *session.Session, request Request) (string, error)
}

// Service validates requests and dispatches them to the configured [Assistant].
type Service struct {
	assistant Assistant
}

// NewService constructs a new [Service].
func NewService(assistant Assistant) *Service {
	return &Service{assistant: assistant}
}

// Transliterate converts content into the target script.
func (service *Service) Transliterate(context context.Context, current *session.Session, request Request) (*Result, error) {
	return service.run(context, "transliterate", request, func(request Request) (string, error) {
		return service.assistant.Transliterate(context, current, request)
	})
}

// Translate converts content into the target language.
func (service *Service) Translate(context context.Context, current *session.Session, request Request) (*Result, error) {
	return service.run(context, "translate", request, func(request Request) (string, error) {
		return service.assistant.Translate(context, current, request)
	})
}

func (service *Service) run(context context.Context, task string, request Request, call func(Request) (string, error)) (*Result, error) {
	request.Content = strings.TrimSpace(request.Content)
	request.TargetLanguage = strings.TrimSpace(request.TargetLanguage)

	validator := &validate.Validator{}
	validator.Required("content", request.Content).
		MaxLen("content", request.Content, maxContentLength).
		Required("target_language", request.TargetLanguage)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	output, err := call(request)
	if err != nil {
		ctxutil.GetLogger(context).Warn("assist_failed",
			"task", task,
			"provider", service.assistant.Name(),
			"error", err.Error(),
		)
		return nil, err
	}

	ctxutil.GetLogger(context).Debug("assist_completed", "task", task, "provider", service.assistant.Name())

	return &Result{Output: strings.TrimSpace(output), Provider: service.assistant.Name()}, nil
}
