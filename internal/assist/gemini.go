// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assist

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/users/session"
	"github.com/taibuivan/shloka-console/pkg/pointer"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

const systemInstruction = "You assist editors entering Sanskrit and Hindi scripture. " +
	"Reply with the requested text only, without quotes, notes, or explanations."

// GeminiConfig configures the direct Gemini provider.
type GeminiConfig struct {
	APIKey string
	Model  string

	// BaseURL overrides the API endpoint (proxies, tests).
	BaseURL string
}

// Gemini calls the Gemini API directly.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the genai client.
func NewGemini(context context.Context, config GeminiConfig) (*Gemini, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(context, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini_client_init_failed: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Name implements [Assistant].
func (gemini *Gemini) Name() string { return ProviderGemini }

// Transliterate implements [Assistant]. The session is unused.
func (gemini *Gemini) Transliterate(context context.Context, _ *session.Session, request Request) (string, error) {
	return gemini.generate(context, TransliteratePrompt(request))
}

// Translate implements [Assistant]. The session is unused.
func (gemini *Gemini) Translate(context context.Context, _ *session.Session, request Request) (string, error) {
	return gemini.generate(context, TranslatePrompt(request))
}

func (gemini *Gemini) generate(context context.Context, prompt string) (string, error) {
	response, err := gemini.client.Models.GenerateContent(context, gemini.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       pointer.To[float32](0.2),
	})
	if err != nil {
		return "", apperr.BadGateway("AI assist is unavailable", err)
	}

	output := response.Text()
	if strings.TrimSpace(output) == "" {
		return "", apperr.BadGateway("AI assist returned no text", nil)
	}

	return output, nil
}

// TransliteratePrompt renders the transliteration instruction.
func TransliteratePrompt(request Request) string {
	return fmt.Sprintf("Transliterate the following text %sinto %s script.\n\n%s",
		fromClause(request.SourceLanguage), request.TargetLanguage, request.Content)
}

// TranslatePrompt renders the translation instruction.
func TranslatePrompt(request Request) string {
	return fmt.Sprintf("Translate the following text %sinto %s.\n\n%s",
		fromClause(request.SourceLanguage), request.TargetLanguage, request.Content)
}

func fromClause(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	return "from " + source + " "
}
