// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package strapi

import (
	"context"
	"net/http"

	"github.com/taibuivan/shloka-console/internal/platform/constants"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// AssistRequest is the body of the content API's Gemini plugin endpoints.
type AssistRequest struct {
	Content        string `json:"content"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	TargetLanguage string `json:"targetLanguage"`
}

// AssistResponse carries the generated text. Plugin versions differ on the
// field name, so both are read.
type AssistResponse struct {
	Result string `json:"result"`
	Text   string `json:"text"`
}

// Output returns whichever field the plugin filled.
func (r AssistResponse) Output() string {
	if r.Result != "" {
		return r.Result
	}
	return r.Text
}

// Transliterate asks the plugin to transliterate content into the target script.
func (client *Client) Transliterate(context context.Context, current *session.Session, request AssistRequest) (string, error) {
	return client.assist(context, current, constants.StrapiTransliteratePath, request)
}

// Translate asks the plugin to translate content into the target language.
func (client *Client) Translate(context context.Context, current *session.Session, request AssistRequest) (string, error) {
	return client.assist(context, current, constants.StrapiTranslatePath, request)
}

func (client *Client) assist(context context.Context, current *session.Session, path string, body AssistRequest) (string, error) {
	request := forSession(current, http.MethodPost, path)
	request.body = body

	var response AssistResponse
	if err := client.do(context, request, &response); err != nil {
		return "", err
	}

	return response.Output(), nil
}
