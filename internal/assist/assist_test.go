// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assist_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shloka-console/internal/assist"
	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/platform/ctxutil"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// fakePlugin answers like the content API plugin.
type fakePlugin struct {
	output  string
	err     error
	request strapi.AssistRequest
	task    string
}

func (f *fakePlugin) Transliterate(_ context.Context, _ *session.Session, request strapi.AssistRequest) (string, error) {
	f.task, f.request = "transliterate", request
	return f.output, f.err
}

func (f *fakePlugin) Translate(_ context.Context, _ *session.Session, request strapi.AssistRequest) (string, error) {
	f.task, f.request = "translate", request
	return f.output, f.err
}

var current = &session.Session{ID: "s1", UpstreamToken: "jwt"}

/*
TestService_Upstream validates input and forwards to the plugin.
*/
func TestService_Upstream(t *testing.T) {
	tests := []struct {
		name       string
		request    assist.Request
		pluginErr  error
		wantStatus int
		wantOutput string
	}{
		{
			name:       "success",
			request:    assist.Request{Content: " धर्म ", TargetLanguage: "IAST"},
			wantOutput: "dharma",
		},
		{
			name:       "missing content",
			request:    assist.Request{TargetLanguage: "IAST"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing target",
			request:    assist.Request{Content: "धर्म"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "plugin failure",
			request:    assist.Request{Content: "धर्म", TargetLanguage: "IAST"},
			pluginErr:  &strapi.Error{Status: http.StatusInternalServerError, Message: "quota exceeded"},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plugin := &fakePlugin{output: "dharma\n", err: tt.pluginErr}
			service := assist.NewService(assist.NewUpstream(plugin))

			result, err := service.Transliterate(context.Background(), current, tt.request)

			if tt.wantStatus != 0 {
				require.Error(t, err)
				appErr := apperr.As(err)
				require.NotNil(t, appErr)
				assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutput, result.Output)
			assert.Equal(t, assist.ProviderUpstream, result.Provider)
			assert.Equal(t, "धर्म", plugin.request.Content)
			assert.Equal(t, "IAST", plugin.request.TargetLanguage)
		})
	}
}

/*
TestPrompts include the optional source language.
*/
func TestPrompts(t *testing.T) {
	request := assist.Request{Content: "धर्म", TargetLanguage: "English"}
	assert.Equal(t, "Translate the following text into English.\n\nधर्म", assist.TranslatePrompt(request))

	request.SourceLanguage = "Sanskrit"
	assert.Equal(t, "Translate the following text from Sanskrit into English.\n\nधर्म", assist.TranslatePrompt(request))
	assert.Contains(t, assist.TransliteratePrompt(request), "into English script")
}

/*
TestGemini calls the generateContent endpoint and returns the candidate text.
*/
func TestGemini(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.True(t, strings.HasSuffix(request.URL.Path, ":generateContent"), request.URL.Path)

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(request.Body).Decode(&body)
		if len(body.Contents) > 0 && len(body.Contents[0].Parts) > 0 {
			prompt = body.Contents[0].Parts[0].Text
		}

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"dharmakṣetre"}]}}]}`))
	}))
	defer server.Close()

	gemini, err := assist.NewGemini(context.Background(), assist.GeminiConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	result, err := assist.NewService(gemini).Transliterate(context.Background(), current, assist.Request{
		Content:        "धर्मक्षेत्रे",
		TargetLanguage: "IAST",
	})
	require.NoError(t, err)

	assert.Equal(t, "dharmakṣetre", result.Output)
	assert.Equal(t, assist.ProviderGemini, result.Provider)
	assert.Contains(t, prompt, "धर्मक्षेत्रे")
}

/*
TestNewGemini_RequiresKey fails fast without credentials.
*/
func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := assist.NewGemini(context.Background(), assist.GeminiConfig{})
	assert.Error(t, err)
}

/*
TestHandler_Routes serves both tasks.
*/
func TestHandler_Routes(t *testing.T) {
	plugin := &fakePlugin{output: "On the field of dharma"}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithSession(request.Context(), current)))
		})
	})
	router.Mount("/assist", assist.NewHandler(assist.NewService(assist.NewUpstream(plugin))).Routes())

	body := bytes.NewBufferString(`{"content":"धर्मक्षेत्रे","source_language":"sa","target_language":"en"}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/assist/translate", body))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "translate", plugin.task)
	assert.Equal(t, "sa", plugin.request.SourceLanguage)
	assert.Contains(t, recorder.Body.String(), "On the field of dharma")
}
