// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package strapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shloka-console/internal/compose"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

func newSession(baseURL string) *session.Session {
	return &session.Session{ID: "s1", Email: "editor@example.org", UpstreamToken: "upstream-jwt", BaseURL: baseURL}
}

/*
TestClient_Login posts credentials and decodes the identity.
*/
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/local", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body strapi.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "editor", body.Identifier)
		assert.Equal(t, "secret", body.Password)

		_, _ = io.WriteString(w, `{"jwt":"upstream-jwt","user":{"id":3,"email":"editor@example.org"}}`)
	}))
	defer server.Close()

	client := strapi.New(5 * time.Second)
	identity, err := client.Login(context.Background(), server.URL+"/", strapi.Credentials{Identifier: "editor", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "upstream-jwt", identity.JWT)
	assert.Equal(t, "editor@example.org", identity.User.Email)
}

/*
TestClient_Login_Rejected surfaces the upstream error message.
*/
func TestClient_Login_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"data":null,"error":{"status":400,"name":"ValidationError","message":"Invalid identifier or password"}}`)
	}))
	defer server.Close()

	_, err := strapi.New(time.Second).Login(context.Background(), server.URL, strapi.Credentials{Identifier: "x", Password: "y"})

	require.Error(t, err)
	assert.Equal(t, "Invalid identifier or password", strapi.Message(err))
	assert.Equal(t, http.StatusBadRequest, strapi.StatusCode(err))
}

/*
TestClient_MissingBaseURL fails before any request is made.
*/
func TestClient_MissingBaseURL(t *testing.T) {
	_, err := strapi.New(time.Second).Login(context.Background(), "  ", strapi.Credentials{})
	assert.ErrorIs(t, err, strapi.ErrMissingBaseURL)
}

/*
TestClient_ListCollections decodes v4 and v5 documents with the session bearer.
*/
func TestClient_ListCollections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer upstream-jwt", r.Header.Get("Authorization"))
		assert.Equal(t, "100", r.URL.Query().Get("pagination[limit]"))

		switch r.URL.Path {
		case "/api/books":
			_, _ = io.WriteString(w, `{"data":[{"id":1,"attributes":{"Title":"Bhagavad Gita"}},{"id":2,"documentId":"b2","title":"Isha"}]}`)
		case "/api/authors":
			_, _ = io.WriteString(w, `{"data":[{"id":5,"Name":"Shankara"}]}`)
		case "/api/chapters":
			_, _ = io.WriteString(w, `{"data":[{"id":9,"number":2},{"id":10,"title":"Sankhya Yoga"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := strapi.New(time.Second)
	current := newSession(server.URL)
	ctx := context.Background()

	books, err := client.ListBooks(ctx, current)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Bhagavad Gita", books[0].Label())
	assert.Equal(t, "b2", books[1].DocumentID)

	authors, err := client.ListAuthors(ctx, current)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Shankara", authors[0].Label())

	chapters, err := client.ListChapters(ctx, current)
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "Chapter 2", chapters[0].Label())
	assert.Equal(t, "Sankhya Yoga", chapters[1].Label())
}

/*
TestClient_CreateShloka posts the composed document.
*/
func TestClient_CreateShloka(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shlokas", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(47), body["data"]["Verse_Number"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":{"id":88,"documentId":"doc88"}}`)
	}))
	defer server.Close()

	submission := compose.ComposeVerseSubmission(compose.VerseFields{Locale: "sa", Chapter: 1, Number: 47, Text: "श्लोक"}, nil, nil, compose.Options{})

	created, err := strapi.New(time.Second).CreateShloka(context.Background(), newSession(server.URL), submission)

	require.NoError(t, err)
	assert.Equal(t, 88, created.ID)
	assert.Equal(t, "doc88", created.DocumentID)
}

/*
TestClient_CreateShloka_Failure keeps the status when no message is present.
*/
func TestClient_CreateShloka_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `<html>boom</html>`)
	}))
	defer server.Close()

	_, err := strapi.New(time.Second).CreateShloka(context.Background(), newSession(server.URL), compose.Submission{})

	require.Error(t, err)
	assert.Empty(t, strapi.Message(err))
	assert.Equal(t, http.StatusInternalServerError, strapi.StatusCode(err))
}

/*
TestClient_Entries decodes nested entries in both response shapes.
*/
func TestClient_Entries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "book", r.URL.Query().Get("populate"))

		switch r.URL.Path {
		case "/api/entries":
			_, _ = io.WriteString(w, `{"data":[
				{"id":1,"attributes":{"teekas":[{"sourceText":"a","hierarchyValues":["1","1"]}],"book":{"data":{"id":4,"attributes":{"title":"Gita"}}}}},
				{"id":2,"documentId":"e2","teekas":[],"book":{"id":4,"title":"Isha"}},
				{"id":3,"teekas":[{"sourceText":"b"}],"book":null}
			]}`)
		case "/api/entries/e2":
			_, _ = io.WriteString(w, `{"data":{"id":2,"documentId":"e2","teekas":[{"sourceText":"x"},{"sourceText":"y"}],"book":{"title":"Isha"}}}`)
		case "/api/entries/missing":
			_, _ = io.WriteString(w, `{"data":null}`)
		}
	}))
	defer server.Close()

	client := strapi.New(time.Second)
	current := newSession(server.URL)

	entries, err := client.ListEntries(context.Background(), current)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Gita", entries[0].BookTitle)
	assert.Equal(t, "a", entries[0].Verses[0].SourceText)
	assert.Equal(t, "Isha", entries[1].BookTitle)
	assert.Equal(t, "", entries[2].BookTitle)

	entry, err := client.GetEntry(context.Background(), current, "e2")
	require.NoError(t, err)
	require.Len(t, entry.Verses, 2)
	assert.Equal(t, "y", entry.Verses[1].SourceText)

	_, err = client.GetEntry(context.Background(), current, "missing")
	assert.Equal(t, http.StatusNotFound, strapi.StatusCode(err))
}

/*
TestClient_Assist reads either plugin response field.
*/
func TestClient_Assist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body strapi.AssistRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch r.URL.Path {
		case "/api/gemini/transliterate-text":
			assert.Equal(t, "iast", body.TargetLanguage)
			_, _ = io.WriteString(w, `{"result":"dharma"}`)
		case "/api/gemini/translate-text":
			_, _ = io.WriteString(w, `{"text":"righteousness"}`)
		}
	}))
	defer server.Close()

	client := strapi.New(time.Second)
	current := newSession(server.URL)

	out, err := client.Transliterate(context.Background(), current, strapi.AssistRequest{Content: "धर्म", TargetLanguage: "iast"})
	require.NoError(t, err)
	assert.Equal(t, "dharma", out)

	out, err = client.Translate(context.Background(), current, strapi.AssistRequest{Content: "धर्म", TargetLanguage: "en"})
	require.NoError(t, err)
	assert.Equal(t, "righteousness", out)
}
