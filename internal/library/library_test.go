// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shloka-console/internal/compose"
	"github.com/taibuivan/shloka-console/internal/library"
	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/platform/ctxutil"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
	"github.com/taibuivan/shloka-console/pkg/pagination"
)

// fakeSource serves fixed entries.
type fakeSource struct {
	entries []compose.Entry
	err     error
}

func (f *fakeSource) ListEntries(_ context.Context, _ *session.Session) ([]compose.Entry, error) {
	return f.entries, f.err
}

func (f *fakeSource) GetEntry(_ context.Context, _ *session.Session, entryID string) (*compose.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, entry := range f.entries {
		if entry.Identifier() == entryID {
			return &entry, nil
		}
	}
	return nil, &strapi.Error{Status: http.StatusNotFound, Message: "Not Found"}
}

func nestedVerse(t *testing.T, raw string) compose.NestedVerse {
	t.Helper()
	var verse compose.NestedVerse
	require.NoError(t, json.Unmarshal([]byte(raw), &verse))
	return verse
}

func newSource(t *testing.T) *fakeSource {
	return &fakeSource{entries: []compose.Entry{
		{
			DocumentID: "gita-1",
			BookTitle:  "Bhagavad Gita",
			Verses: []compose.NestedVerse{
				nestedVerse(t, `{"sourceText":"धर्मक्षेत्रे","hierarchyValues":["1","1"],"meter":"anushtubh"}`),
				nestedVerse(t, `{"sourceText":"सञ्जय उवाच","hierarchyValues":["1","2"]}`),
			},
		},
		{
			ID: 9,
			Verses: []compose.NestedVerse{
				nestedVerse(t, `{"sourceText":"ईशावास्यम्","hierarchyValues":["1"]}`),
			},
		},
	}}
}

var current = &session.Session{ID: "s1"}

/*
TestService_List flattens, filters, and pages rows.
*/
func TestService_List(t *testing.T) {
	tests := []struct {
		name      string
		term      string
		page      pagination.Params
		wantTotal int
		wantIDs   []string
	}{
		{"everything", "", pagination.Params{Page: 1, Limit: 10}, 3, []string{"gita-1", "gita-1", "9"}},
		{"second page", "", pagination.Params{Page: 2, Limit: 2}, 3, []string{"9"}},
		{"past the end", "", pagination.Params{Page: 5, Limit: 2}, 3, []string{}},
		{"overflowing page", "", pagination.Params{Page: math.MaxInt, Limit: 100}, 3, []string{}},
		{"by book title", "gita", pagination.Params{Page: 1, Limit: 10}, 2, []string{"gita-1", "gita-1"}},
		{"untitled book", "untitled", pagination.Params{Page: 1, Limit: 10}, 1, []string{"9"}},
		{"by hierarchy", "1.2", pagination.Params{Page: 1, Limit: 10}, 1, []string{"gita-1"}},
		{"no match", "upanishad", pagination.Params{Page: 1, Limit: 10}, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := library.NewService(newSource(t))

			rows, total, err := service.List(context.Background(), current, tt.term, tt.page)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTotal, total)
			ids := make([]string, 0, len(rows))
			for _, row := range rows {
				ids = append(ids, row.EntryID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

/*
TestService_List_UpstreamFailure surfaces a 502.
*/
func TestService_List_UpstreamFailure(t *testing.T) {
	service := library.NewService(&fakeSource{err: errors.New("connection refused")})

	_, _, err := service.List(context.Background(), current, "", pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
}

/*
TestService_GetVerse returns the stored document or "Verse not found".
*/
func TestService_GetVerse(t *testing.T) {
	tests := []struct {
		name     string
		entryID  string
		index    int
		wantBody string
	}{
		{"first verse keeps unmodelled fields", "gita-1", 0, `"meter":"anushtubh"`},
		{"numeric identifier", "9", 0, `ईशावास्यम्`},
		{"index out of range", "gita-1", 2, ""},
		{"negative index", "gita-1", -1, ""},
		{"missing entry", "nope", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := library.NewService(newSource(t))

			verse, err := service.GetVerse(context.Background(), current, tt.entryID, tt.index)

			if tt.wantBody == "" {
				require.Error(t, err)
				appErr := apperr.As(err)
				require.NotNil(t, appErr)
				assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
				assert.Equal(t, "Verse not found", appErr.Message)
				return
			}

			require.NoError(t, err)
			assert.Contains(t, string(verse), tt.wantBody)
		})
	}
}

/*
TestHandler_Routes serves rows with pagination meta and raw verses.
*/
func TestHandler_Routes(t *testing.T) {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithSession(request.Context(), current)))
		})
	})
	router.Mount("/library", library.NewHandler(library.NewService(newSource(t))).Routes())

	t.Run("list", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/library?q=gita&limit=1", nil))
		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data []compose.Row   `json:"data"`
			Meta pagination.Meta `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Len(t, body.Data, 1)
		assert.Equal(t, 2, body.Meta.Total)
		assert.Equal(t, "Bhagavad Gita", body.Data[0].BookTitle)
	})

	t.Run("verse", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/library/gita-1/1", nil))
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "सञ्जय उवाच")
	})

	t.Run("bad index", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/library/gita-1/abc", nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Verse not found")
	})
}
