// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package editor_test

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shloka-console/internal/compose"
	"github.com/taibuivan/shloka-console/internal/editor"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// gatedSubmitter holds every create until release is closed.
type gatedSubmitter struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	calls   atomic.Int32
}

func newGatedSubmitter() *gatedSubmitter {
	return &gatedSubmitter{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedSubmitter) CreateShloka(_ context.Context, _ *session.Session, _ compose.Submission) (*strapi.Created, error) {
	g.calls.Add(1)
	g.once.Do(func() { close(g.started) })
	<-g.release
	return &strapi.Created{ID: 41, DocumentID: "doc-41"}, nil
}

// racingDrafts runs race once, between the first read and the first write.
type racingDrafts struct {
	editor.DraftRepository
	once sync.Once
	race func()
}

func (r *racingDrafts) Replace(ctx context.Context, draft editor.Draft, read int64, ttl time.Duration) error {
	r.once.Do(r.race)
	return r.DraftRepository.Replace(ctx, draft, read, ttl)
}

/*
TestService_Submit_Overlapping lets one submit through and rejects a second
one for the same draft while the first is still waiting on the content API.
*/
func TestService_Submit_Overlapping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.readyDraft(t)

	gate := newGatedSubmitter()
	service := editor.NewService(f.drafts, gate, nil, time.Hour)

	first := make(chan error, 1)
	go func() {
		_, err := service.Submit(ctx, f.current, draft.ID)
		first <- err
	}()
	<-gate.started

	_, err := service.Submit(ctx, f.current, draft.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
	assert.Equal(t, editor.MessageSubmitInProgress, err.Error())

	close(gate.release)
	require.NoError(t, <-first)
	assert.Equal(t, int32(1), gate.calls.Load())

	stored, err := service.Get(ctx, f.current, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "13", stored.Verse.Number)

	// The claim is released: a repeat submit now fails on the cleared form
	// instead of creating verse 12 again.
	_, err = service.Submit(ctx, f.current, draft.ID)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Equal(t, int32(1), gate.calls.Load())
}

/*
TestService_Mutate_LostRaceIsReplayed keeps an edit that landed between
another edit's read and write.
*/
func TestService_Mutate_LostRaceIsReplayed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.readyDraft(t)

	racing := &racingDrafts{DraftRepository: f.drafts}
	racing.race = func() {
		_, err := f.service.AddVariable(ctx, f.current, draft.ID, compose.NumericVariable)
		require.NoError(t, err)
	}
	service := editor.NewService(racing, f.submitter, f.recorder, time.Hour)

	updated, err := service.UpdateVerse(ctx, f.current, draft.ID, editor.Verse{
		Number: "14",
		Text:   "धर्मक्षेत्रे कुरुक्षेत्रे",
	})
	require.NoError(t, err)

	stored, err := f.service.Get(ctx, f.current, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "14", stored.Verse.Number)
	assert.Len(t, stored.VariableOrder, 1)
	assert.Equal(t, updated.Version, stored.Version)
}

/*
TestService_Mutate_Concurrent keeps every edit made by parallel requests.
*/
func TestService_Mutate_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.readyDraft(t)

	const editors = 4
	errs := make(chan error, editors)

	var wg sync.WaitGroup
	for range editors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.AddVariable(ctx, f.current, draft.ID, compose.TextVariable)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := f.service.Get(ctx, f.current, draft.ID)
	require.NoError(t, err)
	assert.Len(t, stored.VariableOrder, editors)
	assert.Len(t, stored.Variables, editors)
}

/*
TestRedisDraftRepository_Replace refuses a write based on an old version.
*/
func TestRedisDraftRepository_Replace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.readyDraft(t)

	stale := *draft
	stale.Version = draft.Version + 1
	require.NoError(t, f.drafts.Replace(ctx, stale, draft.Version, time.Hour))

	err := f.drafts.Replace(ctx, stale, draft.Version, time.Hour)
	assert.ErrorIs(t, err, editor.ErrStaleDraft)

	missing := stale
	missing.ID = "0190a0a0-0000-7000-8000-000000000000"
	err = f.drafts.Replace(ctx, missing, stale.Version, time.Hour)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

/*
TestRedisDraftRepository_Claim grants one claim until it is released.
*/
func TestRedisDraftRepository_Claim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	claimed, err := f.drafts.Claim(ctx, "s1", "d1", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = f.drafts.Claim(ctx, "s1", "d1", time.Minute)
	require.NoError(t, err)
	assert.False(t, claimed)

	require.NoError(t, f.drafts.Release(ctx, "s1", "d1"))

	claimed, err = f.drafts.Claim(ctx, "s1", "d1", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed)
}
