// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/shloka-console/internal/compose"
	"github.com/taibuivan/shloka-console/internal/journal"
	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/platform/constants"
	"github.com/taibuivan/shloka-console/internal/platform/ctxutil"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
	"github.com/taibuivan/shloka-console/pkg/uuid"
)

// MessageSubmitFailed is shown when the content API gives no reason.
const MessageSubmitFailed = "Failed to save verse"

const (
	// MessageSubmitInProgress answers a submit that overlaps another for the same draft.
	MessageSubmitInProgress = "This verse is already being submitted"

	// MessageDraftBusy answers an edit that kept losing to concurrent writes.
	MessageDraftBusy = "Draft was changed by another request. Reload and try again"
)

// maxWriteAttempts bounds how often an edit is replayed after losing a race.
const maxWriteAttempts = 5

// # Contracts

// Submitter creates verse documents in the content API.
type Submitter interface {
	CreateShloka(context context.Context, current *session.Session, submission compose.Submission) (*strapi.Created, error)
}

// Recorder keeps the submission journal. Recording failures never fail a submit.
type Recorder interface {
	Record(context context.Context, record *journal.Record) error
}

// # Service

// Service loads a draft, applies one operation, and saves the result.
type Service struct {
	drafts    DraftRepository
	submitter Submitter
	recorder  Recorder
	ttl       time.Duration
	newID     func() string
	now       func() time.Time
}

// NewService constructs a new [Service]. recorder may be nil.
func NewService(drafts DraftRepository, submitter Submitter, recorder Recorder, ttl time.Duration) *Service {
	return &Service{
		drafts:    drafts,
		submitter: submitter,
		recorder:  recorder,
		ttl:       ttl,
		newID:     uuid.New,
		now:       time.Now,
	}
}

// Create starts a blank draft for the session.
func (service *Service) Create(context context.Context, current *session.Session) (*Draft, error) {
	draft := NewDraft(service.newID(), current.ID, service.now().UTC())

	if err := service.drafts.Save(context, draft, service.ttl); err != nil {
		return nil, fmt.Errorf("editor_service_create_failed: %w", err)
	}

	return &draft, nil
}

// Get loads a draft owned by the session.
func (service *Service) Get(context context.Context, current *session.Session, draftID string) (*Draft, error) {
	return service.find(context, current, draftID)
}

// find rejects malformed IDs before they reach the store key space.
func (service *Service) find(context context.Context, current *session.Session, draftID string) (*Draft, error) {
	if !uuid.Valid(draftID) {
		return nil, apperr.NotFound("Draft")
	}
	return service.drafts.Find(context, current.ID, draftID)
}

// Discard deletes a draft.
func (service *Service) Discard(context context.Context, current *session.Session, draftID string) error {
	if !uuid.Valid(draftID) {
		return apperr.NotFound("Draft")
	}
	if err := service.drafts.Delete(context, current.ID, draftID); err != nil {
		return fmt.Errorf("editor_service_discard_failed: %w", err)
	}
	return nil
}

// mutate applies op to the stored draft and writes the result with a version
// check. An edit that loses a race is replayed on the fresh draft, so two
// concurrent edits both survive.
func (service *Service) mutate(context context.Context, current *session.Session, draftID string, op func(Draft) (Draft, error)) (*Draft, error) {
	if !uuid.Valid(draftID) {
		return nil, apperr.NotFound("Draft")
	}

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		draft, err := service.drafts.Find(context, current.ID, draftID)
		if err != nil {
			return nil, err
		}

		next, err := op(*draft)
		if err != nil {
			return nil, err
		}

		next.Version = draft.Version + 1
		next.UpdatedAt = service.now().UTC()

		err = service.drafts.Replace(context, next, draft.Version, service.ttl)
		if errors.Is(err, ErrStaleDraft) {
			continue
		}
		if err != nil {
			if apperr.As(err) != nil {
				return nil, err
			}
			return nil, fmt.Errorf("editor_service_save_failed: %w", err)
		}

		return &next, nil
	}

	return nil, apperr.Conflict(MessageDraftBusy)
}

// pure adapts an infallible operation for [Service.mutate].
func pure(op func(Draft) Draft) func(Draft) (Draft, error) {
	return func(d Draft) (Draft, error) { return op(d), nil }
}

// # Step Operations

// UpdateMetadata replaces the step-one form.
func (service *Service) UpdateMetadata(context context.Context, current *session.Session, draftID string, metadata Metadata) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.WithMetadata(metadata)
	})
}

// Next moves the draft to step two.
func (service *Service) Next(context context.Context, current *session.Session, draftID string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.Next(service.newID())
	})
}

// Back returns the draft to step one.
func (service *Service) Back(context context.Context, current *session.Session, draftID string) (*Draft, error) {
	return service.mutate(context, current, draftID, pure(Draft.Back))
}

// UpdateVerse replaces the verse form.
func (service *Service) UpdateVerse(context context.Context, current *session.Session, draftID string, verse Verse) (*Draft, error) {
	return service.mutate(context, current, draftID, pure(func(d Draft) Draft {
		return d.WithVerse(verse)
	}))
}

// UpdateHierarchy resizes and relabels the hierarchy.
func (service *Service) UpdateHierarchy(context context.Context, current *session.Session, draftID string, depth int, names, values []string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.WithHierarchy(depth, names, values)
	})
}

// # Node Operations

// AddCommentary appends a blank commentary.
func (service *Service) AddCommentary(context context.Context, current *session.Session, draftID string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.AddCommentary(service.newID())
	})
}

// UpdateCommentary edits a commentary.
func (service *Service) UpdateCommentary(context context.Context, current *session.Session, draftID, nodeID string, fields CommentaryFields) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.UpdateCommentary(nodeID, fields)
	})
}

// RemoveCommentary deletes a commentary and its children.
func (service *Service) RemoveCommentary(context context.Context, current *session.Session, draftID, nodeID string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.RemoveCommentary(nodeID)
	})
}

// AddTika appends a blank sub-commentary.
func (service *Service) AddTika(context context.Context, current *session.Session, draftID, commentaryID string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.AddTika(commentaryID, service.newID())
	})
}

// UpdateTika edits a sub-commentary.
func (service *Service) UpdateTika(context context.Context, current *session.Session, draftID, nodeID string, fields TikaFields) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.UpdateTika(nodeID, fields)
	})
}

// RemoveTika deletes a sub-commentary.
func (service *Service) RemoveTika(context context.Context, current *session.Session, draftID, nodeID string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.RemoveTika(nodeID)
	})
}

// AddTranslation appends a translation to the verse or a commentary.
func (service *Service) AddTranslation(context context.Context, current *session.Session, draftID, owner, language string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.AddTranslation(owner, service.newID(), language)
	})
}

// UpdateTranslation edits a translation.
func (service *Service) UpdateTranslation(context context.Context, current *session.Session, draftID, nodeID, language, text string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.UpdateTranslation(nodeID, language, text)
	})
}

// RemoveTranslation deletes a translation.
func (service *Service) RemoveTranslation(context context.Context, current *session.Session, draftID, nodeID string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.RemoveTranslation(nodeID)
	})
}

// AddVariable appends a blank extra variable.
func (service *Service) AddVariable(context context.Context, current *session.Session, draftID string, kind compose.VariableKind) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.AddVariable(service.newID(), kind)
	})
}

// UpdateVariable edits an extra variable.
func (service *Service) UpdateVariable(context context.Context, current *session.Session, draftID, nodeID, label, value string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.UpdateVariable(nodeID, label, value)
	})
}

// RemoveVariable deletes an extra variable.
func (service *Service) RemoveVariable(context context.Context, current *session.Session, draftID, nodeID string) (*Draft, error) {
	return service.mutate(context, current, draftID, func(d Draft) (Draft, error) {
		return d.RemoveVariable(nodeID)
	})
}

// DismissBanner clears the status banner.
func (service *Service) DismissBanner(context context.Context, current *session.Session, draftID string) (*Draft, error) {
	return service.mutate(context, current, draftID, pure(Draft.DismissBanner))
}

// # Submission

// Preview composes the payload without sending it.
func (service *Service) Preview(context context.Context, current *session.Session, draftID string) (compose.Submission, error) {
	draft, err := service.find(context, current, draftID)
	if err != nil {
		return compose.Submission{}, err
	}
	return draft.Submission(), nil
}

// SubmitResult is a successful submission.
type SubmitResult struct {
	Draft   *Draft
	Created *strapi.Created
}

/*
Submit validates, composes, and creates the verse, then resets the draft.

Description: Only one submission per draft runs at a time; an overlapping
submit is a 409 and never reaches the content API. A validation failure leaves
the draft unchanged. An upstream failure keeps the form content, sets an error
banner carrying the upstream message (or [MessageSubmitFailed]), and returns a
502. Success sets a success banner and prepares the next verse (see
[Draft.AfterSubmit]). Every upstream attempt is journaled.

Parameters:
  - context: context.Context
  - current: *session.Session
  - draftID: string

Returns:
  - *SubmitResult: Reset draft and the created document
  - error: Conflict, ValidationError, BadGateway, or storage failures
*/
func (service *Service) Submit(context context.Context, current *session.Session, draftID string) (*SubmitResult, error) {
	logger := ctxutil.GetLogger(context)

	draft, err := service.find(context, current, draftID)
	if err != nil {
		return nil, err
	}

	if draft.Step != StepContent {
		return nil, apperr.Unprocessable("Complete the metadata step first")
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	claimed, err := service.drafts.Claim(context, current.ID, draftID, constants.GlobalRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("editor_service_claim_failed: %w", err)
	}
	if !claimed {
		return nil, apperr.Conflict(MessageSubmitInProgress)
	}
	defer service.release(context, current, draftID)

	// Re-read under the claim: a submit that finished just before ours has
	// already moved the draft to the next verse.
	draft, err = service.find(context, current, draftID)
	if err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	submission := draft.Submission()

	created, err := service.submitter.CreateShloka(context, current, submission)
	if err != nil {
		message := strings.TrimSpace(strapi.Message(err))
		if message == "" {
			message = MessageSubmitFailed
		}

		logger.Warn("verse_submit_failed", "draft_id", draft.ID, "error", err.Error())
		service.record(context, current, *draft, submission, nil, message)

		if _, saveErr := service.mutate(context, current, draftID, pure(func(d Draft) Draft {
			return d.WithBanner(BannerError, message)
		})); saveErr != nil {
			logger.Error("draft_save_failed", "draft_id", draft.ID, "error", saveErr.Error())
		}

		return nil, apperr.BadGateway(message, err)
	}

	service.record(context, current, *draft, submission, created, "")
	logger.Info("verse_submitted", "draft_id", draft.ID, "verse_number", submission.Data.VerseNumber, "upstream_id", created.ID)

	nextID := service.newID()
	next, err := service.mutate(context, current, draftID, pure(func(d Draft) Draft {
		return d.AfterSubmit(nextID)
	}))
	if err != nil {
		return nil, err
	}

	return &SubmitResult{Draft: next, Created: created}, nil
}

// release drops the submit claim even when the request context is done.
func (service *Service) release(ctx context.Context, current *session.Session, draftID string) {
	if err := service.drafts.Release(context.WithoutCancel(ctx), current.ID, draftID); err != nil {
		ctxutil.GetLogger(ctx).Error("draft_release_failed", "draft_id", draftID, "error", err.Error())
	}
}

// record journals one attempt; failures are logged only.
func (service *Service) record(context context.Context, current *session.Session, draft Draft, submission compose.Submission, created *strapi.Created, failure string) {
	if service.recorder == nil {
		return
	}

	payload, err := json.Marshal(submission)
	if err != nil {
		payload = []byte(`null`)
	}

	record := &journal.Record{
		SessionID:   current.ID,
		Email:       current.Email,
		DraftID:     draft.ID,
		Locale:      draft.Metadata.Locale,
		ChapterID:   draft.Metadata.ChapterID,
		AuthorID:    draft.Metadata.AuthorID,
		VerseNumber: submission.Data.VerseNumber,
		Hierarchy:   draft.Hierarchy.Label(),
		Status:      journal.StatusSaved,
		Payload:     payload,
	}

	if created != nil {
		record.UpstreamID = created.DocumentID
		if record.UpstreamID == "" {
			record.UpstreamID = strconv.Itoa(created.ID)
		}
	} else {
		record.Status = journal.StatusFailed
		record.Message = failure
	}

	if err := service.recorder.Record(context, record); err != nil {
		ctxutil.GetLogger(context).Error("journal_record_failed", "draft_id", draft.ID, "error", err.Error())
	}
}
