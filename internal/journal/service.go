// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/shloka-console/internal/users/session"
	"github.com/taibuivan/shloka-console/pkg/pagination"
	"github.com/taibuivan/shloka-console/pkg/uuid"
)

// Service records and lists submission attempts.
type Service struct {
	repository Repository
	now        func() time.Time
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository, now: time.Now}
}

// Record stores one attempt, assigning its ID and timestamp.
func (service *Service) Record(context context.Context, record *Record) error {
	record.ID = uuid.New()
	record.CreatedAt = service.now().UTC()

	if err := service.repository.Create(context, record); err != nil {
		return fmt.Errorf("journal_service_record_failed: %w", err)
	}

	return nil
}

// List returns one page of the session editor's history.
func (service *Service) List(context context.Context, current *session.Session, page pagination.Params) ([]*Record, int, error) {
	records, total, err := service.repository.ListByEmail(context, current.Email, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("journal_service_list_failed: %w", err)
	}
	return records, total, nil
}
