// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package batch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/shloka-console/internal/editor"
	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// Outcome is the result of one item.
type Outcome struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
	Saved    bool   `json:"saved"`
	Upstream string `json:"upstream_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Report summarises an import run.
type Report struct {
	Saved    int       `json:"saved"`
	Failed   int       `json:"failed"`
	Skipped  int       `json:"skipped"`
	Outcomes []Outcome `json:"outcomes"`
}

// Importer submits items one at a time, in file order.
type Importer struct {
	submitter   editor.Submitter
	logger      *slog.Logger
	stopOnError bool
}

// NewImporter constructs a new [Importer]. With stopOnError the run ends at
// the first failed item and the rest are counted as skipped.
func NewImporter(submitter editor.Submitter, logger *slog.Logger, stopOnError bool) *Importer {
	return &Importer{submitter: submitter, logger: logger, stopOnError: stopOnError}
}

/*
Run validates and submits every item sequentially.

Description: Items failing validation are not sent. A cancelled context stops
the run before the next item.

Returns:
  - Report: Per-item outcomes and totals
*/
func (importer *Importer) Run(context context.Context, current *session.Session, items []Item) Report {
	report := Report{Outcomes: make([]Outcome, 0, len(items))}

	for index, item := range items {
		if context.Err() != nil || (importer.stopOnError && report.Failed > 0) {
			report.Skipped = len(items) - index
			break
		}

		outcome := importer.submit(context, current, item)
		if outcome.Saved {
			report.Saved++
		} else {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	importer.logger.Info("batch_import_finished",
		slog.Int("saved", report.Saved),
		slog.Int("failed", report.Failed),
		slog.Int("skipped", report.Skipped),
	)

	return report
}

func (importer *Importer) submit(context context.Context, current *session.Session, item Item) Outcome {
	outcome := Outcome{Position: item.Position, Label: item.Label()}

	if err := item.Draft.Validate(); err != nil {
		outcome.Error = Describe(err)
		importer.logger.Warn("batch_item_invalid", slog.Int("position", item.Position), slog.String("error", outcome.Error))
		return outcome
	}

	created, err := importer.submitter.CreateShloka(context, current, item.Draft.Submission())
	if err != nil {
		outcome.Error = strapi.Message(err)
		if outcome.Error == "" {
			outcome.Error = err.Error()
		}
		importer.logger.Warn("batch_item_failed", slog.Int("position", item.Position), slog.String("error", outcome.Error))
		return outcome
	}

	outcome.Saved = true
	outcome.Upstream = created.DocumentID
	importer.logger.Info("batch_item_saved", slog.Int("position", item.Position), slog.String("upstream_id", created.DocumentID))
	return outcome
}

// Describe flattens field errors into one line.
func Describe(err error) string {
	appErr := apperr.As(err)
	if appErr == nil || len(appErr.Details) == 0 {
		return err.Error()
	}

	parts := make([]string, 0, len(appErr.Details))
	for _, detail := range appErr.Details {
		parts = append(parts, detail.Field+": "+detail.Message)
	}
	return strings.Join(parts, "; ")
}
