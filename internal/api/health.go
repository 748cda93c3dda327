// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/shloka-console/internal/platform/constants"
	"github.com/taibuivan/shloka-console/internal/platform/respond"
)

// readinessTimeout bounds all dependency checks of one probe.
const readinessTimeout = 3 * time.Second

// Check probes one dependency.
type Check struct {
	Name  string
	Probe func(context context.Context) error
}

// HealthDependencies lists the checks behind /ready: the journal database and
// the session store in production.
type HealthDependencies struct {
	Checks []Check
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers returns the /health and /ready handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		results := probe(request.Context(), deps.Checks, logger)

		status, code := "ready", http.StatusOK
		for _, result := range results {
			if !result.IsOK {
				status, code = "degraded", http.StatusServiceUnavailable
				break
			}
		}

		respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
			constants.FieldStatus: status,
			constants.FieldChecks: results,
		}})
	}

	return liveness, readiness
}

// probe runs every check concurrently; results keep the order of checks.
func probe(ctx context.Context, checks []Check, logger *slog.Logger) []checkResult {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	results := make([]checkResult, len(checks))

	var group errgroup.Group
	for i, check := range checks {
		group.Go(func() error {
			results[i] = checkResult{Name: check.Name, IsOK: true}
			if err := check.Probe(ctx); err != nil {
				results[i].IsOK = false
				results[i].Error = err.Error()
				logger.ErrorContext(ctx, "readiness_check_failed", slog.String("dependency", check.Name), slog.Any("error", err))
			}
			return nil
		})
	}
	_ = group.Wait()

	return results
}
