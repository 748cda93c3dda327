// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package strapi is the HTTP client for the headless content API.

Every call is a single request/response bounded by the caller's context; there
are no automatic retries. Calls made on behalf of an editor take the explicit
[*session.Session] and use its base URL and bearer credential.

# Response shapes

Collection responses may wrap fields in an "attributes" object (v4) or return
them flat (v5). Both are accepted; see [flatten].
*/
package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/platform/constants"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

const tracerName = "github.com/taibuivan/shloka-console/internal/strapi"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// # Errors

// ErrMissingBaseURL is returned when a call has no content API address.
var ErrMissingBaseURL = errors.New("strapi: base URL is not configured")

// Error is a non-2xx response from the content API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("strapi: upstream returned %d", e.Status)
	}
	return fmt.Sprintf("strapi: upstream returned %d: %s", e.Status, e.Message)
}

// Message returns the upstream's error.message when err carries one.
func Message(err error) string {
	var upstream *Error
	if errors.As(err, &upstream) {
		return upstream.Message
	}
	return ""
}

// StatusCode returns the upstream HTTP status, or 0 for transport failures.
func StatusCode(err error) int {
	var upstream *Error
	if errors.As(err, &upstream) {
		return upstream.Status
	}
	return 0
}

/*
AsAppError maps an upstream failure onto the console's error envelope.

Description: A 404 becomes NotFound(resource), a 401 asks the editor to log in
again, and everything else is a 502 carrying the upstream message when there
is one.
*/
func AsAppError(err error, resource string) error {
	switch StatusCode(err) {
	case http.StatusNotFound:
		return apperr.NotFound(resource)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperr.Unauthorized("Content API rejected the session. Please log in again")
	}

	message := Message(err)
	if message == "" {
		message = "Content API request failed"
	}
	return apperr.BadGateway(message, err)
}

// # Client

// Client talks to the content API.
type Client struct {
	http   *http.Client
	tracer trace.Tracer
}

// New builds a client whose requests time out after timeout.
func New(timeout time.Duration) *Client {
	return NewWithHTTPClient(&http.Client{Timeout: timeout})
}

// NewWithHTTPClient wraps an existing [*http.Client].
func NewWithHTTPClient(client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		http:   client,
		tracer: otel.Tracer(tracerName),
	}
}

// CleanBaseURL trims whitespace and trailing slashes.
func CleanBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// call describes one outbound request.
type call struct {
	method  string
	baseURL string
	path    string
	query   string
	bearer  string
	body    any
}

// forSession fills the base URL and credential from the session.
func forSession(current *session.Session, method, path string) call {
	return call{
		method:  method,
		baseURL: current.BaseURL,
		path:    path,
		bearer:  current.Bearer(),
	}
}

/*
do performs the request and decodes a 2xx JSON body into out.

Description: A non-2xx response becomes an [*Error] carrying the upstream
error.message when the body has one. out may be nil.
*/
func (client *Client) do(context context.Context, request call, out any) error {
	base := CleanBaseURL(request.baseURL)
	if base == "" {
		return ErrMissingBaseURL
	}

	target := base + request.path
	if request.query != "" {
		target += "?" + request.query
	}

	context, span := client.tracer.Start(context, "strapi "+request.method+" "+request.path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", request.method),
			attribute.String("url.path", request.path),
		),
	)
	defer span.End()

	var payload io.Reader
	if request.body != nil {
		encoded, err := json.Marshal(request.body)
		if err != nil {
			return fmt.Errorf("strapi_encode_body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	httpRequest, err := http.NewRequestWithContext(context, request.method, target, payload)
	if err != nil {
		return fmt.Errorf("strapi_build_request: %w", err)
	}

	httpRequest.Header.Set("Accept", "application/json")
	if payload != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	if request.bearer != "" {
		httpRequest.Header.Set(constants.HeaderAuthorization, request.bearer)
	}
	otel.GetTextMapPropagator().Inject(context, propagation.HeaderCarrier(httpRequest.Header))

	response, err := client.http.Do(httpRequest)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return fmt.Errorf("strapi_request_failed: %w", err)
	}
	defer response.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", response.StatusCode))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		upstream := &Error{Status: response.StatusCode, Message: errorMessage(response.Body)}
		span.SetStatus(codes.Error, upstream.Error())
		return upstream
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("strapi_decode_response: %w", err)
	}

	return nil
}

// errorMessage extracts error.message from a content API error body.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}

	return envelope.Error.Message
}
