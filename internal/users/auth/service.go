// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the editor session lifecycle.

Credentials are never checked or stored here: they are forwarded to the
identity service, and a successful answer becomes an explicit
[session.Session] held server-side.

Architecture:

  - Service: Orchestrates Login, Logout.
  - Repository: Redis-backed session storage with TTL expiry.
  - Security: The browser holds only an RS256 console token naming the session;
    the upstream JWT never leaves the server.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/shloka-console/internal/platform/apperr"
	"github.com/taibuivan/shloka-console/internal/platform/ctxutil"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
	"github.com/taibuivan/shloka-console/pkg/uuid"
)

// # Contracts & Types

// Authenticator exchanges credentials with the identity service.
type Authenticator interface {
	Login(context context.Context, baseURL string, credentials strapi.Credentials) (*strapi.Identity, error)
}

// TokenProvider issues console tokens.
type TokenProvider interface {
	// GenerateSessionToken signs a token naming sessionID, valid for ttl.
	GenerateSessionToken(sessionID, email string, ttl time.Duration) (string, error)
}

// Service implements the session use cases.
type Service struct {
	authenticator     Authenticator
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	baseURL           string
	sessionTTL        time.Duration
}

// NewService constructs a new [Service].
//
// baseURL is the content API root every session is bound to.
func NewService(authenticator Authenticator, sessionRepo SessionRepository, tokenProv TokenProvider, baseURL string, sessionTTL time.Duration) *Service {
	return &Service{
		authenticator:     authenticator,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		baseURL:           strapi.CleanBaseURL(baseURL),
		sessionTTL:        sessionTTL,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Identifier string
	Password   string
}

// LoginResult is a freshly established session plus its console token.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Session     *session.Session
}

/*
Login authenticates against the identity service and opens a session.

Description: On success the upstream JWT, the editor's email, and the content
API base URL are recorded together in one session. On failure nothing is
stored.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Console token and session
  - err: ValidationError (no base URL), Unauthorized (rejected), BadGateway (unreachable)
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// Nothing to talk to
	if service.baseURL == "" {
		return nil, apperr.ValidationError(MessageMissingBaseURL)
	}

	identity, err := service.authenticator.Login(context, service.baseURL, strapi.Credentials{
		Identifier: input.Identifier,
		Password:   input.Password,
	})
	if err != nil {
		return nil, loginError(err)
	}

	if identity.JWT == "" {
		return nil, apperr.BadGateway(MessageLoginFailed, errors.New("auth_service_login_empty_jwt"))
	}

	email := identity.User.Email
	if email == "" {
		email = input.Identifier
	}

	// Build the session. Time-sortable ID keeps Redis scans ordered.
	now := time.Now().UTC()
	current := &session.Session{
		ID:            uuid.New(),
		Email:         email,
		UpstreamToken: identity.JWT,
		BaseURL:       service.baseURL,
		CreatedAt:     now,
		ExpiresAt:     now.Add(service.sessionTTL),
	}

	if err := service.sessionRepository.Create(context, current, service.sessionTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	accessToken, err := service.tokenProvider.GenerateSessionToken(current.ID, current.Email, service.sessionTTL)
	if err != nil {
		_ = service.sessionRepository.Delete(context, current.ID)
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("session_created", "session_id", current.ID, "email", current.Email)

	return &LoginResult{
		AccessToken: accessToken,
		ExpiresAt:   current.ExpiresAt,
		Session:     current,
	}, nil
}

// loginError maps an identity service failure to a client error.
func loginError(err error) error {
	if errors.Is(err, strapi.ErrMissingBaseURL) {
		return apperr.ValidationError(MessageMissingBaseURL)
	}

	status := strapi.StatusCode(err)
	if status == 0 {
		return apperr.BadGateway(MessageUpstreamUnreachable, err)
	}

	message := strings.TrimSpace(strapi.Message(err))
	if message == "" {
		message = MessageLoginFailed
	}

	if status >= http.StatusInternalServerError {
		return apperr.BadGateway(message, err)
	}

	return apperr.Unauthorized(message)
}

/*
Logout destroys the session.

Description: Idempotent; a session that is already gone is not an error.

Parameters:
  - context: context.Context
  - current: *session.Session

Returns:
  - err: Storage failures
*/
func (service *Service) Logout(context context.Context, current *session.Session) error {
	if err := service.sessionRepository.Delete(context, current.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("session_destroyed", "session_id", current.ID)
	return nil
}
