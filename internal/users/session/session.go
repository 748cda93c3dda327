// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session defines the explicit editor session object.

A [Session] is created by a successful login against the identity service,
destroyed on logout, and read-only everywhere else. Every operation that talks
to the content API receives it as an argument instead of reading shared state.

# Architecture

This is a leaf package: it has no internal dependencies so that platform
packages (ctxutil, middleware) and domain packages can both import it.
*/
package session

import "time"

// Session is the server-side record of a logged-in editor.
//
// # Security
//
// UpstreamToken is the identity service JWT. It is persisted in the session
// store but never rendered to clients; use [Session.Summary] for responses.
type Session struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	UpstreamToken string    `json:"upstream_token"`
	BaseURL       string    `json:"base_url"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Summary is the client-safe projection of a [Session].
type Summary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	BaseURL   string    `json:"base_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Bearer returns the Authorization header value for upstream calls.
func (s Session) Bearer() string {
	return "Bearer " + s.UpstreamToken
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Summary strips the upstream credential.
func (s Session) Summary() Summary {
	return Summary{
		ID:        s.ID,
		Email:     s.Email,
		BaseURL:   s.BaseURL,
		ExpiresAt: s.ExpiresAt,
	}
}
