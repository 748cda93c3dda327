// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Messages

const (
	// MessageLoginFailed is returned when the identity service rejects
	// credentials without an explanation of its own.
	MessageLoginFailed = "Login failed. Check credentials."

	// MessageMissingBaseURL is returned when no content API address is configured.
	MessageMissingBaseURL = "Content API URL is not configured"

	// MessageUpstreamUnreachable is returned for transport failures.
	MessageUpstreamUnreachable = "Content API is unreachable"
)

// # Field Identifiers

// Field names used in login payloads and responses.
const (
	FieldIdentifier  = "identifier"
	FieldPassword    = "password"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresAt   = "expires_at"
	FieldSession     = "session"
	FieldBaseURL     = "base_url"
)
