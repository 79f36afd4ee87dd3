// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifiers and session tokens.

# ID Generation

	id := auth.GenerateID() // random UUID string

# Sessions

Login and registration hand out a signed session token (HS256 JWT) that
names the user:

	token, err := auth.IssueSessionToken(auth.Session{UserID: u.ID, Username: u.Username}, secret, ttl)

Requests may send it back as "Authorization: Bearer <token>". The
middleware turns it into a Session stored in the request context:

	s, ok := auth.SessionFromContext(r.Context())

A session only tells the list view and the results endpoint who is
looking. It does not protect any write endpoint.

# Errors

ParseSessionToken wraps ErrInvalidToken for malformed, forged or expired
tokens.
*/
package auth
