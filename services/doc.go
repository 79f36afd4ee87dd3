// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package services holds the application logic between HTTP handlers and the
store.

  - UserService: Register, Login, List, Get
  - VoteService: List, Get, Create, Respond, Results, View, CreatedBy

Both are built once at startup around the same store.Store and passed to
the handlers; neither keeps global state.

# Errors

Errors wrap the sentinels in package common (ErrNotFound, ErrConflict,
ErrValidation, ErrUnauthorized, ErrForbidden, ErrStorage) so the HTTP
layer can map them with errors.Is.

# Concurrency

Every mutation reads a collection, checks it, and saves it back. Nothing
serializes these steps, so concurrent requests can register the same
username twice, record two responses from one user, or drop a response
written by a concurrent save. This mirrors the storage model (whole
collection, last writer wins) and is a known limitation, not a guarantee.
*/
package services
