// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

  - UserHandler: registration, login, user listing and a user's votes
  - VoteHandler: vote creation, responses, results and listing views

Handlers wrap the services package and translate its errors into HTTP
status codes:

	common.ErrNotFound               404
	common.ErrConflict, ErrValidation 400
	common.ErrUnauthorized           401
	common.ErrForbidden              403
	anything else                    500

Successful requests answer 200 with a JSON body.

# Sessions

Register and login return a signed session token. When a request carries
one, the acting user comes from the session and body ids must agree with
it; without one the body ids are used as given.
*/
package handlers
