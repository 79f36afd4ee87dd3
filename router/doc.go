// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

NewRouter builds the services on top of a store and returns a handler
with every endpoint registered:

	h := router.NewRouter(s, cfg)

# Endpoints

Health:

	GET /health
	GET /

Users:

	POST /users/register   - Create an account, returns a session token
	POST /users/login      - Exact username and password match
	GET  /users            - All users without passwords
	GET  /users/{id}/votes - Votes the user created

Votes:

	GET  /votes            - All votes in insertion order
	POST /votes            - Create a vote
	POST /votes/respond    - Record a response
	GET  /votes/view       - Search, filter and sort
	GET  /votes/{id}       - One vote
	GET  /votes/{id}/stats - Aggregated results

# Middleware

Each route is wrapped with middleware.WithLogging. The whole mux sits
behind middleware.WithSession and middleware.CORS.
*/
package router
