// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/services"
	"github.com/danielhkuo/quickly-vote/store"
)

// NewRouter wires every endpoint against s. The returned handler parses
// bearer sessions and applies CORS.
func NewRouter(s store.Store, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	userService := services.NewUserService(s)
	voteService := services.NewVoteService(s, language.Make(cfg.Locale))

	userHandler := handlers.NewUserHandler(userService, voteService, cfg)
	voteHandler := handlers.NewVoteHandler(voteService)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Users
	mux.HandleFunc("POST /users/register", middleware.WithLogging(userHandler.Register))
	mux.HandleFunc("POST /users/login", middleware.WithLogging(userHandler.Login))
	mux.HandleFunc("GET /users", middleware.WithLogging(userHandler.List))
	mux.HandleFunc("GET /users/{id}/votes", middleware.WithLogging(userHandler.CreatedVotes))

	// Votes
	mux.HandleFunc("GET /votes", middleware.WithLogging(voteHandler.List))
	mux.HandleFunc("POST /votes", middleware.WithLogging(voteHandler.Create))
	mux.HandleFunc("POST /votes/respond", middleware.WithLogging(voteHandler.Respond))
	mux.HandleFunc("GET /votes/view", middleware.WithLogging(voteHandler.View))
	mux.HandleFunc("GET /votes/{id}", middleware.WithLogging(voteHandler.Get))
	mux.HandleFunc("GET /votes/{id}/stats", middleware.WithLogging(voteHandler.Stats))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return middleware.CORS(middleware.WithSession(cfg.SessionSecret, mux))
}
