// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/common"
	"github.com/danielhkuo/quickly-vote/middleware"
)

// statusFor maps service errors onto HTTP status codes.
// Conflicts are reported as 400, matching the public API.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConflict), errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs server-side failures and writes the JSON error body.
// Internal details are only exposed for client errors.
func writeError(w http.ResponseWriter, err error, internalMessage string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(internalMessage, "error", err)
		middleware.ErrorResponse(w, status, internalMessage)
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}
