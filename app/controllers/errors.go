package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/catalog/app/query"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/logger"
)

// fail maps a service error onto the HTTP error envelope. Internal detail is
// logged with the request id and replaced by a generic message.
func fail(c *ctx.Context, err error) {
	var verr *services.ValidationError
	var perr *query.ParseError

	switch {
	case errors.As(err, &verr):
		c.ValidationError(verr.Fields)
	case errors.As(err, &perr):
		c.ValidationError(perr.Fields)
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrConflict):
		c.Error(http.StatusBadRequest, "Username already exists")
	case errors.Is(err, services.ErrUnauthorized):
		c.Unauthorized("Invalid credentials")
	default:
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
		c.Error(http.StatusInternalServerError, "Internal server error")
	}
}

// ownerParam reads the required user_id query parameter. On failure it
// sends a 400 and returns false.
func ownerParam(c *ctx.Context) (uint, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		c.ValidationError(map[string]string{"user_id": "The user_id field is required."})
		return 0, false
	}
	id, err := parseUint(raw)
	if err != nil || id == 0 {
		c.ValidationError(map[string]string{"user_id": "The user_id must be a positive integer."})
		return 0, false
	}
	return id, true
}
