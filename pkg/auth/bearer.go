// Package auth resolves the acting user of a request.
//
// The bearer token is the numeric id of the user, taken as-is:
//
//	Authorization: Bearer 7
//
// There is no signature or expiry, and the id is not checked against the
// users table.
package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrMissingToken is returned when the Authorization header is absent.
	ErrMissingToken = errors.New("auth: missing bearer token")
	// ErrMalformedToken is returned when the header is not "Bearer <positive integer>".
	ErrMalformedToken = errors.New("auth: malformed bearer token")
)

// ParseBearer extracts the actor id from an Authorization header value.
func ParseBearer(header string) (uint, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0, ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return 0, ErrMalformedToken
	}

	id, err := strconv.ParseUint(strings.TrimSpace(token), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrMalformedToken
	}
	return uint(id), nil
}

type actorKey struct{}

// WithActor stores the actor id in ctx.
func WithActor(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, actorKey{}, id)
}

// ActorFromCtx returns the actor id stored by WithActor.
func ActorFromCtx(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(actorKey{}).(uint)
	return id, ok && id > 0
}
