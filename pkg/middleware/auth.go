package middleware

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

// Actor resolves the optional bearer actor. Requests without an
// Authorization header pass through anonymously; a header that is present
// but not "Bearer <positive integer>" is rejected with 401.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.ParseBearer(r.Header.Get("Authorization"))
		switch {
		case errors.Is(err, auth.ErrMissingToken):
			next.ServeHTTP(w, r)
		case err != nil:
			logger.WithCtx(r.Context()).Debug("auth: rejected bearer token", "error", err)
			response.Unauthorized(w, "Invalid token")
		default:
			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), id)))
		}
	})
}

// RequireActor rejects requests that reached it without a bearer actor.
// It must run after Actor.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.ActorFromCtx(r.Context()); !ok {
			response.Unauthorized(w, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}
