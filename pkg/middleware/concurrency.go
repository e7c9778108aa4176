package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/response"
	"github.com/shashiranjanraj/catalog/pkg/workerpool"
)

// Concurrency runs each downstream handler on pool, bounding how many
// handlers execute at once. Requests wait for a free worker; once the pool
// is shut down they get 503. A handler panic is re-raised on the request
// goroutine so Recovery still sees it.
//
// WebSocket upgrade requests bypass the pool since the connection outlives
// the handler call.
func Concurrency(pool *workerpool.Pool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}

			err := pool.Do(r.Context(), func() { next.ServeHTTP(w, r) })

			var pe *workerpool.PanicError
			switch {
			case err == nil:
			case errors.As(err, &pe):
				panic(pe.Value)
			case errors.Is(err, workerpool.ErrPoolClosed):
				response.Unavailable(w)
			default:
				// Client went away while queued.
				logger.WithCtx(r.Context()).Debug("request abandoned before a worker was free", "error", err)
			}
		})
	}
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
