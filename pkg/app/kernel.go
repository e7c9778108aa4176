package app

import (
	"net/http"

	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/reqid"
	"github.com/shashiranjanraj/catalog/pkg/response"
	"github.com/shashiranjanraj/catalog/pkg/router"
	"github.com/shashiranjanraj/catalog/pkg/workerpool"
)

// Handler builds the HTTP handler. The returned pool bounds concurrent
// handlers and must be shut down by the caller once the server has stopped.
func (a *Application) Handler() (http.Handler, *workerpool.Pool) {
	pool := workerpool.New(a.workers)
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, for accurate total latency
	//  2. Recovery
	//  3. Request ID, before anything logs
	//  4. Logger
	//  5. CORS
	//  6. Worker pool
	//  7. Bearer actor
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(a.cors),
		middleware.Concurrency(pool),
		middleware.Actor,
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})

	r.Get("/metrics", "metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}

	return r.Handler(), pool
}
