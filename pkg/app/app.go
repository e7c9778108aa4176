// Package app assembles an HTTP application from routes, middleware and
// background tasks, and runs it until its context ends.
//
//	application := app.New().
//	    Workers(config.HTTPWorkers()).
//	    CORS(middleware.CORSOptionsFromConfig()).
//	    Routes(routes.Register(deps)).
//	    Background(scheduler.Start).
//	    OnShutdown(scheduler.Wait)
//
//	err := application.Run(ctx, config.AppHost()+":"+config.AppPort())
package app

import (
	"context"

	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

// Application is the central configuration object. Build one with New(),
// attach routes and tasks, then call Run().
type Application struct {
	routesFns  []func(*router.Router)
	workers    int
	cors       middleware.CORSOptions
	background []func(context.Context)
	shutdown   []func()
}

// New creates an Application with 64 HTTP workers and allow-all CORS.
func New() *Application {
	return &Application{
		workers: 64,
		cors: middleware.CORSOptions{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		},
	}
}

// Routes registers a route-registration callback. Callbacks run in order
// each time a handler is built.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// Workers sets how many request handlers may run at once.
func (a *Application) Workers(n int) *Application {
	if n > 0 {
		a.workers = n
	}
	return a
}

// CORS replaces the CORS options.
func (a *Application) CORS(opts middleware.CORSOptions) *Application {
	a.cors = opts
	return a
}

// Background registers a task started when Run begins. fn must return
// promptly; long-running work should start its own goroutine and stop
// when ctx ends.
func (a *Application) Background(fn func(ctx context.Context)) *Application {
	a.background = append(a.background, fn)
	return a
}

// OnShutdown registers a hook run after the HTTP server has drained, in
// registration order.
func (a *Application) OnShutdown(fn func()) *Application {
	a.shutdown = append(a.shutdown, fn)
	return a
}

// RouteTable builds the router without middleware, for route:list.
func (a *Application) RouteTable() []router.RouteInfo {
	r := router.New()
	for _, fn := range a.routesFns {
		fn(r)
	}
	return r.Routes()
}
