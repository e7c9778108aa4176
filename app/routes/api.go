// Package routes declares the catalog's HTTP route table.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/catalog/app/controllers"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

// Handlers is everything the route table dispatches to.
type Handlers struct {
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Auth       *controllers.AuthController
	Monitor    *controllers.MonitorController
	Stats      *controllers.StatsController
	Generator  *controllers.GeneratorController
	Media      *controllers.MediaController
	Activity   *controllers.ActivityController
	GraphQL    http.HandlerFunc
}

// API returns the route registration callback for pkg/app.
func API(h Handlers) func(*router.Router) {
	return func(r *router.Router) {
		products := r.Group("/products")
		products.Get("/", "products.index", ctx.Wrap(h.Products.Index))
		products.Post("/", "products.store", ctx.Wrap(h.Products.Store))
		products.Get("/user/{user_id}", "products.by_user", ctx.Wrap(h.Products.ByUser))
		products.Get("/{id}", "products.show", ctx.Wrap(h.Products.Show))
		products.Patch("/{id}", "products.update", ctx.Wrap(h.Products.Update))
		products.Delete("/{id}", "products.destroy", ctx.Wrap(h.Products.Destroy))

		categories := r.Group("/categories")
		categories.Get("/", "categories.index", ctx.Wrap(h.Categories.Index))
		categories.Post("/", "categories.store", ctx.Wrap(h.Categories.Store))
		categories.Get("/{id}", "categories.show", ctx.Wrap(h.Categories.Show))
		categories.Patch("/{id}", "categories.update", ctx.Wrap(h.Categories.Update))
		categories.Put("/{id}", "categories.replace", ctx.Wrap(h.Categories.Update))
		categories.Delete("/{id}", "categories.destroy", ctx.Wrap(h.Categories.Destroy))

		r.Post("/register", "auth.register", ctx.Wrap(h.Auth.Register))
		r.Post("/login", "auth.login", ctx.Wrap(h.Auth.Login))

		r.Get("/monitored-users", "monitor.index", ctx.Wrap(h.Monitor.Index))
		r.Delete("/monitored-users", "monitor.clear", ctx.Wrap(h.Monitor.Clear), middleware.RequireActor)

		stats := r.Group("/stats")
		stats.Get("/avg-price", "stats.avg_price", ctx.Wrap(h.Stats.AvgPrice))
		stats.Get("/avg-price-per-category", "stats.avg_price_per_category", ctx.Wrap(h.Stats.AvgPricePerCategory))
		stats.Get("/avg-price-per-category-inmemory", "stats.avg_price_per_category_inmemory", ctx.Wrap(h.Stats.AvgPricePerCategoryInMemory))

		r.Post("/toggle-generation", "generator.toggle", ctx.Wrap(h.Generator.Toggle), middleware.RequireActor)

		r.Post("/media", "media.upload", ctx.Wrap(h.Media.Upload))
		r.Get("/media/*", "media.show", ctx.Wrap(h.Media.Show))
		r.Get("/videos/*", "media.videos", ctx.Wrap(h.Media.Show))

		r.Get("/activity", "activity.recent", ctx.Wrap(h.Activity.Recent))
		r.Get("/ws/activity", "activity.feed", ctx.Wrap(h.Activity.Feed), middleware.RequireActor)

		r.Post("/graphql", "graphql", h.GraphQL)
	}
}
