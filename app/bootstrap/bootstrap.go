// Package bootstrap wires the catalog together. Every component is built
// from the injected database pool; nothing reaches for a global handle.
//
//	pool, _ := database.Open(database.ConfigFromEnv())
//	c, _ := bootstrap.New(ctx, pool, bootstrap.Options{})
//	err := c.Application().Run(ctx, addr)
package bootstrap

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/shashiranjanraj/catalog/app/controllers"
	"github.com/shashiranjanraj/catalog/app/graphql"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/routes"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/app"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/event"
	"github.com/shashiranjanraj/catalog/pkg/grpc"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/schedule"
	"github.com/shashiranjanraj/catalog/pkg/storage"
	"github.com/shashiranjanraj/catalog/pkg/ws"
)

// Options overrides configuration-derived settings. Zero values fall back
// to config.
type Options struct {
	Disk              storage.Disk
	Workers           int
	SweepInterval     time.Duration
	GeneratorInterval time.Duration
	GRPCPort          string
}

// Container holds the built components.
type Container struct {
	Pool      *database.Pool
	Bus       *event.Bus
	Hub       *ws.Hub
	Scheduler *schedule.Scheduler
	Disk      storage.Disk

	Activity   *services.ActivityService
	Monitor    *services.MonitorService
	Products   *services.ProductService
	Categories *services.CategoryService
	Auth       *services.AuthService
	Stats      *services.StatsService
	Media      *services.MediaService
	Generator  *services.GeneratorService

	opts Options
	api  routes.Handlers
}

// New builds every component on top of pool. ctx is only used to set up
// the storage disk.
func New(ctx context.Context, pool *database.Pool, opts Options) (*Container, error) {
	if opts.Disk == nil {
		disk, err := storage.FromConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: storage: %w", err)
		}
		opts.Disk = disk
	}
	if opts.Workers <= 0 {
		opts.Workers = config.HTTPWorkers()
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = config.MonitorSweepInterval()
	}
	if opts.GeneratorInterval <= 0 {
		opts.GeneratorInterval = config.GeneratorInterval()
	}
	if opts.GRPCPort == "" {
		opts.GRPCPort = config.GRPCPort()
	}

	c := &Container{
		Pool:      pool,
		Bus:       event.New(),
		Hub:       ws.NewHub(),
		Scheduler: schedule.New(),
		Disk:      opts.Disk,
		opts:      opts,
	}

	categoryRepo := repositories.NewCategoryRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	userRepo := repositories.NewUserRepository(pool)
	logRepo := repositories.NewLogRepository(pool)
	monitoredRepo := repositories.NewMonitoredUserRepository(pool)
	statsRepo := repositories.NewStatsRepository(pool)

	c.Monitor = services.NewMonitorService(logRepo, userRepo, monitoredRepo, c.Bus)
	c.Activity = services.NewActivityService(logRepo, c.Monitor, c.Bus)
	c.Products = services.NewProductService(productRepo, categoryRepo, c.Activity)
	c.Categories = services.NewCategoryService(categoryRepo, c.Activity)
	c.Auth = services.NewAuthService(userRepo)
	c.Stats = services.NewStatsService(statsRepo, productRepo)
	c.Media = services.NewMediaService(opts.Disk)
	c.Generator = services.NewGeneratorService(c.Products, categoryRepo)

	schema, err := graphql.NewSchema(graphql.Resolvers{
		Products:   c.Products,
		Categories: c.Categories,
		Monitor:    c.Monitor,
		Activity:   c.Activity,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: graphql schema: %w", err)
	}

	c.api = routes.Handlers{
		Products:   controllers.NewProductController(c.Products),
		Categories: controllers.NewCategoryController(c.Categories),
		Auth:       controllers.NewAuthController(c.Auth),
		Monitor:    controllers.NewMonitorController(c.Monitor),
		Stats:      controllers.NewStatsController(c.Stats),
		Generator:  controllers.NewGeneratorController(c.Generator),
		Media:      controllers.NewMediaController(c.Media),
		Activity:   controllers.NewActivityController(c.Activity, c.Hub),
		GraphQL:    graphql.Handler(schema),
	}

	c.listen()
	c.schedule()
	return c, nil
}

// feedMessage is one frame on the live activity websocket.
type feedMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func (c *Container) listen() {
	for _, name := range []string{services.EventActivityRecorded, services.EventMonitorPromoted} {
		name := name
		c.Bus.Listen(name, func(payload any) {
			if err := c.Hub.BroadcastJSON(feedMessage{Type: name, Data: payload}); err != nil {
				logger.Warn("bootstrap: feed encode failed", "event", name, "error", err)
			}
		})
	}
}

func (c *Container) schedule() {
	c.Scheduler.Interval(c.opts.SweepInterval).
		Name("monitor:sweep").
		WithoutOverlapping().
		Run(func(ctx context.Context) { c.Monitor.Sweep(ctx) })

	c.Scheduler.Interval(c.opts.GeneratorInterval).
		Name("generator").
		WithoutOverlapping().
		Run(c.Generator.Tick)
}

// Application assembles the HTTP application: routes, the websocket hub,
// the scheduler and, when GRPC_PORT is set, the gRPC health server.
func (c *Container) Application() *app.Application {
	a := app.New().
		Workers(c.opts.Workers).
		CORS(middleware.CORSOptionsFromConfig()).
		Routes(routes.API(c.api)).
		Background(func(ctx context.Context) { go c.Hub.Run(ctx) }).
		Background(c.Scheduler.Start).
		OnShutdown(c.Scheduler.Wait).
		OnShutdown(c.Bus.Wait)

	if c.opts.GRPCPort != "" {
		health := grpc.New(c.Pool.Ping)
		addr := net.JoinHostPort(config.AppHost(), c.opts.GRPCPort)
		a.Background(func(context.Context) {
			if err := health.Start(addr); err != nil {
				logger.Error("bootstrap: gRPC health server not started", "error", err)
			}
		}).OnShutdown(health.Stop)
	}
	return a
}
