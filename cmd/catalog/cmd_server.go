package main

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/app/bootstrap"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/logger"
)

// catalog serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server, the monitoring sweep and the live feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pool, err := openPool()
		if err != nil {
			return err
		}
		defer pool.Close()

		c, err := bootstrap.New(ctx, pool, bootstrap.Options{})
		if err != nil {
			return err
		}
		for _, task := range c.Scheduler.List() {
			logger.Info("scheduled task", "task", task)
		}

		addr := net.JoinHostPort(config.AppHost(), config.AppPort())
		return c.Application().Run(ctx, addr)
	},
}

// catalog route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		// The route table is built without touching the database.
		c, err := bootstrap.New(cmd.Context(), nil, bootstrap.Options{})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range c.Application().RouteTable() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
