package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/app/bootstrap"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

// monitorContainer builds the services with a throwaway local disk, since
// the monitor commands never touch media.
func monitorContainer(cmd *cobra.Command) (*bootstrap.Container, func(), error) {
	pool, err := openPool()
	if err != nil {
		return nil, nil, err
	}
	disk, err := storage.NewLocal(os.TempDir(), "")
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	c, err := bootstrap.New(cmd.Context(), pool, bootstrap.Options{Disk: disk})
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return c, func() { pool.Close() }, nil
}

// catalog monitor:sweep
var monitorSweepCmd = &cobra.Command{
	Use:   "monitor:sweep",
	Short: "Run one monitoring sweep over the trailing window",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closeFn, err := monitorContainer(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		res := c.Monitor.Sweep(cmd.Context())
		if res.Err != nil {
			return res.Err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Evaluated %d actor(s): %d promoted, %d without a user row, %d failed\n",
			res.Actors, len(res.Promoted), len(res.Missing), res.Failures)
		for _, id := range res.Promoted {
			fmt.Fprintf(cmd.OutOrStdout(), "  • promoted user %d\n", id)
		}
		return nil
	},
}

// catalog monitor:clear
var monitorClearCmd = &cobra.Command{
	Use:   "monitor:clear",
	Short: "Remove every user from the monitored set",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closeFn, err := monitorContainer(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		n, err := c.Monitor.ClearMonitored(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d monitored user(s)\n", n)
		return nil
	},
}
