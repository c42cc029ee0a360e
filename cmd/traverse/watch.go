package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nvara/traverse/internal/daemon"
	"github.com/nvara/traverse/internal/logger"
)

// newWatchCmd runs the endpoint-store watcher as a long-lived process so
// catalog edits made by other windows or editors propagate into running
// sessions. One watcher per data directory, enforced through the PID file.
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the endpoint catalog and reload it on change",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer logger.Shutdown()

			pidPath, err := daemon.PIDPath(a.cfg.DataDir)
			if err != nil {
				return err
			}
			pidFile := daemon.NewPIDFile(pidPath)
			if err := pidFile.Write(); err != nil {
				return err
			}
			defer pidFile.Remove()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Get().Info("watching endpoint store", "path", a.store.Path())
			err = a.store.Watch(ctx, a.registry)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop a running watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer logger.Shutdown()

			pidPath, err := daemon.PIDPath(a.cfg.DataDir)
			if err != nil {
				return err
			}
			pidFile := daemon.NewPIDFile(pidPath)

			running, err := pidFile.IsRunning()
			if err != nil {
				return err
			}
			if !running {
				pidFile.Remove()
				fmt.Fprintln(cmd.OutOrStdout(), "watcher is not running")
				return nil
			}
			return pidFile.Stop()
		},
	})

	return cmd
}
