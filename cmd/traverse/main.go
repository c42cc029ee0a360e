// Command traverse is a thin inspection CLI over the browsing core: it
// lists local and remote directories through the same path grammar the
// file manager uses, and manages the persisted endpoint catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nvara/traverse/internal/backend/local"
	"github.com/nvara/traverse/internal/config"
	"github.com/nvara/traverse/internal/domain"
	"github.com/nvara/traverse/internal/endpoint"
	"github.com/nvara/traverse/internal/logger"
	"github.com/nvara/traverse/internal/nav"
	"github.com/nvara/traverse/internal/pipeline"
	"github.com/nvara/traverse/internal/router"
)

var (
	cfgPath    string
	showHidden bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "traverse",
		Short:         "Browse local and remote storage through one addressing scheme",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")

	root.AddCommand(newLsCmd())
	root.AddCommand(newEndpointCmd())
	root.AddCommand(newRecentCmd())
	root.AddCommand(newWatchCmd())
	return root
}

// app bundles the wired core for one command invocation
type app struct {
	cfg      *config.Config
	registry *endpoint.Registry
	store    *endpoint.Store
	pipeline *pipeline.Pipeline
}

func setup() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logCfg := logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		File: logger.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			MaxBackups: cfg.Log.File.MaxBackups,
			Compress:   cfg.Log.File.Compress,
		},
	}
	if err := logger.Init(logCfg); err != nil {
		return nil, err
	}

	store := endpoint.NewStore(cfg.EndpointsFile)
	registry := endpoint.NewRegistry()
	profiles, err := store.Load()
	if err != nil {
		return nil, err
	}
	registry.ReplaceAll(profiles)

	r := router.New(registry, local.New())
	return &app{
		cfg:      cfg,
		registry: registry,
		store:    store,
		pipeline: pipeline.New(r, cfg.ListTimeout),
	}, nil
}

func newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a directory (local path or remote:<endpoint>:<path>)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer logger.Shutdown()

			ctx := cmd.Context()
			show := showHidden || a.cfg.ShowHidden

			var path string
			var entries []domain.DirectoryEntry
			if len(args) == 0 {
				var loadErr *pipeline.LoadError
				path, entries, loadErr = a.pipeline.LoadInitial(ctx, show)
				if loadErr != nil {
					return loadErr
				}
			} else {
				path = args[0]
				var loadErr *pipeline.LoadError
				entries, loadErr = a.pipeline.Load(ctx, path, show)
				if loadErr != nil {
					if loadErr.Kind == pipeline.FailurePermissionDenied && loadErr.WellKnownDir {
						return fmt.Errorf("%s: access to %q is restricted; grant access or pick the folder manually", loadErr.Kind, loadErr.Segment)
					}
					return loadErr
				}
			}

			if store, err := nav.NewRecentStore(a.cfg.DataDir, nav.DefaultRecentCap); err == nil {
				store.Touch(path)
				store.Close()
			}

			domain.SortEntries(entries)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				kind := "file"
				if e.IsDir() {
					kind = "dir"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\n", kind, e.Name, e.Size)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVarP(&showHidden, "all", "a", false, "include hidden entries")
	return cmd
}

func newEndpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "Manage the persisted endpoint catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer logger.Shutdown()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range a.registry.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Address(), p.Username)
			}
			return w.Flush()
		},
	})

	add := &cobra.Command{
		Use:   "add <name> <host> <port> <username> <credential>",
		Short: "Add an endpoint profile",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer logger.Shutdown()

			port, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("%w: port %q", domain.ErrInvalidProfile, args[2])
			}

			profile := domain.EndpointProfile{
				Name:       args[0],
				Host:       args[1],
				Port:       port,
				Username:   args[3],
				Credential: args[4],
			}
			if err := a.registry.Register(profile); err != nil {
				return err
			}
			return a.store.Save(a.registry.List())
		},
	}
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Remove an endpoint profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer logger.Shutdown()

			a.registry.Remove(args[0])
			return a.store.Save(a.registry.List())
		},
	})

	return cmd
}

func newRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show recently visited locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer logger.Shutdown()

			store, err := nav.NewRecentStore(a.cfg.DataDir, nav.DefaultRecentCap)
			if err != nil {
				return err
			}
			defer store.Close()

			locations, err := store.List()
			if err != nil {
				return err
			}
			for _, loc := range locations {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", loc.VisitedAt.Local().Format("2006-01-02 15:04"), loc.Path)
			}
			return nil
		},
	}
}
