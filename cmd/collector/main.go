package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"storereviews/internal/adapters/appstore"
	"storereviews/internal/adapters/observability"
	"storereviews/internal/adapters/playstore"
	"storereviews/internal/app"
	"storereviews/internal/shared"
)

var version = "dev" // set via -ldflags "-X main.version=..."

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	cfg := shared.Load()

	root := &cobra.Command{
		Use:          "collector",
		Short:        "Export store reviews for a list of app listings",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = observability.NewCLILogger(cfg.AppEnv, verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCmd(cfg))
	root.AddCommand(newVersionCmd())
	return root
}

func newRunCmd(cfg shared.Config) *cobra.Command {
	var (
		targetsPath string
		outPath     string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch reviews for every target and write one JSON envelope per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := LoadTargets(targetsPath)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("open output: %w", err)
				}
				defer f.Close()
				out = f
			}

			play := playstore.New(cfg.PlayBase, cfg.UpstreamTimeout, cfg.UpstreamRPS)
			apps := appstore.New(cfg.AppsBase, cfg.AppleAPIBase, cfg.UpstreamTimeout, cfg.UpstreamRPS)
			svc := app.NewCollectionService(app.NewReviewService(play, apps), workers)

			log.Info().
				Str("targets", targetsPath).
				Int("count", len(targets)).
				Int("workers", workers).
				Msg("collector starting")

			failed, err := svc.Collect(cmd.Context(), targets, out)
			if err != nil {
				return err
			}
			log.Info().Int("ok", len(targets)-failed).Int("failed", failed).Msg("collection completed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetsPath, "targets", "t", "targets.yaml", "YAML file listing store URLs")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().IntVarP(&workers, "workers", "w", cfg.CollectWorkers, "targets fetched concurrently")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the collector version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "collector %s\n", version)
		},
	}
}
