// Command mobius samples a Möbius strip and prints its surface area and the
// length of its v = +w/2 boundary ring.
//
// Usage:
//
//	go run ./cmd/mobius
//	go run ./cmd/mobius --radius 5 --width 1 --resolution 400
//	go run ./cmd/mobius --config strip.yaml --verbose
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/notargets/mobius/config"
	"github.com/notargets/mobius/surface"
	"github.com/spf13/cobra"
)

func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// execute runs cmd and reports any error, including flag parsing errors
// raised before RunE, on the command's error stream.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		verbose bool
		cfg     = config.Default()
	)

	cmd := &cobra.Command{
		Use:           "mobius",
		Short:         "Compute the surface area and edge length of a Möbius strip",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			if cfgPath != "" {
				loaded, err := config.Read(cfgPath)
				if err != nil {
					return err
				}
				logger.Debug("config read", "path", cfgPath)
				// Flags given explicitly override the file.
				flags := cmd.Flags()
				if flags.Changed("radius") {
					loaded.Radius = cfg.Radius
				}
				if flags.Changed("width") {
					loaded.Width = cfg.Width
				}
				if flags.Changed("resolution") {
					loaded.Resolution = cfg.Resolution
				}
				cfg = loaded
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, logger, cfg, verbose)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "YAML file with radius, width and resolution")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().Float64VarP(&cfg.Radius, "radius", "R", cfg.Radius, "Centerline radius R")
	cmd.Flags().Float64VarP(&cfg.Width, "width", "w", cfg.Width, "Strip width w")
	cmd.Flags().IntVarP(&cfg.Resolution, "resolution", "n", cfg.Resolution, "Samples per parameter n")
	return cmd
}

func run(cmd *cobra.Command, logger *slog.Logger, cfg config.Config, verbose bool) error {
	start := time.Now()
	s, err := surface.New(cfg.Radius, cfg.Width, cfg.Resolution)
	if err != nil {
		return err
	}
	logger.Debug("grid built",
		"radius", cfg.Radius, "width", cfg.Width, "n", cfg.Resolution,
		"elapsed", time.Since(start))
	if verbose {
		fmt.Fprint(cmd.ErrOrStderr(), s)
	}

	area, err := s.SurfaceArea()
	if err != nil {
		return fmt.Errorf("integrating area: %w", err)
	}
	edge := s.EdgeLength()
	logger.Debug("measurements done", "elapsed", time.Since(start))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Surface area: %.6f\n", area)
	fmt.Fprintf(out, "Edge length:  %.6f\n", edge)
	return nil
}
