// SPDX-License-Identifier: EPL-2.0

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/convreverb"
	"github.com/ik5/convreverb/internal/config"
	"github.com/ik5/convreverb/internal/logging"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:     "convreverb [flags] <dry> <impulse> <output>",
		Short:   "Apply a convolution reverb to a WAV recording",
		Version: version,
		Long: `convreverb convolves a dry recording with an impulse response and writes
the result as a mono 16-bit WAV file.

The dry signal and impulse may be WAV, AIFF, MP3 or Ogg Vorbis. Every flag can
also be set in a YAML file (--config) or through CONVREVERB_* environment
variables, e.g. CONVREVERB_WORKERS=4.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arity is fine; from here on errors are not usage errors.
			cmd.SilenceUsage = true

			cfg, err := config.Load(cmd.Flags(), configFile)
			if err != nil {
				return err
			}

			log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			return convreverb.RenderFile(cmd.Context(), args[0], args[1], args[2], options(cfg, log))
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func options(cfg config.Config, log *slog.Logger) convreverb.Options {
	workers := cfg.Workers
	if workers == 0 {
		workers = -1
	}

	return convreverb.Options{
		Workers:     workers,
		Progress:    cfg.Progress,
		Diagnostics: cfg.Diagnostics,
		Strict:      cfg.Strict,
		MatchRate:   cfg.MatchRate,
		Logger:      log,
	}
}
