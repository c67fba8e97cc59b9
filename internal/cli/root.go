// Package cli implements the enigma command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/706f6c6c7578/enigma/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the enigma CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "enigma",
		Short: "Rotor cipher machine simulator",
		Long: `Simulate a rotor cipher machine: a reflector, fixed and moving rotors
and a plugboard, configured from a machine description file.

Messages are read line by line. A line starting with '*' keys the machine:

  * B Beta III IV I AXLE (HQ) (EX) (IP) (TR) (BY)

and every other line is enciphered and printed in groups of five.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewRotorsCommand(opts))

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger returns the logger configured for this invocation.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		o.logger = newLogger(io.Discard, false)
	}
	return o.logger
}

// loadSetup reads the machine description at path, or returns the
// historical one when builtin is set.
func loadSetup(path string, builtin bool) (*config.Setup, error) {
	if builtin {
		return config.Historical()
	}
	s, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, WrapExitError(ExitCommandError, "configuration not found", err)
	}
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to load configuration", err)
	}
	return s, nil
}
