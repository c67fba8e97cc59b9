package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/706f6c6c7578/enigma/internal/session"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Builtin bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run CONFIG [INPUT [OUTPUT]]",
		Short: "Encipher or decipher a message stream",
		Long: `Configure a machine from CONFIG and run the messages in INPUT through it,
writing the results to OUTPUT. INPUT and OUTPUT default to standard input
and output. With --builtin, CONFIG is omitted and the historical rotor set
is used.

Example:
  enigma run default.conf messages.in
  echo "HELLO" | enigma run --builtin`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.Builtin {
				return cobra.MaximumNArgs(2)(cmd, args)
			}
			return cobra.RangeArgs(1, 3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMessages(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Builtin, "builtin", false, "use the built-in historical rotors instead of CONFIG")

	return cmd
}

func runMessages(cmd *cobra.Command, opts *RunOptions, args []string) (err error) {
	log := opts.Logger()

	var configPath string
	if !opts.Builtin {
		configPath, args = args[0], args[1:]
	}
	setup, err := loadSetup(configPath, opts.Builtin)
	if err != nil {
		return err
	}
	log.Debug("configuration loaded", "path", configPath, "rotors", setup.Catalog.Len(),
		"slots", setup.Slots, "pawls", setup.Pawls)

	var in io.Reader = cmd.InOrStdin()
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("could not open %s", args[0]), err)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = cmd.OutOrStdout()
	if len(args) > 1 {
		path := args[1]
		f, cerr := os.Create(path)
		if cerr != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("could not open %s", path), cerr)
		}
		w := bufio.NewWriter(f)
		defer func() {
			werr := w.Flush()
			if cerr := f.Close(); werr == nil {
				werr = cerr
			}
			if err == nil && werr != nil {
				err = WrapExitError(ExitFailure, fmt.Sprintf("could not write %s", path), werr)
			}
		}()
		out = w
	}

	s, err := session.New(setup, log)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build machine", err)
	}
	if err := s.Process(cmd.Context(), in, out); err != nil {
		return WrapExitError(ExitFailure, "conversion failed", err)
	}
	return nil
}
