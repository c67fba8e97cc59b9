package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/706f6c6c7578/enigma/internal/config"
	"github.com/706f6c6c7578/enigma/internal/session"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Config   string
	Builtin  bool
	OutDir   string
	Parallel int
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch INPUT...",
		Short: "Convert several message files concurrently",
		Long: `Convert each INPUT file on its own machine and write the result to
OUT/<name>.out. All machines share one rotor catalog; each file must key
its machine with a setting line.

Example:
  enigma batch --config default.conf --out ./out day1.in day2.in`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Config == "" && !opts.Builtin {
				return NewExitError(ExitCommandError, "one of --config or --builtin is required")
			}
			return runBatch(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to machine description")
	cmd.Flags().BoolVar(&opts.Builtin, "builtin", false, "use the built-in historical rotors")
	cmd.Flags().StringVar(&opts.OutDir, "out", "", "output directory (required)")
	cmd.Flags().IntVar(&opts.Parallel, "parallel", runtime.NumCPU(), "maximum files converted at once")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runBatch(cmd *cobra.Command, opts *BatchOptions, inputs []string) error {
	runID := uuid.Must(uuid.NewV7()).String()
	log := opts.Logger().With("run_id", runID)

	outputs := make(map[string]string, len(inputs))
	for _, in := range inputs {
		name := outputName(in)
		if prev, dup := outputs[name]; dup {
			return NewExitError(ExitCommandError,
				fmt.Sprintf("%s and %s would both be written to %s", prev, in, name))
		}
		outputs[name] = in
	}

	setup, err := loadSetup(opts.Config, opts.Builtin)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("could not create %s", opts.OutDir), err)
	}

	log.Info("batch starting", "files", len(inputs), "parallel", opts.Parallel)
	g, ctx := errgroup.WithContext(cmd.Context())
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}
	for _, in := range inputs {
		in := in // per-iteration copy (go directive lowered to 1.21)
		g.Go(func() error {
			out := filepath.Join(opts.OutDir, outputName(in))
			if err := convertFile(ctx, setup, in, out, log); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			log.Info("file converted", "input", in, "output", out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return WrapExitError(ExitFailure, "batch failed", err)
	}
	log.Info("batch finished", "files", len(inputs))
	fmt.Fprintf(cmd.OutOrStdout(), "converted %d file(s) into %s\n", len(inputs), opts.OutDir)
	return nil
}

func outputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".out"
}

func convertFile(ctx context.Context, setup *config.Setup, inPath, outPath string, log *slog.Logger) (err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	s, err := session.New(setup, log.With("input", inPath))
	if err != nil {
		return err
	}
	return s.Process(ctx, in, out)
}
