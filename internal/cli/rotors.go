package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/706f6c6c7578/enigma/internal/config"
)

// RotorsOptions holds flags for the rotors command.
type RotorsOptions struct {
	*RootOptions
	Builtin bool
}

type rotorInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Notches string `json:"notches,omitempty"`
	Cycles  string `json:"cycles"`
}

type catalogListing struct {
	Alphabet string      `json:"alphabet"`
	Slots    int         `json:"slots"`
	Pawls    int         `json:"pawls"`
	Rotors   []rotorInfo `json:"rotors"`
}

func (l catalogListing) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "alphabet %s, %d slots, %d pawls\n", l.Alphabet, l.Slots, l.Pawls)
	for _, r := range l.Rotors {
		fmt.Fprintf(&b, "%-8s %-9s %-4s %s\n", r.Name, r.Kind, r.Notches, r.Cycles)
	}
	return b.String()
}

// NewRotorsCommand creates the rotors command.
func NewRotorsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RotorsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rotors [CONFIG]",
		Short: "List the rotors a configuration provides",
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.Builtin {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			setup, err := loadSetup(path, opts.Builtin)
			if err != nil {
				return err
			}
			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return f.Success(listCatalog(setup))
		},
	}

	cmd.Flags().BoolVar(&opts.Builtin, "builtin", false, "list the built-in historical rotors")

	return cmd
}

func listCatalog(s *config.Setup) catalogListing {
	l := catalogListing{Alphabet: s.Alphabet.String(), Slots: s.Slots, Pawls: s.Pawls}
	for _, r := range s.Catalog.Rotors() {
		l.Rotors = append(l.Rotors, rotorInfo{
			Name:    r.Name(),
			Kind:    r.Kind().String(),
			Notches: r.Notches(),
			Cycles:  r.Permutation().String(),
		})
	}
	return l
}
