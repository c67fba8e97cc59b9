package config

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/706f6c6c7578/enigma/internal/alphabet"
	"github.com/706f6c6c7578/enigma/internal/permutation"
	"github.com/706f6c6c7578/enigma/internal/rotor"
)

// File is the YAML form of a machine description.
type File struct {
	// Alphabet is "C1-C2" or an explicit symbol sequence. Defaults to
	// A-Z when Builtin is set.
	Alphabet string `yaml:"alphabet"`

	Slots int `yaml:"slots"`
	Pawls int `yaml:"pawls"`

	// Builtin starts the catalog from the historical rotor set.
	Builtin bool `yaml:"builtin,omitempty"`

	Rotors []RotorSpec `yaml:"rotors"`
}

// RotorSpec describes one rotor. Exactly one of Cycles and Wiring is set.
type RotorSpec struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"` // moving | fixed | reflector
	Notches string `yaml:"notches,omitempty"`
	Cycles  string `yaml:"cycles,omitempty"`
	Wiring  string `yaml:"wiring,omitempty"`
}

// ParseYAML parses the YAML format.
func ParseYAML(data []byte) (*Setup, error) {
	var f File
	if err := yaml.Unmarshal(norm.NFC.Bytes(data), &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return f.Setup()
}

// Setup builds the machine description f stands for.
func (f *File) Setup() (*Setup, error) {
	spec := f.Alphabet
	if spec == "" {
		if !f.Builtin {
			return nil, fmt.Errorf("%w: alphabet missing", ErrFormat)
		}
		spec = alphabet.Upper.String()
	}
	alpha, err := alphabet.Parse(spec)
	if err != nil {
		return nil, err
	}

	var rotors []*rotor.Rotor
	if f.Builtin {
		c, err := rotor.Builtin(alpha)
		if err != nil {
			return nil, err
		}
		rotors = c.Rotors()
	}
	for _, rs := range f.Rotors {
		r, err := rs.build(alpha)
		if err != nil {
			return nil, err
		}
		rotors = append(rotors, r)
	}
	catalog, err := rotor.NewCatalog(rotors...)
	if err != nil {
		return nil, err
	}

	s := &Setup{Alphabet: alpha, Slots: f.Slots, Pawls: f.Pawls, Catalog: catalog}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (rs RotorSpec) build(alpha alphabet.Alphabet) (*rotor.Rotor, error) {
	if rs.Name == "" {
		return nil, fmt.Errorf("%w: rotor without a name", ErrFormat)
	}
	kind, err := rotor.ParseKind(rs.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: rotor %s: %w", ErrFormat, rs.Name, err)
	}

	var perm *permutation.Permutation
	switch {
	case rs.Cycles != "" && rs.Wiring != "":
		return nil, fmt.Errorf("%w: rotor %s has both cycles and wiring", ErrFormat, rs.Name)
	case rs.Wiring != "":
		perm, err = permutation.FromWiring(rs.Wiring, alpha)
	default:
		perm, err = permutation.Parse(rs.Cycles, alpha)
	}
	if err != nil {
		return nil, fmt.Errorf("rotor %s: %w", rs.Name, err)
	}
	return rotor.New(rs.Name, kind, perm, rs.Notches)
}
