// Package config loads machine descriptions: the alphabet, the number of
// rotor slots and pawls, and the catalog of available rotors.
//
// Two formats are understood. The line format (any extension other than
// .yaml/.yml) looks like
//
//	A-Z
//	5 3
//	I MQ      (AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)
//	Beta N    (ALBEVFCYODJWUGNMQTZSKPR) (HIX)
//	B R       (AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP)
//	          (RX) (SZ) (TV)
//
// where the type field is M followed by the notch symbols, N for a fixed
// rotor or R for a reflector. The YAML format is described by File.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/706f6c6c7578/enigma/internal/alphabet"
	"github.com/706f6c6c7578/enigma/internal/machine"
	"github.com/706f6c6c7578/enigma/internal/rotor"
)

var ErrFormat = errors.New("configuration file not in the right format")

// Setup is everything needed to build machines of one kind. It is
// read-only once loaded and may be shared between goroutines.
type Setup struct {
	Alphabet alphabet.Alphabet
	Slots    int
	Pawls    int
	Catalog  *rotor.Catalog
}

// NewMachine returns a fresh machine drawing on s.Catalog.
func (s *Setup) NewMachine() (*machine.Machine, error) {
	return machine.New(s.Alphabet, s.Slots, s.Pawls, s.Catalog)
}

func (s *Setup) validate() error {
	_, err := s.NewMachine()
	return err
}

// Historical returns the built-in rotor set on A-Z with the five slots and
// three pawls of the naval M4.
func Historical() (*Setup, error) {
	c, err := rotor.Builtin(alphabet.Upper)
	if err != nil {
		return nil, err
	}
	return &Setup{Alphabet: alphabet.Upper, Slots: 5, Pawls: 3, Catalog: c}, nil
}

// Load reads the configuration at path, choosing the format by extension.
func Load(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	var s *Setup
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		s, err = ParseYAML(data)
	default:
		s, err = ParseConf(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
