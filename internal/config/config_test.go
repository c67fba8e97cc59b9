package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/706f6c6c7578/enigma/internal/alphabet"
	"github.com/706f6c6c7578/enigma/internal/machine"
	"github.com/706f6c6c7578/enigma/internal/permutation"
	"github.com/706f6c6c7578/enigma/internal/rotor"
)

const sampleDir = "../../testdata"

func TestLoadDefaultConf(t *testing.T) {
	s, err := Load(filepath.Join(sampleDir, "default.conf"))
	require.NoError(t, err)

	assert.Equal(t, 26, s.Alphabet.Size())
	assert.Equal(t, 5, s.Slots)
	assert.Equal(t, 3, s.Pawls)
	want := []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "Beta", "Gamma", "B", "C"}
	if diff := cmp.Diff(want, s.Catalog.Names()); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}

	b, ok := s.Catalog.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, "(AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP) (RX) (SZ) (TV)",
		b.Permutation().String())
	vi, ok := s.Catalog.Lookup("VI")
	require.True(t, ok)
	assert.Equal(t, "MZ", vi.Notches())

	m, err := s.NewMachine()
	require.NoError(t, err)
	require.NoError(t, m.InsertRotors([]string{"B", "Beta", "III", "IV", "I"}))
	require.NoError(t, m.SetRotors("AXLE"))
	p, err := permutation.Parse("(HQ) (EX) (IP) (TR) (BY)", s.Alphabet)
	require.NoError(t, err)
	require.NoError(t, m.SetPlugboard(p))
	out, err := m.ConvertString("FROM his shoulder Hiawatha")
	require.NoError(t, err)
	assert.Equal(t, "QVPQSOKOILPUBKJZPISFXDW", out)
}

func TestLoadYAML(t *testing.T) {
	s, err := Load(filepath.Join(sampleDir, "naval.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 17, s.Catalog.Len())

	bt, ok := s.Catalog.Lookup("bt")
	require.True(t, ok)
	assert.Equal(t, rotor.Reflecting, bt.Kind())

	wide, ok := s.Catalog.Lookup("wide")
	require.True(t, ok)
	assert.Equal(t, "(ALBEVFCYODJWUGNMQTZSKPR) (HIX)", wide.Permutation().String())

	m, err := s.NewMachine()
	require.NoError(t, err)
	require.NoError(t, m.InsertRotors([]string{"BT", "Wide", "III", "IV", "I"}))
	require.NoError(t, m.SetRotors("AXLE"))
	out, err := m.ConvertString("HELLO")
	require.NoError(t, err)
	assert.Equal(t, "FHVGJ", out)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.conf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "could not open")
}

func TestLoadPicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	conf := "ABCD\n2 1\nR R (AB) (CD)\nM MA (ABC)\n"
	path := filepath.Join(dir, "tiny.yml")
	require.NoError(t, os.WriteFile(path, []byte(conf), 0644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrFormat)

	path = filepath.Join(dir, "tiny.txt")
	require.NoError(t, os.WriteFile(path, []byte(conf), 0644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ABCD", s.Alphabet.String())
}

func TestParseConfSequenceAlphabet(t *testing.T) {
	s, err := ParseConf("ZYXW\n3 1\n\nR R (ZY)\n(XW)\nF N (Z)\nM MZX (ZYX)\n")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Alphabet.Size())
	assert.Equal(t, []string{"R", "F", "M"}, s.Catalog.Names())

	m, ok := s.Catalog.Lookup("M")
	require.True(t, ok)
	assert.Equal(t, "ZX", m.Notches())
}

func TestParseConfCycleWithSpaces(t *testing.T) {
	s, err := ParseConf("A-D\n2 1\nR R (A B) ( C D )\nM MA (ABC)\n")
	require.NoError(t, err)
	r, ok := s.Catalog.Lookup("R")
	require.True(t, ok)
	assert.True(t, r.Permutation().IsDerangement())
}

func TestParseConfErrors(t *testing.T) {
	tests := []struct {
		name string
		conf string
		err  error
	}{
		{"empty", "", ErrFormat},
		{"truncated", "A-Z\n", ErrFormat},
		{"bad geometry", "A-Z\n5\n", ErrFormat},
		{"non numeric", "A-Z\nfive 3\n", ErrFormat},
		{"reversed alphabet", "Z-A\n5 3\n", alphabet.ErrInvalidAlphabet},
		{"unbalanced", "A-D\n2 1\nR R (AB) (CD\n", ErrFormat},
		{"stray close", "A-D\n2 1\nR R (AB) CD)\n", ErrFormat},
		{"no cycles", "A-D\n2 1\nR R\n", ErrFormat},
		{"unknown type", "A-D\n2 1\nR X (AB) (CD)\n", ErrFormat},
		{"moving without notch", "A-D\n2 1\nR R (AB) (CD)\nM M (ABC)\n", rotor.ErrMissingNotch},
		{"reflector with fixed point", "A-D\n2 1\nR R (AB)\n", rotor.ErrNotDerangement},
		{"bad cycle", "A-D\n2 1\nR R (AB) (CA)\n", permutation.ErrMalformedCycle},
		{"duplicate rotor", "A-D\n2 1\nR R (AB) (CD)\nr R (AC) (BD)\n", rotor.ErrDuplicateRotor},
		{"one slot", "A-D\n1 0\nR R (AB) (CD)\n", machine.ErrBadGeometry},
		{"pawls too many", "A-D\n2 2\nR R (AB) (CD)\n", machine.ErrBadGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConf(tt.conf)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{"not yaml", "alphabet: [", ErrFormat},
		{"no alphabet", "slots: 2\npawls: 1\n", ErrFormat},
		{"bad kind", "alphabet: A-D\nslots: 2\npawls: 1\nrotors:\n  - {name: X, kind: spinning, cycles: (AB)}\n", ErrFormat},
		{"unnamed", "alphabet: A-D\nslots: 2\npawls: 1\nrotors:\n  - {kind: fixed, cycles: (AB)}\n", ErrFormat},
		{"both forms", "alphabet: A-D\nslots: 2\npawls: 1\nrotors:\n  - {name: X, kind: fixed, cycles: (AB), wiring: BADC}\n", ErrFormat},
		{"short wiring", "alphabet: A-D\nslots: 2\npawls: 1\nrotors:\n  - {name: X, kind: fixed, wiring: BAD}\n", permutation.ErrMalformedCycle},
		{"repeated wiring", "alphabet: A-D\nslots: 2\npawls: 1\nrotors:\n  - {name: X, kind: moving, notches: A, wiring: BBDC}\n", permutation.ErrMalformedCycle},
		{"builtin clash", "builtin: true\nslots: 5\npawls: 3\nrotors:\n  - {name: beta, kind: fixed, cycles: (AB)}\n", rotor.ErrDuplicateRotor},
		{"geometry", "builtin: true\nslots: 0\npawls: 0\n", machine.ErrBadGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestHistorical(t *testing.T) {
	s, err := Historical()
	require.NoError(t, err)
	assert.Equal(t, 5, s.Slots)
	assert.Equal(t, 3, s.Pawls)
	assert.Equal(t, 15, s.Catalog.Len())

	m, err := s.NewMachine()
	require.NoError(t, err)
	require.NoError(t, m.InsertRotors([]string{"B-Thin", "Beta", "III", "IV", "I"}))
	require.NoError(t, m.SetRotors("AXLE"))
	out, err := m.ConvertString("HELLO")
	require.NoError(t, err)
	assert.Equal(t, "FHVGJ", out)
}
