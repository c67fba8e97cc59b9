package config

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/706f6c6c7578/enigma/internal/alphabet"
	"github.com/706f6c6c7578/enigma/internal/permutation"
	"github.com/706f6c6c7578/enigma/internal/rotor"
)

// ParseConf parses the line format.
func ParseConf(text string) (*Setup, error) {
	lines := strings.Split(norm.NFC.String(text), "\n")
	next := func() (string, bool) {
		for len(lines) > 0 {
			l := strings.TrimSpace(lines[0])
			lines = lines[1:]
			if l != "" {
				return l, true
			}
		}
		return "", false
	}

	alphaLine, ok := next()
	if !ok {
		return nil, fmt.Errorf("%w: configuration file truncated", ErrFormat)
	}
	alpha, err := alphabet.Parse(alphaLine)
	if err != nil {
		return nil, err
	}

	geomLine, ok := next()
	if !ok {
		return nil, fmt.Errorf("%w: configuration file truncated", ErrFormat)
	}
	geom := strings.Fields(geomLine)
	if len(geom) != 2 {
		return nil, fmt.Errorf("%w: expected slot and pawl counts, got %q", ErrFormat, geomLine)
	}
	slots, err := strconv.Atoi(geom[0])
	if err != nil {
		return nil, fmt.Errorf("%w: slot count %q", ErrFormat, geom[0])
	}
	pawls, err := strconv.Atoi(geom[1])
	if err != nil {
		return nil, fmt.Errorf("%w: pawl count %q", ErrFormat, geom[1])
	}

	toks, err := tokenize(strings.Join(lines, " "))
	if err != nil {
		return nil, err
	}
	rotors, err := readRotors(toks, alpha)
	if err != nil {
		return nil, err
	}
	catalog, err := rotor.NewCatalog(rotors...)
	if err != nil {
		return nil, err
	}

	s := &Setup{Alphabet: alpha, Slots: slots, Pawls: pawls, Catalog: catalog}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

type token struct {
	text  string
	cycle bool
}

// tokenize splits rotor descriptions into words and parenthesised cycles.
// Cycles may contain spaces.
func tokenize(s string) ([]token, error) {
	var toks []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		switch r := rs[i]; {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			j := i + 1
			for j < len(rs) && rs[j] != ')' {
				if rs[j] == '(' {
					return nil, fmt.Errorf("%w: nested '(' in rotor description", ErrFormat)
				}
				j++
			}
			if j == len(rs) {
				return nil, fmt.Errorf("%w: unbalanced parentheses", ErrFormat)
			}
			toks = append(toks, token{text: string(rs[i : j+1]), cycle: true})
			i = j + 1
		case r == ')':
			return nil, fmt.Errorf("%w: unbalanced parentheses", ErrFormat)
		default:
			j := i
			for j < len(rs) && !unicode.IsSpace(rs[j]) && rs[j] != '(' && rs[j] != ')' {
				j++
			}
			toks = append(toks, token{text: string(rs[i:j])})
			i = j
		}
	}
	return toks, nil
}

// readRotors consumes NAME TYPE CYCLE... groups.
func readRotors(toks []token, alpha alphabet.Alphabet) ([]*rotor.Rotor, error) {
	var rotors []*rotor.Rotor
	for len(toks) > 0 {
		if len(toks) < 3 || toks[0].cycle || toks[1].cycle || !toks[2].cycle {
			return nil, fmt.Errorf("%w: bad rotor description near %q", ErrFormat, toks[0].text)
		}
		name, typ := toks[0].text, toks[1].text
		toks = toks[2:]
		var cycles []string
		for len(toks) > 0 && toks[0].cycle {
			cycles = append(cycles, toks[0].text)
			toks = toks[1:]
		}
		r, err := newRotor(name, typ, strings.Join(cycles, " "), alpha)
		if err != nil {
			return nil, err
		}
		rotors = append(rotors, r)
	}
	return rotors, nil
}

func newRotor(name, typ, cycles string, alpha alphabet.Alphabet) (*rotor.Rotor, error) {
	perm, err := permutation.Parse(cycles, alpha)
	if err != nil {
		return nil, fmt.Errorf("rotor %s: %w", name, err)
	}
	switch {
	case strings.HasPrefix(typ, "M"):
		return rotor.NewMoving(name, perm, typ[1:])
	case typ == "N":
		return rotor.NewFixed(name, perm), nil
	case typ == "R":
		return rotor.NewReflector(name, perm)
	}
	return nil, fmt.Errorf("%w: rotor %s has unknown type %q", ErrFormat, name, typ)
}
