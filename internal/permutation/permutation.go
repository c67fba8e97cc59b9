// Package permutation implements permutations of an alphabet's index
// space written in cycle notation, e.g. "(AELTPHQXRU) (BKNW) (S)".
package permutation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/706f6c6c7578/enigma/internal/alphabet"
)

var (
	ErrMalformedCycle   = errors.New("malformed cycle")
	ErrAlphabetMismatch = errors.New("alphabet mismatch")
)

// Permutation is immutable once built. Symbols that appear in no cycle
// map to themselves.
type Permutation struct {
	alpha  alphabet.Alphabet
	cycles [][]rune
	fwd    []int
	inv    []int
}

// Parse builds the permutation described by cycles over alpha. Whitespace
// between and inside cycles is ignored. Every symbol must belong to alpha
// and may appear at most once overall.
func Parse(cycles string, alpha alphabet.Alphabet) (*Permutation, error) {
	var parsed [][]rune
	var cur []rune
	open := false
	for _, r := range cycles {
		switch {
		case unicode.IsSpace(r):
		case r == '(':
			if open {
				return nil, fmt.Errorf("%w: nested '(' in %q", ErrMalformedCycle, cycles)
			}
			open, cur = true, nil
		case r == ')':
			if !open {
				return nil, fmt.Errorf("%w: unmatched ')' in %q", ErrMalformedCycle, cycles)
			}
			open = false
			if len(cur) > 0 {
				parsed = append(parsed, cur)
			}
		case !open:
			return nil, fmt.Errorf("%w: %q outside a cycle in %q", ErrMalformedCycle, r, cycles)
		default:
			cur = append(cur, r)
		}
	}
	if open {
		return nil, fmt.Errorf("%w: unterminated cycle in %q", ErrMalformedCycle, cycles)
	}
	return fromCycles(parsed, alpha)
}

// FromWiring builds the permutation that sends the i-th symbol of alpha to
// the i-th symbol of wiring, the way rotor wirings are usually tabulated.
func FromWiring(wiring string, alpha alphabet.Alphabet) (*Permutation, error) {
	to := []rune(wiring)
	if len(to) != alpha.Size() {
		return nil, fmt.Errorf("%w: wiring %q has %d symbols, alphabet has %d",
			ErrMalformedCycle, wiring, len(to), alpha.Size())
	}
	next := make([]int, len(to))
	used := make([]bool, len(to))
	for i, r := range to {
		j, err := alpha.Index(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCycle, err)
		}
		if used[j] {
			return nil, fmt.Errorf("%w: %q appears more than once in wiring %q", ErrMalformedCycle, r, wiring)
		}
		used[j] = true
		next[i] = j
	}

	var cycles [][]rune
	seen := make([]bool, len(next))
	for start := range next {
		if seen[start] {
			continue
		}
		var cycle []rune
		for i := start; !seen[i]; i = next[i] {
			seen[i] = true
			r, _ := alpha.Symbol(i)
			cycle = append(cycle, r)
		}
		cycles = append(cycles, cycle)
	}
	return fromCycles(cycles, alpha)
}

// Identity returns the permutation of alpha with no cycles.
func Identity(alpha alphabet.Alphabet) *Permutation {
	p, _ := fromCycles(nil, alpha)
	return p
}

func fromCycles(cycles [][]rune, alpha alphabet.Alphabet) (*Permutation, error) {
	n := alpha.Size()
	p := &Permutation{
		alpha:  alpha,
		cycles: cycles,
		fwd:    make([]int, n),
		inv:    make([]int, n),
	}
	for i := range p.fwd {
		p.fwd[i], p.inv[i] = i, i
	}

	seen := make(map[rune]bool)
	for _, cycle := range cycles {
		idx := make([]int, len(cycle))
		for k, r := range cycle {
			if seen[r] {
				return nil, fmt.Errorf("%w: %q appears more than once", ErrMalformedCycle, r)
			}
			seen[r] = true
			i, err := alpha.Index(r)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedCycle, err)
			}
			idx[k] = i
		}
		for k, i := range idx {
			j := idx[(k+1)%len(idx)]
			p.fwd[i] = j
			p.inv[j] = i
		}
	}
	return p, nil
}

func (p *Permutation) Alphabet() alphabet.Alphabet {
	return p.alpha
}

func (p *Permutation) Size() int {
	return p.alpha.Size()
}

// Wrap reduces i modulo the permutation size into [0, Size()).
func (p *Permutation) Wrap(i int) int {
	r := i % p.Size()
	if r < 0 {
		r += p.Size()
	}
	return r
}

// Permute returns the index that i maps to, after wrapping i.
func (p *Permutation) Permute(i int) int {
	return p.fwd[p.Wrap(i)]
}

// Invert is the inverse of Permute.
func (p *Permutation) Invert(i int) int {
	return p.inv[p.Wrap(i)]
}

func (p *Permutation) PermuteSymbol(r rune) (rune, error) {
	i, err := p.alpha.Index(r)
	if err != nil {
		return 0, err
	}
	return p.alpha.Symbol(p.fwd[i])
}

func (p *Permutation) InvertSymbol(r rune) (rune, error) {
	i, err := p.alpha.Index(r)
	if err != nil {
		return 0, err
	}
	return p.alpha.Symbol(p.inv[i])
}

// IsDerangement reports whether no index maps to itself.
func (p *Permutation) IsDerangement() bool {
	for i, j := range p.fwd {
		if i == j {
			return false
		}
	}
	return true
}

// String renders the permutation in cycle notation, as parsed.
func (p *Permutation) String() string {
	var b strings.Builder
	for i, cycle := range p.cycles {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('(')
		b.WriteString(string(cycle))
		b.WriteByte(')')
	}
	return b.String()
}
