// Package alphabet maps the symbols a machine works on to the indices
// its permutations operate on.
package alphabet

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidSymbol   = errors.New("symbol not in alphabet")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidAlphabet = errors.New("invalid alphabet")
)

// Alphabet is an ordered set of distinct symbols indexed from 0.
type Alphabet interface {
	Size() int
	Contains(r rune) bool
	Index(r rune) (int, error)
	Symbol(i int) (rune, error)
	String() string
}

// Upper is the 26 letter alphabet A-Z.
var Upper = Range{first: 'A', last: 'Z'}

// Range is the contiguous run of code points from first to last inclusive.
type Range struct {
	first, last rune
}

func NewRange(first, last rune) (Range, error) {
	if last < first {
		return Range{}, fmt.Errorf("%w: range %c-%c is reversed", ErrInvalidAlphabet, first, last)
	}
	return Range{first: first, last: last}, nil
}

func (a Range) Size() int {
	return int(a.last-a.first) + 1
}

func (a Range) Contains(r rune) bool {
	return r >= a.first && r <= a.last
}

func (a Range) Index(r rune) (int, error) {
	if !a.Contains(r) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, r)
	}
	return int(r - a.first), nil
}

func (a Range) Symbol(i int) (rune, error) {
	if i < 0 || i >= a.Size() {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, a.Size())
	}
	return a.first + rune(i), nil
}

func (a Range) String() string {
	return fmt.Sprintf("%c-%c", a.first, a.last)
}

// Sequence is an alphabet given by an explicit ordering of symbols.
type Sequence struct {
	symbols []rune
	index   map[rune]int
}

func NewSequence(symbols string) (*Sequence, error) {
	if symbols == "" {
		return nil, fmt.Errorf("%w: empty sequence", ErrInvalidAlphabet)
	}
	s := &Sequence{index: make(map[rune]int, utf8.RuneCountInString(symbols))}
	for _, r := range symbols {
		if _, dup := s.index[r]; dup {
			return nil, fmt.Errorf("%w: %q repeated", ErrInvalidAlphabet, r)
		}
		s.index[r] = len(s.symbols)
		s.symbols = append(s.symbols, r)
	}
	return s, nil
}

func (s *Sequence) Size() int {
	return len(s.symbols)
}

func (s *Sequence) Contains(r rune) bool {
	_, ok := s.index[r]
	return ok
}

func (s *Sequence) Index(r rune) (int, error) {
	i, ok := s.index[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, r)
	}
	return i, nil
}

func (s *Sequence) Symbol(i int) (rune, error) {
	if i < 0 || i >= len(s.symbols) {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(s.symbols))
	}
	return s.symbols[i], nil
}

func (s *Sequence) String() string {
	return string(s.symbols)
}

// Parse reads an alphabet description: either "C1-C2" for a range or an
// explicit sequence of symbols. Whitespace is ignored.
func Parse(spec string) (Alphabet, error) {
	spec = strings.Join(strings.Fields(spec), "")
	runes := []rune(spec)
	if strings.ContainsRune(spec, '-') {
		if len(runes) != 3 || runes[1] != '-' {
			return nil, fmt.Errorf("%w: malformed range %q", ErrInvalidAlphabet, spec)
		}
		r, err := NewRange(runes[0], runes[2])
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	s, err := NewSequence(spec)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Equal reports whether a and b hold the same symbols in the same order.
func Equal(a, b Alphabet) bool {
	if a.Size() != b.Size() {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		x, _ := a.Symbol(i)
		y, _ := b.Symbol(i)
		if x != y {
			return false
		}
	}
	return true
}
