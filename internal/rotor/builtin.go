package rotor

import (
	"fmt"

	"github.com/706f6c6c7578/enigma/internal/alphabet"
	"github.com/706f6c6c7578/enigma/internal/permutation"
)

type wiring struct {
	name    string
	kind    Kind
	wiring  string
	notches string
}

// Wirings of the Wehrmacht and Kriegsmarine machines, in catalog order.
var historical = []wiring{
	{"I", Moving, "EKMFLGDQVZNTOWYHXUSPAIBRCJ", "Q"},
	{"II", Moving, "AJDKSIRUXBLHWTMCQGZNPYFVOE", "E"},
	{"III", Moving, "BDFHJLCPRTXVZNYEIWGAKMUSQO", "V"},
	{"IV", Moving, "ESOVPZJAYQUIRHXLNFTGKDCMWB", "J"},
	{"V", Moving, "VZBRGITYUPSDNHLXAWMJQOFECK", "Z"},
	{"VI", Moving, "JPGVOUMFYQBENHZRDKASXLICTW", "ZM"},
	{"VII", Moving, "NZJHGRCXMYSWBOUFAIVLPEKQDT", "ZM"},
	{"VIII", Moving, "FKQHTLXOCBJSPDZRAMEWNIUYGV", "ZM"},
	{"Beta", Fixed, "LEYJVCNIXWPBQMDRTAKZGFUHOS", ""},
	{"Gamma", Fixed, "FSOKANUERHMBTIYCWLQPZXVGJD", ""},
	{"A", Reflecting, "EJMZALYXVBWFCRQUONTSPIKHGD", ""},
	{"B", Reflecting, "YRUHQSLDPXNGOKMIEBFZCWVJAT", ""},
	{"C", Reflecting, "FVPJIAOYEDRZXWGCTKUQSBNMHL", ""},
	{"B-Thin", Reflecting, "ENKQAUYWJICOPBLMDXZVFTHRGS", ""},
	{"C-Thin", Reflecting, "RDOBJNTKVEHMLFCWZAXGYIPSUQ", ""},
}

// Builtin returns the historical rotor set. alpha must be A-Z.
func Builtin(alpha alphabet.Alphabet) (*Catalog, error) {
	if !alphabet.Equal(alpha, alphabet.Upper) {
		return nil, fmt.Errorf("builtin rotors need alphabet %s, got %s", alphabet.Upper, alpha)
	}
	rotors := make([]*Rotor, 0, len(historical))
	for _, w := range historical {
		perm, err := permutation.FromWiring(w.wiring, alpha)
		if err != nil {
			return nil, fmt.Errorf("rotor %s: %w", w.name, err)
		}
		r, err := New(w.name, w.kind, perm, w.notches)
		if err != nil {
			return nil, err
		}
		rotors = append(rotors, r)
	}
	return NewCatalog(rotors...)
}

// New constructs a rotor of the given kind. notches is ignored unless
// kind is Moving.
func New(name string, kind Kind, perm *permutation.Permutation, notches string) (*Rotor, error) {
	switch kind {
	case Moving:
		return NewMoving(name, perm, notches)
	case Fixed:
		return NewFixed(name, perm), nil
	case Reflecting:
		return NewReflector(name, perm)
	default:
		return nil, fmt.Errorf("rotor %s: unknown kind %v", name, kind)
	}
}
