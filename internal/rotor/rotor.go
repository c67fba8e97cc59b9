// Package rotor models the wired wheels of a rotor machine: moving rotors
// that step, fixed rotors that do not, and the reflector that folds the
// signal back.
package rotor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/706f6c6c7578/enigma/internal/permutation"
)

var (
	ErrNotDerangement    = errors.New("reflector permutation is not a derangement")
	ErrMissingNotch      = errors.New("moving rotor needs at least one notch")
	ErrInvalidSetting    = errors.New("invalid rotor setting")
	ErrReflectorBackward = errors.New("reflector converts forward only")
)

// Kind selects a rotor's stepping and conversion behaviour.
type Kind int

const (
	Moving Kind = iota
	Fixed
	Reflecting
)

var kindNames = [...]string{
	Moving:     "moving",
	Fixed:      "fixed",
	Reflecting: "reflector",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// capability is what a Kind may do.
type capability struct {
	rotates    bool
	reflecting bool
	backward   bool
	settable   bool
}

var capabilities = [...]capability{
	Moving:     {rotates: true, backward: true, settable: true},
	Fixed:      {backward: true, settable: true},
	Reflecting: {reflecting: true},
}

// Rotor is a permutation with a rotational position and ring offset.
// Rotors are not safe for concurrent use.
type Rotor struct {
	name     string
	kind     Kind
	perm     *permutation.Permutation
	notches  map[int]bool
	position int
	ring     int
}

// NewMoving returns a rotor that steps and whose notches sit at the given
// symbols.
func NewMoving(name string, perm *permutation.Permutation, notches string) (*Rotor, error) {
	r := &Rotor{name: name, kind: Moving, perm: perm, notches: make(map[int]bool)}
	for _, s := range notches {
		i, err := perm.Alphabet().Index(s)
		if err != nil {
			return nil, fmt.Errorf("rotor %s notch: %w", name, err)
		}
		r.notches[i] = true
	}
	if len(r.notches) == 0 {
		return nil, fmt.Errorf("rotor %s: %w", name, ErrMissingNotch)
	}
	return r, nil
}

func NewFixed(name string, perm *permutation.Permutation) *Rotor {
	return &Rotor{name: name, kind: Fixed, perm: perm}
}

// NewReflector returns a reflecting rotor. Its permutation must have no
// fixed points.
func NewReflector(name string, perm *permutation.Permutation) (*Rotor, error) {
	if !perm.IsDerangement() {
		return nil, fmt.Errorf("reflector %s: %w", name, ErrNotDerangement)
	}
	return &Rotor{name: name, kind: Reflecting, perm: perm}, nil
}

func (r *Rotor) Name() string                          { return r.name }
func (r *Rotor) Kind() Kind                            { return r.kind }
func (r *Rotor) Permutation() *permutation.Permutation { return r.perm }
func (r *Rotor) Size() int                             { return r.perm.Size() }
func (r *Rotor) Position() int                         { return r.position }
func (r *Rotor) Ring() int                             { return r.ring }
func (r *Rotor) Rotates() bool                         { return capabilities[r.kind].rotates }
func (r *Rotor) Reflecting() bool                      { return capabilities[r.kind].reflecting }

// Notches returns the notch symbols in alphabet order.
func (r *Rotor) Notches() string {
	var out []rune
	for i := 0; i < r.Size(); i++ {
		if r.notches[i] {
			s, _ := r.perm.Alphabet().Symbol(i)
			out = append(out, s)
		}
	}
	return string(out)
}

// Set moves the rotor to position posn. Reflectors only accept 0.
func (r *Rotor) Set(posn int) error {
	if posn < 0 || posn >= r.Size() {
		return fmt.Errorf("rotor %s: %w: position %d not in [0,%d)", r.name, ErrInvalidSetting, posn, r.Size())
	}
	if !capabilities[r.kind].settable && posn != 0 {
		return fmt.Errorf("reflector %s: %w: has only one position", r.name, ErrInvalidSetting)
	}
	r.position = posn
	return nil
}

// SetSymbol moves the rotor to the position named by symbol s.
func (r *Rotor) SetSymbol(s rune) error {
	i, err := r.perm.Alphabet().Index(s)
	if err != nil {
		return fmt.Errorf("rotor %s: %w: %w", r.name, ErrInvalidSetting, err)
	}
	return r.Set(i)
}

// SetRing sets the ring offset (Ringstellung). Reflectors only accept 0.
func (r *Rotor) SetRing(ring int) error {
	if ring < 0 || ring >= r.Size() {
		return fmt.Errorf("rotor %s: %w: ring %d not in [0,%d)", r.name, ErrInvalidSetting, ring, r.Size())
	}
	if !capabilities[r.kind].settable && ring != 0 {
		return fmt.Errorf("reflector %s: %w: has no ring setting", r.name, ErrInvalidSetting)
	}
	r.ring = ring
	return nil
}

func (r *Rotor) SetRingSymbol(s rune) error {
	i, err := r.perm.Alphabet().Index(s)
	if err != nil {
		return fmt.Errorf("rotor %s: %w: %w", r.name, ErrInvalidSetting, err)
	}
	return r.SetRing(i)
}

// ConvertForward maps contact p on the right side to the left side.
func (r *Rotor) ConvertForward(p int) int {
	off := r.position - r.ring
	return r.perm.Wrap(r.perm.Permute(p+off) - off)
}

// ConvertBackward maps contact e on the left side to the right side.
func (r *Rotor) ConvertBackward(e int) (int, error) {
	if !capabilities[r.kind].backward {
		return 0, fmt.Errorf("reflector %s: %w", r.name, ErrReflectorBackward)
	}
	off := r.position - r.ring
	return r.perm.Wrap(r.perm.Invert(e+off) - off), nil
}

// Advance steps a moving rotor by one position. It does nothing on other
// kinds.
func (r *Rotor) Advance() {
	if r.Rotates() {
		r.position = (r.position + 1) % r.Size()
	}
}

// AtNotch reports whether a moving rotor's current position is a notch.
func (r *Rotor) AtNotch() bool {
	return r.Rotates() && r.notches[r.position]
}

// Clone returns a copy at position 0 with ring 0. The permutation and
// notch set are shared, since neither changes after construction.
func (r *Rotor) Clone() *Rotor {
	return &Rotor{name: r.name, kind: r.kind, perm: r.perm, notches: r.notches}
}

func (r *Rotor) String() string {
	switch r.kind {
	case Moving:
		return fmt.Sprintf("Rotor %s (%s, notches %s)", r.name, r.kind, r.Notches())
	case Reflecting:
		return "Reflector " + r.name
	default:
		return fmt.Sprintf("Rotor %s (%s)", r.name, r.kind)
	}
}

// ParseKind reads a kind name as written in configuration files.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moving", "m":
		return Moving, nil
	case "fixed", "n":
		return Fixed, nil
	case "reflector", "reflecting", "r":
		return Reflecting, nil
	}
	return 0, fmt.Errorf("unknown rotor kind %q", s)
}
