// Package machine assembles rotors from a catalog into a working rotor
// cipher machine and converts text through it.
//
// Slot 0 always holds the reflector. The rightmost numPawls slots hold
// moving rotors and the slots in between hold fixed rotors. A Machine is
// not safe for concurrent use: every converted symbol advances its state.
package machine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/706f6c6c7578/enigma/internal/alphabet"
	"github.com/706f6c6c7578/enigma/internal/permutation"
	"github.com/706f6c6c7578/enigma/internal/rotor"
)

var (
	ErrBadGeometry        = errors.New("invalid slot or pawl count")
	ErrWrongRotorCount    = errors.New("wrong number of rotors")
	ErrUnknownRotor       = errors.New("unknown rotor")
	ErrPawlMismatch       = errors.New("moving rotor count does not match pawls")
	ErrRotorOrder         = errors.New("rotors are not in correct order")
	ErrWrongSettingLength = errors.New("wrong setting length")
	ErrNotConfigured      = errors.New("no rotors inserted")
	ErrIncomplete         = errors.New("machine needs an alphabet and a rotor catalog")
)

type Machine struct {
	alpha     alphabet.Alphabet
	numRotors int
	numPawls  int
	catalog   *rotor.Catalog
	slots     []*rotor.Rotor
	plugboard *permutation.Permutation
}

// New returns a machine with numRotors > 1 slots and 0 <= numPawls <
// numRotors pawls that draws its rotors from catalog. The plugboard starts
// as the identity.
func New(alpha alphabet.Alphabet, numRotors, numPawls int, catalog *rotor.Catalog) (*Machine, error) {
	if alpha == nil || catalog == nil {
		return nil, ErrIncomplete
	}
	if numRotors <= 1 {
		return nil, fmt.Errorf("%w: need more than one rotor slot, got %d", ErrBadGeometry, numRotors)
	}
	if numPawls < 0 || numPawls >= numRotors {
		return nil, fmt.Errorf("%w: pawls must be in [0,%d), got %d", ErrBadGeometry, numRotors, numPawls)
	}
	return &Machine{
		alpha:     alpha,
		numRotors: numRotors,
		numPawls:  numPawls,
		catalog:   catalog,
		plugboard: permutation.Identity(alpha),
	}, nil
}

func (m *Machine) Alphabet() alphabet.Alphabet { return m.alpha }
func (m *Machine) NumRotors() int              { return m.numRotors }
func (m *Machine) NumPawls() int               { return m.numPawls }

// InsertRotors fills the slots with fresh copies of the named catalog
// rotors, left to right; names[0] must name a reflector. Positions and
// rings start at 0. On error the previous assignment is kept.
func (m *Machine) InsertRotors(names []string) error {
	if len(names) != m.numRotors {
		return fmt.Errorf("%w: got %d, machine has %d slots", ErrWrongRotorCount, len(names), m.numRotors)
	}
	slots := make([]*rotor.Rotor, len(names))
	moving := 0
	for i, name := range names {
		proto, ok := m.catalog.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %q is not among the available rotors", ErrUnknownRotor, name)
		}
		slots[i] = proto.Clone()
		if slots[i].Rotates() {
			moving++
		}
	}
	if moving != m.numPawls {
		return fmt.Errorf("%w: %d moving rotors, %d pawls", ErrPawlMismatch, moving, m.numPawls)
	}
	if err := checkOrder(slots, m.numPawls); err != nil {
		return err
	}
	m.slots = slots
	return nil
}

func checkOrder(slots []*rotor.Rotor, pawls int) error {
	if !slots[0].Reflecting() {
		return fmt.Errorf("%w: first rotor %s must be a reflector", ErrRotorOrder, slots[0].Name())
	}
	firstMoving := len(slots) - pawls
	for i := 1; i < len(slots); i++ {
		r := slots[i]
		switch {
		case r.Reflecting():
			return fmt.Errorf("%w: only one reflector allowed, found %s in slot %d", ErrRotorOrder, r.Name(), i)
		case i >= firstMoving && !r.Rotates():
			return fmt.Errorf("%w: slot %d needs a moving rotor, got %s", ErrRotorOrder, i, r.Name())
		case i < firstMoving && r.Rotates():
			return fmt.Errorf("%w: moving rotor %s in fixed slot %d", ErrRotorOrder, r.Name(), i)
		}
	}
	return nil
}

// SetRotors sets the positions of slots 1..n-1 from setting, one symbol
// per slot. The reflector is never set.
func (m *Machine) SetRotors(setting string) error {
	return m.applySetting(setting, (*rotor.Rotor).SetSymbol)
}

// SetRings sets the ring offsets of slots 1..n-1 from setting.
func (m *Machine) SetRings(setting string) error {
	return m.applySetting(setting, (*rotor.Rotor).SetRingSymbol)
}

func (m *Machine) applySetting(setting string, set func(*rotor.Rotor, rune) error) error {
	if m.slots == nil {
		return ErrNotConfigured
	}
	symbols := []rune(setting)
	if len(symbols) != m.numRotors-1 {
		return fmt.Errorf("%w: %q has %d symbols, need %d", ErrWrongSettingLength, setting, len(symbols), m.numRotors-1)
	}
	for i, s := range symbols {
		if err := set(m.slots[i+1], s); err != nil {
			return err
		}
	}
	return nil
}

// SetPlugboard replaces the plugboard. It must permute the machine's
// alphabet.
func (m *Machine) SetPlugboard(p *permutation.Permutation) error {
	if !alphabet.Equal(p.Alphabet(), m.alpha) {
		return fmt.Errorf("plugboard: %w", permutation.ErrAlphabetMismatch)
	}
	m.plugboard = p
	return nil
}

func (m *Machine) Plugboard() *permutation.Permutation { return m.plugboard }

// Rotors returns the names of the inserted rotors, reflector first.
func (m *Machine) Rotors() []string {
	names := make([]string, len(m.slots))
	for i, r := range m.slots {
		names[i] = r.Name()
	}
	return names
}

// Positions returns the current window letters of slots 1..n-1, in the
// form SetRotors accepts.
func (m *Machine) Positions() string {
	var b strings.Builder
	for _, r := range m.slots[min(1, len(m.slots)):] {
		s, _ := m.alpha.Symbol(r.Position())
		b.WriteRune(s)
	}
	return b.String()
}

// stepping returns the slots that advance on the next keystroke, judged
// on the current positions. The rightmost moving rotor always steps. A
// moving rotor at its notch with a moving left neighbour steps both
// itself and that neighbour, which gives the middle rotor its double step.
func (m *Machine) stepping() []int {
	last := len(m.slots) - 1
	if !m.slots[last].Rotates() {
		return nil
	}
	steps := make([]bool, len(m.slots))
	steps[last] = true
	for i := last; i > 0 && m.slots[i].Rotates(); i-- {
		if m.slots[i].AtNotch() && m.slots[i-1].Rotates() {
			steps[i] = true
			steps[i-1] = true
		}
	}
	var out []int
	for i, s := range steps {
		if s {
			out = append(out, i)
		}
	}
	return out
}

func (m *Machine) advance() {
	for _, i := range m.stepping() {
		m.slots[i].Advance()
	}
}

// Convert advances the rotors and then enciphers the symbol at index c,
// returning the index of the result.
func (m *Machine) Convert(c int) (int, error) {
	if m.slots == nil {
		return 0, ErrNotConfigured
	}
	if c < 0 || c >= m.alpha.Size() {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", alphabet.ErrIndexOutOfRange, c, m.alpha.Size())
	}
	m.advance()
	c = m.plugboard.Permute(c)
	for i := len(m.slots) - 1; i >= 0; i-- {
		c = m.slots[i].ConvertForward(c)
	}
	for i := 1; i < len(m.slots); i++ {
		var err error
		if c, err = m.slots[i].ConvertBackward(c); err != nil {
			return 0, err
		}
	}
	return m.plugboard.Permute(c), nil
}

// ConvertString enciphers msg after dropping whitespace. Symbols missing
// from the alphabet are retried in upper case. The machine state advances
// once per converted symbol; on error the symbols before the bad one have
// already been consumed.
func (m *Machine) ConvertString(msg string) (string, error) {
	var b strings.Builder
	for _, r := range msg {
		if unicode.IsSpace(r) {
			continue
		}
		if !m.alpha.Contains(r) {
			r = unicode.ToUpper(r)
		}
		in, err := m.alpha.Index(r)
		if err != nil {
			return b.String(), err
		}
		out, err := m.Convert(in)
		if err != nil {
			return b.String(), err
		}
		s, err := m.alpha.Symbol(out)
		if err != nil {
			return b.String(), err
		}
		b.WriteRune(s)
	}
	return b.String(), nil
}
