package rotor

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDuplicateRotor = errors.New("duplicate rotor name")

// Catalog is the read-only set of rotors a machine may be assembled from.
// Names match case-insensitively. A Catalog may be shared by any number
// of machines; they take clones of its rotors.
type Catalog struct {
	byName map[string]*Rotor
	names  []string
}

func NewCatalog(rotors ...*Rotor) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*Rotor, len(rotors))}
	for _, r := range rotors {
		key := strings.ToUpper(r.Name())
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRotor, r.Name())
		}
		c.byName[key] = r
		c.names = append(c.names, r.Name())
	}
	return c, nil
}

// Lookup returns the catalog's prototype for name. Callers must not
// mutate it; use Clone.
func (c *Catalog) Lookup(name string) (*Rotor, bool) {
	r, ok := c.byName[strings.ToUpper(name)]
	return r, ok
}

// Names lists rotor names in registration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalog) Len() int {
	return len(c.names)
}

// Rotors returns the prototypes in registration order.
func (c *Catalog) Rotors() []*Rotor {
	out := make([]*Rotor, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.byName[strings.ToUpper(n)])
	}
	return out
}
