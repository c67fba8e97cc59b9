package rotor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/706f6c6c7578/enigma/internal/alphabet"
)

func TestCatalogLookup(t *testing.T) {
	b, err := NewReflector("B", perm(t, cyclesB))
	require.NoError(t, err)
	c, err := NewCatalog(moving(t, "Q"), NewFixed("Beta", perm(t, cyclesBeta)), b)
	require.NoError(t, err)

	for _, name := range []string{"Beta", "BETA", "beta"} {
		r, ok := c.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, "Beta", r.Name())
	}
	_, ok := c.Lookup("Gamma")
	assert.False(t, ok)

	if diff := cmp.Diff([]string{"I", "Beta", "B"}, c.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, c.Len())
	assert.Len(t, c.Rotors(), 3)
}

func TestCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(NewFixed("Beta", perm(t, cyclesBeta)), NewFixed("BETA", perm(t, cyclesI)))
	assert.ErrorIs(t, err, ErrDuplicateRotor)
}

func TestBuiltin(t *testing.T) {
	c, err := Builtin(alphabet.Upper)
	require.NoError(t, err)

	want := []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII",
		"Beta", "Gamma", "A", "B", "C", "B-Thin", "C-Thin"}
	if diff := cmp.Diff(want, c.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	i, ok := c.Lookup("i")
	require.True(t, ok)
	assert.Equal(t, cyclesI, i.Permutation().String())
	assert.Equal(t, "Q", i.Notches())

	vi, ok := c.Lookup("VI")
	require.True(t, ok)
	assert.Equal(t, "MZ", vi.Notches())

	beta, ok := c.Lookup("beta")
	require.True(t, ok)
	assert.Equal(t, Fixed, beta.Kind())
	assert.Equal(t, cyclesBeta, beta.Permutation().String())

	thin, ok := c.Lookup("b-thin")
	require.True(t, ok)
	assert.True(t, thin.Reflecting())
	ref := perm(t, cyclesB)
	for k := 0; k < 26; k++ {
		assert.Equal(t, ref.Permute(k), thin.Permutation().Permute(k))
	}
}

func TestBuiltinNeedsUpper(t *testing.T) {
	short, err := alphabet.NewRange('A', 'F')
	require.NoError(t, err)
	_, err = Builtin(short)
	assert.Error(t, err)
}
