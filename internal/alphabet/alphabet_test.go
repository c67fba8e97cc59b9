package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpper(t *testing.T) {
	assert.Equal(t, 26, Upper.Size())
	assert.True(t, Upper.Contains('A'))
	assert.True(t, Upper.Contains('Z'))
	assert.False(t, Upper.Contains('a'))

	i, err := Upper.Index('Q')
	require.NoError(t, err)
	assert.Equal(t, 16, i)

	r, err := Upper.Symbol(25)
	require.NoError(t, err)
	assert.Equal(t, 'Z', r)
	assert.Equal(t, "A-Z", Upper.String())
}

func TestRangeErrors(t *testing.T) {
	_, err := Upper.Index('!')
	assert.ErrorIs(t, err, ErrInvalidSymbol)

	_, err = Upper.Symbol(26)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = Upper.Symbol(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = NewRange('Z', 'A')
	assert.ErrorIs(t, err, ErrInvalidAlphabet)
}

func TestSequence(t *testing.T) {
	s, err := NewSequence("QWERTZ.")
	require.NoError(t, err)
	assert.Equal(t, 7, s.Size())
	assert.True(t, s.Contains('.'))
	assert.False(t, s.Contains('A'))

	i, err := s.Index('T')
	require.NoError(t, err)
	assert.Equal(t, 4, i)

	r, err := s.Symbol(6)
	require.NoError(t, err)
	assert.Equal(t, '.', r)

	_, err = s.Symbol(7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = s.Index('A')
	assert.ErrorIs(t, err, ErrInvalidSymbol)
	assert.Equal(t, "QWERTZ.", s.String())
}

func TestSequenceRejectsDuplicates(t *testing.T) {
	_, err := NewSequence("ABCA")
	assert.ErrorIs(t, err, ErrInvalidAlphabet)
	_, err = NewSequence("")
	assert.ErrorIs(t, err, ErrInvalidAlphabet)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		size int
		err  error
	}{
		{"range", "A-Z", 26, nil},
		{"range with spaces", " A - F ", 6, nil},
		{"sequence", "ZYX0123", 7, nil},
		{"reversed range", "Z-A", 0, ErrInvalidAlphabet},
		{"malformed range", "A-ZB", 0, ErrInvalidAlphabet},
		{"duplicate", "ABB", 0, ErrInvalidAlphabet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.spec)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.size, a.Size())
		})
	}
}

func TestEqual(t *testing.T) {
	seq, err := NewSequence("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	require.NoError(t, err)
	assert.True(t, Equal(Upper, seq))

	short, err := NewRange('A', 'F')
	require.NoError(t, err)
	assert.False(t, Equal(Upper, short))

	shuffled, err := NewSequence("BACDEF")
	require.NoError(t, err)
	assert.False(t, Equal(short, shuffled))
}
