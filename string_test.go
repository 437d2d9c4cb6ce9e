package imap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAString(t *testing.T) {
	tests := []struct {
		in   string
		want AString
	}{
		{"alice", Atom("alice")},
		{"foo]", Atom("foo]")},
		{"NIL", Quoted("NIL")},
		{"nil", Quoted("nil")},
		{"", Quoted("")},
		{"pass word", Quoted("pass word")},
		{"a\"b", Quoted("a\"b")},
		{"line\nbreak", Literal{Data: []byte("line\nbreak"), Mode: LiteralModeSync}},
		{"café", Literal{Data: []byte("café"), Mode: LiteralModeSync}},
	}
	for _, tc := range tests {
		got := NewAString(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, []byte(tc.in), got.Bytes())
		assert.NoError(t, validateAString(got), tc.in)
	}
}

func TestNewIString(t *testing.T) {
	assert.Equal(t, Quoted("Hello"), NewIString("Hello"))
	assert.Equal(t, Literal{Data: []byte("a\r\nb"), Mode: LiteralModeSync}, NewIString("a\r\nb"))
	assert.NoError(t, validateIString(nil))
}

func TestNewLiteral(t *testing.T) {
	lit, err := NewLiteral(nil, LiteralModeNonSync)
	require.NoError(t, err)
	assert.Equal(t, []byte{}, lit.Data)
	assert.Equal(t, "", lit.String())

	lit, err = NewLiteral([]byte{0, 0xFF}, LiteralModeSync)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0xFF}, lit.Bytes())

	_, err = NewLiteral([]byte("x"), LiteralMode(3))
	assert.Error(t, err)
}

func TestStringValidate(t *testing.T) {
	assert.Error(t, Atom("").Validate())
	assert.Error(t, Atom("a b").Validate())
	assert.Error(t, Atom("a{").Validate())
	assert.Error(t, Quoted("a\x00").Validate())
	assert.Error(t, validateAString(nil))

	// Empty literals are decoded with a non-nil Data
	assert.Error(t, Literal{}.Validate())
	assert.Error(t, validateIString(Literal{Mode: LiteralModeNonSync}))
	assert.NoError(t, Literal{Data: []byte{}}.Validate())
}
