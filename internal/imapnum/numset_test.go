package imapnum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSet(t *testing.T) {
	tests := []struct {
		in   string
		want Set
		str  string
	}{
		{"1", Set{{1, 1}}, "1"},
		{"1:3", Set{{1, 3}}, "1:3"},
		{"3:1", Set{{1, 3}}, "1:3"},
		{"*", Set{{0, 0}}, "*"},
		{"5:*", Set{{5, 0}}, "5:*"},
		{"*:5", Set{{5, 0}}, "5:*"},
		{"7,1:3,4", Set{{1, 4}, {7, 7}}, "1:4,7"},
		{"1:10,3:5", Set{{1, 10}}, "1:10"},
		{"2,4,*", Set{{2, 2}, {4, 4}, {0, 0}}, "2,4,*"},
		{"2,4:*,9", Set{{2, 2}, {4, 0}}, "2,4:*"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			s, err := ParseSet(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, s)
			assert.Equal(t, tc.str, s.String())
			assert.True(t, s.Normalized())
		})
	}
}

func TestParseSet_invalid(t *testing.T) {
	for _, in := range []string{"", "0", "01", "1:", ":2", "a", "1,,2", "4294967296"} {
		_, err := ParseSet(in)
		assert.Error(t, err, in)
	}
}

func TestSet_AddNum(t *testing.T) {
	var s Set
	s.AddNum(5, 1, 2, 3)
	s.AddRange(10, 8)
	assert.Equal(t, "1:3,5,8:10", s.String())
	assert.False(t, s.Dynamic())

	s.AddNum(0)
	assert.Equal(t, "1:3,5,8:10,*", s.String())
	assert.True(t, s.Dynamic())
}

func TestSet_Normalized(t *testing.T) {
	assert.True(t, Set{{1, 2}, {4, 4}}.Normalized())
	assert.False(t, Set{{4, 4}, {1, 2}}.Normalized())
	assert.False(t, Set{{1, 2}, {3, 3}}.Normalized())
	assert.False(t, Set{{3, 1}}.Normalized())
	assert.False(t, Set{{0, 4}}.Normalized())
}
