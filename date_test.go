package imap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedDateTime = time.Date(2009, time.November, 2, 23, 0, 0, 0, time.FixedZone("", -6*60*60))
var expectedDate = time.Date(2009, time.November, 2, 0, 0, 0, 0, time.UTC)

func TestParseMessageDateTime(t *testing.T) {
	tests := []struct {
		in  string
		out time.Time
		ok  bool
	}{
		// some permutations
		{"2 Nov 2009 23:00 -0600", expectedDateTime, true},
		{"Tue, 2 Nov 2009 23:00:00 -0600", expectedDateTime, true},
		{"Tue, 02 Nov 2009 23:00:00 -0600", expectedDateTime, true},
		{"  Tue, 02 Nov 2009 23:00:00 -0600  ", expectedDateTime, true},

		// whitespace at the end
		{"Tue, 2 Nov 2009 23:00:00 -0600 ", expectedDateTime, true},

		// invalid
		{"abc10 Nov 2009 23:00 -0600123", time.Time{}, false},
		{"10.Nov.2009 11:00:00 -9900", time.Time{}, false},
	}
	for _, test := range tests {
		out, err := ParseMessageDateTime(test.in)
		if !test.ok {
			assert.Error(t, err, test.in)
			continue
		}
		require.NoError(t, err, test.in)
		assert.True(t, out.Equal(test.out), "ParseMessageDateTime(%q) = %v, want %v", test.in, out, test.out)
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in  string
		out time.Time
	}{
		{"02-Nov-2009 23:00:00 -0600", expectedDateTime},
		{" 2-Nov-2009 23:00:00 -0600", expectedDateTime},
		{"17-Jul-1996 02:44:25 +0000", time.Date(1996, time.July, 17, 2, 44, 25, 0, time.UTC)},
	}
	for _, test := range tests {
		out, err := ParseDateTime(test.in)
		require.NoError(t, err, test.in)
		assert.True(t, out.Equal(test.out), "ParseDateTime(%q) = %v, want %v", test.in, out, test.out)
		assert.NoError(t, validateDateTime(out), test.in)
	}

	// A zero offset is returned in UTC
	out, err := ParseDateTime("17-Jul-1996 02:44:25 +0000")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, out.Location())
	assert.Equal(t, "17-Jul-1996 02:44:25 +0000", out.Format(DateTimeLayout))

	for _, in := range []string{"", "17-Jul-1996", "17-Foo-1996 02:44:25 +0000", "17-Jul-1996 02:44:25"} {
		_, err := ParseDateTime(in)
		assert.Error(t, err, in)
	}
}

func TestParseDate(t *testing.T) {
	out, err := ParseDate("2-Nov-2009")
	require.NoError(t, err)
	assert.Equal(t, expectedDate, out)
	assert.NoError(t, validateDate(out))

	out, err = ParseDate("02-Nov-2009")
	require.NoError(t, err)
	assert.Equal(t, expectedDate, out)

	_, err = ParseDate("2 Nov 2009")
	assert.Error(t, err)
}

func TestValidateDateTime(t *testing.T) {
	valid := []time.Time{
		time.Date(2020, time.January, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2020, time.January, 1, 10, 0, 0, 0, time.FixedZone("", 2*60*60)),
	}
	for _, v := range valid {
		assert.NoError(t, validateDateTime(v), v.String())
	}

	invalid := []time.Time{
		{},
		time.Date(2020, time.January, 1, 10, 0, 0, 5, time.UTC),
		time.Date(2020, time.January, 1, 10, 0, 0, 0, time.FixedZone("CET", 60*60)),
		time.Date(2020, time.January, 1, 10, 0, 0, 0, time.FixedZone("", 0)),
		time.Date(2020, time.January, 1, 10, 0, 0, 0, time.FixedZone("", 30)),
	}
	for _, v := range invalid {
		assert.Error(t, validateDateTime(v), v.String())
	}
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, validateDate(expectedDate))
	assert.Error(t, validateDate(time.Time{}))
	assert.Error(t, validateDate(expectedDate.Add(time.Hour)))
	assert.Error(t, validateDate(time.Date(2009, time.November, 2, 0, 0, 0, 0, time.FixedZone("", 3600))))
}
