package utf7_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emersion/go-imap-codec/utf7"
)

var decodeTests = []struct {
	in  string
	out string
	ok  bool
}{
	{"", "", true},
	{"abc", "abc", true},
	{"&-abc", "&abc", true},
	{"abc&-", "abc&", true},
	{"a&-b&-c", "a&b&c", true},
	{"&ABk-", "\x19", true},
	{"&AB8-", "\x1F", true},
	{"ABk-", "ABk-", true},
	{"&-,&-&AP8-&-", "&,&ÿ&", true},
	{"&-&-,&AP8-&-", "&&,ÿ&", true},
	{"abc &- &AP8A,wD,- &- xyz", "abc & ÿÿÿ & xyz", true},
	{"Entw&APw-rfe", "Entwürfe", true},
	{"&ZeVnLIqe-", "日本語", true},
	{"&2D3eCg- &2D3eCw-", "\U0001f60a \U0001f60b", true},

	// Illegal code point in ASCII
	{"\x00", "", false},
	{"\x1F", "", false},
	{"abc\n", "", false},
	{"abc\x7Fxyz", "", false},
	{"�", "", false},

	// Invalid base64 alphabet
	{"&/+8-", "", false},
	{"&*-", "", false},
	{"&ZeVnLIqe -", "", false},

	// Padding not stripped
	{"&AAAAHw=-", "", false},
	{"&AAAAHwB,AIA==-", "", false},

	// One byte short
	{"&2A-", "", false},
	{"&AAAAHwB,A-", "", false},
	{"&AAAAHwB,AI-", "", false},

	// Implicit shift
	{"&", "", false},
	{"&Jjo", "", false},
	{"abc&Jjo", "", false},

	// Null shift
	{"&U,BTFw-&ZeVnLIqe-", "", false},

	// ASCII in base64
	{"&AGE-", "", false},
	{"&AGgAZQBsAGwAbw-", "", false},

	// Bad surrogate
	{"&2AA-", "", false},
	{"&3AA-", "", false},
	{"&2AAAQQ-", "", false},
	{"&3ADYAA-", "", false},
}

func TestDecoder(t *testing.T) {
	dec := utf7.Encoding.NewDecoder()
	for _, tc := range decodeTests {
		out, err := dec.String(tc.in)
		if tc.ok {
			assert.NoError(t, err, "decode %+q", tc.in)
			assert.Equal(t, tc.out, out, "decode %+q", tc.in)
		} else {
			assert.Error(t, err, "decode %+q", tc.in)
		}
	}
}

func TestDecoder_long(t *testing.T) {
	in := strings.Repeat("a", 200) + " &2D3eCg- &2D3eCw- &2D3eDg-"
	out, err := utf7.Encoding.NewDecoder().String(in)
	assert.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 200)+" \U0001f60a \U0001f60b \U0001f60e", out)
}

var encodeTests = []struct {
	in  string
	out string
}{
	{"", ""},
	{"INBOX", "INBOX"},
	{"a&b", "a&-b"},
	{"Entwürfe", "Entw&APw-rfe"},
	{"日本語", "&ZeVnLIqe-"},
	{"\U0001f60a \U0001f60b", "&2D3eCg- &2D3eCw-"},
	{"\x19", "&ABk-"},
	{"~peter/mail/台北/日本語", "~peter/mail/&U,BTFw-/&ZeVnLIqe-"},
}

func TestEncoder(t *testing.T) {
	enc := utf7.Encoding.NewEncoder()
	dec := utf7.Encoding.NewDecoder()
	for _, tc := range encodeTests {
		out, err := enc.String(tc.in)
		assert.NoError(t, err, "encode %+q", tc.in)
		assert.Equal(t, tc.out, out, "encode %+q", tc.in)

		back, err := dec.String(out)
		assert.NoError(t, err, "decode %+q", out)
		assert.Equal(t, tc.in, back)
	}
}
