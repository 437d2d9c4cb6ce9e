package imapcodec_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/imapcodec"
)

func fragments(e *imapcodec.Encoded) []imapcodec.Fragment {
	var l []imapcodec.Fragment
	for {
		f, ok := e.Next()
		if !ok {
			return l
		}
		l = append(l, f)
	}
}

func TestEncodeNoop(t *testing.T) {
	cmd, err := imap.NewCommand("a", &imap.NoopCommand{})
	require.NoError(t, err)

	frags := fragments(imapcodec.CommandCodec{}.Encode(cmd))
	assert.Equal(t, []imapcodec.Fragment{
		imapcodec.LineFragment{Data: []byte("a NOOP\r\n")},
	}, frags)

	assert.Equal(t, []byte("a NOOP\r\n"), imapcodec.CommandCodec{}.Encode(cmd).Dump())
}

func TestEncodeLoginLiteral(t *testing.T) {
	password, err := imap.NewLiteral([]byte{0xCA, 0xFE}, imap.LiteralModeSync)
	require.NoError(t, err)
	cmd, err := imap.NewCommand("A", &imap.LoginCommand{
		Username: imap.Atom("alice"),
		Password: password,
	})
	require.NoError(t, err)

	frags := fragments(imapcodec.CommandCodec{}.Encode(cmd))
	assert.Equal(t, []imapcodec.Fragment{
		imapcodec.LineFragment{Data: []byte("A LOGIN alice {2}\r\n")},
		imapcodec.LiteralFragment{Data: []byte{0xCA, 0xFE}, Mode: imap.LiteralModeSync},
		imapcodec.LineFragment{Data: []byte("\r\n")},
	}, frags)

	assert.Equal(t, []byte("A LOGIN alice {2}\r\n\xCA\xFE\r\n"), imapcodec.CommandCodec{}.Encode(cmd).Dump())
}

func TestDecodeNoop(t *testing.T) {
	remaining, cmd, err := imapcodec.CommandCodec{}.Decode([]byte("a NOOP\r\n"))
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Equal(t, &imap.Command{Tag: "a", Body: &imap.NoopCommand{}}, cmd)
}

func TestDecodeIncomplete(t *testing.T) {
	b := []byte("a NOOP")
	remaining, cmd, err := imapcodec.CommandCodec{}.Decode(b)
	assert.ErrorIs(t, err, imapcodec.ErrIncomplete)
	assert.Nil(t, cmd)
	assert.Equal(t, b, remaining)
}

func TestEncodeGreeting(t *testing.T) {
	g, err := imap.NewGreeting(imap.GreetingKindOK, nil, "Hello, World!")
	require.NoError(t, err)
	assert.Equal(t, "* OK Hello, World!\r\n", string(imapcodec.GreetingCodec{}.Encode(g).Dump()))

	g, err = imap.NewGreeting(imap.GreetingKindOK, imap.ResponseCodeAlert, "Hello, World!")
	require.NoError(t, err)
	assert.Equal(t, "* OK [ALERT] Hello, World!\r\n", string(imapcodec.GreetingCodec{}.Encode(g).Dump()))
	assert.Equal(t, g.String(), string(imapcodec.GreetingCodec{}.Encode(g).Dump()))
}

func TestEncodeFetchLiteral(t *testing.T) {
	data, err := imap.NewLiteral([]byte("ABCDE"), imap.LiteralModeNonSync)
	require.NoError(t, err)
	resp := &imap.FetchData{
		SeqNum: 12345,
		Items:  []imap.FetchItemData{imap.FetchItemDataBodySection{Data: data}},
	}
	require.NoError(t, resp.Validate())

	frags := fragments(imapcodec.ResponseCodec{}.Encode(resp))
	assert.Equal(t, []imapcodec.Fragment{
		imapcodec.LineFragment{Data: []byte("* 12345 FETCH (BODY[] {5+}\r\n")},
		imapcodec.LiteralFragment{Data: []byte("ABCDE"), Mode: imap.LiteralModeNonSync},
		imapcodec.LineFragment{Data: []byte(")\r\n")},
	}, frags)
}

func TestEncodedPartialDump(t *testing.T) {
	cmd := &imap.Command{Tag: "A", Body: &imap.LoginCommand{
		Username: imap.Atom("alice"),
		Password: imap.Literal{Data: []byte("secret"), Mode: imap.LiteralModeSync},
	}}
	full := imapcodec.CommandCodec{}.Encode(cmd).Dump()

	e := imapcodec.CommandCodec{}.Encode(cmd)
	first, ok := e.Next()
	require.True(t, ok)
	rest := e.Dump()
	assert.Equal(t, full, append(append([]byte(nil), first.Bytes()...), rest...))

	_, ok = e.Next()
	assert.False(t, ok)
	assert.Empty(t, e.Dump())
}

func TestEncodedWriteTo(t *testing.T) {
	cmd := &imap.Command{Tag: "A", Body: &imap.LoginCommand{
		Username: imap.Atom("alice"),
		Password: imap.Literal{Data: []byte("secret"), Mode: imap.LiteralModeNonSync},
	}}

	var buf bytes.Buffer
	n, err := imapcodec.CommandCodec{}.Encode(cmd).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "A LOGIN alice {6+}\r\nsecret\r\n", buf.String())
}

func TestDecodeLiteralFound(t *testing.T) {
	b := []byte("A LOGIN alice {6}\r\n")
	remaining, cmd, err := imapcodec.CommandCodec{}.Decode(b)
	require.ErrorIs(t, err, imapcodec.ErrLiteralFound)
	assert.Nil(t, cmd)
	assert.Equal(t, b, remaining)

	var litErr *imapcodec.LiteralFoundError
	require.True(t, errors.As(err, &litErr))
	assert.Equal(t, "A", litErr.Tag)
	assert.Equal(t, uint32(6), litErr.Length)

	length, ok := imapcodec.IsLiteralFound(err)
	assert.True(t, ok)
	assert.Equal(t, uint32(6), length)

	// Part of the literal data has been received
	_, _, err = imapcodec.CommandCodec{}.Decode([]byte("A LOGIN alice {6}\r\nsec"))
	assert.ErrorIs(t, err, imapcodec.ErrLiteralFound)

	// Non-synchronizing literals don't need a continuation request
	_, _, err = imapcodec.CommandCodec{}.Decode([]byte("A LOGIN alice {6+}\r\nsec"))
	assert.ErrorIs(t, err, imapcodec.ErrIncomplete)

	// The literal is complete, the line isn't
	_, _, err = imapcodec.CommandCodec{}.Decode([]byte("A LOGIN alice {6}\r\nsecret"))
	assert.ErrorIs(t, err, imapcodec.ErrIncomplete)
}

func TestDecodeFailed(t *testing.T) {
	tests := []string{
		"a NOOP\n",
		"a FOO\r\n",
		"+ NOOP\r\n",
		"a LOGIN alice\r\n",
		"a SELECT\r\n",
		"a FETCH 0 FLAGS\r\n",
		"a FETCH 1 (ALL FLAGS)\r\n",
		"a FETCH 1 BODY[1.]\r\n",
		"a SEARCH ()\r\n",
		"a STORE 1 FOO (\\Seen)\r\n",
		"a AUTHENTICATE PLAIN abc\r\n",
		"a APPEND INBOX \"31-Foo-2020 00:00:00 +0000\" {1+}\r\nx\r\n",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, cmd, err := imapcodec.CommandCodec{}.Decode([]byte(s))
			assert.ErrorIs(t, err, imapcodec.ErrFailed)
			assert.Nil(t, cmd)

			var syntaxErr *imapcodec.SyntaxError
			assert.True(t, errors.As(err, &syntaxErr))
		})
	}
}

func TestDecodeMaxLiteralSize(t *testing.T) {
	codec := imapcodec.CommandCodec{MaxLiteralSize: 4}

	_, _, err := codec.Decode([]byte("A LOGIN alice {5}\r\n"))
	assert.ErrorIs(t, err, imapcodec.ErrFailed)

	_, cmd, err := codec.Decode([]byte("A LOGIN alice {4+}\r\npass\r\n"))
	require.NoError(t, err)
	assert.Equal(t, imap.Literal{Data: []byte("pass"), Mode: imap.LiteralModeNonSync}, cmd.Body.(*imap.LoginCommand).Password)
}

func TestDecodeMultipleMessages(t *testing.T) {
	b := []byte("a NOOP\r\nb CAPABILITY\r\nc LOG")

	remaining, cmd, err := imapcodec.CommandCodec{}.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "a", cmd.Tag)

	remaining, cmd, err = imapcodec.CommandCodec{}.Decode(remaining)
	require.NoError(t, err)
	assert.Equal(t, &imap.Command{Tag: "b", Body: &imap.CapabilityCommand{}}, cmd)
	assert.Equal(t, "c LOG", string(remaining))

	_, _, err = imapcodec.CommandCodec{}.Decode(remaining)
	assert.ErrorIs(t, err, imapcodec.ErrIncomplete)
}

// TestDecodeIncremental feeds every prefix of a message to the decoder.
func TestDecodeIncremental(t *testing.T) {
	const line = "A LOGIN alice {6}\r\n"
	const msg = line + "secret\r\n"

	for i := 0; i < len(msg); i++ {
		_, _, err := imapcodec.CommandCodec{}.Decode([]byte(msg[:i]))
		if i >= len(line) && i < len(line)+len("secret") {
			assert.ErrorIs(t, err, imapcodec.ErrLiteralFound, "prefix %q", msg[:i])
		} else {
			assert.ErrorIs(t, err, imapcodec.ErrIncomplete, "prefix %q", msg[:i])
		}
	}

	remaining, cmd, err := imapcodec.CommandCodec{}.Decode([]byte(msg))
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Equal(t, imap.Literal{Data: []byte("secret"), Mode: imap.LiteralModeSync}, cmd.Body.(*imap.LoginCommand).Password)
}

func TestDecodeGreeting(t *testing.T) {
	tests := []struct {
		raw  string
		want *imap.Greeting
	}{
		{
			raw:  "* OK IMAP4rev1 Service Ready\r\n",
			want: &imap.Greeting{Kind: imap.GreetingKindOK, Text: "IMAP4rev1 Service Ready"},
		},
		{
			raw: "* PREAUTH [CAPABILITY IMAP4rev1 IDLE] Logged in\r\n",
			want: &imap.Greeting{
				Kind: imap.GreetingKindPreAuth,
				Code: imap.CodeCapability{Caps: []imap.Cap{imap.CapIMAP4rev1, imap.CapIdle}},
				Text: "Logged in",
			},
		},
		{
			raw:  "* bye [ALERT] Go away\r\n",
			want: &imap.Greeting{Kind: imap.GreetingKindBye, Code: imap.ResponseCodeAlert, Text: "Go away"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			remaining, g, err := imapcodec.GreetingCodec{}.Decode([]byte(tc.raw))
			require.NoError(t, err)
			assert.Empty(t, remaining)
			assert.Equal(t, tc.want, g)
		})
	}

	for _, raw := range []string{"* NO nope\r\n", "* OK\r\n", "* OK \r\n", "a OK hi\r\n"} {
		_, _, err := imapcodec.GreetingCodec{}.Decode([]byte(raw))
		assert.ErrorIs(t, err, imapcodec.ErrFailed, raw)
	}

	_, _, err := imapcodec.GreetingCodec{}.Decode([]byte("* OK [ALERT"))
	assert.ErrorIs(t, err, imapcodec.ErrIncomplete)
}
