package imapwire

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/emersion/go-imap-codec/internal/imapnum"
	"github.com/emersion/go-imap-codec/utf7"
)

// An Encoder builds the fragments of an IMAP message.
//
// Methods return the Encoder so that calls can be chained. The Encoder
// doesn't validate its input: callers must only pass values which satisfy
// the grammar of the element being written. Errors are deferred until Err is
// called.
type Encoder struct {
	frags []Fragment
	line  []byte
	err   error
}

// NewEncoder creates a new encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (enc *Encoder) writeString(s string) *Encoder {
	enc.line = append(enc.line, s...)
	return enc
}

func (enc *Encoder) flushLine() {
	if len(enc.line) > 0 {
		enc.frags = append(enc.frags, LineFragment{Data: enc.line})
		enc.line = nil
	}
}

func (enc *Encoder) setErr(err error) {
	if enc.err == nil {
		enc.err = err
	}
}

// Err returns the first error encountered while encoding.
func (enc *Encoder) Err() error {
	return enc.err
}

// Fragments returns the fragments written so far.
func (enc *Encoder) Fragments() []Fragment {
	enc.flushLine()
	return enc.frags
}

// CRLF writes a "\r\n" sequence.
func (enc *Encoder) CRLF() *Encoder {
	return enc.writeString("\r\n")
}

func (enc *Encoder) Atom(s string) *Encoder {
	return enc.writeString(s)
}

func (enc *Encoder) SP() *Encoder {
	return enc.writeString(" ")
}

func (enc *Encoder) Special(ch byte) *Encoder {
	enc.line = append(enc.line, ch)
	return enc
}

func (enc *Encoder) Quoted(s string) *Encoder {
	var sb strings.Builder
	sb.Grow(2 + len(s))
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '"' || ch == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(ch)
	}
	sb.WriteByte('"')
	return enc.writeString(sb.String())
}

// Literal writes a literal announcement followed by the literal data.
func (enc *Encoder) Literal(data []byte, mode LiteralMode) *Encoder {
	enc.writeString("{")
	enc.Number64(int64(len(data)))
	if mode == LiteralModeNonSync {
		enc.writeString("+")
	}
	enc.writeString("}\r\n")
	enc.flushLine()
	enc.frags = append(enc.frags, LiteralFragment{Data: data, Mode: mode})
	return enc
}

// String writes a quoted string if possible, a synchronizing literal
// otherwise.
func (enc *Encoder) String(s string) *Encoder {
	if !ValidQuoted(s) {
		return enc.Literal([]byte(s), LiteralModeSync)
	}
	return enc.Quoted(s)
}

// AString writes an atom if possible, a string otherwise. "NIL" is always
// quoted.
func (enc *Encoder) AString(s string) *Encoder {
	if ValidAStringAtom(s) && !strings.EqualFold(s, "NIL") {
		return enc.Atom(s)
	}
	return enc.String(s)
}

// NString writes a string, or NIL if s is empty.
func (enc *Encoder) NString(s string) *Encoder {
	if s == "" {
		return enc.NIL()
	}
	return enc.String(s)
}

// Mailbox writes a mailbox name, encoded in modified UTF-7.
func (enc *Encoder) Mailbox(name string) *Encoder {
	if strings.EqualFold(name, "INBOX") {
		return enc.Atom("INBOX")
	}
	name, err := utf7.Encoding.NewEncoder().String(name)
	if err != nil {
		enc.setErr(fmt.Errorf("imapwire: cannot encode mailbox: %w", err))
		return enc
	}
	return enc.AString(name)
}

// ListMailbox writes a LIST pattern, encoded in modified UTF-7.
func (enc *Encoder) ListMailbox(pattern string) *Encoder {
	pattern, err := utf7.Encoding.NewEncoder().String(pattern)
	if err != nil {
		enc.setErr(fmt.Errorf("imapwire: cannot encode mailbox pattern: %w", err))
		return enc
	}
	if ValidListChars(pattern) && !strings.EqualFold(pattern, "NIL") {
		return enc.Atom(pattern)
	}
	return enc.String(pattern)
}

func (enc *Encoder) NumSet(set imapnum.Set) *Encoder {
	return enc.writeString(set.String())
}

func (enc *Encoder) Flag(flag string) *Encoder {
	return enc.writeString(flag)
}

func (enc *Encoder) Number(v uint32) *Encoder {
	return enc.writeString(strconv.FormatUint(uint64(v), 10))
}

func (enc *Encoder) Number64(v int64) *Encoder {
	return enc.writeString(strconv.FormatInt(v, 10))
}

// List writes a parenthesized list.
func (enc *Encoder) List(n int, f func(i int)) *Encoder {
	enc.Special('(')
	for i := 0; i < n; i++ {
		if i > 0 {
			enc.SP()
		}
		f(i)
	}
	enc.Special(')')
	return enc
}

func (enc *Encoder) BeginList() *ListEncoder {
	enc.Special('(')
	return &ListEncoder{enc: enc}
}

func (enc *Encoder) NIL() *Encoder {
	return enc.Atom("NIL")
}

func (enc *Encoder) Text(s string) *Encoder {
	return enc.writeString(s)
}

// RespText writes resp-text: an optional bracketed response code followed by
// text. code may be nil.
func (enc *Encoder) RespText(code fmt.Stringer, text string) *Encoder {
	if code != nil {
		enc.Special('[').Atom(code.String()).Special(']')
		if text == "" {
			return enc
		}
		enc.SP()
	}
	return enc.Text(text)
}

// Charset writes a charset name as an atom if possible, as a quoted string
// otherwise.
func (enc *Encoder) Charset(s string) *Encoder {
	if ValidAtom(s) {
		return enc.Atom(s)
	}
	return enc.Quoted(s)
}

// Base64 writes base64-encoded data.
func (enc *Encoder) Base64(b []byte) *Encoder {
	return enc.writeString(base64.StdEncoding.EncodeToString(b))
}

type ListEncoder struct {
	enc *Encoder
	n   int
}

func (le *ListEncoder) Item() *Encoder {
	if le.n > 0 {
		le.enc.SP()
	}
	le.n++
	return le.enc
}

func (le *ListEncoder) End() {
	le.enc.Special(')')
	le.enc = nil
}
