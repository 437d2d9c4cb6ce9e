package imapwire

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/emersion/go-imap-codec/internal/imapnum"
	"github.com/emersion/go-imap-codec/utf7"
)

// ErrIncomplete is returned when the buffer ends before the message does.
var ErrIncomplete = errors.New("imapwire: incomplete message")

// LiteralError is returned when a synchronizing literal has been announced
// but its data hasn't been received yet.
type LiteralError struct {
	Length uint32
}

func (err *LiteralError) Error() string {
	return fmt.Sprintf("imapwire: waiting for synchronizing literal of %v bytes", err.Length)
}

// SyntaxError is returned when the buffer doesn't contain a valid message.
type SyntaxError struct {
	// Offset is the position in the buffer where the error was detected.
	Offset int
	Msg    string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("imapwire: syntax error at offset %v: %v", err.Offset, err.Msg)
}

// A Decoder reads IMAP data from a byte buffer.
//
// Reading past the end of the buffer records ErrIncomplete. Methods return
// false on failure and the first error is kept: use Err to retrieve it. A
// method returning false with a nil Err means the expected syntax isn't
// there and nothing was consumed.
type Decoder struct {
	// MaxLiteralSize is the maximum size of a literal. Zero means no limit.
	MaxLiteralSize uint32

	buf []byte
	off int
	err error
}

// NewDecoder creates a new decoder reading from b. The buffer isn't
// modified.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

func (dec *Decoder) Err() error {
	return dec.err
}

// Offset returns the number of bytes consumed so far.
func (dec *Decoder) Offset() int {
	return dec.off
}

// Remaining returns the unconsumed part of the buffer.
func (dec *Decoder) Remaining() []byte {
	return dec.buf[dec.off:]
}

func (dec *Decoder) returnErr(err error) bool {
	if err == nil {
		return true
	}
	if dec.err == nil {
		dec.err = err
	}
	return false
}

// Errorf records a syntax error at the current offset and returns false.
func (dec *Decoder) Errorf(format string, args ...interface{}) bool {
	return dec.returnErr(&SyntaxError{
		Offset: dec.off,
		Msg:    fmt.Sprintf(format, args...),
	})
}

func (dec *Decoder) readByte() (byte, bool) {
	if dec.err != nil {
		return 0, false
	}
	if dec.off >= len(dec.buf) {
		return 0, dec.returnErr(ErrIncomplete)
	}
	b := dec.buf[dec.off]
	dec.off++
	return b, true
}

func (dec *Decoder) unreadByte() {
	dec.off--
}

func (dec *Decoder) acceptByte(want byte) bool {
	got, ok := dec.readByte()
	if !ok {
		return false
	} else if got != want {
		dec.unreadByte()
		return false
	}
	return true
}

// Peek returns true if the next byte is ch, without consuming it.
func (dec *Decoder) Peek(ch byte) bool {
	return dec.PeekFunc(func(got byte) bool {
		return got == ch
	})
}

// PeekFunc returns true if the next byte satisfies valid, without consuming
// it.
func (dec *Decoder) PeekFunc(valid func(ch byte) bool) bool {
	got, ok := dec.readByte()
	if !ok {
		return false
	}
	dec.unreadByte()
	return valid(got)
}

// PeekLine returns the bytes up to the next CR, without consuming them.
func (dec *Decoder) PeekLine() (string, bool) {
	if dec.err != nil {
		return "", false
	}
	rest := dec.buf[dec.off:]
	i := bytes.IndexByte(rest, '\r')
	if i < 0 {
		return "", dec.returnErr(ErrIncomplete)
	}
	return string(rest[:i]), true
}

func (dec *Decoder) Expect(ok bool, name string) bool {
	if !ok {
		msg := fmt.Sprintf("expected %v", name)
		if dec.off < len(dec.buf) {
			msg += fmt.Sprintf(", got %q", dec.buf[dec.off])
		}
		return dec.returnErr(&SyntaxError{Offset: dec.off, Msg: msg})
	}
	return true
}

func (dec *Decoder) SP() bool {
	return dec.acceptByte(' ')
}

func (dec *Decoder) ExpectSP() bool {
	return dec.Expect(dec.SP(), "SP")
}

func (dec *Decoder) CRLF() bool {
	return dec.acceptByte('\r') && dec.Expect(dec.acceptByte('\n'), "LF")
}

func (dec *Decoder) ExpectCRLF() bool {
	return dec.Expect(dec.CRLF(), "CRLF")
}

func (dec *Decoder) Special(b byte) bool {
	return dec.acceptByte(b)
}

func (dec *Decoder) ExpectSpecial(b byte) bool {
	return dec.Expect(dec.Special(b), fmt.Sprintf("'%v'", string(b)))
}

// Func reads a non-empty run of bytes satisfying valid.
func (dec *Decoder) Func(ptr *string, valid func(ch byte) bool) bool {
	start := dec.off
	for {
		b, ok := dec.readByte()
		if !ok {
			return false
		}
		if !valid(b) {
			dec.unreadByte()
			break
		}
	}
	if dec.off == start {
		return false
	}
	*ptr = string(dec.buf[start:dec.off])
	return true
}

func (dec *Decoder) Atom(ptr *string) bool {
	return dec.Func(ptr, IsAtomChar)
}

func (dec *Decoder) ExpectAtom(ptr *string) bool {
	return dec.Expect(dec.Atom(ptr), "atom")
}

// Keyword reads an atom and returns it in upper case.
func (dec *Decoder) Keyword(ptr *string) bool {
	var s string
	if !dec.Atom(&s) {
		return false
	}
	*ptr = strings.ToUpper(s)
	return true
}

func (dec *Decoder) ExpectKeyword(ptr *string) bool {
	return dec.Expect(dec.Keyword(ptr), "keyword")
}

// Text reads a non-empty run of TEXT-CHAR.
func (dec *Decoder) Text(ptr *string) bool {
	return dec.Func(ptr, IsTextChar)
}

func (dec *Decoder) ExpectText(ptr *string) bool {
	return dec.Expect(dec.Text(ptr), "text")
}

func (dec *Decoder) digits() (string, bool) {
	var s string
	if !dec.Func(&s, isDigit) {
		return "", false
	}
	return s, true
}

func (dec *Decoder) Number(ptr *uint32) bool {
	start := dec.off
	s, ok := dec.digits()
	if !ok {
		return false
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		dec.off = start
		return dec.Errorf("number %v out of range", s)
	}
	*ptr = uint32(v)
	return true
}

func (dec *Decoder) ExpectNumber(ptr *uint32) bool {
	return dec.Expect(dec.Number(ptr), "number")
}

// ExpectNzNumber reads a non-zero number.
func (dec *Decoder) ExpectNzNumber(ptr *uint32) bool {
	start := dec.off
	if !dec.ExpectNumber(ptr) {
		return false
	}
	if *ptr == 0 {
		dec.off = start
		return dec.Errorf("expected nz-number")
	}
	return true
}

func (dec *Decoder) Number64(ptr *int64) bool {
	start := dec.off
	s, ok := dec.digits()
	if !ok {
		return false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		dec.off = start
		return dec.Errorf("number %v out of range", s)
	}
	*ptr = v
	return true
}

func (dec *Decoder) ExpectNumber64(ptr *int64) bool {
	return dec.Expect(dec.Number64(ptr), "number64")
}

func isNumSetChar(ch byte) bool {
	return isDigit(ch) || ch == ':' || ch == ',' || ch == '*'
}

// NumSet reads a sequence-set.
func (dec *Decoder) NumSet(ptr *imapnum.Set) bool {
	start := dec.off
	var s string
	if !dec.Func(&s, isNumSetChar) {
		return false
	}
	set, err := imapnum.ParseSet(s)
	if err != nil {
		dec.off = start
		return dec.Errorf("%v", err)
	}
	*ptr = set
	return true
}

func (dec *Decoder) ExpectNumSet(ptr *imapnum.Set) bool {
	return dec.Expect(dec.NumSet(ptr), "sequence-set")
}

// Quoted reads a quoted string.
func (dec *Decoder) Quoted(ptr *string) bool {
	if !dec.Special('"') {
		return false
	}
	var sb strings.Builder
	for {
		ch, ok := dec.readByte()
		if !ok {
			return false
		}
		switch ch {
		case '"':
			*ptr = sb.String()
			return true
		case '\\':
			ch, ok = dec.readByte()
			if !ok {
				return false
			}
			if ch != '"' && ch != '\\' {
				dec.unreadByte()
				return dec.Errorf("invalid escape in quoted string")
			}
		case 0, '\r', '\n':
			dec.unreadByte()
			return dec.Errorf("invalid character %q in quoted string", ch)
		}
		sb.WriteByte(ch)
	}
}

func (dec *Decoder) ExpectQuoted(ptr *string) bool {
	return dec.Expect(dec.Quoted(ptr), "quoted string")
}

// Literal reads a literal. If a synchronizing literal has been announced but
// its data is missing, a *LiteralError is recorded.
func (dec *Decoder) Literal(ptr *[]byte, mode *LiteralMode) bool {
	if !dec.Special('{') {
		return false
	}
	var n uint32
	if !dec.ExpectNumber(&n) {
		return false
	}
	m := LiteralModeSync
	if dec.Special('+') {
		m = LiteralModeNonSync
	}
	if !dec.ExpectSpecial('}') || !dec.ExpectCRLF() {
		return false
	}
	if dec.MaxLiteralSize > 0 && n > dec.MaxLiteralSize {
		return dec.Errorf("literal size %v exceeds limit %v", n, dec.MaxLiteralSize)
	}

	avail := len(dec.buf) - dec.off
	if uint64(avail) < uint64(n) || (avail == 0 && m == LiteralModeSync) {
		// The peer waits for a continuation request before sending a
		// synchronizing literal, even an empty one.
		if m == LiteralModeSync {
			return dec.returnErr(&LiteralError{Length: n})
		}
		return dec.returnErr(ErrIncomplete)
	}

	b := make([]byte, n)
	copy(b, dec.buf[dec.off:])
	dec.off += int(n)
	*ptr = b
	*mode = m
	return true
}

func (dec *Decoder) ExpectLiteral(ptr *[]byte, mode *LiteralMode) bool {
	return dec.Expect(dec.Literal(ptr, mode), "literal")
}

// String reads a quoted string or a literal.
func (dec *Decoder) String(ptr *string) bool {
	var (
		b    []byte
		mode LiteralMode
	)
	if dec.Literal(&b, &mode) {
		*ptr = string(b)
		return true
	}
	return dec.Quoted(ptr)
}

func (dec *Decoder) ExpectString(ptr *string) bool {
	return dec.Expect(dec.String(ptr), "string")
}

// AString reads an atom of ASTRING-CHAR, a quoted string or a literal.
func (dec *Decoder) AString(ptr *string) bool {
	if dec.Func(ptr, IsAStringChar) {
		return true
	}
	return dec.String(ptr)
}

func (dec *Decoder) ExpectAString(ptr *string) bool {
	return dec.Expect(dec.AString(ptr), "astring")
}

// ExpectNString reads a string or NIL. NIL is returned as an empty string.
func (dec *Decoder) ExpectNString(ptr *string) bool {
	if dec.String(ptr) {
		return true
	}
	if dec.Err() != nil {
		return false
	}
	*ptr = ""
	return dec.ExpectNIL()
}

func (dec *Decoder) ExpectNIL() bool {
	start := dec.off
	var s string
	if !dec.ExpectAtom(&s) {
		return false
	}
	if !strings.EqualFold(s, "NIL") {
		dec.off = start
		return dec.Expect(false, "NIL")
	}
	return true
}

// ExpectMailbox reads a mailbox name. INBOX is returned in upper case, other
// names are decoded from modified UTF-7.
func (dec *Decoder) ExpectMailbox(ptr *string) bool {
	start := dec.off
	var name string
	if !dec.ExpectAString(&name) {
		return false
	}
	if strings.EqualFold(name, "INBOX") {
		*ptr = "INBOX"
		return true
	}
	name, err := utf7.Encoding.NewDecoder().String(name)
	if err != nil {
		dec.off = start
		return dec.Errorf("invalid mailbox name: %v", err)
	}
	*ptr = name
	return true
}

// ExpectListMailbox reads a list-mailbox, used as a LIST pattern.
func (dec *Decoder) ExpectListMailbox(ptr *string) bool {
	start := dec.off
	var name string
	if !dec.Func(&name, IsListChar) && !dec.ExpectString(&name) {
		return false
	}
	name, err := utf7.Encoding.NewDecoder().String(name)
	if err != nil {
		dec.off = start
		return dec.Errorf("invalid mailbox pattern: %v", err)
	}
	*ptr = name
	return true
}

// Flag reads a flag: a system flag, a keyword or "\*".
func (dec *Decoder) Flag(ptr *string) bool {
	isSystem := dec.Special('\\')
	if isSystem && dec.Special('*') {
		*ptr = "\\*"
		return true
	}
	var name string
	if !dec.Atom(&name) {
		if isSystem {
			return dec.Expect(false, "flag")
		}
		return false
	}
	if isSystem {
		name = "\\" + name
	}
	*ptr = name
	return true
}

func (dec *Decoder) ExpectFlag(ptr *string) bool {
	return dec.Expect(dec.Flag(ptr), "flag")
}

// Base64 reads base64-encoded data.
func (dec *Decoder) Base64(ptr *[]byte) bool {
	start := dec.off
	var s string
	if !dec.Func(&s, IsBase64Char) {
		return false
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		dec.off = start
		return dec.Errorf("invalid base64: %v", err)
	}
	*ptr = b
	return true
}

// List reads a parenthesized list. f is called for each item.
func (dec *Decoder) List(f func() error) (isList bool, err error) {
	if !dec.Special('(') {
		return false, dec.Err()
	}
	if dec.Special(')') {
		return true, nil
	}
	if dec.Err() != nil {
		return true, dec.Err()
	}

	for {
		if err := f(); err != nil {
			return true, err
		}

		if dec.Special(')') {
			return true, nil
		} else if !dec.ExpectSP() {
			return true, dec.Err()
		}
	}
}

func (dec *Decoder) ExpectList(f func() error) error {
	isList, err := dec.List(f)
	if err != nil {
		return err
	} else if !dec.Expect(isList, "(") {
		return dec.Err()
	}
	return nil
}

// ExpectNList reads a parenthesized list or NIL.
func (dec *Decoder) ExpectNList(f func() error) error {
	isList, err := dec.List(f)
	if err != nil {
		return err
	} else if !isList && !dec.ExpectNIL() {
		return dec.Err()
	}
	return nil
}
