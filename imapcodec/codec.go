// Package imapcodec decodes and encodes IMAP messages.
//
// Decoders work on a byte buffer: they parse the first message and return
// the bytes after it, or report that more data is needed. Encoders turn a
// message into a sequence of fragments so that the sender can wait for a
// continuation request before sending a synchronizing literal.
//
// Codecs are stateless and can be used concurrently.
package imapcodec

import (
	"errors"
	"fmt"
	"io"

	"github.com/emersion/go-imap-codec/internal/imapwire"
)

var (
	// ErrIncomplete is returned when more bytes are needed to decode a
	// message.
	ErrIncomplete = errors.New("imapcodec: incomplete message")
	// ErrLiteralFound is matched by *LiteralFoundError.
	ErrLiteralFound = errors.New("imapcodec: synchronizing literal found")
	// ErrFailed is matched by *SyntaxError.
	ErrFailed = errors.New("imapcodec: invalid message")
)

// LiteralFoundError is returned when a synchronizing literal has been
// announced but its data is missing. The peer waits for a continuation
// request before sending the data.
type LiteralFoundError struct {
	// Tag is the tag of the command being decoded, if any.
	Tag    string
	Length uint32
}

func (err *LiteralFoundError) Error() string {
	if err.Tag == "" {
		return fmt.Sprintf("imapcodec: synchronizing literal of %v bytes found", err.Length)
	}
	return fmt.Sprintf("imapcodec: synchronizing literal of %v bytes found in command %v", err.Length, err.Tag)
}

func (err *LiteralFoundError) Is(target error) bool {
	return target == ErrLiteralFound
}

// SyntaxError is returned when a buffer doesn't start with a valid message.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("imapcodec: syntax error at offset %v: %v", err.Offset, err.Msg)
}

func (err *SyntaxError) Is(target error) bool {
	return target == ErrFailed
}

// IsLiteralFound returns the announced literal length if err is a
// *LiteralFoundError.
func IsLiteralFound(err error) (length uint32, ok bool) {
	var litErr *LiteralFoundError
	if !errors.As(err, &litErr) {
		return 0, false
	}
	return litErr.Length, true
}

// Fragment is a piece of an encoded message: either a LineFragment or a
// LiteralFragment.
type Fragment = imapwire.Fragment

// LineFragment holds protocol text. It ends with CRLF or with a literal
// announcement.
type LineFragment = imapwire.LineFragment

// LiteralFragment holds the raw data of a literal.
type LiteralFragment = imapwire.LiteralFragment

// Encoded is an encoded message, consumed fragment by fragment.
//
// A sender writes fragments in order. Before writing a LiteralFragment with
// the mode LiteralModeSync, a client waits for a continuation request from
// the server.
type Encoded struct {
	frags []Fragment
}

func newEncoded(enc *imapwire.Encoder) *Encoded {
	if err := enc.Err(); err != nil {
		// Encoders are only given valid messages
		panic(err)
	}
	return &Encoded{frags: enc.Fragments()}
}

// Next returns the next fragment. It returns false once all fragments have
// been consumed.
func (e *Encoded) Next() (Fragment, bool) {
	if len(e.frags) == 0 {
		return nil, false
	}
	f := e.frags[0]
	e.frags = e.frags[1:]
	return f, true
}

// Dump consumes all remaining fragments and returns their concatenation.
func (e *Encoded) Dump() []byte {
	var n int
	for _, f := range e.frags {
		n += len(f.Bytes())
	}
	b := make([]byte, 0, n)
	for {
		f, ok := e.Next()
		if !ok {
			break
		}
		b = append(b, f.Bytes()...)
	}
	return b
}

// WriteTo consumes all remaining fragments and writes them to w, without
// waiting for continuation requests.
func (e *Encoded) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for len(e.frags) > 0 {
		n, err := w.Write(e.frags[0].Bytes())
		total += int64(n)
		if err != nil {
			return total, err
		}
		e.frags = e.frags[1:]
	}
	return total, nil
}

var _ io.WriterTo = (*Encoded)(nil)

type validator interface {
	Validate() error
}

// decode runs a message parser over b. On success, the bytes after the
// message are returned. On failure, b is returned unchanged.
func decode(b []byte, maxLiteralSize uint32, parse func(dec *imapwire.Decoder) (validator, string, error)) ([]byte, error) {
	dec := imapwire.NewDecoder(b)
	dec.MaxLiteralSize = maxLiteralSize

	msg, tag, err := parse(dec)
	if decErr := dec.Err(); decErr != nil {
		err = decErr
	}
	if err == nil {
		if vErr := msg.Validate(); vErr != nil {
			err = &SyntaxError{Offset: dec.Offset(), Msg: vErr.Error()}
		}
	}
	if err != nil {
		return b, convertErr(dec, tag, err)
	}
	return dec.Remaining(), nil
}

func convertErr(dec *imapwire.Decoder, tag string, err error) error {
	var (
		litErr    *imapwire.LiteralError
		syntaxErr *imapwire.SyntaxError
	)
	switch {
	case errors.Is(err, imapwire.ErrIncomplete):
		return ErrIncomplete
	case errors.As(err, &litErr):
		return &LiteralFoundError{Tag: tag, Length: litErr.Length}
	case errors.As(err, &syntaxErr):
		return &SyntaxError{Offset: syntaxErr.Offset, Msg: syntaxErr.Msg}
	case errors.Is(err, ErrFailed):
		return err
	default:
		return &SyntaxError{Offset: dec.Offset(), Msg: err.Error()}
	}
}
