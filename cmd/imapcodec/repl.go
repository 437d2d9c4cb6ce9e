package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/emersion/go-message/textproto"

	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/imapcodec"
)

// Logger is a facility to log error messages.
type Logger interface {
	Printf(format string, args ...interface{})
}

// codec adapts the typed codecs of the imapcodec package.
type codec interface {
	decode(b []byte) (remaining []byte, msg interface{}, err error)
	encode(msg interface{}) *imapcodec.Encoded
}

type greetingCodec struct {
	imapcodec.GreetingCodec
}

func (c greetingCodec) decode(b []byte) ([]byte, interface{}, error) {
	remaining, g, err := c.Decode(b)
	return remaining, g, err
}

func (c greetingCodec) encode(msg interface{}) *imapcodec.Encoded {
	return c.Encode(msg.(*imap.Greeting))
}

type commandCodec struct {
	imapcodec.CommandCodec
}

func (c commandCodec) decode(b []byte) ([]byte, interface{}, error) {
	remaining, cmd, err := c.Decode(b)
	return remaining, cmd, err
}

func (c commandCodec) encode(msg interface{}) *imapcodec.Encoded {
	return c.Encode(msg.(*imap.Command))
}

type responseCodec struct {
	imapcodec.ResponseCodec
}

func (c responseCodec) decode(b []byte) ([]byte, interface{}, error) {
	remaining, resp, err := c.Decode(b)
	return remaining, resp, err
}

func (c responseCodec) encode(msg interface{}) *imapcodec.Encoded {
	return c.Encode(msg.(imap.Response))
}

var literalContinuation = &imap.ContinuationResponse{Text: "Ready for literal data"}

type repl struct {
	mode   string
	debug  bool
	codec  codec
	out    io.Writer
	Logger Logger

	buf []byte
	// litEnd is the buffer length at which the literal acknowledged last
	// is complete
	litEnd int
}

func newREPL(cfg *config, out io.Writer) (*repl, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var c codec
	switch cfg.Mode {
	case modeGreeting:
		c = greetingCodec{}
	case modeCommand:
		c = commandCodec{imapcodec.CommandCodec{MaxLiteralSize: cfg.MaxLiteralSize}}
	case modeResponse:
		c = responseCodec{imapcodec.ResponseCodec{MaxLiteralSize: cfg.MaxLiteralSize}}
	}

	return &repl{
		mode:   cfg.Mode,
		debug:  cfg.Debug,
		codec:  c,
		out:    out,
		Logger: log.Default(),
	}, nil
}

func (r *repl) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		r.feed(scanner.Bytes())
	}
	return scanner.Err()
}

// feed appends a line to the buffer and prints all complete messages.
func (r *repl) feed(line []byte) {
	r.buf = append(r.buf, line...)
	r.buf = append(r.buf, '\r', '\n')

	for len(r.buf) > 0 {
		remaining, msg, err := r.codec.decode(r.buf)
		var litErr *imapcodec.LiteralFoundError
		switch {
		case errors.Is(err, imapcodec.ErrIncomplete):
			return
		case errors.As(err, &litErr):
			// Only clients wait for continuation requests
			if r.mode == modeCommand && len(r.buf) >= r.litEnd {
				fmt.Fprintf(r.out, "S: %s", imapcodec.ResponseCodec{}.Encode(literalContinuation).Dump())
				r.litEnd = len(r.buf) + int(litErr.Length)
			}
			return
		case err != nil:
			r.Logger.Printf("Failed to decode %v: %v", r.mode, err)
			r.buf = nil
			r.litEnd = 0
			return
		}

		r.print(msg)
		r.buf = remaining
		r.litEnd = 0
	}
}

func (r *repl) print(msg interface{}) {
	switch msg := msg.(type) {
	case *imap.Greeting:
		fmt.Fprintf(r.out, "%v greeting\n", msg.Kind)
	case *imap.Command:
		fmt.Fprintf(r.out, "%v command, tag %q\n", msg.Body.Name(), msg.Tag)
		if cmd, ok := msg.Body.(*imap.AppendCommand); ok {
			r.printHeader(cmd.Message.Data)
		}
	case *imap.FetchData:
		fmt.Fprintf(r.out, "FETCH data for message %v\n", msg.SeqNum)
		for _, item := range msg.Items {
			if b := messageHeaderData(item); b != nil {
				r.printHeader(b)
			}
		}
	default:
		fmt.Fprintf(r.out, "%T\n", msg)
	}

	e := r.codec.encode(msg)
	if !r.debug {
		var buf bytes.Buffer
		if _, err := e.WriteTo(&buf); err != nil {
			r.Logger.Printf("Failed to encode %v: %v", r.mode, err)
			return
		}
		fmt.Fprintf(r.out, "  %q\n", buf.Bytes())
		return
	}
	for {
		f, ok := e.Next()
		if !ok {
			break
		}
		switch f := f.(type) {
		case imapcodec.LineFragment:
			fmt.Fprintf(r.out, "  line %q\n", f.Data)
		case imapcodec.LiteralFragment:
			fmt.Fprintf(r.out, "  literal (%v) %q\n", f.Mode, f.Data)
		}
	}
}

// messageHeaderData returns the data of a FETCH item which starts with a
// message header.
func messageHeaderData(item imap.FetchItemData) []byte {
	var (
		data      imap.IString
		specifier imap.PartSpecifier
	)
	switch item := item.(type) {
	case imap.FetchItemDataBodySection:
		if len(item.Section.Part) > 0 || item.Origin != nil {
			return nil
		}
		data, specifier = item.Data, item.Section.Specifier
	case imap.FetchItemDataRFC822:
		data, specifier = item.Data, item.Specifier
	default:
		return nil
	}
	if data == nil || (specifier != imap.PartSpecifierNone && specifier != imap.PartSpecifierHeader) {
		return nil
	}
	return data.Bytes()
}

func (r *repl) printHeader(b []byte) {
	header, err := textproto.ReadHeader(bufio.NewReader(bytes.NewReader(b)))
	if err != nil {
		r.Logger.Printf("Failed to read message header: %v", err)
		return
	}
	fields := header.Fields()
	for fields.Next() {
		fmt.Fprintf(r.out, "  %v: %v\n", fields.Key(), fields.Value())
	}
}
