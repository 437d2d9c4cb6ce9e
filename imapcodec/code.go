package imapcodec

import (
	"strings"

	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/internal"
	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// readRespText reads an optional response code followed by text. The text
// may be empty.
func readRespText(dec *imapwire.Decoder) (imap.Code, string, error) {
	var code imap.Code
	if dec.Special('[') {
		var err error
		code, err = readCode(dec)
		if err != nil {
			return nil, "", err
		}
		if !dec.ExpectSpecial(']') {
			return nil, "", dec.Err()
		}
		if !dec.SP() {
			return code, "", dec.Err()
		}
	}
	var text string
	dec.Text(&text)
	return code, text, dec.Err()
}

func readCode(dec *imapwire.Decoder) (imap.Code, error) {
	var name string
	if !dec.ExpectAtom(&name) {
		return nil, dec.Err()
	}
	name = strings.ToUpper(name)

	switch name {
	case "BADCHARSET":
		var code imap.CodeBadCharset
		if !dec.SP() {
			return code, dec.Err()
		}
		err := dec.ExpectList(func() error {
			charset, err := readCharset(dec)
			code.Charsets = append(code.Charsets, charset)
			return err
		})
		return code, err
	case "CAPABILITY":
		var code imap.CodeCapability
		for dec.SP() {
			var c string
			if !dec.ExpectAtom(&c) {
				return nil, dec.Err()
			}
			code.Caps = append(code.Caps, imap.Cap(c))
		}
		return code, dec.Err()
	case "PERMANENTFLAGS":
		if !dec.ExpectSP() {
			return nil, dec.Err()
		}
		flags, err := internal.ReadFlagList(dec)
		return imap.CodePermanentFlags{Flags: flags}, err
	case "UIDNEXT":
		var code imap.CodeUIDNext
		if !dec.ExpectSP() || !dec.ExpectNzNumber(&code.UID) {
			return nil, dec.Err()
		}
		return code, nil
	case "UIDVALIDITY":
		var code imap.CodeUIDValidity
		if !dec.ExpectSP() || !dec.ExpectNzNumber(&code.UID) {
			return nil, dec.Err()
		}
		return code, nil
	case "UNSEEN":
		var code imap.CodeUnseen
		if !dec.ExpectSP() || !dec.ExpectNzNumber(&code.SeqNum) {
			return nil, dec.Err()
		}
		return code, nil
	}

	if !dec.SP() {
		return imap.ResponseCode(name), dec.Err()
	}
	var text string
	if !dec.Expect(dec.Func(&text, imap.IsCodeTextChar), "response code text") {
		return nil, dec.Err()
	}
	return imap.CodeOther{Name: name, Text: text}, nil
}

func readCharset(dec *imapwire.Decoder) (string, error) {
	var charset string
	if !dec.Atom(&charset) && !dec.ExpectQuoted(&charset) {
		return "", dec.Err()
	}
	return charset, nil
}

