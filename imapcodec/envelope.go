package imapcodec

import (
	"fmt"

	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/internal/imapwire"
)

func readEnvelope(dec *imapwire.Decoder) (*imap.Envelope, error) {
	var envelope imap.Envelope

	if !dec.ExpectSpecial('(') {
		return nil, dec.Err()
	}
	if !dec.ExpectNString(&envelope.Date) || !dec.ExpectSP() || !dec.ExpectNString(&envelope.Subject) || !dec.ExpectSP() {
		return nil, dec.Err()
	}

	addrLists := []struct {
		name string
		out  *[]imap.Address
	}{
		{"env-from", &envelope.From},
		{"env-sender", &envelope.Sender},
		{"env-reply-to", &envelope.ReplyTo},
		{"env-to", &envelope.To},
		{"env-cc", &envelope.Cc},
		{"env-bcc", &envelope.Bcc},
	}
	for _, addrList := range addrLists {
		l, err := readAddressList(dec)
		if err != nil {
			return nil, fmt.Errorf("in %v: %w", addrList.name, err)
		} else if !dec.ExpectSP() {
			return nil, dec.Err()
		}
		*addrList.out = l
	}

	if !dec.ExpectNString(&envelope.InReplyTo) || !dec.ExpectSP() || !dec.ExpectNString(&envelope.MessageID) {
		return nil, dec.Err()
	}
	if !dec.ExpectSpecial(')') {
		return nil, dec.Err()
	}
	return &envelope, nil
}

// readAddressList reads a list of addresses. Unlike most lists, addresses
// aren't separated by spaces.
func readAddressList(dec *imapwire.Decoder) ([]imap.Address, error) {
	if !dec.Special('(') {
		if dec.Err() != nil {
			return nil, dec.Err()
		}
		if !dec.ExpectNIL() {
			return nil, dec.Err()
		}
		return nil, nil
	}

	var l []imap.Address
	for !dec.Special(')') {
		if dec.Err() != nil {
			return nil, dec.Err()
		}
		addr, err := readAddress(dec)
		if err != nil {
			return nil, err
		}
		l = append(l, *addr)
	}
	if l == nil {
		dec.Errorf("empty address list")
		return nil, dec.Err()
	}
	return l, nil
}

func readAddress(dec *imapwire.Decoder) (*imap.Address, error) {
	var addr imap.Address
	ok := dec.ExpectSpecial('(') &&
		dec.ExpectNString(&addr.Name) && dec.ExpectSP() &&
		dec.ExpectNString(&addr.Adl) && dec.ExpectSP() &&
		dec.ExpectNString(&addr.Mailbox) && dec.ExpectSP() &&
		dec.ExpectNString(&addr.Host) && dec.ExpectSpecial(')')
	if !ok {
		return nil, fmt.Errorf("in address: %w", dec.Err())
	}
	return &addr, nil
}

func writeEnvelope(enc *imapwire.Encoder, envelope *imap.Envelope) {
	enc.Special('(')
	enc.NString(envelope.Date).SP()
	enc.NString(envelope.Subject).SP()
	writeAddressList(enc, envelope.From)
	enc.SP()
	writeAddressList(enc, envelope.Sender)
	enc.SP()
	writeAddressList(enc, envelope.ReplyTo)
	enc.SP()
	writeAddressList(enc, envelope.To)
	enc.SP()
	writeAddressList(enc, envelope.Cc)
	enc.SP()
	writeAddressList(enc, envelope.Bcc)
	enc.SP()
	enc.NString(envelope.InReplyTo).SP()
	enc.NString(envelope.MessageID)
	enc.Special(')')
}

func writeAddressList(enc *imapwire.Encoder, l []imap.Address) {
	if len(l) == 0 {
		enc.NIL()
		return
	}

	enc.Special('(')
	for _, addr := range l {
		enc.Special('(')
		enc.NString(addr.Name).SP()
		enc.NString(addr.Adl).SP()
		enc.NString(addr.Mailbox).SP()
		enc.NString(addr.Host)
		enc.Special(')')
	}
	enc.Special(')')
}
