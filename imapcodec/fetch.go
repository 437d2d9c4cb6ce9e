package imapcodec

import (
	"fmt"
	"strings"

	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/internal"
	"github.com/emersion/go-imap-codec/internal/imapwire"
)

func isFetchAttChar(ch byte) bool {
	return imapwire.IsAtomChar(ch) && ch != '[' && ch != '<'
}

func readFetch(dec *imapwire.Decoder, uid bool) (*imap.FetchCommand, error) {
	cmd := imap.FetchCommand{UID: uid}
	if err := readSeqSetArg(dec, &cmd.SeqSet); err != nil {
		return nil, err
	}
	if !dec.ExpectSP() {
		return nil, dec.Err()
	}

	isList, err := dec.List(func() error {
		item, err := readFetchItem(dec)
		if err != nil {
			return err
		}
		cmd.Items = append(cmd.Items, item)
		return nil
	})
	if err != nil {
		return nil, err
	} else if !isList {
		item, err := readFetchItem(dec)
		if err != nil {
			return nil, err
		}
		cmd.Items = []imap.FetchItem{item}
	}
	return &cmd, nil
}

func readFetchItem(dec *imapwire.Decoder) (imap.FetchItem, error) {
	var name string
	if !dec.Expect(dec.Func(&name, isFetchAttChar), "fetch attribute") {
		return nil, dec.Err()
	}
	name = strings.ToUpper(name)

	switch name {
	case "BODY", "BODY.PEEK":
		if !dec.Special('[') {
			if dec.Err() != nil {
				return nil, dec.Err()
			} else if name == "BODY.PEEK" {
				dec.Expect(false, "'['")
				return nil, dec.Err()
			}
			return imap.FetchItemBody, nil
		}
		item := imap.FetchItemBodySection{Peek: name == "BODY.PEEK"}
		if err := readSection(dec, &item.Section); err != nil {
			return nil, err
		}
		if dec.Special('<') {
			var partial imap.SectionPartial
			if !dec.ExpectNumber(&partial.Offset) || !dec.ExpectSpecial('.') || !dec.ExpectNzNumber(&partial.Size) || !dec.ExpectSpecial('>') {
				return nil, dec.Err()
			}
			item.Partial = &partial
		}
		return &item, dec.Err()
	}

	item := imap.FetchItemKeyword(name)
	switch item {
	case imap.FetchItemAll, imap.FetchItemFast, imap.FetchItemFull, imap.FetchItemBodyStructure,
		imap.FetchItemEnvelope, imap.FetchItemFlags, imap.FetchItemInternalDate, imap.FetchItemRFC822,
		imap.FetchItemRFC822Header, imap.FetchItemRFC822Size, imap.FetchItemRFC822Text, imap.FetchItemUID:
		return item, nil
	default:
		return nil, fmt.Errorf("unknown fetch attribute %q", name)
	}
}

func isSectionPartStart(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSectionSpecChar(ch byte) bool {
	return ch == '.' || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

// readSection reads a section after the opening bracket, up to and including
// the closing bracket.
func readSection(dec *imapwire.Decoder, section *imap.Section) error {
	dot := false
	for dec.PeekFunc(isSectionPartStart) {
		var n uint32
		if !dec.ExpectNzNumber(&n) {
			return dec.Err()
		}
		section.Part = append(section.Part, n)
		if dot = dec.Special('.'); !dot {
			break
		}
	}
	if dec.Err() != nil {
		return dec.Err()
	}

	var spec string
	if dec.Func(&spec, isSectionSpecChar) {
		section.Specifier = imap.PartSpecifier(strings.ToUpper(spec))
		switch section.Specifier {
		case imap.PartSpecifierHeader, imap.PartSpecifierText, imap.PartSpecifierMIME:
			// ok
		case imap.PartSpecifierHeaderFields, imap.PartSpecifierHeaderFieldsNot:
			if !dec.ExpectSP() {
				return dec.Err()
			}
			err := dec.ExpectList(func() error {
				var field string
				if !dec.ExpectAString(&field) {
					return dec.Err()
				}
				section.HeaderFields = append(section.HeaderFields, field)
				return nil
			})
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown section specifier %q", spec)
		}
	}

	if dot && section.Specifier == imap.PartSpecifierNone {
		dec.Expect(false, "section specifier")
		return dec.Err()
	}
	if !dec.ExpectSpecial(']') {
		return dec.Err()
	}
	return nil
}

func writeFetchItems(enc *imapwire.Encoder, items []imap.FetchItem) {
	if len(items) == 1 {
		writeFetchItem(enc, items[0])
		return
	}
	enc.List(len(items), func(i int) {
		writeFetchItem(enc, items[i])
	})
}

func writeFetchItem(enc *imapwire.Encoder, item imap.FetchItem) {
	switch item := item.(type) {
	case imap.FetchItemKeyword:
		enc.Atom(string(item))
	case *imap.FetchItemBodySection:
		enc.Atom("BODY")
		if item.Peek {
			enc.Atom(".PEEK")
		}
		writeSection(enc, &item.Section)
		if item.Partial != nil {
			enc.Special('<').Number(item.Partial.Offset).Special('.').Number(item.Partial.Size).Special('>')
		}
	default:
		panic(fmt.Errorf("imapcodec: unknown FETCH item type %T", item))
	}
}

func writeSection(enc *imapwire.Encoder, section *imap.Section) {
	enc.Special('[')
	enc.Atom(section.PartString())
	if section.Specifier != imap.PartSpecifierNone {
		if len(section.Part) > 0 {
			enc.Special('.')
		}
		enc.Atom(string(section.Specifier))
		if section.HeaderFields != nil {
			enc.SP().List(len(section.HeaderFields), func(i int) {
				enc.AString(section.HeaderFields[i])
			})
		}
	}
	enc.Special(']')
}

func readMsgAtt(dec *imapwire.Decoder, data *imap.FetchData) error {
	return dec.ExpectList(func() error {
		item, err := readFetchItemData(dec)
		if err != nil {
			return err
		}
		data.Items = append(data.Items, item)
		return nil
	})
}

func readFetchItemData(dec *imapwire.Decoder) (imap.FetchItemData, error) {
	var name string
	if !dec.Expect(dec.Func(&name, isFetchAttChar), "message data item") {
		return nil, dec.Err()
	}
	name = strings.ToUpper(name)

	switch name {
	case "BODY":
		if !dec.Special('[') {
			if dec.Err() == nil {
				dec.Errorf("BODY structure isn't supported")
			}
			return nil, dec.Err()
		}
		var item imap.FetchItemDataBodySection
		if err := readSection(dec, &item.Section); err != nil {
			return nil, err
		}
		if dec.Special('<') {
			var origin uint32
			if !dec.ExpectNumber(&origin) || !dec.ExpectSpecial('>') {
				return nil, dec.Err()
			}
			item.Origin = &origin
		}
		if !dec.ExpectSP() {
			return nil, dec.Err()
		}
		var err error
		item.Data, err = readNString(dec)
		return item, err
	case "BODYSTRUCTURE":
		dec.Errorf("BODYSTRUCTURE isn't supported")
		return nil, dec.Err()
	}

	if !dec.ExpectSP() {
		return nil, dec.Err()
	}

	switch imap.FetchItemKeyword(name) {
	case imap.FetchItemFlags:
		flags, err := internal.ReadFlagList(dec)
		return imap.FetchItemDataFlags{Flags: flags}, err
	case imap.FetchItemEnvelope:
		env, err := readEnvelope(dec)
		return imap.FetchItemDataEnvelope{Envelope: env}, err
	case imap.FetchItemInternalDate:
		t, err := readDateTime(dec)
		return imap.FetchItemDataInternalDate{Time: t}, err
	case imap.FetchItemRFC822Size:
		var item imap.FetchItemDataRFC822Size
		if !dec.ExpectNumber64(&item.Size) {
			return nil, dec.Err()
		}
		return item, nil
	case imap.FetchItemUID:
		var item imap.FetchItemDataUID
		if !dec.ExpectNzNumber(&item.UID) {
			return nil, dec.Err()
		}
		return item, nil
	case imap.FetchItemRFC822, imap.FetchItemRFC822Header, imap.FetchItemRFC822Text:
		item := imap.FetchItemDataRFC822{Specifier: rfc822Specifier(name)}
		var err error
		item.Data, err = readNString(dec)
		return item, err
	default:
		return nil, fmt.Errorf("unknown message data item %q", name)
	}
}

func rfc822Specifier(name string) imap.PartSpecifier {
	switch name {
	case "RFC822.HEADER":
		return imap.PartSpecifierHeader
	case "RFC822.TEXT":
		return imap.PartSpecifierText
	default:
		return imap.PartSpecifierNone
	}
}

// readNString reads a nstring and keeps its wire form. NIL is returned as
// nil.
func readNString(dec *imapwire.Decoder) (imap.IString, error) {
	var (
		s    string
		b    []byte
		mode imap.LiteralMode
	)
	switch {
	case dec.Literal(&b, &mode):
		return imap.Literal{Data: b, Mode: mode}, nil
	case dec.Quoted(&s):
		return imap.Quoted(s), nil
	case dec.Err() != nil:
		return nil, dec.Err()
	case dec.ExpectNIL():
		return nil, nil
	default:
		return nil, dec.Err()
	}
}

func writeFetchData(enc *imapwire.Encoder, data *imap.FetchData) {
	enc.Special('*').SP().Number(data.SeqNum).SP().Atom("FETCH").SP()
	enc.List(len(data.Items), func(i int) {
		writeFetchItemData(enc, data.Items[i])
	})
}

func writeFetchItemData(enc *imapwire.Encoder, item imap.FetchItemData) {
	switch item := item.(type) {
	case imap.FetchItemDataFlags:
		enc.Atom(string(imap.FetchItemFlags)).SP()
		internal.WriteFlagList(enc, item.Flags)
	case imap.FetchItemDataEnvelope:
		enc.Atom(string(imap.FetchItemEnvelope)).SP()
		writeEnvelope(enc, item.Envelope)
	case imap.FetchItemDataInternalDate:
		enc.Atom(string(imap.FetchItemInternalDate)).SP().Quoted(item.Time.Format(imap.DateTimeLayout))
	case imap.FetchItemDataRFC822Size:
		enc.Atom(string(imap.FetchItemRFC822Size)).SP().Number64(item.Size)
	case imap.FetchItemDataUID:
		enc.Atom(string(imap.FetchItemUID)).SP().Number(item.UID)
	case imap.FetchItemDataRFC822:
		name := imap.FetchItemRFC822
		switch item.Specifier {
		case imap.PartSpecifierHeader:
			name = imap.FetchItemRFC822Header
		case imap.PartSpecifierText:
			name = imap.FetchItemRFC822Text
		}
		enc.Atom(string(name)).SP()
		writeNString(enc, item.Data)
	case imap.FetchItemDataBodySection:
		enc.Atom("BODY")
		writeSection(enc, &item.Section)
		if item.Origin != nil {
			enc.Special('<').Number(*item.Origin).Special('>')
		}
		enc.SP()
		writeNString(enc, item.Data)
	default:
		panic(fmt.Errorf("imapcodec: unknown FETCH data item type %T", item))
	}
}

func writeNString(enc *imapwire.Encoder, s imap.IString) {
	switch s := s.(type) {
	case nil:
		enc.NIL()
	case imap.Quoted:
		enc.Quoted(string(s))
	case imap.Literal:
		enc.Literal(s.Data, s.Mode)
	default:
		panic(fmt.Errorf("imapcodec: unknown string type %T", s))
	}
}
