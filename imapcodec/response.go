package imapcodec

import (
	"fmt"

	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/internal"
	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// ResponseCodec decodes and encodes responses sent by a server after the
// greeting.
type ResponseCodec struct {
	// MaxLiteralSize is the maximum size of a literal. Zero means no limit.
	MaxLiteralSize uint32
}

// Decode parses the response at the start of b.
func (codec ResponseCodec) Decode(b []byte) (remaining []byte, resp imap.Response, err error) {
	remaining, err = decode(b, codec.MaxLiteralSize, func(dec *imapwire.Decoder) (validator, string, error) {
		var (
			tag string
			err error
		)
		resp, tag, err = readResponse(dec)
		return resp, tag, err
	})
	if err != nil {
		return b, nil, err
	}
	return remaining, resp, nil
}

// Encode encodes a response. The response must be valid.
func (ResponseCodec) Encode(resp imap.Response) *Encoded {
	enc := imapwire.NewEncoder()
	writeResponse(enc, resp)
	enc.CRLF()
	return newEncoded(enc)
}

func readResponse(dec *imapwire.Decoder) (imap.Response, string, error) {
	if dec.Special('+') {
		resp, err := readContinuation(dec)
		return resp, "", err
	}
	if dec.Special('*') {
		if !dec.ExpectSP() {
			return nil, "", dec.Err()
		}
		resp, err := readUntagged(dec)
		if err != nil {
			return nil, "", err
		}
		if !dec.ExpectCRLF() {
			return nil, "", dec.Err()
		}
		return resp, "", nil
	}

	var tag string
	if !dec.Expect(dec.Func(&tag, imapwire.IsTagChar), "tag") || !dec.ExpectSP() {
		return nil, "", dec.Err()
	}
	resp, err := readStatusResponse(dec, tag)
	if err != nil {
		return nil, tag, err
	}
	if !dec.ExpectCRLF() {
		return nil, tag, dec.Err()
	}
	return resp, tag, nil
}

func readContinuation(dec *imapwire.Decoder) (imap.Response, error) {
	if !dec.SP() {
		if dec.Err() != nil {
			return nil, dec.Err()
		}
		// Some servers omit the space when there is no text
		if !dec.ExpectCRLF() {
			return nil, dec.Err()
		}
		return &imap.ContinuationResponse{}, nil
	}

	line, ok := dec.PeekLine()
	if !ok {
		return nil, dec.Err()
	}
	if imapwire.ValidBase64(line) {
		var resp imap.ContinuationDataResponse
		if !dec.Expect(dec.Base64(&resp.Data), "base64") || !dec.ExpectCRLF() {
			return nil, dec.Err()
		}
		return &resp, nil
	}

	code, text, err := readRespText(dec)
	if err != nil {
		return nil, err
	}
	if !dec.ExpectCRLF() {
		return nil, dec.Err()
	}
	return &imap.ContinuationResponse{Code: code, Text: text}, nil
}

func readStatusResponse(dec *imapwire.Decoder, tag string) (*imap.StatusResponse, error) {
	var typ string
	if !dec.ExpectKeyword(&typ) {
		return nil, dec.Err()
	}
	return readStatusResponseArgs(dec, tag, imap.StatusResponseType(typ))
}

func readStatusResponseArgs(dec *imapwire.Decoder, tag string, typ imap.StatusResponseType) (*imap.StatusResponse, error) {
	if !dec.ExpectSP() {
		return nil, dec.Err()
	}
	code, text, err := readRespText(dec)
	if err != nil {
		return nil, err
	}
	return &imap.StatusResponse{Tag: tag, Type: typ, Code: code, Text: text}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func readUntagged(dec *imapwire.Decoder) (imap.Response, error) {
	if dec.PeekFunc(isDigit) {
		return readMessageData(dec)
	}

	var name string
	if !dec.ExpectKeyword(&name) {
		return nil, dec.Err()
	}
	switch typ := imap.StatusResponseType(name); typ {
	case imap.StatusResponseTypeOK, imap.StatusResponseTypeNo, imap.StatusResponseTypeBad, imap.StatusResponseTypeBye:
		return readStatusResponseArgs(dec, "", typ)
	}

	switch name {
	case "CAPABILITY":
		var data imap.CapabilityData
		caps, err := readCapList(dec)
		data.Caps = caps
		return &data, err
	case "ENABLED":
		var data imap.EnabledData
		caps, err := readCapList(dec)
		data.Caps = caps
		return &data, err
	case "LIST":
		data, err := readListData(dec)
		return data, err
	case "LSUB":
		data, err := readListData(dec)
		return (*imap.LsubData)(data), err
	case "STATUS":
		return readStatusData(dec)
	case "SEARCH":
		var data imap.SearchData
		for dec.SP() {
			var n uint32
			if !dec.ExpectNzNumber(&n) {
				return nil, dec.Err()
			}
			data.Nums = append(data.Nums, n)
		}
		return &data, dec.Err()
	case "FLAGS":
		if !dec.ExpectSP() {
			return nil, dec.Err()
		}
		flags, err := internal.ReadFlagList(dec)
		return &imap.FlagsData{Flags: flags}, err
	default:
		return nil, fmt.Errorf("unsupported untagged response %q", name)
	}
}

func readCapList(dec *imapwire.Decoder) ([]imap.Cap, error) {
	var caps []imap.Cap
	for dec.SP() {
		var c string
		if !dec.ExpectAtom(&c) {
			return nil, dec.Err()
		}
		caps = append(caps, imap.Cap(c))
	}
	return caps, dec.Err()
}

func readMessageData(dec *imapwire.Decoder) (imap.Response, error) {
	var (
		n    uint32
		name string
	)
	if !dec.ExpectNumber(&n) || !dec.ExpectSP() || !dec.ExpectKeyword(&name) {
		return nil, dec.Err()
	}
	switch name {
	case "EXISTS":
		return &imap.ExistsData{NumMessages: n}, nil
	case "RECENT":
		return &imap.RecentData{NumRecent: n}, nil
	case "EXPUNGE":
		return &imap.ExpungeData{SeqNum: n}, nil
	case "FETCH":
		data := imap.FetchData{SeqNum: n}
		if !dec.ExpectSP() {
			return nil, dec.Err()
		}
		return &data, readMsgAtt(dec, &data)
	default:
		return nil, fmt.Errorf("unsupported message data %q", name)
	}
}

func readListData(dec *imapwire.Decoder) (*imap.ListData, error) {
	var data imap.ListData
	if !dec.ExpectSP() {
		return nil, dec.Err()
	}

	err := dec.ExpectList(func() error {
		attr, err := internal.ReadFlag(dec)
		if err != nil {
			return err
		}
		data.Attrs = append(data.Attrs, imap.MailboxAttr(attr))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !dec.ExpectSP() {
		return nil, dec.Err()
	}
	var delim string
	if dec.Quoted(&delim) {
		if len(delim) != 1 {
			dec.Errorf("mailbox delimiter must be a single character")
			return nil, dec.Err()
		}
		data.Delim = rune(delim[0])
	} else if !dec.ExpectNIL() {
		return nil, dec.Err()
	}

	if !dec.ExpectSP() || !dec.ExpectMailbox(&data.Mailbox) {
		return nil, dec.Err()
	}
	return &data, nil
}

func readStatusData(dec *imapwire.Decoder) (*imap.StatusData, error) {
	var data imap.StatusData
	if !dec.ExpectSP() || !dec.ExpectMailbox(&data.Mailbox) || !dec.ExpectSP() {
		return nil, dec.Err()
	}
	err := dec.ExpectList(func() error {
		var name string
		if !dec.ExpectKeyword(&name) || !dec.ExpectSP() {
			return dec.Err()
		}
		switch imap.StatusItem(name) {
		case imap.StatusItemNumMessages:
			return readStatusNum(dec, &data.NumMessages)
		case imap.StatusItemNumRecent:
			return readStatusNum(dec, &data.NumRecent)
		case imap.StatusItemUIDNext:
			if !dec.ExpectNzNumber(&data.UIDNext) {
				return dec.Err()
			}
		case imap.StatusItemUIDValidity:
			if !dec.ExpectNzNumber(&data.UIDValidity) {
				return dec.Err()
			}
		case imap.StatusItemNumUnseen:
			return readStatusNum(dec, &data.NumUnseen)
		case imap.StatusItemNumDeleted:
			return readStatusNum(dec, &data.NumDeleted)
		case imap.StatusItemSize:
			var size int64
			if !dec.ExpectNumber64(&size) {
				return dec.Err()
			}
			data.Size = &size
		default:
			return fmt.Errorf("unknown STATUS data item %q", name)
		}
		return nil
	})
	return &data, err
}

func readStatusNum(dec *imapwire.Decoder, ptr **uint32) error {
	var n uint32
	if !dec.ExpectNumber(&n) {
		return dec.Err()
	}
	*ptr = &n
	return nil
}

func writeResponse(enc *imapwire.Encoder, resp imap.Response) {
	switch resp := resp.(type) {
	case *imap.StatusResponse:
		if resp.Tag == "" {
			enc.Special('*')
		} else {
			enc.Atom(resp.Tag)
		}
		enc.SP().Atom(string(resp.Type)).SP()
		enc.RespText(resp.Code, resp.Text)
	case *imap.ContinuationResponse:
		enc.Special('+').SP()
		enc.RespText(resp.Code, resp.Text)
	case *imap.ContinuationDataResponse:
		enc.Special('+').SP().Base64(resp.Data)
	case *imap.CapabilityData:
		enc.Special('*').SP().Atom("CAPABILITY")
		for _, c := range resp.Caps {
			enc.SP().Atom(string(c))
		}
	case *imap.EnabledData:
		enc.Special('*').SP().Atom("ENABLED")
		for _, c := range resp.Caps {
			enc.SP().Atom(string(c))
		}
	case *imap.ListData:
		writeListData(enc, "LIST", resp)
	case *imap.LsubData:
		writeListData(enc, "LSUB", (*imap.ListData)(resp))
	case *imap.StatusData:
		writeStatusData(enc, resp)
	case *imap.SearchData:
		enc.Special('*').SP().Atom("SEARCH")
		for _, n := range resp.Nums {
			enc.SP().Number(n)
		}
	case *imap.FlagsData:
		enc.Special('*').SP().Atom("FLAGS").SP()
		internal.WriteFlagList(enc, resp.Flags)
	case *imap.ExistsData:
		enc.Special('*').SP().Number(resp.NumMessages).SP().Atom("EXISTS")
	case *imap.RecentData:
		enc.Special('*').SP().Number(resp.NumRecent).SP().Atom("RECENT")
	case *imap.ExpungeData:
		enc.Special('*').SP().Number(resp.SeqNum).SP().Atom("EXPUNGE")
	case *imap.FetchData:
		writeFetchData(enc, resp)
	default:
		panic(fmt.Errorf("imapcodec: unknown response type %T", resp))
	}
}

func writeListData(enc *imapwire.Encoder, name string, data *imap.ListData) {
	enc.Special('*').SP().Atom(name).SP()
	enc.List(len(data.Attrs), func(i int) {
		enc.Flag(string(data.Attrs[i]))
	})
	enc.SP()
	if data.Delim == 0 {
		enc.NIL()
	} else {
		enc.Quoted(string(data.Delim))
	}
	enc.SP().Mailbox(data.Mailbox)
}

func writeStatusData(enc *imapwire.Encoder, data *imap.StatusData) {
	enc.Special('*').SP().Atom("STATUS").SP().Mailbox(data.Mailbox).SP()
	list := enc.BeginList()
	if data.NumMessages != nil {
		list.Item().Atom(string(imap.StatusItemNumMessages)).SP().Number(*data.NumMessages)
	}
	if data.NumRecent != nil {
		list.Item().Atom(string(imap.StatusItemNumRecent)).SP().Number(*data.NumRecent)
	}
	if data.UIDNext != 0 {
		list.Item().Atom(string(imap.StatusItemUIDNext)).SP().Number(data.UIDNext)
	}
	if data.UIDValidity != 0 {
		list.Item().Atom(string(imap.StatusItemUIDValidity)).SP().Number(data.UIDValidity)
	}
	if data.NumUnseen != nil {
		list.Item().Atom(string(imap.StatusItemNumUnseen)).SP().Number(*data.NumUnseen)
	}
	if data.NumDeleted != nil {
		list.Item().Atom(string(imap.StatusItemNumDeleted)).SP().Number(*data.NumDeleted)
	}
	if data.Size != nil {
		list.Item().Atom(string(imap.StatusItemSize)).SP().Number64(*data.Size)
	}
	list.End()
}
