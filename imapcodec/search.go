package imapcodec

import (
	"fmt"
	"time"

	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/internal/imapnum"
	"github.com/emersion/go-imap-codec/internal/imapwire"
)

func isSeqSetStart(ch byte) bool {
	return (ch >= '0' && ch <= '9') || ch == '*'
}

func readSearch(dec *imapwire.Decoder, uid bool) (*imap.SearchCommand, error) {
	cmd := imap.SearchCommand{UID: uid}
	if !dec.ExpectSP() {
		return nil, dec.Err()
	}

	var key imap.SearchKey
	var err error
	if dec.Peek('(') || dec.PeekFunc(isSeqSetStart) {
		key, err = readSearchKey(dec)
	} else {
		var name string
		if !dec.ExpectKeyword(&name) {
			return nil, dec.Err()
		}
		if name == "CHARSET" {
			if !dec.ExpectSP() {
				return nil, dec.Err()
			}
			if cmd.Charset, err = readCharset(dec); err != nil {
				return nil, err
			}
			if !dec.ExpectSP() {
				return nil, dec.Err()
			}
			key, err = readSearchKey(dec)
		} else {
			key, err = readSearchKeyArgs(dec, name)
		}
	}
	if err != nil {
		return nil, err
	}
	cmd.Criteria = append(cmd.Criteria, key)

	for dec.SP() {
		key, err := readSearchKey(dec)
		if err != nil {
			return nil, err
		}
		cmd.Criteria = append(cmd.Criteria, key)
	}
	return &cmd, dec.Err()
}

func readSearchKey(dec *imapwire.Decoder) (imap.SearchKey, error) {
	if dec.Peek('(') {
		var and imap.SearchKeyAnd
		err := dec.ExpectList(func() error {
			key, err := readSearchKey(dec)
			if err != nil {
				return err
			}
			and = append(and, key)
			return nil
		})
		return and, err
	}
	if dec.PeekFunc(isSeqSetStart) {
		var set imapnum.Set
		if !dec.ExpectNumSet(&set) {
			return nil, dec.Err()
		}
		return imap.SearchKeySeqSet(set), nil
	}

	var name string
	if !dec.ExpectKeyword(&name) {
		return nil, dec.Err()
	}
	return readSearchKeyArgs(dec, name)
}

func readSearchKeyArgs(dec *imapwire.Decoder, name string) (imap.SearchKey, error) {
	switch name {
	case "ALL", "ANSWERED", "DELETED", "DRAFT", "FLAGGED", "NEW", "OLD", "RECENT", "SEEN",
		"UNANSWERED", "UNDELETED", "UNDRAFT", "UNFLAGGED", "UNSEEN":
		return imap.SearchKeySimple(name), nil
	case "BCC", "BODY", "CC", "FROM", "SUBJECT", "TEXT", "TO":
		key := imap.SearchKeyString{Field: imap.SearchStringField(name)}
		if !dec.ExpectSP() || !dec.ExpectAString(&key.Value) {
			return nil, dec.Err()
		}
		return key, nil
	case "KEYWORD", "UNKEYWORD":
		key := imap.SearchKeyKeyword{Not: name == "UNKEYWORD"}
		var flag string
		if !dec.ExpectSP() || !dec.ExpectAtom(&flag) {
			return nil, dec.Err()
		}
		key.Flag = imap.Flag(flag)
		return key, nil
	case "BEFORE", "ON", "SINCE", "SENTBEFORE", "SENTON", "SENTSINCE":
		if !dec.ExpectSP() {
			return nil, dec.Err()
		}
		t, err := readSearchDate(dec)
		if err != nil {
			return nil, err
		}
		return imap.SearchKeyDate{Field: imap.SearchDateField(name), Date: t}, nil
	case "LARGER", "SMALLER":
		var n uint32
		if !dec.ExpectSP() || !dec.ExpectNumber(&n) {
			return nil, dec.Err()
		}
		if name == "LARGER" {
			return imap.SearchKeyLarger(n), nil
		}
		return imap.SearchKeySmaller(n), nil
	case "HEADER":
		var key imap.SearchKeyHeader
		if !dec.ExpectSP() || !dec.ExpectAString(&key.Field) || !dec.ExpectSP() || !dec.ExpectAString(&key.Value) {
			return nil, dec.Err()
		}
		return key, nil
	case "NOT":
		if !dec.ExpectSP() {
			return nil, dec.Err()
		}
		key, err := readSearchKey(dec)
		if err != nil {
			return nil, err
		}
		return imap.SearchKeyNot{Key: key}, nil
	case "OR":
		if !dec.ExpectSP() {
			return nil, dec.Err()
		}
		left, err := readSearchKey(dec)
		if err != nil {
			return nil, err
		}
		if !dec.ExpectSP() {
			return nil, dec.Err()
		}
		right, err := readSearchKey(dec)
		if err != nil {
			return nil, err
		}
		return imap.SearchKeyOr{Left: left, Right: right}, nil
	case "UID":
		var set imapnum.Set
		if !dec.ExpectSP() || !dec.ExpectNumSet(&set) {
			return nil, dec.Err()
		}
		return imap.SearchKeyUID(set), nil
	default:
		return nil, fmt.Errorf("unknown search key %q", name)
	}
}

func isDateChar(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '-'
}

func readSearchDate(dec *imapwire.Decoder) (time.Time, error) {
	var s string
	if !dec.Quoted(&s) && !dec.Expect(dec.Func(&s, isDateChar), "date") {
		return time.Time{}, dec.Err()
	}
	return imap.ParseDate(s)
}

func writeSearch(enc *imapwire.Encoder, cmd *imap.SearchCommand) {
	if cmd.Charset != "" {
		enc.SP().Atom("CHARSET").SP().Charset(cmd.Charset)
	}
	for _, key := range cmd.Criteria {
		enc.SP()
		writeSearchKey(enc, key)
	}
}

func writeSearchKey(enc *imapwire.Encoder, key imap.SearchKey) {
	switch key := key.(type) {
	case imap.SearchKeySimple:
		enc.Atom(string(key))
	case imap.SearchKeyString:
		enc.Atom(string(key.Field)).SP().AString(key.Value)
	case imap.SearchKeyKeyword:
		name := "KEYWORD"
		if key.Not {
			name = "UNKEYWORD"
		}
		enc.Atom(name).SP().Flag(string(key.Flag))
	case imap.SearchKeyDate:
		enc.Atom(string(key.Field)).SP().Atom(key.Date.Format(imap.DateLayout))
	case imap.SearchKeyLarger:
		enc.Atom("LARGER").SP().Number(uint32(key))
	case imap.SearchKeySmaller:
		enc.Atom("SMALLER").SP().Number(uint32(key))
	case imap.SearchKeyHeader:
		enc.Atom("HEADER").SP().AString(key.Field).SP().AString(key.Value)
	case imap.SearchKeyNot:
		enc.Atom("NOT").SP()
		writeSearchKey(enc, key.Key)
	case imap.SearchKeyOr:
		enc.Atom("OR").SP()
		writeSearchKey(enc, key.Left)
		enc.SP()
		writeSearchKey(enc, key.Right)
	case imap.SearchKeyUID:
		enc.Atom("UID").SP().NumSet(imapnum.Set(key))
	case imap.SearchKeySeqSet:
		enc.NumSet(imapnum.Set(key))
	case imap.SearchKeyAnd:
		enc.List(len(key), func(i int) {
			writeSearchKey(enc, key[i])
		})
	default:
		panic(fmt.Errorf("imapcodec: unknown search key type %T", key))
	}
}
