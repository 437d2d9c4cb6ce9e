package imap

import (
	"fmt"
	"time"
)

// SearchCommand searches the mailbox for messages matching all of the
// criteria. Charset is optional.
type SearchCommand struct {
	UID      bool
	Charset  string
	Criteria []SearchKey
}

func (*SearchCommand) commandBody() {}

func (cmd *SearchCommand) Validate() error {
	if cmd.Charset != "" {
		if err := validateCharset(cmd.Charset); err != nil {
			return err
		}
	}
	if err := validateNonEmpty("SEARCH criteria", len(cmd.Criteria)); err != nil {
		return err
	}
	return validateSearchKeys(cmd.Criteria)
}

// SearchKey is a SEARCH criterion.
//
// SearchKey is one of SearchKeySimple, SearchKeyString, SearchKeyKeyword,
// SearchKeyDate, SearchKeyLarger, SearchKeySmaller, SearchKeyHeader,
// SearchKeyNot, SearchKeyOr, SearchKeyUID, SearchKeySeqSet or SearchKeyAnd.
type SearchKey interface {
	searchKey()
}

var (
	_ SearchKey = SearchKeySimple("")
	_ SearchKey = SearchKeyString{}
	_ SearchKey = SearchKeyKeyword{}
	_ SearchKey = SearchKeyDate{}
	_ SearchKey = SearchKeyLarger(0)
	_ SearchKey = SearchKeySmaller(0)
	_ SearchKey = SearchKeyHeader{}
	_ SearchKey = SearchKeyNot{}
	_ SearchKey = SearchKeyOr{}
	_ SearchKey = SearchKeyUID(nil)
	_ SearchKey = SearchKeySeqSet(nil)
	_ SearchKey = SearchKeyAnd(nil)
)

// SearchKeySimple is a search key without arguments.
type SearchKeySimple string

const (
	SearchKeyAll        SearchKeySimple = "ALL"
	SearchKeyAnswered   SearchKeySimple = "ANSWERED"
	SearchKeyDeleted    SearchKeySimple = "DELETED"
	SearchKeyDraft      SearchKeySimple = "DRAFT"
	SearchKeyFlagged    SearchKeySimple = "FLAGGED"
	SearchKeyNew        SearchKeySimple = "NEW"
	SearchKeyOld        SearchKeySimple = "OLD"
	SearchKeyRecent     SearchKeySimple = "RECENT"
	SearchKeySeen       SearchKeySimple = "SEEN"
	SearchKeyUnanswered SearchKeySimple = "UNANSWERED"
	SearchKeyUndeleted  SearchKeySimple = "UNDELETED"
	SearchKeyUndraft    SearchKeySimple = "UNDRAFT"
	SearchKeyUnflagged  SearchKeySimple = "UNFLAGGED"
	SearchKeyUnseen     SearchKeySimple = "UNSEEN"
)

// SearchStringField is the name of a search key matching a string.
type SearchStringField string

const (
	SearchStringBcc     SearchStringField = "BCC"
	SearchStringBody    SearchStringField = "BODY"
	SearchStringCc      SearchStringField = "CC"
	SearchStringFrom    SearchStringField = "FROM"
	SearchStringSubject SearchStringField = "SUBJECT"
	SearchStringText    SearchStringField = "TEXT"
	SearchStringTo      SearchStringField = "TO"
)

// SearchKeyString matches messages containing a string in a field.
type SearchKeyString struct {
	Field SearchStringField
	Value string
}

// SearchKeyKeyword matches messages with a keyword flag set, or unset if Not
// is true.
type SearchKeyKeyword struct {
	Not  bool
	Flag Flag
}

// SearchDateField is the name of a search key matching a date.
type SearchDateField string

const (
	SearchDateBefore     SearchDateField = "BEFORE"
	SearchDateOn         SearchDateField = "ON"
	SearchDateSince      SearchDateField = "SINCE"
	SearchDateSentBefore SearchDateField = "SENTBEFORE"
	SearchDateSentOn     SearchDateField = "SENTON"
	SearchDateSentSince  SearchDateField = "SENTSINCE"
)

// SearchKeyDate matches messages by date. Date must be midnight UTC.
type SearchKeyDate struct {
	Field SearchDateField
	Date  time.Time
}

// SearchKeyLarger matches messages larger than a size in bytes.
type SearchKeyLarger uint32

// SearchKeySmaller matches messages smaller than a size in bytes.
type SearchKeySmaller uint32

// SearchKeyHeader matches messages with a header field containing a value.
type SearchKeyHeader struct {
	Field string
	Value string
}

// SearchKeyNot matches messages which don't match Key.
type SearchKeyNot struct {
	Key SearchKey
}

// SearchKeyOr matches messages matching either key.
type SearchKeyOr struct {
	Left, Right SearchKey
}

// SearchKeyUID matches messages by UID.
type SearchKeyUID SeqSet

// SearchKeySeqSet matches messages by sequence number.
type SearchKeySeqSet SeqSet

// SearchKeyAnd matches messages matching all keys. It is sent as a
// parenthesized list.
type SearchKeyAnd []SearchKey

func (SearchKeySimple) searchKey()  {}
func (SearchKeyString) searchKey()  {}
func (SearchKeyKeyword) searchKey() {}
func (SearchKeyDate) searchKey()    {}
func (SearchKeyLarger) searchKey()  {}
func (SearchKeySmaller) searchKey() {}
func (SearchKeyHeader) searchKey()  {}
func (SearchKeyNot) searchKey()     {}
func (SearchKeyOr) searchKey()      {}
func (SearchKeyUID) searchKey()     {}
func (SearchKeySeqSet) searchKey()  {}
func (SearchKeyAnd) searchKey()     {}

func validateSearchKeys(keys []SearchKey) error {
	for _, key := range keys {
		if err := validateSearchKey(key); err != nil {
			return err
		}
	}
	return nil
}

func validateSearchKey(key SearchKey) error {
	switch key := key.(type) {
	case nil:
		return fmt.Errorf("imap: missing search key")
	case SearchKeySimple:
		switch key {
		case SearchKeyAll, SearchKeyAnswered, SearchKeyDeleted, SearchKeyDraft, SearchKeyFlagged,
			SearchKeyNew, SearchKeyOld, SearchKeyRecent, SearchKeySeen, SearchKeyUnanswered,
			SearchKeyUndeleted, SearchKeyUndraft, SearchKeyUnflagged, SearchKeyUnseen:
			return nil
		default:
			return fmt.Errorf("imap: unknown search key %q", string(key))
		}
	case SearchKeyString:
		switch key.Field {
		case SearchStringBcc, SearchStringBody, SearchStringCc, SearchStringFrom,
			SearchStringSubject, SearchStringText, SearchStringTo:
			return nil
		default:
			return fmt.Errorf("imap: unknown search key %q", string(key.Field))
		}
	case SearchKeyKeyword:
		return validateAtom("keyword", string(key.Flag))
	case SearchKeyDate:
		switch key.Field {
		case SearchDateBefore, SearchDateOn, SearchDateSince,
			SearchDateSentBefore, SearchDateSentOn, SearchDateSentSince:
			return validateDate(key.Date)
		default:
			return fmt.Errorf("imap: unknown search key %q", string(key.Field))
		}
	case SearchKeyLarger, SearchKeySmaller, SearchKeyHeader:
		return nil
	case SearchKeyNot:
		return validateSearchKey(key.Key)
	case SearchKeyOr:
		if err := validateSearchKey(key.Left); err != nil {
			return err
		}
		return validateSearchKey(key.Right)
	case SearchKeyUID:
		return SeqSet(key).validate()
	case SearchKeySeqSet:
		return SeqSet(key).validate()
	case SearchKeyAnd:
		if err := validateNonEmpty("search key list", len(key)); err != nil {
			return err
		}
		return validateSearchKeys(key)
	default:
		return fmt.Errorf("imap: unknown search key type %T", key)
	}
}
