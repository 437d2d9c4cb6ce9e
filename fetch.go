package imap

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FetchCommand retrieves data associated with messages.
type FetchCommand struct {
	UID    bool
	SeqSet SeqSet
	Items  []FetchItem
}

func (*FetchCommand) commandBody() {}

func (cmd *FetchCommand) Validate() error {
	if err := cmd.SeqSet.validate(); err != nil {
		return err
	}
	if err := validateNonEmpty("FETCH items", len(cmd.Items)); err != nil {
		return err
	}
	for _, item := range cmd.Items {
		switch item := item.(type) {
		case nil:
			return fmt.Errorf("imap: missing FETCH item")
		case FetchItemKeyword:
			if err := item.validate(); err != nil {
				return err
			}
			if item.IsMacro() && len(cmd.Items) > 1 {
				return fmt.Errorf("imap: FETCH macro %v must be used alone", item)
			}
		case *FetchItemBodySection:
			if err := item.validate(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("imap: unknown FETCH item type %T", item)
		}
	}
	return nil
}

// FetchItem is a message data item which can be requested by a FETCH command.
//
// FetchItem is either a FetchItemKeyword or a *FetchItemBodySection.
type FetchItem interface {
	fetchItem()
}

var (
	_ FetchItem = FetchItemKeyword("")
	_ FetchItem = (*FetchItemBodySection)(nil)
)

// FetchItemKeyword is a FETCH item described by a single keyword.
type FetchItemKeyword string

func (FetchItemKeyword) fetchItem() {}

const (
	// Macros
	FetchItemAll  FetchItemKeyword = "ALL"
	FetchItemFast FetchItemKeyword = "FAST"
	FetchItemFull FetchItemKeyword = "FULL"

	FetchItemBody          FetchItemKeyword = "BODY"
	FetchItemBodyStructure FetchItemKeyword = "BODYSTRUCTURE"
	FetchItemEnvelope      FetchItemKeyword = "ENVELOPE"
	FetchItemFlags         FetchItemKeyword = "FLAGS"
	FetchItemInternalDate  FetchItemKeyword = "INTERNALDATE"
	FetchItemRFC822        FetchItemKeyword = "RFC822"
	FetchItemRFC822Header  FetchItemKeyword = "RFC822.HEADER"
	FetchItemRFC822Size    FetchItemKeyword = "RFC822.SIZE"
	FetchItemRFC822Text    FetchItemKeyword = "RFC822.TEXT"
	FetchItemUID           FetchItemKeyword = "UID"
)

// IsMacro returns true if the keyword is ALL, FAST or FULL.
func (item FetchItemKeyword) IsMacro() bool {
	switch item {
	case FetchItemAll, FetchItemFast, FetchItemFull:
		return true
	default:
		return false
	}
}

func (item FetchItemKeyword) validate() error {
	switch item {
	case FetchItemAll, FetchItemFast, FetchItemFull, FetchItemBody, FetchItemBodyStructure,
		FetchItemEnvelope, FetchItemFlags, FetchItemInternalDate, FetchItemRFC822,
		FetchItemRFC822Header, FetchItemRFC822Size, FetchItemRFC822Text, FetchItemUID:
		return nil
	default:
		return fmt.Errorf("imap: unknown FETCH item %q", string(item))
	}
}

type PartSpecifier string

const (
	PartSpecifierNone            PartSpecifier = ""
	PartSpecifierHeader          PartSpecifier = "HEADER"
	PartSpecifierHeaderFields    PartSpecifier = "HEADER.FIELDS"
	PartSpecifierHeaderFieldsNot PartSpecifier = "HEADER.FIELDS.NOT"
	PartSpecifierMIME            PartSpecifier = "MIME"
	PartSpecifierText            PartSpecifier = "TEXT"
)

// Section identifies a part of a message, as used by BODY[section].
type Section struct {
	// Part is the MIME part number, e.g. [1, 2] for "1.2".
	Part      []uint32
	Specifier PartSpecifier
	// HeaderFields is populated for HEADER.FIELDS and HEADER.FIELDS.NOT.
	HeaderFields []string
}

func (section *Section) validate() error {
	for _, n := range section.Part {
		if err := validateNzNumber("section part number", n); err != nil {
			return err
		}
	}
	switch section.Specifier {
	case PartSpecifierNone, PartSpecifierHeader, PartSpecifierText:
		// ok
	case PartSpecifierMIME:
		if len(section.Part) == 0 {
			return fmt.Errorf("imap: MIME section specifier requires a part number")
		}
	case PartSpecifierHeaderFields, PartSpecifierHeaderFieldsNot:
		if err := validateNonEmpty("section header fields", len(section.HeaderFields)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("imap: invalid section specifier %q", section.Specifier)
	}
	if section.HeaderFields != nil && section.Specifier != PartSpecifierHeaderFields && section.Specifier != PartSpecifierHeaderFieldsNot {
		return fmt.Errorf("imap: header fields require a HEADER.FIELDS section specifier")
	}
	return nil
}

// PartString returns the dotted part number, e.g. "1.2".
func (section *Section) PartString() string {
	l := make([]string, len(section.Part))
	for i, n := range section.Part {
		l[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(l, ".")
}

type SectionPartial struct {
	Offset, Size uint32
}

// FetchItemBodySection is a FETCH BODY[] data item.
type FetchItemBodySection struct {
	Section Section
	Partial *SectionPartial
	Peek    bool
}

func (*FetchItemBodySection) fetchItem() {}

func (item *FetchItemBodySection) validate() error {
	if item == nil {
		return fmt.Errorf("imap: missing FETCH body section")
	}
	if err := item.Section.validate(); err != nil {
		return err
	}
	if item.Partial != nil && item.Partial.Size == 0 {
		return fmt.Errorf("imap: partial size must not be zero")
	}
	return nil
}

// FetchData is the data returned by a FETCH command for a single message.
type FetchData struct {
	SeqNum uint32
	Items  []FetchItemData
}

func (*FetchData) response() {}

func (data *FetchData) Validate() error {
	if err := validateNzNumber("FETCH sequence number", data.SeqNum); err != nil {
		return err
	}
	if err := validateNonEmpty("FETCH data items", len(data.Items)); err != nil {
		return err
	}
	for _, item := range data.Items {
		if err := validateFetchItemData(item); err != nil {
			return err
		}
	}
	return nil
}

// FetchItemData is a message data item returned by the server.
type FetchItemData interface {
	fetchItemData()
}

var (
	_ FetchItemData = FetchItemDataFlags{}
	_ FetchItemData = FetchItemDataEnvelope{}
	_ FetchItemData = FetchItemDataInternalDate{}
	_ FetchItemData = FetchItemDataRFC822Size{}
	_ FetchItemData = FetchItemDataUID{}
	_ FetchItemData = FetchItemDataRFC822{}
	_ FetchItemData = FetchItemDataBodySection{}
)

// FetchItemDataFlags holds data returned by FETCH FLAGS.
type FetchItemDataFlags struct {
	Flags []Flag
}

// FetchItemDataEnvelope holds data returned by FETCH ENVELOPE.
type FetchItemDataEnvelope struct {
	Envelope *Envelope
}

// FetchItemDataInternalDate holds data returned by FETCH INTERNALDATE.
type FetchItemDataInternalDate struct {
	Time time.Time
}

// FetchItemDataRFC822Size holds data returned by FETCH RFC822.SIZE.
type FetchItemDataRFC822Size struct {
	Size int64
}

// FetchItemDataUID holds data returned by FETCH UID.
type FetchItemDataUID struct {
	UID uint32
}

// FetchItemDataRFC822 holds data returned by FETCH RFC822, RFC822.HEADER
// and RFC822.TEXT. Specifier is respectively PartSpecifierNone,
// PartSpecifierHeader or PartSpecifierText. A nil Data is sent as NIL.
type FetchItemDataRFC822 struct {
	Specifier PartSpecifier
	Data      IString
}

// FetchItemDataBodySection holds data returned by FETCH BODY[]. Origin is
// the offset of partial data. A nil Data is sent as NIL.
type FetchItemDataBodySection struct {
	Section Section
	Origin  *uint32
	Data    IString
}

func (FetchItemDataFlags) fetchItemData()        {}
func (FetchItemDataEnvelope) fetchItemData()     {}
func (FetchItemDataInternalDate) fetchItemData() {}
func (FetchItemDataRFC822Size) fetchItemData()   {}
func (FetchItemDataUID) fetchItemData()          {}
func (FetchItemDataRFC822) fetchItemData()       {}
func (FetchItemDataBodySection) fetchItemData()  {}

func validateFetchItemData(item FetchItemData) error {
	switch item := item.(type) {
	case nil:
		return fmt.Errorf("imap: missing FETCH data item")
	case FetchItemDataFlags:
		return validateFlags(item.Flags)
	case FetchItemDataEnvelope:
		if item.Envelope == nil {
			return fmt.Errorf("imap: missing envelope")
		}
		return item.Envelope.validate()
	case FetchItemDataInternalDate:
		return validateDateTime(item.Time)
	case FetchItemDataRFC822Size:
		if item.Size < 0 {
			return fmt.Errorf("imap: negative RFC822.SIZE")
		}
		return nil
	case FetchItemDataUID:
		return validateNzNumber("UID", item.UID)
	case FetchItemDataRFC822:
		switch item.Specifier {
		case PartSpecifierNone, PartSpecifierHeader, PartSpecifierText:
			// ok
		default:
			return fmt.Errorf("imap: invalid RFC822 specifier %q", item.Specifier)
		}
		return validateIString(item.Data)
	case FetchItemDataBodySection:
		if err := item.Section.validate(); err != nil {
			return err
		}
		return validateIString(item.Data)
	default:
		return fmt.Errorf("imap: unknown FETCH data item type %T", item)
	}
}
