package imap

import (
	"fmt"
)

// StatusItem is a data item which can be requested by a STATUS command.
type StatusItem string

const (
	StatusItemNumMessages StatusItem = "MESSAGES"
	StatusItemNumRecent   StatusItem = "RECENT" // IMAP4rev1 only
	StatusItemUIDNext     StatusItem = "UIDNEXT"
	StatusItemUIDValidity StatusItem = "UIDVALIDITY"
	StatusItemNumUnseen   StatusItem = "UNSEEN"
	StatusItemNumDeleted  StatusItem = "DELETED" // requires IMAP4rev2 or QUOTA
	StatusItemSize        StatusItem = "SIZE"    // requires IMAP4rev2 or STATUS=SIZE
)

func (item StatusItem) validate() error {
	switch item {
	case StatusItemNumMessages, StatusItemNumRecent, StatusItemUIDNext, StatusItemUIDValidity,
		StatusItemNumUnseen, StatusItemNumDeleted, StatusItemSize:
		return nil
	default:
		return fmt.Errorf("imap: unknown STATUS item %q", item)
	}
}

// StatusCommand requests the status of a mailbox.
type StatusCommand struct {
	Mailbox string
	Items   []StatusItem
}

func (*StatusCommand) commandBody() {}

func (cmd *StatusCommand) Validate() error {
	if err := validateMailbox(cmd.Mailbox); err != nil {
		return err
	}
	if err := validateNonEmpty("STATUS items", len(cmd.Items)); err != nil {
		return err
	}
	for _, item := range cmd.Items {
		if err := item.validate(); err != nil {
			return err
		}
	}
	return nil
}

// StatusData is the data returned by a STATUS command.
//
// The mailbox name is always populated. The remaining fields are optional.
// On the wire, items are always written in the order of the fields.
type StatusData struct {
	Mailbox string

	NumMessages *uint32
	NumRecent   *uint32
	UIDNext     uint32
	UIDValidity uint32
	NumUnseen   *uint32
	NumDeleted  *uint32
	Size        *int64
}

func (*StatusData) response() {}

func (data *StatusData) Validate() error {
	if err := validateMailbox(data.Mailbox); err != nil {
		return err
	}
	if data.Size != nil && *data.Size < 0 {
		return fmt.Errorf("imap: negative mailbox size")
	}
	return nil
}
