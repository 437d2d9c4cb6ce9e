package imap

import (
	"fmt"

	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// ListCommand lists mailboxes matching a pattern. The pattern may contain
// the "*" and "%" wildcards.
type ListCommand struct {
	Reference string
	Pattern   string
}

func (*ListCommand) commandBody() {}

func (cmd *ListCommand) Validate() error {
	if err := validateMailbox(cmd.Reference); err != nil {
		return err
	}
	return validatePattern(cmd.Pattern)
}

// LsubCommand lists subscribed mailboxes matching a pattern.
type LsubCommand struct {
	Reference string
	Pattern   string
}

func (*LsubCommand) commandBody() {}

func (cmd *LsubCommand) Validate() error {
	return (*ListCommand)(cmd).Validate()
}

// ListData is the mailbox data returned by a LIST command.
type ListData struct {
	Attrs []MailboxAttr
	// Delim is the hierarchy delimiter. Zero means the mailbox has no
	// hierarchy.
	Delim   rune
	Mailbox string
}

func (*ListData) response() {}

func (data *ListData) Validate() error {
	for _, attr := range data.Attrs {
		if err := attr.validate(); err != nil {
			return err
		}
	}
	if data.Delim != 0 && (data.Delim < 0 || data.Delim > 0x7F || !imapwire.IsTextChar(byte(data.Delim))) {
		return fmt.Errorf("imap: invalid hierarchy delimiter %q", data.Delim)
	}
	return validateMailbox(data.Mailbox)
}

// LsubData is the mailbox data returned by a LSUB command.
type LsubData ListData

func (*LsubData) response() {}

func (data *LsubData) Validate() error {
	return (*ListData)(data).Validate()
}
