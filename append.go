package imap

import (
	"time"
)

// AppendCommand appends a message to a mailbox.
//
// Flags and Time are optional. The message is always sent as a literal.
type AppendCommand struct {
	Mailbox string
	Flags   []Flag
	Time    time.Time
	Message Literal
}

func (*AppendCommand) commandBody() {}

func (cmd *AppendCommand) Validate() error {
	if err := validateMailbox(cmd.Mailbox); err != nil {
		return err
	}
	if err := validateFlags(cmd.Flags); err != nil {
		return err
	}
	if !cmd.Time.IsZero() {
		if err := validateDateTime(cmd.Time); err != nil {
			return err
		}
	}
	return cmd.Message.Validate()
}
