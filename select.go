package imap

// SelectCommand selects a mailbox.
type SelectCommand struct {
	Mailbox string
}

func (*SelectCommand) commandBody() {}

func (cmd *SelectCommand) Validate() error {
	return validateMailbox(cmd.Mailbox)
}

// ExamineCommand selects a mailbox in read-only mode.
type ExamineCommand struct {
	Mailbox string
}

func (*ExamineCommand) commandBody() {}

func (cmd *ExamineCommand) Validate() error {
	return validateMailbox(cmd.Mailbox)
}
