package imap

// CopyCommand copies messages to another mailbox.
type CopyCommand struct {
	UID     bool
	SeqSet  SeqSet
	Mailbox string
}

func (*CopyCommand) commandBody() {}

func (cmd *CopyCommand) Validate() error {
	if err := cmd.SeqSet.validate(); err != nil {
		return err
	}
	return validateMailbox(cmd.Mailbox)
}

// MoveCommand moves messages to another mailbox. It requires IMAP4rev2 or
// MOVE.
type MoveCommand struct {
	UID     bool
	SeqSet  SeqSet
	Mailbox string
}

func (*MoveCommand) commandBody() {}

func (cmd *MoveCommand) Validate() error {
	return (*CopyCommand)(cmd).Validate()
}
