package imap

import (
	"fmt"
)

// Command is a command sent by the client.
type Command struct {
	Tag  string
	Body CommandBody
}

// NewCommand creates a new command.
func NewCommand(tag string, body CommandBody) (*Command, error) {
	cmd := &Command{Tag: tag, Body: body}
	return cmd, cmd.Validate()
}

func (cmd *Command) Validate() error {
	if err := validateTag(cmd.Tag); err != nil {
		return err
	}
	if cmd.Body == nil {
		return fmt.Errorf("imap: missing command body")
	}
	if err := cmd.Body.Validate(); err != nil {
		return fmt.Errorf("in %v command: %w", cmd.Body.Name(), err)
	}
	return nil
}

// CommandBody is the part of a command following the tag.
type CommandBody interface {
	// Name returns the command name, as sent on the wire.
	Name() string
	Validate() error

	commandBody()
}

var (
	_ CommandBody = (*CapabilityCommand)(nil)
	_ CommandBody = (*NoopCommand)(nil)
	_ CommandBody = (*LogoutCommand)(nil)
	_ CommandBody = (*StartTLSCommand)(nil)
	_ CommandBody = (*AuthenticateCommand)(nil)
	_ CommandBody = (*LoginCommand)(nil)
	_ CommandBody = (*SelectCommand)(nil)
	_ CommandBody = (*ExamineCommand)(nil)
	_ CommandBody = (*CreateCommand)(nil)
	_ CommandBody = (*DeleteCommand)(nil)
	_ CommandBody = (*RenameCommand)(nil)
	_ CommandBody = (*SubscribeCommand)(nil)
	_ CommandBody = (*UnsubscribeCommand)(nil)
	_ CommandBody = (*ListCommand)(nil)
	_ CommandBody = (*LsubCommand)(nil)
	_ CommandBody = (*StatusCommand)(nil)
	_ CommandBody = (*AppendCommand)(nil)
	_ CommandBody = (*IdleCommand)(nil)
	_ CommandBody = (*EnableCommand)(nil)
	_ CommandBody = (*CheckCommand)(nil)
	_ CommandBody = (*CloseCommand)(nil)
	_ CommandBody = (*UnselectCommand)(nil)
	_ CommandBody = (*ExpungeCommand)(nil)
	_ CommandBody = (*UIDExpungeCommand)(nil)
	_ CommandBody = (*SearchCommand)(nil)
	_ CommandBody = (*FetchCommand)(nil)
	_ CommandBody = (*StoreCommand)(nil)
	_ CommandBody = (*CopyCommand)(nil)
	_ CommandBody = (*MoveCommand)(nil)
)

func (*CapabilityCommand) Name() string   { return "CAPABILITY" }
func (*NoopCommand) Name() string         { return "NOOP" }
func (*LogoutCommand) Name() string       { return "LOGOUT" }
func (*StartTLSCommand) Name() string     { return "STARTTLS" }
func (*AuthenticateCommand) Name() string { return "AUTHENTICATE" }
func (*LoginCommand) Name() string        { return "LOGIN" }
func (*SelectCommand) Name() string       { return "SELECT" }
func (*ExamineCommand) Name() string      { return "EXAMINE" }
func (*CreateCommand) Name() string       { return "CREATE" }
func (*DeleteCommand) Name() string       { return "DELETE" }
func (*RenameCommand) Name() string       { return "RENAME" }
func (*SubscribeCommand) Name() string    { return "SUBSCRIBE" }
func (*UnsubscribeCommand) Name() string  { return "UNSUBSCRIBE" }
func (*ListCommand) Name() string         { return "LIST" }
func (*LsubCommand) Name() string         { return "LSUB" }
func (*StatusCommand) Name() string       { return "STATUS" }
func (*AppendCommand) Name() string       { return "APPEND" }
func (*IdleCommand) Name() string         { return "IDLE" }
func (*EnableCommand) Name() string       { return "ENABLE" }
func (*CheckCommand) Name() string        { return "CHECK" }
func (*CloseCommand) Name() string        { return "CLOSE" }
func (*UnselectCommand) Name() string     { return "UNSELECT" }
func (*ExpungeCommand) Name() string      { return "EXPUNGE" }
func (*UIDExpungeCommand) Name() string   { return "EXPUNGE" }
func (*SearchCommand) Name() string       { return "SEARCH" }
func (*FetchCommand) Name() string        { return "FETCH" }
func (*StoreCommand) Name() string        { return "STORE" }
func (*CopyCommand) Name() string         { return "COPY" }
func (*MoveCommand) Name() string         { return "MOVE" }

// CapabilityCommand requests the list of capabilities.
type CapabilityCommand struct{}

func (*CapabilityCommand) commandBody()    {}
func (*CapabilityCommand) Validate() error { return nil }

type NoopCommand struct{}

func (*NoopCommand) commandBody()    {}
func (*NoopCommand) Validate() error { return nil }

type LogoutCommand struct{}

func (*LogoutCommand) commandBody()    {}
func (*LogoutCommand) Validate() error { return nil }

type StartTLSCommand struct{}

func (*StartTLSCommand) commandBody()    {}
func (*StartTLSCommand) Validate() error { return nil }

// AuthenticateCommand starts a SASL authentication exchange.
//
// If InitialResponse is non-nil, it is sent along with the command (SASL-IR,
// RFC 4959). An empty, non-nil initial response is sent as "=".
type AuthenticateCommand struct {
	Mechanism       string
	InitialResponse []byte
}

func (*AuthenticateCommand) commandBody() {}

func (cmd *AuthenticateCommand) Validate() error {
	return validateAtom("SASL mechanism", cmd.Mechanism)
}

// LoginCommand authenticates with a username and a password. The wire form
// of both strings is preserved.
type LoginCommand struct {
	Username AString
	Password AString
}

func (*LoginCommand) commandBody() {}

func (cmd *LoginCommand) Validate() error {
	if err := validateAString(cmd.Username); err != nil {
		return fmt.Errorf("username: %w", err)
	}
	if err := validateAString(cmd.Password); err != nil {
		return fmt.Errorf("password: %w", err)
	}
	return nil
}

type CreateCommand struct {
	Mailbox string
}

func (*CreateCommand) commandBody() {}

func (cmd *CreateCommand) Validate() error {
	return validateMailbox(cmd.Mailbox)
}

type DeleteCommand struct {
	Mailbox string
}

func (*DeleteCommand) commandBody() {}

func (cmd *DeleteCommand) Validate() error {
	return validateMailbox(cmd.Mailbox)
}

type RenameCommand struct {
	Mailbox string
	NewName string
}

func (*RenameCommand) commandBody() {}

func (cmd *RenameCommand) Validate() error {
	if err := validateMailbox(cmd.Mailbox); err != nil {
		return err
	}
	return validateMailbox(cmd.NewName)
}

type SubscribeCommand struct {
	Mailbox string
}

func (*SubscribeCommand) commandBody() {}

func (cmd *SubscribeCommand) Validate() error {
	return validateMailbox(cmd.Mailbox)
}

type UnsubscribeCommand struct {
	Mailbox string
}

func (*UnsubscribeCommand) commandBody() {}

func (cmd *UnsubscribeCommand) Validate() error {
	return validateMailbox(cmd.Mailbox)
}

// IdleCommand starts an IDLE exchange, which the client ends with a "DONE"
// line.
type IdleCommand struct{}

func (*IdleCommand) commandBody()    {}
func (*IdleCommand) Validate() error { return nil }

// EnableCommand enables server extensions.
type EnableCommand struct {
	Caps []Cap
}

func (*EnableCommand) commandBody() {}

func (cmd *EnableCommand) Validate() error {
	if err := validateNonEmpty("ENABLE capabilities", len(cmd.Caps)); err != nil {
		return err
	}
	return validateCaps(cmd.Caps)
}

type CheckCommand struct{}

func (*CheckCommand) commandBody()    {}
func (*CheckCommand) Validate() error { return nil }

type CloseCommand struct{}

func (*CloseCommand) commandBody()    {}
func (*CloseCommand) Validate() error { return nil }

type UnselectCommand struct{}

func (*UnselectCommand) commandBody()    {}
func (*UnselectCommand) Validate() error { return nil }

type ExpungeCommand struct{}

func (*ExpungeCommand) commandBody()    {}
func (*ExpungeCommand) Validate() error { return nil }

// UIDExpungeCommand expunges messages by UID. It requires IMAP4rev2 or
// UIDPLUS.
type UIDExpungeCommand struct {
	UIDs SeqSet
}

func (*UIDExpungeCommand) commandBody() {}

func (cmd *UIDExpungeCommand) Validate() error {
	return cmd.UIDs.validate()
}
