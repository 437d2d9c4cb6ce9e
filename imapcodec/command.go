package imapcodec

import (
	"fmt"
	"time"

	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/internal"
	"github.com/emersion/go-imap-codec/internal/imapnum"
	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// CommandCodec decodes and encodes commands sent by a client.
type CommandCodec struct {
	// MaxLiteralSize is the maximum size of a literal. Zero means no limit.
	MaxLiteralSize uint32
}

// Decode parses the command at the start of b.
//
// If the command contains a synchronizing literal whose data hasn't been
// received yet, a *LiteralFoundError is returned: the server needs to send
// a continuation request before the client sends the literal data.
func (codec CommandCodec) Decode(b []byte) (remaining []byte, cmd *imap.Command, err error) {
	remaining, err = decode(b, codec.MaxLiteralSize, func(dec *imapwire.Decoder) (validator, string, error) {
		cmd = new(imap.Command)
		err := readCommand(dec, cmd)
		return cmd, cmd.Tag, err
	})
	if err != nil {
		return b, nil, err
	}
	return remaining, cmd, nil
}

// Encode encodes a command. The command must be valid.
func (CommandCodec) Encode(cmd *imap.Command) *Encoded {
	enc := imapwire.NewEncoder()
	enc.Atom(cmd.Tag).SP()
	writeCommandBody(enc, cmd.Body)
	enc.CRLF()
	return newEncoded(enc)
}

func readCommand(dec *imapwire.Decoder, cmd *imap.Command) error {
	var name string
	if !dec.Expect(dec.Func(&cmd.Tag, imapwire.IsTagChar), "tag") || !dec.ExpectSP() || !dec.ExpectKeyword(&name) {
		return dec.Err()
	}

	body, err := readCommandBody(dec, name)
	if err != nil {
		return fmt.Errorf("in %v command: %w", name, err)
	}
	if !dec.ExpectCRLF() {
		return dec.Err()
	}
	cmd.Body = body
	return nil
}

func readCommandBody(dec *imapwire.Decoder, name string) (imap.CommandBody, error) {
	switch name {
	case "CAPABILITY":
		return &imap.CapabilityCommand{}, nil
	case "NOOP":
		return &imap.NoopCommand{}, nil
	case "LOGOUT":
		return &imap.LogoutCommand{}, nil
	case "STARTTLS":
		return &imap.StartTLSCommand{}, nil
	case "IDLE":
		return &imap.IdleCommand{}, nil
	case "CHECK":
		return &imap.CheckCommand{}, nil
	case "CLOSE":
		return &imap.CloseCommand{}, nil
	case "UNSELECT":
		return &imap.UnselectCommand{}, nil
	case "EXPUNGE":
		return &imap.ExpungeCommand{}, nil
	case "AUTHENTICATE":
		return readAuthenticate(dec)
	case "LOGIN":
		return readLogin(dec)
	case "SELECT":
		var cmd imap.SelectCommand
		return &cmd, readMailboxArg(dec, &cmd.Mailbox)
	case "EXAMINE":
		var cmd imap.ExamineCommand
		return &cmd, readMailboxArg(dec, &cmd.Mailbox)
	case "CREATE":
		var cmd imap.CreateCommand
		return &cmd, readMailboxArg(dec, &cmd.Mailbox)
	case "DELETE":
		var cmd imap.DeleteCommand
		return &cmd, readMailboxArg(dec, &cmd.Mailbox)
	case "SUBSCRIBE":
		var cmd imap.SubscribeCommand
		return &cmd, readMailboxArg(dec, &cmd.Mailbox)
	case "UNSUBSCRIBE":
		var cmd imap.UnsubscribeCommand
		return &cmd, readMailboxArg(dec, &cmd.Mailbox)
	case "RENAME":
		var cmd imap.RenameCommand
		if err := readMailboxArg(dec, &cmd.Mailbox); err != nil {
			return nil, err
		}
		return &cmd, readMailboxArg(dec, &cmd.NewName)
	case "LIST":
		var cmd imap.ListCommand
		return &cmd, readList(dec, &cmd.Reference, &cmd.Pattern)
	case "LSUB":
		var cmd imap.LsubCommand
		return &cmd, readList(dec, &cmd.Reference, &cmd.Pattern)
	case "STATUS":
		return readStatus(dec)
	case "APPEND":
		return readAppend(dec)
	case "ENABLE":
		return readEnable(dec)
	case "SEARCH":
		return readSearch(dec, false)
	case "FETCH":
		return readFetch(dec, false)
	case "STORE":
		return readStore(dec, false)
	case "COPY":
		return readCopy(dec, false)
	case "MOVE":
		return readMove(dec, false)
	case "UID":
		return readUID(dec)
	default:
		dec.Errorf("unknown command %q", name)
		return nil, dec.Err()
	}
}

func readUID(dec *imapwire.Decoder) (imap.CommandBody, error) {
	var name string
	if !dec.ExpectSP() || !dec.ExpectKeyword(&name) {
		return nil, dec.Err()
	}
	switch name {
	case "SEARCH":
		return readSearch(dec, true)
	case "FETCH":
		return readFetch(dec, true)
	case "STORE":
		return readStore(dec, true)
	case "COPY":
		return readCopy(dec, true)
	case "MOVE":
		return readMove(dec, true)
	case "EXPUNGE":
		var cmd imap.UIDExpungeCommand
		return &cmd, readSeqSetArg(dec, &cmd.UIDs)
	default:
		dec.Errorf("unknown UID command %q", name)
		return nil, dec.Err()
	}
}

func readMailboxArg(dec *imapwire.Decoder, ptr *string) error {
	if !dec.ExpectSP() || !dec.ExpectMailbox(ptr) {
		return dec.Err()
	}
	return nil
}

func readSeqSetArg(dec *imapwire.Decoder, ptr *imap.SeqSet) error {
	if !dec.ExpectSP() || !dec.ExpectNumSet((*imapnum.Set)(ptr)) {
		return dec.Err()
	}
	return nil
}

func readAuthenticate(dec *imapwire.Decoder) (*imap.AuthenticateCommand, error) {
	var cmd imap.AuthenticateCommand
	if !dec.ExpectSP() || !dec.ExpectAtom(&cmd.Mechanism) {
		return nil, dec.Err()
	}
	if !dec.SP() {
		return &cmd, dec.Err()
	}
	ir, err := internal.ReadSASL(dec)
	if err != nil {
		return nil, fmt.Errorf("in initial response: %w", err)
	}
	cmd.InitialResponse = ir
	return &cmd, nil
}

func readLogin(dec *imapwire.Decoder) (*imap.LoginCommand, error) {
	var cmd imap.LoginCommand
	var err error
	if !dec.ExpectSP() {
		return nil, dec.Err()
	}
	if cmd.Username, err = readAString(dec); err != nil {
		return nil, err
	}
	if !dec.ExpectSP() {
		return nil, dec.Err()
	}
	if cmd.Password, err = readAString(dec); err != nil {
		return nil, err
	}
	return &cmd, nil
}

func readList(dec *imapwire.Decoder, ref, pattern *string) error {
	if !dec.ExpectSP() || !dec.ExpectMailbox(ref) || !dec.ExpectSP() || !dec.ExpectListMailbox(pattern) {
		return dec.Err()
	}
	return nil
}

func readStatus(dec *imapwire.Decoder) (*imap.StatusCommand, error) {
	var cmd imap.StatusCommand
	if err := readMailboxArg(dec, &cmd.Mailbox); err != nil {
		return nil, err
	}
	if !dec.ExpectSP() {
		return nil, dec.Err()
	}
	err := dec.ExpectList(func() error {
		var item string
		if !dec.ExpectKeyword(&item) {
			return dec.Err()
		}
		cmd.Items = append(cmd.Items, imap.StatusItem(item))
		return nil
	})
	return &cmd, err
}

func readAppend(dec *imapwire.Decoder) (*imap.AppendCommand, error) {
	var cmd imap.AppendCommand
	if err := readMailboxArg(dec, &cmd.Mailbox); err != nil {
		return nil, err
	}
	if !dec.ExpectSP() {
		return nil, dec.Err()
	}

	if dec.Peek('(') {
		flags, err := internal.ReadFlagList(dec)
		if err != nil {
			return nil, err
		}
		if flags == nil {
			flags = []imap.Flag{}
		}
		cmd.Flags = flags
		if !dec.ExpectSP() {
			return nil, dec.Err()
		}
	}

	if dec.Peek('"') {
		t, err := readDateTime(dec)
		if err != nil {
			return nil, err
		}
		cmd.Time = t
		if !dec.ExpectSP() {
			return nil, dec.Err()
		}
	}

	if !dec.ExpectLiteral(&cmd.Message.Data, &cmd.Message.Mode) {
		return nil, dec.Err()
	}
	return &cmd, nil
}

func readEnable(dec *imapwire.Decoder) (*imap.EnableCommand, error) {
	var cmd imap.EnableCommand
	for {
		var c string
		if !dec.ExpectSP() || !dec.ExpectAtom(&c) {
			return nil, dec.Err()
		}
		cmd.Caps = append(cmd.Caps, imap.Cap(c))
		if !dec.Peek(' ') {
			return &cmd, dec.Err()
		}
	}
}

func readStore(dec *imapwire.Decoder, uid bool) (*imap.StoreCommand, error) {
	cmd := imap.StoreCommand{UID: uid}
	if err := readSeqSetArg(dec, &cmd.SeqSet); err != nil {
		return nil, err
	}

	var item string
	if !dec.ExpectSP() || !dec.ExpectKeyword(&item) || !dec.ExpectSP() {
		return nil, dec.Err()
	}
	switch item {
	case "FLAGS", "FLAGS.SILENT":
		cmd.Op = imap.StoreFlagsSet
	case "+FLAGS", "+FLAGS.SILENT":
		cmd.Op = imap.StoreFlagsAdd
	case "-FLAGS", "-FLAGS.SILENT":
		cmd.Op = imap.StoreFlagsDel
	default:
		return nil, fmt.Errorf("unknown STORE data item %q", item)
	}
	cmd.Silent = len(item) > len(".SILENT") && item[len(item)-len(".SILENT"):] == ".SILENT"

	if dec.Peek('(') {
		flags, err := internal.ReadFlagList(dec)
		if err != nil {
			return nil, err
		}
		cmd.Flags = flags
		return &cmd, nil
	}
	for {
		flag, err := internal.ReadFlag(dec)
		if err != nil {
			return nil, err
		}
		cmd.Flags = append(cmd.Flags, imap.Flag(flag))
		if !dec.SP() {
			return &cmd, dec.Err()
		}
	}
}

func readCopy(dec *imapwire.Decoder, uid bool) (*imap.CopyCommand, error) {
	cmd := imap.CopyCommand{UID: uid}
	if err := readSeqSetArg(dec, &cmd.SeqSet); err != nil {
		return nil, err
	}
	return &cmd, readMailboxArg(dec, &cmd.Mailbox)
}

func readMove(dec *imapwire.Decoder, uid bool) (*imap.MoveCommand, error) {
	cmd := imap.MoveCommand{UID: uid}
	if err := readSeqSetArg(dec, &cmd.SeqSet); err != nil {
		return nil, err
	}
	return &cmd, readMailboxArg(dec, &cmd.Mailbox)
}

// readAString reads an astring and keeps its wire form.
func readAString(dec *imapwire.Decoder) (imap.AString, error) {
	var (
		s    string
		b    []byte
		mode imap.LiteralMode
	)
	switch {
	case dec.Func(&s, imapwire.IsAStringChar):
		return imap.Atom(s), nil
	case dec.Literal(&b, &mode):
		return imap.Literal{Data: b, Mode: mode}, nil
	case dec.ExpectQuoted(&s):
		return imap.Quoted(s), nil
	default:
		return nil, dec.Err()
	}
}

func readDateTime(dec *imapwire.Decoder) (time.Time, error) {
	var s string
	if !dec.Expect(dec.Quoted(&s), "date-time") {
		return time.Time{}, dec.Err()
	}
	return imap.ParseDateTime(s)
}

func writeCommandBody(enc *imapwire.Encoder, body imap.CommandBody) {
	switch body := body.(type) {
	case *imap.CapabilityCommand, *imap.NoopCommand, *imap.LogoutCommand, *imap.StartTLSCommand,
		*imap.IdleCommand, *imap.CheckCommand, *imap.CloseCommand, *imap.UnselectCommand,
		*imap.ExpungeCommand:
		enc.Atom(body.Name())
	case *imap.AuthenticateCommand:
		enc.Atom(body.Name()).SP().Atom(body.Mechanism)
		if body.InitialResponse != nil {
			enc.SP()
			internal.WriteSASL(enc, body.InitialResponse)
		}
	case *imap.LoginCommand:
		enc.Atom(body.Name()).SP()
		writeAString(enc, body.Username)
		enc.SP()
		writeAString(enc, body.Password)
	case *imap.SelectCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Mailbox)
	case *imap.ExamineCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Mailbox)
	case *imap.CreateCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Mailbox)
	case *imap.DeleteCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Mailbox)
	case *imap.SubscribeCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Mailbox)
	case *imap.UnsubscribeCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Mailbox)
	case *imap.RenameCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Mailbox).SP().Mailbox(body.NewName)
	case *imap.ListCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Reference).SP().ListMailbox(body.Pattern)
	case *imap.LsubCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Reference).SP().ListMailbox(body.Pattern)
	case *imap.StatusCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Mailbox).SP()
		enc.List(len(body.Items), func(i int) {
			enc.Atom(string(body.Items[i]))
		})
	case *imap.AppendCommand:
		enc.Atom(body.Name()).SP().Mailbox(body.Mailbox).SP()
		if body.Flags != nil {
			internal.WriteFlagList(enc, body.Flags)
			enc.SP()
		}
		if !body.Time.IsZero() {
			enc.Quoted(body.Time.Format(imap.DateTimeLayout)).SP()
		}
		enc.Literal(body.Message.Data, body.Message.Mode)
	case *imap.EnableCommand:
		enc.Atom(body.Name())
		for _, c := range body.Caps {
			enc.SP().Atom(string(c))
		}
	case *imap.UIDExpungeCommand:
		enc.Atom("UID").SP().Atom(body.Name()).SP().NumSet(imapnum.Set(body.UIDs))
	case *imap.SearchCommand:
		writeUID(enc, body.UID).Atom(body.Name())
		writeSearch(enc, body)
	case *imap.FetchCommand:
		writeUID(enc, body.UID).Atom(body.Name()).SP().NumSet(imapnum.Set(body.SeqSet)).SP()
		writeFetchItems(enc, body.Items)
	case *imap.StoreCommand:
		writeUID(enc, body.UID).Atom(body.Name()).SP().NumSet(imapnum.Set(body.SeqSet)).SP()
		enc.Atom(body.Op.String())
		if body.Silent {
			enc.Atom(".SILENT")
		}
		enc.SP()
		internal.WriteFlagList(enc, body.Flags)
	case *imap.CopyCommand:
		writeUID(enc, body.UID).Atom(body.Name()).SP().NumSet(imapnum.Set(body.SeqSet)).SP().Mailbox(body.Mailbox)
	case *imap.MoveCommand:
		writeUID(enc, body.UID).Atom(body.Name()).SP().NumSet(imapnum.Set(body.SeqSet)).SP().Mailbox(body.Mailbox)
	default:
		panic(fmt.Errorf("imapcodec: unknown command body type %T", body))
	}
}

func writeUID(enc *imapwire.Encoder, uid bool) *imapwire.Encoder {
	if uid {
		enc.Atom("UID").SP()
	}
	return enc
}

func writeAString(enc *imapwire.Encoder, s imap.AString) {
	switch s := s.(type) {
	case imap.Atom:
		enc.Atom(string(s))
	case imap.Quoted:
		enc.Quoted(string(s))
	case imap.Literal:
		enc.Literal(s.Data, s.Mode)
	default:
		panic(fmt.Errorf("imapcodec: unknown astring type %T", s))
	}
}
