package imapcodec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/imapcodec"
)

func uint32Ptr(v uint32) *uint32 { return &v }
func int64Ptr(v int64) *int64    { return &v }

var commandTests = []struct {
	body imap.CommandBody
	raw  string
}{
	{&imap.CapabilityCommand{}, "a CAPABILITY\r\n"},
	{&imap.LogoutCommand{}, "a LOGOUT\r\n"},
	{&imap.StartTLSCommand{}, "a STARTTLS\r\n"},
	{&imap.IdleCommand{}, "a IDLE\r\n"},
	{&imap.CheckCommand{}, "a CHECK\r\n"},
	{&imap.CloseCommand{}, "a CLOSE\r\n"},
	{&imap.UnselectCommand{}, "a UNSELECT\r\n"},
	{&imap.ExpungeCommand{}, "a EXPUNGE\r\n"},
	{&imap.AuthenticateCommand{Mechanism: "PLAIN"}, "a AUTHENTICATE PLAIN\r\n"},
	{
		&imap.AuthenticateCommand{Mechanism: "PLAIN", InitialResponse: []byte("\x00alice\x00pw")},
		"a AUTHENTICATE PLAIN AGFsaWNlAHB3\r\n",
	},
	{&imap.AuthenticateCommand{Mechanism: "EXTERNAL", InitialResponse: []byte{}}, "a AUTHENTICATE EXTERNAL =\r\n"},
	{
		&imap.LoginCommand{Username: imap.Quoted("al ice"), Password: imap.Atom("pw")},
		"a LOGIN \"al ice\" pw\r\n",
	},
	{&imap.SelectCommand{Mailbox: "INBOX"}, "a SELECT INBOX\r\n"},
	{&imap.ExamineCommand{Mailbox: "Sent Items"}, "a EXAMINE \"Sent Items\"\r\n"},
	{&imap.CreateCommand{Mailbox: "Über"}, "a CREATE &ANw-ber\r\n"},
	{&imap.DeleteCommand{Mailbox: "Trash"}, "a DELETE Trash\r\n"},
	{&imap.RenameCommand{Mailbox: "Old", NewName: "New"}, "a RENAME Old New\r\n"},
	{&imap.SubscribeCommand{Mailbox: "Lists/go"}, "a SUBSCRIBE Lists/go\r\n"},
	{&imap.UnsubscribeCommand{Mailbox: "Lists/go"}, "a UNSUBSCRIBE Lists/go\r\n"},
	{&imap.ListCommand{Reference: "", Pattern: "*"}, "a LIST \"\" *\r\n"},
	{&imap.LsubCommand{Reference: "Lists", Pattern: "%"}, "a LSUB Lists %\r\n"},
	{
		&imap.StatusCommand{Mailbox: "INBOX", Items: []imap.StatusItem{imap.StatusItemNumMessages, imap.StatusItemNumUnseen}},
		"a STATUS INBOX (MESSAGES UNSEEN)\r\n",
	},
	{
		&imap.AppendCommand{
			Mailbox: "INBOX",
			Flags:   []imap.Flag{imap.FlagSeen},
			Time:    time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC),
			Message: imap.Literal{Data: []byte("hello"), Mode: imap.LiteralModeSync},
		},
		"a APPEND INBOX (\\Seen) \"02-Jan-2020 03:04:05 +0000\" {5}\r\nhello\r\n",
	},
	{
		&imap.AppendCommand{Mailbox: "INBOX", Message: imap.Literal{Data: []byte{}, Mode: imap.LiteralModeNonSync}},
		"a APPEND INBOX {0+}\r\n\r\n",
	},
	{
		&imap.AppendCommand{
			Mailbox: "Drafts",
			Flags:   []imap.Flag{},
			Message: imap.Literal{Data: []byte("hi"), Mode: imap.LiteralModeNonSync},
		},
		"a APPEND Drafts () {2+}\r\nhi\r\n",
	},
	{&imap.EnableCommand{Caps: []imap.Cap{imap.CapIMAP4rev2}}, "a ENABLE IMAP4rev2\r\n"},
	{&imap.UIDExpungeCommand{UIDs: imap.SeqSetRange(1, 3)}, "a UID EXPUNGE 1:3\r\n"},
	{
		&imap.SearchCommand{
			UID:     true,
			Charset: "UTF-8",
			Criteria: []imap.SearchKey{
				imap.SearchKeyString{Field: imap.SearchStringFrom, Value: "alice"},
				imap.SearchKeyOr{
					Left:  imap.SearchKeySeen,
					Right: imap.SearchKeyNot{Key: imap.SearchKeyLarger(100)},
				},
				imap.SearchKeyDate{Field: imap.SearchDateSince, Date: time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)},
				imap.SearchKeySeqSet(imap.SeqSetRange(1, 10)),
				imap.SearchKeyAnd{
					imap.SearchKeyHeader{Field: "X-Foo", Value: "bar baz"},
					imap.SearchKeyKeyword{Flag: imap.FlagJunk},
				},
				imap.SearchKeyUID(imap.SeqSetNum(5)),
			},
		},
		"a UID SEARCH CHARSET UTF-8 FROM alice OR SEEN NOT LARGER 100 SINCE 2-Jan-2020 1:10 (HEADER X-Foo \"bar baz\" KEYWORD $Junk) UID 5\r\n",
	},
	{
		&imap.SearchCommand{Criteria: []imap.SearchKey{imap.SearchKeySmaller(5), imap.SearchKeyKeyword{Not: true, Flag: "work"}}},
		"a SEARCH SMALLER 5 UNKEYWORD work\r\n",
	},
	{
		&imap.FetchCommand{SeqSet: imap.SeqSetNum(1), Items: []imap.FetchItem{imap.FetchItemAll}},
		"a FETCH 1 ALL\r\n",
	},
	{
		&imap.FetchCommand{
			SeqSet: imap.SeqSetRange(1, 0),
			Items: []imap.FetchItem{
				imap.FetchItemFlags,
				&imap.FetchItemBodySection{
					Section: imap.Section{
						Part:         []uint32{1, 2},
						Specifier:    imap.PartSpecifierHeaderFields,
						HeaderFields: []string{"From", "To"},
					},
					Partial: &imap.SectionPartial{Offset: 0, Size: 100},
					Peek:    true,
				},
			},
		},
		"a FETCH 1:* (FLAGS BODY.PEEK[1.2.HEADER.FIELDS (From To)]<0.100>)\r\n",
	},
	{
		&imap.FetchCommand{
			UID:    true,
			SeqSet: imap.SeqSetNum(42),
			Items:  []imap.FetchItem{imap.FetchItemUID, &imap.FetchItemBodySection{}},
		},
		"a UID FETCH 42 (UID BODY[])\r\n",
	},
	{
		&imap.StoreCommand{
			UID:    true,
			SeqSet: imap.SeqSetNum(1, 3),
			Op:     imap.StoreFlagsAdd,
			Silent: true,
			Flags:  []imap.Flag{imap.FlagSeen, imap.FlagJunk},
		},
		"a UID STORE 1,3 +FLAGS.SILENT (\\Seen $Junk)\r\n",
	},
	{
		&imap.StoreCommand{SeqSet: imap.SeqSetNum(2), Op: imap.StoreFlagsDel, Flags: []imap.Flag{imap.FlagDeleted}},
		"a STORE 2 -FLAGS (\\Deleted)\r\n",
	},
	{&imap.CopyCommand{SeqSet: imap.SeqSetRange(2, 4), Mailbox: "Archive"}, "a COPY 2:4 Archive\r\n"},
	{&imap.MoveCommand{UID: true, SeqSet: imap.SeqSetNum(7), Mailbox: "INBOX"}, "a UID MOVE 7 INBOX\r\n"},
}

func TestCommandRoundTrip(t *testing.T) {
	for _, tc := range commandTests {
		t.Run(tc.raw, func(t *testing.T) {
			cmd, err := imap.NewCommand("a", tc.body)
			require.NoError(t, err)

			b := imapcodec.CommandCodec{}.Encode(cmd).Dump()
			assert.Equal(t, tc.raw, string(b))

			remaining, decoded, err := imapcodec.CommandCodec{}.Decode(b)
			require.NoError(t, err)
			assert.Empty(t, remaining)
			assert.Equal(t, cmd, decoded)
		})
	}
}

func TestDecodeCommandLenient(t *testing.T) {
	tests := []struct {
		raw  string
		want imap.CommandBody
	}{
		{"a noop\r\n", &imap.NoopCommand{}},
		{"a select inbox\r\n", &imap.SelectCommand{Mailbox: "INBOX"}},
		{"a fetch 1 body[text]\r\n", &imap.FetchCommand{
			SeqSet: imap.SeqSetNum(1),
			Items:  []imap.FetchItem{&imap.FetchItemBodySection{Section: imap.Section{Specifier: imap.PartSpecifierText}}},
		}},
		{"a STORE 1 FLAGS \\Seen \\Answered\r\n", &imap.StoreCommand{
			SeqSet: imap.SeqSetNum(1),
			Op:     imap.StoreFlagsSet,
			Flags:  []imap.Flag{imap.FlagSeen, imap.FlagAnswered},
		}},
		{"a SEARCH ON \"1-Feb-1994\"\r\n", &imap.SearchCommand{Criteria: []imap.SearchKey{
			imap.SearchKeyDate{Field: imap.SearchDateOn, Date: time.Date(1994, time.February, 1, 0, 0, 0, 0, time.UTC)},
		}}},
		{"a LOGIN {5+}\r\nalice {3+}\r\npw!\r\n", &imap.LoginCommand{
			Username: imap.Literal{Data: []byte("alice"), Mode: imap.LiteralModeNonSync},
			Password: imap.Literal{Data: []byte("pw!"), Mode: imap.LiteralModeNonSync},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			_, cmd, err := imapcodec.CommandCodec{}.Decode([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, cmd.Body)
		})
	}
}

var responseTests = []struct {
	resp imap.Response
	raw  string
}{
	{
		&imap.StatusResponse{Tag: "a", Type: imap.StatusResponseTypeOK, Code: imap.ResponseCodeReadWrite, Text: "SELECT completed"},
		"a OK [READ-WRITE] SELECT completed\r\n",
	},
	{
		&imap.StatusResponse{Tag: "b", Type: imap.StatusResponseTypeNo, Code: imap.CodeOther{Name: "X-FOO", Text: "bar baz"}, Text: "Nope"},
		"b NO [X-FOO bar baz] Nope\r\n",
	},
	{
		&imap.StatusResponse{Type: imap.StatusResponseTypeBye, Text: "Logging out"},
		"* BYE Logging out\r\n",
	},
	{
		&imap.StatusResponse{Type: imap.StatusResponseTypeOK, Code: imap.CodeUIDValidity{UID: 42}},
		"* OK [UIDVALIDITY 42]\r\n",
	},
	{
		&imap.StatusResponse{Type: imap.StatusResponseTypeOK, Code: imap.CodeUIDNext{UID: 7}, Text: "Predicted next UID"},
		"* OK [UIDNEXT 7] Predicted next UID\r\n",
	},
	{
		&imap.StatusResponse{Type: imap.StatusResponseTypeOK, Code: imap.CodeUnseen{SeqNum: 3}, Text: "First unseen"},
		"* OK [UNSEEN 3] First unseen\r\n",
	},
	{
		&imap.StatusResponse{Tag: "c", Type: imap.StatusResponseTypeBad, Code: imap.CodeBadCharset{Charsets: []string{"UTF-8", "x y"}}, Text: "Bad charset"},
		"c BAD [BADCHARSET (UTF-8 \"x y\")] Bad charset\r\n",
	},
	{
		&imap.StatusResponse{Tag: "c", Type: imap.StatusResponseTypeNo, Code: imap.CodeBadCharset{}, Text: "Bad charset"},
		"c NO [BADCHARSET] Bad charset\r\n",
	},
	{
		&imap.StatusResponse{Type: imap.StatusResponseTypeOK, Code: imap.CodePermanentFlags{Flags: []imap.Flag{imap.FlagSeen, imap.FlagWildcard}}, Text: "Limited"},
		"* OK [PERMANENTFLAGS (\\Seen \\*)] Limited\r\n",
	},
	{&imap.ContinuationResponse{Text: "Ready"}, "+ Ready\r\n"},
	{&imap.ContinuationResponse{}, "+ \r\n"},
	{&imap.ContinuationResponse{Code: imap.ResponseCodeAlert, Text: "Go ahead"}, "+ [ALERT] Go ahead\r\n"},
	{&imap.ContinuationDataResponse{Data: []byte("hello")}, "+ aGVsbG8=\r\n"},
	{&imap.CapabilityData{Caps: []imap.Cap{imap.CapIMAP4rev1, imap.CapAuthPlain}}, "* CAPABILITY IMAP4rev1 AUTH=PLAIN\r\n"},
	{&imap.EnabledData{Caps: []imap.Cap{imap.CapIMAP4rev2}}, "* ENABLED IMAP4rev2\r\n"},
	{
		&imap.ListData{Attrs: []imap.MailboxAttr{imap.MailboxAttrHasNoChildren}, Delim: '/', Mailbox: "Über"},
		"* LIST (\\HasNoChildren) \"/\" &ANw-ber\r\n",
	},
	{&imap.LsubData{Mailbox: "INBOX"}, "* LSUB () NIL INBOX\r\n"},
	{
		&imap.StatusData{Mailbox: "INBOX", NumMessages: uint32Ptr(2), UIDNext: 10, Size: int64Ptr(1000)},
		"* STATUS INBOX (MESSAGES 2 UIDNEXT 10 SIZE 1000)\r\n",
	},
	{&imap.SearchData{Nums: []uint32{2, 3}}, "* SEARCH 2 3\r\n"},
	{&imap.SearchData{}, "* SEARCH\r\n"},
	{&imap.FlagsData{Flags: []imap.Flag{imap.FlagSeen, imap.FlagDeleted}}, "* FLAGS (\\Seen \\Deleted)\r\n"},
	{&imap.ExistsData{NumMessages: 3}, "* 3 EXISTS\r\n"},
	{&imap.RecentData{NumRecent: 0}, "* 0 RECENT\r\n"},
	{&imap.ExpungeData{SeqNum: 5}, "* 5 EXPUNGE\r\n"},
	{
		&imap.FetchData{SeqNum: 1, Items: []imap.FetchItemData{
			imap.FetchItemDataFlags{Flags: []imap.Flag{imap.FlagSeen}},
			imap.FetchItemDataUID{UID: 4},
			imap.FetchItemDataRFC822Size{Size: 44827},
			imap.FetchItemDataInternalDate{Time: time.Date(1996, time.July, 17, 9, 44, 25, 0, time.UTC)},
		}},
		"* 1 FETCH (FLAGS (\\Seen) UID 4 RFC822.SIZE 44827 INTERNALDATE \"17-Jul-1996 09:44:25 +0000\")\r\n",
	},
	{
		&imap.FetchData{SeqNum: 2, Items: []imap.FetchItemData{
			imap.FetchItemDataRFC822{Specifier: imap.PartSpecifierHeader, Data: imap.Quoted("Subject: hi")},
			imap.FetchItemDataRFC822{Specifier: imap.PartSpecifierText},
			imap.FetchItemDataBodySection{
				Section: imap.Section{Specifier: imap.PartSpecifierText},
				Origin:  uint32Ptr(0),
				Data:    imap.Literal{Data: []byte("hello"), Mode: imap.LiteralModeSync},
			},
		}},
		"* 2 FETCH (RFC822.HEADER \"Subject: hi\" RFC822.TEXT NIL BODY[TEXT]<0> {5}\r\nhello)\r\n",
	},
	{
		&imap.FetchData{SeqNum: 3, Items: []imap.FetchItemData{
			imap.FetchItemDataEnvelope{Envelope: &imap.Envelope{
				Date:    "Wed, 17 Jul 1996 02:23:25 -0700",
				Subject: "IMAP4rev1 WG mtg summary",
				From:    []imap.Address{{Name: "Terry Gray", Mailbox: "gray", Host: "cac.washington.edu"}},
				To: []imap.Address{
					{Mailbox: "imap", Host: "cac.washington.edu"},
					{Name: "John", Mailbox: "john", Host: "example.org"},
				},
				MessageID: "<B27397-0100000@cac.washington.edu>",
			}},
		}},
		"* 3 FETCH (ENVELOPE (\"Wed, 17 Jul 1996 02:23:25 -0700\" \"IMAP4rev1 WG mtg summary\" " +
			"((\"Terry Gray\" NIL \"gray\" \"cac.washington.edu\")) NIL NIL " +
			"((NIL NIL \"imap\" \"cac.washington.edu\")(\"John\" NIL \"john\" \"example.org\")) NIL NIL NIL " +
			"\"<B27397-0100000@cac.washington.edu>\"))\r\n",
	},
}

func TestResponseRoundTrip(t *testing.T) {
	for _, tc := range responseTests {
		t.Run(tc.raw, func(t *testing.T) {
			require.NoError(t, tc.resp.Validate())

			b := imapcodec.ResponseCodec{}.Encode(tc.resp).Dump()
			assert.Equal(t, tc.raw, string(b))

			remaining, decoded, err := imapcodec.ResponseCodec{}.Decode(b)
			require.NoError(t, err)
			assert.Empty(t, remaining)
			assert.Equal(t, tc.resp, decoded)
		})
	}
}

func TestResponseDecodeLiteralFound(t *testing.T) {
	b := []byte("* 1 FETCH (BODY[] {5}\r\nhel")
	_, resp, err := imapcodec.ResponseCodec{}.Decode(b)
	require.ErrorIs(t, err, imapcodec.ErrLiteralFound)
	assert.Nil(t, resp)

	length, ok := imapcodec.IsLiteralFound(err)
	assert.True(t, ok)
	assert.Equal(t, uint32(5), length)

	_, _, err = imapcodec.ResponseCodec{MaxLiteralSize: 4}.Decode(b)
	assert.ErrorIs(t, err, imapcodec.ErrFailed)
}

func TestResponseDecodeFailed(t *testing.T) {
	tests := []string{
		"a PREAUTH hi\r\n",
		"a BYE hi\r\n",
		"* PREAUTH hi\r\n",
		"* OK\r\n",
		"* OK [UIDNEXT 0] zero\r\n",
		"* 1 FETCH (BODYSTRUCTURE (\"TEXT\" \"PLAIN\" NIL NIL NIL \"7BIT\" 3 1))\r\n",
		"* 0 FETCH (UID 1)\r\n",
		"* FOO\r\n",
		"+ a===\r\n",
	}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, _, err := imapcodec.ResponseCodec{}.Decode([]byte(raw))
			assert.ErrorIs(t, err, imapcodec.ErrFailed)
		})
	}
}

func TestResponseFixedZone(t *testing.T) {
	tm := time.Date(1996, time.July, 17, 2, 44, 25, 0, time.FixedZone("", -7*60*60))
	resp := &imap.FetchData{SeqNum: 1, Items: []imap.FetchItemData{imap.FetchItemDataInternalDate{Time: tm}}}
	require.NoError(t, resp.Validate())

	b := imapcodec.ResponseCodec{}.Encode(resp).Dump()
	assert.Equal(t, "* 1 FETCH (INTERNALDATE \"17-Jul-1996 02:44:25 -0700\")\r\n", string(b))

	_, decoded, err := imapcodec.ResponseCodec{}.Decode(b)
	require.NoError(t, err)
	got := decoded.(*imap.FetchData).Items[0].(imap.FetchItemDataInternalDate).Time
	assert.True(t, tm.Equal(got))
	_, offset := got.Zone()
	assert.Equal(t, -7*60*60, offset)
	assert.Equal(t, b, imapcodec.ResponseCodec{}.Encode(decoded).Dump())
}
