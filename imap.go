// Package imap defines the messages exchanged over an IMAP connection.
//
// IMAP4rev1 is defined in RFC 3501, IMAP4rev2 in RFC 9051. This package
// contains the value model: greetings, commands and responses. Values are
// checked with their Validate method, which New* constructors call. A valid
// value always has a wire representation, see the imapcodec package.
package imap

import (
	"fmt"
	"strings"

	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// MailboxAttr is a mailbox attribute.
//
// Mailbox attributes are defined in RFC 9051 section 7.3.1.
type MailboxAttr string

const (
	// Base attributes
	MailboxAttrNonExistent   MailboxAttr = "\\NonExistent"
	MailboxAttrNoInferiors   MailboxAttr = "\\Noinferiors"
	MailboxAttrNoSelect      MailboxAttr = "\\Noselect"
	MailboxAttrHasChildren   MailboxAttr = "\\HasChildren"
	MailboxAttrHasNoChildren MailboxAttr = "\\HasNoChildren"
	MailboxAttrMarked        MailboxAttr = "\\Marked"
	MailboxAttrUnmarked      MailboxAttr = "\\Unmarked"
	MailboxAttrSubscribed    MailboxAttr = "\\Subscribed"
	MailboxAttrRemote        MailboxAttr = "\\Remote"

	// Role (aka. "special-use") attributes
	MailboxAttrAll     MailboxAttr = "\\All"
	MailboxAttrArchive MailboxAttr = "\\Archive"
	MailboxAttrDrafts  MailboxAttr = "\\Drafts"
	MailboxAttrFlagged MailboxAttr = "\\Flagged"
	MailboxAttrJunk    MailboxAttr = "\\Junk"
	MailboxAttrSent    MailboxAttr = "\\Sent"
	MailboxAttrTrash   MailboxAttr = "\\Trash"
)

func (attr MailboxAttr) validate() error {
	if attr == "\\*" || !isValidFlag(string(attr)) {
		return fmt.Errorf("imap: invalid mailbox attribute %q", attr)
	}
	return nil
}

// Flag is a message flag.
//
// Message flags are defined in RFC 9051 section 2.3.2.
type Flag string

const (
	// System flags
	FlagSeen     Flag = "\\Seen"
	FlagAnswered Flag = "\\Answered"
	FlagFlagged  Flag = "\\Flagged"
	FlagDeleted  Flag = "\\Deleted"
	FlagDraft    Flag = "\\Draft"
	FlagRecent   Flag = "\\Recent" // IMAP4rev1 only

	// Widely used flags
	FlagForwarded Flag = "$Forwarded"
	FlagMDNSent   Flag = "$MDNSent" // Message Disposition Notification sent
	FlagJunk      Flag = "$Junk"
	FlagNotJunk   Flag = "$NotJunk"
	FlagPhishing  Flag = "$Phishing"
	FlagImportant Flag = "$Important" // RFC 8457

	// Permanent flags
	FlagWildcard Flag = "\\*"
)

func (flag Flag) validate() error {
	if !isValidFlag(string(flag)) {
		return fmt.Errorf("imap: invalid flag %q", flag)
	}
	return nil
}

// isValidFlag checks whether the provided string satisfies
// flag-keyword / flag-extension.
func isValidFlag(s string) bool {
	return imapwire.ValidAtom(strings.TrimPrefix(s, "\\"))
}

func validateFlags(flags []Flag) error {
	for _, flag := range flags {
		if err := flag.validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateTag(tag string) error {
	if !imapwire.ValidTag(tag) {
		return fmt.Errorf("imap: invalid tag %q", tag)
	}
	return nil
}

func validateText(text string) error {
	if !imapwire.ValidText(text) {
		return fmt.Errorf("imap: invalid text %q", text)
	}
	return nil
}

func validateAtom(kind, s string) error {
	if !imapwire.ValidAtom(s) {
		return fmt.Errorf("imap: invalid %v %q", kind, s)
	}
	return nil
}

func validateNonEmpty(kind string, n int) error {
	if n == 0 {
		return fmt.Errorf("imap: %v must not be empty", kind)
	}
	return nil
}

func validateNzNumber(kind string, n uint32) error {
	if n == 0 {
		return fmt.Errorf("imap: %v must not be zero", kind)
	}
	return nil
}
