package imap

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// The primary mailbox, as defined in RFC 3501 section 5.1.
const InboxName = "INBOX"

// CanonicalMailboxName returns the canonical form of a mailbox name. The
// special INBOX mailbox is case-insensitive, other names are returned
// unchanged.
func CanonicalMailboxName(name string) string {
	if strings.EqualFold(name, InboxName) {
		return InboxName
	}
	return name
}

// validateMailbox checks a mailbox name. Names are UTF-8 and INBOX must be
// spelled in its canonical form.
func validateMailbox(name string) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("imap: mailbox name %q is not valid UTF-8", name)
	}
	if CanonicalMailboxName(name) != name {
		return fmt.Errorf("imap: mailbox name %q must be spelled %v", name, InboxName)
	}
	return nil
}

func validatePattern(pattern string) error {
	if !utf8.ValidString(pattern) {
		return fmt.Errorf("imap: mailbox pattern %q is not valid UTF-8", pattern)
	}
	return nil
}
