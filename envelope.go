package imap

import (
	"fmt"
	"time"
)

// Envelope is the envelope structure of a message.
//
// Empty strings are sent as NIL, and so are nil address lists.
type Envelope struct {
	Date      string // see ParseMessageDateTime
	Subject   string
	From      []Address
	Sender    []Address
	ReplyTo   []Address
	To        []Address
	Cc        []Address
	Bcc       []Address
	InReplyTo string
	MessageID string
}

// ParseDate parses the Date field.
func (env *Envelope) ParseDate() (time.Time, error) {
	return ParseMessageDateTime(env.Date)
}

func (env *Envelope) validate() error {
	lists := []struct {
		name  string
		addrs []Address
	}{
		{"From", env.From},
		{"Sender", env.Sender},
		{"Reply-To", env.ReplyTo},
		{"To", env.To},
		{"Cc", env.Cc},
		{"Bcc", env.Bcc},
	}
	for _, l := range lists {
		if l.addrs != nil && len(l.addrs) == 0 {
			return fmt.Errorf("imap: envelope %v address list must be nil when empty", l.name)
		}
	}
	return nil
}

// Address represents a sender or recipient of a message.
type Address struct {
	Name    string
	Adl     string // at-domain-list, obsolete source route
	Mailbox string
	Host    string
}

// Addr returns the e-mail address in the form "foo@example.org".
//
// If the address is a start or end of group, the empty string is returned.
func (addr *Address) Addr() string {
	if addr.Mailbox == "" || addr.Host == "" {
		return ""
	}
	return addr.Mailbox + "@" + addr.Host
}

// IsGroupStart returns true if this address is a start of group marker.
//
// In that case, Mailbox contains the group name phrase.
func (addr *Address) IsGroupStart() bool {
	return addr.Host == "" && addr.Mailbox != ""
}

// IsGroupEnd returns true if this address is a end of group marker.
func (addr *Address) IsGroupEnd() bool {
	return addr.Host == "" && addr.Mailbox == ""
}
