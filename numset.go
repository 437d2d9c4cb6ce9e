package imap

import (
	"fmt"

	"github.com/emersion/go-imap-codec/internal/imapnum"
)

// SeqSet is a set of message sequence numbers or UIDs, depending on the
// command. The zero value is an empty set, which is invalid in a message.
//
// Sets built with SeqSetNum, SeqSetRange, AddNum, AddRange and ParseSeqSet
// are normalized: ranges are sorted, adjacent and overlapping ranges are
// merged. Messages only accept normalized sets.
type SeqSet imapnum.Set

// SeqRange is a range of numbers. Zero represents "*".
type SeqRange = imapnum.Range

// SeqSetNum returns a new SeqSet containing the specified numbers.
func SeqSetNum(nums ...uint32) SeqSet {
	var s SeqSet
	s.AddNum(nums...)
	return s
}

// SeqSetRange returns a new SeqSet containing a single range.
func SeqSetRange(start, stop uint32) SeqSet {
	var s SeqSet
	s.AddRange(start, stop)
	return s
}

// ParseSeqSet parses a sequence-set, such as "1:3,5,7:*".
func ParseSeqSet(s string) (SeqSet, error) {
	set, err := imapnum.ParseSet(s)
	return SeqSet(set), err
}

func (s SeqSet) String() string {
	return imapnum.Set(s).String()
}

// Dynamic returns true if the set contains "*" or "n:*" values.
func (s SeqSet) Dynamic() bool {
	return imapnum.Set(s).Dynamic()
}

// AddNum inserts new numbers into the set. The value 0 represents "*".
func (s *SeqSet) AddNum(nums ...uint32) {
	(*imapnum.Set)(s).AddNum(nums...)
}

// AddRange inserts a new range into the set.
func (s *SeqSet) AddRange(start, stop uint32) {
	(*imapnum.Set)(s).AddRange(start, stop)
}

func (s SeqSet) validate() error {
	if len(s) == 0 {
		return fmt.Errorf("imap: empty sequence set")
	}
	if !imapnum.Set(s).Normalized() {
		return fmt.Errorf("imap: sequence set %v is not normalized", s)
	}
	return nil
}
