// Package imapnum implements sequence sets.
//
// Sequence sets are defined by the sequence-set ABNF rule in RFC 9051.
package imapnum

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// star is the position of "*" when ordering ranges: after every number.
const star = uint64(1) << 32

// Range represents a single seq-number or seq-range value. Zero is used to
// represent "*", which is safe because seq-number uses the nz-number rule. A
// seq-number is represented by setting Start = Stop. The order of values is
// always Start <= Stop, except when representing "n:*", where Start = n and
// Stop = 0.
type Range struct {
	Start, Stop uint32
}

func newRange(start, stop uint32) Range {
	if (stop < start && stop != 0) || start == 0 {
		start, stop = stop, start
	}
	return Range{start, stop}
}

func pos(n uint32) uint64 {
	if n == 0 {
		return star
	}
	return uint64(n)
}

// String returns the range as a seq-number or seq-range string.
func (r Range) String() string {
	if r.Start == r.Stop {
		return formatNum(r.Start)
	}
	return formatNum(r.Start) + ":" + formatNum(r.Stop)
}

func formatNum(n uint32) string {
	if n == 0 {
		return "*"
	}
	return strconv.FormatUint(uint64(n), 10)
}

// Set is a set of message sequence numbers or UIDs. The zero value is an
// empty set.
//
// Sets built with AddNum, AddRange and ParseSet are normalized: ranges are
// sorted and adjacent or overlapping ranges are merged.
type Set []Range

// AddNum inserts new numbers into the set. The value 0 represents "*".
func (s *Set) AddNum(nums ...uint32) {
	for _, n := range nums {
		*s = append(*s, Range{n, n})
	}
	s.normalize()
}

// AddRange inserts a new range into the set.
func (s *Set) AddRange(start, stop uint32) {
	*s = append(*s, newRange(start, stop))
	s.normalize()
}

func (s *Set) normalize() {
	l := *s
	sort.SliceStable(l, func(i, j int) bool {
		return pos(l[i].Start) < pos(l[j].Start)
	})

	out := l[:0]
	for _, r := range l {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if pos(r.Start) <= pos(last.Stop)+1 {
				if pos(r.Stop) > pos(last.Stop) {
					last.Stop = r.Stop
				}
				continue
			}
		}
		out = append(out, r)
	}
	*s = out
}

// Dynamic returns true if the set contains "*" or "n:*" values.
func (s Set) Dynamic() bool {
	return len(s) > 0 && s[len(s)-1].Stop == 0
}

// Normalized reports whether the set is sorted and merged, as produced by
// AddNum, AddRange and ParseSet.
func (s Set) Normalized() bool {
	for i, r := range s {
		if r != newRange(r.Start, r.Stop) {
			return false
		}
		if i > 0 && pos(r.Start) <= pos(s[i-1].Stop)+1 {
			return false
		}
	}
	return true
}

// String returns the IMAP representation of the set.
func (s Set) String() string {
	l := make([]string, len(s))
	for i, r := range s {
		l[i] = r.String()
	}
	return strings.Join(l, ",")
}

// errBadSet is used to report problems with the format of a number set value.
type errBadSet string

func (err errBadSet) Error() string {
	return fmt.Sprintf("imapnum: bad number set value %q", string(err))
}

// parseNum parses a single seq-number value (non-zero uint32 or "*").
func parseNum(v string) (uint32, error) {
	if v == "*" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil || n == 0 || v[0] == '0' {
		return 0, errBadSet(v)
	}
	return uint32(n), nil
}

// ParseSet parses a sequence-set string such as "1:3,5,7:*".
func ParseSet(str string) (Set, error) {
	var s Set
	for _, v := range strings.Split(str, ",") {
		start, stop := v, v
		if i := strings.IndexByte(v, ':'); i >= 0 {
			start, stop = v[:i], v[i+1:]
		}
		a, err := parseNum(start)
		if err != nil {
			return nil, err
		}
		b, err := parseNum(stop)
		if err != nil {
			return nil, err
		}
		s = append(s, newRange(a, b))
	}
	s.normalize()
	return s, nil
}
