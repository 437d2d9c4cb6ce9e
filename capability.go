package imap

import (
	"strings"
)

// Cap represents an IMAP capability.
type Cap string

// Capabilities which affect the messages this package can represent.
//
// The full list is maintained at
// https://www.iana.org/assignments/imap-capabilities/
const (
	CapIMAP4rev1 Cap = "IMAP4rev1" // RFC 3501
	CapIMAP4rev2 Cap = "IMAP4rev2" // RFC 9051

	CapAuthPlain     Cap = "AUTH=PLAIN"
	CapStartTLS      Cap = "STARTTLS"
	CapLoginDisabled Cap = "LOGINDISABLED"

	// Folded in IMAP4rev2
	CapNamespace    Cap = "NAMESPACE"     // RFC 2342
	CapUnselect     Cap = "UNSELECT"      // RFC 3691
	CapUIDPlus      Cap = "UIDPLUS"       // RFC 4315
	CapESearch      Cap = "ESEARCH"       // RFC 4731
	CapSearchRes    Cap = "SEARCHRES"     // RFC 5182
	CapEnable       Cap = "ENABLE"        // RFC 5161
	CapIdle         Cap = "IDLE"          // RFC 2177
	CapSASLIR       Cap = "SASL-IR"       // RFC 4959
	CapListExtended Cap = "LIST-EXTENDED" // RFC 5258
	CapListStatus   Cap = "LIST-STATUS"   // RFC 5819
	CapMove         Cap = "MOVE"          // RFC 6851
	CapLiteralMinus Cap = "LITERAL-"      // RFC 7888
	CapStatusSize   Cap = "STATUS=SIZE"   // RFC 8438

	CapLiteralPlus Cap = "LITERAL+"    // RFC 7888
	CapCondStore   Cap = "CONDSTORE"   // RFC 7162
	CapQResync     Cap = "QRESYNC"     // RFC 7162
	CapQuota       Cap = "QUOTA"       // RFC 9208
	CapChildren    Cap = "CHILDREN"    // RFC 3348
	CapSpecialUse  Cap = "SPECIAL-USE" // RFC 6154
	CapUTF8Accept  Cap = "UTF8=ACCEPT" // RFC 6855
	CapUTF8Only    Cap = "UTF8=ONLY"   // RFC 6855
)

// imap4rev2Caps lists the extensions folded in IMAP4rev2.
var imap4rev2Caps = NewCapSet(
	CapNamespace,
	CapUnselect,
	CapUIDPlus,
	CapESearch,
	CapSearchRes,
	CapEnable,
	CapIdle,
	CapSASLIR,
	CapListExtended,
	CapListStatus,
	CapMove,
	CapLiteralMinus,
	CapStatusSize,
)

// impliedCaps maps a capability to the capability which implies it.
var impliedCaps = map[Cap]Cap{
	CapLiteralMinus: CapLiteralPlus,
	CapCondStore:    CapQResync,
	CapUTF8Accept:   CapUTF8Only,
}

// AuthCap returns the capability name for an SASL authentication mechanism.
func AuthCap(mechanism string) Cap {
	return Cap("AUTH=" + mechanism)
}

func validateCaps(caps []Cap) error {
	for _, c := range caps {
		if err := validateAtom("capability", string(c)); err != nil {
			return err
		}
	}
	return nil
}

// CapSet is a set of capabilities.
type CapSet map[Cap]struct{}

// NewCapSet creates a set from a list of capabilities.
func NewCapSet(caps ...Cap) CapSet {
	set := make(CapSet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

func (set CapSet) has(c Cap) bool {
	_, ok := set[c]
	return ok
}

// Has checks whether a capability is supported.
//
// Some capabilities are implied by others, as such Has may return true even if
// the capability is not in the map.
func (set CapSet) Has(c Cap) bool {
	switch {
	case set.has(c):
		return true
	case set.has(CapIMAP4rev2) && imap4rev2Caps.has(c):
		return true
	}
	by, ok := impliedCaps[c]
	return ok && set.has(by)
}

// AuthMechanisms returns the list of supported SASL mechanisms for
// authentication.
func (set CapSet) AuthMechanisms() []string {
	var l []string
	for c := range set {
		if mech, ok := strings.CutPrefix(string(c), "AUTH="); ok {
			l = append(l, mech)
		}
	}
	return l
}
