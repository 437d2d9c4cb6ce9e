// Package imapwire implements the IMAP wire protocol.
//
// The IMAP wire protocol is defined in RFC 9051 section 4. Messages are
// CRLF-terminated lines interspersed with literals: raw byte runs announced by
// "{n}" (synchronizing) or "{n+}" (non-synchronizing) right before the CRLF
// of the announcing line.
package imapwire

// LiteralMode describes how a literal is announced.
type LiteralMode int

const (
	// LiteralModeSync is a synchronizing literal ("{n}"). The sender must wait
	// for a continuation request before sending the literal data.
	LiteralModeSync LiteralMode = iota
	// LiteralModeNonSync is a non-synchronizing literal ("{n+}"), defined in
	// RFC 7888.
	LiteralModeNonSync
)

func (mode LiteralMode) String() string {
	switch mode {
	case LiteralModeSync:
		return "Sync"
	case LiteralModeNonSync:
		return "NonSync"
	default:
		return "LiteralMode(?)"
	}
}

// Fragment is a contiguous piece of an encoded message. Concatenating the
// bytes of all fragments of a message yields its wire representation.
type Fragment interface {
	// Bytes returns the wire bytes of the fragment.
	Bytes() []byte

	fragment()
}

var (
	_ Fragment = LineFragment{}
	_ Fragment = LiteralFragment{}
)

// LineFragment is a piece of text which doesn't contain literal data. When
// followed by a LiteralFragment, it ends with the literal announcement.
type LineFragment struct {
	Data []byte
}

func (LineFragment) fragment() {}

func (f LineFragment) Bytes() []byte {
	return f.Data
}

// LiteralFragment is the payload of a literal, sent verbatim.
type LiteralFragment struct {
	Data []byte
	Mode LiteralMode
}

func (LiteralFragment) fragment() {}

func (f LiteralFragment) Bytes() []byte {
	return f.Data
}

// IsAtomChar returns true if ch is an ATOM-CHAR.
func IsAtomChar(ch byte) bool {
	switch ch {
	case '(', ')', '{', ' ', '%', '*', '"', '\\', ']':
		return false
	default:
		return ch > 0x1F && ch < 0x7F
	}
}

// IsAStringChar returns true if ch is an ASTRING-CHAR.
func IsAStringChar(ch byte) bool {
	return IsAtomChar(ch) || ch == ']'
}

// IsTagChar returns true if ch can be used in a command tag.
func IsTagChar(ch byte) bool {
	return IsAStringChar(ch) && ch != '+'
}

// IsListChar returns true if ch is a list-char, used in LIST patterns.
func IsListChar(ch byte) bool {
	return IsAtomChar(ch) || ch == '%' || ch == '*' || ch == ']'
}

// IsTextChar returns true if ch is a TEXT-CHAR. 8-bit characters are allowed
// for UTF-8 text.
func IsTextChar(ch byte) bool {
	return ch != '\r' && ch != '\n' && ch != 0
}

// IsBase64Char returns true if ch can appear in base64-encoded data.
func IsBase64Char(ch byte) bool {
	switch {
	case ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
		return true
	default:
		return ch == '+' || ch == '/' || ch == '='
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func validFunc(s string, valid func(ch byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !valid(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

// ValidAtom returns true if s is a non-empty atom.
func ValidAtom(s string) bool {
	return validFunc(s, IsAtomChar)
}

// ValidAStringAtom returns true if s can be sent as an astring without
// quoting.
func ValidAStringAtom(s string) bool {
	return validFunc(s, IsAStringChar)
}

// ValidTag returns true if s is a valid command tag.
func ValidTag(s string) bool {
	return validFunc(s, IsTagChar)
}

// ValidListChars returns true if s is a non-empty run of list-char.
func ValidListChars(s string) bool {
	return validFunc(s, IsListChar)
}

// ValidText returns true if s is a non-empty run of TEXT-CHAR.
func ValidText(s string) bool {
	return validFunc(s, IsTextChar)
}

// ValidQuoted returns true if s can be sent as a quoted string.
func ValidQuoted(s string) bool {
	if len(s) > 4096 {
		return false
	}
	for i := 0; i < len(s); i++ {
		// NUL, CR and LF are never valid
		switch ch := s[i]; ch {
		case 0, '\r', '\n':
			return false
		default:
			if ch > 0x7F {
				return false
			}
		}
	}
	return true
}

// ValidBase64 returns true if s is non-empty, padded base64.
func ValidBase64(s string) bool {
	return validFunc(s, IsBase64Char) && len(s)%4 == 0
}
