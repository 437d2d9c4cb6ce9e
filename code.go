package imap

import (
	"fmt"
	"strings"

	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// Code is a response code, sent between brackets at the start of a
// response text.
//
// Code is one of ResponseCode, CodeBadCharset, CodeCapability,
// CodePermanentFlags, CodeUIDNext, CodeUIDValidity, CodeUnseen or CodeOther.
type Code interface {
	// String returns the wire form of the code, without brackets.
	String() string

	code()
}

var (
	_ Code = ResponseCode("")
	_ Code = CodeBadCharset{}
	_ Code = CodeCapability{}
	_ Code = CodePermanentFlags{}
	_ Code = CodeUIDNext{}
	_ Code = CodeUIDValidity{}
	_ Code = CodeUnseen{}
	_ Code = CodeOther{}
)

// ResponseCode is a response code without arguments.
//
// Its name is an upper-case atom.
type ResponseCode string

const (
	ResponseCodeAlert                ResponseCode = "ALERT"
	ResponseCodeAlreadyExists        ResponseCode = "ALREADYEXISTS"
	ResponseCodeAuthenticationFailed ResponseCode = "AUTHENTICATIONFAILED"
	ResponseCodeAuthorizationFailed  ResponseCode = "AUTHORIZATIONFAILED"
	ResponseCodeCannot               ResponseCode = "CANNOT"
	ResponseCodeClientBug            ResponseCode = "CLIENTBUG"
	ResponseCodeContactAdmin         ResponseCode = "CONTACTADMIN"
	ResponseCodeCorruption           ResponseCode = "CORRUPTION"
	ResponseCodeExpired              ResponseCode = "EXPIRED"
	ResponseCodeHasChildren          ResponseCode = "HASCHILDREN"
	ResponseCodeInUse                ResponseCode = "INUSE"
	ResponseCodeLimit                ResponseCode = "LIMIT"
	ResponseCodeNonExistent          ResponseCode = "NONEXISTENT"
	ResponseCodeNoPerm               ResponseCode = "NOPERM"
	ResponseCodeOverQuota            ResponseCode = "OVERQUOTA"
	ResponseCodeParse                ResponseCode = "PARSE"
	ResponseCodePrivacyRequired      ResponseCode = "PRIVACYREQUIRED"
	ResponseCodeReadOnly             ResponseCode = "READ-ONLY"
	ResponseCodeReadWrite            ResponseCode = "READ-WRITE"
	ResponseCodeServerBug            ResponseCode = "SERVERBUG"
	ResponseCodeTryCreate            ResponseCode = "TRYCREATE"
	ResponseCodeUnavailable          ResponseCode = "UNAVAILABLE"
	ResponseCodeUnknownCTE           ResponseCode = "UNKNOWN-CTE"
)

// Names of the codes carrying arguments.
const (
	codeNameBadCharset     = "BADCHARSET"
	codeNameCapability     = "CAPABILITY"
	codeNamePermanentFlags = "PERMANENTFLAGS"
	codeNameUIDNext        = "UIDNEXT"
	codeNameUIDValidity    = "UIDVALIDITY"
	codeNameUnseen         = "UNSEEN"
)

// IsCodeWithArgs returns true if name is the upper-case name of a response
// code which has its own type because it carries arguments.
func IsCodeWithArgs(name string) bool {
	switch name {
	case codeNameBadCharset, codeNameCapability, codeNamePermanentFlags,
		codeNameUIDNext, codeNameUIDValidity, codeNameUnseen:
		return true
	default:
		return false
	}
}

func (ResponseCode) code() {}

func (code ResponseCode) String() string {
	return string(code)
}

// CodeBadCharset is a BADCHARSET response code, optionally listing the
// supported charsets. Charsets is nil when no list is sent.
type CodeBadCharset struct {
	Charsets []string
}

func (CodeBadCharset) code() {}

func (code CodeBadCharset) String() string {
	enc := imapwire.NewEncoder()
	enc.Atom(codeNameBadCharset)
	if len(code.Charsets) > 0 {
		enc.SP().List(len(code.Charsets), func(i int) {
			enc.Charset(code.Charsets[i])
		})
	}
	return lineString(enc)
}

// CodeCapability is a CAPABILITY response code.
type CodeCapability struct {
	Caps []Cap
}

func (CodeCapability) code() {}

func (code CodeCapability) String() string {
	enc := imapwire.NewEncoder()
	enc.Atom(codeNameCapability)
	for _, c := range code.Caps {
		enc.SP().Atom(string(c))
	}
	return lineString(enc)
}

// CodePermanentFlags is a PERMANENTFLAGS response code. The flags may
// contain FlagWildcard.
type CodePermanentFlags struct {
	Flags []Flag
}

func (CodePermanentFlags) code() {}

func (code CodePermanentFlags) String() string {
	enc := imapwire.NewEncoder()
	enc.Atom(codeNamePermanentFlags).SP()
	writeFlagList(enc, code.Flags)
	return lineString(enc)
}

// CodeUIDNext is a UIDNEXT response code.
type CodeUIDNext struct {
	UID uint32
}

func (CodeUIDNext) code() {}

func (code CodeUIDNext) String() string {
	return fmt.Sprintf("%v %v", codeNameUIDNext, code.UID)
}

// CodeUIDValidity is a UIDVALIDITY response code.
type CodeUIDValidity struct {
	UID uint32
}

func (CodeUIDValidity) code() {}

func (code CodeUIDValidity) String() string {
	return fmt.Sprintf("%v %v", codeNameUIDValidity, code.UID)
}

// CodeUnseen is an UNSEEN response code, with the sequence number of the
// first unseen message.
type CodeUnseen struct {
	SeqNum uint32
}

func (CodeUnseen) code() {}

func (code CodeUnseen) String() string {
	return fmt.Sprintf("%v %v", codeNameUnseen, code.SeqNum)
}

// CodeOther is a response code with an argument this package doesn't know
// about. The argument is kept as raw text.
type CodeOther struct {
	Name string
	Text string
}

func (CodeOther) code() {}

func (code CodeOther) String() string {
	return code.Name + " " + code.Text
}

// IsCodeTextChar returns true if ch can appear in the text argument of a
// response code.
func IsCodeTextChar(ch byte) bool {
	return imapwire.IsTextChar(ch) && ch != ']'
}

func validateCodeName(name string) error {
	if !imapwire.ValidAtom(name) || strings.ToUpper(name) != name {
		return fmt.Errorf("imap: invalid response code name %q", name)
	}
	if IsCodeWithArgs(name) {
		return fmt.Errorf("imap: response code %v must use its own type", name)
	}
	return nil
}

func validateCode(code Code) error {
	switch code := code.(type) {
	case nil:
		return nil
	case ResponseCode:
		return validateCodeName(string(code))
	case CodeBadCharset:
		if code.Charsets != nil && len(code.Charsets) == 0 {
			return fmt.Errorf("imap: empty BADCHARSET list must be nil")
		}
		for _, charset := range code.Charsets {
			if err := validateCharset(charset); err != nil {
				return err
			}
		}
		return nil
	case CodeCapability:
		if err := validateNonEmpty("CAPABILITY response code", len(code.Caps)); err != nil {
			return err
		}
		return validateCaps(code.Caps)
	case CodePermanentFlags:
		for _, flag := range code.Flags {
			if flag == FlagWildcard {
				continue
			}
			if err := flag.validate(); err != nil {
				return err
			}
		}
		return nil
	case CodeUIDNext:
		return validateNzNumber("UIDNEXT", code.UID)
	case CodeUIDValidity:
		return validateNzNumber("UIDVALIDITY", code.UID)
	case CodeUnseen:
		return validateNzNumber("UNSEEN", code.SeqNum)
	case CodeOther:
		if err := validateCodeName(code.Name); err != nil {
			return err
		}
		for i := 0; i < len(code.Text); i++ {
			if !IsCodeTextChar(code.Text[i]) {
				return fmt.Errorf("imap: invalid response code text %q", code.Text)
			}
		}
		return validateNonEmpty("response code text", len(code.Text))
	default:
		return fmt.Errorf("imap: unknown response code type %T", code)
	}
}

// validateCharset checks that charset can be sent as an atom or a quoted
// string.
func validateCharset(charset string) error {
	if !imapwire.ValidQuoted(charset) {
		return fmt.Errorf("imap: invalid charset %q", charset)
	}
	return nil
}

func writeFlagList(enc *imapwire.Encoder, flags []Flag) {
	enc.List(len(flags), func(i int) {
		enc.Flag(string(flags[i]))
	})
}

// lineString returns the text written to an encoder which didn't write any
// literal.
func lineString(enc *imapwire.Encoder) string {
	var sb strings.Builder
	for _, f := range enc.Fragments() {
		sb.Write(f.Bytes())
	}
	return sb.String()
}

func validateRespText(code Code, text string, allowEmpty bool) error {
	if err := validateCode(code); err != nil {
		return err
	}
	if text == "" && (code != nil || allowEmpty) {
		return nil
	}
	if err := validateText(text); err != nil {
		return err
	}
	if code == nil && text[0] == '[' {
		return fmt.Errorf("imap: text without a response code must not start with '['")
	}
	return nil
}
