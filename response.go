package imap

import (
	"fmt"
	"strings"

	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// Response is a message sent by the server after the greeting.
//
// Response is one of *StatusResponse, *ContinuationResponse,
// *ContinuationDataResponse, or one of the data responses: *CapabilityData,
// *ListData, *LsubData, *StatusData, *SearchData, *FlagsData, *ExistsData,
// *RecentData, *ExpungeData, *FetchData, *EnabledData.
type Response interface {
	Validate() error

	response()
}

var (
	_ Response = (*StatusResponse)(nil)
	_ Response = (*ContinuationResponse)(nil)
	_ Response = (*ContinuationDataResponse)(nil)
	_ Response = (*CapabilityData)(nil)
	_ Response = (*ListData)(nil)
	_ Response = (*LsubData)(nil)
	_ Response = (*StatusData)(nil)
	_ Response = (*SearchData)(nil)
	_ Response = (*FlagsData)(nil)
	_ Response = (*ExistsData)(nil)
	_ Response = (*RecentData)(nil)
	_ Response = (*ExpungeData)(nil)
	_ Response = (*FetchData)(nil)
	_ Response = (*EnabledData)(nil)
)

// StatusResponseType is a generic status response type.
type StatusResponseType string

const (
	StatusResponseTypeOK      StatusResponseType = "OK"
	StatusResponseTypeNo      StatusResponseType = "NO"
	StatusResponseTypeBad     StatusResponseType = "BAD"
	StatusResponseTypePreAuth StatusResponseType = "PREAUTH"
	StatusResponseTypeBye     StatusResponseType = "BYE"
)

// StatusResponse is a generic status response.
//
// A tagged status response completes a command and has the type OK, NO or
// BAD. An untagged status response has an empty Tag and may also have the
// type BYE. PREAUTH is only valid in greetings.
//
// See RFC 9051 section 7.1.
type StatusResponse struct {
	Tag  string
	Type StatusResponseType
	Code Code
	Text string
}

// NewStatusResponse creates a new status response. An empty tag creates an
// untagged response.
func NewStatusResponse(tag string, t StatusResponseType, code Code, text string) (*StatusResponse, error) {
	resp := &StatusResponse{Tag: tag, Type: t, Code: code, Text: text}
	return resp, resp.Validate()
}

func (*StatusResponse) response() {}

func (resp *StatusResponse) Validate() error {
	if resp.Tag != "" {
		if err := validateTag(resp.Tag); err != nil {
			return err
		}
	}
	switch resp.Type {
	case StatusResponseTypeOK, StatusResponseTypeNo, StatusResponseTypeBad:
		// ok
	case StatusResponseTypeBye:
		if resp.Tag != "" {
			return fmt.Errorf("imap: BYE status response cannot be tagged")
		}
	default:
		return fmt.Errorf("imap: invalid status response type %q", resp.Type)
	}
	return validateRespText(resp.Code, resp.Text, false)
}

// Err returns an error if the status response type is NO or BAD.
func (resp *StatusResponse) Err() error {
	switch resp.Type {
	case StatusResponseTypeNo, StatusResponseTypeBad:
		return (*Error)(resp)
	default:
		return nil
	}
}

// Error is an IMAP error caused by a status response.
type Error StatusResponse

var _ error = (*Error)(nil)

// Error implements the error interface.
func (err *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "imap: %v", err.Type)
	if err.Code != nil {
		fmt.Fprintf(&sb, " [%v]", err.Code)
	}
	text := err.Text
	if text == "" {
		text = "<unknown>"
	}
	fmt.Fprintf(&sb, " %v", text)
	return sb.String()
}

// ContinuationResponse is a continuation request: "+" followed by an
// optional code and a human-readable text. It is used to acknowledge
// synchronizing literals. The text may be empty.
type ContinuationResponse struct {
	Code Code
	Text string
}

// NewContinuationResponse creates a new continuation request.
func NewContinuationResponse(code Code, text string) (*ContinuationResponse, error) {
	resp := &ContinuationResponse{Code: code, Text: text}
	return resp, resp.Validate()
}

func (*ContinuationResponse) response() {}

func (resp *ContinuationResponse) Validate() error {
	if err := validateRespText(resp.Code, resp.Text, true); err != nil {
		return err
	}
	if resp.Code == nil && imapwire.ValidBase64(resp.Text) {
		return fmt.Errorf("imap: continuation text %q is ambiguous with base64 data", resp.Text)
	}
	return nil
}

// ContinuationDataResponse is a continuation request carrying base64-encoded
// data, as used by the AUTHENTICATE exchange.
type ContinuationDataResponse struct {
	Data []byte
}

// NewContinuationDataResponse creates a new continuation request with data.
func NewContinuationDataResponse(data []byte) (*ContinuationDataResponse, error) {
	resp := &ContinuationDataResponse{Data: data}
	return resp, resp.Validate()
}

func (*ContinuationDataResponse) response() {}

func (resp *ContinuationDataResponse) Validate() error {
	return validateNonEmpty("continuation data", len(resp.Data))
}

// CapabilityData is the data returned by a CAPABILITY command.
type CapabilityData struct {
	Caps []Cap
}

func (*CapabilityData) response() {}

func (data *CapabilityData) Validate() error {
	if err := validateNonEmpty("capability list", len(data.Caps)); err != nil {
		return err
	}
	return validateCaps(data.Caps)
}

// Set returns the capabilities as a set.
func (data *CapabilityData) Set() CapSet {
	return NewCapSet(data.Caps...)
}

// FlagsData is the list of flags applicable to the selected mailbox.
type FlagsData struct {
	Flags []Flag
}

func (*FlagsData) response() {}

func (data *FlagsData) Validate() error {
	return validateFlags(data.Flags)
}

// ExistsData is the number of messages in the mailbox.
type ExistsData struct {
	NumMessages uint32
}

func (*ExistsData) response() {}

func (data *ExistsData) Validate() error {
	return nil
}

// RecentData is the number of messages with the \Recent flag.
type RecentData struct {
	NumRecent uint32
}

func (*RecentData) response() {}

func (data *RecentData) Validate() error {
	return nil
}

// ExpungeData reports that a message has been permanently removed.
type ExpungeData struct {
	SeqNum uint32
}

func (*ExpungeData) response() {}

func (data *ExpungeData) Validate() error {
	return validateNzNumber("EXPUNGE sequence number", data.SeqNum)
}

// SearchData is the data returned by a SEARCH command.
type SearchData struct {
	Nums []uint32
}

func (*SearchData) response() {}

func (data *SearchData) Validate() error {
	for _, n := range data.Nums {
		if err := validateNzNumber("SEARCH result", n); err != nil {
			return err
		}
	}
	return nil
}

// EnabledData is the list of capabilities enabled by an ENABLE command.
type EnabledData struct {
	Caps []Cap
}

func (*EnabledData) response() {}

func (data *EnabledData) Validate() error {
	return validateCaps(data.Caps)
}
