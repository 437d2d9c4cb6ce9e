package imap

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
)

// NewAuthenticatePlain creates an AUTHENTICATE PLAIN command carrying the
// credentials as an initial response (RFC 4959).
func NewAuthenticatePlain(identity, username, password string) (*AuthenticateCommand, error) {
	mech, ir, err := sasl.NewPlainClient(identity, username, password).Start()
	if err != nil {
		return nil, err
	}
	cmd := &AuthenticateCommand{Mechanism: mech, InitialResponse: ir}
	return cmd, cmd.Validate()
}

// PlainCredentials extracts the credentials from an AUTHENTICATE PLAIN
// command with an initial response.
func (cmd *AuthenticateCommand) PlainCredentials() (identity, username, password string, err error) {
	if !strings.EqualFold(cmd.Mechanism, sasl.Plain) {
		return "", "", "", fmt.Errorf("imap: SASL mechanism is %v, not %v", cmd.Mechanism, sasl.Plain)
	}
	if cmd.InitialResponse == nil {
		return "", "", "", fmt.Errorf("imap: AUTHENTICATE PLAIN command has no initial response")
	}

	server := sasl.NewPlainServer(func(id, user, pass string) error {
		identity, username, password = id, user, pass
		return nil
	})
	if _, _, err := server.Next(cmd.InitialResponse); err != nil {
		return "", "", "", fmt.Errorf("imap: invalid PLAIN initial response: %w", err)
	}
	return identity, username, password, nil
}
