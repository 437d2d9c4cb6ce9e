package imap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticatePlain(t *testing.T) {
	cmd, err := NewAuthenticatePlain("", "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "PLAIN", cmd.Mechanism)
	assert.Equal(t, []byte("\x00alice\x00secret"), cmd.InitialResponse)

	identity, username, password, err := cmd.PlainCredentials()
	require.NoError(t, err)
	assert.Equal(t, "", identity)
	assert.Equal(t, "alice", username)
	assert.Equal(t, "secret", password)

	cmd, err = NewAuthenticatePlain("admin", "bob", "hunter2")
	require.NoError(t, err)
	cmd.Mechanism = "plain"
	identity, username, _, err = cmd.PlainCredentials()
	require.NoError(t, err)
	assert.Equal(t, "admin", identity)
	assert.Equal(t, "bob", username)
}

func TestAuthenticatePlain_invalid(t *testing.T) {
	tests := []*AuthenticateCommand{
		{Mechanism: "LOGIN", InitialResponse: []byte("\x00alice\x00secret")},
		{Mechanism: "PLAIN"},
		{Mechanism: "PLAIN", InitialResponse: []byte("alice")},
	}
	for _, cmd := range tests {
		_, _, _, err := cmd.PlainCredentials()
		assert.Error(t, err, "%#v", cmd)
	}
}
