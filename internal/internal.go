package internal

import (
	"fmt"

	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/internal/imapwire"
)

func ReadFlagList(dec *imapwire.Decoder) ([]imap.Flag, error) {
	var flags []imap.Flag
	err := dec.ExpectList(func() error {
		flag, err := ReadFlag(dec)
		if err != nil {
			return err
		}
		flags = append(flags, imap.Flag(flag))
		return nil
	})
	return flags, err
}

func ReadFlag(dec *imapwire.Decoder) (string, error) {
	var flag string
	if !dec.ExpectFlag(&flag) {
		return "", fmt.Errorf("in flag: %w", dec.Err())
	}
	return flag, nil
}

func WriteFlagList(enc *imapwire.Encoder, flags []imap.Flag) {
	enc.List(len(flags), func(i int) {
		enc.Flag(string(flags[i]))
	})
}
