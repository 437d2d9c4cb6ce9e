package imap

import (
	"fmt"
)

// StoreFlagsOp is a flag operation: set, add or delete.
type StoreFlagsOp int

const (
	StoreFlagsSet StoreFlagsOp = iota
	StoreFlagsAdd
	StoreFlagsDel
)

func (op StoreFlagsOp) String() string {
	switch op {
	case StoreFlagsSet:
		return "FLAGS"
	case StoreFlagsAdd:
		return "+FLAGS"
	case StoreFlagsDel:
		return "-FLAGS"
	default:
		return fmt.Sprintf("StoreFlagsOp(%d)", int(op))
	}
}

// StoreCommand alters message flags.
type StoreCommand struct {
	UID    bool
	SeqSet SeqSet
	Op     StoreFlagsOp
	Silent bool
	Flags  []Flag
}

func (*StoreCommand) commandBody() {}

func (cmd *StoreCommand) Validate() error {
	if err := cmd.SeqSet.validate(); err != nil {
		return err
	}
	switch cmd.Op {
	case StoreFlagsSet, StoreFlagsAdd, StoreFlagsDel:
		// ok
	default:
		return fmt.Errorf("imap: invalid STORE operation %v", cmd.Op)
	}
	return validateFlags(cmd.Flags)
}
