package binding

import "errors"

// Table errors.
var (
	// ErrInvalidArgument is returned for unusable input, such as adding an
	// Unused entry or removing through a foreign or exhausted iterator.
	ErrInvalidArgument = errors.New("binding: invalid argument")

	// ErrTableFull is returned by Add when every slot is occupied.
	ErrTableFull = errors.New("binding: table full")

	// ErrIncorrectState is returned when an operation needs a storage
	// backend and none is attached, or when the in-memory list is inconsistent.
	ErrIncorrectState = errors.New("binding: incorrect state")

	// ErrVersionMismatch is returned when the persisted list-info record was
	// written with a different storage format version.
	ErrVersionMismatch = errors.New("binding: storage version mismatch")

	// ErrInvalidEncoding is returned when a persisted record does not have
	// the expected tags or structure, or the persisted list is malformed.
	ErrInvalidEncoding = errors.New("binding: invalid record encoding")
)

// Entry validation errors.
var (
	ErrInvalidFabricIndex = errors.New("binding: invalid fabric index")
	ErrInvalidType        = errors.New("binding: invalid binding type")
	ErrMissingNodeID      = errors.New("binding: unicast binding requires a node ID")
	ErrMissingGroupID     = errors.New("binding: multicast binding requires a group ID")
)
