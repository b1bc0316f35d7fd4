package tlv

import "errors"

var (
	// ErrUnexpectedEOF is returned when a record ends in the middle of an element.
	ErrUnexpectedEOF = errors.New("tlv: unexpected end of input")

	// ErrInvalidElementType is returned for control octets with an undefined type.
	ErrInvalidElementType = errors.New("tlv: invalid element type")

	// ErrTypeMismatch is returned when a value is read as the wrong type.
	ErrTypeMismatch = errors.New("tlv: type mismatch")

	// ErrUnexpectedTag is returned by NextTagged when the element carries another tag.
	ErrUnexpectedTag = errors.New("tlv: unexpected tag")

	// ErrNotInContainer is returned when ending or exiting a container that was never opened.
	ErrNotInContainer = errors.New("tlv: not in container")

	// ErrContainerNotClosed is returned when finishing a writer with open containers.
	ErrContainerNotClosed = errors.New("tlv: container not closed")

	// ErrNoElement is returned when a value is read before Next.
	ErrNoElement = errors.New("tlv: no current element")

	// ErrOverflow is returned when a value does not fit the requested width.
	ErrOverflow = errors.New("tlv: value overflow")
)
