package tlv

import (
	"encoding/binary"
	"fmt"
)

// TagControl is the tag form held in the upper 3 bits of the control octet
// (Matter Core Appendix A.7.2).
type TagControl uint8

const (
	TagControlAnonymous        TagControl = 0 // no tag octets
	TagControlContext          TagControl = 1 // 1 octet
	TagControlCommonProfile2   TagControl = 2
	TagControlCommonProfile4   TagControl = 3
	TagControlImplicitProfile2 TagControl = 4
	TagControlImplicitProfile4 TagControl = 5
	TagControlFullyQualified6  TagControl = 6
	TagControlFullyQualified8  TagControl = 7
)

// Size returns the number of octets the tag occupies after the control octet.
func (tc TagControl) Size() int {
	switch tc {
	case TagControlContext:
		return 1
	case TagControlCommonProfile2, TagControlImplicitProfile2:
		return 2
	case TagControlCommonProfile4, TagControlImplicitProfile4:
		return 4
	case TagControlFullyQualified6:
		return 6
	case TagControlFullyQualified8:
		return 8
	}
	return 0
}

// Tag identifies an element within its container (Matter Core Appendix A.2).
// The zero value is the anonymous tag.
type Tag struct {
	control  TagControl
	vendorID uint16
	profile  uint16
	number   uint32
}

// Anonymous returns the anonymous tag.
func Anonymous() Tag {
	return Tag{}
}

// ContextTag returns a context-specific tag. Context tags are only
// meaningful inside a structure or list.
func ContextTag(n uint8) Tag {
	return Tag{control: TagControlContext, number: uint32(n)}
}

func (t Tag) Control() TagControl { return t.control }
func (t Tag) IsAnonymous() bool   { return t.control == TagControlAnonymous }
func (t Tag) IsContext() bool     { return t.control == TagControlContext }
func (t Tag) Number() uint32      { return t.number }
func (t Tag) VendorID() uint16    { return t.vendorID }
func (t Tag) Profile() uint16     { return t.profile }

func (t Tag) String() string {
	switch t.control {
	case TagControlAnonymous:
		return "Anonymous"
	case TagControlContext:
		return fmt.Sprintf("Context(%d)", t.number)
	case TagControlFullyQualified6, TagControlFullyQualified8:
		return fmt.Sprintf("FullyQualified(0x%04X:0x%04X:%d)", t.vendorID, t.profile, t.number)
	default:
		return fmt.Sprintf("Profile(%d)", t.number)
	}
}

// appendTag appends the tag octets (Matter Core Appendix A.8). Writers only
// produce anonymous and context tags.
func appendTag(b []byte, t Tag) []byte {
	if t.control == TagControlContext {
		b = append(b, byte(t.number))
	}
	return b
}

// parseTag decodes the tag octets for control c from the front of b.
// b must hold at least c.Size() bytes.
func parseTag(b []byte, c TagControl) Tag {
	t := Tag{control: c}
	switch c {
	case TagControlContext:
		t.number = uint32(b[0])
	case TagControlCommonProfile2, TagControlImplicitProfile2:
		t.number = uint32(binary.LittleEndian.Uint16(b))
	case TagControlCommonProfile4, TagControlImplicitProfile4:
		t.number = binary.LittleEndian.Uint32(b)
	case TagControlFullyQualified6:
		t.vendorID = binary.LittleEndian.Uint16(b)
		t.profile = binary.LittleEndian.Uint16(b[2:])
		t.number = uint32(binary.LittleEndian.Uint16(b[4:]))
	case TagControlFullyQualified8:
		t.vendorID = binary.LittleEndian.Uint16(b)
		t.profile = binary.LittleEndian.Uint16(b[2:])
		t.number = binary.LittleEndian.Uint32(b[4:])
	}
	return t
}
