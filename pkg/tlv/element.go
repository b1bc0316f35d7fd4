// Package tlv implements the subset of Matter TLV (Matter Core Appendix A)
// used for persisted records: anonymous structures holding context-tagged
// unsigned integers. The reader parses every element type so that
// unexpected elements can be skipped or reported.
//
// Encoding works on an in-memory buffer. Records are small and are always
// written or read in one piece through the key-value store, so the writer
// appends to a byte slice and the reader walks a byte slice.
package tlv

// ElementType is the element type held in the low 5 bits of the control
// octet (Matter Core Appendix A.7.1).
type ElementType uint8

const (
	ElementTypeInt8    ElementType = 0x00
	ElementTypeInt16   ElementType = 0x01
	ElementTypeInt32   ElementType = 0x02
	ElementTypeInt64   ElementType = 0x03
	ElementTypeUInt8   ElementType = 0x04
	ElementTypeUInt16  ElementType = 0x05
	ElementTypeUInt32  ElementType = 0x06
	ElementTypeUInt64  ElementType = 0x07
	ElementTypeFalse   ElementType = 0x08
	ElementTypeTrue    ElementType = 0x09
	ElementTypeFloat32 ElementType = 0x0A
	ElementTypeFloat64 ElementType = 0x0B
	ElementTypeUTF8_1  ElementType = 0x0C
	ElementTypeUTF8_2  ElementType = 0x0D
	ElementTypeUTF8_4  ElementType = 0x0E
	ElementTypeUTF8_8  ElementType = 0x0F
	ElementTypeBytes1  ElementType = 0x10
	ElementTypeBytes2  ElementType = 0x11
	ElementTypeBytes4  ElementType = 0x12
	ElementTypeBytes8  ElementType = 0x13
	ElementTypeNull    ElementType = 0x14
	ElementTypeStruct  ElementType = 0x15
	ElementTypeArray   ElementType = 0x16
	ElementTypeList    ElementType = 0x17
	ElementTypeEnd     ElementType = 0x18
)

var elementTypeNames = [...]string{
	"Int8", "Int16", "Int32", "Int64",
	"UInt8", "UInt16", "UInt32", "UInt64",
	"False", "True", "Float32", "Float64",
	"UTF8_1", "UTF8_2", "UTF8_4", "UTF8_8",
	"Bytes1", "Bytes2", "Bytes4", "Bytes8",
	"Null", "Struct", "Array", "List", "EndOfContainer",
}

func (e ElementType) String() string {
	if int(e) < len(elementTypeNames) {
		return elementTypeNames[e]
	}
	return "Unknown"
}

// IsValid reports whether e is a defined element type.
func (e ElementType) IsValid() bool {
	return e <= ElementTypeEnd
}

func (e ElementType) IsUTF8String() bool {
	return e >= ElementTypeUTF8_1 && e <= ElementTypeUTF8_8
}

func (e ElementType) IsBytes() bool {
	return e >= ElementTypeBytes1 && e <= ElementTypeBytes8
}

// IsContainer returns true for structures, arrays and lists.
func (e ElementType) IsContainer() bool {
	return e == ElementTypeStruct || e == ElementTypeArray || e == ElementTypeList
}

// fixedSize is the size of the value field of integer and float types.
func (e ElementType) fixedSize() int {
	switch e {
	case ElementTypeInt8, ElementTypeUInt8:
		return 1
	case ElementTypeInt16, ElementTypeUInt16:
		return 2
	case ElementTypeInt32, ElementTypeUInt32, ElementTypeFloat32:
		return 4
	case ElementTypeInt64, ElementTypeUInt64, ElementTypeFloat64:
		return 8
	}
	return 0
}

// lengthSize is the size of the length prefix of string types.
func (e ElementType) lengthSize() int {
	if !e.IsUTF8String() && !e.IsBytes() {
		return 0
	}
	// The two low bits select 1, 2, 4 or 8 octets in both string families.
	return 1 << ((e - ElementTypeUTF8_1) & 0x03)
}

const (
	elementTypeMask = 0x1F
	tagControlShift = 5
)

// controlOctet combines an element type and tag control (Matter Core Appendix A.7).
func controlOctet(t ElementType, c TagControl) byte {
	return byte(t)&elementTypeMask | byte(c)<<tagControlShift
}

// splitControlOctet is the inverse of controlOctet.
func splitControlOctet(b byte) (ElementType, TagControl) {
	return ElementType(b & elementTypeMask), TagControl(b >> tagControlShift)
}
