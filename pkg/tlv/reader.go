package tlv

import (
	"encoding/binary"
	"io"
	"math"
)

// Reader decodes TLV elements from a byte slice.
//
// Usage follows the usual cursor pattern: call Next to move to an element,
// inspect Type and Tag, then read the value or enter the container.
// Containers that are not entered are skipped by the following Next.
type Reader struct {
	data  []byte
	off   int
	depth int

	has     bool
	typ     ElementType
	tag     Tag
	value   []byte // payload of integer elements
	pending bool   // current element is a container that was not entered
}

// NewReader creates a Reader over data. The slice is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Next advances to the next element. At the end of a top-level sequence it
// returns io.EOF; running out of input inside a container is ErrUnexpectedEOF.
func (r *Reader) Next() error {
	if r.pending {
		if err := r.skipContents(); err != nil {
			return err
		}
	}
	r.has = false

	if r.off >= len(r.data) {
		if r.depth > 0 {
			return ErrUnexpectedEOF
		}
		return io.EOF
	}

	typ, ctrl := splitControlOctet(r.data[r.off])
	if !typ.IsValid() {
		return ErrInvalidElementType
	}
	if typ == ElementTypeEnd && r.depth == 0 {
		return ErrNotInContainer
	}

	p := r.off + 1
	if len(r.data)-p < ctrl.Size() {
		return ErrUnexpectedEOF
	}
	tag := parseTag(r.data[p:], ctrl)
	p += ctrl.Size()

	var value []byte
	if n := typ.fixedSize(); n > 0 {
		if len(r.data)-p < n {
			return ErrUnexpectedEOF
		}
		value = r.data[p : p+n]
		p += n
	} else if ls := typ.lengthSize(); ls > 0 {
		if len(r.data)-p < ls {
			return ErrUnexpectedEOF
		}
		n := readLength(r.data[p:], ls)
		p += ls
		if uint64(len(r.data)-p) < n {
			return ErrUnexpectedEOF
		}
		value = r.data[p : p+int(n)]
		p += int(n)
	}

	r.off = p
	r.has = true
	r.typ = typ
	r.tag = tag
	r.value = value
	r.pending = typ.IsContainer()
	return nil
}

// NextTagged advances and checks that the new element carries tag.
func (r *Reader) NextTagged(tag Tag) error {
	if err := r.Next(); err != nil {
		return err
	}
	if r.tag != tag {
		return ErrUnexpectedTag
	}
	return nil
}

func readLength(b []byte, size int) uint64 {
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

// Type returns the type of the current element.
func (r *Reader) Type() ElementType { return r.typ }

// Tag returns the tag of the current element.
func (r *Reader) Tag() Tag { return r.tag }

// HasElement reports whether Next has positioned the reader on an element.
func (r *Reader) HasElement() bool { return r.has }

// IsEndOfContainer reports whether the current element closes a container.
func (r *Reader) IsEndOfContainer() bool {
	return r.has && r.typ == ElementTypeEnd
}

// Depth returns the number of entered containers.
func (r *Reader) Depth() int { return r.depth }

// Uint returns the current unsigned integer.
func (r *Reader) Uint() (uint64, error) {
	if !r.has {
		return 0, ErrNoElement
	}
	switch r.typ {
	case ElementTypeUInt8:
		return uint64(r.value[0]), nil
	case ElementTypeUInt16:
		return uint64(binary.LittleEndian.Uint16(r.value)), nil
	case ElementTypeUInt32:
		return uint64(binary.LittleEndian.Uint32(r.value)), nil
	case ElementTypeUInt64:
		return binary.LittleEndian.Uint64(r.value), nil
	}
	return 0, ErrTypeMismatch
}

// Uint8 returns the current unsigned integer, which must fit in 8 bits.
func (r *Reader) Uint8() (uint8, error) {
	v, err := r.uintMax(math.MaxUint8)
	return uint8(v), err
}

// Uint16 returns the current unsigned integer, which must fit in 16 bits.
func (r *Reader) Uint16() (uint16, error) {
	v, err := r.uintMax(math.MaxUint16)
	return uint16(v), err
}

// Uint32 returns the current unsigned integer, which must fit in 32 bits.
func (r *Reader) Uint32() (uint32, error) {
	v, err := r.uintMax(math.MaxUint32)
	return uint32(v), err
}

func (r *Reader) uintMax(limit uint64) (uint64, error) {
	v, err := r.Uint()
	if err != nil {
		return 0, err
	}
	if v > limit {
		return 0, ErrOverflow
	}
	return v, nil
}

// EnterContainer descends into the current structure, array or list.
func (r *Reader) EnterContainer() error {
	if !r.has {
		return ErrNoElement
	}
	if !r.typ.IsContainer() {
		return ErrTypeMismatch
	}
	r.pending = false
	r.has = false
	r.depth++
	return nil
}

// ExitContainer skips whatever is left of the innermost entered container,
// including its end marker.
func (r *Reader) ExitContainer() error {
	if r.depth == 0 {
		return ErrNotInContainer
	}
	for !r.IsEndOfContainer() {
		if err := r.Next(); err != nil {
			return err
		}
	}
	r.depth--
	r.has = false
	return nil
}

// Skip discards the current element. For a container this skips all of its
// contents.
func (r *Reader) Skip() error {
	if !r.has {
		return ErrNoElement
	}
	if r.pending {
		return r.skipContents()
	}
	return nil
}

func (r *Reader) skipContents() error {
	r.pending = false
	r.depth++
	for {
		if err := r.Next(); err != nil {
			return err
		}
		if r.typ == ElementTypeEnd {
			break
		}
	}
	r.depth--
	r.has = false
	return nil
}
