package tlv

import (
	"encoding/binary"
	"math"
)

// Writer encodes TLV elements into a growing byte buffer.
type Writer struct {
	buf   []byte
	depth int // open containers
}

// NewWriter creates a Writer. sizeHint preallocates the buffer.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

func (w *Writer) head(t ElementType, tag Tag) {
	w.buf = append(w.buf, controlOctet(t, tag.control))
	w.buf = appendTag(w.buf, tag)
}

// PutUint writes an unsigned integer using the smallest width that holds v.
func (w *Writer) PutUint(tag Tag, v uint64) error {
	switch {
	case v <= math.MaxUint8:
		w.head(ElementTypeUInt8, tag)
		w.buf = append(w.buf, byte(v))
	case v <= math.MaxUint16:
		w.head(ElementTypeUInt16, tag)
		w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(v))
	case v <= math.MaxUint32:
		w.head(ElementTypeUInt32, tag)
		w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
	default:
		w.head(ElementTypeUInt64, tag)
		w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	}
	return nil
}

// StartStructure opens a structure. Every call must be matched by
// EndContainer.
func (w *Writer) StartStructure(tag Tag) error {
	w.head(ElementTypeStruct, tag)
	w.depth++
	return nil
}

// EndContainer closes the innermost open container.
func (w *Writer) EndContainer() error {
	if w.depth == 0 {
		return ErrNotInContainer
	}
	w.depth--
	w.buf = append(w.buf, byte(ElementTypeEnd))
	return nil
}

// Depth returns the number of open containers.
func (w *Writer) Depth() int {
	return w.depth
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Finish returns the encoded bytes. It fails if a container is still open.
func (w *Writer) Finish() ([]byte, error) {
	if w.depth != 0 {
		return nil, ErrContainerNotClosed
	}
	return w.buf, nil
}
