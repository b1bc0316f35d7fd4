package tlv

import (
	"bytes"
	"testing"
)

func TestWriter_Encodings(t *testing.T) {
	testCases := []struct {
		name     string
		write    func(w *Writer) error
		expected []byte
	}{
		{
			name:     "uint8 42",
			write:    func(w *Writer) error { return w.PutUint(Anonymous(), 42) },
			expected: []byte{0x04, 0x2a},
		},
		{
			name:     "uint8 max",
			write:    func(w *Writer) error { return w.PutUint(Anonymous(), 0xFF) },
			expected: []byte{0x04, 0xff},
		},
		{
			name:     "uint16 0x1234",
			write:    func(w *Writer) error { return w.PutUint(Anonymous(), 0x1234) },
			expected: []byte{0x05, 0x34, 0x12},
		},
		{
			name:     "uint32 40000000",
			write:    func(w *Writer) error { return w.PutUint(Anonymous(), 40000000) },
			expected: []byte{0x06, 0x00, 0x5a, 0x62, 0x02},
		},
		{
			name:     "uint64",
			write:    func(w *Writer) error { return w.PutUint(Anonymous(), 0x0102030405060708) },
			expected: []byte{0x07, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01},
		},
		{
			name:     "context tag",
			write:    func(w *Writer) error { return w.PutUint(ContextTag(7), 0xff) },
			expected: []byte{0x24, 0x07, 0xff},
		},
		{
			name: "empty structure",
			write: func(w *Writer) error {
				if err := w.StartStructure(Anonymous()); err != nil {
					return err
				}
				return w.EndContainer()
			},
			expected: []byte{0x15, 0x18},
		},
		{
			name: "structure with context tags",
			write: func(w *Writer) error {
				if err := w.StartStructure(Anonymous()); err != nil {
					return err
				}
				if err := w.PutUint(ContextTag(1), 42); err != nil {
					return err
				}
				if err := w.PutUint(ContextTag(2), 0x1122); err != nil {
					return err
				}
				return w.EndContainer()
			},
			expected: []byte{0x15, 0x24, 0x01, 0x2a, 0x25, 0x02, 0x22, 0x11, 0x18},
		},
		{
			name: "nested structure",
			write: func(w *Writer) error {
				if err := w.StartStructure(Anonymous()); err != nil {
					return err
				}
				if err := w.StartStructure(ContextTag(1)); err != nil {
					return err
				}
				if err := w.EndContainer(); err != nil {
					return err
				}
				return w.EndContainer()
			},
			expected: []byte{0x15, 0x35, 0x01, 0x18, 0x18},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter(16)
			if err := tc.write(w); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			got, err := w.Finish()
			if err != nil {
				t.Fatalf("Finish failed: %v", err)
			}
			if !bytes.Equal(got, tc.expected) {
				t.Errorf("encoding mismatch:\n  got:      %x\n  expected: %x", got, tc.expected)
			}
		})
	}
}

func TestWriter_ContainerBookkeeping(t *testing.T) {
	w := NewWriter(0)
	if err := w.EndContainer(); err != ErrNotInContainer {
		t.Errorf("EndContainer on empty writer: expected ErrNotInContainer, got %v", err)
	}

	_ = w.StartStructure(Anonymous())
	_ = w.StartStructure(ContextTag(1))
	if w.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", w.Depth())
	}
	if _, err := w.Finish(); err != ErrContainerNotClosed {
		t.Errorf("Finish with open containers: expected ErrContainerNotClosed, got %v", err)
	}

	_ = w.EndContainer()
	_ = w.EndContainer()
	if _, err := w.Finish(); err != nil {
		t.Errorf("Finish after closing: %v", err)
	}
	if w.Len() != 5 {
		t.Errorf("expected 5 bytes, got %d", w.Len())
	}
}
