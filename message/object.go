// Package message implements the layout contract described in
// spec.md §3 and §4.6: a message is a leading metadata array (has-bits
// packed into uint32 words, followed by one uint32 oneof discriminant
// per oneof group) followed by raw field storage at the offsets a
// descriptor.Table records. This package is the thin accessor layer
// the interpreter in codec relies on; it never itself walks a Table's
// field list — that's codec's job.
package message

import (
	"unsafe"

	"github.com/tablecodec/pbcore/arena"
	"github.com/tablecodec/pbcore/descriptor"
	"github.com/tablecodec/pbcore/ptr"
)

// New allocates and zero-initializes a message instance of the shape
// tbl describes. Arena.Alloc never zero-fills on its own (spec.md
// §4.1), so New does it explicitly here, once, at the one place a
// message instance comes into existence — matching spec.md §4.3's
// "initialize the child instance (zero metadata, zero storage)".
func New(a *arena.Arena, tbl *descriptor.Table) (unsafe.Pointer, error) {
	buf, err := a.Alloc(int(tbl.Size), 8)
	if err != nil {
		return nil, err
	}
	for i := range buf {
		buf[i] = 0
	}
	if len(buf) == 0 {
		// Zero-sized messages (no fields, no metadata) still get a
		// non-nil pointer. Pointers to zero-size values are not
		// guaranteed distinct; presence is tracked by the parent's
		// has-bit, not by this pointer.
		var sentinel struct{}
		return unsafe.Pointer(&sentinel), nil
	}
	return unsafe.Pointer(&buf[0]), nil
}

// FieldPtr returns the address of field f's storage within the
// message at base.
func FieldPtr(base unsafe.Pointer, f *descriptor.Field) unsafe.Pointer {
	return ptr.Offset(base, f.Offset)
}

// metaWordPtr returns the address of metadata word i (0-based across
// the whole leading array: has-bit words first, then oneof words).
func metaWordPtr(base unsafe.Pointer, i int) unsafe.Pointer {
	return ptr.Offset(base, uintptr(i)*4)
}
