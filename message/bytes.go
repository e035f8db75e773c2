package message

import (
	"unsafe"

	"github.com/tablecodec/pbcore/arena"
	"github.com/tablecodec/pbcore/ptr"
)

// BytesHeader is the (pointer, length) pair a string or bytes field's
// storage holds. Unlike RepeatedHeader it carries no capacity: once
// installed by SetBytes, a string/bytes field's content never grows
// in place — a second decode of the same field allocates a fresh
// region and overwrites the header (spec.md §4.3's "later value
// overwrites" merge rule for scalars applies to strings too).
type BytesHeader struct {
	Data unsafe.Pointer
	Len  int32
}

// SetBytes allocates len(data) bytes from a, copies data into it, and
// installs the result into hdr. An empty (but non-nil-intent) value
// still allocates nothing and leaves hdr zeroed — the caller's
// has-bit, not hdr.Data, is what distinguishes "present, empty" from
// "absent".
func SetBytes(a *arena.Arena, hdr *BytesHeader, data []byte) error {
	if len(data) == 0 {
		hdr.Data = nil
		hdr.Len = 0
		return nil
	}
	buf, err := a.Alloc(len(data), 1)
	if err != nil {
		return err
	}
	copy(buf, data)
	hdr.Data = unsafe.Pointer(&buf[0])
	hdr.Len = int32(len(data))
	return nil
}

// GetBytes views hdr's backing region without copying.
func GetBytes(hdr *BytesHeader) []byte {
	return ptr.BytesAt(hdr.Data, int(hdr.Len))
}
