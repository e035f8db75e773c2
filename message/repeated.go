package message

import (
	"unsafe"

	"github.com/tablecodec/pbcore/arena"
	"github.com/tablecodec/pbcore/ptr"
)

// RepeatedHeader is the (pointer, length, capacity) triple spec.md
// §4.6 specifies for repeated-field storage: a region inside some
// arena block, grown by doubling and never shrunk. A field's
// descriptor.Field.Offset points at one of these inside the owning
// message.
type RepeatedHeader struct {
	Data unsafe.Pointer
	Len  int32
	Cap  int32
}

// Grow ensures room for one more element of size elemSize aligned to
// elemAlign, reallocating and copying if the header is at capacity,
// and returns the address of the new (uninitialized) slot. The old
// backing region, if replaced, is stranded for the arena to reclaim
// in bulk — acceptable because the arena never frees individual
// objects anyway (spec.md §4.6).
func Grow(a *arena.Arena, hdr *RepeatedHeader, elemSize, elemAlign uintptr) (unsafe.Pointer, error) {
	if hdr.Len == hdr.Cap {
		newCap := hdr.Cap * 2
		if newCap < 4 {
			newCap = 4
		}
		newBuf, err := a.AllocArray(elemSize, elemAlign, int(newCap))
		if err != nil {
			return nil, err
		}
		if hdr.Len > 0 {
			oldBuf := ptr.BytesAt(hdr.Data, int(hdr.Len)*int(elemSize))
			copy(newBuf, oldBuf)
		}
		hdr.Data = unsafe.Pointer(&newBuf[0])
		hdr.Cap = newCap
	}
	slot := ptr.Offset(hdr.Data, uintptr(hdr.Len)*elemSize)
	hdr.Len++
	return slot, nil
}

// ElemPtr returns the address of element i, assumed in-bounds.
func ElemPtr(hdr *RepeatedHeader, i int, elemSize uintptr) unsafe.Pointer {
	return ptr.Offset(hdr.Data, uintptr(i)*elemSize)
}
