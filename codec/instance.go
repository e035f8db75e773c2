package codec

import (
	"unsafe"

	"github.com/tablecodec/pbcore/arena"
	"github.com/tablecodec/pbcore/descriptor"
	"github.com/tablecodec/pbcore/message"
)

// newInstance and the other arenaOp wrappers below translate every
// arena-allocation failure into ErrOutOfMemory, so the rest of this
// package only has to check one sentinel regardless of which
// underlying call produced it.
func newInstance(a *arena.Arena, tbl *descriptor.Table) (unsafe.Pointer, error) {
	inst, err := message.New(a, tbl)
	if err != nil {
		return nil, ErrOutOfMemory
	}
	return inst, nil
}

func setBytesField(a *arena.Arena, hdr *message.BytesHeader, data []byte) error {
	if err := message.SetBytes(a, hdr, data); err != nil {
		return ErrOutOfMemory
	}
	return nil
}

func growRepeated(a *arena.Arena, hdr *message.RepeatedHeader, elemSize, elemAlign uintptr) (unsafe.Pointer, error) {
	slot, err := message.Grow(a, hdr, elemSize, elemAlign)
	if err != nil {
		return nil, ErrOutOfMemory
	}
	return slot, nil
}
