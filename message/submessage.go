package message

import "unsafe"

// SubMessage and SetSubMessage manage a singular message/group
// field's storage: a single pointer, meaningful only when the owning
// field's has-bit is set (spec.md §4.6 — "the pointer value is
// undefined when absent").
func SubMessage(base unsafe.Pointer) unsafe.Pointer {
	return *(*unsafe.Pointer)(base)
}

func SetSubMessage(base unsafe.Pointer, child unsafe.Pointer) {
	*(*unsafe.Pointer)(base) = child
}
