package message

import (
	"unsafe"

	"github.com/tablecodec/pbcore/descriptor"
)

// FieldPresent reports whether f currently holds a value: either its
// has-bit is set, or — for a oneof member — its field number matches
// the shared discriminant. This is the single presence check the
// interpreter and the generated-style accessors both use, so a
// oneof's "at most one member ever has its has-bit set" invariant
// (spec.md §8) only has one implementation to get right.
func FieldPresent(base unsafe.Pointer, hasBitWords int, f *descriptor.Field) bool {
	if f.Meta.IsOneof() {
		return OneofDiscriminant(base, hasBitWords, f.Meta.Index()) == f.Number
	}
	return HasBit(base, f.Meta.Index())
}

// SetFieldPresent marks f present. For a oneof member it writes f's
// number into the shared discriminant, so any sibling that previously
// occupied the slot reads as absent; the sibling's storage itself is
// left as it was.
func SetFieldPresent(base unsafe.Pointer, hasBitWords int, f *descriptor.Field) {
	if f.Meta.IsOneof() {
		SetOneofDiscriminant(base, hasBitWords, f.Meta.Index(), f.Number)
		return
	}
	SetHasBit(base, f.Meta.Index())
}

// ClearFieldPresent marks f absent.
func ClearFieldPresent(base unsafe.Pointer, hasBitWords int, f *descriptor.Field) {
	if f.Meta.IsOneof() {
		ClearOneofDiscriminant(base, hasBitWords, f.Meta.Index())
		return
	}
	ClearHasBit(base, f.Meta.Index())
}
