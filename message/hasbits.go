package message

import "github.com/tablecodec/pbcore/ptr"
import "unsafe"

// HasBit reports whether has-bit index i is set. Index i is
// descriptor.Field.Meta.Index() for a field whose Meta.IsOneof() is
// false.
func HasBit(base unsafe.Pointer, i int) bool {
	word := i / 32
	bit := uint32(i % 32)
	w := ptr.LoadUint32(metaWordPtr(base, word))
	return w&(1<<bit) != 0
}

// SetHasBit marks field index i present.
func SetHasBit(base unsafe.Pointer, i int) {
	word := i / 32
	bit := uint32(i % 32)
	p := metaWordPtr(base, word)
	ptr.StoreUint32(p, ptr.LoadUint32(p)|(1<<bit))
}

// ClearHasBit marks field index i absent. The field's storage is left
// as-is; per spec.md §3, absence is signaled only by the metadata
// bit, so a clear has-bit makes whatever bytes remain unobservable
// through the normal accessor path.
func ClearHasBit(base unsafe.Pointer, i int) {
	word := i / 32
	bit := uint32(i % 32)
	p := metaWordPtr(base, word)
	ptr.StoreUint32(p, ptr.LoadUint32(p)&^(1<<bit))
}

// oneofWordPtr returns the address of oneof discriminant word i. The
// oneof words sit immediately after the has-bit words in the metadata
// array, so the caller must pass the message's has-bit count (a
// Table's HasBitWords value), which is rounded up to whole 32-bit
// words here.
func oneofWordPtr(base unsafe.Pointer, hasBitWords, i int) unsafe.Pointer {
	hasBitWordCount := (hasBitWords + 31) / 32
	return metaWordPtr(base, hasBitWordCount+i)
}

// OneofDiscriminant returns the field number of the currently active
// member of oneof group i, or 0 if none is set.
func OneofDiscriminant(base unsafe.Pointer, hasBitWords, i int) int {
	return int(ptr.LoadUint32(oneofWordPtr(base, hasBitWords, i)))
}

// SetOneofDiscriminant makes fieldNumber the active member of oneof
// group i.
func SetOneofDiscriminant(base unsafe.Pointer, hasBitWords, i, fieldNumber int) {
	ptr.StoreUint32(oneofWordPtr(base, hasBitWords, i), uint32(fieldNumber))
}

// ClearOneofDiscriminant marks oneof group i as having no active
// member.
func ClearOneofDiscriminant(base unsafe.Pointer, hasBitWords, i int) {
	ptr.StoreUint32(oneofWordPtr(base, hasBitWords, i), 0)
}
