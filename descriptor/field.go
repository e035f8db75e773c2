package descriptor

import "github.com/tablecodec/pbcore/wire"

// metaOneofBit is bit 7 of a field's meta index byte: 0 selects a
// has-bit index, 1 selects a oneof-discriminant index, per spec.md
// §3's "metadata index byte" contract. That leaves 7 bits, so ≤127
// optional fields and ≤127 oneofs per message.
const metaOneofBit = 0x80

// MetaIndex packs a has-bit or oneof-discriminant index (0-127) and
// the flag distinguishing the two into the single byte stored per
// field.
type MetaIndex uint8

// HasBitIndex builds a MetaIndex that refers to has-bit index i.
func HasBitIndex(i int) MetaIndex { return MetaIndex(i) }

// OneofDiscriminantIndex builds a MetaIndex that refers to oneof word
// index i.
func OneofDiscriminantIndex(i int) MetaIndex { return MetaIndex(i) | metaOneofBit }

// IsOneof reports whether this index addresses a oneof discriminant
// word rather than a has-bit.
func (m MetaIndex) IsOneof() bool { return m&metaOneofBit != 0 }

// Index returns the 0-based index within whichever namespace IsOneof
// selects.
func (m MetaIndex) Index() int { return int(m &^ metaOneofBit) }

// Field is one entry in a Table's field array: everything the
// interpreter needs to decode or encode a single declared field
// without consulting anything but the struct instance itself.
type Field struct {
	Number      int
	WireType    wire.Type
	Kind        Kind
	Cardinality Cardinality
	Meta        MetaIndex
	Offset      uintptr

	// Child is non-nil for KindMessage/KindGroup fields: the
	// descriptor of the nested message type.
	Child *Table

	// Default holds the wire-encoded bytes of a non-zero declared
	// default, or nil when the zero value is the default.
	Default []byte
}

// IsMessageKind reports whether this field stores a (nested) message
// or group rather than a scalar/string/bytes value.
func (f *Field) IsMessageKind() bool {
	return f.Kind == KindMessage || f.Kind == KindGroup
}
