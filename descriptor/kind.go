// Package descriptor defines the compact, statically built tables
// that drive the codec's single interpreter (codec package). A Table
// is produced once, ahead of time — by hand for the examplepb package
// in this repository, or by a .proto code generator in a real
// deployment — and then treated as read-only for the program's
// lifetime. This mirrors gate/pb's Coder/inDef pair in the teacher
// repo, which built one reflection-derived dispatch table per message
// type at init time; descriptor.Table replaces gate/pb's
// reflect.Type-keyed dispatch with plain field offsets and an enum
// tag, so the interpreter in codec never touches package reflect.
package descriptor

import "github.com/tablecodec/pbcore/wire"

// Kind is a field's logical protobuf type, independent of how it is
// framed on the wire (that's wire.Type).
type Kind uint8

const (
	KindInt32 Kind = iota
	KindInt64
	KindUint32
	KindUint64
	KindSint32
	KindSint64
	KindFixed32
	KindFixed64
	KindSfixed32
	KindSfixed64
	KindFloat
	KindDouble
	KindBool
	KindEnum
	KindString
	KindBytes
	KindMessage
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindSint32:
		return "sint32"
	case KindSint64:
		return "sint64"
	case KindFixed32:
		return "fixed32"
	case KindFixed64:
		return "fixed64"
	case KindSfixed32:
		return "sfixed32"
	case KindSfixed64:
		return "sfixed64"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindMessage:
		return "message"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// IsPackable reports whether Kind may appear in a packed repeated
// field — every scalar numeric type and bool/enum, per proto3.
func (k Kind) IsPackable() bool {
	return k <= KindEnum
}

// NaturalWireType is the wire type a value of this Kind occupies when
// it is not inside a packed region: varint for everything zigzag or
// plain-varint coded, fixed32/fixed64 for the fixed-width numerics,
// length-delimited for string/bytes/message, group-start for group.
// The interpreter uses this both to validate an incoming tag and to
// decide, for a repeated field, whether bytes on the wire are the
// packed or unpacked form.
func (k Kind) NaturalWireType() wire.Type {
	switch k {
	case KindFixed32, KindSfixed32, KindFloat:
		return wire.TypeFixed32
	case KindFixed64, KindSfixed64, KindDouble:
		return wire.TypeFixed64
	case KindString, KindBytes, KindMessage:
		return wire.TypeLengthDelimited
	case KindGroup:
		return wire.TypeGroupStart
	default:
		return wire.TypeVarint
	}
}

// ScalarSize returns the in-memory size and alignment of one element
// of this Kind, used to size a RepeatedHeader element slot. Only
// meaningful for packable/scalar kinds.
func (k Kind) ScalarSize() (size, align uintptr) {
	switch k {
	case KindBool:
		return 1, 1
	case KindInt64, KindUint64, KindSint64, KindFixed64, KindSfixed64, KindDouble:
		return 8, 8
	default:
		return 4, 4
	}
}

// Cardinality is how many times a field may appear and whether it
// belongs to a oneof.
type Cardinality uint8

const (
	Singular Cardinality = iota
	Optional
	RepeatedUnpacked
	RepeatedPacked
	OneofMember
)

func (c Cardinality) IsRepeated() bool {
	return c == RepeatedUnpacked || c == RepeatedPacked
}
