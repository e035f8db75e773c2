// Package examplepb hand-builds a handful of descriptor.Tables the
// way a .proto code generator would, for use by codec's tests and by
// cmd/pbcoreshell's demo REPL. There is no .proto source here — these
// shapes exist purely to exercise the interpreter against every field
// kind and cardinality spec.md §8 describes scenarios for.
package examplepb

import (
	"github.com/tablecodec/pbcore/descriptor"
	"github.com/tablecodec/pbcore/wire"
)

// Simple has one singular int32 field, number 1 — the "08 2A" scenario.
var Simple = mustBuild("Simple", 8, 1, 0, []descriptor.Field{
	{Number: 1, WireType: wire.TypeVarint, Kind: descriptor.KindInt32, Cardinality: descriptor.Singular, Meta: descriptor.HasBitIndex(0), Offset: 4},
})

// WithName has one singular string field, number 1 — the
// "0A 05 48 65 6C 6C 6F" scenario.
var WithName = mustBuild("WithName", 24, 1, 0, []descriptor.Field{
	{Number: 1, WireType: wire.TypeLengthDelimited, Kind: descriptor.KindString, Cardinality: descriptor.Singular, Meta: descriptor.HasBitIndex(0), Offset: 8},
})

// child is Nested's field-2 sub-message type: one singular int32,
// field number 1 — same shape as Simple, declared separately so
// Nested.Fields[0].Child points at a distinct *descriptor.Table.
var child = mustBuild("Nested.Child", 8, 1, 0, []descriptor.Field{
	{Number: 1, WireType: wire.TypeVarint, Kind: descriptor.KindInt32, Cardinality: descriptor.Singular, Meta: descriptor.HasBitIndex(0), Offset: 4},
})

// Nested has one singular message field, number 2 — the "12 02 08 07"
// scenario.
var Nested = mustBuild("Nested", 16, 1, 0, []descriptor.Field{
	{Number: 2, WireType: wire.TypeLengthDelimited, Kind: descriptor.KindMessage, Cardinality: descriptor.Singular, Meta: descriptor.HasBitIndex(0), Offset: 8, Child: child},
})

// Packed has one packed-repeated int32 field, number 4 — the
// "22 03 01 02 03" scenario.
var Packed = mustBuild("Packed", 24, 0, 0, []descriptor.Field{
	{Number: 4, WireType: wire.TypeLengthDelimited, Kind: descriptor.KindInt32, Cardinality: descriptor.RepeatedPacked, Offset: 8},
})

// Unpacked has one unpacked-repeated int32 field, number 4, for the
// merge-compatibility tests (a packed wire payload must still decode
// into it, and vice versa for Packed against unpacked wire bytes).
var Unpacked = mustBuild("Unpacked", 24, 0, 0, []descriptor.Field{
	{Number: 4, WireType: wire.TypeVarint, Kind: descriptor.KindInt32, Cardinality: descriptor.RepeatedUnpacked, Offset: 8},
})

// Choice has a two-member oneof: field 5 (int32) and field 6 (string)
// share oneof discriminant word 0.
var Choice = mustBuild("Choice", 24, 0, 1, []descriptor.Field{
	{Number: 5, WireType: wire.TypeVarint, Kind: descriptor.KindInt32, Cardinality: descriptor.OneofMember, Meta: descriptor.OneofDiscriminantIndex(0), Offset: 4},
	{Number: 6, WireType: wire.TypeLengthDelimited, Kind: descriptor.KindString, Cardinality: descriptor.OneofMember, Meta: descriptor.OneofDiscriminantIndex(0), Offset: 8},
})

// Wrapped has a single group field, number 3, wrapping a Simple-shaped
// body — exercises the group-start/group-end path without a length
// header.
var Wrapped = mustBuild("Wrapped", 16, 1, 0, []descriptor.Field{
	{Number: 3, WireType: wire.TypeGroupStart, Kind: descriptor.KindGroup, Cardinality: descriptor.Singular, Meta: descriptor.HasBitIndex(0), Offset: 8, Child: child},
})

func mustBuild(name string, size uintptr, hasBitWords, oneofWords int, fields []descriptor.Field) *descriptor.Table {
	t, err := descriptor.Build(name, size, hasBitWords, oneofWords, fields)
	if err != nil {
		panic(err)
	}
	return t
}
