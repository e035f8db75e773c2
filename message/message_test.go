package message

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablecodec/pbcore/arena"
	"github.com/tablecodec/pbcore/descriptor"
	"github.com/tablecodec/pbcore/ptr"
	"github.com/tablecodec/pbcore/wire"
)

func TestHasBitSetClear(t *testing.T) {
	a := arena.New(nil)
	buf, err := a.Alloc(4, 4)
	require.NoError(t, err)
	base := unsafe.Pointer(&buf[0])

	assert.False(t, HasBit(base, 3))
	SetHasBit(base, 3)
	assert.True(t, HasBit(base, 3))
	ClearHasBit(base, 3)
	assert.False(t, HasBit(base, 3))
}

func TestHasBitsAreIndependent(t *testing.T) {
	a := arena.New(nil)
	buf, err := a.Alloc(8, 4)
	require.NoError(t, err)
	base := unsafe.Pointer(&buf[0])

	SetHasBit(base, 0)
	SetHasBit(base, 31)
	SetHasBit(base, 32)
	assert.True(t, HasBit(base, 0))
	assert.True(t, HasBit(base, 31))
	assert.True(t, HasBit(base, 32))
	assert.False(t, HasBit(base, 1))
	ClearHasBit(base, 31)
	assert.True(t, HasBit(base, 0))
	assert.False(t, HasBit(base, 31))
	assert.True(t, HasBit(base, 32))
}

func TestOneofDiscriminant(t *testing.T) {
	a := arena.New(nil)
	buf, err := a.Alloc(8, 4)
	require.NoError(t, err)
	base := unsafe.Pointer(&buf[0])
	hasBitWords := 1 // one has-bit word, then the oneof word at index 1

	assert.Equal(t, 0, OneofDiscriminant(base, hasBitWords, 0))
	SetOneofDiscriminant(base, hasBitWords, 0, 7)
	assert.Equal(t, 7, OneofDiscriminant(base, hasBitWords, 0))
	ClearOneofDiscriminant(base, hasBitWords, 0)
	assert.Equal(t, 0, OneofDiscriminant(base, hasBitWords, 0))
}

func TestFieldPresentOneofVsHasBit(t *testing.T) {
	a := arena.New(nil)
	buf, err := a.Alloc(8, 4)
	require.NoError(t, err)
	base := unsafe.Pointer(&buf[0])

	scalar := &descriptor.Field{Number: 1, Meta: descriptor.HasBitIndex(0)}
	member1 := &descriptor.Field{Number: 5, Meta: descriptor.OneofDiscriminantIndex(0)}
	member2 := &descriptor.Field{Number: 6, Meta: descriptor.OneofDiscriminantIndex(0)}

	assert.False(t, FieldPresent(base, 1, scalar))
	SetFieldPresent(base, 1, scalar)
	assert.True(t, FieldPresent(base, 1, scalar))

	assert.False(t, FieldPresent(base, 1, member1))
	SetFieldPresent(base, 1, member1)
	assert.True(t, FieldPresent(base, 1, member1))
	assert.False(t, FieldPresent(base, 1, member2))

	SetFieldPresent(base, 1, member2)
	assert.False(t, FieldPresent(base, 1, member1))
	assert.True(t, FieldPresent(base, 1, member2))
}

func TestRepeatedGrowAppendsAndCopies(t *testing.T) {
	a := arena.New(nil)
	hdr := &RepeatedHeader{}
	for i := int32(0); i < 10; i++ {
		slot, err := Grow(a, hdr, 4, 4)
		require.NoError(t, err)
		ptr.StoreInt32(slot, i)
	}
	assert.EqualValues(t, 10, hdr.Len)
	for i := 0; i < 10; i++ {
		v := ptr.LoadInt32(ElemPtr(hdr, i, 4))
		assert.EqualValues(t, i, v)
	}
}

func TestBytesSetGetRoundTrip(t *testing.T) {
	a := arena.New(nil)
	hdr := &BytesHeader{}
	require.NoError(t, SetBytes(a, hdr, []byte("Hello")))
	assert.Equal(t, "Hello", string(GetBytes(hdr)))
}

func TestBytesEmptyHasZeroLengthNoAlloc(t *testing.T) {
	a := arena.New(nil)
	hdr := &BytesHeader{}
	require.NoError(t, SetBytes(a, hdr, []byte{}))
	assert.Equal(t, 0, len(GetBytes(hdr)))
	assert.Nil(t, hdr.Data)
}

func TestSubMessagePointer(t *testing.T) {
	a := arena.New(nil)
	buf, err := a.Alloc(8, 8)
	require.NoError(t, err)
	base := unsafe.Pointer(&buf[0])

	child := unsafe.Pointer(&buf[0])
	SetSubMessage(base, child)
	assert.Equal(t, child, SubMessage(base))
}

func TestNewZeroesMessage(t *testing.T) {
	a := arena.New(nil)
	tbl, err := descriptor.Build("M", 16, 1, 0, []descriptor.Field{
		{Number: 1, WireType: wire.TypeVarint, Kind: descriptor.KindInt32, Meta: descriptor.HasBitIndex(0), Offset: 4},
	})
	require.NoError(t, err)
	obj, err := New(a, tbl)
	require.NoError(t, err)
	assert.False(t, HasBit(obj, 0))
	fp := FieldPtr(obj, &tbl.Fields[0])
	assert.EqualValues(t, 0, ptr.LoadInt32(fp))
}
