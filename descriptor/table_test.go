package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablecodec/pbcore/wire"
)

func TestBuildAndLookup(t *testing.T) {
	tbl, err := Build("Simple", 8, 1, 0, []Field{
		{Number: 1, WireType: wire.TypeVarint, Kind: KindInt32, Cardinality: Optional, Meta: HasBitIndex(0), Offset: 4},
	})
	require.NoError(t, err)
	f, ok := tbl.FieldByNumber(1)
	require.True(t, ok)
	assert.Equal(t, 1, f.Number)
	_, ok = tbl.FieldByNumber(2)
	assert.False(t, ok)
	_, ok = tbl.FieldByNumber(0)
	assert.False(t, ok)
}

func TestBuildRejectsOversizedStruct(t *testing.T) {
	_, err := Build("TooBig", 1025, 0, 0, nil)
	assert.Error(t, err)
}

func TestBuildRejectsDuplicateFieldNumber(t *testing.T) {
	_, err := Build("Dup", 16, 2, 0, []Field{
		{Number: 1, Kind: KindInt32, Meta: HasBitIndex(0)},
		{Number: 1, Kind: KindInt32, Meta: HasBitIndex(1)},
	})
	assert.Error(t, err)
}

func TestBuildRejectsReusedHasBit(t *testing.T) {
	_, err := Build("Reuse", 16, 1, 0, []Field{
		{Number: 1, Kind: KindInt32, Meta: HasBitIndex(0)},
		{Number: 2, Kind: KindInt32, Meta: HasBitIndex(0)},
	})
	assert.Error(t, err)
}

func TestBuildAllowsSharedOneofDiscriminant(t *testing.T) {
	_, err := Build("Oneof", 16, 0, 1, []Field{
		{Number: 1, Kind: KindInt32, Cardinality: OneofMember, Meta: OneofDiscriminantIndex(0)},
		{Number: 2, Kind: KindInt32, Cardinality: OneofMember, Meta: OneofDiscriminantIndex(0)},
	})
	assert.NoError(t, err)
}

func TestBuildRejectsFieldNumberOutOfRange(t *testing.T) {
	_, err := Build("Bad", 16, 1, 0, []Field{
		{Number: 0, Kind: KindInt32, Meta: HasBitIndex(0)},
	})
	assert.Error(t, err)
	_, err = Build("Bad2", 16, 1, 0, []Field{
		{Number: wire.MaxFieldNumber + 1, Kind: KindInt32, Meta: HasBitIndex(0)},
	})
	assert.Error(t, err)
}

func TestBuildRequiresChildTableForMessageField(t *testing.T) {
	_, err := Build("NoChild", 16, 1, 0, []Field{
		{Number: 1, Kind: KindMessage, Meta: HasBitIndex(0)},
	})
	assert.Error(t, err)
}

func TestMetaIndexRoundTrip(t *testing.T) {
	h := HasBitIndex(5)
	assert.False(t, h.IsOneof())
	assert.Equal(t, 5, h.Index())

	o := OneofDiscriminantIndex(5)
	assert.True(t, o.IsOneof())
	assert.Equal(t, 5, o.Index())
}

func TestSparseFieldNumbersTolerated(t *testing.T) {
	tbl, err := Build("Sparse", 16, 1, 0, []Field{
		{Number: 100, Kind: KindInt32, Meta: HasBitIndex(0)},
	})
	require.NoError(t, err)
	f, ok := tbl.FieldByNumber(100)
	require.True(t, ok)
	assert.Equal(t, 100, f.Number)
	_, ok = tbl.FieldByNumber(50)
	assert.False(t, ok)
}
