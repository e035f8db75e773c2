package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 20, math.MaxUint32, math.MaxUint64}
	for _, v := range cases {
		buf := AppendVarint(nil, v)
		assert.Equal(t, SizeVarint(v), len(buf))
		got, next, err := GetVarint(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, len(buf), next)
		assert.Equal(t, v, got)
	}
}

func TestVarintMaxLen(t *testing.T) {
	buf := AppendVarint(nil, math.MaxUint64)
	assert.Len(t, buf, 10)
	v, next, err := GetVarint(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v)
	assert.Equal(t, 10, next)
}

func TestVarintMalformed(t *testing.T) {
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = 0x80
	}
	buf[9] = 0x80 // 10th byte still has continuation bit set
	_, _, err := GetVarint(buf, 0)
	assert.ErrorIs(t, err, ErrMalformedVarint)
}

func TestVarintNeedMore(t *testing.T) {
	buf := []byte{0x80, 0x80}
	_, _, err := GetVarint(buf, 0)
	assert.ErrorIs(t, err, ErrNeedMore)
}

func TestVarintNeverEmitsTrailingZeroByte(t *testing.T) {
	// 300 = 0b100101100 -> low 7 bits 0101100 with cont bit, then 10
	buf := AppendVarint(nil, 300)
	assert.Equal(t, []byte{0xAC, 0x02}, buf)
}

func TestZigZagRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 2, -2, math.MaxInt64, math.MinInt64}
	for _, n := range cases {
		assert.Equal(t, n, ZigZagDecode(ZigZagEncode(n)))
	}
}

func TestZigZagSmallMagnitudeIsSmall(t *testing.T) {
	assert.Equal(t, uint64(0), ZigZagEncode(0))
	assert.Equal(t, uint64(1), ZigZagEncode(-1))
	assert.Equal(t, uint64(2), ZigZagEncode(1))
}

func TestFixed32RoundTrip(t *testing.T) {
	buf := AppendFixed32(nil, 0xdeadbeef)
	v, next, err := GetFixed32(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), v)
	assert.Equal(t, 4, next)
}

func TestFixed64RoundTrip(t *testing.T) {
	buf := AppendFixed64(nil, 0x0102030405060708)
	v, next, err := GetFixed64(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), v)
	assert.Equal(t, 8, next)
}

func TestFixedNeedMore(t *testing.T) {
	_, _, err := GetFixed32(nil, 0)
	assert.ErrorIs(t, err, ErrNeedMore)
	_, _, err = GetFixed64([]byte{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrNeedMore)
}

func TestTagOneByteBoundaryAtFieldFifteen(t *testing.T) {
	buf := AppendTag(nil, 15, TypeVarint)
	assert.Len(t, buf, 1)
	num, wt, next, err := GetTag(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 15, num)
	assert.Equal(t, TypeVarint, wt)
	assert.Equal(t, 1, next)
}

func TestTagTwoByteBoundaryAtFieldSixteen(t *testing.T) {
	buf := AppendTag(nil, 16, TypeVarint)
	assert.Len(t, buf, 2)
	num, wt, _, err := GetTag(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 16, num)
	assert.Equal(t, TypeVarint, wt)
}

func TestTagRoundTripAllWireTypes(t *testing.T) {
	for _, wt := range []Type{TypeVarint, TypeFixed64, TypeLengthDelimited, TypeGroupStart, TypeGroupEnd, TypeFixed32} {
		buf := AppendTag(nil, 42, wt)
		num, got, _, err := GetTag(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, 42, num)
		assert.Equal(t, wt, got)
	}
}
