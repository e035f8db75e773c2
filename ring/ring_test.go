package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	b := New(4)
	require.Equal(t, 4, b.Cap())
	n := b.Write([]byte("hello"))
	assert.Equal(t, 4, n) // only 4 bytes fit

	out := make([]byte, 4)
	got := b.Read(out)
	assert.Equal(t, 4, got)
	assert.Equal(t, "hell", string(out))
	assert.Equal(t, 0, b.Len())
}

func TestWrapsAroundCapacity(t *testing.T) {
	b := New(4)
	b.Write([]byte("ab"))
	out := make([]byte, 1)
	b.Read(out)
	b.Write([]byte("cde")) // wraps past the end of the backing array
	rest := make([]byte, 4)
	n := b.Read(rest)
	assert.Equal(t, 4, n)
	assert.Equal(t, "bcde", string(rest[:n]))
}

func TestPushBytesReportsPartialAcceptance(t *testing.T) {
	b := New(2)
	res, err := b.PushBytes([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, res.N)
	assert.Equal(t, 0, b.Free())
}

func TestPeekDoesNotConsume(t *testing.T) {
	b := New(8)
	b.Write([]byte("xyz"))
	assert.Equal(t, "xy", string(b.Peek(2)))
	assert.Equal(t, 3, b.Len())
}

func TestDiscard(t *testing.T) {
	b := New(8)
	b.Write([]byte("abcdef"))
	n := b.Discard(3)
	assert.Equal(t, 3, n)
	out := make([]byte, 3)
	b.Read(out)
	assert.Equal(t, "def", string(out))
}

func TestCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	b := New(5)
	assert.Equal(t, 8, b.Cap())
}
