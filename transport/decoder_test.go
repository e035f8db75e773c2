package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablecodec/pbcore/examplepb"
	"github.com/tablecodec/pbcore/message"
	"github.com/tablecodec/pbcore/ptr"
)

func TestDecoderAccumulatesAcrossPushes(t *testing.T) {
	d := newDecoder(examplepb.Simple)
	require.NoError(t, d.push([]byte{0x08}))
	assert.False(t, d.finished())
	require.NoError(t, d.push([]byte{0x2A}))
	assert.True(t, d.finished())

	f := &examplepb.Simple.Fields[0]
	assert.EqualValues(t, 42, ptr.LoadInt32(message.FieldPtr(d.instance(), f)))
}

func TestDecoderStaysUnfinishedOnPartialMessage(t *testing.T) {
	d := newDecoder(examplepb.Nested)
	require.NoError(t, d.push([]byte{0x12, 0x02, 0x08}))
	assert.False(t, d.finished())
}
