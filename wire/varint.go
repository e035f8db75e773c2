// Package wire implements the byte-level primitives of the protobuf
// wire format: varints, zigzag, fixed32/64 and tags. A length-delimited
// header is read with GetVarint; checking the length against the
// enclosing region is left to the codec package. Every routine here is a pure function over a (buf, index)
// pair; none of them allocate or retain a reference to buf after
// returning. This mirrors the teacher's gate/pb encoder/decoder split
// of one function per primitive type, generalized from gootp's
// fixed-width big-endian framing to protobuf's variable-width
// little-endian wire contract.
package wire

const maxVarintLen = 10

// AppendVarint writes v in canonical protobuf varint form (1-10
// bytes, no trailing zero continuation bytes) and returns the
// extended slice.
func AppendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// SizeVarint returns the number of bytes AppendVarint would emit for
// v, used by the encoder to pre-measure packed repeated fields.
func SizeVarint(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// GetVarint decodes a varint starting at index. It returns the
// decoded value and the index just past it. If buf runs out before a
// terminating byte (one with the continuation bit clear) is seen, it
// returns ErrNeedMore; the caller is expected to retry once more
// bytes are available, passing the same unconsumed prefix again (the
// codec's resume logic buffers that prefix itself).
func GetVarint(buf []byte, index int) (v uint64, next int, err error) {
	var shift uint
	for i := 0; i < maxVarintLen; i++ {
		if index+i >= len(buf) {
			return 0, index, ErrNeedMore
		}
		b := buf[index+i]
		if i == maxVarintLen-1 && b >= 0x80 {
			return 0, index, ErrMalformedVarint
		}
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, index + i + 1, nil
		}
		shift += 7
	}
	return 0, index, ErrMalformedVarint
}

// ZigZagEncode maps a signed value to an unsigned one so that small
// magnitude values (positive or negative) encode as small varints.
func ZigZagEncode(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(n uint64) int64 {
	return int64(n>>1) ^ -int64(n&1)
}
