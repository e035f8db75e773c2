package wire

import "encoding/binary"

// AppendFixed32 appends v little-endian, as protobuf's fixed32/float
// wire type requires.
func AppendFixed32(buf []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, v)
}

// AppendFixed64 appends v little-endian, for fixed64/double.
func AppendFixed64(buf []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(buf, v)
}

// GetFixed32 reads 4 little-endian bytes at index, or ErrNeedMore if
// short.
func GetFixed32(buf []byte, index int) (v uint32, next int, err error) {
	if index+4 > len(buf) {
		return 0, index, ErrNeedMore
	}
	return binary.LittleEndian.Uint32(buf[index:]), index + 4, nil
}

// GetFixed64 reads 8 little-endian bytes at index, or ErrNeedMore if
// short.
func GetFixed64(buf []byte, index int) (v uint64, next int, err error) {
	if index+8 > len(buf) {
		return 0, index, ErrNeedMore
	}
	return binary.LittleEndian.Uint64(buf[index:]), index + 8, nil
}
