package codec

import (
	"math"
	"unsafe"

	"github.com/tablecodec/pbcore/descriptor"
	"github.com/tablecodec/pbcore/ptr"
	"github.com/tablecodec/pbcore/wire"
)

// storeVarint writes a varint-coded wire value into dst according to
// k, applying zigzag decoding for the signed-zigzag kinds, raw != 0
// for bool, and a plain truncating cast for everything else (enum,
// [u]int32/64).
func storeVarint(dst unsafe.Pointer, k descriptor.Kind, raw uint64) {
	switch k {
	case descriptor.KindInt32:
		ptr.StoreInt32(dst, int32(raw))
	case descriptor.KindInt64:
		ptr.StoreInt64(dst, int64(raw))
	case descriptor.KindUint32:
		ptr.StoreUint32(dst, uint32(raw))
	case descriptor.KindUint64:
		ptr.StoreUint64(dst, raw)
	case descriptor.KindSint32:
		ptr.StoreInt32(dst, int32(wire.ZigZagDecode(raw)))
	case descriptor.KindSint64:
		ptr.StoreInt64(dst, wire.ZigZagDecode(raw))
	case descriptor.KindBool:
		ptr.StoreBool(dst, raw != 0)
	case descriptor.KindEnum:
		ptr.StoreInt32(dst, int32(raw))
	}
}

func loadVarint(src unsafe.Pointer, k descriptor.Kind) uint64 {
	switch k {
	case descriptor.KindInt32:
		return uint64(uint32(ptr.LoadInt32(src)))
	case descriptor.KindInt64:
		return uint64(ptr.LoadInt64(src))
	case descriptor.KindUint32:
		return uint64(ptr.LoadUint32(src))
	case descriptor.KindUint64:
		return ptr.LoadUint64(src)
	case descriptor.KindSint32:
		return wire.ZigZagEncode(int64(ptr.LoadInt32(src)))
	case descriptor.KindSint64:
		return wire.ZigZagEncode(ptr.LoadInt64(src))
	case descriptor.KindBool:
		if ptr.LoadBool(src) {
			return 1
		}
		return 0
	case descriptor.KindEnum:
		return uint64(uint32(ptr.LoadInt32(src)))
	}
	return 0
}

func storeFixed32(dst unsafe.Pointer, k descriptor.Kind, raw uint32) {
	switch k {
	case descriptor.KindFixed32:
		ptr.StoreUint32(dst, raw)
	case descriptor.KindSfixed32:
		ptr.StoreInt32(dst, int32(raw))
	case descriptor.KindFloat:
		ptr.StoreFloat32(dst, math.Float32frombits(raw))
	}
}

func loadFixed32(src unsafe.Pointer, k descriptor.Kind) uint32 {
	switch k {
	case descriptor.KindFixed32:
		return ptr.LoadUint32(src)
	case descriptor.KindSfixed32:
		return uint32(ptr.LoadInt32(src))
	case descriptor.KindFloat:
		return math.Float32bits(ptr.LoadFloat32(src))
	}
	return 0
}

func storeFixed64(dst unsafe.Pointer, k descriptor.Kind, raw uint64) {
	switch k {
	case descriptor.KindFixed64:
		ptr.StoreUint64(dst, raw)
	case descriptor.KindSfixed64:
		ptr.StoreInt64(dst, int64(raw))
	case descriptor.KindDouble:
		ptr.StoreFloat64(dst, math.Float64frombits(raw))
	}
}

func loadFixed64(src unsafe.Pointer, k descriptor.Kind) uint64 {
	switch k {
	case descriptor.KindFixed64:
		return ptr.LoadUint64(src)
	case descriptor.KindSfixed64:
		return uint64(ptr.LoadInt64(src))
	case descriptor.KindDouble:
		return math.Float64bits(ptr.LoadFloat64(src))
	}
	return 0
}
