// Package ptr provides the small set of unsafe.Pointer arithmetic
// primitives the interpreter needs to read and write fields at the
// byte offsets recorded in a descriptor.Table. It is a direct
// generalization of the teacher's pfun package, which used the same
// offset-plus-cast trick to avoid reflect.Value overhead in its
// table-driven pb codec; this version widens it from pfun's
// int32/int64 pair to every scalar kind the message surface needs.
package ptr

import "unsafe"

// Offset returns base advanced by off bytes. It never dereferences
// anything; callers are responsible for off staying within the
// message's declared struct size (descriptor.Build checks only the
// 1024-byte size limit, not field offsets against the size).
func Offset(base unsafe.Pointer, off uintptr) unsafe.Pointer {
	return unsafe.Pointer(uintptr(base) + off)
}

func LoadBool(p unsafe.Pointer) bool     { return *(*bool)(p) }
func StoreBool(p unsafe.Pointer, v bool) { *(*bool)(p) = v }

func LoadInt32(p unsafe.Pointer) int32     { return *(*int32)(p) }
func StoreInt32(p unsafe.Pointer, v int32) { *(*int32)(p) = v }

func LoadInt64(p unsafe.Pointer) int64     { return *(*int64)(p) }
func StoreInt64(p unsafe.Pointer, v int64) { *(*int64)(p) = v }

func LoadUint32(p unsafe.Pointer) uint32     { return *(*uint32)(p) }
func StoreUint32(p unsafe.Pointer, v uint32) { *(*uint32)(p) = v }

func LoadUint64(p unsafe.Pointer) uint64     { return *(*uint64)(p) }
func StoreUint64(p unsafe.Pointer, v uint64) { *(*uint64)(p) = v }

func LoadFloat32(p unsafe.Pointer) float32     { return *(*float32)(p) }
func StoreFloat32(p unsafe.Pointer, v float32) { *(*float32)(p) = v }

func LoadFloat64(p unsafe.Pointer) float64     { return *(*float64)(p) }
func StoreFloat64(p unsafe.Pointer, v float64) { *(*float64)(p) = v }

// LoadPointer/StorePointer move a sub-message or byte-slice-data
// pointer in or out of a message's storage. The message surface
// represents "no sub-message" and "no backing bytes" the same way:
// a nil unsafe.Pointer, gated by a clear has-bit.
func LoadPointer(p unsafe.Pointer) unsafe.Pointer     { return *(*unsafe.Pointer)(p) }
func StorePointer(p unsafe.Pointer, v unsafe.Pointer) { *(*unsafe.Pointer)(p) = v }

// BytesAt views n bytes starting at p as a []byte without copying.
// Used to materialize string/bytes field storage and to copy a
// repeated field's backing region when it grows.
func BytesAt(p unsafe.Pointer, n int) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

// Uint32SliceAt views n uint32 words starting at p, such as a
// message's metadata array (has-bits + oneof discriminants). The
// message package itself reads metadata words one at a time with
// LoadUint32.
func Uint32SliceAt(p unsafe.Pointer, n int) []uint32 {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(p), n)
}
