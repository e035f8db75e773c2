package arena

import "sync"

// Allocator is the only dynamic-dispatch boundary the arena exposes.
// Per-object allocations inside an Arena are plain bump-pointer
// arithmetic; only whole-block requests reach an Allocator.
type Allocator interface {
	AllocBlock(size, align int) ([]byte, error)
	FreeBlock(buf []byte)
}

// heapAllocator satisfies Allocator with make([]byte, ...). Go's
// allocator already returns memory aligned well beyond our 16-byte
// ceiling, so AllocBlock never needs to over-allocate for alignment.
type heapAllocator struct{}

// HeapAllocator is the default Allocator, backed by the Go heap.
var HeapAllocator Allocator = heapAllocator{}

func (heapAllocator) AllocBlock(size, _ int) ([]byte, error) {
	return make([]byte, size), nil
}

func (heapAllocator) FreeBlock([]byte) {}

// pooledAllocator reuses power-of-two-sized blocks through a tier of
// sync.Pools, the way the teacher's bpool package reused network read
// buffers. It trades a small bit of bookkeeping for fewer GC-visible
// allocations when arenas are created and reset often.
type pooledAllocator struct {
	tiers [poolTiers]sync.Pool
}

const (
	poolMinSize = 8 * 1024
	poolTiers   = 8 // 8K,16K,32K,64K,128K,256K,512K,1M
)

// NewPooledAllocator returns an Allocator that recycles blocks at the
// arena's standard size tiers (8 KiB .. 1 MiB). Blocks of any size
// that is not exactly one of those tiers fall back to the heap, same as bpool's oversized-buffer path.
func NewPooledAllocator() Allocator {
	p := &pooledAllocator{}
	for i := range p.tiers {
		size := poolMinSize << i
		p.tiers[i].New = func() interface{} {
			return make([]byte, size)
		}
	}
	return p
}

func (p *pooledAllocator) AllocBlock(size, _ int) ([]byte, error) {
	idx := poolTierFor(size)
	if idx < 0 {
		return make([]byte, size), nil
	}
	buf := p.tiers[idx].Get().([]byte)
	return buf[:size:cap(buf)], nil
}

func (p *pooledAllocator) FreeBlock(buf []byte) {
	idx := poolTierFor(cap(buf))
	if idx < 0 {
		return
	}
	p.tiers[idx].Put(buf[:cap(buf)])
}

// poolTierFor returns the pool index whose block size equals size
// exactly, or -1 if size isn't one of the standard tiers.
func poolTierFor(size int) int {
	for i := 0; i < poolTiers; i++ {
		if poolMinSize<<i == size {
			return i
		}
	}
	return -1
}
