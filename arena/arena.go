// Package arena implements the block-based bump allocator that backs
// every message the codec produces. All allocation is fallible: a
// caller that wants a memory budget supplies an Allocator that starts
// refusing blocks past some threshold, and Arena propagates that
// refusal as ErrOutOfMemory instead of panicking.
//
// An Arena is single-threaded. It is never safe to call Alloc from two
// goroutines concurrently on the same Arena; callers that need
// concurrent decode own one Arena per decoder.
package arena

// Arena is an ordered sequence of blocks plus a bump cursor into the
// newest one. Destroying it (letting it become unreachable, or
// explicitly handing its blocks back via Reset) frees everything it
// ever handed out in one step; there is no per-object Free.
type Arena struct {
	current   *block
	lastSize  int
	allocator Allocator
}

// New creates an Arena backed by the given Allocator. A nil Allocator
// uses the plain Go heap.
func New(allocator Allocator) *Arena {
	if allocator == nil {
		allocator = HeapAllocator
	}
	return &Arena{allocator: allocator}
}

// Alloc returns size bytes aligned to align, a power of two ≤
// MaxAlign. The returned slice is never zero-filled by convention
// beyond what the backing allocator happens to provide; callers must
// initialize every byte they read.
func (a *Arena) Alloc(size, align int) ([]byte, error) {
	if align <= 0 || align > MaxAlign || !isPowerOfTwo(align) {
		return nil, ErrInvalidAlignment
	}
	if size == 0 {
		return nil, nil
	}
	if a.current != nil {
		if start := alignUp(a.current.cursor, align); start >= 0 && start+size <= len(a.current.data) {
			a.current.cursor = start + size
			return a.current.data[start : start+size : start+size], nil
		}
	}
	return a.allocFromNewBlock(size, align)
}

// AllocArray is Alloc for a contiguous run of count elements, each
// elemSize bytes wide and elemAlign aligned. It is the primitive
// behind repeated-field growth (message.RepeatedHeader).
func (a *Arena) AllocArray(elemSize, elemAlign uintptr, count int) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}
	return a.Alloc(int(elemSize)*count, int(elemAlign))
}

func (a *Arena) allocFromNewBlock(size, align int) ([]byte, error) {
	// A request larger than a block on its own still needs room for
	// alignment padding in the worst case; over-request by align-1.
	reqSize := size + align - 1
	blockSize := nextBlockSize(reqSize, a.lastSize)
	data, err := a.allocator.AllocBlock(blockSize, MaxAlign)
	if err != nil {
		return nil, ErrOutOfMemory
	}
	b := &block{data: data, next: a.current}
	a.current = b
	a.lastSize = blockSize
	start := alignUp(0, align)
	if start < 0 || start+size > len(b.data) {
		// Can only happen if the allocator handed back a short block.
		return nil, ErrOutOfMemory
	}
	b.cursor = start + size
	return b.data[start : start+size : start+size], nil
}

// Reset releases every block but the first back to the Allocator and
// rewinds the bump cursor on the one it keeps. It does not zero the
// retained block; nothing in this package relies on freed regions
// being zeroed.
func (a *Arena) Reset() {
	if a.current == nil {
		return
	}
	first := a.current
	for first.next != nil {
		victim := first
		first = first.next
		a.allocator.FreeBlock(victim.data)
	}
	first.cursor = 0
	first.next = nil
	a.current = first
}

// Stats reports the number of live blocks and total bytes currently
// held, for diagnostics and memory-budget reporting.
func (a *Arena) Stats() (blocks int, bytes int) {
	for b := a.current; b != nil; b = b.next {
		blocks++
		bytes += len(b.data)
	}
	return
}
