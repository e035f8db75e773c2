package arena

import "errors"

// ErrOutOfMemory is returned whenever the backing allocator refuses a
// block request. Arena never panics on allocation failure; callers
// that need to budget memory check for this value with errors.Is.
var ErrOutOfMemory = errors.New("arena: out of memory")

// ErrInvalidAlignment is returned when the requested alignment is not
// a power of two or exceeds MaxAlign.
var ErrInvalidAlignment = errors.New("arena: invalid alignment")
