// Package codec implements the push-based, resumable interpreter
// that walks a descriptor.Table against a message's storage (the
// message package) to decode and encode the wire format (the wire
// package). It is the one place in this repository that ties every
// lower layer together, generalizing gate/pb's single-shot
// reflect-driven Encode/Decode in the teacher repo into a state
// machine that accepts input in arbitrarily small pieces.
package codec

import "errors"

var (
	// ErrOutOfMemory replaces (does not wrap) an arena allocation
	// failure encountered mid-decode. The partially built message and its arena should be
	// discarded; retrying decode into a fresh arena is the only
	// recovery spec.md §4.1 allows.
	ErrOutOfMemory = errors.New("codec: out of memory")

	// ErrTruncated is returned by Finish when the input ended with an
	// unclosed frame, a partially read tag/length, or any other
	// in-flight construct.
	ErrTruncated = errors.New("codec: truncated message")

	// ErrMalformedVarint mirrors wire.ErrMalformedVarint, translated
	// to the codec's own error space so callers only need to know one
	// package's sentinels.
	ErrMalformedVarint = errors.New("codec: malformed varint")

	// ErrLengthOverflow is returned when a length-delimited header (a
	// string, bytes, packed, or sub-message field) declares more
	// bytes than remain in its enclosing frame.
	ErrLengthOverflow = errors.New("codec: length-delimited field overflows enclosing message")

	// ErrWireTypeMismatch exists for API completeness with spec.md's
	// error taxonomy; this decoder never actually returns it — a
	// scalar or message field whose wire type doesn't match its
	// descriptor is always reclassified as an unknown field and
	// skipped, per spec.md §4.3. The only wire-type disagreement this
	// decoder treats as fatal is a group boundary mismatch, which
	// surfaces as ErrGroupEndMismatch instead.
	ErrWireTypeMismatch = errors.New("codec: wire type mismatch")

	// ErrInvalidUTF8 is returned when a string field's bytes are not
	// well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("codec: string field is not valid UTF-8")

	// ErrDepthExceeded is returned when a nested message or group
	// field would push the frame stack past its configured StackDepth.
	ErrDepthExceeded = errors.New("codec: message nesting exceeds configured stack depth")

	// ErrGroupEndMismatch is returned when a group-end tag appears
	// with no corresponding open group, or whose field number doesn't
	// match the group that's actually open.
	ErrGroupEndMismatch = errors.New("codec: mismatched group end tag")

	// errInternal should never escape to a caller; its presence in a
	// test failure means the state machine reached a state this
	// package's author didn't think was reachable.
	errInternal = errors.New("codec: internal error")
)
