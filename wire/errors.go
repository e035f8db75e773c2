package wire

import "errors"

var (
	// ErrNeedMore is returned by every primitive when the supplied
	// slice ends before the construct it was decoding does. It is not
	// a terminal error: the codec saves partial state and the caller
	// retries with more bytes appended.
	ErrNeedMore = errors.New("wire: need more bytes")
	// ErrMalformedVarint is returned when a 10th continuation byte is
	// still set, which can never happen in a canonical encoding of a
	// 64-bit value.
	ErrMalformedVarint = errors.New("wire: malformed varint")
	// ErrLengthOverflow names a length-delimited header that declares
	// more bytes than remain in the enclosing region. No routine in
	// this package returns it; the codec performs that check and
	// reports codec.ErrLengthOverflow.
	ErrLengthOverflow = errors.New("wire: length-delimited field overflows enclosing message")
)
