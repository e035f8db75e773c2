package codec

import (
	"unsafe"

	"github.com/tablecodec/pbcore/arena"
	"github.com/tablecodec/pbcore/descriptor"
)

// DefaultStackDepth is the frame-stack bound used when a caller
// doesn't configure one explicitly (runtimeconfig.Config.StackDepth
// defaults to this too).
const DefaultStackDepth = 64

// frame is one entry in the decoder's nesting stack: a
// message or group instance currently being filled, plus how many
// more bytes of its own body remain. remaining is -1 for the root
// frame and for any open group, both of which close by something
// other than a byte countdown.
type frame struct {
	table     *descriptor.Table
	instance  unsafe.Pointer
	remaining int64
	isGroup   bool
	groupNum  int
}

// payloadKind distinguishes the four terminal, possibly-chunk-
// spanning constructs a length-delimited tag can introduce. Unlike a
// sub-message, none of these pushes a frame: the bytes are either
// copied whole into the message (string/bytes), decoded as a run of
// packed scalars, or simply discarded (an unknown field).
type payloadKind uint8

const (
	payloadString payloadKind = iota
	payloadBytes
	payloadPacked
	payloadSkip
)

// payloadState is the resume record for a length-delimited payload
// that didn't fully arrive in one Push call. remaining counts bytes
// of the declared length not yet seen; scratch accumulates them for
// every kind except payloadSkip, which only needs the count.
type payloadState struct {
	kind      payloadKind
	field     *descriptor.Field
	remaining int
	scratch   []byte
}

// DecodeState is a single resumable decode in progress: one arena, one
// root message instance, and the frame/payload/pending-bytes record
// that lets Push accept its input in arbitrarily small pieces. A tag,
// scalar value or length header split across two Push calls is kept
// as a copy in pending and parsed again from its first byte on the
// next call; string/bytes/packed bodies are accumulated without being
// re-read. Zero value is not usable; construct with NewDecodeState.
type DecodeState struct {
	arena      *arena.Arena
	stack      []frame
	stackDepth int
	payload    *payloadState
	pending    []byte
	done       bool
}

// NewDecodeState begins decoding into a fresh instance of the message
// tbl describes, allocated from a. stackDepth bounds the nesting depth
// of messages and groups this decode will accept; 0 selects
// DefaultStackDepth.
func NewDecodeState(a *arena.Arena, tbl *descriptor.Table, stackDepth int) (*DecodeState, unsafe.Pointer, error) {
	if stackDepth <= 0 {
		stackDepth = DefaultStackDepth
	}
	inst, err := newInstance(a, tbl)
	if err != nil {
		return nil, nil, err
	}
	d := &DecodeState{
		arena:      a,
		stackDepth: stackDepth,
		stack: []frame{{
			table:     tbl,
			instance:  inst,
			remaining: -1,
		}},
	}
	return d, inst, nil
}

func (d *DecodeState) topFrame() *frame {
	if len(d.stack) == 0 {
		return nil
	}
	return &d.stack[len(d.stack)-1]
}
