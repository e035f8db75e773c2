package transport

import (
	"unsafe"

	"github.com/tablecodec/pbcore/arena"
	"github.com/tablecodec/pbcore/codec"
	"github.com/tablecodec/pbcore/descriptor"
)

// decoder owns one message's worth of arena + DecodeState, created
// fresh per message the way the teacher's ConnNbio reset its bpool
// buffer after dispatching a complete frame (gate/nb_conn.go's
// readBuf resets c.buffer once totalSize bytes have arrived).
type decoder struct {
	table *descriptor.Table
	arena *arena.Arena
	state *codec.DecodeState
	inst  unsafe.Pointer
	err   error
	done  bool
}

func newDecoder(tbl *descriptor.Table) *decoder {
	a := arena.New(arena.NewPooledAllocator())
	st, inst, err := codec.NewDecodeState(a, tbl, codec.DefaultStackDepth)
	return &decoder{table: tbl, arena: a, state: st, inst: inst, err: err}
}

func (d *decoder) push(chunk []byte) error {
	if d.err != nil {
		return d.err
	}
	if err := d.state.Push(chunk); err != nil {
		d.err = err
		return err
	}
	if err := d.state.Finish(); err == nil {
		d.done = true
	}
	return nil
}

func (d *decoder) finished() bool { return d.done }

func (d *decoder) instance() unsafe.Pointer { return d.inst }
