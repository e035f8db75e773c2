package codec

import (
	"unsafe"

	"github.com/tablecodec/pbcore/descriptor"
	"github.com/tablecodec/pbcore/message"
	"github.com/tablecodec/pbcore/wire"
)

// WriteResult is what a Sink reports back from one PushBytes call: how
// much of buf it actually accepted. N < len(buf) means backpressure
// without that being an error: PushTo offers the rest again at once,
// and returns only when the sink accepts nothing (N == 0), leaving the
// remainder for the caller's next PushTo call.
type WriteResult struct {
	N int
}

// Sink is the output side of the push codec, symmetric with the
// []byte chunks Push accepts on the input side. A Sink must not
// retain buf past the call returning anything it didn't copy.
type Sink interface {
	PushBytes(buf []byte) (WriteResult, error)
}

// EncodeState serializes one message instance and drains it to a Sink
// across as many PushTo calls as the sink's backpressure demands.
// Rather than re-deriving the decoder's frame-stack-plus-field-cursor
// machinery for the output side, it serializes the whole message once
// (spec.md §4.4 explicitly allows either a streaming or a two-pass
// strategy) and resumes purely at a byte offset into that buffer — the
// degenerate, but fully correct, case of "save frame stack + field
// index + per-field byte offset" when the frame stack and field index
// are already flattened into one slice.
type EncodeState struct {
	table    *descriptor.Table
	instance unsafe.Pointer
	buf      []byte
	built    bool
	sent     int
}

// NewEncodeState prepares to serialize the message at instance,
// described by tbl.
func NewEncodeState(tbl *descriptor.Table, instance unsafe.Pointer) *EncodeState {
	return &EncodeState{table: tbl, instance: instance}
}

// PushTo serializes the message on first call, then writes as much of
// it as sink will accept. Call again after the sink reports it has
// room; Done reports when nothing remains.
func (e *EncodeState) PushTo(sink Sink) error {
	if !e.built {
		e.buf = appendMessage(nil, e.table, e.instance)
		e.built = true
	}
	for e.sent < len(e.buf) {
		res, err := sink.PushBytes(e.buf[e.sent:])
		if err != nil {
			return err
		}
		if res.N == 0 {
			return nil
		}
		e.sent += res.N
	}
	return nil
}

// Done reports whether the entire message has been handed to the
// sink.
func (e *EncodeState) Done() bool {
	return e.built && e.sent >= len(e.buf)
}

// Encode is the non-streaming convenience form: serialize tbl's
// instance straight into a []byte.
func Encode(tbl *descriptor.Table, instance unsafe.Pointer) []byte {
	return appendMessage(nil, tbl, instance)
}

// appendMessage writes every present field of instance, in
// declaration order, to buf.
func appendMessage(buf []byte, tbl *descriptor.Table, instance unsafe.Pointer) []byte {
	for i := range tbl.Fields {
		f := &tbl.Fields[i]
		buf = appendField(buf, tbl, instance, f)
	}
	return buf
}

func appendField(buf []byte, tbl *descriptor.Table, instance unsafe.Pointer, f *descriptor.Field) []byte {
	if f.Cardinality.IsRepeated() {
		return appendRepeated(buf, instance, f)
	}
	if !message.FieldPresent(instance, tbl.HasBitWords, f) {
		return buf
	}
	switch {
	case f.Kind == descriptor.KindGroup:
		buf = wire.AppendTag(buf, f.Number, wire.TypeGroupStart)
		buf = appendMessage(buf, f.Child, message.SubMessage(message.FieldPtr(instance, f)))
		buf = wire.AppendTag(buf, f.Number, wire.TypeGroupEnd)
	case f.Kind == descriptor.KindMessage:
		child := appendMessage(nil, f.Child, message.SubMessage(message.FieldPtr(instance, f)))
		buf = wire.AppendTag(buf, f.Number, wire.TypeLengthDelimited)
		buf = wire.AppendVarint(buf, uint64(len(child)))
		buf = append(buf, child...)
	case f.Kind == descriptor.KindString || f.Kind == descriptor.KindBytes:
		hdr := (*message.BytesHeader)(message.FieldPtr(instance, f))
		data := message.GetBytes(hdr)
		buf = wire.AppendTag(buf, f.Number, wire.TypeLengthDelimited)
		buf = wire.AppendVarint(buf, uint64(len(data)))
		buf = append(buf, data...)
	default:
		buf = appendScalarValue(buf, f, message.FieldPtr(instance, f))
	}
	return buf
}

func appendScalarValue(buf []byte, f *descriptor.Field, src unsafe.Pointer) []byte {
	wt := f.Kind.NaturalWireType()
	buf = wire.AppendTag(buf, f.Number, wt)
	switch wt {
	case wire.TypeVarint:
		buf = wire.AppendVarint(buf, loadVarint(src, f.Kind))
	case wire.TypeFixed32:
		buf = wire.AppendFixed32(buf, loadFixed32(src, f.Kind))
	case wire.TypeFixed64:
		buf = wire.AppendFixed64(buf, loadFixed64(src, f.Kind))
	}
	return buf
}

// appendRepeated emits either the packed or unpacked wire form
// according to f.Cardinality — RepeatedPacked wraps every element in
// one length-delimited region with a pre-measured size, RepeatedUnpacked
// emits one tag+value pair per element.
func appendRepeated(buf []byte, instance unsafe.Pointer, f *descriptor.Field) []byte {
	hdr := (*message.RepeatedHeader)(message.FieldPtr(instance, f))
	size, _ := f.Kind.ScalarSize()
	n := int(hdr.Len)
	if n == 0 {
		return buf
	}
	if f.Cardinality == descriptor.RepeatedPacked && f.Kind.IsPackable() {
		packedLen := 0
		for i := 0; i < n; i++ {
			packedLen += elemWireSize(f.Kind, message.ElemPtr(hdr, i, size))
		}
		buf = wire.AppendTag(buf, f.Number, wire.TypeLengthDelimited)
		buf = wire.AppendVarint(buf, uint64(packedLen))
		for i := 0; i < n; i++ {
			buf = appendElemValue(buf, f.Kind, message.ElemPtr(hdr, i, size))
		}
		return buf
	}
	for i := 0; i < n; i++ {
		buf = appendScalarValue(buf, f, message.ElemPtr(hdr, i, size))
	}
	return buf
}

func elemWireSize(k descriptor.Kind, src unsafe.Pointer) int {
	switch k.NaturalWireType() {
	case wire.TypeVarint:
		return wire.SizeVarint(loadVarint(src, k))
	case wire.TypeFixed32:
		return 4
	case wire.TypeFixed64:
		return 8
	}
	return 0
}

func appendElemValue(buf []byte, k descriptor.Kind, src unsafe.Pointer) []byte {
	switch k.NaturalWireType() {
	case wire.TypeVarint:
		return wire.AppendVarint(buf, loadVarint(src, k))
	case wire.TypeFixed32:
		return wire.AppendFixed32(buf, loadFixed32(src, k))
	case wire.TypeFixed64:
		return wire.AppendFixed64(buf, loadFixed64(src, k))
	}
	return buf
}
