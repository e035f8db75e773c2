package codec

import (
	"unicode/utf8"
	"unsafe"

	"github.com/tablecodec/pbcore/descriptor"
	"github.com/tablecodec/pbcore/message"
	"github.com/tablecodec/pbcore/wire"
)

// Push feeds the next chunk of wire bytes to the decode in progress.
// It never stores a pointer into chunk past the call returning: any
// bytes it can't fully interpret yet are copied into d's own state
// (d.pending for a split tag/varint/length header, d.payload.scratch
// for a split string/bytes/packed body) before Push returns. A nil
// error with no fatal condition simply means "ask again once more
// bytes exist" — NeedMore is not surfaced to the caller as an error at
// all, matching spec.md §4.3's resumable-decode contract.
func (d *DecodeState) Push(chunk []byte) error {
	buf := chunk
	if len(d.pending) > 0 {
		combined := make([]byte, 0, len(d.pending)+len(chunk))
		combined = append(combined, d.pending...)
		combined = append(combined, chunk...)
		buf = combined
		d.pending = nil
	}
	index := 0

	if d.payload != nil {
		next, err := d.resumePayload(buf, index)
		if err != nil {
			return err
		}
		index = next
		if d.payload != nil {
			return nil
		}
	}

	for {
		if err := d.closeFinishedFrames(); err != nil {
			return err
		}
		if index >= len(buf) {
			return nil
		}

		tagStart := index
		fieldNumber, wireType, next, err := wire.GetTag(buf, index)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return nil
		}
		if err != nil {
			return translateWireErr(err)
		}

		top := d.topFrame()

		if wireType == wire.TypeGroupEnd {
			if !top.isGroup || fieldNumber != top.groupNum {
				return ErrGroupEndMismatch
			}
			if err := d.advanceAll(next - tagStart); err != nil {
				return err
			}
			index = next
			d.stack = d.stack[:len(d.stack)-1]
			continue
		}

		if top.table == nil {
			// Inside an unknown group region: every field, including
			// nested unknown groups, is discarded until the matching
			// end tag above pops this frame.
			idx2, needMore, err := d.skipUnknown(buf, tagStart, next, wireType, fieldNumber)
			if err != nil {
				return err
			}
			if needMore {
				return nil
			}
			index = idx2
			continue
		}

		field, known := top.table.FieldByNumber(fieldNumber)
		if !known || !wireTypeCompatible(field, wireType) {
			idx2, needMore, err := d.skipUnknown(buf, tagStart, next, wireType, fieldNumber)
			if err != nil {
				return err
			}
			if needMore {
				return nil
			}
			index = idx2
			continue
		}

		idx2, needMore, err := d.decodeField(buf, tagStart, next, field, top, wireType)
		if err != nil {
			return err
		}
		if needMore {
			return nil
		}
		index = idx2
	}
}

// Finish reports whether the input ended at a legal boundary: nothing
// pending, no buffered payload, and every frame but the unbounded
// root one closed.
func (d *DecodeState) Finish() error {
	if d.payload != nil || len(d.pending) != 0 || len(d.stack) != 1 {
		return ErrTruncated
	}
	return nil
}

func (d *DecodeState) closeFinishedFrames() error {
	for len(d.stack) > 1 && d.topFrame().remaining == 0 {
		d.stack = d.stack[:len(d.stack)-1]
	}
	return nil
}

func (d *DecodeState) advanceAll(n int) error {
	if n == 0 {
		return nil
	}
	for i := range d.stack {
		f := &d.stack[i]
		if f.remaining >= 0 {
			f.remaining -= int64(n)
			if f.remaining < 0 {
				return ErrLengthOverflow
			}
		}
	}
	return nil
}

func translateWireErr(err error) error {
	switch err {
	case wire.ErrMalformedVarint:
		return ErrMalformedVarint
	case wire.ErrLengthOverflow:
		return ErrLengthOverflow
	default:
		return err
	}
}

func wireTypeCompatible(f *descriptor.Field, wt wire.Type) bool {
	if wt == f.Kind.NaturalWireType() {
		return true
	}
	return f.Cardinality.IsRepeated() && f.Kind.IsPackable() && wt == wire.TypeLengthDelimited
}

// decodeField dispatches a known, wire-type-compatible field to the
// action its Kind/Cardinality call for. tagStart..next spans the tag
// already consumed; the value/length/frame bytes start at next.
func (d *DecodeState) decodeField(buf []byte, tagStart, next int, f *descriptor.Field, top *frame, wt wire.Type) (int, bool, error) {
	switch {
	case f.Kind == descriptor.KindGroup:
		return d.decodeGroupField(buf, tagStart, next, f, top)
	case f.Kind == descriptor.KindMessage:
		return d.decodeMessageField(buf, tagStart, next, f, top)
	case f.Kind == descriptor.KindString:
		return d.beginLenDelim(buf, tagStart, next, f, top, payloadString)
	case f.Kind == descriptor.KindBytes:
		return d.beginLenDelim(buf, tagStart, next, f, top, payloadBytes)
	case wt == wire.TypeLengthDelimited:
		// Packed form of a repeated scalar, whether or not the field
		// is declared packed — merge-compatible per spec.md §4.3.
		return d.beginLenDelim(buf, tagStart, next, f, top, payloadPacked)
	case f.Cardinality.IsRepeated():
		return d.decodeUnpackedElement(buf, tagStart, next, f, top, wt)
	default:
		return d.decodeScalar(buf, tagStart, next, f, top, wt)
	}
}

func (d *DecodeState) decodeScalar(buf []byte, tagStart, next int, f *descriptor.Field, top *frame, wt wire.Type) (int, bool, error) {
	dst := message.FieldPtr(top.instance, f)
	switch wt {
	case wire.TypeVarint:
		v, n, err := wire.GetVarint(buf, next)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return next, true, nil
		}
		if err != nil {
			return next, false, translateWireErr(err)
		}
		if err := d.advanceAll(n - tagStart); err != nil {
			return next, false, err
		}
		storeVarint(dst, f.Kind, v)
		next = n
	case wire.TypeFixed32:
		v, n, err := wire.GetFixed32(buf, next)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return next, true, nil
		}
		if err != nil {
			return next, false, translateWireErr(err)
		}
		if err := d.advanceAll(n - tagStart); err != nil {
			return next, false, err
		}
		storeFixed32(dst, f.Kind, v)
		next = n
	case wire.TypeFixed64:
		v, n, err := wire.GetFixed64(buf, next)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return next, true, nil
		}
		if err != nil {
			return next, false, translateWireErr(err)
		}
		if err := d.advanceAll(n - tagStart); err != nil {
			return next, false, err
		}
		storeFixed64(dst, f.Kind, v)
		next = n
	}
	message.SetFieldPresent(top.instance, top.table.HasBitWords, f)
	return next, false, nil
}

func (d *DecodeState) decodeUnpackedElement(buf []byte, tagStart, next int, f *descriptor.Field, top *frame, wt wire.Type) (int, bool, error) {
	size, align := f.Kind.ScalarSize()
	hdr := (*message.RepeatedHeader)(message.FieldPtr(top.instance, f))
	switch wt {
	case wire.TypeVarint:
		v, n, err := wire.GetVarint(buf, next)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return next, true, nil
		}
		if err != nil {
			return next, false, translateWireErr(err)
		}
		if err := d.advanceAll(n - tagStart); err != nil {
			return next, false, err
		}
		slot, err := growRepeated(d.arena, hdr, size, align)
		if err != nil {
			return next, false, err
		}
		storeVarint(slot, f.Kind, v)
		return n, false, nil
	case wire.TypeFixed32:
		v, n, err := wire.GetFixed32(buf, next)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return next, true, nil
		}
		if err != nil {
			return next, false, translateWireErr(err)
		}
		if err := d.advanceAll(n - tagStart); err != nil {
			return next, false, err
		}
		slot, err := growRepeated(d.arena, hdr, size, align)
		if err != nil {
			return next, false, err
		}
		storeFixed32(slot, f.Kind, v)
		return n, false, nil
	case wire.TypeFixed64:
		v, n, err := wire.GetFixed64(buf, next)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return next, true, nil
		}
		if err != nil {
			return next, false, translateWireErr(err)
		}
		if err := d.advanceAll(n - tagStart); err != nil {
			return next, false, err
		}
		slot, err := growRepeated(d.arena, hdr, size, align)
		if err != nil {
			return next, false, err
		}
		storeFixed64(slot, f.Kind, v)
		return n, false, nil
	}
	return next, false, errInternal
}

func (d *DecodeState) decodeGroupField(buf []byte, tagStart, next int, f *descriptor.Field, top *frame) (int, bool, error) {
	if len(d.stack) >= d.stackDepth {
		return next, false, ErrDepthExceeded
	}
	if err := d.advanceAll(next - tagStart); err != nil {
		return next, false, err
	}
	child, err := d.childInstance(f, top)
	if err != nil {
		return next, false, err
	}
	message.SetFieldPresent(top.instance, top.table.HasBitWords, f)
	d.stack = append(d.stack, frame{
		table:     f.Child,
		instance:  child,
		remaining: -1,
		isGroup:   true,
		groupNum:  f.Number,
	})
	return next, false, nil
}

func (d *DecodeState) decodeMessageField(buf []byte, tagStart, next int, f *descriptor.Field, top *frame) (int, bool, error) {
	length, n, err := wire.GetVarint(buf, next)
	if err == wire.ErrNeedMore {
		d.pending = append(d.pending, buf[tagStart:]...)
		return next, true, nil
	}
	if err != nil {
		return next, false, translateWireErr(err)
	}
	if err := d.advanceAll(n - tagStart); err != nil {
		return next, false, err
	}
	if top.remaining >= 0 && int64(length) > top.remaining {
		return next, false, ErrLengthOverflow
	}
	if len(d.stack) >= d.stackDepth {
		return next, false, ErrDepthExceeded
	}
	child, err := d.childInstance(f, top)
	if err != nil {
		return next, false, err
	}
	message.SetFieldPresent(top.instance, top.table.HasBitWords, f)
	d.stack = append(d.stack, frame{
		table:     f.Child,
		instance:  child,
		remaining: int64(length),
	})
	return n, false, nil
}

// childInstance returns the sub-message instance a message/group
// field should decode into: the existing one, if this exact field
// (this exact oneof member, for a oneof) already has a value — the
// decoder merges a second occurrence into it, per spec.md §4.3 —
// otherwise a freshly allocated zero instance.
func (d *DecodeState) childInstance(f *descriptor.Field, top *frame) (unsafe.Pointer, error) {
	if message.FieldPresent(top.instance, top.table.HasBitWords, f) {
		return message.SubMessage(message.FieldPtr(top.instance, f)), nil
	}
	child, err := newInstance(d.arena, f.Child)
	if err != nil {
		return nil, err
	}
	message.SetSubMessage(message.FieldPtr(top.instance, f), child)
	return child, nil
}

// beginLenDelim reads a length header and hands the body off to the
// payload accumulator, which may finish within this call or span
// further Push calls.
func (d *DecodeState) beginLenDelim(buf []byte, tagStart, next int, f *descriptor.Field, top *frame, kind payloadKind) (int, bool, error) {
	length, n, err := wire.GetVarint(buf, next)
	if err == wire.ErrNeedMore {
		d.pending = append(d.pending, buf[tagStart:]...)
		return next, true, nil
	}
	if err != nil {
		return next, false, translateWireErr(err)
	}
	if err := d.advanceAll(n - tagStart); err != nil {
		return next, false, err
	}
	if top.remaining >= 0 && int64(length) > top.remaining {
		return next, false, ErrLengthOverflow
	}
	d.payload = &payloadState{kind: kind, field: f, remaining: int(length)}
	resumeNext, err := d.resumePayload(buf, n)
	if err != nil {
		return resumeNext, false, err
	}
	if d.payload != nil {
		return resumeNext, true, nil
	}
	return resumeNext, false, nil
}

// skipUnknown discards a field this Table doesn't declare (or whose
// wire type doesn't match its declared Kind). Unknown-field
// preservation is out of scope (spec.md §1's Non-goals), so bytes are
// simply dropped rather than retained.
func (d *DecodeState) skipUnknown(buf []byte, tagStart, next int, wt wire.Type, fieldNumber int) (int, bool, error) {
	switch wt {
	case wire.TypeVarint:
		_, n, err := wire.GetVarint(buf, next)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return next, true, nil
		}
		if err != nil {
			return next, false, translateWireErr(err)
		}
		if err := d.advanceAll(n - tagStart); err != nil {
			return next, false, err
		}
		return n, false, nil
	case wire.TypeFixed32:
		_, n, err := wire.GetFixed32(buf, next)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return next, true, nil
		}
		if err != nil {
			return next, false, translateWireErr(err)
		}
		if err := d.advanceAll(n - tagStart); err != nil {
			return next, false, err
		}
		return n, false, nil
	case wire.TypeFixed64:
		_, n, err := wire.GetFixed64(buf, next)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return next, true, nil
		}
		if err != nil {
			return next, false, translateWireErr(err)
		}
		if err := d.advanceAll(n - tagStart); err != nil {
			return next, false, err
		}
		return n, false, nil
	case wire.TypeLengthDelimited:
		length, n, err := wire.GetVarint(buf, next)
		if err == wire.ErrNeedMore {
			d.pending = append(d.pending, buf[tagStart:]...)
			return next, true, nil
		}
		if err != nil {
			return next, false, translateWireErr(err)
		}
		if err := d.advanceAll(n - tagStart); err != nil {
			return next, false, err
		}
		top := d.topFrame()
		if top.remaining >= 0 && int64(length) > top.remaining {
			return next, false, ErrLengthOverflow
		}
		d.payload = &payloadState{kind: payloadSkip, remaining: int(length)}
		resumeNext, err := d.resumePayload(buf, n)
		if err != nil {
			return resumeNext, false, err
		}
		return resumeNext, d.payload != nil, nil
	case wire.TypeGroupStart:
		if len(d.stack) >= d.stackDepth {
			return next, false, ErrDepthExceeded
		}
		if err := d.advanceAll(next - tagStart); err != nil {
			return next, false, err
		}
		d.stack = append(d.stack, frame{remaining: -1, isGroup: true, groupNum: fieldNumber})
		return next, false, nil
	default:
		return next, false, errInternal
	}
}

// resumePayload advances d.payload using whatever of buf[index:] is
// available, clearing d.payload and installing the result into the
// message once the declared length is fully seen.
func (d *DecodeState) resumePayload(buf []byte, index int) (int, error) {
	p := d.payload
	if p.kind == payloadSkip {
		next, complete := d.consumeDiscard(buf, index)
		if err := d.advanceAll(next - index); err != nil {
			return next, err
		}
		if complete {
			d.payload = nil
		}
		return next, nil
	}
	data, next, complete := d.consumeBuffered(buf, index)
	if err := d.advanceAll(next - index); err != nil {
		return next, err
	}
	if !complete {
		return next, nil
	}
	top := d.topFrame()
	if err := d.finalizePayload(top, data); err != nil {
		return next, err
	}
	d.payload = nil
	return next, nil
}

func (d *DecodeState) consumeDiscard(buf []byte, index int) (next int, complete bool) {
	p := d.payload
	avail := len(buf) - index
	take := avail
	if take > p.remaining {
		take = p.remaining
	}
	p.remaining -= take
	return index + take, p.remaining == 0
}

func (d *DecodeState) consumeBuffered(buf []byte, index int) (data []byte, next int, complete bool) {
	p := d.payload
	avail := len(buf) - index
	if p.scratch == nil && avail >= p.remaining {
		data = buf[index : index+p.remaining]
		next = index + p.remaining
		p.remaining = 0
		return data, next, true
	}
	take := avail
	if take > p.remaining {
		take = p.remaining
	}
	p.scratch = append(p.scratch, buf[index:index+take]...)
	p.remaining -= take
	next = index + take
	if p.remaining == 0 {
		return p.scratch, next, true
	}
	return nil, next, false
}

func (d *DecodeState) finalizePayload(top *frame, data []byte) error {
	p := d.payload
	switch p.kind {
	case payloadString:
		if !utf8.Valid(data) {
			return ErrInvalidUTF8
		}
		hdr := (*message.BytesHeader)(message.FieldPtr(top.instance, p.field))
		if err := setBytesField(d.arena, hdr, data); err != nil {
			return err
		}
		message.SetFieldPresent(top.instance, top.table.HasBitWords, p.field)
	case payloadBytes:
		hdr := (*message.BytesHeader)(message.FieldPtr(top.instance, p.field))
		if err := setBytesField(d.arena, hdr, data); err != nil {
			return err
		}
		message.SetFieldPresent(top.instance, top.table.HasBitWords, p.field)
	case payloadPacked:
		return d.decodePacked(top, p.field, data)
	}
	return nil
}

// decodePacked parses a complete packed-repeated body, which is
// always fully buffered by the time this is called, and appends each
// element to the field's RepeatedHeader.
func (d *DecodeState) decodePacked(top *frame, f *descriptor.Field, data []byte) error {
	size, align := f.Kind.ScalarSize()
	hdr := (*message.RepeatedHeader)(message.FieldPtr(top.instance, f))
	natural := f.Kind.NaturalWireType()
	i := 0
	for i < len(data) {
		slot, err := growRepeated(d.arena, hdr, size, align)
		if err != nil {
			return err
		}
		switch natural {
		case wire.TypeVarint:
			v, n, err := wire.GetVarint(data, i)
			if err != nil {
				return translateWireErr(err)
			}
			storeVarint(slot, f.Kind, v)
			i = n
		case wire.TypeFixed32:
			v, n, err := wire.GetFixed32(data, i)
			if err != nil {
				return translateWireErr(err)
			}
			storeFixed32(slot, f.Kind, v)
			i = n
		case wire.TypeFixed64:
			v, n, err := wire.GetFixed64(data, i)
			if err != nil {
				return translateWireErr(err)
			}
			storeFixed64(slot, f.Kind, v)
			i = n
		}
	}
	return nil
}
