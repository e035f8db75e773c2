package descriptor

import (
	"fmt"

	"github.com/tablecodec/pbcore/wire"
)

// noField is the field-number-map sentinel for an undeclared number,
// matching spec.md §4.7's "entries for undeclared numbers are
// sentinel 0xFF...".
const noField int16 = -1

// Table is the immutable, statically built descriptor for one message
// type. The interpreter in codec never mutates a Table; every message
// instance of this type shares the same one.
type Table struct {
	// Name is used only for diagnostics (panic messages on
	// caller-side misuse, per spec.md §7).
	Name string

	// Size is the message's total struct size in bytes, including its
	// leading metadata array. Bounded at 1024 per spec.md §3.
	Size uintptr

	HasBitWords int
	OneofWords  int

	Fields []Field

	// byNumber is the direct-indexed field-number -> Fields index map
	// from spec.md §4.7. Length is maxFieldNumber+1; O(1) lookup.
	byNumber []int16
}

// MetaWords is the total number of uint32 words in the metadata
// array: has-bits packed 32 per word, plus one word per oneof group.
func (t *Table) MetaWords() int {
	hasBitWords := (t.HasBitWords + 31) / 32
	return hasBitWords + t.OneofWords
}

// FieldByNumber looks up a field by wire tag field number in O(1).
func (t *Table) FieldByNumber(number int) (*Field, bool) {
	if number < 0 || number >= len(t.byNumber) {
		return nil, false
	}
	idx := t.byNumber[number]
	if idx == noField {
		return nil, false
	}
	return &t.Fields[idx], true
}

// Build validates and assembles a Table from its declared fields. It
// is the only supported constructor: zero-value Tables have a nil
// byNumber map and every lookup fails closed.
func Build(name string, size uintptr, hasBitWords, oneofWords int, fields []Field) (*Table, error) {
	t := &Table{
		Name:        name,
		Size:        size,
		HasBitWords: hasBitWords,
		OneofWords:  oneofWords,
		Fields:      fields,
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	t.buildFieldNumberMap()
	return t, nil
}

func (t *Table) validate() error {
	if t.Size > 1024 {
		return fmt.Errorf("descriptor %s: struct size %d exceeds 1024 byte limit", t.Name, t.Size)
	}
	seenNumbers := make(map[int]bool, len(t.Fields))
	seenHasBits := make(map[int]bool, t.HasBitWords)
	seenOneofs := make(map[int]bool, t.OneofWords)
	for i := range t.Fields {
		f := &t.Fields[i]
		if f.Number < 1 || f.Number > wire.MaxFieldNumber {
			return fmt.Errorf("descriptor %s: field number %d out of range 1-%d", t.Name, f.Number, wire.MaxFieldNumber)
		}
		if seenNumbers[f.Number] {
			return fmt.Errorf("descriptor %s: duplicate field number %d", t.Name, f.Number)
		}
		seenNumbers[f.Number] = true

		if f.Cardinality.IsRepeated() {
			// Repeated fields carry no has-bit and join no oneof:
			// presence is "length > 0", tracked entirely in the
			// RepeatedHeader, so Meta is unused and unchecked.
			continue
		}
		idx := f.Meta.Index()
		if f.Meta.IsOneof() {
			if idx >= t.OneofWords {
				return fmt.Errorf("descriptor %s: field %d oneof index %d out of range", t.Name, f.Number, idx)
			}
			// Multiple fields legitimately share a oneof discriminant
			// word (that's the point of a oneof); only the (index,
			// namespace) pair itself must be declared within bounds.
			seenOneofs[idx] = true
		} else {
			if idx >= t.HasBitWords {
				return fmt.Errorf("descriptor %s: field %d has-bit index %d out of range", t.Name, f.Number, idx)
			}
			if seenHasBits[idx] {
				return fmt.Errorf("descriptor %s: has-bit index %d reused by field %d", t.Name, idx, f.Number)
			}
			seenHasBits[idx] = true
		}
		if f.IsMessageKind() && f.Child == nil {
			return fmt.Errorf("descriptor %s: message field %d has no child table", t.Name, f.Number)
		}
	}
	return nil
}

func (t *Table) buildFieldNumberMap() {
	// Sized to the largest declared field number (at most
	// MaxFieldNumber); real tables will almost always be far smaller
	// since protobuf schemas use small consecutive numbers,
	// but a sparse schema is tolerated at the cost of table size per
	// spec.md §4.7.
	maxNumber := 0
	for i := range t.Fields {
		if t.Fields[i].Number > maxNumber {
			maxNumber = t.Fields[i].Number
		}
	}
	m := make([]int16, maxNumber+1)
	for i := range m {
		m[i] = noField
	}
	for i := range t.Fields {
		m[t.Fields[i].Number] = int16(i)
	}
	t.byNumber = m
}
