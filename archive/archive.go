// Package archive implements the compact binary layout shared by all cached
// entity projections.
//
// A record is a fixed-width header of little-endian scalar fields followed by
// a variable-length tail of length-prefixed strings and id slices. Header
// fields sit at fixed offsets so readers can overlay the raw bytes without
// decoding and writers can patch individual fields in place, as long as the
// patched field's serialized width cannot change. Tail fields require a full
// decode-mutate-reencode cycle to change.
package archive

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// ValidationError reports that a byte buffer failed structural validation
// and cannot be overlaid as a record.
type ValidationError struct {
	Offset int
	Reason string
}

func (e *ValidationError) Error() string {
	return errors.Newf("archive: invalid record at offset %d: %s", e.Offset, e.Reason).Error()
}

// Writer appends record fields to a growable buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with the given capacity hint.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

func (w *Writer) PutU8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) PutBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) PutU16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) PutU32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) PutU64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) PutI32(v int32) {
	w.PutU32(uint32(v))
}

func (w *Writer) PutI64(v int64) {
	w.PutU64(uint64(v))
}

// PutString appends a u32 length prefix followed by the raw bytes.
func (w *Writer) PutString(s string) {
	w.PutU32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// PutU64Slice appends a u32 count prefix followed by the elements.
func (w *Writer) PutU64Slice(v []uint64) {
	w.PutU32(uint32(len(v)))
	for _, e := range v {
		w.PutU64(e)
	}
}

// Bytes returns the accumulated record. The Writer must not be reused after.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// MaxFieldLen bounds the length prefix of any single string or slice field.
// A prefix beyond it is treated as corruption rather than an allocation hint.
const MaxFieldLen = 1 << 24

// View is a read-only overlay on a record's raw bytes. Accessors assume the
// buffer already passed validation (or that the caller trusts its origin);
// they do not re-check bounds.
type View struct {
	b []byte
}

// NewView overlays b without validating it.
func NewView(b []byte) View {
	return View{b: b}
}

func (v View) Len() int { return len(v.b) }

// Bytes returns the underlying buffer.
func (v View) Bytes() []byte { return v.b }

func (v View) U8At(off int) uint8 { return v.b[off] }

func (v View) BoolAt(off int) bool { return v.b[off] != 0 }

func (v View) U16At(off int) uint16 { return binary.LittleEndian.Uint16(v.b[off:]) }

func (v View) U32At(off int) uint32 { return binary.LittleEndian.Uint32(v.b[off:]) }

func (v View) U64At(off int) uint64 { return binary.LittleEndian.Uint64(v.b[off:]) }

func (v View) I32At(off int) int32 { return int32(v.U32At(off)) }

func (v View) I64At(off int) int64 { return int64(v.U64At(off)) }

// StringAt reads a length-prefixed string starting at off and returns it
// along with the offset of the next tail field.
func (v View) StringAt(off int) (string, int) {
	n := int(v.U32At(off))
	off += 4
	return string(v.b[off : off+n]), off + n
}

// U64SliceAt reads a count-prefixed id slice starting at off and returns it
// along with the offset of the next tail field.
func (v View) U64SliceAt(off int) ([]uint64, int) {
	n := int(v.U32At(off))
	off += 4
	if n == 0 {
		return nil, off
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = v.U64At(off)
		off += 8
	}
	return out, off
}

// In-place patches. Only fixed-width header fields may be patched; the
// record's byte length never changes.

func (v View) SetU8At(off int, val uint8) { v.b[off] = val }

func (v View) SetBoolAt(off int, val bool) {
	if val {
		v.b[off] = 1
	} else {
		v.b[off] = 0
	}
}

func (v View) SetU16At(off int, val uint16) { binary.LittleEndian.PutUint16(v.b[off:], val) }

func (v View) SetU32At(off int, val uint32) { binary.LittleEndian.PutUint32(v.b[off:], val) }

func (v View) SetU64At(off int, val uint64) { binary.LittleEndian.PutUint64(v.b[off:], val) }

func (v View) SetI64At(off int, val int64) { v.SetU64At(off, uint64(val)) }
