package archive

// Validator walks a record's declared layout and checks that every field
// stays within bounds. Projections describe their layout once (header width
// plus tail fields) and reuse the walk before overlaying a View.
type Validator struct {
	b   []byte
	off int
	err *ValidationError
}

// Validate starts a walk over b.
func Validate(b []byte) *Validator {
	return &Validator{b: b}
}

func (v *Validator) fail(reason string) {
	if v.err == nil {
		v.err = &ValidationError{Offset: v.off, Reason: reason}
	}
}

// Fixed consumes n bytes of fixed-width header fields.
func (v *Validator) Fixed(n int) *Validator {
	if v.err != nil {
		return v
	}
	if v.off+n > len(v.b) {
		v.fail("header truncated")
		return v
	}
	v.off += n
	return v
}

func (v *Validator) prefix() (int, bool) {
	if v.off+4 > len(v.b) {
		v.fail("length prefix truncated")
		return 0, false
	}
	n := int(NewView(v.b).U32At(v.off))
	v.off += 4
	if n > MaxFieldLen {
		v.fail("length prefix exceeds limit")
		return 0, false
	}
	return n, true
}

// String consumes one length-prefixed string tail field.
func (v *Validator) String() *Validator {
	if v.err != nil {
		return v
	}
	n, ok := v.prefix()
	if !ok {
		return v
	}
	if v.off+n > len(v.b) {
		v.fail("string truncated")
		return v
	}
	v.off += n
	return v
}

// U64Slice consumes one count-prefixed id slice tail field.
func (v *Validator) U64Slice() *Validator {
	if v.err != nil {
		return v
	}
	n, ok := v.prefix()
	if !ok {
		return v
	}
	if v.off+n*8 > len(v.b) {
		v.fail("id slice truncated")
		return v
	}
	v.off += n * 8
	return v
}

// Done finishes the walk. The record must be consumed exactly: trailing
// bytes are as invalid as missing ones.
func (v *Validator) Done() error {
	if v.err != nil {
		return v.err
	}
	if v.off != len(v.b) {
		v.off = len(v.b)
		return &ValidationError{Offset: v.off, Reason: "trailing bytes"}
	}
	return nil
}
