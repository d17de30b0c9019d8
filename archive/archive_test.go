package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterViewRoundTrip(t *testing.T) {
	w := NewWriter(64)
	w.PutU64(776)
	w.PutI64(-12345)
	w.PutU16(300)
	w.PutU8(7)
	w.PutBool(true)
	w.PutString("general")
	w.PutU64Slice([]uint64{1, 2, 3})

	b := w.Bytes()
	require.NoError(t, Validate(b).Fixed(8+8+2+1+1).String().U64Slice().Done())

	v := NewView(b)
	assert.EqualValues(t, 776, v.U64At(0))
	assert.EqualValues(t, -12345, v.I64At(8))
	assert.EqualValues(t, 300, v.U16At(16))
	assert.EqualValues(t, 7, v.U8At(18))
	assert.True(t, v.BoolAt(19))

	s, next := v.StringAt(20)
	assert.Equal(t, "general", s)
	ids, end := v.U64SliceAt(next)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
	assert.Equal(t, len(b), end)
}

func TestViewPatchInPlace(t *testing.T) {
	w := NewWriter(32)
	w.PutU64(1)
	w.PutI64(100)
	w.PutBool(false)
	w.PutString("x")

	v := NewView(w.Bytes())
	v.SetI64At(8, 200)
	v.SetBoolAt(16, true)

	assert.EqualValues(t, 200, v.I64At(8))
	assert.True(t, v.BoolAt(16))
	// Untouched fields keep their values.
	assert.EqualValues(t, 1, v.U64At(0))
	s, _ := v.StringAt(17)
	assert.Equal(t, "x", s)
}

func TestValidateTruncated(t *testing.T) {
	w := NewWriter(16)
	w.PutU64(42)
	w.PutString("hello")
	b := w.Bytes()

	for cut := 1; cut < len(b); cut++ {
		err := Validate(b[:cut]).Fixed(8).String().Done()
		assert.Errorf(t, err, "cut=%d", cut)
	}
	assert.NoError(t, Validate(b).Fixed(8).String().Done())
}

func TestValidateTrailingBytes(t *testing.T) {
	w := NewWriter(8)
	w.PutU64(1)
	b := append(w.Bytes(), 0xFF)

	err := Validate(b).Fixed(8).Done()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "trailing bytes", verr.Reason)
}

func TestValidateBogusPrefix(t *testing.T) {
	w := NewWriter(16)
	w.PutU32(0xFFFFFFFF)
	err := Validate(w.Bytes()).String().Done()
	assert.Error(t, err)
}
