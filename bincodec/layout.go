// SPDX-License-Identifier: MIT

package bincodec

import (
	"fmt"
	"math"

	"github.com/katalvlaran/jdec/bytemanip"
)

// Header field offsets and widths.
const (
	offType               = 0
	offNStates            = 1
	offEventCapacity      = 9
	offStateCapacity      = 13
	offTransitionCapacity = 21
	offLabelLength        = 25
	offInitialState       = 29
	offNControllers       = 37
	offNEvents            = 41

	// HeaderSize is the size of the fixed header prefix.
	HeaderSize = 45

	// TripleSize is the size of a persisted (src, event, dst) triple.
	TripleSize = 20
	// UStructureHeaderSize is the size of the table-count block.
	UStructureHeaderSize = 28

	u8  = 1
	u32 = 4
	u64 = 8
)

// encoder appends big-endian fields to a growing buffer.
type encoder struct {
	buf []byte
}

func (e *encoder) put(value uint64, n int) {
	off := len(e.buf)
	e.buf = append(e.buf, make([]byte, n)...)
	bytemanip.WriteLongAsBytes(e.buf, off, value, n)
}

func (e *encoder) putBool(b bool) {
	if b {
		e.put(1, u8)
		return
	}
	e.put(0, u8)
}

func (e *encoder) putFloat(f float64) { e.put(math.Float64bits(f), u64) }

func (e *encoder) putBytes(b []byte) { e.buf = append(e.buf, b...) }

// decoder consumes big-endian fields. The first short read is kept in fail
// and every later take returns zero values.
type decoder struct {
	buf  []byte
	off  int
	fail error
}

func (d *decoder) take(n int) uint64 {
	if d.fail != nil {
		return 0
	}
	if d.off+n > len(d.buf) {
		d.fail = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrCorruptHeader, n, d.off, len(d.buf))
		return 0
	}
	v := bytemanip.ReadBytesAsLong(d.buf, d.off, n)
	d.off += n

	return v
}

func (d *decoder) takeBool() bool { return d.take(u8) != 0 }

func (d *decoder) takeFloat() float64 { return math.Float64frombits(d.take(u64)) }

func (d *decoder) takeBytes(n int) []byte {
	if d.fail != nil {
		return nil
	}
	if n < 0 || d.off+n > len(d.buf) {
		d.fail = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrCorruptHeader, n, d.off, len(d.buf))
		return nil
	}
	out := d.buf[d.off : d.off+n]
	d.off += n

	return out
}
