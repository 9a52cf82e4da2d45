// SPDX-License-Identifier: MIT

package bytemanip

import "fmt"

const (
	// MinWidth is the smallest supported integer width in bytes.
	MinWidth = 1
	// MaxWidth is the largest supported integer width in bytes.
	MaxWidth = 8

	bitsPerByte = 8
)

// ReadBytesAsLong decodes n big-endian bytes starting at buf[offset]
// as an unsigned integer.
func ReadBytesAsLong(buf []byte, offset, n int) uint64 {
	checkWidth(n)
	var v uint64
	for i := 0; i < n; i++ {
		v = (v << bitsPerByte) | uint64(buf[offset+i])
	}

	return v
}

// ReadBytesAsInt decodes n big-endian bytes starting at buf[offset] and
// returns the low 32 bits of the result.
func ReadBytesAsInt(buf []byte, offset, n int) uint32 {
	return uint32(ReadBytesAsLong(buf, offset, n))
}

// WriteLongAsBytes stores the n least significant bytes of value into
// buf[offset:offset+n], most significant byte first.
func WriteLongAsBytes(buf []byte, offset int, value uint64, n int) {
	checkWidth(n)
	// Touch the last byte first so a short buffer fails before any write.
	_ = buf[offset+n-1]
	for i := n - 1; i >= 0; i-- {
		buf[offset+i] = byte(value)
		value >>= bitsPerByte
	}
}

func checkWidth(n int) {
	if n < MinWidth || n > MaxWidth {
		panic(fmt.Sprintf("bytemanip: width %d outside [%d,%d]", n, MinWidth, MaxWidth))
	}
}
