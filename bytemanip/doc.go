// SPDX-License-Identifier: MIT
// Package bytemanip encodes and decodes fixed-width, big-endian, unsigned
// integers inside byte buffers.
//
// What:
//
//   - ReadBytesAsLong(buf, offset, n) → uint64
//   - ReadBytesAsInt(buf, offset, n)  → uint32
//   - WriteLongAsBytes(buf, offset, value, n)
//
// Contract:
//
//   - n must be in [1,8]; any other width panics (programmer error).
//   - The caller guarantees buf has room for n bytes at offset. Running past
//     the end of buf panics with Go's index-out-of-range error; nothing is
//     silently truncated on the buffer side.
//   - Values wider than n bytes are truncated by shifting: only the n least
//     significant bytes are written. This is the on-disk behaviour of the
//     legacy .hdr/.bdy format and must not change.
//   - Every byte read is treated as unsigned (0..255) before accumulation, so
//     a high bit in one byte never leaks into higher-order bytes.
//
// Complexity: O(n) time, O(1) space for every function.
package bytemanip
