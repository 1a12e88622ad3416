// Package byteorder provides the 32-bit word primitives shared by the cipher
// engines: big- and little-endian load/store and 32-bit rotations.
package byteorder

import "math/bits"

// Load32BE loads a 32-bit word from the first four bytes of b in big-endian
// byte order.
func Load32BE(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// Store32BE stores v into the first four bytes of b in big-endian byte order.
func Store32BE(v uint32, b []byte) {
	_ = b[3]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

// Load32LE loads a 32-bit word from the first four bytes of b in
// little-endian byte order.
func Load32LE(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// Store32LE stores v into the first four bytes of b in little-endian byte
// order.
func Store32LE(v uint32, b []byte) {
	_ = b[3]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// Rol32 rotates v left by n bits, treating v as a 32-bit unsigned value.
func Rol32(v uint32, n int) uint32 {
	return bits.RotateLeft32(v, n)
}

// Ror32 rotates v right by n bits, treating v as a 32-bit unsigned value.
func Ror32(v uint32, n int) uint32 {
	return bits.RotateLeft32(v, -n)
}
