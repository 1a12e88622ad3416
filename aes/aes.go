// Package aes implements the AES block cipher as defined in FIPS 197.
// It provides key expansion and single-block encryption and decryption for
// 128-, 192- and 256-bit keys. Chaining modes and padding are left to the
// caller; the *Cipher type satisfies the standard crypto/cipher.Block
// interface so any generic mode implementation can drive it.
package aes

import (
	"unsafe"

	"github.com/emberfall/cipherkit/internal/byteorder"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// ContextSize is the memory footprint of a Cipher in bytes.
const ContextSize = unsafe.Sizeof(Cipher{})

// Substitution table used by encryption (S-box)
var sbox = [256]byte{
	0x63, 0x7C, 0x77, 0x7B, 0xF2, 0x6B, 0x6F, 0xC5, 0x30, 0x01, 0x67, 0x2B, 0xFE, 0xD7, 0xAB, 0x76,
	0xCA, 0x82, 0xC9, 0x7D, 0xFA, 0x59, 0x47, 0xF0, 0xAD, 0xD4, 0xA2, 0xAF, 0x9C, 0xA4, 0x72, 0xC0,
	0xB7, 0xFD, 0x93, 0x26, 0x36, 0x3F, 0xF7, 0xCC, 0x34, 0xA5, 0xE5, 0xF1, 0x71, 0xD8, 0x31, 0x15,
	0x04, 0xC7, 0x23, 0xC3, 0x18, 0x96, 0x05, 0x9A, 0x07, 0x12, 0x80, 0xE2, 0xEB, 0x27, 0xB2, 0x75,
	0x09, 0x83, 0x2C, 0x1A, 0x1B, 0x6E, 0x5A, 0xA0, 0x52, 0x3B, 0xD6, 0xB3, 0x29, 0xE3, 0x2F, 0x84,
	0x53, 0xD1, 0x00, 0xED, 0x20, 0xFC, 0xB1, 0x5B, 0x6A, 0xCB, 0xBE, 0x39, 0x4A, 0x4C, 0x58, 0xCF,
	0xD0, 0xEF, 0xAA, 0xFB, 0x43, 0x4D, 0x33, 0x85, 0x45, 0xF9, 0x02, 0x7F, 0x50, 0x3C, 0x9F, 0xA8,
	0x51, 0xA3, 0x40, 0x8F, 0x92, 0x9D, 0x38, 0xF5, 0xBC, 0xB6, 0xDA, 0x21, 0x10, 0xFF, 0xF3, 0xD2,
	0xCD, 0x0C, 0x13, 0xEC, 0x5F, 0x97, 0x44, 0x17, 0xC4, 0xA7, 0x7E, 0x3D, 0x64, 0x5D, 0x19, 0x73,
	0x60, 0x81, 0x4F, 0xDC, 0x22, 0x2A, 0x90, 0x88, 0x46, 0xEE, 0xB8, 0x14, 0xDE, 0x5E, 0x0B, 0xDB,
	0xE0, 0x32, 0x3A, 0x0A, 0x49, 0x06, 0x24, 0x5C, 0xC2, 0xD3, 0xAC, 0x62, 0x91, 0x95, 0xE4, 0x79,
	0xE7, 0xC8, 0x37, 0x6D, 0x8D, 0xD5, 0x4E, 0xA9, 0x6C, 0x56, 0xF4, 0xEA, 0x65, 0x7A, 0xAE, 0x08,
	0xBA, 0x78, 0x25, 0x2E, 0x1C, 0xA6, 0xB4, 0xC6, 0xE8, 0xDD, 0x74, 0x1F, 0x4B, 0xBD, 0x8B, 0x8A,
	0x70, 0x3E, 0xB5, 0x66, 0x48, 0x03, 0xF6, 0x0E, 0x61, 0x35, 0x57, 0xB9, 0x86, 0xC1, 0x1D, 0x9E,
	0xE1, 0xF8, 0x98, 0x11, 0x69, 0xD9, 0x8E, 0x94, 0x9B, 0x1E, 0x87, 0xE9, 0xCE, 0x55, 0x28, 0xDF,
	0x8C, 0xA1, 0x89, 0x0D, 0xBF, 0xE6, 0x42, 0x68, 0x41, 0x99, 0x2D, 0x0F, 0xB0, 0x54, 0xBB, 0x16,
}

// Substitution table used by decryption (inverse S-box)
var isbox = [256]byte{
	0x52, 0x09, 0x6A, 0xD5, 0x30, 0x36, 0xA5, 0x38, 0xBF, 0x40, 0xA3, 0x9E, 0x81, 0xF3, 0xD7, 0xFB,
	0x7C, 0xE3, 0x39, 0x82, 0x9B, 0x2F, 0xFF, 0x87, 0x34, 0x8E, 0x43, 0x44, 0xC4, 0xDE, 0xE9, 0xCB,
	0x54, 0x7B, 0x94, 0x32, 0xA6, 0xC2, 0x23, 0x3D, 0xEE, 0x4C, 0x95, 0x0B, 0x42, 0xFA, 0xC3, 0x4E,
	0x08, 0x2E, 0xA1, 0x66, 0x28, 0xD9, 0x24, 0xB2, 0x76, 0x5B, 0xA2, 0x49, 0x6D, 0x8B, 0xD1, 0x25,
	0x72, 0xF8, 0xF6, 0x64, 0x86, 0x68, 0x98, 0x16, 0xD4, 0xA4, 0x5C, 0xCC, 0x5D, 0x65, 0xB6, 0x92,
	0x6C, 0x70, 0x48, 0x50, 0xFD, 0xED, 0xB9, 0xDA, 0x5E, 0x15, 0x46, 0x57, 0xA7, 0x8D, 0x9D, 0x84,
	0x90, 0xD8, 0xAB, 0x00, 0x8C, 0xBC, 0xD3, 0x0A, 0xF7, 0xE4, 0x58, 0x05, 0xB8, 0xB3, 0x45, 0x06,
	0xD0, 0x2C, 0x1E, 0x8F, 0xCA, 0x3F, 0x0F, 0x02, 0xC1, 0xAF, 0xBD, 0x03, 0x01, 0x13, 0x8A, 0x6B,
	0x3A, 0x91, 0x11, 0x41, 0x4F, 0x67, 0xDC, 0xEA, 0x97, 0xF2, 0xCF, 0xCE, 0xF0, 0xB4, 0xE6, 0x73,
	0x96, 0xAC, 0x74, 0x22, 0xE7, 0xAD, 0x35, 0x85, 0xE2, 0xF9, 0x37, 0xE8, 0x1C, 0x75, 0xDF, 0x6E,
	0x47, 0xF1, 0x1A, 0x71, 0x1D, 0x29, 0xC5, 0x89, 0x6F, 0xB7, 0x62, 0x0E, 0xAA, 0x18, 0xBE, 0x1B,
	0xFC, 0x56, 0x3E, 0x4B, 0xC6, 0xD2, 0x79, 0x20, 0x9A, 0xDB, 0xC0, 0xFE, 0x78, 0xCD, 0x5A, 0xF4,
	0x1F, 0xDD, 0xA8, 0x33, 0x88, 0x07, 0xC7, 0x31, 0xB1, 0x12, 0x10, 0x59, 0x27, 0x80, 0xEC, 0x5F,
	0x60, 0x51, 0x7F, 0xA9, 0x19, 0xB5, 0x4A, 0x0D, 0x2D, 0xE5, 0x7A, 0x9F, 0x93, 0xC9, 0x9C, 0xEF,
	0xA0, 0xE0, 0x3B, 0x4D, 0xAE, 0x2A, 0xF5, 0xB0, 0xC8, 0xEB, 0xBB, 0x3C, 0x83, 0x53, 0x99, 0x61,
	0x17, 0x2B, 0x04, 0x7E, 0xBA, 0x77, 0xD6, 0x26, 0xE1, 0x69, 0x14, 0x63, 0x55, 0x21, 0x0C, 0x7D,
}

// Multiplication by {02} in GF(2^8) with reduction modulus 0x11B
var mul2 = [256]byte{
	0x00, 0x02, 0x04, 0x06, 0x08, 0x0A, 0x0C, 0x0E, 0x10, 0x12, 0x14, 0x16, 0x18, 0x1A, 0x1C, 0x1E,
	0x20, 0x22, 0x24, 0x26, 0x28, 0x2A, 0x2C, 0x2E, 0x30, 0x32, 0x34, 0x36, 0x38, 0x3A, 0x3C, 0x3E,
	0x40, 0x42, 0x44, 0x46, 0x48, 0x4A, 0x4C, 0x4E, 0x50, 0x52, 0x54, 0x56, 0x58, 0x5A, 0x5C, 0x5E,
	0x60, 0x62, 0x64, 0x66, 0x68, 0x6A, 0x6C, 0x6E, 0x70, 0x72, 0x74, 0x76, 0x78, 0x7A, 0x7C, 0x7E,
	0x80, 0x82, 0x84, 0x86, 0x88, 0x8A, 0x8C, 0x8E, 0x90, 0x92, 0x94, 0x96, 0x98, 0x9A, 0x9C, 0x9E,
	0xA0, 0xA2, 0xA4, 0xA6, 0xA8, 0xAA, 0xAC, 0xAE, 0xB0, 0xB2, 0xB4, 0xB6, 0xB8, 0xBA, 0xBC, 0xBE,
	0xC0, 0xC2, 0xC4, 0xC6, 0xC8, 0xCA, 0xCC, 0xCE, 0xD0, 0xD2, 0xD4, 0xD6, 0xD8, 0xDA, 0xDC, 0xDE,
	0xE0, 0xE2, 0xE4, 0xE6, 0xE8, 0xEA, 0xEC, 0xEE, 0xF0, 0xF2, 0xF4, 0xF6, 0xF8, 0xFA, 0xFC, 0xFE,
	0x1B, 0x19, 0x1F, 0x1D, 0x13, 0x11, 0x17, 0x15, 0x0B, 0x09, 0x0F, 0x0D, 0x03, 0x01, 0x07, 0x05,
	0x3B, 0x39, 0x3F, 0x3D, 0x33, 0x31, 0x37, 0x35, 0x2B, 0x29, 0x2F, 0x2D, 0x23, 0x21, 0x27, 0x25,
	0x5B, 0x59, 0x5F, 0x5D, 0x53, 0x51, 0x57, 0x55, 0x4B, 0x49, 0x4F, 0x4D, 0x43, 0x41, 0x47, 0x45,
	0x7B, 0x79, 0x7F, 0x7D, 0x73, 0x71, 0x77, 0x75, 0x6B, 0x69, 0x6F, 0x6D, 0x63, 0x61, 0x67, 0x65,
	0x9B, 0x99, 0x9F, 0x9D, 0x93, 0x91, 0x97, 0x95, 0x8B, 0x89, 0x8F, 0x8D, 0x83, 0x81, 0x87, 0x85,
	0xBB, 0xB9, 0xBF, 0xBD, 0xB3, 0xB1, 0xB7, 0xB5, 0xAB, 0xA9, 0xAF, 0xAD, 0xA3, 0xA1, 0xA7, 0xA5,
	0xDB, 0xD9, 0xDF, 0xDD, 0xD3, 0xD1, 0xD7, 0xD5, 0xCB, 0xC9, 0xCF, 0xCD, 0xC3, 0xC1, 0xC7, 0xC5,
	0xFB, 0xF9, 0xFF, 0xFD, 0xF3, 0xF1, 0xF7, 0xF5, 0xEB, 0xE9, 0xEF, 0xED, 0xE3, 0xE1, 0xE7, 0xE5,
}

// Round constants; rcon[i] is {02}^(i-1) in GF(2^8) for i >= 1
var rcon = [11]uint32{
	0x00000000,
	0x00000001,
	0x00000002,
	0x00000004,
	0x00000008,
	0x00000010,
	0x00000020,
	0x00000040,
	0x00000080,
	0x0000001B,
	0x00000036,
}

// Cipher holds the expanded key schedule for one AES key. A Cipher is
// immutable after NewCipher returns and may be shared by concurrent
// goroutines.
//
// The schedule words use a fixed little-endian byte view so that word-indexed
// and byte-indexed access agree on every platform: w[0..Nk] reproduces the
// original key bytes exactly.
type Cipher struct {
	nr int        // number of rounds: 10, 12 or 14
	w  [60]uint32 // key schedule, 4*(nr+1) words used
}

// NewCipher expands key into an AES cipher. The key must be 16, 24 or 32
// bytes long, selecting AES-128, AES-192 or AES-256; any other length
// returns a KeySizeError.
func NewCipher(key []byte) (*Cipher, error) {
	c := new(Cipher)

	switch len(key) {
	case 16:
		c.nr = 10
	case 24:
		c.nr = 12
	case 32:
		c.nr = 14
	default:
		return nil, KeySizeError(len(key))
	}

	c.expandKey(key)
	return c, nil
}

// expandKey generates the key schedule per the FIPS 197 recurrence.
func (c *Cipher) expandKey(key []byte) {
	nk := len(key) / 4
	for i := 0; i < nk; i++ {
		c.w[i] = byteorder.Load32LE(key[i*4:])
	}

	for i := nk; i < 4*(c.nr+1); i++ {
		t := c.w[i-1]
		if i%nk == 0 {
			t = subWord(byteorder.Ror32(t, 8)) ^ rcon[i/nk]
		} else if nk > 6 && i%nk == 4 {
			t = subWord(t)
		}
		c.w[i] = c.w[i-nk] ^ t
	}
}

// subWord substitutes each byte of w using the S-box.
func subWord(w uint32) uint32 {
	return uint32(sbox[w&0xFF]) |
		uint32(sbox[(w>>8)&0xFF])<<8 |
		uint32(sbox[(w>>16)&0xFF])<<16 |
		uint32(sbox[w>>24])<<24
}

// BlockSize returns the AES block size.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the 16-byte block in src into dst. Dst and src may be the
// same slice. It panics if either buffer is shorter than BlockSize.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("cipherkit/aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("cipherkit/aes: output not full block")
	}

	var state [16]byte
	copy(state[:], src[:BlockSize])

	// Initial round key addition
	addRoundKey(&state, c.w[0:4])

	for r := 1; r < c.nr; r++ {
		subBytes(&state)
		shiftRows(&state)
		mixColumns(&state)
		addRoundKey(&state, c.w[4*r:4*r+4])
	}

	// The final round omits MixColumns
	subBytes(&state)
	shiftRows(&state)
	addRoundKey(&state, c.w[4*c.nr:4*c.nr+4])

	copy(dst[:BlockSize], state[:])
}

// Decrypt decrypts the 16-byte block in src into dst. Dst and src may be the
// same slice. It panics if either buffer is shorter than BlockSize.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("cipherkit/aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("cipherkit/aes: output not full block")
	}

	var state [16]byte
	copy(state[:], src[:BlockSize])

	addRoundKey(&state, c.w[4*c.nr:4*c.nr+4])

	for r := c.nr - 1; r >= 1; r-- {
		invShiftRows(&state)
		invSubBytes(&state)
		addRoundKey(&state, c.w[4*r:4*r+4])
		invMixColumns(&state)
	}

	// The final round omits InvMixColumns
	invShiftRows(&state)
	invSubBytes(&state)
	addRoundKey(&state, c.w[0:4])

	copy(dst[:BlockSize], state[:])
}

// Clear wipes the key schedule. The cipher must not be used afterwards.
func (c *Cipher) Clear() {
	c.nr = 0
	clear(c.w[:])
}

// addRoundKey XORs the state with four round-key words.
func addRoundKey(state *[16]byte, k []uint32) {
	for i := 0; i < 4; i++ {
		v := byteorder.Load32LE(state[i*4:]) ^ k[i]
		byteorder.Store32LE(v, state[i*4:])
	}
}

// subBytes substitutes each state byte using the S-box.
func subBytes(state *[16]byte) {
	for i := range state {
		state[i] = sbox[state[i]]
	}
}

// invSubBytes substitutes each state byte using the inverse S-box.
func invSubBytes(state *[16]byte) {
	for i := range state {
		state[i] = isbox[state[i]]
	}
}

// shiftRows cyclically shifts row r of the column-major state left by r
// bytes.
func shiftRows(state *[16]byte) {
	// Row 1: left by 1
	t := state[1]
	state[1] = state[5]
	state[5] = state[9]
	state[9] = state[13]
	state[13] = t

	// Row 2: left by 2
	t = state[2]
	state[2] = state[10]
	state[10] = t
	t = state[6]
	state[6] = state[14]
	state[14] = t

	// Row 3: left by 3
	t = state[3]
	state[3] = state[15]
	state[15] = state[11]
	state[11] = state[7]
	state[7] = t
}

// invShiftRows cyclically shifts row r of the column-major state right by r
// bytes.
func invShiftRows(state *[16]byte) {
	// Row 1: right by 1
	t := state[1]
	state[1] = state[13]
	state[13] = state[9]
	state[9] = state[5]
	state[5] = t

	// Row 2: right by 2
	t = state[2]
	state[2] = state[10]
	state[10] = t
	t = state[6]
	state[6] = state[14]
	state[14] = t

	// Row 3: right by 3
	t = state[3]
	state[3] = state[7]
	state[7] = state[11]
	state[11] = state[15]
	state[15] = t
}

// mixColumns multiplies each state column by {03}x^3 + {01}x^2 + {01}x + {02}
// in GF(2^8)[x]/(x^4+1).
func mixColumns(state *[16]byte) {
	for i := 0; i < 16; i += 4 {
		b0 := state[i+0]
		b1 := state[i+1]
		b2 := state[i+2]
		b3 := state[i+3]

		p := b0 ^ b1 ^ b2 ^ b3
		state[i+0] = p ^ b0 ^ mul2[b0^b1]
		state[i+1] = p ^ b1 ^ mul2[b1^b2]
		state[i+2] = p ^ b2 ^ mul2[b2^b3]
		state[i+3] = p ^ b3 ^ mul2[b3^b0]
	}
}

// invMixColumns multiplies each state column by
// {0B}x^3 + {0D}x^2 + {09}x + {0E}, using only the mul2 table:
// {09}p = p ^ {08}p, and the even/odd bytes share a {04} correction term.
func invMixColumns(state *[16]byte) {
	for i := 0; i < 16; i += 4 {
		b0 := state[i+0]
		b1 := state[i+1]
		b2 := state[i+2]
		b3 := state[i+3]

		q := b0 ^ b1 ^ b2 ^ b3
		q = q ^ mul2[mul2[mul2[q]]]
		p := q ^ mul2[mul2[b0^b2]]
		q = q ^ mul2[mul2[b1^b3]]

		state[i+0] = p ^ b0 ^ mul2[b0^b1]
		state[i+1] = q ^ b1 ^ mul2[b1^b2]
		state[i+2] = p ^ b2 ^ mul2[b2^b3]
		state[i+3] = q ^ b3 ^ mul2[b3^b0]
	}
}
