package aes

import (
	stdAes "crypto/aes"
	"crypto/rand"
	"encoding/hex"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mustHex decodes a hex string or fails the test.
func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// Known-answer vectors: FIPS 197 appendix C, the all-zero vectors and the
// SP 800-38A ECB block-1 vectors.
var katTestCases = []struct {
	name       string
	key        string
	plaintext  string
	ciphertext string
}{
	{
		name:       "fips197_c1_aes128",
		key:        "000102030405060708090a0b0c0d0e0f",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "69c4e0d86a7b0430d8cdb78070b4c55a",
	},
	{
		name:       "fips197_c2_aes192",
		key:        "000102030405060708090a0b0c0d0e0f1011121314151617",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "dda97ca4864cdfe06eaf70a0ec0d7191",
	},
	{
		name:       "fips197_c3_aes256",
		key:        "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "8ea2b7ca516745bfeafc49904b496089",
	},
	{
		name:       "zero_aes128",
		key:        "00000000000000000000000000000000",
		plaintext:  "00000000000000000000000000000000",
		ciphertext: "66e94bd4ef8a2c3b884cfa59ca342b2e",
	},
	{
		name:       "zero_aes192",
		key:        "000000000000000000000000000000000000000000000000",
		plaintext:  "00000000000000000000000000000000",
		ciphertext: "aae06992acbf52a3e8f4a96ec9300bd7",
	},
	{
		name:       "zero_aes256",
		key:        "0000000000000000000000000000000000000000000000000000000000000000",
		plaintext:  "00000000000000000000000000000000",
		ciphertext: "dc95c078a2408989ad48a21492842087",
	},
	{
		name:       "sp800_38a_ecb_aes128",
		key:        "2b7e151628aed2a6abf7158809cf4f3c",
		plaintext:  "6bc1bee22e409f96e93d7e117393172a",
		ciphertext: "3ad77bb40d7a3660a89ecaf32466ef97",
	},
	{
		name:       "sp800_38a_ecb_aes192",
		key:        "8e73b0f7da0e6452c810f32b809079e562f8ead2522c6b7b",
		plaintext:  "6bc1bee22e409f96e93d7e117393172a",
		ciphertext: "bd334f1d6e45f25ff712a214571fa5cc",
	},
	{
		name:       "sp800_38a_ecb_aes256",
		key:        "603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4",
		plaintext:  "6bc1bee22e409f96e93d7e117393172a",
		ciphertext: "f3eed1bdb5d2a03c064b5a7e3db181f8",
	},
}

func TestKnownAnswerVectors(t *testing.T) {
	for _, tc := range katTestCases {
		t.Run(tc.name, func(t *testing.T) {
			key := mustHex(t, tc.key)
			plaintext := mustHex(t, tc.plaintext)
			ciphertext := mustHex(t, tc.ciphertext)

			c, err := NewCipher(key)
			assert.NoError(t, err)

			dst := make([]byte, BlockSize)
			c.Encrypt(dst, plaintext)
			assert.Equal(t, ciphertext, dst)

			c.Decrypt(dst, ciphertext)
			assert.Equal(t, plaintext, dst)
		})
	}
}

func TestInvalidKeyLength(t *testing.T) {
	for _, n := range []int{0, 1, 8, 15, 17, 23, 25, 31, 33, 64} {
		c, err := NewCipher(make([]byte, n))
		assert.Nil(t, c)
		assert.Equal(t, KeySizeError(n), err)
		assert.Contains(t, err.Error(), "invalid key length")
	}
}

func TestRoundCount(t *testing.T) {
	for _, tc := range []struct {
		keyLen int
		nr     int
	}{
		{16, 10},
		{24, 12},
		{32, 14},
	} {
		c, err := NewCipher(make([]byte, tc.keyLen))
		assert.NoError(t, err)
		assert.Equal(t, tc.nr, c.nr)
	}
}

// The first Nk schedule words must reproduce the original key bytes.
func TestScheduleHead(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f1011121314151617")
	c, err := NewCipher(key)
	assert.NoError(t, err)

	head := make([]byte, len(key))
	for i := 0; i < len(key)/4; i++ {
		head[i*4+0] = byte(c.w[i])
		head[i*4+1] = byte(c.w[i] >> 8)
		head[i*4+2] = byte(c.w[i] >> 16)
		head[i*4+3] = byte(c.w[i] >> 24)
	}
	assert.Equal(t, key, head)
}

// Re-initializing with the same key bytes must yield an identical context.
func TestDeterministicSchedule(t *testing.T) {
	for _, n := range []int{16, 24, 32} {
		key := make([]byte, n)
		_, err := rand.Read(key)
		assert.NoError(t, err)

		c1, err := NewCipher(key)
		assert.NoError(t, err)
		c2, err := NewCipher(key)
		assert.NoError(t, err)
		assert.True(t, reflect.DeepEqual(c1, c2))
	}
}

func TestBlockSize(t *testing.T) {
	c, err := NewCipher(make([]byte, 16))
	assert.NoError(t, err)
	assert.Equal(t, BlockSize, c.BlockSize())
}

// Encrypting in place must match encrypting into a separate buffer.
func TestInPlaceBlock(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plaintext := mustHex(t, "00112233445566778899aabbccddeeff")

	c, err := NewCipher(key)
	assert.NoError(t, err)

	want := make([]byte, BlockSize)
	c.Encrypt(want, plaintext)

	buf := append([]byte(nil), plaintext...)
	c.Encrypt(buf, buf)
	assert.Equal(t, want, buf)

	c.Decrypt(buf, buf)
	assert.Equal(t, plaintext, buf)
}

func TestShortBufferPanics(t *testing.T) {
	c, err := NewCipher(make([]byte, 16))
	assert.NoError(t, err)

	full := make([]byte, BlockSize)
	short := make([]byte, BlockSize-1)

	assert.Panics(t, func() { c.Encrypt(full, short) })
	assert.Panics(t, func() { c.Encrypt(short, full) })
	assert.Panics(t, func() { c.Decrypt(full, short) })
	assert.Panics(t, func() { c.Decrypt(short, full) })
}

// Round-trip a randomized suite of (key, block) pairs across all key sizes.
func TestRoundTripRandom(t *testing.T) {
	keyLens := []int{16, 24, 32}
	block := make([]byte, BlockSize)
	out := make([]byte, BlockSize)

	for i := 0; i < 10000; i++ {
		key := make([]byte, keyLens[i%len(keyLens)])
		_, err := rand.Read(key)
		assert.NoError(t, err)
		_, err = rand.Read(block)
		assert.NoError(t, err)

		c, err := NewCipher(key)
		assert.NoError(t, err)

		c.Encrypt(out, block)
		c.Decrypt(out, out)
		assert.Equal(t, block, out)
	}
}

// Cross-check against the standard library implementation over random
// inputs; both directions must agree for every key size.
func TestAgainstStdlib(t *testing.T) {
	for i := 0; i < 300; i++ {
		key := make([]byte, []int{16, 24, 32}[i%3])
		_, err := rand.Read(key)
		assert.NoError(t, err)

		block := make([]byte, BlockSize)
		_, err = rand.Read(block)
		assert.NoError(t, err)

		c, err := NewCipher(key)
		assert.NoError(t, err)
		std, err := stdAes.NewCipher(key)
		assert.NoError(t, err)

		got := make([]byte, BlockSize)
		want := make([]byte, BlockSize)
		c.Encrypt(got, block)
		std.Encrypt(want, block)
		assert.Equal(t, want, got)

		c.Decrypt(got, block)
		std.Decrypt(want, block)
		assert.Equal(t, want, got)
	}
}

func TestClear(t *testing.T) {
	c, err := NewCipher(mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	assert.NoError(t, err)

	c.Clear()
	assert.Equal(t, 0, c.nr)
	assert.Equal(t, [60]uint32{}, c.w)
}
