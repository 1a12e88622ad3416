package cipherkit

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptors(t *testing.T) {
	assert.Equal(t, "AES", AES.Name)
	assert.Equal(t, "CAMELLIA", Camellia.Name)

	for _, a := range Algorithms() {
		assert.Equal(t, TypeBlock, a.Type)
		assert.Equal(t, 16, a.BlockSize)
		assert.NotZero(t, a.ContextSize)
		assert.NotNil(t, a.New)
	}
}

func TestLookup(t *testing.T) {
	assert.Same(t, AES, Lookup("AES"))
	assert.Same(t, Camellia, Lookup("CAMELLIA"))
	assert.Nil(t, Lookup("DES"))
	assert.Nil(t, Lookup("aes"))
}

func TestAlgorithmsIsolated(t *testing.T) {
	list := Algorithms()
	list[0] = nil
	assert.Same(t, AES, Algorithms()[0])
}

// Drive every algorithm through the descriptor alone: allocate a context,
// round-trip random blocks, and reject bad key lengths. Nothing below knows
// which concrete cipher it is exercising.
func TestPolymorphicRoundTrip(t *testing.T) {
	for _, a := range Algorithms() {
		t.Run(a.Name, func(t *testing.T) {
			for _, keyLen := range []int{16, 24, 32} {
				key := make([]byte, keyLen)
				_, err := rand.Read(key)
				assert.NoError(t, err)

				block, err := a.New(key)
				assert.NoError(t, err)
				assert.Equal(t, a.BlockSize, block.BlockSize())

				src := make([]byte, a.BlockSize)
				_, err = rand.Read(src)
				assert.NoError(t, err)

				dst := make([]byte, a.BlockSize)
				block.Encrypt(dst, src)
				assert.NotEqual(t, src, dst)
				block.Decrypt(dst, dst)
				assert.Equal(t, src, dst)
			}

			block, err := a.New(make([]byte, 20))
			assert.Error(t, err)
			assert.Nil(t, block)
		})
	}
}
