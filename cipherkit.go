// Package cipherkit publishes the block-cipher algorithm registry. Each
// algorithm is described by an immutable descriptor carrying its printable
// name, context footprint, block size and constructor, so that generic
// mode-of-operation code can allocate contexts and invoke the block
// primitives without knowing the concrete algorithm.
package cipherkit

import (
	stdCipher "crypto/cipher"

	"github.com/emberfall/cipherkit/aes"
	"github.com/emberfall/cipherkit/camellia"
)

// Type tags the kind of cipher an Algorithm implements.
type Type int

const (
	// TypeBlock identifies a block cipher.
	TypeBlock Type = iota
	// TypeStream identifies a stream cipher. No registered algorithm uses
	// it; the tag exists so descriptors stay uniform if one ever does.
	TypeStream
)

// Algorithm describes one cipher. Descriptors are process-lifetime constants
// and must not be mutated.
//
// New initializes a fresh context from a key; the returned cipher.Block
// carries the single-block encrypt and decrypt operations. New fails with
// the algorithm's KeySizeError for unsupported key lengths.
type Algorithm struct {
	Name        string
	ContextSize uintptr
	Type        Type
	BlockSize   int
	New         func(key []byte) (stdCipher.Block, error)
}

// AES is the descriptor for the AES block cipher (FIPS 197).
var AES = &Algorithm{
	Name:        "AES",
	ContextSize: aes.ContextSize,
	Type:        TypeBlock,
	BlockSize:   aes.BlockSize,
	New: func(key []byte) (stdCipher.Block, error) {
		c, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
}

// Camellia is the descriptor for the Camellia block cipher (RFC 3713).
var Camellia = &Algorithm{
	Name:        "CAMELLIA",
	ContextSize: camellia.ContextSize,
	Type:        TypeBlock,
	BlockSize:   camellia.BlockSize,
	New: func(key []byte) (stdCipher.Block, error) {
		c, err := camellia.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
}

var algorithms = []*Algorithm{AES, Camellia}

// Algorithms returns the registered algorithm descriptors.
func Algorithms() []*Algorithm {
	out := make([]*Algorithm, len(algorithms))
	copy(out, algorithms)
	return out
}

// Lookup returns the descriptor with the given name, or nil if no algorithm
// matches. Names are case-sensitive.
func Lookup(name string) *Algorithm {
	for _, a := range algorithms {
		if a.Name == name {
			return a
		}
	}
	return nil
}
