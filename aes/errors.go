package aes

import "fmt"

// KeySizeError represents an error when the AES key length is invalid.
// AES keys must be 16, 24 or 32 bytes (128, 192 or 256 bits).
type KeySizeError int

// Error returns the error message for KeySizeError.
func (k KeySizeError) Error() string {
	return fmt.Sprintf("cipherkit/aes: invalid key length %d, must be 16, 24 or 32 bytes", int(k))
}
