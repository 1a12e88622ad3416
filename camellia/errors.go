package camellia

import "fmt"

// KeySizeError represents an error when the Camellia key length is invalid.
// Camellia keys must be 16, 24 or 32 bytes (128, 192 or 256 bits).
type KeySizeError int

// Error returns the error message for KeySizeError.
func (k KeySizeError) Error() string {
	return fmt.Sprintf("cipherkit/camellia: invalid key length %d, must be 16, 24 or 32 bytes", int(k))
}
