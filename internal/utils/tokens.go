package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// ResetTokenBytes is the entropy of a password reset token (256 bits).
const ResetTokenBytes = 32

// NewToken returns nBytes of crypto/rand output, hex encoded.
func NewToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = ResetTokenBytes
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
