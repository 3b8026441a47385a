package crypto

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const (
	// FingerprintSize is the number of digest bytes shown
	FingerprintSize = 6

	fingerprintDomain = "resend-cli/credential-fingerprint/v1"
)

// Fingerprint returns a short, stable identifier for a credential so two
// profiles can be compared without revealing either key. It is formatted as
// colon-separated pairs of bytes, e.g. "3fa1:09bc:77e2". An empty secret
// has no fingerprint.
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}

	h, _ := blake2b.New256([]byte(fingerprintDomain)) // key length is always valid
	h.Write([]byte(secret))
	sum := h.Sum(nil)

	encoded := hex.EncodeToString(sum[:FingerprintSize])
	parts := make([]string, 0, FingerprintSize/2)
	for i := 0; i < len(encoded); i += 4 {
		parts = append(parts, encoded[i:i+4])
	}
	return strings.Join(parts, ":")
}

// SecureZero securely zeros out sensitive byte slices
func SecureZero(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
