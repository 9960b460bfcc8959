package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// MinSecretBytes is the shortest HS256 secret considered strong: the
// output size of SHA-256.
const MinSecretBytes = 32

// GenerateSecret returns size random bytes encoded as unpadded base64url.
func GenerateSecret(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("secret size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random secret: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Fingerprint identifies a secret in logs without revealing it: the first
// 8 bytes of its SHA-256, hex encoded.
func Fingerprint(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:8])
}

// WeakSecret reports whether secret is shorter than MinSecretBytes.
func WeakSecret(secret string) bool {
	return len(secret) < MinSecretBytes
}
