package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Checksum returns the hex encoded SHA-256 digest of s.
func Checksum(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ShortChecksum returns the first 8 hex characters of Checksum(s).
func ShortChecksum(s string) string {
	return Checksum(s)[:8]
}

// ChecksumReader hashes everything readable from r.
func ChecksumReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
