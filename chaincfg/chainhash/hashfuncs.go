package chainhash

import (
	"hash"

	"github.com/minio/sha256-simd"
)

// HashB calculates sha256(b) and returns the resulting bytes.
func HashB(b []byte) []byte {
	hash := sha256.Sum256(b)
	return hash[:]
}

// DoubleHashB calculates sha256(sha256(b)) and returns the resulting bytes.
func DoubleHashB(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// DoubleHashH calculates sha256(sha256(b)) and returns the resulting bytes as
// a Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	return Hash(sha256.Sum256(first[:]))
}

// DoubleHashWriter is used to incrementally double hash data without
// concatenating all of the data to a single buffer. It exposes an io.Writer
// api and a Finalize function to get the resulting hash.
// DoubleHashWriter.Write(slice).Finalize == DoubleHashH(slice)
type DoubleHashWriter struct {
	inner hash.Hash
}

// NewDoubleHashWriter returns a new DoubleHashWriter.
func NewDoubleHashWriter() *DoubleHashWriter {
	return &DoubleHashWriter{sha256.New()}
}

// Write will always return (len(p), nil).
func (h *DoubleHashWriter) Write(p []byte) (n int, err error) {
	return h.inner.Write(p)
}

// Finalize returns the resulting double hash.
func (h *DoubleHashWriter) Finalize() Hash {
	firstHashInTheSum := h.inner.Sum(nil)
	return Hash(sha256.Sum256(firstHashInTheSum))
}
