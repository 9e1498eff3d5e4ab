// Package digest computes the content digests the oracle engine compares
// (the "hash the result file" step in ProcessOracleQueryResult). It wraps
// cespare/xxhash/v2 rather than a standard-library hash, matching the
// pack's preference for that library over crypto/*/hash/* for non-
// cryptographic content digests.
package digest

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Digest is a 64-bit content digest of an oracle result file.
type Digest uint64

// Of streams r and returns its xxhash digest.
func Of(r io.Reader) (Digest, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}
	return Digest(h.Sum64()), nil
}

// OfBytes is the byte-slice convenience form, used for in-memory result
// buffers (client.Rows already materialized) rather than files on disk.
func OfBytes(b []byte) Digest {
	return Digest(xxhash.Sum64(b))
}

// OfStrings digests a sequence of result rows already rendered as text,
// one row per element, the shape internal/client.Rows.Lines() returns.
func OfStrings(lines []string) Digest {
	h := xxhash.New()
	for _, l := range lines {
		_, _ = h.WriteString(l)
		_, _ = h.Write([]byte{'\n'})
	}
	return Digest(h.Sum64())
}
