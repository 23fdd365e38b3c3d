package hash

import (
	"crypto/md5" // #nosec G501 -- used for duplicate detection only
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// DefaultChunkSize is the read granularity for streaming hashes.
const DefaultChunkSize = 65536

// Algorithms supported for content fingerprinting. MD5 trades collision
// resistance for speed; SHA256 is the default.
const (
	AlgoMD5    = "md5"
	AlgoSHA256 = "sha256"
)

func newHasher(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case AlgoMD5:
		return md5.New(), nil // #nosec G401 -- used for duplicate detection only
	case AlgoSHA256:
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("unsupported algorithm: %q", algorithm)
	}
}

// Supported reports whether algorithm names a usable digest algorithm.
func Supported(algorithm string) bool {
	_, err := newHasher(algorithm)
	return err == nil
}

// File computes the hex digest of the file at path, reading it in
// chunkSize pieces so memory stays bounded regardless of file size.
// onProgress, when non-nil, receives the number of bytes consumed as
// hashing advances.
func File(path string, algorithm string, chunkSize int, onProgress func(n int64)) (string, error) {
	h, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, chunkSize)
	var pending int64
	flush := func() {
		if pending > 0 && onProgress != nil {
			onProgress(pending)
			pending = 0
		}
	}

	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			if _, werr := h.Write(buf[:n]); werr != nil {
				return "", werr
			}
			pending += int64(n)
			if pending >= int64(chunkSize) {
				flush()
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", rerr
		}
	}
	flush()

	return hex.EncodeToString(h.Sum(nil)), nil
}
