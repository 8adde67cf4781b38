// Package dedup detects duplicate content at planned destination paths
// using whole-file chunked hashing.
package dedup

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"sync"
)

// Hasher computes whole-file MD5 digests with pooled read buffers.
// MD5 is used for duplicate detection only, not for integrity against
// an adversary, so speed wins over collision resistance here.
type Hasher struct {
	bufferSize int
	bufferPool *sync.Pool
}

// NewHasher creates a hasher reading in bufferSize chunks
func NewHasher(bufferSize int) *Hasher {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &Hasher{
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// Sum computes the MD5 hex digest of the file at path
func (h *Hasher) Sum(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer f.Close()

	hasher := md5.New()

	bufPtr := h.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer h.bufferPool.Put(bufPtr)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := f.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file for hashing: %w", err)
		}
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
