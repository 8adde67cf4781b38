package dedup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolution says where a file should land, or that identical content
// already exists at the destination
type Resolution struct {
	// DestPath is the path to write to, or the path holding the
	// duplicate content when Duplicate is true
	DestPath string

	// Duplicate is true when a destination file with byte-identical
	// content already exists; the caller must skip the transfer
	Duplicate bool
}

// Resolver decides the final destination for a planned path.
// True duplicates are never copied twice, and distinct files that
// collide on a generated name never overwrite each other.
type Resolver struct {
	hasher *Hasher
}

// NewResolver creates a resolver using the given hasher
func NewResolver(hasher *Hasher) *Resolver {
	return &Resolver{hasher: hasher}
}

// Resolve checks the planned destination path against the source file.
// If the path is free it is used as-is. If it is taken by identical
// content the resolution reports a duplicate. Otherwise alternate names
// {stem}_copy{N}{ext} are probed for increasing N; a probe holding
// identical content also stops as a duplicate, which keeps repeated
// runs from multiplying copies.
func (r *Resolver) Resolve(ctx context.Context, destPath, sourcePath string) (Resolution, error) {
	if _, err := os.Stat(destPath); os.IsNotExist(err) {
		return Resolution{DestPath: destPath}, nil
	} else if err != nil {
		return Resolution{}, fmt.Errorf("failed to stat destination: %w", err)
	}

	sourceHash, err := r.hasher.Sum(ctx, sourcePath)
	if err != nil {
		return Resolution{}, err
	}

	destHash, err := r.hasher.Sum(ctx, destPath)
	if err != nil {
		return Resolution{}, err
	}

	if sourceHash == destHash {
		return Resolution{DestPath: destPath, Duplicate: true}, nil
	}

	ext := filepath.Ext(destPath)
	stem := strings.TrimSuffix(destPath, ext)

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_copy%d%s", stem, n, ext)

		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return Resolution{DestPath: candidate}, nil
		} else if err != nil {
			return Resolution{}, fmt.Errorf("failed to stat candidate: %w", err)
		}

		candidateHash, err := r.hasher.Sum(ctx, candidate)
		if err != nil {
			return Resolution{}, err
		}
		if candidateHash == sourceHash {
			return Resolution{DestPath: candidate, Duplicate: true}, nil
		}
	}
}
