package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"

	"dupescan/internal/metrics"
)

// FileEntry is one regular file seen during the walk.
type FileEntry struct {
	Path string
	Size int64
}

// SizeGroups maps a byte size to the files of that size, in walk order.
// Only sizes with at least two members survive Partition.
type SizeGroups map[int64][]FileEntry

// Partition walks root and groups regular files by exact byte size.
// Symbolic links and other non-regular entries are excluded. A file
// whose metadata cannot be read is skipped with a warning; an
// unreadable root aborts the walk, since nothing useful can come of it.
// onFile, when non-nil, is invoked once per regular file as the walk
// advances, so a progress display can follow the sizing pass.
func Partition(ctx context.Context, root string, logger *slog.Logger, stats *metrics.Stats, onFile func()) (SizeGroups, error) {
	if stats == nil {
		stats = &metrics.Stats{}
	}
	bySize := make(SizeGroups)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			if path == root {
				return fmt.Errorf("reading root directory %q: %w", root, err)
			}
			logger.Warn("skipping unreadable entry", "path", path, "error", err)
			stats.WalkSkips++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			// Directories recurse via WalkDir; symlinks and special
			// files never reach the sizing or hashing passes.
			return nil
		}
		stats.FilesSeen++
		if onFile != nil {
			onFile()
		}

		info, ierr := d.Info()
		if ierr != nil {
			logger.Warn("skipping file", "path", path, "error", ierr)
			stats.WalkSkips++
			return nil
		}

		size := info.Size()
		bySize[size] = append(bySize[size], FileEntry{Path: path, Size: size})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	for size, entries := range bySize {
		if len(entries) < 2 {
			delete(bySize, size)
		}
	}
	return bySize, nil
}

// Candidates flattens the groups into one deterministic slice: sizes
// ascending, files in walk order within a size. This order fixes which
// member of a later duplicate group counts as the original.
func (g SizeGroups) Candidates() []FileEntry {
	sizes := make([]int64, 0, len(g))
	for size := range g {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	var out []FileEntry
	for _, size := range sizes {
		out = append(out, g[size]...)
	}
	return out
}

// TotalBytes is the number of bytes the hashing pass will read if every
// candidate is readable.
func (g SizeGroups) TotalBytes() int64 {
	var total int64
	for size, entries := range g {
		total += size * int64(len(entries))
	}
	return total
}
