package dedup

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"dupescan/internal/hash"
	"dupescan/internal/metrics"
	"dupescan/internal/progress"
	"dupescan/internal/scan"
)

// Result is one hashing outcome. An empty Digest means the file could
// not be read; such results never contribute to a duplicate group.
type Result struct {
	Path   string
	Size   int64
	Digest string
}

// DuplicateGroup is a set of files sharing both size and digest. The
// first path is the designated original, purely by walk order.
type DuplicateGroup struct {
	Digest string
	Size   int64
	Paths  []string
}

type Options struct {
	Algorithm string
	ChunkSize int
	Workers   int
}

// HashAll digests every candidate across a fixed worker pool. Each file
// is a whole unit of work; completion order is unspecified. Unreadable
// files are logged and carried as empty-digest results. A canceled
// context stops feeding the pool; partial results are returned together
// with the context's error.
func HashAll(ctx context.Context, candidates []scan.FileEntry, opts Options, logger *slog.Logger, stats *metrics.Stats, bar *progress.Bar) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, 0, len(candidates))
	var mu sync.Mutex

	jobs := make(chan scan.FileEntry)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()

		for fe := range jobs {
			advance := func(n int64) {
				if n > 0 && bar != nil {
					bar.AddBytes(n)
				}
			}

			var bytesSent int64
			digest, err := hash.File(fe.Path, opts.Algorithm, opts.ChunkSize, func(n int64) {
				atomic.AddInt64(&stats.BytesHashed, n)
				bytesSent += n
				advance(n)
			})
			if err != nil {
				logger.Warn("skipping unreadable file", "path", fe.Path, "error", err)
				atomic.AddInt64(&stats.HashErrors, 1)
				digest = ""
			} else {
				atomic.AddInt64(&stats.Hashed, 1)
			}
			advance(fe.Size - bytesSent)

			mu.Lock()
			results = append(results, Result{Path: fe.Path, Size: fe.Size, Digest: digest})
			mu.Unlock()

			atomic.AddInt64(&stats.Processed, 1)
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}

feed:
	for _, fe := range candidates {
		select {
		case jobs <- fe:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)

	wg.Wait()
	return results, ctx.Err()
}

// Group folds hash results into duplicate groups keyed by digest.
// Candidate order, not worker completion order, decides path order
// within a group, so output is stable for a given walk regardless of
// pool size or scheduling. Digests with a single surviving member are
// dropped.
func Group(candidates []scan.FileEntry, results []Result) []DuplicateGroup {
	digests := make(map[string]string, len(results))
	for _, r := range results {
		if r.Digest != "" {
			digests[r.Path] = r.Digest
		}
	}

	var order []string
	members := make(map[string][]string)
	sizes := make(map[string]int64)
	for _, fe := range candidates {
		d, ok := digests[fe.Path]
		if !ok {
			continue
		}
		if _, seen := members[d]; !seen {
			order = append(order, d)
			// Equal digests imply equal sizes; the first member fixes
			// the group's size.
			sizes[d] = fe.Size
		}
		members[d] = append(members[d], fe.Path)
	}

	var groups []DuplicateGroup
	for _, d := range order {
		paths := members[d]
		if len(paths) < 2 {
			continue
		}
		groups = append(groups, DuplicateGroup{Digest: d, Size: sizes[d], Paths: paths})
	}
	return groups
}
