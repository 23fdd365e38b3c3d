package metrics

import (
	"fmt"
	"io"
	"sync/atomic"
)

type Snapshot struct {
	DurationMs  int64
	FilesSeen   int64
	WalkSkips   int64
	Candidates  int64
	Processed   int64
	Hashed      int64
	HashErrors  int64
	Groups      int64
	Duplicates  int64
	BytesHashed int64
	TotalBytes  int64
}

func (s *Stats) Snapshot() Snapshot {
	dur := s.Duration()

	return Snapshot{
		DurationMs:  dur.Milliseconds(),
		FilesSeen:   atomic.LoadInt64(&s.FilesSeen),
		WalkSkips:   atomic.LoadInt64(&s.WalkSkips),
		Candidates:  atomic.LoadInt64(&s.Candidates),
		Processed:   atomic.LoadInt64(&s.Processed),
		Hashed:      atomic.LoadInt64(&s.Hashed),
		HashErrors:  atomic.LoadInt64(&s.HashErrors),
		Groups:      atomic.LoadInt64(&s.Groups),
		Duplicates:  atomic.LoadInt64(&s.Duplicates),
		BytesHashed: atomic.LoadInt64(&s.BytesHashed),
		TotalBytes:  atomic.LoadInt64(&s.TotalBytes),
	}
}

func Print(w io.Writer, s *Stats) {
	snap := s.Snapshot()

	fmt.Fprintln(w, "--- stats ---")
	fmt.Fprintln(w, "duration_ms:", snap.DurationMs)
	fmt.Fprintln(w, "files_seen:", snap.FilesSeen)
	fmt.Fprintln(w, "walk_skips:", snap.WalkSkips)
	fmt.Fprintln(w, "hash_candidates:", snap.Candidates)
	fmt.Fprintln(w, "processed:", snap.Processed)
	fmt.Fprintln(w, "hashed:", snap.Hashed)
	fmt.Fprintln(w, "hash_errors:", snap.HashErrors)
	fmt.Fprintln(w, "duplicate_groups:", snap.Groups)
	fmt.Fprintln(w, "duplicate_files:", snap.Duplicates)
	fmt.Fprintln(w, "bytes_hashed:", snap.BytesHashed)
	fmt.Fprintln(w, "total_bytes:", snap.TotalBytes)

	if snap.DurationMs > 0 {
		secs := float64(snap.DurationMs) / 1000.0
		bps := float64(snap.BytesHashed) / secs
		fmt.Fprintln(w, "throughput_bytes_per_sec:", bps)
		fmt.Fprintln(w, "throughput_mb_per_sec:", bps/1_000_000.0)
	}
}
