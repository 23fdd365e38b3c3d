package metrics

import "time"

// Stats collects counters for one scan. Fields touched during the
// hashing pass are mutated with sync/atomic; read them the same way.
type Stats struct {
	FilesSeen  int64
	WalkSkips  int64
	Candidates int64
	TotalBytes int64

	Processed  int64
	Hashed     int64
	HashErrors int64

	Groups     int64
	Duplicates int64

	BytesHashed int64
	Started     time.Time
	Finished    time.Time
}

func (s *Stats) Start() { s.Started = time.Now() }
func (s *Stats) Stop()  { s.Finished = time.Now() }
func (s *Stats) Duration() time.Duration {
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}
