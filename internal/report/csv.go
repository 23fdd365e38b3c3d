package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"dupescan/internal/dedup"
)

// WriteCSV writes one row per non-original group member, pairing it
// with the group's designated original.
func WriteCSV(path string, groups []dedup.DuplicateGroup) error {
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("creating report %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Original File", "Duplicate File"}); err != nil {
		return fmt.Errorf("writing report %q: %w", path, err)
	}

	for _, g := range groups {
		original := g.Paths[0]
		for _, dup := range g.Paths[1:] {
			if err := w.Write([]string{original, dup}); err != nil {
				return fmt.Errorf("writing report %q: %w", path, err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing report %q: %w", path, err)
	}
	return f.Close()
}
