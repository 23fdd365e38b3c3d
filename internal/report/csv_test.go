package report_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupescan/internal/dedup"
	"dupescan/internal/report"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	groups := []dedup.DuplicateGroup{
		{Digest: "aaa", Size: 3, Paths: []string{"/data/orig.txt", "/data/copy1.txt", "/data/copy2.txt"}},
		{Digest: "bbb", Size: 9, Paths: []string{"/data/img.png", "/backup/img.png"}},
	}

	require.NoError(t, report.WriteCSV(path, groups))

	rows := readRows(t, path)
	assert.Equal(t, [][]string{
		{"Original File", "Duplicate File"},
		{"/data/orig.txt", "/data/copy1.txt"},
		{"/data/orig.txt", "/data/copy2.txt"},
		{"/data/img.png", "/backup/img.png"},
	}, rows)
}

func TestWriteCSV_EmptyGroupsStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, report.WriteCSV(path, nil))

	rows := readRows(t, path)
	assert.Equal(t, [][]string{{"Original File", "Duplicate File"}}, rows)
}

func TestWriteCSV_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "report.csv")

	err := report.WriteCSV(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report")
}
