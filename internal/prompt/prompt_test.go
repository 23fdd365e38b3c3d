package prompt_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupescan/internal/dedup"
	"dupescan/internal/prompt"
)

func newPrompter(input string, validDirs ...string) (*prompt.Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	dirs := make(map[string]bool, len(validDirs))
	for _, d := range validDirs {
		dirs[d] = true
	}
	return &prompt.Prompter{
		In:    bufio.NewReader(strings.NewReader(input)),
		Out:   out,
		IsDir: func(path string) bool { return dirs[path] },
	}, out
}

func TestScanSetup_RepromptsUntilValidDirectory(t *testing.T) {
	p, out := newPrompter("/nope\n/data\nreport.csv\nn\nsha256\n", "/data")

	s, err := p.ScanSetup("duplicate_files.csv")
	require.NoError(t, err)

	assert.Equal(t, "/data", s.Root)
	assert.Equal(t, "report.csv", s.Report)
	assert.False(t, s.Delete)
	assert.False(t, s.DryRun)
	assert.Equal(t, "sha256", s.Algorithm)
	assert.Contains(t, out.String(), "Invalid path")
}

func TestScanSetup_BlankReportKeepsDefault(t *testing.T) {
	p, _ := newPrompter("/data\n\nn\nmd5\n", "/data")

	s, err := p.ScanSetup("duplicate_files.csv")
	require.NoError(t, err)

	assert.Equal(t, "duplicate_files.csv", s.Report)
	assert.Equal(t, "md5", s.Algorithm)
}

func TestScanSetup_DryRunOnlyAskedWhenDeleting(t *testing.T) {
	p, out := newPrompter("/data\n\ny\ny\nsha256\n", "/data")

	s, err := p.ScanSetup("duplicate_files.csv")
	require.NoError(t, err)

	assert.True(t, s.Delete)
	assert.True(t, s.DryRun)
	assert.Contains(t, out.String(), "dry-run")
}

func TestScanSetup_UnknownAlgorithmFallsBackToSHA256(t *testing.T) {
	p, _ := newPrompter("/data\n\nn\nwhirlpool\n", "/data")

	s, err := p.ScanSetup("duplicate_files.csv")
	require.NoError(t, err)

	assert.Equal(t, "sha256", s.Algorithm)
}

func TestGroupDecision(t *testing.T) {
	group := dedup.DuplicateGroup{
		Digest: "abc",
		Size:   4,
		Paths:  []string{"/data/orig.txt", "/data/copy.txt", "/data/copy2.txt"},
	}

	tests := []struct {
		name  string
		input string
		want  prompt.Decision
	}{
		{"confirm deletes", "y\n", prompt.Delete},
		{"uppercase confirm deletes", "Y\n", prompt.Delete},
		{"abort stops everything", "a\n", prompt.Abort},
		{"explicit no skips", "n\n", prompt.Skip},
		{"anything else skips", "maybe\n", prompt.Skip},
		{"empty line skips", "\n", prompt.Skip},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p, out := newPrompter(tt.input)

			got, err := p.GroupDecision(group)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			assert.Contains(t, out.String(), "Original: /data/orig.txt")
			assert.Contains(t, out.String(), "[1] /data/copy.txt")
			assert.Contains(t, out.String(), "[2] /data/copy2.txt")
		})
	}
}
