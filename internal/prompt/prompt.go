package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"dupescan/internal/dedup"
	"dupescan/internal/hash"
)

// Decision is the outcome of a per-group deletion prompt. Anything the
// user types that is neither confirm nor abort is an explicit skip.
type Decision int

const (
	Skip Decision = iota
	Delete
	Abort
)

// Setup is everything the interactive fallback collects before a scan.
type Setup struct {
	Root      string
	Report    string
	Delete    bool
	DryRun    bool
	Algorithm string
}

// Prompter reads answers line by line. IsDir is injectable so setups
// can be exercised without touching the filesystem.
type Prompter struct {
	In    *bufio.Reader
	Out   io.Writer
	IsDir func(path string) bool
}

func New() *Prompter {
	return &Prompter{
		In:  bufio.NewReader(os.Stdin),
		Out: os.Stdout,
		IsDir: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && info.IsDir()
		},
	}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.Out, question)
	line, err := p.In.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ScanSetup runs the sequential prompts used when no directory argument
// was given: directory (re-asked until valid), report name (blank keeps
// the default), delete y/n, dry-run y/n only when deleting, and the
// algorithm (anything but md5 selects the default).
func (p *Prompter) ScanSetup(defaultReport string) (Setup, error) {
	var s Setup

	for {
		dir, err := p.ask("Enter the full path of the directory to scan: ")
		if err != nil {
			return Setup{}, err
		}
		if p.IsDir(dir) {
			s.Root = dir
			break
		}
		fmt.Fprintln(p.Out, "Invalid path. Please enter a valid directory.")
	}

	name, err := p.ask(fmt.Sprintf("Enter a filename for the CSV report (or press Enter for %q): ", defaultReport))
	if err != nil {
		return Setup{}, err
	}
	if name == "" {
		name = defaultReport
	}
	s.Report = name

	del, err := p.ask("Do you want to delete duplicates? (y/n): ")
	if err != nil {
		return Setup{}, err
	}
	s.Delete = strings.EqualFold(del, "y")

	if s.Delete {
		dry, err := p.ask("Run in dry-run mode to see what would be deleted? (y/n): ")
		if err != nil {
			return Setup{}, err
		}
		s.DryRun = strings.EqualFold(dry, "y")
	}

	algo, err := p.ask("Choose a hashing algorithm (md5 or sha256): ")
	if err != nil {
		return Setup{}, err
	}
	if strings.EqualFold(algo, hash.AlgoMD5) {
		s.Algorithm = hash.AlgoMD5
	} else {
		s.Algorithm = hash.AlgoSHA256
	}

	return s, nil
}

// Describe prints a duplicate group as the deletion phase shows it:
// the original first, then the numbered duplicates.
func Describe(w io.Writer, g dedup.DuplicateGroup) {
	fmt.Fprintf(w, "\nOriginal: %s\n", g.Paths[0])
	fmt.Fprintln(w, "Duplicates:")
	for i, dup := range g.Paths[1:] {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, dup)
	}
}

// GroupDecision presents one duplicate group and asks what to do with
// its non-original members.
func (p *Prompter) GroupDecision(g dedup.DuplicateGroup) (Decision, error) {
	Describe(p.Out, g)

	answer, err := p.ask("Delete these duplicates? (y/n, or a to abort all): ")
	if err != nil {
		return Skip, err
	}

	switch strings.ToLower(answer) {
	case "y":
		return Delete, nil
	case "a":
		return Abort, nil
	default:
		return Skip, nil
	}
}
