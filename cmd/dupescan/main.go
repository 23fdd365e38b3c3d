package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/spf13/cobra"

	"dupescan/internal/config"
	"dupescan/internal/dedup"
	"dupescan/internal/hash"
	"dupescan/internal/metrics"
	"dupescan/internal/progress"
	"dupescan/internal/prompt"
	"dupescan/internal/report"
	"dupescan/internal/scan"
)

var (
	flagOutput    string
	flagDelete    bool
	flagDryRun    bool
	flagAlgorithm string
	flagWorkers   int
	flagStats     bool
)

var rootCmd = &cobra.Command{
	Use:   "dupescan [path]",
	Short: "Find and manage duplicate files in a directory tree",
	Long: `dupescan finds groups of byte-identical files beneath a directory.

Files are first grouped by size, then only size-colliding files are
hashed in parallel; files sharing both size and digest form a duplicate
group. The scan writes a CSV report and can optionally prompt to delete
the redundant copies.

When invoked without a path, dupescan asks for its options interactively.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", config.DefaultReport, "name of the CSV output file")
	rootCmd.Flags().BoolVarP(&flagDelete, "delete", "d", false, "prompt to delete duplicate files after the scan")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what files would be deleted without removing them")
	rootCmd.Flags().StringVar(&flagAlgorithm, "hash-algo", hash.AlgoSHA256, "hashing algorithm (md5 or sha256)")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 0, "hash worker count (0 = number of CPUs)")
	rootCmd.Flags().BoolVar(&flagStats, "stats", false, "print scan statistics on completion")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// watchInterrupt installs the SIGINT handler for the whole invocation.
// The scan holds no file open for writing, and deletion removes whole
// files one at a time, so the first interrupt can end the process at
// any phase — including while a prompt blocks on stdin — by announcing
// itself and exiting with a zero status. The returned stop func
// uninstalls the handler.
func watchInterrupt(out io.Writer, exit func(code int)) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	done := make(chan struct{})

	go func() {
		select {
		case <-ch:
			fmt.Fprintln(out, "\nScan interrupted by user. Exiting.")
			exit(0)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	stop := watchInterrupt(os.Stdout, os.Exit)
	defer stop()
	ctx := cmd.Context()

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		cfg.Report = flagOutput
	}
	if cmd.Flags().Changed("hash-algo") {
		cfg.Algorithm = flagAlgorithm
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if !hash.Supported(cfg.Algorithm) {
		return fmt.Errorf("unsupported hash algorithm %q (want md5 or sha256)", cfg.Algorithm)
	}

	doDelete := flagDelete
	dryRun := flagDryRun

	var root string
	if len(args) == 1 {
		root = args[0]
	} else {
		fmt.Println("Running in interactive mode.")
		fmt.Println("Enter your options below, or press Ctrl+C to exit.")

		setup, perr := prompt.New().ScanSetup(cfg.Report)
		if perr != nil {
			return perr
		}
		root = setup.Root
		cfg.Report = setup.Report
		cfg.Algorithm = setup.Algorithm
		doDelete = setup.Delete
		dryRun = setup.DryRun
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("directory %q not found or is not a valid directory", root)
	}

	if dryRun {
		fmt.Println("Running in Dry Run mode. No files will be deleted.")
	}

	stats := &metrics.Stats{}
	stats.Start()

	fmt.Printf("Starting scan of %q...\n", root)
	fmt.Println("Pass 1: grouping files by size...")

	counter := progress.NewCounter("sizing")
	groups, err := scan.Partition(ctx, root, logger.With("component", "scan"), stats, counter.Inc)
	counter.Close()
	if err != nil {
		return err
	}

	candidates := groups.Candidates()
	stats.Candidates = int64(len(candidates))
	stats.TotalBytes = groups.TotalBytes()

	var results []dedup.Result
	if len(candidates) > 0 {
		fmt.Println("Pass 2: hashing potential duplicates...")

		bar := progress.New(stats.TotalBytes, func() (processed, total, errc, bytesHashed int64) {
			processed = atomic.LoadInt64(&stats.Processed)
			total = atomic.LoadInt64(&stats.Candidates)
			errc = atomic.LoadInt64(&stats.HashErrors)
			bytesHashed = atomic.LoadInt64(&stats.BytesHashed)
			return processed, total, errc, bytesHashed
		})

		results, err = dedup.HashAll(ctx, candidates, dedup.Options{
			Algorithm: cfg.Algorithm,
			ChunkSize: cfg.ChunkSize,
			Workers:   cfg.Workers,
		}, logger.With("component", "hash"), stats, bar)
		bar.Close()
		if err != nil {
			return err
		}
	}

	dups := dedup.Group(candidates, results)
	stats.Groups = int64(len(dups))
	for _, g := range dups {
		stats.Duplicates += int64(len(g.Paths) - 1)
	}
	stats.Stop()

	if len(dups) == 0 {
		fmt.Println("\nNo duplicate files found.")
	} else {
		fmt.Printf("\nFound %d duplicate files in %d groups.\n", stats.Duplicates, stats.Groups)
		if werr := report.WriteCSV(cfg.Report, dups); werr != nil {
			logger.Error("failed to write report", "path", cfg.Report, "error", werr)
		} else {
			fmt.Printf("Duplicate file report saved to %q.\n", cfg.Report)
		}
	}

	fmt.Printf("Scan completed in %.2f seconds.\n", stats.Duration().Seconds())

	if flagStats {
		metrics.Print(os.Stdout, stats)
	}

	if doDelete {
		deletePhase(os.Stdout, dups, dryRun, prompt.New(), os.Remove, logger.With("component", "delete"))
	}
	return nil
}

// groupDecider is what deletePhase needs from the prompt layer.
type groupDecider interface {
	GroupDecision(g dedup.DuplicateGroup) (prompt.Decision, error)
}

// deletePhase walks the duplicate groups strictly after the scan. In
// dry-run mode it only announces; live mode asks per group, removes the
// non-original members on confirmation, and stops everything on abort.
// A failed removal is logged and the rest of the group continues.
func deletePhase(out io.Writer, dups []dedup.DuplicateGroup, dryRun bool, decider groupDecider, remove func(path string) error, logger *slog.Logger) {
	if len(dups) == 0 {
		fmt.Fprintln(out, "No duplicates to delete.")
		return
	}

	fmt.Fprintln(out, "\n--- Duplicate Deletion ---")
	if dryRun {
		fmt.Fprintln(out, "Mode: Dry Run")
	} else {
		fmt.Fprintln(out, "Mode: Live")
	}

	for _, g := range dups {
		if dryRun {
			prompt.Describe(out, g)
			fmt.Fprintln(out, "  -> (Dry Run) These files would be deleted.")
			continue
		}

		decision, err := decider.GroupDecision(g)
		if err != nil {
			logger.Error("reading answer failed, stopping deletion", "error", err)
			return
		}

		switch decision {
		case prompt.Delete:
			for _, dup := range g.Paths[1:] {
				if rerr := remove(dup); rerr != nil {
					logger.Error("could not delete file", "path", dup, "error", rerr)
					continue
				}
				fmt.Fprintf(out, "  -> Deleted: %s\n", dup)
			}
		case prompt.Abort:
			fmt.Fprintln(out, "Deletion aborted by user.")
			return
		case prompt.Skip:
			// explicit skip, continue with the next group
		}
	}
}
