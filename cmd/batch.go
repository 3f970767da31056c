package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mhrbek/facetone/internal/config"
	"github.com/mhrbek/facetone/internal/tone"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Estimate skin tones for a file of image URLs",
	Long: `Batch reads one image URL per line (blank lines and # comments are
skipped) and runs an independent estimation for each. Runs share no
state, so they execute concurrently up to the worker limit.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("workers", 4, "Number of concurrent estimations")
	batchCmd.Flags().Bool("clean", false, "Remove the scratch directory when done")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	urls, err := readURLList(args[0])
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return errors.New("no image URLs in input file")
	}

	// Scratch lifecycle is caller-owned; the pipeline never deletes.
	if mustGetBool(cmd, "clean") {
		defer os.RemoveAll(cfg.Scratch.Dir)
	}

	workers := mustGetInt(cmd, "workers")
	if workers < 1 {
		workers = 1
	}

	bar := progressbar.Default(int64(len(urls)), "estimating")

	type outcome struct {
		result tone.HSL
		err    error
	}
	results := make([]outcome, len(urls))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := p.Estimate(cmd.Context(), u)
			results[i] = outcome{result: result, err: err}
			_ = bar.Add(1)
		}(i, u)
	}
	wg.Wait()

	failures := 0
	for i, o := range results {
		if o.err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "%s: %v\n", urls[i], o.err)
			continue
		}
		fmt.Printf("%s\thue=%.1f sat=%.1f light=%.1f %s\n",
			urls[i], o.result.H, o.result.S, o.result.L, o.result.Hex())
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d estimations failed", failures, len(urls))
	}
	return nil
}

func readURLList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read URL list: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
