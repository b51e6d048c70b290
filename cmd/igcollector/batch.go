package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"igcollector/pkg/input"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Collect emails from a list of profiles",
	Long: `Process a list of profiles from a file.

The file is either plain text with one handle, @handle, or profile URL per
line, or a CSV file with a column named "username". Handles are normalized
and deduplicated before processing, and at most --limit profiles are
processed.`,
	Example: `  # Plain text list, one handle per line
  igcollector batch usernames.txt

  # CSV with a username column, slower pacing
  igcollector batch leads.csv --delay 2s --limit 200`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handles, err := readBatchFile(args[0])
		if err != nil {
			return err
		}
		if len(handles) == 0 {
			return fmt.Errorf("no usable handles found in %s", args[0])
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("Processing %d handles (limit %d)\n", len(handles), cfg.Batch.Limit)

		runner := newRunner(cfg)
		run := runner.Run(cmd.Context(), handles)
		printSummary(run)

		return writeResults(cfg, run, "batch_results")
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addCollectionFlags(batchCmd)
}

func readBatchFile(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return input.FromCSV(f)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return input.FromLines(string(data)), nil
}
