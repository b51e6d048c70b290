package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"igcollector/pkg/followers"
)

var archivePassword string

var followersCmd = &cobra.Command{
	Use:   "followers <export.zip or followers.json>",
	Short: "Collect emails from an exported followers list",
	Long: `Process the followers from an Instagram "Download your information"
export. The export is either the raw followers JSON file or the full zip
archive; inside an archive every JSON file whose name contains "followers"
is read. AES-protected archives need --password.`,
	Example: `  # Raw followers JSON
  igcollector followers followers_1.json

  # Full export archive, first 50 followers only
  igcollector followers instagram-data.zip --limit 50

  # Password-protected archive
  igcollector followers export.zip --password hunter2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		handles, err := followers.ParseUpload(data, archivePassword)
		if err != nil {
			return err
		}
		if len(handles) == 0 {
			return fmt.Errorf("no follower handles found in %s", args[0])
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("Found %d followers (processing up to %d)\n", len(handles), cfg.Batch.Limit)

		runner := newRunner(cfg)
		run := runner.Run(cmd.Context(), handles)
		printSummary(run)

		return writeResults(cfg, run, "followers_results")
	},
}

func init() {
	rootCmd.AddCommand(followersCmd)
	addCollectionFlags(followersCmd)
	followersCmd.Flags().StringVar(&archivePassword, "password", "", "password for protected archives")
}
