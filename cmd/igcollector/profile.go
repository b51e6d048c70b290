package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"igcollector/pkg/collector"
	"igcollector/pkg/config"
	"igcollector/pkg/export"
	"igcollector/pkg/instagram"
)

var profileCmd = &cobra.Command{
	Use:   "profile <username or URL>",
	Short: "Collect emails from a single profile",
	Example: `  # By handle, with or without @
  igcollector profile instagram
  igcollector profile @instagram

  # By profile URL
  igcollector profile https://www.instagram.com/instagram/

  # More retries and a longer pause between attempts
  igcollector profile instagram --max-attempts 3 --delay 2s`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handle := instagram.UsernameFromInput(args[0])
		if handle == "" {
			return fmt.Errorf("invalid username or URL: %q", args[0])
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		runner := newRunner(cfg)
		run := runner.Run(cmd.Context(), []string{handle})
		rec := run.Records[0]

		if rec.Failed() {
			fmt.Printf("@%s: %s\n", handle, rec.Error)
		} else {
			fmt.Printf("@%s (%s)\n", rec.Username, rec.FullName)
			if rec.EmailsCount() > 0 {
				fmt.Printf("  emails: %s\n", strings.Join(rec.Emails, ", "))
			} else {
				fmt.Println("  no public emails found")
			}
			if len(rec.EmailSources) > 0 {
				fmt.Printf("  sources: %s\n", strings.Join(rec.EmailSources, ", "))
			}
		}

		return writeResults(cfg, run, handle+"_profile")
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	addCollectionFlags(profileCmd)
}

// writeResults exports the run in the configured format.
func writeResults(cfg *config.Config, run *collector.BatchRun, base string) error {
	manager, err := export.NewManager(cfg.Export.Directory)
	if err != nil {
		return err
	}

	var path string
	if strings.EqualFold(cfg.Export.Format, "json") {
		path, err = manager.WriteJSON(run.Records, base)
	} else {
		path, err = manager.WriteCSV(run.Records, base)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Results written to %s\n", path)
	return nil
}
