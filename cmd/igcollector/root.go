package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"igcollector/pkg/collector"
	"igcollector/pkg/config"
	"igcollector/pkg/crawler"
	"igcollector/pkg/instagram"
	"igcollector/pkg/logger"
	"igcollector/pkg/ratelimit"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	logLevel   string

	// Shared collection flags
	delay       time.Duration
	maxAttempts int
	limit       int
	outputDir   string
	format      string
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "igcollector",
	Short: "Collect publicly visible emails from Instagram profiles",
	Long: `igcollector extracts publicly visible email addresses from Instagram
profiles without authentication.

For each profile it fetches the public metadata, scans the biography for
emails, and crawls the declared external website (plus a bounded number of
its outbound links) for more. Profiles can be processed one at a time, in
batches from a list or CSV file, or from an exported followers archive.

Only public data is touched: no login, no private profiles, no stored
credentials.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .igcollector.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.SetVersionTemplate(`igcollector {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// addCollectionFlags registers the flags shared by every collecting command.
func addCollectionFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&delay, "delay", 0, "pause before each profile request (0s-5s)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "retry attempts per profile (1-5)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of profiles to process (1-2000)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for result files")
	cmd.Flags().StringVar(&format, "format", "", "export format (csv or json)")
}

// collectionFlags gathers explicitly set flag values for the config merge.
func collectionFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	if cmd.Flags().Changed("delay") {
		flags["delay"] = delay
	}
	if maxAttempts > 0 {
		flags["max-attempts"] = maxAttempts
	}
	if limit > 0 {
		flags["limit"] = limit
	}
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if format != "" {
		flags["format"] = format
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	return flags
}

// loadConfig builds the effective configuration and initializes logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile, collectionFlags(cmd))
	if err != nil {
		return nil, err
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRunner wires the full pipeline: rate-limited profile fetcher, link
// crawler, resolver, session cache, batch runner.
func newRunner(cfg *config.Config) *collector.Runner {
	log := logger.GetLogger()

	client := instagram.NewClient(cfg.Instagram.RequestTimeout, log)
	client.SetHeader("User-Agent", cfg.Instagram.UserAgent)
	client.SetLimiter(ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerMinute, time.Minute))

	linkCrawler := crawler.New(cfg.Crawl.Timeout, cfg.Crawl.UserAgent, log)
	resolver := collector.NewResolver(client, linkCrawler, log)

	return collector.NewRunner(resolver, collector.NewCache(), cfg.Batch, log)
}

// printSummary renders the run counters.
func printSummary(run *collector.BatchRun) {
	fmt.Printf("\nProcessed: %d  Emails: %d  Errors: %d  Private: %d  Success rate: %.1f%%\n",
		run.Processed, run.EmailsFound, run.Errors, run.Private, run.SuccessRate())
}
