package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	sourceDir    string
	targetDir    string
	dryRun       bool
	settingsPath string
	debugMode    bool
	debugEnabled bool
)

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// newRootCmd builds the command writing action lines to out
func newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight-sync --source DIR --target DIR",
		Short: "Copy Markdown files whose source_url is missing from the target",
		Long: `Scans the target directory for Markdown files, collects the source_url
from each file's front matter, then copies every Markdown file from the source
directory whose source_url is not yet present. Relative paths are preserved.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debugMode {
				SetDebugMode(true)
			}

			settings, err := LoadConfig(settingsPath)
			if err != nil {
				return err
			}

			syncer := NewSyncer(settings, out)
			syncer.SetDryRun(dryRun)

			results, err := syncer.Sync(sourceDir, targetDir)
			if err != nil {
				return err
			}

			logSummary(results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceDir, "source", "s", "", "Source directory containing Markdown files to sync")
	cmd.Flags().StringVarP(&targetDir, "target", "t", "", "Target directory to copy unique files into")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Dry run - show what would be copied without copying")
	cmd.Flags().StringVar(&settingsPath, "config", "", "Path to settings file (default .highlight-sync/settings.yaml)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
