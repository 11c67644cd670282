package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sambabib/ncu-helper/pkg/filter"
	"github.com/sambabib/ncu-helper/pkg/logger"
	"github.com/sambabib/ncu-helper/pkg/pipeline"
	"github.com/sambabib/ncu-helper/pkg/prefs"
)

var reportPath string

// ignoreCmd represents the ignore subcommand
var ignoreCmd = &cobra.Command{
	Use:   "ignore <name>...",
	Short: "Toggle libraries in the stored ignore list",
	Long: `Ignore adds each named library to the stored ignore list, or removes it if it
is already there. With --report, libraries above the upgrade cap in that report
cannot be toggled.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := loadPreferences()

		var libs []filter.Library
		if reportPath != "" {
			input, err := readInput(cmd, []string{reportPath})
			if err != nil {
				return err
			}
			result := pipeline.Run(input, p)
			if result.Err != nil {
				return fmt.Errorf("invalid report: %w", result.Err)
			}
			libs = result.Libraries
		}

		ignored := p.IgnoredLibs
		for _, name := range args {
			next, err := filter.ToggleIgnored(ignored, libs, name)
			if errors.Is(err, filter.ErrLibraryDisabled) {
				return fmt.Errorf("cannot toggle %s: %w", name, err)
			}
			if err != nil {
				return err
			}
			ignored = next
			if cfg.IsPackageIgnored(name) && !slices.Contains(ignored, name) {
				logger.Infof("%s is in the config ignorePackages; the stored ignore list now includes it again", name)
			}
		}

		if err := prefs.Set(store, prefs.KeyIgnoredLibs, ignored); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}

		if len(ignored) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No libraries ignored.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Ignored: %s\n", strings.Join(ignored, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ignoreCmd)
	ignoreCmd.Flags().StringVarP(&reportPath, "report", "r", "", "Report used to refuse libraries above the upgrade cap")
}
