package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/sambabib/ncu-helper/pkg/filter"
	"github.com/sambabib/ncu-helper/pkg/generator"
	"github.com/sambabib/ncu-helper/pkg/logger"
	"github.com/sambabib/ncu-helper/pkg/output"
	"github.com/sambabib/ncu-helper/pkg/pipeline"
	"github.com/sambabib/ncu-helper/pkg/prefs"
)

var (
	manager    string
	upgradeCap string
	ignore     []string
	lockfile   bool
	deep       bool
	format     string // output format: text or json
	copyOutput bool
	save       bool
)

// generateCmd represents the generate subcommand
var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate upgrade commands from an npm-check-updates report",
	Long: `Generate reads an npm-check-updates report from file, or from stdin when no file
or "-" is given, and prints one upgrade command per library joined by "; ".
Flags override the stored preferences for this run; --save keeps them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := applyFlags(cmd, loadPreferences())
		if err != nil {
			return err
		}

		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		result := pipeline.Run(input, p)
		if err := printResult(cmd, result); err != nil {
			return err
		}
		if result.Err != nil {
			return fmt.Errorf("invalid input: %w", result.Err)
		}

		if save {
			if err := prefs.Save(store, p); err != nil {
				return fmt.Errorf("failed to save preferences: %w", err)
			}
		}
		if result.Output == "" {
			logger.Infof("nothing to upgrade")
			return nil
		}
		return copyIfRequested(cmd, result)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&manager, "manager", "m", "", "Package manager: npm or yarn")
	generateCmd.Flags().StringVarP(&upgradeCap, "cap", "c", "", "Largest upgrade to include: major, minor or patch")
	generateCmd.Flags().StringSliceVarP(&ignore, "ignore", "i", nil, "Library to leave out, added to the stored ignore list (repeatable)")
	generateCmd.Flags().BoolVar(&lockfile, "lockfile", false, "Append a lockfile refresh command")
	generateCmd.Flags().BoolVar(&deep, "deep", false, "Generate commands for a deep (monorepo) report")
	generateCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text or json (default from config, else text)")
	generateCmd.Flags().BoolVar(&copyOutput, "copy", false, "Also copy the output to the clipboard")
	generateCmd.Flags().BoolVar(&save, "save", false, "Store the flag overrides as preferences")
}

// applyFlags overrides p with the generate flags the user set.
func applyFlags(cmd *cobra.Command, p prefs.Preferences) (prefs.Preferences, error) {
	flags := cmd.Flags()
	if flags.Changed("manager") {
		pm, err := generator.ParsePackageManager(manager)
		if err != nil {
			return p, err
		}
		p.PackageManager = pm
	}
	if flags.Changed("cap") {
		c, err := filter.ParseCap(upgradeCap)
		if err != nil {
			return p, err
		}
		p.SeverityCap = c
	}
	if flags.Changed("ignore") {
		ignored := slices.Clone(p.IgnoredLibs)
		for _, name := range ignore {
			if !slices.Contains(ignored, name) {
				ignored = append(ignored, name)
			}
		}
		p.IgnoredLibs = ignored
	}
	if flags.Changed("lockfile") {
		p.BumpLockfile = lockfile
	}
	if flags.Changed("deep") {
		p.Deep = deep
	}
	return p, nil
}

// outputFormat returns the --format flag, falling back to the config.
func outputFormat(cmd *cobra.Command) (string, error) {
	f := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		f = format
	}
	switch f {
	case "", "text":
		return "text", nil
	case "json":
		return "json", nil
	}
	return "", fmt.Errorf("invalid output format %q: want text or json", f)
}

// printResult writes the generated commands, or the diagnostic for malformed
// input, in the selected format.
func printResult(cmd *cobra.Command, result pipeline.Result) error {
	f, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f == "json" {
		data, err := output.GenerateJSONReport(result)
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if result.Malformed() {
		output.PrintDiagnostic(out, pipeline.Diagnostic)
		return nil
	}
	if result.Output != "" {
		fmt.Fprintln(out, result.Output)
	}
	return nil
}

// copyIfRequested copies the output when --copy or output.copy is set. A
// missing clipboard is reported but does not fail the command.
func copyIfRequested(cmd *cobra.Command, result pipeline.Result) error {
	want := cfg.Output.Copy
	if cmd.Flags().Lookup("copy") != nil && cmd.Flags().Changed("copy") {
		want = copyOutput
	}
	if !want {
		return nil
	}
	if err := output.Copy(result.Output); err != nil {
		logger.Warnf("%v", err)
		return nil
	}
	logger.Infof("copied %d commands to the clipboard", len(result.Commands))
	return nil
}
