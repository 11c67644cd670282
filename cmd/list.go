package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sambabib/ncu-helper/pkg/generator"
	"github.com/sambabib/ncu-helper/pkg/output"
	"github.com/sambabib/ncu-helper/pkg/pipeline"
)

// listCmd represents the list subcommand
var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List the libraries of a report and whether they will be upgraded",
	Long: `List shows every library of an npm-check-updates report with its version
difference and whether it is included, ignored or above the upgrade cap.
With an empty report a sample is listed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		session := pipeline.NewSession(loadPreferences())
		session.SetInput(input)

		out := cmd.OutOrStdout()
		if err := session.Error(); err != nil {
			output.PrintDiagnostic(out, session.Output())
			return fmt.Errorf("invalid input: %w", err)
		}

		p := session.Preferences()
		fmt.Fprintf(out, "Run %s, then paste its output.\n", generator.CheckCommand(p.Deep))
		fmt.Fprintf(out, "Package manager: %s, upgrades up to: %s\n\n", p.PackageManager, p.SeverityCap)
		if session.ShowingSample() {
			fmt.Fprintln(out, "No report given, showing a sample:")
		}
		output.PrintLibraries(out, session.Libraries())
		if session.ShowingSample() {
			fmt.Fprintf(out, "\nThe sample would generate:\n%s\n", session.Placeholder())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
