package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sambabib/ncu-helper/pkg/filter"
	"github.com/sambabib/ncu-helper/pkg/generator"
	"github.com/sambabib/ncu-helper/pkg/logger"
	"github.com/sambabib/ncu-helper/pkg/pipeline"
	"github.com/sambabib/ncu-helper/pkg/prefs"
)

// ErrNotInteractive is returned by select when stdin is not a terminal.
var ErrNotInteractive = errors.New("select needs an interactive terminal, use generate instead")

// selectCmd represents the select subcommand
var selectCmd = &cobra.Command{
	Use:   "select [file]",
	Short: "Choose preferences and libraries interactively",
	Long: `Select asks for the report (unless a file is given), the package manager, the
upgrade cap and the libraries to upgrade, stores the choices and prints the
generated commands.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return ErrNotInteractive
		}

		p := loadPreferences()
		var input string
		if len(args) > 0 {
			var err error
			if input, err = readInput(cmd, args); err != nil {
				return err
			}
		}

		settings := huh.NewForm(settingsGroups(&input, &p, len(args) == 0)...).
			WithShowHelp(true).
			WithOutput(os.Stderr)
		if err := settings.RunWithContext(cmd.Context()); err != nil {
			return formError(err)
		}

		session := pipeline.NewSession(p)
		session.SetInput(input)
		if err := session.Error(); err != nil {
			return fmt.Errorf("invalid input: %w", err)
		}

		libs := session.Result().Libraries
		chosen, err := chooseLibraries(cmd, libs)
		if err != nil {
			return formError(err)
		}
		p.IgnoredLibs = applySelection(p.IgnoredLibs, libs, chosen)
		session.SetPreferences(p)

		if err := prefs.Save(store, p); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}

		result := session.Result()
		if err := printResult(cmd, result); err != nil {
			return err
		}
		if result.Output == "" {
			logger.Infof("nothing to upgrade")
			return nil
		}
		return copyIfRequested(cmd, result)
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().BoolVar(&copyOutput, "copy", false, "Also copy the output to the clipboard")
}

// settingsGroups builds the form pages for the report text and the
// preferences, writing the answers into input and p.
func settingsGroups(input *string, p *prefs.Preferences, askInput bool) []*huh.Group {
	var groups []*huh.Group
	if askInput {
		groups = append(groups, huh.NewGroup(
			huh.NewText().
				Title("Report").
				Description(fmt.Sprintf("Copy/paste the output of %s", generator.CheckCommand(p.Deep))).
				Placeholder(pipeline.Sample).
				Lines(10).
				CharLimit(0).
				Value(input).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("paste a report first")
					}
					if pipeline.Run(s, *p).Err != nil {
						return errors.New(pipeline.Diagnostic)
					}
					return nil
				}),
		))
	}

	managers := make([]huh.Option[generator.PackageManager], 0, len(generator.PackageManagers))
	for _, pm := range generator.PackageManagers {
		managers = append(managers, huh.NewOption(string(pm), pm))
	}
	caps := make([]huh.Option[filter.Cap], 0, len(filter.Caps))
	for _, c := range filter.Caps {
		caps = append(caps, huh.NewOption(string(c), c))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewSelect[generator.PackageManager]().
			Title("Package manager").
			Options(managers...).
			Value(&p.PackageManager),
		huh.NewSelect[filter.Cap]().
			Title("Upgrade up to").
			Description("Libraries with a larger version difference are left out").
			Options(caps...).
			Value(&p.SeverityCap),
		huh.NewConfirm().
			Title("Bump lockfile").
			Description("Append a command that refreshes the lockfile").
			Value(&p.BumpLockfile),
		huh.NewConfirm().
			Title("Deep").
			Description("The report comes from npm-check-updates --deep").
			Value(&p.Deep),
	))
	return groups
}

// chooseLibraries asks which of the libraries within the cap to upgrade and
// returns their names. Libraries above the cap are listed but not offered.
func chooseLibraries(cmd *cobra.Command, libs []filter.Library) ([]string, error) {
	var (
		options []huh.Option[string]
		chosen  []string
		capped  []string
	)
	for _, lib := range libs {
		if lib.Disabled {
			capped = append(capped, lib.Name)
			continue
		}
		options = append(options, huh.NewOption(lib.String(), lib.Name).Selected(lib.Checked))
		if lib.Checked {
			chosen = append(chosen, lib.Name)
		}
	}
	if len(options) == 0 {
		logger.Infof("no library is within the upgrade cap")
		return nil, nil
	}

	fields := []huh.Field{
		huh.NewMultiSelect[string]().
			Title("Libraries to upgrade").
			Options(options...).
			Filterable(true).
			Value(&chosen),
	}
	if len(capped) > 0 {
		fields = append(fields, huh.NewNote().
			Title("Above the upgrade cap").
			Description(strings.Join(capped, "\n")))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(true).
		WithOutput(os.Stderr)
	if err := form.RunWithContext(cmd.Context()); err != nil {
		return nil, err
	}
	return chosen, nil
}

// applySelection updates the ignore list so that exactly the chosen libraries
// among those within the cap are included. Libraries above the cap and names
// not in the report keep their current state.
func applySelection(ignored []string, libs []filter.Library, chosen []string) []string {
	for _, lib := range libs {
		if lib.Disabled || lib.Checked == slices.Contains(chosen, lib.Name) {
			continue
		}
		next, err := filter.ToggleIgnored(ignored, libs, lib.Name)
		if err != nil {
			continue
		}
		ignored = next
	}
	if ignored == nil {
		ignored = []string{}
	}
	return ignored
}

func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		logger.Infof("aborted")
		return nil
	}
	return fmt.Errorf("failed to run form: %w", err)
}
