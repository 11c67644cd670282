package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sambabib/ncu-helper/pkg/prefs"
)

// prefsCmd represents the prefs subcommand
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show the stored preferences",
	Long: `Prefs shows the preferences used by generate, list and select. Values that were
never stored come from the config file defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := loadPreferences()
		values := map[string]any{
			prefs.KeyPackageManager: p.PackageManager,
			prefs.KeySeverityCap:    p.SeverityCap,
			prefs.KeyIgnoredLibs:    p.IgnoredLibs,
			prefs.KeyBumpLockfile:   p.BumpLockfile,
			prefs.KeyDeep:           p.Deep,
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
		for _, key := range prefs.Keys {
			data, err := json.Marshal(values[key])
			if err != nil {
				return err
			}
			source := "default"
			if store.Has(key) {
				source = "stored"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", key, data, source)
		}
		return w.Flush()
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a preference",
	Long: `Set stores one preference. Keys: packageManager (npm, yarn), upgradeVersion
(major, minor, patch), ignoredLibs (comma separated), bumpLockfile and deep
(true, false).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return prefs.SetString(store, args[0], args[1])
	},
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every stored preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := prefs.Reset(store); err != nil {
			return fmt.Errorf("failed to reset preferences: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Preferences reset.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsResetCmd)
}
