package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sambabib/ncu-helper/pkg/config"
	"github.com/sambabib/ncu-helper/pkg/logger"
	"github.com/sambabib/ncu-helper/pkg/prefs"
)

// Version is set during build using ldflags
var Version = "dev"

var (
	verbose    bool
	configPath string
	prefsPath  string
	noSave     bool

	// set up by the persistent pre-run of every command
	cfg   *config.Config
	store *prefs.Store
	changed []string // preference keys written or removed during this run
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ncu-helper",
	Short: "Turns npm-check-updates output into one upgrade command per library",
	Long: `ncu-helper reads the report printed by "npx npm-check-updates" and generates a
shell command line that upgrades, installs and commits each library separately,
so every upgrade lands in its own commit and can be reverted on its own.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if len(changed) > 0 {
			logger.Infof("updated preferences: %s", strings.Join(changed, ", "))
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: "+config.FileName+" in the working directory or a parent)")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "Preferences file (default: $XDG_CONFIG_HOME/ncu-helper/preferences.json)")
	rootCmd.PersistentFlags().BoolVar(&noSave, "no-save", false, "Read stored preferences but never write them")
}

// setup loads the config file and opens the preference store.
func setup() error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return wdErr
		}
		cfg, err = config.FindAndLoadConfig(wd)
	}
	if err != nil {
		return err
	}
	if cfg.Source() != "" {
		logger.Debugf("using config %s", cfg.Source())
	}

	path := prefsPath
	if path == "" {
		if path, err = cfg.PreferencesPath(); err != nil {
			return err
		}
	}
	logger.Debugf("using preferences %s", path)

	var backend prefs.Backend = prefs.NewFileBackend(path)
	if noSave {
		backend = prefs.ReadOnlyBackend{Backend: backend}
	}
	store = prefs.NewStore(backend)

	changed = nil
	if !noSave {
		store.OnChange(func(key string) {
			if !slices.Contains(changed, key) {
				changed = append(changed, key)
			}
		})
	}
	return nil
}

// loadPreferences returns the stored preferences on top of the config defaults.
func loadPreferences() prefs.Preferences {
	return prefs.Load(store, cfg.PreferenceDefaults())
}
