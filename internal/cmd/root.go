package cmd

import (
	"github.com/spf13/cobra"

	"github.com/raremonarch/bashmod/internal/config"
	"github.com/raremonarch/bashmod/internal/output"
)

var (
	// Global flags
	configFlag  string
	verboseFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	bashmodConfig *config.Config
)

// NewRootCmd creates the root command for the bashmod CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bashmod",
		Short:         "Package manager for shell configuration modules",
		Long: `bashmod installs small shell configuration modules from a registry
into a directory your shell sources at start-up (~/.bashrc.d by
default), and detects alias, function, and variable collisions between
installed modules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: BASHMOD_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewSearchCmd())
	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewUninstallCmd())
	rootCmd.AddCommand(NewConflictsCmd())
	rootCmd.AddCommand(NewUpdateCmd())
	rootCmd.AddCommand(NewReconcileCmd())
	rootCmd.AddCommand(NewRegistryCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewBrowseCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals() error {
	cfg, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		return err
	}
	bashmodConfig = cfg

	verbose := verboseFlag || cfg.Log.Verbose
	output.SetupLogging(verbose)

	if verbose {
		output.Debug("initializing CLI",
			"config", configFlag,
			"registries", len(cfg.Registries),
			"installDir", cfg.InstallDir,
		)
	}
	return nil
}

// GetConfig returns the loaded bashmod configuration.
func GetConfig() *config.Config {
	if bashmodConfig == nil {
		return (&config.Config{}).WithDefaults()
	}
	return bashmodConfig
}
