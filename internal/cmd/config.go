package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/raremonarch/bashmod/internal/config"
	"github.com/raremonarch/bashmod/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bashmod configuration",
	}

	cmd.AddCommand(NewConfigInitCmd())
	cmd.AddCommand(NewConfigShowCmd())

	return cmd
}

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write the default configuration to the config file path
(~/.bashmod/config.yaml, or the path given via --config or
BASHMOD_CONFIG). Refuses to overwrite an existing file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit()
		},
	}
}

func runConfigInit() error {
	path := configFlag
	if path == "" {
		var err error
		path, err = config.GetConfigFile()
		if err != nil {
			return exitWith(err)
		}
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return exitWith(err)
	}

	if err := config.WriteDefault(expanded); err != nil {
		return exitWith(err)
	}

	output.Println(output.FormatCheckmark("wrote " + expanded))
	return nil
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging the config file, environment
variables, and defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}
}

func runConfigShow() error {
	cfg := GetConfig()

	rendered := struct {
		Registries          []string `yaml:"registries"`
		InstallDir          string   `yaml:"installDir"`
		FetchTimeoutSeconds int      `yaml:"fetchTimeoutSeconds"`
		Log                 struct {
			Verbose bool `yaml:"verbose"`
		} `yaml:"log"`
	}{
		Registries:          cfg.Registries,
		InstallDir:          cfg.InstallDir,
		FetchTimeoutSeconds: cfg.FetchTimeoutSeconds,
	}
	rendered.Log.Verbose = cfg.Log.Verbose

	data, err := yaml.Marshal(rendered)
	if err != nil {
		return exitWith(err)
	}
	output.Print(string(data))
	return nil
}
