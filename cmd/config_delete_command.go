package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"punchpay/config"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by punchpay.

Only the YAML file is removed. The salary database, uploads and generated
reports it points at are left in place.`,
	Example: `
  # Delete active config
  punchpay config delete

  # Delete config at a custom path
  punchpay --configFile ./custom-punchpay.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			configPath = viper.ConfigFileUsed()
		}
		return deleteConfigFile(cmd.OutOrStdout(), configPath)
	},
}

func deleteConfigFile(out io.Writer, configPath string) error {
	if configPath == "" {
		return fmt.Errorf("no configuration file found")
	}

	// Read the database path first so the message can point at data that survives.
	var databasePath string
	if content, err := os.ReadFile(configPath); err == nil {
		if cfg, err := config.ValidateYAMLContent(content); err == nil {
			databasePath = cfg.Database.Path
		}
	}

	if err := os.Remove(configPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("configuration file %s does not exist", configPath)
		}
		return fmt.Errorf("error deleting configuration file: %w", err)
	}

	fmt.Fprintf(out, "Configuration file successfully deleted: %s\n", configPath)
	if databasePath != "" {
		fmt.Fprintf(out, "Salary database kept at: %s\n", databasePath)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
