package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"punchpay/config"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

If a configuration file is already in use, no new file is written; the existing
file is validated instead.`,
	Example: `
  # Create default config at $HOME/.punchpay.yaml
  punchpay config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig()
	},
}

func saveDefaultConfig() error {
	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := writeConfigTemplate(configPath); err != nil {
			return err
		}
		fmt.Printf("New config file created at: %s\n", configPath)
		return nil
	}

	fmt.Printf("Config file already exists at: %s\n", configPath)
	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading existing config failed: %w", err)
	}
	if _, err := config.ValidateYAMLContent(content); err != nil {
		fmt.Printf("Existing config is invalid, fix it with: punchpay config edit (%v)\n", err)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
