package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"punchpay/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Defaults are
shown when no config file exists.`,
	Example: `
  # Show active configuration
  punchpay config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file in use, showing defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("%s: %s\n", config.KeyDatabasePath, cfg.Database.Path)
		fmt.Printf("%s: %s\n", config.KeyUploadDir, cfg.Storage.UploadDir)
		fmt.Printf("%s: %s\n", config.KeyOutputDir, cfg.Storage.OutputDir)
		fmt.Printf("%s: %d\n", config.KeyServerPort, cfg.Server.Port)
		fmt.Printf("%s: %s\n", config.KeyReportTitle, cfg.Report.Title)
		fmt.Printf("%s: %d\n", config.KeyReportWorkers, cfg.Report.Workers)
		fmt.Printf("%s: %t\n", config.KeySkipWithoutSalary, cfg.Report.SkipWithoutSalary)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
