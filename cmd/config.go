package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage punchpay configuration file values.",
	Long: `Create, edit, display, and delete the punchpay configuration file.

The configuration stores application-wide values:
- database.path
- storage.upload_dir / storage.output_dir
- server.port
- report.title / report.workers / report.skip_without_salary`,
	Example: `
  # Create default config in $HOME/.punchpay.yaml
  punchpay config create

  # Show active config and source file
  punchpay config show

  # Open active config in editor (creates example if missing)
  punchpay config edit

  # Delete active config file
  punchpay config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
