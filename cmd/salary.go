package cmd

import "github.com/spf13/cobra"

var salaryDBPath string

var salaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Manage stored monthly salaries.",
	Long: `Store, list, and bulk-import monthly salaries in the local SQLite database.

Salaries are keyed by employee id. Writing a salary for an id that already has
one replaces it.`,
	Example: `
  # Store one salary
  punchpay salary set --id 101 --name "Asha Rao" --salary 72000

  # List stored salaries
  punchpay salary list

  # Import salaries for every employee in an attendance export
  punchpay salary import -i salaries.xlsx -a attendance.xlsx
`,
}

func init() {
	rootCmd.AddCommand(salaryCmd)

	salaryCmd.PersistentFlags().StringVar(&salaryDBPath, "db", "", "Path to SQLite database (default: database.path from config)")
}
