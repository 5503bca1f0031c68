package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var salaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored monthly salaries.",
	Example: `
  punchpay salary list
  punchpay salary list --db ./payroll.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(salaryDBPath)
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.ListSalaries()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No salaries stored.")
			return nil
		}

		fmt.Printf("%-12s %-30s %14s\n", "Emp Id", "Name", "Monthly Salary")
		for _, record := range records {
			fmt.Printf("%-12s %-30s %14s\n", record.EmployeeID, record.Name, record.MonthlySalary.StringFixed(2))
		}
		fmt.Printf("Salaries: %d\n", len(records))
		return nil
	},
}

func init() {
	salaryCmd.AddCommand(salaryListCmd)
}
