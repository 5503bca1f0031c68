package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"punchpay/attendance"
	"punchpay/salary"
)

var (
	salarySetID     string
	salarySetName   string
	salarySetAmount string
)

var salarySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the monthly salary of one employee.",
	Example: `
  punchpay salary set --id 101 --name "Asha Rao" --salary 72000
  punchpay salary set --id 102 --name "Ravi" --salary "Rs. 45,500"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := buildSalaryRecord(salarySetID, salarySetName, salarySetAmount)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(salaryDBPath)
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.UpsertSalary(record); err != nil {
			return err
		}
		fmt.Printf("Salary stored. Employee: %s (%s), Monthly salary: %s\n",
			record.EmployeeID, record.Name, record.MonthlySalary.StringFixed(2))
		return nil
	},
}

func buildSalaryRecord(id, name, amount string) (salary.Record, error) {
	monthly, err := salary.ParseAmount(amount)
	if err != nil {
		return salary.Record{}, err
	}
	record := salary.Record{
		EmployeeID:    attendance.NormalizeEmployeeID(id),
		Name:          strings.TrimSpace(name),
		MonthlySalary: monthly,
	}
	if err := record.Validate(); err != nil {
		return salary.Record{}, err
	}
	return record, nil
}

func init() {
	salaryCmd.AddCommand(salarySetCmd)

	salarySetCmd.Flags().StringVar(&salarySetID, "id", "", "Employee id as printed in the attendance export")
	salarySetCmd.Flags().StringVar(&salarySetName, "name", "", "Employee name")
	salarySetCmd.Flags().StringVar(&salarySetAmount, "salary", "", "Monthly salary, must be greater than zero")

	_ = salarySetCmd.MarkFlagRequired("id")
	_ = salarySetCmd.MarkFlagRequired("name")
	_ = salarySetCmd.MarkFlagRequired("salary")
}
