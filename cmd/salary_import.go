package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"punchpay/attendance"
	"punchpay/importer"
	"punchpay/salary"
	"punchpay/storage"
)

var (
	salaryImportInput      string
	salaryImportAttendance []string
	salaryImportDryRun     bool
)

var salaryImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Match a salary sheet against attendance employees and store the salaries",
	Long: `Read a salary sheet (Code and Salary columns), look up every employee found in the
attendance export(s), and store the matched salaries in one transaction.

Employees without a row in the salary sheet are listed and left unchanged.`,
	Example: `
  # Import and store
  punchpay salary import -i salaries.xlsx -a attendance.xlsx

  # Preview matches without writing
  punchpay salary import -i salaries.csv -a march.xlsx -a april.xlsx --dry-run
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

		match, written, err := importSalaries(store, salaryImportInput, salaryImportAttendance, salaryImportDryRun)
		if err != nil {
			return err
		}

		if len(match.Unmatched) > 0 {
			fmt.Printf("Not found in salary sheet: %s\n", strings.Join(match.Unmatched, ", "))
		}
		if salaryImportDryRun {
			for _, record := range match.Matched {
				fmt.Printf("%-12s %-30s %14s\n", record.EmployeeID, record.Name, record.MonthlySalary.StringFixed(2))
			}
			fmt.Printf("Dry run. Matched: %d, Unmatched: %d, nothing stored.\n", len(match.Matched), len(match.Unmatched))
			return nil
		}
		fmt.Printf("Salary import completed. Matched: %d, Unmatched: %d, Stored: %d\n", len(match.Matched), len(match.Unmatched), written)
		return nil
	},
}

// importSalaries matches the salary sheet against the roster of the
// attendance files and stores the matches unless dryRun is set.
func importSalaries(store *storage.SQLiteStore, salaryPath string, attendancePaths []string, dryRun bool) (salary.MatchResult, int, error) {
	imported, err := importer.Run(attendancePaths, "")
	if err != nil {
		return salary.MatchResult{}, 0, err
	}
	sheet, err := importer.ReadSalarySheet(salaryPath, "")
	if err != nil {
		return salary.MatchResult{}, 0, err
	}

	match := salary.Match(attendance.Roster(imported.Records), sheet)
	if dryRun {
		return match, 0, nil
	}

	written, err := store.UpsertSalaries(match.Matched)
	if err != nil {
		return match, 0, err
	}
	return match, written, nil
}

func init() {
	salaryCmd.AddCommand(salaryImportCmd)

	salaryImportCmd.Flags().StringVarP(&salaryImportInput, "input", "i", "", "Salary sheet path (.xlsx or .csv)")
	salaryImportCmd.Flags().StringArrayVarP(&salaryImportAttendance, "attendance", "a", nil, "Attendance export whose employees are matched (repeatable)")
	salaryImportCmd.Flags().BoolVar(&salaryImportDryRun, "dry-run", false, "Show matches without storing them")

	_ = salaryImportCmd.MarkFlagRequired("input")
	_ = salaryImportCmd.MarkFlagRequired("attendance")
}
