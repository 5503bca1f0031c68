package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"punchpay/config"
	"punchpay/importer"
	"punchpay/report"
)

var (
	reportInputs  []string
	reportOutput  string
	reportPDF     string
	reportFormat  string
	reportDBPath  string
	reportWorkers int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute late-arrival deductions for attendance exports",
	Long: `Read attendance exports, look up stored monthly salaries, and write the
employee-days that carry a deduction.

Deduction rules per employee-day:
- no stored salary: flat 50
- both punches missing: ABSENT (not reported)
- one punch missing: flat 25
- up to 15 minutes late for the assigned shift (11:00 AM, or 3:00 PM when the
  first punch is at or after 2 PM): nothing
- up to 45 minutes late: flat 50
- later: double hourly rate for the time beyond 45 minutes, at least 50

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # CSV report
  punchpay report -i attendance.xlsx -o deductions.csv

  # Excel report plus PDF
  punchpay report -i attendance.xlsx -o deductions.xlsx --pdf deductions.pdf

  # Several exports, explicit format
  punchpay report -i week1.csv -i week2.csv --format excel -o deductions.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(reportDBPath)
		if err != nil {
			return err
		}
		if reportWorkers > 0 {
			cfg.Report.Workers = reportWorkers
		}

		totals, err := runReport(cmd.Context(), cfg, reportOptions{
			inputs: reportInputs,
			format: reportFormat,
			output: reportOutput,
			pdf:    reportPDF,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Report completed. Rows: %d, Employees: %d, Total deduction: %s, File: %s\n",
			totals.Rows, totals.Employees, totals.Amount.StringFixed(2), reportOutput)
		if reportPDF != "" {
			fmt.Printf("PDF written: %s\n", reportPDF)
		}
		return nil
	},
}

type reportOptions struct {
	inputs []string
	format string
	output string
	pdf    string
}

func runReport(ctx context.Context, cfg *config.Config, options reportOptions) (report.Totals, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	format := options.format
	if strings.TrimSpace(format) == "" {
		format = report.DetectFormat(options.output)
	}
	writer, err := report.WriterForFormat(format, cfg.Report.Title)
	if err != nil {
		return report.Totals{}, err
	}

	imported, err := importer.Run(options.inputs, "")
	if err != nil {
		return report.Totals{}, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return report.Totals{}, err
	}
	defer store.Close()

	salaries, err := store.SalaryLookup()
	if err != nil {
		return report.Totals{}, err
	}

	rows, err := report.Generate(ctx, imported.Records, salaries, report.Options{
		Workers:           cfg.Report.Workers,
		SkipWithoutSalary: cfg.Report.SkipWithoutSalary,
	})
	if err != nil {
		return report.Totals{}, err
	}

	if err := writer.Write(options.output, rows); err != nil {
		return report.Totals{}, err
	}
	if options.pdf != "" {
		if err := (&report.PDFWriter{Title: cfg.Report.Title}).Write(options.pdf, rows); err != nil {
			return report.Totals{}, err
		}
	}

	return report.Summarize(rows), nil
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringArrayVarP(&reportInputs, "input", "i", nil, "Attendance export path (repeatable)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file path")
	reportCmd.Flags().StringVar(&reportPDF, "pdf", "", "Also write a PDF report to this path")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "Output format: csv|excel|pdf (optional, inferred from output extension)")
	reportCmd.Flags().StringVar(&reportDBPath, "db", "", "Path to SQLite database (default: database.path from config)")
	reportCmd.Flags().IntVar(&reportWorkers, "workers", 0, "Parallel deduction workers (default: report.workers from config)")

	_ = reportCmd.MarkFlagRequired("input")
	_ = reportCmd.MarkFlagRequired("output")
}
