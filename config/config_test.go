package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_AcceptsExample(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("expected example config to validate: %v", err)
	}
	if cfg.Database.Path != "./punchpay.db" || cfg.Server.Port != 8080 || cfg.Report.Workers != 4 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Report.SkipWithoutSalary {
		t.Fatalf("expected skip_without_salary to default to false")
	}
}

func TestValidateYAMLContent_FillsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("report:\n  skip_without_salary: true\n"))
	if err != nil {
		t.Fatalf("expected partial config to validate: %v", err)
	}
	if !cfg.Report.SkipWithoutSalary {
		t.Fatalf("expected skip_without_salary=true")
	}
	if cfg.Storage.OutputDir != "./reports" || cfg.Report.Title != "Late Arrival Deductions" {
		t.Fatalf("expected defaults to be applied, got %+v", cfg)
	}
}

func TestValidateYAMLContent_RejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "port out of range", content: "server:\n  port: 70000\n", field: "Port"},
		{name: "zero workers", content: "report:\n  workers: 0\n", field: "Workers"},
		{name: "empty database path", content: "database:\n  path: \"\"\n", field: "Path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ValidateYAMLContent([]byte(tt.content))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("expected error to mention %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidateYAMLContent_RejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte("server: [unclosed")); err == nil {
		t.Fatalf("expected read error for malformed yaml")
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	if cfg.Storage.UploadDir != "./uploads" || cfg.Report.Workers != 4 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
