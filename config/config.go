package config

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyDatabasePath      = "database.path"
	KeyUploadDir         = "storage.upload_dir"
	KeyOutputDir         = "storage.output_dir"
	KeyServerPort        = "server.port"
	KeyReportTitle       = "report.title"
	KeyReportWorkers     = "report.workers"
	KeySkipWithoutSalary = "report.skip_without_salary"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Server   ServerConfig   `mapstructure:"server"`
	Report   ReportConfig   `mapstructure:"report"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir" validate:"required"`
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

type ReportConfig struct {
	Title             string `mapstructure:"title" validate:"required"`
	Workers           int    `mapstructure:"workers" validate:"min=1,max=64"`
	SkipWithoutSalary bool   `mapstructure:"skip_without_salary"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	local := viper.New()
	setDefaults(local)
	cfg, err := loadAndValidateFromViper(local)
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# punchpay configuration
database:
  path: "./punchpay.db"

storage:
  upload_dir: "./uploads"
  output_dir: "./reports"

server:
  port: 8080

report:
  title: "Late Arrival Deductions"
  workers: 4
  # Drop employees without a stored salary instead of charging the flat deduction.
  skip_without_salary: false
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, "./punchpay.db")
	v.SetDefault(KeyUploadDir, "./uploads")
	v.SetDefault(KeyOutputDir, "./reports")
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyReportTitle, "Late Arrival Deductions")
	v.SetDefault(KeyReportWorkers, 4)
	v.SetDefault(KeySkipWithoutSalary, false)
}
