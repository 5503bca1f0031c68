/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"punchpay/config"
	"punchpay/storage"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "punchpay",
	Short: "Compute late-arrival salary deductions from attendance exports.",
	Long: `
**********************************************
*                PUNCH PAY                   *
**********************************************

This CLI reads biometric attendance exports (Excel, CSV), keeps monthly salaries
in a local SQLite database, and computes per-day late-arrival deductions.
Reports are written as CSV, Excel or PDF, and a local web UI offers the same
upload -> salaries -> result flow.

Supported input formats:
- Excel: .xlsx, .xlsm
- CSV: .csv
`,
	Example: `
  # Create configuration file
  punchpay config create

  # Store one monthly salary
  punchpay salary set --id 101 --name "Asha Rao" --salary 72000

  # Match a salary sheet against the employees of an attendance export
  punchpay salary import -i salaries.xlsx -a attendance.xlsx

  # Compute deductions to CSV and PDF
  punchpay report -i attendance.xlsx -o deductions.csv --pdf deductions.pdf

  # Start the local web UI
  punchpay serve
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.punchpay.yaml, then ./.punchpay.yaml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "config", "help", "completion":
			return false
		}
	}
	return cmd.Runnable() && cmd != rootCmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".punchpay" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".punchpay")
	}

	viper.SetEnvPrefix("punchpay")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: punchpay config create")
	}
}

// loadConfig returns the validated config with the --db override applied.
func loadConfig(dbPath string) (*config.Config, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dbPath) != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*storage.SQLiteStore, error) {
	store, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open salary store %s: %w", cfg.Database.Path, err)
	}
	return store, nil
}
