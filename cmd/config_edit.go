package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"punchpay/config"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the active config and check the paths it points at.",
	Long: `Open the active punchpay config file in $VISUAL, $EDITOR or vi.

A missing config file is first seeded with the example template. Once the
editor exits the file is validated, the effective database, storage and
report settings are printed, and the upload and output directories are
created when they do not exist yet.`,
	Example: `
  # Edit active config
  punchpay config edit

  # Edit a project-local config with a specific editor
  EDITOR="code --wait" punchpay --configFile ./punchpay.yaml config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := writeConfigTemplate(configPath); err != nil {
				return err
			}
			fmt.Printf("No config file found. Created example config at: %s\n", configPath)
		}

		editor := editorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"), configPath)
		editor.Stdin, editor.Stdout, editor.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("opening editor failed: %w", err)
		}

		edited, err := checkEditedConfig(configPath)
		if err != nil {
			return err
		}
		reportEditedConfig(cmd.OutOrStdout(), configPath, edited)
		return nil
	},
}

func resolveConfigEditPath(configFileFlag, configFileUsed string) (string, error) {
	for _, candidate := range []string{configFileFlag, configFileUsed} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".punchpay.yaml"), nil
}

func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return fmt.Errorf("creating example config failed: %w", err)
	}
	return nil
}

// editorCommand prefers $VISUAL over $EDITOR and splits flags such as
// "code --wait" off the executable.
func editorCommand(visual, editor, configPath string) *exec.Cmd {
	fields := strings.Fields(visual)
	if len(fields) == 0 {
		fields = strings.Fields(editor)
	}
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	return exec.Command(fields[0], append(fields[1:], configPath)...)
}

func checkEditedConfig(configPath string) (*config.Config, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading edited config failed: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, fmt.Errorf("config validation failed in %s: %w", configPath, err)
	}
	return cfg, nil
}

// reportEditedConfig prints the settings the next run will use. Storage
// directories that cannot be created only produce a warning so the edited
// file is still kept.
func reportEditedConfig(out io.Writer, configPath string, cfg *config.Config) {
	fmt.Fprintf(out, "Configuration saved and validated: %s\n", configPath)
	fmt.Fprintf(out, "  %s: %s\n", config.KeyDatabasePath, cfg.Database.Path)
	fmt.Fprintf(out, "  %s: %s\n", config.KeyUploadDir, cfg.Storage.UploadDir)
	fmt.Fprintf(out, "  %s: %s\n", config.KeyOutputDir, cfg.Storage.OutputDir)
	fmt.Fprintf(out, "  %s: %d\n", config.KeyReportWorkers, cfg.Report.Workers)

	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(out, "warning: cannot create %s: %v\n", dir, err)
		}
	}
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
