package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the backend address, request limits, notice texts and logging.

Settings are stored in ~/.docchat/config.toml. Backend changes apply on the next start.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by its dotted key, for example:

  docchat settings set backend.base_url http://localhost:8000
  docchat settings set backend.timeout_seconds 120

Flags must come before the key; everything after it is read as the value.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Walk through every setting, keeping the current value when the answer is empty.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	// Values such as "-5" must reach validation rather than flag parsing.
	settingsSetCmd.Flags().SetInterspersed(false)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.List()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	for _, s := range settings {
		value := s.Value
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %s = %s\n", s.Key, value)
		cmd.Printf("      %s\n", s.Description)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.List()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("docchat Settings Wizard")
	cmd.Println("=======================")
	cmd.Println("Press enter to keep the current value.")
	cmd.Println()

	changed := 0
	for _, s := range settings {
		cmd.Printf("%s\n  %s [%s]: ", s.Key, s.Description, s.Value)
		answer := readLine(reader)
		if answer == "" || answer == s.Value {
			continue
		}
		if err := settingsService.Set(s.Key, answer); err != nil {
			return fmt.Errorf("failed to set %s: %w", s.Key, err)
		}
		changed++
	}

	cmd.Println()
	cmd.Printf("Configuration complete, %d settings changed.\n", changed)
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
