package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure routing, geocoding, voice and location settings.

Settings are stored in config.toml under the config directory. Use
subcommands to change individual keys or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting. Run "wayfinder settings show" to list keys.

Examples:
  wayfinder settings set routing.profile cycling
  wayfinder settings set voice.engine text
  wayfinder settings set routing.base_url http://localhost:5000`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset <key>",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure travel mode and narration step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)

	// Values such as "-1" are arguments, not shorthand flags.
	settingsSetCmd.Flags().SetInterspersed(false)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	cmd.Println("Current Settings")
	cmd.Println("================")

	section := ""
	for _, key := range settingsService.Keys() {
		value, err := settingsService.GetValue(key)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", key, err)
		}

		group, name, _ := strings.Cut(key, ".")
		if group != section {
			section = group
			cmd.Println()
			cmd.Printf("[%s]\n", group)
		}
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %s: %s\n", name, value)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	value, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return err
	}
	value, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	if err := settingsService.Reset(args[0]); err != nil {
		return err
	}
	value, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s reset to %s\n", args[0], value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Wayfinder Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Travel profile
	cmd.Println("Step 1: Select Travel Mode")
	cmd.Println("--------------------------")
	profiles := domain.AllTravelProfiles()
	current := 1
	for i, p := range profiles {
		if p == settings.Routing.Profile {
			current = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, p)
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Routing.Profile = profiles[parseChoice(readLine(reader), len(profiles), current)-1]
	cmd.Printf("Travel mode: %s\n\n", settings.Routing.Profile)

	// Step 2: Voice engine
	cmd.Println("Step 2: Select Voice Engine")
	cmd.Println("---------------------------")
	engines := domain.AllVoiceEngines()
	current = 1
	for i, e := range engines {
		if e == settings.Voice.Engine {
			current = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, e.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Voice.Engine = engines[parseChoice(readLine(reader), len(engines), current)-1]
	cmd.Printf("Voice engine: %s\n\n", settings.Voice.Engine.Description())

	// Step 3: Narration
	cmd.Println("Step 3: Voice Narration")
	cmd.Println("-----------------------")
	cmd.Printf("Narrate instructions aloud? %s: ", yesNoPrompt(settings.Voice.Enabled))
	settings.Voice.Enabled = parseYesNo(readLine(reader), settings.Voice.Enabled)
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func yesNoPrompt(current bool) string {
	if current {
		return "[Y/n]"
	}
	return "[y/N]"
}

func parseYesNo(input string, defaultVal bool) bool {
	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultVal
	}
}
