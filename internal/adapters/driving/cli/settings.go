package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/composer/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage composer settings",
	Long: `View and configure the default composer mode, suggestion and undo
limits, and the draft autosave interval.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsModeCmd = &cobra.Command{
	Use:   "mode [rich|plain]",
	Short: "Set the default composer mode",
	Long: `Set the mode new composers start in. Without an argument you are
asked to choose.

Available modes:
  rich  - Formatting, lists, mentions and links
  plain - Text only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsMode,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change composer limits",
	Long: `Change one or more limits. Flags that are not given keep their
current value.

Examples:
  composer settings set --max-candidates 5
  composer settings set --autosave-interval 500ms`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var (
	settingsMaxCandidates    int
	settingsHistoryLimit     int
	settingsAutosaveInterval time.Duration
)

func init() {
	settingsSetCmd.Flags().IntVar(&settingsMaxCandidates, "max-candidates", 0, "maximum suggestions shown")
	settingsSetCmd.Flags().IntVar(&settingsHistoryLimit, "history-limit", 0, "maximum undo steps kept")
	settingsSetCmd.Flags().DurationVar(&settingsAutosaveInterval, "autosave-interval", 0, "minimum gap between draft autosaves")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsModeCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Composer]")
	cmd.Printf("  Mode: %s\n", settings.Mode.Description())
	cmd.Printf("  Max suggestions: %d\n", settings.MaxCandidates)
	cmd.Printf("  Undo history: %d\n", settings.HistoryLimit)
	cmd.Println()

	cmd.Println("[Drafts]")
	cmd.Printf("  Autosave interval: %s\n", time.Duration(settings.AutosaveIntervalMs)*time.Millisecond)
	return nil
}

var modeChoices = []domain.Mode{domain.ModeRich, domain.ModePlain}

func runSettingsMode(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var mode domain.Mode
	if len(args) == 1 {
		mode = domain.Mode(strings.ToLower(args[0]))
	} else {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}

		cmd.Println("Select composer mode:")
		current := 1
		for i, m := range modeChoices {
			marker := " "
			if m == settings.Mode {
				marker = "*"
				current = i + 1
			}
			cmd.Printf("  %s %d. %s\n", marker, i+1, m.Description())
		}
		cmd.Printf("Choice [%d]: ", current)

		reader := bufio.NewReader(cmd.InOrStdin())
		mode = modeChoices[parseChoice(readLine(reader), len(modeChoices), current)-1]
	}

	if err := settingsService.SetMode(mode); err != nil {
		return fmt.Errorf("failed to set mode: %w", err)
	}
	cmd.Printf("Composer mode set to: %s\n", mode.Description())
	return nil
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	flags := cmd.Flags()
	if !flags.Changed("max-candidates") && !flags.Changed("history-limit") && !flags.Changed("autosave-interval") {
		return errors.New("nothing to change: pass at least one flag")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if flags.Changed("max-candidates") {
		if settingsMaxCandidates < 1 {
			return fmt.Errorf("%w: max candidates must be at least 1", domain.ErrInvalidInput)
		}
		settings.MaxCandidates = settingsMaxCandidates
	}
	if flags.Changed("history-limit") {
		if settingsHistoryLimit < 1 {
			return fmt.Errorf("%w: history limit must be at least 1", domain.ErrInvalidInput)
		}
		settings.HistoryLimit = settingsHistoryLimit
	}
	if flags.Changed("autosave-interval") {
		if settingsAutosaveInterval < 0 {
			return fmt.Errorf("%w: autosave interval cannot be negative", domain.ErrInvalidInput)
		}
		settings.AutosaveIntervalMs = int(settingsAutosaveInterval / time.Millisecond)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings saved.")
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
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
