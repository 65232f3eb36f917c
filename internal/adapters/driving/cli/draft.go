package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// previewWidth is the column budget for draft previews in listings.
const previewWidth = 48

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage saved drafts",
	Long:  `List, show, save or delete the per-channel message drafts.`,
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drafts, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runDraftList,
}

var draftShowCmd = &cobra.Command{
	Use:   "show [draft-id]",
	Short: "Print a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftShow,
}

var draftSaveCmd = &cobra.Command{
	Use:   "save [channel] [value]",
	Short: "Save a draft for a channel",
	Long: `Save a value as the draft for a channel, replacing any previous one.
The value is read from stdin when it is not given. An empty value
discards the draft.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDraftSave,
}

var draftDeleteCmd = &cobra.Command{
	Use:   "delete [draft-id]",
	Short: "Delete a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftDelete,
}

var (
	draftJSON   bool
	draftFormat string
)

func init() {
	draftListCmd.Flags().BoolVar(&draftJSON, "json", false, "print drafts as JSON")
	draftShowCmd.Flags().StringVarP(&draftFormat, "format", "f", "plain", "output format: canonical, markup or plain")

	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftSaveCmd)
	draftCmd.AddCommand(draftDeleteCmd)
	rootCmd.AddCommand(draftCmd)
}

func runDraftList(cmd *cobra.Command, _ []string) error {
	if draftService == nil {
		return errors.New("draft service not configured")
	}

	drafts, err := draftService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list drafts: %w", err)
	}

	if draftJSON {
		return writeDraftsJSON(cmd, drafts)
	}

	if len(drafts) == 0 {
		cmd.Println("No drafts.")
		return nil
	}

	cmd.Printf("Drafts:\n\n")
	for i := range drafts {
		cmd.Printf("  %s\n", drafts[i].ID)
		cmd.Printf("    Channel: #%s\n", drafts[i].Channel)
		cmd.Printf("    Preview: %s\n", previewLine(drafts[i].Preview))
		if n := len(drafts[i].Mentions); n > 0 {
			cmd.Printf("    Mentions: %d\n", n)
		}
		cmd.Printf("    Updated: %s\n", drafts[i].UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	cmd.Printf("\nTotal: %d drafts\n", len(drafts))
	return nil
}

type draftJSONItem struct {
	ID        string           `json:"id"`
	Channel   string           `json:"channel"`
	Preview   string           `json:"preview"`
	Mentions  []domain.Mention `json:"mentions"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func writeDraftsJSON(cmd *cobra.Command, drafts []domain.Draft) error {
	items := make([]draftJSONItem, len(drafts))
	for i := range drafts {
		items[i] = draftJSONItem{
			ID:        drafts[i].ID,
			Channel:   drafts[i].Channel,
			Preview:   drafts[i].Preview,
			Mentions:  drafts[i].Mentions,
			UpdatedAt: drafts[i].UpdatedAt,
		}
		if items[i].Mentions == nil {
			items[i].Mentions = []domain.Mention{}
		}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// previewLine flattens a preview to one line and truncates it to fit.
func previewLine(preview string) string {
	line := strings.Join(strings.Fields(preview), " ")
	return runewidth.Truncate(line, previewWidth, "…")
}

func runDraftShow(cmd *cobra.Command, args []string) error {
	if draftService == nil || conversionService == nil {
		return errors.New("draft service not configured")
	}

	format, err := domain.ParseFormat(draftFormat)
	if err != nil {
		return err
	}

	d, err := draftService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get draft: %w", err)
	}

	out, err := conversionService.Convert(d.Value, format)
	if err != nil {
		return fmt.Errorf("failed to convert draft: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runDraftSave(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errors.New("draft service not configured")
	}

	value, err := readValue(cmd, args[1:])
	if err != nil {
		return err
	}

	d, err := draftService.Save(cmd.Context(), args[0], value)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	if d == nil {
		cmd.Printf("Discarded draft for #%s\n", args[0])
		return nil
	}
	cmd.Printf("Saved draft %s for #%s\n", d.ID, d.Channel)
	return nil
}

func runDraftDelete(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errors.New("draft service not configured")
	}

	if err := draftService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	cmd.Printf("Deleted draft: %s\n", args[0])
	return nil
}
