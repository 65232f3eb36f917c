package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/composer/internal/core/domain"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage the mention directory",
	Long: `List, add, remove or search the members that can be @mentioned.

Members listed under directory.members in the config file are merged
with the stored ones.`,
}

var memberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List members",
	Args:  cobra.NoArgs,
	RunE:  runMemberList,
}

var memberAddCmd = &cobra.Command{
	Use:   "add [member-id] [name...]",
	Short: "Add a member",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMemberAdd,
}

var memberRemoveCmd = &cobra.Command{
	Use:   "remove [member-id]",
	Short: "Remove a member",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemberRemove,
}

var memberSearchCmd = &cobra.Command{
	Use:   "search [prefix]",
	Short: "Find members by name prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMemberSearch,
}

func init() {
	memberCmd.AddCommand(memberListCmd)
	memberCmd.AddCommand(memberAddCmd)
	memberCmd.AddCommand(memberRemoveCmd)
	memberCmd.AddCommand(memberSearchCmd)
	rootCmd.AddCommand(memberCmd)
}

func runMemberList(cmd *cobra.Command, _ []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	members, err := directoryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}
	printMembers(cmd, members)
	return nil
}

func runMemberAdd(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	member := domain.Mention{ID: args[0], Name: strings.Join(args[1:], " ")}
	if err := directoryService.Add(cmd.Context(), member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	cmd.Printf("Added member: @%s (%s)\n", member.Name, member.ID)
	return nil
}

func runMemberRemove(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	if err := directoryService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	cmd.Printf("Removed member: %s\n", args[0])
	return nil
}

func runMemberSearch(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	members, err := directoryService.Search(cmd.Context(), prefix)
	if err != nil {
		return fmt.Errorf("failed to search members: %w", err)
	}
	printMembers(cmd, members)
	return nil
}

func printMembers(cmd *cobra.Command, members []domain.Mention) {
	if len(members) == 0 {
		cmd.Println("No members found.")
		return
	}
	for _, m := range members {
		cmd.Printf("  @%-20s %s\n", m.Name, m.ID)
	}
	cmd.Printf("\nTotal: %d members\n", len(members))
}
