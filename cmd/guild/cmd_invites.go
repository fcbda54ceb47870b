package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"guild/cmd/guild/ui"
	"guild/internal/api"
	"guild/internal/types"
)

// invitesCmd is the parent for invitation operations.
var invitesCmd = &cobra.Command{
	Use:   "invites",
	Short: "List and answer mission invitations",
	Long: `Invitation operations without the dashboard.

Available subcommands:
  list    - List your pending invitations
  accept  - Accept an invitation and take the role
  decline - Decline an invitation`,
	RunE: runInvitesList,
}

var invitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your pending invitations",
	RunE:  runInvitesList,
}

var invitesAcceptCmd = &cobra.Command{
	Use:   "accept [invite-id]",
	Short: "Accept an invitation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return respondInvite(cmd, args[0], types.InviteAccepted)
	},
}

var invitesDeclineCmd = &cobra.Command{
	Use:   "decline [invite-id]",
	Short: "Decline an invitation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return respondInvite(cmd, args[0], types.InviteDeclined)
	},
}

func init() {
	invitesCmd.AddCommand(invitesListCmd)
	invitesCmd.AddCommand(invitesAcceptCmd)
	invitesCmd.AddCommand(invitesDeclineCmd)
}

func runInvitesList(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	invites, err := store.Client().ListMyInvites(cmd.Context())
	if err != nil {
		return fmt.Errorf("list invites: %s", api.Detail(err))
	}

	pending := invites[:0]
	for _, inv := range invites {
		if inv.Status == types.InvitePending {
			pending = append(pending, inv)
		}
	}
	if len(pending) == 0 {
		fmt.Println("No pending invitations.")
		return nil
	}

	table := ui.NewSimpleTable("Invitations", []string{"ID", "Mission", "Role", "From"})
	for i := range pending {
		inv := &pending[i]
		mission := "-"
		if inv.MissionRole.Mission != nil {
			mission = inv.MissionRole.Mission.Title
		}
		table.AddRow(inv.ID, mission, inv.MissionRole.RoleDescription, inv.InvitingUser.Name)
	}
	fmt.Print(table.View(cliStyles()))
	return nil
}

func respondInvite(cmd *cobra.Command, inviteID string, status types.InviteStatus) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	if _, err := store.Client().RespondToInvite(cmd.Context(), inviteID, status); err != nil {
		return fmt.Errorf("respond to invite: %s", api.Detail(err))
	}
	fmt.Printf("Invitation %s.\n", status)
	return nil
}
