package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"guild/cmd/guild/ui"
	"guild/internal/api"
)

var notificationsAll bool

// notificationsCmd lists notifications and marks them read.
var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notes"},
	Short:   "List your notifications",
	RunE:    runNotificationsList,
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotificationsRead,
}

func init() {
	notificationsCmd.Flags().BoolVar(&notificationsAll, "all", false, "Include notifications already read")
	notificationsCmd.AddCommand(notificationsReadCmd)
}

func runNotificationsList(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	notes, err := store.Client().MyNotifications(cmd.Context())
	if err != nil {
		return fmt.Errorf("list notifications: %s", api.Detail(err))
	}

	table := ui.NewSimpleTable("Notifications", []string{"ID", "", "Message"})
	shown := 0
	for i := range notes {
		n := &notes[i]
		if n.IsRead && !notificationsAll {
			continue
		}
		marker := "●"
		if n.IsRead {
			marker = " "
		}
		table.AddRow(n.ID, marker, n.Message)
		shown++
	}
	if shown == 0 {
		fmt.Println("No unread notifications.")
		return nil
	}
	fmt.Print(table.View(cliStyles()))
	return nil
}

func runNotificationsRead(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	if _, err := store.Client().MarkNotificationRead(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("mark read: %s", api.Detail(err))
	}
	fmt.Println("Marked as read.")
	return nil
}
