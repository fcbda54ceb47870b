package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"guild/cmd/guild/ui"
	"guild/internal/api"
	"guild/internal/board"
	"guild/internal/types"
)

var (
	createTitle       string
	createDescription string
	createBudget      float64
	createStart       string
	createEnd         string
	createRoles       []string
)

// missionsCmd is the parent for non-interactive mission operations.
var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "List and manage missions",
	Long: `Mission operations without the dashboard, for scripting and quick checks.

Available subcommands:
  list         - List all missions
  get          - Show one mission in full
  create       - Propose a new mission with its roles
  move         - Move a mission to another status column
  action-items - List your missions needing attention`,
	RunE: runMissionsList,
}

var missionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all missions",
	RunE:  runMissionsList,
}

var missionsGetCmd = &cobra.Command{
	Use:   "get [mission-id]",
	Short: "Show one mission with roles and pitches",
	Args:  cobra.ExactArgs(1),
	RunE:  runMissionsGet,
}

var missionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Propose a new mission",
	Long: `Proposes a new mission led by you. Roles are given as
"description:skill-id:proficiency" triples, one --role flag per role.

Example:
  guild missions create --title "Forge the beacon" \
    --role "Smith the frame:skill-forging:Advanced" \
    --role "Enchant the core:skill-runes:Expert"`,
	RunE: runMissionsCreate,
}

var missionsMoveCmd = &cobra.Command{
	Use:   "move [mission-id] [status]",
	Short: "Move a mission to another status column",
	Long: `Moves one of your missions to Proposed, Active, or Completed.

The same lead-only rule as the dashboard board applies: only the mission
lead may change the status, and the check runs before any request is
sent.`,
	Args: cobra.ExactArgs(2),
	RunE: runMissionsMove,
}

var missionsActionItemsCmd = &cobra.Command{
	Use:   "action-items",
	Short: "List your missions that need attention",
	RunE:  runMissionsActionItems,
}

func init() {
	missionsCreateCmd.Flags().StringVar(&createTitle, "title", "", "Mission title (required)")
	missionsCreateCmd.Flags().StringVar(&createDescription, "description", "", "Mission description (markdown)")
	missionsCreateCmd.Flags().Float64Var(&createBudget, "budget", 0, "Mission budget")
	missionsCreateCmd.Flags().StringVar(&createStart, "start", "", "Start date (YYYY-MM-DD)")
	missionsCreateCmd.Flags().StringVar(&createEnd, "end", "", "End date (YYYY-MM-DD)")
	missionsCreateCmd.Flags().StringArrayVar(&createRoles, "role", nil, "Role as description:skill-id:proficiency (repeatable)")
	_ = missionsCreateCmd.MarkFlagRequired("title")
	_ = missionsCreateCmd.MarkFlagRequired("role")

	missionsCmd.AddCommand(missionsListCmd)
	missionsCmd.AddCommand(missionsGetCmd)
	missionsCmd.AddCommand(missionsCreateCmd)
	missionsCmd.AddCommand(missionsMoveCmd)
	missionsCmd.AddCommand(missionsActionItemsCmd)
}

func runMissionsList(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	missions, err := store.Client().ListMissions(cmd.Context())
	if err != nil {
		return fmt.Errorf("list missions: %s", api.Detail(err))
	}
	printMissionTable("Missions", missions)
	return nil
}

func runMissionsActionItems(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	missions, err := store.Client().ActionItems(cmd.Context())
	if err != nil {
		return fmt.Errorf("list action items: %s", api.Detail(err))
	}
	if len(missions) == 0 {
		fmt.Println("Nothing needs your attention.")
		return nil
	}
	printMissionTable("Action Items", missions)
	return nil
}

func printMissionTable(title string, missions []types.Mission) {
	if len(missions) == 0 {
		fmt.Println("No missions.")
		return
	}
	table := ui.NewSimpleTable(title, []string{"ID", "Title", "Status", "Lead", "Roles"})
	for i := range missions {
		m := &missions[i]
		filled := 0
		for j := range m.Roles {
			if m.Roles[j].Filled() {
				filled++
			}
		}
		table.AddRow(m.ID, m.Title, string(m.Status), m.Lead.Name,
			fmt.Sprintf("%d/%d", filled, len(m.Roles)))
	}
	fmt.Print(table.View(cliStyles()))
}

func runMissionsGet(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	mission, err := store.Client().GetMission(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get mission: %s", api.Detail(err))
	}

	fmt.Printf("%s [%s]\nLead: %s\n", mission.Title, mission.Status, mission.Lead.Name)
	if mission.Description != "" {
		fmt.Printf("\n%s\n", mission.Description)
	}
	if len(mission.Roles) > 0 {
		table := ui.NewSimpleTable("\nRoles", []string{"ID", "Description", "Skill", "Proficiency", "Assignee"})
		for i := range mission.Roles {
			r := &mission.Roles[i]
			assignee := "-"
			if r.Assignee != nil {
				assignee = r.Assignee.Name
			}
			table.AddRow(r.ID, r.RoleDescription, r.RequiredSkill.Name, string(r.ProficiencyRequired), assignee)
		}
		fmt.Print(table.View(cliStyles()))
	}
	return nil
}

func runMissionsCreate(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	if !store.User().IsCommander() {
		return fmt.Errorf("only managers can propose missions")
	}

	roles, err := parseRoleFlags(createRoles)
	if err != nil {
		return err
	}

	mission, err := store.Client().CreateMission(cmd.Context(), api.MissionCreatePayload{
		Title:       createTitle,
		Description: createDescription,
		Budget:      createBudget,
		StartDate:   createStart,
		EndDate:     createEnd,
		Roles:       roles,
	})
	if err != nil {
		return fmt.Errorf("create mission: %s", api.Detail(err))
	}
	fmt.Printf("Mission %s created with id %s.\n", mission.Title, mission.ID)
	return nil
}

func parseRoleFlags(specs []string) ([]api.RolePayload, error) {
	roles := make([]api.RolePayload, 0, len(specs))
	for _, spec := range specs {
		parts := splitRoleSpec(spec)
		if len(parts) != 3 {
			return nil, fmt.Errorf("bad role %q (want description:skill-id:proficiency)", spec)
		}
		prof := types.SkillProficiency(parts[2])
		if !prof.Valid() {
			return nil, fmt.Errorf("unknown proficiency %q (want Beginner, Intermediate, Advanced, or Expert)", parts[2])
		}
		roles = append(roles, api.RolePayload{
			RoleDescription:     parts[0],
			SkillIDRequired:     parts[1],
			ProficiencyRequired: prof,
		})
	}
	return roles, nil
}

// splitRoleSpec splits on the last two colons so role descriptions may
// contain colons themselves.
func splitRoleSpec(spec string) []string {
	last := -1
	prev := -1
	for i := len(spec) - 1; i >= 0; i-- {
		if spec[i] == ':' {
			if last == -1 {
				last = i
			} else {
				prev = i
				break
			}
		}
	}
	if last == -1 || prev == -1 {
		return nil
	}
	return []string{spec[:prev], spec[prev+1 : last], spec[last+1:]}
}

func runMissionsMove(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	missionID := args[0]
	target := types.MissionStatus(args[1])
	if !target.Valid() {
		return fmt.Errorf("unknown status %q (want Proposed, Active, or Completed)", args[1])
	}

	client := store.Client()
	missions, err := client.ListMissions(cmd.Context())
	if err != nil {
		return fmt.Errorf("list missions: %s", api.Detail(err))
	}

	outcome, err := board.Transition(cmd.Context(), store.User(), missions, missionID, target,
		func(ctx context.Context, id string, status types.MissionStatus) (*types.Mission, error) {
			return client.UpdateMissionStatus(ctx, id, status)
		})
	if err != nil {
		if errors.Is(err, board.ErrNotLead) {
			return fmt.Errorf("only the mission lead can change the status")
		}
		return fmt.Errorf("move mission: %s", api.Detail(err))
	}
	if !outcome.Changed {
		fmt.Println("Mission is already there; nothing to do.")
		return nil
	}
	fmt.Printf("Mission %s moved to %s.\n", missionID, target)
	return nil
}

// cliStyles renders tables with the configured theme.
func cliStyles() ui.Styles {
	return ui.NewStyles(ui.DetectTheme(cfg.Theme))
}
