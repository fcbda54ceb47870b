package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"guild/cmd/guild/ui"
	"guild/internal/api"
	"guild/internal/types"
)

var (
	skillAddProficiency string
	searchProficiency   string
)

// skillsCmd manages the skill catalog and your own profile skills.
var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Browse skills and manage your profile",
	Long: `Skill operations without the dashboard.

Available subcommands:
  list   - List the guild skill catalog
  add    - Add a skill to your profile
  remove - Remove a skill from your profile
  search - Find members by skill name`,
	RunE: runSkillsList,
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the guild skill catalog",
	RunE:  runSkillsList,
}

var skillsAddCmd = &cobra.Command{
	Use:   "add [skill-id]",
	Short: "Add a skill to your profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillsAdd,
}

var skillsRemoveCmd = &cobra.Command{
	Use:   "remove [skill-id]",
	Short: "Remove a skill from your profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillsRemove,
}

var skillsSearchCmd = &cobra.Command{
	Use:   "search [skill-name]",
	Short: "Find members holding a skill",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillsSearch,
}

func init() {
	skillsAddCmd.Flags().StringVar(&skillAddProficiency, "proficiency", string(types.ProficiencyIntermediate), "Your proficiency")
	skillsSearchCmd.Flags().StringVar(&searchProficiency, "min-proficiency", "", "Minimum proficiency to match")

	skillsCmd.AddCommand(skillsListCmd)
	skillsCmd.AddCommand(skillsAddCmd)
	skillsCmd.AddCommand(skillsRemoveCmd)
	skillsCmd.AddCommand(skillsSearchCmd)
}

func runSkillsList(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	skills, err := store.Client().ListSkills(cmd.Context())
	if err != nil {
		return fmt.Errorf("list skills: %s", api.Detail(err))
	}
	if len(skills) == 0 {
		fmt.Println("No skills in the catalog.")
		return nil
	}
	table := ui.NewSimpleTable("Skills", []string{"ID", "Name"})
	for _, s := range skills {
		table.AddRow(s.ID, s.Name)
	}
	fmt.Print(table.View(cliStyles()))
	return nil
}

func runSkillsAdd(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	prof := types.SkillProficiency(skillAddProficiency)
	if !prof.Valid() {
		return fmt.Errorf("unknown proficiency %q (want Beginner, Intermediate, Advanced, or Expert)", skillAddProficiency)
	}
	if _, err := store.Client().AddMySkill(cmd.Context(), args[0], prof); err != nil {
		return fmt.Errorf("add skill: %s", api.Detail(err))
	}
	fmt.Printf("Skill added at %s.\n", prof)
	return nil
}

func runSkillsRemove(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	if _, err := store.Client().RemoveMySkill(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("remove skill: %s", api.Detail(err))
	}
	fmt.Println("Skill removed.")
	return nil
}

func runSkillsSearch(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	minProf := types.SkillProficiency(searchProficiency)
	if searchProficiency != "" && !minProf.Valid() {
		return fmt.Errorf("unknown proficiency %q (want Beginner, Intermediate, Advanced, or Expert)", searchProficiency)
	}
	users, err := store.Client().SearchUsers(cmd.Context(), args[0], minProf)
	if err != nil {
		return fmt.Errorf("search members: %s", api.Detail(err))
	}
	if len(users) == 0 {
		fmt.Println("No members match.")
		return nil
	}
	table := ui.NewSimpleTable("Members", []string{"ID", "Name", "Title", "Skills"})
	for i := range users {
		u := &users[i]
		var skills []string
		for _, s := range u.Skills {
			skills = append(skills, fmt.Sprintf("%s (%s)", s.Skill.Name, s.Proficiency))
		}
		table.AddRow(u.ID, u.Name, u.Title, strings.Join(skills, ", "))
	}
	fmt.Print(table.View(cliStyles()))
	return nil
}
