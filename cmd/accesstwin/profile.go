package main

import (
	"fmt"

	"github.com/accesstwin/accesstwin-go/internal/privacy"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage student profiles",
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		p := privacy.Profile{Name: args[0]}
		p.Strengths = flagItems(cmd, "strength")
		p.History = flagItems(cmd, "history")
		p.Hopes = flagItems(cmd, "hope")
		p.Stakeholders = flagItems(cmd, "stakeholder")
		id, err := s.CreateProfile(p)
		if err != nil {
			return err
		}
		fmt.Printf("Created profile %d: %s\n", id, p.Name)
		return nil
	},
}

var profileLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		profiles, err := s.ListProfiles()
		if err != nil {
			return err
		}
		for _, p := range profiles {
			fmt.Printf("%4d  %s\n", p.ID, p.Profile.Name)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a profile's raw record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		pr, err := s.GetProfile(id)
		if err != nil {
			return err
		}
		fmt.Printf("Name: %s\n", pr.Profile.Name)
		printItems("Strengths", pr.Profile.Strengths)
		printItems("History", pr.Profile.History)
		printItems("Goals / Hopes", pr.Profile.Hopes)
		printItems("Stakeholders", pr.Profile.Stakeholders)
		supports, err := s.ListSupports(id)
		if err != nil {
			return err
		}
		if len(supports) > 0 {
			fmt.Println("Supports:")
			for _, r := range supports {
				fmt.Printf("  %4d  [%s] %s (%s)\n", r.ID, r.Entry.Category, r.Entry.Description, r.Entry.Status)
			}
		}
		return nil
	},
}

var profileRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a profile and its supports and logs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.DeleteProfile(id)
	},
}

func init() {
	profileAddCmd.Flags().StringArray("strength", nil, "Strength entry (repeatable)")
	profileAddCmd.Flags().StringArray("history", nil, "History entry (repeatable)")
	profileAddCmd.Flags().StringArray("hope", nil, "Goal/hope entry (repeatable)")
	profileAddCmd.Flags().StringArray("stakeholder", nil, "Stakeholder entry (repeatable)")
	profileCmd.AddCommand(profileAddCmd, profileLsCmd, profileShowCmd, profileRmCmd)
	rootCmd.AddCommand(profileCmd)
}

func flagItems(cmd *cobra.Command, name string) []privacy.Item {
	values, _ := cmd.Flags().GetStringArray(name)
	items := make([]privacy.Item, 0, len(values))
	for _, v := range values {
		items = append(items, privacy.Item{Text: v})
	}
	return items
}

func printItems(label string, items []privacy.Item) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for _, it := range items {
		fmt.Printf("  - %s\n", it.Text)
	}
}
