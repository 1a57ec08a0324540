package main

import (
	"fmt"
	"strconv"

	"github.com/accesstwin/accesstwin-go/internal/privacy"
	"github.com/spf13/cobra"
)

var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "Manage support entries on a profile",
}

var supportAddCmd = &cobra.Command{
	Use:   "add <profile-id>",
	Short: "Add a support entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		e := privacy.SupportEntry{}
		e.Category, _ = cmd.Flags().GetString("category")
		e.Subcategory, _ = cmd.Flags().GetString("subcategory")
		e.Description, _ = cmd.Flags().GetString("description")
		e.UDLMapping, _ = cmd.Flags().GetString("udl")
		e.POURMapping, _ = cmd.Flags().GetString("pour")
		e.Status, _ = cmd.Flags().GetString("status")
		if cmd.Flags().Changed("rating") {
			r, _ := cmd.Flags().GetFloat64("rating")
			e.Effectiveness = &r
		}
		if e.Category == "" || e.Description == "" {
			return fmt.Errorf("--category and --description are required")
		}
		id, err := s.AddSupport(profileID, e)
		if err != nil {
			return err
		}
		fmt.Printf("Added support %d\n", id)
		return nil
	},
}

var supportLsCmd = &cobra.Command{
	Use:   "ls <profile-id>",
	Short: "List support entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		rows, err := s.ListSupports(profileID)
		if err != nil {
			return err
		}
		for _, r := range rows {
			rating := "unrated"
			if r.Entry.Effectiveness != nil {
				rating = fmt.Sprintf("%.1f/5", *r.Entry.Effectiveness)
			}
			fmt.Printf("%4d  [%s/%s] %s — %s, %s\n", r.ID, r.Entry.Category, r.Entry.Subcategory, r.Entry.Description, r.Entry.Status, rating)
		}
		return nil
	},
}

var supportStatusCmd = &cobra.Command{
	Use:   "status <support-id> <active|paused|completed|archived>",
	Short: "Change a support's lifecycle status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		switch args[1] {
		case "active", "paused", "completed", "archived":
		default:
			return fmt.Errorf("invalid status %q", args[1])
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.SetSupportStatus(id, args[1])
	},
}

var supportRateCmd = &cobra.Command{
	Use:   "rate <support-id> <rating>",
	Short: "Record an effectiveness rating (1-5)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		rating, err := strconv.ParseFloat(args[1], 64)
		if err != nil || rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be a number between 1 and 5")
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.RateSupport(id, rating)
	},
}

func init() {
	supportAddCmd.Flags().String("category", "", "Support category (sensory, motor, cognitive, ...)")
	supportAddCmd.Flags().String("subcategory", "", "Subcategory")
	supportAddCmd.Flags().String("description", "", "Support description")
	supportAddCmd.Flags().String("udl", "", "UDL mapping as JSON")
	supportAddCmd.Flags().String("pour", "", "POUR mapping as JSON")
	supportAddCmd.Flags().String("status", "active", "Lifecycle status")
	supportAddCmd.Flags().Float64("rating", 0, "Effectiveness rating 1-5")
	supportCmd.AddCommand(supportAddCmd, supportLsCmd, supportStatusCmd, supportRateCmd)
	rootCmd.AddCommand(supportCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
