package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/accesstwin/accesstwin-go/internal/privacy"
	"github.com/accesstwin/accesstwin-go/internal/store"
	"github.com/spf13/cobra"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <profile-id>",
	Short: "Compute the teacher-safe view of a profile",
	Long: `Prints the coarse safe view: category counts, controlled-vocabulary tags,
generalised themes, rounded averages, first name only. With --full the
confidential AI-only context is printed instead; that block must never be
shown on a teacher-facing surface.`,
	Args: cobra.ExactArgs(1),
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().Bool("full", false, "Print the confidential AI-only context instead")
	aggregateCmd.Flags().Bool("json", false, "Print the safe view as JSON")
	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
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
	supports, err := s.ListSupports(id)
	if err != nil {
		return err
	}
	logs, err := s.ListTrackingLogs(id, 0)
	if err != nil {
		return err
	}

	safe, fullContext := privacy.Aggregate(pr.Profile, store.Entries(supports), logs)

	if full, _ := cmd.Flags().GetBool("full"); full {
		fmt.Fprintln(os.Stderr, "warning: confidential context follows; for the AI backend only")
		fmt.Println(fullContext)
		return nil
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(safe)
	}

	fmt.Printf("Student: %s\n", safe.FirstName)
	fmt.Printf("Active supports: %d\n", safe.ActiveSupportCount)
	if len(safe.SupportCategories) > 0 {
		fmt.Println("Categories:")
		for _, cat := range safe.SupportCategories {
			line := fmt.Sprintf("  %s: %d", cat, safe.CategoryCounts[cat])
			if avg, ok := safe.Effectiveness[cat]; ok {
				line += fmt.Sprintf(" (avg effectiveness %.1f/5)", avg)
			}
			fmt.Println(line)
		}
	}
	printList("Strength themes", safe.StrengthThemes)
	printList("Goal themes", safe.GoalThemes)
	printList("UDL principles", safe.UDLPrinciples)
	printList("POUR principles", safe.POURPrinciples)
	return nil
}

func printList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for _, it := range items {
		fmt.Printf("  - %s\n", it)
	}
}
