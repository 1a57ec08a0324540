package main

import (
	"fmt"

	"github.com/accesstwin/accesstwin-go/internal/privacy"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage tracking logs on a profile",
}

var logAddCmd = &cobra.Command{
	Use:   "add <profile-id>",
	Short: "Record an implementation/outcome log",
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

		var l privacy.TrackingLog
		l.LoggedByRole, _ = cmd.Flags().GetString("role")
		l.ImplementationNotes, _ = cmd.Flags().GetString("impl")
		l.OutcomeNotes, _ = cmd.Flags().GetString("outcome")
		supportID, _ := cmd.Flags().GetInt64("support")
		id, err := s.AddTrackingLog(profileID, supportID, l)
		if err != nil {
			return err
		}
		fmt.Printf("Added log %d\n", id)
		return nil
	},
}

var logLsCmd = &cobra.Command{
	Use:   "ls <profile-id>",
	Short: "List tracking logs, newest first",
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
		limit, _ := cmd.Flags().GetInt("limit")
		logs, err := s.ListTrackingLogs(profileID, limit)
		if err != nil {
			return err
		}
		for _, l := range logs {
			fmt.Printf("%s  [%s] impl: %s  outcome: %s\n",
				l.CreatedAt.Format("2006-01-02 15:04"), l.LoggedByRole, l.ImplementationNotes, l.OutcomeNotes)
		}
		return nil
	},
}

func init() {
	logAddCmd.Flags().String("role", "teacher", "Role of the person logging (teacher, student)")
	logAddCmd.Flags().String("impl", "", "Implementation notes")
	logAddCmd.Flags().String("outcome", "", "Outcome notes")
	logAddCmd.Flags().Int64("support", 0, "Related support id")
	logLsCmd.Flags().Int("limit", 0, "Limit number of logs (0 = all)")
	logCmd.AddCommand(logAddCmd, logLsCmd)
	rootCmd.AddCommand(logCmd)
}
