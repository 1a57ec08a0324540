package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show record store status",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		st, err := s.GetStatus()
		if err != nil {
			return err
		}
		fmt.Printf("Database: %s\n", st.DBPath)
		fmt.Printf("Profiles: %d\n", st.ProfileCount)
		fmt.Printf("Supports: %d\n", st.SupportCount)
		fmt.Printf("Logs:     %d\n", st.LogCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
