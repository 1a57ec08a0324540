package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test connectivity of the configured AI backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, s, err := loadGateway()
		if err != nil {
			return err
		}
		ok, msg := gw.Probe(context.Background())
		if !ok {
			return fmt.Errorf("%s/%s: %s", s.Kind, s.Provider, msg)
		}
		fmt.Printf("%s/%s: %s\n", s.Kind, s.Provider, msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
