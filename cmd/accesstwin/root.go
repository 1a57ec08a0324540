package main

import (
	"fmt"
	"os"

	"github.com/accesstwin/accesstwin-go/internal/gateway"
	"github.com/accesstwin/accesstwin-go/internal/settings"
	"github.com/accesstwin/accesstwin-go/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "accesstwin",
	Short: "Privacy-preserving AI consultation gateway",
	Long: `AccessTwin manages digital accessibility twins for students and consults
local or cloud AI backends about them. Raw records never reach the teacher
surface or the model unfiltered: the aggregator splits every record into a
coarse safe view and a confidential AI-only context.`,
}

func getDBPath() string {
	path, _ := rootCmd.PersistentFlags().GetString("db")
	return path
}

func openStore() (*store.Store, error) {
	return store.NewStore(getDBPath())
}

// loadGateway builds a gateway from the persisted settings.
func loadGateway() (*gateway.Gateway, *settings.Settings, error) {
	s, err := settings.Load()
	if err != nil {
		return nil, nil, err
	}
	gw := gateway.New()
	err = gw.Configure(gateway.Config{
		Kind:                 gateway.Kind(s.Kind),
		Provider:             gateway.Provider(s.Provider),
		Model:                s.Model,
		BaseURL:              s.BaseURL,
		APIKey:               s.APIKey,
		ConsentInstitutional: s.ConsentInstitutional,
		ConsentData:          s.ConsentData,
	})
	if err != nil {
		return nil, nil, err
	}
	return gw, s, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Records database path (default: ~/.local/share/accesstwin/records.sqlite)")
}
