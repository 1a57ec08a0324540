package main

import (
	"fmt"

	"github.com/accesstwin/accesstwin-go/internal/settings"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Select and configure the AI backend",
	Long: `Persist the backend selection. Local backends: ollama, lmstudio, gguf.
Cloud backends: openai, anthropic (require an API key and both consent flags,
see 'accesstwin consent').`,
	RunE: runConfigure,
}

var consentCmd = &cobra.Command{
	Use:   "consent",
	Short: "Record cloud-consent acknowledgements",
	Long: `Cloud backends send the confidential context to an external service.
Generation is blocked until both the institutional policy acknowledgement and
the data-sharing acknowledgement are recorded.`,
	RunE: runConsent,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or clear the stored backend settings",
	RunE:  runSettingsShow,
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored settings file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return settings.Clear()
	},
}

func init() {
	configureCmd.Flags().String("kind", "", "Backend kind: local or cloud")
	configureCmd.Flags().String("provider", "", "Provider: ollama, lmstudio, gguf, openai, anthropic")
	configureCmd.Flags().String("model", "", "Model id or GGUF spec")
	configureCmd.Flags().String("base-url", "", "Server base URL (local servers)")
	configureCmd.Flags().String("api-key", "", "API key (cloud providers)")

	consentCmd.Flags().Bool("institutional", false, "Institutional policy permits cloud AI use")
	consentCmd.Flags().Bool("data", false, "Acknowledge student context is sent to the cloud provider")

	settingsCmd.AddCommand(settingsClearCmd)
	rootCmd.AddCommand(configureCmd, consentCmd, settingsCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	s, err := settings.Load()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("kind"); v != "" {
		s.Kind = v
	}
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		s.Provider = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		s.Model = v
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		s.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("api-key"); v != "" {
		s.APIKey = v
	}
	if err := settings.Save(s); err != nil {
		return err
	}
	fmt.Printf("Configured %s/%s (model %s)\n", s.Kind, s.Provider, s.Model)
	return nil
}

func runConsent(cmd *cobra.Command, args []string) error {
	s, err := settings.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("institutional") {
		s.ConsentInstitutional, _ = cmd.Flags().GetBool("institutional")
	}
	if cmd.Flags().Changed("data") {
		s.ConsentData, _ = cmd.Flags().GetBool("data")
	}
	if err := settings.Save(s); err != nil {
		return err
	}
	fmt.Printf("Consent: institutional=%t data=%t\n", s.ConsentInstitutional, s.ConsentData)
	return nil
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	s, err := settings.Load()
	if err != nil {
		return err
	}
	fmt.Printf("kind:      %s\n", s.Kind)
	fmt.Printf("provider:  %s\n", s.Provider)
	fmt.Printf("model:     %s\n", s.Model)
	if s.BaseURL != "" {
		fmt.Printf("base_url:  %s\n", s.BaseURL)
	}
	if s.APIKey != "" {
		fmt.Printf("api_key:   %s\n", maskKey(s.APIKey))
	}
	fmt.Printf("consent:   institutional=%t data=%t\n", s.ConsentInstitutional, s.ConsentData)
	return nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
