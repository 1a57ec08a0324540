package main

import (
	"context"
	"fmt"

	"github.com/accesstwin/accesstwin-go/internal/hub"
	"github.com/accesstwin/accesstwin-go/internal/provider"
	"github.com/accesstwin/accesstwin-go/internal/settings"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available to the configured backend",
	Long: `For a local Ollama server this queries /api/tags; for the in-process GGUF
backend it lists the model cache. Cloud providers are not enumerated.`,
	RunE: runModels,
}

var pullCmd = &cobra.Command{
	Use:   "pull <spec>",
	Short: "Download a GGUF model into the cache",
	Long:  `Spec is "repo:file.gguf" or "org/repo/file.gguf" on Hugging Face.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := hub.ResolveModel(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd, pullCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	s, err := settings.Load()
	if err != nil {
		return err
	}
	switch s.Provider {
	case "ollama":
		client := provider.NewOllamaClient(s.BaseURL, s.Model)
		names, err := client.ListModels(context.Background())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
	case "gguf":
		cached, err := hub.ListCached()
		if err != nil {
			return err
		}
		if len(cached) == 0 {
			fmt.Println("model cache is empty; use 'accesstwin pull' to download one")
			return nil
		}
		for _, f := range cached {
			fmt.Println(f)
		}
	default:
		return fmt.Errorf("model listing not supported for provider %q", s.Provider)
	}
	return nil
}
