package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/accesstwin/accesstwin-go/internal/gateway"
	"github.com/accesstwin/accesstwin-go/internal/privacy"
	"github.com/accesstwin/accesstwin-go/internal/prompts"
	"github.com/accesstwin/accesstwin-go/internal/provider"
	"github.com/accesstwin/accesstwin-go/internal/store"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Consult the AI coach, streaming the response",
	Long: `Send one message, or start an interactive session when no message is given.
With --profile, the student's confidential context is attached to the system
prompt; the transcript itself is never persisted.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().Int64("profile", 0, "Attach a student profile's confidential context")
	chatCmd.Flags().String("system", "", "Override the coach system prompt")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	gw, _, err := loadGateway()
	if err != nil {
		return err
	}

	system, _ := cmd.Flags().GetString("system")
	if system == "" {
		system = prompts.Coach
	}
	if profileID, _ := cmd.Flags().GetInt64("profile"); profileID > 0 {
		fullContext, err := loadFullContext(profileID)
		if err != nil {
			return err
		}
		system = system + "\n\n" + fullContext
	}

	ctx := context.Background()
	if len(args) > 0 {
		_, err := writeStream(ctx, gw, strings.Join(args, " "), system, nil)
		return err
	}

	// Interactive session. History lives for the session only.
	var history []provider.Turn
	in := bufio.NewScanner(os.Stdin)
	fmt.Println("Type a message (empty line to quit).")
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return in.Err()
		}
		msg := strings.TrimSpace(in.Text())
		if msg == "" {
			return nil
		}
		reply, err := writeStream(ctx, gw, msg, system, history)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[error: %v]\n", err)
			continue
		}
		history = append(history,
			provider.Turn{Role: "user", Content: msg},
			provider.Turn{Role: "assistant", Content: reply})
	}
}

// loadFullContext aggregates a stored record and returns the AI-only context
// block. The safe view is discarded here; chat only needs the model side.
func loadFullContext(profileID int64) (string, error) {
	s, err := openStore()
	if err != nil {
		return "", err
	}
	defer s.Close()
	pr, err := s.GetProfile(profileID)
	if err != nil {
		return "", err
	}
	supports, err := s.ListSupports(profileID)
	if err != nil {
		return "", err
	}
	logs, err := s.ListTrackingLogs(profileID, 0)
	if err != nil {
		return "", err
	}
	_, fullContext := privacy.Aggregate(pr.Profile, store.Entries(supports), logs)
	return fullContext, nil
}

// writeStream prints fragments as they arrive and returns the accumulated
// reply. A trailing error fragment is returned after the partial output.
func writeStream(ctx context.Context, gw *gateway.Gateway, msg, system string, history []provider.Turn) (string, error) {
	var b strings.Builder
	for frag := range gw.Generate(ctx, msg, system, history) {
		if frag.Err != nil {
			fmt.Println()
			return b.String(), frag.Err
		}
		fmt.Print(frag.Text)
		b.WriteString(frag.Text)
	}
	fmt.Println()
	return b.String(), nil
}
