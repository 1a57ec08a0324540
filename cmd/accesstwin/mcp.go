package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/accesstwin/accesstwin-go/internal/gateway"
	"github.com/accesstwin/accesstwin-go/internal/privacy"
	"github.com/accesstwin/accesstwin-go/internal/prompts"
	"github.com/accesstwin/accesstwin-go/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

const coachGuideTitle = "AccessTwin Coach Guide"
const coachGuideBody = `# AccessTwin

AccessTwin answers accessibility questions about students without exposing
their confidential records.

## Available Tools

### 1. safe_summary (Teacher-safe view)
Returns the coarse summary of a student profile: support category counts,
UDL/POUR principles, generalised strength and goal themes, rounded
effectiveness averages, first name only. Safe to show anyone.

### 2. consult (AI consultation)
Asks the configured AI backend a question. With a profileId, the student's
confidential context is attached server-side; the response follows the coach
privacy rules and only speaks in broad themes.

### 3. probe (Backend connectivity)
Checks that the configured AI backend is reachable.

### 4. list_profiles
Lists stored student profiles by id and name.

## Privacy model

The raw record never leaves this server. safe_summary output contains no
verbatim free text from the record; consult responses are generated under
strict privacy rules.`

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server (stdio)",
	Long:  "Start the Model Context Protocol server for AccessTwin. Exposes consultation and safe-summary tools over stdio.",
	RunE:  runMCPServer,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	gw, _, err := loadGateway()
	if err != nil {
		return err
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "accesstwin", Version: "1.0.0"}, nil)

	server.AddPrompt(&mcp.Prompt{
		Name:        "coach",
		Description: "How to consult AccessTwin about a student without exposing confidential data",
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: coachGuideTitle,
			Messages:    []*mcp.PromptMessage{{Role: "user", Content: &mcp.TextContent{Text: coachGuideBody}}},
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "safe_summary",
		Description: "Teacher-safe summary of a student profile: counts, themes, and controlled-vocabulary tags only.",
	}, safeSummaryTool(s))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "consult",
		Description: "Ask the AI coach a question, optionally grounded in a student profile's confidential context.",
	}, consultTool(s, gw))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "probe",
		Description: "Check connectivity of the configured AI backend.",
	}, probeTool(gw))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_profiles",
		Description: "List stored student profiles.",
	}, listProfilesTool(s))

	return server.Run(context.Background(), &mcp.StdioTransport{})
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: msg}}, IsError: true}
}

type safeSummaryArgs struct {
	ProfileID int64 `json:"profileId" jsonschema:"required,description=Student profile id"`
}

func safeSummaryTool(s *store.Store) func(context.Context, *mcp.CallToolRequest, safeSummaryArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args safeSummaryArgs) (*mcp.CallToolResult, any, error) {
		safe, err := safeView(s, args.ProfileID)
		if err != nil {
			return toolError("summary failed: " + err.Error()), nil, nil
		}
		text, err := json.MarshalIndent(safe, "", "  ")
		if err != nil {
			return toolError("summary failed: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
			StructuredContent: safe,
		}, nil, nil
	}
}

func safeView(s *store.Store, profileID int64) (*privacy.SafeView, error) {
	pr, err := s.GetProfile(profileID)
	if err != nil {
		return nil, err
	}
	supports, err := s.ListSupports(profileID)
	if err != nil {
		return nil, err
	}
	safe, _ := privacy.Aggregate(pr.Profile, store.Entries(supports), nil)
	return &safe, nil
}

type consultArgs struct {
	Question  string `json:"question" jsonschema:"required,description=The question for the AI coach"`
	ProfileID int64  `json:"profileId" jsonschema:"description=Optional student profile id to ground the consultation"`
}

func consultTool(s *store.Store, gw *gateway.Gateway) func(context.Context, *mcp.CallToolRequest, consultArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args consultArgs) (*mcp.CallToolResult, any, error) {
		system := prompts.Coach
		if args.ProfileID > 0 {
			pr, err := s.GetProfile(args.ProfileID)
			if err != nil {
				return toolError("consult failed: " + err.Error()), nil, nil
			}
			supports, err := s.ListSupports(args.ProfileID)
			if err != nil {
				return toolError("consult failed: " + err.Error()), nil, nil
			}
			logs, err := s.ListTrackingLogs(args.ProfileID, 0)
			if err != nil {
				return toolError("consult failed: " + err.Error()), nil, nil
			}
			_, fullContext := privacy.Aggregate(pr.Profile, store.Entries(supports), logs)
			system = system + "\n\n" + fullContext
		}

		var b strings.Builder
		for frag := range gw.Generate(ctx, args.Question, system, nil) {
			if frag.Err != nil {
				if b.Len() == 0 {
					return toolError("consult failed: " + frag.Err.Error()), nil, nil
				}
				b.WriteString("\n[error: " + frag.Err.Error() + "]")
				break
			}
			b.WriteString(frag.Text)
		}
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: b.String()}}}, nil, nil
	}
}

type probeArgs struct{}

func probeTool(gw *gateway.Gateway) func(context.Context, *mcp.CallToolRequest, probeArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args probeArgs) (*mcp.CallToolResult, any, error) {
		ok, msg := gw.Probe(ctx)
		if !ok {
			return toolError(msg), nil, nil
		}
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: msg}}}, nil, nil
	}
}

type listProfilesArgs struct{}

func listProfilesTool(s *store.Store) func(context.Context, *mcp.CallToolRequest, listProfilesArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args listProfilesArgs) (*mcp.CallToolResult, any, error) {
		profiles, err := s.ListProfiles()
		if err != nil {
			return toolError("list failed: " + err.Error()), nil, nil
		}
		var b strings.Builder
		structured := make([]map[string]any, 0, len(profiles))
		for _, p := range profiles {
			// Only id and first name; the full name stays inside the store.
			first, _ := privacy.Aggregate(privacy.Profile{Name: p.Profile.Name}, nil, nil)
			b.WriteString(strings.TrimSpace(first.FirstName))
			b.WriteString("\n")
			structured = append(structured, map[string]any{"id": p.ID, "firstName": first.FirstName})
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: b.String()}},
			StructuredContent: map[string]any{"profiles": structured},
		}, nil, nil
	}
}
