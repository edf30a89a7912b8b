package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"tasklog/internal/store"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server over stdio",
	Long: `Start a Model Context Protocol server exposing the task log to AI
assistants over stdin/stdout. Available tools:

- init_log: create the log and counter state files
- create_task: add a task under today's section
- complete_task: mark a task complete
- add_note: attach a note to a task
- search_tasks: search task titles and notes
- get_today_section: read today's section verbatim

The server runs until the client disconnects. All status output goes to
stderr; stdout carries only the protocol.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServer(ctx context.Context) error {
	s, err := GetStore()
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "tasklog",
		Version: version,
	}
	server := mcp.NewServer(impl, &mcp.ServerOptions{})
	registerMCPTools(server, s)

	fmt.Fprintf(os.Stderr, "tasklog MCP server listening on stdio (log: %s)\n", s.LogPath())
	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

func registerMCPTools(server *mcp.Server, s *store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "init_log",
		Description: "Initialize the task log: create the log file, counter state, and today's section",
	}, initLogHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_task",
		Description: "Create a new task under today's section with the next ID for its tag",
	}, createTaskHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task complete by ID (no-op if already complete)",
	}, completeTaskHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_note",
		Description: "Attach a note below a task by ID",
	}, addNoteHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_tasks",
		Description: "Case-insensitive substring search over task titles and notes, optionally filtered by tag",
	}, searchTasksHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_today_section",
		Description: "Return today's section of the log verbatim (empty if it does not exist)",
	}, todaySectionHandler(s))
}

type initLogParams struct{}

type initLogResponse struct {
	Success bool   `json:"success"`
	LogPath string `json:"logPath"`
}

type createTaskParams struct {
	Tag   string `json:"tag" jsonschema:"lowercase tag naming the task stream, e.g. dev"`
	Title string `json:"title" jsonschema:"single-line task title"`
}

type createTaskResponse struct {
	ID    string `json:"id"`
	Tag   string `json:"tag"`
	Title string `json:"title"`
}

type taskIDParams struct {
	ID string `json:"id" jsonschema:"task ID, e.g. dev-3"`
}

type taskOpResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type addNoteParams struct {
	ID   string `json:"id" jsonschema:"task ID, e.g. dev-3"`
	Text string `json:"text" jsonschema:"single-line note text"`
}

type searchTasksParams struct {
	Query string `json:"query" jsonschema:"substring to match against titles and notes"`
	Tag   string `json:"tag,omitempty" jsonschema:"optional tag filter"`
}

type searchTasksResponse struct {
	Matches []store.Match `json:"matches"`
	Count   int           `json:"count"`
}

type todaySectionParams struct{}

type todaySectionResponse struct {
	Section string `json:"section"`
}

// errorResult produces an IsError tool result so the client sees the
// failure as tool output rather than a protocol error.
func errorResult[T any](err error) *mcp.CallToolResultFor[T] {
	return &mcp.CallToolResultFor[T]{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}

func initLogHandler(s *store.Store) mcp.ToolHandlerFor[initLogParams, initLogResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[initLogParams]) (*mcp.CallToolResultFor[initLogResponse], error) {
		if err := s.Init(ctx); err != nil {
			return errorResult[initLogResponse](err), nil
		}
		return &mcp.CallToolResultFor[initLogResponse]{
			StructuredContent: initLogResponse{Success: true, LogPath: s.LogPath()},
			Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Initialized log at %s", s.LogPath())}},
		}, nil
	}
}

func createTaskHandler(s *store.Store) mcp.ToolHandlerFor[createTaskParams, createTaskResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[createTaskParams]) (*mcp.CallToolResultFor[createTaskResponse], error) {
		args := params.Arguments
		id, err := s.CreateTask(ctx, args.Tag, args.Title)
		if err != nil {
			return errorResult[createTaskResponse](err), nil
		}
		return &mcp.CallToolResultFor[createTaskResponse]{
			StructuredContent: createTaskResponse{ID: id, Tag: args.Tag, Title: args.Title},
			Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Created %s", id)}},
		}, nil
	}
}

func completeTaskHandler(s *store.Store) mcp.ToolHandlerFor[taskIDParams, taskOpResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[taskIDParams]) (*mcp.CallToolResultFor[taskOpResponse], error) {
		id := params.Arguments.ID
		if err := s.CompleteTask(ctx, id); err != nil {
			return errorResult[taskOpResponse](err), nil
		}
		return &mcp.CallToolResultFor[taskOpResponse]{
			StructuredContent: taskOpResponse{Success: true, ID: id},
			Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Completed %s", id)}},
		}, nil
	}
}

func addNoteHandler(s *store.Store) mcp.ToolHandlerFor[addNoteParams, taskOpResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[addNoteParams]) (*mcp.CallToolResultFor[taskOpResponse], error) {
		args := params.Arguments
		if err := s.AddNote(ctx, args.ID, args.Text); err != nil {
			return errorResult[taskOpResponse](err), nil
		}
		return &mcp.CallToolResultFor[taskOpResponse]{
			StructuredContent: taskOpResponse{Success: true, ID: args.ID},
			Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Noted on %s", args.ID)}},
		}, nil
	}
}

func searchTasksHandler(s *store.Store) mcp.ToolHandlerFor[searchTasksParams, searchTasksResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[searchTasksParams]) (*mcp.CallToolResultFor[searchTasksResponse], error) {
		args := params.Arguments
		matches, err := s.SearchTasks(args.Query, args.Tag)
		if err != nil {
			return errorResult[searchTasksResponse](err), nil
		}
		return &mcp.CallToolResultFor[searchTasksResponse]{
			StructuredContent: searchTasksResponse{Matches: matches, Count: len(matches)},
			Content:           []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Found %d matching tasks", len(matches))}},
		}, nil
	}
}

func todaySectionHandler(s *store.Store) mcp.ToolHandlerFor[todaySectionParams, todaySectionResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[todaySectionParams]) (*mcp.CallToolResultFor[todaySectionResponse], error) {
		text, err := s.TodaySection()
		if err != nil {
			return errorResult[todaySectionResponse](err), nil
		}
		summary := "Today's section is empty"
		if text != "" {
			summary = "Returned today's section"
		}
		return &mcp.CallToolResultFor[todaySectionResponse]{
			StructuredContent: todaySectionResponse{Section: text},
			Content:           []mcp.Content{&mcp.TextContent{Text: summary}},
		}, nil
	}
}
