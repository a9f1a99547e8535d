// Package mcp exposes the generated cutoff summaries as MCP tools.
package mcp

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/tncutoffs/internal/config"
	"github.com/a3tai/tncutoffs/internal/summary"
)

// defaultQueryLimit caps how many summary records one query returns.
const defaultQueryLimit = 25

// Server represents the MCP server instance over the summary dataset
type Server struct {
	config    *config.Config
	records   []summary.Record
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, recs []summary.Record) (*Server, error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("no summary records to serve")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		records:   recs,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	queryTool := mcp.NewTool(
		"cutoffs_query",
		mcp.WithDescription("Query admission cutoff summaries by college, course, quota, round or category"),
		mcp.WithString("college",
			mcp.Description("Case-insensitive substring match on the college name"),
		),
		mcp.WithString("course",
			mcp.Description("Exact course name, e.g. MBBS or BDS"),
		),
		mcp.WithString("quota",
			mcp.Description("Quota label, e.g. 7.5%, GOVT, MGMT, EXSRVC, PWD, SPORTS"),
		),
		mcp.WithString("round",
			mcp.Description("Round label, e.g. Round1"),
		),
		mcp.WithString("category",
			mcp.Description("Seat category, e.g. Government Quota"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum records to return (default %d)", defaultQueryLimit)),
		),
	)
	s.mcpServer.AddTool(queryTool, s.handleQuery)

	collegesTool := mcp.NewTool(
		"cutoffs_list_colleges",
		mcp.WithDescription("List the distinct colleges present in the dataset"),
		mcp.WithString("course",
			mcp.Description("Restrict to colleges offering this course"),
		),
	)
	s.mcpServer.AddTool(collegesTool, s.handleListColleges)

	infoTool := mcp.NewTool(
		"cutoffs_server_info",
		mcp.WithDescription("Get dataset size, covered rounds and quotas, and usage guidance"),
	)
	s.mcpServer.AddTool(infoTool, s.handleServerInfo)
}

// Filter selects summary records. Empty fields match everything.
type Filter struct {
	College  string
	Course   string
	Quota    string
	Round    string
	Category string
}

// Query returns the records matching the filter, up to limit.
func (s *Server) Query(f Filter, limit int) []summary.Record {
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	var out []summary.Record
	for _, r := range s.records {
		if !matches(r, f) {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

func matches(r summary.Record, f Filter) bool {
	if f.College != "" && !strings.Contains(strings.ToLower(r.College), strings.ToLower(f.College)) {
		return false
	}
	if f.Course != "" && !strings.EqualFold(r.Course, f.Course) {
		return false
	}
	if f.Quota != "" && !strings.EqualFold(r.Quota, f.Quota) {
		return false
	}
	if f.Round != "" && !strings.EqualFold(r.Round, f.Round) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
		return false
	}
	return true
}

// Colleges returns the sorted distinct college names, optionally restricted
// to one course.
func (s *Server) Colleges(course string) []string {
	seen := make(map[string]bool)
	for _, r := range s.records {
		if course != "" && !strings.EqualFold(r.Course, course) {
			continue
		}
		if r.College != "" {
			seen[r.College] = true
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Handler functions

func (s *Server) handleQuery(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	f := Filter{}
	if v, ok := args["college"].(string); ok {
		f.College = v
	}
	if v, ok := args["course"].(string); ok {
		f.Course = v
	}
	if v, ok := args["quota"].(string); ok {
		f.Quota = v
	}
	if v, ok := args["round"].(string); ok {
		f.Round = v
	}
	if v, ok := args["category"].(string); ok {
		f.Category = v
	}
	limit := defaultQueryLimit
	if v, ok := args["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	recs := s.Query(f, limit)
	if len(recs) == 0 {
		return mcp.NewToolResultText("No summaries match the given filters."), nil
	}
	return mcp.NewToolResultText(s.formatRecords(recs)), nil
}

func (s *Server) handleListColleges(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	course := ""
	if v, ok := args["course"].(string); ok {
		course = v
	}

	colleges := s.Colleges(course)
	if len(colleges) == 0 {
		return mcp.NewToolResultText("No colleges found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d colleges:\n", len(colleges))
	for _, c := range colleges {
		fmt.Fprintf(&b, "  • %s\n", c)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rounds := make(map[string]bool)
	quotas := make(map[string]bool)
	for _, r := range s.records {
		rounds[r.Round] = true
		quotas[r.Quota] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s v%s\n\n", s.config.ServerName, s.config.Version)
	fmt.Fprintf(&b, "Summary records: %d\n", len(s.records))
	fmt.Fprintf(&b, "Rounds: %s\n", joinSorted(rounds))
	fmt.Fprintf(&b, "Quotas: %s\n", joinSorted(quotas))
	b.WriteString("\nUse 'cutoffs_query' to fetch rank/marks statistics per ")
	b.WriteString("(college, course, quota, community, category, round) combination, ")
	b.WriteString("and 'cutoffs_list_colleges' to discover college names.\n")
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) formatRecords(recs []summary.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d summaries:\n\n", len(recs))
	for _, r := range recs {
		fmt.Fprintf(&b, "🏥 %s\n", r.College)
		fmt.Fprintf(&b, "   Course: %s", r.Course)
		if r.CollegeType != "" {
			fmt.Fprintf(&b, " (%s)", r.CollegeType)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "   Quota: %s  Community: %s  Category: %s  %s/%d\n",
			r.Quota, r.Community, r.Category, r.Round, r.Year)
		fmt.Fprintf(&b, "   Rank: mean %.3f, std %.3f, min %.3f, max %.3f\n",
			r.RankMean, r.RankStd, r.RankMin, r.RankMax)
		fmt.Fprintf(&b, "   Marks: mean %.3f, std %.3f, min %.3f, max %.3f\n\n",
			r.MarksMean, r.MarksStd, r.MarksMin, r.MarksMax)
	}
	return b.String()
}

func joinSorted(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting cutoffs MCP server in stdio mode")
		log.Printf("Serving %d summary records", len(s.records))
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	sse := server.NewSSEServer(s.mcpServer)
	errCh := make(chan error, 1)
	go func() {
		errCh <- sse.Start(s.config.Address())
	}()

	select {
	case <-ctx.Done():
		return sse.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	}
}
