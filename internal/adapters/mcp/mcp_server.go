// Package mcp exposes the cycle journal over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/jayPark21/Pomodoro-timer/internal/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName   = "pomodoro-journal"
	timeLayout   = "2006-01-02T15:04:05Z07:00"
	maxListLimit = 100
	defaultLimit = 10
)

// Server implements ports.MCPHandler using mark3labs/mcp-go.
// All tools are read-only; the running timer is never touched.
type Server struct {
	server  *server.MCPServer
	journal ports.JournalReader
	ctx     context.Context
	cancel  context.CancelFunc
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// NewServer creates an MCP server backed by journal.
func NewServer(journal ports.JournalReader, version string) *Server {
	s := &Server{journal: journal}
	s.server = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_cycle_stats",
			mcp.WithDescription("Summarize completed focus cycles for a period"),
			mcp.WithString(
				"period",
				mcp.Description("One of today, week, month, all (default: today)"),
				mcp.Enum(domain.Periods...),
			),
		),
		s.handleGetCycleStats,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_cycles",
			mcp.WithDescription("List the most recent completed focus cycles, newest first"),
			mcp.WithNumber(
				"limit",
				mcp.Description(fmt.Sprintf("How many cycles to return (1-%d, default %d)", maxListLimit, defaultLimit)),
			),
		),
		s.handleListCycles,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_cycle",
			mcp.WithDescription("Get one completed focus cycle by id"),
			mcp.WithString(
				"cycle_id",
				mcp.Required(),
				mcp.Description("The id of the cycle"),
			),
		),
		s.handleGetCycle,
	)
}

// Start serves MCP requests over stdio until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	return server.ServeStdio(s.server)
}

// Stop marks the server as stopped.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true between Start and Stop.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

func (s *Server) handleGetCycleStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period := request.GetString("period", "today")

	stats, err := s.journal.StatsForPeriod(ctx, period)
	if errors.Is(err, domain.ErrUnknownPeriod) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown period %q, use one of: %s", period, strings.Join(domain.Periods, ", "))), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	days := make([]string, 0, len(stats.ByDay))
	for day := range stats.ByDay {
		days = append(days, day)
	}
	sort.Strings(days)
	byDay := make([]map[string]any, 0, len(days))
	for _, day := range days {
		byDay = append(byDay, map[string]any{"date": day, "cycles": stats.ByDay[day]})
	}

	return jsonResult(map[string]any{
		"period":         period,
		"label":          stats.Label,
		"cycles":         stats.Cycles,
		"focus_minutes":  int(stats.FocusTime / time.Minute),
		"longest_streak": stats.LongestStreak,
		"by_day":         byDay,
	})
}

func (s *Server) handleListCycles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", defaultLimit)
	if limit < 1 || limit > maxListLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", maxListLimit)), nil
	}

	cycles, err := s.journal.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}

	list := make([]map[string]any, 0, len(cycles))
	for _, c := range cycles {
		list = append(list, cycleJSON(c))
	}
	return jsonResult(map[string]any{
		"cycles":      list,
		"total_count": len(list),
	})
}

func (s *Server) handleGetCycle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("cycle_id")
	if err != nil {
		return mcp.NewToolResultError("cycle_id is required: " + err.Error()), nil
	}

	cycle, err := s.journal.Get(ctx, id)
	if errors.Is(err, domain.ErrCycleNotFound) {
		return mcp.NewToolResultError("no cycle with id " + id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cycle: %w", err)
	}
	return jsonResult(cycleJSON(cycle))
}

func cycleJSON(c *domain.Cycle) map[string]any {
	out := map[string]any{
		"id":            c.ID,
		"number":        c.Number,
		"focus_minutes": c.FocusMinutes,
		"completed_at":  c.CompletedAt.Format(timeLayout),
	}
	if c.GitBranch != "" {
		out["git_branch"] = c.GitBranch
	}
	if c.GitCommit != "" {
		out["git_commit"] = c.GitCommit
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
