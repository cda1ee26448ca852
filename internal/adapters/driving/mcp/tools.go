package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// DriveInput names a single drive.
type DriveInput struct {
	DriveName string `json:"drive_name" jsonschema:"the drive to act on, as reported by detect_drives"`
}

// RepairInput is the input schema for the repair tool.
type RepairInput struct {
	DriveName string `json:"drive_name" jsonschema:"the drive to repair"`
	DryRun    *bool  `json:"dry_run,omitempty" jsonschema:"simulate the repair (default true)"`
}

// RecommendInput is the input schema for the recommend tool.
type RecommendInput struct {
	DriveName       string  `json:"driveName" jsonschema:"the drive the metrics belong to"`
	Temperature     float64 `json:"temperature" jsonschema:"drive temperature in degrees Celsius"`
	ReadErrorCount  int     `json:"readErrorCount" jsonschema:"number of read errors"`
	WriteErrorCount int     `json:"writeErrorCount" jsonschema:"number of write errors"`
	OverallHealth   float64 `json:"overallHealth" jsonschema:"overall health percentage between 0 and 100"`
	SmartStatus     string  `json:"smartStatus" jsonschema:"SMART status reported by the drive"`
}

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// ResultOutput is the output schema of every module-backed tool.
type ResultOutput struct {
	InvocationID string `json:"invocation_id"`
	ParseMode    string `json:"parse_mode"`
	Result       any    `json:"result"`
}

// RecommendOutput is the output schema for the recommend tool.
type RecommendOutput struct {
	Recommendation string `json:"recommendation"`
}

// registerTools registers all tool handlers with the MCP server.
// Clone and partition rewrite whole drives and are only reachable over HTTP
// and the CLI.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detect_drives",
		Description: "List the attached drives with their health records",
	}, s.handleDetect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_drive",
		Description: "Scan one drive for errors",
	}, s.handleScan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_health",
		Description: "Get the health record of one drive",
	}, s.handleHealth)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "repair_drive",
		Description: "Repair one drive. Runs as a dry run unless dry_run is false",
	}, s.handleRepair)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_logs",
		Description: "Read the drive manager's operation log",
	}, s.handleLogs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recommend",
		Description: "Recommend an action for a drive from its health metrics",
	}, s.handleRecommend)
}

func (s *Server) handleDetect(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	return resultOutput(s.ports.Drives.Detect(ctx))
}

func (s *Server) handleScan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DriveInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	return resultOutput(s.ports.Drives.Scan(ctx, input.DriveName))
}

func (s *Server) handleHealth(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DriveInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	return resultOutput(s.ports.Drives.Health(ctx, input.DriveName))
}

// handleRepair defaults to a dry run; a live repair must be asked for.
func (s *Server) handleRepair(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RepairInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	dryRun := true
	if input.DryRun != nil {
		dryRun = *input.DryRun
	}
	return resultOutput(s.ports.Drives.Repair(ctx, input.DriveName, dryRun))
}

func (s *Server) handleLogs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	return resultOutput(s.ports.Drives.Logs(ctx))
}

func (s *Server) handleRecommend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecommendInput,
) (*mcp.CallToolResult, RecommendOutput, error) {
	rec, err := s.ports.Drives.Recommend(ctx, domain.DriveRecord(input))
	if err != nil {
		return nil, RecommendOutput{}, err
	}
	return nil, RecommendOutput{Recommendation: rec.Text}, nil
}

// resultOutput decodes the normalised payload so it is embedded as JSON
// rather than as an escaped string.
func resultOutput(result *domain.InvocationResult, err error) (*mcp.CallToolResult, ResultOutput, error) {
	if err != nil {
		return nil, ResultOutput{}, err
	}

	var decoded any
	if err := result.Payload.Decode(&decoded); err != nil {
		return nil, ResultOutput{}, fmt.Errorf("decoding payload: %w", err)
	}

	return nil, ResultOutput{
		InvocationID: result.ID,
		ParseMode:    result.ParseMode.String(),
		Result:       decoded,
	}, nil
}
