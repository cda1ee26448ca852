package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for drivegate resources.
	uriScheme = "drivegate://"

	// resourceHistoryLimit bounds the invocations resource.
	resourceHistoryLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "invocations",
		Name:        "invocations",
		Description: "Most recent module invocations, newest first",
		MIMEType:    "application/json",
	}, s.handleInvocationsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "drives/{driveName}/health",
		Name:        "drive-health",
		Description: "Health record of a specific drive",
		MIMEType:    "application/json",
	}, s.handleDriveHealthResource)
}

// handleInvocationsResource returns recent invocation history.
func (s *Server) handleInvocationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	records, err := s.ports.History.Recent(ctx, resourceHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("listing invocations: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling invocations: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

// handleDriveHealthResource runs the health module for the drive in the URI.
func (s *Server) handleDriveHealthResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	drive := extractDriveName(req.Params.URI)
	if drive == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Drives.Health(ctx, drive)
	if err != nil {
		return nil, fmt.Errorf("drive health: %w", err)
	}

	data, err := json.Marshal(result.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshalling health: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractDriveName extracts the drive from a URI like drivegate://drives/{driveName}/health.
func extractDriveName(uri string) string {
	const prefix = uriScheme + "drives/"
	const suffix = "/health"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
