package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

func TestExtractDriveName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid drive health URI",
			uri:      "drivegate://drives/sda/health",
			expected: "sda",
		},
		{
			name:     "invalid prefix",
			uri:      "file://drives/sda/health",
			expected: "",
		},
		{
			name:     "missing health suffix",
			uri:      "drivegate://drives/sda",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDriveName(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleInvocationsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil history returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Drives: &mockDriveService{}})
		require.NoError(t, err)

		result, err := server.handleInvocationsResource(ctx, makeReadResourceRequest("drivegate://invocations"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns records", func(t *testing.T) {
		history := &mockHistoryService{records: []domain.InvocationRecord{
			{ID: "inv-9", Capability: domain.CapabilityHealth, Module: domain.ModuleHealth, Success: true},
		}}
		server, err := NewServer(&Ports{Drives: &mockDriveService{}, History: history})
		require.NoError(t, err)

		result, err := server.handleInvocationsResource(ctx, makeReadResourceRequest("drivegate://invocations"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "inv-9")
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		history := &mockHistoryService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Drives: &mockDriveService{}, History: history})
		require.NoError(t, err)

		_, err = server.handleInvocationsResource(ctx, makeReadResourceRequest("drivegate://invocations"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing invocations")
	})
}

func TestServer_handleDriveHealthResource(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Drives: &mockDriveService{}})
		require.NoError(t, err)

		_, err = server.handleDriveHealthResource(ctx, makeReadResourceRequest("drivegate://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("returns health document", func(t *testing.T) {
		drives := &mockDriveService{result: &domain.InvocationResult{
			Payload: domain.DocumentPayload(json.RawMessage(`{"driveName":"sda","overallHealth":88}`)),
		}}
		server, err := NewServer(&Ports{Drives: drives})
		require.NoError(t, err)

		result, err := server.handleDriveHealthResource(ctx, makeReadResourceRequest("drivegate://drives/sda/health"))

		require.NoError(t, err)
		assert.Equal(t, "sda", drives.drive)
		require.Len(t, result.Contents, 1)
		assert.JSONEq(t, `{"driveName":"sda","overallHealth":88}`, result.Contents[0].Text)
	})

	t.Run("returns error on health failure", func(t *testing.T) {
		drives := &mockDriveService{err: domain.ErrEmptyOutput}
		server, err := NewServer(&Ports{Drives: drives})
		require.NoError(t, err)

		_, err = server.handleDriveHealthResource(ctx, makeReadResourceRequest("drivegate://drives/sda/health"))

		assert.ErrorIs(t, err, domain.ErrEmptyOutput)
	})
}
