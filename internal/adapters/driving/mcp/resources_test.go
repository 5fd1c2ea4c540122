package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRouteID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid route URI",
			uri:      "wayfinder://history/route-123",
			expected: "route-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://history/route-123",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "wayfinder://history/route-123/extra",
			expected: "",
		},
		{
			name:     "history list URI",
			uri:      "wayfinder://history",
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
			assert.Equal(t, tt.expected, extractRouteID(tt.uri))
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

func TestServer_handleHistoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists saved routes", func(t *testing.T) {
		server, _ := newTestServer(t, &mockRouteProvider{})
		_, saved, err := server.handleSaveRoute(ctx, nil, EndpointsInput{From: "Home", To: "Work"})
		require.NoError(t, err)

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("wayfinder://history"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var entries []historyEntry
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, saved.SavedID, entries[0].ID)
		assert.Equal(t, "Home → Work", entries[0].Summary)
		assert.Equal(t, "driving", entries[0].Profile)
		assert.Contains(t, entries[0].Link, testShareBase)
	})

	t.Run("without history returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Routes: &mockRouteProvider{}, Resolver: newMockResolver()})
		require.NoError(t, err)

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("wayfinder://history"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleSavedRouteResource(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t, &mockRouteProvider{})
	_, saved, err := server.handleSaveRoute(ctx, nil, EndpointsInput{From: "Home", To: "Work"})
	require.NoError(t, err)

	t.Run("returns the route", func(t *testing.T) {
		uri := "wayfinder://history/" + saved.SavedID
		result, err := server.handleSavedRouteResource(ctx, makeReadResourceRequest(uri))
		require.NoError(t, err)

		var entry historyEntry
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &entry))
		assert.Equal(t, saved.SavedID, entry.ID)
		assert.Equal(t, "Work", entry.Destination.Address)
		assert.Equal(t, uri, result.Contents[0].URI)
	})

	t.Run("unknown route is not found", func(t *testing.T) {
		_, err := server.handleSavedRouteResource(ctx, makeReadResourceRequest("wayfinder://history/missing"))
		assert.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		_, err := server.handleSavedRouteResource(ctx, makeReadResourceRequest("wayfinder://history/"))
		assert.Error(t, err)
	})

	t.Run("without history is not found", func(t *testing.T) {
		bare, err := NewServer(&Ports{Routes: &mockRouteProvider{}, Resolver: newMockResolver()})
		require.NoError(t, err)

		_, err = bare.handleSavedRouteResource(ctx, makeReadResourceRequest("wayfinder://history/x"))
		assert.Error(t, err)
	})
}
