package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/palettelab/color-agent/internal/models"
	"github.com/palettelab/color-agent/internal/parser"
	"github.com/palettelab/color-agent/internal/resolver"
)

// LookupInput is the MCP tool input schema for a single color lookup.
type LookupInput struct {
	Description string `json:"description" jsonschema:"free-form description of one color"`
}

// ResolveInput is the MCP tool input schema for multi-color resolution.
type ResolveInput struct {
	Text string `json:"text" jsonschema:"free-form text naming several colors, optionally grouped with 'Category:' labels"`
}

// SuggestInput is the MCP tool input schema for palette suggestion.
type SuggestInput struct {
	Query string `json:"query" jsonschema:"open-ended context to suggest colors for, e.g. a room, mood or theme"`
}

// NewLookupHandler returns a tool handler for single color lookups.
// Pass the returned function to mcp.AddTool.
func NewLookupHandler(res *resolver.Resolver) func(context.Context, *mcp.CallToolRequest, LookupInput) (*mcp.CallToolResult, models.ColorResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input LookupInput) (*mcp.CallToolResult, models.ColorResponse, error) {
		result, err := res.ResolveOne(ctx, models.ColorQuery{Phrase: input.Description})
		return nil, result, err
	}
}

// NewResolveHandler returns a tool handler that parses free text and
// resolves every color in it.
func NewResolveHandler(res *resolver.Resolver) func(context.Context, *mcp.CallToolRequest, ResolveInput) (*mcp.CallToolResult, models.BatchResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, models.BatchResponse, error) {
		queries := parser.Parse(input.Text)
		results := res.ResolveMany(ctx, queries)
		return nil, models.BatchResponse{Results: results}, nil
	}
}

// NewSuggestHandler returns a tool handler for palette suggestions.
func NewSuggestHandler(res *resolver.Resolver) func(context.Context, *mcp.CallToolRequest, SuggestInput) (*mcp.CallToolResult, models.BatchResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SuggestInput) (*mcp.CallToolResult, models.BatchResponse, error) {
		results, err := res.Suggest(ctx, input.Query)
		if err != nil {
			return nil, models.BatchResponse{}, err
		}
		return nil, models.BatchResponse{Results: results}, nil
	}
}
