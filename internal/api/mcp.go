package api

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/somesh-bagadiya/sb-omnicore/internal/dispatch"
)

// NewMCPServer creates an MCP server exposing the portfolio resources,
// prompt, and tools over the mcp-go transport. All behavior lives in the
// dispatcher; this layer only translates wire shapes.
func NewMCPServer(d *dispatch.Dispatcher) *server.MCPServer {
	s := server.NewMCPServer(
		dispatch.ServerName,
		dispatch.ServerVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(false),
		server.WithInstructions(dispatch.ServerDescription),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("get_profile",
			mcp.WithDescription("Return Somesh Bagadiya's complete professional profile object"),
		),
		mcpTool(d, "get_profile"),
	)

	s.AddTool(
		mcp.NewTool("list_projects",
			mcp.WithDescription("Return project array with optional filters by category, technology, or featured status; each project carries its content tier"),
			mcp.WithString("category", mcp.Description("Filter by project category"), mcp.Enum(dispatch.CategoryEnum...)),
			mcp.WithString("technology", mcp.Description("Filter by technology used")),
			mcp.WithBoolean("featured", mcp.Description("Filter by featured status")),
		),
		mcpTool(d, "list_projects"),
	)

	s.AddTool(
		mcp.NewTool("get_project_details",
			mcp.WithDescription("Return single project details by ID, including parsed content sections. Use list_projects to discover valid ids."),
			mcp.WithString("id", mcp.Description("Project ID to retrieve"), mcp.Required()),
		),
		mcpTool(d, "get_project_details"),
	)

	s.AddTool(
		mcp.NewTool("list_experiences",
			mcp.WithDescription("Return work experience list with optional filters"),
			mcp.WithNumber("sinceYear", mcp.Description("Filter experiences starting from this year")),
			mcp.WithString("company", mcp.Description("Filter by company name")),
			mcp.WithString("skill", mcp.Description("Filter by skill used")),
		),
		mcpTool(d, "list_experiences"),
	)

	s.AddTool(
		mcp.NewTool("list_education",
			mcp.WithDescription("Return education list with optional filters"),
			mcp.WithString("degreeType", mcp.Description("Filter by degree type (e.g., 'Master', 'Bachelor')")),
			mcp.WithString("institution", mcp.Description("Filter by institution name")),
		),
		mcpTool(d, "list_education"),
	)

	// Resources
	for _, r := range d.ListResources() {
		s.AddResource(
			mcp.NewResource(
				r.URI,
				r.Name,
				mcp.WithResourceDescription(r.Description),
				mcp.WithMIMEType(r.MIMEType),
			),
			mcpResource(d),
		)
	}

	// Prompts
	for _, p := range d.ListPrompts() {
		p := p
		s.AddPrompt(
			mcp.NewPrompt(p.Name, mcp.WithPromptDescription(p.Description)),
			mcpPrompt(d, p.Name),
		)
	}

	return s
}

func mcpTool(d *dispatch.Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := d.CallTool(ctx, name, req.GetArguments())

		content := make([]mcp.Content, len(result.Content))
		for i, c := range result.Content {
			content[i] = mcp.TextContent{Type: "text", Text: c.Text}
		}
		return &mcp.CallToolResult{Content: content, IsError: result.IsError}, nil
	}
}

func mcpResource(d *dispatch.Dispatcher) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		contents, err := d.ReadResource(ctx, req.Params.URI)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      contents.URI,
				MIMEType: contents.MIMEType,
				Text:     contents.Text,
			},
		}, nil
	}
}

func mcpPrompt(d *dispatch.Dispatcher, name string) server.PromptHandlerFunc {
	return func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		prompt, err := d.GetPrompt(name)
		if err != nil {
			return nil, err
		}

		messages := make([]mcp.PromptMessage, len(prompt.Messages))
		for i, m := range prompt.Messages {
			messages[i] = mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(m.Content.Text))
		}
		return mcp.NewGetPromptResult(prompt.Description, messages), nil
	}
}
