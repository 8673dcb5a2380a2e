// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes read-only folio catalog tools for LLM integration via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/gallery"
)

// DescriptorFormatURI names the content format resource.
const DescriptorFormatURI = "folio://descriptor-format"

// Server wraps the MCP server with folio tools.
type Server struct {
	mcp *server.MCPServer
	svc *api.Service
}

// New creates a new MCP server with all folio tools registered.
func New(svc *api.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Folio",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the portfolio categories with their project counts."),
	), s.listCategories)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("Filter, sort and paginate the projects of one category, "+
			"exactly as the gallery page does."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Category name, e.g. unity-projects")),
		mcp.WithNumber("year", mcp.Description("Only projects whose end date falls in this year")),
		mcp.WithString("platform", mcp.Description("Exact platform name (case-sensitive)")),
		mcp.WithString("sort", mcp.Description("date-desc (default), date-asc, name-asc or name-desc")),
		mcp.WithString("query", mcp.Description("Case-insensitive search over title and tech stack")),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Return one project descriptor as JSON."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project id")),
	), s.getProject)

	s.mcp.AddTool(mcp.NewTool("read_project_content",
		mcp.WithDescription("Read a project's long-form description."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Project id")),
		mcp.WithString("format", mcp.Description("markdown (default) or html")),
	), s.readProjectContent)

	s.mcp.AddTool(mcp.NewTool("classify_media",
		mcp.WithDescription("Classify a media URL as image, gif or video and derive its embed URL."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Media URL")),
	), s.classifyMedia)

	s.mcp.AddTool(mcp.NewTool("parse_route",
		mcp.WithDescription("Parse a location fragment such as #/project/<id> into a route."),
		mcp.WithString("fragment", mcp.Required(), mcp.Description("Location fragment")),
	), s.parseRoute)

	s.mcp.AddTool(mcp.NewTool("get_descriptor_format",
		mcp.WithDescription("Returns the content layout and project descriptor format. "+
			"Read it before interpreting or drafting descriptors."),
	), s.getDescriptorFormat)

	// Resource: descriptor format contract.
	s.mcp.AddResource(
		mcp.NewResource(DescriptorFormatURI, "Descriptor Format",
			mcp.WithResourceDescription("Layout of the content tree and the project descriptor schema."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDescriptorFormatResource,
	)

	return s
}

// Serve speaks MCP over in and out until ctx is done or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func errorResult(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, apperr.ErrNoCatalog):
		return mcp.NewToolResultError("catalog not loaded")
	default:
		return mcp.NewToolResultError(err.Error())
	}
}

func (s *Server) listCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.svc.Categories()
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(out), nil
}

func (s *Server) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	v := url.Values{}
	if y := req.GetInt("year", 0); y != 0 {
		v.Set("year", strconv.Itoa(y))
	}
	if p := req.GetInt("page", 0); p != 0 {
		v.Set("page", strconv.Itoa(p))
	}
	v.Set("platform", req.GetString("platform", ""))
	v.Set("sort", req.GetString("sort", ""))
	v.Set("q", req.GetString("query", ""))

	st, err := gallery.ParseState(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.svc.Projects(category, st)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(out), nil
}

func (s *Server) getProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.svc.Project(id)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(p), nil
}

func (s *Server) readProjectContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	switch req.GetString("format", "markdown") {
	case "markdown":
		data, err := s.svc.Readme(ctx, id)
		if err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	case "html":
		out, err := s.svc.Content(ctx, id)
		if err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(out.HTML), nil
	default:
		return mcp.NewToolResultError("format must be markdown or html"), nil
	}
}

func (s *Server) classifyMedia(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(api.Media(raw)), nil
}

func (s *Server) parseRoute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fragment, err := req.RequireString("fragment")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(api.Route(fragment)), nil
}

func (s *Server) getDescriptorFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DescriptorFormatContract), nil
}

func (s *Server) readDescriptorFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DescriptorFormatURI,
			MIMEType: "text/markdown",
			Text:     DescriptorFormatContract,
		},
	}, nil
}
