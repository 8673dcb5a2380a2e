package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/testutil"
)

func testServer(t *testing.T, loaded bool) *Server {
	t.Helper()
	f := testutil.Fetcher(t, testutil.ShippedContent(t))
	h := &catalog.Holder{}
	if loaded {
		l := &catalog.Loader{
			Fetcher: f,
			Categories: []catalog.Category{
				{Name: "unity-projects", Title: "Unity Projects"},
				{Name: "blender-projects", Title: "3D Art", Platformless: true},
			},
			Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		}
		c, err := l.Load(context.Background())
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		h.Store(c)
	}
	return New(api.NewService(h, f, 9), "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" helper, so handlers are called
	// directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_categories":
		result, err = srv.listCategories(ctx, req)
	case "list_projects":
		result, err = srv.listProjects(ctx, req)
	case "get_project":
		result, err = srv.getProject(ctx, req)
	case "read_project_content":
		result, err = srv.readProjectContent(ctx, req)
	case "classify_media":
		result, err = srv.classifyMedia(ctx, req)
	case "parse_route":
		result, err = srv.parseRoute(ctx, req)
	case "get_descriptor_format":
		result, err = srv.getDescriptorFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestListCategories(t *testing.T) {
	srv := testServer(t, true)
	r := callTool(t, srv, "list_categories", map[string]any{})
	var out api.CategoryListResponse
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, resultText(r))
	}
	if len(out.Categories) != 2 || out.Categories[0].Projects != 2 {
		t.Errorf("categories = %+v", out.Categories)
	}
}

func TestListProjects(t *testing.T) {
	srv := testServer(t, true)
	r := callTool(t, srv, "list_projects", map[string]any{
		"category": "unity-projects",
		"sort":     "name-asc",
		"query":    "unity",
	})
	if r.IsError {
		t.Fatalf("error: %s", resultText(r))
	}
	var out api.ProjectPage
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Items) != 2 || out.Items[0].ID != "dolphin-trainer" || out.Items[1].ID != "forest-walk" {
		t.Errorf("items = %+v", out.Items)
	}

	// JSON numbers arrive as float64.
	r = callTool(t, srv, "list_projects", map[string]any{"category": "unity-projects", "year": float64(2023)})
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatal(err)
	}
	if out.Total != 1 || out.Items[0].ID != "forest-walk" {
		t.Errorf("year filter = %+v", out.Items)
	}
}

func TestListProjects_Errors(t *testing.T) {
	srv := testServer(t, true)
	if r := callTool(t, srv, "list_projects", map[string]any{}); !r.IsError {
		t.Error("missing category accepted")
	}
	if r := callTool(t, srv, "list_projects", map[string]any{"category": "unity-projects", "sort": "random"}); !r.IsError {
		t.Error("bad sort accepted")
	}
	if r := callTool(t, srv, "list_projects", map[string]any{"category": "nope"}); !r.IsError {
		t.Error("unknown category accepted")
	}
}

func TestGetProject(t *testing.T) {
	srv := testServer(t, true)
	r := callTool(t, srv, "get_project", map[string]any{"id": "ocean-study"})
	if !strings.Contains(resultText(r), `"title": "Ocean Study"`) {
		t.Errorf("project = %s", resultText(r))
	}
	if r := callTool(t, srv, "get_project", map[string]any{"id": "missing"}); !r.IsError {
		t.Error("expected error for missing project")
	}
}

func TestReadProjectContent(t *testing.T) {
	srv := testServer(t, true)
	r := callTool(t, srv, "read_project_content", map[string]any{"id": "dolphin-trainer"})
	if !strings.HasPrefix(resultText(r), "---\ntitle: Dolphin Trainer") {
		t.Errorf("markdown = %q", resultText(r))
	}

	r = callTool(t, srv, "read_project_content", map[string]any{"id": "dolphin-trainer", "format": "html"})
	if !strings.Contains(resultText(r), "<h1") || strings.Contains(resultText(r), "title: Dolphin") {
		t.Errorf("html = %q", resultText(r))
	}

	r = callTool(t, srv, "read_project_content", map[string]any{"id": "dolphin-trainer", "format": "pdf"})
	if !r.IsError {
		t.Error("unknown format accepted")
	}
}

func TestCatalogNotLoaded(t *testing.T) {
	srv := testServer(t, false)
	r := callTool(t, srv, "list_categories", map[string]any{})
	if !r.IsError || resultText(r) != "catalog not loaded" {
		t.Errorf("result = %q (error %v)", resultText(r), r.IsError)
	}
	// Stateless tools still answer.
	r = callTool(t, srv, "parse_route", map[string]any{"fragment": "#/project/x"})
	if !strings.Contains(resultText(r), `"projectId": "x"`) {
		t.Errorf("route = %s", resultText(r))
	}
}

func TestClassifyMedia(t *testing.T) {
	srv := testServer(t, false)
	r := callTool(t, srv, "classify_media", map[string]any{"url": "https://vimeo.com/76979871"})
	text := resultText(r)
	if !strings.Contains(text, `"type": "video"`) || !strings.Contains(text, "player.vimeo.com/video/76979871") {
		t.Errorf("media = %s", text)
	}
}

func TestDescriptorFormat(t *testing.T) {
	srv := testServer(t, false)
	r := callTool(t, srv, "get_descriptor_format", map[string]any{})
	if resultText(r) != DescriptorFormatContract {
		t.Error("tool and contract differ")
	}

	contents, err := srv.readDescriptorFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != DescriptorFormatURI || tc.Text != DescriptorFormatContract {
		t.Errorf("resource = %+v", contents[0])
	}
}
