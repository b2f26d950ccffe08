// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the zettel index to LLM clients via stdio transport. All tools
// are read-only; mutations go through the CLI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/query"
	"github.com/starford/othala/internal/vault"
	"github.com/starford/othala/internal/zettelservice"
)

// Server wraps the MCP server with index query tools.
type Server struct {
	mcp    *server.MCPServer
	vault  *vault.FS
	engine *query.Engine
}

// New creates an MCP server with all query tools registered.
func New(v *vault.FS, engine *query.Engine) *Server {
	s := &Server{vault: v, engine: engine}

	s.mcp = server.NewMCPServer(
		"Othala",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("find_zettel",
		mcp.WithDescription("Find zettels whose title matches an SQL LIKE pattern "+
			"('%' matches any run of characters, '_' a single character)."),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("Title pattern, e.g. 'Comp%'")),
	), s.findZettel)

	s.mcp.AddTool(mcp.NewTool("find_by_tag",
		mcp.WithDescription("Find zettels carrying exactly the given tag (whole-token match)."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag name without the leading '#'")),
	), s.findByTag)

	s.mcp.AddTool(mcp.NewTool("backlinks",
		mcp.WithDescription("Find all zettels that link to the given title."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Exact title to find inbound links for")),
	), s.backlinks)

	s.mcp.AddTool(mcp.NewTool("links",
		mcp.WithDescription("List the titles that zettels matching the title pattern link to."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title pattern of the linking zettel")),
	), s.links)

	s.mcp.AddTool(mcp.NewTool("search_text",
		mcp.WithDescription("Find zettels whose note contents match the text, case-insensitively."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text or regular expression to search for")),
	), s.searchText)

	s.mcp.AddTool(mcp.NewTool("ghosts",
		mcp.WithDescription("List titles that are linked to but have no zettel yet."),
	), s.ghosts)

	s.mcp.AddTool(mcp.NewTool("isolated",
		mcp.WithDescription("List zettels with no inbound and no outbound links."),
	), s.isolated)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag in use."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List every project in use."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("read_zettel",
		mcp.WithDescription("Read the raw content of a zettel's note file."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Exact title of the zettel")),
		mcp.WithString("project", mcp.Description("Project name; empty for the root project")),
	), s.readZettel)

	s.mcp.AddResource(
		mcp.NewResource("othala://note-format", "Note Format",
			mcp.WithResourceDescription("The link and tag syntax recognised by the indexer."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func zettelJSON(zs []models.Zettel) string {
	if len(zs) == 0 {
		return "no matches"
	}
	out, _ := json.MarshalIndent(zs, "", "  ")
	return string(out)
}

func (s *Server) findZettel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	zs, err := s.engine.FindByTitle(pattern)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(zettelJSON(zs)), nil
}

func (s *Server) findByTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	zs, err := s.engine.FindByTag(tag)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(zettelJSON(zs)), nil
}

func (s *Server) backlinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	zs, err := s.engine.Backlinks(title)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(zs) == 0 {
		return mcp.NewToolResultText("no backlinks found"), nil
	}
	return mcp.NewToolResultText(zettelJSON(zs)), nil
}

func (s *Server) links(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	links, err := s.engine.Links(title)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(links) == 0 {
		return mcp.NewToolResultText("no outbound links"), nil
	}
	return mcp.NewToolResultText(strings.Join(links, "\n")), nil
}

func (s *Server) searchText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	zs, err := s.engine.Search(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(zettelJSON(zs)), nil
}

func (s *Server) ghosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	titles, err := s.engine.Ghosts()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(titles) == 0 {
		return mcp.NewToolResultText("every linked title exists"), nil
	}
	return mcp.NewToolResultText(strings.Join(titles, "\n")), nil
}

func (s *Server) isolated(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	zs, err := s.engine.Isolated()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(zs) == 0 {
		return mcp.NewToolResultText("no isolated zettels"), nil
	}
	return mcp.NewToolResultText(zettelJSON(zs)), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.engine.ListTags()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(tags, "\n")), nil
}

func (s *Server) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.engine.ListProjects()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(projects, "\n")), nil
}

func (s *Server) readZettel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	project := ""
	if p, err := req.RequireString("project"); err == nil {
		project = p
	}

	rel := zettelservice.RelPath(models.Zettel{Title: title, Project: project})
	data, err := s.vault.Read(rel)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", rel)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) readNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "othala://note-format",
			MIMEType: "text/markdown",
			Text:     NoteFormat,
		},
	}, nil
}
