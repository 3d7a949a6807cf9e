// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes hirelens collections and mock analyses via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/hirelens/internal/analysis"
	"github.com/starford/hirelens/internal/catalog"
	"github.com/starford/hirelens/internal/filter"
	"github.com/starford/hirelens/internal/intake"
)

const shapesURI = "hirelens://analysis-shapes"

// Server wraps the MCP server with hirelens tools.
type Server struct {
	mcp       *server.MCPServer
	catalog   *catalog.Catalog
	generator *analysis.Generator
	inspector *intake.Inspector
}

// New creates a new MCP server with all hirelens tools registered.
func New(c *catalog.Catalog, g *analysis.Generator, in *intake.Inspector) *Server {
	s := &Server{catalog: c, generator: g, inspector: in}

	s.mcp = server.NewMCPServer(
		"Hirelens",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_collections",
		mcp.WithDescription("List the served collections and the facet parameters each accepts."),
	), s.listCollections)

	s.mcp.AddTool(mcp.NewTool("search_collection",
		mcp.WithDescription("Fetch a collection and filter it by case-insensitive search text "+
			"and at most one facet value. Items keep their source order."),
		mcp.WithString("collection", mcp.Required(), mcp.Description("Collection name (see list_collections)")),
		mcp.WithString("query", mcp.Description("Search text; empty matches everything")),
		mcp.WithString("facet", mcp.Description("Facet parameter, e.g. expertise or level")),
		mcp.WithString("value", mcp.Description("Facet value to match")),
	), s.searchCollection)

	s.mcp.AddTool(mcp.NewTool("get_record",
		mcp.WithDescription("Get one record of a collection by its _id."),
		mcp.WithString("collection", mcp.Required(), mcp.Description("Collection name")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record _id")),
	), s.getRecord)

	s.mcp.AddTool(mcp.NewTool("mock_resume_analysis",
		mcp.WithDescription("Generate a mock resume analysis immediately. Scores are random "+
			"draws; read "+shapesURI+" for the ranges. An optional document (data URI or "+
			"http(s) URL of a PDF or DOCX) only adds page or word counts to the echoed file."),
		mcp.WithString("file_name", mcp.Required(), mcp.Description("Resume file name, e.g. jane-doe.pdf")),
		mcp.WithString("job_description", mcp.Description("Optional job description")),
		mcp.WithString("document", mcp.Description("Optional data URI or http(s) URL of the resume")),
	), s.mockResumeAnalysis)

	s.mcp.AddTool(mcp.NewTool("get_analysis_shapes",
		mcp.WithDescription("Returns the generated analysis shapes and the ranges of every score."),
	), s.getAnalysisShapes)

	// Resource: analysis shapes.
	s.mcp.AddResource(
		mcp.NewResource(shapesURI, "Analysis Shapes",
			mcp.WithResourceDescription("Shapes and value ranges of the mock analyses."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readShapesResource,
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

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func optionalString(req mcp.CallToolRequest, key string) string {
	if v, err := req.RequireString(key); err == nil {
		return v
	}
	return ""
}

type collectionInfo struct {
	Name   string   `json:"name"`
	Facets []string `json:"facets"`
}

func (s *Server) listCollections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []collectionInfo
	for _, name := range s.catalog.Collections() {
		facets, err := s.catalog.FacetParams(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if facets == nil {
			facets = []string{}
		}
		out = append(out, collectionInfo{Name: name, Facets: facets})
	}
	return jsonResult(out), nil
}

func (s *Server) searchCollection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, err := req.RequireString("collection")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	q := filter.Query{Search: optionalString(req, "query")}
	if facet := optionalString(req, "facet"); facet != "" {
		q.Facets = map[string]string{facet: optionalString(req, "value")}
	}

	listing, err := s.catalog.List(ctx, collection, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(listing), nil
}

func (s *Server) getRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, err := req.RequireString("collection")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.catalog.Get(ctx, collection, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rec), nil
}

func (s *Server) mockResumeAnalysis(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("file_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	file := intake.Document{Name: name}
	if ref := optionalString(req, "document"); ref != "" {
		doc, err := loadDocument(ctx, ref, s.inspector.MaxBytes())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		file, err = s.inspector.Inspect(name, doc.contentType, doc.data)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	} else if !intake.Accepts(fileType(name)) {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported file type: %s (PDF or Word documents only)", name)), nil
	}

	res, err := s.generator.Generate(analysis.KindResume, analysis.Input{
		Files:          []intake.Document{file},
		JobDescription: optionalString(req, "job_description"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res), nil
}

// fileType guesses the MIME type of a bare file name.
func fileType(name string) string {
	for mime, ext := range mimeToExt {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return mime
		}
	}
	return ""
}

func (s *Server) getAnalysisShapes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(AnalysisShapes), nil
}

func (s *Server) readShapesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      shapesURI,
			MIMEType: "text/markdown",
			Text:     AnalysisShapes,
		},
	}, nil
}
