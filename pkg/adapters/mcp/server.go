package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/csvfile"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/nextflow"
	"github.com/aretw0/espalier/pkg/tree"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// maxTableBytes caps the CSV payload size accepted over MCP.
const maxTableBytes = 1 << 20

// GenerateResponse aligns with the HTTP adapter and provides a unified
// structure across adapters.
type GenerateResponse struct {
	Artifact *domain.Artifact `json:"artifact" jsonschema_description:"The generated pipeline artifact"`
}

// TreeResponse carries a rendered process hierarchy.
type TreeResponse struct {
	Hierarchy string `json:"hierarchy" jsonschema_description:"Ascii rendering of the process tree"`
	Nodes     int    `json:"nodes" jsonschema_description:"Number of processes in the tree"`
}

// ValidateResponse reports table validation findings.
type ValidateResponse struct {
	Valid    bool   `json:"valid" jsonschema_description:"Whether the table passed validation"`
	Problems string `json:"problems,omitempty" jsonschema_description:"Aggregated validation problems, empty when valid"`
}

// Engine defines the interface required by the MCP server to interact with Espalier.
type Engine interface {
	BuildTreeFrom(ctx context.Context, rows []domain.Row) (*domain.Node, error)
	GenerateTree(ctx context.Context, name string, root *domain.Node) (*domain.Artifact, error)
	ValidateFrom(ctx context.Context, rows []domain.Row) error
	Registry() *nextflow.Registry
}

// Server wraps the Espalier Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("espalier-mcp", strings.TrimSpace(espalier.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	// Start the SSE server
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Baggage, Sentry-Trace")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: generate_pipeline
	generateTool := mcp.NewTool("generate_pipeline",
		mcp.WithDescription("Generate a Nextflow pipeline from a CSV process table."),
		mcp.WithString("csv", mcp.Required(), mcp.Description("CSV process table content (process,label,module,params header)")),
		mcp.WithString("name", mcp.Description("Workflow name used for the artifact and file names (optional)")),
		mcp.WithOutputSchema[GenerateResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGeneratePipeline))

	// TOOL: render_tree
	renderTool := mcp.NewTool("render_tree",
		mcp.WithDescription("Render the process tree of a CSV table as an ascii hierarchy."),
		mcp.WithString("csv", mcp.Required(), mcp.Description("CSV process table content")),
		mcp.WithString("attribute", mcp.Description("Node attribute to display: name, label, module, params or a parameter key (default label)")),
		mcp.WithOutputSchema[TreeResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRenderTree))

	// TOOL: validate_rows
	validateTool := mcp.NewTool("validate_rows",
		mcp.WithDescription("Validate a CSV process table without generating anything. Findings land in the result, not in the error channel."),
		mcp.WithString("csv", mcp.Required(), mcp.Description("CSV process table content")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidateRows))

	// TOOL: get_modules
	s.mcpServer.AddTool(mcp.NewTool("get_modules",
		mcp.WithDescription("Get the registered module templates for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.moduleInfos())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleGeneratePipeline(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GenerateResponse, error) {
	csv, _ := args["csv"].(string)
	name, _ := args["name"].(string)

	rows, err := parseTable(csv)
	if err != nil {
		slog.Warn("MCP Generate: Table rejected", "error", err, "size", len(csv))
		return GenerateResponse{}, fmt.Errorf("table rejected: %w", err)
	}

	root, err := s.engine.BuildTreeFrom(ctx, rows)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("build failed: %w", err)
	}

	artifact, err := s.engine.GenerateTree(ctx, name, root)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("generate failed: %w", err)
	}

	return GenerateResponse{Artifact: artifact}, nil
}

func (s *Server) handleRenderTree(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TreeResponse, error) {
	csv, _ := args["csv"].(string)
	attribute, _ := args["attribute"].(string)
	if attribute == "" {
		attribute = "label"
	}

	rows, err := parseTable(csv)
	if err != nil {
		slog.Warn("MCP RenderTree: Table rejected", "error", err, "size", len(csv))
		return TreeResponse{}, fmt.Errorf("table rejected: %w", err)
	}

	root, err := s.engine.BuildTreeFrom(ctx, rows)
	if err != nil {
		return TreeResponse{}, fmt.Errorf("build failed: %w", err)
	}

	count := 0
	for range tree.LevelOrder(root) {
		count++
	}

	return TreeResponse{
		Hierarchy: tree.RenderHierarchy(root, attribute),
		Nodes:     count,
	}, nil
}

func (s *Server) handleValidateRows(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	csv, _ := args["csv"].(string)

	rows, err := parseTable(csv)
	if err != nil {
		return ValidateResponse{Valid: false, Problems: err.Error()}, nil
	}

	if err := s.engine.ValidateFrom(ctx, rows); err != nil {
		return ValidateResponse{Valid: false, Problems: err.Error()}, nil
	}

	return ValidateResponse{Valid: true}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: espalier://modules
	s.mcpServer.AddResource(mcp.NewResource("espalier://modules", "Registered Module Templates",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.moduleInfos())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal modules: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "espalier://modules",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

type moduleInfo struct {
	Name     string   `json:"name"`
	Requires []string `json:"requires,omitempty"`
}

func (s *Server) moduleInfos() []moduleInfo {
	registry := s.engine.Registry()
	names := registry.Names()
	infos := make([]moduleInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, moduleInfo{Name: name, Requires: registry.Requires(name)})
	}
	return infos
}

func parseTable(csv string) ([]domain.Row, error) {
	if len(csv) > maxTableBytes {
		return nil, fmt.Errorf("table too large: %d bytes (max %d)", len(csv), maxTableBytes)
	}
	return csvfile.ReadRows(strings.NewReader(csv), ',')
}
