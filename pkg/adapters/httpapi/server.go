package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/csvfile"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/nextflow"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/tree"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxTableBytes caps the CSV payload size accepted by the API.
const maxTableBytes = 1 << 20

// Engine defines the slice of the Espalier facade the HTTP surface needs.
type Engine interface {
	BuildTreeFrom(ctx context.Context, rows []domain.Row) (*domain.Node, error)
	GenerateTree(ctx context.Context, name string, root *domain.Node) (*domain.Artifact, error)
	ValidateFrom(ctx context.Context, rows []domain.Row) error
	Registry() *nextflow.Registry
}

// Server exposes the engine and an artifact store over HTTP.
type Server struct {
	Engine Engine
	Store  ports.ArtifactStore

	metrics    *metrics
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
}

// Option configures the HTTP server.
type Option func(*Server)

// WithRegistry routes metrics through a dedicated Prometheus registry
// instead of the global default.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registerer = reg
		s.gatherer = reg
	}
}

// NewHandler creates a new HTTP handler for the engine and store.
func NewHandler(engine Engine, store ports.ArtifactStore, opts ...Option) http.Handler {
	server := &Server{
		Engine:     engine,
		Store:      store,
		registerer: prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(server)
	}
	server.metrics = newMetrics(server.registerer)

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/tree", server.RenderTree)
	r.Post("/generate", server.Generate)
	r.Post("/validate", server.Validate)
	r.Get("/artifacts", server.ListArtifacts)
	r.Get("/artifacts/{id}", server.GetArtifact)
	r.Delete("/artifacts/{id}", server.DeleteArtifact)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type treeRequest struct {
	CSV       string `json:"csv"`
	Attribute string `json:"attribute,omitempty"`
}

type generateRequest struct {
	CSV  string `json:"csv"`
	Name string `json:"name,omitempty"`
}

type validateRequest struct {
	CSV string `json:"csv"`
}

type treeNode struct {
	Name   string `json:"name"`
	Label  string `json:"label,omitempty"`
	Module string `json:"module,omitempty"`
	Parent string `json:"parent,omitempty"`
	Depth  int    `json:"depth"`
}

type treeResponse struct {
	Hierarchy string     `json:"hierarchy"`
	Nodes     []treeNode `json:"nodes"`
}

type validateResponse struct {
	Valid    bool   `json:"valid"`
	Problems string `json:"problems,omitempty"`
}

// decode reads a JSON request body into dst, bounding its size. It writes the
// error response itself and reports whether decoding succeeded.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxTableBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("Invalid request body", "error", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

// RenderTree handles the POST /tree request.
func (s *Server) RenderTree(w http.ResponseWriter, r *http.Request) {
	var body treeRequest
	if !s.decode(w, r, &body) {
		return
	}

	rows, err := csvfile.ReadRows(strings.NewReader(body.CSV), ',')
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid table: %v", err), http.StatusBadRequest)
		slog.Warn("RenderTree: Invalid table", "error", err)
		return
	}

	root, err := s.Engine.BuildTreeFrom(r.Context(), rows)
	if err != nil {
		http.Error(w, fmt.Sprintf("Build error: %v", err), http.StatusBadRequest)
		slog.Warn("RenderTree: Build failed", "error", err)
		return
	}

	attr := body.Attribute
	if attr == "" {
		attr = "label"
	}

	resp := treeResponse{
		Hierarchy: tree.RenderHierarchy(root, attr),
	}
	for node := range tree.LevelOrder(root) {
		parent := ""
		depth := 0
		for p := node.Parent; p != nil; p = p.Parent {
			depth++
		}
		if node.Parent != nil {
			parent = node.Parent.Name
		}
		resp.Nodes = append(resp.Nodes, treeNode{
			Name:   node.Name,
			Label:  node.Label,
			Module: node.Module,
			Parent: parent,
			Depth:  depth,
		})
	}

	writeJSON(w, resp)
}

// Generate handles the POST /generate request.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if !s.decode(w, r, &body) {
		return
	}

	start := time.Now()

	rows, err := csvfile.ReadRows(strings.NewReader(body.CSV), ',')
	if err != nil {
		s.metrics.generations.WithLabelValues("error").Inc()
		http.Error(w, fmt.Sprintf("Invalid table: %v", err), http.StatusBadRequest)
		slog.Warn("Generate: Invalid table", "error", err)
		return
	}

	root, err := s.Engine.BuildTreeFrom(r.Context(), rows)
	if err != nil {
		s.metrics.generations.WithLabelValues("error").Inc()
		http.Error(w, fmt.Sprintf("Build error: %v", err), http.StatusBadRequest)
		slog.Warn("Generate: Build failed", "error", err)
		return
	}

	artifact, err := s.Engine.GenerateTree(r.Context(), body.Name, root)
	if err != nil {
		s.metrics.generations.WithLabelValues("error").Inc()
		http.Error(w, fmt.Sprintf("Generate error: %v", err), http.StatusBadRequest)
		slog.Warn("Generate: Rendering failed", "error", err)
		return
	}

	if err := s.Store.Save(r.Context(), artifact); err != nil {
		s.metrics.generations.WithLabelValues("error").Inc()
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		slog.Error("Generate: Store failed", "error", err)
		return
	}

	nodes := 0
	for range tree.LevelOrder(root) {
		nodes++
	}
	s.metrics.generations.WithLabelValues("ok").Inc()
	s.metrics.duration.Observe(time.Since(start).Seconds())
	s.metrics.treeNodes.Observe(float64(nodes))

	writeJSON(w, artifact)
}

// Validate handles the POST /validate request. Validation findings are part
// of the response body, not transport errors.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body validateRequest
	if !s.decode(w, r, &body) {
		return
	}

	rows, err := csvfile.ReadRows(strings.NewReader(body.CSV), ',')
	if err != nil {
		writeJSON(w, validateResponse{Valid: false, Problems: err.Error()})
		return
	}

	if err := s.Engine.ValidateFrom(r.Context(), rows); err != nil {
		writeJSON(w, validateResponse{Valid: false, Problems: err.Error()})
		return
	}

	writeJSON(w, validateResponse{Valid: true})
}

// ListArtifacts handles the GET /artifacts request.
func (s *Server) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	artifacts, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		slog.Error("ListArtifacts failed", "error", err)
		return
	}

	writeJSON(w, artifacts)
}

// GetArtifact handles the GET /artifacts/{id} request.
func (s *Server) GetArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	artifact, err := s.Store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrArtifactNotFound) {
			http.Error(w, "Artifact not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		slog.Error("GetArtifact failed", "error", err)
		return
	}

	writeJSON(w, artifact)
}

// DeleteArtifact handles the DELETE /artifacts/{id} request.
func (s *Server) DeleteArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.Store.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		slog.Error("DeleteArtifact failed", "error", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"app":     "espalier-http",
		"version": strings.TrimSpace(espalier.Version),
		"modules": s.Engine.Registry().Names(),
	}
	writeJSON(w, resp)
}

func init() {
	// Configure default slog to output JSON to stderr
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
}
