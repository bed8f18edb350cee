package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/blueprint/internal/codegen"
	"github.com/gyaneshwarpardhi/blueprint/internal/config"
	"github.com/gyaneshwarpardhi/blueprint/internal/factory"
	"github.com/gyaneshwarpardhi/blueprint/internal/graph"
	"github.com/gyaneshwarpardhi/blueprint/internal/metrics"
	"github.com/gyaneshwarpardhi/blueprint/internal/service"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	compiler   *service.Compiler
	jobs       *service.Queue
	catalog    *factory.Catalog
	generators *codegen.Registry
	loader     *config.Loader
	mux        *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(compiler *service.Compiler, jobs *service.Queue, catalog *factory.Catalog, generators *codegen.Registry, loader *config.Loader) http.Handler {
	h := &Handler{
		compiler:   compiler,
		jobs:       jobs,
		catalog:    catalog,
		generators: generators,
		loader:     loader,
		mux:        http.NewServeMux(),
	}

	h.mux.HandleFunc("POST /v1/compile", h.compile)
	h.mux.HandleFunc("POST /v1/validate", h.validate)
	h.mux.HandleFunc("POST /v1/jobs", h.submitJob)
	h.mux.HandleFunc("GET /v1/jobs/{id}", h.getJob)
	h.mux.HandleFunc("GET /v1/kinds", h.listKinds)
	h.mux.HandleFunc("GET /v1/languages", h.listLanguages)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// readDocument reads the request body up to the configured size limit.
func (h *Handler) readDocument(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	limit := h.loader.Config().Codegen.MaxDocumentBytes
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("document exceeds %d bytes", limit))
		return nil, false
	}
	return data, true
}

func (h *Handler) language(r *http.Request) string {
	if lang := r.URL.Query().Get("language"); lang != "" {
		return lang
	}
	return h.loader.Config().Codegen.DefaultLanguage
}

// POST /v1/compile — synchronous document-to-source compile.
func (h *Handler) compile(w http.ResponseWriter, r *http.Request) {
	document, ok := h.readDocument(w, r)
	if !ok {
		return
	}

	res, err := h.compiler.Compile(r.Context(), document, h.language(r))
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:      "graph failed validation",
				Violations: violations(verr.Violations),
			})
			return
		}
		if code := graph.CodeOf(err); code != 0 {
			writeCodedError(w, http.StatusBadRequest, code, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /v1/validate — full validation report without generating code.
func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	document, ok := h.readDocument(w, r)
	if !ok {
		return
	}

	result, err := h.compiler.Validate(document)
	if err != nil {
		if code := graph.CodeOf(err); code != 0 {
			writeCodedError(w, http.StatusBadRequest, code, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  result.IsValid(),
		"errors": violations(result.Errors),
	})
}

// POST /v1/jobs — async compile submission.
func (h *Handler) submitJob(w http.ResponseWriter, r *http.Request) {
	document, ok := h.readDocument(w, r)
	if !ok {
		return
	}

	id, accepted := h.jobs.Submit(document, h.language(r))
	if !accepted {
		writeError(w, http.StatusTooManyRequests, "compile queue full")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": id,
		"state":  service.JobQueued,
	})
}

// GET /v1/jobs/{id} — job status and result.
func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	job, ok := h.jobs.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "no such job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type kindResponse struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Ports       []portResponse `json:"ports"`
}

type portResponse struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Kind      string `json:"kind"`
	TypeName  string `json:"type_name,omitempty"`
}

// GET /v1/kinds — the registered node kind catalog.
func (h *Handler) listKinds(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Kinds()
	kinds := make([]kindResponse, 0, len(names))
	for _, name := range names {
		spec, err := h.catalog.Get(name)
		if err != nil {
			continue
		}
		kr := kindResponse{
			Name:        spec.Name,
			DisplayName: spec.DisplayName,
			Description: spec.Description,
			Category:    spec.Category,
			Ports:       make([]portResponse, 0, len(spec.Ports)),
		}
		for _, p := range spec.Ports {
			kr.Ports = append(kr.Ports, portResponse{
				Name:      p.Name,
				Direction: p.Direction.String(),
				Kind:      p.Kind.String(),
				TypeName:  p.TypeName,
			})
		}
		kinds = append(kinds, kr)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"kinds": kinds})
}

// GET /v1/languages — registered code generators.
func (h *Handler) listLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"languages": h.generators.Languages(),
		"default":   h.loader.Config().Codegen.DefaultLanguage,
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 if the compile job queue is >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.jobs.Utilization()
	metrics.QueueUtilization.Set(util)
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ready",
		"queue_utilization": util,
	})
}

func violations(errs []*graph.Error) []violation {
	out := make([]violation, 0, len(errs))
	for _, e := range errs {
		out = append(out, violation{Code: e.Code, Message: e.Message})
	}
	return out
}
