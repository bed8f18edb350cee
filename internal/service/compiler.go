// Package service wires the core packages into the pipeline the API serves:
// restore a document, validate the graph, generate source.
package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/gyaneshwarpardhi/blueprint/internal/codegen"
	"github.com/gyaneshwarpardhi/blueprint/internal/graph"
	"github.com/gyaneshwarpardhi/blueprint/internal/metrics"
	"github.com/gyaneshwarpardhi/blueprint/internal/serialize"
)

// Result is the outcome of one successful compile.
type Result struct {
	JobID       string `json:"job_id"`
	Language    string `json:"language"`
	Source      string `json:"source"`
	Nodes       int    `json:"nodes"`
	Connections int    `json:"connections"`
	DurationMs  int64  `json:"duration_ms"`
}

// ValidationError carries every violation found in a structurally restorable
// but unsound graph.
type ValidationError struct {
	Violations []*graph.Error
}

func (e *ValidationError) Error() string {
	errs := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		errs[i] = v
	}
	return multierr.Combine(errs...).Error()
}

// Compiler runs the document-to-source pipeline.
type Compiler struct {
	serializer *serialize.Serializer
	generators *codegen.Registry
}

// NewCompiler creates a compiler over the given serializer and generators.
func NewCompiler(s *serialize.Serializer, g *codegen.Registry) *Compiler {
	return &Compiler{serializer: s, generators: g}
}

// Restore parses and restores a document, recording the outcome.
func (c *Compiler) Restore(document []byte) (*graph.Graph, error) {
	g, err := c.serializer.Unmarshal(document)
	if err != nil {
		metrics.DocumentsRejected.WithLabelValues(strconv.Itoa(graph.CodeOf(err))).Inc()
		return nil, err
	}
	metrics.DocumentsRestored.Inc()
	return g, nil
}

// Validate restores a document and runs the full graph check.
func (c *Compiler) Validate(document []byte) (*graph.ValidationResult, error) {
	g, err := c.Restore(document)
	if err != nil {
		return nil, err
	}
	result := g.Validate()
	if !result.IsValid() {
		metrics.ValidationFailures.Inc()
	}
	return result, nil
}

// Compile restores, validates, and generates. A graph that fails validation
// returns a *ValidationError; every other failure is a coded document error
// or a generator error.
func (c *Compiler) Compile(ctx context.Context, document []byte, language string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gen, err := c.generators.Get(language)
	if err != nil {
		metrics.CompileRequests.WithLabelValues(language, "unknown_language").Inc()
		return nil, err
	}

	g, err := c.Restore(document)
	if err != nil {
		metrics.CompileRequests.WithLabelValues(language, "invalid_document").Inc()
		return nil, err
	}

	if result := g.Validate(); !result.IsValid() {
		metrics.ValidationFailures.Inc()
		metrics.CompileRequests.WithLabelValues(language, "invalid_graph").Inc()
		return nil, &ValidationError{Violations: result.Errors}
	}

	start := time.Now()
	source, err := gen.Generate(g)
	if err != nil {
		metrics.CompileRequests.WithLabelValues(language, "error").Inc()
		return nil, err
	}
	elapsed := time.Since(start)

	metrics.CompileRequests.WithLabelValues(language, "ok").Inc()
	metrics.CompileDuration.Observe(float64(elapsed.Milliseconds()))
	metrics.GeneratedBytes.Observe(float64(len(source)))

	return &Result{
		JobID:       uuid.NewString(),
		Language:    language,
		Source:      source,
		Nodes:       g.NodeCount(),
		Connections: g.ConnectionCount(),
		DurationMs:  elapsed.Milliseconds(),
	}, nil
}
