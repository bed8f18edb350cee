package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for:
//   - Required fields
//   - Negative tunables (zero means "use the default")
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Version == "" {
		errs = append(errs, "version is required")
	}
	if cfg.Codegen.DefaultLanguage == "" {
		errs = append(errs, "codegen.default_language is required")
	}
	if cfg.Codegen.MaxDocumentBytes < 0 {
		errs = append(errs, "codegen.max_document_bytes cannot be negative")
	}
	for name, v := range map[string]int{
		"server.read_timeout_ms":  cfg.Server.ReadTimeoutMs,
		"server.write_timeout_ms": cfg.Server.WriteTimeoutMs,
		"server.idle_timeout_ms":  cfg.Server.IdleTimeoutMs,
		"compile.workers":         cfg.Compile.Workers,
		"compile.queue_depth":     cfg.Compile.QueueDepth,
		"compile.job_timeout_ms":  cfg.Compile.JobTimeoutMs,
	} {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s cannot be negative", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
