package config

// Config is the top-level YAML structure.
type Config struct {
	Version string      `yaml:"version"`
	Server  ServerConf  `yaml:"server"`
	Codegen CodegenConf `yaml:"codegen"`
	Compile CompileConf `yaml:"compile"`
}

// ServerConf holds HTTP server settings.
type ServerConf struct {
	Addr           string `yaml:"addr"`
	ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
	WriteTimeoutMs int    `yaml:"write_timeout_ms"`
	IdleTimeoutMs  int    `yaml:"idle_timeout_ms"`
}

// CodegenConf selects the default target language and bounds request bodies.
type CodegenConf struct {
	DefaultLanguage  string `yaml:"default_language"`
	MaxDocumentBytes int64  `yaml:"max_document_bytes"`
}

// CompileConf holds tunable settings for the background compile queue.
type CompileConf struct {
	Workers      int `yaml:"workers"`
	QueueDepth   int `yaml:"queue_depth"`
	JobTimeoutMs int `yaml:"job_timeout_ms"`
}
