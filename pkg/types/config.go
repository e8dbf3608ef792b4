package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "blog-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gpt-4o").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint (optional, for proxies and tests).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GeneratorConfig holds settings for the draft generation stages.
type GeneratorConfig struct {
	AIConfig `yaml:",inline"`

	// TargetWords is the approximate article length hint passed to the
	// model. Zero leaves length unconstrained.
	TargetWords int `json:"target_words" yaml:"target_words"`
}

// RetrievalConfig holds settings for the research retrieval store.
type RetrievalConfig struct {
	// NotesDir is the directory of source notes to index (contains .md/.txt files).
	NotesDir string `json:"notes_dir" yaml:"notes_dir"`

	// IndexDir is the directory holding the SQLite index (notes.db).
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of retrieved passages (default 8).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PublisherConfig holds settings for the blog publishing backend.
type PublisherConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the publishing API endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIToken authenticates requests to the publishing API.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`

	// DefaultBlogID is used for items started without an explicit blog ID.
	DefaultBlogID string `json:"default_blog_id,omitempty" yaml:"default_blog_id,omitempty"`
}

// WorkflowConfig holds settings for the workflow engine.
type WorkflowConfig struct {
	// MaxRevisions caps feedback/revise cycles per item (default 3).
	MaxRevisions int `json:"max_revisions" yaml:"max_revisions"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Workflow  WorkflowConfig  `json:"workflow" yaml:"workflow"`
	Retrieval RetrievalConfig `json:"retrieval" yaml:"retrieval"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Publisher PublisherConfig `json:"publisher" yaml:"publisher"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
