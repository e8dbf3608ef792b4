// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/blog-engine/internal/blogger"
	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/knowledge"
	"github.com/pdiddy/blog-engine/internal/orchestrator"
	"github.com/pdiddy/blog-engine/internal/secrets"
	"github.com/pdiddy/blog-engine/internal/stages"
	"github.com/pdiddy/blog-engine/internal/workflow"
	"github.com/pdiddy/blog-engine/pkg/types"
)

func init() {
	viper.SetDefault("retrieval.notes_dir", "notes")
	viper.SetDefault("retrieval.index_dir", "notes/index")
	viper.SetDefault("retrieval.max_results", 8)
	viper.SetDefault("generator.model", "gpt-4o")
	viper.SetDefault("generator.target_words", 900)
	viper.SetDefault("workflow.max_revisions", 3)
	viper.SetDefault("publisher.timeout", 60*time.Second)
	viper.SetDefault("publisher.user_agent", "blog-engine/"+version)
	viper.SetDefault("server.addr", ":8080")
}

// pipelineConfig assembles the full configuration from the config file,
// environment, and the secrets directory.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Workflow: types.WorkflowConfig{
			MaxRevisions: viper.GetInt("workflow.max_revisions"),
		},
		Retrieval: types.RetrievalConfig{
			NotesDir:   viper.GetString("retrieval.notes_dir"),
			IndexDir:   viper.GetString("retrieval.index_dir"),
			MaxResults: viper.GetInt("retrieval.max_results"),
		},
		Generator: types.GeneratorConfig{
			AIConfig: types.AIConfig{
				Model:      viper.GetString("generator.model"),
				APIKey:     secretDefault(secrets.KeyOpenAI, viper.GetString("generator.api_key")),
				BaseURL:    viper.GetString("generator.base_url"),
				MaxRetries: viper.GetInt("generator.max_retries"),
			},
			TargetWords: viper.GetInt("generator.target_words"),
		},
		Publisher: types.PublisherConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("publisher.timeout"),
				UserAgent: viper.GetString("publisher.user_agent"),
			},
			BaseURL:       viper.GetString("publisher.base_url"),
			APIToken:      secretDefault(secrets.KeyBloggerToken, viper.GetString("publisher.api_token")),
			DefaultBlogID: viper.GetString("publisher.default_blog_id"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
	}
}

// newLogger builds the process logger. --verbose lowers the level to debug.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newEngine wires the collaborators into an orchestration engine. With
// mock set, generation uses the offline deterministic client so the
// pipeline can be exercised without an API key.
func newEngine(cfg types.PipelineConfig, mock bool, log *slog.Logger) (*orchestrator.Engine, *knowledge.Store, error) {
	var gen generate.Client
	if mock {
		gen = generate.Mock{}
	} else {
		c, err := generate.NewOpenAIClient(cfg.Generator)
		if err != nil {
			return nil, nil, err
		}
		gen = c
	}

	store, err := knowledge.NewStore(cfg.Retrieval)
	if err != nil {
		return nil, nil, err
	}

	// The drafting half of the pipeline works without a publishing
	// backend; publishing stages then fail with a configuration error.
	var pub stages.Publisher = unconfiguredPublisher{}
	if cfg.Publisher.BaseURL != "" {
		c, err := blogger.New(cfg.Publisher)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		pub = c
	}

	pipe := stages.NewPipeline(gen, store, pub, stages.Config{
		TargetWords:   cfg.Generator.TargetWords,
		RetrieveLimit: cfg.Retrieval.MaxResults,
	}, log)

	return orchestrator.New(pipe, cfg.Workflow, cfg.Publisher, log), store, nil
}

// unconfiguredPublisher stands in when no publisher base URL is set.
type unconfiguredPublisher struct{}

func (unconfiguredPublisher) CreatePost(context.Context, blogger.CreatePostRequest) (blogger.Post, error) {
	return blogger.Post{}, errNoPublisher
}

func (unconfiguredPublisher) UpdatePost(context.Context, blogger.UpdatePostRequest) (blogger.Post, error) {
	return blogger.Post{}, errNoPublisher
}

func (unconfiguredPublisher) PublishPost(context.Context, string, string) (blogger.Post, error) {
	return blogger.Post{}, errNoPublisher
}

func (unconfiguredPublisher) UploadImage(context.Context, string) (string, error) {
	return "", errNoPublisher
}

var errNoPublisher = fmt.Errorf("%w: publisher.base_url is not set", workflow.ErrMissingConfiguration)
