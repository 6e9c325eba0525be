package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"triagem/internal/artifactstore"
	"triagem/internal/config"
	"triagem/internal/mlmodel"
	"triagem/internal/models"
	"triagem/internal/pipeline"
	"triagem/internal/suggest"
)

// App is the explicitly constructed, read-only context object holding the
// process-wide state: configuration, the loaded model artifacts, the
// suggestion service, and the pipeline built on top of them. It is created
// once at startup and shared by all requests without further mutation.
type App struct {
	Config    *config.Config
	Engine    *mlmodel.Engine // nil when the artifacts failed to load
	Suggester *suggest.Service
	Pipeline  *pipeline.Service
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// Artifact load failure is fatal to the classification capability, not
	// to the process: the pipeline rejects non-empty batches until the
	// artifacts exist.
	app.initEngine(ctx)

	if err := app.initSuggester(ctx); err != nil {
		return nil, err
	}
	app.initPipeline()

	log.Info("Application initialization complete.")
	return app, nil
}

func (a *App) initEngine(ctx context.Context) {
	cfg := a.Config
	if err := artifactstore.EnsureLocal(ctx, cfg.Model.Bucket, cfg.Model.VectorizerPath, cfg.Model.Path); err != nil {
		log.Warnf("Failed to fetch model artifacts from bucket %q: %v", cfg.Model.Bucket, err)
	}

	engine, err := mlmodel.LoadEngine(cfg.Model.VectorizerPath, cfg.Model.Path)
	if err != nil {
		log.Warnf("Model artifacts not loaded: %v", err)
		log.Warnf("Classification requests will be rejected until %s and %s exist. Run 'triagem train' to produce them.",
			cfg.Model.VectorizerPath, cfg.Model.Path)
		return
	}
	a.Engine = engine
	log.Info("Models loaded successfully. Classification enabled.")
}

func (a *App) initSuggester(ctx context.Context) error {
	cfg := a.Config.Suggestion

	var provider suggest.Provider
	switch cfg.Provider {
	case "", "gemini":
		p, err := suggest.NewGeminiProvider(ctx, cfg.GeminiApiKey, cfg.Model)
		if err != nil {
			return fmt.Errorf("init gemini provider: %w", err)
		}
		if p != nil {
			provider = p
		}
	case "openai":
		if p := suggest.NewOpenAIProvider(cfg.OpenaiApiKey, cfg.Model); p != nil {
			provider = p
		}
	case "none":
		log.Info("Suggestion generation disabled by configuration.")
	default:
		return fmt.Errorf("%w: %q", models.ErrUnknownProvider, cfg.Provider)
	}

	a.Suggester = suggest.NewService(provider, time.Duration(cfg.TimeoutSeconds)*time.Second, cfg.MaxAttempts)
	return nil
}

func (a *App) initPipeline() {
	// Hand the pipeline a nil interface, not a typed-nil engine, so Ready()
	// stays false while artifacts are missing.
	var engine pipeline.ModelEngine
	if a.Engine != nil {
		engine = a.Engine
	}
	a.Pipeline = pipeline.NewService(engine, a.Suggester)
}

// Close releases external clients held by the app.
func (a *App) Close() error {
	if a.Suggester != nil {
		return a.Suggester.Close()
	}
	return nil
}
