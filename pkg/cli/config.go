package cli

import (
	"context"
	"os"

	"github.com/callcoach/callcoach/pkg/adapter"
	"github.com/callcoach/callcoach/pkg/service/gong"
	"github.com/callcoach/callcoach/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	// Call recording service
	gongAccessKey string
	gongSecretKey string
	gongBaseURL   string
	insecureTLS   bool

	// Model
	geminiProject  string
	geminiLocation string
	model          string

	logLevel string
}

// gongFlags returns flags for the call recording service with destination config
func gongFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gong-access-key",
			Usage:       "Call recording service access key",
			Sources:     cli.EnvVars("GONG_ACCESS_KEY"),
			Destination: &cfg.gongAccessKey,
		},
		&cli.StringFlag{
			Name:        "gong-secret-key",
			Usage:       "Call recording service secret key",
			Sources:     cli.EnvVars("GONG_SECRET_KEY"),
			Destination: &cfg.gongSecretKey,
		},
		&cli.StringFlag{
			Name:        "gong-base-url",
			Usage:       "Call recording service base URL",
			Sources:     cli.EnvVars("GONG_BASE_URL"),
			Destination: &cfg.gongBaseURL,
		},
		&cli.BoolFlag{
			Name:        "insecure-tls",
			Usage:       "Disable TLS certificate verification for the call recording service",
			Sources:     cli.EnvVars("CALLCOACH_INSECURE_TLS"),
			Destination: &cfg.insecureTLS,
		},
	}
}

// llmFlags returns flags for LLM-related configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Generative model identifier",
			Sources:     cli.EnvVars("CALLCOACH_MODEL"),
			Destination: &cfg.model,
		},
	}
}

// loggingFlags returns flags for logging configuration with destination config
func loggingFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("CALLCOACH_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// setupLogger builds the logger from config and attaches it to the context
func (cfg *config) setupLogger(ctx context.Context) context.Context {
	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger)
}

// newGong creates a new call recording service client
func (cfg *config) newGong() (*gong.Client, error) {
	if cfg.gongBaseURL == "" {
		return nil, goerr.New("gong-base-url is required")
	}
	if cfg.gongAccessKey == "" || cfg.gongSecretKey == "" {
		return nil, goerr.New("gong-access-key and gong-secret-key are required")
	}

	var opts []gong.Option
	if cfg.insecureTLS {
		opts = append(opts, gong.WithInsecureTLS())
	}

	client, err := gong.New(cfg.gongBaseURL, cfg.gongAccessKey, cfg.gongSecretKey, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create call recording service client")
	}
	return client, nil
}

// newGemini creates a new Gemini adapter instance
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	if cfg.geminiProject == "" {
		return nil, goerr.New("gemini-project is required")
	}
	if cfg.geminiLocation == "" {
		return nil, goerr.New("gemini-location is required")
	}

	var opts []adapter.GeminiOption
	if cfg.model != "" {
		opts = append(opts, adapter.WithGenerativeModel(cfg.model))
	}

	gemini, err := adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gemini client")
	}
	return gemini, nil
}
