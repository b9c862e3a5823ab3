// Package app wires configuration, storage, clients and services for the server.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/vitae/internal/clients/gemini"
	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/interfaces"
	"github.com/bobmcallan/vitae/internal/services/chat"
	"github.com/bobmcallan/vitae/internal/services/report"
	"github.com/bobmcallan/vitae/internal/storage"
)

// App holds all initialized services, clients and storage.
type App struct {
	Config        *common.Config
	Logger        *common.Logger
	Storage       interfaces.StorageManager
	GeminiClient  interfaces.GeminiClient
	ReportService interfaces.ReportService
	ChatService   interfaces.ChatService
	StartupTime   time.Time
}

// errGeminiUnconfigured is returned by generation calls when no API key is set.
var errGeminiUnconfigured = errors.New("gemini API key not configured")

// unconfiguredGemini stands in for the model client when no API key is set,
// so the server still serves stored reports and chat history.
type unconfiguredGemini struct{}

func (unconfiguredGemini) GenerateContent(context.Context, string) (string, error) {
	return "", errGeminiUnconfigured
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: the given path, then VITAE_CONFIG,
// then vitae.toml beside the binary, then config/vitae.toml.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("VITAE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "vitae.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/vitae.toml" // fallback for development
		}
	}
	return configPath
}

// NewApp loads configuration and initializes storage, the model client and
// all services. configPath may be empty to use the default resolution.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	if config.IsProduction() {
		if missing := config.ValidateRequired(); len(missing) > 0 {
			return nil, fmt.Errorf("missing required production settings: %v", missing)
		}
	} else if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret must not be empty")
	}

	ctx := context.Background()

	storageManager, err := storage.NewStorageManager(ctx, logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var geminiClient interfaces.GeminiClient = unconfiguredGemini{}
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
			gemini.WithTimeout(config.Clients.Gemini.GetTimeout()),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			geminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - report generation and chat will be unavailable")
	}

	a := New(config, logger, storageManager, geminiClient)
	a.StartupTime = startupStart

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// New builds an App from already constructed dependencies.
func New(config *common.Config, logger *common.Logger, storageManager interfaces.StorageManager, geminiClient interfaces.GeminiClient) *App {
	return &App{
		Config:        config,
		Logger:        logger,
		Storage:       storageManager,
		GeminiClient:  geminiClient,
		ReportService: report.NewService(storageManager, geminiClient, logger),
		ChatService:   chat.NewService(storageManager, geminiClient, logger),
		StartupTime:   time.Now(),
	}
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
		a.Storage = nil
	}
}
