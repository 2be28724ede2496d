package config

import (
	"fmt"
	"os"
	"path/filepath"

	"reportiq/internal/dataset"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath    string
	LogDir      string
	OutputDir   string
	Language    string // "TR" or "EN"
	AliasesPath string

	extraAliases map[dataset.Field][]string
}

// aliasFile is the on-disk shape of the optional column-alias override file.
type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	outputDir := getEnv("OUTPUT_DIR", filepath.Join(dataPath, "reports"))

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", outputDir).Msg("Failed to create output directory")
	}

	language := getEnv("REPORT_LANGUAGE", "TR")
	if language != "TR" && language != "EN" {
		log.Warn().Str("language", language).Msg("Unknown report language, falling back to TR")
		language = "TR"
	}

	cfg := &AppConfig{
		DataPath:    dataPath,
		LogDir:      logDir,
		OutputDir:   outputDir,
		Language:    language,
		AliasesPath: getEnv("ALIASES_PATH", ""),
	}

	if cfg.AliasesPath != "" {
		extra, err := loadAliasFile(cfg.AliasesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load alias overrides: %w", err)
		}
		cfg.extraAliases = extra
	}

	return cfg, nil
}

// ExtraAliases returns user-supplied column aliases keyed by canonical field.
func (c *AppConfig) ExtraAliases() map[dataset.Field][]string {
	return c.extraAliases
}

func loadAliasFile(path string) (map[dataset.Field][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	extra := make(map[dataset.Field][]string)
	for name, names := range file.Aliases {
		field := dataset.Field(name)
		if !dataset.IsField(field) {
			log.Warn().Str("field", name).Msg("Alias override for unknown canonical field, skipping")
			continue
		}
		extra[field] = append(extra[field], names...)
	}
	return extra, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
