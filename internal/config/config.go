// Package config loads the agent configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/neo4j/graph-agent/internal/logger"
)

// DefaultModel is used when neither GRAPH_AGENT_MODEL nor OPENAI_MODEL is set.
const DefaultModel = "gpt-4o-mini"

// Config holds the application configuration.
type Config struct {
	// Neo4j connection, used only for schema refresh.
	URI      string
	Username string
	Password string
	Database string

	// Command and arguments used to launch the MCP server over stdio.
	MCPServerCommand string
	MCPServerArgs    []string

	// Language-model settings for the semantic selector.
	Model         string
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// Agent behavior.
	UseSemanticSelector bool
	IdentifierProperty  string
	AllowedToolNames    []string
	SchemaCachePath     string

	Telemetry bool
	LogLevel  string
	LogFormat string
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("configuration is required but was nil")
	}
	if c.MCPServerCommand == "" {
		return fmt.Errorf("MCP server command is required but was empty (set GRAPH_AGENT_MCP_COMMAND)")
	}
	if c.UseSemanticSelector && c.OpenAIAPIKey == "" {
		return fmt.Errorf("an API key is required when the semantic selector is enabled (set OPENAI_API_KEY)")
	}
	return nil
}

// LoadConfig loads configuration from environment variables and validates it.
func LoadConfig() (*Config, error) {
	logLevel := GetEnvWithDefault("GRAPH_AGENT_LOG_LEVEL", "info")
	logFormat := GetEnvWithDefault("GRAPH_AGENT_LOG_FORMAT", "text")

	if !slices.Contains(logger.ValidLogLevels, logLevel) {
		fmt.Fprintf(os.Stderr, "Warning: invalid GRAPH_AGENT_LOG_LEVEL '%s', using default 'info'. Valid values: %v\n", logLevel, logger.ValidLogLevels)
		logLevel = "info"
	}
	if !slices.Contains(logger.ValidLogFormats, logFormat) {
		fmt.Fprintf(os.Stderr, "Warning: invalid GRAPH_AGENT_LOG_FORMAT '%s', using default 'text'. Valid values: %v\n", logFormat, logger.ValidLogFormats)
		logFormat = "text"
	}

	model := GetEnv("GRAPH_AGENT_MODEL")
	if model == "" {
		model = GetEnvWithDefault("OPENAI_MODEL", DefaultModel)
	}

	cfg := &Config{
		URI:                 GetEnv("NEO4J_URI"),
		Username:            GetEnv("NEO4J_USERNAME"),
		Password:            GetEnv("NEO4J_PASSWORD"),
		Database:            GetEnvWithDefault("NEO4J_DATABASE", "neo4j"),
		MCPServerCommand:    GetEnvWithDefault("GRAPH_AGENT_MCP_COMMAND", "neo4j-mcp"),
		MCPServerArgs:       SplitArgs(GetEnv("GRAPH_AGENT_MCP_ARGS")),
		Model:               model,
		OpenAIAPIKey:        GetEnv("OPENAI_API_KEY"),
		OpenAIBaseURL:       GetEnv("OPENAI_BASE_URL"),
		UseSemanticSelector: ParseBool(GetEnv("GRAPH_AGENT_USE_SEMANTIC_SELECTOR"), true),
		IdentifierProperty:  GetEnvWithDefault("GRAPH_AGENT_IDENTIFIER_PROPERTY", "name"),
		AllowedToolNames:    SplitList(GetEnv("GRAPH_AGENT_ALLOWED_TOOLS")),
		SchemaCachePath:     GetEnvWithDefault("GRAPH_AGENT_SCHEMA_CACHE", "graph_schema_cache.txt"),
		Telemetry:           ParseBool(GetEnv("GRAPH_AGENT_TELEMETRY"), false),
		LogLevel:            logLevel,
		LogFormat:           logFormat,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetEnv returns the value of an environment variable or empty string if not set.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvWithDefault returns the value of an environment variable or a default value.
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ParseBool parses a string to bool using strconv.ParseBool.
// Returns the default value if the string is empty or invalid.
func ParseBool(value string, defaultValue bool) bool {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: Invalid boolean value %q, using default: %v", value, defaultValue)
		return defaultValue
	}
	return parsed
}

// SplitArgs splits a whitespace-separated argument string, dropping empties.
func SplitArgs(value string) []string {
	return strings.Fields(value)
}

// SplitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
