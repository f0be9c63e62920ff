// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Supported LLM and embedding providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type LLMConfig struct {
	Provider string
	Model    string
}

type EmbeddingConfig struct {
	Provider  string
	Model     string
	Dimension int
}

type RetrievalConfig struct {
	Collection      string
	ChunkSize       int
	ChunkOverlap    int
	TopK            int
	FetchMultiplier int
}

type AgentConfig struct {
	MaxIterations int
	ParseRetries  int
}

type Config struct {
	PostgresDSN string
	HTTPAddr    string

	KnowledgeBasePath string
	DocumentsDir      string

	LLM        LLMConfig
	Embeddings EmbeddingConfig
	Retrieval  RetrievalConfig
	Agent      AgentConfig

	GoogleAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaHost    string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over .env entries.
func Load() Config {
	_ = godotenv.Load()

	llmProvider := getEnv("LLM_PROVIDER", ProviderGemini)
	embProvider := getEnv("EMBEDDING_PROVIDER", llmProvider)

	return Config{
		PostgresDSN: getEnv("POSTGRES_DSN", "postgres://localhost:5432/campus_agent?sslmode=disable"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8000"),

		KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", "knowledge_base/campus_data.json"),
		DocumentsDir:      getEnv("DOCUMENTS_DIR", "data/documents"),

		LLM: LLMConfig{
			Provider: llmProvider,
			Model:    getEnv("LLM_MODEL", defaultLLMModel(llmProvider)),
		},
		Embeddings: EmbeddingConfig{
			Provider:  embProvider,
			Model:     getEnv("EMBEDDING_MODEL", defaultEmbeddingModel(embProvider)),
			Dimension: getEnvInt("EMBEDDING_DIMENSION", 768),
		},
		Retrieval: RetrievalConfig{
			Collection:      getEnv("INDEX_COLLECTION", "campus_knowledge"),
			ChunkSize:       getEnvInt("CHUNK_SIZE", 800),
			ChunkOverlap:    getEnvInt("CHUNK_OVERLAP", 200),
			TopK:            getEnvInt("TOP_K_RESULTS", 5),
			FetchMultiplier: getEnvInt("FETCH_MULTIPLIER", 3),
		},
		Agent: AgentConfig{
			MaxIterations: getEnvInt("AGENT_MAX_ITERATIONS", 5),
			ParseRetries:  getEnvInt("AGENT_PARSE_RETRIES", 1),
		},

		GoogleAPIKey:  getEnv("GOOGLE_API_KEY", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OllamaHost:    getEnv("OLLAMA_HOST", "http://localhost:11434"),
	}
}

// ValidateLLMCredentials reports a configuration error naming the
// missing environment key for the selected provider.
func (c Config) ValidateLLMCredentials() error {
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("gemini provider selected but GOOGLE_API_KEY is not set")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("openai provider selected but OPENAI_API_KEY is not set")
		}
	case ProviderOllama:
		// Local provider, no credentials.
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
	return nil
}

func defaultLLMModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderOllama:
		return "llama3.1:8b"
	default:
		return "gemini-2.0-flash"
	}
}

func defaultEmbeddingModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "text-embedding-3-small"
	case ProviderOllama:
		return "nomic-embed-text"
	default:
		return "gemini-embedding-001"
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
