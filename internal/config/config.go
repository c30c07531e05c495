package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Rag      RagConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UploadDir          string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host          string
	Port          int
	Email         string
	Password      string
	SenderName    string
	OperatorEmail string
}

type AIConfig struct {
	LLMProvider       string // "ollama" or "llamacpp"
	LLMModel          string
	OllamaBaseURL     string
	LlamaServerURL    string
	EmbeddingProvider string // "ollama" or "gemini"
	EmbeddingModel    string
	GeminiApiKey      string

	// Sampling parameters are fixed configuration, not pipeline logic.
	Temperature   float64
	TopP          float64
	RepeatPenalty float64
	MaxTokens     int
}

// RagConfig holds the pipeline thresholds. The heuristic values (30 words,
// 50-char floor, 1-keyword overlap) follow the original system; they are
// empirical defaults, not correctness constants.
type RagConfig struct {
	HistoryWindow      int
	MaxStandaloneWords int
	MinAnswerLength    int
	MinContextLength   int
	MinKeywordOverlap  int
	TopK               int
	FetchK             int
	MMRLambda          float64
	EmbedTopicName     string
}

type AdminConfig struct {
	Username string
	Password string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UploadDir:          getEnv("UPLOAD_FOLDER", "base_knowledge"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:          getEnv("SMTP_HOST", ""),
			Port:          getEnvAsInt("SMTP_PORT", 587),
			Email:         getEnv("SMTP_EMAIL", ""),
			Password:      getEnv("SMTP_PASSWORD", ""),
			SenderName:    getEnv("SMTP_SENDER_NAME", "GiziAI"),
			OperatorEmail: getEnv("OPERATOR_ALERT_EMAIL", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "llamacpp"),
			LLMModel:          getEnv("LLM_MODEL", "sahabatAI-9B-GiziAI-v1.i1-Q4_K_M.gguf"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LlamaServerURL:    getEnv("LLAMA_SERVER_URL", "http://localhost:8080"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiApiKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.5),
			TopP:              getEnvAsFloat("LLM_TOP_P", 0.95),
			RepeatPenalty:     getEnvAsFloat("LLM_REPEAT_PENALTY", 1.2),
			MaxTokens:         getEnvAsInt("LLM_MAX_TOKENS", 1024),
		},
		Rag: RagConfig{
			HistoryWindow:      getEnvAsInt("MAX_HISTORY_MESSAGES_FOR_CONTEXTUALIZATION", 4),
			MaxStandaloneWords: getEnvAsInt("MAX_STANDALONE_QUESTION_WORDS", 30),
			MinAnswerLength:    getEnvAsInt("MIN_VALID_ANSWER_LENGTH", 15),
			MinContextLength:   getEnvAsInt("MIN_CONTEXT_LENGTH_FOR_ANSWER", 50),
			MinKeywordOverlap:  getEnvAsInt("MIN_KEYWORD_OVERLAP_FOR_RELEVANCE", 1),
			TopK:               getEnvAsInt("RETRIEVER_TOP_K", 5),
			FetchK:             getEnvAsInt("RETRIEVER_FETCH_K", 10),
			MMRLambda:          getEnvAsFloat("RETRIEVER_MMR_LAMBDA", 0.7),
			EmbedTopicName:     getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_KNOWLEDGE_DOCUMENT"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
