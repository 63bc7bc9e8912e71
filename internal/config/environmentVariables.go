package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 5
	BURST_RATE_LIMIT_PER_SECOND = 10

	//server
	ServerListenAddr       = ":3000"
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second //generation round-trips are slow
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second
	MaxUploadSize          = 32 << 20 //32mb

	//vectorDB
	CollectionName                      = "ecommerce_manuals"
	EmbeddingOutputDimensionality int32 = 768
	QdrantHost                          = "localhost"
	QdrantGrpcPort                      = 6334
	QdrantUseTLS                        = false
	QdrantPoolSize                      = 1 //2-5 is preferred for prod according to documentation

	//ingestion
	ChunkSize       = 1000
	ChunkOverlap    = 200
	UpsertBatchSize = 100

	//retrieval
	TopK               uint64  = 10
	RelevanceThreshold float32 = 0.45
	HistoryTurns               = 6 //3 exchanges
	SessionMaxTurns            = 60
	GuestSessionID             = "guest"
	ModelTemperature   float32 = 0.2

	//llm
	GeminiModelName      = "gemini-2.0-flash"
	GoogleEmbeddingModel = "text-embedding-004"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	SystemInstruction = `You are a support assistant specialized in the features of the CWS e-commerce platform.

GUIDELINES:
1. GROUNDING: Answer using the documentation context below.
2. SYNTHESIS: If the user asks about a concept and the context only has usage instructions, you MAY explain the concept based on the features described.
3. HONESTY: If the context has NOTHING to do with the question, say you could not find enough detail in the documentation.
4. STYLE: Professional, friendly and direct.`

	OutOfScopeMessage = "Sorry, I couldn't find anything about that in the documentation. Could you rephrase the question, or ask about a platform feature?"
	ApologyMessage    = "Sorry, something went wrong on our side while answering. Please try again in a moment."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DB we can use
	RedisSessionStore  = 0
	RedisManifestStore = 1

	RedisSessionStoreTTL = 24 * time.Hour
)

// Environment overrides. Keys stay out of the binary.

func GoogleAPIKey() string {
	return os.Getenv("GOOGLE_API_KEY")
}

// GeminiBaseURL is an optional alternate endpoint for the generation service
// (proxies, regional endpoints). Empty means the SDK default.
func GeminiBaseURL() string {
	return os.Getenv("GEMINI_BASE_URL")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// EmbeddingProvider selects the embedding backend: "google" (default) or "openai".
func EmbeddingProvider() string {
	p := os.Getenv("EMBEDDING_PROVIDER")
	if p == "" {
		return "google"
	}
	return p
}
