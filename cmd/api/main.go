// @title           E-commerce Support Assistant API
// @version         1.0
// @description     Document ingestion and retrieval-augmented chat for e-commerce platform support.

// @contact.name    CWS Platform Team

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/data/store"
	"github.com/cwsplatform/ecom-assist/internal/domain/chatModel"
	"github.com/cwsplatform/ecom-assist/internal/domain/commonModels"
	"github.com/cwsplatform/ecom-assist/internal/handlers"
	"github.com/cwsplatform/ecom-assist/internal/mcp"
	"github.com/cwsplatform/ecom-assist/internal/rag"
	"github.com/cwsplatform/ecom-assist/internal/rag/embedding"
	"github.com/cwsplatform/ecom-assist/internal/rag/llm/gemini"
	"github.com/cwsplatform/ecom-assist/internal/rag/vectorDB/qdrantDB"
	"github.com/cwsplatform/ecom-assist/internal/server"
	"github.com/cwsplatform/ecom-assist/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//transcripts and the document inventory live in redis, with an in-process
	//fallback so the service still answers when redis is offline
	var sessions chatModel.SessionStore
	var manifest commonModels.ManifestStore
	redisSessions := store.GetRedisSessionStore(serviceContext)
	redisManifest := store.GetRedisManifestStore(serviceContext)
	if redisSessions == nil || redisManifest == nil {
		logger.Error("Redis stores are offline, falling back to process memory")
		sessions = store.InitInMemorySessionStore()
		manifest = store.InitInMemoryManifestStore()
	} else {
		sessions = redisSessions
		manifest = redisManifest
	}

	vectorDB := qdrantDB.GetQdrantClient(serviceContext)
	embeddingService := embedding.GetEmbedder(serviceContext)
	llmProvider := gemini.GetGeminiClient(serviceContext, config.GeminiModelName, config.GoogleAPIKey())

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	ragService := rag.NewService(vectorDB, llmProvider, embeddingService, sessions, manifest)

	handlers.InitHandlers(ragService)
	mcpServer := mcp.NewServer(ragService)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, mcpServer.HTTPHandler())

	<-stopExecution
	logger.Info("Server stopped")
}
