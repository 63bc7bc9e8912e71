package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/domain/chatModel"
	"github.com/cwsplatform/ecom-assist/internal/rag/llm"
	"github.com/cwsplatform/ecom-assist/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return geminiClient
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {
	cfg := &genai.ClientConfig{APIKey: apikey}
	if baseURL := config.GeminiBaseURL(); baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
		return
	}
	geminiClient = &llmClient{client: c, modelName: modelName}
	logger.Info("Gemini client created", "model", modelName)
	go closeClient(ctx, geminiClient)
}

func (c *llmClient) Generate(ctx context.Context, question string, matches []string, history []chatModel.Turn) (string, error) {
	log := logger.WithTrace(ctx)

	systemInstruction := &genai.Content{
		Parts: []*genai.Part{
			{Text: config.SystemInstruction},
		},
	}

	var prompt strings.Builder
	if len(history) > 0 {
		prompt.WriteString("Conversation so far:\n")
		prompt.WriteString(chatModel.RenderTranscript(history))
		prompt.WriteString("\n")
	}
	prompt.WriteString("Documentation context:\n")
	prompt.WriteString(strings.Join(matches, "\n---\n"))
	fmt.Fprintf(&prompt, "\n\nUser Question: %s", question)

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
		Temperature:       genai.Ptr(config.ModelTemperature),
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(prompt.String()),
		contentConfig,
	)
	if err != nil {
		log.Error("Error generating answer", "error", err.Error())
		return "", err
	}

	answer := result.Text()
	if answer == "" {
		log.Warn("Generation returned no text")
		return "", errors.New("empty generation response")
	}
	return answer, nil
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}
