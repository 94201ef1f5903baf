package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/birmacher/git-ai-reviewer/logger"
	"google.golang.org/genai"
)

// GeminiModel implements the LLM interface using Google's Gemini API
type GeminiModel struct {
	client      *genai.Client
	modelName   string
	maxTokens   int
	temperature float64
	apiTimeout  int // in seconds
}

// NewGemini creates a new Gemini client
func NewGemini(apiKey string, opts ...Option) (*GeminiModel, error) {
	if apiKey == "" {
		errMsg := "Gemini API key cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := &GeminiModel{
		client:      client,
		modelName:   "gemini-2.5-flash", // Default model
		maxTokens:   20480,              // Default max tokens
		temperature: 0.2,                // Default temperature
		apiTimeout:  120,                // Default timeout in seconds
	}

	// Apply options
	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				model.modelName = modelName
			}
		case MaxTokensOption:
			if maxTokens, ok := opt.Value.(int); ok {
				model.maxTokens = maxTokens
			}
		case TemperatureOption:
			if temperature, ok := opt.Value.(float64); ok {
				model.temperature = temperature
			}
		case APITimeoutOption:
			if timeout, ok := opt.Value.(int); ok {
				model.apiTimeout = timeout
			}
		}
	}

	logger.Debugf("Gemini client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		model.modelName, model.maxTokens, model.apiTimeout)

	return model, nil
}

// Prompt sends a request to Gemini and returns the response
func (g *GeminiModel) Prompt(req Request) Response {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(g.apiTimeout)*time.Second)
	defer cancel()

	var parts []string
	if req.UserPrompt != "" {
		parts = append(parts, req.UserPrompt)
	}
	if req.Diff != "" {
		parts = append(parts, req.Diff)
	}
	content := strings.Join(parts, "\n\n")

	genConfig := &genai.GenerateContentConfig{
		Temperature:     float32Ptr(float32(g.temperature)),
		MaxOutputTokens: int32(g.maxTokens),
	}
	if req.SystemPrompt != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}

	logger.Infof("Sending request to Gemini with model %s, max tokens %d", g.modelName, g.maxTokens)

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(content), genConfig)
	if err != nil {
		logger.Errorf("Gemini request failed: %v", err)
		return Response{
			Error: fmt.Errorf("failed to generate content: %w", err),
		}
	}

	text, err := extractGeminiText(resp)
	if err != nil {
		return Response{
			Error: err,
		}
	}

	return Response{
		Content: text,
	}
}

// extractGeminiText pulls the generated text out of the response, surfacing
// blocked output as a fatal error and missing output as a retryable one
func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety ||
		candidate.FinishReason == genai.FinishReasonProhibitedContent {
		logger.Errorf("Gemini blocked the output: %s", candidate.FinishReason)
		return "", fmt.Errorf("%w: finish reason %s", ErrBlockedResponse, candidate.FinishReason)
	}

	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		logger.Warnf("Gemini returned empty content (finish reason: %s)", candidate.FinishReason)
		return "", ErrEmptyResponse
	}

	return text, nil
}

func float32Ptr(f float32) *float32 {
	return &f
}
