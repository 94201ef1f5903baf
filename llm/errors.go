package llm

import (
	"context"
	"errors"
	"net"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// ErrEmptyResponse indicates the model returned no usable text. The hosted
// APIs do this intermittently, so the call is worth retrying.
var ErrEmptyResponse = errors.New("model returned empty content")

// ErrBlockedResponse indicates the model refused to produce output, typically
// due to a safety filter. Retrying the same prompt will not help.
var ErrBlockedResponse = errors.New("model output was blocked")

// IsRetryable classifies an LLM call error as transient. Rate limiting,
// server errors, timeouts and empty responses are transient; everything else
// (bad credentials, malformed requests, blocked output) is fatal.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBlockedResponse) {
		return false
	}
	if errors.Is(err, ErrEmptyResponse) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) {
		return retryableStatus(openaiErr.HTTPStatusCode)
	}

	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return retryableStatus(geminiErr.Code)
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return retryableStatus(anthropicErr.StatusCode)
	}

	return false
}

func retryableStatus(status int) bool {
	return status == 429 || status >= 500
}
