package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"quick-chat-relay/internal/config"
)

// ErrEmptyReply is returned when Gemini answers without any text.
var ErrEmptyReply = errors.New("gemini returned no text")

// contentGenerator is the slice of *genai.GenerativeModel the service uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiService struct {
	client  *genai.Client
	model   contentGenerator
	timeout time.Duration
}

func NewGeminiService(ctx context.Context, apiKey string, gen config.GenerationConfig, timeout time.Duration) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:  client,
		model:   newModel(client, gen),
		timeout: timeout,
	}, nil
}

func newModel(client *genai.Client, gen config.GenerationConfig) *genai.GenerativeModel {
	model := client.GenerativeModel(gen.Model)
	model.SetTemperature(gen.Temperature)
	model.SetMaxOutputTokens(gen.MaxOutputTokens)
	return model
}

func (s *GeminiService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// GenerateReply sends message as the whole prompt and returns the generated text.
// Upstream errors are returned as-is so their text can be shown to the caller.
func (s *GeminiService) GenerateReply(ctx context.Context, message string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", err
	}

	text := extractText(resp)
	if text == "" {
		return "", emptyReplyError(resp)
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}

func emptyReplyError(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return ErrEmptyReply
	}
	if pf := resp.PromptFeedback; pf != nil && pf.BlockReason != genai.BlockReasonUnspecified {
		return fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyReply, pf.BlockReason)
	}
	for _, cand := range resp.Candidates {
		if cand != nil && cand.FinishReason != genai.FinishReasonStop && cand.FinishReason != genai.FinishReasonUnspecified {
			return fmt.Errorf("%w: finish reason %s", ErrEmptyReply, cand.FinishReason)
		}
	}
	return ErrEmptyReply
}
