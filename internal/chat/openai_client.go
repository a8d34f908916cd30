package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/arpanm/appointment-assistant/pkg/logging"
)

const systemPrompt = `You are an AI appointment scheduler assistant. Your tasks include:
1. Asking for the user's preferred date and time.
2. Confirming the appointment details (e.g., name, contact information, purpose).
3. Providing available time slots if the requested time is unavailable.
4. Summarizing the appointment details at the end.
5. Maintaining a professional and friendly tone.

Always format your responses clearly and ensure the user understands the next steps.`

// fallbackReply covers the provider returning a response with no usable content.
const fallbackReply = "I apologize, but I could not process your request."

var (
	// ErrEmptyMessage is returned before any network call when the user
	// message is blank.
	ErrEmptyMessage = errors.New("chat: user message is empty")

	// ErrAssistantUnavailable is the single error kind for transport or
	// provider failures on the completion call.
	ErrAssistantUnavailable = errors.New("chat: assistant unavailable")
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// CompletionProvider produces the assistant reply for one turn.
type CompletionProvider interface {
	Complete(ctx context.Context, userMessage string, history []Message) (string, error)
}

// OpenAIClient implements CompletionProvider on the OpenAI chat
// completions API with fixed sampling parameters.
type OpenAIClient struct {
	client      chatCompleter
	model       string
	temperature float32
	maxTokens   int
	logger      *logging.Logger
}

// NewOpenAIClient returns a completion provider backed by OpenAI.
func NewOpenAIClient(client chatCompleter, model string, logger *logging.Logger) *OpenAIClient {
	if client == nil {
		panic("chat: completion client cannot be nil")
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OpenAIClient{
		client:      client,
		model:       model,
		temperature: 0.7,
		maxTokens:   150,
		logger:      logger,
	}
}

// Complete sends the system prompt, the prior history, and the new user
// message to the provider and returns the first completion's text. One
// attempt only; failures come back as ErrAssistantUnavailable.
func (c *OpenAIClient) Complete(ctx context.Context, userMessage string, history []Message) (string, error) {
	if strings.TrimSpace(userMessage) == "" {
		return "", ErrEmptyMessage
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleAssistant
		if msg.Sender == SenderUser {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Text,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		c.logger.Error("openai completion failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return fallbackReply, nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
