package chat

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/arpanm/appointment-assistant/pkg/logging"
)

type stubChatCompleter struct {
	response openai.ChatCompletionResponse
	err      error
	calls    int
	lastReq  openai.ChatCompletionRequest
}

func (s *stubChatCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.calls++
	s.lastReq = req
	return s.response, s.err
}

func completionResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestCompleteBuildsRoleTaggedMessages(t *testing.T) {
	stub := &stubChatCompleter{response: completionResponse("Sure, Friday works.")}
	client := NewOpenAIClient(stub, "gpt-3.5-turbo", logging.New("error"))

	history := []Message{
		{ID: 1, Text: "I need a dentist appointment", Sender: SenderUser},
		{ID: 2, Text: "What day works for you?", Sender: SenderAssistant},
	}
	reply, err := client.Complete(context.Background(), "Friday morning", history)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != "Sure, Friday works." {
		t.Errorf("unexpected reply: %q", reply)
	}

	msgs := stub.lastReq.Messages
	if len(msgs) != 4 {
		t.Fatalf("expected system + 2 history + user, got %d messages", len(msgs))
	}
	if msgs[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("expected system message first, got %s", msgs[0].Role)
	}
	if msgs[1].Role != openai.ChatMessageRoleUser || msgs[1].Content != "I need a dentist appointment" {
		t.Errorf("unexpected first history message: %+v", msgs[1])
	}
	if msgs[2].Role != openai.ChatMessageRoleAssistant {
		t.Errorf("expected assistant role for assistant history, got %s", msgs[2].Role)
	}
	if msgs[3].Role != openai.ChatMessageRoleUser || msgs[3].Content != "Friday morning" {
		t.Errorf("expected the new user message last, got %+v", msgs[3])
	}

	if stub.lastReq.Model != "gpt-3.5-turbo" {
		t.Errorf("unexpected model: %s", stub.lastReq.Model)
	}
	if stub.lastReq.Temperature != 0.7 {
		t.Errorf("unexpected temperature: %v", stub.lastReq.Temperature)
	}
	if stub.lastReq.MaxTokens != 150 {
		t.Errorf("unexpected max tokens: %d", stub.lastReq.MaxTokens)
	}
}

func TestCompleteEmptyMessageSkipsNetwork(t *testing.T) {
	stub := &stubChatCompleter{response: completionResponse("hi")}
	client := NewOpenAIClient(stub, "", logging.New("error"))

	_, err := client.Complete(context.Background(), "  ", nil)
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("expected zero provider calls, got %d", stub.calls)
	}
}

func TestCompleteProviderErrorSingleAttempt(t *testing.T) {
	stub := &stubChatCompleter{err: errors.New("connection refused")}
	client := NewOpenAIClient(stub, "", logging.New("error"))

	_, err := client.Complete(context.Background(), "hello", nil)
	if !errors.Is(err, ErrAssistantUnavailable) {
		t.Fatalf("expected ErrAssistantUnavailable, got %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("expected one attempt with no retry, got %d calls", stub.calls)
	}
}

func TestCompleteNoChoicesReturnsFallback(t *testing.T) {
	stub := &stubChatCompleter{response: openai.ChatCompletionResponse{}}
	client := NewOpenAIClient(stub, "", logging.New("error"))

	reply, err := client.Complete(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != fallbackReply {
		t.Errorf("expected fallback reply, got %q", reply)
	}
}

func TestCompleteBlankContentReturnsFallback(t *testing.T) {
	stub := &stubChatCompleter{response: completionResponse("   ")}
	client := NewOpenAIClient(stub, "", logging.New("error"))

	reply, err := client.Complete(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != fallbackReply {
		t.Errorf("expected fallback reply, got %q", reply)
	}
}

func TestNewOpenAIClientDefaultsModel(t *testing.T) {
	stub := &stubChatCompleter{response: completionResponse("ok")}
	client := NewOpenAIClient(stub, "", logging.New("error"))

	if _, err := client.Complete(context.Background(), "hello", nil); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if stub.lastReq.Model != openai.GPT3Dot5Turbo {
		t.Errorf("expected default model, got %s", stub.lastReq.Model)
	}
}
