// Package openai answers prompts using the OpenAI chat completion API.
package openai

import (
	"context"

	"github.com/fwojciec/medibot"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the OpenAI model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// SystemPrompt is sent ahead of every conversation.
const SystemPrompt = "You are a helpful medical assistant. You help people find a suitable doctor and answer general questions. You do not diagnose."

// Ensure Asker implements medibot.Asker at compile time.
var _ medibot.Asker = (*Asker)(nil)

// ChatCompleter is the subset of *openai.Client used by Asker.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Asker implements medibot.Asker using OpenAI chat completions.
type Asker struct {
	client ChatCompleter
	model  string
}

// NewAsker creates a new Asker. An empty model selects DefaultModel.
func NewAsker(client ChatCompleter, model string) *Asker {
	if model == "" {
		model = DefaultModel
	}
	return &Asker{client: client, model: model}
}

// NewClient returns an OpenAI API client for apiKey.
func NewClient(apiKey string) *openai.Client {
	return openai.NewClient(apiKey)
}

// Ask sends the conversation history followed by prompt and returns the reply.
func (a *Asker) Ask(ctx context.Context, history medibot.Transcript, prompt string) (string, error) {
	if prompt == "" {
		return "", medibot.Errorf(medibot.EINVALID, "prompt required")
	}

	resp, err := a.client.CreateChatCompletion(ctx, BuildRequest(a.model, history, prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", medibot.Errorf(medibot.EINTERNAL, "openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// BuildRequest maps the transcript onto OpenAI chat messages, preceded by
// the system prompt and followed by prompt as the final user message.
func BuildRequest(model string, history medibot.Transcript, prompt string) openai.ChatCompletionRequest {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt})
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == medibot.RoleBot {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: 0.4,
	}
}
