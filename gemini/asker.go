// Package gemini answers prompts using Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/medibot"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements medibot.Asker at compile time.
var _ medibot.Asker = (*Asker)(nil)

// Asker implements medibot.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
	model  string
}

// NewAsker creates a new Asker. An empty model selects DefaultModel.
func NewAsker(client *genai.Client, model string) *Asker {
	if model == "" {
		model = DefaultModel
	}
	return &Asker{client: client, model: model}
}

// Ask sends the conversation history followed by prompt and returns the reply.
func (a *Asker) Ask(ctx context.Context, history medibot.Transcript, prompt string) (string, error) {
	if prompt == "" {
		return "", medibot.Errorf(medibot.EINVALID, "prompt required")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, BuildContents(history, prompt), BuildConfig())
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", medibot.Errorf(medibot.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful medical assistant. You help people find a suitable doctor and answer general questions. You do not diagnose.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildContents maps the transcript onto Gemini's user/model turns and adds
// prompt as the final user turn.
func BuildContents(history medibot.Transcript, prompt string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.RoleUser
		if turn.Role == medibot.RoleBot {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return append(contents, genai.NewContentFromText(prompt, genai.RoleUser))
}
