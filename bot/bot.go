// Package bot implements the chat flows on top of the doctor directory and
// a text-generation model.
package bot

import (
	"context"
	"strings"

	"github.com/fwojciec/medibot"
)

// DefaultMaxPromptTokens bounds the recommendation prompt when a token
// counter is configured.
const DefaultMaxPromptTokens = 8000

// Recommendation is the result of a symptom search.
type Recommendation struct {
	// Doctors holds every match, including any left out of the prompt.
	Doctors []*medibot.SymptomMatch `json:"doctors"`
	// Summary is the model's write-up of the matched doctors.
	Summary string `json:"summary"`
	// Included is the number of leading Doctors that were sent to the model.
	Included int `json:"included"`
}

// Bot answers user input. It holds no conversation state: every call takes
// the caller's transcript and returns the extended one.
type Bot struct {
	Directory medibot.DirectoryService
	Asker     medibot.Asker

	// TokenCounter is optional. When set, doctors are dropped from the end
	// of the recommendation prompt until it fits MaxPromptTokens.
	TokenCounter    medibot.TokenCounter
	MaxPromptTokens int
}

// Recommend finds doctors for the symptoms and asks the model to summarize
// them. Returns EINVALID for blank input and ENOTFOUND when no doctor
// matches; in both cases the transcript is returned unchanged.
func (b *Bot) Recommend(ctx context.Context, tr medibot.Transcript, symptoms string) (*Recommendation, medibot.Transcript, error) {
	if strings.TrimSpace(symptoms) == "" {
		return nil, tr, medibot.Errorf(medibot.EINVALID, "symptoms required")
	}

	matches, err := b.Directory.FindBySymptom(ctx, symptoms)
	if err != nil {
		return nil, tr, err
	}
	if len(matches) == 0 {
		return nil, tr, medibot.Errorf(medibot.ENOTFOUND, "no matching doctors found for %q", symptoms)
	}

	prompt, included, err := b.recommendationPrompt(ctx, symptoms, matches)
	if err != nil {
		return nil, tr, err
	}

	summary, err := b.Asker.Ask(ctx, tr, prompt)
	if err != nil {
		return nil, tr, err
	}

	rec := &Recommendation{Doctors: matches, Summary: summary, Included: included}
	return rec, tr.Append(medibot.RoleUser, symptoms).Append(medibot.RoleBot, summary), nil
}

// Answer asks the model a free-form question.
// Returns EINVALID for blank input.
func (b *Bot) Answer(ctx context.Context, tr medibot.Transcript, question string) (string, medibot.Transcript, error) {
	if strings.TrimSpace(question) == "" {
		return "", tr, medibot.Errorf(medibot.EINVALID, "question required")
	}

	answer, err := b.Asker.Ask(ctx, tr, medibot.BuildAnswerPrompt(question))
	if err != nil {
		return "", tr, err
	}

	return answer, tr.Append(medibot.RoleUser, question).Append(medibot.RoleBot, answer), nil
}

// Specializations lists the labels that can be passed to Browse.
func (b *Bot) Specializations(ctx context.Context) ([]string, error) {
	return b.Directory.ListSpecializations(ctx)
}

// Browse lists the doctors of one specialization. An unknown label yields
// an empty list.
func (b *Bot) Browse(ctx context.Context, label string) ([]*medibot.SpecialistListing, error) {
	return b.Directory.FindBySpecialization(ctx, label)
}

// recommendationPrompt builds the prompt and reports how many matches it
// includes. At least one match is always kept.
func (b *Bot) recommendationPrompt(ctx context.Context, symptoms string, matches []*medibot.SymptomMatch) (string, int, error) {
	prompt := medibot.BuildRecommendationPrompt(symptoms, matches)
	if b.TokenCounter == nil {
		return prompt, len(matches), nil
	}

	limit := b.MaxPromptTokens
	if limit <= 0 {
		limit = DefaultMaxPromptTokens
	}

	n := len(matches)
	for {
		tokens, err := b.TokenCounter.CountTokens(ctx, prompt)
		if err != nil {
			return "", 0, err
		}
		if tokens <= limit || n == 1 {
			return prompt, n, nil
		}
		n--
		prompt = medibot.BuildRecommendationPrompt(symptoms, matches[:n])
	}
}
