package gemini

import (
	"context"

	"github.com/fwojciec/medibot"
	"google.golang.org/genai/tokenizer"
)

var _ medibot.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens locally with the Gemini tokenizer, so
// the recommendation prompt can be kept under budget without an API call.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for model.
// An empty model selects DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, medibot.Errorf(medibot.EUNAVAILABLE, "tokenizer for %s: %s", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens text takes as a single user turn.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens(BuildContents(nil, text), nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
