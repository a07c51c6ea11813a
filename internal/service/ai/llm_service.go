package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// NameResolver asks a chat model which saved application a free-text name refers to.
type NameResolver struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewNameResolver compiles the resolver chain around chatModel.
func NewNameResolver(ctx context.Context, chatModel model.BaseChatModel) (*NameResolver, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(resolverSystemPrompt),
		schema.UserMessage(resolverUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile resolver chain: %w", err)
	}

	return &NameResolver{chain: runnable}, nil
}

// Resolve returns the candidate the model picked. ok is false when the model
// answered NONE or named something outside candidates.
func (r *NameResolver) Resolve(ctx context.Context, raw string, candidates []string) (string, bool, error) {
	if len(candidates) == 0 {
		return "", false, nil
	}

	response, err := r.chain.Invoke(ctx, map[string]any{
		"candidates": strings.Join(candidates, "\n"),
		"query":      raw,
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to run resolver chain: %w", err)
	}

	answer := strings.Trim(strings.TrimSpace(response.Content), `"'.`)
	if answer == "" || strings.EqualFold(answer, noneAnswer) {
		return "", false, nil
	}

	for _, candidate := range candidates {
		if strings.EqualFold(candidate, answer) {
			log.Printf("[ai] resolved %q to %q", raw, candidate)
			return candidate, true, nil
		}
	}
	return "", false, nil
}
