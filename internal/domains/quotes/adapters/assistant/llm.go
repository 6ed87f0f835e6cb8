// Package assistant adapts the chat completions client to the quotes
// Assistant port.
package assistant

import (
	"context"

	"github.com/cabinetworks/storefront/internal/clients/http/llm"
	"github.com/cabinetworks/storefront/internal/domains/quotes/domain"
	"github.com/cabinetworks/storefront/internal/domains/quotes/ports"
)

var _ ports.Assistant = (*LLM)(nil)

type LLM struct {
	client *llm.Client
}

func NewLLM(client *llm.Client) *LLM {
	return &LLM{client: client}
}

func (a *LLM) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	converted := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		converted = append(converted, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return a.client.Complete(ctx, converted)
}
