package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinetworks/storefront/internal/domains/quotes/adapters/memory"
	"github.com/cabinetworks/storefront/internal/domains/quotes/domain"
	"github.com/cabinetworks/storefront/internal/domains/quotes/ports"
)

type scriptedAssistant struct {
	reply string
	err   error
	seen  [][]domain.Message
}

func (a *scriptedAssistant) Complete(_ context.Context, messages []domain.Message) (string, error) {
	a.seen = append(a.seen, messages)
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

func draftQuote(t *testing.T) *domain.Quote {
	t.Helper()
	quote, err := domain.NewQuote(7, "Pat Mason", "pat@example.com", "555-0101", "kitchen", "10x12", domain.CabinetSpec{
		CabinetType: "base", DoorStyle: "shaker", WoodSpecies: "maple", Finish: "natural", Hardware: "brass",
	})
	require.NoError(t, err)
	return quote
}

func TestCreateQuote_StartsDraft(t *testing.T) {
	svc := NewService(memory.NewRepository())
	created, err := svc.CreateQuote(context.Background(), draftQuote(t))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, created.Entity.Status)
	assert.False(t, created.Metadata.CreatedAt.IsZero())
}

func TestCreateQuote_RequiresContact(t *testing.T) {
	svc := NewService(memory.NewRepository())
	quote := draftQuote(t)
	quote.CustomerEmail = ""
	_, err := svc.CreateQuote(context.Background(), quote)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateQuote_PatchesOnlyProvidedFields(t *testing.T) {
	svc := NewService(memory.NewRepository())
	created, err := svc.CreateQuote(context.Background(), draftQuote(t))
	require.NoError(t, err)

	status := domain.StatusReviewed
	estimated := decimal.RequireFromString("8500.00")
	updated, err := svc.UpdateQuote(context.Background(), created.Entity.ID, ports.QuoteUpdate{
		Status:        &status,
		EstimatedCost: &estimated,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReviewed, updated.Entity.Status)
	assert.True(t, updated.Entity.EstimatedCost.Equal(estimated))
	assert.Equal(t, "pat@example.com", updated.Entity.CustomerEmail)
}

func TestUpdateQuote_RejectsInvalidStatus(t *testing.T) {
	svc := NewService(memory.NewRepository())
	created, err := svc.CreateQuote(context.Background(), draftQuote(t))
	require.NoError(t, err)

	bogus := domain.Status("archived")
	_, err = svc.UpdateQuote(context.Background(), created.Entity.ID, ports.QuoteUpdate{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListQuotes_FiltersByUser(t *testing.T) {
	svc := NewService(memory.NewRepository())
	mine := draftQuote(t)
	_, err := svc.CreateQuote(context.Background(), mine)
	require.NoError(t, err)
	other := draftQuote(t)
	other.UserID = 8
	_, err = svc.CreateQuote(context.Background(), other)
	require.NoError(t, err)

	all, err := svc.ListQuotes(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListQuotes(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(7), filtered[0].Entity.UserID)
}

func TestChat_PrependsConsultantPrompt(t *testing.T) {
	assistant := &scriptedAssistant{reply: "What room is this for?"}
	svc := NewService(memory.NewRepository(), WithAssistant(assistant))

	reply, err := svc.Chat(context.Background(), 0, []domain.Message{
		{Role: "user", Content: "I want new cabinets"},
	})
	require.NoError(t, err)
	assert.Equal(t, "What room is this for?", reply)

	require.Len(t, assistant.seen, 1)
	sent := assistant.seen[0]
	require.Len(t, sent, 2)
	assert.Equal(t, "system", sent[0].Role)
	assert.Contains(t, sent[0].Content, "cabinet consultation assistant")
	assert.Equal(t, "I want new cabinets", sent[1].Content)
}

func TestChat_AppendsExchangeToQuote(t *testing.T) {
	assistant := &scriptedAssistant{reply: "Maple takes stain beautifully."}
	repo := memory.NewRepository()
	svc := NewService(repo, WithAssistant(assistant))

	created, err := svc.CreateQuote(context.Background(), draftQuote(t))
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), created.Entity.ID, []domain.Message{
		{Role: "user", Content: "Is maple a good choice?"},
	})
	require.NoError(t, err)

	stored, err := svc.GetQuote(context.Background(), created.Entity.ID)
	require.NoError(t, err)
	require.Len(t, stored.Entity.Conversation, 2)
	assert.Equal(t, "user", stored.Entity.Conversation[0].Role)
	assert.Equal(t, "assistant", stored.Entity.Conversation[1].Role)
	assert.Equal(t, "Maple takes stain beautifully.", stored.Entity.Conversation[1].Content)
}

func TestChat_UnknownQuoteStillReturnsReply(t *testing.T) {
	assistant := &scriptedAssistant{reply: "Happy to help!"}
	svc := NewService(memory.NewRepository(), WithAssistant(assistant))

	reply, err := svc.Chat(context.Background(), 999, []domain.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "Happy to help!", reply)
}

func TestChat_AssistantFailure(t *testing.T) {
	assistant := &scriptedAssistant{err: errors.New("rate limited")}
	svc := NewService(memory.NewRepository(), WithAssistant(assistant))

	_, err := svc.Chat(context.Background(), 0, []domain.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}

func TestDeleteQuote(t *testing.T) {
	svc := NewService(memory.NewRepository())
	created, err := svc.CreateQuote(context.Background(), draftQuote(t))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuote(context.Background(), created.Entity.ID))
	_, err = svc.GetQuote(context.Background(), created.Entity.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
