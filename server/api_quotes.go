package storefrontserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	quotesapp "github.com/cabinetworks/storefront/internal/domains/quotes/application"
	quotesdomain "github.com/cabinetworks/storefront/internal/domains/quotes/domain"
	quotesports "github.com/cabinetworks/storefront/internal/domains/quotes/ports"
	apierrors "github.com/cabinetworks/storefront/internal/shared/errors"
)

// QuotesAPI wires HTTP transport with the quotes bounded context service.
type QuotesAPI struct {
	service quotesports.Service
}

// NewQuotesAPI creates a QuotesAPI backed by the provided service.
func NewQuotesAPI(service quotesports.Service) QuotesAPI {
	return QuotesAPI{service: service}
}

// ChatMessage is one turn of the design consultation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Quote is a custom-cabinet estimate as rendered to clients.
type Quote struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId,omitempty"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	RoomType      string          `json:"roomType,omitempty"`
	Dimensions    string          `json:"dimensions,omitempty"`
	CabinetType   string          `json:"cabinetType,omitempty"`
	DoorStyle     string          `json:"doorStyle,omitempty"`
	WoodSpecies   string          `json:"woodSpecies,omitempty"`
	Finish        string          `json:"finish,omitempty"`
	Hardware      string          `json:"hardware,omitempty"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
	MaterialsCost decimal.Decimal `json:"materialsCost"`
	LaborCost     decimal.Decimal `json:"laborCost"`
	HardwareCost  decimal.Decimal `json:"hardwareCost"`
	Status        string          `json:"status"`
	CRMLeadID     string          `json:"crmLeadId,omitempty"`
	SentToCRM     bool            `json:"sentToCrm"`
	Conversation  []ChatMessage   `json:"conversation,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CreateQuoteRequest opens a new draft quote.
type CreateQuoteRequest struct {
	CustomerName  string        `json:"customerName" binding:"required"`
	CustomerEmail string        `json:"customerEmail" binding:"required"`
	CustomerPhone string        `json:"customerPhone"`
	RoomType      string        `json:"roomType"`
	Dimensions    string        `json:"dimensions"`
	CabinetType   string        `json:"cabinetType"`
	DoorStyle     string        `json:"doorStyle"`
	WoodSpecies   string        `json:"woodSpecies"`
	Finish        string        `json:"finish"`
	Hardware      string        `json:"hardware"`
	Conversation  []ChatMessage `json:"conversation"`
	Notes         string        `json:"notes"`
}

// UpdateQuoteRequest patches a quote. Absent fields are left unchanged.
type UpdateQuoteRequest struct {
	Status        *string          `json:"status"`
	EstimatedCost *decimal.Decimal `json:"estimatedCost"`
	MaterialsCost *decimal.Decimal `json:"materialsCost"`
	LaborCost     *decimal.Decimal `json:"laborCost"`
	HardwareCost  *decimal.Decimal `json:"hardwareCost"`
	CRMLeadID     *string          `json:"crmLeadId"`
	SentToCRM     *bool            `json:"sentToCrm"`
	Notes         *string          `json:"notes"`
}

// ChatRequest sends a consultation conversation to the assistant. A non-zero
// QuoteID appends the exchange to that quote's stored conversation.
type ChatRequest struct {
	QuoteID  int64         `json:"quoteId"`
	Messages []ChatMessage `json:"messages" binding:"required"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

func toDomainMessages(messages []ChatMessage) []quotesdomain.Message {
	out := make([]quotesdomain.Message, 0, len(messages))
	for _, msg := range messages {
		out = append(out, quotesdomain.Message{Role: msg.Role, Content: msg.Content})
	}
	return out
}

func fromQuote(projection *quotesports.QuoteProjection) Quote {
	quote := projection.Entity
	view := Quote{
		ID:            quote.ID,
		UserID:        quote.UserID,
		CustomerName:  quote.CustomerName,
		CustomerEmail: quote.CustomerEmail,
		CustomerPhone: quote.CustomerPhone,
		RoomType:      quote.RoomType,
		Dimensions:    quote.Dimensions,
		CabinetType:   quote.Cabinet.CabinetType,
		DoorStyle:     quote.Cabinet.DoorStyle,
		WoodSpecies:   quote.Cabinet.WoodSpecies,
		Finish:        quote.Cabinet.Finish,
		Hardware:      quote.Cabinet.Hardware,
		EstimatedCost: quote.EstimatedCost,
		MaterialsCost: quote.MaterialsCost,
		LaborCost:     quote.LaborCost,
		HardwareCost:  quote.HardwareCost,
		Status:        string(quote.Status),
		CRMLeadID:     quote.CRMLeadID,
		SentToCRM:     quote.SentToCRM,
		Notes:         quote.Notes,
		CreatedAt:     projection.Metadata.CreatedAt,
		UpdatedAt:     projection.Metadata.UpdatedAt,
	}
	for _, msg := range quote.Conversation {
		view.Conversation = append(view.Conversation, ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return view
}

// Post /api/quotes
// Opens a new draft quote
func (api *QuotesAPI) CreateQuote(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	var payload CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	quote, err := quotesdomain.NewQuote(
		userID,
		payload.CustomerName,
		payload.CustomerEmail,
		payload.CustomerPhone,
		payload.RoomType,
		payload.Dimensions,
		quotesdomain.CabinetSpec{
			CabinetType: payload.CabinetType,
			DoorStyle:   payload.DoorStyle,
			WoodSpecies: payload.WoodSpecies,
			Finish:      payload.Finish,
			Hardware:    payload.Hardware,
		},
	)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	quote.Notes = payload.Notes
	quote.Append(toDomainMessages(payload.Conversation)...)
	created, err := api.service.CreateQuote(c.Request.Context(), quote)
	if err != nil {
		respondQuotesError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromQuote(created))
}

// Get /api/quotes/:quoteId
// Find quote by ID
func (api *QuotesAPI) GetQuote(c *gin.Context) {
	id, ok := parseIDParam(c, "quoteId")
	if !ok {
		return
	}
	quote, err := api.service.GetQuote(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, quotesports.ErrNotFound) {
			respondProblem(c, apierrors.NewNotFoundProblem("quote", id))
			return
		}
		respondQuotesError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromQuote(quote))
}

// Get /api/quotes
// Lists quotes newest first, scoped to the authenticated user when present
func (api *QuotesAPI) ListQuotes(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	quotes, err := api.service.ListQuotes(c.Request.Context(), userID)
	if err != nil {
		respondQuotesError(c, err)
		return
	}
	views := make([]Quote, 0, len(quotes))
	for _, quote := range quotes {
		views = append(views, fromQuote(quote))
	}
	c.JSON(http.StatusOK, views)
}

// Patch /api/quotes/:quoteId
// Patches quote status, costs, CRM linkage, or notes
func (api *QuotesAPI) UpdateQuote(c *gin.Context) {
	id, ok := parseIDParam(c, "quoteId")
	if !ok {
		return
	}
	var payload UpdateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	update := quotesports.QuoteUpdate{
		EstimatedCost: payload.EstimatedCost,
		MaterialsCost: payload.MaterialsCost,
		LaborCost:     payload.LaborCost,
		HardwareCost:  payload.HardwareCost,
		CRMLeadID:     payload.CRMLeadID,
		SentToCRM:     payload.SentToCRM,
		Notes:         payload.Notes,
	}
	if payload.Status != nil {
		status := quotesdomain.Status(*payload.Status)
		update.Status = &status
	}
	updated, err := api.service.UpdateQuote(c.Request.Context(), id, update)
	if err != nil {
		respondQuotesError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromQuote(updated))
}

// Delete /api/quotes/:quoteId
// Deletes a quote
func (api *QuotesAPI) DeleteQuote(c *gin.Context) {
	id, ok := parseIDParam(c, "quoteId")
	if !ok {
		return
	}
	if err := api.service.DeleteQuote(c.Request.Context(), id); err != nil {
		respondQuotesError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /api/quotes/chat
// Sends the consultation conversation to the design assistant
func (api *QuotesAPI) Chat(c *gin.Context) {
	var payload ChatRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	reply, err := api.service.Chat(c.Request.Context(), payload.QuoteID, toDomainMessages(payload.Messages))
	if err != nil {
		respondQuotesError(c, err)
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

func respondQuotesError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quotesports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, quotesapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
