package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/acebot/backend/internal/domain"
	"github.com/acebot/backend/internal/infrastructure/sites"
	"github.com/acebot/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	conversations *usecase.ConversationService
	discovery     *usecase.DiscoveryService
	catalog       domain.CatalogStore
}

// NewHandler creates a new HTTP handler
func NewHandler(
	conversations *usecase.ConversationService,
	discovery *usecase.DiscoveryService,
	catalog domain.CatalogStore,
) *Handler {
	return &Handler{
		conversations: conversations,
		discovery:     discovery,
		catalog:       catalog,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "acebot-backend",
		"version": "1.0.0",
	})
}

type chatRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

// Chat resolves one utterance and streams the reply as plain text.
// The session id travels in the X-Session-Id header both ways; an empty or
// unknown id starts a fresh session. Canned and fetch replies arrive as a
// single chunk, completion replies as a token stream.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	// The header takes precedence; the body field serves clients that cannot
	// read response headers.
	requested := c.GetHeader("X-Session-Id")
	if requested == "" {
		requested = req.SessionID
	}
	sessionID := h.conversations.EnsureSession(requested)
	c.Header("X-Session-Id", sessionID)

	reply, err := h.conversations.Resolve(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("chat resolution failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate a reply"})
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)

	switch reply.Kind {
	case domain.ReplyStream:
		c.Stream(func(w io.Writer) bool {
			token, ok := <-reply.Stream
			if !ok {
				return false
			}
			_, _ = w.Write([]byte(token))
			return true
		})
	default:
		_, _ = c.Writer.WriteString(reply.Text)
		c.Writer.Flush()
	}
}

type searchResponse struct {
	Products []domain.SiteResult `json:"products"`
	Message  searchMessage       `json:"message"`
}

type searchMessage struct {
	Text  string `json:"text"`
	Speak bool   `json:"speak"`
}

// SearchProducts runs a multi-site discovery, or a single-site fetch when the
// request pins a specific site. Discovered names are appended to the catalog
// in the background; the response never waits on that.
func (h *Handler) SearchProducts(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	var (
		results []domain.SiteResult
		err     error
	)
	if req.Mode == domain.ModeSpecificSites {
		results, err = h.discovery.FetchSingleSite(c.Request.Context(), req.Query, req.Site)
	} else {
		results, err = h.discovery.Discover(c.Request.Context(), req.Query, req.Mode)
	}
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrUnknownSite):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.indexAsync(results)

	c.JSON(http.StatusOK, searchResponse{
		Products: results,
		Message: searchMessage{
			Text:  summaryText(results),
			Speak: req.BotType == "voice",
		},
	})
}

// indexAsync hands the discovered records to the catalog without blocking the
// response. A fresh context detaches the write from the request lifetime.
func (h *Handler) indexAsync(results []domain.SiteResult) {
	var records []domain.ProductRecord
	for _, result := range results {
		records = append(records, result.Data...)
	}
	if len(records) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.catalog.AddProducts(ctx, records); err != nil {
			log.Warn().Err(err).Msg("catalog indexing failed")
		}
	}()
}

// summaryText builds the on-screen confirmation line from the contributing
// site labels, in result order.
func summaryText(results []domain.SiteResult) string {
	if len(results) == 0 {
		return "I couldn't find any matching products right now. Please try a different search."
	}

	labels := make([]string, 0, len(results))
	for _, result := range results {
		labels = append(labels, sites.Label(result.Site))
	}
	return "Here are the top products from " + joinLabels(labels) + " displayed on your screen."
}

// joinLabels renders ["A"], ["A","B"] and ["A","B","C"] as natural English.
func joinLabels(labels []string) string {
	switch len(labels) {
	case 1:
		return labels[0]
	case 2:
		return labels[0] + " and " + labels[1]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
	}
}
