// Chat HTTP handlers.
//
// This file exposes REST endpoints for the supportive chat:
//   - POST /chat                  (one exchange; guests allowed)
//   - GET  /chat/history          (recent exchanges, ETag support)
//   - GET  /sentiment/insights    (sentiment aggregates)
//
// The chat endpoint returns an HTML fragment ready for insertion into the
// conversation view. Stored history stays plain text; the fragment is built
// here, at the transport boundary.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dilazaad/go-support-backend/internal/domain"
	"github.com/dilazaad/go-support-backend/internal/http/middleware"
	"github.com/dilazaad/go-support-backend/internal/render"
	"github.com/dilazaad/go-support-backend/internal/services"
	"github.com/dilazaad/go-support-backend/internal/utils"
)

// ChatService defines the chat operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ChatService interface {
	// Respond answers one message; userID 0 denotes a guest session.
	Respond(ctx context.Context, userID uint, message string) (*services.Reply, error)
	// History returns up to limit recent exchanges, oldest first; limit <= 0
	// applies the service default.
	History(ctx context.Context, userID uint, limit int) ([]domain.ChatRecord, error)
	// SentimentInsights aggregates up to limit recent sentiment rows.
	SentimentInsights(ctx context.Context, userID uint, limit int) (*services.Insights, error)
}

// ChatStatsFunc reports (total exchanges, newest timestamp) for a user.
// Used to build a weak ETag for the history endpoint.
type ChatStatsFunc func(ctx context.Context, userID uint) (int64, *time.Time, error)

// ChatRequest is the JSON payload for one chat exchange.
type ChatRequest struct {
	Message string `json:"message" example:"I had a rough day"`
}

// ChatResponse carries the rendered reply fragment plus classification flags.
type ChatResponse struct {
	Response       string `json:"response"`
	Sentiment      string `json:"sentiment"`
	CrisisDetected bool   `json:"crisis_detected"`
}

// HistoryEntry is one stored exchange shaped for the history endpoint.
type HistoryEntry struct {
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat handles POST /chat.
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	reply, err := h.chatSvc.Respond(c.Request.Context(), middleware.UserID(c), req.Message)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrEmptyMessage), errors.Is(err, services.ErrTooLong):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	default:
		fail(c, http.StatusInternalServerError, ErrCodeChatFailed, "could not answer message")
		return
	}

	var fragment string
	switch {
	case reply.Crisis:
		middleware.CrisisDetections.Inc()
		fragment = render.CrisisBlock
	case reply.Fallback:
		fragment = render.FallbackBlock(reply.Text)
	default:
		fragment = render.AssistantBlock(reply.Text)
	}

	ok(c, http.StatusOK, ChatResponse{
		Response:       fragment,
		Sentiment:      reply.Sentiment.Sentiment,
		CrisisDetected: reply.Crisis,
	})
}

// ChatHistory handles GET /chat/history. It answers 304 when the client's
// If-None-Match matches the current weak ETag.
func (h *Handlers) ChatHistory(c *gin.Context) {
	userID := middleware.UserID(c)

	if h.chatStats != nil {
		if total, newest, err := h.chatStats(c.Request.Context(), userID); err == nil {
			etag := historyETag(total, newest)
			c.Header("ETag", etag)
			if c.GetHeader("If-None-Match") == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	limit := utils.AtoiDefault(c.Query("limit"), 0)
	records, err := h.chatSvc.History(c.Request.Context(), userID, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load history")
		return
	}

	out := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		out = append(out, HistoryEntry{
			Message:   r.Message,
			Response:  r.Response,
			Timestamp: r.Timestamp,
		})
	}
	ok(c, http.StatusOK, gin.H{"chat_history": out})
}

// SentimentInsights handles GET /sentiment/insights.
func (h *Handlers) SentimentInsights(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), 0)
	in, err := h.chatSvc.SentimentInsights(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load insights")
		return
	}
	ok(c, http.StatusOK, in)
}

// historyETag builds a weak ETag from the row count and newest timestamp.
func historyETag(total int64, newest *time.Time) string {
	var ts int64
	if newest != nil {
		ts = newest.UnixNano()
	}
	return fmt.Sprintf(`W/"h-%d-%d"`, total, ts)
}
