// Package services – ChatService
//
// This file implements ChatService, the application-level component behind
// the supportive chat endpoint. Every message is classified for sentiment
// before anything else happens; a detected crisis phrase short-circuits the
// AI call entirely and the exchange is answered from fixed crisis resources.
// Persistence of history and sentiment rows is best-effort: a storage failure
// is logged and the user still gets a reply.
//
// Replies are returned as plain text plus flags. Presentation (the HTML
// fragments) is applied at the handler layer, never stored.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dilazaad/go-support-backend/internal/ai"
	"github.com/dilazaad/go-support-backend/internal/domain"
	"github.com/dilazaad/go-support-backend/internal/repo"
	"github.com/dilazaad/go-support-backend/internal/sentiment"
)

const (
	// crisisChatMarker is stored as the assistant response of a crisis
	// exchange instead of a generated reply.
	crisisChatMarker = "Crisis intervention resources provided"

	// fallbackReply answers the user when the AI provider is unavailable.
	fallbackReply = "I'm here to help. Could you tell me more about how you're feeling?"

	// sentimentClipRunes bounds the message text copied into sentiment rows.
	sentimentClipRunes = 500
)

// Reply is the outcome of one chat exchange. Text is always plain text; the
// Crisis and Fallback flags tell the presentation layer which fragment to wrap
// it in.
type Reply struct {
	Text      string
	Crisis    bool
	Fallback  bool
	Sentiment sentiment.Result
}

// ChatService coordinates classification, the AI collaborator, and history.
type ChatService struct {
	DB        *gorm.DB
	Responder ai.Responder

	// MaxMessageRunes caps accepted messages; 0 disables the cap.
	MaxMessageRunes int
	// HistoryLimit bounds rows returned by History and Insights.
	HistoryLimit int
}

// Respond handles one user message. A userID of 0 denotes a guest session:
// the exchange is answered normally but nothing is persisted.
func (s *ChatService) Respond(ctx context.Context, userID uint, message string) (*Reply, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Respond",
		trace.WithAttributes(attribute.Int64("user.id", int64(userID))),
	)
	defer span.End()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(message) > s.MaxMessageRunes {
		return nil, ErrTooLong
	}

	res := sentiment.Classify(message)
	span.SetAttributes(
		attribute.String("sentiment.label", res.Sentiment),
		attribute.Bool("sentiment.crisis", res.CrisisDetected),
	)

	s.recordSentiment(ctx, userID, message, res)

	reply := &Reply{Sentiment: res}
	if res.CrisisDetected {
		reply.Crisis = true
		reply.Text = crisisChatMarker
		s.recordChat(ctx, userID, message, crisisChatMarker)
		return reply, nil
	}

	text, err := s.Responder.Generate(ctx, supportPrompt(message))
	if err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("ai responder failed, serving fallback")
		reply.Fallback = true
		text = fallbackReply
	}
	reply.Text = text

	s.recordChat(ctx, userID, message, text)
	return reply, nil
}

// History returns the user's most recent exchanges, oldest first. limit
// values outside (0, HistoryLimit] fall back to the configured default.
func (s *ChatService) History(ctx context.Context, userID uint, limit int) ([]domain.ChatRecord, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(attribute.Int64("user.id", int64(userID))),
	)
	defer span.End()

	if limit <= 0 || limit > s.limit() {
		limit = s.limit()
	}
	return repo.ListChatHistory(ctx, s.DB, userID, limit)
}

// Insights summarizes the user's recent sentiment rows.
type Insights struct {
	Total       int64            `json:"total_messages"`
	CrisisCount int64            `json:"crisis_count"`
	Counts      map[string]int64 `json:"sentiment_counts"`
	Recent      []InsightEntry   `json:"recent"`
}

// InsightEntry is one sentiment row shaped for the insights endpoint.
type InsightEntry struct {
	Sentiment  string    `json:"sentiment"`
	Confidence float64   `json:"confidence_score"`
	CrisisFlag int       `json:"crisis_flag"`
	Timestamp  time.Time `json:"timestamp"`
}

// SentimentInsights aggregates the user's recent sentiment history. limit
// follows the same clamping as History.
func (s *ChatService) SentimentInsights(ctx context.Context, userID uint, limit int) (*Insights, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "SentimentInsights",
		trace.WithAttributes(attribute.Int64("user.id", int64(userID))),
	)
	defer span.End()

	if limit <= 0 || limit > s.limit() {
		limit = s.limit()
	}
	rows, err := repo.ListSentiment(ctx, s.DB, userID, limit)
	if err != nil {
		return nil, err
	}

	out := &Insights{
		Counts: make(map[string]int64),
		Recent: make([]InsightEntry, 0, len(rows)),
	}
	for _, r := range rows {
		out.Total++
		out.Counts[r.Sentiment]++
		if r.CrisisFlag != 0 {
			out.CrisisCount++
		}
		out.Recent = append(out.Recent, InsightEntry{
			Sentiment:  r.Sentiment,
			Confidence: r.ConfidenceScore,
			CrisisFlag: r.CrisisFlag,
			Timestamp:  r.Timestamp,
		})
	}
	return out, nil
}

// recordSentiment persists the classification outcome. Guest sessions and
// storage failures are silently skipped; the chat must keep working when the
// analytics table does not.
func (s *ChatService) recordSentiment(ctx context.Context, userID uint, message string, res sentiment.Result) {
	if userID == 0 {
		return
	}
	flag := 0
	if res.CrisisDetected {
		flag = 1
	}
	rec := &domain.SentimentRecord{
		UserID:          userID,
		UserMessage:     clipRunes(message, sentimentClipRunes),
		Sentiment:       res.Sentiment,
		ConfidenceScore: res.Confidence,
		CrisisFlag:      flag,
	}
	if err := repo.AppendSentiment(ctx, s.DB, rec); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("sentiment row not persisted")
	}
}

// recordChat persists one exchange, skipping guests.
func (s *ChatService) recordChat(ctx context.Context, userID uint, message, response string) {
	if userID == 0 {
		return
	}
	if _, err := repo.AppendChat(ctx, s.DB, userID, message, response); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("chat row not persisted")
	}
}

func (s *ChatService) limit() int {
	if s.HistoryLimit > 0 {
		return s.HistoryLimit
	}
	return 50
}

// supportPrompt frames the user's message for the AI collaborator.
func supportPrompt(message string) string {
	return fmt.Sprintf(
		"You are a compassionate mental health support companion. "+
			"Respond with warmth and empathy in 2-3 sentences. "+
			"Never give medical advice or diagnoses.\n\nUser: %s",
		message,
	)
}

// clipRunes truncates s to at most n runes.
func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
