// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for chat_history
// and sentiment_tracking rows. Both tables are append-only.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dilazaad/go-support-backend/internal/domain"
)

// AppendChat inserts one user/assistant exchange. The response must already
// be plain text; display formatting never reaches this layer.
func AppendChat(ctx context.Context, db *gorm.DB, userID uint, message, response string) (*domain.ChatRecord, error) {
	rec := &domain.ChatRecord{
		UserID:    userID,
		Message:   message,
		Response:  response,
		Timestamp: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// ListChatHistory returns up to limit most recent exchanges for the user,
// reordered oldest-first for display. It returns an empty slice if the user
// has no history.
func ListChatHistory(ctx context.Context, db *gorm.DB, userID uint, limit int) ([]domain.ChatRecord, error) {
	var out []domain.ChatRecord
	q := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	// Reverse: query fetches newest-first to honor the limit, the caller
	// renders oldest-first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ChatStats returns the exchange count and newest timestamp for a user's
// history. Used to build weak ETags for the history endpoint.
func ChatStats(ctx context.Context, db *gorm.DB, userID uint) (int64, *time.Time, error) {
	var total int64
	if err := db.WithContext(ctx).
		Model(&domain.ChatRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}
	if total == 0 {
		return 0, nil, nil
	}

	var rec domain.ChatRecord
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		First(&rec).Error; err != nil {
		return total, nil, err
	}
	ts := rec.Timestamp
	return total, &ts, nil
}

// AppendSentiment inserts one classifier outcome row.
func AppendSentiment(ctx context.Context, db *gorm.DB, rec *domain.SentimentRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(rec).Error
}

// ListSentiment returns up to limit most recent sentiment rows for the user,
// newest first (the analytics view shows recent entries at the top).
func ListSentiment(ctx context.Context, db *gorm.DB, userID uint, limit int) ([]domain.SentimentRecord, error) {
	var out []domain.SentimentRecord
	q := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
