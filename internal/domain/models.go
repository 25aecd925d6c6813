// Package domain defines the persistence models for users, chat exchanges,
// sentiment records, and per-user streak state. These types are mapped with
// GORM onto the stable four-table schema (users, chat_history,
// sentiment_tracking, user_streaks) that forms the on-disk contract of the
// application.
package domain

import (
	"encoding/json"
	"time"
)

// Sentiment labels produced by the classifier and stored verbatim in
// sentiment_tracking rows.
const (
	SentimentPositive       = "positive"
	SentimentNegative       = "negative"
	SentimentNeutral        = "neutral"
	SentimentSevereNegative = "severe_negative"
)

// User represents a registered account. Passwords are stored as bcrypt
// hashes only.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Username / Email: unique identity columns.
//   - PasswordHash: bcrypt hash, never serialized to JSON.
//   - CreatedAt: set at registration.
//   - LastLogin: updated on each successful login; nil until the first one.
type User struct {
	ID           uint       `json:"id"         gorm:"primaryKey"`
	Username     string     `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex"`
	Email        string     `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `json:"-"          gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// ChatRecord is one user/assistant exchange. Rows are append-only; the
// response is stored as plain text (display formatting happens at the HTTP
// boundary, never before persistence).
type ChatRecord struct {
	ID        uint      `json:"id"        gorm:"primaryKey"`
	UserID    uint      `json:"user_id"   gorm:"not null;index:idx_chat_user,priority:1"`
	Message   string    `json:"message"   gorm:"type:text;not null"`
	Response  string    `json:"response"  gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index:idx_chat_user,priority:2"`
}

// TableName returns the database table name for ChatRecord.
func (ChatRecord) TableName() string { return "chat_history" }

// SentimentRecord is the classifier outcome logged for one user message.
// Rows are append-only and power the sentiment insights view.
//
// CrisisFlag is an integer (0/1) rather than a bool to keep the column
// compatible with the original schema.
type SentimentRecord struct {
	ID              uint      `json:"id"               gorm:"primaryKey"`
	UserID          uint      `json:"user_id"          gorm:"not null;index:idx_sentiment_user,priority:1"`
	UserMessage     string    `json:"user_message"     gorm:"type:text"`
	Sentiment       string    `json:"sentiment"        gorm:"type:varchar(32)"`
	ConfidenceScore float64   `json:"confidence_score" gorm:"default:0.5"`
	CrisisFlag      int       `json:"crisis_flag"      gorm:"default:0"`
	Timestamp       time.Time `json:"timestamp"        gorm:"index:idx_sentiment_user,priority:2"`
}

// TableName returns the database table name for SentimentRecord.
func (SentimentRecord) TableName() string { return "sentiment_tracking" }

// UserStreak holds the single per-user check-in state row. It is created
// lazily on first access, mutated only by the check-in operation, and never
// deleted.
//
// Invariants:
//   - LongestStreak >= CurrentStreak at all times.
//   - TotalCheckins is monotonically increasing.
//   - History()[LastCheckin] is true whenever LastCheckin is set.
type UserStreak struct {
	ID            uint   `json:"id"             gorm:"primaryKey"`
	UserID        uint   `json:"user_id"        gorm:"not null;uniqueIndex"`
	CurrentStreak int    `json:"current_streak" gorm:"default:0"`
	LongestStreak int    `json:"longest_streak" gorm:"default:0"`
	LastCheckin   string `json:"last_checkin"   gorm:"type:varchar(10)"` // ISO date (YYYY-MM-DD); empty when never checked in
	TotalCheckins int    `json:"total_checkins" gorm:"default:0"`
	StreakHistory string `json:"-"              gorm:"type:text"` // JSON object: ISO date -> bool
}

// TableName returns the database table name for UserStreak.
func (UserStreak) TableName() string { return "user_streaks" }

// History decodes the streak_history column into a date->checked-in map.
// Malformed or empty JSON yields an empty map rather than an error, matching
// the tolerant read path of the original schema consumers.
func (s *UserStreak) History() map[string]bool {
	out := map[string]bool{}
	if s.StreakHistory == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s.StreakHistory), &out); err != nil {
		return map[string]bool{}
	}
	return out
}

// SetHistory encodes the map back into the streak_history column.
func (s *UserStreak) SetHistory(h map[string]bool) error {
	if h == nil {
		h = map[string]bool{}
	}
	b, err := json.Marshal(h)
	if err != nil {
		return err
	}
	s.StreakHistory = string(b)
	return nil
}
