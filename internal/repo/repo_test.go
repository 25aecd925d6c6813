package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dilazaad/go-support-backend/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateUser_And_GetByUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "amna", "amna@example.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected assigned ID")
	}

	got, err := GetUserByUsername(ctx, db, "amna")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.Email != "amna@example.com" || got.LastLogin != nil {
		t.Fatalf("unexpected user %+v", got)
	}

	if _, err := GetUserByUsername(ctx, db, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, db, "amna", "a@example.com", "h"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := CreateUser(ctx, db, "amna", "b@example.com", "h"); err == nil {
		t.Fatalf("expected unique-constraint error for duplicate username")
	}
	if _, err := CreateUser(ctx, db, "other", "a@example.com", "h"); err == nil {
		t.Fatalf("expected unique-constraint error for duplicate email")
	}
}

func TestTouchLastLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "amna", "amna@example.com", "h")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	at := time.Date(2024, time.April, 5, 12, 0, 0, 0, time.UTC)
	if err := TouchLastLogin(ctx, db, u.ID, at); err != nil {
		t.Fatalf("TouchLastLogin: %v", err)
	}

	got, err := GetUser(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.LastLogin == nil || !got.LastLogin.Equal(at) {
		t.Fatalf("LastLogin = %v; want %v", got.LastLogin, at)
	}

	if err := TouchLastLogin(ctx, db, 9999, at); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestListChatHistory_LimitAndOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		rec := &domain.ChatRecord{
			UserID:    7,
			Message:   fmt.Sprintf("m%d", i),
			Response:  fmt.Sprintf("r%d", i),
			Timestamp: time.Date(2024, time.June, i, 0, 0, 0, 0, time.UTC),
		}
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	out, err := ListChatHistory(ctx, db, 7, 3)
	if err != nil {
		t.Fatalf("ListChatHistory: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d; want 3", len(out))
	}
	// Most recent three, oldest first: m3, m4, m5.
	if out[0].Message != "m3" || out[2].Message != "m5" {
		t.Fatalf("unexpected order: %q .. %q", out[0].Message, out[2].Message)
	}
}

func TestListChatHistory_Empty(t *testing.T) {
	db := newTestDB(t)
	out, err := ListChatHistory(context.Background(), db, 42, 50)
	if err != nil {
		t.Fatalf("ListChatHistory: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty slice, got %d rows", len(out))
	}
}

func TestChatStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	total, ts, err := ChatStats(ctx, db, 1)
	if err != nil || total != 0 || ts != nil {
		t.Fatalf("empty stats = (%d, %v, %v)", total, ts, err)
	}

	newest := time.Date(2024, time.June, 2, 10, 0, 0, 0, time.UTC)
	seed := []time.Time{time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC), newest}
	for i, at := range seed {
		rec := &domain.ChatRecord{UserID: 1, Message: fmt.Sprintf("m%d", i), Response: "r", Timestamp: at}
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	total, ts, err = ChatStats(ctx, db, 1)
	if err != nil {
		t.Fatalf("ChatStats: %v", err)
	}
	if total != 2 || ts == nil || !ts.Equal(newest) {
		t.Fatalf("stats = (%d, %v); want (2, %v)", total, ts, newest)
	}
}

func TestAppendSentiment_And_List(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec := &domain.SentimentRecord{
		UserID:          3,
		UserMessage:     "I want to die",
		Sentiment:       domain.SentimentSevereNegative,
		ConfidenceScore: 0.8,
		CrisisFlag:      1,
	}
	if err := AppendSentiment(ctx, db, rec); err != nil {
		t.Fatalf("AppendSentiment: %v", err)
	}
	if rec.Timestamp.IsZero() {
		t.Fatalf("timestamp not defaulted")
	}

	out, err := ListSentiment(ctx, db, 3, 50)
	if err != nil {
		t.Fatalf("ListSentiment: %v", err)
	}
	if len(out) != 1 || out[0].CrisisFlag != 1 {
		t.Fatalf("unexpected rows %+v", out)
	}
}

func TestGetOrCreateStreak_Lazy(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s, err := GetOrCreateStreak(ctx, db, 11)
	if err != nil {
		t.Fatalf("GetOrCreateStreak: %v", err)
	}
	if s.CurrentStreak != 0 || s.TotalCheckins != 0 || s.StreakHistory != "{}" {
		t.Fatalf("fresh row = %+v", s)
	}

	// Second call returns the same row, not a new one.
	again, err := GetOrCreateStreak(ctx, db, 11)
	if err != nil {
		t.Fatalf("second GetOrCreateStreak: %v", err)
	}
	if again.ID != s.ID {
		t.Fatalf("row recreated: %d vs %d", again.ID, s.ID)
	}
}

func TestStreak_SaveRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s, err := GetOrCreateStreak(ctx, db, 12)
	if err != nil {
		t.Fatalf("GetOrCreateStreak: %v", err)
	}

	s.CurrentStreak = 3
	s.LongestStreak = 5
	s.TotalCheckins = 9
	s.LastCheckin = "2024-01-03"
	if err := s.SetHistory(map[string]bool{"2024-01-03": true}); err != nil {
		t.Fatalf("SetHistory: %v", err)
	}
	if err := SaveStreak(ctx, db, s); err != nil {
		t.Fatalf("SaveStreak: %v", err)
	}

	got, err := GetOrCreateStreak(ctx, db, 12)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.CurrentStreak != 3 || got.LongestStreak != 5 || got.TotalCheckins != 9 {
		t.Fatalf("reloaded row = %+v", got)
	}
	if !got.History()["2024-01-03"] {
		t.Fatalf("history lost: %q", got.StreakHistory)
	}
}

func TestGetStreakForUpdate_InsideTransaction(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		s, err := GetStreakForUpdate(ctx, tx, 21)
		if err != nil {
			return err
		}
		s.CurrentStreak = 1
		s.LongestStreak = 1
		s.TotalCheckins = 1
		s.LastCheckin = "2024-02-01"
		return SaveStreak(ctx, tx, s)
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}

	got, err := GetOrCreateStreak(ctx, db, 21)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TotalCheckins != 1 || got.LastCheckin != "2024-02-01" {
		t.Fatalf("row = %+v", got)
	}
}
