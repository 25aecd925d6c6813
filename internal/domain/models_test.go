package domain

import "testing"

func TestTableNames(t *testing.T) {
	if got := (User{}).TableName(); got != "users" {
		t.Fatalf("User table = %q", got)
	}
	if got := (ChatRecord{}).TableName(); got != "chat_history" {
		t.Fatalf("ChatRecord table = %q", got)
	}
	if got := (SentimentRecord{}).TableName(); got != "sentiment_tracking" {
		t.Fatalf("SentimentRecord table = %q", got)
	}
	if got := (UserStreak{}).TableName(); got != "user_streaks" {
		t.Fatalf("UserStreak table = %q", got)
	}
}

func TestUserStreak_History_EmptyAndMalformed(t *testing.T) {
	var s UserStreak

	if h := s.History(); len(h) != 0 {
		t.Fatalf("empty column should decode to empty map, got %v", h)
	}

	s.StreakHistory = "{not-json"
	if h := s.History(); len(h) != 0 {
		t.Fatalf("malformed column should decode to empty map, got %v", h)
	}
}

func TestUserStreak_SetHistory_RoundTrip(t *testing.T) {
	var s UserStreak
	if err := s.SetHistory(map[string]bool{"2024-01-01": true, "2024-01-03": false}); err != nil {
		t.Fatalf("SetHistory: %v", err)
	}

	h := s.History()
	if !h["2024-01-01"] {
		t.Fatalf("expected 2024-01-01 checked in, got %v", h)
	}
	if h["2024-01-03"] {
		t.Fatalf("expected 2024-01-03 not checked in, got %v", h)
	}
}

func TestUserStreak_SetHistory_Nil(t *testing.T) {
	var s UserStreak
	if err := s.SetHistory(nil); err != nil {
		t.Fatalf("SetHistory(nil): %v", err)
	}
	if s.StreakHistory != "{}" {
		t.Fatalf("nil history should persist as {}, got %q", s.StreakHistory)
	}
}
