// Package services – StreakService
//
// This file implements StreakService, which applies the pure check-in state
// machine to the persisted per-user streak row. The read-modify-write runs
// inside a transaction with the row locked, so two concurrent check-ins for
// the same user serialize and the duplicate loses deterministically.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dilazaad/go-support-backend/internal/repo"
	"github.com/dilazaad/go-support-backend/internal/streak"
)

// ErrAlreadyCheckedIn is returned when the user has already checked in on the
// same calendar day.
var ErrAlreadyCheckedIn = streak.ErrAlreadyCheckedIn

// CheckinResult carries the streak state after a check-in attempt. It is
// populated on ErrAlreadyCheckedIn too, so handlers can show current numbers.
type CheckinResult struct {
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	TotalCheckins int    `json:"total_checkins"`
	Message       string `json:"message"`
}

// StreakOverview is the read-side shape for the streak page.
type StreakOverview struct {
	CurrentStreak  int                  `json:"current_streak"`
	LongestStreak  int                  `json:"longest_streak"`
	TotalCheckins  int                  `json:"total_checkins"`
	LastCheckin    string               `json:"last_checkin"`
	CheckedInToday bool                 `json:"checked_in_today"`
	Calendar       []streak.CalendarDay `json:"calendar"`
}

// StreakService owns daily check-ins and the streak overview.
type StreakService struct {
	DB *gorm.DB

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// CheckIn records today's check-in for the user and returns the updated
// numbers with an encouragement line. A repeat check-in on the same day
// returns ErrAlreadyCheckedIn alongside the unchanged numbers.
func (s *StreakService) CheckIn(ctx context.Context, userID uint) (*CheckinResult, error) {
	tr := otel.Tracer("services/StreakService")
	ctx, span := tr.Start(ctx, "CheckIn",
		trace.WithAttributes(attribute.Int64("user.id", int64(userID))),
	)
	defer span.End()

	today := s.now()

	var out *CheckinResult
	var dup bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := repo.GetStreakForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		prev := streak.State{
			CurrentStreak: row.CurrentStreak,
			LongestStreak: row.LongestStreak,
			TotalCheckins: row.TotalCheckins,
			LastCheckin:   row.LastCheckin,
			History:       row.History(),
		}

		next, err := streak.Checkin(prev, today)
		if errors.Is(err, streak.ErrAlreadyCheckedIn) {
			dup = true
			out = &CheckinResult{
				CurrentStreak: prev.CurrentStreak,
				LongestStreak: prev.LongestStreak,
				TotalCheckins: prev.TotalCheckins,
				Message:       "You've already checked in today. Come back tomorrow!",
			}
			return nil // nothing to write; don't roll back for a duplicate
		}
		if err != nil {
			return err
		}

		row.CurrentStreak = next.CurrentStreak
		row.LongestStreak = next.LongestStreak
		row.TotalCheckins = next.TotalCheckins
		row.LastCheckin = next.LastCheckin
		if err := row.SetHistory(next.History); err != nil {
			return err
		}
		if err := repo.SaveStreak(ctx, tx, row); err != nil {
			return err
		}

		out = &CheckinResult{
			CurrentStreak: next.CurrentStreak,
			LongestStreak: next.LongestStreak,
			TotalCheckins: next.TotalCheckins,
			Message:       streak.Encouragement(next.CurrentStreak),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if dup {
		return out, ErrAlreadyCheckedIn
	}
	return out, nil
}

// Overview returns the user's streak numbers plus the rolling 30-day calendar.
func (s *StreakService) Overview(ctx context.Context, userID uint) (*StreakOverview, error) {
	tr := otel.Tracer("services/StreakService")
	ctx, span := tr.Start(ctx, "Overview",
		trace.WithAttributes(attribute.Int64("user.id", int64(userID))),
	)
	defer span.End()

	row, err := repo.GetOrCreateStreak(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	return &StreakOverview{
		CurrentStreak:  row.CurrentStreak,
		LongestStreak:  row.LongestStreak,
		TotalCheckins:  row.TotalCheckins,
		LastCheckin:    row.LastCheckin,
		CheckedInToday: row.LastCheckin == today.UTC().Format(streak.ISODate),
		Calendar:       streak.Calendar(row.History(), today),
	}, nil
}

func (s *StreakService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
