// Package streak implements the daily check-in engine: a day-difference based
// state transition over a per-user check-in calendar, plus the 30-day
// calendar view used for display.
//
// The engine is pure: Checkin takes the previous state and the caller's
// calendar date and returns the new state without touching storage. The
// service layer is responsible for loading, locking, and persisting the row.
package streak

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// ISODate is the canonical date-only layout used in last_checkin and the
// history keys.
const ISODate = "2006-01-02"

var (
	// ErrAlreadyCheckedIn is returned when the state already records a
	// check-in for the given date. The state is returned unmodified so
	// callers can display the current streak without a refetch.
	ErrAlreadyCheckedIn = errors.New("already checked in today")

	// ErrCheckinOutOfOrder is returned when the supplied date is earlier than
	// the recorded last check-in (clock skew or backdating). The state is
	// left untouched rather than silently corrupting the counters.
	ErrCheckinOutOfOrder = errors.New("check-in date precedes last check-in")
)

// State is the in-memory form of a user's streak row.
type State struct {
	CurrentStreak int
	LongestStreak int
	TotalCheckins int
	LastCheckin   string // ISO date, empty when the user never checked in
	History       map[string]bool
}

// Checkin applies one check-in for the given calendar date and returns the
// new state.
//
// Transitions on the day difference to the previous check-in:
//   - no previous check-in: streak starts at 1
//   - exactly one day later: streak increments
//   - more than one day later: streak resets to 1
//   - same day: ErrAlreadyCheckedIn
//   - earlier day: ErrCheckinOutOfOrder
//
// On success the longest streak, total count, history, and last_checkin are
// all updated; LongestStreak never decreases.
func Checkin(prev State, today time.Time) (State, error) {
	day := midnightUTC(today)
	todayISO := day.Format(ISODate)

	current := 1
	if prev.LastCheckin != "" {
		last, err := time.ParseInLocation(ISODate, prev.LastCheckin, time.UTC)
		if err != nil {
			return prev, fmt.Errorf("parse last check-in %q: %w", prev.LastCheckin, err)
		}

		diff := daysBetween(last, day)
		switch {
		case diff == 0:
			return prev, ErrAlreadyCheckedIn
		case diff < 0:
			return prev, ErrCheckinOutOfOrder
		case diff == 1:
			current = prev.CurrentStreak + 1
		}
		// diff > 1 keeps current = 1 (streak broken)
	}

	next := State{
		CurrentStreak: current,
		LongestStreak: prev.LongestStreak,
		TotalCheckins: prev.TotalCheckins + 1,
		LastCheckin:   todayISO,
		History:       make(map[string]bool, len(prev.History)+1),
	}
	for k, v := range prev.History {
		next.History[k] = v
	}
	next.History[todayISO] = true

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	return next, nil
}

// encouragements are the message templates interpolating the current streak.
var encouragements = []string{
	"Great job! You've maintained your streak for %d days!",
	"Consistency is key! %d days and counting!",
	"You're doing amazing! Day %d of your journey!",
	"Keep it up! %d days of self-care!",
}

// Encouragement returns one of the fixed templates, chosen uniformly at
// random, filled with the current streak length.
func Encouragement(currentStreak int) string {
	return fmt.Sprintf(encouragements[rand.IntN(len(encouragements))], currentStreak)
}

// midnightUTC normalizes a timestamp to its calendar date at UTC midnight so
// day arithmetic is immune to time-of-day and zone offsets.
func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day difference b-a for two UTC midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
