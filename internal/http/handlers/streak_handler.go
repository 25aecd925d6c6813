// Streak HTTP handlers.
//
// This file exposes REST endpoints for daily check-ins:
//   - POST /checkin   (record today's check-in)
//   - GET  /streak    (numbers plus 30-day calendar)
//
// A repeat check-in on the same day is a 400 whose body still carries the
// current streak, so the client can show it without a second round trip.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dilazaad/go-support-backend/internal/http/middleware"
	"github.com/dilazaad/go-support-backend/internal/services"
)

// StreakService defines the check-in operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type StreakService interface {
	// CheckIn records today's check-in; duplicates return ErrAlreadyCheckedIn
	// alongside the unchanged numbers.
	CheckIn(ctx context.Context, userID uint) (*services.CheckinResult, error)
	// Overview returns the streak numbers plus the rolling calendar.
	Overview(ctx context.Context, userID uint) (*services.StreakOverview, error)
}

// CheckinResponse is the JSON shape for a check-in attempt.
type CheckinResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	TotalCheckins int    `json:"total_checkins"`
}

// CheckIn handles POST /checkin.
func (h *Handlers) CheckIn(c *gin.Context) {
	res, err := h.streakSvc.CheckIn(c.Request.Context(), middleware.UserID(c))
	switch {
	case err == nil:
		middleware.CheckinsRecorded.Inc()
		ok(c, http.StatusOK, CheckinResponse{
			Success:       true,
			Message:       res.Message,
			CurrentStreak: res.CurrentStreak,
			LongestStreak: res.LongestStreak,
			TotalCheckins: res.TotalCheckins,
		})
	case errors.Is(err, services.ErrAlreadyCheckedIn):
		// Stable body shape: error, current_streak, message.
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":          "Already checked in today",
			"current_streak": res.CurrentStreak,
			"message":        res.Message,
		})
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not record check-in")
	}
}

// Streak handles GET /streak.
func (h *Handlers) Streak(c *gin.Context) {
	ov, err := h.streakSvc.Overview(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load streak")
		return
	}
	ok(c, http.StatusOK, ov)
}
