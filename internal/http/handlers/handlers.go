// Handler wiring.
//
// Handlers groups the HTTP endpoints for accounts, chat, and streaks. It
// depends on abstract service interfaces to keep transport concerns separate
// from business logic.
package handlers

// Handlers bundles the application services behind the HTTP surface.
type Handlers struct {
	authSvc   AuthService
	chatSvc   ChatService
	streakSvc StreakService

	// chatStats is optional; when set, the history endpoint serves weak ETags.
	chatStats ChatStatsFunc
}

// New constructs a Handlers instance bound to the given services.
func New(authSvc AuthService, chatSvc ChatService, streakSvc StreakService, chatStats ChatStatsFunc) *Handlers {
	return &Handlers{
		authSvc:   authSvc,
		chatSvc:   chatSvc,
		streakSvc: streakSvc,
		chatStats: chatStats,
	}
}
