package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"lineupplanner/internal/delivery/http/controllers"
	"lineupplanner/internal/delivery/http/middleware"
	"lineupplanner/internal/domain"
)

// Controllers groups the handlers the router mounts.
type Controllers struct {
	Lineup  *controllers.LineupController
	Events  *controllers.EventController
	Slots   *controllers.SlotController
	Exports *controllers.ExportController
}

// NewRouter initializes the HTTP router with all application routes.
// Reads are open to every role; changes need promoter or booker, booking answers need artist.
func NewRouter(c Controllers) *http.ServeMux {
	mux := http.NewServeMux()
	editor := middleware.RequireRole(domain.RolePromoter, domain.RoleBooker)
	artist := middleware.RequireRole(domain.RoleArtist)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Session
	mux.HandleFunc("GET /state", c.Lineup.GetState)
	mux.HandleFunc("GET /artists", c.Lineup.ListArtists)
	mux.HandleFunc("PUT /active-event", c.Lineup.SetActiveEvent)
	mux.HandleFunc("PUT /selection", c.Lineup.SelectSlot)
	mux.HandleFunc("POST /history/undo", editor(c.Lineup.Undo))
	mux.HandleFunc("POST /history/redo", editor(c.Lineup.Redo))

	// Events
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("POST /events", editor(c.Events.CreateEvent))
	mux.HandleFunc("PATCH /events/{eventID}", editor(c.Events.UpdateEvent))
	mux.HandleFunc("POST /events/{eventID}/lock", editor(c.Events.ToggleLock))
	mux.HandleFunc("GET /events/{eventID}/grid", c.Events.GetTimeGrid)
	mux.HandleFunc("GET /events/{eventID}/conflicts", c.Events.GetConflicts)
	mux.HandleFunc("GET /public/events/{eventID}", c.Events.GetPublicLineup)

	// Slots
	mux.HandleFunc("GET /events/{eventID}/slots", c.Events.ListEventSlots)
	mux.HandleFunc("POST /events/{eventID}/slots", editor(c.Events.AssignSlot))
	mux.HandleFunc("DELETE /events/{eventID}/slots", editor(c.Events.ClearEventSlots))
	mux.HandleFunc("PATCH /slots/{slotID}", editor(c.Slots.UpdateSlot))
	mux.HandleFunc("DELETE /slots/{slotID}", editor(c.Slots.RemoveSlot))

	// Bookings
	mux.HandleFunc("GET /artists/{artistID}/bookings", c.Slots.ListArtistBookings)
	mux.HandleFunc("POST /slots/{slotID}/response", artist(c.Slots.RespondToBooking))

	// Exports
	mux.HandleFunc("GET /events/{eventID}/export.csv", c.Exports.ExportCSV)
	mux.HandleFunc("GET /events/{eventID}/export.ics", c.Exports.ExportICS)
	mux.HandleFunc("GET /slots/{slotID}/export.ics", c.Exports.ExportSlotICS)
	mux.HandleFunc("GET /events/{eventID}/mailto", c.Exports.Mailto)
	mux.HandleFunc("POST /events/{eventID}/notify", editor(c.Exports.Notify))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
