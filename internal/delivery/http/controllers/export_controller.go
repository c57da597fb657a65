package controllers

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"lineupplanner/internal/adapters/export"
	"lineupplanner/internal/delivery/http/helpers"
	"lineupplanner/internal/domain"
)

// MailtoResponse is the data payload for GET /events/{eventID}/mailto.
type MailtoResponse struct {
	Href string `json:"href"`
}

// NotifyResponse is the data payload for POST /events/{eventID}/notify.
type NotifyResponse struct {
	Sent int `json:"sent"`
}

// ExportController serves lineup downloads and outbound notifications.
type ExportController struct {
	Logger   *slog.Logger
	Service  domain.LineupService
	Notifier domain.NotificationService
	// Location is the zone clock labels are read in for calendar exports.
	Location *time.Location
}

func NewExportController(logger *slog.Logger, svc domain.LineupService, notifier domain.NotificationService, loc *time.Location) *ExportController {
	return &ExportController{
		Logger:   logger,
		Service:  svc,
		Notifier: notifier,
		Location: loc,
	}
}

// ExportCSV godoc
// @Summary Download the event lineup as CSV
// @Tags exports
// @Produce text/csv
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "CSV document"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/export.csv [get]
func (c *ExportController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	lineup, err := c.Service.Lineup(r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	name := export.LineupFilename(lineup.Event.Title, lineup.Event.Date, "csv")
	writeAttachment(w, "text/csv; charset=utf-8", name, export.CSV(lineup))
}

// ExportICS godoc
// @Summary Download the event lineup as an iCalendar file
// @Tags exports
// @Produce text/calendar
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "iCalendar document"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/export.ics [get]
func (c *ExportController) ExportICS(w http.ResponseWriter, r *http.Request) {
	lineup, err := c.Service.Lineup(r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	body, err := export.ICS(lineup, c.Location)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	name := export.LineupFilename(lineup.Event.Title, lineup.Event.Date, "ics")
	writeAttachment(w, "text/calendar; charset=utf-8", name, body)
}

// ExportSlotICS godoc
// @Summary Download one slot as an iCalendar file
// @Tags exports
// @Produce text/calendar
// @Param slotID path string true "Slot ID"
// @Success 200 {string} string "iCalendar document"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /slots/{slotID}/export.ics [get]
func (c *ExportController) ExportSlotICS(w http.ResponseWriter, r *http.Request) {
	slotID := r.PathValue("slotID")
	st := c.Service.Snapshot()
	slot, ok := findSlot(st.Slots, slotID)
	if !ok {
		helpers.WriteServiceError(w, r, c.Logger, fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound))
		return
	}
	event, ok := findEvent(st.Events, slot.EventID)
	if !ok {
		helpers.WriteServiceError(w, r, c.Logger, fmt.Errorf("event %s: %w", slot.EventID, domain.ErrNotFound))
		return
	}
	body, err := export.SlotICS(event, slot, st.Artists, c.Location)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	artistName := "Unknown Artist"
	if a, ok := domain.FindArtist(st.Artists, slot.ArtistID); ok {
		artistName = a.Name
	}
	writeAttachment(w, "text/calendar; charset=utf-8", export.SlotFilename(event.Date, event.Title, artistName), body)
}

// Mailto godoc
// @Summary Build a mailto link to every booked artist
// @Tags exports
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=MailtoResponse}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/mailto [get]
func (c *ExportController) Mailto(w http.ResponseWriter, r *http.Request) {
	lineup, err := c.Service.Lineup(r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MailtoResponse{Href: export.Mailto(lineup)})
}

// Notify godoc
// @Summary Email every booked artist their schedule
// @Description Artists without an email address are skipped.
// @Tags exports
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=NotifyResponse}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/notify [post]
func (c *ExportController) Notify(w http.ResponseWriter, r *http.Request) {
	lineup, err := c.Service.Lineup(r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	sent, err := c.Notifier.SendLineup(r.Context(), lineup)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "sent", sent, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError,
			fmt.Sprintf("sent %d emails before failing: %v", sent, err))
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NotifyResponse{Sent: sent})
}

func writeAttachment(w http.ResponseWriter, contentType, filename, body string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func findSlot(slots []domain.Slot, id string) (domain.Slot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Slot{}, false
}

func findEvent(events []domain.Event, id string) (domain.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Event{}, false
}
