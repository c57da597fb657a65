package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"lineupplanner/internal/delivery/http/helpers"
	"lineupplanner/internal/domain"
	"lineupplanner/internal/schedule"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title  string             `json:"title"`
	Date   string             `json:"date"`
	Stages []string           `json:"stages"`
	Hours  domain.Hours       `json:"hours"`
	Status domain.EventStatus `json:"status"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if !isDate(c.Date) {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	if len(c.Stages) == 0 {
		errs = append(errs, "at least one stage is required")
	}
	for _, s := range c.Stages {
		if s == "" {
			errs = append(errs, "stage names must not be empty")
			break
		}
	}
	if !isClock(c.Hours.Start) || !isClock(c.Hours.End) {
		errs = append(errs, "hours.start and hours.end must be HH:MM")
	}
	if c.Status != "" && !c.Status.Valid() {
		errs = append(errs, "status must be draft or published")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. Omitted fields are left unchanged.
type UpdateEventRequest struct {
	Title  *string             `json:"title,omitempty"`
	Date   *string             `json:"date,omitempty"`
	Stages []string            `json:"stages,omitempty"`
	Hours  *domain.Hours       `json:"hours,omitempty"`
	Status *domain.EventStatus `json:"status,omitempty"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && *u.Title == "" {
		errs = append(errs, "title must not be empty")
	}
	if u.Date != nil && !isDate(*u.Date) {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	if u.Stages != nil && len(u.Stages) == 0 {
		errs = append(errs, "stages must not be empty")
	}
	if u.Hours != nil && (!isClock(u.Hours.Start) || !isClock(u.Hours.End)) {
		errs = append(errs, "hours.start and hours.end must be HH:MM")
	}
	if u.Status != nil && !u.Status.Valid() {
		errs = append(errs, "status must be draft or published")
	}
	return errs
}

// AssignSlotRequest is the request body for POST /events/{eventID}/slots.
// An omitted endTime gives a one-hour set clipped to closing time.
type AssignSlotRequest struct {
	Stage     string `json:"stage"`
	ArtistID  string `json:"artistId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
}

// Validate implements Validator.
func (a AssignSlotRequest) Validate() []string {
	var errs []string
	if a.Stage == "" {
		errs = append(errs, "stage is required")
	}
	if a.ArtistID == "" {
		errs = append(errs, "artistId is required")
	}
	if !isClock(a.StartTime) {
		errs = append(errs, "startTime must be HH:MM")
	}
	if a.EndTime != "" && !isClock(a.EndTime) {
		errs = append(errs, "endTime must be HH:MM")
	}
	return errs
}

// TimeGridResponse is the data payload for GET /events/{eventID}/grid.
type TimeGridResponse struct {
	EventID string   `json:"eventId"`
	Labels  []string `json:"labels"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.LineupService
}

func NewEventController(logger *slog.Logger, svc domain.LineupService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=[]domain.Event}
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.Events())
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event and makes it the active one. Status defaults to draft.
// @Tags events
// @Accept json
// @Produce json
// @Param X-Lineup-Role header string false "promoter or booker"
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse{data=domain.Event}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), domain.EventInput{
		Title:  req.Title,
		Date:   req.Date,
		Stages: req.Stages,
		Hours:  req.Hours,
		Status: req.Status,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Merges the given fields into the event. Existing slots are not re-validated.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse{data=domain.Event}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("eventID"), domain.EventUpdate{
		Title:  req.Title,
		Date:   req.Date,
		Stages: req.Stages,
		Hours:  req.Hours,
		Status: req.Status,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ToggleLock godoc
// @Summary Lock or unlock an event
// @Description While locked, every slot change on the event is rejected with 423.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=domain.Event}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/lock [post]
func (c *EventController) ToggleLock(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.ToggleLock(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// GetTimeGrid godoc
// @Summary Get the event's 15-minute time labels
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=TimeGridResponse}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/grid [get]
func (c *EventController) GetTimeGrid(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	labels, err := c.Service.TimeGrid(eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TimeGridResponse{EventID: eventID, Labels: labels})
}

// ListEventSlots godoc
// @Summary List the slots of an event
// @Tags slots
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=[]domain.Slot}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/slots [get]
func (c *EventController) ListEventSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := c.Service.EventSlots(r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// AssignSlot godoc
// @Summary Place an artist on the grid
// @Description Creates a pending slot. Slots on the same stage that start at the same time or overlap are replaced.
// @Tags slots
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param slot body AssignSlotRequest true "Assignment"
// @Success 201 {object} helpers.APIResponse{data=domain.Slot}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 423 {object} helpers.APIResponse "error.code: event_locked"
// @Router /events/{eventID}/slots [post]
func (c *EventController) AssignSlot(w http.ResponseWriter, r *http.Request) {
	var req AssignSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	slot, err := c.Service.AssignSlot(r.Context(), domain.SlotAssignment{
		EventID:   r.PathValue("eventID"),
		Stage:     req.Stage,
		ArtistID:  req.ArtistID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slot)
}

// ClearEventSlots godoc
// @Summary Remove every slot of an event
// @Tags slots
// @Param eventID path string true "Event ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 423 {object} helpers.APIResponse "error.code: event_locked"
// @Router /events/{eventID}/slots [delete]
func (c *EventController) ClearEventSlots(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.ClearEventSlots(r.Context(), r.PathValue("eventID")); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetConflicts godoc
// @Summary Report double-booked artists and overlapping stage slots
// @Tags slots
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=domain.ConflictReport}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/conflicts [get]
func (c *EventController) GetConflicts(w http.ResponseWriter, r *http.Request) {
	report, err := c.Service.Conflicts(r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

// GetPublicLineup godoc
// @Summary Public timetable of a published event
// @Tags public
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=domain.Lineup}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /public/events/{eventID} [get]
func (c *EventController) GetPublicLineup(w http.ResponseWriter, r *http.Request) {
	lineup, err := c.Service.PublicLineup(r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, lineup)
}

func isDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func isClock(s string) bool {
	_, err := schedule.ParseClock(s)
	return err == nil
}
