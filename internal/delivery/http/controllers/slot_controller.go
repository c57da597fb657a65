package controllers

import (
	"log/slog"
	"net/http"

	"lineupplanner/internal/delivery/http/helpers"
	"lineupplanner/internal/delivery/http/middleware"
	"lineupplanner/internal/domain"
)

// UpdateSlotRequest is the request body for PATCH /slots/{slotID}. Omitted fields are left unchanged.
type UpdateSlotRequest struct {
	ArtistID  *string            `json:"artistId,omitempty"`
	Stage     *string            `json:"stage,omitempty"`
	StartTime *string            `json:"startTime,omitempty"`
	EndTime   *string            `json:"endTime,omitempty"`
	Status    *domain.SlotStatus `json:"status,omitempty"`
}

// Validate implements Validator.
func (u UpdateSlotRequest) Validate() []string {
	var errs []string
	if u.ArtistID != nil && *u.ArtistID == "" {
		errs = append(errs, "artistId must not be empty")
	}
	if u.Stage != nil && *u.Stage == "" {
		errs = append(errs, "stage must not be empty")
	}
	if u.StartTime != nil && !isClock(*u.StartTime) {
		errs = append(errs, "startTime must be HH:MM")
	}
	if u.EndTime != nil && !isClock(*u.EndTime) {
		errs = append(errs, "endTime must be HH:MM")
	}
	if u.Status != nil && !u.Status.Valid() {
		errs = append(errs, "status must be pending, accepted or declined")
	}
	return errs
}

// BookingResponseRequest is the request body for POST /slots/{slotID}/response.
type BookingResponseRequest struct {
	Status domain.SlotStatus `json:"status"`
}

// Validate implements Validator.
func (b BookingResponseRequest) Validate() []string {
	if b.Status != domain.SlotStatusAccepted && b.Status != domain.SlotStatusDeclined {
		return []string{"status must be accepted or declined"}
	}
	return nil
}

type SlotController struct {
	Logger  *slog.Logger
	Service domain.LineupService
}

func NewSlotController(logger *slog.Logger, svc domain.LineupService) *SlotController {
	return &SlotController{
		Logger:  logger,
		Service: svc,
	}
}

// UpdateSlot godoc
// @Summary Edit a slot
// @Description Changes artist, stage, times, or status. Overlaps are not resolved; see the conflicts endpoint.
// @Tags slots
// @Accept json
// @Produce json
// @Param slotID path string true "Slot ID"
// @Param slot body UpdateSlotRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse{data=domain.Slot}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 423 {object} helpers.APIResponse "error.code: event_locked"
// @Router /slots/{slotID} [patch]
func (c *SlotController) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	var req UpdateSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	slot, err := c.Service.UpdateSlot(r.Context(), r.PathValue("slotID"), domain.SlotUpdate{
		ArtistID:  req.ArtistID,
		Stage:     req.Stage,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    req.Status,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// RemoveSlot godoc
// @Summary Remove a slot
// @Description Removing an unknown slot succeeds and still adds an undo step.
// @Tags slots
// @Param slotID path string true "Slot ID"
// @Success 204
// @Failure 423 {object} helpers.APIResponse "error.code: event_locked"
// @Router /slots/{slotID} [delete]
func (c *SlotController) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.RemoveSlot(r.Context(), r.PathValue("slotID")); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RespondToBooking godoc
// @Summary Accept or decline a booking
// @Description Artists answer their own bookings. The artist is identified by X-Lineup-Artist.
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Lineup-Role header string true "artist"
// @Param X-Lineup-Artist header string true "Artist ID"
// @Param slotID path string true "Slot ID"
// @Param body body BookingResponseRequest true "accepted or declined"
// @Success 200 {object} helpers.APIResponse{data=domain.Slot}
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 423 {object} helpers.APIResponse "error.code: event_locked"
// @Router /slots/{slotID}/response [post]
func (c *SlotController) RespondToBooking(w http.ResponseWriter, r *http.Request) {
	var req BookingResponseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	artistID := middleware.ArtistIDFromContext(r.Context())
	slot, err := c.Service.RespondToBooking(r.Context(), r.PathValue("slotID"), artistID, req.Status)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// ListArtistBookings godoc
// @Summary List an artist's bookings
// @Tags bookings
// @Produce json
// @Param artistID path string true "Artist ID"
// @Success 200 {object} helpers.APIResponse{data=[]domain.Booking}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /artists/{artistID}/bookings [get]
func (c *SlotController) ListArtistBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := c.Service.ArtistBookings(r.PathValue("artistID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}
