package controllers

import (
	"log/slog"
	"net/http"

	"lineupplanner/internal/delivery/http/helpers"
	"lineupplanner/internal/domain"
)

// SetActiveEventRequest is the request body for PUT /active-event.
type SetActiveEventRequest struct {
	EventID string `json:"eventId"`
}

// Validate implements Validator.
func (s SetActiveEventRequest) Validate() []string {
	if s.EventID == "" {
		return []string{"eventId is required"}
	}
	return nil
}

// SelectSlotRequest is the request body for PUT /selection. A null slotId clears the selection.
type SelectSlotRequest struct {
	SlotID *string `json:"slotId"`
}

// HistoryResponse is the data payload for the undo and redo endpoints.
type HistoryResponse struct {
	Moved        bool          `json:"moved"`
	HistoryIndex int           `json:"historyIndex"`
	HistoryLen   int           `json:"historyLength"`
	Slots        []domain.Slot `json:"slots"`
}

type LineupController struct {
	Logger  *slog.Logger
	Service domain.LineupService
}

func NewLineupController(logger *slog.Logger, svc domain.LineupService) *LineupController {
	return &LineupController{
		Logger:  logger,
		Service: svc,
	}
}

// GetState godoc
// @Summary Get the whole session
// @Description Events, roster, current slots, active event, selection, and the undo/redo history.
// @Tags session
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=domain.State}
// @Router /state [get]
func (c *LineupController) GetState(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.Snapshot())
}

// ListArtists godoc
// @Summary List the artist roster
// @Tags artists
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=[]domain.Artist}
// @Router /artists [get]
func (c *LineupController) ListArtists(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.Artists())
}

// SetActiveEvent godoc
// @Summary Switch the active event
// @Tags session
// @Accept json
// @Param body body SetActiveEventRequest true "Event to activate"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /active-event [put]
func (c *LineupController) SetActiveEvent(w http.ResponseWriter, r *http.Request) {
	var req SetActiveEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetActiveEvent(r.Context(), req.EventID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectSlot godoc
// @Summary Select a slot for editing
// @Tags session
// @Accept json
// @Produce json
// @Param body body SelectSlotRequest true "Slot to select; null clears"
// @Success 200 {object} helpers.APIResponse{data=domain.Slot}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /selection [put]
func (c *LineupController) SelectSlot(w http.ResponseWriter, r *http.Request) {
	var req SelectSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	slotID := ""
	if req.SlotID != nil {
		slotID = *req.SlotID
	}
	slot, err := c.Service.SelectSlot(r.Context(), slotID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// Undo godoc
// @Summary Step the slot history back
// @Description moved is false when already at the oldest entry.
// @Tags history
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=HistoryResponse}
// @Router /history/undo [post]
func (c *LineupController) Undo(w http.ResponseWriter, r *http.Request) {
	moved := c.Service.Undo(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusOK, c.historyResponse(moved))
}

// Redo godoc
// @Summary Step the slot history forward
// @Description moved is false when already at the newest entry.
// @Tags history
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=HistoryResponse}
// @Router /history/redo [post]
func (c *LineupController) Redo(w http.ResponseWriter, r *http.Request) {
	moved := c.Service.Redo(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusOK, c.historyResponse(moved))
}

func (c *LineupController) historyResponse(moved bool) HistoryResponse {
	st := c.Service.Snapshot()
	return HistoryResponse{
		Moved:        moved,
		HistoryIndex: st.HistoryIndex,
		HistoryLen:   len(st.History),
		Slots:        st.Slots,
	}
}
