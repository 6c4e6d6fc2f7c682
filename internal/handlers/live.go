package handlers

import (
	"errors"
	"net/http"

	"hvacsim/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusStarted    = "started"
	statusStopped    = "stopped"
	statusTargetsSet = "targets_set"
	statusReset      = "reset"

	errStartLive   = "failed to start live loop"
	errStopLive    = "failed to stop live loop"
	errSetTargets  = "failed to set targets"
	errResetLive   = "failed to reset live loop"
	errGetSnapshot = "failed to load snapshot"
)

// Request DTO for live targets.
type targetsRequest struct {
	SetpointC   float64 `json:"setpoint_c"`
	HumidityPct float64 `json:"humidity_pct"`
	QExtraW     float64 `json:"q_extra_w"`
}

// LiveTargetsRequest is an exported model for Swagger docs of the targets payload.
type LiveTargetsRequest struct {
	// Target temperature in Celsius, within [18, 30]
	SetpointC float64 `json:"setpoint_c" example:"24"`
	// Relative humidity in percent, within [20, 90]
	HumidityPct float64 `json:"humidity_pct" example:"60"`
	// Extra heat load in watts, within [0, 8000]
	QExtraW float64 `json:"q_extra_w" example:"3000"`
}

func (r targetsRequest) toService() service.LiveTargets {
	return service.LiveTargets{
		SetpointC:   r.SetpointC,
		HumidityPct: r.HumidityPct,
		QExtraW:     r.QExtraW,
	}
}

// Respond with a status and include the current snapshot if available (best-effort).
func (h *Handler) respondWithStatusAndSnapshot(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	snap, err := h.services.Live.Snapshot(ctx)
	if err == nil {
		resp["snapshot"] = snap
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Get live snapshot
// @Description  Current state of the incremental loop plus derived diagnostics.
// @Tags         live
// @Produce      json
// @Success      200  {object}  service.LiveSnapshot
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/live/state [get]
// @Security     BearerAuth
func (h *Handler) getLive(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := h.services.Live.Snapshot(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSnapshot, "live_snapshot_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Start live loop
// @Description  Starts (or resumes) the background loop with the given targets.
// @Tags         live
// @Accept       json
// @Produce      json
// @Param        body  body   LiveTargetsRequest  true  "Targets"
// @Success      200   {object}  map[string]interface{}  "status, snapshot"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/live/start [post]
// @Security     BearerAuth
func (h *Handler) startLive(c *gin.Context) {
	var req targetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Live.Start(ctx, req.toService()); err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errStartLive, "live_start_failed", err)
		return
	}
	h.respondWithStatusAndSnapshot(c, statusStarted, gin.H{})
}

// @Summary      Stop live loop
// @Description  Pauses the loop. State and targets survive for a later resume.
// @Tags         live
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/live/stop [post]
// @Security     BearerAuth
func (h *Handler) stopLive(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Live.Stop(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStopLive, "live_stop_failed", err)
		return
	}
	h.respondWithStatusAndSnapshot(c, statusStopped, gin.H{})
}

// @Summary      Set live targets
// @Description  Adjusts setpoint, humidity and extra load of a running loop.
// @Tags         live
// @Accept       json
// @Produce      json
// @Param        body  body   LiveTargetsRequest  true  "Targets"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/live/targets [put]
// @Security     BearerAuth
func (h *Handler) setTargets(c *gin.Context) {
	var req targetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Live.SetTargets(ctx, req.toService()); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidParams):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrLoopNotRunning):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errSetTargets, "live_set_targets_failed", err,
				"setpoint_c", req.SetpointC)
		}
		return
	}
	h.respondWithStatusAndSnapshot(c, statusTargetsSet, gin.H{"setpoint_c": req.SetpointC})
}

// @Summary      Reset live loop
// @Description  Restores the paused baseline with default targets.
// @Tags         live
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/live/reset [post]
// @Security     BearerAuth
func (h *Handler) resetLive(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Live.Reset(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errResetLive, "live_reset_failed", err)
		return
	}
	h.respondWithStatusAndSnapshot(c, statusReset, gin.H{})
}
