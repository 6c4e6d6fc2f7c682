package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hvacsim/internal/repository"
	"hvacsim/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusDeleted = "deleted"

	errRunSimulation  = "failed to run simulation"
	errListRuns       = "failed to list runs"
	errGetRun         = "failed to load run"
	errGetHistory     = "failed to load run history"
	errDeleteRun      = "failed to delete run"
	errRunNotFoundMsg = "run not found"

	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for starting a batch run.
type runRequest struct {
	DurationS   float64  `json:"duration_s"`
	SetpointC   float64  `json:"setpoint_c"`
	HumidityPct float64  `json:"humidity_pct"`
	QExtraW     float64  `json:"q_extra_w"`
	T0C         *float64 `json:"t0_c,omitempty"` // omitted: start from the configured initial temperature
}

// RunSimulationRequest is an exported model for Swagger docs of the run payload.
type RunSimulationRequest struct {
	// Total simulated time in seconds (0 < duration_s <= 86400)
	DurationS float64 `json:"duration_s" example:"600"`
	// Target temperature in Celsius, within [18, 30]
	SetpointC float64 `json:"setpoint_c" example:"24"`
	// Relative humidity in percent, within [20, 90]
	HumidityPct float64 `json:"humidity_pct" example:"60"`
	// Extra heat load in watts, within [0, 8000]
	QExtraW float64 `json:"q_extra_w" example:"3000"`
	// Initial room temperature in Celsius, within [18, 35] (optional)
	T0C *float64 `json:"t0_c,omitempty" example:"28"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Run a simulation
// @Description  Executes a full closed-loop run and returns the stored summary.
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        body  body   RunSimulationRequest  true  "Run parameters"
// @Success      200   {object}  models.SimulationRun
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulations [post]
// @Security     BearerAuth
func (h *Handler) runSimulation(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	params := service.RunParams{
		DurationS:   req.DurationS,
		SetpointC:   req.SetpointC,
		HumidityPct: req.HumidityPct,
		QExtraW:     req.QExtraW,
		T0C:         req.T0C,
	}
	run, err := h.services.Simulation.Execute(ctx, params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRunSimulation, "simulation_run_failed", err,
			"duration_s", req.DurationS, "setpoint_c", req.SetpointC)
		return
	}
	c.JSON(http.StatusOK, run)
}

// @Summary      List stored runs
// @Tags         simulations
// @Produce      json
// @Param        limit  query   int  false  "Maximum number of runs, newest first"  example(20)
// @Success      200    {object}  map[string]interface{}  "count, runs"
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/simulations [get]
// @Security     BearerAuth
func (h *Handler) listRuns(c *gin.Context) {
	ctx := c.Request.Context()
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		if v, err := strconv.Atoi(qs); err == nil && v > 0 {
			limit = v
		}
	}
	runs, err := h.services.Simulation.ListRuns(ctx, limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListRuns, "simulation_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}

// @Summary      Get one run
// @Tags         simulations
// @Produce      json
// @Param        id   path   string  true  "Run id"
// @Success      200  {object}  models.SimulationRun
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/simulations/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRun(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	run, err := h.services.Simulation.GetRun(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRunNotFoundMsg})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetRun, "simulation_get_failed", err, "run_id", id)
		return
	}
	c.JSON(http.StatusOK, run)
}

// @Summary      Get run history
// @Description  Full per-step sample series of a stored run, initial snapshot included.
// @Tags         simulations
// @Produce      json
// @Param        id   path   string  true  "Run id"
// @Success      200  {object}  map[string]interface{}  "run_id, history"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/simulations/{id}/history [get]
// @Security     BearerAuth
func (h *Handler) getRunHistory(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	hist, err := h.services.Simulation.RunHistory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRunNotFoundMsg})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetHistory, "simulation_history_failed", err, "run_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id":  id,
		"history": hist,
	})
}

// @Summary      Delete a run
// @Tags         simulations
// @Produce      json
// @Param        id   path   string  true  "Run id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/simulations/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteRun(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.services.Simulation.DeleteRun(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRunNotFoundMsg})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteRun, "simulation_delete_failed", err, "run_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}
