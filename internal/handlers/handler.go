package handlers

import (
	"hvacsim/internal/logger"
	"hvacsim/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// WebSocket push of the live loop (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerSimulationRoutes(api)
		h.registerLiveRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerSimulationRoutes(api *gin.RouterGroup) {
	sims := api.Group("/simulations")
	{
		// Body example: {"duration_s":600,"setpoint_c":24,"humidity_pct":60,"q_extra_w":3000}
		sims.POST("", h.runSimulation)
		sims.GET("", h.listRuns)
		sims.GET("/:id", h.getRun)
		sims.GET("/:id/history", h.getRunHistory)
		sims.DELETE("/:id", h.deleteRun)
	}
}

func (h *Handler) registerLiveRoutes(api *gin.RouterGroup) {
	live := api.Group("/live")
	{
		live.GET("/state", h.getLive)
		live.POST("/start", h.startLive)
		live.POST("/stop", h.stopLive)
		live.PUT("/targets", h.setTargets)
		live.POST("/reset", h.resetLive)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
