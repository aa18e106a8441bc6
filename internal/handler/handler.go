package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gordoburrito/tracking-script/internal/dto"
	"github.com/Gordoburrito/tracking-script/internal/service"
)

type Handler struct {
	trackingService service.TrackingServicer
	router          *gin.Engine
	log             *zap.Logger
}

func NewHandler(trackingService service.TrackingServicer, log *zap.Logger) *Handler {
	h := &Handler{
		trackingService: trackingService,
		router:          gin.Default(),
		log:             log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/api/v1/pageviews", h.recordPageview)
	h.router.POST("/api/v1/clicks", h.handleClick)
	h.router.POST("/api/v1/form-submissions", h.handleFormSubmission)
	h.router.POST("/api/v1/forms/discovered", h.notifyFormsDiscovered)
	h.router.POST("/api/v1/unload", h.handleUnload)
	h.router.GET("/api/v1/tracking-data", h.getTrackingData)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// recordPageview handles POST /api/v1/pageviews
func (h *Handler) recordPageview(c *gin.Context) {
	var req dto.PageviewRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid pageview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.trackingService.RecordPageview(c.Request.Context(), &req)

	c.JSON(http.StatusAccepted, dto.AcceptedResponse{Status: "accepted"})
}

// handleClick handles POST /api/v1/clicks
func (h *Handler) handleClick(c *gin.Context) {
	var req dto.ClickRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid click request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.trackingService.HandleClick(c.Request.Context(), &req)

	c.JSON(http.StatusAccepted, dto.AcceptedResponse{Status: "accepted"})
}

// handleFormSubmission handles POST /api/v1/form-submissions
func (h *Handler) handleFormSubmission(c *gin.Context) {
	var req dto.FormSubmissionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid form submission request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.trackingService.HandleFormSubmission(c.Request.Context(), &req)

	c.JSON(http.StatusAccepted, dto.AcceptedResponse{Status: "accepted"})
}

// notifyFormsDiscovered handles POST /api/v1/forms/discovered
func (h *Handler) notifyFormsDiscovered(c *gin.Context) {
	var req dto.FormsDiscoveredRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid form discovery request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.trackingService.NotifyFormsDiscovered(c.Request.Context(), &req)

	c.JSON(http.StatusAccepted, dto.AcceptedResponse{Status: "accepted"})
}

// handleUnload handles POST /api/v1/unload
func (h *Handler) handleUnload(c *gin.Context) {
	h.trackingService.HandleUnload(c.Request.Context())

	c.JSON(http.StatusAccepted, dto.AcceptedResponse{Status: "accepted"})
}

// getTrackingData handles GET /api/v1/tracking-data
func (h *Handler) getTrackingData(c *gin.Context) {
	c.JSON(http.StatusOK, h.trackingService.TrackingData(c.Request.Context()))
}
