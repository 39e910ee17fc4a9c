package api

import (
	"errors"
	"net/http"
	"time"

	"logs-distributor/distributor"
	"logs-distributor/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler implements the ingress HTTP layer (C7): a single ingest
// endpoint plus read-only status endpoints, generalized from the
// teacher's api/handlers.go down to the base spec's exact route set.
type Handler struct {
	dist   *distributor.Distributor
	logger *zap.Logger
}

// NewHandler constructs a Handler.
func NewHandler(dist *distributor.Distributor, logger *zap.Logger) *Handler {
	return &Handler{
		dist:   dist,
		logger: logger,
	}
}

// SetupRoutes configures the service's routes.
func (h *Handler) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.loggingMiddleware())

	r.POST("/ingest", h.Ingest)
	r.GET("/stats", h.Stats)
	r.GET("/health", h.Health)
	r.GET("/", h.Root)

	return r
}

// Ingest validates and enqueues a single log packet. Returns 202
// before downstream delivery is attempted; the service is
// fire-and-forget from the caller's perspective.
func (h *Handler) Ingest(c *gin.Context) {
	var packet models.LogPacket
	if err := c.ShouldBindJSON(&packet); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": "rejected",
			"error":  err.Error(),
		})
		return
	}
	packet.BackfillMessageIDs()

	err := h.dist.SubmitPacket(packet)
	if err == nil {
		c.JSON(http.StatusAccepted, gin.H{
			"status":    "accepted",
			"packet_id": packet.ID,
			"message":   "packet queued for distribution",
		})
		return
	}

	var valErr *distributor.ValidationError
	if errors.As(err, &valErr) {
		h.logger.Warn("packet rejected at ingress",
			zap.String("packet_id", packet.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": "rejected",
			"error":  err.Error(),
		})
		return
	}

	h.logger.Warn("ingress queue full, rejecting packet",
		zap.String("packet_id", packet.ID),
	)
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":      "rejected",
		"error":       "ingress queue is full",
		"retry_after": "1s",
	})
}

// Stats returns the current distributor statistics.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.dist.GetStats())
}

// Health reports aggregate service and per-analyzer health.
func (h *Handler) Health(c *gin.Context) {
	stats := h.dist.GetStats()
	analyzers := h.dist.GetAnalyzers()

	healthy, unhealthy := 0, 0
	details := make([]gin.H, 0, len(analyzers))
	for _, a := range analyzers {
		if a.Healthy {
			healthy++
		} else {
			unhealthy++
		}
		details = append(details, gin.H{
			"name":              a.Name,
			"weight":            a.Weight,
			"is_healthy":        a.Healthy,
			"packets_received":  a.PacketsAccepted,
			"messages_received": a.MessagesAccepted,
		})
	}

	status := "healthy"
	if healthy == 0 {
		status = "unhealthy"
	} else if unhealthy > 0 {
		status = "degraded"
	}

	queueSize := h.dist.QueueSize()
	queueCap := h.dist.QueueCapacity()
	util := 0.0
	if queueCap > 0 {
		util = float64(queueSize) / float64(queueCap) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                  status,
		"queue_size":              queueSize,
		"queue_utilization":       util,
		"total_packets_received":  stats.TotalPacketsAccepted,
		"total_messages_received": stats.TotalMessagesAccepted,
		"failed_sends":            stats.FailedSends,
		"analyzers": gin.H{
			"total":     len(analyzers),
			"healthy":   healthy,
			"unhealthy": unhealthy,
		},
		"analyzer_details": details,
	})
}

// Root is a minimal liveness surface for load balancers and operators.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "logs-distributor",
		"status":  "running",
	})
}

// loggingMiddleware logs each request, skipping /health to avoid spam.
func (h *Handler) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if path == "/health" {
			return
		}

		logLevel := zap.InfoLevel
		if c.Writer.Status() >= 500 {
			logLevel = zap.ErrorLevel
		}

		if ce := h.logger.Check(logLevel, "http request"); ce != nil {
			ce.Write(
				zap.String("method", c.Request.Method),
				zap.String("path", path),
				zap.Int("status", c.Writer.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("client_ip", c.ClientIP()),
			)
		}
	}
}
