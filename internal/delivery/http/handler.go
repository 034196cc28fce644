package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medalt/backend/internal/domain"
	"github.com/medalt/backend/internal/metrics"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

const (
	errNoMedicineName = "No medicine name provided"
	errInternal       = "internal server error"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matcher domain.MedicineMatcher
	topN    int
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(matcher domain.MedicineMatcher, topN int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		matcher: matcher,
		topN:    topN,
		logger:  logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	records := 0
	if h.matcher != nil {
		records = h.matcher.Size()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "medalt-backend",
		"version": Version,
		"records": records,
	})
}

// Predict resolves the requested brand and returns its alternatives
func (h *Handler) Predict(c *gin.Context) {
	var req domain.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		c.JSON(http.StatusBadRequest, gin.H{"error": errNoMedicineName})
		return
	}

	var name string
	if req.MedicineName != nil {
		name = strings.TrimSpace(*req.MedicineName)
	}
	if name == "" {
		_ = c.Error(fmt.Errorf("%w: empty medicine_name", domain.ErrInvalidRequest))
		c.JSON(http.StatusBadRequest, gin.H{"error": errNoMedicineName})
		return
	}

	if h.matcher == nil {
		h.logger.Error("Predict called without a matcher")
		metrics.ObserveLookup(metrics.OutcomeError)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
		return
	}

	result, err := h.matcher.FindAlternatives(c.Request.Context(), name, h.topN)
	if err != nil {
		if msg, ok := domain.NoMatchMessage(err); ok {
			if errors.Is(err, domain.ErrDatasetEmpty) {
				metrics.ObserveLookup(metrics.OutcomeDatasetEmpty)
			} else {
				metrics.ObserveLookup(metrics.OutcomeNoMatch)
			}
			c.JSON(http.StatusOK, gin.H{
				"match":        nil,
				"message":      msg,
				"alternatives": []domain.Alternative{},
			})
			return
		}

		h.logger.Error("Lookup failed", zap.String("medicine_name", name), zap.Error(err))
		metrics.ObserveLookup(metrics.OutcomeError)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
		return
	}

	if result.Alternatives == nil {
		result.Alternatives = []domain.Alternative{}
	}

	metrics.ObserveLookup(metrics.OutcomeMatched)
	c.JSON(http.StatusOK, result)
}
