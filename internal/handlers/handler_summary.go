package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketfin/budget_tracker_app/internal/apperrors"
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	portssvc "github.com/pocketfin/budget_tracker_app/internal/core/ports/services"
	"github.com/pocketfin/budget_tracker_app/internal/dto"
	"github.com/pocketfin/budget_tracker_app/internal/middleware"
)

// summaryHandler handles HTTP requests for aggregate views.
type summaryHandler struct {
	summaryService portssvc.SummarySvc
}

func newSummaryHandler(ss portssvc.SummarySvc) *summaryHandler {
	return &summaryHandler{summaryService: ss}
}

// registerSummaryRoutes registers the summary snapshot and stream routes.
func registerSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvc) {
	h := newSummaryHandler(summaryService)

	summary := rg.Group("/summary")
	{
		summary.GET("", h.getSummary)
		summary.GET("/stream", h.streamSummary)
	}
}

// getSummary returns one snapshot of the filtered list, totals, category
// breakdown and share split.
func (h *summaryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.summaryService.Summarize(c.Request.Context(), params.ToQuery())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// streamSummary pushes summary snapshots over server-sent events: one
// immediately, then one after every committed change to the transaction
// collection, recomputed under the same query. The stream ends when the
// client disconnects.
func (h *summaryHandler) streamSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	// Buffered so a burst of writes never blocks the publisher; a dropped
	// intermediate snapshot is fine because the next one carries full state.
	updates := make(chan dto.SummaryResponse, 8)
	stop, err := h.summaryService.Watch(c.Request.Context(), params.ToQuery(), func(s domain.Summary) {
		select {
		case updates <- dto.ToSummaryResponse(&s):
		default:
		}
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to start summary stream", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start summary stream"})
		return
	}
	defer stop()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case resp := <-updates:
			c.SSEvent("summary", resp)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
