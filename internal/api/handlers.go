package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"payout_manager/internal/domain"
	"payout_manager/internal/service"
)

// PayoutRunner is the slice of the processor the API needs.
type PayoutRunner interface {
	Run(ctx context.Context) (*domain.CycleReport, error)
	Preview(ctx context.Context) ([]domain.AuthorPreview, error)
}

type Handler struct {
	publisher service.EventPublisher
	processor PayoutRunner
	ledger    service.LedgerStore
	settings  service.SettingsStore
	logger    *slog.Logger
}

func NewHandler(
	publisher service.EventPublisher,
	processor PayoutRunner,
	ledger service.LedgerStore,
	settings service.SettingsStore,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		publisher: publisher,
		processor: processor,
		ledger:    ledger,
		settings:  settings,
		logger:    logger,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type trackRequest struct {
	Type           string `json:"type" binding:"required"`
	ContentID      int64  `json:"content_id" binding:"required"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
}

// Track accepts a fire-and-forget tracking beacon and enqueues it. Clients
// get a 202 as soon as the event is on the queue; validation against the
// database happens in the consumer.
func (h *Handler) Track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("discarding malformed tracking request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "type and content_id are required"})
		return
	}

	if req.Type != domain.EventView && req.Type != domain.EventRead {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be view or read"})
		return
	}
	if req.ElapsedSeconds < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "elapsed_seconds must not be negative"})
		return
	}

	event := &domain.TrackingEvent{
		Type:           req.Type,
		ContentID:      req.ContentID,
		ElapsedSeconds: req.ElapsedSeconds,
		ReportedAt:     time.Now().UTC(),
	}

	if err := h.publisher.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("failed to enqueue tracking event", "content_id", req.ContentID, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "tracking unavailable"})
		return
	}

	c.Status(http.StatusAccepted)
}

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

type settingsRequest struct {
	TotalBudget decimal.Decimal `json:"total_budget"`
	PayPerView  decimal.Decimal `json:"pay_per_view"`
	Method      string          `json:"calculation_method" binding:"required"`
}

func (h *Handler) SaveSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method := domain.CalculationMethod(req.Method)
	if !method.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "calculation_method must be budget or ppv"})
		return
	}
	if req.TotalBudget.IsNegative() || req.PayPerView.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amounts must not be negative"})
		return
	}

	settings := &domain.Settings{
		TotalBudget: req.TotalBudget,
		PayPerView:  req.PayPerView,
		Method:      method,
	}

	if err := h.settings.Save(c.Request.Context(), settings); err != nil {
		h.logger.Error("failed to save settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) PreviewPayouts(c *gin.Context) {
	previews, err := h.processor.Preview(c.Request.Context())
	if err != nil {
		h.logger.Error("payout preview failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "preview failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authors": previews})
}

func (h *Handler) RunPayoutCycle(c *gin.Context) {
	report, err := h.processor.Run(c.Request.Context())
	if errors.Is(err, domain.ErrCycleInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": "payout cycle already running"})
		return
	}
	if err != nil {
		h.logger.Error("payout cycle failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payout cycle failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) ListPayoutLogs(c *gin.Context) {
	entries, err := h.ledger.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list payout logs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": entries})
}

func (h *Handler) GetPayoutStats(c *gin.Context) {
	summaries, err := h.ledger.SummarizeByAuthor(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to summarize payouts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authors": summaries})
}
