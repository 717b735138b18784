package handler

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sentinel-security/sentinel-console/internal/domain"
	"github.com/sentinel-security/sentinel-console/internal/evidence"
	"github.com/sentinel-security/sentinel-console/internal/stream"
)

type AlertsHandler struct {
	consumer *stream.Consumer
	report   *evidence.Report
	logger   *slog.Logger
}

func NewAlertsHandler(consumer *stream.Consumer, report *evidence.Report, logger *slog.Logger) *AlertsHandler {
	return &AlertsHandler{
		consumer: consumer,
		report:   report,
		logger:   logger,
	}
}

type ListAlertsResponse struct {
	Alerts      []domain.Alert `json:"alerts"`
	UnreadCount int            `json:"unread_count"`
}

// List returns the current ordered alert list and unread count.
func (h *AlertsHandler) List(c *fiber.Ctx) error {
	return c.JSON(ListAlertsResponse{
		Alerts:      h.consumer.Alerts(),
		UnreadCount: h.consumer.UnreadCount(),
	})
}

// Review marks one alert reviewed. A store write failure is deliberately not
// an error response: the record staying unreviewed in the next snapshot is
// the caller's signal.
func (h *AlertsHandler) Review(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.ErrBadRequest
	}

	if err := h.consumer.MarkReviewed(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Simulate injects a synthetic alert into the local list, exercising the
// notification and review paths without live infrastructure.
func (h *AlertsHandler) Simulate(c *fiber.Ctx) error {
	alert := h.consumer.Simulate()

	h.logger.Info("simulated alert injected",
		slog.String("alert_id", alert.ID),
		slog.String("status", string(alert.Status)),
	)

	return c.Status(fiber.StatusCreated).JSON(alert)
}

// Evidence renders the incident report PDF for one alert.
func (h *AlertsHandler) Evidence(c *fiber.Ctx) error {
	id := c.Params("id")

	alert, ok := h.consumer.Get(id)
	if !ok {
		return domain.ErrAlertNotFound
	}

	data, err := h.report.Render(alert, time.Now())
	if err != nil {
		return domain.ErrInternal.WithError(err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+evidence.Filename(alert.ID)+`"`)
	return c.Send(data)
}
