package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/reidocupim/internal/services"
)

// CronHandler exposes the scheduled jobs as authenticated HTTP triggers.
type CronHandler struct {
	decay *services.DecayService
}

// NewCronHandler constructs a CronHandler.
func NewCronHandler(decay *services.DecayService) *CronHandler {
	return &CronHandler{decay: decay}
}

// ExpirePoints runs the inactivity sweep.
func (h *CronHandler) ExpirePoints(c *fiber.Ctx) error {
	report, err := h.decay.Run(c.Context())
	if err != nil {
		return err
	}

	log.Printf("[Cron] decay sweep: %d customers scanned, %d affected, %d errors",
		report.TotalCustomers, len(report.Affected), len(report.Errors))

	return c.JSON(fiber.Map{
		"success":           true,
		"data_execucao":     report.RanAt,
		"total_clientes":    report.TotalCustomers,
		"clientes_afetados": len(report.Affected),
		"resultados":        report.Affected,
		"erros":             report.Errors,
	})
}
