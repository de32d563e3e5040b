package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contact-crm/internal/application/usecase"
)

// HomeHandler página de inicio con el resumen del CRM.
type HomeHandler struct {
	uc *usecase.DashboardUseCase
}

func NewHomeHandler(uc *usecase.DashboardUseCase) *HomeHandler {
	return &HomeHandler{uc: uc}
}

// Index GET /
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("home", fiber.Map{"Dashboard": summary})
}
