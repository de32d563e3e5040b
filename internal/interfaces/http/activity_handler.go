package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/application/usecase"
	"github.com/jhoicas/contact-crm/internal/domain"
)

// ActivityHandler altas y bajas de actividades como fragmentos htmx.
type ActivityHandler struct {
	uc      *usecase.ActivityUseCase
	metrics *Metrics
}

func NewActivityHandler(uc *usecase.ActivityUseCase, metrics *Metrics) *ActivityHandler {
	return &ActivityHandler{uc: uc, metrics: metrics}
}

// Create POST /contacts/:id/activities
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	contactID := c.Params("id")
	f := formValues(c)
	activity, err := h.uc.Create(c.UserContext(), contactID, f)
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		h.metrics.ObserveRejection("activity")
		retarget(c, "#activity-form")
		return c.Status(fiber.StatusOK).Render("activity_form", activityFormData(contactID, f, ve.Messages))
	}
	if err != nil {
		return err
	}
	if !IsHTMX(c) {
		return c.Redirect("/contacts/"+activity.ContactID, fiber.StatusSeeOther)
	}
	return c.Render("activity_row", activity)
}

// Delete POST /activities/:id/delete → 200 vacío.
func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

func activityFormData(contactID string, f dto.Form, errs []string) fiber.Map {
	return fiber.Map{"ContactID": contactID, "Form": f, "Errors": errs}
}
