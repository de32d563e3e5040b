package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/application/usecase"
	"github.com/jhoicas/contact-crm/internal/domain"
)

// NoteHandler altas y bajas de notas como fragmentos htmx.
type NoteHandler struct {
	uc      *usecase.NoteUseCase
	metrics *Metrics
}

func NewNoteHandler(uc *usecase.NoteUseCase, metrics *Metrics) *NoteHandler {
	return &NoteHandler{uc: uc, metrics: metrics}
}

// Create POST /contacts/:id/notes
//
// Éxito: fragmento note_row (o 303 a la ficha sin HX-Request). Rechazo: el formulario con
// errores, redirigido a #note-form.
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	contactID := c.Params("id")
	f := formValues(c)
	note, err := h.uc.Create(c.UserContext(), contactID, f)
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		h.metrics.ObserveRejection("note")
		retarget(c, "#note-form")
		return c.Status(fiber.StatusOK).Render("note_form", noteFormData(contactID, f, ve.Messages))
	}
	if err != nil {
		return err
	}
	if !IsHTMX(c) {
		return c.Redirect("/contacts/"+note.ContactID, fiber.StatusSeeOther)
	}
	return c.Render("note_row", note)
}

// Delete POST /notes/:id/delete → 200 vacío.
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

func noteFormData(contactID string, f dto.Form, errs []string) fiber.Map {
	return fiber.Map{"ContactID": contactID, "Form": f, "Errors": errs}
}
