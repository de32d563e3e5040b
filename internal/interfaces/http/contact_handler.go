package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/application/usecase"
	"github.com/jhoicas/contact-crm/internal/domain"
	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

// ContactHandler maneja las páginas de contactos y la búsqueda en vivo.
type ContactHandler struct {
	uc      *usecase.ContactUseCase
	metrics *Metrics
}

// NewContactHandler construye el handler inyectando el caso de uso.
func NewContactHandler(uc *usecase.ContactUseCase, metrics *Metrics) *ContactHandler {
	return &ContactHandler{uc: uc, metrics: metrics}
}

// List GET /contacts?q=&has_email=&has_phone=
// Con HX-Request devuelve solo las filas de resultados.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	filter := repository.ContactFilter{
		Query:    c.Query("q"),
		HasEmail: flag(c.Query("has_email")),
		HasPhone: flag(c.Query("has_phone")),
	}
	list, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	if IsHTMX(c) {
		return c.Render("contact_rows", list)
	}
	return c.Render("contacts", fiber.Map{
		"Contacts": list,
		"Query":    filter.Query,
		"HasEmail": filter.HasEmail,
		"HasPhone": filter.HasPhone,
	})
}

// New GET /contacts/new
func (h *ContactHandler) New(c *fiber.Ctx) error {
	detail, err := h.uc.NewForm(c.UserContext())
	if err != nil {
		return err
	}
	return h.renderForm(c, "/contacts", detail, dto.Form{}, nil)
}

// Create POST /contacts
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	f := formValues(c)
	detail, err := h.uc.Create(c.UserContext(), f)
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		h.metrics.ObserveRejection("contact")
		return h.renderForm(c, "/contacts", detail, f, ve.Messages)
	}
	if err != nil {
		return err
	}
	return c.Redirect("/contacts", fiber.StatusSeeOther)
}

// Show GET /contacts/:id
func (h *ContactHandler) Show(c *fiber.Ctx) error {
	detail, err := h.uc.Detail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	id := detail.Contact.ID
	return c.Render("contact", fiber.Map{
		"Contact":      detail.Contact,
		"Notes":        detail.Notes,
		"Activities":   detail.Activities,
		"NoteForm":     noteFormData(id, dto.Form{}, nil),
		"ActivityForm": activityFormData(id, dto.Form{}, nil),
	})
}

// Edit GET /contacts/:id/edit
func (h *ContactHandler) Edit(c *fiber.Ctx) error {
	detail, err := h.uc.EditForm(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.renderForm(c, "/contacts/"+detail.Contact.ID, detail, contactForm(detail.Contact), nil)
}

// Update POST /contacts/:id
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	f := formValues(c)
	detail, err := h.uc.Update(c.UserContext(), id, f)
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		h.metrics.ObserveRejection("contact")
		return h.renderForm(c, "/contacts/"+id, detail, f, ve.Messages)
	}
	if err != nil {
		return err
	}
	return c.Redirect("/contacts", fiber.StatusSeeOther)
}

// Delete POST /contacts/:id/delete
// Con HX-Request responde 200 vacío (la fila se elimina en el cliente); si no, redirige al listado.
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	if IsHTMX(c) {
		return c.Status(fiber.StatusOK).Send(nil)
	}
	return c.Redirect("/contacts", fiber.StatusSeeOther)
}

// ExportPDF GET /contacts/:id/export.pdf
func (h *ContactHandler) ExportPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ExportSheet(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

func (h *ContactHandler) renderForm(c *fiber.Ctx, action string, detail *dto.ContactDetail, f dto.Form, errs []string) error {
	data := fiber.Map{
		"Action": action,
		"Form":   f,
		"Errors": errs,
	}
	if detail != nil {
		data["Companies"] = detail.Companies
		if detail.Contact != nil {
			data["Contact"] = detail.Contact
			data["Notes"] = detail.Notes
			data["Activities"] = detail.Activities
		}
	}
	return c.Status(fiber.StatusOK).Render("contact_form", data)
}

// contactForm rellena el formulario de edición. Si el contacto está enlazado se marca la
// empresa en el selector y el texto libre queda vacío (el texto tiene precedencia al
// enviar); si solo tiene texto heredado, se precarga el texto.
func contactForm(ct *entity.Contact) dto.Form {
	f := dto.Form{
		"full_name": ct.FullName,
		"email":     ct.Email,
		"phone":     ct.Phone,
	}
	if ct.CompanyID != nil {
		f["company_id"] = *ct.CompanyID
	} else {
		f["company"] = ct.Company
	}
	return f
}
