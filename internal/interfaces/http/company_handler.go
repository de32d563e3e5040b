package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/application/usecase"
	"github.com/jhoicas/contact-crm/internal/domain"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc      *usecase.CompanyUseCase
	metrics *Metrics
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, metrics *Metrics) *CompanyHandler {
	return &CompanyHandler{uc: uc, metrics: metrics}
}

// List GET /companies
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("companies", fiber.Map{"Companies": list})
}

// New GET /companies/new
func (h *CompanyHandler) New(c *fiber.Ctx) error {
	return h.renderForm(c, "/companies", false, dto.Form{}, nil)
}

// Create POST /companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	f := formValues(c)
	_, err := h.uc.Create(c.UserContext(), f)
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		h.metrics.ObserveRejection("company")
		return h.renderForm(c, "/companies", false, f, ve.Messages)
	}
	if err != nil {
		return err
	}
	return c.Redirect("/companies", fiber.StatusSeeOther)
}

// Show GET /companies/:id
func (h *CompanyHandler) Show(c *fiber.Ctx) error {
	detail, err := h.uc.Detail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Render("company", fiber.Map{
		"Company":  detail.Company,
		"Contacts": detail.Contacts,
	})
}

// Edit GET /companies/:id/edit
func (h *CompanyHandler) Edit(c *fiber.Ctx) error {
	company, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.renderForm(c, "/companies/"+company.ID, true, dto.Form{"name": company.Name}, nil)
}

// Update POST /companies/:id
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	f := formValues(c)
	_, err := h.uc.Update(c.UserContext(), id, f)
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		h.metrics.ObserveRejection("company")
		return h.renderForm(c, "/companies/"+id, true, f, ve.Messages)
	}
	if err != nil {
		return err
	}
	return c.Redirect("/companies", fiber.StatusSeeOther)
}

// Delete POST /companies/:id/delete
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.Redirect("/companies", fiber.StatusSeeOther)
}

func (h *CompanyHandler) renderForm(c *fiber.Ctx, action string, editing bool, f dto.Form, errs []string) error {
	return c.Status(fiber.StatusOK).Render("company_form", fiber.Map{
		"Action":  action,
		"Editing": editing,
		"Form":    f,
		"Errors":  errs,
	})
}
