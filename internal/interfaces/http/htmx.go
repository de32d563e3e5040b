package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contact-crm/internal/application/dto"
)

// Cabeceras HTMX usadas por los handlers.
const (
	HeaderHXRequest  = "HX-Request"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXReswap   = "HX-Reswap"
)

// IsHTMX informa si la petición la originó htmx (cabecera HX-Request presente).
func IsHTMX(c *fiber.Ctx) bool {
	return c.Get(HeaderHXRequest) != ""
}

// VaryHeaderMiddleware marca todas las respuestas con Vary: HX-Request, ya que la misma
// URL devuelve página completa o fragmento según esa cabecera.
func VaryHeaderMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Vary(HeaderHXRequest)
		if IsHTMX(c) {
			c.Set(fiber.HeaderCacheControl, "no-store")
		}
		return c.Next()
	}
}

// retarget redirige el swap de htmx al formulario indicado (p. ej. "#note-form").
func retarget(c *fiber.Ctx, selector string) {
	c.Set(HeaderHXRetarget, selector)
	c.Set(HeaderHXReswap, "outerHTML")
}

// formValues lee el cuerpo URL-encoded; para claves repetidas se queda con el primer valor.
func formValues(c *fiber.Ctx) dto.Form {
	f := dto.Form{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		key := string(k)
		if _, ok := f[key]; !ok {
			f[key] = string(v)
		}
	})
	return f
}

// flag interpreta los valores de casilla del query string.
func flag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
