package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/contact-crm/internal/domain"
	"github.com/jhoicas/contact-crm/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, estado, latencia e id de petición.
//
// Los errores de los handlers se resuelven aquí mismo con el ErrorHandler de la app para
// que el estado registrado (y el que ven los middlewares externos) sea el definitivo.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("request")
		return nil
	}
}

// ErrorHandler traduce errores a respuestas: domain.ErrNotFound → 404, *fiber.Error con su
// código, cualquier otro → 500 registrado en el log. Las peticiones htmx reciben solo el
// texto del estado; el resto, la página de error.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		switch {
		case errors.Is(err, domain.ErrNotFound):
			code = fiber.StatusNotFound
		case errors.As(err, &fe):
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
				Msg("error no controlado")
		}

		// Descartar cabeceras htmx que el handler haya fijado antes de fallar.
		c.Response().Header.Del(HeaderHXRetarget)
		c.Response().Header.Del(HeaderHXReswap)

		msg := utils.StatusMessage(code)
		c.Status(code)
		if IsHTMX(c) {
			return c.SendString(msg)
		}
		if rerr := c.Render("error", fiber.Map{"Status": code, "Message": msg}); rerr != nil {
			return c.SendString(msg)
		}
		return nil
	}
}

// Health responde el estado del servicio.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
