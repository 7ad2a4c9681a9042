package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

const localLogger = "logger"

// RequestLogger registra cada petición con método, ruta, estado, latencia y request_id, y deja
// en c.Locals un logger con el request_id para los handlers. Va después de requestid.New().
func RequestLogger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		log := base.With().Str("request_id", reqID).Logger()
		c.Locals(localLogger, log)

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de la app escriba la respuesta antes de leer el estado.
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
			Msg("request")
		return nil
	}
}

func requestLogger(c *fiber.Ctx) *zerolog.Logger {
	if log, ok := c.Locals(localLogger).(zerolog.Logger); ok {
		return &log
	}
	nop := zerolog.Nop()
	return &nop
}
