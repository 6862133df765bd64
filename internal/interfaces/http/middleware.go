package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tu-usuario/contable-pro/pkg/logger"
)

// LocalRequestID clave en c.Locals para el id de la petición.
const LocalRequestID = "request_id"

// RequestID asigna un id único a cada petición (o respeta el del header
// X-Request-Id si viene de un proxy) y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get("X-Request-Id")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Locals(LocalRequestID, rid)
		c.Set("X-Request-Id", rid)
		return c.Next()
	}
}

// GetRequestID devuelve el id de la petición (después del middleware RequestID).
func GetRequestID(c *fiber.Ctx) string {
	v := c.Locals(LocalRequestID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// AccessLog registra cada petición con método, ruta, estado y latencia.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inicio := time.Now()
		err := c.Next()
		log.Info().
			Str("request_id", GetRequestID(c)).
			Str("metodo", c.Method()).
			Str("ruta", c.Path()).
			Int("estado", c.Response().StatusCode()).
			Dur("latencia", time.Since(inicio)).
			Msg("http")
		return err
	}
}
