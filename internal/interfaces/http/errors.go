package http

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/reservas_backend/internal/domain"
)

// errorResponse es el sobre uniforme de error de la API
type errorResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

func responderConCodigo(c *fiber.Ctx, codigo int, mensaje string) error {
	return c.Status(codigo).JSON(errorResponse{
		Status:     "error",
		StatusCode: codigo,
		Message:    mensaje,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// responderError traduce los errores tipados del dominio al código HTTP que
// les corresponde; cualquier otro error se reporta como 500 sin detalle
func responderError(c *fiber.Ctx, err error) error {
	var validacion *domain.ValidationError
	if errors.As(err, &validacion) {
		return responderConCodigo(c, fiber.StatusBadRequest, validacion.Mensaje)
	}

	var noEncontrado *domain.NotFoundError
	if errors.As(err, &noEncontrado) {
		return responderConCodigo(c, fiber.StatusNotFound, noEncontrado.Mensaje)
	}

	var conflicto *domain.ConflictError
	if errors.As(err, &conflicto) {
		return responderConCodigo(c, fiber.StatusConflict, conflicto.Mensaje)
	}

	var noProcesable *domain.UnprocessableEntityError
	if errors.As(err, &noProcesable) {
		return responderConCodigo(c, fiber.StatusUnprocessableEntity, noProcesable.Mensaje)
	}

	log.Printf("Error interno: %v", err)
	return responderConCodigo(c, fiber.StatusInternalServerError, "Error interno del servidor")
}
