package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/reservas_backend/internal/application"
)

type HuespedHandler struct {
	service *application.HuespedService
}

// NewHuespedHandler crea una nueva instancia del handler de huéspedes
func NewHuespedHandler(service *application.HuespedService) *HuespedHandler {
	return &HuespedHandler{
		service: service,
	}
}

// CreateHuespedRequest representa la petición para registrar un huésped
type CreateHuespedRequest struct {
	NombreCompleto string  `json:"fullName" validate:"required"`
	Documento      string  `json:"document" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Telefono       *string `json:"phone"`
}

// UpdateHuespedRequest representa la petición para actualizar un huésped.
// El documento es inmutable y no se acepta aquí.
type UpdateHuespedRequest struct {
	NombreCompleto string  `json:"fullName" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Telefono       *string `json:"phone"`
}

// CreateHuesped registra un nuevo huésped
func (h *HuespedHandler) CreateHuesped(c *fiber.Ctx) error {
	var req CreateHuespedRequest
	if err := c.BodyParser(&req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "fullName, document y email son requeridos")
	}

	huesped, err := h.service.CrearHuesped(req.NombreCompleto, req.Documento, req.Email, req.Telefono)
	if err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": huesped,
	})
}

// GetHuespedes lista todos los huéspedes
func (h *HuespedHandler) GetHuespedes(c *fiber.Ctx) error {
	huespedes, err := h.service.ListarHuespedes()
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": huespedes,
	})
}

// GetHuespedByID obtiene un huésped por su ID
func (h *HuespedHandler) GetHuespedByID(c *fiber.Ctx) error {
	huesped, err := h.service.BuscarHuespedPorID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": huesped,
	})
}

// UpdateHuesped actualiza nombre, email y teléfono de un huésped
func (h *HuespedHandler) UpdateHuesped(c *fiber.Ctx) error {
	var req UpdateHuespedRequest
	if err := c.BodyParser(&req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "fullName y email son requeridos")
	}

	huesped, err := h.service.ActualizarHuesped(c.Params("id"), req.NombreCompleto, req.Email, req.Telefono)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": huesped,
	})
}

// DeleteHuesped elimina un huésped
func (h *HuespedHandler) DeleteHuesped(c *fiber.Ctx) error {
	if err := h.service.EliminarHuesped(c.Params("id")); err != nil {
		return responderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
