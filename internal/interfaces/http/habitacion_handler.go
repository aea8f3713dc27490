package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/reservas_backend/internal/application"
	"github.com/Maxito7/reservas_backend/internal/domain"
)

type HabitacionHandler struct {
	service *application.HabitacionService
}

// NewHabitacionHandler crea una nueva instancia del handler de habitaciones
func NewHabitacionHandler(service *application.HabitacionService) *HabitacionHandler {
	return &HabitacionHandler{
		service: service,
	}
}

// CreateHabitacionRequest representa la petición para registrar una habitación
type CreateHabitacionRequest struct {
	Numero         int     `json:"number" validate:"required,gt=0"`
	Tipo           string  `json:"type" validate:"required"`
	Capacidad      int     `json:"capacity" validate:"required,gte=1"`
	PrecioPorNoche float64 `json:"pricePerNight" validate:"gte=0"`
}

// UpdateHabitacionRequest representa la petición para actualizar una
// habitación. El número es inmutable y no se acepta aquí.
type UpdateHabitacionRequest struct {
	Tipo           string  `json:"type" validate:"required"`
	Capacidad      int     `json:"capacity" validate:"required,gte=1"`
	PrecioPorNoche float64 `json:"pricePerNight" validate:"gte=0"`
	Estado         string  `json:"status" validate:"required,oneof=ATIVO INATIVO"`
}

// CreateHabitacion registra una nueva habitación
func (h *HabitacionHandler) CreateHabitacion(c *fiber.Ctx) error {
	var req CreateHabitacionRequest
	if err := c.BodyParser(&req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "number, type, capacity y pricePerNight son requeridos")
	}

	habitacion, err := h.service.CrearHabitacion(req.Numero, domain.TipoHabitacion(req.Tipo), req.Capacidad, req.PrecioPorNoche)
	if err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": habitacion,
	})
}

// GetHabitaciones lista todas las habitaciones
func (h *HabitacionHandler) GetHabitaciones(c *fiber.Ctx) error {
	habitaciones, err := h.service.ListarHabitaciones()
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": habitaciones,
	})
}

// GetHabitacionesDisponibles lista las habitaciones libres para un período.
// Query params: checkin, checkout (YYYY-MM-DD) y guests opcional.
func (h *HabitacionHandler) GetHabitacionesDisponibles(c *fiber.Ctx) error {
	checkin := c.Query("checkin")
	checkout := c.Query("checkout")
	if checkin == "" || checkout == "" {
		return responderConCodigo(c, fiber.StatusBadRequest, "checkin y checkout son requeridos. Use YYYY-MM-DD")
	}

	capacidadMinima := 1
	if guests := c.Query("guests"); guests != "" {
		n, err := strconv.Atoi(guests)
		if err != nil {
			return responderConCodigo(c, fiber.StatusBadRequest, "guests debe ser un número")
		}
		capacidadMinima = n
	}

	habitaciones, err := h.service.ListarDisponibles(checkin, checkout, capacidadMinima)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": habitaciones,
	})
}

// GetHabitacionByID obtiene una habitación por su ID
func (h *HabitacionHandler) GetHabitacionByID(c *fiber.Ctx) error {
	habitacion, err := h.service.BuscarHabitacionPorID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": habitacion,
	})
}

// UpdateHabitacion actualiza tipo, capacidad, precio y estado
func (h *HabitacionHandler) UpdateHabitacion(c *fiber.Ctx) error {
	var req UpdateHabitacionRequest
	if err := c.BodyParser(&req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "type, capacity, pricePerNight y status (ATIVO/INATIVO) son requeridos")
	}

	habitacion, err := h.service.ActualizarHabitacion(
		c.Params("id"),
		domain.TipoHabitacion(req.Tipo),
		req.Capacidad,
		req.PrecioPorNoche,
		domain.EstadoHabitacion(req.Estado),
	)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": habitacion,
	})
}

// DeleteHabitacion elimina una habitación
func (h *HabitacionHandler) DeleteHabitacion(c *fiber.Ctx) error {
	if err := h.service.EliminarHabitacion(c.Params("id")); err != nil {
		return responderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
