package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/reservas_backend/internal/application"
	"github.com/Maxito7/reservas_backend/internal/domain"
)

var validate = validator.New()

type ReservaHandler struct {
	service *application.ReservaService
}

// NewReservaHandler crea una nueva instancia del handler de reservas
func NewReservaHandler(service *application.ReservaService) *ReservaHandler {
	return &ReservaHandler{
		service: service,
	}
}

// CreateReservaRequest representa la petición para crear una reserva
type CreateReservaRequest struct {
	HuespedID         string `json:"guestId" validate:"required,uuid4"`
	HabitacionID      string `json:"roomId" validate:"required,uuid4"`
	CheckinPrevisto   string `json:"checkinExpected" validate:"required"` // Formato: YYYY-MM-DD
	CheckoutPrevisto  string `json:"checkoutExpected" validate:"required"`
	CantidadHuespedes int    `json:"guests"` // Opcional, por defecto 1
}

// UpdateReservaRequest representa la petición para cambiar fechas previstas
type UpdateReservaRequest struct {
	CheckinPrevisto  string `json:"checkinExpected" validate:"required"`
	CheckoutPrevisto string `json:"checkoutExpected" validate:"required"`
}

// reservaResponse serializa una reserva con fechas de calendario como
// YYYY-MM-DD y timestamps como RFC 3339
type reservaResponse struct {
	ID               string             `json:"id"`
	HuespedID        string             `json:"guestId"`
	HabitacionID     string             `json:"roomId"`
	CheckinPrevisto  string             `json:"checkinExpected"`
	CheckoutPrevisto string             `json:"checkoutExpected"`
	Estado           string             `json:"status"`
	PrecioReserva    float64            `json:"priceAtBooking"`
	CheckinAt        *string            `json:"checkinAt"`
	CheckoutAt       *string            `json:"checkoutAt"`
	MontoEstimado    float64            `json:"estimatedAmount"`
	MontoFinal       *float64           `json:"finalAmount"`
	CreadoEn         string             `json:"createdAt"`
	ActualizadoEn    string             `json:"updatedAt"`
	Huesped          *domain.Huesped    `json:"guest,omitempty"`
	Habitacion       *domain.Habitacion `json:"room,omitempty"`
}

func formatearTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func nuevaReservaResponse(reserva *domain.Reserva) reservaResponse {
	return reservaResponse{
		ID:               reserva.ID,
		HuespedID:        reserva.HuespedID,
		HabitacionID:     reserva.HabitacionID,
		CheckinPrevisto:  application.FormatCalendarDate(reserva.CheckinPrevisto),
		CheckoutPrevisto: application.FormatCalendarDate(reserva.CheckoutPrevisto),
		Estado:           string(reserva.Estado),
		PrecioReserva:    reserva.PrecioReserva,
		CheckinAt:        formatearTimestamp(reserva.CheckinAt),
		CheckoutAt:       formatearTimestamp(reserva.CheckoutAt),
		MontoEstimado:    reserva.MontoEstimado,
		MontoFinal:       reserva.MontoFinal,
		CreadoEn:         reserva.CreadoEn.UTC().Format(time.RFC3339),
		ActualizadoEn:    reserva.ActualizadoEn.UTC().Format(time.RFC3339),
		Huesped:          reserva.Huesped,
		Habitacion:       reserva.Habitacion,
	}
}

func nuevasReservasResponse(reservas []domain.Reserva) []reservaResponse {
	respuesta := make([]reservaResponse, len(reservas))
	for i := range reservas {
		respuesta[i] = nuevaReservaResponse(&reservas[i])
	}
	return respuesta
}

// CreateReserva crea una nueva reserva
func (h *ReservaHandler) CreateReserva(c *fiber.Ctx) error {
	var req CreateReservaRequest
	if err := c.BodyParser(&req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "guestId y roomId (UUID), checkinExpected y checkoutExpected son requeridos")
	}

	reserva, err := h.service.CrearReserva(req.HuespedID, req.HabitacionID, req.CheckinPrevisto, req.CheckoutPrevisto, req.CantidadHuespedes)
	if err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": nuevaReservaResponse(reserva),
	})
}

// GetReservas lista todas las reservas
func (h *ReservaHandler) GetReservas(c *fiber.Ctx) error {
	reservas, err := h.service.ListarReservas()
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": nuevasReservasResponse(reservas),
	})
}

// GetReservaByID obtiene una reserva por su ID
func (h *ReservaHandler) GetReservaByID(c *fiber.Ctx) error {
	reserva, err := h.service.BuscarReservaPorID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": nuevaReservaResponse(reserva),
	})
}

// GetReservasHuesped lista las reservas de un huésped
func (h *ReservaHandler) GetReservasHuesped(c *fiber.Ctx) error {
	reservas, err := h.service.ListarReservasPorHuesped(c.Params("huespedId"))
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": nuevasReservasResponse(reservas),
	})
}

// GetReservasHabitacion lista las reservas de una habitación
func (h *ReservaHandler) GetReservasHabitacion(c *fiber.Ctx) error {
	reservas, err := h.service.ListarReservasPorHabitacion(c.Params("habitacionId"))
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": nuevasReservasResponse(reservas),
	})
}

// UpdateReserva actualiza las fechas previstas de una reserva CREATED
func (h *ReservaHandler) UpdateReserva(c *fiber.Ctx) error {
	var req UpdateReservaRequest
	if err := c.BodyParser(&req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "checkinExpected y checkoutExpected son requeridos")
	}

	reserva, err := h.service.ActualizarDetalles(c.Params("id"), req.CheckinPrevisto, req.CheckoutPrevisto)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": nuevaReservaResponse(reserva),
	})
}

// CheckIn registra la entrada del huésped
func (h *ReservaHandler) CheckIn(c *fiber.Ctx) error {
	reserva, err := h.service.CheckIn(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Check-in registrado exitosamente",
		"data":    nuevaReservaResponse(reserva),
	})
}

// CheckOut registra la salida del huésped y el monto final
func (h *ReservaHandler) CheckOut(c *fiber.Ctx) error {
	reserva, err := h.service.CheckOut(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Check-out registrado exitosamente",
		"data":    nuevaReservaResponse(reserva),
	})
}

// CancelarReserva cancela una reserva aún no iniciada
func (h *ReservaHandler) CancelarReserva(c *fiber.Ctx) error {
	reserva, err := h.service.CancelarReserva(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Reserva cancelada exitosamente",
		"data":    nuevaReservaResponse(reserva),
	})
}

// DeleteReserva borra físicamente una reserva (uso administrativo)
func (h *ReservaHandler) DeleteReserva(c *fiber.Ctx) error {
	if err := h.service.EliminarReserva(c.Params("id")); err != nil {
		return responderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
