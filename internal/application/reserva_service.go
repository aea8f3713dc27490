package application

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Maxito7/reservas_backend/internal/domain"
	"github.com/Maxito7/reservas_backend/internal/email"
	"github.com/google/uuid"
)

type ReservaService struct {
	reservaRepo    domain.ReservaRepository
	habitacionRepo domain.HabitacionRepository
	huespedRepo    domain.HuespedRepository
	emailClient    *email.Client
	politica       domain.PoliticaCheckIn

	// Ahora provee el instante actual; reemplazable en pruebas
	Ahora func() time.Time
}

// NewReservaService crea una nueva instancia del servicio de reservas.
// emailClient puede ser nil; en ese caso no se envían confirmaciones.
func NewReservaService(
	reservaRepo domain.ReservaRepository,
	habitacionRepo domain.HabitacionRepository,
	huespedRepo domain.HuespedRepository,
	emailClient *email.Client,
	politica domain.PoliticaCheckIn,
) *ReservaService {
	return &ReservaService{
		reservaRepo:    reservaRepo,
		habitacionRepo: habitacionRepo,
		huespedRepo:    huespedRepo,
		emailClient:    emailClient,
		politica:       politica,
		Ahora:          time.Now,
	}
}

// validarPeriodo convierte y valida el par de fechas previstas
func validarPeriodo(checkinStr, checkoutStr string) (time.Time, time.Time, error) {
	checkin, err := ParseCalendarDate(checkinStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Validacion("fecha de check-in prevista inválida: %v", err)
	}
	checkout, err := ParseCalendarDate(checkoutStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Validacion("fecha de check-out prevista inválida: %v", err)
	}
	if !checkout.After(checkin) {
		return time.Time{}, time.Time{}, domain.Validacion("la fecha de check-out prevista debe ser posterior a la fecha de check-in prevista")
	}
	return checkin, checkout, nil
}

// conflictoDetallado arma el error de doble reserva con el período que choca
func conflictoDetallado(habitacion *domain.Habitacion, conflictos []domain.Reserva) *domain.ConflictError {
	c := conflictos[0]
	return domain.Conflicto(
		"la habitación %d no está disponible para el período solicitado: reserva %s ocupa del %s al %s",
		habitacion.Numero,
		c.Estado,
		FormatCalendarDate(c.CheckinPrevisto),
		FormatCalendarDate(c.CheckoutPrevisto),
	)
}

// CrearReserva crea una nueva reserva validando huésped, habitación,
// capacidad y disponibilidad. Las fechas llegan como YYYY-MM-DD.
// cantidadHuespedes menor a 1 se interpreta como 1.
func (s *ReservaService) CrearReserva(huespedID, habitacionID, checkinStr, checkoutStr string, cantidadHuespedes int) (*domain.Reserva, error) {
	checkin, checkout, err := validarPeriodo(checkinStr, checkoutStr)
	if err != nil {
		return nil, err
	}

	huesped, err := s.huespedRepo.BuscarPorID(huespedID)
	if err != nil {
		return nil, fmt.Errorf("error al buscar huésped: %w", err)
	}
	if huesped == nil {
		return nil, domain.NoEncontrado("huésped no encontrado")
	}

	habitacion, err := s.habitacionRepo.BuscarPorID(habitacionID)
	if err != nil {
		return nil, fmt.Errorf("error al buscar habitación: %w", err)
	}
	if habitacion == nil {
		return nil, domain.NoEncontrado("habitación no encontrada")
	}
	if habitacion.Estado != domain.HabitacionActiva {
		return nil, domain.Conflicto("la habitación %d no está activa", habitacion.Numero)
	}

	if cantidadHuespedes < 1 {
		cantidadHuespedes = 1
	}
	if cantidadHuespedes > habitacion.Capacidad {
		return nil, domain.Conflicto("la cantidad de huéspedes (%d) excede la capacidad de la habitación (%d)", cantidadHuespedes, habitacion.Capacidad)
	}

	// Chequeo previo para poder informar el período en conflicto; la garantía
	// contra la doble reserva está en la transacción de escritura del store
	conflictos, err := s.reservaRepo.BuscarConflictos(habitacionID, checkin, checkout, "")
	if err != nil {
		return nil, fmt.Errorf("error al verificar disponibilidad: %w", err)
	}
	if len(conflictos) > 0 {
		return nil, conflictoDetallado(habitacion, conflictos)
	}

	noches := CalcularNoches(checkin, checkout)
	montoEstimado := float64(noches) * habitacion.PrecioPorNoche

	reserva := &domain.Reserva{
		ID:               uuid.NewString(),
		HuespedID:        huespedID,
		HabitacionID:     habitacionID,
		CheckinPrevisto:  checkin,
		CheckoutPrevisto: checkout,
		Estado:           domain.ReservaCreada,
		PrecioReserva:    habitacion.PrecioPorNoche,
		MontoEstimado:    montoEstimado,
	}

	creada, err := s.reservaRepo.Crear(reserva)
	if err != nil {
		if errors.Is(err, domain.ErrHabitacionOcupada) {
			return nil, domain.Conflicto("la habitación %d no está disponible para el período solicitado", habitacion.Numero)
		}
		return nil, fmt.Errorf("error al crear reserva: %w", err)
	}

	if s.emailClient != nil {
		s.enviarEmailConfirmacion(creada, huesped, habitacion)
	}

	return creada, nil
}

// buscar carga una reserva o devuelve NotFoundError
func (s *ReservaService) buscar(id string) (*domain.Reserva, error) {
	reserva, err := s.reservaRepo.BuscarPorID(id)
	if err != nil {
		return nil, fmt.Errorf("error al buscar reserva: %w", err)
	}
	if reserva == nil {
		return nil, domain.NoEncontrado("reserva no encontrada")
	}
	return reserva, nil
}

// BuscarReservaPorID obtiene una reserva con su huésped y habitación
func (s *ReservaService) BuscarReservaPorID(id string) (*domain.Reserva, error) {
	reserva, err := s.buscar(id)
	if err != nil {
		return nil, err
	}
	s.poblarRelaciones(reserva)
	return reserva, nil
}

// poblarRelaciones adjunta huésped y habitación a la reserva para las lecturas.
// Un fallo al cargar una relación no aborta la lectura: se registra y la
// relación queda en nil.
func (s *ReservaService) poblarRelaciones(reserva *domain.Reserva) {
	huesped, err := s.huespedRepo.BuscarPorID(reserva.HuespedID)
	if err != nil {
		log.Printf("error al cargar huésped %s de la reserva %s: %v", reserva.HuespedID, reserva.ID, err)
	} else {
		reserva.Huesped = huesped
	}

	habitacion, err := s.habitacionRepo.BuscarPorID(reserva.HabitacionID)
	if err != nil {
		log.Printf("error al cargar habitación %s de la reserva %s: %v", reserva.HabitacionID, reserva.ID, err)
	} else {
		reserva.Habitacion = habitacion
	}
}

// ListarReservas devuelve todas las reservas con sus relaciones
func (s *ReservaService) ListarReservas() ([]domain.Reserva, error) {
	reservas, err := s.reservaRepo.Listar()
	if err != nil {
		return nil, fmt.Errorf("error al listar reservas: %w", err)
	}
	for i := range reservas {
		s.poblarRelaciones(&reservas[i])
	}
	return reservas, nil
}

// ListarReservasPorHuesped devuelve las reservas de un huésped existente
func (s *ReservaService) ListarReservasPorHuesped(huespedID string) ([]domain.Reserva, error) {
	huesped, err := s.huespedRepo.BuscarPorID(huespedID)
	if err != nil {
		return nil, fmt.Errorf("error al buscar huésped: %w", err)
	}
	if huesped == nil {
		return nil, domain.NoEncontrado("huésped no encontrado")
	}
	return s.reservaRepo.ListarPorHuesped(huespedID)
}

// ListarReservasPorHabitacion devuelve las reservas de una habitación existente
func (s *ReservaService) ListarReservasPorHabitacion(habitacionID string) ([]domain.Reserva, error) {
	habitacion, err := s.habitacionRepo.BuscarPorID(habitacionID)
	if err != nil {
		return nil, fmt.Errorf("error al buscar habitación: %w", err)
	}
	if habitacion == nil {
		return nil, domain.NoEncontrado("habitación no encontrada")
	}
	return s.reservaRepo.ListarPorHabitacion(habitacionID)
}

// ActualizarDetalles cambia las fechas previstas de una reserva aún no
// iniciada y recalcula el monto estimado con el precio vigente de la habitación
func (s *ReservaService) ActualizarDetalles(id, checkinStr, checkoutStr string) (*domain.Reserva, error) {
	reserva, err := s.buscar(id)
	if err != nil {
		return nil, err
	}

	if reserva.Estado != domain.ReservaCreada {
		return nil, domain.Conflicto("no es posible actualizar una reserva con estado '%s'; la actualización solo está permitida con estado '%s'", reserva.Estado, domain.ReservaCreada)
	}

	checkin, checkout, err := validarPeriodo(checkinStr, checkoutStr)
	if err != nil {
		return nil, err
	}

	habitacion, err := s.habitacionRepo.BuscarPorID(reserva.HabitacionID)
	if err != nil {
		return nil, fmt.Errorf("error al buscar habitación: %w", err)
	}
	if habitacion == nil {
		return nil, domain.NoEncontrado("habitación asociada a la reserva no encontrada")
	}

	// Excluye la propia reserva: conservar las mismas fechas no es conflicto
	conflictos, err := s.reservaRepo.BuscarConflictos(reserva.HabitacionID, checkin, checkout, id)
	if err != nil {
		return nil, fmt.Errorf("error al verificar disponibilidad: %w", err)
	}
	if len(conflictos) > 0 {
		return nil, conflictoDetallado(habitacion, conflictos)
	}

	noches := CalcularNoches(checkin, checkout)
	montoEstimado := float64(noches) * habitacion.PrecioPorNoche

	actualizada, err := s.reservaRepo.ActualizarDetalles(id, checkin, checkout, montoEstimado)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEstadoNoPermitido):
			return nil, domain.Conflicto("no es posible actualizar una reserva con estado distinto de '%s'", domain.ReservaCreada)
		case errors.Is(err, domain.ErrHabitacionOcupada):
			return nil, domain.Conflicto("la habitación %d no está disponible para el período solicitado", habitacion.Numero)
		}
		return nil, fmt.Errorf("error al actualizar detalles de la reserva: %w", err)
	}
	if actualizada == nil {
		return nil, domain.NoEncontrado("reserva no encontrada al intentar actualizar")
	}

	return actualizada, nil
}

// CancelarReserva cancela una reserva que aún no tuvo check-in
func (s *ReservaService) CancelarReserva(id string) (*domain.Reserva, error) {
	reserva, err := s.buscar(id)
	if err != nil {
		return nil, err
	}

	if reserva.Estado != domain.ReservaCreada {
		return nil, domain.Conflicto("no es posible cancelar una reserva con estado '%s'; la cancelación solo está permitida con estado '%s'", reserva.Estado, domain.ReservaCreada)
	}

	cancelada, err := s.reservaRepo.ActualizarEstado(id, domain.ReservaCreada, domain.ReservaCancelada, nil, nil, nil)
	if err != nil {
		if errors.Is(err, domain.ErrEstadoNoPermitido) {
			return nil, domain.Conflicto("la reserva cambió de estado; la cancelación solo está permitida con estado '%s'", domain.ReservaCreada)
		}
		return nil, fmt.Errorf("error al cancelar reserva: %w", err)
	}
	if cancelada == nil {
		return nil, domain.NoEncontrado("reserva no encontrada al intentar cancelar")
	}
	return cancelada, nil
}

// CheckIn registra la entrada del huésped dentro de la ventana permitida
func (s *ReservaService) CheckIn(id string) (*domain.Reserva, error) {
	reserva, err := s.buscar(id)
	if err != nil {
		return nil, err
	}

	if reserva.Estado != domain.ReservaCreada {
		return nil, domain.Conflicto("no es posible hacer check-in de una reserva con estado '%s'; el check-in solo está permitido con estado '%s'", reserva.Estado, domain.ReservaCreada)
	}

	hoy := SoloFecha(s.Ahora())
	prevista := SoloFecha(reserva.CheckinPrevisto)
	desde := prevista.AddDate(0, 0, -s.politica.DiasAntes)
	hasta := prevista.AddDate(0, 0, s.politica.DiasDespues)

	if hoy.Before(desde) || hoy.After(hasta) {
		return nil, domain.NoProcesable("check-in permitido solo en la fecha prevista (%s); fecha actual: %s", FormatCalendarDate(prevista), FormatCalendarDate(hoy))
	}

	ahora := s.Ahora().UTC()
	actualizada, err := s.reservaRepo.ActualizarEstado(id, domain.ReservaCreada, domain.ReservaCheckIn, &ahora, nil, nil)
	if err != nil {
		if errors.Is(err, domain.ErrEstadoNoPermitido) {
			return nil, domain.Conflicto("la reserva cambió de estado; el check-in solo está permitido con estado '%s'", domain.ReservaCreada)
		}
		return nil, fmt.Errorf("error al registrar check-in: %w", err)
	}
	if actualizada == nil {
		return nil, domain.NoEncontrado("reserva no encontrada al intentar hacer check-in")
	}
	return actualizada, nil
}

// CheckOut registra la salida y calcula el monto final con el precio
// vigente de la habitación, no con el precio capturado al reservar
func (s *ReservaService) CheckOut(id string) (*domain.Reserva, error) {
	reserva, err := s.buscar(id)
	if err != nil {
		return nil, err
	}

	if reserva.Estado != domain.ReservaCheckIn {
		return nil, domain.Conflicto("no es posible hacer check-out de una reserva con estado '%s'; el check-out solo está permitido con estado '%s'", reserva.Estado, domain.ReservaCheckIn)
	}

	if reserva.CheckinAt == nil {
		// Corrupción interna: CHECKED_IN siempre registra checkinAt.
		// Se propaga como error genérico, no como error de negocio.
		log.Printf("reserva %s en estado %s sin timestamp de check-in", reserva.ID, reserva.Estado)
		return nil, fmt.Errorf("error interno: reserva con estado %s no posee fecha/hora de check-in registrada", domain.ReservaCheckIn)
	}

	habitacion, err := s.habitacionRepo.BuscarPorID(reserva.HabitacionID)
	if err != nil {
		return nil, fmt.Errorf("error al buscar habitación: %w", err)
	}
	if habitacion == nil {
		return nil, domain.NoEncontrado("habitación asociada a la reserva (ID: %s) no encontrada", reserva.HabitacionID)
	}

	ahora := s.Ahora().UTC()
	nochesEfectivas := CalcularNoches(*reserva.CheckinAt, ahora)
	montoFinal := float64(nochesEfectivas) * habitacion.PrecioPorNoche

	actualizada, err := s.reservaRepo.ActualizarEstado(id, domain.ReservaCheckIn, domain.ReservaCheckOut, reserva.CheckinAt, &ahora, &montoFinal)
	if err != nil {
		if errors.Is(err, domain.ErrEstadoNoPermitido) {
			return nil, domain.Conflicto("la reserva cambió de estado; el check-out solo está permitido con estado '%s'", domain.ReservaCheckIn)
		}
		return nil, fmt.Errorf("error al registrar check-out: %w", err)
	}
	if actualizada == nil {
		return nil, domain.NoEncontrado("reserva no encontrada al intentar hacer check-out")
	}
	return actualizada, nil
}

// EliminarReserva borra físicamente una reserva. Escape administrativo:
// el flujo normal nunca elimina, cancela.
func (s *ReservaService) EliminarReserva(id string) error {
	filas, err := s.reservaRepo.Eliminar(id)
	if err != nil {
		return fmt.Errorf("error al eliminar reserva: %w", err)
	}
	if filas == 0 {
		return domain.NoEncontrado("reserva no encontrada")
	}
	return nil
}

// enviarEmailConfirmacion envía la confirmación de reserva; los fallos se
// registran sin afectar la operación
func (s *ReservaService) enviarEmailConfirmacion(reserva *domain.Reserva, huesped *domain.Huesped, habitacion *domain.Habitacion) {
	subject := fmt.Sprintf("Confirmación de Reserva - Habitación %d", habitacion.Numero)

	htmlBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Reserva registrada</h2>
			<p>Estimado/a %s,</p>
			<p>Su reserva fue registrada exitosamente. Detalles:</p>
			<ul>
				<li><strong>Habitación:</strong> %d (%s)</li>
				<li><strong>Check-in previsto:</strong> %s</li>
				<li><strong>Check-out previsto:</strong> %s</li>
				<li><strong>Monto estimado:</strong> %.2f</li>
			</ul>
			<p>Gracias por su preferencia.</p>
		</body>
		</html>
	`,
		huesped.NombreCompleto,
		habitacion.Numero,
		habitacion.Tipo,
		FormatCalendarDate(reserva.CheckinPrevisto),
		FormatCalendarDate(reserva.CheckoutPrevisto),
		reserva.MontoEstimado,
	)

	if err := s.emailClient.SendEmail(huesped.Email, subject, htmlBody); err != nil {
		log.Printf("error al enviar email de confirmación de la reserva %s: %v", reserva.ID, err)
	}
}
