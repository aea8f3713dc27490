package memory

import (
	"sync"
	"time"

	"github.com/Maxito7/reservas_backend/internal/domain"
)

type ReservaRepository struct {
	mu       sync.Mutex
	reservas map[string]domain.Reserva
}

func NewReservaRepository() *ReservaRepository {
	return &ReservaRepository{reservas: make(map[string]domain.Reserva)}
}

// seSolapan aplica la condición de solape estricto sobre [checkin, checkout)
func seSolapan(reserva domain.Reserva, checkin, checkout time.Time) bool {
	return reserva.CheckinPrevisto.Before(checkout) && reserva.CheckoutPrevisto.After(checkin)
}

func (r *ReservaRepository) conflictos(habitacionID string, checkin, checkout time.Time, excluirID string) []domain.Reserva {
	var resultado []domain.Reserva
	for _, reserva := range r.reservas {
		if reserva.HabitacionID != habitacionID || reserva.ID == excluirID {
			continue
		}
		if !reserva.Estado.Activa() {
			continue
		}
		if seSolapan(reserva, checkin, checkout) {
			resultado = append(resultado, reserva)
		}
	}
	return resultado
}

// Crear verifica conflictos y persiste bajo el mismo lock, de modo que dos
// creaciones concurrentes sobre la misma habitación no pueden colarse ambas
func (r *ReservaRepository) Crear(reserva *domain.Reserva) (*domain.Reserva, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.conflictos(reserva.HabitacionID, reserva.CheckinPrevisto, reserva.CheckoutPrevisto, "")) > 0 {
		return nil, domain.ErrHabitacionOcupada
	}

	ahora := time.Now().UTC()
	reserva.Estado = domain.ReservaCreada
	reserva.CreadoEn = ahora
	reserva.ActualizadoEn = ahora
	r.reservas[reserva.ID] = *reserva

	copia := *reserva
	return &copia, nil
}

func (r *ReservaRepository) BuscarPorID(id string) (*domain.Reserva, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reserva, ok := r.reservas[id]; ok {
		return &reserva, nil
	}
	return nil, nil
}

func (r *ReservaRepository) Listar() ([]domain.Reserva, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reservas := make([]domain.Reserva, 0, len(r.reservas))
	for _, reserva := range r.reservas {
		reservas = append(reservas, reserva)
	}
	return reservas, nil
}

func (r *ReservaRepository) ListarPorHuesped(huespedID string) ([]domain.Reserva, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reservas []domain.Reserva
	for _, reserva := range r.reservas {
		if reserva.HuespedID == huespedID {
			reservas = append(reservas, reserva)
		}
	}
	return reservas, nil
}

func (r *ReservaRepository) ListarPorHabitacion(habitacionID string) ([]domain.Reserva, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reservas []domain.Reserva
	for _, reserva := range r.reservas {
		if reserva.HabitacionID == habitacionID {
			reservas = append(reservas, reserva)
		}
	}
	return reservas, nil
}

func (r *ReservaRepository) BuscarConflictos(habitacionID string, checkin, checkout time.Time, excluirID string) ([]domain.Reserva, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.conflictos(habitacionID, checkin, checkout, excluirID), nil
}

func (r *ReservaRepository) ActualizarEstado(id string, desde, hacia domain.EstadoReserva, checkinAt, checkoutAt *time.Time, montoFinal *float64) (*domain.Reserva, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reserva, ok := r.reservas[id]
	if !ok {
		return nil, nil
	}
	if reserva.Estado != desde {
		return nil, domain.ErrEstadoNoPermitido
	}

	reserva.Estado = hacia
	reserva.CheckinAt = checkinAt
	reserva.CheckoutAt = checkoutAt
	reserva.MontoFinal = montoFinal
	reserva.ActualizadoEn = time.Now().UTC()
	r.reservas[id] = reserva

	return &reserva, nil
}

func (r *ReservaRepository) ActualizarDetalles(id string, checkin, checkout time.Time, montoEstimado float64) (*domain.Reserva, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reserva, ok := r.reservas[id]
	if !ok {
		return nil, nil
	}
	if reserva.Estado != domain.ReservaCreada {
		return nil, domain.ErrEstadoNoPermitido
	}
	if len(r.conflictos(reserva.HabitacionID, checkin, checkout, id)) > 0 {
		return nil, domain.ErrHabitacionOcupada
	}

	reserva.CheckinPrevisto = checkin
	reserva.CheckoutPrevisto = checkout
	reserva.MontoEstimado = montoEstimado
	reserva.ActualizadoEn = time.Now().UTC()
	r.reservas[id] = reserva

	return &reserva, nil
}

func (r *ReservaRepository) CancelarVencidas(hoy time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var canceladas int64
	for id, reserva := range r.reservas {
		if reserva.Estado == domain.ReservaCreada && reserva.CheckoutPrevisto.Before(hoy) {
			reserva.Estado = domain.ReservaCancelada
			reserva.ActualizadoEn = time.Now().UTC()
			r.reservas[id] = reserva
			canceladas++
		}
	}
	return canceladas, nil
}

func (r *ReservaRepository) Eliminar(id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservas[id]; !ok {
		return 0, nil
	}
	delete(r.reservas, id)
	return 1, nil
}
