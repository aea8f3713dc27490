package memory

import (
	"sync"
	"time"

	"github.com/Maxito7/reservas_backend/internal/domain"
)

type HabitacionRepository struct {
	mu           sync.RWMutex
	habitaciones map[string]domain.Habitacion

	// reservas permite resolver disponibilidad contra el repositorio de
	// reservas del mismo juego de pruebas; puede quedar en nil
	reservas *ReservaRepository
}

func NewHabitacionRepository() *HabitacionRepository {
	return &HabitacionRepository{habitaciones: make(map[string]domain.Habitacion)}
}

// ConReservas asocia el repositorio de reservas usado por ListarDisponibles
func (r *HabitacionRepository) ConReservas(reservas *ReservaRepository) *HabitacionRepository {
	r.reservas = reservas
	return r
}

func (r *HabitacionRepository) Crear(habitacion *domain.Habitacion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.habitaciones[habitacion.ID] = *habitacion
	return nil
}

func (r *HabitacionRepository) BuscarPorID(id string) (*domain.Habitacion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if habitacion, ok := r.habitaciones[id]; ok {
		return &habitacion, nil
	}
	return nil, nil
}

func (r *HabitacionRepository) BuscarPorNumero(numero int) (*domain.Habitacion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, habitacion := range r.habitaciones {
		if habitacion.Numero == numero {
			h := habitacion
			return &h, nil
		}
	}
	return nil, nil
}

func (r *HabitacionRepository) Listar() ([]domain.Habitacion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habitaciones := make([]domain.Habitacion, 0, len(r.habitaciones))
	for _, habitacion := range r.habitaciones {
		habitaciones = append(habitaciones, habitacion)
	}
	return habitaciones, nil
}

func (r *HabitacionRepository) ListarDisponibles(checkin, checkout time.Time, capacidadMinima int) ([]domain.Habitacion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var disponibles []domain.Habitacion
	for _, habitacion := range r.habitaciones {
		if habitacion.Estado != domain.HabitacionActiva || habitacion.Capacidad < capacidadMinima {
			continue
		}
		if r.reservas != nil {
			conflictos, err := r.reservas.BuscarConflictos(habitacion.ID, checkin, checkout, "")
			if err != nil {
				return nil, err
			}
			if len(conflictos) > 0 {
				continue
			}
		}
		disponibles = append(disponibles, habitacion)
	}
	return disponibles, nil
}

func (r *HabitacionRepository) Actualizar(habitacion *domain.Habitacion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.habitaciones[habitacion.ID]; ok {
		r.habitaciones[habitacion.ID] = *habitacion
	}
	return nil
}

func (r *HabitacionRepository) Eliminar(id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.habitaciones[id]; !ok {
		return 0, nil
	}
	delete(r.habitaciones, id)
	return 1, nil
}
