package application

import (
	"fmt"

	"github.com/Maxito7/reservas_backend/internal/domain"
	"github.com/google/uuid"
)

type HabitacionService struct {
	habitacionRepo domain.HabitacionRepository
}

// NewHabitacionService crea una nueva instancia del servicio de habitaciones
func NewHabitacionService(habitacionRepo domain.HabitacionRepository) *HabitacionService {
	return &HabitacionService{habitacionRepo: habitacionRepo}
}

func (s *HabitacionService) validarDatos(tipo domain.TipoHabitacion, capacidad int, precio float64) error {
	if !tipo.Valido() {
		return domain.Validacion("tipo de habitación inválido: %s (use STANDARD, DELUXE o SUITE)", tipo)
	}
	if capacidad < 1 {
		return domain.Validacion("la capacidad debe ser al menos 1")
	}
	if precio < 0 {
		return domain.Validacion("el precio por noche no puede ser negativo")
	}
	return nil
}

// CrearHabitacion registra una nueva habitación con número único
func (s *HabitacionService) CrearHabitacion(numero int, tipo domain.TipoHabitacion, capacidad int, precio float64) (*domain.Habitacion, error) {
	if numero <= 0 {
		return nil, domain.Validacion("el número de habitación debe ser mayor a 0")
	}
	if err := s.validarDatos(tipo, capacidad, precio); err != nil {
		return nil, err
	}

	existente, err := s.habitacionRepo.BuscarPorNumero(numero)
	if err != nil {
		return nil, fmt.Errorf("error al buscar habitación por número: %w", err)
	}
	if existente != nil {
		return nil, domain.Conflicto("ya existe una habitación con el número %d", numero)
	}

	habitacion := &domain.Habitacion{
		ID:             uuid.NewString(),
		Numero:         numero,
		Tipo:           tipo,
		Capacidad:      capacidad,
		PrecioPorNoche: precio,
		Estado:         domain.HabitacionActiva,
	}

	if err := s.habitacionRepo.Crear(habitacion); err != nil {
		return nil, fmt.Errorf("error al crear habitación: %w", err)
	}

	return habitacion, nil
}

// BuscarHabitacionPorID obtiene una habitación por su ID
func (s *HabitacionService) BuscarHabitacionPorID(id string) (*domain.Habitacion, error) {
	habitacion, err := s.habitacionRepo.BuscarPorID(id)
	if err != nil {
		return nil, fmt.Errorf("error al buscar habitación: %w", err)
	}
	if habitacion == nil {
		return nil, domain.NoEncontrado("habitación no encontrada")
	}
	return habitacion, nil
}

// ListarHabitaciones devuelve todas las habitaciones
func (s *HabitacionService) ListarHabitaciones() ([]domain.Habitacion, error) {
	return s.habitacionRepo.Listar()
}

// ListarDisponibles devuelve las habitaciones activas libres en el período
// [checkin, checkout) con capacidad mínima. Las fechas llegan como YYYY-MM-DD.
func (s *HabitacionService) ListarDisponibles(checkinStr, checkoutStr string, capacidadMinima int) ([]domain.Habitacion, error) {
	checkin, err := ParseCalendarDate(checkinStr)
	if err != nil {
		return nil, domain.Validacion("fecha de check-in inválida: %v", err)
	}
	checkout, err := ParseCalendarDate(checkoutStr)
	if err != nil {
		return nil, domain.Validacion("fecha de check-out inválida: %v", err)
	}
	if !checkout.After(checkin) {
		return nil, domain.Validacion("la fecha de check-out debe ser posterior a la fecha de check-in")
	}
	if capacidadMinima < 1 {
		capacidadMinima = 1
	}

	return s.habitacionRepo.ListarDisponibles(checkin, checkout, capacidadMinima)
}

// ActualizarHabitacion modifica tipo, capacidad, precio y estado
func (s *HabitacionService) ActualizarHabitacion(id string, tipo domain.TipoHabitacion, capacidad int, precio float64, estado domain.EstadoHabitacion) (*domain.Habitacion, error) {
	habitacion, err := s.BuscarHabitacionPorID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validarDatos(tipo, capacidad, precio); err != nil {
		return nil, err
	}
	if estado != domain.HabitacionActiva && estado != domain.HabitacionInactiva {
		return nil, domain.Validacion("estado de habitación inválido: %s (use ATIVO o INATIVO)", estado)
	}

	habitacion.Tipo = tipo
	habitacion.Capacidad = capacidad
	habitacion.PrecioPorNoche = precio
	habitacion.Estado = estado

	if err := s.habitacionRepo.Actualizar(habitacion); err != nil {
		return nil, fmt.Errorf("error al actualizar habitación: %w", err)
	}

	return habitacion, nil
}

// EliminarHabitacion borra una habitación del directorio
func (s *HabitacionService) EliminarHabitacion(id string) error {
	filas, err := s.habitacionRepo.Eliminar(id)
	if err != nil {
		return fmt.Errorf("error al eliminar habitación: %w", err)
	}
	if filas == 0 {
		return domain.NoEncontrado("habitación no encontrada")
	}
	return nil
}
