package domain

import (
	"time"
)

type TipoHabitacion string

const (
	HabitacionStandard TipoHabitacion = "STANDARD"
	HabitacionDeluxe   TipoHabitacion = "DELUXE"
	HabitacionSuite    TipoHabitacion = "SUITE"
)

type EstadoHabitacion string

const (
	// HabitacionActiva indica que la habitación puede recibir nuevas reservas
	HabitacionActiva EstadoHabitacion = "ATIVO"
	// HabitacionInactiva indica que la habitación fue retirada de la oferta
	HabitacionInactiva EstadoHabitacion = "INATIVO"
)

// Valido indica si el tipo de habitación es uno de los conocidos
func (t TipoHabitacion) Valido() bool {
	switch t {
	case HabitacionStandard, HabitacionDeluxe, HabitacionSuite:
		return true
	}
	return false
}

// Habitacion representa un cuarto del hotel
type Habitacion struct {
	ID             string           `json:"id"`
	Numero         int              `json:"number"`
	Tipo           TipoHabitacion   `json:"type"`
	Capacidad      int              `json:"capacity"`
	PrecioPorNoche float64          `json:"pricePerNight"`
	Estado         EstadoHabitacion `json:"status"`
}

// HabitacionRepository define las operaciones disponibles con las habitaciones.
// Las búsquedas devuelven (nil, nil) cuando el registro no existe.
type HabitacionRepository interface {
	// Crear persiste una nueva habitación
	Crear(habitacion *Habitacion) error
	// BuscarPorID busca una habitación por su ID
	BuscarPorID(id string) (*Habitacion, error)
	// BuscarPorNumero busca una habitación por su número
	BuscarPorNumero(numero int) (*Habitacion, error)
	// Listar devuelve todas las habitaciones
	Listar() ([]Habitacion, error)
	// ListarDisponibles devuelve las habitaciones activas sin reservas activas
	// que se solapen con el período [checkin, checkout) y con capacidad mínima
	ListarDisponibles(checkin, checkout time.Time, capacidadMinima int) ([]Habitacion, error)
	// Actualizar modifica tipo, capacidad, precio y estado de una habitación
	Actualizar(habitacion *Habitacion) error
	// Eliminar borra una habitación; devuelve la cantidad de filas afectadas
	Eliminar(id string) (int64, error)
}

// ImagenHabitacion representa una imagen de la galería de una habitación
type ImagenHabitacion struct {
	ID           string    `json:"id"`
	HabitacionID string    `json:"roomId"`
	URL          string    `json:"url"`
	CreadoEn     time.Time `json:"createdAt"`
}

// GaleriaRepository define las operaciones con la galería de imágenes
type GaleriaRepository interface {
	Crear(imagen *ImagenHabitacion) error
	ListarPorHabitacion(habitacionID string) ([]ImagenHabitacion, error)
}
