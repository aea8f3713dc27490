package domain

import (
	"time"
)

type EstadoReserva string

const (
	ReservaCreada    EstadoReserva = "CREATED"
	ReservaCheckIn   EstadoReserva = "CHECKED_IN"
	ReservaCheckOut  EstadoReserva = "CHECKED_OUT"
	ReservaCancelada EstadoReserva = "CANCELED"
)

// Activa indica si la reserva cuenta para la disponibilidad de la habitación
func (e EstadoReserva) Activa() bool {
	return e == ReservaCreada || e == ReservaCheckIn
}

// Reserva representa una reserva de habitación. Las fechas previstas son
// valores de solo-fecha anclados a medianoche UTC; los timestamps de check-in
// y check-out son instantes completos.
type Reserva struct {
	ID               string        `json:"id"`
	HuespedID        string        `json:"guestId"`
	HabitacionID     string        `json:"roomId"`
	CheckinPrevisto  time.Time     `json:"checkinExpected"`
	CheckoutPrevisto time.Time     `json:"checkoutExpected"`
	Estado           EstadoReserva `json:"status"`
	// PrecioReserva es el precio por noche capturado al crear la reserva;
	// el monto final se calcula con el precio vigente al momento del check-out
	PrecioReserva float64    `json:"priceAtBooking"`
	CheckinAt     *time.Time   `json:"checkinAt"`
	CheckoutAt    *time.Time   `json:"checkoutAt"`
	MontoEstimado float64      `json:"estimatedAmount"`
	MontoFinal    *float64     `json:"finalAmount"`
	CreadoEn      time.Time    `json:"createdAt"`
	ActualizadoEn time.Time    `json:"updatedAt"`

	// Relaciones opcionales, pobladas por el servicio en las lecturas
	Huesped    *Huesped    `json:"guest,omitempty"`
	Habitacion *Habitacion `json:"room,omitempty"`
}

// PoliticaCheckIn define la ventana permitida alrededor de la fecha prevista
// para realizar el check-in. El valor cero reproduce la política por defecto:
// check-in únicamente el día previsto.
type PoliticaCheckIn struct {
	DiasAntes   int
	DiasDespues int
}

// ReservaRepository define el contrato de persistencia de reservas.
// Las búsquedas devuelven (nil, nil) cuando el registro no existe.
type ReservaRepository interface {
	// Crear persiste una nueva reserva con estado CREATED. La verificación de
	// conflictos se re-ejecuta dentro de la misma transacción que la escritura
	// (serializada por habitación); devuelve ErrHabitacionOcupada si otro
	// período activo se solapa.
	Crear(reserva *Reserva) (*Reserva, error)
	// BuscarPorID busca una reserva por su ID
	BuscarPorID(id string) (*Reserva, error)
	// Listar devuelve todas las reservas, más recientes primero
	Listar() ([]Reserva, error)
	// ListarPorHuesped devuelve las reservas de un huésped
	ListarPorHuesped(huespedID string) ([]Reserva, error)
	// ListarPorHabitacion devuelve las reservas de una habitación
	ListarPorHabitacion(habitacionID string) ([]Reserva, error)
	// BuscarConflictos devuelve las reservas activas (CREATED, CHECKED_IN) de la
	// habitación cuyo intervalo [checkin, checkout) se solapa con el período
	// dado, con desigualdad estricta en ambos extremos. excluirID permite
	// omitir una reserva (la propia, al editar sus fechas); vacío no excluye.
	BuscarConflictos(habitacionID string, checkin, checkout time.Time, excluirID string) ([]Reserva, error)
	// ActualizarEstado aplica la transición de estado de forma atómica junto
	// con los campos de timestamp/monto provistos. La escritura exige que el
	// estado actual sea `desde`: si otro proceso lo cambió entre la lectura y
	// la escritura devuelve ErrEstadoNoPermitido. Devuelve (nil, nil) si el
	// ID no existe.
	ActualizarEstado(id string, desde, hacia EstadoReserva, checkinAt, checkoutAt *time.Time, montoFinal *float64) (*Reserva, error)
	// ActualizarDetalles actualiza fechas previstas y monto estimado. Rechaza
	// con ErrEstadoNoPermitido si el estado actual no es CREATED (defensa
	// adicional contra carreras, además del control en el servicio) y con
	// ErrHabitacionOcupada si las nuevas fechas generan conflicto.
	ActualizarDetalles(id string, checkin, checkout time.Time, montoEstimado float64) (*Reserva, error)
	// CancelarVencidas cancela reservas CREATED cuyo checkout previsto ya pasó;
	// devuelve la cantidad de filas afectadas
	CancelarVencidas(hoy time.Time) (int64, error)
	// Eliminar borra físicamente una reserva (escape administrativo);
	// devuelve la cantidad de filas afectadas
	Eliminar(id string) (int64, error)
}
