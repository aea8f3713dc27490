package domain

import (
	"time"
)

// Huesped representa un huésped del hotel
type Huesped struct {
	ID             string    `json:"id"`
	NombreCompleto string    `json:"fullName"`
	Documento      string    `json:"document"`
	Email          string    `json:"email"`
	Telefono       *string   `json:"phone"`
	CreadoEn       time.Time `json:"createdAt"`
}

// HuespedRepository define las operaciones disponibles con los huéspedes.
// Las búsquedas devuelven (nil, nil) cuando el registro no existe.
type HuespedRepository interface {
	// Crear persiste un nuevo huésped
	Crear(huesped *Huesped) error
	// BuscarPorID busca un huésped por su ID
	BuscarPorID(id string) (*Huesped, error)
	// BuscarPorDocumento busca un huésped por su documento normalizado
	BuscarPorDocumento(documento string) (*Huesped, error)
	// BuscarPorEmail busca un huésped por su email
	BuscarPorEmail(email string) (*Huesped, error)
	// Listar devuelve todos los huéspedes registrados
	Listar() ([]Huesped, error)
	// Actualizar modifica nombre, email y teléfono de un huésped
	Actualizar(huesped *Huesped) error
	// Eliminar borra un huésped; devuelve la cantidad de filas afectadas
	Eliminar(id string) (int64, error)
}
