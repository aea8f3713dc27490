package domain

import (
	"errors"
	"fmt"
)

// Errores centinela del nivel de almacenamiento. El repositorio los devuelve
// y el servicio los traduce a los tipos de error de negocio.
var (
	// ErrHabitacionOcupada indica que otra reserva activa se solapa con el
	// período solicitado; detectado dentro de la transacción de escritura
	ErrHabitacionOcupada = errors.New("la habitación ya tiene una reserva activa en el período solicitado")
	// ErrEstadoNoPermitido indica que el estado actual de la reserva no
	// permite la operación solicitada
	ErrEstadoNoPermitido = errors.New("el estado actual de la reserva no permite la operación")
)

// ValidationError indica datos de entrada malformados o ausentes (400)
type ValidationError struct {
	Mensaje string
}

func (e *ValidationError) Error() string { return e.Mensaje }

// NotFoundError indica que la entidad referenciada no existe (404)
type NotFoundError struct {
	Mensaje string
}

func (e *NotFoundError) Error() string { return e.Mensaje }

// ConflictError indica una violación de regla de negocio: estado incorrecto
// para la operación o doble reserva de la habitación (409)
type ConflictError struct {
	Mensaje string
}

func (e *ConflictError) Error() string { return e.Mensaje }

// UnprocessableEntityError indica una petición semánticamente válida pero
// rechazada por política, como el check-in fuera de la ventana permitida (422)
type UnprocessableEntityError struct {
	Mensaje string
}

func (e *UnprocessableEntityError) Error() string { return e.Mensaje }

func Validacion(formato string, args ...interface{}) *ValidationError {
	return &ValidationError{Mensaje: fmt.Sprintf(formato, args...)}
}

func NoEncontrado(formato string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Mensaje: fmt.Sprintf(formato, args...)}
}

func Conflicto(formato string, args ...interface{}) *ConflictError {
	return &ConflictError{Mensaje: fmt.Sprintf(formato, args...)}
}

func NoProcesable(formato string, args ...interface{}) *UnprocessableEntityError {
	return &UnprocessableEntityError{Mensaje: fmt.Sprintf(formato, args...)}
}
