package application

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Todas las fechas de calendario del sistema (checkin/checkout previstos,
// "hoy" para la ventana de check-in) se representan como medianoche UTC.
// Mezclar marcos de referencia produce errores de un día cerca de los
// cambios de offset, por eso la conversión ocurre solo en este archivo.

var formatoFecha = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseCalendarDate convierte una cadena YYYY-MM-DD en una fecha de calendario
// anclada a medianoche UTC. Si la cadena incluye un componente de hora
// (formato ISO, separado por 'T'), este se descarta. Devuelve error si el
// formato es inválido o la fecha no existe (p. ej. 30 de febrero).
func ParseCalendarDate(entrada string) (time.Time, error) {
	parte := strings.SplitN(strings.TrimSpace(entrada), "T", 2)[0]

	if !formatoFecha.MatchString(parte) {
		return time.Time{}, fmt.Errorf("formato de fecha inválido: %q (use YYYY-MM-DD)", entrada)
	}

	// time.Parse rechaza días fuera de rango como 2025-02-30
	fecha, err := time.Parse("2006-01-02", parte)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida: %q", entrada)
	}

	return fecha, nil
}

// FormatCalendarDate devuelve la fecha en formato YYYY-MM-DD con relleno de ceros
func FormatCalendarDate(fecha time.Time) string {
	return fecha.UTC().Format("2006-01-02")
}

// SoloFecha descarta el componente de hora de un instante, conservando
// año/mes/día en el marco UTC
func SoloFecha(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CalcularNoches devuelve la cantidad de noches entre dos instantes,
// comparando solo las fechas. Devuelve 0 si el checkout cae antes del
// checkin (el llamador debe tratarlo como duración inválida). Toda estadía,
// por corta que sea, factura al menos una noche: entrada y salida el mismo
// día cuentan como una diaria.
func CalcularNoches(checkin, checkout time.Time) int {
	inicio := SoloFecha(checkin)
	fin := SoloFecha(checkout)

	diff := fin.Sub(inicio)
	if diff < 0 {
		return 0
	}

	noches := int(diff.Hours() / 24)
	if noches < 1 {
		noches = 1
	}
	return noches
}
