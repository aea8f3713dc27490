package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Maxito7/reservas_backend/internal/domain"
)

type habitacionRepository struct {
	db *sql.DB
}

// NewHabitacionRepository crea una nueva instancia del repositorio de habitaciones
func NewHabitacionRepository(db *sql.DB) domain.HabitacionRepository {
	return &habitacionRepository{db: db}
}

const columnasHabitacion = `room_id, number, type, capacity, price_per_night, status`

func escanearHabitacion(row *sql.Row) (*domain.Habitacion, error) {
	habitacion := &domain.Habitacion{}
	err := row.Scan(
		&habitacion.ID,
		&habitacion.Numero,
		&habitacion.Tipo,
		&habitacion.Capacidad,
		&habitacion.PrecioPorNoche,
		&habitacion.Estado,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al escanear habitación: %w", err)
	}
	return habitacion, nil
}

// Crear persiste una nueva habitación
func (r *habitacionRepository) Crear(habitacion *domain.Habitacion) error {
	query := `
		INSERT INTO room (room_id, number, type, capacity, price_per_night, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(
		query,
		habitacion.ID,
		habitacion.Numero,
		habitacion.Tipo,
		habitacion.Capacidad,
		habitacion.PrecioPorNoche,
		habitacion.Estado,
	)
	if err != nil {
		return fmt.Errorf("error al crear habitación: %w", err)
	}
	return nil
}

// BuscarPorID busca una habitación por su ID; (nil, nil) si no existe
func (r *habitacionRepository) BuscarPorID(id string) (*domain.Habitacion, error) {
	query := `SELECT ` + columnasHabitacion + ` FROM room WHERE room_id = $1`
	return escanearHabitacion(r.db.QueryRow(query, id))
}

// BuscarPorNumero busca una habitación por su número
func (r *habitacionRepository) BuscarPorNumero(numero int) (*domain.Habitacion, error) {
	query := `SELECT ` + columnasHabitacion + ` FROM room WHERE number = $1`
	return escanearHabitacion(r.db.QueryRow(query, numero))
}

// Listar devuelve todas las habitaciones ordenadas por número
func (r *habitacionRepository) Listar() ([]domain.Habitacion, error) {
	query := `SELECT ` + columnasHabitacion + ` FROM room ORDER BY number`
	return r.listar(query)
}

// ListarDisponibles devuelve las habitaciones activas sin reservas activas que
// se solapen con [checkin, checkout), con desigualdad estricta en ambos extremos
func (r *habitacionRepository) ListarDisponibles(checkin, checkout time.Time, capacidadMinima int) ([]domain.Habitacion, error) {
	query := `
		SELECT ` + columnasHabitacion + `
		FROM room h
		WHERE h.status = $1
			AND h.capacity >= $2
			AND NOT EXISTS (
				SELECT 1 FROM reservation r
				WHERE r.room_id = h.room_id
				AND r.status IN ($3, $4)
				AND r.checkin_expected < $6
				AND r.checkout_expected > $5
			)
		ORDER BY h.number
	`

	rows, err := r.db.Query(
		query,
		domain.HabitacionActiva,
		capacidadMinima,
		domain.ReservaCreada,
		domain.ReservaCheckIn,
		checkin,
		checkout,
	)
	if err != nil {
		return nil, fmt.Errorf("error al listar habitaciones disponibles: %w", err)
	}
	defer rows.Close()

	return recogerHabitaciones(rows)
}

func (r *habitacionRepository) listar(query string, args ...interface{}) ([]domain.Habitacion, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al listar habitaciones: %w", err)
	}
	defer rows.Close()

	return recogerHabitaciones(rows)
}

func recogerHabitaciones(rows *sql.Rows) ([]domain.Habitacion, error) {
	var habitaciones []domain.Habitacion
	for rows.Next() {
		var h domain.Habitacion
		if err := rows.Scan(&h.ID, &h.Numero, &h.Tipo, &h.Capacidad, &h.PrecioPorNoche, &h.Estado); err != nil {
			return nil, fmt.Errorf("error al escanear habitación: %w", err)
		}
		habitaciones = append(habitaciones, h)
	}
	return habitaciones, rows.Err()
}

// Actualizar modifica tipo, capacidad, precio y estado de una habitación
func (r *habitacionRepository) Actualizar(habitacion *domain.Habitacion) error {
	query := `
		UPDATE room
		SET type = $1, capacity = $2, price_per_night = $3, status = $4
		WHERE room_id = $5
	`

	result, err := r.db.Exec(
		query,
		habitacion.Tipo,
		habitacion.Capacidad,
		habitacion.PrecioPorNoche,
		habitacion.Estado,
		habitacion.ID,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar habitación: %w", err)
	}

	filas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if filas == 0 {
		return fmt.Errorf("habitación con ID %s no encontrada", habitacion.ID)
	}
	return nil
}

// Eliminar borra una habitación
func (r *habitacionRepository) Eliminar(id string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM room WHERE room_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("error al eliminar habitación: %w", err)
	}
	return result.RowsAffected()
}
