package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Maxito7/reservas_backend/internal/domain"
)

type reservaRepository struct {
	db *sql.DB
}

// NewReservaRepository crea una nueva instancia del repositorio de reservas
func NewReservaRepository(db *sql.DB) domain.ReservaRepository {
	return &reservaRepository{db: db}
}

const columnasReserva = `id, guest_id, room_id, checkin_expected, checkout_expected,
	status, price_at_booking, checkin_at, checkout_at, estimated_amount, final_amount,
	created_at, updated_at`

type escaneador interface {
	Scan(dest ...interface{}) error
}

func escanearReserva(row escaneador) (*domain.Reserva, error) {
	reserva := &domain.Reserva{}
	var checkinAt, checkoutAt sql.NullTime
	var montoFinal sql.NullFloat64

	err := row.Scan(
		&reserva.ID,
		&reserva.HuespedID,
		&reserva.HabitacionID,
		&reserva.CheckinPrevisto,
		&reserva.CheckoutPrevisto,
		&reserva.Estado,
		&reserva.PrecioReserva,
		&checkinAt,
		&checkoutAt,
		&reserva.MontoEstimado,
		&montoFinal,
		&reserva.CreadoEn,
		&reserva.ActualizadoEn,
	)
	if err != nil {
		return nil, err
	}

	if checkinAt.Valid {
		t := checkinAt.Time.UTC()
		reserva.CheckinAt = &t
	}
	if checkoutAt.Valid {
		t := checkoutAt.Time.UTC()
		reserva.CheckoutAt = &t
	}
	if montoFinal.Valid {
		v := montoFinal.Float64
		reserva.MontoFinal = &v
	}

	// Las fechas de calendario quedan ancladas a medianoche UTC
	reserva.CheckinPrevisto = reserva.CheckinPrevisto.UTC()
	reserva.CheckoutPrevisto = reserva.CheckoutPrevisto.UTC()

	return reserva, nil
}

// condición de solape estricto sobre reservas activas
const filtroConflicto = `
	room_id = $1
	AND status IN ($2, $3)
	AND checkin_expected < $5
	AND checkout_expected > $4`

// Crear persiste una nueva reserva. La fila de la habitación se bloquea
// dentro de la transacción y la verificación de conflictos se re-ejecuta
// allí mismo: dos creaciones concurrentes sobre la misma habitación quedan
// serializadas y la segunda falla con ErrHabitacionOcupada.
func (r *reservaRepository) Crear(reserva *domain.Reserva) (*domain.Reserva, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	var habitacionID string
	err = tx.QueryRow(`SELECT room_id FROM room WHERE room_id = $1 FOR UPDATE`, reserva.HabitacionID).Scan(&habitacionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("habitación con ID %s no existe", reserva.HabitacionID)
		}
		return nil, fmt.Errorf("error al bloquear habitación: %w", err)
	}

	var conflictos int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM reservation WHERE `+filtroConflicto,
		reserva.HabitacionID,
		domain.ReservaCreada,
		domain.ReservaCheckIn,
		reserva.CheckinPrevisto,
		reserva.CheckoutPrevisto,
	).Scan(&conflictos)
	if err != nil {
		return nil, fmt.Errorf("error al verificar conflictos: %w", err)
	}
	if conflictos > 0 {
		return nil, domain.ErrHabitacionOcupada
	}

	query := `
		INSERT INTO reservation (
			id, guest_id, room_id, checkin_expected, checkout_expected,
			status, price_at_booking, estimated_amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(
		query,
		reserva.ID,
		reserva.HuespedID,
		reserva.HabitacionID,
		reserva.CheckinPrevisto,
		reserva.CheckoutPrevisto,
		domain.ReservaCreada,
		reserva.PrecioReserva,
		reserva.MontoEstimado,
	).Scan(&reserva.CreadoEn, &reserva.ActualizadoEn)
	if err != nil {
		return nil, fmt.Errorf("error al crear reserva: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error al confirmar transacción: %w", err)
	}

	reserva.Estado = domain.ReservaCreada
	return reserva, nil
}

// BuscarPorID busca una reserva por su ID; (nil, nil) si no existe
func (r *reservaRepository) BuscarPorID(id string) (*domain.Reserva, error) {
	query := `SELECT ` + columnasReserva + ` FROM reservation WHERE id = $1`

	reserva, err := escanearReserva(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al buscar reserva: %w", err)
	}
	return reserva, nil
}

func (r *reservaRepository) listar(query string, args ...interface{}) ([]domain.Reserva, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al listar reservas: %w", err)
	}
	defer rows.Close()

	var reservas []domain.Reserva
	for rows.Next() {
		reserva, err := escanearReserva(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear reserva: %w", err)
		}
		reservas = append(reservas, *reserva)
	}
	return reservas, rows.Err()
}

// Listar devuelve todas las reservas, más recientes primero
func (r *reservaRepository) Listar() ([]domain.Reserva, error) {
	return r.listar(`SELECT ` + columnasReserva + ` FROM reservation ORDER BY created_at DESC`)
}

// ListarPorHuesped devuelve las reservas de un huésped
func (r *reservaRepository) ListarPorHuesped(huespedID string) ([]domain.Reserva, error) {
	query := `SELECT ` + columnasReserva + ` FROM reservation WHERE guest_id = $1 ORDER BY checkin_expected`
	return r.listar(query, huespedID)
}

// ListarPorHabitacion devuelve las reservas de una habitación
func (r *reservaRepository) ListarPorHabitacion(habitacionID string) ([]domain.Reserva, error) {
	query := `SELECT ` + columnasReserva + ` FROM reservation WHERE room_id = $1 ORDER BY checkin_expected`
	return r.listar(query, habitacionID)
}

// BuscarConflictos devuelve las reservas activas que se solapan con el período
func (r *reservaRepository) BuscarConflictos(habitacionID string, checkin, checkout time.Time, excluirID string) ([]domain.Reserva, error) {
	query := `SELECT ` + columnasReserva + ` FROM reservation WHERE ` + filtroConflicto
	args := []interface{}{habitacionID, domain.ReservaCreada, domain.ReservaCheckIn, checkin, checkout}

	if excluirID != "" {
		query += ` AND id != $6`
		args = append(args, excluirID)
	}

	return r.listar(query, args...)
}

// ActualizarEstado aplica la transición de estado junto con timestamps y monto
// final. La condición sobre status en el WHERE garantiza que la escritura solo
// ocurre si la reserva sigue en el estado esperado.
func (r *reservaRepository) ActualizarEstado(id string, desde, hacia domain.EstadoReserva, checkinAt, checkoutAt *time.Time, montoFinal *float64) (*domain.Reserva, error) {
	query := `
		UPDATE reservation
		SET status = $1,
			checkin_at = $2,
			checkout_at = $3,
			final_amount = $4,
			updated_at = now()
		WHERE id = $5 AND status = $6
	`

	result, err := r.db.Exec(query, hacia, checkinAt, checkoutAt, montoFinal, id, desde)
	if err != nil {
		return nil, fmt.Errorf("error al actualizar estado de reserva: %w", err)
	}

	filas, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if filas == 0 {
		existente, err := r.BuscarPorID(id)
		if err != nil {
			return nil, err
		}
		if existente == nil {
			return nil, nil
		}
		// La reserva existe pero otro proceso cambió su estado
		return nil, domain.ErrEstadoNoPermitido
	}

	return r.BuscarPorID(id)
}

// ActualizarDetalles actualiza las fechas previstas y el monto estimado de una
// reserva CREATED. El control de estado y el chequeo de conflictos corren
// dentro de la transacción como defensa contra carreras.
func (r *reservaRepository) ActualizarDetalles(id string, checkin, checkout time.Time, montoEstimado float64) (*domain.Reserva, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	var habitacionID string
	var estado domain.EstadoReserva
	err = tx.QueryRow(`SELECT room_id, status FROM reservation WHERE id = $1 FOR UPDATE`, id).Scan(&habitacionID, &estado)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al buscar reserva: %w", err)
	}
	if estado != domain.ReservaCreada {
		return nil, domain.ErrEstadoNoPermitido
	}

	if _, err := tx.Exec(`SELECT room_id FROM room WHERE room_id = $1 FOR UPDATE`, habitacionID); err != nil {
		return nil, fmt.Errorf("error al bloquear habitación: %w", err)
	}

	var conflictos int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM reservation WHERE `+filtroConflicto+` AND id != $6`,
		habitacionID,
		domain.ReservaCreada,
		domain.ReservaCheckIn,
		checkin,
		checkout,
		id,
	).Scan(&conflictos)
	if err != nil {
		return nil, fmt.Errorf("error al verificar conflictos: %w", err)
	}
	if conflictos > 0 {
		return nil, domain.ErrHabitacionOcupada
	}

	query := `
		UPDATE reservation
		SET checkin_expected = $1,
			checkout_expected = $2,
			estimated_amount = $3,
			updated_at = now()
		WHERE id = $4 AND status = $5
	`

	if _, err := tx.Exec(query, checkin, checkout, montoEstimado, id, domain.ReservaCreada); err != nil {
		return nil, fmt.Errorf("error al actualizar detalles de reserva: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error al confirmar transacción: %w", err)
	}

	return r.BuscarPorID(id)
}

// CancelarVencidas cancela reservas CREATED cuyo checkout previsto ya pasó
func (r *reservaRepository) CancelarVencidas(hoy time.Time) (int64, error) {
	query := `
		UPDATE reservation
		SET status = $1, updated_at = now()
		WHERE status = $2 AND checkout_expected < $3
	`

	result, err := r.db.Exec(query, domain.ReservaCancelada, domain.ReservaCreada, hoy)
	if err != nil {
		return 0, fmt.Errorf("error al cancelar reservas vencidas: %w", err)
	}
	return result.RowsAffected()
}

// Eliminar borra físicamente una reserva
func (r *reservaRepository) Eliminar(id string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM reservation WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("error al eliminar reserva: %w", err)
	}
	return result.RowsAffected()
}
