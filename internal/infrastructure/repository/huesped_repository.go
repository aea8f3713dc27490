package repository

import (
	"database/sql"
	"fmt"

	"github.com/Maxito7/reservas_backend/internal/domain"
)

type huespedRepository struct {
	db *sql.DB
}

// NewHuespedRepository crea una nueva instancia del repositorio de huéspedes
func NewHuespedRepository(db *sql.DB) domain.HuespedRepository {
	return &huespedRepository{db: db}
}

const columnasHuesped = `guest_id, full_name, document, email, phone, created_at`

func escanearHuesped(row *sql.Row) (*domain.Huesped, error) {
	huesped := &domain.Huesped{}
	err := row.Scan(
		&huesped.ID,
		&huesped.NombreCompleto,
		&huesped.Documento,
		&huesped.Email,
		&huesped.Telefono,
		&huesped.CreadoEn,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al escanear huésped: %w", err)
	}
	return huesped, nil
}

// Crear persiste un nuevo huésped
func (r *huespedRepository) Crear(huesped *domain.Huesped) error {
	query := `
		INSERT INTO guest (guest_id, full_name, document, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING created_at
	`

	err := r.db.QueryRow(
		query,
		huesped.ID,
		huesped.NombreCompleto,
		huesped.Documento,
		huesped.Email,
		huesped.Telefono,
	).Scan(&huesped.CreadoEn)

	if err != nil {
		return fmt.Errorf("error al crear huésped: %w", err)
	}
	return nil
}

// BuscarPorID busca un huésped por su ID; (nil, nil) si no existe
func (r *huespedRepository) BuscarPorID(id string) (*domain.Huesped, error) {
	query := `SELECT ` + columnasHuesped + ` FROM guest WHERE guest_id = $1`
	return escanearHuesped(r.db.QueryRow(query, id))
}

// BuscarPorDocumento busca un huésped por su documento normalizado
func (r *huespedRepository) BuscarPorDocumento(documento string) (*domain.Huesped, error) {
	query := `SELECT ` + columnasHuesped + ` FROM guest WHERE document = $1`
	return escanearHuesped(r.db.QueryRow(query, documento))
}

// BuscarPorEmail busca un huésped por su email
func (r *huespedRepository) BuscarPorEmail(email string) (*domain.Huesped, error) {
	query := `SELECT ` + columnasHuesped + ` FROM guest WHERE email = $1`
	return escanearHuesped(r.db.QueryRow(query, email))
}

// Listar devuelve todos los huéspedes ordenados por nombre
func (r *huespedRepository) Listar() ([]domain.Huesped, error) {
	query := `SELECT ` + columnasHuesped + ` FROM guest ORDER BY full_name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error al listar huéspedes: %w", err)
	}
	defer rows.Close()

	var huespedes []domain.Huesped
	for rows.Next() {
		var h domain.Huesped
		if err := rows.Scan(&h.ID, &h.NombreCompleto, &h.Documento, &h.Email, &h.Telefono, &h.CreadoEn); err != nil {
			return nil, fmt.Errorf("error al escanear huésped: %w", err)
		}
		huespedes = append(huespedes, h)
	}

	return huespedes, rows.Err()
}

// Actualizar modifica los campos editables de un huésped
func (r *huespedRepository) Actualizar(huesped *domain.Huesped) error {
	query := `
		UPDATE guest
		SET full_name = $1, email = $2, phone = $3
		WHERE guest_id = $4
	`

	result, err := r.db.Exec(query, huesped.NombreCompleto, huesped.Email, huesped.Telefono, huesped.ID)
	if err != nil {
		return fmt.Errorf("error al actualizar huésped: %w", err)
	}

	filas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if filas == 0 {
		return fmt.Errorf("huésped con ID %s no encontrado", huesped.ID)
	}
	return nil
}

// Eliminar borra un huésped
func (r *huespedRepository) Eliminar(id string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM guest WHERE guest_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("error al eliminar huésped: %w", err)
	}
	return result.RowsAffected()
}
