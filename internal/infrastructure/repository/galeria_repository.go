package repository

import (
	"database/sql"
	"fmt"

	"github.com/Maxito7/reservas_backend/internal/domain"
)

type galeriaRepository struct {
	db *sql.DB
}

// NewGaleriaRepository crea una nueva instancia del repositorio de galería
func NewGaleriaRepository(db *sql.DB) domain.GaleriaRepository {
	return &galeriaRepository{db: db}
}

// Crear registra una imagen asociada a una habitación
func (r *galeriaRepository) Crear(imagen *domain.ImagenHabitacion) error {
	query := `
		INSERT INTO room_image (image_id, room_id, url, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING created_at
	`

	err := r.db.QueryRow(query, imagen.ID, imagen.HabitacionID, imagen.URL).Scan(&imagen.CreadoEn)
	if err != nil {
		return fmt.Errorf("error al registrar imagen: %w", err)
	}
	return nil
}

// ListarPorHabitacion devuelve las imágenes de una habitación
func (r *galeriaRepository) ListarPorHabitacion(habitacionID string) ([]domain.ImagenHabitacion, error) {
	query := `
		SELECT image_id, room_id, url, created_at
		FROM room_image
		WHERE room_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(query, habitacionID)
	if err != nil {
		return nil, fmt.Errorf("error al listar imágenes: %w", err)
	}
	defer rows.Close()

	var imagenes []domain.ImagenHabitacion
	for rows.Next() {
		var imagen domain.ImagenHabitacion
		if err := rows.Scan(&imagen.ID, &imagen.HabitacionID, &imagen.URL, &imagen.CreadoEn); err != nil {
			return nil, fmt.Errorf("error al escanear imagen: %w", err)
		}
		imagenes = append(imagenes, imagen)
	}
	return imagenes, rows.Err()
}
