// Package memory provee implementaciones en memoria de los repositorios,
// pensadas para pruebas. La serialización se garantiza con un mutex por
// repositorio.
package memory

import (
	"sync"
	"time"

	"github.com/Maxito7/reservas_backend/internal/domain"
)

type HuespedRepository struct {
	mu        sync.RWMutex
	huespedes map[string]domain.Huesped
}

func NewHuespedRepository() *HuespedRepository {
	return &HuespedRepository{huespedes: make(map[string]domain.Huesped)}
}

func (r *HuespedRepository) Crear(huesped *domain.Huesped) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	huesped.CreadoEn = time.Now().UTC()
	r.huespedes[huesped.ID] = *huesped
	return nil
}

func (r *HuespedRepository) BuscarPorID(id string) (*domain.Huesped, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if huesped, ok := r.huespedes[id]; ok {
		return &huesped, nil
	}
	return nil, nil
}

func (r *HuespedRepository) BuscarPorDocumento(documento string) (*domain.Huesped, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, huesped := range r.huespedes {
		if huesped.Documento == documento {
			h := huesped
			return &h, nil
		}
	}
	return nil, nil
}

func (r *HuespedRepository) BuscarPorEmail(email string) (*domain.Huesped, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, huesped := range r.huespedes {
		if huesped.Email == email {
			h := huesped
			return &h, nil
		}
	}
	return nil, nil
}

func (r *HuespedRepository) Listar() ([]domain.Huesped, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	huespedes := make([]domain.Huesped, 0, len(r.huespedes))
	for _, huesped := range r.huespedes {
		huespedes = append(huespedes, huesped)
	}
	return huespedes, nil
}

func (r *HuespedRepository) Actualizar(huesped *domain.Huesped) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existente, ok := r.huespedes[huesped.ID]; ok {
		huesped.CreadoEn = existente.CreadoEn
		r.huespedes[huesped.ID] = *huesped
	}
	return nil
}

func (r *HuespedRepository) Eliminar(id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.huespedes[id]; !ok {
		return 0, nil
	}
	delete(r.huespedes, id)
	return 1, nil
}
