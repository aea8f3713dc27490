package application

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Maxito7/reservas_backend/internal/domain"
	"github.com/google/uuid"
)

var soloDigitos = regexp.MustCompile(`[^0-9]`)

type HuespedService struct {
	huespedRepo domain.HuespedRepository
}

// NewHuespedService crea una nueva instancia del servicio de huéspedes
func NewHuespedService(huespedRepo domain.HuespedRepository) *HuespedService {
	return &HuespedService{huespedRepo: huespedRepo}
}

// NormalizarDocumento reduce el documento a sus dígitos (CPF, DNI, etc.)
func NormalizarDocumento(documento string) string {
	return soloDigitos.ReplaceAllString(documento, "")
}

func (s *HuespedService) validarDatos(nombre, email string, telefono *string) error {
	if len(strings.TrimSpace(nombre)) < 3 {
		return domain.Validacion("el nombre completo es obligatorio y debe tener al menos 3 caracteres")
	}
	if !strings.Contains(email, "@") {
		return domain.Validacion("e-mail inválido o ausente")
	}
	if telefono != nil && len(strings.TrimSpace(*telefono)) < 8 {
		return domain.Validacion("teléfono inválido")
	}
	return nil
}

// CrearHuesped registra un nuevo huésped validando unicidad de documento y email
func (s *HuespedService) CrearHuesped(nombre, documento, email string, telefono *string) (*domain.Huesped, error) {
	if err := s.validarDatos(nombre, email, telefono); err != nil {
		return nil, err
	}

	documento = NormalizarDocumento(documento)
	if documento == "" {
		return nil, domain.Validacion("el documento es obligatorio y debe contener dígitos")
	}

	// Verificar duplicidad de email y documento antes de insertar
	existente, err := s.huespedRepo.BuscarPorEmail(email)
	if err != nil {
		return nil, fmt.Errorf("error al buscar huésped por email: %w", err)
	}
	if existente != nil {
		return nil, domain.Conflicto("este e-mail ya está registrado")
	}

	existente, err = s.huespedRepo.BuscarPorDocumento(documento)
	if err != nil {
		return nil, fmt.Errorf("error al buscar huésped por documento: %w", err)
	}
	if existente != nil {
		return nil, domain.Conflicto("este documento ya está registrado")
	}

	huesped := &domain.Huesped{
		ID:             uuid.NewString(),
		NombreCompleto: strings.TrimSpace(nombre),
		Documento:      documento,
		Email:          email,
		Telefono:       telefono,
	}

	if err := s.huespedRepo.Crear(huesped); err != nil {
		return nil, fmt.Errorf("error al crear huésped: %w", err)
	}

	return huesped, nil
}

// BuscarHuespedPorID obtiene un huésped por su ID
func (s *HuespedService) BuscarHuespedPorID(id string) (*domain.Huesped, error) {
	huesped, err := s.huespedRepo.BuscarPorID(id)
	if err != nil {
		return nil, fmt.Errorf("error al buscar huésped: %w", err)
	}
	if huesped == nil {
		return nil, domain.NoEncontrado("huésped no encontrado")
	}
	return huesped, nil
}

// ListarHuespedes devuelve todos los huéspedes
func (s *HuespedService) ListarHuespedes() ([]domain.Huesped, error) {
	return s.huespedRepo.Listar()
}

// ActualizarHuesped modifica nombre, email y teléfono. El documento es
// inmutable después del registro.
func (s *HuespedService) ActualizarHuesped(id, nombre, email string, telefono *string) (*domain.Huesped, error) {
	huesped, err := s.BuscarHuespedPorID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validarDatos(nombre, email, telefono); err != nil {
		return nil, err
	}

	// Si cambia el email, verificar que no pertenezca a otro huésped
	if email != huesped.Email {
		existente, err := s.huespedRepo.BuscarPorEmail(email)
		if err != nil {
			return nil, fmt.Errorf("error al buscar huésped por email: %w", err)
		}
		if existente != nil && existente.ID != id {
			return nil, domain.Conflicto("este e-mail ya está registrado por otro huésped")
		}
	}

	huesped.NombreCompleto = strings.TrimSpace(nombre)
	huesped.Email = email
	huesped.Telefono = telefono

	if err := s.huespedRepo.Actualizar(huesped); err != nil {
		return nil, fmt.Errorf("error al actualizar huésped: %w", err)
	}

	return huesped, nil
}

// EliminarHuesped borra un huésped del directorio
func (s *HuespedService) EliminarHuesped(id string) error {
	filas, err := s.huespedRepo.Eliminar(id)
	if err != nil {
		return fmt.Errorf("error al eliminar huésped: %w", err)
	}
	if filas == 0 {
		return domain.NoEncontrado("huésped no encontrado")
	}
	return nil
}
