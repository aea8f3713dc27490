package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Maxito7/reservas_backend/internal/application"
	"github.com/Maxito7/reservas_backend/internal/domain"
	services "github.com/Maxito7/reservas_backend/internal/service"
)

type GalleryHandler struct {
	s3Service         *services.S3Service
	galeriaRepo       domain.GaleriaRepository
	habitacionService *application.HabitacionService
}

// NewGalleryHandler crea una nueva instancia del handler de galería.
// s3Service puede ser nil; en ese caso la subida de imágenes queda deshabilitada.
func NewGalleryHandler(s3Service *services.S3Service, galeriaRepo domain.GaleriaRepository, habitacionService *application.HabitacionService) *GalleryHandler {
	return &GalleryHandler{
		s3Service:         s3Service,
		galeriaRepo:       galeriaRepo,
		habitacionService: habitacionService,
	}
}

// UploadImage sube una imagen de la habitación a S3 y la registra en la galería
func (h *GalleryHandler) UploadImage(c *fiber.Ctx) error {
	if h.s3Service == nil {
		return responderConCodigo(c, fiber.StatusServiceUnavailable, "La galería no está configurada en este servidor")
	}

	habitacion, err := h.habitacionService.BuscarHabitacionPorID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "Se requiere un archivo en el campo 'image'")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return responderConCodigo(c, fiber.StatusBadRequest, "No se pudo leer el archivo")
	}

	url, err := h.s3Service.UploadFile(file, fileHeader)
	if err != nil {
		return responderError(c, err)
	}

	imagen := &domain.ImagenHabitacion{
		ID:           uuid.NewString(),
		HabitacionID: habitacion.ID,
		URL:          url,
	}
	if err := h.galeriaRepo.Crear(imagen); err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": imagen,
	})
}

// GetImages lista las imágenes de una habitación
func (h *GalleryHandler) GetImages(c *fiber.Ctx) error {
	habitacion, err := h.habitacionService.BuscarHabitacionPorID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}

	imagenes, err := h.galeriaRepo.ListarPorHabitacion(habitacion.ID)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": imagenes,
	})
}
