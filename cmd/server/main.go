package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"

	"github.com/Maxito7/reservas_backend/internal/application"
	"github.com/Maxito7/reservas_backend/internal/config"
	"github.com/Maxito7/reservas_backend/internal/domain"
	"github.com/Maxito7/reservas_backend/internal/email"
	"github.com/Maxito7/reservas_backend/internal/infrastructure/repository"
	handlers "github.com/Maxito7/reservas_backend/internal/interfaces/http"
	"github.com/Maxito7/reservas_backend/internal/scheduler"
	services "github.com/Maxito7/reservas_backend/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	// Email Client
	emailClient, err := email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFrom,
	)
	if err != nil {
		log.Printf("Warning: Email client initialization failed: %v", err)
		emailClient = nil // Continuar sin email
	}

	// S3 (galería de habitaciones)
	s3Service, err := services.NewS3Service(cfg.S3Bucket)
	if err != nil {
		log.Printf("Warning: S3 service initialization failed: %v", err)
		s3Service = nil // Continuar sin galería
	}

	// Huéspedes
	huespedRepo := repository.NewHuespedRepository(db)
	huespedService := application.NewHuespedService(huespedRepo)
	huespedHandler := handlers.NewHuespedHandler(huespedService)

	// Habitaciones
	habitacionRepo := repository.NewHabitacionRepository(db)
	habitacionService := application.NewHabitacionService(habitacionRepo)
	habitacionHandler := handlers.NewHabitacionHandler(habitacionService)

	// Galería
	galeriaRepo := repository.NewGaleriaRepository(db)
	galleryHandler := handlers.NewGalleryHandler(s3Service, galeriaRepo, habitacionService)

	// Reservas
	reservaRepo := repository.NewReservaRepository(db)
	politica := domain.PoliticaCheckIn{
		DiasAntes:   cfg.CheckInDiasAntes,
		DiasDespues: cfg.CheckInDiasDespues,
	}
	reservaService := application.NewReservaService(reservaRepo, habitacionRepo, huespedRepo, emailClient, politica)
	reservaHandler := handlers.NewReservaHandler(reservaService)

	api := app.Group("/api")

	// Rutas de huéspedes
	huespedes := api.Group("/huespedes")
	huespedes.Post("/", huespedHandler.CreateHuesped)
	huespedes.Get("/", huespedHandler.GetHuespedes)
	huespedes.Get("/:id", huespedHandler.GetHuespedByID)
	huespedes.Put("/:id", huespedHandler.UpdateHuesped)
	huespedes.Delete("/:id", huespedHandler.DeleteHuesped)

	// Rutas de habitaciones
	habitaciones := api.Group("/habitaciones")
	habitaciones.Post("/", habitacionHandler.CreateHabitacion)
	habitaciones.Get("/", habitacionHandler.GetHabitaciones)
	habitaciones.Get("/disponibles", habitacionHandler.GetHabitacionesDisponibles)
	habitaciones.Get("/:id", habitacionHandler.GetHabitacionByID)
	habitaciones.Put("/:id", habitacionHandler.UpdateHabitacion)
	habitaciones.Delete("/:id", habitacionHandler.DeleteHabitacion)
	habitaciones.Post("/:id/imagenes", galleryHandler.UploadImage)
	habitaciones.Get("/:id/imagenes", galleryHandler.GetImages)

	// Rutas de reservas
	reservas := api.Group("/reservas")
	reservas.Post("/", reservaHandler.CreateReserva)
	reservas.Get("/", reservaHandler.GetReservas)
	reservas.Get("/huesped/:huespedId", reservaHandler.GetReservasHuesped)
	reservas.Get("/habitacion/:habitacionId", reservaHandler.GetReservasHabitacion)
	reservas.Get("/:id", reservaHandler.GetReservaByID)
	reservas.Put("/:id", reservaHandler.UpdateReserva)
	reservas.Post("/:id/checkin", reservaHandler.CheckIn)
	reservas.Post("/:id/checkout", reservaHandler.CheckOut)
	reservas.Post("/:id/cancelar", reservaHandler.CancelarReserva)
	reservas.Delete("/:id", reservaHandler.DeleteReserva)

	// Scheduler de cancelación de reservas vencidas
	if cfg.SchedulerEnabled {
		reservationScheduler := scheduler.NewReservationScheduler(reservaRepo)
		reservationScheduler.Start()
		defer reservationScheduler.Stop()
	}

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
