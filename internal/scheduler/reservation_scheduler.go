package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/Maxito7/reservas_backend/internal/application"
	"github.com/Maxito7/reservas_backend/internal/domain"
)

type ReservationScheduler struct {
	reservaRepo domain.ReservaRepository

	mu     sync.Mutex
	timer  *time.Timer
	ticker *time.Ticker
}

// NewReservationScheduler crea una nueva instancia del scheduler de reservas
func NewReservationScheduler(reservaRepo domain.ReservaRepository) *ReservationScheduler {
	return &ReservationScheduler{
		reservaRepo: reservaRepo,
	}
}

// Start inicia el scheduler que cancela reservas vencidas cada 24 horas
func (s *ReservationScheduler) Start() {
	log.Println("🕐 Scheduler de reservas iniciado - Se ejecutará cada 24 horas")

	// Ejecutar inmediatamente al iniciar
	s.CancelarReservasVencidas()

	// Programar ejecución cada 24 horas a las 00:01 AM
	now := time.Now()
	nextRun := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 1, 0, 0, now.Location())
	durationUntilNextRun := time.Until(nextRun)

	log.Printf("⏰ Próxima ejecución programada: %s", nextRun.Format("2006-01-02 15:04:05"))

	// Esperar hasta la próxima ejecución
	s.mu.Lock()
	s.timer = time.AfterFunc(durationUntilNextRun, func() {
		s.CancelarReservasVencidas()

		// Luego ejecutar cada 24 horas
		s.mu.Lock()
		s.ticker = time.NewTicker(24 * time.Hour)
		ticker := s.ticker
		s.mu.Unlock()
		go func() {
			for range ticker.C {
				s.CancelarReservasVencidas()
			}
		}()
	})
	s.mu.Unlock()
}

// Stop detiene el scheduler: cancela tanto el disparo inicial pendiente
// como el ticker de 24 horas si ya está corriendo
func (s *ReservationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
	if s.timer != nil || s.ticker != nil {
		log.Println("🛑 Scheduler de reservas detenido")
	}
}

// CancelarReservasVencidas cancela las reservas CREATED cuyo checkout previsto ya pasó
func (s *ReservationScheduler) CancelarReservasVencidas() {
	log.Println("🔄 Ejecutando cancelación de reservas vencidas...")

	hoy := application.SoloFecha(time.Now())
	canceladas, err := s.reservaRepo.CancelarVencidas(hoy)
	if err != nil {
		log.Printf("❌ Error cancelando reservas vencidas: %v", err)
		return
	}
	log.Printf("✅ Reservas vencidas canceladas: %d", canceladas)
}
