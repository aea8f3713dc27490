package scheduler_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/reservas_backend/internal/domain"
	"github.com/Maxito7/reservas_backend/internal/infrastructure/repository/memory"
	"github.com/Maxito7/reservas_backend/internal/scheduler"
)

func reservaVencida(t *testing.T, repo *memory.ReservaRepository) *domain.Reserva {
	t.Helper()

	ayer := time.Now().UTC().AddDate(0, 0, -1)
	reserva := &domain.Reserva{
		ID:               uuid.NewString(),
		HuespedID:        uuid.NewString(),
		HabitacionID:     uuid.NewString(),
		CheckinPrevisto:  ayer.AddDate(0, 0, -2),
		CheckoutPrevisto: ayer,
		Estado:           domain.ReservaCreada,
		PrecioReserva:    250,
		MontoEstimado:    500,
	}
	_, err := repo.Crear(reserva)
	require.NoError(t, err)
	return reserva
}

func TestCancelarReservasVencidas(t *testing.T) {
	repo := memory.NewReservaRepository()
	vencida := reservaVencida(t, repo)

	s := scheduler.NewReservationScheduler(repo)
	s.CancelarReservasVencidas()

	actual, err := repo.BuscarPorID(vencida.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCancelada, actual.Estado)
}

func TestStartStop(t *testing.T) {
	repo := memory.NewReservaRepository()
	vencida := reservaVencida(t, repo)

	s := scheduler.NewReservationScheduler(repo)
	s.Start()

	// El barrido inicial corre de forma síncrona en Start
	actual, err := repo.BuscarPorID(vencida.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCancelada, actual.Estado)

	// Stop cancela el disparo programado y es idempotente
	s.Stop()
	s.Stop()
}

func TestStopSinStartNoHaceNada(t *testing.T) {
	s := scheduler.NewReservationScheduler(memory.NewReservaRepository())
	s.Stop()
}
