package application_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/reservas_backend/internal/application"
	"github.com/Maxito7/reservas_backend/internal/domain"
	"github.com/Maxito7/reservas_backend/internal/infrastructure/repository/memory"
)

type entorno struct {
	servicio       *application.ReservaService
	reservaRepo    *memory.ReservaRepository
	habitacionRepo *memory.HabitacionRepository
	huespedRepo    *memory.HuespedRepository
	huesped        *domain.Huesped
	habitacion     *domain.Habitacion
}

// nuevoEntorno arma un servicio con repos en memoria, un huésped y una
// habitación de 250 por noche, con el reloj fijado en hoy
func nuevoEntorno(t *testing.T, hoy time.Time) *entorno {
	t.Helper()

	reservaRepo := memory.NewReservaRepository()
	habitacionRepo := memory.NewHabitacionRepository().ConReservas(reservaRepo)
	huespedRepo := memory.NewHuespedRepository()

	huesped := &domain.Huesped{
		ID:             uuid.NewString(),
		NombreCompleto: "Ana Pereira",
		Documento:      "12345678900",
		Email:          "ana@example.com",
	}
	require.NoError(t, huespedRepo.Crear(huesped))

	habitacion := &domain.Habitacion{
		ID:             uuid.NewString(),
		Numero:         101,
		Tipo:           domain.HabitacionStandard,
		Capacidad:      2,
		PrecioPorNoche: 250,
		Estado:         domain.HabitacionActiva,
	}
	require.NoError(t, habitacionRepo.Crear(habitacion))

	servicio := application.NewReservaService(reservaRepo, habitacionRepo, huespedRepo, nil, domain.PoliticaCheckIn{})
	servicio.Ahora = func() time.Time { return hoy }

	return &entorno{
		servicio:       servicio,
		reservaRepo:    reservaRepo,
		habitacionRepo: habitacionRepo,
		huespedRepo:    huespedRepo,
		huesped:        huesped,
		habitacion:     habitacion,
	}
}

func fechaUTC(anho, mes, dia int) time.Time {
	return time.Date(anho, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
}

func TestCrearReserva_MontoEstimado(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 2)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCreada, reserva.Estado)
	assert.Equal(t, 250.0, reserva.PrecioReserva)
	assert.Equal(t, 1250.0, reserva.MontoEstimado) // 5 noches x 250
	assert.Nil(t, reserva.CheckinAt)
	assert.Nil(t, reserva.MontoFinal)
}

func TestCrearReserva_UnaNocheMinima(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-11", 1)

	require.NoError(t, err)
	assert.Equal(t, 250.0, reserva.MontoEstimado)
}

func TestCrearReserva_FechasInvalidas(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	casos := []struct {
		nombre   string
		checkin  string
		checkout string
	}{
		{"checkout igual a checkin", "2025-03-10", "2025-03-10"},
		{"checkout anterior a checkin", "2025-03-15", "2025-03-10"},
		{"formato inválido", "10/03/2025", "2025-03-15"},
		{"fecha inexistente", "2025-02-30", "2025-03-02"},
	}

	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			_, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, caso.checkin, caso.checkout, 1)

			var validacion *domain.ValidationError
			assert.ErrorAs(t, err, &validacion)
		})
	}
}

func TestCrearReserva_HuespedInexistente(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	_, err := e.servicio.CrearReserva(uuid.NewString(), e.habitacion.ID, "2025-03-10", "2025-03-15", 1)

	var noEncontrado *domain.NotFoundError
	assert.ErrorAs(t, err, &noEncontrado)
}

func TestCrearReserva_HabitacionInactiva(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))
	e.habitacion.Estado = domain.HabitacionInactiva
	require.NoError(t, e.habitacionRepo.Actualizar(e.habitacion))

	_, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)

	var conflicto *domain.ConflictError
	assert.ErrorAs(t, err, &conflicto)
}

func TestCrearReserva_ExcedeCapacidad(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	_, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 5)

	var conflicto *domain.ConflictError
	assert.ErrorAs(t, err, &conflicto)
}

func TestCrearReserva_SolapamientoEstricto(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	_, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	casos := []struct {
		nombre    string
		checkin   string
		checkout  string
		conflicto bool
	}{
		{"mismo período", "2025-03-10", "2025-03-15", true},
		{"solapa al inicio", "2025-03-08", "2025-03-11", true},
		{"solapa al final", "2025-03-14", "2025-03-18", true},
		{"contenido", "2025-03-11", "2025-03-13", true},
		{"contiene", "2025-03-08", "2025-03-18", true},
		{"back-to-back: entra el día del checkout", "2025-03-15", "2025-03-20", false},
		{"back-to-back: sale el día del checkin", "2025-03-05", "2025-03-10", false},
	}

	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			_, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, caso.checkin, caso.checkout, 1)

			if caso.conflicto {
				var conflicto *domain.ConflictError
				assert.ErrorAs(t, err, &conflicto)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCrearReserva_ReservaCanceladaNoBloquea(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)
	_, err = e.servicio.CancelarReserva(reserva.ID)
	require.NoError(t, err)

	_, err = e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	assert.NoError(t, err)
}

func TestCrearReserva_CarreraConcurrente(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	const intentos = 10
	var wg sync.WaitGroup
	errores := make([]error, intentos)

	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errores[i] = e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errores {
		if err == nil {
			exitos++
		} else {
			var conflicto *domain.ConflictError
			assert.ErrorAs(t, err, &conflicto)
		}
	}
	assert.Equal(t, 1, exitos)
}

func TestActualizarDetalles_RecalculaConPrecioVigente(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	// El precio de la habitación sube después de reservar
	e.habitacion.PrecioPorNoche = 300
	require.NoError(t, e.habitacionRepo.Actualizar(e.habitacion))

	actualizada, err := e.servicio.ActualizarDetalles(reserva.ID, "2025-03-12", "2025-03-14")

	require.NoError(t, err)
	assert.Equal(t, 600.0, actualizada.MontoEstimado) // 2 noches x 300
	assert.Equal(t, domain.ReservaCreada, actualizada.Estado)
}

func TestActualizarDetalles_MismasFechasNoConflicto(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	_, err = e.servicio.ActualizarDetalles(reserva.ID, "2025-03-10", "2025-03-15")
	assert.NoError(t, err)
}

func TestActualizarDetalles_RechazaEstadoNoCreado(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 10))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)
	_, err = e.servicio.CheckIn(reserva.ID)
	require.NoError(t, err)

	_, err = e.servicio.ActualizarDetalles(reserva.ID, "2025-03-11", "2025-03-16")

	var conflicto *domain.ConflictError
	assert.ErrorAs(t, err, &conflicto)
}

func TestCheckIn_EnFechaPrevista(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 10))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	actualizada, err := e.servicio.CheckIn(reserva.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCheckIn, actualizada.Estado)
	require.NotNil(t, actualizada.CheckinAt)
	assert.Equal(t, fechaUTC(2025, 3, 10), application.SoloFecha(*actualizada.CheckinAt))
}

func TestCheckIn_FueraDeFechaPrevista(t *testing.T) {
	casos := []struct {
		nombre string
		hoy    time.Time
	}{
		{"un día antes", fechaUTC(2025, 3, 9)},
		{"un día después", fechaUTC(2025, 3, 11)},
	}

	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			e := nuevoEntorno(t, fechaUTC(2025, 3, 1))
			reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
			require.NoError(t, err)

			e.servicio.Ahora = func() time.Time { return caso.hoy }
			_, err = e.servicio.CheckIn(reserva.ID)

			var noProcesable *domain.UnprocessableEntityError
			assert.ErrorAs(t, err, &noProcesable)
		})
	}
}

func TestCheckIn_VentanaAmpliadaPorPolitica(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))
	servicio := application.NewReservaService(
		e.reservaRepo, e.habitacionRepo, e.huespedRepo, nil,
		domain.PoliticaCheckIn{DiasAntes: 1, DiasDespues: 1},
	)

	reserva, err := servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	servicio.Ahora = func() time.Time { return fechaUTC(2025, 3, 9) }
	_, err = servicio.CheckIn(reserva.ID)
	assert.NoError(t, err)
}

func TestCheckIn_RechazaDobleCheckIn(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 10))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)
	_, err = e.servicio.CheckIn(reserva.ID)
	require.NoError(t, err)

	_, err = e.servicio.CheckIn(reserva.ID)

	var conflicto *domain.ConflictError
	assert.ErrorAs(t, err, &conflicto)
}

func TestCheckOut_MontoFinalConPrecioVigente(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 10))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)
	_, err = e.servicio.CheckIn(reserva.ID)
	require.NoError(t, err)

	// El precio sube durante la estadía; la salida se liquida al precio vigente
	e.habitacion.PrecioPorNoche = 300
	require.NoError(t, e.habitacionRepo.Actualizar(e.habitacion))

	e.servicio.Ahora = func() time.Time { return fechaUTC(2025, 3, 16) }
	finalizada, err := e.servicio.CheckOut(reserva.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCheckOut, finalizada.Estado)
	require.NotNil(t, finalizada.MontoFinal)
	assert.Equal(t, 1800.0, *finalizada.MontoFinal) // 6 noches x 300
	require.NotNil(t, finalizada.CheckoutAt)
	assert.Equal(t, 250.0, finalizada.PrecioReserva) // el precio capturado no cambia
}

func TestCheckOut_MismoDiaCobraDiariaMinima(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 10))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)
	_, err = e.servicio.CheckIn(reserva.ID)
	require.NoError(t, err)

	// Salida unas horas después, el mismo día: se factura la diaria mínima
	e.servicio.Ahora = func() time.Time {
		return time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	}
	finalizada, err := e.servicio.CheckOut(reserva.ID)

	require.NoError(t, err)
	require.NotNil(t, finalizada.MontoFinal)
	assert.Equal(t, 250.0, *finalizada.MontoFinal)
}

func TestCheckOut_SinCheckInPrevio(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 10))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	_, err = e.servicio.CheckOut(reserva.ID)

	var conflicto *domain.ConflictError
	assert.ErrorAs(t, err, &conflicto)
}

func TestCheckOut_CheckedInSinTimestampEsErrorInterno(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 10))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	// Estado corrupto: CHECKED_IN sin checkinAt registrado
	_, err = e.reservaRepo.ActualizarEstado(reserva.ID, domain.ReservaCreada, domain.ReservaCheckIn, nil, nil, nil)
	require.NoError(t, err)

	_, err = e.servicio.CheckOut(reserva.ID)

	require.Error(t, err)
	var conflicto *domain.ConflictError
	var noProcesable *domain.UnprocessableEntityError
	assert.False(t, errors.As(err, &conflicto))
	assert.False(t, errors.As(err, &noProcesable))
}

func TestCancelarReserva_SoloEstadoCreado(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 10))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)
	_, err = e.servicio.CheckIn(reserva.ID)
	require.NoError(t, err)

	_, err = e.servicio.CancelarReserva(reserva.ID)

	var conflicto *domain.ConflictError
	assert.ErrorAs(t, err, &conflicto)
}

func TestCancelarReserva_EstadoFinal(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	cancelada, err := e.servicio.CancelarReserva(reserva.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCancelada, cancelada.Estado)

	// Una reserva cancelada no admite más transiciones
	_, err = e.servicio.CheckIn(reserva.ID)
	var conflicto *domain.ConflictError
	assert.ErrorAs(t, err, &conflicto)

	_, err = e.servicio.CancelarReserva(reserva.ID)
	assert.ErrorAs(t, err, &conflicto)
}

func TestActualizarEstado_RechazaEstadoDistintoDelEsperado(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 10))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	// Escritura tardía que asume CHECKED_IN cuando la reserva sigue CREATED
	_, err = e.reservaRepo.ActualizarEstado(reserva.ID, domain.ReservaCheckIn, domain.ReservaCheckOut, nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrEstadoNoPermitido)

	actual, err := e.servicio.BuscarReservaPorID(reserva.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCreada, actual.Estado)
}

func TestCancelarReserva_CarreraConCheckIn(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 10))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errores := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := e.servicio.CancelarReserva(reserva.ID)
		errores <- err
	}()
	go func() {
		defer wg.Done()
		_, err := e.servicio.CheckIn(reserva.ID)
		errores <- err
	}()
	wg.Wait()
	close(errores)

	exitos := 0
	for err := range errores {
		if err == nil {
			exitos++
			continue
		}
		var conflicto *domain.ConflictError
		assert.ErrorAs(t, err, &conflicto)
	}
	assert.Equal(t, 1, exitos)

	// El estado final corresponde a la operación ganadora; nunca una
	// cancelación pisada por un check-in tardío ni viceversa
	final, err := e.servicio.BuscarReservaPorID(reserva.ID)
	require.NoError(t, err)
	assert.Contains(t, []domain.EstadoReserva{domain.ReservaCancelada, domain.ReservaCheckIn}, final.Estado)
}

func TestBuscarReservaPorID_PoblaRelaciones(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	reserva, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	encontrada, err := e.servicio.BuscarReservaPorID(reserva.ID)

	require.NoError(t, err)
	require.NotNil(t, encontrada.Huesped)
	require.NotNil(t, encontrada.Habitacion)
	assert.Equal(t, e.huesped.ID, encontrada.Huesped.ID)
	assert.Equal(t, 101, encontrada.Habitacion.Numero)
}

// huespedRepoFallido envuelve el repo en memoria y permite forzar fallos de lectura
type huespedRepoFallido struct {
	*memory.HuespedRepository
	fallar bool
}

func (r *huespedRepoFallido) BuscarPorID(id string) (*domain.Huesped, error) {
	if r.fallar {
		return nil, errors.New("lectura fallida")
	}
	return r.HuespedRepository.BuscarPorID(id)
}

func TestBuscarReservaPorID_RelacionFallidaNoAbortaLectura(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))
	huespedes := &huespedRepoFallido{HuespedRepository: e.huespedRepo}

	servicio := application.NewReservaService(e.reservaRepo, e.habitacionRepo, huespedes, nil, domain.PoliticaCheckIn{})
	servicio.Ahora = func() time.Time { return fechaUTC(2025, 3, 1) }

	reserva, err := servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)

	huespedes.fallar = true
	encontrada, err := servicio.BuscarReservaPorID(reserva.ID)

	require.NoError(t, err)
	assert.Nil(t, encontrada.Huesped)
	require.NotNil(t, encontrada.Habitacion)
}

func TestListarReservasPorHuesped_HuespedInexistente(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	_, err := e.servicio.ListarReservasPorHuesped(uuid.NewString())

	var noEncontrado *domain.NotFoundError
	assert.ErrorAs(t, err, &noEncontrado)
}

func TestEliminarReserva_Inexistente(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	err := e.servicio.EliminarReserva(uuid.NewString())

	var noEncontrado *domain.NotFoundError
	assert.ErrorAs(t, err, &noEncontrado)
}

func TestCancelarVencidas_SoloCreadasConCheckoutPasado(t *testing.T) {
	e := nuevoEntorno(t, fechaUTC(2025, 3, 1))

	vencida, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-03-10", "2025-03-15", 1)
	require.NoError(t, err)
	vigente, err := e.servicio.CrearReserva(e.huesped.ID, e.habitacion.ID, "2025-04-01", "2025-04-05", 1)
	require.NoError(t, err)

	canceladas, err := e.reservaRepo.CancelarVencidas(fechaUTC(2025, 3, 20))

	require.NoError(t, err)
	assert.Equal(t, int64(1), canceladas)

	r1, err := e.reservaRepo.BuscarPorID(vencida.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCancelada, r1.Estado)

	r2, err := e.reservaRepo.BuscarPorID(vigente.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCreada, r2.Estado)
}
