package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/medconnect/internal/engine"
	"github.com/tartampluch/medconnect/internal/store"
)

var (
	patient = engine.User{ID: "p1", Name: "Paciente Demo", Role: engine.RolePatient}
	doctor  = engine.Doctor{ID: "d1", Name: "Dr. João Silva", Specialty: "Cardiologia"}
)

func book(date, at string) store.Booking {
	return store.Booking{Patient: patient, Doctor: doctor, Date: date, Time: at}
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(store.NewMemoryKV())

	b := book("2024-06-11", "09:00")
	b.Notes = "  dor no peito  "
	appt, err := s.CreateAppointment(ctx, b)
	require.NoError(t, err)

	assert.Equal(t, "id-1", appt.ID)
	assert.Equal(t, engine.StatusPending, appt.Status)
	assert.Equal(t, fixedNow, appt.CreatedAt)
	assert.Equal(t, "Cardiologia", appt.Specialty)
	assert.Equal(t, "Paciente Demo", appt.PatientName)
	assert.Equal(t, "dor no peito", appt.Notes)

	stored, err := s.Appointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []engine.Appointment{appt}, stored)
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(store.NewMemoryKV())

	first, err := s.CreateAppointment(ctx, book("2024-06-11", "09:00"))
	require.NoError(t, err)

	_, err = s.CreateAppointment(ctx, book("2024-06-11", "09:00"))
	assert.ErrorIs(t, err, store.ErrSlotTaken)

	_, err = s.CancelAppointment(ctx, first.ID, patient.ID)
	require.NoError(t, err)

	_, err = s.CreateAppointment(ctx, book("2024-06-11", "09:00"))
	assert.NoError(t, err, "a cancelled booking frees the slot")
}

func TestCreateAppointment_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(store.NewMemoryKV())

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateAppointment(ctx, book("2024-06-11", "10:00"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, store.ErrSlotTaken)
	}
	assert.Equal(t, 1, ok, "exactly one booking wins the slot")
}

func TestCreateAppointment_Invalid(t *testing.T) {
	s := newTestStore(store.NewMemoryKV())

	_, err := s.CreateAppointment(context.Background(), book("11/06/2024", "09:00"))
	assert.Error(t, err)

	all, _ := s.Appointments(context.Background())
	assert.Empty(t, all)
}

func TestCreateAppointment_WriteFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	s := newTestStore(readOnlyKV{MemoryKV: store.NewMemoryKV(), err: boom})

	_, err := s.CreateAppointment(context.Background(), book("2024-06-11", "09:00"))
	assert.ErrorIs(t, err, boom)
}

func TestAppointmentsForPatient_Sorted(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(store.NewMemoryKV())

	for _, b := range []store.Booking{
		book("2024-06-12", "08:00"),
		book("2024-06-11", "14:00"),
		book("2024-06-11", "09:30"),
	} {
		_, err := s.CreateAppointment(ctx, b)
		require.NoError(t, err)
	}
	other := book("2024-06-10", "08:00")
	other.Patient = engine.User{ID: "p2", Name: "Outro"}
	_, err := s.CreateAppointment(ctx, other)
	require.NoError(t, err)

	mine, err := s.AppointmentsForPatient(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "2024-06-11 09:30", mine[0].Date+" "+mine[0].Time)
	assert.Equal(t, "2024-06-11 14:00", mine[1].Date+" "+mine[1].Time)
	assert.Equal(t, "2024-06-12 08:00", mine[2].Date+" "+mine[2].Time)
}

func TestCancelAppointment_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(store.NewMemoryKV())

	appt, err := s.CreateAppointment(ctx, book("2024-06-11", "09:00"))
	require.NoError(t, err)

	_, err = s.CancelAppointment(ctx, appt.ID, "someone-else")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.CancelAppointment(ctx, "missing", patient.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	cancelled, err := s.CancelAppointment(ctx, appt.ID, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusCancelled, cancelled.Status)

	stored, _ := s.AppointmentsForPatient(ctx, patient.ID)
	assert.Equal(t, engine.StatusCancelled, stored[0].Status)
}

func TestCreateAppointment_CanonicalTime(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(store.NewMemoryKV())

	_, err := s.CreateAppointment(ctx, book("2024-06-11", "9:30"))
	assert.Error(t, err, "an unpadded hour would not collide with 09:30")
	_, err = s.CreateAppointment(ctx, book("2024-6-11", "09:30"))
	assert.Error(t, err)

	_, err = s.CreateAppointment(ctx, book("2024-06-11", "09:30"))
	require.NoError(t, err)
	_, err = s.CreateAppointment(ctx, book("2024-06-11", "09:30"))
	assert.ErrorIs(t, err, store.ErrSlotTaken)

	all, _ := s.Appointments(ctx)
	assert.Len(t, all, 1)
}

func TestCreateAppointment_DatePolicy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(store.NewMemoryKV())

	tests := []struct {
		name string
		date string
		ok   bool
	}{
		{"Today", "2024-06-10", true},
		{"Yesterday", "2024-06-09", false},
		{"Sunday", "2024-06-16", false},
		{"Saturday", "2024-06-15", false},
		{"Last_Day_Of_Horizon", "2025-06-10", true},
		{"Beyond_Horizon", "2025-06-11", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateAppointment(ctx, book(tt.date, "08:00"))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, store.ErrDateUnavailable)
			}
		})
	}
}
