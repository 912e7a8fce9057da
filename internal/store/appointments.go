package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
)

// Booking is a request for one slot.
type Booking struct {
	Patient engine.User
	Doctor  engine.Doctor
	Date    string // YYYY-MM-DD
	Time    string // HH:MM
	Notes   string
}

// Appointments returns every valid stored appointment.
func (s *Store) Appointments(ctx context.Context) ([]engine.Appointment, error) {
	return readAll[engine.Appointment](ctx, s.kv, config.KeyAppointments)
}

// AppointmentsForPatient returns one patient's appointments ordered by date
// then time.
func (s *Store) AppointmentsForPatient(ctx context.Context, patientID string) ([]engine.Appointment, error) {
	all, err := s.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]engine.Appointment, 0, len(all))
	for _, a := range all {
		if a.PatientID == patientID {
			mine = append(mine, a)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		if mine[i].Date != mine[j].Date {
			return mine[i].Date < mine[j].Date
		}
		return mine[i].Time < mine[j].Time
	})
	return mine, nil
}

// CreateAppointment stores a pending appointment. It fails with
// ErrDateUnavailable when the date is outside engine.BookingPolicy and with
// ErrSlotTaken when the doctor already has an active booking at that date
// and time.
func (s *Store) CreateAppointment(ctx context.Context, b Booking) (engine.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	appt := engine.Appointment{
		ID:          s.NewID(),
		PatientID:   b.Patient.ID,
		PatientName: b.Patient.Name,
		DoctorID:    b.Doctor.ID,
		DoctorName:  b.Doctor.Name,
		Specialty:   b.Doctor.Specialty,
		Date:        b.Date,
		Time:        b.Time,
		Status:      engine.StatusPending,
		Notes:       strings.TrimSpace(b.Notes),
		CreatedAt:   now,
	}
	if err := appt.Validate(); err != nil {
		return engine.Appointment{}, fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	day, err := engine.ParseDate(appt.Date, now.Location())
	if err != nil {
		return engine.Appointment{}, fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if engine.BookingPolicy(now).IsDisabled(day) {
		return engine.Appointment{}, ErrDateUnavailable
	}

	c, err := load[engine.Appointment](ctx, s.kv, config.KeyAppointments)
	if err != nil {
		return engine.Appointment{}, err
	}
	if len(engine.AvailableSlots([]string{appt.Time}, appt.DoctorID, appt.Date, c.Items)) == 0 {
		return engine.Appointment{}, ErrSlotTaken
	}

	c.Items = append(c.Items, appt)
	if err := c.save(ctx, s.kv); err != nil {
		return engine.Appointment{}, err
	}

	slog.Info(config.MsgBooked,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyApptID, appt.ID,
		config.LogKeyDoctorID, appt.DoctorID,
		config.LogKeyDate, appt.Date,
		config.LogKeyTime, appt.Time)
	return appt, nil
}

// CancelAppointment marks a patient's own appointment as cancelled. Someone
// else's appointment is reported as ErrNotFound.
func (s *Store) CancelAppointment(ctx context.Context, id, patientID string) (engine.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := load[engine.Appointment](ctx, s.kv, config.KeyAppointments)
	if err != nil {
		return engine.Appointment{}, err
	}
	for i := range c.Items {
		appt := &c.Items[i]
		if appt.ID != id || appt.PatientID != patientID {
			continue
		}
		appt.Status = engine.StatusCancelled
		if err := c.save(ctx, s.kv); err != nil {
			return engine.Appointment{}, err
		}
		slog.Info(config.MsgCancelled,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyApptID, id)
		return *appt, nil
	}
	return engine.Appointment{}, ErrNotFound
}
