package engine

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// records checks the struct tags of persisted records.
var records = validator.New(validator.WithRequiredStructEnabled())

// Role is the account type of a User.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Status is the lifecycle state of an Appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// User is a stored account. Doctors additionally carry a specialty and
// their declared working hours.
type User struct {
	ID             string    `json:"id" validate:"required"`
	Name           string    `json:"name"`
	Email          string    `json:"email" validate:"required_unless=Role doctor"`
	PasswordHash   string    `json:"passwordHash,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	CPF            string    `json:"cpf,omitempty"`
	Role           Role      `json:"role" validate:"oneof=admin doctor patient"`
	Specialty      string    `json:"specialty,omitempty"`
	AvailableHours []string  `json:"availableHours,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate checks the fields every stored user must have. Doctors imported
// from a directory may lack an e-mail and cannot log in.
func (u User) Validate() error {
	if err := records.Struct(u); err != nil {
		return fmt.Errorf("user %q: %w", u.ID, err)
	}
	return nil
}

// Doctor returns the doctor view of u.
func (u User) Doctor() Doctor {
	return Doctor{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Specialty:      u.Specialty,
		AvailableHours: u.AvailableHours,
	}
}

// Doctor is a user with role doctor, as offered on the booking screen.
type Doctor struct {
	ID             string
	Name           string
	Email          string
	Specialty      string
	AvailableHours []string
}

// Appointment is a booking of one catalog slot with one doctor.
type Appointment struct {
	ID          string    `json:"id" validate:"required"`
	PatientID   string    `json:"patientId" validate:"required"`
	PatientName string    `json:"patientName"`
	DoctorID    string    `json:"doctorId" validate:"required"`
	DoctorName  string    `json:"doctorName"`
	Specialty   string    `json:"specialty"`
	Date        string    `json:"date" validate:"required,len=10,datetime=2006-01-02"`
	Time        string    `json:"time" validate:"required,len=5,datetime=15:04"`
	Status      Status    `json:"status" validate:"oneof=pending confirmed cancelled"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks required fields and the date, time and status formats.
// Dates and times must be zero-padded, as slots are compared as strings.
func (a Appointment) Validate() error {
	if err := records.Struct(a); err != nil {
		return fmt.Errorf("appointment %q: %w", a.ID, err)
	}
	return nil
}

// Active reports whether the appointment still occupies its slot.
func (a Appointment) Active() bool {
	return a.Status != StatusCancelled
}
