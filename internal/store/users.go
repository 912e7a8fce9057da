package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
	"golang.org/x/crypto/bcrypt"
)

// Registration is the data needed to create a patient account.
type Registration struct {
	Name     string
	Email    string
	Password string
	Phone    string
	CPF      string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Users returns every valid stored account.
func (s *Store) Users(ctx context.Context) ([]engine.User, error) {
	return readAll[engine.User](ctx, s.kv, config.KeyUsers)
}

// UserByEmail finds an account by e-mail, ignoring case and surrounding spaces.
func (s *Store) UserByEmail(ctx context.Context, email string) (engine.User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return engine.User{}, err
	}
	want := normalizeEmail(email)
	for _, u := range users {
		if want != "" && normalizeEmail(u.Email) == want {
			return u, nil
		}
	}
	return engine.User{}, ErrNotFound
}

// UserByID finds an account by id.
func (s *Store) UserByID(ctx context.Context, id string) (engine.User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return engine.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return engine.User{}, ErrNotFound
}

// Doctors lists the users with role doctor, sorted by name.
func (s *Store) Doctors(ctx context.Context) ([]engine.Doctor, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	var doctors []engine.Doctor
	for _, u := range users {
		if u.Role == engine.RoleDoctor {
			doctors = append(doctors, u.Doctor())
		}
	}
	sort.SliceStable(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })
	return doctors, nil
}

// Register creates a patient account. The e-mail must not be in use.
func (s *Store) Register(ctx context.Context, r Registration) (engine.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := load[engine.User](ctx, s.kv, config.KeyUsers)
	if err != nil {
		return engine.User{}, err
	}
	email := normalizeEmail(r.Email)
	for _, u := range c.Items {
		if normalizeEmail(u.Email) == email {
			return engine.User{}, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.HashCost)
	if err != nil {
		return engine.User{}, fmt.Errorf("%s: %w", config.ErrPasswordHash, err)
	}

	user := engine.User{
		ID:           s.NewID(),
		Name:         strings.TrimSpace(r.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(r.Phone),
		CPF:          strings.TrimSpace(r.CPF),
		Role:         engine.RolePatient,
		CreatedAt:    s.clock.Now(),
	}
	c.Items = append(c.Items, user)
	if err := c.save(ctx, s.kv); err != nil {
		return engine.User{}, err
	}

	slog.Info(config.MsgRegistered,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyUserID, user.ID)
	return user, nil
}

// Authenticate returns the account matching email and password. Unknown
// e-mails and wrong passwords fail alike with ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, email, password string) (engine.User, error) {
	user, err := s.UserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return engine.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return engine.User{}, err
	}
	if user.PasswordHash == "" {
		return engine.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return engine.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpsertDoctors merges an imported directory into the users collection.
// Doctors are matched by id, then by e-mail; matches get their name,
// specialty and hours refreshed, the others are added without a password.
// An e-mail owned by a non-doctor account is left alone.
func (s *Store) UpsertDoctors(ctx context.Context, doctors []engine.Doctor) (added, updated int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := load[engine.User](ctx, s.kv, config.KeyUsers)
	if err != nil {
		return 0, 0, err
	}
	users := c.Items
	log := slog.With(config.LogKeyComponent, config.CompStore)

	for _, d := range doctors {
		idx := -1
		for i, u := range users {
			if u.ID == d.ID || (d.Email != "" && normalizeEmail(u.Email) == normalizeEmail(d.Email)) {
				idx = i
				break
			}
		}
		switch {
		case idx < 0:
			users = append(users, engine.User{
				ID:             d.ID,
				Name:           d.Name,
				Email:          normalizeEmail(d.Email),
				Role:           engine.RoleDoctor,
				Specialty:      d.Specialty,
				AvailableHours: d.AvailableHours,
				CreatedAt:      s.clock.Now(),
			})
			added++
		case users[idx].Role != engine.RoleDoctor:
			log.Warn(config.MsgSkippedRecord, config.LogKeyDoctorID, d.ID, config.LogKeyUserID, users[idx].ID)
		default:
			users[idx].Name = d.Name
			users[idx].Specialty = d.Specialty
			users[idx].AvailableHours = d.AvailableHours
			updated++
		}
	}

	if added+updated == 0 {
		return 0, 0, nil
	}
	c.Items = users
	if err := c.save(ctx, s.kv); err != nil {
		return 0, 0, err
	}
	log.Info(config.MsgDoctorsUpdated, config.LogKeyCount, added+updated)
	return added, updated, nil
}
