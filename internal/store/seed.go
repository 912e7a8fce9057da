package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
	"golang.org/x/crypto/bcrypt"
)

// DemoAccount is a ready-made login shown as a hint on the login screen.
type DemoAccount struct {
	User     engine.User
	Password string
}

var morningAndAfternoon = []string{"08:00", "09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00"}

// DemoAccounts are created on first run.
var DemoAccounts = []DemoAccount{
	{User: engine.User{ID: "1", Name: "Administrador", Email: "admin@example.com", Role: engine.RoleAdmin},
		Password: config.DemoPassword},
	{User: engine.User{ID: "2", Name: "Dr. João Silva", Email: "joao@example.com", Role: engine.RoleDoctor,
		Specialty: "Cardiologia", AvailableHours: morningAndAfternoon},
		Password: config.DemoPassword},
	{User: engine.User{ID: "3", Name: "Dra. Maria Santos", Email: "maria@example.com", Role: engine.RoleDoctor,
		Specialty: "Pediatria", AvailableHours: []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}},
		Password: config.DemoPassword},
	{User: engine.User{ID: "4", Name: "Dr. Pedro Oliveira", Email: "pedro@example.com", Role: engine.RoleDoctor,
		Specialty: "Ortopedia", AvailableHours: morningAndAfternoon},
		Password: config.DemoPassword},
	{User: engine.User{ID: "5", Name: "Paciente Demo", Email: "paciente@example.com", Role: engine.RolePatient},
		Password: config.DemoPassword},
}

// SeedDemoAccounts fills an empty users collection with DemoAccounts. It
// reports whether anything was written.
func (s *Store) SeedDemoAccounts(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := load[engine.User](ctx, s.kv, config.KeyUsers)
	if err != nil {
		return false, err
	}
	if len(c.Items) > 0 {
		return false, nil
	}

	now := s.clock.Now()
	seeded := make([]engine.User, 0, len(DemoAccounts))
	for _, acc := range DemoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), s.HashCost)
		if err != nil {
			return false, fmt.Errorf("%s: %w", config.ErrPasswordHash, err)
		}
		u := acc.User
		u.PasswordHash = string(hash)
		u.CreatedAt = now
		seeded = append(seeded, u)
	}
	c.Items = seeded
	if err := c.save(ctx, s.kv); err != nil {
		return false, err
	}

	slog.Info(config.MsgSeeded,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyCount, len(seeded))
	return true, nil
}
