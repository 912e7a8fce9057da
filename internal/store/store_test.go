package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
	"github.com/tartampluch/medconnect/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// MockClock pins "now" for deterministic tests.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

var fixedNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func newTestStore(kv store.KV) *store.Store {
	s := store.New(kv, MockClock{CurrentTime: fixedNow})
	s.HashCost = bcrypt.MinCost
	n := 0
	var mu sync.Mutex
	s.NewID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

// failingKV returns err from every call.
type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingKV) Set(context.Context, string, []byte) error         { return f.err }
func (f failingKV) Delete(context.Context, string) error              { return f.err }

// readOnlyKV serves reads from a MemoryKV but fails every write.
type readOnlyKV struct {
	*store.MemoryKV
	err error
}

func (r readOnlyKV) Set(context.Context, string, []byte) error { return r.err }

func TestReads_DropMalformedRecords(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, config.KeyAppointments, []byte(`[
		{"id":"a1","patientId":"p1","doctorId":"d1","date":"2024-06-11","time":"09:00","status":"pending"},
		{"id":"a2","patientId":"p1","doctorId":"d1","date":"11/06/2024","time":"09:00","status":"pending"},
		{"id":"a3","patientId":"p1","doctorId":"d1","date":"2024-06-11","time":"10:00","status":"done"},
		{"id":"a4","patientId":"p1","date":"2024-06-11","time":"11:00","status":"pending"},
		"garbage",
		{"id":"a5","patientId":"p1","doctorId":"d1","date":"2024-06-12","time":"08:00","status":"confirmed"}
	]`)))

	got, err := newTestStore(kv).Appointments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "a5", got[1].ID)
}

func TestReads_NonArrayIsEmpty(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, config.KeyUsers, []byte(`{"id":"1"}`)))

	users, err := newTestStore(kv).Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)
}

func TestWrites_KeepMalformedRecords(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, config.KeyAppointments, []byte(`[
		{"id":"a1","patientId":"p1","doctorId":"d1","date":"2024-06-11","time":"09:00","status":"pending"},
		{"id":"a2","patientId":"p1","doctorId":"d1","date":"2024-06-11","time":"10:00","status":"Pendente"}
	]`)))
	s := newTestStore(kv)

	_, err := s.CreateAppointment(ctx, book("2024-06-12", "08:00"))
	require.NoError(t, err)
	_, err = s.CancelAppointment(ctx, "a1", "p1")
	require.NoError(t, err)

	blob, _, err := kv.Get(ctx, config.KeyAppointments)
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"id":"a2"`)
	assert.Contains(t, string(blob), `"status":"Pendente"`)

	got, err := s.Appointments(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2, "the unreadable record stays hidden")
}

func TestWrites_RefuseNonArray(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, config.KeyUsers, []byte(`{"id":"1"}`)))
	s := newTestStore(kv)

	_, err := s.Register(ctx, store.Registration{Name: "Ana", Email: "ana@example.com", Password: "123456"})
	require.ErrorIs(t, err, store.ErrCorrupt)
	assert.Contains(t, err.Error(), config.ErrStoreRead)

	seeded, err := s.SeedDemoAccounts(ctx)
	assert.ErrorIs(t, err, store.ErrCorrupt)
	assert.False(t, seeded)

	blob, _, _ := kv.Get(ctx, config.KeyUsers)
	assert.Equal(t, `{"id":"1"}`, string(blob))
}

func TestReads_BackendFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	s := newTestStore(failingKV{err: boom})

	_, err := s.Appointments(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), config.ErrStoreRead)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(store.NewMemoryKV())

	u, err := s.Register(ctx, store.Registration{
		Name: " Ana Souza ", Email: " Ana@Example.com", Password: "segredo123",
		Phone: "(11) 98765-4321", CPF: "123.456.789-09",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", u.ID)
	assert.Equal(t, "Ana Souza", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, engine.RolePatient, u.Role)
	assert.Equal(t, fixedNow, u.CreatedAt)
	assert.NotEqual(t, "segredo123", u.PasswordHash, "password is hashed")

	_, err = s.Register(ctx, store.Registration{Name: "Outra", Email: "ANA@example.com", Password: "123456"})
	assert.ErrorIs(t, err, store.ErrEmailTaken)

	got, err := s.Authenticate(ctx, "ana@example.com", "segredo123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Authenticate(ctx, "ana@example.com", "errada")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, "ninguem@example.com", "segredo123")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	byID, err := s.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
	_, err = s.UserByID(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegister_WriteFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	s := newTestStore(readOnlyKV{MemoryKV: store.NewMemoryKV(), err: boom})

	_, err := s.Register(context.Background(), store.Registration{Name: "Ana", Email: "a@b.co", Password: "123456"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), config.ErrStoreWrite)
}

func TestSeedDemoAccounts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(store.NewMemoryKV())

	seeded, err := s.SeedDemoAccounts(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	again, err := s.SeedDemoAccounts(ctx)
	require.NoError(t, err)
	assert.False(t, again, "only an empty collection is seeded")

	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, len(store.DemoAccounts))

	admin, err := s.Authenticate(ctx, "admin@example.com", config.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, engine.RoleAdmin, admin.Role)

	doctors, err := s.Doctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 3)
	assert.Equal(t, "Dr. João Silva", doctors[0].Name)
	assert.Equal(t, "Dr. Pedro Oliveira", doctors[1].Name)
	assert.Equal(t, "Dra. Maria Santos", doctors[2].Name)
	assert.Equal(t, "Pediatria", doctors[2].Specialty)
}

func TestUpsertDoctors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(store.NewMemoryKV())
	_, err := s.SeedDemoAccounts(ctx)
	require.NoError(t, err)

	added, updated, err := s.UpsertDoctors(ctx, []engine.Doctor{
		{ID: "vcard-joao", Name: "Dr. João Silva", Email: "JOAO@example.com", Specialty: "Cardiologia Clínica"},
		{ID: "vcard-ana", Name: "Dra. Ana Costa", Specialty: "Dermatologia", AvailableHours: []string{"14:00"}},
		{ID: "vcard-admin", Name: "Impostor", Email: "admin@example.com", Specialty: "?"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, updated)

	joao, err := s.UserByEmail(ctx, "joao@example.com")
	require.NoError(t, err)
	assert.Equal(t, "2", joao.ID, "matched by e-mail keeps the account id")
	assert.Equal(t, "Cardiologia Clínica", joao.Specialty)

	admin, err := s.UserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, engine.RoleAdmin, admin.Role, "non-doctor accounts are not overwritten")

	ana, err := s.UserByID(ctx, "vcard-ana")
	require.NoError(t, err)
	assert.Equal(t, engine.RoleDoctor, ana.Role)
	assert.Empty(t, ana.PasswordHash)

	_, err = s.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials, "imported doctors without e-mail cannot log in")
}
