package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
	"github.com/tartampluch/medconnect/internal/server"
	"github.com/tartampluch/medconnect/internal/store"
	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/bcrypt"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the engine.VCardFetcher interface using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu) {
	m.Menu = menu
}

func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// Monday 10 June 2024, 09:10.
var testNow = time.Date(2024, 6, 10, 9, 10, 0, 0, time.UTC)

// setupTestApp builds a headless app over an in-memory store seeded with
// the demo accounts.
func setupTestApp(t *testing.T) (*MedConnectApp, *MockFetcher, *MockTray) {
	t.Helper()
	keyring.MockInit()

	a := test.NewApp()
	t.Cleanup(a.Quit)

	clock := MockClock{CurrentTime: testNow}
	st := store.New(store.NewMemoryKV(), clock)
	st.HashCost = bcrypt.MinCost

	fetcher := new(MockFetcher)
	mockTray := &MockTray{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewMedConnectApp(a, ctx, st, server.NewFeedServer("0"), fetcher)
	app.Tray = mockTray
	app.Clock = clock

	// Run() is skipped, so wire what it would.
	app.SetupI18n()
	app.seed()

	return app, fetcher, mockTray
}

// loginAs opens a session for one of the demo accounts.
func loginAs(t *testing.T, app *MedConnectApp, email string) engine.User {
	t.Helper()
	u, err := app.Store.Authenticate(context.Background(), email, config.DemoPassword)
	require.NoError(t, err)
	app.login(u)
	return u
}

// fetchFeed reads what the feed server currently serves.
func fetchFeed(t *testing.T, app *MedConnectApp) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, config.RouteFeed, nil)
	w := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _, _ := setupTestApp(t)

	assert.Equal(t, "Configurações...", app.GetMsg(config.TKeyMenuSettings), "pt-BR is the default")

	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()
	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))

	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"), "unknown keys fall back to the key")
	assert.ElementsMatch(t, []string{"en", "pt-BR"}, app.SupportedLanguages)
}

func TestLocalization_SummaryFormatter(t *testing.T) {
	app, _, _ := setupTestApp(t)
	formatter := app.buildSummaryFormatter()
	appt := engine.Appointment{DoctorName: "Dr. João Silva", Specialty: "Cardiologia"}

	assert.Equal(t, "Consulta: Dr. João Silva (Cardiologia)", formatter(appt))

	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()
	assert.Equal(t, "Appointment: Dr. João Silva (Cardiologia)", formatter(appt))

	app.Localizer = nil
	assert.Equal(t, fmt.Sprintf(config.FormatSummary, "Dr. João Silva", "Cardiologia"), formatter(appt))
}

func TestLocalization_Dates(t *testing.T) {
	app, _, _ := setupTestApp(t)

	assert.Equal(t, "11/06/2024", app.formatDate("2024-06-11"))
	assert.Equal(t, "Junho", app.monthName(time.June))
	assert.Equal(t, "Sáb", app.weekdayName(time.Saturday))
	assert.Equal(t, "garbage", app.formatDate("garbage"))

	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()
	assert.Equal(t, "06/11/2024", app.formatDate("2024-06-11"))
}

// -----------------------------------------------------------------------------
// Configuration & Preferences Tests
// -----------------------------------------------------------------------------

func TestReminderTrigger(t *testing.T) {
	app, _, _ := setupTestApp(t)

	tests := []struct {
		name        string
		enabled     bool
		val         int
		unit        string
		wantTrigger string
	}{
		{name: "Disabled", enabled: false, val: 1, unit: config.UnitDays, wantTrigger: ""},
		{name: "1 Day Before", enabled: true, val: 1, unit: config.UnitDays, wantTrigger: "-P1D"},
		{name: "2 Hours Before", enabled: true, val: 2, unit: config.UnitHours, wantTrigger: "-PT2H"},
		{name: "30 Minutes Before", enabled: true, val: 30, unit: config.UnitMinutes, wantTrigger: "-PT30M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Preferences.SetBool(config.PrefReminderEnabled, tt.enabled)
			app.Preferences.SetInt(config.PrefReminderValue, tt.val)
			app.Preferences.SetString(config.PrefReminderUnit, tt.unit)

			assert.Equal(t, tt.wantTrigger, app.reminderTrigger())
		})
	}
}

func TestConfiguration_DirectoryMapping(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.Preferences.SetString(config.PrefDirectoryURL, "https://dav.example.com/doctors/")
	app.Preferences.SetString(config.PrefDirectoryPath, "/tmp/doctors.vcf")
	app.Preferences.SetString(config.PrefDirectoryUser, "clinic")
	require.NoError(t, keyring.Set(config.KeyringService, "clinic", "s3cret"))

	cfg := app.loadDirectoryConfig()
	assert.Equal(t, config.DirectoryModeWeb, cfg.Mode, "web is the default mode")
	assert.Equal(t, "https://dav.example.com/doctors/", cfg.WebURL)
	assert.Empty(t, cfg.LocalPath)
	assert.Equal(t, "clinic", cfg.WebUser)
	assert.Equal(t, "s3cret", cfg.WebPass)

	app.Preferences.SetString(config.PrefDirectoryMode, config.DirectoryModeLocal)
	cfg = app.loadDirectoryConfig()
	assert.Equal(t, "/tmp/doctors.vcf", cfg.LocalPath)
	assert.Empty(t, cfg.WebURL)
}

func TestConfiguration_RefreshInterval(t *testing.T) {
	app, _, _ := setupTestApp(t)

	assert.Equal(t, time.Duration(config.DefaultRefreshMin)*time.Minute, app.refreshInterval())

	app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
	assert.Zero(t, app.refreshInterval(), "zero turns the timer off")

	app.Preferences.SetInt(config.PrefInterval, 15)
	assert.Equal(t, 15*time.Minute, app.refreshInterval())
}

func TestConfiguration_WorkerSignal(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.watchPreferences()

	signalReceived := make(chan bool)
	go func() {
		select {
		case key := <-app.configChan:
			signalReceived <- key == config.PrefInterval
		case <-time.After(500 * time.Millisecond):
			signalReceived <- false
		}
	}()

	app.Preferences.SetInt(config.PrefInterval, 120)

	assert.True(t, <-signalReceived, "Changing interval should notify background worker")
}

// -----------------------------------------------------------------------------
// Sync Logic Integration Tests
// -----------------------------------------------------------------------------

const directoryCard = "BEGIN:VCARD\nVERSION:3.0\nUID:dr-ana\nFN:Dra. Ana Costa\nROLE:Dermatologia\nEMAIL:ana@example.com\nX-AVAILABLE-HOURS:14:00,15:00\nEND:VCARD\n"

func TestPerformSync_ImportsDirectory(t *testing.T) {
	app, fetcher, mockTray := setupTestApp(t)
	app.setupTrayMenu()

	fetcher.On("Fetch", mock.Anything, "http://dav.local/doctors", "", "").
		Return(io.NopCloser(bytes.NewBufferString(directoryCard)), nil)
	app.Preferences.SetString(config.PrefDirectoryURL, "http://dav.local/doctors")

	app.performSync(true)

	fetcher.AssertExpectations(t)
	doctors, err := app.Store.Doctors(context.Background())
	require.NoError(t, err)
	assert.Len(t, doctors, 4)
	assert.Equal(t, "Dra. Ana Costa", doctors[2].Name)

	require.NotNil(t, mockTray.Menu)
	assert.Equal(t, "Nenhuma consulta hoje", app.TrayStatusItem.Label)
	assert.Contains(t, fetchFeed(t, app), "BEGIN:VCALENDAR")
}

func TestPerformSync_UnconfiguredDirectory(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	app.setupTrayMenu()

	app.performSync(false)

	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Contains(t, fetchFeed(t, app), "BEGIN:VCALENDAR", "the feed is still published")
}

func TestPerformSync_Failure(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	app.setupTrayMenu()

	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))
	app.Preferences.SetString(config.PrefDirectoryURL, "http://dav.local/doctors")

	app.performSync(true)

	fetcher.AssertExpectations(t)
	assert.Equal(t, config.FallbackTrayError, app.TrayStatusItem.Label)
}

func TestPerformSync_RejectedCredentials(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	app.setupTrayMenu()

	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: 401", engine.ErrDirectoryAuth))
	app.Preferences.SetString(config.PrefDirectoryURL, "http://dav.local/doctors")

	test.AssertNotificationSent(t,
		fyne.NewNotification(config.AppName, "O servidor do diretório recusou o usuário ou a senha"),
		func() { app.performSync(true) })
}

func TestPublishFeed_SessionAppointments(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.setupTrayMenu()
	patient := loginAs(t, app, "paciente@example.com")

	doctors, err := app.Store.Doctors(context.Background())
	require.NoError(t, err)
	_, err = app.Store.CreateAppointment(context.Background(), store.Booking{
		Patient: patient, Doctor: doctors[0], Date: "2024-06-10", Time: "15:00",
	})
	require.NoError(t, err)

	app.Preferences.SetBool(config.PrefReminderEnabled, true)
	app.Preferences.SetInt(config.PrefReminderValue, 2)
	app.Preferences.SetString(config.PrefReminderUnit, config.UnitHours)
	app.publishFeed()

	feed := fetchFeed(t, app)
	assert.Contains(t, feed, "Consulta: Dr. João Silva (Cardiologia)")
	assert.Contains(t, feed, "TRIGGER:-PT2H")
	assert.Equal(t, "1 consulta hoje", app.TrayStatusItem.Label)

	app.Logout()
	assert.NotContains(t, fetchFeed(t, app), "VEVENT", "signing out empties the feed")
}

func TestTrayStatusUpdate_Logic(t *testing.T) {
	app, _, mockTray := setupTestApp(t)
	app.setupTrayMenu()

	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()

	app.updateTrayStatus(-1)
	assert.Equal(t, config.FallbackTrayError, app.TrayStatusItem.Label)

	app.updateTrayStatus(0)
	assert.Equal(t, "No appointments today", app.TrayStatusItem.Label)

	app.updateTrayStatus(1)
	assert.Equal(t, "1 appointment today", app.TrayStatusItem.Label)

	app.updateTrayStatus(10)
	assert.Equal(t, "10 appointments today", app.TrayStatusItem.Label)

	app.RefreshTrayMenu()
	assert.Equal(t, "Refresh now", app.TrayRefreshItem.Label)
	assert.NotNil(t, mockTray.Menu)
}

func TestFeedURL(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Server.Port = "18081"
	assert.Equal(t, "http://127.0.0.1:18081/appointments.ics", app.FeedURL())
}
