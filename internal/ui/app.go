package ui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
	"github.com/tartampluch/medconnect/internal/server"
	"github.com/tartampluch/medconnect/internal/store"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// MedConnectApp holds the UI state, the session and the background services.
type MedConnectApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Store    *store.Store
	Server   *server.FeedServer
	Importer *engine.DirectoryImporter
	Clock    engine.Clock

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayOpenItem     *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	sessionMu sync.RWMutex
	session   *engine.User

	toast          *toastBar
	screenName     string
	settingsWindow fyne.Window

	loginView    *loginScreen
	registerView *registerScreen
	homeView     *homeScreen
	bookingView  *bookingScreen
}

// NewMedConnectApp constructs the application and wires dependencies.
func NewMedConnectApp(a fyne.App, ctx context.Context, st *store.Store, srv *server.FeedServer, fetcher engine.VCardFetcher) *MedConnectApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &MedConnectApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Store:              st,
		Server:             srv,
		Importer:           &engine.DirectoryImporter{Fetcher: fetcher},
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
		toast:              newToastBar(),
	}
}

// Run seeds the demo accounts, starts the feed server and the worker, then
// blocks in the Fyne event loop.
func (app *MedConnectApp) Run() {
	app.SetupI18n()
	app.watchPreferences()
	app.seed()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.setupWindow()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
		// With a tray icon, closing the window only hides it.
		app.Window.SetCloseIntercept(app.Window.Hide)
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	if !app.restoreSession() {
		app.ShowLogin()
	}

	go app.backgroundWorker()
	app.Window.Show()
	app.App.Run()
}

// setupWindow creates the main window. Screens swap its content.
func (app *MedConnectApp) setupWindow() {
	app.Window = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
}

// seed fills an empty user collection with the demo accounts.
func (app *MedConnectApp) seed() {
	ctx, cancel := context.WithTimeout(app.Ctx, config.StoreTimeout)
	defer cancel()

	seeded, err := app.Store.SeedDemoAccounts(ctx)
	if err != nil {
		slog.Error(config.ErrSeedFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		return
	}
	if seeded {
		app.Preferences.SetBool(config.PrefSeeded, true)
		slog.Info(config.MsgSeeded, config.LogKeyCount, len(store.DemoAccounts), config.LogKeyComponent, config.CompUI)
	}
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *MedConnectApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *MedConnectApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(fmt.Sprintf(config.FallbackTrayDefault, 0), app.showWindow)

	app.TrayOpenItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOpen), app.showWindow)

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performSync(true)
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayOpenItem,
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

func (app *MedConnectApp) showWindow() {
	if app.Window == nil {
		return
	}
	app.Window.Show()
	app.Window.RequestFocus()
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *MedConnectApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayOpenItem.Label = app.GetMsg(config.TKeyMenuOpen)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// refreshInterval reads the directory refresh period. Zero disables the timer.
func (app *MedConnectApp) refreshInterval() time.Duration {
	val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if val <= 0 {
		return 0
	}
	return time.Duration(val) * time.Minute
}

// backgroundWorker imports the directory on startup and then on a timer.
func (app *MedConnectApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performSync(false)

	currentDuration := app.refreshInterval()
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	var tick <-chan time.Time
	schedule := func(d time.Duration) {
		if d <= 0 {
			ticker.Stop()
			tick = nil
			return
		}
		ticker.Reset(d)
		tick = ticker.C
	}
	schedule(currentDuration)

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := app.refreshInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateSync, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				schedule(currentDuration)
			}

		case <-tick:
			app.performSync(false)
		}
	}
}

// performSync merges the doctor directory into the store, then rebuilds the
// appointment feed. An unconfigured directory only rebuilds the feed.
func (app *MedConnectApp) performSync(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	if err := app.importDirectory(); err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			key := config.TKeyToastSyncError
			if errors.Is(err, engine.ErrDirectoryAuth) {
				key = config.TKeyToastSyncAuth
			}
			app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(key)))
		}
		app.updateTrayStatus(-1)
		return
	}

	app.publishFeed()

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyToastSyncOK)))
	}
}

// importDirectory fetches the configured vCard directory and upserts its doctors.
func (app *MedConnectApp) importDirectory() error {
	cfg := app.loadDirectoryConfig()
	if cfg.LocalPath == "" && cfg.WebURL == "" {
		return nil
	}

	start := app.Clock.Now()
	doctors, err := app.Importer.Import(app.Ctx, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(app.Ctx, config.StoreTimeout)
	defer cancel()
	added, updated, err := app.Store.UpsertDoctors(ctx, doctors)
	if err != nil {
		return err
	}

	slog.Info(config.MsgDoctorsUpdated,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(doctors),
		config.LogKeyNew, added,
		config.LogKeyOld, updated,
		config.LogKeyDuration, app.Clock.Now().Sub(start).Milliseconds())
	return nil
}

// publishFeed renders the logged-in patient's appointments and hands them to
// the feed server. Without a session the feed is empty.
func (app *MedConnectApp) publishFeed() {
	var appts []engine.Appointment
	if user, ok := app.CurrentUser(); ok {
		ctx, cancel := context.WithTimeout(app.Ctx, config.StoreTimeout)
		defer cancel()
		list, err := app.Store.AppointmentsForPatient(ctx, user.ID)
		if err != nil {
			slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
			app.updateTrayStatus(-1)
			return
		}
		appts = list
	}

	builder := &engine.FeedBuilder{
		Clock:         app.Clock,
		FormatSummary: app.buildSummaryFormatter(),
	}
	ics, today, err := builder.Build(app.Ctx, appts, app.reminderTrigger())
	if err != nil {
		slog.Error(config.ErrICalEncode, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		app.updateTrayStatus(-1)
		return
	}

	app.Server.Publish(ics, app.Clock.Now())
	app.updateTrayStatus(today)

	slog.Debug(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(appts),
		config.LogKeyToday, today)
}

// updateTrayStatus shows how many appointments fall today.
func (app *MedConnectApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	switch {
	case count < 0:
		label = config.FallbackTrayError
	case count == 0:
		label = app.GetMsg(config.TKeyTrayStatusZero)
		if label == config.TKeyTrayStatusZero {
			label = fmt.Sprintf(config.FallbackTrayDefault, 0)
		}
	default:
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayStatus,
				TemplateData: map[string]interface{}{"Count": count},
				PluralCount:  count,
			})
			if err == nil {
				label = msg
			}
		}
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	fyne.Do(func() {
		app.TrayStatusItem.Label = label
		app.Menu.Refresh()
	})
}

// loadDirectoryConfig assembles the importer configuration from preferences and the keyring.
func (app *MedConnectApp) loadDirectoryConfig() engine.DirectoryConfig {
	cfg := engine.DirectoryConfig{
		Mode:    app.Preferences.StringWithFallback(config.PrefDirectoryMode, config.DirectoryModeWeb),
		WebUser: app.Preferences.String(config.PrefDirectoryUser),
	}
	if cfg.Mode == config.DirectoryModeLocal {
		cfg.LocalPath = app.Preferences.String(config.PrefDirectoryPath)
	} else {
		cfg.WebURL = app.Preferences.String(config.PrefDirectoryURL)
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return cfg
}

// reminderTrigger returns the alarm offset chosen in settings, or "" when off.
func (app *MedConnectApp) reminderTrigger() string {
	if !app.Preferences.Bool(config.PrefReminderEnabled) {
		return ""
	}
	val := app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)
	unit := app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitHours)
	return engine.ReminderTrigger(val, unit)
}

// buildSummaryFormatter returns a closure that localizes the event title.
func (app *MedConnectApp) buildSummaryFormatter() func(a engine.Appointment) string {
	return func(a engine.Appointment) string {
		msg := app.GetMsgData(config.TKeyEvtSummary, map[string]interface{}{
			"Doctor":    a.DoctorName,
			"Specialty": a.Specialty,
		})
		if msg == config.TKeyEvtSummary || msg == "" {
			return fmt.Sprintf(config.FormatSummary, a.DoctorName, a.Specialty)
		}
		return msg
	}
}

// FeedURL is the address calendar apps subscribe to.
func (app *MedConnectApp) FeedURL() string {
	return config.SchemeHTTP + "://" + net.JoinHostPort(config.LocalhostBindAddr, app.Server.Port) + config.RouteFeed
}
