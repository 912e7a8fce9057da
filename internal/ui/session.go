package ui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
	"github.com/tartampluch/medconnect/internal/store"
	"github.com/zalando/go-keyring"
)

// CurrentUser returns the logged-in user, if any.
func (app *MedConnectApp) CurrentUser() (engine.User, bool) {
	app.sessionMu.RLock()
	defer app.sessionMu.RUnlock()
	if app.session == nil {
		return engine.User{}, false
	}
	return *app.session, true
}

// login opens a session for u and remembers it in the keyring so the next
// launch skips the login screen.
func (app *MedConnectApp) login(u engine.User) {
	app.sessionMu.Lock()
	app.session = &u
	app.sessionMu.Unlock()

	if err := keyring.Set(config.KeyringService, config.KeyringSessionKey, u.ID); err != nil {
		slog.Warn(config.ErrSessionSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
	}
	slog.Info(config.MsgLoggedIn, config.LogKeyUserID, u.ID, config.LogKeyComponent, config.CompUI)

	app.publishFeed()
}

// Logout closes the session and returns to the login screen.
func (app *MedConnectApp) Logout() {
	app.sessionMu.Lock()
	var id string
	if app.session != nil {
		id = app.session.ID
	}
	app.session = nil
	app.sessionMu.Unlock()

	if err := keyring.Delete(config.KeyringService, config.KeyringSessionKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		slog.Warn(config.ErrSessionSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
	}
	slog.Info(config.MsgLoggedOut, config.LogKeyUserID, id, config.LogKeyComponent, config.CompUI)

	app.publishFeed()
	app.ShowLogin()
}

// restoreSession reopens the session saved by a previous launch and shows
// the home screen. It reports false when there is nothing to restore. The
// remembered id is only forgotten once the store says the user is gone.
func (app *MedConnectApp) restoreSession() bool {
	id, err := keyring.Get(config.KeyringService, config.KeyringSessionKey)
	if err != nil || id == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(app.Ctx, config.StoreTimeout)
	defer cancel()
	u, err := app.Store.UserByID(ctx, id)
	if err != nil {
		slog.Warn(config.ErrSessionRestore, config.LogKeyUserID, id, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if errors.Is(err, store.ErrNotFound) {
			_ = keyring.Delete(config.KeyringService, config.KeyringSessionKey)
		}
		return false
	}

	app.login(u)
	app.ShowHome()
	return true
}
