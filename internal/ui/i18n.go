package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
	"github.com/tartampluch/medconnect/internal/validation"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n loads every embedded locale and detects the available languages.
func (app *MedConnectApp) SetupI18n() {
	bundle := i18n.NewBundle(language.BrazilianPortuguese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	if len(detectedLangs) > 0 {
		app.SupportedLanguages = detectedLangs
	}
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator from the language preference.
func (app *MedConnectApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang, config.DefaultLanguage)
}

// GetMsg translates key, returning the key itself when it is unknown.
func (app *MedConnectApp) GetMsg(key string) string {
	return app.GetMsgData(key, nil)
}

// GetMsgData translates a templated message.
func (app *MedConnectApp) GetMsgData(key string, data map[string]interface{}) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// resultText is the translated message of a validation result, or its
// built-in English text when the key has no translation.
func (app *MedConnectApp) resultText(r validation.Result) string {
	if msg := app.GetMsg(r.Key); msg != r.Key {
		return msg
	}
	return r.Message
}

// formatDate renders an ISO date with the locale's short layout.
func (app *MedConnectApp) formatDate(iso string) string {
	d, err := engine.ParseDate(iso, time.Local)
	if err != nil {
		return iso
	}
	layout := app.GetMsg(config.TKeyFormatDateFmt)
	if layout == config.TKeyFormatDateFmt {
		layout = config.DateFormatISO
	}
	return d.Format(layout)
}

func (app *MedConnectApp) monthName(m time.Month) string {
	key := fmt.Sprintf(config.FormatMonthKey, int(m))
	if msg := app.GetMsg(key); msg != key {
		return msg
	}
	return m.String()
}

func (app *MedConnectApp) weekdayName(d time.Weekday) string {
	key := fmt.Sprintf(config.FormatWeekdayKey, int(d))
	if msg := app.GetMsg(key); msg != key {
		return msg
	}
	return d.String()[:3]
}

func (app *MedConnectApp) statusLabel(s engine.Status) string {
	switch s {
	case engine.StatusConfirmed:
		return app.GetMsg(config.TKeyStatusConfirmed)
	case engine.StatusCancelled:
		return app.GetMsg(config.TKeyStatusCancelled)
	default:
		return app.GetMsg(config.TKeyStatusPending)
	}
}

func (app *MedConnectApp) roleLabel(r engine.Role) string {
	switch r {
	case engine.RoleAdmin:
		return app.GetMsg(config.TKeyRoleAdmin)
	case engine.RoleDoctor:
		return app.GetMsg(config.TKeyRoleDoctor)
	default:
		return app.GetMsg(config.TKeyRolePatient)
	}
}
