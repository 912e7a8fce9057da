package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used by the directory importer.
var UserAgent = "MedConnect/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "MedConnect"
	AppTagline        = "Conectando cuidados, transformando vidas"
	AppID             = "com.github.tartampluch.medconnect"
	KeyringService    = "com.github.tartampluch.medconnect"
	KeyringSessionKey = "session"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion       = "version"
	FlagDebug         = "debug"
	FlagStore         = "store"
	FlagRedisAddr     = "redis-addr"
	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stdout"
	FlagDescStore     = "Persistence backend: prefs, memory or redis"
	FlagDescRedisAddr = "Redis address used when -store=redis"
	MsgVersionOutput  = "%s version %s (%s/%s)\n"

	StoreBackendPrefs  = "prefs"
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
	DefaultRedisAddr   = "localhost:6379"

	// EnvRedisAddr enables the redis backend tests when set.
	EnvRedisAddr = "MEDCONNECT_REDIS_ADDR"
)

// -----------------------------------------------------------------------------
// Persistence Keys
// -----------------------------------------------------------------------------

// Collection keys are shared with the mobile client and must not change.
const (
	KeyUsers        = "@MedicalApp:users"
	KeyAppointments = "@MedicalApp:appointments"
)

// -----------------------------------------------------------------------------
// UI Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 420
	MainWindowHeight    = 760
	SettingsWindowWidth = 560

	PrefLanguage        = "language"
	PrefDirectoryMode   = "directory_mode"
	PrefDirectoryURL    = "directory_url"
	PrefDirectoryUser   = "directory_user"
	PrefDirectoryPath   = "directory_path"
	PrefInterval        = "refresh_interval_min"
	PrefServerPort      = "feed_port"
	PrefReminderEnabled = "reminder_enabled"
	PrefReminderValue   = "reminder_value"
	PrefReminderUnit    = "reminder_unit"
	PrefSeeded          = "demo_seeded"
	PrefLastRun         = "last_run_version"
)

// SupportedLanguages is the fallback list when no locale file could be read.
var SupportedLanguages = []string{"pt-BR", "en"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	// Navigation & titles
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyTitleLogin     = "title_login"
	TKeyTitleRegister  = "title_register"
	TKeyTitleHome      = "title_home"
	TKeyTitleNewAppt   = "title_new_appointment"
	TKeySubtitleNewApp = "subtitle_new_appointment"
	TKeyTitleProfile   = "title_profile"

	// Form labels
	TKeyLblEmail           = "lbl_email"
	TKeyLblPassword        = "lbl_password"
	TKeyLblConfirmPassword = "lbl_confirm_password"
	TKeyLblName            = "lbl_name"
	TKeyLblPhone           = "lbl_phone"
	TKeyLblCPF             = "lbl_cpf"
	TKeyLblDoctor          = "lbl_doctor"
	TKeyLblDate            = "lbl_date"
	TKeyLblTime            = "lbl_time"
	TKeyLblNotes           = "lbl_notes"
	TKeyLblNoSlots         = "lbl_no_slots"
	TKeyLblNoAppointments  = "lbl_no_appointments"
	TKeyLblDemoAccounts    = "lbl_demo_accounts"
	TKeyLblRole            = "lbl_role"
	TKeyLblSpecialty       = "lbl_specialty"

	// Buttons
	TKeyBtnLogin        = "btn_login"
	TKeyBtnRegister     = "btn_register"
	TKeyBtnGoRegister   = "btn_go_register"
	TKeyBtnGoLogin      = "btn_go_login"
	TKeyBtnBook         = "btn_book"
	TKeyBtnNewAppt      = "btn_new_appointment"
	TKeyBtnCancelAppt   = "btn_cancel_appointment"
	TKeyBtnRefresh      = "btn_refresh"
	TKeyBtnProfile      = "btn_profile"
	TKeyBtnLogout       = "btn_logout"
	TKeyBtnBack         = "btn_back"
	TKeyBtnSettings     = "btn_settings"
	TKeyBtnSave         = "btn_save"
	TKeyBtnCancel       = "btn_cancel"
	TKeyBtnBrowse       = "btn_browse"
	TKeyConfirmCancel   = "confirm_cancel_appointment"
	TKeyConfirmCancelQ  = "confirm_cancel_question"
	TKeyFormatMonthYear = "format_month_year"

	// Status & roles
	TKeyStatusPending   = "status_pending"
	TKeyStatusConfirmed = "status_confirmed"
	TKeyStatusCancelled = "status_cancelled"
	TKeyRoleAdmin       = "role_admin"
	TKeyRoleDoctor      = "role_doctor"
	TKeyRolePatient     = "role_patient"

	// Toasts
	TKeyToastLoginOK      = "toast_login_ok"
	TKeyToastRegisterOK   = "toast_register_ok"
	TKeyToastRegisterAuto = "toast_register_autologin_failed"
	TKeyToastBookedOK     = "toast_booked_ok"
	TKeyToastCancelledOK  = "toast_cancelled_ok"
	TKeyToastCancelFailed = "toast_cancel_failed"
	TKeyToastFixForm      = "toast_fix_form"
	TKeyToastLoadFailed   = "toast_load_failed"
	TKeyToastBookFailed   = "toast_book_failed"
	TKeyToastSlotTaken    = "toast_slot_taken"
	TKeyToastDateClosed   = "toast_date_unavailable"
	TKeyToastBadLogin     = "toast_bad_login"
	TKeyToastLoginFailed  = "toast_login_failed"
	TKeyToastRegFailed    = "toast_register_failed"
	TKeyToastEmailTaken   = "toast_email_taken"
	TKeyToastSyncError    = "toast_sync_error"
	TKeyToastSyncAuth     = "toast_sync_auth"
	TKeyToastSyncOK       = "toast_sync_ok"

	// Appointment form errors
	TKeyErrSelectDoctor = "err_select_doctor"
	TKeyErrSelectDate   = "err_select_date"
	TKeyErrSelectTime   = "err_select_time"

	// Validation messages
	TKeyValEmailRequired    = "val_email_required"
	TKeyValEmailInvalid     = "val_email_invalid"
	TKeyValEmailOK          = "val_email_ok"
	TKeyValPasswordRequired = "val_password_required"
	TKeyValPasswordShort    = "val_password_short"
	TKeyValPasswordWeak     = "val_password_weak"
	TKeyValPasswordOK       = "val_password_ok"
	TKeyValNameRequired     = "val_name_required"
	TKeyValNameShort        = "val_name_short"
	TKeyValNameLetters      = "val_name_letters"
	TKeyValNameOK           = "val_name_ok"
	TKeyValConfirmRequired  = "val_confirm_required"
	TKeyValConfirmMismatch  = "val_confirm_mismatch"
	TKeyValConfirmOK        = "val_confirm_ok"
	TKeyValPhoneRequired    = "val_phone_required"
	TKeyValPhoneInvalid     = "val_phone_invalid"
	TKeyValPhoneOK          = "val_phone_ok"
	TKeyValCPFRequired      = "val_cpf_required"
	TKeyValCPFLength        = "val_cpf_length"
	TKeyValCPFOK            = "val_cpf_ok"

	// Settings window
	TKeyModeCardDAV   = "mode_carddav"
	TKeyModeLocal     = "mode_local"
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblMinutes    = "lbl_minutes_suffix"
	TKeyLblRefresh    = "lbl_refresh_interval"
	TKeyHelpInterval  = "help_interval"
	TKeyLblPort       = "lbl_feed_port"
	TKeyHelpPort      = "help_port"
	TKeyLblGeneral    = "lbl_general"
	TKeyLblDirectory  = "lbl_directory"
	TKeyLblURL        = "lbl_url"
	TKeyHelpURL       = "help_directory_url"
	TKeyLblUser       = "lbl_user"
	TKeyLblPass       = "lbl_pass"
	TKeyLblNotif      = "lbl_notifications"
	TKeyLblEnableRem  = "lbl_enable_reminders"
	TKeyLblBefore     = "lbl_before_appointment"
	TKeyUnitDays      = "unit_days"
	TKeyUnitHours     = "unit_hours"
	TKeyUnitMinutes   = "unit_minutes"
	TKeyLblFooter     = "lbl_footer"
	TKeyErrPortReq    = "err_port_required"
	TKeyErrPortNum    = "err_port_number"
	TKeyErrPortRange  = "err_port_range"
	TKeyEvtSummary    = "event_summary"
	TKeyFormatDateFmt = "format_date_short"

	// Tray & profile
	TKeyMenuOpen        = "menu_open"
	TKeyMenuRefresh     = "menu_refresh"
	TKeyMenuSettings    = "menu_settings"
	TKeyTrayStatus      = "tray_status"
	TKeyTrayStatusZero  = "tray_status_zero"
	TKeyNotifStart      = "notif_sync_start"
	TKeyLblFeedURL      = "lbl_feed_url"
	TKeyFormatDemoHint  = "format_demo_hint"
	TKeyFormatApptWhen  = "format_appointment_when"
	TKeyFormatDoctorOpt = "format_doctor_option"
	TKeyFormatGreeting  = "format_greeting"
)

// Keys of the month and weekday names, built with fmt.Sprintf.
const (
	FormatMonthKey   = "month_%02d"
	FormatWeekdayKey = "weekday_%d"
)

// -----------------------------------------------------------------------------
// Validation Messages (fallbacks when no translation is loaded)
// -----------------------------------------------------------------------------

const (
	MsgValEmailRequired    = "E-mail is required"
	MsgValEmailInvalid     = "Enter a valid e-mail"
	MsgValEmailOK          = "Valid e-mail"
	MsgValPasswordRequired = "Password is required"
	MsgValPasswordShort    = "Password must have at least 6 characters"
	MsgValPasswordWeak     = "Password accepted, but at least 8 characters are recommended"
	MsgValPasswordOK       = "Strong password"
	MsgValNameRequired     = "Name is required"
	MsgValNameShort        = "Name must have at least 2 characters"
	MsgValNameLetters      = "Name must contain only letters and spaces"
	MsgValNameOK           = "Valid name"
	MsgValConfirmRequired  = "Password confirmation is required"
	MsgValConfirmMismatch  = "Passwords do not match"
	MsgValConfirmOK        = "Passwords match"
	MsgValPhoneRequired    = "Phone is required"
	MsgValPhoneInvalid     = "Enter a valid phone number"
	MsgValPhoneOK          = "Valid phone"
	MsgValCPFRequired      = "CPF is required"
	MsgValCPFLength        = "CPF must have 11 digits"
	MsgValCPFOK            = "Valid CPF"

	// Validation thresholds
	PasswordMinLength    = 6
	PasswordStrongLength = 8
	NameMinLength        = 2
	CPFDigits            = 11
	PhoneMaxDigits       = 11
)

// -----------------------------------------------------------------------------
// Calendar & Scheduling
// -----------------------------------------------------------------------------

const (
	// GridCells is six full weeks, enough for any month layout.
	GridCells     = 42
	DaysPerWeek   = 7
	DateFormatISO = "2006-01-02"
	TimeFormatHM  = "15:04"

	SlotDuration = 30 * time.Minute

	// DisabledHorizonDays bounds the pre-computed list of disabled Saturdays.
	DisabledHorizonDays = 365
)

// WeekStart is the first column of the calendar grid.
var WeekStart = time.Sunday

// ExcludedWeekdays are never bookable, whatever the other date rules say.
var ExcludedWeekdays = []time.Weekday{time.Sunday}

// ClosedWeekdays are passed as explicit disabled dates by the booking screen.
var ClosedWeekdays = []time.Weekday{time.Saturday}

// SlotCatalog is the fixed list of half-hour slots offered for every doctor.
var SlotCatalog = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
}

// -----------------------------------------------------------------------------
// Design Tokens
// -----------------------------------------------------------------------------

// Tokens is the immutable colour palette shared by every screen.
type Tokens struct {
	Primary     string
	PrimaryDark string
	Secondary   string
	Success     string
	Warning     string
	Error       string
	Info        string
	Text        string
	TextMuted   string
	Background  string
	Border      string
}

// Theme is built once and read by reference.
var Theme = Tokens{
	Primary:     "#1E88E5",
	PrimaryDark: "#1565C0",
	Secondary:   "#43A047",
	Success:     "#4CAF50",
	Warning:     "#FF9800",
	Error:       "#F44336",
	Info:        "#2196F3",
	Text:        "#212121",
	TextMuted:   "#757575",
	Background:  "#FAFAFA",
	Border:      "#E0E0E0",
}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DirectoryModeWeb     = "web"
	DirectoryModeLocal   = "local"
	DefaultPort          = "18081"
	DefaultRefreshMin    = 60
	DefaultLanguage      = "pt-BR"
	DefaultReminderValue = 1
	DisabledInterval     = 0
	DemoPassword         = "123456"
	UIDSalt              = "medconnect-v1-"
)

// ISO8601 Duration Components for Reminders
const (
	ISONegativePrefix = "-P"
	ISOTimePrefix     = "T"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//MedConnect//Appointments//PT"
	ICalCalName   = "MedConnect"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "medconnect"

	ICalStatusTentative = "TENTATIVE"
	ICalStatusConfirmed = "CONFIRMED"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropStatus      = "STATUS"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// vCard fields read by the doctor directory importer.
	VCardUID            = "UID"
	VCardFN             = "FN"
	VCardN              = "N"
	VCardEmail          = "EMAIL"
	VCardRole           = "ROLE"
	VCardTitle          = "TITLE"
	VCardAvailableHours = "X-AVAILABLE-HOURS"
	VCardListSeparator  = ","

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when there are no events.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"
	FormatSummary   = "Consulta: %s (%s)"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	StoreTimeout        = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB, a directory is a few hundred cards
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteFeed           = "/appointments.ics"
	AddrSeparator       = ":"
	MinPort             = 1
	MaxPort             = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderAccept          = "Accept"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeVCard           = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	MimeHTML            = "text/html"
	CacheControlPrivate = "private, no-cache"

	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty    = "configuration error: local path is empty"
	ErrWebURLEmpty       = "configuration error: web URL is empty"
	ErrFetcherMissing    = "internal error: network fetcher is not initialized"
	ErrModeUnsupport     = "configuration error: unsupported directory mode"
	ErrStoreUnsupport    = "configuration error: unsupported store backend"
	ErrServerStartup     = "server startup failed"
	ErrServerShutdown    = "server shutdown failed"
	ErrPortRequired      = "feed port is required"
	ErrInvalidURL        = "invalid URL structure"
	ErrProtocol          = "unsupported protocol scheme (http/https only)"
	ErrDirectoryRequest  = "failed to build directory request"
	ErrDirectoryDownload = "directory download failed"
	ErrDirectoryAuth     = "directory server rejected the credentials"
	ErrDirectoryStatus   = "directory server returned an unexpected status"
	ErrDirectoryNotVCard = "directory URL answered with an HTML page, not vCards"
	ErrDirectoryTooLarge = "directory export exceeds the size limit"
	ErrVCardParse        = "failed to parse vCard stream"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrDateParse         = "unable to parse date"
	ErrStoreRead         = "failed to read collection"
	ErrStoreWrite        = "failed to write collection"
	ErrStoreEncode       = "failed to encode collection"
	ErrRedisPing         = "redis is unreachable"
	ErrPasswordHash      = "failed to hash password"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create app cache dir"
	ErrAppFailed         = "application failed unexpectedly"
	ErrWriteResp         = "failed to write response body"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrLocNotInit        = "localizer not initialized"
	ErrSessionRestore    = "failed to restore session"
	ErrSessionSave       = "failed to save session"
	ErrSeedFailed        = "failed to seed demo accounts"
	ErrCredentialsStore  = "failed to save credentials to keyring"
	ErrTrayNotSupported  = "system tray not supported on this platform"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages & Fallbacks
// -----------------------------------------------------------------------------

const (
	FallbackName      = "Unknown"
	FallbackSpecialty = "Clínica Geral"

	FallbackTrayError   = "MedConnect: !"
	FallbackTrayDefault = "%d appointment(s) today"
	PlaceholderURL      = "https://dav.example.com/addressbooks/clinic/doctors/"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgSyncStarted       = "Directory sync started"
	MsgSyncFailed        = "Directory sync failed"
	MsgSyncReq           = "Sync requested"
	MsgSyncDone          = "Directory sync finished"
	MsgDirectoryAuth     = "Directory credentials rejected"
	MsgDirectoryRefused  = "Directory server refused request"
	MsgDirectoryNotCards = "Directory URL does not serve vCards"
	MsgDirectoryDownload = "Directory download started"
	MsgFeedBuilt         = "Appointment feed rebuilt"
	MsgWorkerStart       = "Background worker started"
	MsgWorkerStop        = "Worker stopping due to context cancellation"
	MsgUpdateSync        = "Updating sync interval"
	MsgAppStop           = "Application stopped gracefully"
	MsgCtxCancel         = "Context cancelled, shutting down UI"
	MsgSkippedCard       = "Skipping malformed vCard"
	MsgSkippedHour       = "Skipping invalid available hour"
	MsgSkippedRecord     = "Dropping malformed record"
	MsgBlobNotArray      = "Collection is not a JSON array, treating as empty"
	MsgAppStarting       = "Starting application"
	MsgServerListen      = "HTTP server listening"
	MsgServerStop        = "Shutting down HTTP server..."
	MsgCacheUpdated      = "Feed cache updated"
	MsgLocaleSkip        = "Skipping non-locale file"
	MsgLocaleBadName     = "Skipping malformed locale filename"
	MsgLocaleLoaded      = "Locale loaded successfully"
	MsgTransMissing      = "Missing translation key"
	MsgPassFail          = "Password retrieval failed (might be empty)"
	MsgLogWarning        = "Warning: %s at %s: %v\n"
	MsgSeeded            = "Demo accounts seeded"
	MsgLoggedIn          = "User logged in"
	MsgLoggedOut         = "User logged out"
	MsgRegistered        = "User registered"
	MsgBooked            = "Appointment booked"
	MsgCancelled         = "Appointment cancelled"
	MsgCatalogDrift      = "Slot catalog offers hours outside the doctor's schedule"
	MsgScreen            = "Showing screen"
	MsgStoreBackend      = "Persistence backend selected"
	MsgDoctorsUpdated    = "Doctor directory merged"
	MsgLoginFailed       = "Login failed"
	MsgRegisterFailed    = "Registration failed"
	MsgLoadFailed        = "Failed to load appointments"
	MsgBookFailed        = "Booking failed"
	MsgCancelFailed      = "Cancellation failed"
	MsgSettingsSaved     = "Saving preferences"
	MsgSettingsFocus     = "Settings window already open, requesting focus"
	MsgSettingsOpen      = "Opening settings window"
	MsgRefreshOff        = "Auto-refresh disabled via settings"
	MsgReminderOff       = "Reminders disabled via settings (value is empty)"
)

// -----------------------------------------------------------------------------
// Reminder Units
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent   = "component"
	LogKeyError       = "error"
	LogKeyURL         = "url"
	LogKeyStatus      = "status_code"
	LogKeyContentType = "content_type"
	LogKeyFile        = "file"
	LogKeyLang        = "lang"
	LogKeyKey         = "key"
	LogKeyPort        = "port"
	LogKeyMode        = "mode"
	LogKeyInterval    = "interval"
	LogKeyOld         = "old"
	LogKeyNew         = "new"
	LogKeyUser        = "user"
	LogKeyUserID      = "user_id"
	LogKeyDoctorID    = "doctor_id"
	LogKeyApptID      = "appointment_id"
	LogKeyDate        = "date"
	LogKeyTime        = "time"
	LogKeySlots       = "slots"
	LogKeyCount       = "count"
	LogKeyIndex       = "index"
	LogKeyName        = "name"
	LogKeyScreen      = "screen"
	LogKeyBackend     = "backend"
	LogKeySizeBytes   = "size_bytes"
	LogKeyETag        = "etag"
	LogKeyManual      = "manual"
	LogKeyValue       = "value"
	LogKeyDuration    = "duration_ms"
	LogKeyToday       = "appointments_today"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompEngine   = "engine"
	CompCalendar = "calendar"
	CompStore    = "store"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutSlotColumns   = 4
	ToastTimeout        = 4 * time.Second
)
