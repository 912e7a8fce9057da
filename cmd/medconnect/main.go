package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
	"github.com/tartampluch/medconnect/internal/server"
	"github.com/tartampluch/medconnect/internal/store"
	"github.com/tartampluch/medconnect/internal/ui"
)

// options are the parsed command line flags.
type options struct {
	version   bool
	debug     bool
	backend   string
	redisAddr string
}

// main defers to runMain so deferred closers run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle and returns the exit code.
func runMain() int {
	opts := parseFlags(flag.CommandLine, os.Args[1:])

	if opts.version {
		printVersion()
		return config.ExitCodeSuccess
	}

	logCloser := setupLogging(opts.debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// Cancelled on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

func parseFlags(fs *flag.FlagSet, args []string) options {
	var opts options
	fs.BoolVar(&opts.version, config.FlagVersion, false, config.FlagDescVersion)
	fs.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	fs.StringVar(&opts.backend, config.FlagStore, config.StoreBackendPrefs, config.FlagDescStore)
	fs.StringVar(&opts.redisAddr, config.FlagRedisAddr, redisAddrDefault(), config.FlagDescRedisAddr)
	_ = fs.Parse(args)
	return opts
}

func redisAddrDefault() string {
	if addr := os.Getenv(config.EnvRedisAddr); addr != "" {
		return addr
	}
	return config.DefaultRedisAddr
}

// run wires the store, feed server and UI, then blocks in the Fyne loop.
func run(ctx context.Context, opts options) error {
	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	kv, closeKV, err := openKV(ctx, opts, a.Preferences())
	if err != nil {
		return err
	}
	defer closeKV()

	st := store.New(kv, engine.RealClock{})
	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewFeedServer(port)
	fetcher := engine.NewHTTPFetcher()

	gui := ui.NewMedConnectApp(a, ctx, st, srv, fetcher)

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()
	return nil
}

// openKV selects the persistence backend named by -store.
func openKV(ctx context.Context, opts options, prefs fyne.Preferences) (store.KV, func(), error) {
	slog.Info(config.MsgStoreBackend,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyBackend, opts.backend)

	switch opts.backend {
	case config.StoreBackendPrefs:
		return store.PreferencesKV{Prefs: prefs}, func() {}, nil
	case config.StoreBackendMemory:
		return store.NewMemoryKV(), func() {}, nil
	case config.StoreBackendRedis:
		pingCtx, cancel := context.WithTimeout(ctx, config.StoreTimeout)
		defer cancel()
		r, err := store.NewRedisKV(pingCtx, opts.redisAddr)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%s: %q", config.ErrStoreUnsupport, opts.backend)
	}
}

func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging sends JSON logs to stdout and to a file in the user cache.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// Truncated on each start so the file never grows unbounded.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
