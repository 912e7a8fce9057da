package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/medconnect/internal/config"
)

// snapshot is one published version of the feed.
type snapshot struct {
	ics      []byte
	etag     string
	modified time.Time
}

// FeedServer publishes the logged-in patient's appointments as an ICS feed
// on the loopback interface, for calendar apps to subscribe to.
type FeedServer struct {
	Port string

	// current is swapped whole on each Publish so readers never lock.
	current atomic.Pointer[snapshot]
}

// NewFeedServer returns a server that will listen on 127.0.0.1:port.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{Port: port}
}

// Handler routes config.RouteFeed to the feed.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteFeed, s.serveFeed)
	return mux
}

// Start listens until ctx is cancelled, then shuts down gracefully.
// A busy port is reported before Start returns.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(config.LocalhostBindAddr, s.Port))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serveErr := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil
	case err := <-serveErr:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Publish replaces the served feed. The ETag is the SHA-256 of the content,
// so republishing identical bytes keeps client caches valid.
func (s *FeedServer) Publish(ics []byte, at time.Time) {
	sum := sha256.Sum256(ics)
	next := &snapshot{
		ics:      ics,
		etag:     fmt.Sprintf(config.FormatETag, hex.EncodeToString(sum[:])),
		modified: at.UTC().Truncate(time.Second),
	}
	if prev := s.current.Load(); prev != nil && prev.etag == next.etag {
		next.modified = prev.modified
	}
	s.current.Store(next)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(ics),
		config.LogKeyETag, next.etag)
}

func (s *FeedServer) serveFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	snap := s.current.Load()
	if snap == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCalendar)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, snap.etag)

	// ServeContent answers If-None-Match, If-Modified-Since and HEAD.
	http.ServeContent(w, r, config.RouteFeed, snap.modified, bytes.NewReader(snap.ics))
}
