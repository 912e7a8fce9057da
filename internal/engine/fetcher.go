package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/tartampluch/medconnect/internal/config"
)

var (
	// ErrDirectoryAuth means the address book server rejected the credentials.
	ErrDirectoryAuth = errors.New(config.ErrDirectoryAuth)
	// ErrDirectoryTooLarge is returned by Read once the export exceeds
	// config.MaxHTTPResponseSize.
	ErrDirectoryTooLarge = errors.New(config.ErrDirectoryTooLarge)
)

// VCardFetcher downloads the doctors' address book. Tests substitute a mock.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher reads a CardDAV collection export (or any .vcf served over
// HTTP) with optional basic auth.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher bounded by config.HTTPTimeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: config.HTTPTimeout}}
}

// Fetch GETs the address book at directoryURL. Rejected credentials come
// back as ErrDirectoryAuth, and an HTML answer (a login or portal page) is
// refused before any card is parsed. The query string is never logged.
func (f *HTTPFetcher) Fetch(ctx context.Context, directoryURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(directoryURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		config.LogKeyComponent, config.CompFetcher,
		config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, directoryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDirectoryRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeVCard)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDirectoryDownload, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		_ = resp.Body.Close()
		log.Warn(config.MsgDirectoryAuth, config.LogKeyStatus, resp.StatusCode)
		return nil, fmt.Errorf("%w: %d", ErrDirectoryAuth, resp.StatusCode)
	default:
		_ = resp.Body.Close()
		log.Warn(config.MsgDirectoryRefused, config.LogKeyStatus, resp.StatusCode)
		return nil, fmt.Errorf("%s: %s", config.ErrDirectoryStatus, resp.Status)
	}

	if mediaType, _, _ := mime.ParseMediaType(resp.Header.Get(config.HeaderContentType)); mediaType == config.MimeHTML {
		_ = resp.Body.Close()
		log.Warn(config.MsgDirectoryNotCards, config.LogKeyContentType, mediaType)
		return nil, errors.New(config.ErrDirectoryNotVCard)
	}

	log.Debug(config.MsgDirectoryDownload, config.LogKeySizeBytes, resp.ContentLength)
	return &boundedExport{body: resp.Body, left: config.MaxHTTPResponseSize}, nil
}

// boundedExport fails instead of truncating, so a partial address book is
// never imported as if it were complete.
type boundedExport struct {
	body io.ReadCloser
	left int64
}

func (b *boundedExport) Read(p []byte) (int, error) {
	if b.left <= 0 {
		// One byte beyond the limit tells a full export from an oversized one.
		var extra [1]byte
		if n, _ := b.body.Read(extra[:]); n > 0 {
			return 0, ErrDirectoryTooLarge
		}
		return 0, io.EOF
	}
	if int64(len(p)) > b.left {
		p = p[:b.left]
	}
	n, err := b.body.Read(p)
	b.left -= int64(n)
	return n, err
}

func (b *boundedExport) Close() error {
	return b.body.Close()
}
