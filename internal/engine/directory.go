package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/medconnect/internal/config"
)

// DirectoryConfig selects where the doctor directory is read from.
type DirectoryConfig struct {
	Mode      string // config.DirectoryModeLocal or config.DirectoryModeWeb
	LocalPath string
	WebURL    string // CardDAV collection or plain .vcf URL
	WebUser   string
	WebPass   string
}

// DirectoryImporter turns a vCard address book into doctors.
type DirectoryImporter struct {
	Fetcher VCardFetcher
}

// Import reads every card of the configured source. Cards that cannot be
// decoded are skipped; a source that cannot be opened is an error.
func (d *DirectoryImporter) Import(ctx context.Context, cfg DirectoryConfig) ([]Doctor, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	rc, err := d.open(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = rc.Close() }()

	doctors, err := decodeDoctors(ctx, rc)
	if err != nil {
		return nil, err
	}
	log.Debug(config.MsgSyncDone,
		config.LogKeyCount, len(doctors),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return doctors, nil
}

func (d *DirectoryImporter) open(ctx context.Context, cfg DirectoryConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.DirectoryModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.DirectoryModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if d.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return d.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

func decodeDoctors(ctx context.Context, r io.Reader) ([]Doctor, error) {
	dec := vcard.NewDecoder(r)
	var doctors []Doctor
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return doctors, nil
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}
		doctors = append(doctors, doctorFromCard(card))
	}
}

// doctorFromCard maps FN (or N), EMAIL, ROLE (or TITLE) and
// X-AVAILABLE-HOURS. Cards without UID get a stable hashed id.
func doctorFromCard(card vcard.Card) Doctor {
	doc := Doctor{
		Name:      config.FallbackName,
		Specialty: config.FallbackSpecialty,
	}
	if v := cardValue(card, config.VCardFN); v != "" {
		doc.Name = v
	} else if v := cardValue(card, config.VCardN); v != "" {
		doc.Name = strings.TrimSpace(strings.ReplaceAll(v, ";", " "))
	}
	doc.Email = strings.ToLower(cardValue(card, config.VCardEmail))
	if v := cardValue(card, config.VCardRole); v != "" {
		doc.Specialty = v
	} else if v := cardValue(card, config.VCardTitle); v != "" {
		doc.Specialty = v
	}

	for _, raw := range strings.Split(cardValue(card, config.VCardAvailableHours), config.VCardListSeparator) {
		hour := strings.TrimSpace(raw)
		if hour == "" {
			continue
		}
		if _, err := ParseSlot(hour); err != nil {
			slog.Debug(config.MsgSkippedHour,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, doc.Name,
				config.LogKeyValue, hour)
			continue
		}
		doc.AvailableHours = append(doc.AvailableHours, hour)
	}

	doc.ID = cardValue(card, config.VCardUID)
	if doc.ID == "" {
		sum := sha256.Sum256([]byte(fmt.Sprintf(config.FormatHashInput, doc.Name, doc.Email, config.UIDSalt)))
		doc.ID = fmt.Sprintf("%x", sum[:config.UIDHashLength])
	}
	return doc
}

func cardValue(card vcard.Card, field string) string {
	f := card.Get(field)
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f.Value)
}
