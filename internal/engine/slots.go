package engine

import (
	"slices"
	"time"

	"github.com/tartampluch/medconnect/internal/config"
)

// DefaultSlotCatalog is the half-hour grid offered for every doctor.
var DefaultSlotCatalog = slices.Clone(config.SlotCatalog)

// AvailableSlots returns the catalog entries not taken by an active booking
// of doctorID on date. The catalog order is kept. An empty doctorID or date
// yields no slots.
func AvailableSlots(catalog []string, doctorID, date string, booked []Appointment) []string {
	if doctorID == "" || date == "" {
		return []string{}
	}
	taken := make(map[string]struct{})
	for _, a := range booked {
		if a.DoctorID == doctorID && a.Date == date && a.Active() {
			taken[a.Time] = struct{}{}
		}
	}
	free := make([]string, 0, len(catalog))
	for _, slot := range catalog {
		if _, busy := taken[slot]; !busy {
			free = append(free, slot)
		}
	}
	return free
}

// DropPastSlots removes slots that already started when date is today.
// Other dates are returned unchanged.
func DropPastSlots(slots []string, date string, now time.Time) []string {
	if date != FormatDate(now) {
		return slots
	}
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		start, err := SlotStart(date, slot, now.Location())
		if err != nil || !start.After(now) {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// CatalogDrift lists the catalog slots a doctor did not declare in their
// AvailableHours. Doctors without declared hours never drift.
func CatalogDrift(catalog []string, d Doctor) []string {
	if len(d.AvailableHours) == 0 {
		return nil
	}
	var drift []string
	for _, slot := range catalog {
		if !slices.Contains(d.AvailableHours, slot) {
			drift = append(drift, slot)
		}
	}
	return drift
}
