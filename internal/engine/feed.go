package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/medconnect/internal/config"
)

// FeedBuilder renders appointments as an iCalendar feed.
type FeedBuilder struct {
	Clock Clock

	// Location interprets the wall-clock date and time of each appointment.
	// Nil means the location of Clock.Now().
	Location *time.Location

	// FormatSummary lets the UI inject a localized event title.
	FormatSummary func(a Appointment) string
}

// Build encodes every active appointment as a VEVENT and returns the ICS
// bytes plus the number of active appointments falling today.
// reminderTrigger is an ISO8601 negative duration such as "-PT1H"; empty
// disables alarms.
func (b *FeedBuilder) Build(ctx context.Context, appts []Appointment, reminderTrigger string) ([]byte, int, error) {
	now := b.Clock.Now()
	loc := b.Location
	if loc == nil {
		loc = now.Location()
	}
	today := FormatDate(now)

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refresh := ical.NewProp(config.PropRefresh)
	refresh.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refresh)

	stamp := ical.NewProp(config.PropDTStamp)
	stamp.SetDateTime(now.UTC())

	todayCount := 0
	for _, a := range appts {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		if !a.Active() {
			continue
		}
		event, err := b.event(a, loc, reminderTrigger)
		if err != nil {
			slog.Warn(config.MsgSkippedRecord,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyApptID, a.ID,
				config.LogKeyError, err)
			continue
		}
		event.Props.Set(stamp)
		cal.Children = append(cal.Children, event.Component)
		if a.Date == today {
			todayCount++
		}
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(cal.Children),
		config.LogKeyToday, todayCount)
	return buf.Bytes(), todayCount, nil
}

func (b *FeedBuilder) event(a Appointment, loc *time.Location, reminderTrigger string) (*ical.Event, error) {
	start, err := SlotStart(a.Date, a.Time, loc)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf(config.FormatSummary, a.DoctorName, a.Specialty)
	if b.FormatSummary != nil {
		summary = b.FormatSummary(a)
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, a.ID, config.ICalDomain))
	event.Props.SetText(config.PropSummary, summary)
	if a.Notes != "" {
		event.Props.SetText(config.PropDescription, a.Notes)
	}

	status := config.ICalStatusTentative
	if a.Status == StatusConfirmed {
		status = config.ICalStatusConfirmed
	}
	event.Props.SetText(config.PropStatus, status)

	// go-ical writes a TZID for non-UTC times; UTC keeps the feed portable.
	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDateTime(start.UTC())
	event.Props.Set(dtStart)

	dtEnd := ical.NewProp(config.PropDTEnd)
	dtEnd.SetDateTime(start.Add(config.SlotDuration).UTC())
	event.Props.Set(dtEnd)

	if reminderTrigger != "" {
		addAlarm(event, reminderTrigger, summary)
	}
	return event, nil
}

// addAlarm attaches a DISPLAY alarm firing at trigger.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Raw value: SetText would add VALUE=TEXT, which clients reject on TRIGGER.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// ReminderTrigger formats a reminder offset as an ISO8601 negative duration.
// A non-positive value disables the reminder.
func ReminderTrigger(value int, unit string) string {
	if value <= 0 {
		return ""
	}
	switch unit {
	case config.UnitDays:
		return fmt.Sprintf("%s%d%s", config.ISONegativePrefix, value, config.ISODay)
	case config.UnitHours:
		return fmt.Sprintf("%s%s%d%s", config.ISONegativePrefix, config.ISOTimePrefix, value, config.ISOHour)
	default:
		return fmt.Sprintf("%s%s%d%s", config.ISONegativePrefix, config.ISOTimePrefix, value, config.ISOMinute)
	}
}
