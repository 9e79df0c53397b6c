// Package ics renders the shared booking feed as an iCalendar document.
package ics

import (
	"fmt"
	"strings"
	"time"

	"rentcrm/internal/booking"
)

const dateTimeLayout = "20060102T150405"

// FormatDateTime renders a local timestamp for DTSTART/DTEND. Years outside
// [1900, 2100] are corrupt imports and clamp to now so one bad row does not
// break every subscriber's calendar.
func FormatDateTime(t time.Time) string {
	if t.Year() < 1900 || t.Year() > 2100 {
		return time.Now().Format(dateTimeLayout)
	}
	return t.Format(dateTimeLayout)
}

// Escape applies RFC 5545 text escaping: backslash first, then comma,
// semicolon and newline.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	r := strings.NewReplacer(
		"\\", "\\\\",
		",", "\\,",
		";", "\\;",
		"\n", "\\n",
	)
	return r.Replace(text)
}

// Generate builds the full VCALENDAR document. UID embeds the serving domain
// so feeds from different deployments never collide.
func Generate(bookings []booking.Booking, domain string) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCALENDAR\n")
	b.WriteString("VERSION:2.0\n")
	b.WriteString("PRODID:-//CRM RF//Bookings//RU\n")
	b.WriteString("CALSCALE:GREGORIAN\n")
	b.WriteString("METHOD:PUBLISH\n")
	b.WriteString("X-WR-CALNAME:Бронирования\n")
	b.WriteString("X-WR-TIMEZONE:Europe/Moscow\n")

	stamp := time.Now().UTC().Format(dateTimeLayout) + "Z"

	for _, bk := range bookings {
		model := "Авто"
		if bk.VehicleModel != nil && *bk.VehicleModel != "" {
			model = *bk.VehicleModel
		}

		summary := fmt.Sprintf("%s - %s", bk.ClientName, model)
		desc := fmt.Sprintf("Клиент: %s\nТелефон: %s\nАвто: %s",
			bk.ClientName, bk.ClientPhone, model)

		b.WriteString("BEGIN:VEVENT\n")
		fmt.Fprintf(&b, "UID:booking-%d@%s\n", bk.ID, domain)
		fmt.Fprintf(&b, "DTSTAMP:%s\n", stamp)
		fmt.Fprintf(&b, "DTSTART:%s\n", FormatDateTime(bk.StartDate))
		fmt.Fprintf(&b, "DTEND:%s\n", FormatDateTime(bk.EndDate))
		fmt.Fprintf(&b, "SUMMARY:%s\n", Escape(summary))
		fmt.Fprintf(&b, "DESCRIPTION:%s\n", Escape(desc))
		b.WriteString("STATUS:CONFIRMED\n")
		b.WriteString("END:VEVENT\n")
	}

	b.WriteString("END:VCALENDAR")
	return b.String()
}
