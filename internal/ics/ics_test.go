package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rentcrm/internal/booking"
)

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "20250601T100000", FormatDateTime(ts))
}

func TestFormatDateTimeClampsCorruptYears(t *testing.T) {
	farFuture := time.Date(2150, 1, 1, 0, 0, 0, 0, time.UTC)
	got := FormatDateTime(farFuture)
	require.NotContains(t, got, "2150")
	require.Len(t, got, len("20060102T150405"))

	ancient := time.Date(1899, 12, 31, 23, 59, 0, 0, time.UTC)
	require.NotContains(t, FormatDateTime(ancient), "1899")
}

func TestEscape(t *testing.T) {
	require.Equal(t, `Иванов\, Иван\; водитель`, Escape("Иванов, Иван; водитель"))
	require.Equal(t, `a\\b`, Escape(`a\b`))
	require.Equal(t, `первая\nвторая`, Escape("первая\nвторая"))
	require.Equal(t, "", Escape(""))
}

func TestGenerate(t *testing.T) {
	model := "Kia Rio"
	b := booking.Booking{
		ID:           42,
		ClientName:   "Иван Иванов",
		ClientPhone:  "+79001234567",
		VehicleModel: &model,
		StartDate:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 6, 5, 18, 30, 0, 0, time.UTC),
	}

	feed := Generate([]booking.Booking{b}, "crm.rf.ru")

	require.True(t, strings.HasPrefix(feed, "BEGIN:VCALENDAR\n"))
	require.True(t, strings.HasSuffix(feed, "END:VCALENDAR"))
	require.Contains(t, feed, "PRODID:-//CRM RF//Bookings//RU")
	require.Contains(t, feed, "X-WR-CALNAME:Бронирования")
	require.Contains(t, feed, "UID:booking-42@crm.rf.ru")
	require.Contains(t, feed, "DTSTART:20250601T100000")
	require.Contains(t, feed, "DTEND:20250605T183000")
	require.Contains(t, feed, "SUMMARY:Иван Иванов - Kia Rio")
	require.Contains(t, feed, `DESCRIPTION:Клиент: Иван Иванов\nТелефон: +79001234567\nАвто: Kia Rio`)
	require.Contains(t, feed, "STATUS:CONFIRMED")
}

func TestGenerateWithoutVehicle(t *testing.T) {
	b := booking.Booking{
		ID:          7,
		ClientName:  "Петров",
		ClientPhone: "+79000000000",
		StartDate:   time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
	}

	feed := Generate([]booking.Booking{b}, "crm.rf.ru")
	require.Contains(t, feed, "SUMMARY:Петров - Авто")
}
