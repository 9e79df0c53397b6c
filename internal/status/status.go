// Package status models the booking lifecycle as a closed enum. The database
// and the JSON API both carry the original Russian display strings; everything
// inside the process works with Status values.
package status

type Status int

const (
	Unknown Status = iota
	Draft
	Reserved
	Rented
	Paid
	Cancelled
)

const (
	displayDraft     = "Черновик"
	displayReserved  = "Бронь"
	displayRented    = "В аренде"
	displayPaid      = "Оплачено"
	displayCancelled = "Отменено"
)

// Display returns the wire/storage form of the status. Unknown has no display
// form; callers holding free-text statuses pass the original text through.
func (s Status) Display() string {
	switch s {
	case Draft:
		return displayDraft
	case Reserved:
		return displayReserved
	case Rented:
		return displayRented
	case Paid:
		return displayPaid
	case Cancelled:
		return displayCancelled
	default:
		return ""
	}
}

// FromDisplay maps a stored/inbound status string onto the enum. Free text
// that is not one of the known statuses maps to Unknown and is preserved
// verbatim by callers, since historical rows contain arbitrary values.
func FromDisplay(s string) Status {
	switch s {
	case displayDraft:
		return Draft
	case displayReserved:
		return Reserved
	case displayRented:
		return Rented
	case displayPaid:
		return Paid
	case displayCancelled:
		return Cancelled
	default:
		return Unknown
	}
}

// ActiveDisplays are the statuses that appear in the shared calendar (batch
// Google sync targets these).
func ActiveDisplays() []string {
	return []string{displayReserved, displayRented}
}

// ExportDisplays are the statuses included in the ICS feed.
func ExportDisplays() []string {
	return []string{displayReserved, displayRented, displayPaid}
}
