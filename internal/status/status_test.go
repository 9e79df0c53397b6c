package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayRoundTrip(t *testing.T) {
	for _, s := range []Status{Draft, Reserved, Rented, Paid, Cancelled} {
		require.NotEmpty(t, s.Display())
		require.Equal(t, s, FromDisplay(s.Display()))
	}
}

func TestFromDisplayFreeText(t *testing.T) {
	require.Equal(t, Unknown, FromDisplay("Возврат залога"))
	require.Equal(t, Unknown, FromDisplay(""))
	require.Empty(t, Unknown.Display())
}

func TestCalendarAndExportSets(t *testing.T) {
	require.Equal(t, []string{"Бронь", "В аренде"}, ActiveDisplays())
	require.Equal(t, []string{"Бронь", "В аренде", "Оплачено"}, ExportDisplays())
}
