package api_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rentcrm/internal/api"
	"rentcrm/internal/booking"
	"rentcrm/internal/client"
	"rentcrm/internal/finance"
	"rentcrm/internal/fleet"
	"rentcrm/internal/lead"
	"rentcrm/internal/partner"
)

// The per-entity split is observable API behavior: cancelled bookings stay
// visible, clients and partners disappear for real, leads and finance rows
// survive their own DELETE.
func TestDeletePolicyPerEntity(t *testing.T) {
	policies := map[string]api.DeletePolicy{
		"booking": booking.DeletePolicy,
		"client":  client.DeletePolicy,
		"fleet":   fleet.DeletePolicy,
		"partner": partner.DeletePolicy,
		"lead":    lead.DeletePolicy,
		"finance": finance.DeletePolicy,
	}

	require.Equal(t, api.SoftDeleteStatus, policies["booking"])
	require.Equal(t, api.HardDelete, policies["client"])
	require.Equal(t, api.HardDelete, policies["fleet"])
	require.Equal(t, api.HardDelete, policies["partner"])
	require.Equal(t, api.SoftDeleteTimestampOnly, policies["lead"])
	require.Equal(t, api.SoftDeleteTimestampOnly, policies["finance"])
}

func TestDeletePolicyString(t *testing.T) {
	require.Equal(t, "hard", api.HardDelete.String())
	require.Equal(t, "soft-status", api.SoftDeleteStatus.String())
	require.Equal(t, "soft-timestamp", api.SoftDeleteTimestampOnly.String())
	require.Equal(t, "unknown", api.DeletePolicy(99).String())
}
