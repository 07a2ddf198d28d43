package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalSalonIgnoresHomeCost(t *testing.T) {
	t.Parallel()

	for _, base := range []int{0, 1, 500, 99999} {
		for _, homeCost := range []int{0, 150, 1000} {
			assert.Equal(t, base, Total(base, ServiceSalon, homeCost))
		}
	}
}

func TestTotalHomeAddsSurcharge(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		base     int
		homeCost int
		want     int
	}{
		{"flat price plus surcharge", 500, 150, 650},
		{"zero surcharge", 500, 0, 500},
		{"zero base", 0, 150, 150},
		{"both zero", 0, 0, 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Total(tc.base, ServiceHome, tc.homeCost))
		})
	}
}

func TestTotalPackageOverridesBasePrice(t *testing.T) {
	t.Parallel()

	// A selected package replaces the groomer's base price entirely; the caller
	// passes the package price as basePrice. Surcharge still applies on top.
	groomerPrice := 500
	packagePrice := 800
	homeCost := 150

	assert.Equal(t, 650, Total(groomerPrice, ServiceHome, homeCost))
	assert.Equal(t, 950, Total(packagePrice, ServiceHome, homeCost))
	assert.Equal(t, 800, Total(packagePrice, ServiceSalon, homeCost))
}

func TestTotalClampsNegativeInputs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Total(-100, ServiceSalon, 0))
	assert.Equal(t, 150, Total(-100, ServiceHome, 150))
	assert.Equal(t, 500, Total(500, ServiceHome, -50))
}

func TestServiceTypeIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, ServiceSalon.IsValid())
	assert.True(t, ServiceHome.IsValid())
	assert.False(t, ServiceType("hotel").IsValid())
	assert.False(t, ServiceType("").IsValid())
}
