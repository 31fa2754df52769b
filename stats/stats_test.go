package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:          "0",
		999:        "999",
		1000:       "1.000",
		156789:     "156.789",
		2456789:    "2.456.789",
		987654321:  "987.654.321",
		-45000:     "-45.000",
		1000000000: "1.000.000.000",
	}
	for n, want := range tests {
		assert.Equal(t, want, FormatNumber(n), n)
	}
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "45.7M", Compact(45678901))
	assert.Equal(t, "15.2M", Compact(15200000))
	assert.Equal(t, "157K", Compact(156789))
	assert.Equal(t, "3K", Compact(2500))
	assert.Equal(t, "950", Compact(950))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 25.0, Percent(1, 4))
	assert.Equal(t, 33.3, Percent(1, 3))
	assert.Equal(t, 66.7, Percent(2, 3))
	assert.Equal(t, 0.0, Percent(5, 0))
}

func TestBuildReport(t *testing.T) {
	r := BuildReport(ScopeTurkey, Turkey)

	assert.Equal(t, "156.789", r.Summary.Formatted["totalVolunteers"])
	require.Len(t, r.Economic, 5)
	// 45M of 182M
	assert.Equal(t, 24.7, r.Economic[0].Share)
	assert.Equal(t, "₺45.000.000", r.Economic[0].FormattedValue)
	assert.Equal(t, 67.0, r.Economic[0].BarWidth)
	assert.Equal(t, 89.3, r.Economic[3].BarWidth)

	var shares float64
	for _, reg := range r.Regional {
		shares += reg.Share
	}
	assert.InDelta(t, 100, shares, 0.5)
	assert.Equal(t, "45.678", r.Regional[0].FormattedVolunteers)

	w := BuildReport(ScopeWorld, World)
	for _, c := range w.Economic {
		assert.LessOrEqual(t, c.BarWidth, 100.0)
	}
}

func TestForScope(t *testing.T) {
	d, err := ForScope("")
	require.NoError(t, err)
	assert.Equal(t, int64(81), d.Summary.Reached)

	d, err = ForScope("World")
	require.NoError(t, err)
	assert.Equal(t, int64(195), d.Summary.Reached)

	_, err = ForScope("mars")
	assert.Error(t, err)
}

func TestProvinceColor(t *testing.T) {
	assert.Equal(t, "#10B981", ProvinceColor(80))
	assert.Equal(t, "#34D399", ProvinceColor(79.9))
	assert.Equal(t, "#FCD34D", ProvinceColor(40))
	assert.Equal(t, "#FB923C", ProvinceColor(20))
	assert.Equal(t, "#EF4444", ProvinceColor(19))
}

func TestShadeProvinces(t *testing.T) {
	m := ShadeProvinces([]Province{
		{PlateCode: 6, Province: "Ankara", Volunteers: 1000, Projects: 10, Hours: 20000, Index: 85},
		{PlateCode: 34, Province: "İstanbul", Volunteers: 3000, Projects: 30, TotalHours: 50000, Index: 55},
	})

	require.Len(t, m.Provinces, 2)
	assert.Equal(t, "TR-06", m.Provinces[0].ID)
	assert.Equal(t, "#10B981", m.Provinces[0].Color)
	assert.Equal(t, "₺1.7M", m.Provinces[0].EstimatedValue)
	assert.Equal(t, "TR-34", m.Provinces[1].ID)
	assert.Equal(t, int64(50000), m.Provinces[1].Hours)
	assert.Equal(t, "#FCD34D", m.Provinces[1].Color)
	assert.Equal(t, MapTotals{Volunteers: 4000, Projects: 40, Hours: 70000}, m.Totals)
}

func TestShadeCountries(t *testing.T) {
	out := ShadeCountries([]Country{
		{Code: "US", Volunteers: 15200000, Level: LevelHigh},
		{Code: "TR", Volunteers: 156789, Level: LevelMedium},
		{Code: "XX", Volunteers: 5, Level: "unknown"},
	})
	assert.Equal(t, "#10b981", out[0].Color)
	assert.Equal(t, "15.2M", out[0].Label)
	assert.Equal(t, "#fbbf24", out[1].Color)
	assert.Equal(t, "157K", out[1].Label)
	assert.Equal(t, "#e5e7eb", out[2].Color)

	assert.Len(t, Countries, 220)
	for _, c := range Countries {
		assert.NotEqual(t, "#e5e7eb", LevelColor(c.Level), c.Code)
	}
}
