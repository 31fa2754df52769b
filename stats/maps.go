package stats

import (
	"fmt"
	"math"
	"strconv"
)

// Volunteer levels of the world map.
const (
	LevelHigh       = "high"
	LevelMediumHigh = "medium-high"
	LevelMedium     = "medium"
	LevelLowMedium  = "low-medium"
)

var levelColors = map[string]string{
	LevelHigh:       "#10b981",
	LevelMediumHigh: "#84cc16",
	LevelMedium:     "#fbbf24",
	LevelLowMedium:  "#ef4444",
}

const noDataColor = "#e5e7eb"

// HourValue is the estimated economic value of one volunteer hour in lira.
const HourValue = 85

// ProvinceColor buckets a province's volunteering index (0-100).
func ProvinceColor(index float64) string {
	switch {
	case index >= 80:
		return "#10B981"
	case index >= 60:
		return "#34D399"
	case index >= 40:
		return "#FCD34D"
	case index >= 20:
		return "#FB923C"
	}
	return "#EF4444"
}

// ProvinceID is the map path id of a province: "TR-" and the plate code
// padded to two digits.
func ProvinceID(plateCode int) string {
	return fmt.Sprintf("TR-%02d", plateCode)
}

// Province is one entry of the heatmap page's provinces list. Older entries
// carry totalHours instead of hours.
type Province struct {
	PlateCode  int     `json:"plateCode"`
	Province   string  `json:"province"`
	Volunteers int64   `json:"volunteers"`
	Projects   int64   `json:"projects"`
	Hours      int64   `json:"hours"`
	TotalHours int64   `json:"totalHours"`
	Index      float64 `json:"index"`
	Rank       int     `json:"rank"`
	Trend      string  `json:"trend"`
}

func (p Province) hours() int64 {
	if p.Hours != 0 {
		return p.Hours
	}
	return p.TotalHours
}

type ShadedProvince struct {
	ID             string  `json:"id"`
	PlateCode      int     `json:"plateCode"`
	Province       string  `json:"province"`
	Color          string  `json:"color"`
	Index          float64 `json:"index"`
	Rank           int     `json:"rank"`
	Trend          string  `json:"trend,omitempty"`
	Volunteers     int64   `json:"volunteers"`
	Projects       int64   `json:"projects"`
	Hours          int64   `json:"hours"`
	EstimatedValue string  `json:"estimatedValue"`
}

type MapTotals struct {
	Volunteers int64 `json:"volunteers"`
	Projects   int64 `json:"projects"`
	Hours      int64 `json:"hours"`
}

type ProvinceMap struct {
	Provinces []ShadedProvince `json:"provinces"`
	Totals    MapTotals        `json:"totals"`
}

// ShadeProvinces colours every province and sums the map totals.
func ShadeProvinces(provinces []Province) ProvinceMap {
	m := ProvinceMap{Provinces: make([]ShadedProvince, 0, len(provinces))}
	for _, p := range provinces {
		h := p.hours()
		m.Provinces = append(m.Provinces, ShadedProvince{
			ID:             ProvinceID(p.PlateCode),
			PlateCode:      p.PlateCode,
			Province:       p.Province,
			Color:          ProvinceColor(p.Index),
			Index:          p.Index,
			Rank:           p.Rank,
			Trend:          p.Trend,
			Volunteers:     p.Volunteers,
			Projects:       p.Projects,
			Hours:          h,
			EstimatedValue: EstimatedValue(h),
		})
		m.Totals.Volunteers += p.Volunteers
		m.Totals.Projects += p.Projects
		m.Totals.Hours += h
	}
	return m
}

// EstimatedValue prices volunteer hours at HourValue, in millions of lira
// with one decimal: "₺1.2M".
func EstimatedValue(hours int64) string {
	millions := math.Round(float64(hours)*HourValue/100000) / 10
	return "₺" + strconv.FormatFloat(millions, 'f', 1, 64) + "M"
}

type Country struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Volunteers int64  `json:"volunteers"`
	Level      string `json:"level"`
}

// LevelColor maps a world map level to its fill; unknown levels are grey.
func LevelColor(level string) string {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return noDataColor
}

type ShadedCountry struct {
	Country
	Color string `json:"color"`
	Label string `json:"label"`
}

// ShadeCountries colours countries and labels them with compact counts.
func ShadeCountries(countries []Country) []ShadedCountry {
	out := make([]ShadedCountry, 0, len(countries))
	for _, c := range countries {
		out = append(out, ShadedCountry{Country: c, Color: LevelColor(c.Level), Label: Compact(c.Volunteers)})
	}
	return out
}
