// Package stats holds the volunteering statistics datasets and the
// arithmetic behind the statistics and map pages.
package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	ScopeTurkey = "turkey"
	ScopeWorld  = "world"
)

type Summary struct {
	TotalVolunteers int64  `json:"totalVolunteers"`
	ActiveProjects  int64  `json:"activeProjects"`
	TotalHours      int64  `json:"totalHours"`
	Reached         int64  `json:"reached"`
	ReachedLabel    string `json:"reachedLabel"`
	Organizations   int64  `json:"organizations"`
}

type ImpactCategory struct {
	Category   string `json:"category"`
	Value      int64  `json:"value"`
	Currency   string `json:"currency"`
	Volunteers int64  `json:"volunteers"`
	Projects   int64  `json:"projects"`
}

type Region struct {
	Region     string `json:"region"`
	Volunteers int64  `json:"volunteers"`
	Projects   int64  `json:"projects"`
	Impact     string `json:"impact"`
}

// Dataset is everything the statistics page shows for one scope. BarScale
// is the volunteer count that fills a category's progress bar.
type Dataset struct {
	Summary  Summary
	Economic []ImpactCategory
	Regional []Region
	BarScale int64
}

var Turkey = Dataset{
	Summary: Summary{
		TotalVolunteers: 156789,
		ActiveProjects:  1245,
		TotalHours:      2456789,
		Reached:         81,
		ReachedLabel:    "Şehir",
		Organizations:   456,
	},
	Economic: []ImpactCategory{
		{Category: "Eğitim", Value: 45000000, Currency: "₺", Volunteers: 23456, Projects: 345},
		{Category: "Sağlık", Value: 38000000, Currency: "₺", Volunteers: 18234, Projects: 289},
		{Category: "Çevre", Value: 29000000, Currency: "₺", Volunteers: 15678, Projects: 234},
		{Category: "Sosyal Yardım", Value: 52000000, Currency: "₺", Volunteers: 31245, Projects: 412},
		{Category: "Kültür & Sanat", Value: 18000000, Currency: "₺", Volunteers: 9876, Projects: 156},
	},
	Regional: []Region{
		{Region: "Marmara", Volunteers: 45678, Projects: 456, Impact: "₺85M"},
		{Region: "Ege", Volunteers: 23456, Projects: 289, Impact: "₺42M"},
		{Region: "Akdeniz", Volunteers: 19876, Projects: 234, Impact: "₺36M"},
		{Region: "İç Anadolu", Volunteers: 18234, Projects: 198, Impact: "₺32M"},
		{Region: "Karadeniz", Volunteers: 15678, Projects: 167, Impact: "₺28M"},
		{Region: "Doğu Anadolu", Volunteers: 12345, Projects: 123, Impact: "₺21M"},
		{Region: "Güneydoğu Anadolu", Volunteers: 11234, Projects: 145, Impact: "₺24M"},
	},
	BarScale: 35000,
}

var World = Dataset{
	Summary: Summary{
		TotalVolunteers: 45678901,
		ActiveProjects:  234567,
		TotalHours:      987654321,
		Reached:         195,
		ReachedLabel:    "Ülke",
		Organizations:   12345,
	},
	Economic: []ImpactCategory{
		{Category: "Education", Value: 125000000000, Currency: "$", Volunteers: 12345678, Projects: 45678},
		{Category: "Healthcare", Value: 98000000000, Currency: "$", Volunteers: 9876543, Projects: 38901},
		{Category: "Environment", Value: 76000000000, Currency: "$", Volunteers: 7654321, Projects: 29876},
		{Category: "Social Aid", Value: 142000000000, Currency: "$", Volunteers: 15678901, Projects: 52345},
		{Category: "Culture & Arts", Value: 45000000000, Currency: "$", Volunteers: 4567890, Projects: 18234},
	},
	Regional: []Region{
		{Region: "North America", Volunteers: 12345678, Projects: 45678, Impact: "$245B"},
		{Region: "Europe", Volunteers: 10987654, Projects: 38901, Impact: "$198B"},
		{Region: "Asia Pacific", Volunteers: 15678901, Projects: 67890, Impact: "$312B"},
		{Region: "Latin America", Volunteers: 5678901, Projects: 23456, Impact: "$98B"},
		{Region: "Middle East", Volunteers: 3456789, Projects: 15678, Impact: "$67B"},
		{Region: "Africa", Volunteers: 4567890, Projects: 19876, Impact: "$82B"},
	},
	BarScale: 16000000,
}

// ForScope returns the dataset of scope; "" means Turkey.
func ForScope(scope string) (Dataset, error) {
	switch strings.ToLower(strings.TrimSpace(scope)) {
	case "", ScopeTurkey:
		return Turkey, nil
	case ScopeWorld:
		return World, nil
	}
	return Dataset{}, fmt.Errorf("unknown statistics scope %q", scope)
}

type ImpactShare struct {
	ImpactCategory
	FormattedValue string  `json:"formattedValue"`
	Share          float64 `json:"share"`
	BarWidth       float64 `json:"barWidth"`
}

type RegionShare struct {
	Region
	FormattedVolunteers string  `json:"formattedVolunteers"`
	Share               float64 `json:"share"`
}

type FormattedSummary struct {
	Summary
	Formatted map[string]string `json:"formatted"`
}

// Report is a dataset with every derived figure the page displays.
type Report struct {
	Scope    string           `json:"scope"`
	Summary  FormattedSummary `json:"summary"`
	Economic []ImpactShare    `json:"economic"`
	Regional []RegionShare    `json:"regional"`
}

func BuildReport(scope string, d Dataset) Report {
	r := Report{
		Scope: scope,
		Summary: FormattedSummary{
			Summary: d.Summary,
			Formatted: map[string]string{
				"totalVolunteers": FormatNumber(d.Summary.TotalVolunteers),
				"activeProjects":  FormatNumber(d.Summary.ActiveProjects),
				"totalHours":      FormatNumber(d.Summary.TotalHours),
				"organizations":   FormatNumber(d.Summary.Organizations),
			},
		},
		Economic: make([]ImpactShare, 0, len(d.Economic)),
		Regional: make([]RegionShare, 0, len(d.Regional)),
	}

	var totalValue, totalVolunteers int64
	for _, c := range d.Economic {
		totalValue += c.Value
	}
	for _, reg := range d.Regional {
		totalVolunteers += reg.Volunteers
	}

	for _, c := range d.Economic {
		width := Percent(float64(c.Volunteers), float64(d.BarScale))
		r.Economic = append(r.Economic, ImpactShare{
			ImpactCategory: c,
			FormattedValue: c.Currency + FormatNumber(c.Value),
			Share:          Percent(float64(c.Value), float64(totalValue)),
			BarWidth:       math.Min(width, 100),
		})
	}
	for _, reg := range d.Regional {
		r.Regional = append(r.Regional, RegionShare{
			Region:              reg,
			FormattedVolunteers: FormatNumber(reg.Volunteers),
			Share:               Percent(float64(reg.Volunteers), float64(totalVolunteers)),
		})
	}
	return r
}

// Percent is part/total as a percentage rounded to one decimal. A zero
// total yields 0.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(part/total*1000) / 10
}

// FormatNumber groups thousands with dots: 156789 -> "156.789".
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// Compact abbreviates large counts: millions with one decimal ("45.7M"),
// thousands with none ("157K").
func Compact(n int64) string {
	switch {
	case n >= 1000000:
		return strconv.FormatFloat(math.Round(float64(n)/100000)/10, 'f', 1, 64) + "M"
	case n >= 1000:
		return strconv.FormatInt(int64(math.Round(float64(n)/1000)), 10) + "K"
	}
	return strconv.FormatInt(n, 10)
}
