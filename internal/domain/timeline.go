package domain

import (
	"fmt"
	"math"
	"time"
)

// DefaultImageryLookbackYears is how far before the end of a timeline
// historical imagery is known to exist.
const DefaultImageryLookbackYears = 2

// NormalizeDay truncates t to midnight in t's own location.
func NormalizeDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b. Dates are compared on their
// civil date, so a DST transition inside the range does not lose a day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// spanDays is the whole-day width of [start, end], never less than one.
func spanDays(start, end time.Time) int {
	return max(1, daysBetween(start, end))
}

// ToSlider maps date onto [0, 100] over the range [start, end]. Dates outside
// the range clamp to the nearest end.
func ToSlider(date, start, end time.Time) float64 {
	offset := float64(daysBetween(start, date))
	v := offset / float64(spanDays(start, end)) * 100
	return math.Min(100, math.Max(0, v))
}

// ToDate maps a slider value back onto a day in [start, end]. The value is
// clamped to [0, 100] and the result rounded to the nearest whole day.
func ToDate(value float64, start, end time.Time) time.Time {
	if math.IsNaN(value) {
		value = 0
	}
	value = math.Min(100, math.Max(0, value))
	days := int(math.Round(value / 100 * float64(spanDays(start, end))))
	return NormalizeDay(start).AddDate(0, 0, days)
}

// Timeline is the imagery date range of one project: from its start date up
// to today.
type Timeline struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	LookbackYears int       `json:"lookback_years"`
}

// NewTimeline returns a timeline over [start, end] with day-normalized bounds.
// A non-positive lookback selects DefaultImageryLookbackYears.
func NewTimeline(start, end time.Time, lookbackYears int) Timeline {
	if lookbackYears <= 0 {
		lookbackYears = DefaultImageryLookbackYears
	}
	return Timeline{
		Start:         NormalizeDay(start),
		End:           NormalizeDay(end),
		LookbackYears: lookbackYears,
	}
}

// TimelineFor builds the timeline for a project as of now. Projects without a
// start date get a zero-width timeline ending today.
func TimelineFor(p Project, now time.Time, lookbackYears int) Timeline {
	start := now
	if p.StartDate != nil {
		start = *p.StartDate
	}
	return NewTimeline(start, now, lookbackYears)
}

// Value returns the slider position of date.
func (tl Timeline) Value(date time.Time) float64 {
	return ToSlider(date, tl.Start, tl.End)
}

// DateAt returns the day at slider position value.
func (tl Timeline) DateAt(value float64) time.Time {
	return ToDate(value, tl.Start, tl.End)
}

// ImageryThreshold is the oldest date with known imagery.
func (tl Timeline) ImageryThreshold() time.Time {
	return tl.End.AddDate(-tl.LookbackYears, 0, 0)
}

// Advisory tells the viewer that imagery for the requested day does not
// exist and which day is shown instead. It is informational, not an error.
type Advisory struct {
	Requested time.Time `json:"requested"`
	Nearest   time.Time `json:"nearest"`
	Message   string    `json:"message"`
}

// Selection is the result of choosing a day on the timeline.
type Selection struct {
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
	Advisory *Advisory `json:"advisory,omitempty"`
}

// Select clamps date into the timeline and attaches an advisory when it
// predates the known imagery.
func (tl Timeline) Select(date time.Time) Selection {
	d := NormalizeDay(date)
	if d.Before(tl.Start) {
		d = tl.Start
	}
	if d.After(tl.End) {
		d = tl.End
	}

	sel := Selection{Date: d, Value: tl.Value(d)}
	if threshold := tl.ImageryThreshold(); d.Before(threshold) {
		sel.Advisory = &Advisory{
			Requested: d,
			Nearest:   threshold,
			Message: fmt.Sprintf("Historical imagery unavailable for %s. Showing nearest available: %s",
				d.Format("2006-01-02"), threshold.Format("2006-01-02")),
		}
	}
	return sel
}

// SelectValue selects the day at slider position value.
func (tl Timeline) SelectValue(value float64) Selection {
	return tl.Select(tl.DateAt(value))
}

// Marker is an available-imagery date placed on the slider.
type Marker struct {
	Date     time.Time `json:"date"`
	Position float64   `json:"position"`
}

// Markers places each available imagery date on the slider.
func (tl Timeline) Markers(available []time.Time) []Marker {
	out := make([]Marker, 0, len(available))
	for _, d := range available {
		out = append(out, Marker{Date: NormalizeDay(d), Position: tl.Value(d)})
	}
	return out
}

// HasImagery reports whether date is among the available days. An empty list
// means availability is unknown and every day is assumed to have imagery.
func HasImagery(date time.Time, available []time.Time) bool {
	if len(available) == 0 {
		return true
	}
	d := NormalizeDay(date)
	for _, a := range available {
		if NormalizeDay(a).Equal(d) {
			return true
		}
	}
	return false
}
