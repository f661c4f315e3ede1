package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// projectNamespace seeds name-based IDs for records that arrive without one.
var projectNamespace = uuid.MustParse("5d6f2a0e-8f0b-4c59-9a3e-0f4c1b7d2e61")

// nonNumericRe strips currency symbols, thousands separators and spaces,
// e.g. "₱ 1,250,000.00" -> "1250000.00".
var nonNumericRe = regexp.MustCompile(`[^0-9.eE+-]+`)

// fieldAliases lists the accepted spellings of every canonical field, already
// folded by foldKey.
var fieldAliases = map[string][]string{
	"id":           {"id", "projectid"},
	"name":         {"name", "projectdescription", "description", "projectname"},
	"contractor":   {"contractor", "contractorname"},
	"risk":         {"risk", "risklevel", "maxseverity", "severity"},
	"score":        {"score", "suspicionscore", "riskscore"},
	"color":        {"color", "colortriage"},
	"latitude":     {"latitude", "lat"},
	"longitude":    {"longitude", "lng", "lon"},
	"budget":       {"budget", "contractcost", "cost"},
	"startdate":    {"startdate"},
	"enddate":      {"enddate", "completiondate"},
	"status":       {"status"},
	"region":       {"region"},
	"province":     {"province"},
	"municipality": {"municipality", "city"},
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseRawEvent decodes a RawEvent's value and normalizes it into a Project.
// Only undecodable payloads fail; every malformed field degrades to its zero
// value.
func ParseRawEvent(raw RawEvent) (Project, error) {
	var rec RawRecord
	if err := sonic.Unmarshal(raw.Value, &rec); err != nil {
		return Project{}, fmt.Errorf("parse raw event: %w", err)
	}
	if rec == nil {
		return Project{}, fmt.Errorf("parse raw event: payload is not an object")
	}

	p := NormalizeRecord(rec)
	p.RawPayload = raw.Value
	if p.ID == "" {
		p.ID = string(raw.Key)
	}
	if p.ID == "" {
		p.ID = generateID(p)
	}
	return p, nil
}

// NormalizeRecord resolves field synonyms and converts raw values into the
// canonical Project shape. The ID stays empty when the record carries none.
func NormalizeRecord(rec RawRecord) Project {
	fields := foldRecord(rec)

	label := stringValue(fields["risk"])
	risk := ParseRisk(label)
	color, ok := ParseColor(stringValue(fields["color"]))
	if !ok {
		color = risk.Color()
	}

	p := Project{
		ID:              stringValue(fields["id"]),
		Name:            stringValue(fields["name"]),
		Contractor:      stringValue(fields["contractor"]),
		Score:           ParseScore(fields["score"]),
		RiskLabel:       label,
		Risk:            risk,
		Color:           color,
		RiskDescription: risk.Description(),
		Geo:             parseGeo(fields["latitude"], fields["longitude"]),
		Budget:          budgetValue(fields["budget"]),
		StartDate:       dateValue(fields["startdate"]),
		EndDate:         dateValue(fields["enddate"]),
		Status:          stringValue(fields["status"]),
		Location: Location{
			Region:       stringValue(fields["region"]),
			Province:     stringValue(fields["province"]),
			Municipality: stringValue(fields["municipality"]),
		},
	}
	return p
}

// EnrichProject stamps derived fields that depend on the processing time.
func EnrichProject(p Project) Project {
	if p.Name == "" {
		p.Name = "Project " + p.ID
	}
	if p.Status == "" {
		if p.Risk.Flagged() {
			p.Status = "Flagged"
		} else {
			p.Status = "Normal"
		}
	}
	p.ProcessedAt = clock.Now()
	return p
}

// foldKey makes "start_date", "startDate" and "StartDate" compare equal.
func foldKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(k), "_", ""))
}

// foldRecord returns the record re-keyed by canonical field name. The first
// alias that carries a present value wins.
func foldRecord(rec RawRecord) map[string]any {
	folded := make(map[string]any, len(rec))
	for k, v := range rec {
		folded[foldKey(k)] = v
	}

	out := make(map[string]any, len(fieldAliases))
	for canonical, aliases := range fieldAliases {
		for _, alias := range aliases {
			if v, ok := folded[alias]; ok && !isAbsent(v) {
				out[canonical] = v
				break
			}
		}
	}
	return out
}

func isAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(t)
		return s == "" || strings.EqualFold(s, "N/A") || strings.EqualFold(s, "null")
	default:
		return false
	}
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if strings.EqualFold(s, "N/A") {
			return ""
		}
		return s
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// parseNumber accepts JSON numbers and numeric strings. NaN and infinities are
// reported as absent.
func parseNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseScore returns the suspicion score in v, 0 when absent or malformed.
func ParseScore(v any) float64 {
	f, ok := parseNumber(v)
	if !ok {
		return 0
	}
	return f
}

// budgetValue parses a contract cost that may carry currency formatting.
func budgetValue(v any) float64 {
	if f, ok := parseNumber(v); ok {
		return f
	}
	s, ok := v.(string)
	if !ok {
		return 0
	}
	f, ok := parseNumber(nonNumericRe.ReplaceAllString(s, ""))
	if !ok {
		return 0
	}
	return f
}

// dateValue parses the accepted date layouts. Unparseable dates are absent.
func dateValue(v any) *time.Time {
	s := stringValue(v)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return &t
		}
	}
	return nil
}

// generateID derives a stable name-based UUID so replays of the same record
// produce the same ID.
func generateID(p Project) string {
	start := ""
	if p.StartDate != nil {
		start = p.StartDate.Format("2006-01-02")
	}
	input := fmt.Sprintf("%s|%s|%s|%s", p.Name, p.Contractor, p.Location.Municipality, start)
	return uuid.NewSHA1(projectNamespace, []byte(input)).String()
}
