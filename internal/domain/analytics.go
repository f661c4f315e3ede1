package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	// FlagScoreThreshold is the suspicion score at which a project is flagged
	// regardless of its label.
	FlagScoreThreshold = 60

	unknownContractor = "Unknown Contractor"
	minTrendYear      = 2000
	maxTrendYears     = 12
)

// IsFlagged reports whether the project belongs on the red-flag lists.
func IsFlagged(p Project) bool {
	return effectiveScore(p) >= FlagScoreThreshold || p.Risk.Flagged()
}

// Stats summarizes a project set for the dashboard header.
type Stats struct {
	TotalProjects     int     `json:"total_projects"`
	TotalBudget       float64 `json:"total_budget"`
	FlaggedProjects   int     `json:"flagged_projects"`
	FlaggedBudget     float64 `json:"flagged_budget"`
	FlaggedPercentage float64 `json:"flagged_percentage"`
	GeocodedProjects  int     `json:"geocoded_projects"`
}

// ComputeStats aggregates totals over projects. The flagged percentage is
// rounded to one decimal place.
func ComputeStats(projects []Project) Stats {
	var s Stats
	for _, p := range projects {
		s.TotalProjects++
		s.TotalBudget += p.Budget
		if IsFlagged(p) {
			s.FlaggedProjects++
			s.FlaggedBudget += p.Budget
		}
		if p.HasLocation() {
			s.GeocodedProjects++
		}
	}
	if s.TotalProjects > 0 {
		pct := float64(s.FlaggedProjects) / float64(s.TotalProjects) * 100
		s.FlaggedPercentage = math.Round(pct*10) / 10
	}
	return s
}

// ContractorCount is the number of projects awarded to one contractor.
type ContractorCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopContractors ranks contractors by project count, ties broken by name.
// A non-positive limit returns every contractor.
func TopContractors(projects []Project, limit int) []ContractorCount {
	counts := make(map[string]int)
	for _, p := range projects {
		counts[cleanContractor(p.Contractor)]++
	}

	out := make([]ContractorCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, ContractorCount{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b ContractorCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Name, b.Name)
	})
	return truncate(out, limit)
}

func cleanContractor(name string) string {
	name = strings.TrimSpace(strings.Replace(name, "_", " ", 1))
	if name == "" {
		return unknownContractor
	}
	return name
}

// TopRedFlags returns flagged projects by descending score.
func TopRedFlags(projects []Project, limit int) []Project {
	flagged := make([]Project, 0, len(projects))
	for _, p := range projects {
		if IsFlagged(p) {
			flagged = append(flagged, p)
		}
	}
	sortByScoreDesc(flagged)
	return truncate(flagged, limit)
}

// YearTrend counts projects per severity bucket for one start year. The H*
// fields are log-scaled bar heights in [0, 100] relative to the largest
// bucket count across all returned years.
type YearTrend struct {
	Year     int     `json:"year"`
	Critical int     `json:"critical"`
	High     int     `json:"high"`
	Low      int     `json:"low"`
	Total    int     `json:"total"`
	HCrit    float64 `json:"h_crit"`
	HHigh    float64 `json:"h_high"`
	HLow     float64 `json:"h_low"`
}

// RiskTrend buckets projects by start year. Projects without a start date or
// starting before 2000 are skipped; only the latest twelve years are kept.
func RiskTrend(projects []Project) []YearTrend {
	byYear := make(map[int]*YearTrend)
	for _, p := range projects {
		if p.StartDate == nil || p.StartDate.Year() < minTrendYear {
			continue
		}
		y := p.StartDate.Year()
		t, ok := byYear[y]
		if !ok {
			t = &YearTrend{Year: y}
			byYear[y] = t
		}
		switch BucketOf(p.Risk) {
		case BucketCritical:
			t.Critical++
		case BucketHigh:
			t.High++
		default:
			t.Low++
		}
		t.Total++
	}

	out := make([]YearTrend, 0, len(byYear))
	maxCount := 1
	for _, t := range byYear {
		out = append(out, *t)
		maxCount = max(maxCount, t.Critical, t.High, t.Low)
	}
	slices.SortFunc(out, func(a, b YearTrend) int { return a.Year - b.Year })

	maxLog := math.Log(float64(maxCount) + 1)
	for i := range out {
		out[i].HCrit = math.Log(float64(out[i].Critical)+1) / maxLog * 100
		out[i].HHigh = math.Log(float64(out[i].High)+1) / maxLog * 100
		out[i].HLow = math.Log(float64(out[i].Low)+1) / maxLog * 100
	}

	if len(out) > maxTrendYears {
		out = out[len(out)-maxTrendYears:]
	}
	return out
}

// Search returns projects whose id, name, contractor or place names contain
// query, case-insensitively. An empty query matches everything.
func Search(projects []Project, query string) []Project {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return projects
	}
	out := make([]Project, 0)
	for _, p := range projects {
		for _, field := range []string{p.ID, p.Name, p.Contractor, p.Location.Region, p.Location.Province, p.Location.Municipality} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ParseLimit reads a positive limit, falling back to def.
func ParseLimit(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
