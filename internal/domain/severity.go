package domain

import (
	"math"
	"slices"
)

// Bucket is the coarse severity class used for map layers and charts.
type Bucket string

const (
	BucketLow      Bucket = "low"
	BucketHigh     Bucket = "high"
	BucketCritical Bucket = "critical"
)

// BucketOf returns the severity bucket for a risk. MEDIUM, LOW and
// INDETERMINATE all fall to the low bucket.
func BucketOf(r Risk) Bucket {
	switch r {
	case RiskCritical:
		return BucketCritical
	case RiskHigh:
		return BucketHigh
	default:
		return BucketLow
	}
}

// Groups holds projects split by severity bucket, each sorted by descending
// score.
type Groups struct {
	Critical []Project `json:"critical"`
	High     []Project `json:"high"`
	Low      []Project `json:"low"`
}

// Len returns the number of projects across all buckets.
func (g Groups) Len() int {
	return len(g.Critical) + len(g.High) + len(g.Low)
}

// RenderOrder flattens the groups in draw order: low, high, then critical, so
// the most severe markers are drawn last and sit on top.
func (g Groups) RenderOrder() []Project {
	out := make([]Project, 0, g.Len())
	out = append(out, g.Low...)
	out = append(out, g.High...)
	out = append(out, g.Critical...)
	return out
}

// GroupBySeverity splits projects into severity buckets. Within a bucket,
// projects are ordered by descending score; equal scores keep their input
// order. The input slice is not modified.
func GroupBySeverity(projects []Project) Groups {
	g := Groups{
		Critical: []Project{},
		High:     []Project{},
		Low:      []Project{},
	}
	for _, p := range projects {
		switch BucketOf(p.Risk) {
		case BucketCritical:
			g.Critical = append(g.Critical, p)
		case BucketHigh:
			g.High = append(g.High, p)
		default:
			g.Low = append(g.Low, p)
		}
	}
	sortByScoreDesc(g.Critical)
	sortByScoreDesc(g.High)
	sortByScoreDesc(g.Low)
	return g
}

// RenderOrder returns projects in map draw order.
func RenderOrder(projects []Project) []Project {
	return GroupBySeverity(projects).RenderOrder()
}

// MapMarkers returns the projects that have valid coordinates, in draw order.
// Projects without a location are skipped here but remain valid everywhere
// else.
func MapMarkers(projects []Project) []Project {
	located := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.HasLocation() {
			located = append(located, p)
		}
	}
	return RenderOrder(located)
}

// effectiveScore treats NaN as 0 so a bad score can never poison the sort.
func effectiveScore(p Project) float64 {
	if math.IsNaN(p.Score) {
		return 0
	}
	return p.Score
}

func sortByScoreDesc(ps []Project) {
	slices.SortStableFunc(ps, func(a, b Project) int {
		sa, sb := effectiveScore(a), effectiveScore(b)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
}
