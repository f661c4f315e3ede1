package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(id string, label string, score float64) Project {
	return Project{ID: id, RiskLabel: label, Risk: ParseRisk(label), Score: score}
}

func ids(ps []Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		label    string
		expected Bucket
	}{
		{"CRITICAL", BucketCritical},
		{"AI CRITICAL", BucketCritical},
		{"critical", BucketCritical},
		{"High", BucketHigh},
		{"SUSPICIOUS", BucketHigh},
		{"Medium", BucketLow},
		{"LOW", BucketLow},
		{"UNKNOWN", BucketLow},
		{"Indeterminate", BucketLow},
		{"", BucketLow},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, BucketOf(ParseRisk(tt.label)))
		})
	}
}

func TestGroupBySeverity_Empty(t *testing.T) {
	g := GroupBySeverity(nil)

	assert.NotNil(t, g.Critical)
	assert.NotNil(t, g.High)
	assert.NotNil(t, g.Low)
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.RenderOrder())
	assert.Empty(t, RenderOrder([]Project{}))
}

func TestGroupBySeverity_SortsByDescendingScore(t *testing.T) {
	in := []Project{
		project("c1", "CRITICAL", 81),
		project("h1", "HIGH", 61),
		project("c2", "AI CRITICAL", 99),
		project("l1", "LOW", 10),
		project("h2", "HIGH", 75),
		project("l2", "MEDIUM", 40),
	}

	g := GroupBySeverity(in)

	assert.Equal(t, []string{"c2", "c1"}, ids(g.Critical))
	assert.Equal(t, []string{"h2", "h1"}, ids(g.High))
	assert.Equal(t, []string{"l2", "l1"}, ids(g.Low))
}

func TestGroupBySeverity_StableForEqualScores(t *testing.T) {
	in := []Project{
		project("a", "HIGH", 70),
		project("b", "HIGH", 70),
		project("c", "HIGH", 70),
	}

	g := GroupBySeverity(in)

	assert.Equal(t, []string{"a", "b", "c"}, ids(g.High))
}

func TestGroupBySeverity_NaNScoreCountsAsZero(t *testing.T) {
	in := []Project{
		project("nan", "LOW", math.NaN()),
		project("five", "LOW", 5),
		project("zero", "LOW", 0),
	}

	g := GroupBySeverity(in)

	assert.Equal(t, []string{"five", "nan", "zero"}, ids(g.Low))
}

func TestGroupBySeverity_DoesNotMutateInput(t *testing.T) {
	in := []Project{project("a", "LOW", 1), project("b", "LOW", 2)}

	_ = GroupBySeverity(in)

	assert.Equal(t, []string{"a", "b"}, ids(in))
}

func TestRenderOrder_LowThenHighThenCritical(t *testing.T) {
	a := project("A", "LOW", 20)
	b := project("B", "HIGH", 65)
	c := project("C", "CRITICAL", 90)

	permutations := [][]Project{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, in := range permutations {
		assert.Equal(t, []string{"A", "B", "C"}, ids(RenderOrder(in)))
	}
}

func TestRenderOrder_ExampleScenario(t *testing.T) {
	in := []Project{
		project("low", "LOW", 5),
		project("ai-critical", "AI CRITICAL", 95),
		project("high", "HIGH", 70),
	}

	out := RenderOrder(in)

	labels := make([]string, len(out))
	for i, p := range out {
		labels[i] = p.RiskLabel
	}
	if diff := cmp.Diff([]string{"LOW", "HIGH", "AI CRITICAL"}, labels); diff != "" {
		t.Fatalf("render order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOrder_UnknownLabelsAreKept(t *testing.T) {
	in := []Project{
		project("x", "", 50),
		project("y", "weird", 10),
		project("z", "CRITICAL", 90),
	}

	out := RenderOrder(in)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"x", "y", "z"}, ids(out))
}

func TestMapMarkers_SkipsProjectsWithoutLocation(t *testing.T) {
	located := project("located", "HIGH", 70)
	located.Geo = &Geo{Lat: 14.6, Lon: 121.0}
	missing := project("missing", "CRITICAL", 99)
	broken := project("broken", "CRITICAL", 95)
	broken.Geo = &Geo{Lat: 91, Lon: 10}

	out := MapMarkers([]Project{missing, located, broken})

	assert.Equal(t, []string{"located"}, ids(out))
}
