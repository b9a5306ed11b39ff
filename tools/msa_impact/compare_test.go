package msa_impact

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentDiff(t *testing.T) {
	assert.InDelta(t, 25.0, PercentDiff(0.8, 1.0), 1e-9)
	assert.InDelta(t, -50.0, PercentDiff(0.8, 0.4), 1e-9)
	assert.True(t, math.IsInf(PercentDiff(0, 0.5), 1))
	assert.Equal(t, 0.0, PercentDiff(0, 0))
}

func confidenceFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const withoutJSON = `{
	"confidence_score": 0.80,
	"ptm": 0.70,
	"iptm": 0.50,
	"chains_ptm": {"0": 0.60, "1": 0.80},
	"pair_chains_iptm": {"0": {"0": 0.40, "1": 0.50}, "1": {"0": 0.50, "1": 0.60}}
}`

const withJSON = `{
	"confidence_score": 0.88,
	"ptm": 0.77,
	"iptm": 0.60,
	"chains_ptm": {"0": 0.66, "1": 0.72},
	"pair_chains_iptm": {"0": {"0": 0.50, "1": 0.50}, "1": {"0": 0.55, "1": 0.66}}
}`

func loadFixture(t *testing.T) Comparison {
	t.Helper()
	a, err := LoadConfidence(confidenceFixture(t, "without.json", withoutJSON))
	require.NoError(t, err)
	b, err := LoadConfidence(confidenceFixture(t, "with.json", withJSON))
	require.NoError(t, err)
	return Compare(a, b)
}

func TestCompareFlattensNestedMetrics(t *testing.T) {
	c := loadFixture(t)

	require.Len(t, c.TopLevel, 3)
	assert.Equal(t, "confidence_score", c.TopLevel[0].Metric)
	assert.InDelta(t, 10.0, c.TopLevel[0].Pct, 1e-9)

	chains := c.NestedWithParent("chains_ptm")
	require.Len(t, chains, 2)
	assert.Equal(t, "chains_ptm.0", chains[0].Metric)
	assert.InDelta(t, 10.0, chains[0].Pct, 1e-9)
	assert.InDelta(t, -10.0, chains[1].Pct, 1e-9)

	pairs := c.NestedWithParent("pair_chains_iptm")
	require.Len(t, pairs, 4)
	assert.Equal(t, "pair_chains_iptm.0.0", pairs[0].Metric)
	assert.InDelta(t, 25.0, pairs[0].Pct, 1e-9)
	assert.InDelta(t, 0.0, pairs[1].Pct, 1e-9)
}

func TestCompareIgnoresMetricsMissingFromOneSide(t *testing.T) {
	a := map[string]interface{}{"ptm": 0.5, "only_a": 0.1}
	b := map[string]interface{}{"ptm": 0.6, "only_b": 0.2}

	c := Compare(a, b)
	require.Len(t, c.TopLevel, 1)
	assert.Equal(t, "ptm", c.TopLevel[0].Metric)
}

func TestChildAndParentKeys(t *testing.T) {
	assert.Equal(t, "0.1", ChildKey("pair_chains_iptm.0.1"))
	assert.Equal(t, "pair_chains_iptm", ParentKey("pair_chains_iptm.0.1"))
	assert.Equal(t, "ptm", ChildKey("ptm"))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{10, -20, 30, 0})
	assert.InDelta(t, 5.0, s.Mean, 1e-9)
	assert.InDelta(t, 5.0, s.Median, 1e-9)
	assert.Equal(t, 30.0, s.Max)
	assert.Equal(t, -20.0, s.Min)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestPercentagesFiniteFilter(t *testing.T) {
	diffs := []MetricDiff{
		{Metric: "a", Pct: 10},
		{Metric: "b", Pct: math.Inf(1)},
	}
	assert.Len(t, Percentages(diffs, false), 2)
	assert.Equal(t, []float64{10}, Percentages(diffs, true))
}

func TestWriteCSVExports(t *testing.T) {
	c := loadFixture(t)
	dir := t.TempDir()

	topPath := filepath.Join(dir, "top.csv")
	require.NoError(t, WriteTopLevelCSV(topPath, c.TopLevel))
	data, err := os.ReadFile(topPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Metric,Without_MSA,With_MSA,Percentage_Difference")
	assert.Contains(t, string(data), "confidence_score,0.8,0.88,10.0000")

	detailPath := filepath.Join(dir, "detail.csv")
	require.NoError(t, WriteDetailedCSV(detailPath, c.Nested))
	data, err = os.ReadFile(detailPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pair_chains_iptm.0.1,pair_chains_iptm,0.1")
}

func TestWriteHTMLReport(t *testing.T) {
	c := loadFixture(t)
	prefix := filepath.Join(t.TempDir(), "report")

	require.NoError(t, WriteHTMLReport(prefix, c, "<svg>chart</svg>"))

	data, err := os.ReadFile(prefix + ".html")
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "<svg>chart</svg>")
	assert.Contains(t, html, "chains_ptm.0")
	assert.True(t, strings.Contains(html, "confidence_score"))
}
