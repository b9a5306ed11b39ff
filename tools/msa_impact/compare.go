package msa_impact

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// MetricDiff is one compared metric. Nested metrics carry dotted names
// (chains_ptm.0, pair_chains_iptm.0.1).
type MetricDiff struct {
	Metric  string
	Without float64
	With    float64
	Pct     float64
}

// Comparison separates flat metrics from nested ones.
type Comparison struct {
	TopLevel []MetricDiff
	Nested   []MetricDiff
}

// LoadConfidence reads a Boltz confidence JSON into a generic map.
func LoadConfidence(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// PercentDiff is the relative change from a to b in percent. A zero baseline
// with a nonzero counterpart yields +Inf.
func PercentDiff(a, b float64) float64 {
	if a == 0 {
		if b != 0 {
			return math.Inf(1)
		}
		return 0
	}
	return (b - a) / a * 100
}

// Compare walks both metric maps and computes percentage differences for
// every metric present in both, recursing into nested maps with dotted names.
func Compare(without, with map[string]interface{}) Comparison {
	var c Comparison
	compareMaps(without, with, "", &c)

	sort.Slice(c.TopLevel, func(i, j int) bool { return c.TopLevel[i].Metric < c.TopLevel[j].Metric })
	sort.Slice(c.Nested, func(i, j int) bool { return c.Nested[i].Metric < c.Nested[j].Metric })
	return c
}

func compareMaps(a, b map[string]interface{}, prefix string, c *Comparison) {
	for key, av := range a {
		bv, ok := b[key]
		if !ok {
			continue
		}
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch avt := av.(type) {
		case map[string]interface{}:
			if bvt, ok := bv.(map[string]interface{}); ok {
				compareMaps(avt, bvt, name, c)
			}
		case float64:
			bf, ok := bv.(float64)
			if !ok {
				continue
			}
			diff := MetricDiff{Metric: name, Without: avt, With: bf, Pct: PercentDiff(avt, bf)}
			if prefix == "" {
				c.TopLevel = append(c.TopLevel, diff)
			} else {
				c.Nested = append(c.Nested, diff)
			}
		}
	}
}

// NestedWithParent returns the nested diffs under one parent metric.
func (c Comparison) NestedWithParent(parent string) []MetricDiff {
	var out []MetricDiff
	for _, d := range c.Nested {
		if strings.HasPrefix(d.Metric, parent+".") {
			out = append(out, d)
		}
	}
	return out
}

// ChildKey strips the parent metric from a dotted name.
func ChildKey(metric string) string {
	if i := strings.Index(metric, "."); i >= 0 {
		return metric[i+1:]
	}
	return metric
}

// ParentKey returns the leading component of a dotted name.
func ParentKey(metric string) string {
	if i := strings.Index(metric, "."); i >= 0 {
		return metric[:i]
	}
	return metric
}

// Summary holds the aggregate change statistics of a diff set.
type Summary struct {
	Mean   float64
	Median float64
	Max    float64
	Min    float64
}

// Summarize computes mean/median/extremes over the percentage differences.
func Summarize(diffs []float64) Summary {
	if len(diffs) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), diffs...)
	sort.Float64s(sorted)
	return Summary{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
		Min:    sorted[0],
	}
}

// Percentages extracts the finite percentage values of a diff list.
// Infinite changes (zero baselines) are dropped from aggregate statistics.
func Percentages(diffs []MetricDiff, finiteOnly bool) []float64 {
	var out []float64
	for _, d := range diffs {
		if finiteOnly && math.IsInf(d.Pct, 0) {
			continue
		}
		out = append(out, d.Pct)
	}
	return out
}
