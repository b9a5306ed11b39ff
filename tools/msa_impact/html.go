package msa_impact

import (
	"fmt"
	"os"
	"strings"
)

func metricRows(diffs []MetricDiff) string {
	var b strings.Builder
	for _, d := range diffs {
		fmt.Fprintf(&b, "\t\t<tr><td>%s</td><td>%g</td><td>%g</td><td>%.2f%%</td></tr>\n",
			d.Metric, d.Without, d.With, d.Pct)
	}
	return b.String()
}

// WriteHTMLReport writes the metric tables and the embedded SVG chart.
func WriteHTMLReport(filename string, c Comparison, svgImpact string) error {
	f, err := os.Create(filename + ".html")
	if err != nil {
		return err
	}
	defer f.Close()

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<title>MSA Impact Report</title>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; padding: 20px; background-color: #f9f9f9; }
		h1 { color: #333; }
		table { border-collapse: collapse; margin-top: 20px; }
		th, td { padding: 8px 12px; border: 1px solid #ccc; text-align: left; }
		th { background-color: #eee; }
	</style>
</head>
<body>
	<h1>MSA Impact Report</h1>
	<h2>Top-Level Metrics</h2>
	<table>
		<tr><th>Metric</th><th>Without MSA</th><th>With MSA</th><th>Change</th></tr>
%s	</table>
	<h2>Chain Metrics (chains_ptm)</h2>
	<table>
		<tr><th>Metric</th><th>Without MSA</th><th>With MSA</th><th>Change</th></tr>
%s	</table>
	<h2>Pair-Chain Metrics (pair_chains_iptm)</h2>
	<table>
		<tr><th>Metric</th><th>Without MSA</th><th>With MSA</th><th>Change</th></tr>
%s	</table>
	<h2>Change Overview</h2>
	<div>%s</div>
</body>
</html>`,
		metricRows(c.TopLevel),
		metricRows(c.NestedWithParent("chains_ptm")),
		metricRows(c.NestedWithParent("pair_chains_iptm")),
		svgImpact,
	)

	_, err = f.WriteString(html)
	return err
}
