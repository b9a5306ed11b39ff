package msa_impact

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteTopLevelCSV writes the flat metric table.
func WriteTopLevelCSV(path string, diffs []MetricDiff) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Metric", "Without_MSA", "With_MSA", "Percentage_Difference"}); err != nil {
		return err
	}
	for _, d := range diffs {
		rec := []string{
			d.Metric,
			fmt.Sprintf("%g", d.Without),
			fmt.Sprintf("%g", d.With),
			fmt.Sprintf("%.4f", d.Pct),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteDetailedCSV writes the nested metric table with the parent metric and
// child key split out.
func WriteDetailedCSV(path string, diffs []MetricDiff) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"Metric", "Parent_Metric", "Child_Key", "Without_MSA", "With_MSA", "Percentage_Difference"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, d := range diffs {
		rec := []string{
			d.Metric,
			ParentKey(d.Metric),
			ChildKey(d.Metric),
			fmt.Sprintf("%g", d.Without),
			fmt.Sprintf("%g", d.With),
			fmt.Sprintf("%.4f", d.Pct),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
