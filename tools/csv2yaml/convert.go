package csv2yaml

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Boltz structural YAML layout. Field order matters for readability of the
// generated files, so the structs mirror the emitted order exactly.

type BoltzDoc struct {
	Version int      `yaml:"version"`
	Targets []Target `yaml:"targets"`
}

type Target struct {
	Name      string     `yaml:"name"`
	Sequences []Sequence `yaml:"sequences"`
}

type Sequence struct {
	Protein Protein `yaml:"protein"`
}

type Protein struct {
	ID       string `yaml:"id"`
	Sequence string `yaml:"sequence"`
	MSA      string `yaml:"msa"`
}

// MissingChain is the placeholder sequence used when a TCR chain is absent.
const MissingChain = "X"

// Row is one complex from the binding CSV.
type Row struct {
	Peptide string
	HLA     string
	TCRa    string
	TCRb    string
}

// ReadRows parses the binding CSV. Column lookup is by header name so extra
// columns and column order do not matter.
func ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	get := func(rec []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(rec) {
			return ""
		}
		return rec[idx]
	}

	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		rows = append(rows, Row{
			Peptide: get(rec, "Peptide"),
			HLA:     get(rec, "HLA_sequence"),
			TCRa:    get(rec, "TCRa"),
			TCRb:    get(rec, "TCRb"),
		})
	}
	return rows, nil
}

// CleanHLA strips line breaks, commas and surrounding whitespace from an HLA
// sequence. The raw IMGT export carries wrapped lines inside single cells.
func CleanHLA(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

// BuildTargets converts CSV rows into Boltz targets. Rows without a peptide
// or HLA sequence are skipped; missing TCR chains become the placeholder.
// Target names keep the original row index so structures map back to rows.
func BuildTargets(rows []Row, namePrefix string) []Target {
	var targets []Target
	for idx, row := range rows {
		peptide := strings.TrimSpace(row.Peptide)
		mhc := CleanHLA(row.HLA)
		if peptide == "" || mhc == "" {
			continue
		}

		tcra := strings.TrimSpace(row.TCRa)
		if tcra == "" {
			tcra = MissingChain
		}
		tcrb := strings.TrimSpace(row.TCRb)
		if tcrb == "" {
			tcrb = MissingChain
		}

		targets = append(targets, Target{
			Name: fmt.Sprintf("%s_%d", namePrefix, idx),
			Sequences: []Sequence{
				{Protein: Protein{ID: "M", Sequence: mhc, MSA: "empty"}},
				{Protein: Protein{ID: "P", Sequence: peptide, MSA: "empty"}},
				{Protein: Protein{ID: "A", Sequence: tcra, MSA: "empty"}},
				{Protein: Protein{ID: "B", Sequence: tcrb, MSA: "empty"}},
			},
		})
	}
	return targets
}

// WriteYAML writes the combined document with all targets.
func WriteYAML(path string, targets []Target) error {
	doc := BoltzDoc{Version: 1, Targets: targets}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return nil
}

// WriteSplitYAML writes one single-target document per complex into dir,
// named pair_000.yaml, pair_001.yaml, ... This is the per-complex layout the
// batch runner consumes.
func WriteSplitYAML(dir string, targets []Target) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create split dir: %w", err)
	}
	for i, target := range targets {
		doc := BoltzDoc{Version: 1, Targets: []Target{target}}
		data, err := yaml.Marshal(&doc)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", target.Name, err)
		}
		path := fmt.Sprintf("%s/pair_%03d.yaml", dir, i)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
