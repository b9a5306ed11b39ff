package hla_filter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	common "boltz_buddy/utils"
)

// Table is a loose CSV table keyed by header name. Concatenating inputs with
// different columns unions the headers; absent cells stay empty.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// LoadTables reads and concatenates the binding CSVs.
func LoadTables(paths []string) (*Table, error) {
	t := &Table{}
	seen := make(map[string]bool)

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV %s: %w", path, err)
		}

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		header, err := r.Read()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
		}
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
			if !seen[header[i]] {
				seen[header[i]] = true
				t.Headers = append(t.Headers, header[i])
			}
		}

		for {
			rec, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to read record of %s: %w", path, err)
			}
			row := make(map[string]string, len(header))
			for i, name := range header {
				if i < len(rec) {
					row[name] = rec[i]
				}
			}
			t.Rows = append(t.Rows, row)
		}
		f.Close()
	}
	return t, nil
}

// AlleleList collects the unique HLA alleles of the table with the "HLA-"
// prefix stripped, in first-appearance order.
func AlleleList(t *Table) []string {
	var alleles []string
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		hla := strings.TrimSpace(row["HLA"])
		if hla == "" {
			continue
		}
		allele := strings.TrimPrefix(hla, "HLA-")
		if !seen[allele] {
			seen[allele] = true
			alleles = append(alleles, allele)
		}
	}
	return alleles
}

// WriteAlleleList writes one allele per line.
func WriteAlleleList(path string, alleles []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create allele list: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, allele := range alleles {
		fmt.Fprintln(w, allele)
	}
	return w.Flush()
}

// Hit is one claimed FASTA record.
type Hit struct {
	Allele   string
	Sequence string
}

// FilterFirstHits streams the IMGT FASTA once and claims, for each allele,
// the first record whose header contains the allele name. Headers containing
// "N " are null alleles and never match. A single record may satisfy several
// alleles when names overlap.
func FilterFirstHits(fastaPath string, alleles []string) ([]Hit, error) {
	remaining := make(map[string]bool, len(alleles))
	for _, a := range alleles {
		remaining[a] = true
	}

	var hits []Hit
	err := common.StreamFasta(fastaPath, func(header, seq string) error {
		if len(remaining) == 0 {
			return nil
		}
		if strings.Contains(header, "N ") {
			return nil
		}
		for _, allele := range alleles {
			if remaining[allele] && strings.Contains(header, allele) {
				delete(remaining, allele)
				hits = append(hits, Hit{Allele: allele, Sequence: seq})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// WriteFilteredFasta writes the claimed records with the header replaced by
// just the allele tag.
func WriteFilteredFasta(path string, hits []Hit) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create filtered FASTA: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, hit := range hits {
		if err := common.WriteFastaRecord(w, hit.Allele, hit.Sequence); err != nil {
			return err
		}
	}
	return w.Flush()
}

// MergeSequences left-joins the claimed sequences back onto the table as an
// HLA_sequence column, matching on the full "HLA-<allele>" name.
func MergeSequences(t *Table, hits []Hit) {
	seqByName := make(map[string]string, len(hits))
	for _, hit := range hits {
		seqByName["HLA-"+hit.Allele] = hit.Sequence
	}

	t.Headers = append(t.Headers, "HLA_sequence")
	for _, row := range t.Rows {
		row["HLA_sequence"] = seqByName[strings.TrimSpace(row["HLA"])]
	}
}

// WriteTable writes the table back out as CSV.
func WriteTable(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Headers); err != nil {
		return err
	}
	rec := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i, name := range t.Headers {
			rec[i] = row[name]
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Missing reports the alleles that never matched a FASTA record.
func Missing(alleles []string, hits []Hit) []string {
	claimed := make(map[string]bool, len(hits))
	for _, hit := range hits {
		claimed[hit.Allele] = true
	}
	var missing []string
	for _, allele := range alleles {
		if !claimed[allele] {
			missing = append(missing, allele)
		}
	}
	return missing
}
