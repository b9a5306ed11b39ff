package hla_filter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFasta = `>HLA:HLA00001 A*01:01:01:01 365 bp
MAVMAPRTLLLLLSGALALT
>HLA:HLA00002 A*01:01:01:02N 365 bp
SHOULDNEVERMATCH
>HLA:HLA00401 A*02:01:01:01 365 bp
QTWAGSHSMRYF
>HLA:HLA00402 A*02:01:01:02 365 bp
SECONDHITIGNORED
>HLA:HLA01234 B*07:02:01 362 bp
DSDAASQRMEPR
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFilterFirstHits(t *testing.T) {
	fasta := writeFile(t, "hla_prot.fasta", testFasta)

	hits, err := FilterFirstHits(fasta, []string{"A*02:01", "B*07:02", "C*04:01"})
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// First record in file order wins, later candidates are ignored.
	assert.Equal(t, "A*02:01", hits[0].Allele)
	assert.Equal(t, "QTWAGSHSMRYF", hits[0].Sequence)
	assert.Equal(t, "B*07:02", hits[1].Allele)

	missing := Missing([]string{"A*02:01", "B*07:02", "C*04:01"}, hits)
	assert.Equal(t, []string{"C*04:01"}, missing)
}

func TestFilterSkipsNullAlleles(t *testing.T) {
	// The only A*01:01 record after null-allele exclusion is HLA00001.
	fasta := writeFile(t, "hla_prot.fasta", testFasta)

	hits, err := FilterFirstHits(fasta, []string{"A*01:01"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "MAVMAPRTLLLLLSGALALT", hits[0].Sequence)
}

func TestAlleleListStripsPrefixAndDedupes(t *testing.T) {
	table := &Table{
		Headers: []string{"HLA"},
		Rows: []map[string]string{
			{"HLA": "HLA-A*02:01"},
			{"HLA": "HLA-B*07:02"},
			{"HLA": "HLA-A*02:01"},
			{"HLA": ""},
		},
	}
	assert.Equal(t, []string{"A*02:01", "B*07:02"}, AlleleList(table))
}

func TestLoadTablesUnionsHeaders(t *testing.T) {
	csv1 := writeFile(t, "iedb.csv", "HLA,Peptide\nHLA-A*02:01,GILGFVFTL\n")
	csv2 := writeFile(t, "vdjdb.csv", "HLA,TCRb\nHLA-B*07:02,CASS\n")

	table, err := LoadTables([]string{csv1, csv2})
	require.NoError(t, err)
	assert.Equal(t, []string{"HLA", "Peptide", "TCRb"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Rows[1]["Peptide"])
	assert.Equal(t, "CASS", table.Rows[1]["TCRb"])
}

func TestMergeSequencesLeftJoin(t *testing.T) {
	table := &Table{
		Headers: []string{"HLA", "Peptide"},
		Rows: []map[string]string{
			{"HLA": "HLA-A*02:01", "Peptide": "GILGFVFTL"},
			{"HLA": "HLA-C*04:01", "Peptide": "NLVPMVATV"},
		},
	}
	MergeSequences(table, []Hit{{Allele: "A*02:01", Sequence: "QTWAGSHSMRYF"}})

	assert.Contains(t, table.Headers, "HLA_sequence")
	assert.Equal(t, "QTWAGSHSMRYF", table.Rows[0]["HLA_sequence"])
	assert.Equal(t, "", table.Rows[1]["HLA_sequence"])
}

func TestWriteFilteredFastaHeadersAreAlleleTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fasta")
	hits := []Hit{{Allele: "A*02:01", Sequence: "QTWAGSHSMRYF"}}
	require.NoError(t, WriteFilteredFasta(path, hits))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), ">A*02:01\n"))
	assert.Contains(t, string(data), "QTWAGSHSMRYF\n")
}
