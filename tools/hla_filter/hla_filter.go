package hla_filter

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

type multiString []string

func (s *multiString) String() string {
	return strings.Join(*s, ",")
}

func (s *multiString) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func Run(args []string) {
	fs := flag.NewFlagSet("hla_filter", flag.ExitOnError)

	var csvs multiString
	fs.Var(&csvs, "csv", "Binding CSV with an HLA column (can repeat -csv multiple times)")
	fasta := fs.String("fasta", "", "IMGT/HLA protein FASTA (hla_prot.fasta)")
	outFasta := fs.String("out_fasta", "hla_prot_filtered_firsthits.fasta", "Filtered FASTA output")
	outCSV := fs.String("out_csv", "full_positives_hla_seq.csv", "Merged CSV output with HLA_sequence column")
	listOut := fs.String("list_out", "hla_list.txt", "Allele list output")

	err := fs.Parse(args)
	if err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	if len(csvs) == 0 || *fasta == "" {
		fmt.Println("Usage: -csv <file> [-csv <file> ...] -fasta <file> [-out_fasta <file>] [-out_csv <file>]")
		os.Exit(1)
	}

	table, err := LoadTables(csvs)
	if err != nil {
		fmt.Println("Failed to load binding CSVs:", err)
		os.Exit(1)
	}

	alleles := AlleleList(table)
	if len(alleles) == 0 {
		fmt.Println("Error: no HLA alleles found in the input CSVs")
		os.Exit(1)
	}
	if err := WriteAlleleList(*listOut, alleles); err != nil {
		fmt.Println("Failed to write allele list:", err)
		os.Exit(1)
	}

	hits, err := FilterFirstHits(*fasta, alleles)
	if err != nil {
		fmt.Println("Failed to filter FASTA:", err)
		os.Exit(1)
	}
	if err := WriteFilteredFasta(*outFasta, hits); err != nil {
		fmt.Println("Failed to write filtered FASTA:", err)
		os.Exit(1)
	}

	MergeSequences(table, hits)
	if err := WriteTable(*outCSV, table); err != nil {
		fmt.Println("Failed to write merged CSV:", err)
		os.Exit(1)
	}

	fmt.Printf("Number of HLAs in list: %d\n", len(alleles))
	fmt.Printf("Number of sequences written: %d\n", len(hits))

	missing := Missing(alleles, hits)
	if len(missing) > 0 {
		fmt.Println("\nMissing HLAs:")
		for _, allele := range missing {
			fmt.Println(allele)
		}
	}
	fmt.Printf("\nWrote filtered FASTA: %s\n", *outFasta)
	fmt.Printf("Wrote merged CSV: %s\n", *outCSV)
}
