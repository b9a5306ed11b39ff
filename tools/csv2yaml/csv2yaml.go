package csv2yaml

import (
	"flag"
	"fmt"
	"os"
)

func Run(args []string) {

	fs := flag.NewFlagSet("csv2yaml", flag.ExitOnError) // Isolated flag set specifically for "csv2yaml" subcommand

	inCSV := fs.String("in_csv", "", "Binding CSV with Peptide, HLA_sequence, TCRa, TCRb columns")
	outYAML := fs.String("out_yaml", "data_for_boltz.yaml", "Combined Boltz YAML output path")
	splitDir := fs.String("split_dir", "", "Write one pair_NNN.yaml per complex into this directory instead")
	prefix := fs.String("name_prefix", "example", "Prefix for generated target names")

	err := fs.Parse(args)
	if err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	if len(fs.Args()) > 0 {
		fmt.Printf("Unrecognized arguments: %v\n", fs.Args())
		fmt.Println("Use -h to view valid flags.")
		os.Exit(1)
	}

	if *inCSV == "" {
		fmt.Println("Error: in_csv is required")
		fs.Usage()
		os.Exit(1)
	}

	rows, err := ReadRows(*inCSV)
	if err != nil {
		fmt.Println("Failed to read CSV:", err)
		os.Exit(1)
	}

	targets := BuildTargets(rows, *prefix)
	if len(targets) == 0 {
		fmt.Println("Error: no usable rows (every row missing Peptide or HLA_sequence)")
		os.Exit(1)
	}
	skipped := len(rows) - len(targets)
	if skipped > 0 {
		fmt.Printf("Skipped %d row(s) without Peptide or HLA_sequence\n", skipped)
	}

	if *splitDir != "" {
		if err := WriteSplitYAML(*splitDir, targets); err != nil {
			fmt.Println("Failed to write split YAMLs:", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %d per-complex Boltz YAMLs to: %s\n", len(targets), *splitDir)
		return
	}

	if err := WriteYAML(*outYAML, targets); err != nil {
		fmt.Println("Failed to write YAML:", err)
		os.Exit(1)
	}
	fmt.Printf("Saved structural Boltz YAML to: %s\n", *outYAML)
}
