package msa_impact

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func Run(args []string) {

	fs := flag.NewFlagSet("msa_impact", flag.ExitOnError) // Isolated flag set specifically for "msa_impact" subcommand

	withoutPath := fs.String("without", "", "Confidence JSON of the run without MSA")
	withPath := fs.String("with", "", "Confidence JSON of the run with MSA")
	outDir := fs.String("out_dir", "analysis", "Directory for CSV/HTML exports")
	htmlOut := fs.Bool("html", false, "Also write an HTML report with an embedded chart")

	err := fs.Parse(args)
	if err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	if *withoutPath == "" || *withPath == "" {
		fmt.Println("Error: both -without and -with are required")
		fs.Usage()
		os.Exit(1)
	}

	fmt.Println("Loading JSON files...")
	without, err := LoadConfidence(*withoutPath)
	if err != nil {
		fmt.Println("Failed to load confidence JSON:", err)
		os.Exit(1)
	}
	with, err := LoadConfidence(*withPath)
	if err != nil {
		fmt.Println("Failed to load confidence JSON:", err)
		os.Exit(1)
	}

	fmt.Printf("File 1 (without MSA): %s\n", *withoutPath)
	fmt.Printf("File 2 (with MSA): %s\n\n", *withPath)

	fmt.Println("Calculating percentage differences...")
	c := Compare(without, with)

	line := func() { fmt.Println("--------------------------------------------------") }
	banner := func(title string) {
		fmt.Println("\n" + "================================================================================")
		fmt.Println(title)
		fmt.Println("================================================================================")
	}

	banner("IMPACT OF MSA ON MODEL METRICS")

	fmt.Println("\nTOP-LEVEL METRICS:")
	line()
	for _, d := range c.TopLevel {
		fmt.Printf("%-25s | %8.2f%%\n", d.Metric, d.Pct)
	}

	fmt.Println("\nCHAIN-SPECIFIC METRICS (chains_ptm):")
	line()
	chains := c.NestedWithParent("chains_ptm")
	if len(chains) == 0 {
		fmt.Println("No chain-specific metrics found")
	}
	for _, d := range chains {
		fmt.Printf("Chain %-15s | %8.2f%%\n", ChildKey(d.Metric), d.Pct)
	}

	fmt.Println("\nPAIR-CHAIN METRICS (pair_chains_iptm):")
	line()
	pairs := c.NestedWithParent("pair_chains_iptm")
	if len(pairs) == 0 {
		fmt.Println("No pair-chain metrics found")
	}
	for _, d := range pairs {
		fmt.Printf("Pair %-15s | %8.2f%%\n", ChildKey(d.Metric), d.Pct)
	}

	banner("SUMMARY STATISTICS")

	top := Summarize(Percentages(c.TopLevel, false))
	fmt.Println("Top-level metrics:")
	fmt.Printf("  Mean change: %.2f%%\n", top.Mean)
	fmt.Printf("  Median change: %.2f%%\n", top.Median)
	fmt.Printf("  Max improvement: %.2f%%\n", top.Max)
	fmt.Printf("  Max decline: %.2f%%\n", top.Min)

	all := Summarize(append(Percentages(c.TopLevel, true), Percentages(c.Nested, true)...))
	fmt.Println("\nAll metrics:")
	fmt.Printf("  Mean change: %.2f%%\n", all.Mean)
	fmt.Printf("  Median change: %.2f%%\n", all.Median)
	fmt.Printf("  Max improvement: %.2f%%\n", all.Max)
	fmt.Printf("  Max decline: %.2f%%\n", all.Min)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Println("Failed to create output dir:", err)
		os.Exit(1)
	}

	topCSV := filepath.Join(*outDir, "msa_impact_top_level.csv")
	detailCSV := filepath.Join(*outDir, "msa_impact_detailed.csv")
	if err := WriteTopLevelCSV(topCSV, c.TopLevel); err != nil {
		fmt.Println("Failed to write top-level CSV:", err)
		os.Exit(1)
	}
	if err := WriteDetailedCSV(detailCSV, c.Nested); err != nil {
		fmt.Println("Failed to write detailed CSV:", err)
		os.Exit(1)
	}

	fmt.Println("\nResults saved to:")
	fmt.Printf("  %s\n", topCSV)
	fmt.Printf("  %s\n", detailCSV)

	if *htmlOut {
		svg, err := GenerateImpactBarChartSVG(c.TopLevel)
		if err != nil {
			fmt.Println("Failed to generate impact chart:", err)
			svg = "<p>Graph unavailable</p>"
		}
		htmlPath := filepath.Join(*outDir, "msa_impact")
		if err := WriteHTMLReport(htmlPath, c, svg); err != nil {
			fmt.Println("Failed to write HTML:", err)
			os.Exit(1)
		}
		fmt.Printf("  %s.html\n", htmlPath)
	}
}
