package main

import (
	"fmt"
	"os"
	"strings"

	"boltz_buddy/benchmark"
	version_control "boltz_buddy/config"
	"boltz_buddy/tools/boltz_runs"
	"boltz_buddy/tools/color_table"
	"boltz_buddy/tools/csv2yaml"
	"boltz_buddy/tools/esm_embed"
	"boltz_buddy/tools/hla_filter"
	"boltz_buddy/tools/msa_impact"
	"boltz_buddy/tools/run_watch"
	"boltz_buddy/tools/structure_compare"
)

// printCustomHelp formats a custom help menu
func printCustomHelp() {
	fmt.Println(`Boltz Buddy - Custom Help Menu
Usage:
  boltz_buddy <tool> [options]

Preprocessing tools:
  csv2yaml		Convert a TCR-pMHC CSV into Boltz structural YAML
  hla_filter		Extract HLA allele sequences from an IMGT FASTA

Prediction tools:
  boltz_runs		Run Boltz over train/val/test chunks with safe resume
  run_watch		Live progress monitor for a running boltz_runs session
  esm_embed		Fetch ESM embeddings from an external embedding server

Analysis tools:
  msa_impact		Compare confidence metrics with vs without MSA
  color_table		Generate the chain color legend tables
  structure_compare	Build NGL/PyMOL native-vs-prediction comparisons

Global Flags:
  -h, -help		Show this help message
  -v, -version		Show version information

Benchmarking:
  -benchmark		Must be used in associtation with a tool.
			Displays computational resource usage and
			pertinent operating system information
  `,
	)
	os.Exit(0)
}

func printVersion() {
	fmt.Println("Boltz Buddy - Version Information Menu")
	fmt.Println("Central Executable:")
	fmt.Printf("\tBoltz Buddy:\t\t%s\n", version_control.Main_version)
	fmt.Printf("\nModular tools:\n")
	fmt.Printf("\tCSV to YAML:\t\t%s\n", version_control.CSV2YAML)
	fmt.Printf("\tHLA Filter:\t\t%s\n", version_control.HLA_Filter)
	fmt.Printf("\tBoltz Runs:\t\t%s\n", version_control.Boltz_Runs)
	fmt.Printf("\tRun Watch:\t\t%s\n", version_control.Run_Watch)
	fmt.Printf("\tESM Embed:\t\t%s\n", version_control.ESM_Embed)
	fmt.Printf("\tMSA Impact:\t\t%s\n", version_control.MSA_Impact)
	fmt.Printf("\tColor Table:\t\t%s\n", version_control.Color_Table)
	fmt.Printf("\tStructure Compare:\t%s\n", version_control.Structure_Compare)
	fmt.Printf("\tBenchmark:\t\t%s\n", version_control.Benchmark)

	fmt.Println("")

	os.Exit(0)
}

// Main controller
func main() {

	// If no arguments are given, show help
	if len(os.Args) < 2 {
		printCustomHelp()
	}

	// Scan for executible-specific help flags
	for _, arg := range os.Args[1:] {
		if len(os.Args) < 3 {
			if arg == "-h" || arg == "-help" {
				printCustomHelp()
			}
		}
	}

	// Version request
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "-version" {
			printVersion()
		}
	}

	toolName := os.Args[1]
	toolArgs := os.Args[2:]

	// Check for global --benchmark flag
	benchmarking := false
	var cleanedArgs []string
	for _, arg := range toolArgs {
		if arg == "-benchmark" {
			benchmarking = true
		} else {
			cleanedArgs = append(cleanedArgs, arg)
		}
	}

	// Tool execution wrapper
	run := func() {
		switch toolName {
		case "csv2yaml":
			csv2yaml.Run(cleanedArgs)
		case "hla_filter":
			hla_filter.Run(cleanedArgs)
		case "boltz_runs":
			boltz_runs.Run(cleanedArgs)
		case "run_watch":
			run_watch.Run(cleanedArgs)
		case "esm_embed":
			esm_embed.Run(cleanedArgs)
		case "msa_impact":
			msa_impact.Run(cleanedArgs)
		case "color_table":
			color_table.Run(cleanedArgs)
		case "structure_compare":
			structure_compare.Run(cleanedArgs)
		default:
			fmt.Printf("Unknown tool: %s\n", toolName)
			os.Exit(1)
		}
	}

	if benchmarking {
		label := fmt.Sprintf("boltz_buddy %s %s", toolName, strings.Join(cleanedArgs, " "))
		benchmark.Run(label, run)
	} else {
		run()
	}
}
