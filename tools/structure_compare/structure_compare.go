package structure_compare

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func Run(args []string) {
	fs := flag.NewFlagSet("structure_compare", flag.ExitOnError)
	boltzCIF := fs.String("boltz", "", "Predicted structure CIF file (required)")
	nativeCIF := fs.String("native", "", "Native PDB structure CIF file (required)")
	outDir := fs.String("out_dir", "structure_comparison", "Output directory")
	runPyMOL := fs.Bool("pymol", false, "Run 'pymol -c' on the generated script to render PNGs")
	fs.Parse(args)

	if *boltzCIF == "" || *nativeCIF == "" {
		fmt.Println("Error: -boltz and -native CIF files are required.")
		fs.Usage()
		os.Exit(1)
	}

	if _, err := os.Stat(*boltzCIF); err != nil {
		fmt.Printf("Error: predicted CIF file not found at %s\n", *boltzCIF)
		os.Exit(1)
	}
	if _, err := os.Stat(*nativeCIF); err != nil {
		fmt.Printf("Error: native CIF file not found at %s\n", *nativeCIF)
		os.Exit(1)
	}

	fmt.Printf("Predicted structure: %s\n", filepath.Base(*boltzCIF))
	fmt.Printf("Native structure: %s\n", filepath.Base(*nativeCIF))

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Println("Error creating output directory:", err)
		os.Exit(1)
	}

	htmlPath, err := WriteComparisonHTML(*boltzCIF, *nativeCIF, *outDir)
	if err != nil {
		fmt.Println("Error writing comparison page:", err)
		os.Exit(1)
	}
	fmt.Printf("Comparison HTML saved as: %s\n", htmlPath)

	scriptPath, err := WritePyMOLScript(*nativeCIF, *boltzCIF, *outDir)
	if err != nil {
		fmt.Println("Error writing PyMOL script:", err)
		os.Exit(1)
	}
	fmt.Printf("PyMOL alignment script saved as: %s\n", scriptPath)

	switch {
	case *runPyMOL && PyMOLAvailable():
		fmt.Println("Running PyMOL alignment script...")
		if err := RunPyMOL(scriptPath); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Renders written under %s\n", *outDir)
	case *runPyMOL:
		fmt.Printf("Warning: no pymol binary on PATH; render manually with: pymol -c %s\n", scriptPath)
	default:
		fmt.Printf("Render manually with: pymol -c %s\n", scriptPath)
	}

	fmt.Printf("Open %s in a web browser for the interactive view.\n", htmlPath)
}
