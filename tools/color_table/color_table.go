package color_table

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ChainColor is one row of the native-vs-prediction color scheme.
type ChainColor struct {
	Chain      string
	Native     string
	Boltz      string
	NativeDesc string
	BoltzDesc  string
}

// Scheme is the fixed five-chain color coding used across all structure
// comparison outputs. The PyMOL replica script uses the same pairs.
var Scheme = []ChainColor{
	{"A", "forest", "lime", "Main TCR α chain", "Predicted TCR α chain"},
	{"B", "cyan", "yellow", "Main TCR β chain", "Predicted TCR β chain"},
	{"C", "blue", "grey", "Short peptide", "Predicted peptide"},
	{"D", "green", "orange", "HLA-A*11:01 α chain", "Predicted HLA α chain"},
	{"E", "purple", "pink", "HLA-A*11:01 β2m", "Predicted HLA β2m"},
}

// ColorHex maps the PyMOL color names of the scheme to hex values for
// rendered swatches.
var ColorHex = map[string]string{
	"forest": "#228B22",
	"cyan":   "#00FFFF",
	"blue":   "#0000FF",
	"green":  "#008000",
	"purple": "#800080",
	"lime":   "#00FF00",
	"yellow": "#FFFF00",
	"grey":   "#808080",
	"orange": "#FFA500",
	"pink":   "#FFC0CB",
}

const tableTitle = "Molecular Structure Color Coding: Native PDB vs Boltz Prediction"

// WriteCSV writes the color table in data form.
func WriteCSV(path string, scheme []ChainColor) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Chain", "Native Color", "Boltz Color", "Native Description", "Boltz Description"}); err != nil {
		return err
	}
	for _, row := range scheme {
		if err := w.Write([]string{row.Chain, row.Native, row.Boltz, row.NativeDesc, row.BoltzDesc}); err != nil {
			return err
		}
	}
	return nil
}

// LaTeXTable renders the publication form of the table.
func LaTeXTable(scheme []ChainColor) string {
	var b strings.Builder
	b.WriteString(`\begin{table}[h]
\centering
\caption{` + tableTitle + `}
\label{tab:structure_colors}
\begin{tabular}{|c|c|c|p{3cm}|p{3cm}|}
\hline
\textbf{Chain} & \textbf{Native Color} & \textbf{Boltz Color} & \textbf{Native Description} & \textbf{Boltz Description} \\
\hline
`)
	for _, row := range scheme {
		fmt.Fprintf(&b, "%s & %s & %s & %s & %s \\\\\n",
			row.Chain, row.Native, row.Boltz, row.NativeDesc, row.BoltzDesc)
	}
	b.WriteString(`\hline
\end{tabular}
\end{table}
`)
	return b.String()
}

// TextTable renders the fixed-width documentation form of the table.
func TextTable(scheme []ChainColor) string {
	var b strings.Builder
	b.WriteString(tableTitle + "\n")
	b.WriteString(strings.Repeat("=", 80) + "\n\n")
	fmt.Fprintf(&b, "%-6s %-12s %-12s %-25s %-25s\n", "Chain", "Native", "Boltz", "Native Description", "Boltz Description")
	b.WriteString(strings.Repeat("-", 80) + "\n")
	for _, row := range scheme {
		fmt.Fprintf(&b, "%-6s %-12s %-12s %-25s %-25s\n",
			row.Chain, row.Native, row.Boltz, row.NativeDesc, row.BoltzDesc)
	}
	return b.String()
}

func Run(args []string) {
	fs := flag.NewFlagSet("color_table", flag.ExitOnError)

	outDir := fs.String("out_dir", "color_tables", "Output directory for all table formats")

	err := fs.Parse(args)
	if err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Println("Failed to create output dir:", err)
		os.Exit(1)
	}

	csvPath := filepath.Join(*outDir, "color_label_table.csv")
	if err := WriteCSV(csvPath, Scheme); err != nil {
		fmt.Println("Failed to write CSV table:", err)
		os.Exit(1)
	}
	fmt.Printf("CSV table saved as: %s\n", csvPath)

	texPath := filepath.Join(*outDir, "color_table_latex.tex")
	if err := os.WriteFile(texPath, []byte(LaTeXTable(Scheme)), 0o644); err != nil {
		fmt.Println("Failed to write LaTeX table:", err)
		os.Exit(1)
	}
	fmt.Printf("LaTeX table saved as: %s\n", texPath)

	txtPath := filepath.Join(*outDir, "color_table_text.txt")
	if err := os.WriteFile(txtPath, []byte(TextTable(Scheme)), 0o644); err != nil {
		fmt.Println("Failed to write text table:", err)
		os.Exit(1)
	}
	fmt.Printf("Text table saved as: %s\n", txtPath)

	pngPath := filepath.Join(*outDir, "color_table_swatches.png")
	if err := RenderPNG(pngPath, Scheme); err != nil {
		fmt.Println("Swatch table creation failed:", err)
	} else {
		fmt.Printf("Swatch table saved as: %s\n", pngPath)
	}
}
