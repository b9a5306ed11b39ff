package esm_embed

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"
)

func Run(args []string) {
	fs := flag.NewFlagSet("esm_embed", flag.ExitOnError)
	fastaFile := fs.String("fasta", "", "FASTA file to embed record by record")
	seq := fs.String("seq", "", "Single sequence to embed")
	endpoint := fs.String("endpoint", "http://localhost:8000", "Embedding service endpoint")
	model := fs.String("model", "esmc_300m", "Model name requested from the service")
	outDir := fs.String("out_dir", "embeddings", "Output directory for JSON documents")
	timeout := fs.Duration("timeout", 120*time.Second, "Per-request timeout")
	fs.Parse(args)

	if *fastaFile == "" && *seq == "" {
		fmt.Println("Error: provide -fasta or -seq.")
		fs.Usage()
		os.Exit(1)
	}
	if *fastaFile != "" && *seq != "" {
		fmt.Println("Error: -fasta and -seq are mutually exclusive.")
		os.Exit(1)
	}

	client := NewClient(*endpoint, *model, *timeout)
	fmt.Printf("Embedding service: %s\n", client.Name())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *seq != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			fmt.Println("Error creating output directory:", err)
			os.Exit(1)
		}
		rec, path, err := WriteRecord(ctx, client, "sequence", *seq, *outDir)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Sequence length: %d\n", rec.Length)
		fmt.Printf("Embedding shape: %d x %d\n", rec.Tokens, rec.Dims)
		fmt.Printf("Embedding saved as: %s\n", path)
		return
	}

	count, err := EmbedFasta(ctx, client, *fastaFile, *outDir)
	if err != nil {
		fmt.Printf("Error after %d records: %v\n", count, err)
		os.Exit(1)
	}
	fmt.Printf("Embedded %d records into %s\n", count, *outDir)
}
