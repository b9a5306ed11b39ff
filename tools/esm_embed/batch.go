package esm_embed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	common "boltz_buddy/utils"
)

// Record is the JSON document written per embedded sequence.
type Record struct {
	ID        string      `json:"id"`
	Model     string      `json:"model"`
	Length    int         `json:"length"`
	Tokens    int         `json:"tokens"`
	Dims      int         `json:"dims"`
	Embedding [][]float32 `json:"embedding"`
}

// safeFileName keeps FASTA IDs usable as file names. HLA allele tags like
// "A*01:01" carry characters most filesystems reject.
func safeFileName(id string) string {
	r := strings.NewReplacer("*", "_", ":", "_", "/", "_", "\\", "_", " ", "_", "|", "_")
	return r.Replace(id)
}

// recordID is the first whitespace-separated token of the FASTA header.
func recordID(header string) string {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// WriteRecord embeds one sequence and writes <out_dir>/<id>.json.
func WriteRecord(ctx context.Context, c *Client, id, seq, outDir string) (*Record, string, error) {
	res, err := c.Embed(ctx, seq)
	if err != nil {
		return nil, "", fmt.Errorf("failed to embed %s: %w", id, err)
	}
	tokens, dims := res.Dims()

	rec := &Record{
		ID:        id,
		Model:     c.model,
		Length:    len(seq),
		Tokens:    tokens,
		Dims:      dims,
		Embedding: res.Embedding,
	}

	path := filepath.Join(outDir, safeFileName(id)+".json")
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return nil, "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return rec, path, nil
}

// EmbedFasta embeds every record of a FASTA file, one JSON document per
// sequence, and returns the number embedded. The first failure stops the
// batch so a dead service is noticed immediately.
func EmbedFasta(ctx context.Context, c *Client, fastaPath, outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	count := 0
	err := common.StreamFasta(fastaPath, func(header, seq string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		id := recordID(header)
		if id == "" {
			id = fmt.Sprintf("record_%d", count)
		}
		_, path, err := WriteRecord(ctx, c, id, seq, outDir)
		if err != nil {
			return err
		}
		fmt.Printf("[EMBED] %s (%d aa) -> %s\n", id, len(seq), path)
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}
