// Common package contains commonly used functions that benefit multiple tools
// Exporting these functions from the Common package reduces redundant code
package common

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// FastaHandler is called once per FASTA record. The header is passed without
// the leading '>' but otherwise untouched, so tools can match on the full
// description line. The sequence has line breaks and surrounding space removed.
type FastaHandler func(header string, seq string) error

// StreamFasta is a memory-efficient reader for FASTA files of any size.
// It automatically detects and decompresses Gzipped files and calls a
// user-defined handler function for each record.
func StreamFasta(file string, handler FastaHandler) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	buf := make([]byte, 2)
	if _, err := f.Read(buf); err == nil && buf[0] == 0x1F && buf[1] == 0x8B {
		f.Seek(0, io.SeekStart)
		gr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("failed to open gzip reader: %w", err)
		}
		defer gr.Close()
		reader = gr
	} else {
		f.Seek(0, io.SeekStart)
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var currentHeader string
	var seqBuilder strings.Builder
	sawRecord := false

	flush := func() error {
		if !sawRecord {
			return nil
		}
		if err := handler(currentHeader, seqBuilder.String()); err != nil {
			return fmt.Errorf("handler error (%s): %w", currentHeader, err)
		}
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return err
			}
			currentHeader = strings.TrimPrefix(line, ">")
			seqBuilder.Reset()
			sawRecord = true
		} else if sawRecord {
			seqBuilder.WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return flush()
}

// WriteFastaRecord writes one record with the sequence wrapped at 60 columns.
func WriteFastaRecord(w io.Writer, header, seq string) error {
	if _, err := fmt.Fprintf(w, ">%s\n", header); err != nil {
		return err
	}
	for i := 0; i < len(seq); i += 60 {
		end := i + 60
		if end > len(seq) {
			end = len(seq)
		}
		if _, err := fmt.Fprintln(w, seq[i:end]); err != nil {
			return err
		}
	}
	return nil
}
