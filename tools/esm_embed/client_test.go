package esm_embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService answers /api/embed with one 4-dim vector per residue plus
// BOS and EOS rows, the shape the real service produces.
func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embed", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Sequence == "" {
			http.Error(w, "missing sequence", http.StatusBadRequest)
			return
		}

		emb := make([][]float32, len(req.Sequence)+2)
		for i := range emb {
			emb[i] = []float32{0.1, 0.2, 0.3, 0.4}
		}
		json.NewEncoder(w).Encode(embedResponse{Embedding: emb})
	}))
}

func TestEmbedShape(t *testing.T) {
	srv := fakeService(t)
	defer srv.Close()

	c := NewClient(srv.URL, "esmc_300m", 5*time.Second)
	res, err := c.Embed(context.Background(), "AACGTATTTA")
	require.NoError(t, err)

	tokens, dims := res.Dims()
	assert.Equal(t, 12, tokens)
	assert.Equal(t, 4, dims)
}

func TestEmbedServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.Embed(context.Background(), "PEPTIDE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestEmbedRejectsEmptySequence(t *testing.T) {
	c := NewClient("http://localhost:1", "", time.Second)
	_, err := c.Embed(context.Background(), "")
	assert.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "", 0)
	assert.Equal(t, "http://localhost:8000 (esmc_300m)", c.Name())
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "A_01_01", safeFileName("A*01:01"))
	assert.Equal(t, "pair_001", safeFileName("pair_001"))
	assert.Equal(t, "sp_P01892_HLA", safeFileName("sp|P01892|HLA"))
}

func TestWriteRecord(t *testing.T) {
	srv := fakeService(t)
	defer srv.Close()

	dir := t.TempDir()
	c := NewClient(srv.URL, "esmc_300m", 5*time.Second)

	rec, path, err := WriteRecord(context.Background(), c, "B*07:02", "MAVMAPRTL", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "B_07_02.json"), path)
	assert.Equal(t, 9, rec.Length)
	assert.Equal(t, 11, rec.Tokens)
	assert.Equal(t, 4, rec.Dims)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "B*07:02", got.ID)
	assert.Equal(t, "esmc_300m", got.Model)
	assert.Len(t, got.Embedding, 11)
}

func TestEmbedFasta(t *testing.T) {
	srv := fakeService(t)
	defer srv.Close()

	dir := t.TempDir()
	fasta := filepath.Join(dir, "in.fasta")
	content := ">A*01:01 some description\nMAVMAPRTLLLLSG\n>pep1\nSIINFEKL\n"
	require.NoError(t, os.WriteFile(fasta, []byte(content), 0644))

	outDir := filepath.Join(dir, "out")
	c := NewClient(srv.URL, "esmc_300m", 5*time.Second)

	count, err := EmbedFasta(context.Background(), c, fasta, outDir)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.FileExists(t, filepath.Join(outDir, "A_01_01.json"))
	assert.FileExists(t, filepath.Join(outDir, "pep1.json"))
}

func TestEmbedFastaStopsOnFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "out of memory", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	fasta := filepath.Join(dir, "in.fasta")
	content := ">one\nAAAA\n>two\nCCCC\n"
	require.NoError(t, os.WriteFile(fasta, []byte(content), 0644))

	c := NewClient(srv.URL, "", 5*time.Second)
	count, err := EmbedFasta(context.Background(), c, fasta, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 1, calls)
}
