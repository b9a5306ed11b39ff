package color_table

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeColorsAreMapped(t *testing.T) {
	for _, row := range Scheme {
		assert.Contains(t, ColorHex, row.Native, "native color %s", row.Native)
		assert.Contains(t, ColorHex, row.Boltz, "boltz color %s", row.Boltz)
	}
}

func TestHexToRGBA(t *testing.T) {
	c, err := hexToRGBA("#228B22")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x22, G: 0x8B, B: 0x22, A: 255}, c)

	_, err = hexToRGBA("forest")
	assert.Error(t, err)
}

func TestLaTeXTable(t *testing.T) {
	tex := LaTeXTable(Scheme)
	assert.Contains(t, tex, `\begin{tabular}{|c|c|c|p{3cm}|p{3cm}|}`)
	assert.Contains(t, tex, `A & forest & lime & Main TCR α chain & Predicted TCR α chain \\`)
	assert.Contains(t, tex, `\label{tab:structure_colors}`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(tex), `\end{table}`))
}

func TestTextTableAligned(t *testing.T) {
	txt := TextTable(Scheme)
	lines := strings.Split(txt, "\n")
	require.Greater(t, len(lines), 5)
	assert.Contains(t, lines[0], "Native PDB vs Boltz Prediction")
	assert.True(t, strings.HasPrefix(lines[5], "A     "))
	assert.Contains(t, txt, "purple")
	assert.Contains(t, txt, "pink")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.csv")
	require.NoError(t, WriteCSV(path, Scheme))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Chain,Native Color,Boltz Color")
	assert.Contains(t, string(data), "C,blue,grey,Short peptide,Predicted peptide")
}

func TestRenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.png")
	require.NoError(t, RenderPNG(path, Scheme))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
