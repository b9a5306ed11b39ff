package structure_compare

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// chainColorPair carries the native/predicted cartoon colors for one chain.
type chainColorPair struct {
	Chain  string
	Native string
	Test   string
}

// ChainColors is the per-chain palette used for rendered alignments.
var ChainColors = []chainColorPair{
	{"A", "forest", "lime"},
	{"B", "cyan", "yellow"},
	{"C", "blue", "grey"},
	{"D", "green", "orange"},
	{"E", "purple", "pink"},
}

// PyMOLScript renders the alignment script: load both structures,
// superimpose the prediction onto the native, show cartoon only,
// color each chain pair, and raytrace two PNGs on a white background.
func PyMOLScript(nativeCIF, testCIF, outDir string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "load %s, native\n", nativeCIF)
	fmt.Fprintf(&b, "load %s, test\n\n", testCIF)

	// Superimposes "test" onto "native" so they overlap.
	b.WriteString("align test, native\n\n")

	b.WriteString("hide everything, all\n")
	b.WriteString("show cartoon, all\n\n")

	for _, cc := range ChainColors {
		fmt.Fprintf(&b, "# Chain %s\n", cc.Chain)
		fmt.Fprintf(&b, "color %s, native and chain %s\n", cc.Native, cc.Chain)
		fmt.Fprintf(&b, "color %s, test and chain %s\n\n", cc.Test, cc.Chain)
	}

	b.WriteString("zoom all\n")
	b.WriteString("orient all\n\n")

	b.WriteString("bg_color white\n")
	b.WriteString("set bg_rgb, [1.0, 1.0, 1.0]\n")
	b.WriteString("set ray_trace_mode, 1\n")
	b.WriteString("set ray_shadows, 0\n")
	b.WriteString("set antialias, 2\n\n")

	b.WriteString("set cartoon_transparency, 0.0, all\n")
	b.WriteString("set transparency, 0.0, all\n\n")

	fmt.Fprintf(&b, "png %s/aligned.png, width=800, height=600, ray=1\n", outDir)
	fmt.Fprintf(&b, "png %s/aligned_highres.png, width=1600, height=1200, ray=1, dpi=300\n\n", outDir)

	fmt.Fprintf(&b, "save %s/alignment_session.pse\n\n", outDir)
	b.WriteString("quit\n")

	return b.String()
}

// WritePyMOLScript writes the alignment script and returns its path.
func WritePyMOLScript(nativeCIF, testCIF, outDir string) (string, error) {
	path := filepath.Join(outDir, "alignment_script.pml")
	script := PyMOLScript(nativeCIF, testCIF, outDir)
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		return "", fmt.Errorf("failed to write PyMOL script: %w", err)
	}
	return path, nil
}

// RunPyMOL executes the script headless. Callers should check
// PyMOLAvailable first; a missing binary is a configuration problem,
// not a rendering one.
func RunPyMOL(scriptPath string) error {
	cmd := exec.Command("pymol", "-c", scriptPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pymol run failed: %w", err)
	}
	return nil
}

// PyMOLAvailable reports whether a pymol binary is on PATH.
func PyMOLAvailable() bool {
	_, err := exec.LookPath("pymol")
	return err == nil
}
