package boltz_runs

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// AssertRuntime fails fast when the boltz environment was not activated,
// because running through a wrapper will not apply the activate.d CUDA fix
// (LD_LIBRARY_PATH / LD_PRELOAD) that the predictions depend on.
func AssertRuntime(binary, expectedEnv string, requireLDPreload bool) error {
	path, err := exec.LookPath(binary)
	if err != nil {
		return fmt.Errorf("[FATAL] '%s' not found on PATH; activate the env first: %w", binary, err)
	}

	if expectedEnv != "" && !strings.Contains(path, expectedEnv) {
		return fmt.Errorf(
			"[FATAL] Wrong '%s' on PATH:\n  %s\n\nExpected to see '%s' in the path.\nActivate the env ONCE then run the tool:\n  conda activate %s\n  boltz_buddy boltz_runs ...",
			binary, path, expectedEnv, expectedEnv)
	}

	// LD_PRELOAD must include cublas or the CUDA fix hook did not run.
	if requireLDPreload {
		ldPreload := os.Getenv("LD_PRELOAD")
		if !strings.Contains(ldPreload, "libcublas.so.12") {
			return fmt.Errorf(
				"[FATAL] LD_PRELOAD does not include libcublas.so.12.\nThat strongly suggests the CUDA fix hook did not run.\n\nDo NOT run via a launcher. Instead:\n  conda activate %s\n  (confirm LD_PRELOAD is set)\n  boltz_buddy boltz_runs ...",
				expectedEnv)
		}
	}

	return nil
}
