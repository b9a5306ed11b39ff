package version_control

// Version system:
// vMAJOR.MINOR.PATCH

// Centralized version control
const (
	// Executible
	Main_version = "v1.0.0"

	// Modular tools
	CSV2YAML          = "v1.1.0"
	HLA_Filter        = "v1.0.2"
	Boltz_Runs        = "v1.2.0"
	Run_Watch         = "v0.2.0"
	ESM_Embed         = "v0.1.1"
	MSA_Impact        = "v1.0.1"
	Color_Table       = "v1.0.0"
	Structure_Compare = "v1.0.1"
	Benchmark         = "v1.0.0"
)
