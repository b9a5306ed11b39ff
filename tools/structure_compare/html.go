package structure_compare

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// comparisonPage is the side-by-side NGL viewer. The braces density of the
// embedded JS/CSS makes text/template the safer fit here.
var comparisonPage = template.Must(template.New("comparison").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Boltz vs PDB Structure Comparison</title>
    <script src="https://unpkg.com/ngl@0.10.4/dist/ngl.js"></script>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 20px;
            background-color: #f5f5f5;
        }
        .header {
            text-align: center;
            margin-bottom: 20px;
            padding: 20px;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            border-radius: 10px;
        }
        .comparison-container {
            display: flex;
            justify-content: space-between;
            gap: 20px;
            margin-bottom: 20px;
        }
        .structure-panel {
            flex: 1;
            background: white;
            padding: 20px;
            border-radius: 10px;
            box-shadow: 0 4px 6px rgba(0,0,0,0.1);
        }
        .structure-title {
            text-align: center;
            font-size: 18px;
            font-weight: bold;
            margin-bottom: 15px;
            padding: 10px;
            border-radius: 5px;
        }
        .boltz-title {
            background-color: #90EE90;
            color: #006400;
        }
        .native-title {
            background-color: #87CEEB;
            color: #000080;
        }
        .viewport {
            width: 100%;
            height: 400px;
            border: 2px solid #ddd;
            border-radius: 5px;
        }
        .legend {
            background: white;
            padding: 20px;
            border-radius: 10px;
            box-shadow: 0 4px 6px rgba(0,0,0,0.1);
        }
        .legend-item {
            display: flex;
            align-items: center;
            margin: 10px 0;
        }
        .color-box {
            width: 20px;
            height: 20px;
            margin-right: 10px;
            border-radius: 3px;
        }
        .controls {
            text-align: center;
            margin: 20px 0;
        }
        .control-btn {
            background: #667eea;
            color: white;
            border: none;
            padding: 10px 20px;
            margin: 5px;
            border-radius: 5px;
            cursor: pointer;
        }
        .control-btn:hover {
            background: #5a6fd8;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Molecular Structure Comparison</h1>
        <h2>Boltz Prediction vs Native PDB Structure</h2>
        <p>Interactive 3D visualization with color-coded chains</p>
    </div>

    <div class="comparison-container">
        <div class="structure-panel">
            <div class="structure-title boltz-title">Boltz Prediction Structure</div>
            <div id="boltz-viewport" class="viewport"></div>
        </div>

        <div class="structure-panel">
            <div class="structure-title native-title">Native PDB Structure</div>
            <div id="native-viewport" class="viewport"></div>
        </div>
    </div>

    <div class="controls">
        <button class="control-btn" onclick="resetViews()">Reset Views</button>
        <button class="control-btn" onclick="alignStructures()">Align Structures</button>
        <button class="control-btn" onclick="toggleRepresentations()">Toggle Representations</button>
    </div>

    <div class="legend">
        <h3>Color Legend</h3>
        <div class="legend-item">
            <div class="color-box" style="background-color: #90EE90;"></div>
            <span><strong>Boltz Prediction:</strong> Bright green - AI-generated structure</span>
        </div>
        <div class="legend-item">
            <div class="color-box" style="background-color: #87CEEB;"></div>
            <span><strong>Native PDB:</strong> Blue - experimentally determined structure</span>
        </div>
        <div class="legend-item">
            <div class="color-box" style="background-color: #FFD700;"></div>
            <span><strong>Chain A:</strong> Gold - typically the main chain</span>
        </div>
        <div class="legend-item">
            <div class="color-box" style="background-color: #FF69B4;"></div>
            <span><strong>Chain B:</strong> Hot pink - secondary chain</span>
        </div>
        <div class="legend-item">
            <div class="color-box" style="background-color: #32CD32;"></div>
            <span><strong>Chain C:</strong> Lime green - tertiary chain</span>
        </div>
    </div>

    <script>
        var boltzStage = new NGL.Stage("boltz-viewport");
        var nativeStage = new NGL.Stage("native-viewport");

        var chains = ["A", "B", "C", "D", "E"];
        var colors = ["gold", "hotpink", "limegreen", "orange", "purple"];

        function colorByChain(component, baseColor) {
            component.addRepresentation("cartoon", {color: baseColor});
            component.addRepresentation("ball+stick", {color: baseColor});
            chains.forEach(function(chain, index) {
                component.addRepresentation("cartoon", {
                    color: colors[index % colors.length],
                    sele: ":" + chain
                });
            });
        }

        boltzStage.loadFile("{{.BoltzCIF}}").then(function(component) {
            colorByChain(component, "lime");
            boltzStage.autoView();
        });

        nativeStage.loadFile("{{.NativeCIF}}").then(function(component) {
            colorByChain(component, "cyan");
            nativeStage.autoView();
        });

        function resetViews() {
            boltzStage.autoView();
            nativeStage.autoView();
        }

        function alignStructures() {
            alert("Alignment feature would require additional implementation");
        }

        function toggleRepresentations() {
            [boltzStage, nativeStage].forEach(function(stage) {
                stage.eachRepresentation(function(rep) {
                    rep.setVisible(!rep.visible);
                });
            });
        }
    </script>
</body>
</html>
`))

type pageData struct {
	BoltzCIF  string
	NativeCIF string
}

// WriteComparisonHTML writes the NGL side-by-side page and returns its path.
func WriteComparisonHTML(boltzCIF, nativeCIF, outDir string) (string, error) {
	path := filepath.Join(outDir, "boltz_vs_pdb_comparison.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create HTML: %w", err)
	}
	defer f.Close()

	data := pageData{BoltzCIF: boltzCIF, NativeCIF: nativeCIF}
	if err := comparisonPage.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return path, nil
}
