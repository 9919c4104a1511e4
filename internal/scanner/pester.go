package scanner

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Sena-ops/compliguard/internal/adapters"
	"github.com/Sena-ops/compliguard/internal/model"
)

// RunPesterCoverage roda o Pester com cobertura e mapeia o resultado em
// findings sintéticos da categoria coverage.
func RunPesterCoverage(root string) ([]model.Finding, error) {
	outPath := filepath.Join(os.TempDir(), "compliguard-pester.json")
	defer os.Remove(outPath)

	script := fmt.Sprintf(
		"$r = Invoke-Pester -Path %q -CodeCoverage (Join-Path %q '*.ps1') -PassThru -Quiet; "+
			"$r.CodeCoverage | ConvertTo-Json -Depth 4 | Set-Content -Path %q", root, root, outPath)

	cmd := exec.Command("pwsh", "-NoProfile", "-NonInteractive", "-Command", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("erro ao executar Pester: %w\nstderr: %s", err, string(out))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cobertura do Pester: %w", err)
	}

	return adapters.ParsePesterCoverageBytes(data)
}
