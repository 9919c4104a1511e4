package scanner

import (
	"fmt"
	"os/exec"

	"github.com/Sena-ops/compliguard/internal/adapters"
	"github.com/Sena-ops/compliguard/internal/model"
)

// RunPSSA executa o PSScriptAnalyzer via pwsh e normaliza a saída JSON.
// A ferramenta é um colaborador plugável: ausência do pwsh é erro não fatal
// para quem chama (o scan embutido já aconteceu).
func RunPSSA(root string) ([]model.Finding, error) {
	script := fmt.Sprintf(
		"Invoke-ScriptAnalyzer -Path %q -Recurse | ConvertTo-Json -Depth 4", root)

	cmd := exec.Command("pwsh", "-NoProfile", "-NonInteractive", "-Command", script)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("erro ao executar PSScriptAnalyzer: %w", err)
	}

	return adapters.ParsePSSABytes(out)
}
