package scanner

import (
	"fmt"

	"github.com/Sena-ops/compliguard/internal/model"
)

// ToolFunc roda uma ferramenta externa sobre a raiz e devolve findings já
// normalizados para o modelo comum.
type ToolFunc func(root string) ([]model.Finding, error)

var tools = map[string]ToolFunc{
	"pssa":   RunPSSA,
	"pester": RunPesterCoverage,
}

// RunTool executa uma ferramenta externa registrada pelo nome.
func RunTool(name, root string) ([]model.Finding, error) {
	fn, ok := tools[name]
	if !ok {
		return nil, fmt.Errorf("ferramenta '%s' não suportada", name)
	}
	return fn(root)
}

// ToolNames lista as ferramentas registradas (para mensagens de erro da CLI).
func ToolNames() []string {
	names := make([]string, 0, len(tools))
	for n := range tools {
		names = append(names, n)
	}
	return names
}
