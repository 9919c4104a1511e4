package report

import (
	"fmt"
	"strings"

	"github.com/Sena-ops/compliguard/internal/model"
)

type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
	FormatXML     Format = "xml"
	FormatHTML    Format = "html"
	FormatSARIF   Format = "sarif"
)

// ParseFormat valida o formato pedido na CLI. Formato desconhecido é erro
// de invocação (exit 2), não de renderização.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatConsole, "":
		return FormatConsole, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatSARIF:
		return FormatSARIF, nil
	}
	return "", fmt.Errorf("formato de saída desconhecido: %q (use console, json, xml, html ou sarif)", raw)
}

// Render serializa o relatório no formato pedido. Função pura: escrever em
// stdout/arquivo é responsabilidade de quem chama, e uma falha aqui nunca
// descarta o ScanReport em memória.
func Render(r model.ScanReport, format Format, detailed bool) (string, error) {
	switch format {
	case FormatConsole:
		return renderConsole(r, detailed), nil
	case FormatJSON:
		return renderJSON(r)
	case FormatXML:
		return renderXML(r)
	case FormatHTML:
		return renderHTML(r)
	case FormatSARIF:
		return renderSARIF(r)
	}
	return "", fmt.Errorf("formato de saída desconhecido: %q", format)
}

// ExitCode: 0 para Passed/Warning, 1 para Failed. Warning não bloqueia o CI.
func ExitCode(r model.ScanReport) int {
	if r.OverallStatus == model.StatusFailed {
		return 1
	}
	return 0
}
