package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Sena-ops/compliguard/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	passedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var severityOrder = []model.Severity{
	model.SevCritical, model.SevHigh, model.SevMedium, model.SevLow, model.SevInfo,
}

func statusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusFailed:
		return failedStyle
	case model.StatusWarning:
		return warningStyle
	}
	return passedStyle
}

// renderConsole monta o resumo legível: contagens, findings agrupados por
// severidade e, separada, a lista de arquivos que falharam na ferramenta —
// problema de código e problema de tooling nunca se misturam.
func renderConsole(r model.ScanReport, detailed bool) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Relatório de conformidade"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Arquivos analisados: %d (aprovados: %d, reprovados: %d, excluídos: %d)\n",
		r.TotalFiles, r.PassedFiles, r.FailedFiles, r.ExcludedFiles)
	fmt.Fprintf(&b, "Conformidade: %.1f%%\n", r.CompliancePercentage)
	fmt.Fprintf(&b, "Status geral: %s\n", statusStyle(r.OverallStatus).Render(string(r.OverallStatus)))

	findings, errored := splitFindings(r)

	if len(findings) > 0 {
		b.WriteString("\n" + titleStyle.Render("Arquivos com findings") + "\n")
		for _, sev := range severityOrder {
			group := findings[sev]
			if len(group) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n[%s] %d finding(s)\n", sev, len(group))
			for _, f := range group {
				loc := f.FilePath
				if f.Line > 0 {
					loc = fmt.Sprintf("%s:%d", f.FilePath, f.Line)
				}
				fmt.Fprintf(&b, "  %s  %s — %s\n", loc, f.RuleID, f.Message)
			}
		}
	}

	if len(errored) > 0 {
		b.WriteString("\n" + titleStyle.Render("Arquivos com erro de ferramenta") + "\n")
		for _, f := range errored {
			fmt.Fprintf(&b, "  %s  %s — %s\n", f.FilePath, f.RuleID, f.Message)
		}
	}

	if detailed {
		b.WriteString("\n" + titleStyle.Render("Detalhe por arquivo") + "\n")
		for _, rec := range r.FileRecords {
			mark := passedStyle.Render("ok")
			if !rec.Passed {
				mark = failedStyle.Render("reprovado")
			}
			fmt.Fprintf(&b, "  %s  [%s] %s%s\n",
				mark, rec.Classification, rec.Path,
				dimStyle.Render(fmt.Sprintf(" (%d finding(s), %d bytes)", len(rec.Findings), rec.SizeBytes)))
		}
	}

	return b.String()
}

// splitFindings separa findings de código (agrupados por severidade) dos
// sintéticos de falha de ferramenta (categoria internal).
func splitFindings(r model.ScanReport) (map[model.Severity][]model.Finding, []model.Finding) {
	bySev := map[model.Severity][]model.Finding{}
	var errored []model.Finding
	for _, f := range r.Findings() {
		if f.Category == model.CatInternal {
			errored = append(errored, f)
			continue
		}
		bySev[f.Severity] = append(bySev[f.Severity], f)
	}
	return bySev, errored
}
