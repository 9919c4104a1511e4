package report

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Sena-ops/compliguard/internal/model"
)

// Página estática autocontida: CSS inline, sem recursos externos.
var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Relatório de conformidade</title>
<style>
  body { font-family: sans-serif; margin: 2rem; color: #222; }
  h1 { font-size: 1.4rem; }
  .status { display: inline-block; padding: .2rem .6rem; border-radius: .3rem; color: #fff; font-weight: bold; }
  .status.Passed { background: #2e7d32; }
  .status.Warning { background: #f9a825; color: #222; }
  .status.Failed { background: #c62828; }
  table { border-collapse: collapse; margin-top: 1rem; width: 100%; }
  th, td { border: 1px solid #ccc; padding: .35rem .6rem; text-align: left; font-size: .9rem; }
  th { background: #f5f5f5; }
  .sev-CRITICAL, .sev-HIGH { color: #c62828; font-weight: bold; }
  .sev-MEDIUM { color: #e65100; }
  .sev-LOW { color: #f9a825; }
  .sev-INFO { color: #666; }
  .erro { background: #fff3e0; }
</style>
</head>
<body>
<h1>Relatório de conformidade</h1>
<p>
  Status geral: <span class="status {{.Report.OverallStatus}}">{{.Report.OverallStatus}}</span><br>
  Arquivos: {{.Report.TotalFiles}} (aprovados {{.Report.PassedFiles}}, reprovados {{.Report.FailedFiles}}, excluídos {{.Report.ExcludedFiles}})<br>
  Conformidade: {{printf "%.1f" .Report.CompliancePercentage}}%
</p>
{{if .Findings}}
<h2>Findings</h2>
<table>
<tr><th>Arquivo</th><th>Linha</th><th>Regra</th><th>Severidade</th><th>Mensagem</th></tr>
{{range .Findings}}
<tr{{if .Interno}} class="erro"{{end}}>
  <td>{{.F.FilePath}}</td>
  <td>{{if .F.Line}}{{.F.Line}}{{end}}</td>
  <td>{{.F.RuleID}}</td>
  <td class="sev-{{.F.Severity}}">{{.F.Severity}}</td>
  <td>{{.F.Message}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>Nenhum finding.</p>
{{end}}
</body>
</html>
`))

type htmlFinding struct {
	F       model.Finding
	Interno bool
}

func renderHTML(r model.ScanReport) (string, error) {
	data := struct {
		Report   model.ScanReport
		Findings []htmlFinding
	}{Report: r}

	for _, f := range r.Findings() {
		data.Findings = append(data.Findings, htmlFinding{F: f, Interno: f.Category == model.CatInternal})
	}

	var b strings.Builder
	if err := htmlTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return b.String(), nil
}
