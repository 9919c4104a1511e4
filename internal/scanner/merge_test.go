package scanner

import (
	"testing"

	"github.com/Sena-ops/compliguard/internal/classify"
	"github.com/Sena-ops/compliguard/internal/model"
)

func TestMergeExternal(t *testing.T) {
	records := []model.FileRecord{
		{Path: "src/Get-Widget.ps1", Classification: model.ClassProduction, Passed: true},
	}
	external := []model.Finding{
		{
			RuleID: "PSAvoidUsingInvokeExpression", Category: model.CatLint,
			Severity: model.SevHigh, FilePath: "/repo/src/Get-Widget.ps1", Line: 7, Message: "m",
		},
		{
			RuleID: "LowTestCoverage", Category: model.CatCoverage,
			Severity: model.SevLow, FilePath: "/repo/src/New-Widget.ps1", Message: "m",
		},
	}

	out := MergeExternal(records, external, "/repo", classify.Options{})
	if len(out) != 2 {
		t.Fatalf("esperado 2 registros, obtido %d", len(out))
	}

	// ordenado por caminho
	if out[0].Path != "src/Get-Widget.ps1" || out[1].Path != "src/New-Widget.ps1" {
		t.Fatalf("ordem inesperada: %v, %v", out[0].Path, out[1].Path)
	}

	merged := out[0]
	if len(merged.Findings) != 1 {
		t.Fatalf("esperado 1 finding anexado, obtido %d", len(merged.Findings))
	}
	if merged.Findings[0].FilePath != "src/Get-Widget.ps1" {
		t.Errorf("esperado caminho relativo, obtido %q", merged.Findings[0].FilePath)
	}
	if merged.Passed {
		t.Error("finding High deveria reprovar o arquivo de produção")
	}

	novo := out[1]
	if novo.Classification != model.ClassProduction || !novo.Passed {
		t.Errorf("registro novo mal formado: %+v", novo)
	}
}
