package adapters

import (
	"testing"

	"github.com/Sena-ops/compliguard/internal/model"
)

func TestParsePSSABytes(t *testing.T) {
	payload := `[
	  {"RuleName":"PSAvoidUsingPlainTextForPassword","Severity":"Error","ScriptPath":"src\\Get-Widget.ps1","Line":12,"Column":5,"Message":"uso de senha em texto plano"},
	  {"RuleName":"PSUseApprovedVerbs","Severity":1,"ScriptPath":"src/Process-Thing.ps1","Line":3,"Column":1,"Message":"verbo não aprovado"}
	]`

	fs, err := ParsePSSABytes([]byte(payload))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(fs) != 2 {
		t.Fatalf("esperado 2 findings, obtido %d", len(fs))
	}

	if fs[0].Severity != model.SevHigh {
		t.Errorf("esperado %v, obtido %v", model.SevHigh, fs[0].Severity)
	}
	if fs[0].FilePath != "src/Get-Widget.ps1" {
		t.Errorf("esperado caminho normalizado, obtido %q", fs[0].FilePath)
	}
	if fs[0].Category != model.CatLint {
		t.Errorf("esperado %v, obtido %v", model.CatLint, fs[0].Category)
	}
	if fs[1].Severity != model.SevMedium {
		t.Errorf("esperado %v, obtido %v", model.SevMedium, fs[1].Severity)
	}
	if fs[1].Line != 3 {
		t.Errorf("esperado 3, obtido %d", fs[1].Line)
	}
}

func TestParsePSSAObjetoUnico(t *testing.T) {
	payload := `{"RuleName":"PSAvoidUsingInvokeExpression","Severity":"Warning","ScriptPath":"a.ps1","Line":1,"Column":1,"Message":"m"}`
	fs, err := ParsePSSABytes([]byte(payload))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(fs) != 1 {
		t.Fatalf("esperado 1 finding, obtido %d", len(fs))
	}
	if fs[0].Severity != model.SevMedium {
		t.Errorf("esperado %v, obtido %v", model.SevMedium, fs[0].Severity)
	}
}

func TestParsePSSAVazio(t *testing.T) {
	fs, err := ParsePSSABytes([]byte("  \n"))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(fs) != 0 {
		t.Errorf("esperado 0 findings, obtido %d", len(fs))
	}
}

func TestParsePesterCoverage(t *testing.T) {
	payload := `{
	  "CoveragePercent": 72.5,
	  "AnalyzedFiles": [
	    {"Path":"src\\Get-Widget.ps1","CoveragePercent":95.0},
	    {"Path":"src/New-Widget.ps1","CoveragePercent":41.2}
	  ]
	}`

	fs, err := ParsePesterCoverageBytes([]byte(payload))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(fs) != 1 {
		t.Fatalf("esperado 1 finding, obtido %d", len(fs))
	}
	if fs[0].RuleID != LowCoverageID {
		t.Errorf("esperado %s, obtido %s", LowCoverageID, fs[0].RuleID)
	}
	if fs[0].FilePath != "src/New-Widget.ps1" {
		t.Errorf("esperado src/New-Widget.ps1, obtido %q", fs[0].FilePath)
	}
	if fs[0].Category != model.CatCoverage {
		t.Errorf("esperado %v, obtido %v", model.CatCoverage, fs[0].Category)
	}
}
