package rules

import (
	"testing"
	"time"

	"github.com/Sena-ops/compliguard/internal/model"
)

func findByRule(fs []model.Finding, id string) []model.Finding {
	var out []model.Finding
	for _, f := range fs {
		if f.RuleID == id {
			out = append(out, f)
		}
	}
	return out
}

func TestUseApprovedVerbs(t *testing.T) {
	set := Default(nil)

	tests := []struct {
		name       string
		text       string
		class      model.Classification
		violations int
	}{
		{"verbo_aprovado", "function Get-Widget {\n}\n", model.ClassProduction, 0},
		{"verbo_nao_aprovado", "function Process-Thing {\n}\n", model.ClassProduction, 1},
		{"case_insensitive", "FUNCTION process-Thing {\n}\n", model.ClassProduction, 1},
		{"duas_violacoes", "function Process-A {}\nfunction Do-B {}\n", model.ClassProduction, 2},
		{"teste_isento", "function Process-Thing {\n}\n", model.ClassTest, 0},
		{"sem_funcao", "$x = 1\n", model.ClassProduction, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := Evaluate(set, tt.class, "a.ps1", tt.text, 0)
			got := len(findByRule(fs, UseApprovedVerbsID))
			if got != tt.violations {
				t.Errorf("esperado %d, obtido %d (findings: %v)", tt.violations, got, fs)
			}
		})
	}
}

func TestUseApprovedVerbsLinha(t *testing.T) {
	set := Default(nil)
	text := "# cabecalho\n\nfunction Process-Thing {\n}\n"
	fs := findByRule(Evaluate(set, model.ClassProduction, "a.ps1", text, 0), UseApprovedVerbsID)
	if len(fs) != 1 {
		t.Fatalf("esperado 1 finding, obtido %d", len(fs))
	}
	if fs[0].Line != 3 {
		t.Errorf("esperado linha 3, obtido %d", fs[0].Line)
	}
	if fs[0].Severity != model.SevCritical {
		t.Errorf("esperado %v, obtido %v", model.SevCritical, fs[0].Severity)
	}
}

func TestSegurancaUmaVezPorArquivo(t *testing.T) {
	set := Default(nil)
	// duas senhas no mesmo arquivo: política é um finding só, na primeira linha
	text := "$password = \"abc123\"\n$password = \"outra\"\n"
	fs := findByRule(Evaluate(set, model.ClassProduction, "a.ps1", text, 0), "AvoidHardcodedPassword")
	if len(fs) != 1 {
		t.Fatalf("esperado 1 finding, obtido %d", len(fs))
	}
	if fs[0].Line != 1 {
		t.Errorf("esperado linha 1, obtido %d", fs[0].Line)
	}
}

func TestPadroesDeSeguranca(t *testing.T) {
	set := Default(nil)

	tests := []struct {
		name   string
		text   string
		ruleID string
		sev    model.Severity
	}{
		{"senha", `password = "abc123"`, "AvoidHardcodedPassword", model.SevCritical},
		{"apikey", `$apiKey = "xyz"`, "AvoidHardcodedSecret", model.SevHigh},
		{"invoke_expression", "Invoke-Expression $cmd\n", "AvoidInvokeExpression", model.SevHigh},
		{"iex_abreviado", "iex $cmd\n", "AvoidInvokeExpression", model.SevHigh},
		{"securestring_plano", "ConvertTo-SecureString $p -AsPlainText -Force\n", "AvoidPlaintextSecureString", model.SevCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := findByRule(Evaluate(set, model.ClassProduction, "a.ps1", tt.text, 0), tt.ruleID)
			if len(fs) != 1 {
				t.Fatalf("esperado 1 finding de %s, obtido %d", tt.ruleID, len(fs))
			}
			if fs[0].Severity != tt.sev {
				t.Errorf("esperado %v, obtido %v", tt.sev, fs[0].Severity)
			}
		})
	}
}

func TestSegurancaValeParaTestes(t *testing.T) {
	// regras de segurança não relaxam em arquivo de teste
	set := Default(nil)
	fs := findByRule(Evaluate(set, model.ClassTest, "a.Tests.ps1", `$password = "abc"`, 0), "AvoidHardcodedPassword")
	if len(fs) != 1 {
		t.Fatalf("esperado 1 finding, obtido %d", len(fs))
	}
	if fs[0].Severity != model.SevCritical {
		t.Errorf("esperado %v, obtido %v", model.SevCritical, fs[0].Severity)
	}
}

func TestAcumuloEmLaco(t *testing.T) {
	set := Default(nil)

	comLaco := "$out = @()\nforeach ($i in $items) {\n    $out += $i\n}\n"
	semLaco := "$out = @()\n$out += 1\n"

	fs := findByRule(Evaluate(set, model.ClassProduction, "a.ps1", comLaco, 0), AvoidArrayAppendID)
	if len(fs) != 1 {
		t.Fatalf("esperado 1 finding, obtido %d", len(fs))
	}
	if fs[0].Line != 3 {
		t.Errorf("esperado linha 3, obtido %d", fs[0].Line)
	}
	if fs[0].Severity != model.SevMedium {
		t.Errorf("esperado %v, obtido %v", model.SevMedium, fs[0].Severity)
	}

	if got := findByRule(Evaluate(set, model.ClassProduction, "a.ps1", semLaco, 0), AvoidArrayAppendID); len(got) != 0 {
		t.Errorf("esperado 0 findings fora de laço, obtido %d", len(got))
	}
}

func TestAcumuloEmLacoRelaxadoParaTeste(t *testing.T) {
	set := Default(nil)
	text := "foreach ($i in $items) {\n    $out += $i\n}\n"
	fs := findByRule(Evaluate(set, model.ClassTest, "a.Tests.ps1", text, 0), AvoidArrayAppendID)
	if len(fs) != 1 {
		t.Fatalf("esperado 1 finding, obtido %d", len(fs))
	}
	if fs[0].Severity != model.SevInfo {
		t.Errorf("esperado %v, obtido %v", model.SevInfo, fs[0].Severity)
	}
}

func TestRegraComPanicViraFindingSintetico(t *testing.T) {
	set := Set{Name: "quebrada", Rules: []model.RuleDefinition{
		{
			ID:        "Explode",
			Category:  model.CatStructural,
			Severity:  model.SevHigh,
			AppliesTo: model.AppliesBoth,
			Evaluate:  func(string) []model.RuleMatch { panic("boom") },
		},
		{
			ID:        "Sobrevive",
			Category:  model.CatStructural,
			Severity:  model.SevLow,
			AppliesTo: model.AppliesBoth,
			Evaluate: func(string) []model.RuleMatch {
				return []model.RuleMatch{{Line: 1, Message: "ok"}}
			},
		},
	}}

	fs := Evaluate(set, model.ClassProduction, "a.ps1", "x", 0)
	if len(fs) != 2 {
		t.Fatalf("esperado 2 findings, obtido %d", len(fs))
	}

	erro := findByRule(fs, RuleErrorID)
	if len(erro) != 1 {
		t.Fatalf("esperado 1 finding %s, obtido %d", RuleErrorID, len(erro))
	}
	if erro[0].Severity != model.SevMedium {
		t.Errorf("esperado %v, obtido %v", model.SevMedium, erro[0].Severity)
	}
	if len(findByRule(fs, "Sobrevive")) != 1 {
		t.Error("regra seguinte deveria ter rodado após o panic")
	}
}

func TestRegraComTimeoutViraFindingSintetico(t *testing.T) {
	set := Set{Name: "lenta", Rules: []model.RuleDefinition{
		{
			ID:        "Dorme",
			Category:  model.CatStructural,
			Severity:  model.SevHigh,
			AppliesTo: model.AppliesBoth,
			Evaluate: func(string) []model.RuleMatch {
				time.Sleep(200 * time.Millisecond)
				return nil
			},
		},
	}}

	fs := Evaluate(set, model.ClassProduction, "a.ps1", "x", 10*time.Millisecond)
	if len(findByRule(fs, RuleErrorID)) != 1 {
		t.Fatalf("esperado finding %s por timeout, obtido %v", RuleErrorID, fs)
	}
}

func TestDeterminismo(t *testing.T) {
	set := Default(nil)
	text := "function Process-Thing {\n    $password = \"abc\"\n    foreach ($i in $x) { \n        $out += $i\n    }\n}\n"

	a := Evaluate(set, model.ClassProduction, "a.ps1", text, 0)
	b := Evaluate(set, model.ClassProduction, "a.ps1", text, 0)
	if len(a) != len(b) {
		t.Fatalf("esperado mesmo total, obtido %d e %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("finding %d divergiu: %v vs %v", i, a[i], b[i])
		}
	}
}
