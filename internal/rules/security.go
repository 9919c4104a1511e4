package rules

import (
	"regexp"

	"github.com/Sena-ops/compliguard/internal/model"
)

// Tabela fixa de padrões de segurança. Política documentada: cada padrão
// reporta UMA vez por arquivo, na linha da primeira ocorrência — evita
// relatório ruidoso quando o mesmo segredo aparece repetido.
var securityPatterns = []struct {
	id       string
	severity model.Severity
	re       *regexp.Regexp
	message  string
}{
	{
		id:       "AvoidHardcodedPassword",
		severity: model.SevCritical,
		re:       regexp.MustCompile(`(?i)\$?password\s*=\s*["'][^"']+["']`),
		message:  "senha literal no código; use um cofre de credenciais ou variável de ambiente",
	},
	{
		id:       "AvoidHardcodedSecret",
		severity: model.SevHigh,
		re:       regexp.MustCompile(`(?i)\$?(secret|apikey|api_key|accesstoken|token)\s*=\s*["'][^"']+["']`),
		message:  "segredo/chave de API literal no código; carregue de fonte segura em runtime",
	},
	{
		id:       "AvoidInvokeExpression",
		severity: model.SevHigh,
		re:       regexp.MustCompile(`(?i)\binvoke-expression\b|(?m)(^|[\s|;(])iex\s`),
		message:  "execução dinâmica via Invoke-Expression; prefira chamada direta ou splatting",
	},
	{
		id:       "AvoidPlaintextSecureString",
		severity: model.SevCritical,
		re:       regexp.MustCompile(`(?i)convertto-securestring[^\n]*-asplaintext[^\n]*-force`),
		message:  "conversão de texto plano para SecureString anula a proteção do tipo",
	},
}

func securityRules() []model.RuleDefinition {
	defs := make([]model.RuleDefinition, 0, len(securityPatterns))
	for _, p := range securityPatterns {
		p := p
		defs = append(defs, model.RuleDefinition{
			ID:        p.id,
			Category:  model.CatSecurity,
			Severity:  p.severity,
			AppliesTo: model.AppliesBoth,
			Evaluate: func(text string) []model.RuleMatch {
				loc := p.re.FindStringIndex(text)
				if loc == nil {
					return nil
				}
				return []model.RuleMatch{{
					Line:    lineOf(text, loc[0]),
					Message: p.message,
				}}
			},
		})
	}
	return defs
}
