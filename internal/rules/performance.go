package rules

import (
	"fmt"
	"regexp"

	"github.com/Sena-ops/compliguard/internal/model"
)

const AvoidArrayAppendID = "AvoidArrayAppendInLoop"

// Heurística: variável reatribuída com += dentro de um bloco de laço.
// Sem AST não dá para provar que é array, então o padrão exige um
// foreach/for/while aberto em linha anterior ainda não fechada — aproximação
// boa o bastante para os casos que o CI quer pegar.
var (
	loopOpenRe = regexp.MustCompile(`(?i)^\s*(foreach|for|while|do)\b`)
	appendRe   = regexp.MustCompile(`\$(\w+)\s*\+=`)
	lineSplit  = regexp.MustCompile(`\r\n|\r|\n`)
)

func performanceRules() []model.RuleDefinition {
	return []model.RuleDefinition{
		{
			ID:           AvoidArrayAppendID,
			Category:     model.CatPerformance,
			Severity:     model.SevMedium,
			TestSeverity: model.SevInfo,
			AppliesTo:    model.AppliesBoth,
			Evaluate:     evalArrayAppend,
		},
	}
}

func evalArrayAppend(text string) []model.RuleMatch {
	var out []model.RuleMatch
	depth := 0
	inLoop := 0 // profundidade de chaves na qual algum laço está aberto

	for i, line := range lineSplit.Split(text, -1) {
		if loopOpenRe.MatchString(line) && inLoop == 0 {
			inLoop = depth + 1
		}

		if inLoop > 0 && depth >= inLoop {
			if m := appendRe.FindStringSubmatch(line); m != nil {
				out = append(out, model.RuleMatch{
					Line: i + 1,
					Message: fmt.Sprintf(
						"acúmulo com += na variável $%s dentro de laço; "+
							"prefira [System.Collections.Generic.List] com .Add() ou o pipeline", m[1]),
				})
			}
		}

		for _, ch := range line {
			switch ch {
			case '{':
				depth++
			case '}':
				if depth > 0 {
					depth--
				}
				if depth < inLoop {
					inLoop = 0
				}
			}
		}
	}
	return out
}
