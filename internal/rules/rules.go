package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sena-ops/compliguard/internal/model"
)

// IDs de findings sintéticos emitidos pela própria ferramenta.
const (
	RuleErrorID      = "RuleError"
	FileUnreadableID = "FileUnreadable"
)

// DefaultTimeout limita a avaliação de cada regra (backtracking adversarial).
const DefaultTimeout = 2 * time.Second

// Set é a coleção ordenada e nomeada de regras aplicadas num scan.
type Set struct {
	Name  string
	Rules []model.RuleDefinition
}

// Default monta o conjunto embutido: estruturais, segurança e performance.
func Default(approvedVerbs []string) Set {
	var defs []model.RuleDefinition
	defs = append(defs, structuralRules(approvedVerbs)...)
	defs = append(defs, securityRules()...)
	defs = append(defs, performanceRules()...)
	return Set{Name: "builtin", Rules: defs}
}

// Evaluate roda cada regra aplicável à classificação do arquivo e devolve os
// findings. Regra que estoura timeout ou panica vira um finding sintético
// Medium e a avaliação segue — uma regra ruim nunca derruba o scan inteiro.
func Evaluate(set Set, class model.Classification, path, text string, timeout time.Duration) []model.Finding {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var out []model.Finding
	for _, def := range set.Rules {
		if !def.AppliesTo.Match(class) {
			continue
		}
		sev := def.EffectiveSeverity(class)

		matches, err := runMatcher(def, text, timeout)
		if err != nil {
			out = append(out, model.Finding{
				RuleID:   RuleErrorID,
				Category: model.CatInternal,
				Severity: model.SevMedium,
				FilePath: path,
				Message:  fmt.Sprintf("regra %s falhou durante a avaliação: %v", def.ID, err),
			})
			continue
		}

		for _, m := range matches {
			out = append(out, model.Finding{
				RuleID:   def.ID,
				Category: def.Category,
				Severity: sev,
				FilePath: path,
				Line:     m.Line,
				Column:   m.Column,
				Message:  m.Message,
			})
		}
	}
	return out
}

// runMatcher isola o matcher numa goroutine com timeout e recover.
func runMatcher(def model.RuleDefinition, text string, timeout time.Duration) (matches []model.RuleMatch, err error) {
	type result struct {
		matches []model.RuleMatch
		err     error
	}
	ch := make(chan result, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- result{nil, fmt.Errorf("panic: %v", p)}
			}
		}()
		ch <- result{def.Evaluate(text), nil}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.matches, res.err
	case <-timer.C:
		return nil, fmt.Errorf("timeout após %s", timeout)
	}
}

// lineOf converte um offset de byte em número de linha 1-based.
func lineOf(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return 1 + strings.Count(text[:offset], "\n")
}
