package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Sena-ops/compliguard/internal/model"
)

// CoverageThreshold: abaixo disso o arquivo ganha um finding de cobertura.
const CoverageThreshold = 80.0

const LowCoverageID = "LowTestCoverage"

type pesterCoverage struct {
	CoveragePercent float64 `json:"CoveragePercent"`
	AnalyzedFiles   []struct {
		Path            string  `json:"Path"`
		CoveragePercent float64 `json:"CoveragePercent"`
	} `json:"AnalyzedFiles"`
}

// ParsePesterCoverageBytes converte o relatório de cobertura do Pester em
// findings sintéticos da categoria coverage, um por arquivo abaixo do limiar.
func ParsePesterCoverageBytes(b []byte) ([]model.Finding, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}

	var doc pesterCoverage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	var out []model.Finding
	for _, f := range doc.AnalyzedFiles {
		if f.CoveragePercent >= CoverageThreshold {
			continue
		}
		out = append(out, model.Finding{
			RuleID:   LowCoverageID,
			Category: model.CatCoverage,
			Severity: model.SevLow,
			FilePath: filepath.ToSlash(f.Path),
			Message: fmt.Sprintf("cobertura de testes %.1f%% abaixo do limiar de %.0f%%",
				f.CoveragePercent, CoverageThreshold),
		})
	}
	return out, nil
}
