package report

import (
	"encoding/json"
	"fmt"

	"github.com/Sena-ops/compliguard/internal/model"
)

// jsonReport segue o schema estável do relatório: campos agregados no topo,
// findings achatados, e os registros completos por arquivo.
type jsonReport struct {
	TotalFiles           int                    `json:"totalFiles"`
	PassedFiles          int                    `json:"passedFiles"`
	FailedFiles          int                    `json:"failedFiles"`
	ExcludedFiles        int                    `json:"excludedFiles"`
	CompliancePercentage float64                `json:"compliancePercentage"`
	OverallStatus        model.Status           `json:"overallStatus"`
	FindingsBySeverity   map[model.Severity]int `json:"findingsBySeverity"`
	Findings             []model.Finding        `json:"findings"`
	FileRecords          []model.FileRecord     `json:"fileRecords"`
}

func renderJSON(r model.ScanReport) (string, error) {
	doc := jsonReport{
		TotalFiles:           r.TotalFiles,
		PassedFiles:          r.PassedFiles,
		FailedFiles:          r.FailedFiles,
		ExcludedFiles:        r.ExcludedFiles,
		CompliancePercentage: r.CompliancePercentage,
		OverallStatus:        r.OverallStatus,
		FindingsBySeverity:   r.FindingsBySeverity,
		Findings:             r.Findings(),
		FileRecords:          r.FileRecords,
	}
	if doc.Findings == nil {
		doc.Findings = []model.Finding{}
	}
	if doc.FileRecords == nil {
		doc.FileRecords = []model.FileRecord{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return string(data), nil
}

// ParseJSON reconstrói um ScanReport a partir da saída JSON (round-trip dos
// campos estruturados; os findings achatados são derivados, não lidos).
func ParseJSON(data []byte) (model.ScanReport, error) {
	var doc jsonReport
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.ScanReport{}, fmt.Errorf("unmarshal json: %w", err)
	}
	return model.ScanReport{
		TotalFiles:           doc.TotalFiles,
		PassedFiles:          doc.PassedFiles,
		FailedFiles:          doc.FailedFiles,
		ExcludedFiles:        doc.ExcludedFiles,
		CompliancePercentage: doc.CompliancePercentage,
		OverallStatus:        doc.OverallStatus,
		FindingsBySeverity:   doc.FindingsBySeverity,
		FileRecords:          doc.FileRecords,
	}, nil
}
