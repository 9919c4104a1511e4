package report

import (
	"github.com/Sena-ops/compliguard/internal/model"
	"github.com/Sena-ops/compliguard/internal/sarif"
)

const (
	toolName    = "CompliGuard"
	toolVersion = "0.1.0"
)

func renderSARIF(r model.ScanReport) (string, error) {
	return sarif.Export(r.Findings(), toolName, toolVersion)
}
