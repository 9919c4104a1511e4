package aggregate

import (
	"sort"

	"github.com/Sena-ops/compliguard/internal/model"
)

// Aggregate reduz os registros de arquivo num ScanReport. Redução pura:
// mesma entrada (em qualquer ordem) produz o mesmo relatório — os registros
// são reordenados por caminho antes de entrar no resultado.
func Aggregate(records []model.FileRecord) model.ScanReport {
	sorted := append([]model.FileRecord(nil), records...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	report := model.ScanReport{
		FindingsBySeverity: map[model.Severity]int{},
		FileRecords:        sorted,
	}

	for _, rec := range sorted {
		for _, f := range rec.Findings {
			report.FindingsBySeverity[f.Severity]++
		}

		if rec.Classification == model.ClassExcluded {
			report.ExcludedFiles++
			continue
		}

		report.TotalFiles++
		if rec.Passed {
			report.PassedFiles++
		} else {
			report.FailedFiles++
		}
	}

	if report.TotalFiles > 0 {
		report.CompliancePercentage = float64(report.PassedFiles) / float64(report.TotalFiles) * 100
	}

	report.OverallStatus = overallStatus(sorted)
	return report
}

// overallStatus: Failed se existir Critical/High em arquivo de produção;
// Warning se existir qualquer finding Medium/Low; senão Passed.
// Scan vazio conta como Passed (decisão documentada no DESIGN.md).
func overallStatus(records []model.FileRecord) model.Status {
	status := model.StatusPassed
	for _, rec := range records {
		for _, f := range rec.Findings {
			if rec.Classification == model.ClassProduction && f.Severity.AtLeast(model.SevHigh) {
				return model.StatusFailed
			}
			if f.Severity == model.SevMedium || f.Severity == model.SevLow {
				status = model.StatusWarning
			}
		}
	}
	return status
}
