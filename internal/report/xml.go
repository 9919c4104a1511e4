package report

import (
	"encoding/xml"
	"fmt"
	"sort"

	"github.com/Sena-ops/compliguard/internal/model"
)

// encoding/xml não serializa mapas, então a contagem por severidade vira
// uma lista ordenada de pares.
type xmlSeverityCount struct {
	Severity model.Severity `xml:"severity,attr"`
	Count    int            `xml:"count,attr"`
}

type xmlFinding struct {
	RuleID   string         `xml:"ruleId"`
	Category model.Category `xml:"category"`
	Severity model.Severity `xml:"severity"`
	FilePath string         `xml:"filePath"`
	Line     int            `xml:"line,omitempty"`
	Column   int            `xml:"column,omitempty"`
	Message  string         `xml:"message"`
}

type xmlFile struct {
	Path           string               `xml:"path,attr"`
	SizeBytes      int64                `xml:"sizeBytes,attr"`
	Classification model.Classification `xml:"classification,attr"`
	Passed         bool                 `xml:"passed,attr"`
	Errored        bool                 `xml:"errored,attr,omitempty"`
	Findings       []xmlFinding         `xml:"finding"`
}

type xmlReport struct {
	XMLName              xml.Name           `xml:"complianceReport"`
	TotalFiles           int                `xml:"totalFiles"`
	PassedFiles          int                `xml:"passedFiles"`
	FailedFiles          int                `xml:"failedFiles"`
	ExcludedFiles        int                `xml:"excludedFiles"`
	CompliancePercentage float64            `xml:"compliancePercentage"`
	OverallStatus        model.Status       `xml:"overallStatus"`
	Severities           []xmlSeverityCount `xml:"findingsBySeverity>entry"`
	Files                []xmlFile          `xml:"files>file"`
}

func renderXML(r model.ScanReport) (string, error) {
	doc := xmlReport{
		TotalFiles:           r.TotalFiles,
		PassedFiles:          r.PassedFiles,
		FailedFiles:          r.FailedFiles,
		ExcludedFiles:        r.ExcludedFiles,
		CompliancePercentage: r.CompliancePercentage,
		OverallStatus:        r.OverallStatus,
	}

	for sev, count := range r.FindingsBySeverity {
		doc.Severities = append(doc.Severities, xmlSeverityCount{Severity: sev, Count: count})
	}
	sort.Slice(doc.Severities, func(i, j int) bool {
		return doc.Severities[i].Severity < doc.Severities[j].Severity
	})

	for _, rec := range r.FileRecords {
		xf := xmlFile{
			Path:           rec.Path,
			SizeBytes:      rec.SizeBytes,
			Classification: rec.Classification,
			Passed:         rec.Passed,
			Errored:        rec.Errored,
		}
		for _, f := range rec.Findings {
			xf.Findings = append(xf.Findings, xmlFinding{
				RuleID:   f.RuleID,
				Category: f.Category,
				Severity: f.Severity,
				FilePath: f.FilePath,
				Line:     f.Line,
				Column:   f.Column,
				Message:  f.Message,
			})
		}
		doc.Files = append(doc.Files, xf)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal xml: %w", err)
	}
	return xml.Header + string(data), nil
}
