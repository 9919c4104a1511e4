package adapters

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/Sena-ops/compliguard/internal/model"
)

type pssaRecord struct {
	RuleName   string      `json:"RuleName"`
	Severity   interface{} `json:"Severity"` // string ("Error") ou int (2), conforme o ConvertTo-Json
	ScriptPath string      `json:"ScriptPath"`
	Line       int         `json:"Line"`
	Column     int         `json:"Column"`
	Message    string      `json:"Message"`
}

// ParsePSSABytes normaliza a saída JSON do PSScriptAnalyzer. ConvertTo-Json
// emite objeto único quando há um só diagnóstico, então aceita os dois shapes.
func ParsePSSABytes(b []byte) ([]model.Finding, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}

	var records []pssaRecord
	if err := json.Unmarshal(b, &records); err != nil {
		var single pssaRecord
		if err2 := json.Unmarshal(b, &single); err2 != nil {
			return nil, err
		}
		records = []pssaRecord{single}
	}

	out := make([]model.Finding, 0, len(records))
	for _, r := range records {
		out = append(out, model.Finding{
			RuleID:   r.RuleName,
			Category: model.CatLint,
			Severity: pssaSeverity(r.Severity),
			FilePath: filepath.ToSlash(r.ScriptPath),
			Line:     safeLine(r.Line),
			Column:   r.Column,
			Message:  r.Message,
		})
	}
	return out, nil
}

func pssaSeverity(v interface{}) model.Severity {
	switch t := v.(type) {
	case string:
		switch t {
		case "ParseError":
			return model.SevCritical
		case "Error":
			return model.SevHigh
		case "Warning":
			return model.SevMedium
		default:
			return model.SevInfo
		}
	case float64: // 0=Information 1=Warning 2=Error 3=ParseError
		switch int(t) {
		case 3:
			return model.SevCritical
		case 2:
			return model.SevHigh
		case 1:
			return model.SevMedium
		}
	}
	return model.SevInfo
}

func safeLine(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
