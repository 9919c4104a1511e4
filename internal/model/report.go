package model

type Status string

const (
	StatusPassed  Status = "Passed"
	StatusWarning Status = "Warning"
	StatusFailed  Status = "Failed"
)

// ScanReport é o agregado de uma execução inteira do scan.
type ScanReport struct {
	TotalFiles           int              `json:"totalFiles"`
	PassedFiles          int              `json:"passedFiles"`
	FailedFiles          int              `json:"failedFiles"`
	ExcludedFiles        int              `json:"excludedFiles"`
	FindingsBySeverity   map[Severity]int `json:"findingsBySeverity"`
	CompliancePercentage float64          `json:"compliancePercentage"`
	OverallStatus        Status           `json:"overallStatus"`
	FileRecords          []FileRecord     `json:"fileRecords"`
}

// Findings devolve todos os findings do relatório, na ordem dos arquivos.
func (r ScanReport) Findings() []Finding {
	var out []Finding
	for _, rec := range r.FileRecords {
		out = append(out, rec.Findings...)
	}
	return out
}

// AppliesTo delimita em quais classes de arquivo uma regra roda.
type AppliesTo string

const (
	AppliesProduction AppliesTo = "production"
	AppliesTest       AppliesTo = "test"
	AppliesBoth       AppliesTo = "both"
)

// Match informa se a regra se aplica à classificação dada.
func (a AppliesTo) Match(c Classification) bool {
	switch a {
	case AppliesBoth:
		return c == ClassProduction || c == ClassTest
	case AppliesProduction:
		return c == ClassProduction
	case AppliesTest:
		return c == ClassTest
	}
	return false
}

// RuleMatch é uma ocorrência crua devolvida pelo matcher de uma regra.
type RuleMatch struct {
	Line    int // 1-based; 0 = arquivo inteiro
	Column  int
	Message string
}

// RuleDefinition é a metadata declarativa + matcher de uma regra.
// Evaluate deve ser determinístico: sem I/O, sem aleatoriedade.
type RuleDefinition struct {
	ID        string
	Category  Category
	Severity  Severity
	// TestSeverity rebaixa a regra em arquivos de teste; vazio = mesma severidade.
	TestSeverity Severity
	AppliesTo    AppliesTo
	Evaluate     func(text string) []RuleMatch
}

// EffectiveSeverity resolve a severidade para a classificação do arquivo.
func (r RuleDefinition) EffectiveSeverity(c Classification) Severity {
	if c == ClassTest && r.TestSeverity != "" {
		return r.TestSeverity
	}
	return r.Severity
}
