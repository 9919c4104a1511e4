package model

type Severity string

const (
	SevCritical Severity = "CRITICAL"
	SevHigh     Severity = "HIGH"
	SevMedium   Severity = "MEDIUM"
	SevLow      Severity = "LOW"
	SevInfo     Severity = "INFO"
)

// rank numérico para comparação com o limiar de reprovação
var sevRank = map[Severity]int{
	SevInfo:     1,
	SevLow:      2,
	SevMedium:   3,
	SevHigh:     4,
	SevCritical: 5,
}

// AtLeast informa se s é igual ou mais grave que min.
func (s Severity) AtLeast(min Severity) bool {
	return sevRank[s] >= sevRank[min]
}

// ParseSeverity normaliza uma string de severidade; ok=false se desconhecida.
func ParseSeverity(raw string) (Severity, bool) {
	s := Severity(raw)
	_, ok := sevRank[s]
	return s, ok
}

type Category string

const (
	CatStructural  Category = "structural"
	CatSecurity    Category = "security"
	CatPerformance Category = "performance"
	CatLint        Category = "lint"     // findings do linter externo
	CatCoverage    Category = "coverage" // findings sintéticos de cobertura
	CatInternal    Category = "internal" // falhas da própria ferramenta
)

type Classification string

const (
	ClassProduction Classification = "production"
	ClassTest       Classification = "test"
	ClassExcluded   Classification = "excluded"
)

// Finding é uma violação de regra; imutável depois de criada.
type Finding struct {
	RuleID   string   `json:"ruleId"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	FilePath string   `json:"filePath"`
	Line     int      `json:"line,omitempty"` // 1-based; 0 = sem linha
	Column   int      `json:"column,omitempty"`
	Message  string   `json:"message"`
}

// FileRecord é o resultado de um arquivo escaneado.
type FileRecord struct {
	Path           string         `json:"path"`
	SizeBytes      int64          `json:"sizeBytes"`
	Classification Classification `json:"classification"`
	Findings       []Finding      `json:"findings,omitempty"`
	Passed         bool           `json:"passed"`
	// Errored separa falha de ferramenta (leitura/regra) de problema de código.
	Errored bool `json:"errored,omitempty"`
}

// BlockingThreshold devolve a severidade mínima que reprova um arquivo
// conforme a classificação (mapa relaxado para testes).
func BlockingThreshold(c Classification) Severity {
	if c == ClassTest {
		return SevCritical
	}
	return SevHigh
}

// Passed verifica o conjunto de findings contra o limiar da classificação.
func Passed(c Classification, findings []Finding) bool {
	min := BlockingThreshold(c)
	for _, f := range findings {
		if f.Severity.AtLeast(min) {
			return false
		}
	}
	return true
}
