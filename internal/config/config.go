package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// OverrideFile é procurado na raiz do scan e mesclado sobre os defaults.
const OverrideFile = ".compliguard.yaml"

// Config enumera todas as opções reconhecidas, com defaults explícitos.
// Nada de hashtable solta: configuração viaja tipada do cmd até o scanner.
type Config struct {
	Root          string
	Extensions    []string
	ExcludeGlobs  []string
	TestSuffixes  []string
	ApprovedVerbs []string
	ExcludeTests  bool
	Workers       int
	RuleTimeout   time.Duration
}

func Default() Config {
	return Config{
		Root:         ".",
		Extensions:   []string{".ps1", ".psm1", ".psd1"},
		ExcludeGlobs: []string{".git", "vendor", "node_modules", "bin", "obj", ".compliguard"},
		TestSuffixes: []string{".Tests.ps1"},
		Workers:      4,
		RuleTimeout:  2 * time.Second,
	}
}

// overrides é o shape do arquivo YAML; só campos presentes sobrescrevem.
type overrides struct {
	Extensions         []string `yaml:"extensions"`
	ExcludeGlobs       []string `yaml:"excludeGlobs"`
	TestSuffixes       []string `yaml:"testSuffixes"`
	ApprovedVerbs      []string `yaml:"approvedVerbs"`
	Workers            int      `yaml:"workers"`
	RuleTimeoutSeconds int      `yaml:"ruleTimeoutSeconds"`
}

// Load aplica o arquivo de override da raiz, se existir. Arquivo ausente
// não é erro; YAML inválido é erro de configuração e aborta antes do scan.
func Load(base Config) (Config, error) {
	path := filepath.Join(base.Root, OverrideFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("ler %s: %w", path, err)
	}

	var ov overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return base, fmt.Errorf("yaml inválido em %s: %w", path, err)
	}

	if len(ov.Extensions) > 0 {
		base.Extensions = ov.Extensions
	}
	if len(ov.ExcludeGlobs) > 0 {
		base.ExcludeGlobs = ov.ExcludeGlobs
	}
	if len(ov.TestSuffixes) > 0 {
		base.TestSuffixes = ov.TestSuffixes
	}
	if len(ov.ApprovedVerbs) > 0 {
		base.ApprovedVerbs = ov.ApprovedVerbs
	}
	if ov.Workers > 0 {
		base.Workers = ov.Workers
	}
	if ov.RuleTimeoutSeconds > 0 {
		base.RuleTimeout = time.Duration(ov.RuleTimeoutSeconds) * time.Second
	}
	return base, nil
}
