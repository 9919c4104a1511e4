package classify

import (
	"path/filepath"
	"strings"

	"github.com/Sena-ops/compliguard/internal/model"
)

// Options controla a classificação; tudo casado contra o caminho normalizado
// com separador "/".
type Options struct {
	ExcludeGlobs []string // globs de exclusão (vendor, build, .git...)
	TestSuffixes []string // sufixos de nome de arquivo de teste (ex: .Tests.ps1)
}

// Classify decide a classe de um arquivo. Primeira regra que casar vence:
// exclusão > indicador de teste > produção. Função pura, sempre retorna.
func Classify(path string, opts Options) model.Classification {
	// normaliza separador Windows mesmo rodando em POSIX
	norm := strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")

	for _, glob := range opts.ExcludeGlobs {
		if matchGlob(glob, norm) {
			return model.ClassExcluded
		}
	}

	if isTestPath(norm, opts.TestSuffixes) {
		return model.ClassTest
	}

	return model.ClassProduction
}

// matchGlob casa o glob contra o caminho inteiro e contra cada segmento,
// para que "vendor" exclua qualquer arquivo sob um diretório vendor.
func matchGlob(glob, path string) bool {
	if ok, err := filepath.Match(glob, path); err == nil && ok {
		return true
	}
	for _, seg := range strings.Split(path, "/") {
		if ok, err := filepath.Match(glob, seg); err == nil && ok {
			return true
		}
	}
	return false
}

func isTestPath(path string, suffixes []string) bool {
	base := filepath.Base(path)
	for _, suf := range suffixes {
		if strings.HasSuffix(strings.ToLower(base), strings.ToLower(suf)) {
			return true
		}
	}

	// segmento de caminho "test"/"tests" (case-insensitive) indica teste
	for _, seg := range strings.Split(strings.ToLower(path), "/") {
		if seg == "test" || seg == "tests" {
			return true
		}
	}
	return false
}
