package scanner

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sena-ops/compliguard/internal/classify"
	"github.com/Sena-ops/compliguard/internal/model"
)

// MergeExternal anexa findings de ferramentas externas aos registros do scan
// embutido, casando pelo caminho relativo à raiz. Finding de arquivo que não
// estava no scan vira um registro novo, classificado normalmente. Passed é
// recalculado onde houve anexo.
func MergeExternal(records []model.FileRecord, external []model.Finding, root string, copts classify.Options) []model.FileRecord {
	byPath := make(map[string]int, len(records))
	out := append([]model.FileRecord(nil), records...)
	for i, rec := range out {
		byPath[rec.Path] = i
	}

	rootSlash := filepath.ToSlash(root)

	for _, f := range external {
		rel := normalizeRel(f.FilePath, rootSlash)
		f.FilePath = rel

		if i, ok := byPath[rel]; ok {
			out[i].Findings = append(out[i].Findings, f)
			if out[i].Classification != model.ClassExcluded {
				out[i].Passed = model.Passed(out[i].Classification, out[i].Findings)
			}
			continue
		}

		class := classify.Classify(rel, copts)
		rec := model.FileRecord{
			Path:           rel,
			Classification: class,
			Findings:       []model.Finding{f},
		}
		rec.Passed = class == model.ClassExcluded || model.Passed(class, rec.Findings)
		byPath[rel] = len(out)
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// normalizeRel reduz um caminho (possivelmente absoluto) ao relativo da raiz.
func normalizeRel(path, rootSlash string) string {
	p := filepath.ToSlash(path)
	if rootSlash != "" && rootSlash != "." {
		if strings.HasPrefix(p, rootSlash+"/") {
			return strings.TrimPrefix(p, rootSlash+"/")
		}
	}
	return strings.TrimPrefix(p, "./")
}
